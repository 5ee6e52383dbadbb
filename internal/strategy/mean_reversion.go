package strategy

import (
	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// MeanReversionParams configures the z-score mean reversion strategy.
type MeanReversionParams struct {
	// Window is the rolling mean/stddev period for the z-score.
	Window int `yaml:"window" validate:"required,gt=1"`
	// EntryZ is the entry threshold: z < -EntryZ signals enter long.
	EntryZ float64 `yaml:"entry_z" validate:"required,gt=0"`
	// ExitZ is the exit threshold: z > ExitZ signals exit long. Zero means
	// exit as soon as the z-score crosses back above the mean.
	ExitZ float64 `yaml:"exit_z" validate:"gte=0"`
}

// MeanReversion buys when price is stretched far below its rolling mean and
// sells once it has reverted past the exit threshold.
type MeanReversion struct {
	params MeanReversionParams
}

// NewMeanReversion validates the parameters and creates the strategy.
func NewMeanReversion(params MeanReversionParams) (*MeanReversion, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	return &MeanReversion{params: params}, nil
}

// Name implements Strategy.
func (s *MeanReversion) Name() string {
	return "mean_reversion"
}

// MinBarsRequired implements Strategy.
func (s *MeanReversion) MinBarsRequired() int {
	return s.params.Window
}

// ComputeSignal implements Strategy.
func (s *MeanReversion) ComputeSignal(history []types.MarketData) types.SignalType {
	if len(history) < s.MinBarsRequired() {
		return types.SignalTypeHold
	}

	closes := types.ClosePrices(history)

	mean, std, err := indicator.RollingMeanStd(closes, s.params.Window)
	if err != nil {
		return types.SignalTypeHold
	}

	// A flat window has no defined z-score.
	if std == 0 {
		return types.SignalTypeHold
	}

	z := (closes[len(closes)-1] - mean) / std

	switch {
	case z < -s.params.EntryZ:
		return types.SignalTypeEnterLong
	case z > s.params.ExitZ:
		return types.SignalTypeExitLong
	default:
		return types.SignalTypeHold
	}
}
