package strategy

import (
	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// MACrossoverParams configures the moving average crossover strategy.
type MACrossoverParams struct {
	// FastWindow is the short moving average period.
	FastWindow int `yaml:"fast_window" validate:"required,gt=0"`
	// SlowWindow is the long moving average period. Must exceed FastWindow.
	SlowWindow int `yaml:"slow_window" validate:"required,gt=0"`
}

// MACrossover enters on a golden cross (fast SMA crossing above slow SMA) and
// exits on a death cross.
type MACrossover struct {
	params MACrossoverParams
}

// NewMACrossover validates the parameters and creates the strategy.
func NewMACrossover(params MACrossoverParams) (*MACrossover, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	if params.FastWindow >= params.SlowWindow {
		return nil, errors.Newf(errors.ErrCodeStrategyConfigError,
			"fast window (%d) must be less than slow window (%d)",
			params.FastWindow, params.SlowWindow)
	}

	return &MACrossover{params: params}, nil
}

// Name implements Strategy.
func (s *MACrossover) Name() string {
	return "ma_crossover"
}

// MinBarsRequired implements Strategy. A crossover compares the current bar
// against the previous one, so one extra bar beyond the slow window is needed.
func (s *MACrossover) MinBarsRequired() int {
	return s.params.SlowWindow + 1
}

// ComputeSignal implements Strategy.
func (s *MACrossover) ComputeSignal(history []types.MarketData) types.SignalType {
	if len(history) < s.MinBarsRequired() {
		return types.SignalTypeHold
	}

	closes := types.ClosePrices(history)
	prev := closes[:len(closes)-1]

	fastNow, err := indicator.SMA(closes, s.params.FastWindow)
	if err != nil {
		return types.SignalTypeHold
	}

	slowNow, err := indicator.SMA(closes, s.params.SlowWindow)
	if err != nil {
		return types.SignalTypeHold
	}

	fastPrev, err := indicator.SMA(prev, s.params.FastWindow)
	if err != nil {
		return types.SignalTypeHold
	}

	slowPrev, err := indicator.SMA(prev, s.params.SlowWindow)
	if err != nil {
		return types.SignalTypeHold
	}

	switch {
	case fastNow > slowNow && fastPrev <= slowPrev:
		return types.SignalTypeEnterLong
	case fastNow < slowNow && fastPrev >= slowPrev:
		return types.SignalTypeExitLong
	default:
		return types.SignalTypeHold
	}
}
