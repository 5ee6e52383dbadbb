package strategy

import (
	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// BollingerBandsParams configures the Bollinger Bands strategy.
type BollingerBandsParams struct {
	// Window is the rolling mean/stddev period.
	Window int `yaml:"window" validate:"required,gt=1"`
	// NumStdDev is the band width in standard deviations.
	NumStdDev float64 `yaml:"num_stddev" validate:"required,gt=0"`
}

// BollingerBands enters when the close touches or drops below the lower band
// and exits when it touches or rises above the upper band.
type BollingerBands struct {
	params BollingerBandsParams
}

// NewBollingerBands validates the parameters and creates the strategy.
func NewBollingerBands(params BollingerBandsParams) (*BollingerBands, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	return &BollingerBands{params: params}, nil
}

// Name implements Strategy.
func (s *BollingerBands) Name() string {
	return "bollinger_bands"
}

// MinBarsRequired implements Strategy.
func (s *BollingerBands) MinBarsRequired() int {
	return s.params.Window
}

// ComputeSignal implements Strategy.
func (s *BollingerBands) ComputeSignal(history []types.MarketData) types.SignalType {
	if len(history) < s.MinBarsRequired() {
		return types.SignalTypeHold
	}

	closes := types.ClosePrices(history)

	mean, std, err := indicator.RollingMeanStd(closes, s.params.Window)
	if err != nil {
		return types.SignalTypeHold
	}

	// Zero variance collapses both bands onto the mean; every close would
	// then sit on both bands at once, so treat it as no signal.
	if std == 0 {
		return types.SignalTypeHold
	}

	lower := mean - s.params.NumStdDev*std
	upper := mean + s.params.NumStdDev*std
	close := closes[len(closes)-1]

	switch {
	case close <= lower:
		return types.SignalTypeEnterLong
	case close >= upper:
		return types.SignalTypeExitLong
	default:
		return types.SignalTypeHold
	}
}
