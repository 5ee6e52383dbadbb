package strategy

import (
	"math"

	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// RSIParams configures the relative strength index strategy.
type RSIParams struct {
	// Period is the RSI smoothing period in bars.
	Period int `yaml:"period" validate:"required,gt=0"`
	// Oversold is the entry threshold: RSI below it signals enter long.
	Oversold float64 `yaml:"oversold" validate:"required,gt=0"`
	// Overbought is the exit threshold: RSI above it signals exit long.
	Overbought float64 `yaml:"overbought" validate:"required,lt=100"`
}

// RSI enters when the index drops below the oversold threshold and exits when
// it rises above the overbought threshold.
type RSI struct {
	params RSIParams
}

// NewRSI validates the parameters and creates the strategy.
func NewRSI(params RSIParams) (*RSI, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	if !(params.Oversold < params.Overbought) {
		return nil, errors.Newf(errors.ErrCodeStrategyConfigError,
			"thresholds must satisfy 0 < oversold (%.1f) < overbought (%.1f) < 100",
			params.Oversold, params.Overbought)
	}

	return &RSI{params: params}, nil
}

// Name implements Strategy.
func (s *RSI) Name() string {
	return "rsi"
}

// MinBarsRequired implements Strategy. The first defined RSI value needs
// period deltas, hence period+1 bars.
func (s *RSI) MinBarsRequired() int {
	return s.params.Period + 1
}

// ComputeSignal implements Strategy.
func (s *RSI) ComputeSignal(history []types.MarketData) types.SignalType {
	if len(history) < s.MinBarsRequired() {
		return types.SignalTypeHold
	}

	series := indicator.RSISeries(types.ClosePrices(history), s.params.Period)
	value := series[len(series)-1]

	if math.IsNaN(value) {
		return types.SignalTypeHold
	}

	switch {
	case value < s.params.Oversold:
		return types.SignalTypeEnterLong
	case value > s.params.Overbought:
		return types.SignalTypeExitLong
	default:
		return types.SignalTypeHold
	}
}
