package strategy

import (
	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// MACDParams configures the MACD crossover strategy.
type MACDParams struct {
	// FastEMA is the fast EMA span of the MACD line.
	FastEMA int `yaml:"fast_ema" validate:"required,gt=0"`
	// SlowEMA is the slow EMA span of the MACD line. Must exceed FastEMA.
	SlowEMA int `yaml:"slow_ema" validate:"required,gt=0"`
	// SignalEMA is the EMA span of the signal line.
	SignalEMA int `yaml:"signal_ema" validate:"required,gt=0"`
}

// MACD enters when the MACD line crosses above its signal line and exits on
// the opposite crossover.
type MACD struct {
	params MACDParams
}

// NewMACD validates the parameters and creates the strategy.
func NewMACD(params MACDParams) (*MACD, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	if params.FastEMA >= params.SlowEMA {
		return nil, errors.Newf(errors.ErrCodeStrategyConfigError,
			"fast EMA (%d) must be less than slow EMA (%d)", params.FastEMA, params.SlowEMA)
	}

	return &MACD{params: params}, nil
}

// Name implements Strategy.
func (s *MACD) Name() string {
	return "macd"
}

// MinBarsRequired implements Strategy. EMAs are seeded from bar 0 and need
// the slow span plus the signal span to settle, plus one bar for the
// crossover comparison.
func (s *MACD) MinBarsRequired() int {
	return s.params.SlowEMA + s.params.SignalEMA + 1
}

// ComputeSignal implements Strategy.
func (s *MACD) ComputeSignal(history []types.MarketData) types.SignalType {
	if len(history) < s.MinBarsRequired() {
		return types.SignalTypeHold
	}

	closes := types.ClosePrices(history)

	fast := indicator.EMASeries(closes, s.params.FastEMA)
	slow := indicator.EMASeries(closes, s.params.SlowEMA)

	macdLine := make([]float64, len(closes))
	for i := range closes {
		macdLine[i] = fast[i] - slow[i]
	}

	signalLine := indicator.EMASeries(macdLine, s.params.SignalEMA)

	last := len(closes) - 1
	now := macdLine[last] - signalLine[last]
	before := macdLine[last-1] - signalLine[last-1]

	switch {
	case now > 0 && before <= 0:
		return types.SignalTypeEnterLong
	case now < 0 && before >= 0:
		return types.SignalTypeExitLong
	default:
		return types.SignalTypeHold
	}
}
