package strategy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

type MACDTestSuite struct {
	suite.Suite
}

func TestMACDSuite(t *testing.T) {
	suite.Run(t, new(MACDTestSuite))
}

func (suite *MACDTestSuite) TestParamValidation() {
	tests := []struct {
		name    string
		params  MACDParams
		wantErr bool
	}{
		{"valid", MACDParams{FastEMA: 12, SlowEMA: 26, SignalEMA: 9}, false},
		{"fast equals slow", MACDParams{FastEMA: 26, SlowEMA: 26, SignalEMA: 9}, true},
		{"fast above slow", MACDParams{FastEMA: 30, SlowEMA: 26, SignalEMA: 9}, true},
		{"zero signal", MACDParams{FastEMA: 12, SlowEMA: 26, SignalEMA: 0}, true},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := NewMACD(tc.params)
			if tc.wantErr {
				suite.Error(err)
				suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))
			} else {
				suite.NoError(err)
			}
		})
	}
}

func (suite *MACDTestSuite) TestCrossoverSignals() {
	s, err := NewMACD(MACDParams{FastEMA: 2, SlowEMA: 4, SignalEMA: 2})
	suite.Require().NoError(err)
	suite.Equal(7, s.MinBarsRequired())

	// On a flat run every EMA equals the price, so MACD and signal line are
	// both zero. The first up-bar pushes MACD above the signal line.
	upturn := seriesFromCloses([]float64{100, 100, 100, 100, 100, 100, 100, 105})
	suite.Equal(types.SignalTypeEnterLong, s.ComputeSignal(upturn))

	// Mirror image: the first down-bar pushes MACD below the signal line.
	downturn := seriesFromCloses([]float64{100, 100, 100, 100, 100, 100, 100, 95})
	suite.Equal(types.SignalTypeExitLong, s.ComputeSignal(downturn))

	// No movement, no crossover.
	flat := seriesFromCloses([]float64{100, 100, 100, 100, 100, 100, 100, 100})
	suite.Equal(types.SignalTypeHold, s.ComputeSignal(flat))
}

func (suite *MACDTestSuite) TestWarmupHolds() {
	s, err := NewMACD(MACDParams{FastEMA: 2, SlowEMA: 4, SignalEMA: 2})
	suite.Require().NoError(err)

	series := seriesFromCloses([]float64{100, 105, 110, 115, 120, 125})
	for i := range series {
		suite.Equal(types.SignalTypeHold, s.ComputeSignal(series[:i+1]))
	}
}
