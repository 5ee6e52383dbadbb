package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type TradeTestSuite struct {
	suite.Suite
}

func TestTradeSuite(t *testing.T) {
	suite.Run(t, new(TradeTestSuite))
}

func (suite *TradeTestSuite) TestNewTrade() {
	entryTime := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	exitTime := entryTime.AddDate(0, 0, 10)

	tests := []struct {
		name              string
		entryPrice        float64
		exitPrice         float64
		quantity          float64
		commission        float64
		expectedPnL       float64
		expectedReturnPct float64
	}{
		{
			name:              "winning trade no commission",
			entryPrice:        100,
			exitPrice:         110,
			quantity:          10,
			commission:        0,
			expectedPnL:       100,
			expectedReturnPct: 10,
		},
		{
			name:              "winning trade with commission",
			entryPrice:        100,
			exitPrice:         110,
			quantity:          10,
			commission:        5,
			expectedPnL:       95,
			expectedReturnPct: 9.5,
		},
		{
			name:              "losing trade",
			entryPrice:        100,
			exitPrice:         90,
			quantity:          10,
			commission:        2,
			expectedPnL:       -102,
			expectedReturnPct: -10.2,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			trade := NewTrade("id-1", "AAPL", 5, 15, entryTime, exitTime,
				tc.entryPrice, tc.exitPrice, tc.quantity, tc.commission)

			suite.InDelta(tc.expectedPnL, trade.PnL, 1e-9)
			suite.InDelta(tc.expectedReturnPct, trade.ReturnPct, 1e-9)
			suite.Equal(5, trade.EntryIndex)
			suite.Equal(15, trade.ExitIndex)
			suite.Equal(exitTime.Sub(entryTime), trade.HoldingTime())
		})
	}
}

func (suite *TradeTestSuite) TestEquityCurveReturns() {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	curve := EquityCurve{
		{Time: base, Equity: 100},
		{Time: base.AddDate(0, 0, 1), Equity: 110},
		{Time: base.AddDate(0, 0, 2), Equity: 99},
	}

	returns := curve.Returns()
	suite.Len(returns, 2)
	suite.InDelta(0.10, returns[0], 1e-9)
	suite.InDelta(-0.10, returns[1], 1e-9)
	suite.InDelta(99, curve.Final(), 1e-9)
}

func (suite *TradeTestSuite) TestEquityCurveReturnsDegenerate() {
	suite.Nil(EquityCurve{}.Returns())
	suite.Nil(EquityCurve{{Equity: 100}}.Returns())
	suite.Equal(0.0, EquityCurve{}.Final())
}
