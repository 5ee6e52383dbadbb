package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

type MarketTestSuite struct {
	suite.Suite
}

func TestMarketSuite(t *testing.T) {
	suite.Run(t, new(MarketTestSuite))
}

func barAt(t time.Time, close float64) MarketData {
	return MarketData{
		Time:   t,
		Symbol: "AAPL",
		Open:   close,
		High:   close,
		Low:    close,
		Close:  close,
		Volume: 1000,
	}
}

func (suite *MarketTestSuite) TestValidateSeries() {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		series       []MarketData
		expectedCode errors.ErrorCode
		valid        bool
	}{
		{
			name:         "empty series",
			series:       nil,
			expectedCode: errors.ErrCodeEmptySeries,
		},
		{
			name:   "single bar",
			series: []MarketData{barAt(base, 100)},
			valid:  true,
		},
		{
			name: "strictly increasing",
			series: []MarketData{
				barAt(base, 100),
				barAt(base.AddDate(0, 0, 1), 101),
				barAt(base.AddDate(0, 0, 2), 102),
			},
			valid: true,
		},
		{
			name: "duplicate timestamp",
			series: []MarketData{
				barAt(base, 100),
				barAt(base, 101),
			},
			expectedCode: errors.ErrCodeDuplicateTimestamp,
		},
		{
			name: "out of order",
			series: []MarketData{
				barAt(base.AddDate(0, 0, 1), 100),
				barAt(base, 101),
			},
			expectedCode: errors.ErrCodeNonChronologicalData,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			err := ValidateSeries(tc.series)
			if tc.valid {
				suite.NoError(err)
			} else {
				suite.Error(err)
				suite.True(errors.HasCode(err, tc.expectedCode))
				suite.True(errors.IsInputError(err))
			}
		})
	}
}

func (suite *MarketTestSuite) TestClosePrices() {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	series := []MarketData{
		barAt(base, 100),
		barAt(base.AddDate(0, 0, 1), 101.5),
	}

	suite.Equal([]float64{100, 101.5}, ClosePrices(series))
}
