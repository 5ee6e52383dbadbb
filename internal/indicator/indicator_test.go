package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

type IndicatorTestSuite struct {
	suite.Suite
}

func TestIndicatorSuite(t *testing.T) {
	suite.Run(t, new(IndicatorTestSuite))
}

func (suite *IndicatorTestSuite) TestSMA() {
	tests := []struct {
		name     string
		values   []float64
		period   int
		expected float64
		wantErr  bool
	}{
		{"simple window", []float64{1, 2, 3, 4, 5}, 5, 3, false},
		{"uses tail only", []float64{100, 1, 2, 3}, 3, 2, false},
		{"period one", []float64{7, 9}, 1, 9, false},
		{"insufficient data", []float64{1, 2}, 3, 0, true},
		{"zero period", []float64{1, 2}, 0, 0, true},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			got, err := SMA(tc.values, tc.period)
			if tc.wantErr {
				suite.Error(err)
				suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
			} else {
				suite.NoError(err)
				suite.InDelta(tc.expected, got, 1e-9)
			}
		})
	}
}

func (suite *IndicatorTestSuite) TestEMASeries() {
	// span=3 -> alpha=0.5, seeded with the first value.
	got := EMASeries([]float64{2, 4, 8}, 3)
	suite.Len(got, 3)
	suite.InDelta(2, got[0], 1e-9)
	suite.InDelta(3, got[1], 1e-9)
	suite.InDelta(5.5, got[2], 1e-9)

	suite.Nil(EMASeries(nil, 3))
	suite.Nil(EMASeries([]float64{1}, 0))
}

func (suite *IndicatorTestSuite) TestEMAConvergesToConstant() {
	values := make([]float64, 100)
	for i := range values {
		values[i] = 42
	}

	got := EMASeries(values, 10)
	suite.InDelta(42, got[len(got)-1], 1e-9)
}

func (suite *IndicatorTestSuite) TestRSISeriesWarmupIsNaN() {
	values := []float64{1, 2, 3, 4, 5, 6}
	got := RSISeries(values, 3)
	suite.Len(got, len(values))

	for i := 0; i < 3; i++ {
		suite.True(math.IsNaN(got[i]))
	}

	for i := 3; i < len(values); i++ {
		suite.False(math.IsNaN(got[i]))
	}
}

func (suite *IndicatorTestSuite) TestRSISeriesExtremes() {
	rising := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	got := RSISeries(rising, 3)
	suite.InDelta(100, got[len(got)-1], 1e-9)

	falling := []float64{8, 7, 6, 5, 4, 3, 2, 1}
	got = RSISeries(falling, 3)
	suite.InDelta(0, got[len(got)-1], 1e-9)

	flat := []float64{5, 5, 5, 5, 5}
	got = RSISeries(flat, 3)
	suite.InDelta(50, got[len(got)-1], 1e-9)
}

func (suite *IndicatorTestSuite) TestStdDev() {
	suite.InDelta(0, StdDev([]float64{1}), 1e-9)
	suite.InDelta(0, StdDev([]float64{3, 3, 3}), 1e-9)
	// sample stddev of {2,4,4,4,5,5,7,9} with n-1 denominator
	suite.InDelta(2.13808993, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-6)
}

func (suite *IndicatorTestSuite) TestRollingMeanStd() {
	mean, std, err := RollingMeanStd([]float64{100, 1, 2, 3}, 3)
	suite.NoError(err)
	suite.InDelta(2, mean, 1e-9)
	suite.InDelta(1, std, 1e-9)

	_, _, err = RollingMeanStd([]float64{1, 2}, 3)
	suite.Error(err)
}
