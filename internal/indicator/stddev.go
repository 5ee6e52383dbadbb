package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// StdDev returns the sample standard deviation (n-1 denominator) of values.
// Fewer than two values yields 0.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := Mean(values)

	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}

	return math.Sqrt(sumSq / float64(len(values)-1))
}

// RollingMeanStd returns the mean and sample standard deviation of the last
// window elements of values.
func RollingMeanStd(values []float64, window int) (float64, float64, error) {
	if window <= 0 {
		return 0, 0, errors.Newf(errors.ErrCodeInvalidPeriod, "window must be a positive integer, got %d", window)
	}

	if len(values) < window {
		return 0, 0, errors.Newf(errors.ErrCodeInvalidPeriod,
			"rolling window of %d requires %d values, got %d", window, window, len(values))
	}

	tail := values[len(values)-window:]

	return Mean(tail), StdDev(tail), nil
}
