package indicator

import (
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// SMA returns the simple moving average of the last period elements of values.
func SMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	if len(values) < period {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod,
			"SMA requires %d values, got %d", period, len(values))
	}

	window := values[len(values)-period:]

	sum := 0.0
	for _, v := range window {
		sum += v
	}

	return sum / float64(period), nil
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
