package types

import (
	"time"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// MarketData is a single OHLCV bar for one trading period.
type MarketData struct {
	Time   time.Time `csv:"time" yaml:"time"`
	Symbol string    `csv:"symbol" yaml:"symbol"`
	Open   float64   `csv:"open" yaml:"open"`
	High   float64   `csv:"high" yaml:"high"`
	Low    float64   `csv:"low" yaml:"low"`
	Close  float64   `csv:"close" yaml:"close"`
	Volume float64   `csv:"volume" yaml:"volume"`
}

// ValidateSeries checks the structural invariants the backtest engine relies
// on: the series is non-empty and timestamps are strictly increasing (which
// also rules out duplicates). It must be called before any simulation starts.
func ValidateSeries(series []MarketData) error {
	if len(series) == 0 {
		return errors.New(errors.ErrCodeEmptySeries, "market data series is empty")
	}

	for i := 1; i < len(series); i++ {
		prev, curr := series[i-1].Time, series[i].Time

		if curr.Equal(prev) {
			return errors.Newf(errors.ErrCodeDuplicateTimestamp,
				"duplicate timestamp %s at index %d", curr.Format(time.RFC3339), i)
		}

		if curr.Before(prev) {
			return errors.Newf(errors.ErrCodeNonChronologicalData,
				"timestamp %s at index %d is before previous %s",
				curr.Format(time.RFC3339), i, prev.Format(time.RFC3339))
		}
	}

	return nil
}

// ClosePrices extracts the close column from a series.
func ClosePrices(series []MarketData) []float64 {
	closes := make([]float64, len(series))
	for i, bar := range series {
		closes[i] = bar.Close
	}

	return closes
}
