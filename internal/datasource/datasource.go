// Package datasource loads OHLCV bar series for the backtest engine.
package datasource

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-backtest/internal/types"
)

type DataSource interface {
	// Initialize loads market data from the given CSV file path.
	Initialize(path string) error
	// ReadAll reads bars in chronological order and yields them to the caller.
	ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.MarketData, error) bool)
	// Count returns the number of bars in the requested range.
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Close releases any resources held by the data source.
	Close() error
}

// LoadSeries drains a data source into a validated in-memory series. The
// engine operates on full series, so this is the usual entry point.
func LoadSeries(source DataSource, start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.MarketData, error) {
	var series []types.MarketData

	for bar, err := range source.ReadAll(start, end) {
		if err != nil {
			return nil, err
		}

		series = append(series, bar)
	}

	if err := types.ValidateSeries(series); err != nil {
		return nil, err
	}

	return series, nil
}
