package engine

import (
	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-backtest/internal/datasource"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
)

// OnProcessDataCallback is called after each bar is processed. Returning an
// error aborts the run.
type OnProcessDataCallback func(current int, total int) error

// Engine runs trading strategies over historical bar series and writes one
// result folder per strategy.
type Engine interface {
	// Initialize parses the YAML engine configuration and validates it.
	Initialize(config string) error
	// LoadStrategy registers a strategy to run. Can be called multiple times.
	LoadStrategy(s strategy.Strategy) error
	// SetDataSource sets the data source bars are loaded from.
	SetDataSource(source datasource.DataSource) error
	// SetDataPath points the data source at a market data file.
	SetDataPath(path string) error
	// SetResultsFolder sets the output directory for run results.
	SetResultsFolder(folder string) error
	// Run executes every loaded strategy over the loaded data.
	Run(onProcessData optional.Option[OnProcessDataCallback]) error
	// GetConfigSchema returns the JSON schema of the engine configuration.
	GetConfigSchema() (string, error)
}
