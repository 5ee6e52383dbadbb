package datasource

import (
	"database/sql"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// SimulationPattern defines the shape of a generated price path.
type SimulationPattern string

const (
	// PatternIncreasing simulates a continuously increasing price trend.
	PatternIncreasing SimulationPattern = "increasing"
	// PatternDecreasing simulates a continuously decreasing price trend.
	PatternDecreasing SimulationPattern = "decreasing"
	// PatternVolatile simulates a noisy price path with a slight upward bias.
	PatternVolatile SimulationPattern = "volatile"
)

const (
	// minimumPrice is the price floor preventing non-positive prices.
	minimumPrice = 0.01
	// baseVolume is the base for randomized volume values.
	baseVolume = 1000000.0

	increasingNoiseBias = 0.3
	decreasingNoiseBias = 0.7
	volatileUpwardBias  = 0.45
)

// GeneratorConfig holds the parameters for synthetic bar generation.
type GeneratorConfig struct {
	Symbol    string
	StartTime time.Time
	// Interval is the spacing between consecutive bars.
	Interval time.Duration
	NumBars  int
	Pattern  SimulationPattern
	// InitialPrice is the starting price; defaults to 100.
	InitialPrice float64
	// TrendStrength is the per-bar drift for trending patterns; defaults to 1%.
	TrendStrength float64
	// VolatilityPercent is the per-bar noise amplitude; defaults to 2%.
	VolatilityPercent float64
	// Seed makes the output reproducible. A zero seed uses the wall clock.
	Seed int64
}

// Generator produces deterministic synthetic bar series for tests and demos.
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewGenerator creates a Generator, filling in defaults for unset fields.
func NewGenerator(config GeneratorConfig) *Generator {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if config.InitialPrice <= 0 {
		config.InitialPrice = 100.0
	}

	if config.TrendStrength <= 0 {
		config.TrendStrength = 0.01
	}

	if config.VolatilityPercent <= 0 {
		config.VolatilityPercent = 2.0
	}

	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Generate produces the configured number of bars with strictly increasing
// timestamps and valid OHLC relationships.
func (g *Generator) Generate() ([]types.MarketData, error) {
	if g.config.Symbol == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "symbol is required")
	}

	if g.config.StartTime.IsZero() {
		return nil, errors.New(errors.ErrCodeMissingParameter, "start time is required")
	}

	if g.config.Interval <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "interval must be positive")
	}

	if g.config.NumBars <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "number of bars must be positive")
	}

	series := make([]types.MarketData, g.config.NumBars)
	currentPrice := g.config.InitialPrice
	currentTime := g.config.StartTime

	for i := 0; i < g.config.NumBars; i++ {
		var change float64

		switch g.config.Pattern {
		case PatternIncreasing:
			change = g.trendingChange(currentPrice, 1, increasingNoiseBias)
		case PatternDecreasing:
			change = g.trendingChange(currentPrice, -1, decreasingNoiseBias)
		case PatternVolatile:
			change = currentPrice * (g.config.VolatilityPercent / 100.0) * (g.rng.Float64() - volatileUpwardBias)
		default:
			return nil, errors.Newf(errors.ErrCodeInvalidParameter, "unknown pattern: %q", g.config.Pattern)
		}

		newPrice := currentPrice + change
		if newPrice <= 0 {
			newPrice = minimumPrice
		}

		open := currentPrice
		closePrice := newPrice
		noiseRange := math.Max(open, closePrice) * (g.config.VolatilityPercent / 100.0) * 0.5

		high := math.Max(open, closePrice) + g.rng.Float64()*noiseRange

		low := math.Min(open, closePrice) - g.rng.Float64()*noiseRange
		if low <= 0 {
			low = minimumPrice
		}

		series[i] = types.MarketData{
			Time:   currentTime,
			Symbol: g.config.Symbol,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: baseVolume * (0.5 + g.rng.Float64()),
		}

		currentPrice = newPrice
		currentTime = currentTime.Add(g.config.Interval)
	}

	return series, nil
}

func (g *Generator) trendingChange(currentPrice, direction, noiseBias float64) float64 {
	trend := direction * currentPrice * g.config.TrendStrength
	noise := currentPrice * (g.config.VolatilityPercent / 100.0) * (g.rng.Float64() - noiseBias)

	return trend + noise
}

// WriteCSV writes a bar series to a CSV file with a header row, in the layout
// DuckDBDataSource reads back. The export goes through DuckDB so the column
// formatting matches what read_csv_auto infers.
func WriteCSV(series []types.MarketData, outputPath string) error {
	if len(series) == 0 {
		return errors.New(errors.ErrCodeEmptySeries, "no bars to write")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to create output directory", err)
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to open duckdb", err)
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE market_data (
			time TIMESTAMP,
			symbol VARCHAR,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to create table", err)
	}

	stmt, err := db.Prepare(`
		INSERT INTO market_data (time, symbol, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to prepare insert", err)
	}
	defer stmt.Close()

	for _, bar := range series {
		if _, err := stmt.Exec(bar.Time, bar.Symbol, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume); err != nil {
			return errors.Wrap(errors.ErrCodeQueryFailed, "failed to insert bar", err)
		}
	}

	copyQuery := fmt.Sprintf(`COPY market_data TO '%s' (FORMAT CSV, HEADER)`,
		strings.ReplaceAll(outputPath, "'", "''"))
	if _, err := db.Exec(copyQuery); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to export csv", err)
	}

	return nil
}
