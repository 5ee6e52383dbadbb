package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	enginev1 "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-backtest/internal/datasource"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
)

// runAction executes the loaded strategies over a CSV bar series and writes
// one result folder per strategy.
func runAction(ctx context.Context, cmd *cli.Command) error {
	backtestEngine := enginev1.NewBacktestEngineV1()

	engineConfig := ""

	if configPath := cmd.String("config"); configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read engine config: %w", err)
		}

		engineConfig = string(content)
	}

	if err := backtestEngine.Initialize(engineConfig); err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}

	for _, spec := range cmd.StringSlice("strategy") {
		s, err := loadStrategy(spec)
		if err != nil {
			return err
		}

		if err := backtestEngine.LoadStrategy(s); err != nil {
			return err
		}
	}

	log, err := logger.NewLogger()
	if err != nil {
		return err
	}

	source, err := datasource.NewDuckDBDataSource(":memory:", log)
	if err != nil {
		return err
	}
	defer source.Close()

	if err := backtestEngine.SetDataSource(source); err != nil {
		return err
	}

	if err := backtestEngine.SetDataPath(cmd.String("data")); err != nil {
		return err
	}

	if err := backtestEngine.SetResultsFolder(cmd.String("output")); err != nil {
		return err
	}

	var bar *progressbar.ProgressBar

	callback := engine.OnProcessDataCallback(func(current, total int) error {
		if bar == nil || current == 1 {
			bar = progressbar.Default(int64(total))
		}

		return bar.Set(current)
	})

	if err := backtestEngine.Run(optional.Some(callback)); err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	return nil
}

// loadStrategy accepts either a registered strategy name (run with default
// parameters) or a path to a YAML strategy config file.
func loadStrategy(spec string) (strategy.Strategy, error) {
	if _, err := os.Stat(spec); err == nil {
		content, err := os.ReadFile(spec)
		if err != nil {
			return nil, fmt.Errorf("failed to read strategy config: %w", err)
		}

		var config strategy.Config
		if err := yaml.Unmarshal(content, &config); err != nil {
			return nil, fmt.Errorf("failed to parse strategy config %s: %w", spec, err)
		}

		return strategy.NewFromConfig(config)
	}

	return strategy.NewFromConfig(strategy.Config{Name: spec})
}

// schemaAction prints the engine configuration JSON schema.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	backtestEngine := enginev1.NewBacktestEngineV1()

	schema, err := backtestEngine.GetConfigSchema()
	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

// generateAction produces a synthetic CSV bar series for demos and testing.
func generateAction(ctx context.Context, cmd *cli.Command) error {
	config := datasource.GeneratorConfig{
		Symbol:            cmd.String("symbol"),
		StartTime:         cmd.Timestamp("start"),
		Interval:          24 * time.Hour,
		NumBars:           int(cmd.Int("bars")),
		Pattern:           datasource.SimulationPattern(cmd.String("pattern")),
		InitialPrice:      cmd.Float("price"),
		TrendStrength:     0,
		VolatilityPercent: 0,
		Seed:              cmd.Int("seed"),
	}

	series, err := datasource.NewGenerator(config).Generate()
	if err != nil {
		return fmt.Errorf("failed to generate data: %w", err)
	}

	output := cmd.String("output")
	if err := datasource.WriteCSV(series, output); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	log.Printf("Wrote %d bars to %s", len(series), output)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "argo-backtest",
		Usage: "Run trading strategy backtests over historical bar data",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run one or more strategies over a CSV bar series",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "Path to the market data CSV file",

						Required: true,
					},
					&cli.StringSliceFlag{
						Name:    "strategy",
						Aliases: []string{"s"},
						Usage: fmt.Sprintf("Strategy name (%s) or path to a strategy YAML config; repeatable",
							strings.Join(strategy.AllStrategyNames(), ", ")),
						Required: true,
					},
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the engine YAML config; defaults apply when omitted",
						Required: false,
					},
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Results output directory",
						Value:    "results",
						Required: false,
					},
				},
				Action: runAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the engine configuration JSON schema",
				Action: schemaAction,
			},
			{
				Name:  "generate",
				Usage: "Generate a synthetic CSV bar series",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "symbol",
						Usage:    "Ticker symbol for the generated bars",
						Value:    "TEST",
						Required: false,
					},
					&cli.TimestampFlag{
						Name:  "start",
						Usage: "First bar date in `YYYY-MM-DD` format",
						Value: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
						Config: cli.TimestampConfig{
							Layouts: []string{"2006-01-02"},
						},
						Required: false,
					},
					&cli.IntFlag{
						Name:     "bars",
						Usage:    "Number of daily bars to generate",
						Value:    252,
						Required: false,
					},
					&cli.StringFlag{
						Name:     "pattern",
						Usage:    "Price pattern: increasing, decreasing or volatile",
						Value:    string(datasource.PatternVolatile),
						Required: false,
					},
					&cli.FloatFlag{
						Name:     "price",
						Usage:    "Initial price",
						Value:    100,
						Required: false,
					},
					&cli.IntFlag{
						Name:     "seed",
						Usage:    "Random seed; 0 uses the wall clock",
						Value:    0,
						Required: false,
					},
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Output CSV path",
						Value:    "data/test.csv",
						Required: false,
					},
				},
				Action: generateAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
