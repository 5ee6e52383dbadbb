package engine

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/commission"
	"github.com/rxtech-lab/argo-backtest/internal/datasource"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/metrics"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

type BacktestEngineV1 struct {
	config        BacktestEngineV1Config
	strategies    []strategy.Strategy
	dataPath      string
	resultsFolder string
	log           *logger.Logger
	datasource    datasource.DataSource
}

func NewBacktestEngineV1() engine.Engine {
	return &BacktestEngineV1{
		config:        DefaultConfig(),
		strategies:    nil,
		dataPath:      "",
		resultsFolder: "",
		log:           nil,
		datasource:    nil,
	}
}

// Initialize implements engine.Engine. An empty config document selects the
// defaults.
func (b *BacktestEngineV1) Initialize(config string) error {
	b.config = DefaultConfig()

	if strings.TrimSpace(config) != "" {
		if err := yaml.Unmarshal([]byte(config), &b.config); err != nil {
			return errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to parse backtest configuration", err)
		}
	}

	if err := b.config.Validate(); err != nil {
		return err
	}

	var loggerError error

	b.log, loggerError = logger.NewLogger()
	if loggerError != nil {
		return loggerError
	}

	b.log.Debug("Backtest engine initialized",
		zap.String("config", config),
	)

	return nil
}

// LoadStrategy implements engine.Engine.
func (b *BacktestEngineV1) LoadStrategy(s strategy.Strategy) error {
	if s == nil {
		return errors.New(errors.ErrCodeBacktestNoStrategy, "strategy is nil")
	}

	b.strategies = append(b.strategies, s)

	if b.log != nil {
		b.log.Debug("Strategy loaded",
			zap.String("strategy", s.Name()),
			zap.Int("total_strategies", len(b.strategies)),
		)
	}

	return nil
}

// SetDataSource implements engine.Engine.
func (b *BacktestEngineV1) SetDataSource(source datasource.DataSource) error {
	b.datasource = source

	return nil
}

// SetDataPath implements engine.Engine.
func (b *BacktestEngineV1) SetDataPath(path string) error {
	b.dataPath = path

	return nil
}

// SetResultsFolder implements engine.Engine.
func (b *BacktestEngineV1) SetResultsFolder(folder string) error {
	b.resultsFolder = folder

	return nil
}

// GetConfigSchema implements engine.Engine.
func (b *BacktestEngineV1) GetConfigSchema() (string, error) {
	return b.config.GenerateSchemaJSON()
}

// Run implements engine.Engine. Every loaded strategy runs over the same bar
// series and writes its results into <resultsFolder>/<strategy name>/.
func (b *BacktestEngineV1) Run(onProcessData optional.Option[engine.OnProcessDataCallback]) error {
	if err := b.preRunCheck(); err != nil {
		return err
	}

	if b.dataPath != "" {
		if err := b.datasource.Initialize(b.dataPath); err != nil {
			return err
		}
	}

	series, err := datasource.LoadSeries(b.datasource, b.config.StartTime, b.config.EndTime)
	if err != nil {
		return err
	}

	benchmark := optional.None[types.EquityCurve]()

	if b.config.Benchmark {
		benchResult, err := RunBacktest(b.config, series, strategy.NewBuyAndHold(), optional.None[types.EquityCurve](), nil)
		if err != nil {
			return err
		}

		benchmark = optional.Some(benchResult.EquityCurve)
	}

	// Start from a clean results folder.
	if _, err := os.Stat(b.resultsFolder); err == nil {
		os.RemoveAll(b.resultsFolder)
	}

	if err := os.MkdirAll(b.resultsFolder, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to create results folder", err)
	}

	for _, s := range b.strategies {
		b.log.Info("Running strategy",
			zap.String("strategy", s.Name()),
			zap.Int("bars", len(series)),
		)

		result, err := RunBacktest(b.config, series, s, benchmark, onProcessData)
		if err != nil {
			return err
		}

		resultFolder := filepath.Join(b.resultsFolder, s.Name())
		if err := result.WriteResult(resultFolder); err != nil {
			return err
		}

		b.log.Info("Strategy finished",
			zap.String("strategy", s.Name()),
			zap.String("run_id", result.RunID),
			zap.Float64("final_equity", result.EquityCurve.Final()),
			zap.Int("trades", len(result.Trades)),
			zap.String("result", resultFolder),
		)
	}

	return nil
}

func (b *BacktestEngineV1) preRunCheck() error {
	if len(b.strategies) == 0 {
		return errors.New(errors.ErrCodeBacktestNoStrategy, "no strategies loaded")
	}

	if b.datasource == nil {
		return errors.New(errors.ErrCodeBacktestNoDatasource, "no datasource set")
	}

	if b.resultsFolder == "" {
		return errors.New(errors.ErrCodeBacktestConfigError, "no results folder set")
	}

	return nil
}

// RunBacktest simulates one strategy over a bar series. The simulation is a
// pure function of its inputs: the same config, series and strategy always
// produce the same equity curve and trade log.
//
// Execution model: the signal for bar i is computed from bars [0..i] and
// filled at bar i's close, adjusted for slippage. The equity curve has
// exactly one point per bar. A position still open after the last bar is
// force-liquidated at that bar's close with the usual costs, so the final
// equity is fully in cash.
func RunBacktest(config BacktestEngineV1Config, series []types.MarketData, strat strategy.Strategy, benchmark optional.Option[types.EquityCurve], onProcessData optional.Option[engine.OnProcessDataCallback]) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if err := types.ValidateSeries(series); err != nil {
		return nil, err
	}

	if strat == nil {
		return nil, errors.New(errors.ErrCodeBacktestNoStrategy, "strategy is nil")
	}

	var fee commission.Commission
	if config.CommissionRate > 0 {
		fee = commission.NewRateCommission(config.CommissionRate)
	} else {
		fee = commission.NewZeroCommission()
	}

	sim := &simulation{
		config:    config,
		fee:       fee,
		portfolio: newPortfolio(config.InitialCapital),
		symbol:    series[0].Symbol,
		trades:    nil,
		costs:     types.CostStats{TotalCommission: 0, TotalSlippage: 0},
		curve:     make(types.EquityCurve, 0, len(series)),

		entryIndex: 0,
		entryTime:  time.Time{},
		entryFill:  0,
		entryFee:   0,
	}

	lastIndex := len(series) - 1

	for i, bar := range series {
		// The capacity cap keeps the strategy from seeing anything past bar i.
		signal := strat.ComputeSignal(series[: i+1 : i+1])

		switch signal {
		case types.SignalTypeEnterLong:
			sim.enterLong(i, bar)
		case types.SignalTypeExitLong:
			sim.exitLong(i, bar)
		case types.SignalTypeHold:
		}

		if i == lastIndex {
			sim.exitLong(i, bar)
		}

		sim.curve = append(sim.curve, types.EquityPoint{
			Time:   bar.Time,
			Equity: sim.portfolio.MarkToMarket(bar.Close),
		})

		if onProcessData.IsSome() {
			if err := onProcessData.Unwrap()(i+1, len(series)); err != nil {
				return nil, err
			}
		}
	}

	return sim.buildResult(strat.Name(), config, benchmark), nil
}

// simulation holds the mutable state of one run.
type simulation struct {
	config    BacktestEngineV1Config
	fee       commission.Commission
	portfolio *portfolio
	symbol    string
	trades    []types.Trade
	costs     types.CostStats
	curve     types.EquityCurve

	entryIndex int
	entryTime  time.Time
	entryFill  float64
	entryFee   float64
}

// enterLong opens a position at the bar close plus slippage. Entering while
// already long is a no-op, as is an entry the cash cannot afford.
func (s *simulation) enterLong(index int, bar types.MarketData) {
	if s.portfolio.IsLong() {
		return
	}

	fill := bar.Close * (1 + s.config.SlippageRate)

	quantity := sizeEntry(s.config.SizingPolicy, s.config.SizingFraction, s.portfolio.cash, fill, s.fee)
	if quantity <= 0 {
		return
	}

	feeAmount := s.fee.Calculate(quantity * fill)
	s.portfolio.Buy(fill, quantity, feeAmount)

	s.costs.TotalCommission += feeAmount
	s.costs.TotalSlippage += quantity * bar.Close * s.config.SlippageRate

	s.entryIndex = index
	s.entryTime = bar.Time
	s.entryFill = fill
	s.entryFee = feeAmount
}

// exitLong closes the open position at the bar close minus slippage and
// records the completed trade. Exiting while flat is a no-op.
func (s *simulation) exitLong(index int, bar types.MarketData) {
	if !s.portfolio.IsLong() {
		return
	}

	fill := bar.Close * (1 - s.config.SlippageRate)
	quantity := s.portfolio.quantity
	feeAmount := s.fee.Calculate(quantity * fill)

	s.portfolio.Sell(fill, quantity, feeAmount)

	s.costs.TotalCommission += feeAmount
	s.costs.TotalSlippage += quantity * bar.Close * s.config.SlippageRate

	s.trades = append(s.trades, types.NewTrade(
		uuid.New().String(), s.symbol,
		s.entryIndex, index, s.entryTime, bar.Time,
		s.entryFill, fill, quantity,
		s.entryFee+feeAmount,
	))
}

func (s *simulation) buildResult(strategyName string, config BacktestEngineV1Config, benchmark optional.Option[types.EquityCurve]) *Result {
	runID := uuid.New().String()
	stats := metrics.Calculate(s.curve, s.trades, config.RiskFreeRate, benchmark)

	return &Result{
		RunID:        runID,
		Symbol:       s.symbol,
		StrategyName: strategyName,
		EquityCurve:  s.curve,
		Trades:       s.trades,
		Costs:        s.costs,
		Report: types.PerformanceReport{
			ID:               runID,
			Timestamp:        time.Now(),
			Symbol:           s.symbol,
			StrategyName:     strategyName,
			InitialCapital:   config.InitialCapital,
			FinalEquity:      s.curve.Final(),
			Returns:          stats.Returns,
			Risk:             stats.Risk,
			TradeResult:      stats.TradeResult,
			TradeHoldingTime: stats.TradeHoldingTime,
			Costs:            s.costs,
			Benchmark:        stats.Benchmark,
		},
	}
}
