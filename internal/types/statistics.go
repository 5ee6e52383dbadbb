package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ReturnStats summarizes the equity curve's return profile. Ratios are
// fractions (0.10 == 10%) except where the field name says otherwise.
type ReturnStats struct {
	// Total return over the whole run: equity[last]/equity[0] - 1.
	TotalReturn float64 `yaml:"total_return"`
	// Annualized return using the 252 trading day convention.
	AnnualizedReturn float64 `yaml:"annualized_return"`
	// Annualized standard deviation of daily returns.
	Volatility float64 `yaml:"volatility"`
}

// RiskStats holds risk-adjusted performance ratios. Degenerate inputs
// (zero variance, zero drawdown, no downside returns) produce 0, never an
// error or NaN.
type RiskStats struct {
	SharpeRatio  float64 `yaml:"sharpe_ratio"`
	SortinoRatio float64 `yaml:"sortino_ratio"`
	// MaxDrawdown is the deepest peak-to-trough decline, as a negative fraction.
	MaxDrawdown float64 `yaml:"max_drawdown"`
	// MaxDrawdownDuration is the longest stretch of bars spent below a prior equity peak.
	MaxDrawdownDuration int     `yaml:"max_drawdown_duration"`
	CalmarRatio         float64 `yaml:"calmar_ratio"`
}

// TradeResult summarizes the closed-trade log.
type TradeResult struct {
	// Count of all trades.
	NumberOfTrades int `yaml:"number_of_trades"`
	// Count of winning trades that has positive pnl.
	NumberOfWinningTrades int `yaml:"number_of_winning_trades"`
	// Count of losing trades that has negative pnl.
	NumberOfLosingTrades int `yaml:"number_of_losing_trades"`
	// Win rate as a fraction of all trades. Zero trades yields 0.
	WinRate float64 `yaml:"win_rate"`
	// ProfitFactor is gross profit over gross loss. With no losing trades it
	// is the ProfitFactorNoLosses sentinel, never infinity or NaN.
	ProfitFactor float64 `yaml:"profit_factor"`
	// Average realized return per trade, in percent.
	AvgTradeReturnPct float64 `yaml:"avg_trade_return_pct"`
	AvgWin            float64 `yaml:"avg_win"`
	AvgLoss           float64 `yaml:"avg_loss"`
	GrossProfit       float64 `yaml:"gross_profit"`
	GrossLoss         float64 `yaml:"gross_loss"`
}

// TradeHoldingTime summarizes holding time of trades in seconds.
type TradeHoldingTime struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
	Avg int `yaml:"avg"`
}

// CostStats tallies the transaction costs charged over the run.
type CostStats struct {
	TotalCommission float64 `yaml:"total_commission"`
	TotalSlippage   float64 `yaml:"total_slippage"`
}

// BenchmarkStats is present only when a benchmark equity curve was supplied.
type BenchmarkStats struct {
	// Alpha is the annualized regression intercept of strategy daily returns
	// on benchmark daily returns.
	Alpha float64 `yaml:"alpha"`
	// Beta is the regression slope.
	Beta float64 `yaml:"beta"`
	// BenchmarkReturn is the benchmark's total return over the aligned range.
	BenchmarkReturn float64 `yaml:"benchmark_return"`
}

// PerformanceReport is the full metrics bundle for one backtest run. It is
// plain serializable data with no live references.
type PerformanceReport struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp"`
	// Symbol of the traded instrument.
	Symbol string `yaml:"symbol"`
	// StrategyName is the name of the strategy that produced the run.
	StrategyName string `yaml:"strategy_name"`

	InitialCapital float64 `yaml:"initial_capital"`
	FinalEquity    float64 `yaml:"final_equity"`

	Returns          ReturnStats      `yaml:"returns"`
	Risk             RiskStats        `yaml:"risk"`
	TradeResult      TradeResult      `yaml:"trade_result"`
	TradeHoldingTime TradeHoldingTime `yaml:"trade_holding_time"`
	Costs            CostStats        `yaml:"costs"`

	Benchmark *BenchmarkStats `yaml:"benchmark,omitempty"`
}

// WritePerformanceReport writes a performance report to a YAML file.
func WritePerformanceReport(path string, report PerformanceReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal performance report to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write performance report to file: %w", err)
	}

	return nil
}

// ReadPerformanceReport reads a performance report from a YAML file.
func ReadPerformanceReport(path string) (PerformanceReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PerformanceReport{}, fmt.Errorf("failed to read performance report file: %w", err)
	}

	var report PerformanceReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return PerformanceReport{}, fmt.Errorf("failed to unmarshal performance report: %w", err)
	}

	return report, nil
}
