// Package metrics turns an equity curve and trade log into standardized
// performance statistics. Every function here is a deterministic pure
// function: no I/O, no hidden state. Degenerate inputs (zero variance, zero
// drawdown, empty trade logs) produce the documented sentinel values and
// never an error, NaN, or Inf.
package metrics

import (
	"math"
	"time"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"

	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

const (
	// TradingDaysPerYear is the annualization convention for all ratios.
	TradingDaysPerYear = 252

	// ProfitFactorNoLosses is reported when a trade log has gross profit but
	// no losing trades. A fixed large finite value keeps serialized reports
	// free of infinities.
	ProfitFactorNoLosses = 1e9
)

// Result groups the statistics computed from one run.
type Result struct {
	Returns          types.ReturnStats
	Risk             types.RiskStats
	TradeResult      types.TradeResult
	TradeHoldingTime types.TradeHoldingTime
	// Benchmark is nil when no benchmark curve was supplied.
	Benchmark *types.BenchmarkStats
}

// Calculate computes all statistics for an equity curve and trade log.
// riskFreeRate is annualized. The benchmark curve, when present, is aligned
// to the strategy curve by timestamp before the alpha/beta regression.
func Calculate(equity types.EquityCurve, trades []types.Trade, riskFreeRate float64, benchmark optional.Option[types.EquityCurve]) Result {
	returns := equity.Returns()

	totalReturn := totalReturn(equity)
	annualized := annualizedReturn(totalReturn, len(returns))
	maxDD, maxDDDuration := maxDrawdown(equity)

	result := Result{
		Returns: types.ReturnStats{
			TotalReturn:      totalReturn,
			AnnualizedReturn: annualized,
			Volatility:       indicator.StdDev(returns) * math.Sqrt(TradingDaysPerYear),
		},
		Risk: types.RiskStats{
			SharpeRatio:         sharpeRatio(returns, riskFreeRate),
			SortinoRatio:        sortinoRatio(returns, riskFreeRate),
			MaxDrawdown:         maxDD,
			MaxDrawdownDuration: maxDDDuration,
			CalmarRatio:         calmarRatio(annualized, maxDD),
		},
		TradeResult:      tradeResult(trades),
		TradeHoldingTime: holdingTime(trades),
		Benchmark:        nil,
	}

	if benchmark.IsSome() {
		result.Benchmark = benchmarkStats(equity, benchmark.Unwrap())
	}

	return result
}

func totalReturn(equity types.EquityCurve) float64 {
	if len(equity) == 0 || equity[0].Equity <= 0 {
		return 0
	}

	return equity.Final()/equity[0].Equity - 1
}

// annualizedReturn scales the total return to a yearly figure over n return
// periods. Fewer than one period yields 0.
func annualizedReturn(totalReturn float64, n int) float64 {
	if n < 1 {
		return 0
	}

	base := 1 + totalReturn
	if base <= 0 {
		return -1
	}

	return math.Pow(base, TradingDaysPerYear/float64(n)) - 1
}

func sharpeRatio(returns []float64, riskFreeRate float64) float64 {
	excess := excessReturns(returns, riskFreeRate)

	std := indicator.StdDev(excess)
	if std == 0 {
		return 0
	}

	return indicator.Mean(excess) / std * math.Sqrt(TradingDaysPerYear)
}

// sortinoRatio penalizes downside volatility only. With no negative returns
// the downside deviation is undefined; the documented sentinel is 0.
func sortinoRatio(returns []float64, riskFreeRate float64) float64 {
	excess := excessReturns(returns, riskFreeRate)

	var downside []float64

	for i, r := range returns {
		if r < 0 {
			downside = append(downside, excess[i])
		}
	}

	std := indicator.StdDev(downside)
	if std == 0 {
		return 0
	}

	return indicator.Mean(excess) / std * math.Sqrt(TradingDaysPerYear)
}

func excessReturns(returns []float64, riskFreeRate float64) []float64 {
	// Annualized rate converted to a per-bar rate geometrically.
	dailyRate := math.Pow(1+riskFreeRate, 1.0/TradingDaysPerYear) - 1

	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - dailyRate
	}

	return excess
}

// maxDrawdown returns the deepest decline below the running equity peak (as a
// negative fraction, 0 for a curve that never dips) and the longest stretch
// of bars spent below a prior peak.
func maxDrawdown(equity types.EquityCurve) (float64, int) {
	if len(equity) == 0 {
		return 0, 0
	}

	runningMax := equity[0].Equity
	maxDD := 0.0
	longest, current := 0, 0

	for _, point := range equity {
		if point.Equity > runningMax {
			runningMax = point.Equity
		}

		if runningMax > 0 {
			if dd := point.Equity/runningMax - 1; dd < maxDD {
				maxDD = dd
			}
		}

		if point.Equity < runningMax {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}

	return maxDD, longest
}

func calmarRatio(annualizedReturn, maxDD float64) float64 {
	if maxDD == 0 {
		return 0
	}

	return annualizedReturn / math.Abs(maxDD)
}

func tradeResult(trades []types.Trade) types.TradeResult {
	result := types.TradeResult{
		NumberOfTrades:        len(trades),
		NumberOfWinningTrades: 0,
		NumberOfLosingTrades:  0,
		WinRate:               0,
		ProfitFactor:          0,
		AvgTradeReturnPct:     0,
		AvgWin:                0,
		AvgLoss:               0,
		GrossProfit:           0,
		GrossLoss:             0,
	}

	if len(trades) == 0 {
		return result
	}

	grossProfit := decimal.Zero
	grossLoss := decimal.Zero
	returnSum := decimal.Zero

	for _, trade := range trades {
		returnSum = returnSum.Add(decimal.NewFromFloat(trade.ReturnPct))

		switch {
		case trade.PnL > 0:
			result.NumberOfWinningTrades++
			grossProfit = grossProfit.Add(decimal.NewFromFloat(trade.PnL))
		case trade.PnL < 0:
			result.NumberOfLosingTrades++
			grossLoss = grossLoss.Add(decimal.NewFromFloat(trade.PnL).Abs())
		}
	}

	result.GrossProfit, _ = grossProfit.Float64()
	result.GrossLoss, _ = grossLoss.Float64()
	result.WinRate = float64(result.NumberOfWinningTrades) / float64(len(trades))
	result.AvgTradeReturnPct, _ = returnSum.Div(decimal.NewFromInt(int64(len(trades)))).Float64()

	if result.NumberOfWinningTrades > 0 {
		result.AvgWin = result.GrossProfit / float64(result.NumberOfWinningTrades)
	}

	if result.NumberOfLosingTrades > 0 {
		result.AvgLoss = -result.GrossLoss / float64(result.NumberOfLosingTrades)
	}

	switch {
	case result.GrossLoss > 0:
		result.ProfitFactor = result.GrossProfit / result.GrossLoss
	case result.GrossProfit > 0:
		result.ProfitFactor = ProfitFactorNoLosses
	}

	return result
}

func holdingTime(trades []types.Trade) types.TradeHoldingTime {
	if len(trades) == 0 {
		return types.TradeHoldingTime{Min: 0, Max: 0, Avg: 0}
	}

	minHold := trades[0].HoldingTime()
	maxHold := trades[0].HoldingTime()
	total := time.Duration(0)

	for _, trade := range trades {
		hold := trade.HoldingTime()
		if hold < minHold {
			minHold = hold
		}

		if hold > maxHold {
			maxHold = hold
		}

		total += hold
	}

	return types.TradeHoldingTime{
		Min: int(minHold.Seconds()),
		Max: int(maxHold.Seconds()),
		Avg: int(total.Seconds()) / len(trades),
	}
}

// benchmarkStats regresses strategy daily returns on benchmark daily returns
// over the overlapping aligned date range. Fewer than two aligned points or a
// zero-variance benchmark yields zeroed stats rather than an error.
func benchmarkStats(equity, benchmark types.EquityCurve) *types.BenchmarkStats {
	stats := &types.BenchmarkStats{
		Alpha:           0,
		Beta:            0,
		BenchmarkReturn: totalReturn(benchmark),
	}

	strategyReturns, benchReturns := alignedReturns(equity, benchmark)
	if len(strategyReturns) < 2 {
		return stats
	}

	meanS := indicator.Mean(strategyReturns)
	meanB := indicator.Mean(benchReturns)

	var covariance, variance float64

	for i := range benchReturns {
		covariance += (strategyReturns[i] - meanS) * (benchReturns[i] - meanB)
		variance += (benchReturns[i] - meanB) * (benchReturns[i] - meanB)
	}

	if variance == 0 {
		return stats
	}

	stats.Beta = covariance / variance
	stats.Alpha = (meanS - stats.Beta*meanB) * TradingDaysPerYear

	return stats
}

// alignedReturns pairs the daily returns of both curves at matching
// timestamps. A return is keyed by the timestamp of the bar it ends on.
func alignedReturns(equity, benchmark types.EquityCurve) ([]float64, []float64) {
	benchByTime := make(map[time.Time]float64, len(benchmark))

	benchReturnSeries := benchmark.Returns()
	for i, r := range benchReturnSeries {
		benchByTime[benchmark[i+1].Time] = r
	}

	var strategyReturns, benchReturns []float64

	equityReturnSeries := equity.Returns()
	for i, r := range equityReturnSeries {
		if br, ok := benchByTime[equity[i+1].Time]; ok {
			strategyReturns = append(strategyReturns, r)
			benchReturns = append(benchReturns, br)
		}
	}

	return strategyReturns, benchReturns
}
