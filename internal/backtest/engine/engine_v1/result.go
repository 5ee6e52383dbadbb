package engine

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// Result holds everything one backtest run produced.
type Result struct {
	// RunID uniquely identifies this run.
	RunID        string
	Symbol       string
	StrategyName string
	// EquityCurve is index-aligned with the bar series that produced it.
	EquityCurve types.EquityCurve
	// Trades are the completed round trips, in entry order.
	Trades []types.Trade
	Costs  types.CostStats
	Report types.PerformanceReport
}

// WriteResult writes the run's equity curve, trade log and performance report
// into the given folder.
func (r *Result) WriteResult(folder string) error {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to create result folder", err)
	}

	if err := r.writeEquityCurve(filepath.Join(folder, "equity.csv")); err != nil {
		return err
	}

	if err := r.writeTrades(filepath.Join(folder, "trades.csv")); err != nil {
		return err
	}

	if err := types.WritePerformanceReport(filepath.Join(folder, "stats.yaml"), r.Report); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write performance report", err)
	}

	return nil
}

func (r *Result) writeEquityCurve(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to create equity curve file", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write([]string{"time", "equity"}); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write equity curve header", err)
	}

	for _, point := range r.EquityCurve {
		record := []string{
			point.Time.Format(time.RFC3339),
			strconv.FormatFloat(point.Equity, 'f', -1, 64),
		}

		if err := writer.Write(record); err != nil {
			return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write equity curve point", err)
		}
	}

	writer.Flush()

	return writer.Error()
}

func (r *Result) writeTrades(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to create trades file", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{
		"id", "symbol", "entry_time", "exit_time", "entry_price", "exit_price",
		"quantity", "commission", "pnl", "return_pct",
	}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write trades header", err)
	}

	for _, trade := range r.Trades {
		record := []string{
			trade.ID,
			trade.Symbol,
			trade.EntryTime.Format(time.RFC3339),
			trade.ExitTime.Format(time.RFC3339),
			fmt.Sprintf("%f", trade.EntryPrice),
			fmt.Sprintf("%f", trade.ExitPrice),
			fmt.Sprintf("%f", trade.Quantity),
			fmt.Sprintf("%f", trade.Commission),
			fmt.Sprintf("%f", trade.PnL),
			fmt.Sprintf("%f", trade.ReturnPct),
		}

		if err := writer.Write(record); err != nil {
			return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write trade", err)
		}
	}

	writer.Flush()

	return writer.Error()
}
