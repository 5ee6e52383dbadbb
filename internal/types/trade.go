package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is a completed long round trip. It is created when a position is
// closed and is immutable afterwards.
type Trade struct {
	ID         string    `csv:"id" yaml:"id"`
	Symbol     string    `csv:"symbol" yaml:"symbol"`
	EntryIndex int       `csv:"entry_index" yaml:"entry_index"`
	ExitIndex  int       `csv:"exit_index" yaml:"exit_index"`
	EntryTime  time.Time `csv:"entry_time" yaml:"entry_time"`
	ExitTime   time.Time `csv:"exit_time" yaml:"exit_time"`
	// EntryPrice and ExitPrice are effective fill prices, slippage included.
	EntryPrice float64 `csv:"entry_price" yaml:"entry_price"`
	ExitPrice  float64 `csv:"exit_price" yaml:"exit_price"`
	Quantity   float64 `csv:"quantity" yaml:"quantity"`
	// Commission is the total commission paid on both legs of the round trip.
	Commission float64 `csv:"commission" yaml:"commission"`
	// PnL is the realized profit and loss net of commission.
	PnL float64 `csv:"pnl" yaml:"pnl"`
	// ReturnPct is PnL relative to the entry cost basis, in percent.
	ReturnPct float64 `csv:"return_pct" yaml:"return_pct"`
}

// NewTrade computes the realized PnL and return of a round trip. The
// arithmetic runs in decimal to keep repeated backtests bit-identical.
func NewTrade(id, symbol string, entryIndex, exitIndex int, entryTime, exitTime time.Time, entryPrice, exitPrice, quantity, commission float64) Trade {
	entryDec := decimal.NewFromFloat(entryPrice).Mul(decimal.NewFromFloat(quantity))
	exitDec := decimal.NewFromFloat(exitPrice).Mul(decimal.NewFromFloat(quantity))
	pnlDec := exitDec.Sub(entryDec).Sub(decimal.NewFromFloat(commission))

	pnl, _ := pnlDec.Float64()

	returnPct := 0.0
	if entryDec.IsPositive() {
		returnPct, _ = pnlDec.Div(entryDec).Mul(decimal.NewFromInt(100)).Float64()
	}

	return Trade{
		ID:         id,
		Symbol:     symbol,
		EntryIndex: entryIndex,
		ExitIndex:  exitIndex,
		EntryTime:  entryTime,
		ExitTime:   exitTime,
		EntryPrice: entryPrice,
		ExitPrice:  exitPrice,
		Quantity:   quantity,
		Commission: commission,
		PnL:        pnl,
		ReturnPct:  returnPct,
	}
}

// HoldingTime returns how long the position was held.
func (t Trade) HoldingTime() time.Duration {
	return t.ExitTime.Sub(t.EntryTime)
}
