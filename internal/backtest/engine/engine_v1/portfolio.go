package engine

import (
	"math"

	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/commission"
)

// portfolio tracks cash and the single open position during a run. It only
// does bookkeeping; fill prices and fees are decided by the engine.
type portfolio struct {
	cash          float64
	quantity      float64
	avgEntryPrice float64
}

func newPortfolio(initialCapital float64) *portfolio {
	return &portfolio{
		cash:          initialCapital,
		quantity:      0,
		avgEntryPrice: 0,
	}
}

func (p *portfolio) IsLong() bool {
	return p.quantity > 0
}

// Buy debits cash for a fill plus its fee and updates the average entry
// price. The caller sizes the order so the debit never exceeds cash; tiny
// float rounding overshoots are clamped to zero.
func (p *portfolio) Buy(fillPrice, quantity, fee float64) {
	cost := fillPrice*quantity + fee

	p.avgEntryPrice = (p.avgEntryPrice*p.quantity + fillPrice*quantity) / (p.quantity + quantity)
	p.quantity += quantity
	p.cash -= cost

	if p.cash < 0 && p.cash > -1e-9 {
		p.cash = 0
	}
}

// Sell credits cash with the fill proceeds net of fee and reduces the
// position. Closing the position fully resets the average entry price.
func (p *portfolio) Sell(fillPrice, quantity, fee float64) {
	p.cash += fillPrice*quantity - fee
	p.quantity -= quantity

	if p.quantity <= 0 {
		p.quantity = 0
		p.avgEntryPrice = 0
	}
}

// MarkToMarket values the portfolio at the given close price.
func (p *portfolio) MarkToMarket(closePrice float64) float64 {
	return p.cash + p.quantity*closePrice
}

// sizeEntry computes the quantity to buy with the available cash under the
// given sizing policy, leaving room for the fill fee. A quantity of zero
// means the order cannot be afforded and the entry is skipped.
func sizeEntry(policy SizingPolicy, fraction, cash, fillPrice float64, fee commission.Commission) float64 {
	if fillPrice <= 0 || cash <= 0 {
		return 0
	}

	budget := cash
	if policy == SizingFixedFraction {
		budget = cash * fraction
	}

	// Fees here are linear in notional, so the affordable quantity is the
	// budget over the all-in cost of one share.
	perShareCost := fillPrice + fee.Calculate(fillPrice)

	quantity := budget / perShareCost
	if policy == SizingAllInWhole {
		quantity = math.Floor(quantity)
	}

	return quantity
}
