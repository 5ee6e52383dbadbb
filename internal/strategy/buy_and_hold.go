package strategy

import (
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// BuyAndHold enters on the first bar and never exits. It exists as the
// benchmark strategy: running it over the same series produces the benchmark
// equity curve used for alpha/beta.
type BuyAndHold struct{}

// NewBuyAndHold creates the benchmark strategy.
func NewBuyAndHold() *BuyAndHold {
	return &BuyAndHold{}
}

// Name implements Strategy.
func (s *BuyAndHold) Name() string {
	return "buy_and_hold"
}

// MinBarsRequired implements Strategy.
func (s *BuyAndHold) MinBarsRequired() int {
	return 1
}

// ComputeSignal implements Strategy.
func (s *BuyAndHold) ComputeSignal(history []types.MarketData) types.SignalType {
	if len(history) == 1 {
		return types.SignalTypeEnterLong
	}

	return types.SignalTypeHold
}
