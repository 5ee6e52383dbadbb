// Package commission computes per-fill transaction fees.
package commission

type Commission interface {
	// Calculate returns the fee in USD for a fill of the given notional value.
	Calculate(notional float64) float64
}

// RateCommission charges a fixed fraction of the fill notional.
type RateCommission struct {
	rate float64
}

func NewRateCommission(rate float64) Commission {
	return &RateCommission{rate: rate}
}

func (c *RateCommission) Calculate(notional float64) float64 {
	return notional * c.rate
}

// ZeroCommission charges nothing. Useful for isolating strategy behavior
// from cost effects.
type ZeroCommission struct{}

func NewZeroCommission() Commission {
	return &ZeroCommission{}
}

func (c *ZeroCommission) Calculate(notional float64) float64 {
	return 0
}
