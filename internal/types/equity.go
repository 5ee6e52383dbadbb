package types

import "time"

// EquityPoint is the mark-to-market portfolio value at the close of one bar.
type EquityPoint struct {
	Time   time.Time `csv:"time" yaml:"time"`
	Equity float64   `csv:"equity" yaml:"equity"`
}

// EquityCurve is index-aligned 1:1 with the bar series that produced it:
// len(curve) == len(series) always, and curve[i] is the equity after
// processing bar i.
type EquityCurve []EquityPoint

// Returns computes per-bar percentage changes. The first bar has no prior
// value and is excluded, so len(result) == len(curve)-1. A zero previous
// equity yields a zero return rather than a division blowup.
func (c EquityCurve) Returns() []float64 {
	if len(c) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(c)-1)

	for i := 1; i < len(c); i++ {
		prev := c[i-1].Equity
		if prev == 0 {
			returns = append(returns, 0)

			continue
		}

		returns = append(returns, c[i].Equity/prev-1)
	}

	return returns
}

// Final returns the last equity value, or 0 for an empty curve.
func (c EquityCurve) Final() float64 {
	if len(c) == 0 {
		return 0
	}

	return c[len(c)-1].Equity
}
