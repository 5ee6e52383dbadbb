// Package strategy contains the signal-generation variants. Every strategy is
// a stateless, deterministic function of the price history up to and including
// the current bar; it never sees future bars. During warm-up (fewer bars than
// MinBarsRequired) a strategy returns hold, never an error.
package strategy

import (
	"github.com/go-playground/validator/v10"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// Strategy computes a per-bar trading signal from price history.
type Strategy interface {
	// Name returns the identifier used in configs and reports.
	Name() string
	// MinBarsRequired returns the number of bars that must be available
	// before the strategy can produce a non-hold signal.
	MinBarsRequired() int
	// ComputeSignal returns the signal for the last bar of history. history
	// holds bars [0..i] only; truncating later bars must not change the
	// result at i.
	ComputeSignal(history []types.MarketData) types.SignalType
}

// validateParams runs struct-tag validation and wraps failures in a strategy
// config error so they surface before any simulation starts.
func validateParams(params any) error {
	validate := validator.New()
	if err := validate.Struct(params); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid strategy parameters", err)
	}

	return nil
}
