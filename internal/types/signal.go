package types

import "time"

type SignalType string

const (
	// SignalTypeHold is a signal that tells the engine to take no action
	SignalTypeHold SignalType = "hold"
	// SignalTypeEnterLong is a signal that tells the engine to open a long position
	SignalTypeEnterLong SignalType = "enter_long"
	// SignalTypeExitLong is a signal that tells the engine to close the long position
	SignalTypeExitLong SignalType = "exit_long"
)

// Signal is a per-bar trading decision produced by a strategy. Strategies are
// long-only; the engine ignores signals that do not match its current state.
type Signal struct {
	// Time is the time of the bar the signal was computed on
	Time time.Time
	// Type is the type of the signal
	Type SignalType
	// Name is the name of the strategy that generated the signal
	Name string
	// Reason is a human-readable explanation for the signal
	Reason string
	// Symbol is the symbol of the signal
	Symbol string
}
