package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Configuration errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPeriod        ErrorCode = 102
	ErrCodeInvalidThreshold     ErrorCode = 103
	ErrCodeInvalidCapital       ErrorCode = 104
	ErrCodeInvalidRate          ErrorCode = 105
	ErrCodeInvalidSizingPolicy  ErrorCode = 106
	ErrCodeMissingParameter     ErrorCode = 107

	// Input data errors (200-299)
	ErrCodeEmptySeries          ErrorCode = 200
	ErrCodeNonChronologicalData ErrorCode = 201
	ErrCodeDuplicateTimestamp   ErrorCode = 202
	ErrCodeInvalidBar           ErrorCode = 203
	ErrCodeDataNotFound         ErrorCode = 204
	ErrCodeQueryFailed          ErrorCode = 205

	// Strategy errors (400-499)
	ErrCodeStrategyNotFound    ErrorCode = 400
	ErrCodeStrategyConfigError ErrorCode = 401

	// Backtest errors (600-699)
	ErrCodeBacktestConfigError  ErrorCode = 600
	ErrCodeBacktestNoStrategy   ErrorCode = 601
	ErrCodeBacktestWriteFailed  ErrorCode = 602
	ErrCodeBacktestNoDatasource ErrorCode = 603
)
