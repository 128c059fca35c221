// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Standard sentinel errors
var (
	ErrNoData           = errors.New("no usable candle data")
	ErrInsufficientData = errors.New("insufficient candle data")
	ErrTooOld           = errors.New("candle data too old to use")
	ErrInvalidTimeframe = errors.New("invalid timeframe")
	ErrSymbolNotFound   = errors.New("symbol not found")
	ErrNotConfigured    = errors.New("feature not configured")
	ErrRateLimited      = errors.New("rate limited")
	ErrDatabaseError    = errors.New("database error")
)

// DataError represents a candle-data error for one symbol/timeframe request.
type DataError struct {
	Symbol    string
	Timeframe string
	Message   string
	Err       error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error [%s %s]: %s: %v", e.Symbol, e.Timeframe, e.Message, e.Err)
	}
	return fmt.Sprintf("data error [%s %s]: %s", e.Symbol, e.Timeframe, e.Message)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new DataError.
func NewDataError(symbol, timeframe, message string, err error) *DataError {
	return &DataError{
		Symbol:    symbol,
		Timeframe: timeframe,
		Message:   message,
		Err:       err,
	}
}

// InsufficientDataError reports that a parsed candle series is below the
// minimum window some indicator needs. Distinct from a NEUTRAL decision:
// the computation did not happen at all.
type InsufficientDataError struct {
	Symbol    string
	Timeframe string
	Have      int
	Need      int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data [%s %s]: have %d candles, need %d", e.Symbol, e.Timeframe, e.Have, e.Need)
}

func (e *InsufficientDataError) Unwrap() error {
	return ErrInsufficientData
}

// NewInsufficientDataError creates a new InsufficientDataError.
func NewInsufficientDataError(symbol, timeframe string, have, need int) *InsufficientDataError {
	return &InsufficientDataError{
		Symbol:    symbol,
		Timeframe: timeframe,
		Have:      have,
		Need:      need,
	}
}

// TooOldError reports that the last candle is beyond the hard freshness
// ceiling. Callers must not present a decision; they surface "unusable"
// instead, using the embedded last-candle time and age.
type TooOldError struct {
	Symbol     string
	Timeframe  string
	LastCandle time.Time
	AgeSeconds int64
}

func (e *TooOldError) Error() string {
	return fmt.Sprintf("data too old [%s %s]: last candle %s, age %ds",
		e.Symbol, e.Timeframe, e.LastCandle.UTC().Format(time.RFC3339), e.AgeSeconds)
}

func (e *TooOldError) Unwrap() error {
	return ErrTooOld
}

// NewTooOldError creates a new TooOldError.
func NewTooOldError(symbol, timeframe string, lastCandle time.Time, ageSeconds int64) *TooOldError {
	return &TooOldError{
		Symbol:     symbol,
		Timeframe:  timeframe,
		LastCandle: lastCandle,
		AgeSeconds: ageSeconds,
	}
}

// ProviderError represents an error from an upstream market-data provider.
type ProviderError struct {
	Provider string
	Symbol   string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider error [%s] %s: %s: %v", e.Provider, e.Symbol, e.Message, e.Err)
	}
	return fmt.Sprintf("provider error [%s] %s: %s", e.Provider, e.Symbol, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new ProviderError.
func NewProviderError(provider, symbol, message string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Symbol:   symbol,
		Message:  message,
		Err:      err,
	}
}

// AgentError represents an error from the AI assistant loop.
type AgentError struct {
	Operation string
	Err       error
}

func (e *AgentError) Error() string {
	return fmt.Sprintf("agent error [%s]: %v", e.Operation, e.Err)
}

func (e *AgentError) Unwrap() error {
	return e.Err
}

// NewAgentError creates a new AgentError.
func NewAgentError(operation string, err error) *AgentError {
	return &AgentError{
		Operation: operation,
		Err:       err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
