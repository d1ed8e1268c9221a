package nn

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below unwrap to them, so callers can use errors.Is.
var (
	// ErrShape reports incompatible tensor ranks or dimensions.
	ErrShape = errors.New("shape error")

	// ErrScope reports a parameter create/reuse conflict.
	ErrScope = errors.New("scope error")

	// ErrConfig reports an invalid layer configuration value.
	ErrConfig = errors.New("invalid configuration")
)

// ShapeError provides details about a shape validation failure.
type ShapeError struct {
	Op      string // Layer or helper that rejected the input (e.g., "multihead_attention")
	Details string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Details)
}

// Unwrap returns ErrShape.
func (e *ShapeError) Unwrap() error {
	return ErrShape
}

func shapeErrorf(op, format string, args ...any) error {
	return &ShapeError{Op: op, Details: fmt.Sprintf(format, args...)}
}

// ScopeError provides details about a parameter scope conflict.
type ScopeError struct {
	Key     string    // Full parameter key (e.g., "encoder/multihead_attention/ln/gamma")
	Mode    ScopeMode // Mode the lookup was made in
	Details string
}

// Error implements the error interface.
func (e *ScopeError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Mode, e.Key, e.Details)
}

// Unwrap returns ErrScope.
func (e *ScopeError) Unwrap() error {
	return ErrScope
}

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}
