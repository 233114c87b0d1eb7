package mesi

import (
	"fmt"

	"github.com/pkg/errors"
)

// MaxCores bounds the fleet size; the original source's static arrays
// were sized for 8 cores and this implementation preserves that bound.
const MaxCores = 8

// WordSize is the fixed build-time word size, in bytes, used to
// translate block-denominated traffic into word-denominated counters.
const WordSize = 4

// ConfigError reports a geometry that cannot be realized: a
// non-power-of-two dimension, a zero, or an associativity that does
// not evenly divide the cache into whole sets. Fatal at NewSimulator.
type ConfigError struct {
	cause error
}

func (e *ConfigError) Error() string { return "configuration error: " + e.cause.Error() }
func (e *ConfigError) Unwrap() error { return e.cause }

func newConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{cause: errors.Errorf(format, args...)}
}

// InvariantError reports a violated implementation invariant, or an
// access PerformAccess cannot service: a core id outside the fleet or an
// unknown op. PerformAccess returns it instead of panicking so
// the caller can log and abort cleanly; it is raised before any counter
// for the access in progress has been mutated, so accounting is never
// left half-updated.
type InvariantError struct {
	cause error
}

func (e *InvariantError) Error() string { return "invariant violation: " + e.cause.Error() }
func (e *InvariantError) Unwrap() error { return e.cause }

func newInvariantError(format string, args ...any) *InvariantError {
	return &InvariantError{cause: errors.WithStack(fmt.Errorf(format, args...))}
}
