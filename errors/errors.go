// Package errors provides error handling for tsml.
//
// It re-exports github.com/cockroachdb/errors so callers get stack traces,
// wrapping and errors.Is/As interop from a single import, and defines the
// sentinel error kinds shared across the toolkit.
//
// Usage:
//
//	if err := stage.Fit(train, labels); err != nil {
//	    return errors.Wrap(err, "fit summary stage")
//	}
//
//	if errors.IsNotFitted(err) {
//	    // fit before predicting
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping.
var (
	New         = crdb.New
	Newf        = crdb.Newf
	Wrap        = crdb.Wrap
	Wrapf       = crdb.Wrapf
	WithStack   = crdb.WithStack
	WithMessage = crdb.WithMessage
	WithHint    = crdb.WithHint
)

// Error inspection.
var (
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Sentinel error kinds. Every error returned by the toolkit wraps one of
// these, so callers can branch with errors.Is regardless of the message
// context added along the way.
var (
	// ErrConfiguration indicates a malformed pipeline or stage setup:
	// empty stage lists, a non-estimator final stage, duplicate stage
	// names, or invalid hyperparameters.
	ErrConfiguration = New("invalid configuration")

	// ErrNotFitted indicates Predict/Transform/Score was called before Fit.
	ErrNotFitted = New("not fitted")

	// ErrShapeMismatch indicates a dimension or count mismatch: datasets
	// and labels of different lengths, incompatible stage input kinds, or
	// predictions not aligned with ground truth.
	ErrShapeMismatch = New("shape mismatch")
)

// IsConfiguration reports whether err is or wraps ErrConfiguration.
func IsConfiguration(err error) bool {
	return err != nil && Is(err, ErrConfiguration)
}

// IsNotFitted reports whether err is or wraps ErrNotFitted.
func IsNotFitted(err error) bool {
	return err != nil && Is(err, ErrNotFitted)
}

// IsShapeMismatch reports whether err is or wraps ErrShapeMismatch.
func IsShapeMismatch(err error) bool {
	return err != nil && Is(err, ErrShapeMismatch)
}

// Configurationf returns a new configuration error with a formatted message.
func Configurationf(format string, args ...interface{}) error {
	return Wrap(ErrConfiguration, Newf(format, args...).Error())
}

// NotFittedf returns a new not-fitted error with a formatted message.
func NotFittedf(format string, args ...interface{}) error {
	return Wrap(ErrNotFitted, Newf(format, args...).Error())
}

// ShapeMismatchf returns a new shape-mismatch error with a formatted message.
func ShapeMismatchf(format string, args ...interface{}) error {
	return Wrap(ErrShapeMismatch, Newf(format, args...).Error())
}
