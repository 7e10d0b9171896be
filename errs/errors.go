// Package errs defines the sentinel errors shared across modelfit packages.
//
// All errors are created with errors.New and wrapped with context via
// fmt.Errorf("%w: ...") at the call site, so callers can match them with
// errors.Is regardless of the added detail.
package errs

import "errors"

var (
	// ErrShapeMismatch indicates a model produced an output whose length
	// differs from the input sample array, or the input array is empty.
	ErrShapeMismatch = errors.New("modelfit: output shape does not match input")

	// ErrInvalidParameter indicates an unknown parameter name or an
	// inconsistent parameter declaration (missing defaults, duplicates).
	ErrInvalidParameter = errors.New("modelfit: invalid parameter")

	// ErrInvalidConstraint indicates a parameter bound with min > max.
	ErrInvalidConstraint = errors.New("modelfit: invalid parameter constraint")

	// ErrDegreesOfFreedom indicates a goodness-of-fit request with
	// non-positive degrees of freedom (sample count <= free parameters).
	ErrDegreesOfFreedom = errors.New("modelfit: non-positive degrees of freedom")

	// ErrLengthMismatch indicates parallel arrays of different lengths.
	ErrLengthMismatch = errors.New("modelfit: array length mismatch")

	// ErrInvalidUncertainty indicates a non-positive measurement uncertainty.
	ErrInvalidUncertainty = errors.New("modelfit: uncertainty must be positive")

	// ErrInsufficientData indicates fewer data points than free parameters,
	// or no free parameters to optimize.
	ErrInsufficientData = errors.New("modelfit: insufficient data points")

	// ErrUnknownOperator indicates an unrecognized compound model operator.
	ErrUnknownOperator = errors.New("modelfit: unknown compound operator")

	// ErrNonLinearModel indicates a model that is not linear in its
	// parameters was passed to the linear least-squares fitter.
	ErrNonLinearModel = errors.New("modelfit: model is not linear in its parameters")

	// ErrUnknownColumn indicates a table column lookup by an unknown name.
	ErrUnknownColumn = errors.New("modelfit: unknown column")

	// ErrDuplicateColumn indicates a table column added twice.
	ErrDuplicateColumn = errors.New("modelfit: duplicate column")

	// ErrUnknownIdentifier indicates a catalog identifier with no entry.
	ErrUnknownIdentifier = errors.New("modelfit: unknown catalog identifier")
)
