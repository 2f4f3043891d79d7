package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrDimensionMismatch indicates mismatched sample/time lengths or state sizes.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch")

	// ErrUnknownParam is returned by SetParam for names a model does not expose.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")
)
