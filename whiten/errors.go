// Package whiten: sentinel error set. Algorithms return these sentinels
// (wrapped with call context); tests and callers match via errors.Is.
package whiten

import "errors"

var (
	// ErrEmptyInput indicates a sample matrix with zero rows or columns.
	ErrEmptyInput = errors.New("whiten: input must be non-empty")

	// ErrTooFewSamples indicates fewer than two samples; the unbiased
	// covariance estimator divides by N−1 and needs N >= 2.
	ErrTooFewSamples = errors.New("whiten: need at least two samples")

	// ErrBadShape indicates image dimensions that are non-positive or do not
	// match the data length.
	ErrBadShape = errors.New("whiten: image shape does not match data")

	// ErrBadEpsilon indicates a non-finite or non-positive stabilization
	// constant.
	ErrBadEpsilon = errors.New("whiten: epsilon must be finite and positive")

	// ErrNaNInf indicates a NaN or ±Inf sample value under
	// Options.ValidateNaNInf. Never returned when validation is off.
	ErrNaNInf = errors.New("whiten: NaN or Inf in input")

	// ErrEigenFailed indicates the symmetric eigensolver did not converge.
	// Not expected for finite input; surfaced rather than panicking.
	ErrEigenFailed = errors.New("whiten: eigendecomposition failed")

	// ErrDimensionMismatch indicates whitened data whose feature count does
	// not match the Params it is being inverted with.
	ErrDimensionMismatch = errors.New("whiten: dimension mismatch")
)
