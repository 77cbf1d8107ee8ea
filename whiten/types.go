// Package whiten: options and the whitening-parameters value type.
package whiten

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultEpsilon is the additive eigenvalue stabilizer 1/√(λ+ε) uses.
// It bounds the amplification of near-zero-variance axes and makes
// rank-deficient covariance safe without a special-case branch.
const DefaultEpsilon = 1e-5

// DefaultValidateNaNInf preserves the reference behavior: no input
// validation, NaN/Inf propagate silently through the transform.
const DefaultValidateNaNInf = false

// Options configures a whitening call.
//
// Fields:
//   - Epsilon        — additive stabilization constant (must be finite, > 0).
//   - ValidateNaNInf — when true, reject NaN/±Inf input with ErrNaNInf
//     before computing anything; when false, propagate silently.
//
// Example:
//
//	opts := whiten.DefaultOptions()
//	opts.ValidateNaNInf = true
//	out, params, err := whiten.Batch(x, opts)
type Options struct {
	Epsilon        float64
	ValidateNaNInf bool
}

// DefaultOptions returns the package defaults (Epsilon=1e-5, no validation).
func DefaultOptions() Options {
	return Options{Epsilon: DefaultEpsilon, ValidateNaNInf: DefaultValidateNaNInf}
}

// validate rejects nonsensical options with ErrBadEpsilon.
func (o Options) validate() error {
	if !(o.Epsilon > 0) || math.IsInf(o.Epsilon, 0) {
		return fmt.Errorf("Epsilon=%v: %w", o.Epsilon, ErrBadEpsilon)
	}

	return nil
}

// Params is the (mean, transform) pair derived from one sample population.
// Mean has length D; Transform is D×D with scaled eigenvectors as columns.
// Params are computed once and immutable afterward; they accompany every
// whitened result so the transform can be inverted later if needed.
type Params struct {
	Mean      []float64
	Transform *mat.Dense
}

// Unwhiten applies the inverse transform: it reconstructs the original
// samples from whitened ones by solving Yᵀ = Wᵀ·Xcᵀ for the centered data
// and adding the mean back. The ε stabilizer keeps W invertible even for
// rank-deficient covariance, so the solve succeeds for any Params this
// package produced.
//
// Returns ErrDimensionMismatch if y's column count differs from len(Mean).
func (p Params) Unwhiten(y mat.Matrix) (*mat.Dense, error) {
	n, d := y.Dims()
	if d != len(p.Mean) {
		return nil, fmt.Errorf("Unwhiten: got %d features, want %d: %w", d, len(p.Mean), ErrDimensionMismatch)
	}

	// Solve Wᵀ·Z = Yᵀ, giving Z = Xcᵀ (d×n).
	var zt mat.Dense
	if err := zt.Solve(p.Transform.T(), y.T()); err != nil {
		return nil, fmt.Errorf("Unwhiten: %w", err)
	}

	out := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			out.Set(i, j, zt.At(j, i)+p.Mean[j])
		}
	}

	return out, nil
}
