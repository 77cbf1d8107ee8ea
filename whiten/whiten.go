package whiten

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Batch computes and applies PCA whitening to N row-vector samples × D
// features (batch mode).
//
// Implementation:
//   - Stage 1: validate options, shape (N>=2, D>=1) and, if enabled, finiteness.
//   - Stage 2: column means; centered copy (input is never mutated).
//   - Stage 3: unbiased covariance via stat.CovarianceMatrix (divides by N−1).
//   - Stage 4: symmetric eigendecomposition (mat.EigenSym); order eigenpairs
//     by eigenvalue descending with a stable sort, ties keep solver order.
//   - Stage 5: assemble the transform W with columns vᵢ/√(λᵢ+ε);
//     whitened = centered × W.
//
// Returns the whitened N×D matrix and the (mean, transform) Params used.
// The input x is read-only throughout.
//
// Errors: ErrBadEpsilon, ErrEmptyInput, ErrTooFewSamples, ErrNaNInf (only
// under Options.ValidateNaNInf), ErrEigenFailed.
func Batch(x mat.Matrix, opts Options) (*mat.Dense, Params, error) {
	if err := opts.validate(); err != nil {
		return nil, Params{}, fmt.Errorf("Batch: %w", err)
	}
	n, d := x.Dims()
	if n == 0 || d == 0 {
		return nil, Params{}, fmt.Errorf("Batch: %dx%d: %w", n, d, ErrEmptyInput)
	}
	if n < 2 {
		return nil, Params{}, fmt.Errorf("Batch: %d samples: %w", n, ErrTooFewSamples)
	}
	if opts.ValidateNaNInf {
		if err := scanFinite(x); err != nil {
			return nil, Params{}, fmt.Errorf("Batch: %w", err)
		}
	}

	// Stage 2: column means and centered copy. Fixed i→j order.
	mean := make([]float64, d)
	col := make([]float64, n)
	for j := 0; j < d; j++ {
		mat.Col(col, j, x)
		mean[j] = floats.Sum(col) / float64(n)
	}
	centered := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			centered.Set(i, j, x.At(i, j)-mean[j])
		}
	}

	// Stage 3: unbiased covariance of the original samples. CovarianceMatrix
	// centers internally with the same column means, so cov matches centered.
	cov := mat.NewSymDense(d, nil)
	stat.CovarianceMatrix(cov, x, nil)

	// Stage 4: symmetric eigendecomposition. EigenSym yields real eigenvalues
	// in ascending order; reorder descending, stable in solver index.
	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return nil, Params{}, fmt.Errorf("Batch: %w", ErrEigenFailed)
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	order := make([]int, d)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return vals[order[a]] > vals[order[b]]
	})

	// Stage 5: transform columns vᵢ/√(λᵢ+ε), then whiten.
	w := mat.NewDense(d, d, nil)
	for k, idx := range order {
		scale := 1 / math.Sqrt(vals[idx]+opts.Epsilon)
		for i := 0; i < d; i++ {
			w.Set(i, k, vecs.At(i, idx)*scale)
		}
	}
	whitened := mat.NewDense(n, d, nil)
	whitened.Mul(centered, w)

	return whitened, Params{Mean: mean, Transform: w}, nil
}

// Image whitens a single height×width×channels image (image mode): spatial
// positions are the samples, channels are the features. img is flat,
// position-major, channel-minor (row-major H×W×C), and is returned in the
// same layout. The kernel is exactly Batch on the (H·W)×C reshape, so both
// call shapes are the same transform under the same axis assignment.
//
// img is read-only; the whitened result is a fresh slice.
//
// Errors: ErrBadShape on non-positive dims or a length mismatch, plus
// everything Batch can return.
func Image(img []float64, height, width, channels int, opts Options) ([]float64, Params, error) {
	if height <= 0 || width <= 0 || channels <= 0 {
		return nil, Params{}, fmt.Errorf("Image: %dx%dx%d: %w", height, width, channels, ErrBadShape)
	}
	positions := height * width
	if len(img) != positions*channels {
		return nil, Params{}, fmt.Errorf("Image: got %d values, want %d: %w", len(img), positions*channels, ErrBadShape)
	}

	buf := make([]float64, len(img))
	copy(buf, img)
	samples := mat.NewDense(positions, channels, buf)

	whitened, p, err := Batch(samples, opts)
	if err != nil {
		return nil, Params{}, fmt.Errorf("Image: %w", err)
	}

	// NewDense output is contiguous row-major, i.e. already H×W×C flat.
	out := make([]float64, len(img))
	copy(out, whitened.RawMatrix().Data)

	return out, p, nil
}

// scanFinite returns ErrNaNInf (with coordinates) for the first non-finite
// value in x. Fixed i→j scan order keeps the reported coordinate stable.
func scanFinite(x mat.Matrix) error {
	n, d := x.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			v := x.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("at (%d,%d): %w", i, j, ErrNaNInf)
			}
		}
	}

	return nil
}
