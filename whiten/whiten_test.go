package whiten_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/meshwhiten/whiten"
)

// randomSamples builds a deterministic, well-conditioned N×D sample matrix
// from a fixed seed. Not whitened, not centered.
func randomSamples(n, d int, seed int64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	x := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			x.Set(i, j, 10*rng.NormFloat64()+float64(j))
		}
	}

	return x
}

// columnStats returns the unbiased mean and variance of column j over all
// rows of x.
func columnStats(x *mat.Dense, j int) (mean, variance float64) {
	n, _ := x.Dims()
	col := make([]float64, n)
	mat.Col(col, j, x)

	return stat.Mean(col, nil), stat.Variance(col, nil)
}

// TestBatch_OptionValidation verifies that a nonsensical epsilon is rejected
// before any computation.
func TestBatch_OptionValidation(t *testing.T) {
	x := randomSamples(5, 2, 1)
	for _, eps := range []float64{0, -1e-5, math.Inf(1), math.NaN()} {
		opts := whiten.DefaultOptions()
		opts.Epsilon = eps
		_, _, err := whiten.Batch(x, opts)
		assert.ErrorIs(t, err, whiten.ErrBadEpsilon, "epsilon=%v must be rejected", eps)
	}
}

// TestBatch_ShapeValidation verifies the fail-fast input guards.
func TestBatch_ShapeValidation(t *testing.T) {
	opts := whiten.DefaultOptions()

	_, _, err := whiten.Batch(&mat.Dense{}, opts)
	assert.ErrorIs(t, err, whiten.ErrEmptyInput, "zero-size matrix must error")

	_, _, err = whiten.Batch(mat.NewDense(1, 3, []float64{1, 2, 3}), opts)
	assert.ErrorIs(t, err, whiten.ErrTooFewSamples, "a single sample cannot estimate covariance")
}

// TestBatch_NaNPolicy verifies both sides of the numeric policy: silent
// propagation by default, ErrNaNInf under validation.
func TestBatch_NaNPolicy(t *testing.T) {
	x := randomSamples(6, 3, 2)
	x.Set(2, 1, math.NaN())

	// Default: no guard, NaN propagates into the output.
	out, _, err := whiten.Batch(x, whiten.DefaultOptions())
	require.NoError(t, err, "default policy must not reject NaN")
	n, d := out.Dims()
	sawNaN := false
	for i := 0; i < n && !sawNaN; i++ {
		for j := 0; j < d; j++ {
			if math.IsNaN(out.At(i, j)) {
				sawNaN = true

				break
			}
		}
	}
	assert.True(t, sawNaN, "NaN must propagate silently under the default policy")

	// Opt-in guard: reject up front.
	opts := whiten.DefaultOptions()
	opts.ValidateNaNInf = true
	_, _, err = whiten.Batch(x, opts)
	assert.ErrorIs(t, err, whiten.ErrNaNInf, "validation must reject NaN input")
}

// TestBatch_ZeroMean verifies that every whitened column has mean ≈ 0.
func TestBatch_ZeroMean(t *testing.T) {
	x := randomSamples(40, 5, 3)

	out, params, err := whiten.Batch(x, whiten.DefaultOptions())
	require.NoError(t, err)

	_, d := out.Dims()
	for j := 0; j < d; j++ {
		m, _ := columnStats(out, j)
		assert.InDelta(t, 0, m, 1e-10, "column %d mean", j)
	}
	assert.Len(t, params.Mean, d, "params mean length")
}

// TestBatch_IdentityCovariance verifies that for D < N the covariance of the
// whitened output is the identity up to the ε stabilization term.
func TestBatch_IdentityCovariance(t *testing.T) {
	x := randomSamples(60, 4, 4)

	out, _, err := whiten.Batch(x, whiten.DefaultOptions())
	require.NoError(t, err)

	cov := mat.NewSymDense(4, nil)
	stat.CovarianceMatrix(cov, out, nil)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, cov.At(i, j), 1e-3, "whitened covariance (%d,%d)", i, j)
		}
	}
}

// TestBatch_Deterministic verifies bitwise-identical output for identical
// input and ε.
func TestBatch_Deterministic(t *testing.T) {
	x := randomSamples(30, 6, 5)
	opts := whiten.DefaultOptions()

	a, pa, err := whiten.Batch(x, opts)
	require.NoError(t, err)
	b, pb, err := whiten.Batch(x, opts)
	require.NoError(t, err)

	assert.True(t, mat.Equal(a, b), "whitened outputs must be identical")
	assert.Equal(t, pa.Mean, pb.Mean, "means must be identical")
	assert.True(t, mat.Equal(pa.Transform, pb.Transform), "transforms must be identical")
}

// TestBatch_DoesNotMutateInput verifies the input matrix is read-only.
func TestBatch_DoesNotMutateInput(t *testing.T) {
	x := randomSamples(20, 3, 6)
	snapshot := mat.DenseCopyOf(x)

	_, _, err := whiten.Batch(x, whiten.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, mat.Equal(snapshot, x), "input must not be mutated")
}

// TestBatch_RankDeficient verifies the D > N−1 case goes through on ε alone:
// no error, and the surviving axes are still centered.
func TestBatch_RankDeficient(t *testing.T) {
	// 3 samples × 8 features: covariance rank <= 2.
	x := randomSamples(3, 8, 7)

	out, _, err := whiten.Batch(x, whiten.DefaultOptions())
	require.NoError(t, err, "rank-deficient covariance must not error")
	for j := 0; j < 8; j++ {
		m, _ := columnStats(out, j)
		assert.InDelta(t, 0, m, 1e-9, "column %d mean", j)
	}
}

// TestImage_ShapeValidation verifies the image-mode guards.
func TestImage_ShapeValidation(t *testing.T) {
	opts := whiten.DefaultOptions()

	_, _, err := whiten.Image(nil, 0, 4, 3, opts)
	assert.ErrorIs(t, err, whiten.ErrBadShape, "non-positive height must error")

	_, _, err = whiten.Image(make([]float64, 10), 2, 2, 3, opts)
	assert.ErrorIs(t, err, whiten.ErrBadShape, "length mismatch must error")
}

// TestImage_MatchesBatch verifies the two call shapes are the same transform:
// image mode equals batch mode on the (H·W)×C reshape.
func TestImage_MatchesBatch(t *testing.T) {
	const h, w, c = 6, 4, 3
	img := make([]float64, h*w*c)
	for i := range img {
		img[i] = math.Sin(float64(i)*0.7) + float64(i%c)
	}
	opts := whiten.DefaultOptions()

	flat, ip, err := whiten.Image(img, h, w, c, opts)
	require.NoError(t, err)

	batched, bp, err := whiten.Batch(mat.NewDense(h*w, c, append([]float64(nil), img...)), opts)
	require.NoError(t, err)

	for p := 0; p < h*w; p++ {
		for ch := 0; ch < c; ch++ {
			assert.Equal(t, batched.At(p, ch), flat[p*c+ch], "position %d channel %d", p, ch)
		}
	}
	assert.Equal(t, bp.Mean, ip.Mean, "params means must match")
	assert.True(t, mat.Equal(bp.Transform, ip.Transform), "params transforms must match")
}

// TestImage_ArangeScenario runs the concrete reference scenario: a 17×12×3
// image filled with 0..611 in storage order. The three channels are affine
// copies of each other, so the covariance has one dominant eigenvalue and
// two ε-suppressed ones: the leading whitened channel carries variance ≈ 1,
// the degenerate channels collapse to ≈ 0.
func TestImage_ArangeScenario(t *testing.T) {
	const h, w, c = 17, 12, 3
	img := make([]float64, h*w*c)
	for i := range img {
		img[i] = float64(i)
	}

	flat, _, err := whiten.Image(img, h, w, c, whiten.DefaultOptions())
	require.NoError(t, err)

	out := mat.NewDense(h*w, c, flat)
	_, leading := columnStats(out, 0)
	assert.InDelta(t, 1.0, leading, 1e-3, "leading whitened channel variance")
	for ch := 1; ch < c; ch++ {
		_, v := columnStats(out, ch)
		assert.Less(t, v, 1e-3, "ε-suppressed channel %d variance", ch)
	}
}

// TestImage_WellConditionedUnitVariance verifies that with a non-degenerate
// channel covariance every whitened channel's variance is ≈ 1.
func TestImage_WellConditionedUnitVariance(t *testing.T) {
	const h, w, c = 17, 12, 3
	rng := rand.New(rand.NewSource(8))
	img := make([]float64, h*w*c)
	for i := range img {
		img[i] = 5*rng.NormFloat64() + float64(i%c)*2
	}

	flat, _, err := whiten.Image(img, h, w, c, whiten.DefaultOptions())
	require.NoError(t, err)

	out := mat.NewDense(h*w, c, flat)
	for ch := 0; ch < c; ch++ {
		m, v := columnStats(out, ch)
		assert.InDelta(t, 0, m, 1e-10, "channel %d mean", ch)
		assert.InDelta(t, 1.0, v, 1e-3, "channel %d variance", ch)
	}
}

// TestImage_ConstantImage verifies the all-constant edge case: centered data
// is all zero, so the output is all zero and no error is raised.
func TestImage_ConstantImage(t *testing.T) {
	const h, w, c = 17, 12, 3
	img := make([]float64, h*w*c)
	for i := range img {
		img[i] = 7.5
	}

	flat, _, err := whiten.Image(img, h, w, c, whiten.DefaultOptions())
	require.NoError(t, err, "constant image must not error")
	for i, v := range flat {
		assert.InDelta(t, 0, v, 1e-9, "value %d", i)
	}
}

// TestParams_UnwhitenRoundTrip verifies the inverse transform reconstructs
// the original samples.
func TestParams_UnwhitenRoundTrip(t *testing.T) {
	x := randomSamples(50, 4, 9)

	out, params, err := whiten.Batch(x, whiten.DefaultOptions())
	require.NoError(t, err)

	back, err := params.Unwhiten(out)
	require.NoError(t, err)
	n, d := x.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			assert.InDelta(t, x.At(i, j), back.At(i, j), 1e-8, "reconstructed (%d,%d)", i, j)
		}
	}
}

// TestParams_UnwhitenDimensionMismatch verifies the feature-count guard.
func TestParams_UnwhitenDimensionMismatch(t *testing.T) {
	x := randomSamples(10, 3, 10)
	_, params, err := whiten.Batch(x, whiten.DefaultOptions())
	require.NoError(t, err)

	_, err = params.Unwhiten(mat.NewDense(2, 5, make([]float64, 10)))
	assert.ErrorIs(t, err, whiten.ErrDimensionMismatch)
}
