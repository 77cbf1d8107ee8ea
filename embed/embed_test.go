package embed_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/meshwhiten/embed"
)

// pairwise returns the Euclidean distance between rows i and j of x.
func pairwise(x mat.Matrix, i, j int) float64 {
	_, d := x.Dims()
	sum := 0.0
	for k := 0; k < d; k++ {
		diff := x.At(i, k) - x.At(j, k)
		sum += diff * diff
	}

	return math.Sqrt(sum)
}

// TestProject2D_EmptyInput verifies the shape guard.
func TestProject2D_EmptyInput(t *testing.T) {
	_, err := embed.Project2D(&mat.Dense{})
	assert.ErrorIs(t, err, embed.ErrEmptyInput)
}

// TestProject2D_RecoversPlanarConfiguration verifies that points that are
// exactly 2D-embeddable (a plane padded with zero dimensions) come back
// with their pairwise distances intact.
func TestProject2D_RecoversPlanarConfiguration(t *testing.T) {
	// A 2D square embedded in 5D by zero-padding.
	x := mat.NewDense(4, 5, []float64{
		0, 0, 0, 0, 0,
		1, 0, 0, 0, 0,
		1, 1, 0, 0, 0,
		0, 1, 0, 0, 0,
	})

	coords, err := embed.Project2D(x)
	require.NoError(t, err)
	n, c := coords.Dims()
	require.Equal(t, 4, n)
	require.Equal(t, 2, c)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			assert.InDelta(t, pairwise(x, i, j), pairwise(coords, i, j), 1e-6,
				"distance (%d,%d) must survive the projection", i, j)
		}
	}
}

// TestProject2D_CollinearPoints verifies the k=1 case: one positive
// eigenvalue, second coordinate zero.
func TestProject2D_CollinearPoints(t *testing.T) {
	x := mat.NewDense(3, 4, []float64{
		0, 0, 0, 0,
		1, 1, 1, 1,
		2, 2, 2, 2,
	})

	coords, err := embed.Project2D(x)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0, coords.At(i, 1), 1e-9, "second coordinate of point %d", i)
	}
	assert.InDelta(t, pairwise(x, 0, 2), pairwise(coords, 0, 2), 1e-6)
}

// TestProject2D_Degenerate verifies coincident points are rejected.
func TestProject2D_Degenerate(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{
		4, 4,
		4, 4,
		4, 4,
	})

	_, err := embed.Project2D(x)
	assert.ErrorIs(t, err, embed.ErrDegenerate)
}

// TestProject2D_Deterministic verifies identical input yields identical
// coordinates.
func TestProject2D_Deterministic(t *testing.T) {
	x := mat.NewDense(5, 3, []float64{
		0, 1, 2,
		3, 1, 0,
		2, 2, 2,
		5, 0, 1,
		1, 4, 1,
	})

	a, err := embed.Project2D(x)
	require.NoError(t, err)
	b, err := embed.Project2D(x)
	require.NoError(t, err)
	assert.True(t, mat.Equal(a, b))
}
