package embed

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/mds"
)

var (
	// ErrEmptyInput indicates a point matrix with zero rows or columns.
	ErrEmptyInput = errors.New("embed: input must be non-empty")

	// ErrDegenerate indicates the scaling produced no positive eigenvalue;
	// all points are coincident and no 2D layout exists.
	ErrDegenerate = errors.New("embed: degenerate configuration")
)

// Project2D maps N points (rows of x) to N 2D coordinates via Torgerson
// scaling of the pairwise Euclidean distance matrix.
//
// The returned matrix is N×2: the two leading principal coordinates. When
// only one positive eigenvalue exists (collinear points) the second column
// is zero. Deterministic for identical input.
//
// Errors: ErrEmptyInput, ErrDegenerate.
func Project2D(x mat.Matrix) (*mat.Dense, error) {
	n, d := x.Dims()
	if n == 0 || d == 0 {
		return nil, fmt.Errorf("Project2D: %dx%d: %w", n, d, ErrEmptyInput)
	}

	// Pairwise Euclidean distances; SymDense mirrors (i,j) into (j,i).
	dm := mat.NewSymDense(n, nil)
	ri := make([]float64, d)
	rj := make([]float64, d)
	for i := 0; i < n; i++ {
		mat.Row(ri, i, x)
		for j := i + 1; j < n; j++ {
			mat.Row(rj, j, x)
			dm.SetSym(i, j, floats.Distance(ri, rj, 2))
		}
	}

	var coords mat.Dense
	k, _ := mds.TorgersonScaling(&coords, nil, dm)
	if k == 0 {
		return nil, fmt.Errorf("Project2D: %w", ErrDegenerate)
	}

	out := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		out.Set(i, 0, coords.At(i, 0))
		if k > 1 {
			out.Set(i, 1, coords.At(i, 1))
		}
	}

	return out, nil
}
