// Package geometry: core value types for mesh snapshots.
package geometry

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Grid shape constants — the single source of truth for snapshot geometry.
// Every smesh snapshot, input or final, is a SheetCount×SheetRows×SheetCols
// block of ChannelCount-valued nodes.
const (
	// SheetCount is the number of stacked 17×12 sheets per snapshot.
	SheetCount = 3

	// SheetRows is the number of node rows per sheet.
	SheetRows = 17

	// SheetCols is the number of node columns per sheet.
	SheetCols = 12

	// ChannelCount is the number of numeric channels per node.
	ChannelCount = 3
)

// PositionCount is the number of spatial positions in one Grid
// (SheetCount·SheetRows·SheetCols = 612).
const PositionCount = SheetCount * SheetRows * SheetCols

// ValueCount is the total number of scalars in one Grid
// (PositionCount·ChannelCount = 1836).
const ValueCount = PositionCount * ChannelCount

// RunID identifies one simulation instance. Runs are numbered from 1.
type RunID int

// Timestep is the simulation time index of a final-geometry snapshot.
type Timestep int

// The two timesteps at which final geometry is captured.
const (
	Timestep80  Timestep = 80
	Timestep140 Timestep = 140
)

// Label is the composite key of one final-geometry snapshot:
// timestep ∈ {80, 140}, temperature ∈ {t1..t5}, pressure ∈ {p1..p3}.
type Label struct {
	Timestep    Timestep
	Temperature string
	Pressure    string
}

// String renders the label in the on-disk file-name order: timestep,
// temperature, pressure.
func (l Label) String() string {
	return fmt.Sprintf("%d_%s_%s", l.Timestep, l.Temperature, l.Pressure)
}

// Canonical label sets. Kept sorted lexicographically (numerically for
// timesteps); accessors below return copies so callers cannot reorder them.
var (
	timesteps    = []Timestep{Timestep80, Timestep140}
	temperatures = []string{"t1", "t2", "t3", "t4", "t5"}
	pressures    = []string{"p1", "p2", "p3"}
)

// Timesteps returns the canonical timestep set in ascending order.
func Timesteps() []Timestep {
	out := make([]Timestep, len(timesteps))
	copy(out, timesteps)

	return out
}

// Temperatures returns the canonical temperature labels in lexicographic
// order. This ordering is a contract: palette/index assignment downstream
// depends on it.
func Temperatures() []string {
	out := make([]string, len(temperatures))
	copy(out, temperatures)
	sort.Strings(out)

	return out
}

// Pressures returns the canonical pressure labels in lexicographic order.
// Same ordering contract as Temperatures.
func Pressures() []string {
	out := make([]string, len(pressures))
	copy(out, pressures)
	sort.Strings(out)

	return out
}

// Grid is one snapshot: a SheetCount×SheetRows×SheetCols×ChannelCount block
// in flat row-major storage (sheet-major, channel-minor). A Grid is immutable
// by convention once returned from a loader or transform; none of the methods
// below mutate the receiver.
type Grid struct {
	data []float64 // len == ValueCount; index = ((s*SheetRows+r)*SheetCols+c)*ChannelCount+ch
}

// NewGrid builds a Grid from a flat slice of exactly ValueCount scalars laid
// out sheet-major, channel-minor. The slice is copied; the caller keeps
// ownership of data.
func NewGrid(data []float64) (*Grid, error) {
	if len(data) != ValueCount {
		return nil, fmt.Errorf("NewGrid: got %d values, want %d: %w", len(data), ValueCount, ErrBadShape)
	}
	buf := make([]float64, ValueCount)
	copy(buf, data)

	return &Grid{data: buf}, nil
}

// At returns the channel value at (sheet, row, col, channel).
// Out-of-range indices return ErrOutOfRange; At never panics.
func (g *Grid) At(sheet, row, col, ch int) (float64, error) {
	if sheet < 0 || sheet >= SheetCount ||
		row < 0 || row >= SheetRows ||
		col < 0 || col >= SheetCols ||
		ch < 0 || ch >= ChannelCount {
		return 0, fmt.Errorf("Grid.At(%d,%d,%d,%d): %w", sheet, row, col, ch, ErrOutOfRange)
	}

	return g.data[((sheet*SheetRows+row)*SheetCols+col)*ChannelCount+ch], nil
}

// Flatten returns a fresh copy of the grid's scalars in storage order
// (sheet-major, channel-minor). Mutating the returned slice does not affect
// the grid.
func (g *Grid) Flatten() []float64 {
	out := make([]float64, ValueCount)
	copy(out, g.data)

	return out
}

// ChannelMatrix returns the grid as a PositionCount×ChannelCount dense
// matrix: one row per spatial position, one column per channel. This is the
// sample/feature axis assignment used by image-mode whitening.
func (g *Grid) ChannelMatrix() *mat.Dense {
	// Storage is already position-major, channel-minor, so the flat buffer
	// is exactly the row-major layout mat.NewDense expects.
	return mat.NewDense(PositionCount, ChannelCount, g.Flatten())
}
