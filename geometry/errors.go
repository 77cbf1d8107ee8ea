// Package geometry: sentinel error set.
// All loader failures return these sentinels, wrapped with file context via
// fmt.Errorf("...: %w", err) so callers can still match with errors.Is.
package geometry

import "errors"

var (
	// ErrMissingRun indicates a mandatory input-geometry file was absent.
	// Input files are required for every run in 1..Options.Runs; only
	// final-geometry files are optional.
	ErrMissingRun = errors.New("geometry: missing input geometry file")

	// ErrMalformedFile indicates a present file could not be parsed:
	// a non-numeric token, a short row, or a wrong row count.
	ErrMalformedFile = errors.New("geometry: malformed geometry file")

	// ErrBadShape indicates a value buffer does not match the fixed
	// SheetCount×SheetRows×SheetCols×ChannelCount grid shape.
	ErrBadShape = errors.New("geometry: value count does not match grid shape")

	// ErrOutOfRange indicates a grid index outside the fixed shape.
	ErrOutOfRange = errors.New("geometry: index out of range")

	// ErrBadOptions indicates nonsensical loader options (e.g. Runs < 1).
	ErrBadOptions = errors.New("geometry: invalid loader options")
)
