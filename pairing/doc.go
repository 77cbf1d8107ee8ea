// Package pairing joins each run's input geometry to its final geometries,
// producing flat, immutable records partitioned by timestep.
//
// The original analysis accumulated these pairs in nested mutable maps keyed
// by run and label; pairing replaces that bookkeeping with a pure function:
// Build consumes the two loader maps and returns per-timestep record slices
// in a deterministic (run, temperature, pressure) order. Records are never
// mutated after creation — whitening produces its own result collection.
//
// A final geometry whose run has no input geometry is a hard error
// (ErrNoInputGeometry): the join is mandatory, only snapshot files are
// optional.
package pairing
