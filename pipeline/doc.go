// Package pipeline runs the whole analysis end to end: load geometry, pair
// runs, whiten, embed, plot.
//
// Stages (single-threaded, synchronous, in order):
//
//	1. geometry.LoadInputGeometry / geometry.LoadFinalGeometry
//	2. pairing.Build — per-timestep records
//	3. whiten.Batch — batch-mode whitening over the stacked flattened input geometries
//	4. whiten.Image — image-mode whitening per final-geometry snapshot, into a separate
//	   result collection (source records are never mutated)
//	5. embed.Project2D + plot.Scatter — per timestep, three charts colored
//	   by run, temperature and pressure
//
// The context is checked between stages only; there are no suspension
// points inside a stage. Progress is reported through an optional zap
// logger (no-op by default). All results are returned in the Summary;
// nothing persists beyond the rendered PNG files.
package pipeline
