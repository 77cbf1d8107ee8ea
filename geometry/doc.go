// Package geometry loads fixed-layout simulation mesh snapshots into
// numeric grids keyed by run and (timestep, temperature, pressure) label.
//
// 🚀 What does geometry load?
//
//	Two file families produced by the simulation:
//	  • Input geometry:  root/run{1..N}/smesh.1.{1,2,3}.txt — three text
//	    tables per run, each contributing one 17×12×3 sheet (data rows are
//	    lines 6–209, whitespace-delimited, trailing column dropped).
//	  • Final geometry:  root/final_geometry/result_{80,140}_{t1..t5}_{p1..p3}_{run}
//	    — header line skipped, 612 three-value rows split into three equal
//	    chunks, each reshaped to one 17×12×3 sheet.
//
// Both families produce a Grid: a 3×17×12×3 block (sheet, row, col, channel)
// in flat row-major storage.
//
// ⚙️ Policy:
//
//   - Input files are mandatory: a missing or malformed smesh table aborts
//     the load with a sentinel error (ErrMissingRun / ErrMalformedFile).
//   - Final files are optional: absent (timestep, temperature, pressure, run)
//     combinations are skipped silently — absence, not failure. A present
//     but malformed file still aborts.
//   - Label sets (Timesteps, Temperatures, Pressures) are exposed in
//     lexicographic order. Downstream color/index assignment relies on this
//     ordering contract; it is deliberate, not accidental iteration order.
//
// See loader.go for the parsing rules and errors.go for the sentinel set.
package geometry
