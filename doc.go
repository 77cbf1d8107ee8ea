// Package meshwhiten is an analysis toolkit for finite-element–style
// simulation output: load mesh geometry snapshots, decorrelate their
// channel data with PCA whitening, and chart the clustering structure
// over a 2D embedding.
//
// 🚀 What is meshwhiten?
//
//	A small, deterministic pipeline that brings together:
//		• Geometry loading: fixed-layout smesh text tables → numeric grids
//		• Pairing: join each run's input geometry with its final geometries,
//		  partitioned by timestep
//		• PCA whitening: center, decorrelate and variance-normalize channel
//		  data — batch mode for stacked run vectors, image mode for a single
//		  grid's channel distribution
//		• Embedding: classical MDS (Torgerson scaling) down to 2D
//		• Plotting: scatter charts colored by run, temperature and pressure
//
// ✨ Why choose meshwhiten?
//
//   - Deterministic – stable eigen ordering, lexicographic label indexing,
//     identical input always yields identical output
//   - Fail-fast – malformed files abort with sentinel errors; missing
//     optional snapshots are skipped silently, never invented
//   - Pure transforms – loaders and whitening never mutate their inputs;
//     every stage returns a fresh result collection
//
// Under the hood, everything is organized under focused subpackages:
//
//	geometry/ — smesh grid loading, run/label bookkeeping
//	pairing/  — input↔final geometry join, per-timestep records
//	whiten/   — the PCA whitening engine (batch & image modes)
//	embed/    — 2D projection via gonum's Torgerson MDS
//	plot/     — go-chart scatter rendering with a stable palette contract
//	pipeline/ — the end-to-end batch run, with zap progress logging
//	cmd/      — the meshwhiten CLI (cobra + viper)
//
// Quick sketch of the data flow:
//
//	smesh files ──► geometry ──► pairing ──► whiten ──► embed ──► plot
//
// Dive into examples/ for runnable scenarios and DESIGN.md for the
// reasoning behind the numeric policy.
//
//	go get github.com/katalvlaran/meshwhiten
package meshwhiten
