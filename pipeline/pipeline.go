package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/meshwhiten/embed"
	"github.com/katalvlaran/meshwhiten/geometry"
	"github.com/katalvlaran/meshwhiten/pairing"
	"github.com/katalvlaran/meshwhiten/plot"
	"github.com/katalvlaran/meshwhiten/whiten"
)

// ErrBadConfig indicates a Config that cannot drive a run.
var ErrBadConfig = errors.New("pipeline: invalid config")

// Plot file-name parts; one chart per (timestep, coloring).
const (
	colorByRun         = "run"
	colorByTemperature = "temperature"
	colorByPressure    = "pressure"
)

// Config holds the run parameters the original script hard-coded.
type Config struct {
	// Root is the simulation output directory (run{N}/ and final_geometry/).
	Root string
	// OutDir receives the rendered PNG charts; created if absent.
	OutDir string
	// Runs is the number of simulation runs (run1..run{Runs}).
	Runs int
	// Epsilon is the whitening stabilization constant.
	Epsilon float64
}

// DefaultConfig returns the studied batch's parameters.
func DefaultConfig() Config {
	return Config{
		Root:    "data",
		OutDir:  "plots",
		Runs:    geometry.DefaultRuns,
		Epsilon: whiten.DefaultEpsilon,
	}
}

// validate rejects configs that cannot drive a run.
func (c Config) validate() error {
	if c.Root == "" || c.OutDir == "" {
		return fmt.Errorf("empty Root or OutDir: %w", ErrBadConfig)
	}
	if c.Runs < 1 {
		return fmt.Errorf("Runs=%d: %w", c.Runs, ErrBadConfig)
	}
	if !(c.Epsilon > 0) {
		return fmt.Errorf("Epsilon=%v: %w", c.Epsilon, ErrBadConfig)
	}

	return nil
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithLogger attaches a zap logger for stage progress; the default is a
// no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// Pipeline is a configured, reusable run driver. Zero shared mutable state:
// every Run builds fresh collections.
type Pipeline struct {
	cfg Config
	log *zap.Logger
}

// New validates cfg and builds a Pipeline.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	p := &Pipeline{cfg: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// WhitenedRecord pairs a source record with its independently whitened
// output grid and the parameters that produced it. The source Record's
// grids are untouched; Whitened is a fresh Grid.
type WhitenedRecord struct {
	pairing.Record
	Whitened *geometry.Grid
	Params   whiten.Params
}

// Summary is everything a Run produced, in memory.
type Summary struct {
	// InputWhitened is the batch-mode result: one whitened row per run,
	// ascending RunID order.
	InputWhitened *mat.Dense
	// InputParams is the (mean, transform) pair of the batch-mode call.
	InputParams whiten.Params
	// Records holds the image-mode results per timestep, in pairing order.
	Records map[geometry.Timestep][]WhitenedRecord
	// Plots lists the written chart files.
	Plots []string
}

// Run executes the full analysis. Fail fast: the first stage error aborts
// the run with no partial plots cleaned up or retried.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	lopts := geometry.Options{Runs: p.cfg.Runs}
	wopts := whiten.DefaultOptions()
	wopts.Epsilon = p.cfg.Epsilon

	inputs, err := geometry.LoadInputGeometry(p.cfg.Root, lopts)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	p.log.Info("loaded input geometry", zap.Int("runs", len(inputs)))

	finals, err := geometry.LoadFinalGeometry(p.cfg.Root, lopts)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	p.log.Info("loaded final geometry", zap.Int("runs_with_snapshots", len(finals)))
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	byTimestep, err := pairing.Build(inputs, finals)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	summary := &Summary{Records: make(map[geometry.Timestep][]WhitenedRecord)}

	// Batch mode: whiten the stacked flattened input geometries, runs ascending.
	runs := make([]geometry.RunID, 0, len(inputs))
	for run := range inputs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i] < runs[j] })
	stacked := mat.NewDense(len(runs), geometry.ValueCount, nil)
	for i, run := range runs {
		stacked.SetRow(i, inputs[run].Flatten())
	}
	summary.InputWhitened, summary.InputParams, err = whiten.Batch(stacked, wopts)
	if err != nil {
		return nil, fmt.Errorf("pipeline: input batch: %w", err)
	}
	p.log.Info("whitened input batch",
		zap.Int("samples", len(runs)),
		zap.Int("features", geometry.ValueCount))
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	// Image mode: whiten every final-geometry snapshot independently.
	for _, ts := range geometry.Timesteps() {
		recs := byTimestep[ts]
		out := make([]WhitenedRecord, 0, len(recs))
		for _, rec := range recs {
			flat, params, werr := whiten.Image(rec.Output.Flatten(),
				geometry.SheetCount*geometry.SheetRows, geometry.SheetCols, geometry.ChannelCount, wopts)
			if werr != nil {
				return nil, fmt.Errorf("pipeline: run%d %d_%s_%s: %w", rec.Run, rec.Timestep, rec.Temperature, rec.Pressure, werr)
			}
			grid, gerr := geometry.NewGrid(flat)
			if gerr != nil {
				return nil, fmt.Errorf("pipeline: %w", gerr)
			}
			out = append(out, WhitenedRecord{Record: rec, Whitened: grid, Params: params})
		}
		summary.Records[ts] = out
		p.log.Info("whitened final geometry", zap.Int("timestep", int(ts)), zap.Int("records", len(out)))
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	// Embed and plot per timestep.
	if err = os.MkdirAll(p.cfg.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	for _, ts := range geometry.Timesteps() {
		recs := summary.Records[ts]
		if len(recs) < 2 {
			p.log.Warn("too few records to embed", zap.Int("timestep", int(ts)), zap.Int("records", len(recs)))

			continue
		}
		features := mat.NewDense(len(recs), geometry.ValueCount, nil)
		for i, rec := range recs {
			features.SetRow(i, rec.Whitened.Flatten())
		}
		coords, eerr := embed.Project2D(features)
		if eerr != nil {
			return nil, fmt.Errorf("pipeline: timestep %d: %w", ts, eerr)
		}

		// Fixed coloring order; no map iteration.
		colorings := []struct {
			name  string
			class func(WhitenedRecord) string
		}{
			{colorByRun, func(r WhitenedRecord) string { return fmt.Sprintf("run%02d", r.Run) }},
			{colorByTemperature, func(r WhitenedRecord) string { return r.Temperature }},
			{colorByPressure, func(r WhitenedRecord) string { return r.Pressure }},
		}
		for _, c := range colorings {
			path, perr := p.renderScatter(ts, c.name, c.class, recs, coords)
			if perr != nil {
				return nil, perr
			}
			summary.Plots = append(summary.Plots, path)
		}
	}
	sort.Strings(summary.Plots)
	p.log.Info("pipeline complete", zap.Int("plots", len(summary.Plots)))

	return summary, nil
}

// renderScatter writes one colored scatter chart and returns its path.
func (p *Pipeline) renderScatter(ts geometry.Timestep, coloring string, class func(WhitenedRecord) string, recs []WhitenedRecord, coords *mat.Dense) (string, error) {
	points := make([]plot.Point, len(recs))
	for i, rec := range recs {
		points[i] = plot.Point{X: coords.At(i, 0), Y: coords.At(i, 1), Class: class(rec)}
	}

	path := filepath.Join(p.cfg.OutDir, fmt.Sprintf("scatter_%d_%s.png", ts, coloring))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("pipeline: %w", err)
	}
	defer f.Close()

	title := fmt.Sprintf("timestep %d by %s", ts, coloring)
	if err = plot.Scatter(title, points, f); err != nil {
		return "", fmt.Errorf("pipeline: %s: %w", path, err)
	}

	return path, nil
}
