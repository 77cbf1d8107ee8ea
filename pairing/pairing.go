package pairing

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/meshwhiten/geometry"
)

// ErrNoInputGeometry indicates a final geometry referenced a run that has no
// input geometry. The join is mandatory; this is inconsistent data, not an
// optional absence.
var ErrNoInputGeometry = errors.New("pairing: final geometry run has no input geometry")

// Record associates one final-geometry snapshot with its run's input
// geometry and parsed label parts. Records are immutable: both grids are
// shared references into the loader maps and must not be written through.
type Record struct {
	Run         geometry.RunID
	Timestep    geometry.Timestep
	Temperature string
	Pressure    string
	Input       *geometry.Grid
	Output      *geometry.Grid
}

// Build joins the loader maps into per-timestep record slices.
//
// For every (run, label, output) entry in finals, the run's input geometry is
// attached and the record is filed under its timestep. Each slice is sorted
// ascending by (run, temperature, pressure) so downstream indexing and
// coloring are deterministic.
//
// Returns ErrNoInputGeometry (wrapped with the run id) if any final-geometry
// run is missing from inputs.
func Build(inputs map[geometry.RunID]*geometry.Grid, finals map[geometry.RunID]map[geometry.Label]*geometry.Grid) (map[geometry.Timestep][]Record, error) {
	out := make(map[geometry.Timestep][]Record, len(geometry.Timesteps()))
	for _, ts := range geometry.Timesteps() {
		out[ts] = nil
	}

	for run, byLabel := range finals {
		input, ok := inputs[run]
		if !ok {
			return nil, fmt.Errorf("run%d: %w", run, ErrNoInputGeometry)
		}
		for label, output := range byLabel {
			out[label.Timestep] = append(out[label.Timestep], Record{
				Run:         run,
				Timestep:    label.Timestep,
				Temperature: label.Temperature,
				Pressure:    label.Pressure,
				Input:       input,
				Output:      output,
			})
		}
	}

	// Map iteration above is unordered; fix the contract order here.
	for ts := range out {
		recs := out[ts]
		sort.Slice(recs, func(i, j int) bool {
			if recs[i].Run != recs[j].Run {
				return recs[i].Run < recs[j].Run
			}
			if recs[i].Temperature != recs[j].Temperature {
				return recs[i].Temperature < recs[j].Temperature
			}

			return recs[i].Pressure < recs[j].Pressure
		})
	}

	return out, nil
}
