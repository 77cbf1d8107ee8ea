package plot

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
)

// ErrNoPoints indicates an empty point set; there is nothing to render.
var ErrNoPoints = errors.New("plot: no points to render")

// dotWidth is the rendered marker size for every scatter series.
const dotWidth = 5.0

// Point is one 2D embedding coordinate tagged with its color class
// (a run id, temperature or pressure label).
type Point struct {
	X, Y  float64
	Class string
}

// ClassIndex returns the palette index of every class present in points:
// classes sorted lexicographically, indexed in that order. This is the
// documented ordering contract for color assignment.
func ClassIndex(points []Point) map[string]int {
	seen := make(map[string]bool, len(points))
	for _, p := range points {
		seen[p.Class] = true
	}
	classes := make([]string, 0, len(seen))
	for c := range seen {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	idx := make(map[string]int, len(classes))
	for i, c := range classes {
		idx[c] = i
	}

	return idx
}

// Scatter renders points as a PNG scatter chart to w: one dots-only series
// per class, colored by ClassIndex order, with a legend.
//
// Errors: ErrNoPoints for an empty set; renderer errors pass through.
func Scatter(title string, points []Point, w io.Writer) error {
	if len(points) == 0 {
		return fmt.Errorf("Scatter: %w", ErrNoPoints)
	}

	idx := ClassIndex(points)
	classes := make([]string, len(idx))
	for c, i := range idx {
		classes[i] = c
	}

	series := make([]chart.Series, 0, len(classes))
	for i, class := range classes {
		var xs, ys []float64
		for _, p := range points {
			if p.Class != class {
				continue
			}
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
		series = append(series, chart.ContinuousSeries{
			Name: class,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    dotWidth,
				DotColor:    chart.GetDefaultColor(i),
			},
			XValues: xs,
			YValues: ys,
		})
	}

	graph := chart.Chart{
		Title:  title,
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}
