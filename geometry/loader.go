package geometry

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// File-layout constants for the smesh text tables.
const (
	// inputHeaderLines is the number of leading non-data lines in an input
	// table: data rows are lines 6–209 (1-indexed), so 5 lines are skipped.
	inputHeaderLines = 5

	// inputDataLines is the number of data rows read per input table
	// (SheetRows·SheetCols = 204, one sheet's worth).
	inputDataLines = SheetRows * SheetCols

	// inputColumns is the column count of an input data row; the trailing
	// column is discarded, leaving ChannelCount values.
	inputColumns = ChannelCount + 1

	// inputParts is the number of smesh.1.{part}.txt files per run, one
	// sheet each.
	inputParts = SheetCount

	// finalHeaderLines is the number of leading lines skipped in a
	// final-geometry file.
	finalHeaderLines = 1

	// finalDataLines is the body row count of a final-geometry file: three
	// equal chunks of one sheet each (PositionCount = 612 rows total).
	finalDataLines = PositionCount

	// finalColumns is the column count of a final-geometry body row.
	finalColumns = ChannelCount

	// finalDir is the subdirectory holding final-geometry files.
	finalDir = "final_geometry"
)

// Options configures the loaders.
//
// Fields:
//   - Runs — number of simulation runs to load; run directories are
//     run1..run{Runs}. Must be >= 1.
type Options struct {
	Runs int
}

// DefaultRuns is the run count of the studied simulation batch.
const DefaultRuns = 64

// DefaultOptions returns the loader defaults (Runs = DefaultRuns).
func DefaultOptions() Options {
	return Options{Runs: DefaultRuns}
}

// validate rejects nonsensical options with ErrBadOptions.
func (o Options) validate() error {
	if o.Runs < 1 {
		return fmt.Errorf("Runs=%d: %w", o.Runs, ErrBadOptions)
	}

	return nil
}

// LoadInputGeometry reads the input geometry of every run under root and
// returns one Grid per RunID.
//
// Layout:
//
//	root/run{1..Runs}/smesh.1.{1,2,3}.txt
//
// Each of the three files contributes one 17×12×3 sheet: data rows are lines
// 6–209 (1-indexed), whitespace-delimited, four columns with the trailing
// column dropped. Input files are mandatory — a missing file returns
// ErrMissingRun, a malformed one ErrMalformedFile; both abort the whole load
// (fail fast, no partial result).
func LoadInputGeometry(root string, opts Options) (map[RunID]*Grid, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("LoadInputGeometry: %w", err)
	}

	out := make(map[RunID]*Grid, opts.Runs)
	buf := make([]float64, 0, ValueCount)
	for run := 1; run <= opts.Runs; run++ {
		buf = buf[:0]
		for part := 1; part <= inputParts; part++ {
			path := filepath.Join(root, fmt.Sprintf("run%d", run), fmt.Sprintf("smesh.1.%d.txt", part))
			sheet, err := readInputSheet(path)
			if err != nil {
				return nil, fmt.Errorf("LoadInputGeometry: %w", err)
			}
			buf = append(buf, sheet...)
		}
		g, err := NewGrid(buf)
		if err != nil {
			return nil, fmt.Errorf("LoadInputGeometry: run%d: %w", run, err)
		}
		out[RunID(run)] = g
	}

	return out, nil
}

// LoadFinalGeometry reads every present final-geometry snapshot under root
// and returns them keyed by RunID, then Label.
//
// Layout:
//
//	root/final_geometry/result_{80,140}_{t1..t5}_{p1..p3}_{run}
//
// Combinations without a file are simply absent from the result — skipped
// silently, never an error. A present but malformed file aborts with
// ErrMalformedFile. Runs with no snapshot at all do not appear in the map.
func LoadFinalGeometry(root string, opts Options) (map[RunID]map[Label]*Grid, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("LoadFinalGeometry: %w", err)
	}

	out := make(map[RunID]map[Label]*Grid)
	for run := 1; run <= opts.Runs; run++ {
		for _, ts := range timesteps {
			for _, temp := range temperatures {
				for _, press := range pressures {
					label := Label{Timestep: ts, Temperature: temp, Pressure: press}
					path := filepath.Join(root, finalDir, fmt.Sprintf("result_%s_%d", label, run))
					g, err := readFinalGrid(path)
					if err != nil {
						if os.IsNotExist(err) {
							continue // optional snapshot: absence, not failure
						}

						return nil, fmt.Errorf("LoadFinalGeometry: %w", err)
					}
					if out[RunID(run)] == nil {
						out[RunID(run)] = make(map[Label]*Grid)
					}
					out[RunID(run)][label] = g
				}
			}
		}
	}

	return out, nil
}

// readInputSheet parses one smesh.1.{part}.txt table into a flat sheet of
// SheetRows·SheetCols·ChannelCount scalars. Lines beyond the fixed data range
// are ignored, matching the fixed-line-range read of the original layout.
func readInputSheet(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrMissingRun)
		}

		return nil, err
	}
	defer f.Close()

	sheet := make([]float64, 0, inputDataLines*ChannelCount)
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		if line <= inputHeaderLines {
			continue
		}
		if line > inputHeaderLines+inputDataLines {
			break
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != inputColumns {
			return nil, fmt.Errorf("%s:%d: got %d columns, want %d: %w", path, line, len(fields), inputColumns, ErrMalformedFile)
		}
		// Trailing column is bookkeeping output, not channel data: drop it.
		for _, tok := range fields[:ChannelCount] {
			v, perr := strconv.ParseFloat(tok, 64)
			if perr != nil {
				return nil, fmt.Errorf("%s:%d: %q: %w", path, line, tok, ErrMalformedFile)
			}
			sheet = append(sheet, v)
		}
	}
	if err = sc.Err(); err != nil {
		return nil, err
	}
	if line < inputHeaderLines+inputDataLines {
		return nil, fmt.Errorf("%s: got %d lines, want at least %d: %w", path, line, inputHeaderLines+inputDataLines, ErrMalformedFile)
	}

	return sheet, nil
}

// readFinalGrid parses one final-geometry file into a full Grid: header line
// skipped, exactly finalDataLines three-value rows, split into three equal
// sheet chunks by row order. Returns the raw os.Open error (unwrapped) when
// the file does not exist so callers can distinguish absence from damage.
func readFinalGrid(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	values := make([]float64, 0, ValueCount)
	sc := bufio.NewScanner(f)
	line, rows := 0, 0
	for sc.Scan() {
		line++
		if line <= finalHeaderLines {
			continue
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue // tolerate trailing blank lines
		}
		rows++
		if rows > finalDataLines {
			return nil, fmt.Errorf("%s: more than %d data rows: %w", path, finalDataLines, ErrMalformedFile)
		}
		fields := strings.Fields(text)
		if len(fields) != finalColumns {
			return nil, fmt.Errorf("%s:%d: got %d columns, want %d: %w", path, line, len(fields), finalColumns, ErrMalformedFile)
		}
		for _, tok := range fields {
			v, perr := strconv.ParseFloat(tok, 64)
			if perr != nil {
				return nil, fmt.Errorf("%s:%d: %q: %w", path, line, tok, ErrMalformedFile)
			}
			values = append(values, v)
		}
	}
	if err = sc.Err(); err != nil {
		return nil, err
	}
	if rows != finalDataLines {
		return nil, fmt.Errorf("%s: got %d data rows, want %d: %w", path, rows, finalDataLines, ErrMalformedFile)
	}

	return NewGrid(values)
}
