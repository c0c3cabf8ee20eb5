// Package report turns sweep result logs into summaries, spreadsheets and
// JSON payloads.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/z3rotig4r/he_opbench/sweep"
)

// Log is a parsed result file.
type Log struct {
	Variant sweep.Variant
	Rows    []sweep.Row
}

// ReadLog parses a scalar or vector result log. Header lines may appear any
// number of times, as files written by older builds repeat them on every run.
func ReadLog(r io.Reader) (*Log, error) {
	out := &Log{}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		lineNo, _ := cr.FieldPos(0)

		variant, err := variantOf(len(fields))
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", lineNo, err)
		}
		if out.Variant == "" {
			out.Variant = variant
		} else if out.Variant != variant {
			return nil, fmt.Errorf("line %d: %d columns in a %s log", lineNo, len(fields), out.Variant)
		}

		if fields[0] == sweep.ScalarHeader[0] {
			continue
		}

		row, err := parseRow(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", lineNo, err)
		}
		out.Rows = append(out.Rows, row)
	}

	return out, nil
}

// ReadLogFile opens and parses path.
func ReadLogFile(path string) (*Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l, err := ReadLog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

func variantOf(columns int) (sweep.Variant, error) {
	switch columns {
	case len(sweep.ScalarHeader):
		return sweep.Scalar, nil
	case len(sweep.VectorHeader):
		return sweep.Vector, nil
	default:
		return "", fmt.Errorf("unexpected %d columns", columns)
	}
}

func parseRow(fields []string) (row sweep.Row, err error) {
	row.Operation = fields[0]
	if row.Degree, err = strconv.Atoi(fields[1]); err != nil {
		return row, fmt.Errorf("degree: %v", err)
	}
	if len(fields) == len(sweep.VectorHeader) {
		if row.VectorSize, err = strconv.Atoi(fields[2]); err != nil {
			return row, fmt.Errorf("vector size: %v", err)
		}
	}
	if row.Millis, err = strconv.ParseFloat(fields[len(fields)-1], 64); err != nil {
		return row, fmt.Errorf("time: %v", err)
	}
	return row, nil
}
