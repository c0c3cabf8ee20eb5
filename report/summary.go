package report

import (
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
	"golang.org/x/exp/maps"

	"github.com/z3rotig4r/he_opbench/sweep"
)

// Stat aggregates every sample of one (operation, degree, vector size) cell.
type Stat struct {
	Operation  string  `json:"operation"`
	Degree     int     `json:"poly_modulus_degree"`
	VectorSize int     `json:"vector_size,omitempty"`
	Samples    int     `json:"samples"`
	Mean       float64 `json:"mean_ms"`
	Median     float64 `json:"median_ms"`
	StdDev     float64 `json:"stddev_ms"`
	Min        float64 `json:"min_ms"`
	Max        float64 `json:"max_ms"`
}

type cell struct {
	op     string
	degree int
	size   int
}

// Summarize groups rows by cell, ordered by degree, vector size and the
// standard operation order.
func Summarize(rows []sweep.Row) []Stat {
	samples := make(map[cell][]float64)
	for _, r := range rows {
		k := cell{op: r.Operation, degree: r.Degree, size: r.VectorSize}
		samples[k] = append(samples[k], r.Millis)
	}

	keys := maps.Keys(samples)
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.degree != b.degree {
			return a.degree < b.degree
		}
		if a.size != b.size {
			return a.size < b.size
		}
		if ra, rb := opRank(a.op), opRank(b.op); ra != rb {
			return ra < rb
		}
		return a.op < b.op
	})

	out := make([]Stat, 0, len(keys))
	for _, k := range keys {
		data := stats.Float64Data(samples[k])
		s := Stat{Operation: k.op, Degree: k.degree, VectorSize: k.size, Samples: len(data)}
		// errors only occur on empty input
		s.Mean, _ = stats.Mean(data)
		s.Median, _ = stats.Median(data)
		s.StdDev, _ = stats.StandardDeviation(data)
		s.Min, _ = stats.Min(data)
		s.Max, _ = stats.Max(data)
		out = append(out, s)
	}
	return out
}

// opRank orders labels like the sweep does; unknown labels sort last.
func opRank(label string) int {
	base := strings.TrimSuffix(label, "_Scalar")
	for i, op := range sweep.StandardOperations() {
		if op.Name() == base {
			return i
		}
	}
	return len(sweep.StandardOperations())
}
