// Command report summarizes a result log and exports it to an xlsx workbook.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/z3rotig4r/he_opbench/report"
	"github.com/z3rotig4r/he_opbench/sweep"
)

func main() {
	in := flag.String("in", sweep.VectorLogPath, "result log to summarize")
	out := flag.String("out", "", "workbook path (default: <in> with .xlsx extension)")
	flag.Parse()

	if *out == "" {
		*out = strings.TrimSuffix(*in, ".csv") + ".xlsx"
	}

	l, err := report.ReadLogFile(*in)
	if err != nil {
		log.Fatalf("Failed to read log: %v", err)
	}
	digest, err := report.FileDigest(*in)
	if err != nil {
		log.Fatalf("Failed to hash log: %v", err)
	}

	stats := report.Summarize(l.Rows)

	fmt.Printf("📊 %s (%s, %d rows, blake3 %s)\n\n", *in, l.Variant, len(l.Rows), digest[:16])
	fmt.Printf("%-26s | %-8s | %-10s | %-7s | %-12s | %-12s | %-12s\n",
		"Operation", "Degree", "VectorSize", "Samples", "Mean (ms)", "Median (ms)", "StdDev (ms)")
	fmt.Println(strings.Repeat("-", 102))
	for _, s := range stats {
		fmt.Printf("%-26s | %-8d | %-10d | %-7d | %12.6f | %12.6f | %12.6f\n",
			s.Operation, s.Degree, s.VectorSize, s.Samples, s.Mean, s.Median, s.StdDev)
	}

	if err := report.WriteWorkbook(*out, l, stats, digest); err != nil {
		log.Fatalf("Failed to write workbook: %v", err)
	}
	fmt.Printf("\n✅ Workbook written to %s\n", *out)
}
