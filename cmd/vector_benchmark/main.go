// Command vector_benchmark times the six BFV operations on constant vectors
// for every (polynomial degree, vector size) pair that fits in the batching
// slots and appends the rows to seal_benchmark_log.csv.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/z3rotig4r/he_opbench/sweep"
)

func main() {
	configPath := flag.String("config", "", "optional YAML file overriding the sweep lists")
	flag.Parse()

	cfg := sweep.DefaultVectorConfig()
	if *configPath != "" {
		var err error
		if cfg, err = sweep.LoadConfig(*configPath, cfg); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, err := sweep.Execute(ctx, cfg, os.Stdout, log.Default())
	if err != nil {
		log.Fatalf("Vector benchmark failed after %d rows: %v", sum.Rows, err)
	}
	for _, c := range sum.Skipped {
		log.Printf("Skipped Degree=%d, VectorSize=%d (exceeds slot count)", c.Degree, c.VectorSize)
	}
	if sum.Mismatches > 0 {
		log.Printf("⚠️  %d outputs failed verification", sum.Mismatches)
	}
}
