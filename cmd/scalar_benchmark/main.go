// Command scalar_benchmark times the six BFV operations on single encoded
// integers for every polynomial degree and appends the rows to
// seal_scalar_benchmark_log.csv.
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

	cfg := sweep.DefaultScalarConfig()
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
		log.Fatalf("Scalar benchmark failed after %d rows: %v", sum.Rows, err)
	}
	if sum.Mismatches > 0 {
		log.Printf("⚠️  %d outputs failed verification", sum.Mismatches)
	}
}
