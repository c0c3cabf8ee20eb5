package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
)

// Combination identifies one sweep iteration.
type Combination struct {
	Degree     int
	VectorSize int
}

// Summary describes a finished (or aborted) run.
type Summary struct {
	RunID      uuid.UUID
	Rows       int
	Skipped    []Combination
	Mismatches int
}

// Driver runs a parameter sweep and logs one row per timed operation.
type Driver struct {
	cfg    Config
	out    *Logger
	stdout io.Writer
	logger *log.Logger
}

// NewDriver validates cfg and returns a driver writing rows to out and
// progress lines to stdout. A nil logger uses the standard logger.
func NewDriver(cfg Config, out *Logger, stdout io.Writer, logger *log.Logger) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: nil result logger", ErrInvalidConfig)
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Driver{cfg: cfg, out: out, stdout: stdout, logger: logger}, nil
}

// Run executes the sweep. Rows written before a failure stay in the log.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	sum := Summary{RunID: uuid.New()}
	d.logger.Printf("run %s: %s sweep over degrees %v", sum.RunID, d.cfg.Variant, d.cfg.Degrees)

	for _, degree := range d.cfg.Degrees {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		hctx, err := NewContext(degree, d.cfg.PlaintextBits)
		if err != nil {
			if d.cfg.SkipUnsupported && errors.Is(err, ErrUnsupportedParameters) {
				d.logger.Printf("⚠️  skipping degree %d: %v", degree, err)
				sum.Skipped = append(sum.Skipped, Combination{Degree: degree})
				continue
			}
			return sum, err
		}

		if d.cfg.Variant == Scalar {
			if err := d.iterate(hctx, 1, &sum); err != nil {
				return sum, err
			}
			fmt.Fprintf(d.stdout, " Scalar Done: Degree = %d\n", degree)
			continue
		}

		for _, size := range d.cfg.VectorSizes {
			if err := ctx.Err(); err != nil {
				return sum, err
			}
			if size > hctx.SlotCount() {
				sum.Skipped = append(sum.Skipped, Combination{Degree: degree, VectorSize: size})
				continue
			}
			if err := d.iterate(hctx, size, &sum); err != nil {
				return sum, err
			}
			fmt.Fprintf(d.stdout, "✅ Done: Degree=%d, VectorSize=%d\n", degree, size)
		}
	}

	if d.cfg.Variant == Scalar {
		fmt.Fprintf(d.stdout, "\n Scalar Benchmarking complete. Check %s\n", d.out.Path())
	} else {
		fmt.Fprintf(d.stdout, "\n🎉 Benchmarking complete. Check %s\n", d.out.Path())
	}
	return sum, nil
}

// Execute opens the configured log, runs the sweep and closes the log on
// every exit path.
func Execute(ctx context.Context, cfg Config, stdout io.Writer, logger *log.Logger) (sum Summary, err error) {
	if err := cfg.Validate(); err != nil {
		return sum, err
	}

	out, err := OpenLog(cfg.LogPath, cfg.Variant, cfg.Header())
	if err != nil {
		return sum, err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	d, err := NewDriver(cfg, out, stdout, logger)
	if err != nil {
		return sum, err
	}
	return d.Run(ctx)
}

// iterate encodes the operands into size slots and times every operation.
func (d *Driver) iterate(hctx *Context, size int, sum *Summary) error {
	in, err := hctx.Prepare(fill(size, d.cfg.First), fill(size, d.cfg.Second))
	if err != nil {
		return err
	}

	var verifier *Verifier
	if d.cfg.Verify {
		verifier = NewVerifier(hctx, d.cfg.First, d.cfg.Second, size)
	}

	timer := NewTimer(hctx.Evaluator)
	for _, op := range d.cfg.Operations {
		m, err := timer.Time(op, in)
		if err != nil {
			return err
		}

		row := Row{Operation: op.Name(), Degree: hctx.Degree(), Millis: m.Milliseconds()}
		if d.cfg.Variant == Scalar {
			row.Operation += "_Scalar"
		} else {
			row.VectorSize = size
		}
		if err := d.out.Write(row); err != nil {
			return err
		}
		sum.Rows++

		if verifier != nil {
			if err := verifier.Check(op, m.Output); err != nil {
				if !errors.Is(err, ErrOperation) {
					sum.Mismatches++
				}
				d.logger.Printf("❌ verification: %v", err)
			}
		}
	}
	return nil
}

func fill(n int, v uint64) []uint64 {
	values := make([]uint64, n)
	for i := range values {
		values[i] = v
	}
	return values
}
