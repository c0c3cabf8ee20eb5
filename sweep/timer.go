package sweep

import (
	"fmt"
	"time"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
)

// Evaluator is the subset of *bgv.Evaluator the timer needs.
type Evaluator interface {
	AddNew(op0 *rlwe.Ciphertext, op1 rlwe.Operand) (*rlwe.Ciphertext, error)
	MulNew(op0 *rlwe.Ciphertext, op1 rlwe.Operand) (*rlwe.Ciphertext, error)
}

// Measurement is the outcome of one timed call.
type Measurement struct {
	Elapsed time.Duration
	Output  *rlwe.Ciphertext
}

// Milliseconds returns the elapsed time in fractional milliseconds.
func (m Measurement) Milliseconds() float64 {
	return float64(m.Elapsed.Nanoseconds()) / 1e6
}

// Timer measures single homomorphic calls on a monotonic clock.
type Timer struct {
	eval Evaluator
	now  func() time.Time
}

// NewTimer returns a Timer evaluating with eval.
func NewTimer(eval Evaluator) *Timer {
	return &Timer{eval: eval, now: time.Now}
}

// Time performs exactly one evaluation of op and reports how long it took.
func (t *Timer) Time(op Operation, in *Operands) (Measurement, error) {
	var lhs *rlwe.Ciphertext
	var rhs rlwe.Operand

	switch op.Order {
	case CipherCipher:
		lhs, rhs = in.Cipher1, in.Cipher2
	case CipherPlain:
		lhs, rhs = in.Cipher1, in.Plain2
	case PlainCipher:
		lhs, rhs = in.Cipher2, in.Plain1
	default:
		return Measurement{}, fmt.Errorf("%w: unknown operand order %v", ErrOperation, op.Order)
	}

	eval := t.eval.AddNew
	if op.Kind == Mul {
		eval = t.eval.MulNew
	}

	start := t.now()
	out, err := eval(lhs, rhs)
	end := t.now()

	if err != nil {
		return Measurement{}, fmt.Errorf("%w: %s: %v", ErrOperation, op.Name(), err)
	}

	return Measurement{Elapsed: end.Sub(start), Output: out}, nil
}
