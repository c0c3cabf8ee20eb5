package sweep

import (
	"fmt"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
)

// Verifier checks operation outputs against plaintext arithmetic.
type Verifier struct {
	ctx           *Context
	first, second uint64
	n             int
}

// NewVerifier returns a verifier for outputs computed from n slots holding
// first and second.
func NewVerifier(ctx *Context, first, second uint64, n int) *Verifier {
	return &Verifier{ctx: ctx, first: first, second: second, n: n}
}

// Check decrypts out and returns an error describing the first slot that
// differs from the expected value. Decryption failures wrap ErrOperation.
func (v *Verifier) Check(op Operation, out *rlwe.Ciphertext) error {
	got, err := v.ctx.Decode(out, v.n)
	if err != nil {
		return err
	}

	want := op.Expected(v.first, v.second, v.ctx.PlaintextModulus())
	for i, x := range got {
		if x != want {
			return fmt.Errorf("%s at degree %d: slot %d = %d, want %d", op.Name(), v.ctx.Degree(), i, x, want)
		}
	}
	return nil
}
