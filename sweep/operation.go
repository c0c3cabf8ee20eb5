package sweep

import (
	"fmt"
	"math/bits"
)

// Kind is the homomorphic primitive applied by an Operation.
type Kind int

const (
	Add Kind = iota
	Mul
)

func (k Kind) String() string {
	switch k {
	case Add:
		return "Add"
	case Mul:
		return "Mul"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Order selects which operands are fed to the evaluator.
type Order int

const (
	// CipherCipher evaluates enc1 op enc2.
	CipherCipher Order = iota
	// CipherPlain evaluates enc1 op plain2.
	CipherPlain
	// PlainCipher evaluates enc2 op plain1, the reversed-operand variant.
	PlainCipher
)

func (o Order) String() string {
	switch o {
	case CipherCipher:
		return "Cipher+Cipher"
	case CipherPlain:
		return "Cipher+Plain"
	case PlainCipher:
		return "Plain+Cipher"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// Operation is one timed homomorphic call.
type Operation struct {
	Order Order
	Kind  Kind
}

// Name is the operation label written to the result log, e.g. "Cipher+Plain_Mul".
func (op Operation) Name() string {
	return op.Order.String() + "_" + op.Kind.String()
}

// StandardOperations returns the six operations in logging order.
func StandardOperations() []Operation {
	return []Operation{
		{CipherCipher, Add},
		{CipherCipher, Mul},
		{CipherPlain, Add},
		{CipherPlain, Mul},
		{PlainCipher, Add},
		{PlainCipher, Mul},
	}
}

// OperationByName looks up one of the standard operations by its log label.
func OperationByName(name string) (Operation, error) {
	for _, op := range StandardOperations() {
		if op.Name() == name {
			return op, nil
		}
	}
	return Operation{}, fmt.Errorf("%w: unknown operation %q", ErrInvalidConfig, name)
}

// Expected returns the plaintext result of op applied slot-wise to the first
// and second operand values, modulo t.
func (op Operation) Expected(first, second, t uint64) uint64 {
	a, b := first%t, second%t
	if op.Order == PlainCipher {
		a, b = b, a
	}
	switch op.Kind {
	case Mul:
		hi, lo := bits.Mul64(a, b)
		_, rem := bits.Div64(hi, lo, t)
		return rem
	default:
		return (a + b) % t
	}
}
