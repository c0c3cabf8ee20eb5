package sweep

import (
	"fmt"
	"math/bits"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/ring"
	"github.com/tuneinsight/lattigo/v6/schemes/bgv"
)

// coeffModulusBits lists the coefficient-modulus prime sizes giving 128-bit
// classical security for each ring degree.
var coeffModulusBits = map[int][]int{
	1024:  {27},
	2048:  {54},
	4096:  {36, 36, 37},
	8192:  {43, 43, 44, 44, 44},
	16384: {48, 48, 48, 49, 49, 49, 49, 49, 49},
	32768: {55, 55, 55, 55, 55, 55, 55, 55, 55, 55, 55, 55, 55, 55, 56, 56},
}

// DefaultCoeffModulus returns the coefficient-modulus bit sizes for degree.
func DefaultCoeffModulus(degree int) ([]int, error) {
	logQ, ok := coeffModulusBits[degree]
	if !ok {
		return nil, fmt.Errorf("%w: no default coefficient modulus for degree %d", ErrUnsupportedParameters, degree)
	}
	return append([]int(nil), logQ...), nil
}

// BatchingPlaintextModulus returns the largest prime t < 2^bitSize with
// t = 1 mod 2*degree, which enables degree batching slots.
func BatchingPlaintextModulus(degree, bitSize int) (uint64, error) {
	if bitSize < 2 || bitSize > 60 {
		return 0, fmt.Errorf("%w: plaintext modulus of %d bits", ErrUnsupportedParameters, bitSize)
	}
	if degree < 2 || bits.OnesCount(uint(degree)) != 1 {
		return 0, fmt.Errorf("%w: degree %d is not a power of two", ErrUnsupportedParameters, degree)
	}

	nthRoot := uint64(2 * degree)
	for k := ((uint64(1) << bitSize) - 2) / nthRoot; k > 0; k-- {
		t := k*nthRoot + 1
		if bits.Len64(t) == bitSize && ring.IsPrime(t) {
			return t, nil
		}
		if bits.Len64(t) < bitSize {
			break
		}
	}

	return 0, fmt.Errorf("%w: no %d-bit batching prime for degree %d", ErrUnsupportedParameters, bitSize, degree)
}

// Context bundles the objects needed for one sweep iteration. It is built
// once per degree and dropped when the iteration ends.
type Context struct {
	Params    bgv.Parameters
	SecretKey *rlwe.SecretKey
	PublicKey *rlwe.PublicKey
	Encryptor *rlwe.Encryptor
	Evaluator *bgv.Evaluator
	Decryptor *rlwe.Decryptor
	Encoder   *bgv.Encoder
}

// NewContext derives BFV parameters for degree and instantiates the key
// pair, encryptor, evaluator, decryptor and encoder bound to them.
func NewContext(degree, plaintextBits int) (ctx *Context, err error) {
	logQ, err := DefaultCoeffModulus(degree)
	if err != nil {
		return nil, err
	}

	t, err := BatchingPlaintextModulus(degree, plaintextBits)
	if err != nil {
		return nil, err
	}

	// lattigo reports some invalid moduli chains by panicking
	defer func() {
		if r := recover(); r != nil {
			ctx = nil
			err = fmt.Errorf("%w: degree %d: %v", ErrUnsupportedParameters, degree, r)
		}
	}()

	params, err := bgv.NewParametersFromLiteral(bgv.ParametersLiteral{
		LogN:             bits.Len(uint(degree)) - 1,
		LogQ:             logQ,
		PlaintextModulus: t,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: degree %d: %v", ErrUnsupportedParameters, degree, err)
	}

	kgen := rlwe.NewKeyGenerator(params)
	sk, pk := kgen.GenKeyPairNew()

	return &Context{
		Params:    params,
		SecretKey: sk,
		PublicKey: pk,
		Encryptor: rlwe.NewEncryptor(params, pk),
		Evaluator: bgv.NewEvaluator(params, nil, true), // scale-invariant (BFV) multiplication
		Decryptor: rlwe.NewDecryptor(params, sk),
		Encoder:   bgv.NewEncoder(params),
	}, nil
}

// Degree returns the ring degree N.
func (c *Context) Degree() int {
	return c.Params.N()
}

// SlotCount returns the number of batching slots.
func (c *Context) SlotCount() int {
	return c.Params.MaxSlots()
}

// PlaintextModulus returns t.
func (c *Context) PlaintextModulus() uint64 {
	return c.Params.PlaintextModulus()
}

// Operands holds the encoded and encrypted inputs of one iteration.
type Operands struct {
	Plain1, Plain2   *rlwe.Plaintext
	Cipher1, Cipher2 *rlwe.Ciphertext
}

// Prepare encodes and encrypts the two value vectors.
func (c *Context) Prepare(values1, values2 []uint64) (*Operands, error) {
	if n := len(values1); n > c.SlotCount() || len(values2) > c.SlotCount() {
		return nil, fmt.Errorf("%w: vector of %d values exceeds %d slots", ErrUnsupportedParameters, n, c.SlotCount())
	}

	op := &Operands{}
	var err error

	if op.Plain1, err = c.encode(values1); err != nil {
		return nil, err
	}
	if op.Plain2, err = c.encode(values2); err != nil {
		return nil, err
	}
	if op.Cipher1, err = c.Encryptor.EncryptNew(op.Plain1); err != nil {
		return nil, fmt.Errorf("%w: encrypt: %v", ErrOperation, err)
	}
	if op.Cipher2, err = c.Encryptor.EncryptNew(op.Plain2); err != nil {
		return nil, fmt.Errorf("%w: encrypt: %v", ErrOperation, err)
	}

	return op, nil
}

func (c *Context) encode(values []uint64) (*rlwe.Plaintext, error) {
	pt := bgv.NewPlaintext(c.Params, c.Params.MaxLevel())
	if err := c.Encoder.Encode(values, pt); err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrOperation, err)
	}
	return pt, nil
}

// Decode decrypts ct and returns its first n slots.
func (c *Context) Decode(ct *rlwe.Ciphertext, n int) ([]uint64, error) {
	pt := c.Decryptor.DecryptNew(ct)
	values := make([]uint64, c.SlotCount())
	if err := c.Encoder.Decode(pt, values); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrOperation, err)
	}
	return values[:n], nil
}
