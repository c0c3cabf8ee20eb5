package sweep

import "errors"

// Error kinds returned by the sweep. Callers match them with errors.Is to
// decide between skipping a combination and aborting the run.
var (
	// ErrUnsupportedParameters is returned when a degree, modulus chain or
	// plaintext modulus cannot be instantiated.
	ErrUnsupportedParameters = errors.New("unsupported parameter combination")

	// ErrOperation is returned when encoding, encryption or evaluation fails
	// for an otherwise valid context.
	ErrOperation = errors.New("homomorphic operation failed")

	// ErrIO is returned when the result log cannot be opened or written.
	ErrIO = errors.New("result log i/o failure")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid sweep configuration")
)
