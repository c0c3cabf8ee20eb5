package sweep

import (
	"fmt"
	"math/bits"
	"os"

	"gopkg.in/yaml.v3"
)

// Variant distinguishes the single-value sweep from the vector-size sweep.
type Variant string

const (
	Scalar Variant = "scalar"
	Vector Variant = "vector"
)

const (
	ScalarLogPath = "seal_scalar_benchmark_log.csv"
	VectorLogPath = "seal_benchmark_log.csv"

	DefaultPlaintextBits = 20
)

var (
	ScalarHeader = []string{"Operation", "PolyModulusDegree", "Time(ms)"}
	VectorHeader = []string{"Operation", "PolyModulusDegree", "VectorSize", "Time(ms)"}

	defaultDegrees     = []int{1024, 2048, 4096, 8192, 16384}
	defaultVectorSizes = []int{1000, 10000, 100000, 1000000}
)

// Config describes one sweep. The zero value is not usable; start from
// DefaultScalarConfig or DefaultVectorConfig.
type Config struct {
	Variant     Variant     `yaml:"variant"`
	Degrees     []int       `yaml:"degrees"`
	VectorSizes []int       `yaml:"vector_sizes"`
	Operations  []Operation `yaml:"-"`

	// OperationNames, when set in a config file, replaces Operations.
	OperationNames []string `yaml:"operations"`

	// Operand values. The scalar variant encodes each as a one-element vector,
	// the vector variant fills every used slot with it.
	First  uint64 `yaml:"first"`
	Second uint64 `yaml:"second"`

	PlaintextBits int    `yaml:"plaintext_bits"`
	LogPath       string `yaml:"log_path"`

	// Verify decrypts every output and compares it with the plaintext result.
	Verify bool `yaml:"verify"`

	// SkipUnsupported skips degrees whose context cannot be built instead of
	// aborting the run.
	SkipUnsupported bool `yaml:"skip_unsupported"`
}

// DefaultScalarConfig reproduces the single-integer sweep.
func DefaultScalarConfig() Config {
	return Config{
		Variant:       Scalar,
		Degrees:       append([]int(nil), defaultDegrees...),
		Operations:    StandardOperations(),
		First:         7,
		Second:        3,
		PlaintextBits: DefaultPlaintextBits,
		LogPath:       ScalarLogPath,
	}
}

// DefaultVectorConfig reproduces the degree x vector-size sweep.
func DefaultVectorConfig() Config {
	return Config{
		Variant:       Vector,
		Degrees:       append([]int(nil), defaultDegrees...),
		VectorSizes:   append([]int(nil), defaultVectorSizes...),
		Operations:    StandardOperations(),
		First:         3,
		Second:        5,
		PlaintextBits: DefaultPlaintextBits,
		LogPath:       VectorLogPath,
	}
}

// LoadConfig overlays the YAML file at path on base. Fields absent from the
// file keep their base value.
func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := base
	cfg.OperationNames = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("%w: parsing %s: %v", ErrInvalidConfig, path, err)
	}

	if len(cfg.OperationNames) > 0 {
		ops := make([]Operation, 0, len(cfg.OperationNames))
		for _, name := range cfg.OperationNames {
			op, err := OperationByName(name)
			if err != nil {
				return base, err
			}
			ops = append(ops, op)
		}
		cfg.Operations = ops
	}

	return cfg, cfg.Validate()
}

// Header returns the CSV header for the configured variant.
func (c Config) Header() []string {
	if c.Variant == Vector {
		return VectorHeader
	}
	return ScalarHeader
}

// Validate checks the configuration before any context is built.
func (c Config) Validate() error {
	switch c.Variant {
	case Scalar:
	case Vector:
		if len(c.VectorSizes) == 0 {
			return fmt.Errorf("%w: vector sweep without vector sizes", ErrInvalidConfig)
		}
		for _, size := range c.VectorSizes {
			if size <= 0 {
				return fmt.Errorf("%w: vector size %d", ErrInvalidConfig, size)
			}
		}
	default:
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, c.Variant)
	}

	if len(c.Degrees) == 0 {
		return fmt.Errorf("%w: no polynomial degrees", ErrInvalidConfig)
	}
	for _, d := range c.Degrees {
		if d < 2 || bits.OnesCount(uint(d)) != 1 {
			return fmt.Errorf("%w: degree %d is not a power of two", ErrInvalidConfig, d)
		}
	}

	if len(c.Operations) == 0 {
		return fmt.Errorf("%w: no operations", ErrInvalidConfig)
	}

	if c.PlaintextBits < 2 || c.PlaintextBits > 60 {
		return fmt.Errorf("%w: plaintext modulus of %d bits", ErrInvalidConfig, c.PlaintextBits)
	}

	if c.LogPath == "" {
		return fmt.Errorf("%w: empty log path", ErrInvalidConfig)
	}

	return nil
}
