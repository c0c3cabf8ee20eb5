package sweep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigs(t *testing.T) {
	scalar := DefaultScalarConfig()
	require.NoError(t, scalar.Validate())
	assert.Equal(t, []int{1024, 2048, 4096, 8192, 16384}, scalar.Degrees)
	assert.Equal(t, ScalarLogPath, scalar.LogPath)
	assert.Equal(t, ScalarHeader, scalar.Header())
	assert.Equal(t, uint64(7), scalar.First)
	assert.Equal(t, uint64(3), scalar.Second)

	vector := DefaultVectorConfig()
	require.NoError(t, vector.Validate())
	assert.Equal(t, []int{1000, 10000, 100000, 1000000}, vector.VectorSizes)
	assert.Equal(t, VectorLogPath, vector.LogPath)
	assert.Equal(t, VectorHeader, vector.Header())
	assert.Len(t, vector.Operations, 6)
}

func TestConfigValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"no degrees":       func(c *Config) { c.Degrees = nil },
		"not power of two": func(c *Config) { c.Degrees = []int{1000} },
		"no vector sizes":  func(c *Config) { c.VectorSizes = nil },
		"zero vector size": func(c *Config) { c.VectorSizes = []int{0} },
		"no operations":    func(c *Config) { c.Operations = nil },
		"plaintext bits":   func(c *Config) { c.PlaintextBits = 61 },
		"empty log path":   func(c *Config) { c.LogPath = "" },
		"unknown variant":  func(c *Config) { c.Variant = "matrix" },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultVectorConfig()
			mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
degrees: [1024, 2048]
vector_sizes: [16]
operations: [Cipher+Cipher_Mul, Plain+Cipher_Add]
log_path: out.csv
verify: true
`), 0o644))

	cfg, err := LoadConfig(path, DefaultVectorConfig())
	require.NoError(t, err)

	assert.Equal(t, Vector, cfg.Variant)
	assert.Equal(t, []int{1024, 2048}, cfg.Degrees)
	assert.Equal(t, []int{16}, cfg.VectorSizes)
	assert.Equal(t, []Operation{{CipherCipher, Mul}, {PlainCipher, Add}}, cfg.Operations)
	assert.Equal(t, "out.csv", cfg.LogPath)
	assert.True(t, cfg.Verify)
	assert.Equal(t, uint64(3), cfg.First)
	assert.Equal(t, DefaultPlaintextBits, cfg.PlaintextBits)
}

func TestLoadConfigRejectsUnknownOperation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte("operations: [Cipher+Cipher_Div]\n"), 0o644))

	_, err := LoadConfig(path, DefaultScalarConfig())
	require.ErrorIs(t, err, ErrInvalidConfig)
}
