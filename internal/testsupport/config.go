package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"contentprint/internal/config"
	"contentprint/internal/similarity"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a validated default config whose log directory lives in
// a per-test temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Logging.Dir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithAlgorithm overrides the digest algorithm.
func WithAlgorithm(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Fingerprint.Algorithm = name
	}
}

// WithThresholds overrides the similarity bands.
func WithThresholds(low, high int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Similarity = similarity.Thresholds{Low: low, High: high}
	}
}

// WithoutContainerInspection disables ZIP/OLE refinement.
func WithoutContainerInspection() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Fingerprint.InspectContainers = false
	}
}

// WithMaxBufferBytes bounds stdin buffering.
func WithMaxBufferBytes(limit int64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Input.MaxBufferBytes = limit
	}
}

// WriteConfig encodes cfg as TOML into a temp file and returns its path.
func WriteConfig(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "contentprint.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
