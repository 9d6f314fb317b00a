package config

import (
	"contentprint/internal/digest"
	"contentprint/internal/similarity"
)

const (
	defaultConfigPath     = "~/.config/contentprint/config.toml"
	projectConfigName     = "contentprint.toml"
	defaultOLEScanLimit   = 64 << 10
	defaultMaxBufferBytes = 256 << 20
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Environment variables that override the matching config keys.
const (
	EnvAlgorithm = "CONTENTPRINT_ALGORITHM"
	EnvLogLevel  = "CONTENTPRINT_LOG_LEVEL"
	EnvLogFormat = "CONTENTPRINT_LOG_FORMAT"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Fingerprint: Fingerprint{
			Algorithm:         string(digest.Default),
			InspectContainers: true,
			OLEScanLimit:      defaultOLEScanLimit,
		},
		Similarity: similarity.DefaultThresholds(),
		Input: Input{
			MaxBufferBytes: defaultMaxBufferBytes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
