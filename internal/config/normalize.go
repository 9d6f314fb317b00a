package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeFingerprint()
	c.normalizeInput()
	return c.normalizeLogging()
}

// CONTENTPRINT_* variables take precedence over file values.
func (c *Config) normalizeFingerprint() {
	if value, ok := lookupEnv(EnvAlgorithm); ok {
		c.Fingerprint.Algorithm = value
	}
	c.Fingerprint.Algorithm = strings.ToLower(strings.TrimSpace(c.Fingerprint.Algorithm))
	if c.Fingerprint.Algorithm == "" {
		c.Fingerprint.Algorithm = Default().Fingerprint.Algorithm
	}
	if c.Fingerprint.OLEScanLimit == 0 {
		c.Fingerprint.OLEScanLimit = defaultOLEScanLimit
	}
}

func (c *Config) normalizeInput() {
	if c.Input.MaxBufferBytes == 0 {
		c.Input.MaxBufferBytes = defaultMaxBufferBytes
	}
}

func (c *Config) normalizeLogging() error {
	if value, ok := lookupEnv(EnvLogFormat); ok {
		c.Logging.Format = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if value, ok := lookupEnv(EnvLogLevel); ok {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}
