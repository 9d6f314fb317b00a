package config

import (
	"errors"
	"fmt"

	"contentprint/internal/digest"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFingerprint(); err != nil {
		return err
	}
	if err := c.Similarity.Validate(); err != nil {
		return fmt.Errorf("similarity: %w", err)
	}
	if c.Input.MaxBufferBytes <= 0 {
		return errors.New("input.max_buffer_bytes must be positive")
	}
	return c.validateLogging()
}

func (c *Config) validateFingerprint() error {
	if _, err := digest.ParseAlgorithm(c.Fingerprint.Algorithm); err != nil {
		return fmt.Errorf("fingerprint.algorithm: %w", err)
	}
	if c.Fingerprint.OLEScanLimit <= 0 {
		return errors.New("fingerprint.ole_scan_limit must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// Algorithm returns the configured digest algorithm. Call after Validate.
func (c *Config) Algorithm() digest.Algorithm {
	alg, err := digest.ParseAlgorithm(c.Fingerprint.Algorithm)
	if err != nil {
		return digest.Default
	}
	return alg
}
