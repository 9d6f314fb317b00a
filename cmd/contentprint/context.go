package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"contentprint/internal/config"
	"contentprint/internal/digest"
	"contentprint/internal/fingerprint"
	"contentprint/internal/logging"
	"contentprint/internal/mimesniff"
	"contentprint/internal/semantichash"
	"contentprint/internal/similarity"
	"contentprint/internal/source"
	"contentprint/internal/visualhash"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	jsonFlag     *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		jsonFlag:     jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				cfg.Logging.Level = level
				if err := cfg.Validate(); err != nil {
					c.configErr = fmt.Errorf("--log-level: %w", err)
					return
				}
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// requestContext tags the command context with a fresh correlation ID.
func (c *commandContext) requestContext(cmd *cobra.Command) context.Context {
	return logging.WithNewRequestID(cmd.Context())
}

// resolveAlgorithm prefers the flag value over the configured default.
func (c *commandContext) resolveAlgorithm(flagValue string) (digest.Algorithm, error) {
	if strings.TrimSpace(flagValue) != "" {
		return digest.ParseAlgorithm(flagValue)
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return cfg.Algorithm(), nil
}

// inspectContainers resolves --containers against the config default.
func (c *commandContext) inspectContainers(cmd *cobra.Command, flagValue bool) bool {
	if cmd.Flags().Changed("containers") {
		return flagValue
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return flagValue
	}
	return cfg.Fingerprint.InspectContainers
}

func (c *commandContext) newSniffer(inspect bool, logger *slog.Logger) *mimesniff.Sniffer {
	opts := mimesniff.Options{InspectContainers: inspect, Logger: logger}
	if cfg, err := c.ensureConfig(); err == nil {
		opts.OLEScanLimit = cfg.Fingerprint.OLEScanLimit
	}
	return mimesniff.New(opts)
}

func (c *commandContext) newAggregator(inspect bool, logger *slog.Logger) *fingerprint.Aggregator {
	return fingerprint.New(fingerprint.Options{
		Sniffer:  c.newSniffer(inspect, logger),
		Visual:   visualhash.New(visualhash.Options{Logger: logger}),
		Semantic: semantichash.New(semantichash.Options{Logger: logger}),
		Logger:   logger,
	})
}

// openInput opens a path argument, buffering stdin for "-".
func (c *commandContext) openInput(cmd *cobra.Command, arg string) (*source.Input, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return source.OpenArg(arg, cmd.InOrStdin(), cfg.Input.MaxBufferBytes)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// checkStdinArgs rejects more than one "-" argument; stdin can be read once.
func checkStdinArgs(args []string) error {
	seen := false
	for _, arg := range args {
		if arg != source.StdinArg {
			continue
		}
		if seen {
			return fmt.Errorf("%q may only be given once", source.StdinArg)
		}
		seen = true
	}
	return nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

// resolveThresholds applies --low and --high over the configured thresholds.
func (c *commandContext) resolveThresholds(cmd *cobra.Command, low, high int) (similarity.Thresholds, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return similarity.Thresholds{}, err
	}
	th := cfg.Similarity
	if cmd.Flags().Changed("low") {
		th.Low = low
	}
	if cmd.Flags().Changed("high") {
		th.High = high
	}
	if err := th.Validate(); err != nil {
		return similarity.Thresholds{}, err
	}
	return th, nil
}
