package fluffytag

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring a Processor.
type Option func(*processorConfig)

// processorConfig holds the internal configuration for a Processor.
type processorConfig struct {
	logger               *zap.Logger
	errorHandler         ErrorHandlerFunc
	autoProcessUntagged  bool
	autoProcessThreshold int
}

// defaultProcessorConfig returns the default processor configuration.
func defaultProcessorConfig() *processorConfig {
	return &processorConfig{
		logger:               nil,
		errorHandler:         nil,
		autoProcessUntagged:  true,
		autoProcessThreshold: DefaultAutoProcessThreshold,
	}
}

// WithLogger sets the diagnostics logger for the processor.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *processorConfig) {
		c.logger = logger
	}
}

// WithErrorHandler sets the error boundary for structural and handler
// errors. Without one, errors are logged and suppressed so the stream
// continues.
func WithErrorHandler(handler ErrorHandlerFunc) Option {
	return func(c *processorConfig) {
		c.errorHandler = handler
	}
}

// WithAutoProcessUntagged enables or disables threshold-based flushing of
// untagged content.
// Default: true
func WithAutoProcessUntagged(enabled bool) Option {
	return func(c *processorConfig) {
		c.autoProcessUntagged = enabled
	}
}

// WithAutoProcessThreshold sets the untagged-buffer size above which
// buffered prose is flushed. Values below 1 are ignored.
// Default: 20
func WithAutoProcessThreshold(threshold int) Option {
	return func(c *processorConfig) {
		if threshold >= 1 {
			c.autoProcessThreshold = threshold
		}
	}
}
