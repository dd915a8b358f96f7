package resource

import (
	"log/slog"
	"time"
)

// FlowConfig holds configuration shared by Flow and FlowWithRetry.
type FlowConfig struct {
	// Logger for flow diagnostics.
	// Default: slog.Default()
	Logger *slog.Logger

	// RetryCount is the number of re-attempts after the initial call, so a
	// FlowWithRetry iteration makes up to RetryCount+1 calls in total. A
	// negative count suppresses the call entirely and the flow finishes
	// with a generic Error. Flow ignores this field.
	// Default: 3
	RetryCount int

	// RetryDelay is the fixed pause between attempts. There is no pause
	// after the final attempt. Flow ignores this field.
	// Default: 0 (immediate re-attempt)
	RetryDelay time.Duration
}

// FlowOption is a functional option for configuring flow behavior.
type FlowOption func(*FlowConfig)

// WithRetryCount sets the number of re-attempts after the initial call.
// The total number of calls will be count+1. Negative counts suppress the
// call entirely.
//
// Example:
//
//	resource.FlowWithRetry(ctx, call, resource.WithRetryCount(5))
func WithRetryCount(count int) FlowOption {
	return func(c *FlowConfig) {
		c.RetryCount = count
	}
}

// WithRetryDelay sets the fixed delay between attempts.
//
// Example:
//
//	resource.FlowWithRetry(ctx, call, resource.WithRetryDelay(200*time.Millisecond))
func WithRetryDelay(delay time.Duration) FlowOption {
	return func(c *FlowConfig) {
		c.RetryDelay = delay
	}
}

// WithLogger sets a custom logger for flow diagnostics.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	resource.Flow(ctx, call, resource.WithLogger(logger))
func WithLogger(logger *slog.Logger) FlowOption {
	return func(c *FlowConfig) {
		c.Logger = logger
	}
}

// DefaultFlowConfig returns flow configuration with the standard defaults.
func DefaultFlowConfig() *FlowConfig {
	return &FlowConfig{
		Logger:     slog.Default(),
		RetryCount: 3,
		RetryDelay: 0,
	}
}

// newFlowConfig applies options over the defaults.
func newFlowConfig(opts []FlowOption) *FlowConfig {
	config := DefaultFlowConfig()
	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return config
}
