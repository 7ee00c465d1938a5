package trex

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring a Render invocation.
type Option func(*renderConfig)

// renderConfig holds the per-render configuration.
type renderConfig struct {
	contextChain *Provider
	entrypoint   string
	debugMarks   bool
	logger       *zap.Logger
}

// defaultRenderConfig returns the default render configuration.
func defaultRenderConfig() *renderConfig {
	return &renderConfig{
		contextChain: nil,
		entrypoint:   DefaultEntrypoint,
		debugMarks:   false,
		logger:       nil,
	}
}

// WithContextChain layers a context chain over the template chain. Context
// entries shadow template entries of the same name.
func WithContextChain(head *Provider) Option {
	return func(c *renderConfig) {
		c.contextChain = head
	}
}

// WithEntrypoint sets the entry name rendered first.
// Default: "main"
func WithEntrypoint(name string) Option {
	return func(c *renderConfig) {
		if name != "" {
			c.entrypoint = name
		}
	}
}

// WithDebugMarks enables delimiter comments around string output identifying
// which provider produced each fragment.
// Default: false
func WithDebugMarks(enabled bool) Option {
	return func(c *renderConfig) {
		c.debugMarks = enabled
	}
}

// WithLogger sets the logger for the render.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *renderConfig) {
		c.logger = logger
	}
}
