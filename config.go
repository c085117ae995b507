package toylang

import "log/slog"

// Config holds configuration options for a compilation.
type Config struct {
	// Filename is recorded in diagnostics (default: none).
	Filename string

	// Newline terminates every line of the generated source (default: "\n").
	// Use "\r\n" for CRLF output.
	Newline string

	// MaxPasses bounds the type resolution passes (default: 10).
	// Types still unresolved after the last pass are emitted as they are.
	MaxPasses int

	// Logger receives a debug trace of tree construction and scope changes,
	// followed by a summary of type resolution and emission.
	// If nil, the trace is discarded.
	Logger *slog.Logger
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.Newline == "" {
		c.Newline = "\n"
	}
	if c.MaxPasses <= 0 {
		c.MaxPasses = 10
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
}
