package config

import (
	"io"
	"log/slog"
)

// Logger returns a text logger writing to w at LogLevel, or at debug level
// when verbose is set. An unparsable LogLevel falls back to info.
func (c *Config) Logger(w io.Writer, verbose bool) *slog.Logger {
	var level slog.LevelVar
	if l, err := c.Level(); err == nil {
		level.Set(l)
	}
	if verbose {
		level.Set(slog.LevelDebug)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: &level}))
}
