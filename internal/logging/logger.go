package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bincc/bincc/internal/config"
)

// NewLogger builds the diagnostic logger described by cfg. Diagnostics go to
// w, which is stderr for the CLI, so command output stays pipeable.
func NewLogger(w io.Writer, cfg config.LoggingConfig) (*log.Logger, error) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("logging level %q: %w", cfg.Level, err)
	}

	var formatter log.Formatter
	switch cfg.Format {
	case "", config.FormatText:
		formatter = log.TextFormatter
	case config.FormatJSON:
		formatter = log.JSONFormatter
	case config.FormatLogfmt:
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("logging format %q is not supported", cfg.Format)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       formatter,
		ReportTimestamp: formatter != log.TextFormatter,
		Prefix:          "bincc",
	}), nil
}
