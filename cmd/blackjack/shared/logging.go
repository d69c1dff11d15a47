package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a charmbracelet logger on stderr
func SetupLogger(debug bool) *log.Logger {
	return NewLogger(os.Stderr, debug)
}

// NewLogger builds the CLI logger on w. Debug output adds caller
// information for tracing engine decisions.
func NewLogger(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		ReportCaller:    debug,
		TimeFormat:      "15:04:05",
		Prefix:          "blackjack",
	})
}
