// Package logger configures the process-wide charmbracelet logger used by the
// command line front end.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Init installs a default logger writing to stderr; debug enables Debug level
// messages (like the VM trace), noColor forces plain ASCII output.
func Init(debug, noColor bool) {
	Setup(os.Stderr, debug, noColor)
}

// Setup installs a default logger writing to w.
func Setup(w io.Writer, debug, noColor bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		TimeFormat:      time.RFC3339,
		Prefix:          "mouse",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
	logger.SetColorProfile(termenv.ANSI256)
	if noColor {
		logger.SetColorProfile(termenv.Ascii)
	}
	log.SetDefault(logger)
	return logger
}

// Tracef adapts the default logger's Debugf into a printf-style trace hook.
func Tracef(mess string, args ...interface{}) {
	log.Debugf(mess, args...)
}
