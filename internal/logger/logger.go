// Package logger installs the process-wide structured logger used for
// host-tier diagnostics and --verbose tracing. VM and loader faults go
// straight to stderr via pkg/diagnostics and pkg/color instead, since
// their exit code is the contract callers rely on and must not be
// swallowed by log-level filtering.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Init installs the default logger. debug enables info-level tracing;
// noColor downgrades the terminal color profile to plain ASCII.
func Init(debug, noColor bool) {
	log.SetDefault(log.NewWithOptions(io.MultiWriter(os.Stderr),
		log.Options{
			ReportCaller:    true,
			ReportTimestamp: false,
			Prefix:          "IPPCODE23",
		}))

	if debug {
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(log.ErrorLevel)
	}

	log.SetColorProfile(termenv.ANSI256)
	if noColor {
		log.SetColorProfile(termenv.Ascii)
	}
}
