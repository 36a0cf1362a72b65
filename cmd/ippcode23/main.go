// Command ippcode23 loads an IPPcode23 XML program and interprets it.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"ippcode23/internal/logger"
	"ippcode23/internal/runner"
	"ippcode23/pkg/color"
	"ippcode23/pkg/diagnostics"
)

func usage() {
	fmt.Println("Usage: ippcode23 [options]")
	fmt.Println("Options:")
	flag.PrintDefaults()
}

func main() {
	var (
		help    bool
		source  string
		input   string
		verbose bool
		noColor bool
	)

	flag.BoolVar(&help, "help", false, "Show usage and exit")
	flag.StringVar(&source, "source", "", "Path to the IPPcode23 XML source (default: stdin)")
	flag.StringVar(&input, "input", "", "Path to the READ input stream (default: stdin)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&verbose, "verbose", false, "Verbose mode")
	flag.BoolVar(&noColor, "n", false, "No color")
	flag.BoolVar(&noColor, "no-color", false, "No color")

	flag.Parse()

	logger.Init(verbose, noColor)
	if noColor {
		color.EnableColor(false)
	}

	if help {
		usage()
		if flag.NFlag() > 1 {
			os.Exit(int(diagnostics.Args))
		}
		os.Exit(0)
	}

	if source == "" && input == "" {
		fmt.Fprintln(os.Stderr, color.Error("at least one of --source or --input must be given; both would otherwise read stdin"))
		os.Exit(int(diagnostics.Args))
	}

	code, err := runner.Run(runner.Options{
		SourcePath: source,
		InputPath:  input,
		Verbose:    verbose,
		NoColor:    noColor,
	})
	if err != nil {
		if d, ok := err.(*diagnostics.Diagnostic); ok {
			fmt.Fprintln(os.Stderr, color.Error(d.Message))
		} else {
			log.Error("interpretation failed", "error", err)
		}
	}
	os.Exit(code)
}
