// Package runner orchestrates one interpreter invocation: open the
// source and input streams the CLI selected, load and validate the
// program, execute it, and translate the outcome into a process exit
// code.
package runner

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"ippcode23/pkg/diagnostics"
	"ippcode23/pkg/loader"
	"ippcode23/pkg/vm"
)

// Options is the resolved set of flags a single invocation runs with.
type Options struct {
	SourcePath string // empty means read the XML program from stdin
	InputPath  string // empty means READ consumes stdin
	Verbose    bool
	NoColor    bool
}

// Run executes one interpreter invocation and returns the process exit
// code together with any error that produced it. A returned error is
// either a *diagnostics.Diagnostic (whose Code equals the returned int)
// or a host-level error already reported by the caller.
func Run(opts Options) (int, error) {
	src, closeSrc, err := openSource(opts.SourcePath)
	if err != nil {
		return int(diagnostics.OpenInput), err
	}
	defer closeSrc()

	log.Info("loading program", "source", displayPath(opts.SourcePath))
	prog, err := loader.Load(src)
	if err != nil {
		d := err.(*diagnostics.Diagnostic)
		return int(d.Code), d
	}
	log.Info("program loaded", "instructions", len(prog.Instructions), "labels", len(prog.Labels))

	in, closeIn, err := openInput(opts.InputPath)
	if err != nil {
		return int(diagnostics.OpenInput), err
	}
	defer closeIn()

	exec := vm.New(prog, in, os.Stdout)
	code, err := exec.Run()
	if err != nil {
		log.Info("execution halted with error", "code", code, "error", err)
		return code, err
	}
	log.Info("execution finished", "code", code)
	return code, nil
}

func openSource(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, diagnostics.OpenInputErr("cannot open source file %q: %v", path, err)
	}
	return f, func() { f.Close() }, nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, diagnostics.OpenInputErr("cannot open input file %q: %v", path, err)
	}
	return f, func() { f.Close() }, nil
}

func displayPath(path string) string {
	if path == "" {
		return "<stdin>"
	}
	return path
}
