// Package vm implements the IPPcode23 execution engine: a stack-based VM
// over a global frame, an optional temporary frame, a stack of local
// frames, a data stack, a call stack and a program counter.
package vm

import (
	"bufio"
	"fmt"
	"io"

	"ippcode23/pkg/diagnostics"
	"ippcode23/pkg/memory"
	"ippcode23/pkg/program"
	"ippcode23/pkg/value"
)

// stepFunc implements one opcode's semantics. It is fully responsible for
// PC management: call e.advance() to fall through, or e.jumpTo(idx) for
// control transfer, or e.halt(code) to stop the program. A returned error
// aborts execution with that error's diagnostic code.
type stepFunc func(e *Executor, in program.Instruction) error

// handlers is the opcode dispatch table. Registered by family in the
// other files of this package (frames.go, control.go, arith.go, ...).
var handlers = map[program.Opcode]stepFunc{}

func register(op program.Opcode, fn stepFunc) {
	handlers[op] = fn
}

// Executor runs a loaded Program against a Memory, an input line source
// and an output sink.
type Executor struct {
	prog *program.Program
	mem  *memory.Memory

	pc int // 1-based index into prog.Instructions; len+1 means halted-by-fallthrough

	in  *bufio.Scanner
	out io.Writer

	halted   bool
	exitCode int
}

// New builds an Executor ready to run prog, reading READ input from in
// and writing WRITE output to out.
func New(prog *program.Program, in io.Reader, out io.Writer) *Executor {
	return &Executor{
		prog: prog,
		mem:  memory.New(),
		pc:   1,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

// Run executes the program to completion, returning the process exit
// code. A nil error means EXIT (with its operand as the code) or a clean
// end of program (always code 0); a non-nil error is a *diagnostics.
// Diagnostic carrying the fault's code.
func (e *Executor) Run() (int, error) {
	for {
		if e.halted {
			return e.exitCode, nil
		}
		if e.pc > len(e.prog.Instructions) {
			return 0, nil
		}
		if e.pc < 1 {
			return 0, diagnostics.InternalErr("program counter underflow")
		}

		in := e.prog.Instructions[e.pc-1]
		h, ok := handlers[in.Opcode]
		if !ok {
			return 0, diagnostics.InternalErr("no handler registered for opcode %s", in.Opcode)
		}
		if err := h(e, in); err != nil {
			if d, ok := err.(*diagnostics.Diagnostic); ok {
				return int(d.Code), err
			}
			return int(diagnostics.Internal), err
		}
	}
}

func (e *Executor) advance() { e.pc++ }

func (e *Executor) jumpTo(target int) { e.pc = target }

func (e *Executor) halt(code int) {
	e.halted = true
	e.exitCode = code
}

func (e *Executor) resolveLabel(name string) (int, error) {
	idx, ok := e.prog.Labels[name]
	if !ok {
		return 0, diagnostics.SemanticErr("unknown label %q", name)
	}
	return idx, nil
}

// requireVar validates that arg is a variable reference and returns its
// qualified name.
func requireVar(arg program.Argument) (string, error) {
	if arg.Kind != program.ArgVar {
		return "", diagnostics.OperandTypeErr("expected a variable operand, got %s", arg.Kind)
	}
	return arg.Lexeme, nil
}

// requireLabel validates that arg is a label reference and returns its
// name.
func requireLabel(arg program.Argument) (string, error) {
	if arg.Kind != program.ArgLabel {
		return "", diagnostics.OperandTypeErr("expected a label operand, got %s", arg.Kind)
	}
	return arg.Lexeme, nil
}

// fetch resolves an operand: a variable reference is read from memory
// (any of the frame/undefined/uninitialized errors from pkg/memory may
// surface here), anything else is decoded from its literal lexeme.
func (e *Executor) fetch(arg program.Argument) (value.Value, error) {
	if arg.Kind == program.ArgVar {
		return e.mem.Get(arg.Lexeme)
	}
	return decodeConstant(arg)
}

func (e *Executor) writeOut(s string) error {
	if _, err := fmt.Fprint(e.out, s); err != nil {
		return diagnostics.InternalErr("write failed: %v", err)
	}
	return nil
}
