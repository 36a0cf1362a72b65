package vm

import (
	"strconv"
	"strings"

	"ippcode23/pkg/diagnostics"
	"ippcode23/pkg/program"
	"ippcode23/pkg/value"
)

func init() {
	register(program.OpRead, opRead)
	register(program.OpWrite, opWrite)
}

// readLine returns the next line from the input source and whether one
// was available. The scanner strips the trailing newline itself.
func (e *Executor) readLine() (string, bool) {
	if !e.in.Scan() {
		return "", false
	}
	return e.in.Text(), true
}

func opRead(e *Executor, in program.Instruction) error {
	dst, err := requireVar(in.Arg(1))
	if err != nil {
		return err
	}
	typeArg := in.Arg(2)
	if typeArg.Kind != program.ArgType {
		return diagnostics.OperandTypeErr("READ's second operand must be a type, got %s", typeArg.Kind)
	}

	line, ok := e.readLine()

	var v value.Value
	switch {
	case !ok || line == "":
		// End of input and a blank line are treated alike: both yield
		// Nil regardless of the requested type.
		v = value.Nil
	case typeArg.Lexeme == "int":
		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			v = value.Nil
		} else {
			v = value.NewInt(n)
		}
	case typeArg.Lexeme == "bool":
		v = value.NewBool(strings.EqualFold(line, "true"))
	case typeArg.Lexeme == "string":
		v = value.NewStr(line)
	case typeArg.Lexeme == "nil":
		v = value.Nil
	default:
		return diagnostics.SemanticErr("unknown READ type %q", typeArg.Lexeme)
	}

	if err := e.mem.Set(dst, v); err != nil {
		return err
	}
	e.advance()
	return nil
}

func opWrite(e *Executor, in program.Instruction) error {
	v, err := e.fetch(in.Arg(1))
	if err != nil {
		return err
	}
	if err := e.writeOut(v.WriteString()); err != nil {
		return err
	}
	e.advance()
	return nil
}
