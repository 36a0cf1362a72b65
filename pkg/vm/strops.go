package vm

import (
	"ippcode23/pkg/diagnostics"
	"ippcode23/pkg/program"
	"ippcode23/pkg/value"
)

func init() {
	register(program.OpConcat, opConcat)
	register(program.OpStrLen, opStrLen)
	register(program.OpGetChar, opGetChar)
	register(program.OpSetChar, opSetChar)
}

func opConcat(e *Executor, in program.Instruction) error {
	dst, err := requireVar(in.Arg(1))
	if err != nil {
		return err
	}
	a, err := e.fetch(in.Arg(2))
	if err != nil {
		return err
	}
	b, err := e.fetch(in.Arg(3))
	if err != nil {
		return err
	}
	if !a.IsStr() || !b.IsStr() {
		return diagnostics.OperandTypeErr("CONCAT requires string operands, got %s and %s", a.TypeName(), b.TypeName())
	}
	if err := e.mem.Set(dst, value.NewStr(a.S+b.S)); err != nil {
		return err
	}
	e.advance()
	return nil
}

func opStrLen(e *Executor, in program.Instruction) error {
	dst, err := requireVar(in.Arg(1))
	if err != nil {
		return err
	}
	a, err := e.fetch(in.Arg(2))
	if err != nil {
		return err
	}
	if !a.IsStr() {
		return diagnostics.OperandTypeErr("STRLEN requires a string operand, got %s", a.TypeName())
	}
	if err := e.mem.Set(dst, value.NewInt(int64(len([]rune(a.S))))); err != nil {
		return err
	}
	e.advance()
	return nil
}

func opGetChar(e *Executor, in program.Instruction) error {
	dst, err := requireVar(in.Arg(1))
	if err != nil {
		return err
	}
	s, err := e.fetch(in.Arg(2))
	if err != nil {
		return err
	}
	i, err := e.fetch(in.Arg(3))
	if err != nil {
		return err
	}
	if !s.IsStr() || !i.IsInt() {
		return diagnostics.OperandTypeErr("GETCHAR requires (string, int) operands")
	}
	runes := []rune(s.S)
	if i.I < 0 || i.I >= int64(len(runes)) {
		return diagnostics.StringOpErr("index %d out of range for string of length %d", i.I, len(runes))
	}
	if err := e.mem.Set(dst, value.NewStr(string(runes[i.I]))); err != nil {
		return err
	}
	e.advance()
	return nil
}

func opSetChar(e *Executor, in program.Instruction) error {
	dstName, err := requireVar(in.Arg(1))
	if err != nil {
		return err
	}
	current, err := e.mem.Get(dstName)
	if err != nil {
		return err
	}
	if !current.IsStr() {
		return diagnostics.OperandTypeErr("SETCHAR target must hold a string, got %s", current.TypeName())
	}

	i, err := e.fetch(in.Arg(2))
	if err != nil {
		return err
	}
	c, err := e.fetch(in.Arg(3))
	if err != nil {
		return err
	}
	if !i.IsInt() || !c.IsStr() {
		return diagnostics.OperandTypeErr("SETCHAR requires (int, string) operands")
	}

	runes := []rune(current.S)
	repl := []rune(c.S)
	if i.I < 0 || i.I >= int64(len(runes)) || len(repl) == 0 {
		return diagnostics.StringOpErr("SETCHAR index %d or replacement %q invalid for string of length %d", i.I, c.S, len(runes))
	}
	runes[i.I] = repl[0]

	if err := e.mem.Set(dstName, value.NewStr(string(runes))); err != nil {
		return err
	}
	e.advance()
	return nil
}
