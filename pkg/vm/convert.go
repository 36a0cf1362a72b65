package vm

import (
	"unicode/utf8"

	"ippcode23/pkg/diagnostics"
	"ippcode23/pkg/program"
	"ippcode23/pkg/value"
)

func init() {
	register(program.OpInt2Char, opInt2Char)
	register(program.OpStri2Int, opStri2Int)
}

func opInt2Char(e *Executor, in program.Instruction) error {
	dst, err := requireVar(in.Arg(1))
	if err != nil {
		return err
	}
	a, err := e.fetch(in.Arg(2))
	if err != nil {
		return err
	}
	if !a.IsInt() {
		return diagnostics.OperandTypeErr("INT2CHAR requires an int operand, got %s", a.TypeName())
	}
	if a.I < 0 || a.I > utf8.MaxRune || !utf8.ValidRune(rune(a.I)) {
		return diagnostics.StringOpErr("%d is not a valid Unicode scalar value", a.I)
	}
	if err := e.mem.Set(dst, value.NewStr(string(rune(a.I)))); err != nil {
		return err
	}
	e.advance()
	return nil
}

func opStri2Int(e *Executor, in program.Instruction) error {
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
		return diagnostics.OperandTypeErr("STRI2INT requires (string, int) operands")
	}
	runes := []rune(s.S)
	if i.I < 0 || i.I >= int64(len(runes)) {
		return diagnostics.StringOpErr("index %d out of range for string of length %d", i.I, len(runes))
	}
	if err := e.mem.Set(dst, value.NewInt(int64(runes[i.I]))); err != nil {
		return err
	}
	e.advance()
	return nil
}
