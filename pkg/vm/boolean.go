package vm

import (
	"ippcode23/pkg/diagnostics"
	"ippcode23/pkg/program"
	"ippcode23/pkg/value"
)

func init() {
	register(program.OpAnd, binaryBoolOp(func(a, b bool) bool { return a && b }))
	register(program.OpOr, binaryBoolOp(func(a, b bool) bool { return a || b }))
	register(program.OpNot, opNot)
}

func binaryBoolOp(op func(a, b bool) bool) stepFunc {
	return func(e *Executor, in program.Instruction) error {
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
		if !a.IsBool() || !b.IsBool() {
			return diagnostics.OperandTypeErr("expected bool operands, got %s and %s", a.TypeName(), b.TypeName())
		}
		if err := e.mem.Set(dst, value.NewBool(op(a.B, b.B))); err != nil {
			return err
		}
		e.advance()
		return nil
	}
}

func opNot(e *Executor, in program.Instruction) error {
	dst, err := requireVar(in.Arg(1))
	if err != nil {
		return err
	}
	a, err := e.fetch(in.Arg(2))
	if err != nil {
		return err
	}
	if !a.IsBool() {
		return diagnostics.OperandTypeErr("expected bool operand, got %s", a.TypeName())
	}
	if err := e.mem.Set(dst, value.NewBool(!a.B)); err != nil {
		return err
	}
	e.advance()
	return nil
}
