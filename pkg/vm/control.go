package vm

import (
	"ippcode23/pkg/diagnostics"
	"ippcode23/pkg/program"
	"ippcode23/pkg/value"
)

func init() {
	register(program.OpCall, opCall)
	register(program.OpReturn, opReturn)
	register(program.OpJump, opJump)
	register(program.OpJumpIfEq, opJumpIfEq)
	register(program.OpJumpIfNeq, opJumpIfNeq)
	register(program.OpLabel, opLabelNoop)
	register(program.OpExit, opExit)
}

func opCall(e *Executor, in program.Instruction) error {
	name, err := requireLabel(in.Arg(1))
	if err != nil {
		return err
	}
	target, err := e.resolveLabel(name)
	if err != nil {
		return err
	}
	e.mem.Call.Push(e.pc + 1)
	e.jumpTo(target)
	return nil
}

func opReturn(e *Executor, in program.Instruction) error {
	ret, ok := e.mem.Call.Pop()
	if !ok {
		return diagnostics.MissingValueErr("RETURN with empty call stack")
	}
	e.jumpTo(ret)
	return nil
}

func opJump(e *Executor, in program.Instruction) error {
	name, err := requireLabel(in.Arg(1))
	if err != nil {
		return err
	}
	target, err := e.resolveLabel(name)
	if err != nil {
		return err
	}
	e.jumpTo(target)
	return nil
}

func opLabelNoop(e *Executor, in program.Instruction) error {
	e.advance()
	return nil
}

func opExit(e *Executor, in program.Instruction) error {
	v, err := e.fetch(in.Arg(1))
	if err != nil {
		return err
	}
	if !v.IsInt() {
		return diagnostics.OperandTypeErr("EXIT requires an int operand")
	}
	if v.I < 0 || v.I > 49 {
		return diagnostics.BadValueErr("EXIT code %d out of range [0,49]", v.I)
	}
	e.halt(int(v.I))
	return nil
}

// jumpCompare implements the shared JUMPIFEQ/JUMPIFNEQ machinery: label
// existence is validated (and errors 52) before operand types are
// checked (and error 53).
func jumpCompare(e *Executor, in program.Instruction, wantEqual bool) error {
	name, err := requireLabel(in.Arg(1))
	if err != nil {
		return err
	}
	target, err := e.resolveLabel(name)
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

	eq, err := valuesEqual(a, b)
	if err != nil {
		return err
	}

	if eq == wantEqual {
		e.jumpTo(target)
	} else {
		e.advance()
	}
	return nil
}

func opJumpIfEq(e *Executor, in program.Instruction) error {
	return jumpCompare(e, in, true)
}

func opJumpIfNeq(e *Executor, in program.Instruction) error {
	return jumpCompare(e, in, false)
}

// valuesEqual implements EQ's comparison rule: same concrete type
// compares by value; either operand being Nil is allowed and compares
// equal only when both are Nil; anything else is a type mismatch (53).
func valuesEqual(a, b value.Value) (bool, error) {
	if a.IsNil() || b.IsNil() {
		return a.IsNil() && b.IsNil(), nil
	}
	if !value.SameConcreteType(a, b) {
		return false, diagnostics.OperandTypeErr("cannot compare %s and %s", a.TypeName(), b.TypeName())
	}
	switch {
	case a.IsInt():
		return a.I == b.I, nil
	case a.IsBool():
		return a.B == b.B, nil
	default:
		return a.S == b.S, nil
	}
}
