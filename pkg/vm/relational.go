package vm

import (
	"ippcode23/pkg/diagnostics"
	"ippcode23/pkg/program"
	"ippcode23/pkg/value"
)

func init() {
	register(program.OpLt, orderingOp(func(cmp int) bool { return cmp < 0 }))
	register(program.OpGt, orderingOp(func(cmp int) bool { return cmp > 0 }))
	register(program.OpEq, opEq)
}

// compare orders two same-typed, non-nil values: -1/0/1 like strings.Compare.
// Booleans order false < true.
func compare(a, b value.Value) (int, error) {
	if !value.SameConcreteType(a, b) {
		return 0, diagnostics.OperandTypeErr("cannot order %s and %s", a.TypeName(), b.TypeName())
	}
	switch {
	case a.IsInt():
		switch {
		case a.I < b.I:
			return -1, nil
		case a.I > b.I:
			return 1, nil
		default:
			return 0, nil
		}
	case a.IsStr():
		switch {
		case a.S < b.S:
			return -1, nil
		case a.S > b.S:
			return 1, nil
		default:
			return 0, nil
		}
	case a.IsBool():
		if a.B == b.B {
			return 0, nil
		}
		if !a.B && b.B {
			return -1, nil
		}
		return 1, nil
	default:
		return 0, diagnostics.OperandTypeErr("cannot order nil values")
	}
}

func orderingOp(accept func(cmp int) bool) stepFunc {
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
		if a.IsNil() || b.IsNil() {
			return diagnostics.OperandTypeErr("LT/GT do not accept nil operands")
		}
		cmp, err := compare(a, b)
		if err != nil {
			return err
		}
		if err := e.mem.Set(dst, value.NewBool(accept(cmp))); err != nil {
			return err
		}
		e.advance()
		return nil
	}
}

func opEq(e *Executor, in program.Instruction) error {
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
	eq, err := valuesEqual(a, b)
	if err != nil {
		return err
	}
	if err := e.mem.Set(dst, value.NewBool(eq)); err != nil {
		return err
	}
	e.advance()
	return nil
}
