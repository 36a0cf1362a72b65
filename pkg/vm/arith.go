package vm

import (
	"ippcode23/pkg/diagnostics"
	"ippcode23/pkg/program"
	"ippcode23/pkg/value"
)

func init() {
	register(program.OpAdd, binaryIntOp(func(a, b int64) (int64, error) { return a + b, nil }))
	register(program.OpSub, binaryIntOp(func(a, b int64) (int64, error) { return a - b, nil }))
	register(program.OpMul, binaryIntOp(func(a, b int64) (int64, error) { return a * b, nil }))
	register(program.OpIDiv, binaryIntOp(func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, diagnostics.BadValueErr("integer division by zero")
		}
		return a / b, nil
	}))
}

// fetchIntPair reads and validates dst/a/b for the three-arg
// int-in-int-out family (ADD/SUB/MUL/IDIV).
func fetchIntPair(e *Executor, in program.Instruction) (dst string, a, b int64, err error) {
	dst, err = requireVar(in.Arg(1))
	if err != nil {
		return
	}
	va, err := e.fetch(in.Arg(2))
	if err != nil {
		return
	}
	vb, err := e.fetch(in.Arg(3))
	if err != nil {
		return
	}
	if !va.IsInt() || !vb.IsInt() {
		err = diagnostics.OperandTypeErr("expected int operands, got %s and %s", va.TypeName(), vb.TypeName())
		return
	}
	return dst, va.I, vb.I, nil
}

func binaryIntOp(op func(a, b int64) (int64, error)) stepFunc {
	return func(e *Executor, in program.Instruction) error {
		dst, a, b, err := fetchIntPair(e, in)
		if err != nil {
			return err
		}
		result, err := op(a, b)
		if err != nil {
			return err
		}
		if err := e.mem.Set(dst, value.NewInt(result)); err != nil {
			return err
		}
		e.advance()
		return nil
	}
}
