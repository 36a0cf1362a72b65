package vm

import (
	"ippcode23/pkg/program"
	"ippcode23/pkg/value"
)

func init() {
	register(program.OpType, opType)
}

// opType reads its source operand without rejecting Uninit: a variable
// holding Uninit reports the empty type name rather than failing.
func opType(e *Executor, in program.Instruction) error {
	dst, err := requireVar(in.Arg(1))
	if err != nil {
		return err
	}

	src := in.Arg(2)
	var v value.Value
	if src.Kind == program.ArgVar {
		v, err = e.mem.GetRaw(src.Lexeme)
		if err != nil {
			return err
		}
	} else {
		v, err = decodeConstant(src)
		if err != nil {
			return err
		}
	}

	if err := e.mem.Set(dst, value.NewStr(v.TypeName())); err != nil {
		return err
	}
	e.advance()
	return nil
}
