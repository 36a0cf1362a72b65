package vm

import (
	"ippcode23/pkg/diagnostics"
	"ippcode23/pkg/program"
)

func init() {
	register(program.OpPushs, opPushs)
	register(program.OpPops, opPops)
}

func opPushs(e *Executor, in program.Instruction) error {
	v, err := e.fetch(in.Arg(1))
	if err != nil {
		return err
	}
	e.mem.Data.Push(v)
	e.advance()
	return nil
}

func opPops(e *Executor, in program.Instruction) error {
	dst, err := requireVar(in.Arg(1))
	if err != nil {
		return err
	}
	v, ok := e.mem.Data.Pop()
	if !ok {
		return diagnostics.MissingValueErr("POPS with empty data stack")
	}
	if err := e.mem.Set(dst, v); err != nil {
		return err
	}
	e.advance()
	return nil
}
