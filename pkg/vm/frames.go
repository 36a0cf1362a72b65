package vm

import "ippcode23/pkg/program"

func init() {
	register(program.OpCreateFrame, opCreateFrame)
	register(program.OpPushFrame, opPushFrame)
	register(program.OpPopFrame, opPopFrame)
	register(program.OpDefVar, opDefVar)
	register(program.OpMove, opMove)
}

func opCreateFrame(e *Executor, in program.Instruction) error {
	e.mem.CreateFrame()
	e.advance()
	return nil
}

func opPushFrame(e *Executor, in program.Instruction) error {
	if err := e.mem.PushFrame(); err != nil {
		return err
	}
	e.advance()
	return nil
}

func opPopFrame(e *Executor, in program.Instruction) error {
	if err := e.mem.PopFrame(); err != nil {
		return err
	}
	e.advance()
	return nil
}

func opDefVar(e *Executor, in program.Instruction) error {
	name, err := requireVar(in.Arg(1))
	if err != nil {
		return err
	}
	if err := e.mem.Define(name); err != nil {
		return err
	}
	e.advance()
	return nil
}

func opMove(e *Executor, in program.Instruction) error {
	dst, err := requireVar(in.Arg(1))
	if err != nil {
		return err
	}
	v, err := e.fetch(in.Arg(2))
	if err != nil {
		return err
	}
	if err := e.mem.Set(dst, v); err != nil {
		return err
	}
	e.advance()
	return nil
}
