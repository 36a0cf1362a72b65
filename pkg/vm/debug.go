package vm

import "ippcode23/pkg/program"

func init() {
	register(program.OpDPrint, opDPrint)
	register(program.OpBreak, opBreak)
}

// opDPrint and opBreak are interactive debugging aids with no effect on
// program state; they never fail and never touch stdout.
func opDPrint(e *Executor, in program.Instruction) error {
	e.advance()
	return nil
}

func opBreak(e *Executor, in program.Instruction) error {
	e.advance()
	return nil
}
