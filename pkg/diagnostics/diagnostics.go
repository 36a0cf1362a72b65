// Package diagnostics centralizes IPPcode23's error taxonomy: the fixed
// mapping from error kind to process exit code, and the Diagnostic error
// type carried from the loader and the executor up to the CLI.
package diagnostics

import "fmt"

// Code is a process exit code, per the interpreter's diagnostic contract.
type Code int

const (
	Success Code = 0

	Args         Code = 10
	OpenInput    Code = 11
	OpenOutput   Code = 12
	MalformedXML Code = 31
	XMLStructure Code = 32

	Semantic     Code = 52
	OperandType  Code = 53
	UndefinedVar Code = 54
	MissingFrame Code = 55
	MissingValue Code = 56
	BadValue     Code = 57
	StringOp     Code = 58

	Internal Code = 99
)

// Diagnostic is an error carrying the exit code the process should
// terminate with. Stderr text must never be empty for a non-zero code
// (spec §7), so every constructor below requires a message.
type Diagnostic struct {
	Code    Code
	Message string
}

func (d *Diagnostic) Error() string {
	return d.Message
}

func New(code Code, format string, args ...any) *Diagnostic {
	return &Diagnostic{Code: code, Message: fmt.Sprintf(format, args...)}
}

func ArgsErr(format string, args ...any) *Diagnostic {
	return New(Args, format, args...)
}

func OpenInputErr(format string, args ...any) *Diagnostic {
	return New(OpenInput, format, args...)
}

func OpenOutputErr(format string, args ...any) *Diagnostic {
	return New(OpenOutput, format, args...)
}

func MalformedXMLErr(format string, args ...any) *Diagnostic {
	return New(MalformedXML, format, args...)
}

func XMLStructureErr(format string, args ...any) *Diagnostic {
	return New(XMLStructure, format, args...)
}

func SemanticErr(format string, args ...any) *Diagnostic {
	return New(Semantic, format, args...)
}

func OperandTypeErr(format string, args ...any) *Diagnostic {
	return New(OperandType, format, args...)
}

func UndefinedVarErr(format string, args ...any) *Diagnostic {
	return New(UndefinedVar, format, args...)
}

func MissingFrameErr(format string, args ...any) *Diagnostic {
	return New(MissingFrame, format, args...)
}

func MissingValueErr(format string, args ...any) *Diagnostic {
	return New(MissingValue, format, args...)
}

func BadValueErr(format string, args ...any) *Diagnostic {
	return New(BadValue, format, args...)
}

func StringOpErr(format string, args ...any) *Diagnostic {
	return New(StringOp, format, args...)
}

func InternalErr(format string, args ...any) *Diagnostic {
	return New(Internal, format, args...)
}
