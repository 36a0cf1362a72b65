package memory

import (
	"ippcode23/pkg/diagnostics"
	"ippcode23/pkg/value"
)

// Frame is a name→Value mapping. A name appears at most once; redefining
// it is a semantic error, and reading or writing an undefined name is a
// separate, distinct error.
type Frame struct {
	vars map[string]value.Value
}

// NewFrame returns an empty frame.
func NewFrame() *Frame {
	return &Frame{vars: make(map[string]value.Value)}
}

// Define creates name as Uninit. Redefinition is a semantic error (52).
func (f *Frame) Define(name string) error {
	if _, exists := f.vars[name]; exists {
		return diagnostics.SemanticErr("variable %q already defined", name)
	}
	f.vars[name] = value.Uninit
	return nil
}

// Get reads name's current value. An undefined name is error 54; a
// defined-but-unassigned name is error 56.
func (f *Frame) Get(name string) (value.Value, error) {
	v, exists := f.vars[name]
	if !exists {
		return value.Value{}, diagnostics.UndefinedVarErr("undefined variable %q", name)
	}
	if v.IsUninit() {
		return value.Value{}, diagnostics.MissingValueErr("read of uninitialized variable %q", name)
	}
	return v, nil
}

// Set writes value to an already-defined name. An undefined name is
// error 54.
func (f *Frame) Set(name string, v value.Value) error {
	if _, exists := f.vars[name]; !exists {
		return diagnostics.UndefinedVarErr("undefined variable %q", name)
	}
	f.vars[name] = v
	return nil
}

// Exists reports whether name has been defined in this frame, regardless
// of whether it has been assigned.
func (f *Frame) Exists(name string) bool {
	_, ok := f.vars[name]
	return ok
}

// Raw reads name's value without rejecting Uninit; only an undefined name
// is an error. Used by TYPE, which must report an Uninit variable as the
// empty type name rather than failing.
func (f *Frame) Raw(name string) (value.Value, error) {
	v, exists := f.vars[name]
	if !exists {
		return value.Value{}, diagnostics.UndefinedVarErr("undefined variable %q", name)
	}
	return v, nil
}
