package memory

import (
	"strings"

	"ippcode23/pkg/collections"
	"ippcode23/pkg/diagnostics"
	"ippcode23/pkg/value"
)

// Memory holds all storage the VM operates on: the global frame (always
// live), an optional temporary frame, a stack of local frames, a data
// stack and a call stack of return addresses.
type Memory struct {
	Global    *Frame
	temporary *Frame
	locals    *collections.Stack[*Frame]

	Data *collections.Stack[value.Value]
	Call *collections.Stack[int]
}

// New returns a Memory with a fresh, empty global frame and no temporary
// or local frames.
func New() *Memory {
	return &Memory{
		Global: NewFrame(),
		locals: collections.NewStack[*Frame](),
		Data:   collections.NewStack[value.Value](),
		Call:   collections.NewStack[int](),
	}
}

// CreateFrame replaces the temporary frame with a fresh empty one,
// discarding any existing contents.
func (m *Memory) CreateFrame() {
	m.temporary = NewFrame()
}

// PushFrame moves the temporary frame onto the local-frame stack. The
// temporary frame must exist (error 55 otherwise); after the move it is
// absent again.
func (m *Memory) PushFrame() error {
	if m.temporary == nil {
		return diagnostics.MissingFrameErr("PUSHFRAME: no temporary frame")
	}
	m.locals.Push(m.temporary)
	m.temporary = nil
	return nil
}

// PopFrame moves the top local frame into the temporary-frame slot. The
// local stack must be non-empty (error 55 otherwise).
func (m *Memory) PopFrame() error {
	f, ok := m.locals.Pop()
	if !ok {
		return diagnostics.MissingFrameErr("POPFRAME: no local frame")
	}
	m.temporary = f
	return nil
}

// LocalDepth reports how many local frames are on the stack.
func (m *Memory) LocalDepth() int {
	return m.locals.Len()
}

// resolve splits a qualified name like "GF@x" into its target frame and
// the bare variable name.
func (m *Memory) resolve(qualified string) (*Frame, string, error) {
	prefix, name, found := strings.Cut(qualified, "@")
	if !found {
		return nil, "", diagnostics.InternalErr("malformed variable reference %q", qualified)
	}

	switch prefix {
	case "GF":
		return m.Global, name, nil
	case "TF":
		if m.temporary == nil {
			return nil, "", diagnostics.MissingFrameErr("access to TF@%s before CREATEFRAME", name)
		}
		return m.temporary, name, nil
	case "LF":
		f, ok := m.locals.Peek()
		if !ok {
			return nil, "", diagnostics.MissingFrameErr("access to LF@%s with no local frame", name)
		}
		return f, name, nil
	default:
		return nil, "", diagnostics.InternalErr("unknown frame prefix %q", prefix)
	}
}

// Define defines a qualified variable ("GF@x", "LF@y", "TF@z") in its
// target frame.
func (m *Memory) Define(qualified string) error {
	f, name, err := m.resolve(qualified)
	if err != nil {
		return err
	}
	return f.Define(name)
}

// Get reads a qualified variable's value.
func (m *Memory) Get(qualified string) (value.Value, error) {
	f, name, err := m.resolve(qualified)
	if err != nil {
		return value.Value{}, err
	}
	return f.Get(name)
}

// GetRaw reads a qualified variable's value without rejecting Uninit.
func (m *Memory) GetRaw(qualified string) (value.Value, error) {
	f, name, err := m.resolve(qualified)
	if err != nil {
		return value.Value{}, err
	}
	return f.Raw(name)
}

// Set writes a qualified variable's value.
func (m *Memory) Set(qualified string, v value.Value) error {
	f, name, err := m.resolve(qualified)
	if err != nil {
		return err
	}
	return f.Set(name, v)
}
