// Package value implements the IPPcode23 dynamic value model: a tagged
// union of Int, Bool, Str and Nil, plus the distinguished Uninit marker
// for a defined-but-unassigned variable.
package value

import "fmt"

// Kind identifies which variant of Value is populated.
type Kind int

const (
	// KindUninit marks a variable that has been defined but never
	// assigned. Reading it is a runtime error (see memory.Frame.Get).
	KindUninit Kind = iota
	KindInt
	KindBool
	KindStr
	KindNil
)

// Value is a tagged union over the four IPPcode23 concrete types plus the
// Uninit marker. Only the field matching Kind is meaningful.
type Value struct {
	Kind Kind
	I    int64
	B    bool
	S    string
}

// Uninit is the zero Value: a fresh, unassigned variable.
var Uninit = Value{Kind: KindUninit}

// Nil is the unique nil value.
var Nil = Value{Kind: KindNil}

// NewInt wraps an int64 as an Int value.
func NewInt(i int64) Value { return Value{Kind: KindInt, I: i} }

// NewBool wraps a bool as a Bool value.
func NewBool(b bool) Value { return Value{Kind: KindBool, B: b} }

// NewStr wraps a string as a Str value.
func NewStr(s string) Value { return Value{Kind: KindStr, S: s} }

func (v Value) IsUninit() bool { return v.Kind == KindUninit }
func (v Value) IsNil() bool    { return v.Kind == KindNil }
func (v Value) IsInt() bool    { return v.Kind == KindInt }
func (v Value) IsBool() bool   { return v.Kind == KindBool }
func (v Value) IsStr() bool    { return v.Kind == KindStr }

// TypeName returns the IPPcode23 type name used by the TYPE instruction:
// "int", "bool", "string", "nil", or "" for Uninit.
func (v Value) TypeName() string {
	switch v.Kind {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindStr:
		return "string"
	case KindNil:
		return "nil"
	default:
		return ""
	}
}

// WriteString renders the value the way WRITE prints it: Int as decimal,
// Bool as "true"/"false", Str raw, Nil as empty.
func (v Value) WriteString() string {
	switch v.Kind {
	case KindInt:
		return fmt.Sprintf("%d", v.I)
	case KindBool:
		if v.B {
			return "true"
		}
		return "false"
	case KindStr:
		return v.S
	default:
		return ""
	}
}

// SameConcreteType reports whether a and b share the same concrete type
// (Int, Bool or Str). Nil and Uninit never compare equal here; callers
// needing nil-aware equality (EQ) special-case KindNil themselves.
func SameConcreteType(a, b Value) bool {
	switch a.Kind {
	case KindInt, KindBool, KindStr:
		return a.Kind == b.Kind
	default:
		return false
	}
}
