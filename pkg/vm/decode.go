package vm

import (
	"regexp"
	"strconv"
	"strings"

	"ippcode23/pkg/diagnostics"
	"ippcode23/pkg/program"
	"ippcode23/pkg/value"
)

var escapeRE = regexp.MustCompile(`\\([0-9]{3})`)

// decodeEscapes replaces every \ddd sub-sequence (exactly three decimal
// digits) with the rune of that code point. Decoding happens once, at
// constant-materialization time; a variable's stored string is already
// decoded and must never be re-decoded.
func decodeEscapes(s string) string {
	return escapeRE.ReplaceAllStringFunc(s, func(m string) string {
		code, err := strconv.Atoi(m[1:])
		if err != nil {
			return m
		}
		return string(rune(code))
	})
}

// decodeConstant decodes a non-"var" argument's lexeme into a Value per
// its declared kind.
func decodeConstant(arg program.Argument) (value.Value, error) {
	switch arg.Kind {
	case program.ArgInt:
		n, err := strconv.ParseInt(arg.Lexeme, 10, 64)
		if err != nil {
			return value.Value{}, diagnostics.OperandTypeErr("invalid int literal %q", arg.Lexeme)
		}
		return value.NewInt(n), nil
	case program.ArgBool:
		return value.NewBool(strings.EqualFold(arg.Lexeme, "true")), nil
	case program.ArgString:
		return value.NewStr(decodeEscapes(arg.Lexeme)), nil
	case program.ArgNil:
		if arg.Lexeme != "nil" {
			return value.Value{}, diagnostics.OperandTypeErr("invalid nil literal %q", arg.Lexeme)
		}
		return value.Nil, nil
	default:
		return value.Value{}, diagnostics.OperandTypeErr("cannot use %s argument as a value", arg.Kind)
	}
}
