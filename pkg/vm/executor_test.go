package vm_test

import (
	"strings"
	"testing"

	"ippcode23/pkg/diagnostics"
	"ippcode23/pkg/loader"
	"ippcode23/pkg/vm"
)

func run(t *testing.T, xmlSrc, stdin string) (string, int, error) {
	t.Helper()
	prog, err := loader.Load(strings.NewReader(xmlSrc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var out strings.Builder
	exec := vm.New(prog, strings.NewReader(stdin), &out)
	code, err := exec.Run()
	return out.String(), code, err
}

func TestHelloWorld(t *testing.T) {
	src := `<program language="IPPcode23">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@g</arg1></instruction>
		<instruction order="2" opcode="MOVE">
			<arg1 type="var">GF@g</arg1>
			<arg2 type="string">Hello\032World</arg2>
		</instruction>
		<instruction order="3" opcode="WRITE"><arg1 type="var">GF@g</arg1></instruction>
	</program>`

	out, code, err := run(t, src, "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if out != "Hello World" {
		t.Fatalf("stdout = %q, want %q", out, "Hello World")
	}
}

func TestIntegerArithmeticWithJump(t *testing.T) {
	src := `<program language="IPPcode23">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@x</arg1></instruction>
		<instruction order="2" opcode="MOVE"><arg1 type="var">GF@x</arg1><arg2 type="int">10</arg2></instruction>
		<instruction order="3" opcode="DEFVAR"><arg1 type="var">GF@y</arg1></instruction>
		<instruction order="4" opcode="MOVE"><arg1 type="var">GF@y</arg1><arg2 type="int">3</arg2></instruction>
		<instruction order="5" opcode="DEFVAR"><arg1 type="var">GF@z</arg1></instruction>
		<instruction order="6" opcode="IDIV"><arg1 type="var">GF@z</arg1><arg2 type="var">GF@x</arg2><arg3 type="var">GF@y</arg3></instruction>
		<instruction order="7" opcode="JUMPIFEQ"><arg1 type="label">end</arg1><arg2 type="var">GF@z</arg2><arg3 type="int">3</arg3></instruction>
		<instruction order="8" opcode="WRITE"><arg1 type="string">fail</arg1></instruction>
		<instruction order="9" opcode="LABEL"><arg1 type="label">end</arg1></instruction>
		<instruction order="10" opcode="WRITE"><arg1 type="var">GF@z</arg1></instruction>
	</program>`

	out, code, err := run(t, src, "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 0 || out != "3" {
		t.Fatalf("got out=%q code=%d, want out=%q code=0", out, code, "3")
	}
}

func TestFunctionCallViaFrames(t *testing.T) {
	src := `<program language="IPPcode23">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@r</arg1></instruction>
		<instruction order="2" opcode="CREATEFRAME"></instruction>
		<instruction order="3" opcode="DEFVAR"><arg1 type="var">TF@a</arg1></instruction>
		<instruction order="4" opcode="MOVE"><arg1 type="var">TF@a</arg1><arg2 type="int">7</arg2></instruction>
		<instruction order="5" opcode="PUSHFRAME"></instruction>
		<instruction order="6" opcode="CALL"><arg1 type="label">dbl</arg1></instruction>
		<instruction order="7" opcode="POPFRAME"></instruction>
		<instruction order="8" opcode="WRITE"><arg1 type="var">GF@r</arg1></instruction>
		<instruction order="9" opcode="EXIT"><arg1 type="int">0</arg1></instruction>
		<instruction order="10" opcode="LABEL"><arg1 type="label">dbl</arg1></instruction>
		<instruction order="11" opcode="DEFVAR"><arg1 type="var">LF@t</arg1></instruction>
		<instruction order="12" opcode="ADD"><arg1 type="var">LF@t</arg1><arg2 type="var">LF@a</arg2><arg3 type="var">LF@a</arg3></instruction>
		<instruction order="13" opcode="MOVE"><arg1 type="var">GF@r</arg1><arg2 type="var">LF@t</arg2></instruction>
		<instruction order="14" opcode="RETURN"></instruction>
	</program>`

	out, code, err := run(t, src, "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 0 || out != "14" {
		t.Fatalf("got out=%q code=%d, want out=%q code=0", out, code, "14")
	}
}

func TestTypeErrorOnAdd(t *testing.T) {
	src := `<program language="IPPcode23">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@a</arg1></instruction>
		<instruction order="2" opcode="MOVE"><arg1 type="var">GF@a</arg1><arg2 type="string">x</arg2></instruction>
		<instruction order="3" opcode="DEFVAR"><arg1 type="var">GF@b</arg1></instruction>
		<instruction order="4" opcode="ADD"><arg1 type="var">GF@b</arg1><arg2 type="var">GF@a</arg2><arg3 type="int">1</arg3></instruction>
	</program>`

	out, code, err := run(t, src, "")
	if err == nil {
		t.Fatal("expected an error")
	}
	if code != int(diagnostics.OperandType) {
		t.Fatalf("code = %d, want %d", code, diagnostics.OperandType)
	}
	if out != "" {
		t.Fatalf("stdout = %q, want empty", out)
	}
}

func TestReadFallbackToNil(t *testing.T) {
	src := `<program language="IPPcode23">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@v</arg1></instruction>
		<instruction order="2" opcode="READ"><arg1 type="var">GF@v</arg1><arg2 type="type">int</arg2></instruction>
		<instruction order="3" opcode="DEFVAR"><arg1 type="var">GF@t</arg1></instruction>
		<instruction order="4" opcode="TYPE"><arg1 type="var">GF@t</arg1><arg2 type="var">GF@v</arg2></instruction>
		<instruction order="5" opcode="WRITE"><arg1 type="var">GF@t</arg1></instruction>
	</program>`

	out, code, err := run(t, src, "notanumber\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 0 || out != "nil" {
		t.Fatalf("got out=%q code=%d, want out=%q code=0", out, code, "nil")
	}
}

func TestDuplicateOrderRejectedBeforeExecution(t *testing.T) {
	src := `<program language="IPPcode23">
		<instruction order="1" opcode="BREAK"></instruction>
		<instruction order="1" opcode="BREAK"></instruction>
	</program>`
	_, err := loader.Load(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected load to fail")
	}
	d, ok := err.(*diagnostics.Diagnostic)
	if !ok || d.Code != diagnostics.XMLStructure {
		t.Fatalf("expected XMLStructure diagnostic, got %v", err)
	}
}

func TestIDivByZero(t *testing.T) {
	src := `<program language="IPPcode23">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@z</arg1></instruction>
		<instruction order="2" opcode="IDIV"><arg1 type="var">GF@z</arg1><arg2 type="int">1</arg2><arg3 type="int">0</arg3></instruction>
	</program>`
	_, code, err := run(t, src, "")
	if err == nil || code != int(diagnostics.BadValue) {
		t.Fatalf("code=%d err=%v, want %d", code, err, diagnostics.BadValue)
	}
}

func TestExitBoundaries(t *testing.T) {
	cases := []struct {
		name string
		arg  string
		kind string
		want int
	}{
		{"neg", "-1", "int", int(diagnostics.BadValue)},
		{"toobig", "50", "int", int(diagnostics.BadValue)},
		{"zero", "0", "int", 0},
		{"maxvalid", "49", "int", 49},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := `<program language="IPPcode23">
				<instruction order="1" opcode="EXIT"><arg1 type="` + c.kind + `">` + c.arg + `</arg1></instruction>
			</program>`
			_, code, _ := run(t, src, "")
			if code != c.want {
				t.Fatalf("code = %d, want %d", code, c.want)
			}
		})
	}
}

func TestExitWithStringOperandIsTypeError(t *testing.T) {
	src := `<program language="IPPcode23">
		<instruction order="1" opcode="EXIT"><arg1 type="string">x</arg1></instruction>
	</program>`
	_, code, err := run(t, src, "")
	if err == nil || code != int(diagnostics.OperandType) {
		t.Fatalf("code=%d err=%v, want %d", code, err, diagnostics.OperandType)
	}
}

func TestGetCharAtLengthFails(t *testing.T) {
	src := `<program language="IPPcode23">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@c</arg1></instruction>
		<instruction order="2" opcode="GETCHAR"><arg1 type="var">GF@c</arg1><arg2 type="string">ab</arg2><arg3 type="int">2</arg3></instruction>
	</program>`
	_, code, err := run(t, src, "")
	if err == nil || code != int(diagnostics.StringOp) {
		t.Fatalf("code=%d err=%v, want %d", code, err, diagnostics.StringOp)
	}
}

func TestStri2IntLastIndexSucceeds(t *testing.T) {
	src := `<program language="IPPcode23">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@c</arg1></instruction>
		<instruction order="2" opcode="STRI2INT"><arg1 type="var">GF@c</arg1><arg2 type="string">ab</arg2><arg3 type="int">1</arg3></instruction>
		<instruction order="3" opcode="WRITE"><arg1 type="var">GF@c</arg1></instruction>
	</program>`
	out, code, err := run(t, src, "")
	if err != nil || code != 0 {
		t.Fatalf("Run failed: out=%q code=%d err=%v", out, code, err)
	}
	if out != "98" { // 'b'
		t.Fatalf("out = %q, want 98", out)
	}
}

func TestTFBeforeCreateFrameFails(t *testing.T) {
	src := `<program language="IPPcode23">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">TF@x</arg1></instruction>
	</program>`
	_, code, err := run(t, src, "")
	if err == nil || code != int(diagnostics.MissingFrame) {
		t.Fatalf("code=%d err=%v, want %d", code, err, diagnostics.MissingFrame)
	}
}

func TestPushsPops(t *testing.T) {
	src := `<program language="IPPcode23">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@w</arg1></instruction>
		<instruction order="2" opcode="PUSHS"><arg1 type="int">42</arg1></instruction>
		<instruction order="3" opcode="POPS"><arg1 type="var">GF@w</arg1></instruction>
		<instruction order="4" opcode="WRITE"><arg1 type="var">GF@w</arg1></instruction>
	</program>`
	out, code, err := run(t, src, "")
	if err != nil || code != 0 || out != "42" {
		t.Fatalf("out=%q code=%d err=%v", out, code, err)
	}
}
