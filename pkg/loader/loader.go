// Package loader turns an IPPcode23 XML document into a validated
// program.Program: a sorted, gap-free instruction list plus a label
// table.
package loader

import (
	"encoding/xml"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"ippcode23/pkg/diagnostics"
	"ippcode23/pkg/program"
)

type xmlArgument struct {
	XMLName xml.Name
	Type    string `xml:"type,attr"`
	Text    string `xml:",chardata"`
}

type xmlInstruction struct {
	Order  string        `xml:"order,attr"`
	Opcode string        `xml:"opcode,attr"`
	Args   []xmlArgument `xml:",any"`
}

// XMLName carries no tag here: tagging it "program" would make
// encoding/xml reject a mismatched root element itself, inside Decode,
// as a syntax failure (exit 31) before the semantic check below ever
// runs. The root element name must instead be validated explicitly, so
// a wrong tag is reported as unexpected XML structure (exit 32).
type xmlProgram struct {
	XMLName      xml.Name
	Language     string           `xml:"language,attr"`
	Instructions []xmlInstruction `xml:"instruction"`
}

var argTagRE = regexp.MustCompile(`^arg([1-9][0-9]*)$`)

// Load reads and validates a full IPPcode23 XML document from r.
func Load(r io.Reader) (*program.Program, error) {
	var doc xmlProgram
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, diagnostics.MalformedXMLErr("malformed XML: %v", err)
	}

	if doc.XMLName.Local != "program" {
		return nil, diagnostics.XMLStructureErr("root element must be <program>, got <%s>", doc.XMLName.Local)
	}
	if !strings.EqualFold(doc.Language, "IPPcode23") {
		return nil, diagnostics.XMLStructureErr("unexpected language attribute %q", doc.Language)
	}

	ins := make([]program.Instruction, 0, len(doc.Instructions))
	for _, xi := range doc.Instructions {
		instr, err := parseInstruction(xi)
		if err != nil {
			return nil, err
		}
		ins = append(ins, instr)
	}

	sort.SliceStable(ins, func(i, j int) bool { return ins[i].Order < ins[j].Order })
	for i := 1; i < len(ins); i++ {
		if ins[i].Order == ins[i-1].Order {
			return nil, diagnostics.XMLStructureErr("duplicate instruction order %d", ins[i].Order)
		}
	}

	labels, err := buildLabels(ins)
	if err != nil {
		return nil, err
	}

	return &program.Program{Instructions: ins, Labels: labels}, nil
}

func parseInstruction(xi xmlInstruction) (program.Instruction, error) {
	order, err := strconv.Atoi(xi.Order)
	if err != nil || order <= 0 {
		return program.Instruction{}, diagnostics.XMLStructureErr("invalid instruction order %q", xi.Order)
	}

	opcode, ok := program.ParseOpcode(xi.Opcode)
	if !ok {
		return program.Instruction{}, diagnostics.XMLStructureErr("unknown opcode %q", xi.Opcode)
	}

	args, err := parseArgs(xi.Args)
	if err != nil {
		return program.Instruction{}, err
	}

	want := program.ArgCount[opcode]
	if len(args) != want {
		return program.Instruction{}, diagnostics.XMLStructureErr(
			"opcode %s expects %d argument(s), got %d", opcode, want, len(args))
	}

	return program.Instruction{Order: order, Opcode: opcode, Args: args}, nil
}

func parseArgs(xargs []xmlArgument) ([]program.Argument, error) {
	type indexed struct {
		idx int
		arg program.Argument
	}

	entries := make([]indexed, 0, len(xargs))
	for _, xa := range xargs {
		m := argTagRE.FindStringSubmatch(xa.XMLName.Local)
		if m == nil {
			return nil, diagnostics.XMLStructureErr("unexpected instruction child <%s>", xa.XMLName.Local)
		}
		idx, _ := strconv.Atoi(m[1])
		if idx < 1 || idx > 3 {
			return nil, diagnostics.XMLStructureErr("argument index out of range: <%s>", xa.XMLName.Local)
		}
		if !program.IsValidArgKind(xa.Type) {
			return nil, diagnostics.XMLStructureErr("unknown argument type %q", xa.Type)
		}
		entries = append(entries, indexed{idx: idx, arg: program.Argument{
			Kind:   program.ArgKind(xa.Type),
			Lexeme: xa.Text,
		}})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].idx < entries[j].idx })

	args := make([]program.Argument, len(entries))
	for i, e := range entries {
		if e.idx != i+1 {
			return nil, diagnostics.XMLStructureErr("arguments must occupy positions 1..n without gaps or duplicates")
		}
		args[i] = e.arg
	}

	return args, nil
}

// buildLabels scans the sorted instruction list once and records, for
// each LABEL, the 1-based index of the instruction that follows it.
func buildLabels(ins []program.Instruction) (map[string]int, error) {
	labels := make(map[string]int)
	for i, in := range ins {
		if in.Opcode != program.OpLabel {
			continue
		}
		arg := in.Arg(1)
		if arg.Kind != program.ArgLabel {
			return nil, diagnostics.OperandTypeErr("LABEL argument must be of kind label, got %s", arg.Kind)
		}
		if _, dup := labels[arg.Lexeme]; dup {
			return nil, diagnostics.SemanticErr("duplicate label %q", arg.Lexeme)
		}
		labels[arg.Lexeme] = i + 2
	}
	return labels, nil
}
