package texmath_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/eolymp/go-texmath"
	"github.com/google/go-cmp/cmp"
)

// describe prints a node as type[.family][:text](children), named fields go before the body
func describe(n *texmath.ParseNode) string {
	if n == nil {
		return "_"
	}

	var b strings.Builder
	b.WriteString(string(n.Type))

	if n.Family != "" {
		b.WriteString("." + n.Family)
	}

	if n.Text != "" {
		b.WriteString(":" + n.Text)
	}

	var children []string
	for _, f := range []struct {
		name string
		node *texmath.ParseNode
	}{
		{"base", n.Base}, {"sub", n.Sub}, {"sup", n.Sup}, {"numer", n.Numer}, {"denom", n.Denom},
	} {
		if f.node != nil {
			children = append(children, f.name+"="+describe(f.node))
		}
	}

	for _, c := range n.Body {
		children = append(children, describe(c))
	}

	if len(children) > 0 {
		b.WriteString("(" + strings.Join(children, " ") + ")")
	}

	return b.String()
}

func describeAll(nodes []*texmath.ParseNode) []string {
	out := []string{}
	for _, n := range nodes {
		out = append(out, describe(n))
	}

	return out
}

func TestParse(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		output []string
	}{
		{
			name:   "symbols",
			input:  "a+1",
			output: []string{"mathord:a", "atom.bin:+", "textord:1"},
		},
		{
			name:   "leading binary operator is a prefix",
			input:  "-x",
			output: []string{"atom.open:-", "mathord:x"},
		},
		{
			name:   "binary operator after relation is a prefix",
			input:  "a=-b",
			output: []string{"mathord:a", "atom.rel:=", "atom.open:-", "mathord:b"},
		},
		{
			name:   "sub and superscript in one node",
			input:  "x^2_i",
			output: []string{"supsub(base=mathord:x sub=mathord:i sup=textord:2)"},
		},
		{
			name:   "prime",
			input:  "f'",
			output: []string{"supsub(base=mathord:f sup=ordgroup(textord:\\prime))"},
		},
		{
			name:   "fraction",
			input:  "\\frac12",
			output: []string{"genfrac(numer=ordgroup(textord:1) denom=ordgroup(textord:2))"},
		},
		{
			name:   "infix fraction",
			input:  "{a \\over b}",
			output: []string{"ordgroup(genfrac(numer=ordgroup(mathord:a) denom=ordgroup(mathord:b)))"},
		},
		{
			name:   "spaces are ignored in math",
			input:  "a   b",
			output: []string{"mathord:a", "mathord:b"},
		},
		{
			name:   "macro with argument",
			input:  "\\def\\sq#1{#1^2}\\sq y",
			output: []string{"supsub(base=mathord:y sup=textord:2)"},
		},
		{
			name:   "delimited macro argument",
			input:  "\\def\\x#1.{#1}\\x ab.c",
			output: []string{"mathord:a", "mathord:b", "mathord:c"},
		},
		{
			name:   "newcommand",
			input:  "\\newcommand{\\pair}[2]{(#1,#2)}\\pair ab",
			output: []string{"atom.open:(", "mathord:a", "atom.punct:,", "mathord:b", "atom.close:)"},
		},
		{
			name:   "text ligatures",
			input:  "\\text{a--b}",
			output: []string{"text(textord:a textord:-- textord:b)"},
		},
		{
			name:   "let copies the current meaning",
			input:  "\\def\\b{c}\\let\\a\\b\\def\\b{d}\\a\\b",
			output: []string{"mathord:c", "mathord:d"},
		},
		{
			name:   "futurelet peeks at the token after next",
			input:  "\\def\\y{\\x}\\futurelet\\x\\y z",
			output: []string{"mathord:z", "mathord:z"},
		},
		{
			name:   "edef expands the body at definition",
			input:  "\\def\\b{c}\\edef\\a{\\b}\\def\\b{d}\\a\\b",
			output: []string{"mathord:c", "mathord:d"},
		},
		{
			name:   "parameter delimited by a brace",
			input:  "\\def\\x#1#{[#1]}\\x ab{c}",
			output: []string{"atom.open:[", "mathord:a", "mathord:b", "atom.close:]", "ordgroup(mathord:c)"},
		},
		{
			name:   "toggle",
			input:  "\\toggle{a}{b}\\endtoggle",
			output: []string{"toggle(ordgroup(mathord:a) ordgroup(mathord:b))"},
		},
		{
			name:   "unicode superscript",
			input:  "x²³",
			output: []string{"supsub(base=mathord:x sup=ordgroup(textord:2 textord:3))"},
		},
		{
			name:   "unicode sub and superscript",
			input:  "x₁²",
			output: []string{"supsub(base=mathord:x sub=ordgroup(textord:1) sup=ordgroup(textord:2))"},
		},
		{
			name:   "unsupported command",
			input:  "\\zzzzz",
			output: []string{"color(text(textord:\\ textord:z textord:z textord:z textord:z textord:z))"},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			tree, err := texmath.Parse(tc.input, texmath.Options{})
			if err != nil {
				t.Fatal(err)
			}

			if got := describeAll(tree); !cmp.Equal(got, tc.output) {
				t.Errorf("Tree does not match:\n%s\n", cmp.Diff(tc.output, got))
			}
		})
	}
}

func TestParseGroupScoping(t *testing.T) {
	tree, err := texmath.Parse("{\\def\\x{A}\\x}\\x", texmath.Options{})
	if err != nil {
		t.Fatal(err)
	}

	got := describeAll(tree)
	want := []string{"ordgroup(mathord:A)", "color(text(textord:\\ textord:x))"}
	if !cmp.Equal(got, want) {
		t.Errorf("Local definition leaked out of its group:\n%s\n", cmp.Diff(want, got))
	}

	tree, err = texmath.Parse("{\\gdef\\x{A}}\\x", texmath.Options{})
	if err != nil {
		t.Fatal(err)
	}

	if got := describeAll(tree); !cmp.Equal(got, []string{"ordgroup", "mathord:A"}) {
		t.Errorf("Global definition is not visible after the group: %v", got)
	}
}

func TestParseGlobalMacrosAreWrittenBack(t *testing.T) {
	macros := texmath.Macros{}

	if _, err := texmath.Parse("\\gdef\\y{B}\\def\\z{C}", texmath.Options{Macros: macros}); err != nil {
		t.Fatal(err)
	}

	if _, ok := macros["\\y"]; !ok {
		t.Errorf("Global macro \\y is missing from the macro table")
	}

	tree, err := texmath.Parse("\\y", texmath.Options{Macros: macros})
	if err != nil {
		t.Fatal(err)
	}

	if got := describeAll(tree); !cmp.Equal(got, []string{"mathord:B"}) {
		t.Errorf("Macro table is not reused: %v", got)
	}
}

func TestParseArgumentCount(t *testing.T) {
	tt := []struct {
		name  string
		input string
	}{
		{name: "frac", input: "\\frac{1}{2}"},
		{name: "sqrt", input: "\\sqrt{2}"},
		{name: "textcolor", input: "\\textcolor{red}{x}"},
		{name: "overset", input: "\\overset{a}{b}"},
		{name: "rule", input: "\\rule{1em}{2em}"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := texmath.Parse(tc.input, texmath.Options{}); err != nil {
				t.Errorf("Expected success with all arguments: %v", err)
			}

			// drop the last argument
			truncated := tc.input[:strings.LastIndex(tc.input, "{")]
			_, err := texmath.Parse(truncated, texmath.Options{})
			if !errors.Is(err, texmath.ErrUnexpectedEOF) && !errors.Is(err, texmath.ErrParse) {
				t.Errorf("Expected argument error for %q, got %v", truncated, err)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tt := []struct {
		name     string
		input    string
		kind     error
		message  string
		position int
	}{
		{name: "double superscript", input: "a^b^c", kind: texmath.ErrParse, message: "Double superscript", position: 3},
		{name: "double subscript", input: "a_b_c", kind: texmath.ErrParse, message: "Double subscript", position: 3},
		{name: "missing argument", input: "\\frac{1}", kind: texmath.ErrUnexpectedEOF, position: 8},
		{name: "unbalanced brace", input: "{a", kind: texmath.ErrUnexpectedEOF, message: "Expected '}', got end of input", position: 2},
		{name: "extra brace", input: "a}", kind: texmath.ErrParse, position: 1},
		{name: "multiple infix", input: "a \\over b \\over c", kind: texmath.ErrMultipleInfix, position: 10},
		{name: "environment mismatch", input: "\\begin{matrix}a\\end{pmatrix}", kind: texmath.ErrParse, message: "Mismatch: \\begin{matrix} matched by \\end{pmatrix}", position: 15},
		{name: "unknown environment", input: "\\begin{foo}\\end{foo}", kind: texmath.ErrParse, message: "No such environment: foo", position: 6},
		{name: "double unicode superscript", input: "x^2³", kind: texmath.ErrParse, message: "Double superscript", position: 3},
		{name: "unclosed toggle", input: "\\toggle{a}", kind: texmath.ErrUnexpectedEOF, position: 10},
		{name: "unbounded recursion", input: "\\def\\a{\\a}\\a", kind: texmath.ErrTooManyExpansions, position: -1},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := texmath.Parse(tc.input, texmath.Options{})

			var perr *texmath.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Expected parse error, got %v", err)
			}

			if !errors.Is(err, tc.kind) {
				t.Errorf("Error kind does not match: want %v, got %v", tc.kind, perr.Kind)
			}

			if tc.message != "" && perr.Message != tc.message {
				t.Errorf("Message does not match: want %q, got %q", tc.message, perr.Message)
			}

			if tc.position >= 0 && perr.Position() != tc.position {
				t.Errorf("Position does not match: want %d, got %d", tc.position, perr.Position())
			}
		})
	}
}

func TestParseMaxExpand(t *testing.T) {
	input := "\\def\\a{x}\\a\\a\\a\\a"

	if _, err := texmath.Parse(input, texmath.Options{MaxExpand: 3}); !errors.Is(err, texmath.ErrTooManyExpansions) {
		t.Errorf("Expected expansion limit error, got %v", err)
	}

	if _, err := texmath.Parse(input, texmath.Options{MaxExpand: 4}); err != nil {
		t.Errorf("Expected success within the limit: %v", err)
	}
}

func TestParseArray(t *testing.T) {
	tree, err := texmath.Parse("\\begin{array}{c|l}a & b \\\\ \\hline c & d\\end{array}", texmath.Options{})
	if err != nil {
		t.Fatal(err)
	}

	if len(tree) != 1 || tree[0].Type != texmath.TypeArray {
		t.Fatalf("Expected a single array, got %v", describeAll(tree))
	}

	array := tree[0]

	var rows [][]string
	for _, row := range array.Rows {
		rows = append(rows, describeAll(row))
	}

	want := [][]string{
		{"ordgroup(mathord:a)", "ordgroup(mathord:b)"},
		{"ordgroup(mathord:c)", "ordgroup(mathord:d)"},
	}

	if !cmp.Equal(rows, want) {
		t.Errorf("Rows do not match:\n%s\n", cmp.Diff(want, rows))
	}

	if !cmp.Equal(array.HLinesBeforeRow, [][]bool{nil, {false}, nil}) {
		t.Errorf("Horizontal lines do not match: %v", array.HLinesBeforeRow)
	}

	cols := []texmath.ColumnSpec{{Align: "c", BorderRight: texmath.BorderSolid}, {Align: "l"}}
	if !cmp.Equal(array.Cols, cols) {
		t.Errorf("Columns do not match:\n%s\n", cmp.Diff(cols, array.Cols))
	}
}

func TestParseAlignedKeepsBinaryOperators(t *testing.T) {
	tree, err := texmath.Parse("\\begin{aligned}a &+ b\\end{aligned}", texmath.Options{DisplayMode: true})
	if err != nil {
		t.Fatal(err)
	}

	got := describe(tree[0].Rows[0][1])
	if want := "ordgroup(ordgroup atom.bin:+ mathord:b)"; got != want {
		t.Errorf("Cell does not match: want %s, got %s", want, got)
	}
}
