package texmath_test

import (
	"errors"
	"testing"

	"github.com/eolymp/go-texmath"
	"github.com/google/go-cmp/cmp"
)

func expandAll(input string, macros texmath.Macros) ([]string, error) {
	settings := texmath.NewSettings(texmath.Options{Macros: macros})
	gullet := texmath.NewMacroExpander(input, settings, texmath.NewRegistry(), texmath.ModeMath)

	var out []string
	for {
		tok, err := gullet.ExpandNextToken()
		if err != nil {
			return nil, err
		}

		if tok.Text == "EOF" {
			return out, nil
		}

		out = append(out, tok.Text)
	}
}

func TestMacroExpander(t *testing.T) {
	macros := func() texmath.Macros {
		return texmath.Macros{
			"\\a":    texmath.MacroText("[#1]"),
			"\\b":    texmath.MacroText("xy"),
			"\\pair": texmath.MacroText("(#1,#2)"),
			"\\loop": texmath.MacroText("\\b\\b"),
		}
	}

	tt := []struct {
		name   string
		input  string
		output []string
	}{
		{name: "plain tokens", input: "a+b", output: []string{"a", "+", "b"}},
		{name: "nested expansion", input: "\\loop", output: []string{"x", "y", "x", "y"}},
		{name: "arguments", input: "\\pair{a}{bc}", output: []string{"(", "a", ",", "b", "c", ")"}},
		{name: "single token arguments", input: "\\pair ab", output: []string{"(", "a", ",", "b", ")"}},
		{name: "argument is expanded after substitution", input: "\\a\\b", output: []string{"[", "x", "y", "]"}},
		{name: "expandafter", input: "\\expandafter\\a\\b", output: []string{"[", "x", "]", "y"}},
		{name: "noexpand", input: "\\noexpand\\b", output: []string{"\\relax"}},
		{name: "first of two", input: "\\@firstoftwo{a}{b}", output: []string{"a"}},
		{name: "second of two", input: "\\@secondoftwo{a}{b}", output: []string{"b"}},
		{name: "next char matches", input: "\\@ifnextchar x{A}{B}x", output: []string{"A", "x"}},
		{name: "next char differs", input: "\\@ifnextchar x{A}{B}y", output: []string{"B", "y"}},
		{name: "star is consumed", input: "\\@ifstar{A}{B}*", output: []string{"A"}},
		{name: "no star", input: "\\@ifstar{A}{B}y", output: []string{"B", "y"}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := expandAll(tc.input, macros())
			if err != nil {
				t.Fatal(err)
			}

			if !cmp.Equal(got, tc.output) {
				t.Errorf("Tokens do not match:\n%s\n", cmp.Diff(tc.output, got))
			}
		})
	}
}

func TestMacroExpanderErrors(t *testing.T) {
	macros := texmath.Macros{"\\pair": texmath.MacroText("(#1,#2)")}

	tt := []struct {
		name  string
		input string
		kind  error
	}{
		{name: "missing argument", input: "\\pair{a}", kind: texmath.ErrUnexpectedEOF},
		{name: "unclosed argument", input: "\\pair{a}{b", kind: texmath.ErrUnexpectedEOF},
		{name: "extra brace", input: "\\pair}", kind: texmath.ErrExpansion},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := expandAll(tc.input, macros); !errors.Is(err, tc.kind) {
				t.Errorf("Expected %v, got %v", tc.kind, err)
			}
		})
	}
}

func TestExpandMacroAsText(t *testing.T) {
	settings := texmath.NewSettings(texmath.Options{Macros: texmath.Macros{"\\n": texmath.MacroText("\\m2"), "\\m": texmath.MacroText("1")}})
	gullet := texmath.NewMacroExpander("", settings, texmath.NewRegistry(), texmath.ModeMath)

	text, ok, err := gullet.ExpandMacroAsText("\\n")
	if err != nil {
		t.Fatal(err)
	}

	if !ok || text != "12" {
		t.Errorf("Expected 12, got %q (defined: %v)", text, ok)
	}

	if _, ok, _ := gullet.ExpandMacroAsText("\\undefined"); ok {
		t.Errorf("Expected undefined macro to be reported")
	}
}

func TestDots(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		output []string
	}{
		{name: "before binary operator", input: "\\dots+", output: []string{"\\cdots", "+"}},
		{name: "before relation", input: "\\dots=", output: []string{"\\cdots", "="}},
		{name: "before comma", input: "\\dots,", output: []string{"\\ldots", ","}},
		{name: "before ordinary symbol", input: "\\dots x", output: []string{"\\ldots", "x"}},
		{name: "before integral", input: "\\dots\\int", output: []string{"\\mskip", "-", "3", "m", "u", "\\relax", "\\cdots", "\\int"}},
		{name: "before closing delimiter", input: "\\dots)", output: []string{"\\ldots", "\\mskip", "+", "3", "m", "u", "\\relax", ")"}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := expandAll(tc.input, texmath.Macros{})
			if err != nil {
				t.Fatal(err)
			}

			if !cmp.Equal(got, tc.output) {
				t.Errorf("Tokens do not match:\n%s\n", cmp.Diff(tc.output, got))
			}
		})
	}
}
