package texmath_test

import (
	"errors"
	"testing"

	"github.com/eolymp/go-texmath"
	"github.com/google/go-cmp/cmp"
)

func lexAll(t *testing.T, input string, settings *texmath.Settings) ([]string, error) {
	t.Helper()

	lexer := texmath.NewLexer(input, settings)

	var out []string
	for {
		tok, err := lexer.Lex()
		if err != nil {
			return out, err
		}

		if tok.Text == "EOF" {
			return out, nil
		}

		out = append(out, tok.Text)
	}
}

func TestLexer(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		output []string
	}{
		{name: "characters", input: "a+1", output: []string{"a", "+", "1"}},
		{name: "spaces are collapsed", input: "a  \n\t b", output: []string{"a", " ", "b"}},
		{name: "control word eats spaces", input: "\\alpha  x", output: []string{"\\alpha", "x"}},
		{name: "control word with at", input: "\\df@tag{1}", output: []string{"\\df@tag", "{", "1", "}"}},
		{name: "control symbol keeps spaces", input: "\\{ x", output: []string{"\\{", " ", "x"}},
		{name: "control space", input: "a\\  b", output: []string{"a", "\\ ", "b"}},
		{name: "backslash newline", input: "a\\\nb", output: []string{"a", "\\ ", "b"}},
		{name: "comment", input: "a% comment\nb", output: []string{"a", "b"}},
		{name: "escaped percent", input: "50\\%", output: []string{"5", "0", "\\%"}},
		{name: "verb", input: "\\verb|a b|c", output: []string{"\\verb|a b|", "c"}},
		{name: "verb star", input: "\\verb*+x y+", output: []string{"\\verb*+x y+"}},
		{name: "verb without delimiter", input: "\\verb|ab", output: []string{"\\verb", "|", "a", "b"}},
		{name: "combining marks stay with character", input: "a\u0301b", output: []string{"a\u0301", "b"}},
		{name: "unicode", input: "α≤β", output: []string{"α", "≤", "β"}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := lexAll(t, tc.input, nil)
			if err != nil {
				t.Fatal(err)
			}

			if !cmp.Equal(got, tc.output) {
				t.Errorf("Tokens do not match:\n%s\n", cmp.Diff(tc.output, got))
			}
		})
	}
}

func TestLexerLocations(t *testing.T) {
	lexer := texmath.NewLexer("x^{\\beta}", nil)

	want := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 8}, {8, 9}}
	for _, w := range want {
		tok, err := lexer.Lex()
		if err != nil {
			t.Fatal(err)
		}

		if tok.Loc.Start != w[0] || tok.Loc.End != w[1] {
			t.Errorf("Location of %q does not match: want %v, got [%d %d]", tok.Text, w, tok.Loc.Start, tok.Loc.End)
		}
	}
}

func TestLexerErrors(t *testing.T) {
	tt := []struct {
		name     string
		input    string
		position int
	}{
		{name: "trailing backslash", input: "ab\\", position: 2},
		{name: "control character", input: "a\u0007", position: 1},
		{name: "private use", input: "x\ue000", position: 1},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := lexAll(t, tc.input, nil)

			var perr *texmath.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Expected parse error, got %v", err)
			}

			if !errors.Is(err, texmath.ErrLex) {
				t.Errorf("Expected lex error, got %v", perr.Kind)
			}

			if perr.Position() != tc.position {
				t.Errorf("Position does not match: want %d, got %d", tc.position, perr.Position())
			}
		})
	}
}

func TestLexerCommentAtEnd(t *testing.T) {
	if _, err := lexAll(t, "a % unterminated", nil); err != nil {
		t.Errorf("Comment at the end must be accepted by default: %v", err)
	}

	strict := texmath.NewSettings(texmath.Options{Strict: texmath.StrictError})
	if _, err := lexAll(t, "a % unterminated", strict); err == nil {
		t.Errorf("Comment at the end must be rejected in strict mode")
	}
}
