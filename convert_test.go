package texmath_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/eolymp/go-texmath"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"
)

// wellFormed checks that every closing tag matches the innermost open one
func wellFormed(t *testing.T, markup string) {
	t.Helper()

	var stack []string
	z := html.NewTokenizer(strings.NewReader(markup))

	for {
		switch z.Next() {
		case html.ErrorToken:
			if len(stack) > 0 {
				t.Errorf("Unclosed elements %v in %s", stack, markup)
			}

			return
		case html.StartTagToken:
			name, _ := z.TagName()
			stack = append(stack, string(name))
		case html.EndTagToken:
			name, _ := z.TagName()
			if len(stack) == 0 || stack[len(stack)-1] != string(name) {
				t.Fatalf("Unexpected </%s> in %s", name, markup)
			}

			stack = stack[:len(stack)-1]
		}
	}
}

// findAll returns elements with the given tag in document order
func findAll(t *testing.T, markup, tag string) []*html.Node {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatal(err)
	}

	var found []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			found = append(found, n)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return found
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}

	return ""
}

func TestConvert(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		opts   texmath.Options
		output string
	}{
		{
			name:   "superscript is the root",
			input:  "x^2",
			output: "<math><msup><mi>x</mi><mn>2</mn></msup></math>",
		},
		{
			name:   "fraction",
			input:  "\\frac{1}{2}",
			output: "<math><mfrac><mn>1</mn><mn>2</mn></mfrac></math>",
		},
		{
			name:   "sub and superscript",
			input:  "x_i^2",
			output: "<math><msubsup><mi>x</mi><mi>i</mi><mn>2</mn></msubsup></math>",
		},
		{
			name:   "soft break after operator",
			input:  "a+b",
			output: "<math><mrow><mi>a</mi><mo>+</mo></mrow><mrow><mi>b</mi></mrow></math>",
		},
		{
			name:   "no soft breaks",
			input:  "a+b",
			opts:   texmath.Options{Wrap: texmath.WrapNone},
			output: "<math><mrow><mi>a</mi><mo>+</mo><mi>b</mi></mrow></math>",
		},
		{
			name:   "break before second equals sign",
			input:  "a=b=c",
			opts:   texmath.Options{Wrap: texmath.WrapEquals},
			output: "<math><mrow><mi>a</mi><mo>=</mo><mi>b</mi></mrow><mrow><mo>=</mo><mi>c</mi></mrow></math>",
		},
		{
			name:   "display mode",
			input:  "a+b",
			opts:   texmath.Options{DisplayMode: true},
			output: `<math display="block" class="tml-display" style="display:block math;"><mrow><mi>a</mi><mo>+</mo><mi>b</mi></mrow></math>`,
		},
		{
			name:   "annotation",
			input:  "x^2",
			opts:   texmath.Options{Annotate: true},
			output: `<math><semantics><msup><mi>x</mi><mn>2</mn></msup><annotation encoding="application/x-tex">x^2</annotation></semantics></math>`,
		},
		{
			name:   "namespace",
			input:  "x",
			opts:   texmath.Options{XML: true},
			output: `<math xmlns="http://www.w3.org/1998/Math/MathML"><mi>x</mi></math>`,
		},
		{
			name:   "digits are merged",
			input:  "12.5",
			output: "<math><mn>12.5</mn></math>",
		},
		{
			name:   "toggle",
			input:  "\\toggle{a}{b}\\endtoggle",
			output: `<math><maction actiontype="toggle"><mi>a</mi><mi>b</mi></maction></math>`,
		},
		{
			name:   "unicode superscript",
			input:  "x²",
			output: "<math><msup><mi>x</mi><mn>2</mn></msup></math>",
		},
		{
			name:   "unicode sub and superscript",
			input:  "x₁²",
			output: "<math><msubsup><mi>x</mi><mn>1</mn><mn>2</mn></msubsup></math>",
		},
		{
			name:   "macros from options",
			input:  "\\half",
			opts:   texmath.Options{Macros: texmath.Macros{"\\half": texmath.MacroText("\\frac12")}},
			output: "<math><mfrac><mn>1</mn><mn>2</mn></mfrac></math>",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := texmath.ConvertToString(tc.input, tc.opts)
			if err != nil {
				t.Fatal(err)
			}

			if got != tc.output {
				t.Errorf("Markup does not match:\n%s\n", cmp.Diff(tc.output, got))
			}

			wellFormed(t, got)
		})
	}
}

func TestConvertFractionHasBar(t *testing.T) {
	math, err := texmath.Convert("\\frac{1}{2}", texmath.Options{})
	if err != nil {
		t.Fatal(err)
	}

	frac, ok := math.Children[0].(*texmath.Element)
	if !ok || frac.Tag != "mfrac" {
		t.Fatalf("Expected mfrac, got %s", math.ToMarkup())
	}

	if v := frac.GetAttribute("linethickness"); v != "" {
		t.Errorf("Fraction bar must keep its default thickness, got %q", v)
	}

	for _, markup := range []string{"{1 \\atop 2}", "\\binom12"} {
		got, err := texmath.ConvertToString(markup, texmath.Options{})
		if err != nil {
			t.Fatal(err)
		}

		if !strings.Contains(got, `<mfrac linethickness="0px">`) {
			t.Errorf("Expected fraction without bar for %s, got %s", markup, got)
		}
	}
}

func TestConvertUnsupportedCommand(t *testing.T) {
	got, err := texmath.ConvertToString("\\zzzzz", texmath.Options{ThrowOnError: true})
	if err != nil {
		t.Fatalf("Unsupported command must not fail: %v", err)
	}

	if !strings.Contains(got, `style="color:#b22222;">\zzzzz</mtext>`) {
		t.Errorf("Expected command name in error color, got %s", got)
	}

	got, err = texmath.ConvertToString("\\zzzzz", texmath.Options{ErrorColor: "#00ff00"})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(got, "color:#00ff00;") {
		t.Errorf("Expected custom error color, got %s", got)
	}
}

func TestConvertRelationSpacing(t *testing.T) {
	got, err := texmath.ConvertToString("a \\le \\ne b", texmath.Options{Wrap: texmath.WrapNone})
	if err != nil {
		t.Fatal(err)
	}

	want := `<math><mrow><mi>a</mi><mo rspace="0em">≤</mo><mo lspace="0em">≠</mo><mi>b</mi></mrow></math>`
	if got != want {
		t.Errorf("Markup does not match:\n%s\n", cmp.Diff(want, got))
	}
}

func TestConvertLoneOperator(t *testing.T) {
	got, err := texmath.ConvertToString("{+}", texmath.Options{})
	if err != nil {
		t.Fatal(err)
	}

	// an operator opening a group is a prefix one
	if want := `<math><mo form="prefix" stretchy="false" lspace="0em" rspace="0em">+</mo></math>`; got != want {
		t.Errorf("Markup does not match:\n%s\n", cmp.Diff(want, got))
	}
}

func TestConvertNoBreakInsideDelimiters(t *testing.T) {
	got, err := texmath.ConvertToString("f(a+b)=c", texmath.Options{})
	if err != nil {
		t.Fatal(err)
	}

	wellFormed(t, got)

	rows := findAll(t, got, "mrow")
	if len(rows) != 2 {
		t.Fatalf("Expected two rows, got %s", got)
	}

	var text []string
	for _, row := range rows {
		var b strings.Builder
		for c := row.FirstChild; c != nil; c = c.NextSibling {
			if c.FirstChild != nil {
				b.WriteString(c.FirstChild.Data)
			}
		}

		text = append(text, b.String())
	}

	if want := []string{"f(a+b)=", "c"}; !cmp.Equal(text, want) {
		t.Errorf("Rows do not match:\n%s\n", cmp.Diff(want, text))
	}
}

func TestConvertHardBreak(t *testing.T) {
	got, err := texmath.ConvertToString("a\\\\b", texmath.Options{})
	if err != nil {
		t.Fatal(err)
	}

	wellFormed(t, got)

	if !strings.HasPrefix(got, `<math><mtable columnalign="left" rowspacing="0em">`) {
		t.Errorf("Expected a table of lines, got %s", got)
	}

	if rows := findAll(t, got, "mtr"); len(rows) != 2 {
		t.Errorf("Expected two lines, got %d", len(rows))
	}
}

func TestConvertArrays(t *testing.T) {
	tt := []struct {
		name    string
		input   string
		rows    int
		cells   int
		classes map[string]int
	}{
		{
			name:  "matrix",
			input: "\\begin{pmatrix}a & b \\\\ c & d\\end{pmatrix}",
			rows:  2,
			cells: 4,
		},
		{
			name:  "cases",
			input: "f(x)=\\begin{cases}1 & x>0 \\\\ 0 & \\text{otherwise}\\end{cases}",
			rows:  2,
			cells: 4,
		},
		{
			name:    "numbered align",
			input:   "\\begin{align}a &= b \\tag{1} \\\\ c &= d \\notag \\\\ e &= f\\end{align}",
			rows:    3,
			cells:   12,
			classes: map[string]int{"tml-tag": 1, "tml-eqn": 1, "tml-tageqn": 1, "tml-jot": 1},
		},
		{
			name:    "unnumbered align",
			input:   "\\begin{align*}a &= b \\\\ c &= d\\end{align*}",
			rows:    2,
			cells:   8,
			classes: map[string]int{"tml-eqn": 0, "tml-tageqn": 0},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := texmath.ConvertToString(tc.input, texmath.Options{DisplayMode: true, ThrowOnError: true})
			if err != nil {
				t.Fatal(err)
			}

			wellFormed(t, got)

			if n := len(findAll(t, got, "mtr")); n != tc.rows {
				t.Errorf("Expected %d rows, got %d in %s", tc.rows, n, got)
			}

			if n := len(findAll(t, got, "mtd")); n != tc.cells {
				t.Errorf("Expected %d cells, got %d in %s", tc.cells, n, got)
			}

			for class, count := range tc.classes {
				if n := strings.Count(got, class+`"`) + strings.Count(got, class+" "); n != count {
					t.Errorf("Expected class %s %d time(s), got %d in %s", class, count, n, got)
				}
			}
		})
	}
}

func TestConvertErrors(t *testing.T) {
	_, err := texmath.Convert("\\frac{1}", texmath.Options{ThrowOnError: true})
	if !errors.Is(err, texmath.ErrUnexpectedEOF) {
		t.Fatalf("Expected unexpected end of input, got %v", err)
	}

	got, err := texmath.ConvertToString("\\frac{1}", texmath.Options{})
	if err != nil {
		t.Fatalf("Error must be rendered, got %v", err)
	}

	wellFormed(t, got)

	merror := findAll(t, got, "merror")
	if len(merror) != 1 {
		t.Fatalf("Expected merror, got %s", got)
	}

	if title := attr(merror[0], "title"); !strings.Contains(title, "Unexpected end of input") {
		t.Errorf("Title must contain the message, got %q", title)
	}

	if !strings.Contains(got, `<mtext>\frac{1}</mtext>`) {
		t.Errorf("Source must be shown, got %s", got)
	}
}

func TestConvertDisplayOnlyEnvironment(t *testing.T) {
	_, err := texmath.Convert("\\begin{align}a\\end{align}", texmath.Options{ThrowOnError: true})
	if !errors.Is(err, texmath.ErrParse) {
		t.Errorf("Expected parse error for align in inline mode, got %v", err)
	}
}

func TestConvertTrust(t *testing.T) {
	_, err := texmath.Convert("\\href{https://example.com}{x}", texmath.Options{ThrowOnError: true})
	if !errors.Is(err, texmath.ErrUntrusted) {
		t.Errorf("Expected untrusted command error, got %v", err)
	}

	got, err := texmath.ConvertToString("\\href{https://example.com}{x}", texmath.Options{ThrowOnError: true, Trust: texmath.TrustAll})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(got, `href="https://example.com"`) {
		t.Errorf("Expected link, got %s", got)
	}
}

func TestConvertBoxed(t *testing.T) {
	got, err := texmath.ConvertToString("\\boxed{x}", texmath.Options{})
	if err != nil {
		t.Fatal(err)
	}

	styles := findAll(t, got, "mstyle")
	if len(styles) != 1 {
		t.Fatalf("Expected a single mstyle, got %s", got)
	}

	if attr(styles[0], "displaystyle") != "true" {
		t.Errorf("Boxed content must be in display style, got %s", got)
	}

	if boxes := findAll(t, got, "menclose"); len(boxes) != 1 || attr(boxes[0], "notation") != "box" {
		t.Errorf("Expected a box, got %s", got)
	}
}

func TestConvertConsolidatesTextSpaces(t *testing.T) {
	got, err := texmath.ConvertToString("\\text{ a b }", texmath.Options{})
	if err != nil {
		t.Fatal(err)
	}

	if want := "<math><mtext>\u00a0a\u00a0b\u00a0</mtext></math>"; got != want {
		t.Errorf("Markup does not match:\n%s\n", cmp.Diff(want, got))
	}
}
