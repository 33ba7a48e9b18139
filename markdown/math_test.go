package markdown_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/eolymp/go-texmath"
	"github.com/eolymp/go-texmath/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/yuin/goldmark"
)

func render(t *testing.T, input string, opts ...markdown.Option) string {
	t.Helper()

	md := goldmark.New(goldmark.WithExtensions(markdown.NewExtension(opts...)))

	var out bytes.Buffer
	if err := md.Convert([]byte(input), &out); err != nil {
		t.Fatalf("convert: %v", err)
	}

	return out.String()
}

func TestInlineMath(t *testing.T) {
	out := render(t, "area is $x^2$ units")

	assert.Contains(t, out, "<p>area is <math>")
	assert.Contains(t, out, "<msup><mi>x</mi><mn>2</mn></msup>")
	assert.Contains(t, out, "</math> units</p>")
}

func TestInlineMathRequiresTightDelimiters(t *testing.T) {
	tt := []struct {
		name  string
		input string
	}{
		{name: "space after opening", input: "costs $ 5 and $6"},
		{name: "unclosed", input: "price $5"},
		{name: "escaped closing", input: "one $a\\$ two"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotContains(t, render(t, tc.input), "<math")
		})
	}
}

func TestBlockMath(t *testing.T) {
	out := render(t, "before\n\n$$\n\\frac{a}{b}\n$$\n\nafter")

	assert.Contains(t, out, "<div class=\"math-display\"><math display=\"block\"")
	assert.Contains(t, out, "<mfrac><mi>a</mi><mi>b</mi></mfrac>")
	assert.Contains(t, out, "<p>after</p>")
}

func TestSingleLineBlockMath(t *testing.T) {
	out := render(t, "$$ x + y $$\n")

	assert.Contains(t, out, "math-display")
	assert.Contains(t, out, "<mo>+</mo>")
}

func TestErrorsRenderedWithOptions(t *testing.T) {
	out := render(t, "bad $\\frac{1}$ input", markdown.WithOptions(texmath.Options{ThrowOnError: true}))
	assert.Contains(t, out, "<code class=\"language-math\">\\frac{1}</code>")

	out = render(t, "bad $\\frac{1}$ input")
	assert.True(t, strings.Contains(out, "<merror"), "expected merror in %s", out)
}
