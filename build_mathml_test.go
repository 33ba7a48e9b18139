package texmath

import (
	"testing"
)

func TestConsolidateText(t *testing.T) {
	text := func(s string) *Element {
		return NewElement("mtext", NewText(s))
	}

	bold := text("b")
	bold.SetAttribute("mathvariant", "bold")

	tt := []struct {
		name   string
		node   Node
		output string
	}{
		{
			name:   "edge spaces become no-break spaces",
			node:   NewElement("mrow", text(" a"), text("b ")),
			output: "<mtext>\u00a0ab\u00a0</mtext>",
		},
		{
			name:   "nested rows are flattened",
			node:   NewElement("mrow", text("a"), NewElement("mrow", text("b"), text("c"))),
			output: "<mtext>abc</mtext>",
		},
		{
			name:   "different variants are kept apart",
			node:   NewElement("mrow", text("a"), bold),
			output: `<mrow><mtext>a</mtext><mtext mathvariant="bold">b</mtext></mrow>`,
		},
		{
			name:   "row with math is kept",
			node:   NewElement("mrow", text("a"), NewElement("mi", NewText("x"))),
			output: "<mrow><mtext>a</mtext><mi>x</mi></mrow>",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got := toMarkup(consolidateText(tc.node)); got != tc.output {
				t.Errorf("Markup does not match: want %q, got %q", tc.output, got)
			}
		})
	}
}
