package texmath

import (
	"fmt"
	"strings"
)

var styleLevels = map[string]int{
	"display":      DisplayStyle,
	"text":         TextStyle,
	"script":       ScriptStyle,
	"scriptscript": ScriptScriptStyle,
}

// sizeFactors are relative to \normalsize
var sizeFactors = map[string]float64{
	"\\tiny":         0.5,
	"\\sixptsize":    0.6,
	"\\scriptsize":   0.7,
	"\\footnotesize": 0.8,
	"\\small":        0.9,
	"\\normalsize":   1,
	"\\large":        1.2,
	"\\Large":        1.44,
	"\\LARGE":        1.728,
	"\\huge":         2.074,
	"\\Huge":         2.488,
}

func registerStyling(r *Registry) {
	r.DefineFunction(FunctionSpec{
		Type:          TypeStyling,
		Names:         []string{"\\displaystyle", "\\textstyle", "\\scriptstyle", "\\scriptscriptstyle"},
		AllowedInText: true,
		Primitive:     true,
		Handler: func(ctx *FunctionContext, _, _ []*ParseNode) (*ParseNode, error) {
			// the switch applies to the rest of the group
			body, err := ctx.Parser.parseExpression(true, ctx.BreakOnTokenText, true)
			if err != nil {
				return nil, err
			}

			return &ParseNode{
				Type:        TypeStyling,
				Mode:        ctx.Parser.mode,
				ScriptLevel: strings.TrimSuffix(ctx.Name[1:], "style"),
				Body:        body,
			}, nil
		},
		Builder: buildStyling,
	})

	names := make([]string, 0, len(sizeFactors))
	for name := range sizeFactors {
		names = append(names, name)
	}

	r.DefineFunction(FunctionSpec{
		Type:          TypeSizing,
		Names:         names,
		AllowedInText: true,
		Handler: func(ctx *FunctionContext, _, _ []*ParseNode) (*ParseNode, error) {
			body, err := ctx.Parser.parseExpression(false, ctx.BreakOnTokenText, true)
			if err != nil {
				return nil, err
			}

			return &ParseNode{Type: TypeSizing, Mode: ctx.Parser.mode, FontSize: sizeFactors[ctx.Name], Body: body}, nil
		},
		Builder: func(b *Builder, node *ParseNode, style Style) (Node, error) {
			inner, err := b.Expression(node.Body, style.WithFontSize(node.FontSize), false)
			if err != nil {
				return nil, err
			}

			mstyle := wrapWithMstyle(inner)
			mstyle.SetAttribute("mathsize", fmt.Sprintf("%.4fem", node.FontSize/style.FontSize))
			return mstyle, nil
		},
	})
}

func buildStyling(b *Builder, node *ParseNode, style Style) (Node, error) {
	level, ok := styleLevels[node.ScriptLevel]
	if !ok {
		return nil, newError(ErrInternal, node.Loc, "Unknown style level: '%s'", node.ScriptLevel)
	}

	inner, err := b.Expression(node.Body, style.WithLevel(level), false)
	if err != nil {
		return nil, err
	}

	// a nested style switch overrides both attributes of this one
	if nested := flatten(inner); len(nested) == 1 {
		if el, ok := asElement(nested[0], "mstyle"); ok && isStyleSwitch(el) {
			return el, nil
		}
	}

	mstyle := wrapWithMstyle(inner)
	mstyle.SetAttribute("scriptlevel", mathStyleLevel[node.ScriptLevel])
	mstyle.SetAttribute("displaystyle", fmt.Sprint(level == DisplayStyle))
	return mstyle, nil
}

func isStyleSwitch(el *Element) bool {
	_, level := el.Attr("scriptlevel")
	_, display := el.Attr("displaystyle")
	return level && display
}

// wrapWithMstyle reuses a lone mrow as the mstyle element
func wrapWithMstyle(expression []Node) *Element {
	expression = flatten(expression)
	if len(expression) == 1 {
		if row, ok := asElement(expression[0], "mrow"); ok {
			row.Tag = "mstyle"
			return row
		}
	}

	return NewElement("mstyle", expression...)
}
