package texmath

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var textFontFamilies = map[string]string{
	"\\textrm":     "textrm",
	"\\textsf":     "textsf",
	"\\texttt":     "texttt",
	"\\textnormal": "textrm",
	"\\textsc":     "textsc",
}

var textFontWeights = map[string]string{
	"\\textbf": "textbf",
	"\\textmd": "textmd",
}

var textFontShapes = map[string]string{
	"\\textit": "textit",
	"\\textup": "textup",
}

func registerText(r *Registry) {
	r.DefineFunction(FunctionSpec{
		Type: TypeText,
		Names: []string{
			"\\text", "\\textrm", "\\textsf", "\\texttt", "\\textnormal", "\\textsc",
			"\\textbf", "\\textmd", "\\textit", "\\textup", "\\emph",
		},
		NumArgs:           1,
		ArgTypes:          []ArgType{ArgText},
		AllowedInArgument: true,
		AllowedInText:     true,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			return &ParseNode{Type: TypeText, Mode: ctx.Parser.mode, Body: ordArgument(args[0]), Font: ctx.Name}, nil
		},
		Builder: func(b *Builder, node *ParseNode, style Style) (Node, error) {
			row, err := b.ExpressionRow(node.Body, textStyle(node.Font, style), false)
			if err != nil {
				return nil, err
			}

			return consolidateText(row), nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:              TypeOrdGroup,
		Names:             []string{"\\MakeUppercase", "\\MakeLowercase"},
		NumArgs:           1,
		AllowedInText:     true,
		AllowedInArgument: true,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			caser := cases.Upper(language.Und)
			if ctx.Name == "\\MakeLowercase" {
				caser = cases.Lower(language.Und)
			}

			return &ParseNode{Type: TypeOrdGroup, Mode: ctx.Parser.mode, Body: changeCase(ordArgument(args[0]), caser)}, nil
		},
	})

	r.DefineBuilder(TypeVerb, func(b *Builder, node *ParseNode, style Style) (Node, error) {
		text := node.String
		if node.Star {
			text = strings.ReplaceAll(text, " ", "\u2423")
		} else {
			text = strings.ReplaceAll(text, " ", "\u00a0")
		}

		mtext := NewElement("mtext", NewText(text))
		mtext.SetAttribute("mathvariant", "monospace")
		return mtext, nil
	})
}

// textStyle applies a text font command to the style
func textStyle(font string, style Style) Style {
	if family, ok := textFontFamilies[font]; ok {
		return style.WithTextFontFamily(family)
	}

	if weight, ok := textFontWeights[font]; ok {
		return style.WithTextFontWeight(weight)
	}

	if font == "\\emph" {
		if style.FontShape == "textit" {
			return style.WithTextFontShape("textup")
		}

		return style.WithTextFontShape("textit")
	}

	if shape, ok := textFontShapes[font]; ok {
		return style.WithTextFontShape(shape)
	}

	return style
}

// changeCase copies the nodes with letters converted by the caser, commands are left alone
func changeCase(nodes []*ParseNode, caser cases.Caser) []*ParseNode {
	out := make([]*ParseNode, len(nodes))
	for i, n := range nodes {
		c := *n
		if (c.Type == TypeMathOrd || c.Type == TypeTextOrd) && !strings.HasPrefix(c.Text, "\\") {
			c.Text = caser.String(c.Text)
		}

		if c.Body != nil {
			c.Body = changeCase(c.Body, caser)
		}

		if c.Base != nil {
			c.Base = changeCase([]*ParseNode{c.Base}, caser)[0]
		}

		out[i] = &c
	}

	return out
}

