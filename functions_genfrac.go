package texmath

import (
	"strconv"
	"strings"
)

// script levels of \genfrac style argument
var genfracLevels = []string{"display", "text", "script", "scriptscript"}

var mathStyleLevel = map[string]string{
	"display":      "0",
	"text":         "0",
	"script":       "1",
	"scriptscript": "2",
}

func registerGenFrac(r *Registry) {
	r.DefineFunction(FunctionSpec{
		Type: TypeGenFrac,
		Names: []string{
			"\\dfrac", "\\frac", "\\tfrac", "\\dbinom", "\\binom", "\\tbinom",
			"\\\\atopfrac", "\\\\bracefrac", "\\\\brackfrac",
		},
		NumArgs:           2,
		AllowedInArgument: true,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			node := &ParseNode{
				Type:        TypeGenFrac,
				Mode:        ctx.Parser.mode,
				Numer:       args[0],
				Denom:       args[1],
				ScriptLevel: "auto",
			}

			switch ctx.Name {
			case "\\dfrac", "\\frac", "\\tfrac":
				node.HasBarLine = true
			case "\\dbinom", "\\binom", "\\tbinom":
				node.LeftDelim, node.RightDelim = "(", ")"
			case "\\\\bracefrac":
				node.LeftDelim, node.RightDelim = "\\{", "\\}"
			case "\\\\brackfrac":
				node.LeftDelim, node.RightDelim = "[", "]"
			}

			switch ctx.Name {
			case "\\dfrac", "\\dbinom":
				node.ScriptLevel = "display"
			case "\\tfrac", "\\tbinom":
				node.ScriptLevel = "text"
			}

			return node, nil
		},
		Builder: buildGenFrac,
	})

	r.DefineFunction(FunctionSpec{
		Type:    TypeGenFrac,
		Names:   []string{"\\cfrac"},
		NumArgs: 2,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			return &ParseNode{
				Type:        TypeGenFrac,
				Mode:        ctx.Parser.mode,
				Numer:       args[0],
				Denom:       args[1],
				HasBarLine:  true,
				Continued:   true,
				ScriptLevel: "display",
			}, nil
		},
	})

	// infix fractions are replaced by one of the above once the group is parsed
	r.DefineFunction(FunctionSpec{
		Type:  TypeInfix,
		Names: []string{"\\over", "\\choose", "\\atop", "\\brace", "\\brack"},
		Infix: true,
		Handler: func(ctx *FunctionContext, _, _ []*ParseNode) (*ParseNode, error) {
			replace := map[string]string{
				"\\over":   "\\frac",
				"\\choose": "\\binom",
				"\\atop":   "\\\\atopfrac",
				"\\brace":  "\\\\bracefrac",
				"\\brack":  "\\\\brackfrac",
			}

			return &ParseNode{Type: TypeInfix, Mode: ctx.Parser.mode, ReplaceWith: replace[ctx.Name], Token: ctx.Token}, nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:              TypeGenFrac,
		Names:             []string{"\\genfrac"},
		NumArgs:           6,
		AllowedInArgument: true,
		ArgTypes:          []ArgType{ArgMath, ArgMath, ArgSize, ArgText, ArgMath, ArgMath},
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			node := &ParseNode{
				Type:        TypeGenFrac,
				Mode:        ctx.Parser.mode,
				Numer:       args[4],
				Denom:       args[5],
				ScriptLevel: "auto",
			}

			if left := normalizeArgument(args[0]); left != nil && left.Type == TypeAtom && left.Family == FamilyOpen {
				node.LeftDelim = delimFromValue(left.Text)
			}

			if right := normalizeArgument(args[1]); right != nil && right.Type == TypeAtom && right.Family == FamilyClose {
				node.RightDelim = delimFromValue(right.Text)
			}

			bar, err := assertNodeType(args[2], TypeSize)
			if err != nil {
				return nil, err
			}

			// an empty size means the default rule, unlike \above
			if bar.IsBlank {
				node.HasBarLine = true
			} else {
				size := bar.Dimension
				node.BarSize = &size
				node.HasBarLine = size.Number > 0
			}

			level := args[3]
			if level.Type == TypeOrdGroup {
				if len(level.Body) == 0 {
					return node, nil
				}

				level = level.Body[0]
			}

			ord, err := assertNodeType(level, TypeTextOrd)
			if err != nil {
				return nil, err
			}

			if n, err := strconv.Atoi(ord.Text); err == nil && n >= 0 && n < len(genfracLevels) {
				node.ScriptLevel = genfracLevels[n]
			}

			return node, nil
		},
	})

	// \above is an infix fraction with a rule thickness
	r.DefineFunction(FunctionSpec{
		Type:     TypeInfix,
		Names:    []string{"\\above"},
		NumArgs:  1,
		ArgTypes: []ArgType{ArgSize},
		Infix:    true,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			size, err := assertNodeType(args[0], TypeSize)
			if err != nil {
				return nil, err
			}

			bar := size.Dimension
			return &ParseNode{Type: TypeInfix, Mode: ctx.Parser.mode, ReplaceWith: "\\\\abovefrac", BarSize: &bar, Token: ctx.Token}, nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:     TypeGenFrac,
		Names:    []string{"\\\\abovefrac"},
		NumArgs:  3,
		ArgTypes: []ArgType{ArgMath, ArgSize, ArgMath},
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			infix, err := assertNodeType(args[1], TypeInfix)
			if err != nil {
				return nil, err
			}

			if infix.BarSize == nil {
				return nil, newError(ErrInternal, infix.Loc, "Missing rule thickness of \\above")
			}

			return &ParseNode{
				Type:        TypeGenFrac,
				Mode:        ctx.Parser.mode,
				Numer:       args[0],
				Denom:       args[2],
				HasBarLine:  infix.BarSize.Number > 0,
				BarSize:     infix.BarSize,
				ScriptLevel: "auto",
			}, nil
		},
	})
}

func delimFromValue(delim string) string {
	if delim == "." {
		return ""
	}

	return delim
}

// fenceOperator renders a fixed size delimiter around a fraction
func fenceOperator(delim string) *Element {
	text := strings.TrimPrefix(delim, "\\")
	if s, ok := symbols[ModeMath][delim]; ok && s.Replace != "" {
		text = s.Replace
	}

	mo := NewElement("mo", NewText(text))
	mo.SetAttribute("fence", "true")
	return mo
}

func buildGenFrac(b *Builder, node *ParseNode, style Style) (Node, error) {
	var childStyle Style
	switch node.ScriptLevel {
	case "display":
		childStyle = style.WithLevel(TextStyle)
	case "text":
		childStyle = style.WithLevel(ScriptStyle)
	case "script", "scriptscript":
		childStyle = style.WithLevel(ScriptScriptStyle)
	default:
		childStyle = style.IncrementLevel()
	}

	numer, err := b.Group(node.Numer, childStyle)
	if err != nil {
		return nil, err
	}

	denom, err := b.Group(node.Denom, childStyle)
	if err != nil {
		return nil, err
	}

	// renderers keep shrinking past scriptscript without an explicit level
	if style.Level == ScriptScriptStyle {
		for _, n := range []Node{numer, denom} {
			if el, ok := asElement(n); ok {
				el.SetAttribute("scriptlevel", "2")
				el.SetStyle("math-depth", "2")
			}
		}
	}

	frac := NewElement("mfrac", numer, denom)
	if !node.HasBarLine {
		frac.SetAttribute("linethickness", "0px")
	} else if node.BarSize != nil {
		thickness, err := CalculateSize(*node.BarSize, style)
		if err != nil {
			return nil, err
		}

		frac.SetAttribute("linethickness", thickness.String())
	}

	var result Node = frac
	if node.LeftDelim != "" || node.RightDelim != "" {
		var row []Node
		if node.LeftDelim != "" {
			row = append(row, fenceOperator(node.LeftDelim))
		}

		row = append(row, frac)

		if node.RightDelim != "" {
			row = append(row, fenceOperator(node.RightDelim))
		}

		result = makeRow(row, false)
	}

	if level, ok := mathStyleLevel[node.ScriptLevel]; ok {
		mstyle := NewElement("mstyle", result)
		mstyle.SetAttribute("displaystyle", strconv.FormatBool(node.ScriptLevel == "display"))
		mstyle.SetAttribute("scriptlevel", level)
		result = mstyle
	}

	return result, nil
}
