package texmath

import "strings"

const applyFunction = "\u2061"

// ordTypes precede an operator name that needs a leading space
var ordTypes = map[string]bool{
	string(TypeTextOrd):   true,
	string(TypeMathOrd):   true,
	string(TypeOrdGroup):  true,
	FamilyClose:           true,
	string(TypeLeftRight): true,
	string(TypeFont):      true,
}

// single character operators map to the command producing them
var singleCharOps = map[string]string{
	"∏": "\\prod",
	"∐": "\\coprod",
	"∑": "\\sum",
	"⋀": "\\bigwedge",
	"⋁": "\\bigvee",
	"⋂": "\\bigcap",
	"⋃": "\\bigcup",
	"⨀": "\\bigodot",
	"⨁": "\\bigoplus",
	"⨂": "\\bigotimes",
	"⨄": "\\biguplus",
	"⨆": "\\bigsqcup",
	"∫": "\\int",
	"∬": "\\iint",
	"∭": "\\iiint",
	"∮": "\\oint",
	"∯": "\\oiint",
	"∰": "\\oiiint",
}

func registerOperators(r *Registry) {
	r.DefineFunction(FunctionSpec{
		Type: TypeOp,
		Names: []string{
			"\\coprod", "\\bigvee", "\\bigwedge", "\\biguplus", "\\bigcap", "\\bigcup", "\\intop", "\\prod", "\\sum",
			"\\bigotimes", "\\bigoplus", "\\bigodot", "\\bigsqcup", "\\bigsqcap", "\\bigtimes", "\\smallint",
			"∏", "∐", "∑", "⋀", "⋁", "⋂", "⋃", "⨀", "⨁", "⨂", "⨄", "⨆",
		},
		Handler: func(ctx *FunctionContext, _, _ []*ParseNode) (*ParseNode, error) {
			return &ParseNode{Type: TypeOp, Mode: ctx.Parser.mode, Limits: true, Symbol: true, Name: opName(ctx.Name)}, nil
		},
		Builder: func(b *Builder, node *ParseNode, style Style) (Node, error) {
			return b.operator(node, style, false)
		},
	})

	r.DefineFunction(FunctionSpec{
		Type: TypeOp,
		Names: []string{
			"\\int", "\\iint", "\\iiint", "\\iiiint", "\\oint", "\\oiint", "\\oiiint", "\\intclockwise",
			"\\varointclockwise", "\\fint", "∫", "∬", "∭", "∮", "∯", "∰",
		},
		AllowedInArgument: true,
		Handler: func(ctx *FunctionContext, _, _ []*ParseNode) (*ParseNode, error) {
			return &ParseNode{Type: TypeOp, Mode: ctx.Parser.mode, Symbol: true, Name: opName(ctx.Name)}, nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:      TypeOp,
		Names:     []string{"\\mathop"},
		NumArgs:   1,
		Primitive: true,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			body := ordArgument(args[0])
			node := &ParseNode{Type: TypeOp, Mode: ctx.Parser.mode, Limits: true}

			if len(body) == 1 && (body[0].Type == TypeMathOrd || body[0].Type == TypeTextOrd) {
				node.Symbol = true
				node.Name = body[0].Text
			} else {
				node.Body = body
			}

			return node, nil
		},
	})

	textOperator := func(limits bool) FunctionHandler {
		return func(ctx *FunctionContext, _, _ []*ParseNode) (*ParseNode, error) {
			p := ctx.Parser
			next, err := p.peekText()
			if err != nil {
				return nil, err
			}

			return &ParseNode{
				Type:                  TypeOp,
				Mode:                  p.mode,
				Limits:                limits,
				Name:                  ctx.Name,
				IsFollowedByDelimiter: openDelimPattern.MatchString(next),
				NeedsLeadingSpace:     ordTypes[p.prevAtomType],
			}, nil
		}
	}

	r.DefineFunction(FunctionSpec{
		Type: TypeOp,
		Names: []string{
			"\\arcsin", "\\arccos", "\\arctan", "\\arctg", "\\arcctg", "\\arg", "\\ch", "\\cos", "\\cosec", "\\cosh",
			"\\cot", "\\cotg", "\\coth", "\\csc", "\\ctg", "\\cth", "\\deg", "\\dim", "\\exp", "\\hom", "\\ker",
			"\\lg", "\\ln", "\\log", "\\sec", "\\sin", "\\sinh", "\\sh", "\\sgn", "\\tan", "\\tanh", "\\tg", "\\th",
		},
		Handler: textOperator(false),
	})

	r.DefineFunction(FunctionSpec{
		Type:    TypeOp,
		Names:   []string{"\\det", "\\gcd", "\\inf", "\\lim", "\\max", "\\min", "\\Pr", "\\sup"},
		Handler: textOperator(true),
	})

	r.DefineFunction(FunctionSpec{
		Type:              TypeOperatorName,
		Names:             []string{"\\operatorname@", "\\operatornamewithlimits"},
		NumArgs:           1,
		AllowedInArgument: true,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			p := ctx.Parser
			next, err := p.peekText()
			if err != nil {
				return nil, err
			}

			return &ParseNode{
				Type:                  TypeOperatorName,
				Mode:                  p.mode,
				Body:                  ordArgument(args[0]),
				AlwaysHandleSupSub:    ctx.Name == "\\operatornamewithlimits",
				IsFollowedByDelimiter: openDelimPattern.MatchString(next),
				NeedsLeadingSpace:     ordTypes[p.prevAtomType],
			}, nil
		},
		Builder: func(b *Builder, node *ParseNode, style Style) (Node, error) {
			return b.operatorName(node, style, false)
		},
	})
}

func opName(name string) string {
	if n, ok := singleCharOps[name]; ok {
		return n
	}

	return name
}

func thinSpace() *Element {
	space := NewElement("mspace")
	space.SetAttribute("width", "0.1667em")
	return space
}

// operator builds an op node, inSupSub is set when the node is a base of scripts which then
// take care of the function application
func (b *Builder) operator(node *ParseNode, style Style, inSupSub bool) (Node, error) {
	switch {
	case node.Symbol:
		mo := NewElement("mo", makeText(node.Name, node.Mode, style))
		if node.Name == "\\smallint" {
			mo.SetAttribute("largeop", "false")
		} else {
			mo.SetAttribute("movablelimits", "false")
		}

		return mo, nil

	case node.Body != nil:
		body, err := b.Expression(node.Body, style, false)
		if err != nil {
			return nil, err
		}

		return NewElement("mrow", NewElement("mo", body...)), nil

	default:
		mi := NewElement("mi", NewText(strings.TrimPrefix(node.Name, "\\")))
		if inSupSub {
			return mi, nil
		}

		row := []Node{mi, NewElement("mo", NewText(applyFunction))}
		if node.NeedsLeadingSpace {
			row = append([]Node{thinSpace()}, row...)
		}

		if !node.IsFollowedByDelimiter {
			row = append(row, thinSpace())
		}

		return NewElement("mrow", row...), nil
	}
}

// operatorName builds \operatorname, the name collapses into a single mi when it is plain text
func (b *Builder) operatorName(node *ParseNode, style Style, inSupSub bool) (Node, error) {
	expression, err := b.Expression(node.Body, style.WithFont("mathrm"), false)
	if err != nil {
		return nil, err
	}

	expression = flatten(expression)
	isString := true

	for i, n := range expression {
		el, ok := asElement(n)
		if !ok {
			isString = false
			continue
		}

		if el.Tag == "mrow" && len(el.Children) == 1 {
			if inner, ok := asElement(el.Children[0]); ok {
				el = inner
			}
		}

		switch el.Tag {
		case "mi", "mn", "ms", "mtext":
		case "mspace":
			width := strings.TrimSuffix(el.GetAttribute("width"), "em")
			ch := spaceCharacter(parseFloat(width))
			if ch == "" {
				isString = false
			} else {
				expression[i] = NewElement("mtext", NewText(ch))
			}
		case "mo":
			if text, ok := singleText(el); ok {
				text.Text = strings.NewReplacer("−", "-", "∗", "*").Replace(text.Text)
			} else {
				isString = false
			}
		default:
			isString = false
		}
	}

	var wrapper *Element
	switch {
	case isString:
		var word strings.Builder
		for _, n := range expression {
			word.WriteString(n.ToText())
		}

		wrapper = NewElement("mi", NewText(word.String()))
		if len([]rune(word.String())) == 1 {
			wrapper.SetAttribute("mathvariant", "normal")
		}
	case len(expression) == 1 && (isTag(expression[0], "mover") || isTag(expression[0], "munder")):
		el := expression[0].(*Element)
		if base, ok := asElement(el.Children[0], "mi", "mtext"); ok {
			base.Tag = "mi"
			if inSupSub {
				return NewElement("mrow", el), nil
			}

			return NewFragment(el, NewElement("mo", NewText(applyFunction))), nil
		}

		wrapper = NewElement("mrow", expression...)
	default:
		wrapper = NewElement("mrow", expression...)
	}

	if inSupSub {
		return wrapper, nil
	}

	row := []Node{wrapper, NewElement("mo", NewText(applyFunction))}
	if node.NeedsLeadingSpace {
		row = append([]Node{thinSpace()}, row...)
	}

	if !node.IsFollowedByDelimiter {
		row = append(row, thinSpace())
	}

	return NewFragment(row...), nil
}

// singleText returns the only child of an element if it is text
func singleText(el *Element) (*TextNode, bool) {
	if len(el.Children) != 1 {
		return nil, false
	}

	text, ok := el.Children[0].(*TextNode)
	return text, ok
}
