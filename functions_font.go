package texmath

var fontAliases = map[string]string{
	"\\Bbb":  "\\mathbb",
	"\\bold": "\\mathbf",
	"\\frak": "\\mathfrak",
	"\\bm":   "\\boldsymbol",
}

func registerFonts(r *Registry) {
	r.DefineFunction(FunctionSpec{
		Type: TypeFont,
		Names: []string{
			"\\mathrm", "\\mathit", "\\mathbf", "\\mathnormal", "\\boldsymbol", "\\mathbb", "\\mathcal",
			"\\mathfrak", "\\mathscr", "\\mathsf", "\\mathsfit", "\\mathtt", "\\Bbb", "\\bm", "\\bold", "\\frak",
		},
		NumArgs:           1,
		AllowedInArgument: true,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			name := ctx.Name
			if alias, ok := fontAliases[name]; ok {
				name = alias
			}

			return &ParseNode{Type: TypeFont, Mode: ctx.Parser.mode, Font: name[1:], Base: normalizeArgument(args[0])}, nil
		},
		Builder: buildFont,
	})

	// old style switches apply to the rest of the group
	r.DefineFunction(FunctionSpec{
		Type:          TypeFont,
		Names:         []string{"\\rm", "\\sf", "\\tt", "\\bf", "\\it", "\\cal"},
		AllowedInText: true,
		Handler: func(ctx *FunctionContext, _, _ []*ParseNode) (*ParseNode, error) {
			p := ctx.Parser
			body, err := p.parseExpression(true, ctx.BreakOnTokenText, true)
			if err != nil {
				return nil, err
			}

			return &ParseNode{
				Type: TypeFont,
				Mode: p.mode,
				Font: "math" + ctx.Name[1:],
				Base: &ParseNode{Type: TypeOrdGroup, Mode: p.mode, Body: body},
			}, nil
		},
	})
}

func buildFont(b *Builder, node *ParseNode, style Style) (Node, error) {
	group, err := b.Group(node.Base, style.WithFont(node.Font))
	if err != nil {
		return nil, err
	}

	el, ok := asElement(group)
	if !ok || len(el.Children) == 0 {
		return group, nil
	}

	if node.Font == "boldsymbol" && (el.Tag == "mo" || el.Tag == "mrow") {
		el.SetStyle("font-weight", "bold")
		return el, nil
	}

	if el.Tag != "mrow" {
		return el, nil
	}

	// a run of letters in the same variant becomes a single identifier
	first, ok := asElement(el.Children[0], "mi")
	if !ok {
		return el, nil
	}

	variant := first.GetAttribute("mathvariant")
	if variant == "" {
		return el, nil
	}

	for _, child := range el.Children[1:] {
		mi, ok := asElement(child, "mi")
		if !ok || mi.GetAttribute("mathvariant") != variant {
			return el, nil
		}
	}

	mi := NewElement("mi")
	for _, child := range el.Children {
		mi.Children = append(mi.Children, child.(*Element).Children...)
	}

	// a multi letter mi is upright already
	if variant != "normal" {
		mi.SetAttribute("mathvariant", variant)
	}

	return mi, nil
}
