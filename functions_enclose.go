package texmath

import "golang.org/x/text/unicode/norm"

const combiningSolidus = "\u0338"

func registerEnclose(r *Registry) {
	r.DefineFunction(FunctionSpec{
		Type:          TypeEnclose,
		Names:         []string{"\\fbox"},
		NumArgs:       1,
		ArgTypes:      []ArgType{ArgHBox},
		AllowedInText: true,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			return &ParseNode{Type: TypeEnclose, Mode: ctx.Parser.mode, Label: ctx.Name, Body: []*ParseNode{args[0]}}, nil
		},
		Builder: buildEnclose,
	})

	r.DefineFunction(FunctionSpec{
		Type:    TypeEnclose,
		Names:   []string{"\\cancel", "\\bcancel", "\\xcancel", "\\sout"},
		NumArgs: 1,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			return &ParseNode{Type: TypeEnclose, Mode: ctx.Parser.mode, Label: ctx.Name, Body: []*ParseNode{args[0]}}, nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:          TypePhantom,
		Names:         []string{"\\phantom"},
		NumArgs:       1,
		AllowedInText: true,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			return &ParseNode{Type: TypePhantom, Mode: ctx.Parser.mode, Body: ordArgument(args[0])}, nil
		},
		Builder: func(b *Builder, node *ParseNode, style Style) (Node, error) {
			inner, err := b.Expression(node.Body, style, false)
			if err != nil {
				return nil, err
			}

			return NewElement("mphantom", inner...), nil
		},
	})

	// \hphantom keeps the width only, \vphantom the height and depth only
	r.DefineFunction(FunctionSpec{
		Type:          TypeHPhantom,
		Names:         []string{"\\hphantom"},
		NumArgs:       1,
		AllowedInText: true,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			return &ParseNode{Type: TypeHPhantom, Mode: ctx.Parser.mode, Body: ordArgument(args[0])}, nil
		},
		Builder: func(b *Builder, node *ParseNode, style Style) (Node, error) {
			padded, err := paddedPhantom(b, node, style)
			if err != nil {
				return nil, err
			}

			padded.SetAttribute("height", "0px")
			padded.SetAttribute("depth", "0px")
			return padded, nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:          TypeVPhantom,
		Names:         []string{"\\vphantom"},
		NumArgs:       1,
		AllowedInText: true,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			return &ParseNode{Type: TypeVPhantom, Mode: ctx.Parser.mode, Body: ordArgument(args[0])}, nil
		},
		Builder: func(b *Builder, node *ParseNode, style Style) (Node, error) {
			padded, err := paddedPhantom(b, node, style)
			if err != nil {
				return nil, err
			}

			padded.SetAttribute("width", "0px")
			return padded, nil
		},
	})

	// \not overlays a solidus, precomposed characters are used where unicode has them
	r.DefineFunction(FunctionSpec{
		Type:      TypeMClass,
		Names:     []string{"\\not"},
		NumArgs:   1,
		Primitive: true,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			p := ctx.Parser
			arg := normalizeArgument(args[0])

			if isSymbolNode(arg) {
				text := arg.Text
				if sym, ok := lookupSymbol(p.mode, text); ok && sym.Replace != "" {
					text = sym.Replace
				}

				return &ParseNode{Type: TypeAtom, Mode: p.mode, Loc: arg.Loc, Family: FamilyRel, Text: norm.NFC.String(text + combiningSolidus)}, nil
			}

			return &ParseNode{
				Type:  TypeMClass,
				Mode:  p.mode,
				Class: "mrel",
				Body:  append(ordArgument(args[0]), &ParseNode{Type: TypeTextOrd, Mode: p.mode, Text: combiningSolidus}),
			}, nil
		},
	})
}

func paddedPhantom(b *Builder, node *ParseNode, style Style) (*Element, error) {
	inner, err := b.Expression(node.Body, style, false)
	if err != nil {
		return nil, err
	}

	return NewElement("mpadded", NewElement("mphantom", inner...)), nil
}

func buildEnclose(b *Builder, node *ParseNode, style Style) (Node, error) {
	body, err := b.ExpressionRow(node.Body, style, false)
	if err != nil {
		return nil, err
	}

	var el *Element
	if node.Label == "\\colorbox" || node.Label == "\\fcolorbox" {
		el = NewElement("mrow", padding(0.125), body, padding(0.125))
	} else {
		el = NewElement("menclose", body)
	}

	strike := func(classes ...string) {
		line := NewElement("mrow")
		line.Classes = classes
		el.Children = append(el.Children, line)
	}

	switch node.Label {
	case "\\cancel":
		el.SetAttribute("notation", "updiagonalstrike")
		strike("tml-cancel", "upstrike")
	case "\\bcancel":
		el.SetAttribute("notation", "downdiagonalstrike")
		strike("tml-cancel", "downstrike")
	case "\\xcancel":
		el.SetAttribute("notation", "updiagonalstrike downdiagonalstrike")
		strike("tml-cancel", "tml-xcancel")
	case "\\sout":
		el.SetAttribute("notation", "horizontalstrike")
		strike("tml-cancel", "sout")
	case "\\fbox":
		el.SetAttribute("notation", "box")
		el.AddClass("tml-fbox")
	case "\\colorbox", "\\fcolorbox":
		el.SetStyle("padding", "3pt 0 3pt 0")
		if node.BorderColor != "" {
			el.SetStyle("border", "0.0667em solid "+node.BorderColor)
		}
	}

	if node.BackgroundColor != "" {
		el.SetAttribute("mathbackground", node.BackgroundColor)
	}

	return el, nil
}
