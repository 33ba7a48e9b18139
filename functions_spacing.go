package texmath

import "strconv"

// spaceCharacter returns the unicode space of the given width in em, or an empty string
func spaceCharacter(width float64) string {
	switch {
	case width >= 0.05555 && width <= 0.05556:
		return "\u200a"
	case width >= 0.1666 && width <= 0.1667:
		return "\u2009"
	case width >= 0.2222 && width <= 0.2223:
		return "\u2005"
	case width >= 0.2777 && width <= 0.2778:
		return "\u2005\u200a"
	}

	return ""
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return f
}

func registerSpacing(r *Registry) {
	r.DefineFunction(FunctionSpec{
		Type:          TypeKern,
		Names:         []string{"\\kern", "\\mkern", "\\hskip", "\\mskip"},
		NumArgs:       1,
		ArgTypes:      []ArgType{ArgSize},
		Primitive:     true,
		AllowedInText: true,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			size, err := assertNodeType(args[0], TypeSize)
			if err != nil {
				return nil, err
			}

			p := ctx.Parser
			muUnit := size.Dimension.Unit == "mu"

			// \mkern and \mskip take math units only
			if ctx.Name[1] == 'm' {
				if !muUnit {
					if err := p.settings.reportNonstrict("mathVsTextUnits", "LaTeX's "+ctx.Name+" supports only mu units, not "+size.Dimension.Unit+" units", ctx.Token); err != nil {
						return nil, err
					}
				}

				if p.mode != ModeMath {
					if err := p.settings.reportNonstrict("mathVsTextUnits", "LaTeX's "+ctx.Name+" works only in math mode", ctx.Token); err != nil {
						return nil, err
					}
				}
			} else if muUnit {
				if err := p.settings.reportNonstrict("mathVsTextUnits", "LaTeX's "+ctx.Name+" doesn't support mu units", ctx.Token); err != nil {
					return nil, err
				}
			}

			return &ParseNode{Type: TypeKern, Mode: p.mode, Dimension: size.Dimension}, nil
		},
		Builder: func(b *Builder, node *ParseNode, style Style) (Node, error) {
			dim, err := CalculateSize(node.Dimension, style)
			if err != nil {
				return nil, err
			}

			var ch string
			if dim.Number > 0 && dim.Unit == "em" {
				ch = spaceCharacter(dim.Number)
			}

			if node.Mode == ModeText && ch != "" {
				return NewElement("mtext", NewText(ch)), nil
			}

			space := NewElement("mspace")
			space.SetAttribute("width", dim.String())
			if dim.Number < 0 {
				space.SetStyle("margin-left", dim.String())
			}

			return space, nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:          TypeCr,
		Names:         []string{"\\\\"},
		AllowedInText: true,
		Handler: func(ctx *FunctionContext, _, _ []*ParseNode) (*ParseNode, error) {
			p := ctx.Parser
			node := &ParseNode{Type: TypeCr, Mode: p.mode, NewLine: true}

			next, err := p.gullet.Future()
			if err != nil {
				return nil, err
			}

			if next.Text == "[" {
				size, err := p.parseSizeGroup(true)
				if err != nil {
					return nil, err
				}

				if size != nil {
					node.Height = &size.Dimension
				}
			}

			return node, nil
		},
		Builder: func(b *Builder, node *ParseNode, style Style) (Node, error) {
			space := NewElement("mspace")
			space.SetAttribute("linebreak", "newline")

			if node.Height != nil {
				dim, err := CalculateSize(*node.Height, style)
				if err != nil {
					return nil, err
				}

				space.SetAttribute("height", dim.String())
			}

			return space, nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:            TypeRule,
		Names:           []string{"\\rule"},
		NumArgs:         2,
		NumOptionalArgs: 1,
		ArgTypes:        []ArgType{ArgSize, ArgSize, ArgSize},
		AllowedInText:   true,
		Handler: func(ctx *FunctionContext, args, optArgs []*ParseNode) (*ParseNode, error) {
			width, err := assertNodeType(args[0], TypeSize)
			if err != nil {
				return nil, err
			}

			height, err := assertNodeType(args[1], TypeSize)
			if err != nil {
				return nil, err
			}

			node := &ParseNode{Type: TypeRule, Mode: ctx.Parser.mode, Width: &width.Dimension, Height: &height.Dimension}
			if optArgs[0] != nil {
				shift, err := assertNodeType(optArgs[0], TypeSize)
				if err != nil {
					return nil, err
				}

				node.Shift = &shift.Dimension
			}

			return node, nil
		},
		Builder: buildRule,
	})
}

func buildRule(b *Builder, node *ParseNode, style Style) (Node, error) {
	width, err := CalculateSize(*node.Width, style)
	if err != nil {
		return nil, err
	}

	height, err := CalculateSize(*node.Height, style)
	if err != nil {
		return nil, err
	}

	shift := Measurement{Unit: "em"}
	if node.Shift != nil {
		if shift, err = CalculateSize(*node.Shift, style); err != nil {
			return nil, err
		}
	}

	color := style.Color
	if color == "" {
		color = "black"
	}

	rule := NewElement("mspace")
	if width.Number > 0 && height.Number > 0 {
		rule.SetAttribute("mathbackground", color)
	}

	rule.SetAttribute("width", width.String())
	rule.SetAttribute("height", height.String())

	if shift.Number == 0 {
		return rule, nil
	}

	wrapper := NewElement("mpadded", rule)
	if shift.Number >= 0 {
		wrapper.SetAttribute("height", "+"+shift.String())
	} else {
		wrapper.SetAttribute("height", shift.String())
		wrapper.SetAttribute("depth", "+"+Measurement{Number: -shift.Number, Unit: shift.Unit}.String())
	}

	wrapper.SetAttribute("voffset", shift.String())
	return wrapper, nil
}
