package texmath

import (
	"fmt"
	"strings"
)

// textAtomTypes may be promoted into the operator built by an mclass
var textAtomTypes = map[NodeType]bool{
	TypeText:    true,
	TypeTextOrd: true,
	TypeMathOrd: true,
	TypeAtom:    true,
}

func registerMClass(r *Registry) {
	r.DefineFunction(FunctionSpec{
		Type:      TypeMClass,
		Names:     []string{"\\mathord", "\\mathbin", "\\mathrel", "\\mathopen", "\\mathclose", "\\mathpunct", "\\mathinner"},
		NumArgs:   1,
		Primitive: true,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			p := ctx.Parser
			body := args[0]

			// an operator cannot wrap an identifier, plain text is lifted into a single node instead
			mustPromote := true
			var text strings.Builder

			for _, arg := range ordArgument(body) {
				if !textAtomTypes[arg.Type] {
					mustPromote = false
					break
				}

				switch {
				case arg.Text != "":
					if sym, ok := lookupSymbol(p.mode, arg.Text); ok && sym.Replace != "" {
						text.WriteString(sym.Replace)
					} else {
						text.WriteString(arg.Text)
					}
				default:
					for _, child := range arg.Body {
						text.WriteString(child.Text)
					}
				}
			}

			mord := &ParseNode{Type: TypeMathOrd, Mode: p.mode, Text: text.String()}
			if mustPromote && ctx.Name == "\\mathord" && len([]rune(mord.Text)) > 1 {
				return mord, nil
			}

			node := &ParseNode{
				Type:           TypeMClass,
				Mode:           p.mode,
				Class:          "m" + ctx.Name[5:],
				IsCharacterBox: isCharacterBox(body),
				MustPromote:    mustPromote,
				Body:           ordArgument(body),
			}

			if mustPromote {
				node.Body = []*ParseNode{mord}
			}

			return node, nil
		},
		Builder: buildMClass,
	})

	// \@binrel{x}{y} gives y the class of x
	r.DefineFunction(FunctionSpec{
		Type:    TypeMClass,
		Names:   []string{"\\@binrel"},
		NumArgs: 2,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			return &ParseNode{
				Type:           TypeMClass,
				Mode:           ctx.Parser.mode,
				Class:          binrelClass(args[0]),
				Body:           ordArgument(args[1]),
				IsCharacterBox: isCharacterBox(args[1]),
			}, nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:    TypeSupSub,
		Names:   []string{"\\overset", "\\underset"},
		NumArgs: 2,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			shifted, base := args[0], args[1]

			op := &ParseNode{
				Type:               TypeOp,
				Mode:               base.Mode,
				Limits:             true,
				AlwaysHandleSupSub: true,
				Stack:              true,
				Body:               ordArgument(base),
			}

			node := &ParseNode{Type: TypeSupSub, Mode: shifted.Mode, Base: op}
			if ctx.Name == "\\underset" {
				node.Sub = shifted
			} else {
				node.Sup = shifted
			}

			return node, nil
		},
	})
}

func binrelClass(arg *ParseNode) string {
	atom := arg
	if arg.Type == TypeOrdGroup && len(arg.Body) > 0 {
		atom = arg.Body[0]
	}

	if atom.Type == TypeAtom && (atom.Family == FamilyBin || atom.Family == FamilyRel) {
		return "m" + atom.Family
	}

	return "mord"
}

func padding(width float64) *Element {
	space := NewElement("mspace")
	space.SetAttribute("width", fmt.Sprintf("%.4fem", width))
	return space
}

func buildMClass(b *Builder, node *ParseNode, style Style) (Node, error) {
	inner, err := b.Expression(node.Body, style, false)
	if err != nil {
		return nil, err
	}

	inner = flatten(inner)

	switch node.Class {
	case "minner":
		return NewElement("mpadded", inner...), nil
	case "mord":
		if first, ok := firstElement(inner); ok && (node.IsCharacterBox || first.Tag == "mi") {
			first.Tag = "mi"
			if text, ok := singleText(first); ok && text.Text == "∇" {
				first.SetAttribute("mathvariant", "normal")
			}

			return first, nil
		}

		return NewElement("mi", inner...), nil
	}

	var el *Element
	if first, ok := firstElement(inner); ok && node.MustPromote {
		el = first
		el.Tag = "mo"
		if node.IsCharacterBox && len(node.Body) > 0 && latinPattern.MatchString(node.Body[0].Text) {
			el.SetAttribute("mathvariant", "italic")
		}
	} else {
		el = NewElement("mrow", inner...)
	}

	// operator spacing is zero inside scripts
	doSpacing := style.Level < ScriptStyle

	if el.Tag == "mrow" {
		if doSpacing {
			switch node.Class {
			case "mbin":
				el.Children = append([]Node{padding(0.2222)}, append(el.Children, padding(0.2222))...)
			case "mrel":
				el.Children = append([]Node{padding(0.2778)}, append(el.Children, padding(0.2778))...)
			case "mpunct":
				el.Children = append(el.Children, padding(0.1667))
			}
		}
	} else {
		space := func(width string) string {
			if doSpacing {
				return width
			}

			return "0"
		}

		switch node.Class {
		case "mbin":
			el.SetAttribute("lspace", space("0.2222em"))
			el.SetAttribute("rspace", space("0.2222em"))
		case "mrel":
			el.SetAttribute("lspace", space("0.2778em"))
			el.SetAttribute("rspace", space("0.2778em"))
		case "mpunct":
			el.SetAttribute("lspace", "0em")
			el.SetAttribute("rspace", space("0.1667em"))
		case "mopen", "mclose":
			el.SetAttribute("lspace", "0em")
			el.SetAttribute("rspace", "0em")
		}
	}

	if node.Class != "mopen" && node.Class != "mclose" {
		el.RemoveAttribute("stretchy")
		el.RemoveAttribute("form")
	}

	return el, nil
}

// firstElement returns the first node when it is an element
func firstElement(nodes []Node) (*Element, bool) {
	if len(nodes) == 0 {
		return nil, false
	}

	return asElement(nodes[0])
}
