package texmath

// limitsBelow reports whether scripts of the base are set as limits under and over it
func limitsBelow(base *ParseNode, style Style) bool {
	if base == nil {
		return false
	}

	switch base.Type {
	case TypeOp:
		return base.Limits && (style.Level == DisplayStyle || base.AlwaysHandleSupSub)
	case TypeOperatorName:
		return base.AlwaysHandleSupSub && (base.Limits || style.Level == DisplayStyle)
	}

	return false
}

func buildSupSub(b *Builder, node *ParseNode, style Style) (Node, error) {
	base := node.Base

	// a brace with a script on its own side stacks the script
	isBrace, isOver := false, false
	if base != nil && base.Type == TypeHorizBrace && (node.Sup != nil) == base.IsOver {
		isBrace, isOver = true, base.IsOver
	}

	applyFn, trailingSpace, leadingSpace := false, false, false
	isOperator := base != nil && !base.Stack && (base.Type == TypeOp || base.Type == TypeOperatorName)
	if isOperator {
		applyFn = !base.Symbol
		trailingSpace = applyFn && !node.IsFollowedByDelimiter
		leadingSpace = base.NeedsLeadingSpace
	}

	var baseNode Node
	var err error

	switch {
	case base != nil && base.Stack:
		baseNode, err = b.ExpressionRow(base.Body, style, false)
	case isOperator && base.Type == TypeOp:
		baseNode, err = b.operator(base, style, true)
	case isOperator:
		baseNode, err = b.operatorName(base, style, true)
	default:
		baseNode, err = b.Group(base, style)
	}

	if err != nil {
		return nil, err
	}

	children := []Node{baseNode}
	childStyle := style.InSubOrSup()

	if node.Sub != nil {
		sub, err := b.Group(node.Sub, childStyle)
		if err != nil {
			return nil, err
		}

		if el, ok := asElement(sub); ok && style.Level == ScriptScriptStyle {
			el.SetAttribute("scriptlevel", "2")
		}

		children = append(children, sub)
	}

	if node.Sup != nil {
		sup, err := b.Group(node.Sup, childStyle)
		if err != nil {
			return nil, err
		}

		if el, ok := asElement(sup); ok && style.Level == ScriptScriptStyle {
			el.SetAttribute("scriptlevel", "2")
		}

		// keeps f′ from overlapping
		test := sup
		if row, ok := asElement(sup, "mrow"); ok && len(row.Children) > 0 {
			test = row.Children[0]
		}

		if mo, ok := asElement(test, "mo"); ok && mo.HasClass("tml-prime") && base != nil && (base.Text == "f" || base.Text == "F") {
			mo.AddClass("prime-pad")
		}

		children = append(children, sup)
	}

	var tag string
	switch {
	case isBrace && isOver:
		tag = "mover"
	case isBrace:
		tag = "munder"
	case node.Sub == nil:
		tag = "msup"
		if limitsBelow(base, style) {
			tag = "mover"
		}
	case node.Sup == nil:
		tag = "msub"
		if limitsBelow(base, style) {
			tag = "munder"
		}
	default:
		tag = "msubsup"
		if limitsBelow(base, style) {
			tag = "munderover"
		}
	}

	var result Node = NewElement(tag, children...)
	if applyFn {
		row := []Node{result, NewElement("mo", NewText(applyFunction))}
		if leadingSpace {
			row = append([]Node{thinSpace()}, row...)
		}

		if trailingSpace {
			row = append(row, thinSpace())
		}

		result = NewFragment(row...)
	}

	return result, nil
}
