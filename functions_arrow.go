package texmath

// minArrowWidth is the shortest extensible arrow, in em
const minArrowWidth = 1.75

func registerArrows(r *Registry) {
	r.DefineFunction(FunctionSpec{
		Type: TypeXArrow,
		Names: []string{
			"\\xleftarrow", "\\xrightarrow", "\\xLeftarrow", "\\xRightarrow", "\\xleftrightarrow", "\\xLeftrightarrow",
			"\\xhookleftarrow", "\\xhookrightarrow", "\\xmapsto", "\\xrightharpoondown", "\\xrightharpoonup",
			"\\xleftharpoondown", "\\xleftharpoonup", "\\xlongequal", "\\xtwoheadrightarrow", "\\xtwoheadleftarrow",
			"\\xtofrom", "\\xleftrightharpoons", "\\xrightleftharpoons",
		},
		NumArgs:         1,
		NumOptionalArgs: 1,
		Handler: func(ctx *FunctionContext, args, optArgs []*ParseNode) (*ParseNode, error) {
			return &ParseNode{Type: TypeXArrow, Mode: ctx.Parser.mode, Label: ctx.Name, Body: []*ParseNode{args[0]}, Sub: optArgs[0]}, nil
		},
		Builder: buildXArrow,
	})
}

// paddedLabel surrounds a label with spaces so that the arrow is a little longer than its label
func paddedLabel(label Node, lspace, rspace float64) *Element {
	var row []Node
	if lspace != 0 {
		row = append(row, padding(lspace))
	}

	if label != nil {
		row = append(row, label)
	}

	if rspace > 0 {
		row = append(row, padding(rspace))
	}

	if label == nil && rspace == 0 {
		return padding(lspace)
	}

	return NewElement("mrow", row...)
}

// hasContent reports whether an arrow label has anything visible
func hasContent(n *ParseNode) bool {
	if n == nil {
		return false
	}

	if n.Type == TypeOrdGroup {
		return len(n.Body) > 0
	}

	return true
}

func buildXArrow(b *Builder, node *ParseNode, style Style) (Node, error) {
	arrow := stretchyOperator(node.Label)
	arrow.SetAttribute("lspace", "0")
	arrow.SetAttribute("rspace", "0")

	// labels are set at script level by munderover, sizes are scaled accordingly
	labelStyle := style.WithLevel(ScriptStyle)
	if style.Level >= ScriptStyle {
		labelStyle = style.WithLevel(ScriptScriptStyle)
	}

	labelWidth := minArrowWidth / emScale(labelStyle.Level)
	emptyLabel := padding(round(labelWidth))

	// the label sits in a mover with an invisible spacer on top, the spacer forces the minimum width
	dummy := padding(round(minArrowWidth / emScale(ScriptScriptStyle)))
	space := round(0.3 / emScale(labelStyle.Level))

	var upper, lower *Element

	if above := node.Body[0]; hasContent(above) {
		label, err := b.Group(above, labelStyle)
		if err != nil {
			return nil, err
		}

		upper = NewElement("mover", paddedLabel(label, space, space), dummy)
	}

	if below := node.Sub; hasContent(below) {
		label, err := b.Group(below, labelStyle)
		if err != nil {
			return nil, err
		}

		lower = NewElement("munder", paddedLabel(label, space, space), padding(round(minArrowWidth/emScale(ScriptScriptStyle))))
	}

	var el *Element
	switch {
	case upper == nil && lower == nil:
		el = NewElement("mover", arrow, emptyLabel)
	case upper != nil && lower != nil:
		el = NewElement("munderover", arrow, lower, upper)
	case upper != nil:
		el = NewElement("mover", arrow, upper)
	default:
		el = NewElement("munder", arrow, lower)
	}

	el.SetAttribute("accent", "false")

	// spaced like a relation
	return NewElement("mrow", padding(0.2778), el, padding(0.2778)), nil
}
