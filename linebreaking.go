package texmath

import "strings"

const (
	openDelims  = "([{⌊⌈⟨⟮⎰⟦⦃"
	closeDelims = ")]}⌋⌉⟩⟯⎱⟧⦄"
)

// setLineBreaks splits a top level expression into rows that a browser may wrap between. In
// WrapEquals mode a break goes before every top level "=" but the first, in WrapTeX mode after
// every top level operator together with its trailing glue. Hard breaks turn the result into a
// single column table.
func setLineBreaks(expression []Node, wrap WrapMode, display bool) Node {
	expression = flatten(expression)

	// hard breaks make a table, rows of a table are not wrapped
	for _, node := range expression {
		if el, ok := asElement(node); ok && el.GetAttribute("linebreak") == "newline" {
			wrap = WrapNone
			break
		}
	}

	var rows []Node
	var lines []*Element
	var block []Node
	equals := 0
	level := 0

	newLine := func() {
		mtd := NewElement("mtd", rows...)
		mtd.SetStyle("text-align", "left")
		lines = append(lines, NewElement("mtr", mtd))
		rows = nil
	}

	for i := 0; i < len(expression); i++ {
		node := expression[i]
		el, _ := asElement(node)

		if el != nil && el.GetAttribute("linebreak") == "newline" {
			if len(block) > 0 {
				rows = append(rows, NewElement("mrow", block...))
			}

			rows = append(rows, node)
			block = nil
			newLine()
			continue
		}

		block = append(block, node)

		if el == nil || el.Tag != "mo" || len(el.Children) != 1 {
			continue
		}

		if _, ok := el.Attr("movablelimits"); ok {
			continue
		}

		ch := el.ToText()
		switch {
		case ch != "" && strings.Contains(openDelims, ch):
			level++
		case ch != "" && strings.Contains(closeDelims, ch):
			level--
		case level == 0 && wrap == WrapEquals && ch == "=":
			equals++
			if equals > 1 {
				block = block[:len(block)-1]
				rows = append(rows, NewElement("mrow", block...))
				block = []Node{node}
			}
		case level == 0 && wrap == WrapTeX && ch != "∇":
			if next := nodeAt(expression, i+1); next != nil && isNobreak(next, "mtext") {
				continue
			}

			breakable := true
			// glue after the operator stays on its line
			for i+1 < len(expression) {
				glue, ok := asElement(expression[i+1], "mspace")
				if !ok || glue.GetAttribute("linebreak") == "newline" {
					break
				}

				block = append(block, glue)
				i++

				if glue.GetAttribute("linebreak") == "nobreak" {
					breakable = false
				}
			}

			if breakable {
				rows = append(rows, NewElement("mrow", block...))
				block = nil
			}
		}
	}

	if len(block) > 0 {
		rows = append(rows, NewElement("mrow", block...))
	}

	if len(lines) == 0 {
		return NewFragment(rows...)
	}

	newLine()

	children := make([]Node, len(lines))
	for i, line := range lines {
		children[i] = line
	}

	table := NewElement("mtable", children...)
	if !display {
		table.SetAttribute("columnalign", "left")
		table.SetAttribute("rowspacing", "0em")
	}

	return table
}

func nodeAt(nodes []Node, i int) Node {
	if i < 0 || i >= len(nodes) {
		return nil
	}

	return nodes[i]
}

func isNobreak(n Node, tag string) bool {
	el, ok := asElement(n, tag)
	return ok && el.GetAttribute("linebreak") == "nobreak"
}
