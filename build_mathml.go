package texmath

import (
	"regexp"
	"strings"
)

const mathMLNamespace = "http://www.w3.org/1998/Math/MathML"

var latinPattern = regexp.MustCompile(`^[A-Za-z]$`)
var numberPattern = regexp.MustCompile(`^\d(?:[\d,.]*\d)?$`)

// primes are rendered as operators
var primes = map[string]bool{
	"\\prime": true, "′": true, "\\dprime": true, "″": true, "\\trprime": true, "‴": true,
	"\\backprime": true, "‵": true,
}

// Builder converts parse nodes into MathML, dispatching on node type through the registry.
type Builder struct {
	registry *Registry
	settings *Settings
}

func NewBuilder(settings *Settings, registry *Registry) *Builder {
	if settings == nil {
		settings = defaultSettings()
	}

	if registry == nil {
		registry = defaultRegistry()
	}

	return &Builder{registry: registry, settings: settings}
}

func (b *Builder) Settings() *Settings {
	return b.settings
}

// Group builds a single node, nil becomes an empty row.
func (b *Builder) Group(node *ParseNode, style Style) (Node, error) {
	if node == nil {
		return NewElement("mrow"), nil
	}

	build, ok := b.registry.builders[node.Type]
	if !ok {
		return nil, newError(ErrInternal, node.Loc, "Got group of unknown type: '%s'", node.Type)
	}

	return build(b, node, style)
}

// Expression builds a list of nodes, suppressing spacing between adjacent relations and merging
// digits with decimal separators into single numbers.
func (b *Builder) Expression(expression []*ParseNode, style Style, semisimple bool) ([]Node, error) {
	if !semisimple && len(expression) == 1 {
		group, err := b.Group(expression[0], style)
		if err != nil {
			return nil, err
		}

		// a lone operator in braces has no spacing
		if mo, ok := asElement(group, "mo"); ok {
			mo.SetAttribute("lspace", "0em")
			mo.SetAttribute("rspace", "0em")
		}

		return []Node{group}, nil
	}

	built := make([]Node, 0, len(expression))
	for _, node := range expression {
		group, err := b.Group(node, style)
		if err != nil {
			return nil, err
		}

		built = append(built, group)
	}

	var groups []Node
	var last *Element

	for i, group := range built {
		el, _ := asElement(group)

		if el != nil {
			if i < len(expression)-1 && isRel(expression[i]) && isRel(expression[i+1]) {
				el.SetAttribute("rspace", "0em")
			}

			if i > 0 && isRel(expression[i]) && isRel(expression[i-1]) {
				el.SetAttribute("lspace", "0em")
			}
		}

		lastIsNumber := last != nil && last.Tag == "mn"

		switch {
		case el != nil && el.Tag == "mn" && lastIsNumber:
			last.Children = append(last.Children, el.Children...)
			continue
		case isDecimalPoint(el) && lastIsNumber:
			last.Children = append(last.Children, el.Children...)
			continue
		case isBracedComma(el) && lastIsNumber && i < len(built)-1 && isTag(built[i+1], "mn"):
			last.Children = append(last.Children, el.Children...)
			continue
		case el != nil && el.Tag == "mn" && isDecimalPoint(last):
			el.Children = append(append([]Node{}, last.Children...), el.Children...)
			groups = groups[:len(groups)-1]
		case el != nil && (el.Tag == "msup" || el.Tag == "msub") && len(el.Children) > 0 && (lastIsNumber || isDecimalPoint(last)):
			if base, ok := asElement(el.Children[0], "mn"); ok {
				base.Children = append(append([]Node{}, last.Children...), base.Children...)
				groups = groups[:len(groups)-1]
			}
		}

		groups = append(groups, group)
		last = el
	}

	return groups, nil
}

// ExpressionRow builds a list of nodes into a single row.
func (b *Builder) ExpressionRow(expression []*ParseNode, style Style, semisimple bool) (Node, error) {
	body, err := b.Expression(expression, style, semisimple)
	if err != nil {
		return nil, err
	}

	return makeRow(body, semisimple), nil
}

func isRel(node *ParseNode) bool {
	return node != nil && ((node.Type == TypeAtom && node.Family == FamilyRel) || (node.Type == TypeMClass && node.Class == "mrel"))
}

// isDecimalPoint matches <mi>.</mi> produced for a period in math mode
func isDecimalPoint(el *Element) bool {
	return el != nil && el.Tag == "mi" && len(el.Children) == 1 && el.Children[0].ToText() == "."
}

// isBracedComma matches {,} which builds into a comma without spacing
func isBracedComma(el *Element) bool {
	return el != nil && el.Tag == "mo" && len(el.Children) == 1 && el.Children[0].ToText() == "," &&
		el.GetAttribute("lspace") == "0em" && el.GetAttribute("rspace") == "0em"
}

// makeRow wraps nodes into an mrow, a single node is returned as is. Unless the row is semisimple
// the operators at both ends lose their spacing.
func makeRow(body []Node, semisimple bool) Node {
	if len(body) == 1 {
		if _, ok := body[0].(*Fragment); !ok {
			return body[0]
		}
	}

	body = flatten(body)

	if !semisimple && len(body) > 0 {
		for _, n := range []Node{body[0], body[len(body)-1]} {
			if mo, ok := asElement(n, "mo"); ok {
				if _, fence := mo.Attr("fence"); !fence {
					mo.SetAttribute("lspace", "0em")
					mo.SetAttribute("rspace", "0em")
				}
			}
		}
	}

	return NewElement("mrow", body...)
}

// consolidateText merges a row of text runs with the same variant into one mtext
func consolidateText(node Node) Node {
	row, ok := asElement(node, "mrow", "mstyle")
	if !ok || len(row.Children) == 0 {
		return node
	}

	first, ok := asElement(row.Children[0], "mtext")
	if !ok {
		return node
	}

	variant := first.GetAttribute("mathvariant")

	var text strings.Builder
	collect := func(n Node) bool {
		el, ok := asElement(n, "mtext")
		if !ok || el.GetAttribute("mathvariant") != variant {
			return false
		}

		text.WriteString(el.ToText())
		return true
	}

	for _, child := range row.Children {
		if inner, ok := asElement(child, "mrow"); ok {
			for _, c := range inner.Children {
				if !collect(c) {
					return node
				}
			}

			continue
		}

		if !collect(child) {
			return node
		}
	}

	s := text.String()
	if strings.HasPrefix(s, " ") {
		s = "\u00a0" + s[1:]
	}

	if strings.HasSuffix(s, " ") {
		s = s[:len(s)-1] + "\u00a0"
	}

	mtext := NewElement("mtext", NewText(s))
	if variant != "" {
		mtext.SetAttribute("mathvariant", variant)
	}

	for _, a := range row.Attributes {
		mtext.SetAttribute(a.Name, a.Value)
	}

	mtext.Classes = append(mtext.Classes, row.Classes...)
	mtext.Style = append(mtext.Style, row.Style...)
	return mtext
}

// makeText creates text for a symbol, applying its replacement from the symbol table
func makeText(text string, mode Mode, style Style) *TextNode {
	if s, ok := symbols[mode][text]; ok && s.Replace != "" {
		_, ligature := ligatures[text]
		monospace := style.FontFamily == "texttt" || style.Font == "mathtt"
		if !ligature || !monospace {
			text = s.Replace
		}
	}

	return NewText(text)
}

// getVariant returns the mathvariant for a symbol in the current font, "" when the default applies
func getVariant(node *ParseNode, style Style) string {
	switch {
	case style.FontFamily == "texttt":
		return "monospace"
	case style.FontFamily == "textsf":
		switch {
		case style.FontShape == "textit" && style.FontWeight == "textbf":
			return "sans-serif-bold-italic"
		case style.FontShape == "textit":
			return "sans-serif-italic"
		case style.FontWeight == "textbf":
			return "bold-sans-serif"
		default:
			return "sans-serif"
		}
	case style.FontShape == "textit" && style.FontWeight == "textbf":
		return "bold-italic"
	case style.FontShape == "textit":
		return "italic"
	case style.FontWeight == "textbf":
		return "bold"
	}

	switch style.Font {
	case "", "mathnormal":
		return ""
	case "mathit":
		return "italic"
	case "mathrm":
		// lower case greek stays italic in \mathrm
		r := []rune(node.Text)
		if len(r) > 0 && r[0] > 0x03ab && r[0] < 0x03cf {
			return "italic"
		}

		return "normal"
	case "boldsymbol":
		return "bold-italic"
	case "mathbf":
		return "bold"
	case "mathbb":
		return "double-struck"
	case "mathfrak":
		return "fraktur"
	case "mathscr", "mathcal":
		return "script"
	case "mathsf":
		return "sans-serif"
	case "mathsfit":
		return "sans-serif-italic"
	case "mathtt":
		return "monospace"
	}

	return ""
}

func registerSymbolBuilders(r *Registry) {
	r.DefineBuilder(TypeMathOrd, buildMathOrd)
	r.DefineBuilder(TypeTextOrd, buildTextOrd)
	r.DefineBuilder(TypeAtom, buildAtom)
	r.DefineBuilder(TypeSpacing, buildSpacing)
	r.DefineBuilder(TypeSupSub, buildSupSub)

	r.DefineBuilder(TypeOrdGroup, func(b *Builder, node *ParseNode, style Style) (Node, error) {
		return b.ExpressionRow(node.Body, style, node.Semisimple)
	})

	// each group between \toggle and \endtoggle is one state of the action
	r.DefineBuilder(TypeToggle, func(b *Builder, node *ParseNode, style Style) (Node, error) {
		states, err := b.Expression(node.Body, style, false)
		if err != nil {
			return nil, err
		}

		maction := NewElement("maction", states...)
		maction.SetAttribute("actiontype", "toggle")

		return maction, nil
	})

	r.DefineBuilder(TypeOpToken, func(b *Builder, node *ParseNode, style Style) (Node, error) {
		return NewElement("mo", makeText(node.Text, node.Mode, style)), nil
	})

	r.DefineBuilder(TypeAccentToken, func(b *Builder, node *ParseNode, style Style) (Node, error) {
		tag := "mi"
		if node.Mode == ModeText {
			tag = "mtext"
		}

		return NewElement(tag, makeText(node.Text, node.Mode, style)), nil
	})

	r.DefineBuilder(TypeTag, func(b *Builder, node *ParseNode, style Style) (Node, error) {
		body, err := b.ExpressionRow(node.Body, style, false)
		if err != nil {
			return nil, err
		}

		return b.taggedExpression(body, node.Tag, style)
	})
}

func buildMathOrd(b *Builder, node *ParseNode, style Style) (Node, error) {
	text := makeText(node.Text, node.Mode, style)
	mi := NewElement("mi", text)

	variant := getVariant(node, style)
	if variant == "" {
		// capital greek letters are upright
		if isUpperGreek(text.Text) {
			mi.SetAttribute("mathvariant", "normal")
		}

		return mi, nil
	}

	if variant != "italic" {
		mi.SetAttribute("mathvariant", variant)
	}

	return mi, nil
}

func buildTextOrd(b *Builder, node *ParseNode, style Style) (Node, error) {
	text := makeText(node.Text, node.Mode, style)
	variant := getVariant(node, style)

	var el *Element
	switch {
	case numberPattern.MatchString(node.Text):
		tag := "mn"
		if node.Mode == ModeText {
			tag = "mtext"
		}

		el = NewElement(tag, text)
	case node.Mode == ModeText:
		el = NewElement("mtext", text)
	case primes[node.Text]:
		el = NewElement("mo", text)
		el.AddClass("tml-prime")
		return el, nil
	default:
		el = NewElement("mi", text)
		if variant == "" && latinPattern.MatchString(text.Text) {
			variant = "normal"
		}
	}

	if variant != "" && variant != "italic" || (variant == "italic" && el.Tag != "mi") {
		el.SetAttribute("mathvariant", variant)
	}

	return el, nil
}

// arrowPattern matches stretchable arrows which must keep their size as relations
var arrowPattern = regexp.MustCompile(`^\\(?:[lLrR]ight|[lL]eft|[uU]p|[dD]own|[lL]ongleft|[lL]ongright|[lL]ongleftright|[lL]eftright|hookleft|hookright|map)(?:s?to|arrow|harpoon|harpoonup|harpoondown)?s?$|^\\(?:gets|to|mapsto|longmapsto|nearrow|searrow|swarrow|nwarrow|leadsto)$`)

func buildAtom(b *Builder, node *ParseNode, style Style) (Node, error) {
	mo := NewElement("mo", makeText(node.Text, node.Mode, style))

	switch {
	case node.Family == FamilyPunct:
		mo.SetAttribute("separator", "true")
	case node.Family == FamilyOpen:
		mo.SetAttribute("form", "prefix")
		mo.SetAttribute("stretchy", "false")
	case node.Family == FamilyClose:
		mo.SetAttribute("form", "postfix")
		mo.SetAttribute("stretchy", "false")
	case node.Text == "\\mid":
		mo.SetAttribute("lspace", "0.22em")
		mo.SetAttribute("rspace", "0.22em")
		mo.SetAttribute("stretchy", "false")
	case node.Family == FamilyRel && arrowPattern.MatchString(node.Text):
		mo.SetAttribute("stretchy", "false")
	}

	if v := getVariant(node, style); v == "bold" || v == "bold-italic" {
		mo.SetAttribute("mathvariant", "bold")
	}

	return mo, nil
}

func buildSpacing(b *Builder, node *ParseNode, style Style) (Node, error) {
	switch node.Text {
	case " ", "\\ ", "\\space":
		return NewElement("mtext", NewText("\u00a0")), nil
	case "~", "\\nobreakspace":
		mtext := NewElement("mtext", NewText("\u00a0"))
		mtext.SetAttribute("linebreak", "nobreak")
		return mtext, nil
	case "\\nobreak", "\\allowbreak":
		mo := NewElement("mo")
		if node.Text == "\\nobreak" {
			mo.SetAttribute("linebreak", "nobreak")
		}

		return mo, nil
	default:
		return nil, newError(ErrParse, node.Loc, "Unknown type of space \"%s\"", node.Text)
	}
}

// glue is an empty table cell taking half of the free width
func glue() *Element {
	mtd := NewElement("mtd")
	mtd.SetStyle("padding", "0")
	mtd.SetStyle("width", "50%")
	return mtd
}

// taggedExpression lays out the expression with its tag in a three cell row
func (b *Builder) taggedExpression(expression Node, tag []*ParseNode, style Style) (Node, error) {
	var body []*ParseNode
	if len(tag) > 0 {
		body = tag[0].Body
	}

	row, err := b.ExpressionRow(body, style, false)
	if err != nil {
		return nil, err
	}

	label := consolidateText(row)
	if el, ok := asElement(label); ok {
		el.AddClass("tml-tag")
	}

	cells := []*Element{glue(), NewElement("mtd", expression), glue()}
	if b.settings.Leqno {
		cells[0].Children = append(cells[0].Children, label)
	} else {
		cells[2].Children = append(cells[2].Children, label)
	}

	mtr := NewElement("mtr", cells[0], cells[1], cells[2])
	mtr.AddClass("tml-tageqn")

	table := NewElement("mtable", mtr)
	table.SetStyle("width", "100%")
	table.SetAttribute("displaystyle", "true")
	return table, nil
}

// BuildMathML builds the root math element for a parsed expression.
func (b *Builder) BuildMathML(tree []*ParseNode, source string, style Style) (*Element, error) {
	var tag []*ParseNode
	if len(tree) == 1 && tree[0].Type == TypeTag {
		tag = tree[0].Tag
		tree = tree[0].Body
	}

	expression, err := b.Expression(tree, style, false)
	if err != nil {
		return nil, err
	}

	wrap := b.settings.Wrap
	if b.settings.DisplayMode || b.settings.Annotate {
		wrap = WrapNone
	}

	var wrapper Node
	if _, isElement := asElement(firstNode(expression)); len(expression) == 1 && tag == nil && isElement {
		wrapper = expression[0]
	} else {
		wrapper = setLineBreaks(expression, wrap, b.settings.DisplayMode)
	}

	if tag != nil {
		if wrapper, err = b.taggedExpression(wrapper, tag, style); err != nil {
			return nil, err
		}
	}

	if b.settings.Annotate {
		annotation := NewElement("annotation", NewText(source))
		annotation.SetAttribute("encoding", "application/x-tex")
		wrapper = NewElement("semantics", wrapper, annotation)
	}

	math := NewElement("math", wrapper)
	if b.settings.XML {
		math.SetAttribute("xmlns", mathMLNamespace)
	}

	if el, ok := asElement(wrapper); ok && el.GetStyle("width") != "" {
		math.SetStyle("width", "100%")
	}

	if b.settings.DisplayMode {
		math.SetAttribute("display", "block")
		math.SetStyle("display", "block math")
		math.AddClass("tml-display")
	}

	return math, nil
}

func firstNode(nodes []Node) Node {
	if len(nodes) == 0 {
		return nil
	}

	return nodes[0]
}
