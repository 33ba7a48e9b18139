package texmath

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Node is a node of the output markup tree.
type Node interface {
	// ToMarkup serializes the node
	ToMarkup() string
	// ToText returns concatenated text content
	ToText() string
}

// Attribute is a name/value pair, attributes keep insertion order.
type Attribute struct {
	Name  string
	Value string
}

// Element is a MathML element.
type Element struct {
	Tag        string
	Attributes []Attribute
	Classes    []string
	Style      []Attribute
	Children   []Node
}

// TextNode is a text leaf.
type TextNode struct {
	Text string
}

// Fragment groups nodes without representation of its own, it is flattened into its parent when serialized.
type Fragment struct {
	Children []Node
}

func NewElement(tag string, children ...Node) *Element {
	return &Element{Tag: tag, Children: children}
}

func NewText(text string) *TextNode {
	return &TextNode{Text: text}
}

func NewFragment(children ...Node) *Fragment {
	return &Fragment{Children: children}
}

// SetAttribute sets value of an attribute, keeping its position if it already exists.
func (e *Element) SetAttribute(name, value string) {
	for i := range e.Attributes {
		if e.Attributes[i].Name == name {
			e.Attributes[i].Value = value
			return
		}
	}

	e.Attributes = append(e.Attributes, Attribute{Name: name, Value: value})
}

// Attr returns value of an attribute and whether it is set.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}

	return "", false
}

// GetAttribute returns value of an attribute or empty string.
func (e *Element) GetAttribute(name string) string {
	v, _ := e.Attr(name)
	return v
}

func (e *Element) RemoveAttribute(name string) {
	for i := range e.Attributes {
		if e.Attributes[i].Name == name {
			e.Attributes = append(e.Attributes[:i], e.Attributes[i+1:]...)
			return
		}
	}
}

// SetStyle sets an inline CSS property.
func (e *Element) SetStyle(property, value string) {
	for i := range e.Style {
		if e.Style[i].Name == property {
			e.Style[i].Value = value
			return
		}
	}

	e.Style = append(e.Style, Attribute{Name: property, Value: value})
}

func (e *Element) GetStyle(property string) string {
	for _, s := range e.Style {
		if s.Name == property {
			return s.Value
		}
	}

	return ""
}

func (e *Element) AddClass(class string) {
	e.Classes = append(e.Classes, class)
}

func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes {
		if c == class {
			return true
		}
	}

	return false
}

func (e *Element) ToMarkup() string {
	return toMarkup(e)
}

func (e *Element) ToText() string {
	return childrenText(e.Children)
}

func (t *TextNode) ToMarkup() string {
	return html.EscapeString(t.Text)
}

func (t *TextNode) ToText() string {
	return t.Text
}

func (f *Fragment) ToMarkup() string {
	return toMarkup(f)
}

func (f *Fragment) ToText() string {
	return childrenText(f.Children)
}

func toMarkup(node Node) string {
	var b strings.Builder
	_ = Render(&b, node)
	return b.String()
}

func childrenText(children []Node) string {
	var b strings.Builder
	for _, c := range children {
		b.WriteString(c.ToText())
	}

	return b.String()
}

// Render writes markup of the node to w.
func Render(w io.Writer, node Node) error {
	return render(w, node)
}

func render(w io.Writer, node Node) error {
	switch n := node.(type) {
	case *Element:
		return renderElement(w, n)
	case *TextNode:
		return renderText(w, n)
	case *Fragment:
		return renderChildren(w, n.Children)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported node type %T", node)
	}
}

func renderText(w io.Writer, node *TextNode) error {
	_, err := io.WriteString(w, html.EscapeString(node.Text))
	return err
}

func renderChildren(w io.Writer, children []Node) error {
	for _, child := range children {
		if err := render(w, child); err != nil {
			return err
		}
	}

	return nil
}

func renderElement(w io.Writer, node *Element) error {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(node.Tag)

	for _, a := range node.Attributes {
		fmt.Fprintf(&b, ` %s="%s"`, a.Name, html.EscapeString(a.Value))
	}

	if len(node.Classes) > 0 {
		var classes []string
		for _, c := range node.Classes {
			if c != "" {
				classes = append(classes, c)
			}
		}

		if len(classes) > 0 {
			fmt.Fprintf(&b, ` class="%s"`, html.EscapeString(strings.Join(classes, " ")))
		}
	}

	if len(node.Style) > 0 {
		var styles strings.Builder
		for _, s := range node.Style {
			fmt.Fprintf(&styles, "%s:%s;", s.Name, s.Value)
		}

		fmt.Fprintf(&b, ` style="%s"`, html.EscapeString(styles.String()))
	}

	b.WriteString(">")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("unable to render element %s: %w", node.Tag, err)
	}

	if err := renderChildren(w, node.Children); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "</%s>", node.Tag)
	return err
}

// flatten replaces fragments with their children
func flatten(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		if f, ok := n.(*Fragment); ok {
			out = append(out, flatten(f.Children)...)
			continue
		}

		out = append(out, n)
	}

	return out
}

// asElement returns the node as element if it is one of the given tags (any tag if none given)
func asElement(n Node, tags ...string) (*Element, bool) {
	e, ok := n.(*Element)
	if !ok || e == nil {
		return nil, false
	}

	if len(tags) == 0 {
		return e, true
	}

	for _, t := range tags {
		if e.Tag == t {
			return e, true
		}
	}

	return nil, false
}

// isTag reports whether node is an element with the tag
func isTag(n Node, tag string) bool {
	_, ok := asElement(n, tag)
	return ok
}
