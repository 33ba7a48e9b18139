package texmath

import (
	"fmt"
	"strings"
)

type delimiterSize struct {
	class string
	size  int
}

var delimiterSizes = map[string]delimiterSize{
	"\\bigl":  {"mopen", 1},
	"\\Bigl":  {"mopen", 2},
	"\\biggl": {"mopen", 3},
	"\\Biggl": {"mopen", 4},
	"\\bigr":  {"mclose", 1},
	"\\Bigr":  {"mclose", 2},
	"\\biggr": {"mclose", 3},
	"\\Biggr": {"mclose", 4},
	"\\bigm":  {"mrel", 1},
	"\\Bigm":  {"mrel", 2},
	"\\biggm": {"mrel", 3},
	"\\Biggm": {"mrel", 4},
	"\\big":   {"mord", 1},
	"\\Big":   {"mord", 2},
	"\\bigg":  {"mord", 3},
	"\\Bigg":  {"mord", 4},
}

// sizeToMaxHeight is the height of a delimiter of the given size in em
var sizeToMaxHeight = []float64{0, 1.2, 1.8, 2.4, 3.0}

var delimiters = map[string]bool{}

func init() {
	for _, d := range []string{
		"(", "\\lparen", ")", "\\rparen", "[", "\\lbrack", "]", "\\rbrack", "\\{", "\\lbrace", "\\}", "\\rbrace",
		"⦇", "\\llparenthesis", "⦈", "\\rrparenthesis", "\\lfloor", "\\rfloor", "⌊", "⌋", "\\lceil", "\\rceil",
		"⌈", "⌉", "<", ">", "\\langle", "⟨", "\\rangle", "⟩", "\\lAngle", "⟪", "\\rAngle", "⟫", "\\llangle",
		"⦉", "\\rrangle", "⦊", "\\lt", "\\gt", "\\lvert", "\\rvert", "\\lVert", "\\rVert", "\\lgroup", "\\rgroup",
		"⟮", "⟯", "\\lmoustache", "\\rmoustache", "⎰", "⎱", "\\llbracket", "\\rrbracket", "⟦", "⟧",
		"\\lBrace", "\\rBrace", "⦃", "⦄", "/", "\\backslash", "|", "\\vert", "\\|", "\\Vert", "‖",
		"\\uparrow", "\\Uparrow", "\\downarrow", "\\Downarrow", "\\updownarrow", "\\Updownarrow", ".",
	} {
		delimiters[d] = true
	}
}

// checkDelimiter validates a delimiter argument, angle brackets replace < and > which do not stretch
func checkDelimiter(delim *ParseNode, funcName string) (string, error) {
	if !isSymbolNode(delim) {
		typ := NodeType("nil")
		if delim != nil {
			typ = delim.Type
		}

		return "", newError(ErrParse, delimLoc(delim), "Invalid delimiter type '%s'", typ)
	}

	if !delimiters[delim.Text] {
		return "", newError(ErrParse, delim.Loc, "Invalid delimiter '%s' after '%s'", delim.Text, funcName)
	}

	switch delim.Text {
	case "<", "\\lt":
		return "⟨", nil
	case ">", "\\gt":
		return "⟩", nil
	}

	return delim.Text, nil
}

func delimLoc(n *ParseNode) *SourceLocation {
	if n == nil {
		return nil
	}

	return n.Loc
}

func isArrowDelim(delim string) bool {
	return strings.Contains(delim, "arrow") || strings.Contains(delim, "Arrow")
}

func registerDelimiters(r *Registry) {
	names := make([]string, 0, len(delimiterSizes))
	for name := range delimiterSizes {
		names = append(names, name)
	}

	r.DefineFunction(FunctionSpec{
		Type:     TypeDelimSizing,
		Names:    names,
		NumArgs:  1,
		ArgTypes: []ArgType{ArgPrimitive},
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			delim, err := checkDelimiter(args[0], ctx.Name)
			if err != nil {
				return nil, err
			}

			size := delimiterSizes[ctx.Name]
			return &ParseNode{Type: TypeDelimSizing, Mode: ctx.Parser.mode, Size: size.size, Class: size.class, Delim: delim}, nil
		},
		Builder: func(b *Builder, node *ParseNode, style Style) (Node, error) {
			delim := node.Delim
			if delim == "." {
				delim = ""
			}

			mo := NewElement("mo", makeText(delim, node.Mode, style))
			mo.SetAttribute("fence", fmt.Sprint(node.Class == "mopen" || node.Class == "mclose"))
			if delim == "\\backslash" || isArrowDelim(delim) {
				mo.SetAttribute("stretchy", "true")
			}

			height := fmt.Sprintf("%.1fem", sizeToMaxHeight[node.Size])
			mo.SetAttribute("symmetric", "true")
			mo.SetAttribute("minsize", height)
			mo.SetAttribute("maxsize", height)
			return mo, nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:     TypeLeftRightRight,
		Names:    []string{"\\right"},
		NumArgs:  1,
		ArgTypes: []ArgType{ArgPrimitive},
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			delim, err := checkDelimiter(args[0], ctx.Name)
			if err != nil {
				return nil, err
			}

			return &ParseNode{Type: TypeLeftRightRight, Mode: ctx.Parser.mode, Delim: delim}, nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:     TypeLeftRight,
		Names:    []string{"\\left"},
		NumArgs:  1,
		ArgTypes: []ArgType{ArgPrimitive},
		Handler:  parseLeftRight,
		Builder:  buildLeftRight,
	})

	r.DefineFunction(FunctionSpec{
		Type:     TypeMiddle,
		Names:    []string{"\\middle"},
		NumArgs:  1,
		ArgTypes: []ArgType{ArgPrimitive},
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			delim, err := checkDelimiter(args[0], ctx.Name)
			if err != nil {
				return nil, err
			}

			if ctx.Parser.leftrightDepth == 0 {
				return nil, errorAt(ErrParse, ctx.Token, "\\middle without preceding \\left")
			}

			return &ParseNode{Type: TypeMiddle, Mode: ctx.Parser.mode, Delim: delim}, nil
		},
		Builder: func(b *Builder, node *ParseNode, style Style) (Node, error) {
			mo := NewElement("mo", makeText(node.Delim, node.Mode, style))
			mo.SetAttribute("fence", "true")
			if isArrowDelim(node.Delim) {
				mo.SetAttribute("stretchy", "true")
			}

			// stretches in more renderers as a prefix, spaced like a delimiter
			mo.SetAttribute("form", "prefix")
			mo.SetAttribute("lspace", "0.05em")
			mo.SetAttribute("rspace", "0.05em")
			return mo, nil
		},
	})
}

func parseLeftRight(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
	left, err := checkDelimiter(args[0], ctx.Name)
	if err != nil {
		return nil, err
	}

	p := ctx.Parser
	p.leftrightDepth++

	body, err := p.parseExpression(false, "\\right", true)
	if err != nil {
		return nil, err
	}

	next, err := p.fetch()
	if err != nil {
		return nil, err
	}

	for next.Text == "\\middle" {
		p.consume()

		tok, err := p.fetch()
		if err != nil {
			return nil, err
		}

		if _, ok := lookupSymbol(ModeMath, tok.Text); !ok {
			return nil, errorAt(ErrParse, tok, "Invalid delimiter '%s' after '\\middle'", tok.Text)
		}

		middle, err := checkDelimiter(&ParseNode{Type: TypeAtom, Mode: ModeMath, Loc: tok.Loc, Text: tok.Text}, "\\middle")
		if err != nil {
			return nil, err
		}

		body = append(body, &ParseNode{Type: TypeMiddle, Mode: ModeMath, Loc: tok.Loc, Delim: middle})
		p.consume()

		rest, err := p.parseExpression(false, "\\right", true)
		if err != nil {
			return nil, err
		}

		body = append(body, rest...)
		if next, err = p.fetch(); err != nil {
			return nil, err
		}
	}

	p.leftrightDepth--

	if err := p.expect("\\right", false); err != nil {
		return nil, err
	}

	rightNode, err := p.parseFunction("", "")
	if err != nil {
		return nil, err
	}

	right, err := assertNodeType(rightNode, TypeLeftRightRight)
	if err != nil {
		return nil, err
	}

	return &ParseNode{Type: TypeLeftRight, Mode: p.mode, Body: body, Left: left, Right: right.Delim, IsStretchy: true}, nil
}

func buildLeftRight(b *Builder, node *ParseNode, style Style) (Node, error) {
	inner, err := b.Expression(node.Body, style, false)
	if err != nil {
		return nil, err
	}

	fence := func(delim, form string) *Element {
		if delim == "." {
			delim = ""
		}

		mo := NewElement("mo", makeText(delim, node.Mode, style))
		mo.SetAttribute("fence", "true")
		mo.SetAttribute("form", form)
		if delim == "/" || delim == "\\backslash" || isArrowDelim(delim) {
			mo.SetAttribute("stretchy", "true")
		}

		return mo
	}

	right := fence(node.Right, "postfix")

	// a trailing \color also colors the closing delimiter
	if n := len(node.Body); n > 0 && node.Body[n-1].Type == TypeColor && node.Body[n-1].Label == "\\color" {
		right.SetAttribute("mathcolor", node.Body[n-1].Color)
	}

	row := append([]Node{fence(node.Left, "prefix")}, inner...)
	return makeRow(append(row, right), false), nil
}
