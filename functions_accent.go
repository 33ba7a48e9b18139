package texmath

import (
	"regexp"
	"strings"
)

var nonStretchyAccent = regexp.MustCompile(`^\\(?:acute|grave|ddot|tilde|bar|breve|check|hat|vec|dot|mathring)$`)

// combiningAccents are appended to a letter by text mode accents
var combiningAccents = map[string]string{
	"\\'":  "\u0301",
	"\\`":  "\u0300",
	"\\^":  "\u0302",
	"\\~":  "\u0303",
	"\\=":  "\u0304",
	"\\u":  "\u0306",
	"\\.":  "\u0307",
	"\\\"": "\u0308",
	"\\r":  "\u030a",
	"\\H":  "\u030b",
	"\\v":  "\u030c",
	"\\c":  "\u0327",
}

func registerAccents(r *Registry) {
	r.DefineFunction(FunctionSpec{
		Type: TypeAccent,
		Names: []string{
			"\\acute", "\\grave", "\\ddot", "\\tilde", "\\bar", "\\breve", "\\check", "\\hat", "\\vec", "\\dot",
			"\\mathring", "\\overparen", "\\widecheck", "\\widehat", "\\wideparen", "\\widetilde",
			"\\overrightarrow", "\\overleftarrow", "\\Overrightarrow", "\\overleftrightarrow", "\\overgroup",
			"\\overleftharpoon", "\\overrightharpoon", "\\overline",
		},
		NumArgs: 1,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			return &ParseNode{
				Type:       TypeAccent,
				Mode:       ctx.Parser.mode,
				Label:      ctx.Name,
				IsStretchy: !nonStretchyAccent.MatchString(ctx.Name),
				Base:       normalizeArgument(args[0]),
			}, nil
		},
		Builder: buildAccent,
	})

	r.DefineFunction(FunctionSpec{
		Type:          TypeAccent,
		Names:         []string{"\\'", "\\`", "\\^", "\\~", "\\=", "\\c", "\\u", "\\.", "\\\"", "\\r", "\\H", "\\v"},
		NumArgs:       1,
		ArgTypes:      []ArgType{ArgPrimitive},
		AllowedInText: true,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			p := ctx.Parser
			base := normalizeArgument(args[0])

			if p.mode == ModeMath {
				if err := p.settings.reportNonstrict("mathVsTextAccents", "LaTeX's accent "+ctx.Name+" works only in text mode", ctx.Token); err != nil {
					return nil, err
				}
			}

			// a single letter takes a combining mark
			if p.mode == ModeText && base != nil && isSymbolNode(base) && len([]rune(base.Text)) == 1 && latinPattern.MatchString(base.Text) {
				return &ParseNode{Type: TypeTextOrd, Mode: ModeText, Loc: base.Loc, Text: base.Text + combiningAccents[ctx.Name]}, nil
			}

			return &ParseNode{Type: TypeAccent, Mode: p.mode, Label: ctx.Name, Base: base}, nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type: TypeAccentUnder,
		Names: []string{
			"\\underleftarrow", "\\underrightarrow", "\\underleftrightarrow", "\\undergroup", "\\underparen",
			"\\utilde", "\\underline",
		},
		NumArgs:       1,
		AllowedInText: true,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			return &ParseNode{Type: TypeAccentUnder, Mode: ctx.Parser.mode, Label: ctx.Name, Base: args[0]}, nil
		},
		Builder: func(b *Builder, node *ParseNode, style Style) (Node, error) {
			base, err := b.Group(node.Base, style)
			if err != nil {
				return nil, err
			}

			accent := stretchyOperator(node.Label)
			accent.SetStyle("math-depth", "0")

			munder := NewElement("munder", base, accent)
			munder.SetAttribute("accentunder", "true")
			return munder, nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:    TypeHorizBrace,
		Names:   []string{"\\overbrace", "\\underbrace", "\\overbracket", "\\underbracket"},
		NumArgs: 1,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			return &ParseNode{
				Type:   TypeHorizBrace,
				Mode:   ctx.Parser.mode,
				Label:  ctx.Name,
				IsOver: strings.HasPrefix(ctx.Name, "\\over"),
				Base:   args[0],
			}, nil
		},
		Builder: func(b *Builder, node *ParseNode, style Style) (Node, error) {
			base, err := b.Group(node.Base, style)
			if err != nil {
				return nil, err
			}

			brace := stretchyOperator(node.Label)
			brace.SetStyle("math-depth", "0")

			if node.IsOver {
				return NewElement("mover", base, brace), nil
			}

			return NewElement("munder", base, brace), nil
		},
	})
}

// accentShift names glyphs whose accent sits too far right without a correction
const (
	lowercaseShift = "aceοmnpqrsuvwxyzαγεηικμνοπρςστυχωϕ"
	uppercaseShift = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

func buildAccent(b *Builder, node *ParseNode, style Style) (Node, error) {
	var accent *Element
	if node.IsStretchy {
		accent = stretchyOperator(node.Label)
	} else {
		accent = NewElement("mo", makeText(node.Label, node.Mode, style))
	}

	if node.Label == "\\vec" {
		accent.SetStyle("transform", "scale(0.75) translate(10%, 30%)")
	} else {
		accent.SetStyle("math-style", "normal")
		accent.SetStyle("math-depth", "0")

		if !node.IsStretchy && isCharacterBox(node.Base) {
			ch := normalizeArgument(node.Base).Text
			switch {
			case ch != "" && strings.Contains(lowercaseShift, ch):
				accent.AddClass("tml-xshift")
			case ch != "" && strings.Contains(uppercaseShift, ch):
				accent.AddClass("tml-capshift")
			}
		}
	}

	if !node.IsStretchy {
		accent.SetAttribute("stretchy", "false")
	}

	base, err := b.Group(node.Base, style)
	if err != nil {
		return nil, err
	}

	tag := "mover"
	if node.Label == "\\c" {
		tag = "munder"
	}

	el := NewElement(tag, base, accent)
	if node.Label == "\\overline" {
		el.SetAttribute("accent", "true")
	}

	return el, nil
}
