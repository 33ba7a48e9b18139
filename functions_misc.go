package texmath

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

func registerMisc(r *Registry) {
	// \@char{N} is what \char expands to
	r.DefineFunction(FunctionSpec{
		Type:          TypeTextOrd,
		Names:         []string{"\\@char"},
		NumArgs:       1,
		AllowedInText: true,
		Handler: func(ctx *FunctionContext, args, _ []*ParseNode) (*ParseNode, error) {
			group, err := assertNodeType(args[0], TypeOrdGroup)
			if err != nil {
				return nil, err
			}

			var number strings.Builder
			for _, n := range group.Body {
				digit, err := assertNodeType(n, TypeTextOrd)
				if err != nil {
					return nil, err
				}

				number.WriteString(digit.Text)
			}

			code, err := strconv.Atoi(number.String())
			if err != nil || !utf8.ValidRune(rune(code)) {
				return nil, errorAt(ErrParse, ctx.Token, "\\@char has non-numeric argument %s", number.String())
			}

			return &ParseNode{Type: TypeTextOrd, Mode: ctx.Parser.mode, Text: string(rune(code))}, nil
		},
	})

	// $...$ and \(...\) switch back to math inside text
	r.DefineFunction(FunctionSpec{
		Type:          TypeStyling,
		Names:         []string{"\\(", "$"},
		AllowedInText: true,
		TextOnly:      true,
		Handler: func(ctx *FunctionContext, _, _ []*ParseNode) (*ParseNode, error) {
			p := ctx.Parser
			outer := p.mode
			closing := "$"
			if ctx.Name == "\\(" {
				closing = "\\)"
			}

			p.switchMode(ModeMath)
			body, err := p.parseExpression(false, closing, false)
			if err != nil {
				return nil, err
			}

			if err := p.expect(closing, true); err != nil {
				return nil, err
			}

			p.switchMode(outer)
			return &ParseNode{Type: TypeStyling, Mode: p.mode, ScriptLevel: "text", Body: body}, nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:          TypeText,
		Names:         []string{"\\)", "\\]"},
		AllowedInText: true,
		TextOnly:      true,
		Handler: func(ctx *FunctionContext, _, _ []*ParseNode) (*ParseNode, error) {
			return nil, errorAt(ErrParse, ctx.Token, "Mismatched %s", ctx.Name)
		},
	})
}
