package texmath

import (
	"regexp"
	"strconv"
)

// globalMap maps a definition command to its global variant used after \global
var globalMap = map[string]string{
	"\\global":       "\\global",
	"\\long":         "\\\\globallong",
	"\\\\globallong": "\\\\globallong",
	"\\def":          "\\gdef",
	"\\gdef":         "\\gdef",
	"\\edef":         "\\xdef",
	"\\xdef":         "\\xdef",
	"\\let":          "\\\\globallet",
	"\\futurelet":    "\\\\globalfuture",
}

var notControlSequence = regexp.MustCompile(`^(?:[\\{}$&#^_]|EOF)$`)
var argumentNumber = regexp.MustCompile(`^[1-9]$`)
var arityPattern = regexp.MustCompile(`^\s*[0-9]+\s*$`)

func internalNode(p *Parser) *ParseNode {
	return &ParseNode{Type: TypeInternal, Mode: p.mode}
}

func checkControlSequence(tok *Token) (string, error) {
	if notControlSequence.MatchString(tok.Text) {
		return "", errorAt(ErrExpansion, tok, "Expected a control sequence")
	}

	return tok.Text, nil
}

// getRHS reads the right hand side of \let: an optional equals sign followed by at most one space
func getRHS(p *Parser) (*Token, error) {
	tok, err := p.gullet.PopToken()
	if err != nil {
		return nil, err
	}

	if tok.Text != "=" {
		return tok, nil
	}

	if tok, err = p.gullet.PopToken(); err != nil {
		return nil, err
	}

	if tok.Text == " " {
		return p.gullet.PopToken()
	}

	return tok, nil
}

func letCommand(p *Parser, name string, tok *Token, global bool) {
	macro := p.gullet.Macros().Get(tok.Text)
	if macro == nil {
		// later redefinitions of the token must not leak into the copy
		t := tok.clone()
		t.Noexpand = true
		macro = &MacroExpansion{Tokens: []*Token{t}, Unexpandable: !p.gullet.IsExpandable(tok.Text)}
	}

	p.gullet.Macros().Set(name, macro, global)
}

func registerDefinitions(r *Registry) {
	r.DefineFunction(FunctionSpec{
		Type:          TypeInternal,
		Names:         []string{"\\global", "\\long", "\\\\globallong"},
		AllowedInText: true,
		Handler: func(ctx *FunctionContext, _, _ []*ParseNode) (*ParseNode, error) {
			p := ctx.Parser
			if err := p.consumeSpaces(); err != nil {
				return nil, err
			}

			tok, err := p.fetch()
			if err != nil {
				return nil, err
			}

			global, ok := globalMap[tok.Text]
			if !ok {
				return nil, errorAt(ErrParse, tok, "Invalid token after macro prefix")
			}

			// \long has no effect without paragraphs
			if ctx.Name == "\\global" || ctx.Name == "\\\\globallong" {
				t := tok.clone()
				t.Text = global
				p.nextToken = t
			}

			node, err := p.parseFunction("", "")
			if err != nil {
				return nil, err
			}

			return assertNodeType(node, TypeInternal)
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:          TypeInternal,
		Names:         []string{"\\def", "\\gdef", "\\edef", "\\xdef"},
		AllowedInText: true,
		Primitive:     true,
		Handler:       handleDef,
	})

	r.DefineFunction(FunctionSpec{
		Type:          TypeInternal,
		Names:         []string{"\\let", "\\\\globallet"},
		AllowedInText: true,
		Primitive:     true,
		Handler: func(ctx *FunctionContext, _, _ []*ParseNode) (*ParseNode, error) {
			p := ctx.Parser
			tok, err := p.gullet.PopToken()
			if err != nil {
				return nil, err
			}

			name, err := checkControlSequence(tok)
			if err != nil {
				return nil, err
			}

			if err := p.gullet.ConsumeSpaces(); err != nil {
				return nil, err
			}

			rhs, err := getRHS(p)
			if err != nil {
				return nil, err
			}

			letCommand(p, name, rhs, ctx.Name == "\\\\globallet")
			return internalNode(p), nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:          TypeInternal,
		Names:         []string{"\\futurelet", "\\\\globalfuture"},
		AllowedInText: true,
		Primitive:     true,
		Handler: func(ctx *FunctionContext, _, _ []*ParseNode) (*ParseNode, error) {
			p := ctx.Parser
			tok, err := p.gullet.PopToken()
			if err != nil {
				return nil, err
			}

			name, err := checkControlSequence(tok)
			if err != nil {
				return nil, err
			}

			middle, err := p.gullet.PopToken()
			if err != nil {
				return nil, err
			}

			next, err := p.gullet.PopToken()
			if err != nil {
				return nil, err
			}

			letCommand(p, name, next, ctx.Name == "\\\\globalfuture")
			p.gullet.PushToken(next)
			p.gullet.PushToken(middle)
			return internalNode(p), nil
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:          TypeInternal,
		Names:         []string{"\\newcommand", "\\renewcommand", "\\providecommand"},
		AllowedInText: true,
		Primitive:     true,
		Handler: func(ctx *FunctionContext, _, _ []*ParseNode) (*ParseNode, error) {
			switch ctx.Name {
			case "\\renewcommand":
				return newCommand(ctx.Parser, true, false, false)
			case "\\providecommand":
				return newCommand(ctx.Parser, true, true, true)
			default:
				return newCommand(ctx.Parser, false, true, false)
			}
		},
	})

	r.DefineFunction(FunctionSpec{
		Type:          TypeInternal,
		Names:         []string{"\\relax"},
		AllowedInText: true,
		Handler: func(ctx *FunctionContext, _, _ []*ParseNode) (*ParseNode, error) {
			return internalNode(ctx.Parser), nil
		},
	})
}

// handleDef implements \def and friends: parameter text with optional delimiters, then the body
func handleDef(ctx *FunctionContext, _, _ []*ParseNode) (*ParseNode, error) {
	p := ctx.Parser
	g := p.gullet

	tok, err := g.PopToken()
	if err != nil {
		return nil, err
	}

	name, err := checkControlSequence(tok)
	if err != nil {
		return nil, err
	}

	numArgs := 0
	delimiters := [][]string{nil}
	var insert *Token

	for {
		next, err := g.Future()
		if err != nil {
			return nil, err
		}

		if next.Text == "{" {
			break
		}

		if tok, err = g.PopToken(); err != nil {
			return nil, err
		}

		switch tok.Text {
		case "#":
			// a # right before { behaves as if { was inserted at the end of both the
			// parameter text and the body
			next, err := g.Future()
			if err != nil {
				return nil, err
			}

			if next.Text == "{" {
				insert = next
				delimiters[numArgs] = append(delimiters[numArgs], "{")
				break
			}

			if tok, err = g.PopToken(); err != nil {
				return nil, err
			}

			if !argumentNumber.MatchString(tok.Text) {
				return nil, errorAt(ErrExpansion, tok, "Invalid argument number \"%s\"", tok.Text)
			}

			if n, _ := strconv.Atoi(tok.Text); n != numArgs+1 {
				return nil, errorAt(ErrExpansion, tok, "Argument number \"%s\" out of order", tok.Text)
			}

			numArgs++
			delimiters = append(delimiters, nil)
		case "EOF":
			return nil, errorAt(ErrUnexpectedEOF, tok, "Expected a macro definition")
		default:
			delimiters[numArgs] = append(delimiters[numArgs], tok.Text)
		}

		if insert != nil {
			break
		}
	}

	arg, err := g.ConsumeArg()
	if err != nil {
		return nil, err
	}

	tokens := arg.Tokens
	if insert != nil {
		tokens = append([]*Token{insert}, tokens...)
	}

	if ctx.Name == "\\edef" || ctx.Name == "\\xdef" {
		expanded, err := g.ExpandTokens(reversed(tokens))
		if err != nil {
			return nil, err
		}

		tokens = reversed(expanded)
	}

	g.Macros().Set(name, &MacroExpansion{Tokens: tokens, NumArgs: numArgs, Delimiters: delimiters}, ctx.Name == globalMap[ctx.Name])
	return internalNode(p), nil
}

// newCommand implements \newcommand{\name}[n]{body} and its variants
func newCommand(p *Parser, existsOK, nonexistsOK, skipIfExists bool) (*ParseNode, error) {
	g := p.gullet

	arg, err := g.ConsumeArg()
	if err != nil {
		return nil, err
	}

	if len(arg.Tokens) != 1 {
		return nil, errorAt(ErrParse, arg.Start, "\\newcommand's first argument must be a macro name")
	}

	name := arg.Tokens[0].Text
	exists := g.IsDefined(name)

	if exists && !existsOK {
		return nil, errorAt(ErrParse, arg.Start, "\\newcommand{%s} attempting to redefine %s; use \\renewcommand", name, name)
	}

	if !exists && !nonexistsOK {
		return nil, errorAt(ErrParse, arg.Start, "\\renewcommand{%s} when command %s does not yet exist; use \\newcommand", name, name)
	}

	numArgs := 0
	if arg, err = g.ConsumeArg(); err != nil {
		return nil, err
	}

	if len(arg.Tokens) == 1 && arg.Tokens[0].Text == "[" {
		var argText string
		for {
			tok, err := g.ExpandNextToken()
			if err != nil {
				return nil, err
			}

			if tok.Text == "]" || tok.Text == "EOF" {
				break
			}

			argText += tok.Text
		}

		if !arityPattern.MatchString(argText) {
			return nil, errorAt(ErrParse, arg.Start, "Invalid number of arguments: %s", argText)
		}

		numArgs = parseInt(argText, 0)
		if arg, err = g.ConsumeArg(); err != nil {
			return nil, err
		}
	}

	if !exists || !skipIfExists {
		g.Macros().Set(name, &MacroExpansion{Tokens: arg.Tokens, NumArgs: numArgs}, false)
	}

	return internalNode(p), nil
}
