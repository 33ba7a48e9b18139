package texmath

import (
	"regexp"
	"strconv"
	"strings"
)

// endOfExpression are tokens which terminate an expression
var endOfExpression = map[string]bool{
	"}":           true,
	"\\endgroup":  true,
	"\\end":       true,
	"\\right":     true,
	"\\endtoggle": true,
	"&":           true,
}

// binLeftCancellers turn a following binary operator into a prefix one
var binLeftCancellers = map[string]bool{
	"":             true,
	FamilyBin:      true,
	string(TypeOp): true,
	FamilyOpen:     true,
	FamilyPunct:    true,
	FamilyRel:      true,
}

var (
	colorPattern       = regexp.MustCompile(`(?i)^(#[a-f0-9]{3,4}|#[a-f0-9]{6}|#[a-f0-9]{8}|[a-f0-9]{6}|[a-z]+)$`)
	hexColorPattern    = regexp.MustCompile(`(?i)^[0-9a-f]{6}$`)
	urlEscapePattern   = regexp.MustCompile(`\\([#$%&~_^{}])`)
	combiningEndSuffix = regexp.MustCompile(`[\x{0300}-\x{036f}]+$`)
	openDelimPattern   = regexp.MustCompile(`^(?:[(\[{⌊⌈⟨⟮⎰⟦⦃]|\\(?:left|big|Big|bigg|Bigg|bigl|Bigl|biggl|Biggl|lbrace|\{|lbrack|langle|lfloor|lceil|lvert|lVert|lgroup|llbracket)$)`)
)

// Parser converts a token stream produced by the macro expander into a tree of parse nodes.
type Parser struct {
	mode           Mode
	gullet         *MacroExpander
	settings       *Settings
	registry       *Registry
	leftrightDepth int
	prevAtomType   string
	nextToken      *Token
}

func NewParser(input string, settings *Settings, registry *Registry) *Parser {
	if settings == nil {
		settings = defaultSettings()
	}

	if registry == nil {
		registry = defaultRegistry()
	}

	return &Parser{
		mode:     ModeMath,
		gullet:   NewMacroExpander(input, settings, registry, ModeMath),
		settings: settings,
		registry: registry,
	}
}

// Mode returns the current parsing mode.
func (p *Parser) Mode() Mode {
	return p.mode
}

func (p *Parser) Gullet() *MacroExpander {
	return p.gullet
}

func (p *Parser) Settings() *Settings {
	return p.settings
}

// expect checks the next token, consuming it when consume is set
func (p *Parser) expect(text string, consume bool) error {
	tok, err := p.fetch()
	if err != nil {
		return err
	}

	if tok.Text != text {
		if tok.Text == "EOF" {
			return errorAt(ErrUnexpectedEOF, tok, "Expected '%s', got end of input", text)
		}

		return errorAt(ErrParse, tok, "Expected '%s', got '%s'", text, tok.Text)
	}

	if consume {
		p.consume()
	}

	return nil
}

// consume discards the lookahead token
func (p *Parser) consume() {
	p.nextToken = nil
}

// fetch returns the lookahead token, expanding macros if needed
func (p *Parser) fetch() (*Token, error) {
	if p.nextToken == nil {
		tok, err := p.gullet.ExpandNextToken()
		if err != nil {
			return nil, err
		}

		p.nextToken = tok
	}

	return p.nextToken, nil
}

// peekText returns text of the next token without expanding it
func (p *Parser) peekText() (string, error) {
	if p.nextToken != nil {
		return p.nextToken.Text, nil
	}

	tok, err := p.gullet.Future()
	if err != nil {
		return "", err
	}

	return tok.Text, nil
}

func (p *Parser) switchMode(mode Mode) {
	p.mode = mode
	p.gullet.SwitchMode(mode)
}

// Parse parses the whole input.
func (p *Parser) Parse() ([]*ParseNode, error) {
	p.gullet.BeginGroup()
	defer p.gullet.EndGroups()

	if p.settings.ColorIsTextColor {
		p.gullet.Macros().Set("\\color", MacroText("\\textcolor"), false)
	}

	body, err := p.parseExpression(false, "", false)
	if err != nil {
		return nil, err
	}

	if err := p.expect("EOF", true); err != nil {
		return nil, err
	}

	return body, nil
}

// subparse parses tokens (in reading order) in a separate token stream
func (p *Parser) subparse(tokens []*Token) ([]*ParseNode, error) {
	oldToken := p.nextToken
	p.consume()

	p.gullet.PushToken(NewToken("}"))
	p.gullet.PushTokens(reversed(tokens))

	body, err := p.parseExpression(false, "", false)
	if err != nil {
		return nil, err
	}

	if err := p.expect("}", true); err != nil {
		return nil, err
	}

	p.nextToken = oldToken
	return body, nil
}

// parseExpression parses atoms until the end of the group, breakOnTokenText or (with
// breakOnInfix) an infix function.
func (p *Parser) parseExpression(breakOnInfix bool, breakOnTokenText string, breakOnMiddle bool) ([]*ParseNode, error) {
	var body []*ParseNode
	p.prevAtomType = ""

	for {
		if p.mode == ModeMath {
			if err := p.consumeSpaces(); err != nil {
				return nil, err
			}
		}

		lex, err := p.fetch()
		if err != nil {
			return nil, err
		}

		if endOfExpression[lex.Text] {
			break
		}

		if breakOnTokenText != "" && lex.Text == breakOnTokenText {
			break
		}

		if breakOnMiddle && lex.Text == "\\middle" {
			break
		}

		if breakOnInfix {
			if f, ok := p.registry.functions[lex.Text]; ok && f.Infix {
				break
			}
		}

		atom, err := p.parseAtom(breakOnTokenText)
		if err != nil {
			return nil, err
		}

		if atom == nil {
			break
		}

		if atom.Type == TypeInternal {
			continue
		}

		body = append(body, atom)

		if atom.Type == TypeAtom {
			p.prevAtomType = atom.Family
		} else {
			p.prevAtomType = string(atom.Type)
		}
	}

	if p.mode == ModeText {
		body = formLigatures(body)
	}

	return p.handleInfixNodes(body)
}

// handleInfixNodes rewrites a group containing an infix operator (\over, \choose) into a
// call of the function the operator stands for.
func (p *Parser) handleInfixNodes(body []*ParseNode) ([]*ParseNode, error) {
	overIndex := -1
	var funcName string

	for i, node := range body {
		if node.Type != TypeInfix {
			continue
		}

		if overIndex != -1 {
			return nil, errorAt(ErrMultipleInfix, node.Token, "only one infix operator per group")
		}

		overIndex = i
		funcName = node.ReplaceWith
	}

	if overIndex == -1 || funcName == "" {
		return body, nil
	}

	group := func(nodes []*ParseNode) *ParseNode {
		if len(nodes) == 1 && nodes[0].Type == TypeOrdGroup {
			return nodes[0]
		}

		return &ParseNode{Type: TypeOrdGroup, Mode: p.mode, Body: nodes}
	}

	numer := group(body[:overIndex])
	denom := group(body[overIndex+1:])

	args := []*ParseNode{numer, denom}
	if funcName == "\\\\abovefrac" {
		args = []*ParseNode{numer, body[overIndex], denom}
	}

	node, err := p.callFunction(funcName, args, nil, nil, "")
	if err != nil {
		return nil, err
	}

	return []*ParseNode{node}, nil
}

// formLigatures merges -- --- `` and '' in text mode, the input slice is left intact
func formLigatures(group []*ParseNode) []*ParseNode {
	isText := func(i int, text string) bool {
		return i < len(group) && group[i].Type == TypeTextOrd && group[i].Text == text
	}

	out := make([]*ParseNode, 0, len(group))
	for i := 0; i < len(group); i++ {
		a := group[i]
		if a.Type != TypeTextOrd {
			out = append(out, a)
			continue
		}

		switch {
		case a.Text == "-" && isText(i+1, "-") && isText(i+2, "-"):
			out = append(out, &ParseNode{Type: TypeTextOrd, Mode: ModeText, Loc: rangeOf(a.Loc, group[i+2].Loc), Text: "---"})
			i += 2
		case a.Text == "-" && isText(i+1, "-"):
			out = append(out, &ParseNode{Type: TypeTextOrd, Mode: ModeText, Loc: rangeOf(a.Loc, group[i+1].Loc), Text: "--"})
			i++
		case (a.Text == "'" || a.Text == "`") && isText(i+1, a.Text):
			out = append(out, &ParseNode{Type: TypeTextOrd, Mode: ModeText, Loc: rangeOf(a.Loc, group[i+1].Loc), Text: a.Text + a.Text})
			i++
		default:
			out = append(out, a)
		}
	}

	return out
}

// handleSupSubscript parses the group after ^ or _
func (p *Parser) handleSupSubscript(name string) (*ParseNode, error) {
	symbolToken, err := p.fetch()
	if err != nil {
		return nil, err
	}

	p.consume()
	if err := p.consumeSpaces(); err != nil {
		return nil, err
	}

	group, err := p.parseGroup(name, "")
	if err != nil {
		return nil, err
	}

	if group == nil {
		return nil, errorAt(ErrParse, symbolToken, "Expected group after '%s'", symbolToken.Text)
	}

	return group, nil
}

// parseAtom parses a group with optional super- and subscripts
func (p *Parser) parseAtom(breakOnTokenText string) (*ParseNode, error) {
	base, err := p.parseGroup("atom", breakOnTokenText)
	if err != nil {
		return nil, err
	}

	if base != nil && base.Type == TypeInternal {
		return base, nil
	}

	// super- and subscripts are math only
	if p.mode == ModeText {
		return base, nil
	}

	var superscript, subscript *ParseNode

	for {
		if err := p.consumeSpaces(); err != nil {
			return nil, err
		}

		lex, err := p.fetch()
		if err != nil {
			return nil, err
		}

		if _, ok := unicodeSubscripts[lex.Text]; ok {
			if subscript != nil {
				return nil, errorAt(ErrParse, lex, "Double subscript")
			}

			if subscript, err = p.parseUnicodeScripts(unicodeSubscripts); err != nil {
				return nil, err
			}

			continue
		}

		if _, ok := unicodeSuperscripts[lex.Text]; ok {
			if superscript != nil {
				return nil, errorAt(ErrParse, lex, "Double superscript")
			}

			if superscript, err = p.parseUnicodeScripts(unicodeSuperscripts); err != nil {
				return nil, err
			}

			continue
		}

		switch lex.Text {
		case "\\limits", "\\nolimits":
			switch {
			case base != nil && base.Type == TypeOp:
				base.Limits = lex.Text == "\\limits"
				base.AlwaysHandleSupSub = true
			case base != nil && base.Type == TypeOperatorName:
				if base.AlwaysHandleSupSub {
					base.Limits = lex.Text == "\\limits"
				}
			default:
				return nil, errorAt(ErrParse, lex, "Limit controls must follow a math operator")
			}

			p.consume()
			continue

		case "^":
			if superscript != nil {
				return nil, errorAt(ErrParse, lex, "Double superscript")
			}

			if superscript, err = p.handleSupSubscript("superscript"); err != nil {
				return nil, err
			}

			continue

		case "_":
			if subscript != nil {
				return nil, errorAt(ErrParse, lex, "Double subscript")
			}

			if subscript, err = p.handleSupSubscript("subscript"); err != nil {
				return nil, err
			}

			continue

		case "'":
			if superscript != nil {
				return nil, errorAt(ErrParse, lex, "Double superscript")
			}

			prime := &ParseNode{Type: TypeTextOrd, Mode: p.mode, Text: "\\prime"}
			primes := []*ParseNode{prime}
			p.consume()

			for {
				next, err := p.fetch()
				if err != nil {
					return nil, err
				}

				if next.Text != "'" {
					break
				}

				primes = append(primes, prime)
				p.consume()
			}

			next, err := p.fetch()
			if err != nil {
				return nil, err
			}

			if next.Text == "^" {
				sup, err := p.handleSupSubscript("superscript")
				if err != nil {
					return nil, err
				}

				primes = append(primes, sup)
			}

			superscript = &ParseNode{Type: TypeOrdGroup, Mode: p.mode, Body: primes}
			continue
		}

		break
	}

	if superscript == nil && subscript == nil {
		return base, nil
	}

	node := &ParseNode{Type: TypeSupSub, Mode: p.mode, Base: base, Sup: superscript, Sub: subscript}
	if base != nil && (base.Type == TypeOp || base.Type == TypeOperatorName) {
		next, err := p.fetch()
		if err != nil {
			return nil, err
		}

		node.IsFollowedByDelimiter = openDelimPattern.MatchString(next.Text)
	}

	return node, nil
}

// parseUnicodeScripts reads a run of script characters from table, x²³ is x^{23}
func (p *Parser) parseUnicodeScripts(table map[string]string) (*ParseNode, error) {
	var tokens []*Token
	for {
		tok, err := p.fetch()
		if err != nil {
			return nil, err
		}

		text, ok := table[tok.Text]
		if !ok {
			break
		}

		t := NewToken(text)
		t.Loc = tok.Loc
		tokens = append(tokens, t)
		p.consume()
	}

	body, err := p.subparse(tokens)
	if err != nil {
		return nil, err
	}

	return &ParseNode{Type: TypeOrdGroup, Mode: ModeMath, Body: body}, nil
}

// parseFunction parses the function at the lookahead token, returns nil if it is not a function
func (p *Parser) parseFunction(breakOnTokenText, name string) (*ParseNode, error) {
	token, err := p.fetch()
	if err != nil {
		return nil, err
	}

	funcName := token.Text
	spec, ok := p.registry.functions[funcName]
	if !ok {
		return nil, nil
	}

	p.consume()

	switch {
	case name != "" && name != "atom" && !spec.AllowedInArgument:
		return nil, errorAt(ErrParse, token, "Got function '%s' with no arguments as %s", funcName, name)
	case p.mode == ModeText && !spec.AllowedInText:
		return nil, errorAt(ErrParse, token, "Can't use function '%s' in text mode", funcName)
	case p.mode == ModeMath && !spec.AllowedInMath():
		return nil, errorAt(ErrParse, token, "Can't use function '%s' in math mode", funcName)
	}

	prevAtomType := p.prevAtomType
	args, optArgs, err := p.parseArguments(funcName, argSpecOf(spec))
	if err != nil {
		return nil, err
	}

	p.prevAtomType = prevAtomType
	return p.callFunction(funcName, args, optArgs, token, breakOnTokenText)
}

func (p *Parser) callFunction(name string, args, optArgs []*ParseNode, token *Token, breakOnTokenText string) (*ParseNode, error) {
	spec, ok := p.registry.functions[name]
	if !ok || spec.Handler == nil {
		return nil, errorAt(ErrParse, token, "No function handler for %s", name)
	}

	ctx := &FunctionContext{Name: name, Parser: p, Token: token, BreakOnTokenText: breakOnTokenText}
	return spec.Handler(ctx, args, optArgs)
}

// argSpec is the argument signature shared by functions and environments
type argSpec struct {
	numArgs     int
	numOptional int
	argTypes    []ArgType
	primitive   bool
	nodeType    NodeType
}

func argSpecOf(f *FunctionSpec) argSpec {
	return argSpec{
		numArgs:     f.NumArgs,
		numOptional: f.NumOptionalArgs,
		argTypes:    f.ArgTypes,
		primitive:   f.Primitive,
		nodeType:    f.Type,
	}
}

// parseArguments parses optional arguments followed by the mandatory ones
func (p *Parser) parseArguments(funcName string, spec argSpec) (args, optArgs []*ParseNode, err error) {
	total := spec.numArgs + spec.numOptional
	if total == 0 {
		return nil, nil, nil
	}

	for i := 0; i < total; i++ {
		var argType ArgType
		if i < len(spec.argTypes) {
			argType = spec.argTypes[i]
		}

		isOptional := i < spec.numOptional

		// sqrt without index reads its radicand as a primitive group
		if (spec.primitive && argType == ArgDefault) || (spec.nodeType == TypeSqrt && i == 1 && optArgs[0] == nil) {
			argType = ArgPrimitive
		}

		arg, err := p.parseGroupOfType("argument to '"+funcName+"'", argType, isOptional)
		if err != nil {
			return nil, nil, err
		}

		if isOptional {
			optArgs = append(optArgs, arg)
			continue
		}

		if arg == nil {
			tok, _ := p.fetch()
			return nil, nil, errorAt(ErrParse, tok, "Null argument, please report this as a bug")
		}

		args = append(args, arg)
	}

	return args, optArgs, nil
}

// parseGroupOfType reads an argument the way its type requires
func (p *Parser) parseGroupOfType(name string, argType ArgType, optional bool) (*ParseNode, error) {
	switch argType {
	case ArgColor:
		return p.parseColorGroup(optional)
	case ArgSize:
		return p.parseSizeGroup(optional)
	case ArgURL:
		return p.parseURLGroup(optional)
	case ArgMath, ArgText:
		return p.parseArgumentGroup(optional, Mode(argType))
	case ArgHBox:
		group, err := p.parseArgumentGroup(optional, ModeText)
		if err != nil || group == nil {
			return nil, err
		}

		return &ParseNode{Type: TypeStyling, Mode: group.Mode, Body: []*ParseNode{group}, ScriptLevel: "text"}, nil
	case ArgRaw:
		token, err := p.parseStringGroup(optional)
		if err != nil || token == nil {
			return nil, err
		}

		return &ParseNode{Type: TypeRaw, Mode: ModeText, Loc: token.Loc, String: token.Text}, nil
	case ArgPrimitive:
		if optional {
			tok, _ := p.fetch()
			return nil, errorAt(ErrParse, tok, "A primitive argument cannot be optional")
		}

		group, err := p.parseGroup(name, "")
		if err != nil {
			return nil, err
		}

		if group == nil {
			tok, _ := p.fetch()
			return nil, errorAt(ErrParse, tok, "Expected group as %s", name)
		}

		return group, nil
	case ArgOriginal, ArgDefault:
		return p.parseArgumentGroup(optional, "")
	default:
		tok, _ := p.fetch()
		return nil, errorAt(ErrParse, tok, "Unknown group type as %s", name)
	}
}

// consumeSpaces skips space tokens, including no-break space and the text presentation selector
func (p *Parser) consumeSpaces() error {
	for {
		tok, err := p.fetch()
		if err != nil {
			return err
		}

		if tok.Text != " " && tok.Text != "\u00a0" && tok.Text != "\ufe0e" {
			return nil
		}

		p.consume()
	}
}

// parseStringGroup reads an argument as a string, macros inside are expanded
func (p *Parser) parseStringGroup(optional bool) (*Token, error) {
	argToken, err := p.gullet.ScanArgument(optional)
	if err != nil || argToken == nil {
		return nil, err
	}

	var b strings.Builder
	for {
		tok, err := p.fetch()
		if err != nil {
			return nil, err
		}

		if tok.Text == "EOF" {
			break
		}

		b.WriteString(tok.Text)
		p.consume()
	}

	p.consume()
	argToken.Text = b.String()
	return argToken, nil
}

// parseRegexGroup reads tokens while the accumulated text matches the pattern
func (p *Parser) parseRegexGroup(pattern *regexp.Regexp, modeName string) (*Token, error) {
	first, err := p.fetch()
	if err != nil {
		return nil, err
	}

	last := first
	var str string

	for {
		next, err := p.fetch()
		if err != nil {
			return nil, err
		}

		if next.Text == "EOF" || !pattern.MatchString(str+next.Text) {
			break
		}

		last = next
		str += next.Text
		p.consume()
	}

	if str == "" {
		return nil, errorAt(ErrParse, first, "Invalid %s: '%s'", modeName, first.Text)
	}

	return first.Range(last, str), nil
}

func (p *Parser) parseColorGroup(optional bool) (*ParseNode, error) {
	res, err := p.parseStringGroup(optional)
	if err != nil || res == nil {
		return nil, err
	}

	text := strings.TrimSpace(res.Text)
	if !colorPattern.MatchString(text) {
		return nil, errorAt(ErrParse, res, "Invalid color: '%s'", res.Text)
	}

	// bare six digit hex colors get the # prefix
	if hexColorPattern.MatchString(text) {
		text = "#" + text
	}

	return &ParseNode{Type: TypeColorToken, Mode: p.mode, Loc: res.Loc, Color: text}, nil
}

func (p *Parser) parseSizeGroup(optional bool) (*ParseNode, error) {
	if err := p.gullet.ConsumeSpaces(); err != nil {
		return nil, err
	}

	var res *Token
	var err error

	future, err := p.gullet.Future()
	if err != nil {
		return nil, err
	}

	if !optional && future.Text != "{" {
		res, err = p.parseRegexGroup(sizePrefix, "size")
	} else {
		res, err = p.parseStringGroup(optional)
	}

	if err != nil || res == nil {
		return nil, err
	}

	isBlank := false
	if !optional && res.Text == "" {
		// enables \above{} and blank \genfrac thickness
		res.Text = "0pt"
		isBlank = true
	}

	m, ok := ParseMeasurement(res.Text)
	if !ok {
		return nil, errorAt(ErrParse, res, "Invalid size: '%s'", res.Text)
	}

	if !ValidUnit(m.Unit) {
		return nil, errorAt(ErrParse, res, "Invalid unit: '%s'", m.Unit)
	}

	return &ParseNode{Type: TypeSize, Mode: p.mode, Loc: res.Loc, Dimension: m, IsBlank: isBlank}, nil
}

func (p *Parser) parseURLGroup(optional bool) (*ParseNode, error) {
	lexer := p.gullet.Lexer()
	lexer.SetCatcode("%", catcodeActive)
	lexer.SetCatcode("~", catcodeOther)

	res, err := p.parseStringGroup(optional)

	lexer.SetCatcode("%", catcodeComment)
	lexer.SetCatcode("~", catcodeActive)

	if err != nil || res == nil {
		return nil, err
	}

	url := urlEscapePattern.ReplaceAllString(res.Text, "$1")
	return &ParseNode{Type: TypeURL, Mode: p.mode, Loc: res.Loc, URL: url}, nil
}

// parseArgumentGroup parses an argument as an isolated expression, optionally switching mode
func (p *Parser) parseArgumentGroup(optional bool, mode Mode) (*ParseNode, error) {
	argToken, err := p.gullet.ScanArgument(optional)
	if err != nil || argToken == nil {
		return nil, err
	}

	outerMode := p.mode
	if mode != "" {
		p.switchMode(mode)
	}

	p.gullet.BeginGroup()
	expression, err := p.parseExpression(false, "EOF", false)
	if err != nil {
		return nil, err
	}

	if err := p.expect("EOF", true); err != nil {
		return nil, err
	}

	if err := p.gullet.EndGroup(); err != nil {
		return nil, err
	}

	result := &ParseNode{Type: TypeOrdGroup, Mode: p.mode, Loc: argToken.Loc, Body: expression}

	if mode != "" {
		p.switchMode(outerMode)
	}

	return result, nil
}

// parseGroup parses a braced group, a function or a symbol
func (p *Parser) parseGroup(name, breakOnTokenText string) (*ParseNode, error) {
	first, err := p.fetch()
	if err != nil {
		return nil, err
	}

	text := first.Text

	if text == "{" || text == "\\begingroup" || text == "\\toggle" {
		p.consume()

		groupEnd := "}"
		switch text {
		case "\\begingroup":
			groupEnd = "\\endgroup"
		case "\\toggle":
			groupEnd = "\\endtoggle"
		}

		p.gullet.BeginGroup()
		expression, err := p.parseExpression(false, groupEnd, false)
		if err != nil {
			return nil, err
		}

		last, err := p.fetch()
		if err != nil {
			return nil, err
		}

		if err := p.expect(groupEnd, true); err != nil {
			return nil, err
		}

		if err := p.gullet.EndGroup(); err != nil {
			return nil, err
		}

		nodeType := TypeOrdGroup
		if last.Text == "\\endtoggle" {
			nodeType = TypeToggle
		}

		return &ParseNode{
			Type:       nodeType,
			Mode:       p.mode,
			Loc:        rangeOf(first.Loc, last.Loc),
			Body:       expression,
			Semisimple: text == "\\begingroup",
		}, nil
	}

	result, err := p.parseFunction(breakOnTokenText, name)
	if err != nil {
		return nil, err
	}

	if result == nil {
		if result, err = p.parseSymbol(); err != nil {
			return nil, err
		}
	}

	if result == nil && strings.HasPrefix(text, "\\") && !implicitCommands[text] {
		result = p.formatUnsupportedCmd(text)
		p.consume()
	}

	return result, nil
}

// formatUnsupportedCmd renders an unknown command as its name in the error color
func (p *Parser) formatUnsupportedCmd(text string) *ParseNode {
	var chars []*ParseNode
	for _, r := range text {
		chars = append(chars, &ParseNode{Type: TypeTextOrd, Mode: ModeText, Text: string(r)})
	}

	return &ParseNode{
		Type:  TypeColor,
		Mode:  p.mode,
		Color: p.settings.ErrorColor,
		Body:  []*ParseNode{{Type: TypeText, Mode: p.mode, Body: chars}},
	}
}

// parseSymbol parses a single symbol, returns nil if the lookahead token is not a symbol
func (p *Parser) parseSymbol() (*ParseNode, error) {
	nucleus, err := p.fetch()
	if err != nil {
		return nil, err
	}

	text := nucleus.Text
	if text == "EOF" {
		return nil, nil
	}

	if strings.HasPrefix(text, "\\verb") && len(text) > 5 && !isLetter(rune(text[5])) {
		p.consume()

		arg := text[5:]
		star := strings.HasPrefix(arg, "*")
		if star {
			arg = arg[1:]
		}

		runes := []rune(arg)
		if len(runes) < 2 || runes[0] != runes[len(runes)-1] {
			return nil, errorAt(ErrInternal, nucleus, "\\verb assertion failed")
		}

		return &ParseNode{Type: TypeVerb, Mode: ModeText, Loc: nucleus.Loc, String: string(runes[1 : len(runes)-1]), Star: star}, nil
	}

	// combining marks become accents in math mode
	var marks string
	if p.mode == ModeMath {
		if loc := combiningEndSuffix.FindStringIndex(text); loc != nil && loc[0] > 0 {
			marks = text[loc[0]:]
			text = text[:loc[0]]

			switch text {
			case "i":
				text = "ı"
			case "j":
				text = "ȷ"
			}
		}
	}

	var symbol *ParseNode
	if s, ok := lookupSymbol(p.mode, text); ok {
		group := s.Group
		if group == FamilyBin && p.mode == ModeMath && binLeftCancellers[p.prevAtomType] {
			group = FamilyOpen
		}

		if atomFamilies[group] {
			symbol = &ParseNode{Type: TypeAtom, Mode: p.mode, Loc: nucleus.Loc, Family: group, Text: text}
		} else {
			symbol = &ParseNode{Type: NodeType(group), Mode: p.mode, Loc: nucleus.Loc, Text: text}
		}
	} else if []rune(text)[0] >= 0x80 || p.mode == ModeText {
		if p.mode == ModeMath {
			msg := "Unicode text character \"" + string([]rune(text)[0]) + "\" used in math mode"
			if err := p.settings.reportNonstrict("unicodeTextInMathMode", msg, nucleus); err != nil {
				return nil, err
			}
		}

		// characters outside of the math table are rendered as text
		symbol = &ParseNode{Type: TypeTextOrd, Mode: ModeText, Loc: nucleus.Loc, Text: text}
	} else {
		return nil, nil
	}

	p.consume()

	for _, mark := range marks {
		commands, ok := unicodeAccents[mark]
		if !ok {
			return nil, errorAt(ErrParse, nucleus, "Unknown accent ' %c'", mark)
		}

		command := commands[0]
		if p.mode == ModeText || command == "" {
			command = commands[1]
		}

		symbol = &ParseNode{Type: TypeAccent, Mode: p.mode, Loc: nucleus.Loc, Label: command, Base: symbol}
	}

	return symbol, nil
}

// ParseTree parses the input into a list of nodes. A \tag given in display mode wraps the result into a tag node.
func ParseTree(input string, settings *Settings, registry *Registry) ([]*ParseNode, error) {
	p := NewParser(input, settings, registry)

	macros := p.gullet.Macros()
	macros.Set(tagMacro, nil, true)
	defer macros.Set(tagMacro, nil, true)

	tree, err := p.Parse()
	if err != nil {
		return nil, err
	}

	if len(tree) > 0 && tree[0].Type == TypeArray && tree[0].Tags != nil {
		return tree, nil
	}

	if !macros.Has(tagMacro) {
		return tree, nil
	}

	if !p.settings.DisplayMode {
		return nil, newError(ErrParse, nil, "\\tag works only in display mode")
	}

	p.gullet.Feed(tagMacro)
	tag, err := p.Parse()
	if err != nil {
		return nil, err
	}

	return []*ParseNode{{Type: TypeTag, Mode: ModeText, Body: tree, Tag: tag}}, nil
}

// parseInt parses a decimal integer or returns def
func parseInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}

	return n
}
