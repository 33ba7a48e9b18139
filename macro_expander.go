package texmath

import (
	"strings"
)

// Macro is a namespace value: MacroText, *MacroExpansion or MacroFunc.
type Macro interface {
	isMacro()
}

// MacroText is a macro body in TeX source, #1..#9 placeholders determine the number of arguments.
type MacroText string

// MacroExpansion is a lexed macro body.
type MacroExpansion struct {
	// Tokens are stored in stack order, the first token of the body is the last element
	Tokens     []*Token
	NumArgs    int
	Delimiters [][]string

	// Unexpandable marks \let-copies of non-expandable tokens
	Unexpandable bool
}

// MacroFunc computes the expansion dynamically, it may consume tokens from the expander.
type MacroFunc func(e *MacroExpander) (Macro, error)

type Macros map[string]Macro

func (MacroText) isMacro()       {}
func (*MacroExpansion) isMacro() {}
func (MacroFunc) isMacro()       {}

// implicitCommands are handled by the parser directly
var implicitCommands = map[string]bool{
	"^":          true,
	"_":          true,
	"\\limits":   true,
	"\\nolimits": true,
}

// MacroExpander (the "gullet") sits between the lexer and the parser and performs macro expansion.
type MacroExpander struct {
	lexer          *Lexer
	settings       *Settings
	registry       *Registry
	macros         *Namespace
	mode           Mode
	stack          []*Token
	expansionCount int
}

func NewMacroExpander(input string, settings *Settings, registry *Registry, mode Mode) *MacroExpander {
	return &MacroExpander{
		lexer:    NewLexer(input, settings),
		settings: settings,
		registry: registry,
		macros:   NewNamespace(registry.macros, settings.Macros),
		mode:     mode,
	}
}

// Feed replaces the input, the token stack and the namespace are kept.
func (e *MacroExpander) Feed(input string) {
	e.lexer = NewLexer(input, e.settings)
}

func (e *MacroExpander) Lexer() *Lexer {
	return e.lexer
}

func (e *MacroExpander) Macros() *Namespace {
	return e.macros
}

func (e *MacroExpander) Mode() Mode {
	return e.mode
}

func (e *MacroExpander) SwitchMode(mode Mode) {
	e.mode = mode
}

func (e *MacroExpander) BeginGroup() {
	e.macros.BeginGroup()
}

func (e *MacroExpander) EndGroup() error {
	return e.macros.EndGroup()
}

func (e *MacroExpander) EndGroups() {
	e.macros.EndGroups()
}

// Future returns the topmost token on the stack without removing it, lexing a new one if the stack is empty.
func (e *MacroExpander) Future() (*Token, error) {
	if len(e.stack) == 0 {
		t, err := e.lexer.Lex()
		if err != nil {
			return nil, err
		}

		e.PushToken(t)
	}

	return e.stack[len(e.stack)-1], nil
}

// PopToken removes the topmost token from the stack and returns it.
func (e *MacroExpander) PopToken() (*Token, error) {
	if _, err := e.Future(); err != nil {
		return nil, err
	}

	t := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return t, nil
}

// PushToken puts a token on top of the stack.
func (e *MacroExpander) PushToken(t *Token) {
	e.stack = append(e.stack, t)
}

// PushTokens puts tokens given in stack order (the last one becomes the topmost).
func (e *MacroExpander) PushTokens(tokens []*Token) {
	e.stack = append(e.stack, tokens...)
}

// ConsumeSpaces drops space tokens on top of the stack.
func (e *MacroExpander) ConsumeSpaces() error {
	for {
		t, err := e.Future()
		if err != nil {
			return err
		}

		if t.Text != " " {
			return nil
		}

		e.stack = e.stack[:len(e.stack)-1]
	}
}

// ScanArgument reads an argument and pushes its tokens back followed by an EOF marker, so the
// parser can parse the argument as an isolated expression. Returns nil if optional argument is absent.
func (e *MacroExpander) ScanArgument(optional bool) (*Token, error) {
	var start, end *Token
	var tokens []*Token

	if optional {
		if err := e.ConsumeSpaces(); err != nil {
			return nil, err
		}

		next, err := e.Future()
		if err != nil {
			return nil, err
		}

		if next.Text != "[" {
			return nil, nil
		}

		if start, err = e.PopToken(); err != nil {
			return nil, err
		}

		arg, err := e.ConsumeArg("]")
		if err != nil {
			return nil, err
		}

		tokens, end = arg.Tokens, arg.End
	} else {
		arg, err := e.ConsumeArg()
		if err != nil {
			return nil, err
		}

		tokens, start, end = arg.Tokens, arg.Start, arg.End
	}

	e.PushToken(&Token{Text: "EOF", Loc: end.Loc})
	e.PushTokens(tokens)

	return start.Range(end, ""), nil
}

// MacroArg is a scanned macro argument, Tokens are in stack order.
type MacroArg struct {
	Tokens []*Token
	Start  *Token
	End    *Token
}

// ConsumeArg reads one macro argument. Without delimiters it is a single token or a brace group
// (braces stripped), otherwise everything up to the delimiter sequence at brace depth zero.
func (e *MacroExpander) ConsumeArg(delims ...string) (*MacroArg, error) {
	isDelimited := len(delims) > 0
	if !isDelimited {
		if err := e.ConsumeSpaces(); err != nil {
			return nil, err
		}
	}

	start, err := e.Future()
	if err != nil {
		return nil, err
	}

	var tokens []*Token
	var tok *Token
	depth, match := 0, 0

	for {
		if tok, err = e.PopToken(); err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)

		switch tok.Text {
		case "{":
			depth++
		case "}":
			depth--
			if depth == -1 {
				return nil, errorAt(ErrExpansion, tok, "Extra }")
			}
		case "EOF":
			expected := "}"
			if isDelimited {
				expected = delims[match]
			}

			return nil, errorAt(ErrUnexpectedEOF, tok, "Unexpected end of input in a macro argument, expected '%s'", expected)
		}

		if isDelimited {
			if (depth == 0 || (depth == 1 && delims[match] == "{")) && tok.Text == delims[match] {
				match++
				if match == len(delims) {
					tokens = tokens[:len(tokens)-match]
					break
				}
			} else {
				match = 0
			}
		} else if depth == 0 {
			break
		}
	}

	// a single group argument loses its braces
	if start.Text == "{" && len(tokens) > 0 && tokens[len(tokens)-1].Text == "}" {
		tokens = tokens[1 : len(tokens)-1]
	}

	return &MacroArg{Tokens: reversed(tokens), Start: start, End: tok}, nil
}

// ConsumeArgs reads numArgs arguments, delimiters (when given) hold the parameter text
// preceding the first argument followed by the delimiter of each argument.
func (e *MacroExpander) ConsumeArgs(numArgs int, delimiters [][]string) ([][]*Token, error) {
	if delimiters != nil {
		if len(delimiters) != numArgs+1 {
			return nil, newError(ErrExpansion, nil, "The length of delimiters doesn't match the number of args!")
		}

		for _, d := range delimiters[0] {
			tok, err := e.PopToken()
			if err != nil {
				return nil, err
			}

			if d != tok.Text {
				return nil, errorAt(ErrExpansion, tok, "Use of the macro doesn't match its definition")
			}
		}
	}

	args := make([][]*Token, 0, numArgs)
	for i := 0; i < numArgs; i++ {
		var delims []string
		if delimiters != nil {
			delims = delimiters[i+1]
		}

		arg, err := e.ConsumeArg(delims...)
		if err != nil {
			return nil, err
		}

		args = append(args, arg.Tokens)
	}

	return args, nil
}

// ExpandOnce expands the topmost token if it is a macro. It returns whether an expansion happened
// and the number of tokens pushed. With expandableOnly, unexpandable \let-copies are left alone and
// undefined control sequences fail.
func (e *MacroExpander) ExpandOnce(expandableOnly bool) (bool, int, error) {
	top, err := e.PopToken()
	if err != nil {
		return false, 0, err
	}

	name := top.Text

	var expansion *MacroExpansion
	if !top.Noexpand {
		if expansion, err = e.getExpansion(name); err != nil {
			return false, 0, err
		}
	}

	if expansion == nil || (expandableOnly && expansion.Unexpandable) {
		if expandableOnly && expansion == nil && strings.HasPrefix(name, "\\") && !e.IsDefined(name) {
			return false, 0, errorAt(ErrExpansion, top, "Undefined control sequence: %s", name)
		}

		e.PushToken(top)
		return false, 0, nil
	}

	e.expansionCount++
	if e.expansionCount > e.settings.MaxExpand {
		return false, 0, errorAt(ErrTooManyExpansions, top, "Too many expansions: infinite loop or need to increase maxExpand setting")
	}

	tokens := expansion.Tokens
	args, err := e.ConsumeArgs(expansion.NumArgs, expansion.Delimiters)
	if err != nil {
		return false, 0, err
	}

	if expansion.NumArgs > 0 {
		if tokens, err = substituteArgs(tokens, args); err != nil {
			return false, 0, err
		}
	}

	e.PushTokens(tokens)
	return true, len(tokens), nil
}

// substituteArgs replaces #n placeholders with arguments and ## with #, tokens are in stack order
func substituteArgs(body []*Token, args [][]*Token) ([]*Token, error) {
	out := make([]*Token, 0, len(body))

	// walk from the end of the stack, which is the beginning of the body
	for i := len(body) - 1; i >= 0; i-- {
		tok := body[i]
		if tok.Text != "#" {
			out = append(out, tok)
			continue
		}

		if i == 0 {
			return nil, errorAt(ErrExpansion, tok, "Incomplete placeholder at end of macro body")
		}

		i--
		next := body[i]
		switch {
		case next.Text == "#":
			out = append(out, next)
		case len(next.Text) == 1 && next.Text[0] >= '1' && next.Text[0] <= '9' && int(next.Text[0]-'1') < len(args):
			arg := args[next.Text[0]-'1']
			for j := len(arg) - 1; j >= 0; j-- {
				out = append(out, arg[j])
			}
		default:
			return nil, errorAt(ErrExpansion, next, "Not a valid argument number")
		}
	}

	return reversed(out), nil
}

// ExpandAfterFuture expands the next token once and returns the following token.
func (e *MacroExpander) ExpandAfterFuture() (*Token, error) {
	if _, _, err := e.ExpandOnce(false); err != nil {
		return nil, err
	}

	return e.Future()
}

// ExpandNextToken expands macros until the topmost token is not expandable and returns it.
func (e *MacroExpander) ExpandNextToken() (*Token, error) {
	for {
		expanded, _, err := e.ExpandOnce(false)
		if err != nil {
			return nil, err
		}

		if expanded {
			continue
		}

		tok := e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]

		if tok.TreatAsRelax {
			tok = tok.clone()
			tok.Text = "\\relax"
		}

		return tok, nil
	}
}

// ExpandMacro fully expands the named macro, returns nil if it is not defined.
func (e *MacroExpander) ExpandMacro(name string) ([]*Token, error) {
	if !e.macros.Has(name) {
		return nil, nil
	}

	return e.ExpandTokens([]*Token{NewToken(name)})
}

// ExpandMacroAsText fully expands the named macro and joins resulting token texts.
func (e *MacroExpander) ExpandMacroAsText(name string) (string, bool, error) {
	tokens, err := e.ExpandMacro(name)
	if err != nil || tokens == nil {
		return "", false, err
	}

	return strings.Join(texts(tokens), ""), true, nil
}

// ExpandTokens fully expands the tokens (given in reading order) outside of the main token stream.
func (e *MacroExpander) ExpandTokens(tokens []*Token) ([]*Token, error) {
	var output []*Token
	depth := len(e.stack)

	e.PushTokens(reversed(tokens))
	for len(e.stack) > depth {
		expanded, _, err := e.ExpandOnce(true)
		if err != nil {
			e.stack = e.stack[:depth]
			return nil, err
		}

		if expanded {
			continue
		}

		tok := e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]

		if tok.TreatAsRelax {
			tok = tok.clone()
			tok.Noexpand = false
			tok.TreatAsRelax = false
		}

		output = append(output, tok)
	}

	return output, nil
}

// getExpansion resolves the macro definition into an expansion, nil if name is not a macro
func (e *MacroExpander) getExpansion(name string) (*MacroExpansion, error) {
	definition := e.macros.Get(name)
	if definition == nil {
		return nil, nil
	}

	// a single character is a macro only when it is active
	if len([]rune(name)) == 1 {
		if code, ok := e.lexer.Catcode(name); ok && code != catcodeActive {
			return nil, nil
		}
	}

	if fn, ok := definition.(MacroFunc); ok {
		expansion, err := fn(e)
		if err != nil {
			return nil, err
		}

		definition = expansion
	}

	switch d := definition.(type) {
	case MacroText:
		return e.lexMacroText(string(d))
	case *MacroExpansion:
		return d, nil
	case nil:
		return nil, nil
	default:
		return nil, newError(ErrInternal, nil, "unsupported macro definition %T for %s", definition, name)
	}
}

func (e *MacroExpander) lexMacroText(body string) (*MacroExpansion, error) {
	numArgs := 0
	if strings.Contains(body, "#") {
		stripped := strings.ReplaceAll(body, "##", "")
		for numArgs < 9 && strings.Contains(stripped, "#"+string(rune('1'+numArgs))) {
			numArgs++
		}
	}

	lexer := NewLexer(body, e.settings)

	var tokens []*Token
	for {
		tok, err := lexer.Lex()
		if err != nil {
			return nil, err
		}

		if tok.Text == "EOF" {
			break
		}

		tokens = append(tokens, tok)
	}

	return &MacroExpansion{Tokens: reversed(tokens), NumArgs: numArgs}, nil
}

// IsDefined checks whether name is a macro, function, symbol or implicit command.
func (e *MacroExpander) IsDefined(name string) bool {
	if e.macros.Has(name) || implicitCommands[name] {
		return true
	}

	if _, ok := e.registry.functions[name]; ok {
		return true
	}

	_, inMath := symbols[ModeMath][name]
	_, inText := symbols[ModeText][name]
	return inMath || inText
}

// IsExpandable checks whether name would be expanded by ExpandOnce.
func (e *MacroExpander) IsExpandable(name string) bool {
	if m := e.macros.Get(name); m != nil {
		if exp, ok := m.(*MacroExpansion); ok {
			return !exp.Unexpandable
		}

		return true
	}

	f, ok := e.registry.functions[name]
	return ok && !f.Primitive
}

func reversed(tokens []*Token) []*Token {
	out := make([]*Token, len(tokens))
	for i, t := range tokens {
		out[len(tokens)-1-i] = t
	}

	return out
}
