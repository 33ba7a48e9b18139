package texmath

import (
	"strings"
	"unicode/utf16"
)

const (
	catcodeComment = 14
	catcodeOther   = 12
	catcodeActive  = 13
)

// Lexer splits an input string into tokens, one token per Lex call.
type Lexer struct {
	source   string
	input    []rune
	pos      int
	catcodes map[string]int
	settings *Settings
}

func NewLexer(input string, settings *Settings) *Lexer {
	if settings == nil {
		settings = defaultSettings()
	}

	return &Lexer{
		source:   input,
		input:    []rune(input),
		settings: settings,
		catcodes: map[string]int{
			"%": catcodeComment,
			"~": catcodeActive,
		},
	}
}

// SetCatcode changes category code of a single character.
func (l *Lexer) SetCatcode(char string, code int) {
	l.catcodes[char] = code
}

// Catcode returns category code of a character and whether it was assigned.
func (l *Lexer) Catcode(char string) (int, bool) {
	code, ok := l.catcodes[char]
	return code, ok
}

// Lex returns the next token, EOF token is returned forever once the input is exhausted.
func (l *Lexer) Lex() (*Token, error) {
	if l.pos >= len(l.input) {
		return &Token{Text: "EOF", Loc: l.loc(l.pos, l.pos)}, nil
	}

	start := l.pos
	r := l.input[l.pos]

	var text string
	switch {
	case isWhitespace(r):
		l.whitespaces()
		text = " "
	case r == '\\':
		t, err := l.readBackslash()
		if err != nil {
			return nil, err
		}

		text = t
	case isPlainCharacter(r):
		l.pos++
		text = string(r) + l.readCombiningMarks()
	default:
		return nil, newError(ErrLex, l.loc(start, start+1), "Unexpected character: '%c'", r)
	}

	if code, ok := l.catcodes[text]; ok && code == catcodeComment {
		return l.readLineComment()
	}

	return &Token{Text: text, Loc: l.loc(start, l.pos)}, nil
}

// readBackslash reads control space, \verb span, control word or control symbol
func (l *Lexer) readBackslash() (string, error) {
	start := l.pos
	l.pos++

	if l.pos >= len(l.input) {
		return "", newError(ErrLex, l.loc(start, start+1), "Unexpected character: '\\'")
	}

	r := l.input[l.pos]

	// control space: backslash followed by blanks with at most one newline
	if r == '\n' || r == ' ' || r == '\r' || r == '\t' {
		l.readControlSpace()
		return "\\ ", nil
	}

	if isLetter(r) || r == '@' {
		word := l.readCommand()
		if word == "\\verb" {
			if verb, ok := l.readVerbatim(); ok {
				return verb, nil
			}
		}

		l.whitespaces()
		return word, nil
	}

	if isSurrogate(r) {
		return "", newError(ErrLex, l.loc(start, start+1), "Unexpected character: '\\'")
	}

	l.pos++
	return string([]rune{'\\', r}), nil
}

// readControlSpace consumes whitespace after a backslash: either a newline or a run of blanks
// optionally followed by one newline, then any trailing blanks.
func (l *Lexer) readControlSpace() {
	pos := l.pos
	if l.input[pos] == '\n' {
		pos++
	} else {
		for pos < len(l.input) && isBlank(l.input[pos]) {
			pos++
		}

		if pos < len(l.input) && l.input[pos] == '\n' {
			pos++
		}
	}

	for pos < len(l.input) && isBlank(l.input[pos]) {
		pos++
	}

	l.pos = pos
}

// readCommand reads control word name, trailing whitespace is left for the caller
func (l *Lexer) readCommand() string {
	runes := []rune{'\\'}
	for l.pos < len(l.input) && (isLetter(l.input[l.pos]) || l.input[l.pos] == '@') {
		runes = append(runes, l.input[l.pos])
		l.pos++
	}

	return string(runes)
}

// readVerbatim reads \verb or \verb* span after the command name, returns false and restores
// position if the delimiter is not matched on the same line.
func (l *Lexer) readVerbatim() (string, bool) {
	pos := l.pos
	star := false
	if pos < len(l.input) && l.input[pos] == '*' {
		star = true
		pos++
	}

	if pos >= len(l.input) {
		return "", false
	}

	delimiter := l.input[pos]
	if !star && (isLetter(delimiter) || delimiter == '*') {
		return "", false
	}

	for end := pos + 1; end < len(l.input); end++ {
		if l.input[end] == '\n' {
			return "", false
		}

		if l.input[end] == delimiter {
			l.pos = end + 1
			return "\\verb" + string(l.input[pos-boolToInt(star):end+1]), true
		}
	}

	return "", false
}

// readLineComment skips the rest of the line after a comment character and returns the following token
func (l *Lexer) readLineComment() (*Token, error) {
	idx := -1
	for i := l.pos; i < len(l.input); i++ {
		if l.input[i] == '\n' {
			idx = i
			break
		}
	}

	if idx == -1 {
		l.pos = len(l.input)
		if err := l.settings.reportNonstrict("commentAtEnd", "% comment has no terminating newline; LaTeX would fail because of commenting the end of math mode", nil); err != nil {
			return nil, err
		}
	} else {
		l.pos = idx + 1
	}

	return l.Lex()
}

// readCombiningMarks reads combining diacritical marks following a character
func (l *Lexer) readCombiningMarks() string {
	var b strings.Builder
	for l.pos < len(l.input) && isCombiningMark(l.input[l.pos]) {
		b.WriteRune(l.input[l.pos])
		l.pos++
	}

	return b.String()
}

// whitespaces skips until next non-whitespace symbol
func (l *Lexer) whitespaces() {
	for l.pos < len(l.input) && isWhitespace(l.input[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) loc(start, end int) *SourceLocation {
	return &SourceLocation{Input: l.source, Start: start, End: end}
}

// isLetter returns true for a letter
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\n', '\t', '\r':
		return true
	default:
		return false
	}
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\r' || r == '\t'
}

// isPlainCharacter reports characters which form a token on their own: everything printable
// except backslash, line/paragraph separators and private use area.
func isPlainCharacter(r rune) bool {
	switch {
	case r < '!':
		return false
	case r == '\\':
		return false
	case r == '\u2028' || r == '\u2029':
		return false
	case 0xE000 <= r && r <= 0xF8FF:
		return false
	case isSurrogate(r):
		return false
	default:
		return true
	}
}

func isSurrogate(r rune) bool {
	return utf16.IsSurrogate(r)
}

func isCombiningMark(r rune) bool {
	return 0x0300 <= r && r <= 0x036F
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
