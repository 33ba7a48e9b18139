package texmath

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrLex               = errors.New("lex error")
	ErrExpansion         = errors.New("expansion error")
	ErrTooManyExpansions = errors.New("too many expansions")
	ErrUnexpectedEOF     = errors.New("unexpected end of input")
	ErrParse             = errors.New("parse error")
	ErrMultipleInfix     = errors.New("multiple infix operators")
	ErrUntrusted         = errors.New("untrusted command")
	ErrInternal          = errors.New("internal error")
)

// ParseError is returned for every fatal problem found while converting an expression.
type ParseError struct {
	Kind    error
	Message string
	Loc     *SourceLocation
}

func newError(kind error, loc *SourceLocation, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Message: fmt.Sprintf(format, args...), Loc: loc}
}

// errorAt creates a parse error pointing to the given token, token may be nil.
func errorAt(kind error, token *Token, format string, args ...any) *ParseError {
	var loc *SourceLocation
	if token != nil {
		loc = token.Loc
	}

	return newError(kind, loc, format, args...)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// Position returns the start of the offending span, or -1 when unknown.
func (e *ParseError) Position() int {
	if e.Loc == nil {
		return -1
	}

	return e.Loc.Start
}

// Error renders the message along with a snippet of the input where the offending span is underlined.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse error: ")
	b.WriteString(e.Message)

	if e.Loc == nil || e.Loc.Start > e.Loc.End {
		return b.String()
	}

	input := []rune(e.Loc.Input)
	start, end := e.Loc.Start, e.Loc.End
	if end > len(input) {
		end = len(input)
	}

	if start > end {
		return b.String()
	}

	if start == len(input) {
		b.WriteString(" at end of input: ")
	} else {
		fmt.Fprintf(&b, " at position %d: ", start+1)
	}

	if start > 15 {
		b.WriteString("…")
		b.WriteString(string(input[start-15 : start]))
	} else {
		b.WriteString(string(input[:start]))
	}

	for _, r := range input[start:end] {
		b.WriteRune(r)
		b.WriteRune('\u0332')
	}

	if end+15 < len(input) {
		b.WriteString(string(input[end : end+15]))
		b.WriteString("…")
	} else {
		b.WriteString(string(input[end:]))
	}

	return b.String()
}
