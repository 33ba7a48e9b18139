package texmath

// SourceLocation is a span of characters (runes) in the input the token was lexed from.
type SourceLocation struct {
	Input string
	Start int
	End   int
}

// rangeOf returns a location spanning from the start of first to the end of second.
// Locations from different inputs have no common range and yield nil.
func rangeOf(first, second *SourceLocation) *SourceLocation {
	if second == nil {
		return first
	}

	if first == nil || first.Input != second.Input {
		return nil
	}

	return &SourceLocation{Input: first.Input, Start: first.Start, End: second.End}
}

// Token is a single lexical unit: a control sequence, a character (with combining marks) or a space.
type Token struct {
	Text string
	Loc  *SourceLocation

	// Noexpand and TreatAsRelax are set by \noexpand on a copy of the token
	Noexpand     bool
	TreatAsRelax bool
}

// NewToken creates a token without source location.
func NewToken(text string) *Token {
	return &Token{Text: text}
}

// Range creates a token with the given text spanning from t to end.
func (t *Token) Range(end *Token, text string) *Token {
	var loc *SourceLocation
	if end != nil {
		loc = rangeOf(t.Loc, end.Loc)
	} else {
		loc = t.Loc
	}

	return &Token{Text: text, Loc: loc}
}

func (t *Token) clone() *Token {
	c := *t
	return &c
}

func texts(tokens []*Token) (out []string) {
	for _, t := range tokens {
		out = append(out, t.Text)
	}

	return
}
