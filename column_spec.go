package texmath

import (
	"fmt"
	"strings"
)

// line styles of column borders
const (
	BorderNone   = ""
	BorderSolid  = "solid"
	BorderDashed = "dashed"
	BorderDouble = "double"
)

type ColumnSpec struct {
	BorderLeft  string // line to the left of the first column
	BorderRight string // line to the right of the column
	Align       string // column alignment: c, l or r
}

// ColumnSpecs parses column spec of an array, allowed lists the accepted alignments.
// Only the first column may have a left border, separators in between end up on the right border
// of the column before them. Two or more consecutive separators make a double line.
func ColumnSpecs(raw, allowed string) (spec []ColumnSpec, err error) {
	raw = whitespaces.ReplaceAllString(raw, "") // remove all spaces since they don't have any meaning

	var pending []rune
	flush := func() string {
		defer func() { pending = nil }()

		switch {
		case len(pending) == 0:
			return BorderNone
		case len(pending) > 1:
			return BorderDouble
		case pending[0] == ':':
			return BorderDashed
		default:
			return BorderSolid
		}
	}

	for _, char := range raw {
		switch {
		case char == '|' || char == ':':
			pending = append(pending, char)
		case strings.ContainsRune(allowed, char):
			col := ColumnSpec{Align: string(char)}
			if len(spec) == 0 {
				col.BorderLeft = flush()
			} else {
				spec[len(spec)-1].BorderRight = flush()
			}

			spec = append(spec, col)
		default:
			return nil, fmt.Errorf("unknown column alignment: %c", char)
		}
	}

	if len(spec) > 0 {
		spec[len(spec)-1].BorderRight = flush()
	}

	return spec, nil
}

// borderStyle is the css border for a line style
func borderStyle(line string) string {
	switch line {
	case BorderDouble:
		return "0.15em double"
	case BorderDashed:
		return "0.06em dashed"
	case BorderSolid:
		return "0.06em solid"
	}

	return ""
}
