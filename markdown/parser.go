package markdown

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var fence = []byte("$$")

type blockParser struct{}

var _ parser.BlockParser = blockParser{}

func (blockParser) Trigger() []byte {
	return []byte{'$'}
}

func (blockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	trimmed := util.TrimRightSpace(util.TrimLeftSpace(line))

	if !bytes.HasPrefix(trimmed, fence) {
		return nil, parser.NoChildren
	}

	// $$ x $$ on a single line
	if len(trimmed) > 2*len(fence) && bytes.HasSuffix(trimmed, fence) {
		source := trimmed[len(fence) : len(trimmed)-len(fence)]
		return &Block{Source: string(source), closed: true}, parser.NoChildren
	}

	if len(trimmed) != len(fence) {
		return nil, parser.NoChildren
	}

	return &Block{}, parser.NoChildren
}

func (blockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	block := node.(*Block)
	if block.closed {
		return parser.Close
	}

	line, segment := reader.PeekLine()
	if bytes.Equal(util.TrimRightSpace(util.TrimLeftSpace(line)), fence) {
		reader.Advance(segment.Len())
		return parser.Close
	}

	block.Source += string(line)
	return parser.Continue | parser.NoChildren
}

func (blockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (blockParser) CanInterruptParagraph() bool {
	return true
}

func (blockParser) CanAcceptIndentedLine() bool {
	return false
}

type inlineParser struct{}

var _ parser.InlineParser = inlineParser{}

func (inlineParser) Trigger() []byte {
	return []byte{'$'}
}

// Parse reads $...$, the content may not start or end with a space and \$ does not close it
func (inlineParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 3 || line[1] == '$' || util.IsSpace(line[1]) {
		return nil
	}

	for i := 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '\n':
			return nil
		case '$':
			if util.IsSpace(line[i-1]) {
				return nil
			}

			block.Advance(i + 1)
			return &Inline{Source: string(line[1:i])}
		}
	}

	return nil
}
