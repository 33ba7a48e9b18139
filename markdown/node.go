package markdown

import (
	"github.com/yuin/goldmark/ast"
)

var (
	KindBlock  = ast.NewNodeKind("MathBlock")
	KindInline = ast.NewNodeKind("MathInline")
)

// Block is display math delimited by $$ lines
type Block struct {
	ast.BaseBlock
	Source string

	closed bool
}

var _ ast.Node = (*Block)(nil)

func (n *Block) Kind() ast.NodeKind {
	return KindBlock
}

func (n *Block) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Source": n.Source}, nil)
}

// Inline is math delimited by single dollars
type Inline struct {
	ast.BaseInline
	Source string
}

var _ ast.Node = (*Inline)(nil)

func (n *Inline) Kind() ast.NodeKind {
	return KindInline
}

func (n *Inline) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Source": n.Source}, nil)
}
