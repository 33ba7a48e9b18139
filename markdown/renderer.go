package markdown

import (
	"github.com/eolymp/go-texmath"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

type mathRenderer struct {
	options texmath.Options
}

var _ renderer.NodeRenderer = (*mathRenderer)(nil)

func (r *mathRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindBlock, r.renderBlock)
	reg.Register(KindInline, r.renderInline)
}

func (r *mathRenderer) renderBlock(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString("<div class=\"math-display\">")
	r.write(w, n.(*Block).Source, true)
	_, _ = w.WriteString("</div>\n")

	return ast.WalkSkipChildren, nil
}

func (r *mathRenderer) renderInline(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	r.write(w, n.(*Inline).Source, false)
	return ast.WalkSkipChildren, nil
}

// write renders the expression, the source is kept as code when it can't be converted
func (r *mathRenderer) write(w util.BufWriter, source string, display bool) {
	opts := r.options
	opts.DisplayMode = display

	markup, err := texmath.ConvertToString(source, opts)
	if err != nil {
		_, _ = w.WriteString("<code class=\"language-math\">")
		_, _ = w.Write(util.EscapeHTML([]byte(source)))
		_, _ = w.WriteString("</code>")
		return
	}

	_, _ = w.WriteString(markup)
}
