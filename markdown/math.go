// Package markdown is a goldmark extension rendering $...$ and $$...$$ math into MathML.
package markdown

import (
	"github.com/eolymp/go-texmath"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Extension is a math extension
type Extension struct {
	options texmath.Options
}

// Option configures the extension
type Option interface {
	SetOption(e *Extension)
}

type extensionFunc func(e *Extension)

func (fn extensionFunc) SetOption(e *Extension) {
	fn(e)
}

// WithOptions sets conversion options, DisplayMode is decided by the delimiters.
func WithOptions(opts texmath.Options) Option {
	return extensionFunc(func(e *Extension) {
		e.options = opts
	})
}

// Math is the extension with default options
var Math = &Extension{}

func NewExtension(opts ...Option) *Extension {
	e := &Extension{}
	for _, o := range opts {
		o.SetOption(e)
	}

	return e
}

// Extend adds math parsers and renderers to goldmark
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(blockParser{}, 701)),
		parser.WithInlineParsers(util.Prioritized(inlineParser{}, 501)),
	)

	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&mathRenderer{options: e.options}, 501),
	))
}
