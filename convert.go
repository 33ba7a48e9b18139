package texmath

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Convert renders a TeX expression into a MathML <math> element.
//
// A parse error is returned unless ThrowOnError is false, in which case the source is rendered
// inside <merror> colored with ErrorColor and the message is kept in the title attribute.
func Convert(source string, opts Options) (*Element, error) {
	return convert(source, NewSettings(opts), defaultRegistry())
}

// ConvertToString is Convert followed by rendering the element into markup.
func ConvertToString(source string, opts Options) (string, error) {
	math, err := Convert(source, opts)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := Render(&out, math); err != nil {
		return "", err
	}

	return out.String(), nil
}

// Parse returns the syntax tree of the expression without building MathML.
func Parse(source string, opts Options) ([]*ParseNode, error) {
	return ParseTree(source, NewSettings(opts), defaultRegistry())
}

func convert(source string, settings *Settings, registry *Registry) (*Element, error) {
	math, err := build(source, settings, registry)
	if err == nil {
		return math, nil
	}

	var perr *ParseError
	if settings.ThrowOnError || !errors.As(err, &perr) {
		return nil, err
	}

	settings.Logger.Debug("rendering expression with error", zap.String("source", source), zap.Error(err))
	return renderError(perr, source, settings), nil
}

func build(source string, settings *Settings, registry *Registry) (*Element, error) {
	tree, err := ParseTree(source, settings, registry)
	if err != nil {
		return nil, err
	}

	b := NewBuilder(settings, registry)
	return b.BuildMathML(tree, source, NewStyle(settings.DisplayMode, settings.MaxSize))
}

// renderError shows the original source in place of the expression
func renderError(err *ParseError, source string, settings *Settings) *Element {
	merror := NewElement("merror", NewElement("mtext", NewText(source)))
	merror.SetAttribute("title", err.Error())
	merror.SetStyle("color", settings.ErrorColor)

	math := NewElement("math", merror)
	if settings.XML {
		math.SetAttribute("xmlns", mathMLNamespace)
	}

	if settings.DisplayMode {
		math.SetAttribute("display", "block")
	}

	return math
}
