package render_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eolymp/go-texmath"
	"github.com/eolymp/go-texmath/internal/config"
	"github.com/eolymp/go-texmath/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMemoizes(t *testing.T) {
	svc := render.New(texmath.Options{}, time.Minute, nil, nil)
	req := render.Request{Source: "a+b"}

	first, err := svc.Convert(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Contains(t, first.MathML, "<mo>+</mo>")

	second, err := svc.Convert(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.MathML, second.MathML)

	svc.Flush()

	third, err := svc.Convert(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, third.Cached)
}

func TestConvertAppliesRequestOptions(t *testing.T) {
	svc := render.New(texmath.Options{}, time.Minute, nil, nil)

	res, err := svc.Convert(context.Background(), render.Request{
		Source:      "\\RR",
		DisplayMode: true,
		Macros:      map[string]string{"\\RR": "\\mathbb{R}"},
	})

	require.NoError(t, err)
	assert.Contains(t, res.MathML, `display="block"`)
	assert.Contains(t, res.MathML, `mathvariant="double-struck"`)
}

func TestConvertReportsErrors(t *testing.T) {
	svc := render.New(texmath.Options{}, time.Minute, nil, nil)

	_, err := svc.Convert(context.Background(), render.Request{Source: "\\frac{1}", ThrowOnError: true})

	var perr *texmath.ParseError
	require.True(t, errors.As(err, &perr))
	assert.ErrorIs(t, err, texmath.ErrUnexpectedEOF)

	res, err := svc.Convert(context.Background(), render.Request{Source: "\\frac{1}"})
	require.NoError(t, err)
	assert.Contains(t, res.MathML, "<merror")
}

func TestKey(t *testing.T) {
	a := render.Key(render.Request{Source: "x", Macros: map[string]string{"\\a": "1", "\\b": "2"}})
	b := render.Key(render.Request{Source: "x", Macros: map[string]string{"\\b": "2", "\\a": "1"}})
	c := render.Key(render.Request{Source: "x", DisplayMode: true})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^texmath:[0-9a-f]{64}$`, a)
}

func TestOptions(t *testing.T) {
	opts := render.Options(config.TexMathConfig{MaxExpand: 10, Trust: true, Strict: "warn", Wrap: "none"}, nil)

	assert.Equal(t, 10, opts.MaxExpand)
	assert.Equal(t, texmath.StrictWarn, opts.Strict)
	assert.Equal(t, texmath.WrapNone, opts.Wrap)
	assert.NotNil(t, opts.Trust)
}
