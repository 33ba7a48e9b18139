package texmath

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

type StrictMode string

const (
	StrictIgnore StrictMode = "ignore"
	StrictWarn   StrictMode = "warn"
	StrictError  StrictMode = "error"
)

type WrapMode string

const (
	WrapNone   WrapMode = "none"
	WrapEquals WrapMode = "="
	WrapTeX    WrapMode = "tex"
)

// ParseStrictMode validates a strict mode name, the empty name selects StrictIgnore.
func ParseStrictMode(name string) (StrictMode, error) {
	switch mode := StrictMode(strings.ToLower(name)); mode {
	case "":
		return StrictIgnore, nil
	case StrictIgnore, StrictWarn, StrictError:
		return mode, nil
	}

	return "", fmt.Errorf("unknown strict mode %q, expected ignore, warn or error", name)
}

// ParseWrapMode validates a line break mode name, the empty name selects WrapTeX.
func ParseWrapMode(name string) (WrapMode, error) {
	switch mode := WrapMode(strings.ToLower(name)); mode {
	case "":
		return WrapTeX, nil
	case WrapNone, WrapEquals, WrapTeX:
		return mode, nil
	}

	return "", fmt.Errorf("unknown wrap mode %q, expected tex, = or none", name)
}

const (
	DefaultMaxExpand  = 1000
	DefaultErrorColor = "#b22222"
)

// TrustContext describes a command asking for trust, Protocol is filled in from URL before the check.
type TrustContext struct {
	Command  string
	URL      string
	Protocol string
	Class    string
	ID       string
	Style    string

	// Attributes are the data-* attributes requested by \data
	Attributes map[string]string
}

// TrustFunc decides whether an unsafe command (\href, \url, \class, \id, \style, \data) may be used.
type TrustFunc func(ctx TrustContext) bool

// TrustAll permits every command.
func TrustAll(TrustContext) bool { return true }

// TrustProtocols permits commands with URLs using one of the given protocols and commands without URLs.
func TrustProtocols(protocols ...string) TrustFunc {
	return func(ctx TrustContext) bool {
		if ctx.URL == "" {
			return true
		}

		for _, p := range protocols {
			if strings.EqualFold(p, ctx.Protocol) {
				return true
			}
		}

		return false
	}
}

// Options configure a single conversion. The zero value is a usable inline configuration.
type Options struct {
	DisplayMode  bool
	Annotate     bool
	Leqno        bool
	ThrowOnError bool
	ErrorColor   string

	// Macros pre-seeds the global macro layer. Global definitions made by the expression
	// (\gdef, \global\def) are written back into this map.
	Macros Macros

	Strict StrictMode
	Trust  TrustFunc

	// MaxSize caps user specified sizes: [0] in em, [1] in pt. Zero means unlimited.
	MaxSize [2]float64

	// MaxExpand is the macro expansion budget, 0 means DefaultMaxExpand and a negative value disables the limit.
	MaxExpand int

	ColorIsTextColor bool
	Wrap             WrapMode

	// XML adds the MathML namespace to the root element.
	XML bool

	Logger *zap.Logger
}

// Settings is the normalized form of Options used during conversion.
type Settings struct {
	DisplayMode      bool
	Annotate         bool
	Leqno            bool
	ThrowOnError     bool
	ErrorColor       string
	Macros           Macros
	Strict           StrictMode
	Trust            TrustFunc
	MaxSize          [2]float64
	MaxExpand        int
	ColorIsTextColor bool
	Wrap             WrapMode
	XML              bool
	Logger           *zap.Logger
}

func defaultSettings() *Settings {
	return NewSettings(Options{})
}

// NewSettings applies defaults to options.
func NewSettings(o Options) *Settings {
	s := &Settings{
		DisplayMode:      o.DisplayMode,
		Annotate:         o.Annotate,
		Leqno:            o.Leqno,
		ThrowOnError:     o.ThrowOnError,
		ErrorColor:       o.ErrorColor,
		Macros:           o.Macros,
		Strict:           o.Strict,
		Trust:            o.Trust,
		MaxSize:          o.MaxSize,
		MaxExpand:        o.MaxExpand,
		ColorIsTextColor: o.ColorIsTextColor,
		Wrap:             o.Wrap,
		XML:              o.XML,
		Logger:           o.Logger,
	}

	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}

	if s.ErrorColor == "" {
		s.ErrorColor = DefaultErrorColor
	}

	if s.Macros == nil {
		s.Macros = Macros{}
	}

	strict, err := ParseStrictMode(string(s.Strict))
	if err != nil {
		s.Logger.Warn("using default strict mode", zap.Error(err))
		strict = StrictIgnore
	}

	s.Strict = strict

	for i := range s.MaxSize {
		if s.MaxSize[i] == 0 {
			s.MaxSize[i] = math.Inf(1)
		}
	}

	switch {
	case s.MaxExpand == 0:
		s.MaxExpand = DefaultMaxExpand
	case s.MaxExpand < 0:
		s.MaxExpand = math.MaxInt
	}

	wrap, err := ParseWrapMode(string(s.Wrap))
	if err != nil {
		s.Logger.Warn("using default wrap mode", zap.Error(err))
		wrap = WrapTeX
	}

	s.Wrap = wrap

	return s
}

// reportNonstrict handles LaTeX-incompatible input according to the strict mode
func (s *Settings) reportNonstrict(code, message string, token *Token) error {
	switch s.Strict {
	case StrictError:
		return errorAt(ErrParse, token, "LaTeX-incompatible input and strict mode is set to 'error': %s [%s]", message, code)
	case StrictWarn:
		fields := []zap.Field{zap.String("code", code), zap.String("message", message)}
		if token != nil && token.Loc != nil {
			fields = append(fields, zap.Int("position", token.Loc.Start))
		}

		s.Logger.Warn("LaTeX-incompatible input", fields...)
	}

	return nil
}

// isStrict reports whether non-standard constructs should be rejected
func (s *Settings) isStrict() bool {
	return s.Strict == StrictError
}

var protocolPattern = regexp.MustCompile(`(?i)^[\x00-\x20]*([^\\/#?]*?)(:|&#0*58|&#x0*3a|&colon)`)
var protocolName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+\-.]*$`)

// protocolFromURL extracts the protocol of a url, "_relative" for relative urls and "" when
// the url is malformed.
func protocolFromURL(url string) string {
	match := protocolPattern.FindStringSubmatch(url)
	if match == nil {
		return "_relative"
	}

	if match[2] != ":" {
		return ""
	}

	if !protocolName.MatchString(match[1]) {
		return ""
	}

	return strings.ToLower(match[1])
}

// isTrusted checks the command against the trust setting
func (s *Settings) isTrusted(ctx TrustContext) bool {
	if ctx.URL != "" && ctx.Protocol == "" {
		ctx.Protocol = protocolFromURL(ctx.URL)
		if ctx.Protocol == "" {
			return false
		}
	}

	if s.Trust == nil {
		return false
	}

	return s.Trust(ctx)
}
