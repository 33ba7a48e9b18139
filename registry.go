package texmath

import (
	"sync"
)

// ArgType selects how the parser reads a function argument.
type ArgType string

const (
	ArgDefault   ArgType = ""
	ArgColor     ArgType = "color"
	ArgSize      ArgType = "size"
	ArgURL       ArgType = "url"
	ArgRaw       ArgType = "raw"
	ArgMath      ArgType = "math"
	ArgText      ArgType = "text"
	ArgHBox      ArgType = "hbox"
	ArgPrimitive ArgType = "primitive"
	ArgOriginal  ArgType = "original"
)

// FunctionContext is passed to function handlers.
type FunctionContext struct {
	Name             string
	Parser           *Parser
	Token            *Token
	BreakOnTokenText string
}

// FunctionHandler builds a parse node from parsed arguments, optional arguments are nil when absent.
type FunctionHandler func(ctx *FunctionContext, args []*ParseNode, optArgs []*ParseNode) (*ParseNode, error)

// BuilderFunc converts a parse node of one type into markup.
type BuilderFunc func(b *Builder, node *ParseNode, style Style) (Node, error)

// FunctionSpec describes a control sequence handled by the parser.
type FunctionSpec struct {
	Type            NodeType
	Names           []string
	NumArgs         int
	NumOptionalArgs int
	ArgTypes        []ArgType

	AllowedInText     bool
	TextOnly          bool // not allowed in math mode
	AllowedInArgument bool
	Infix             bool
	Primitive         bool

	Handler FunctionHandler
	Builder BuilderFunc
}

// AllowedInMath reports whether the function may be used in math mode.
func (f *FunctionSpec) AllowedInMath() bool {
	return !f.TextOnly
}

// EnvironmentContext is passed to environment handlers.
type EnvironmentContext struct {
	Name   string
	Parser *Parser
	Token  *Token
}

type EnvironmentHandler func(ctx *EnvironmentContext, args []*ParseNode, optArgs []*ParseNode) (*ParseNode, error)

// EnvironmentSpec describes a \begin{name}...\end{name} construct.
type EnvironmentSpec struct {
	Type            NodeType
	Names           []string
	NumArgs         int
	NumOptionalArgs int
	ArgTypes        []ArgType
	Handler         EnvironmentHandler
	Builder         BuilderFunc
}

// Registry holds the tables driving the parser and the builder. It is not modified after
// NewRegistry returns, so a single registry may be shared between goroutines.
type Registry struct {
	functions    map[string]*FunctionSpec
	environments map[string]*EnvironmentSpec
	builders     map[NodeType]BuilderFunc
	macros       Macros
}

// NewRegistry creates a registry with every supported function, environment and macro.
func NewRegistry() *Registry {
	r := &Registry{
		functions:    map[string]*FunctionSpec{},
		environments: map[string]*EnvironmentSpec{},
		builders:     map[NodeType]BuilderFunc{},
		macros:       Macros{},
	}

	registerSymbolBuilders(r)
	registerMacros(r)
	registerDefinitions(r)
	registerGenFrac(r)
	registerSqrt(r)
	registerAccents(r)
	registerOperators(r)
	registerFonts(r)
	registerText(r)
	registerColor(r)
	registerStyling(r)
	registerMClass(r)
	registerDelimiters(r)
	registerSpacing(r)
	registerLinks(r)
	registerEnclose(r)
	registerArrows(r)
	registerMisc(r)
	registerArrays(r)

	return r
}

var defaultRegistry = sync.OnceValue(NewRegistry)

// DefineFunction adds a function under all its names.
func (r *Registry) DefineFunction(spec FunctionSpec) {
	s := spec
	for _, name := range spec.Names {
		r.functions[name] = &s
	}

	if spec.Type != "" && spec.Builder != nil {
		r.builders[spec.Type] = spec.Builder
	}
}

// DefineEnvironment adds an environment under all its names.
func (r *Registry) DefineEnvironment(spec EnvironmentSpec) {
	s := spec
	for _, name := range spec.Names {
		r.environments[name] = &s
	}

	if spec.Type != "" && spec.Builder != nil {
		r.builders[spec.Type] = spec.Builder
	}
}

// DefineBuilder registers a builder for node types produced without a function (symbols).
func (r *Registry) DefineBuilder(t NodeType, b BuilderFunc) {
	r.builders[t] = b
}

func (r *Registry) DefineMacro(name string, m Macro) {
	r.macros[name] = m
}

// Function looks up a function by its control sequence.
func (r *Registry) Function(name string) (*FunctionSpec, bool) {
	f, ok := r.functions[name]
	return f, ok
}

func (r *Registry) Environment(name string) (*EnvironmentSpec, bool) {
	e, ok := r.environments[name]
	return e, ok
}
