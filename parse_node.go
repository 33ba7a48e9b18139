package texmath

type Mode string

const (
	ModeMath Mode = "math"
	ModeText Mode = "text"
)

type NodeType string

const (
	TypeOrdGroup       NodeType = "ordgroup"
	TypeToggle         NodeType = "toggle"
	TypeMathOrd        NodeType = "mathord"
	TypeTextOrd        NodeType = "textord"
	TypeAtom           NodeType = "atom"
	TypeSpacing        NodeType = "spacing"
	TypeOpToken        NodeType = "op-token"
	TypeAccentToken    NodeType = "accent-token"
	TypeSupSub         NodeType = "supsub"
	TypeGenFrac        NodeType = "genfrac"
	TypeInfix          NodeType = "infix"
	TypeOp             NodeType = "op"
	TypeOperatorName   NodeType = "operatorname"
	TypeSqrt           NodeType = "sqrt"
	TypeAccent         NodeType = "accent"
	TypeAccentUnder    NodeType = "accentUnder"
	TypeHorizBrace     NodeType = "horizBrace"
	TypeColor          NodeType = "color"
	TypeFont           NodeType = "font"
	TypeText           NodeType = "text"
	TypeStyling        NodeType = "styling"
	TypeSizing         NodeType = "sizing"
	TypeMClass         NodeType = "mclass"
	TypeLeftRight      NodeType = "leftright"
	TypeLeftRightRight NodeType = "leftright-right"
	TypeMiddle         NodeType = "middle"
	TypeDelimSizing    NodeType = "delimsizing"
	TypeKern           NodeType = "kern"
	TypeSize           NodeType = "size"
	TypeColorToken     NodeType = "color-token"
	TypeRaw            NodeType = "raw"
	TypeURL            NodeType = "url"
	TypeHref           NodeType = "href"
	TypeHTML           NodeType = "html"
	TypeVerb           NodeType = "verb"
	TypeArray          NodeType = "array"
	TypeCr             NodeType = "cr"
	TypeTag            NodeType = "tag"
	TypeEnclose        NodeType = "enclose"
	TypePhantom        NodeType = "phantom"
	TypeHPhantom       NodeType = "hphantom"
	TypeVPhantom       NodeType = "vphantom"
	TypeRule           NodeType = "rule"
	TypeXArrow         NodeType = "xArrow"
	TypeInternal       NodeType = "internal"
	TypeEnvironment    NodeType = "environment"
)

// atom families; symbols of these groups are parsed into TypeAtom nodes
const (
	FamilyBin   = "bin"
	FamilyClose = "close"
	FamilyInner = "inner"
	FamilyOpen  = "open"
	FamilyPunct = "punct"
	FamilyRel   = "rel"
)

// ParseNode is a node of the syntax tree produced by the parser. Type selects which of the fields are meaningful.
type ParseNode struct {
	Type NodeType
	Mode Mode
	Loc  *SourceLocation

	// symbols: mathord, textord, atom, spacing, op-token, accent-token
	Text   string
	Family string

	// generic children: ordgroup, color, font, text, styling, sizing, mclass, leftright, href, html,
	// enclose, phantoms, op with body, operatorname
	Body       []*ParseNode
	Semisimple bool

	// supsub, accents, horizontal braces, sqrt
	Base  *ParseNode
	Sup   *ParseNode
	Sub   *ParseNode
	Index *ParseNode

	// genfrac and infix
	Numer       *ParseNode
	Denom       *ParseNode
	HasBarLine  bool
	BarSize     *Measurement
	LeftDelim   string
	RightDelim  string
	ScriptLevel string
	Continued   bool
	ReplaceWith string
	Token       *Token

	// op, operatorname
	Name                  string
	Limits                bool
	AlwaysHandleSupSub    bool
	Symbol                bool
	Stack                 bool
	NeedsLeadingSpace     bool
	IsFollowedByDelimiter bool

	// accent, enclose, horizBrace, xArrow
	Label      string
	IsStretchy bool
	IsOver     bool

	// color, font, text, sizing, mclass, delimiters
	Color           string
	Font            string
	Size            int
	FontSize        float64
	Class           string
	IsCharacterBox  bool
	MustPromote     bool
	Delim           string
	Left            string
	Right           string
	RightColor      string
	BackgroundColor string
	BorderColor     string

	// kern, size, cr, rule
	Dimension Measurement
	IsBlank   bool
	NewLine   bool
	Width     *Measurement
	Height    *Measurement
	Shift     *Measurement

	// raw, url, href, verb, html
	String     string
	URL        string
	Star       bool
	Attributes map[string]string

	// array
	Rows            [][]*ParseNode
	Cols            []ColumnSpec
	RowGaps         []*Measurement
	HLinesBeforeRow [][]bool
	EnvClasses      []string
	Tags            []*ParseNode
	Leqno           bool
	ArrayStretch    float64

	// tag
	Tag []*ParseNode
}

// symbolNodeTypes are produced by parseSymbol from the symbol table
var symbolNodeTypes = map[NodeType]bool{
	TypeAtom:        true,
	TypeMathOrd:     true,
	TypeTextOrd:     true,
	TypeSpacing:     true,
	TypeOpToken:     true,
	TypeAccentToken: true,
}

// isSymbolNode reports whether the node is a single symbol
func isSymbolNode(n *ParseNode) bool {
	return n != nil && symbolNodeTypes[n.Type]
}

// normalizeArgument unwraps single-element ordgroups
func normalizeArgument(arg *ParseNode) *ParseNode {
	if arg != nil && arg.Type == TypeOrdGroup && len(arg.Body) == 1 {
		return arg.Body[0]
	}

	return arg
}

// ordArgument returns ordgroup body or the node itself as a list
func ordArgument(arg *ParseNode) []*ParseNode {
	if arg == nil {
		return nil
	}

	if arg.Type == TypeOrdGroup {
		return arg.Body
	}

	return []*ParseNode{arg}
}

// isCharacterBox reports whether the node is a single character, possibly in a group
func isCharacterBox(n *ParseNode) bool {
	base := normalizeArgument(n)
	return base != nil && (base.Type == TypeMathOrd || base.Type == TypeTextOrd || base.Type == TypeAtom)
}

// assertNodeType checks node type, returns an internal error otherwise
func assertNodeType(n *ParseNode, t NodeType) (*ParseNode, error) {
	if n == nil || n.Type != t {
		got := NodeType("nil")
		if n != nil {
			got = n.Type
		}

		return nil, newError(ErrInternal, nil, "Expected node of type %s, but got %s", t, got)
	}

	return n, nil
}
