package texmath

import "strings"

// Symbol is an entry of the symbol table. Group is a node type (mathord, textord, spacing,
// accent-token, op-token) or an atom family.
type Symbol struct {
	Group   string
	Replace string
}

var symbols = map[Mode]map[string]Symbol{
	ModeMath: {},
	ModeText: {},
}

var atomFamilies = map[string]bool{
	FamilyBin:   true,
	FamilyClose: true,
	FamilyInner: true,
	FamilyOpen:  true,
	FamilyPunct: true,
	FamilyRel:   true,
}

const (
	groupMathOrd = string(TypeMathOrd)
	groupTextOrd = string(TypeTextOrd)
	groupSpacing = string(TypeSpacing)
	groupAccent  = string(TypeAccentToken)
	groupOp      = string(TypeOpToken)
)

// defineSymbol adds name to the table, with unicode set the replacement character is accepted as input too
func defineSymbol(mode Mode, group, replace, name string, unicode bool) {
	symbols[mode][name] = Symbol{Group: group, Replace: replace}
	if unicode && replace != "" {
		symbols[mode][replace] = Symbol{Group: group, Replace: replace}
	}
}

// defineSymbols defines pairs of (replacement, name) in one group
func defineSymbols(mode Mode, group string, unicode bool, pairs ...string) {
	for i := 0; i+1 < len(pairs); i += 2 {
		defineSymbol(mode, group, pairs[i], pairs[i+1], unicode)
	}
}

func init() {
	// relations
	defineSymbols(ModeMath, FamilyRel, true,
		"≡", "\\equiv",
		"≺", "\\prec",
		"≻", "\\succ",
		"∼", "\\sim",
		"⟂", "\\perp",
		"⪯", "\\preceq",
		"⪰", "\\succeq",
		"≃", "\\simeq",
		"∣", "\\mid",
		"≪", "\\ll",
		"≫", "\\gg",
		"≍", "\\asymp",
		"∥", "\\parallel",
		"⋈", "\\bowtie",
		"⌣", "\\smile",
		"⊑", "\\sqsubseteq",
		"⊒", "\\sqsupseteq",
		"≐", "\\doteq",
		"⌢", "\\frown",
		"∋", "\\ni",
		"∝", "\\propto",
		"⊢", "\\vdash",
		"⊣", "\\dashv",
		"⊨", "\\models",
		"≤", "\\leq",
		"≥", "\\geq",
		"≠", "\\neq",
		"≈", "\\approx",
		"≅", "\\cong",
		"⊂", "\\subset",
		"⊃", "\\supset",
		"⊆", "\\subseteq",
		"⊇", "\\supseteq",
		"⊊", "\\subsetneq",
		"⊋", "\\supsetneq",
		"∈", "\\in",
		"∉", "\\notin",
		"←", "\\leftarrow",
		"→", "\\rightarrow",
		"⇐", "\\Leftarrow",
		"⇒", "\\Rightarrow",
		"↔", "\\leftrightarrow",
		"⇔", "\\Leftrightarrow",
		"⟵", "\\longleftarrow",
		"⟶", "\\longrightarrow",
		"⟸", "\\Longleftarrow",
		"⟹", "\\Longrightarrow",
		"⟷", "\\longleftrightarrow",
		"⟺", "\\Longleftrightarrow",
		"↦", "\\mapsto",
		"⟼", "\\longmapsto",
		"↪", "\\hookrightarrow",
		"↩", "\\hookleftarrow",
		"↑", "\\uparrow",
		"↓", "\\downarrow",
		"⇑", "\\Uparrow",
		"⇓", "\\Downarrow",
		"↕", "\\updownarrow",
		"⇕", "\\Updownarrow",
		"↗", "\\nearrow",
		"↘", "\\searrow",
		"↙", "\\swarrow",
		"↖", "\\nwarrow",
		"⇝", "\\leadsto",
		"⇌", "\\rightleftharpoons",
		"↼", "\\leftharpoonup",
		"↽", "\\leftharpoondown",
		"⇀", "\\rightharpoonup",
		"⇁", "\\rightharpoondown",
		"≔", "\\coloneqq",
		"⩽", "\\leqslant",
		"⩾", "\\geqslant",
		"≲", "\\lesssim",
		"≳", "\\gtrsim",
		"≰", "\\nleq",
		"≱", "\\ngeq",
		"≮", "\\nless",
		"≯", "\\ngtr",
		"⊈", "\\nsubseteq",
		"⊉", "\\nsupseteq",
		"⊩", "\\Vdash",
		"∴", "\\therefore",
		"∵", "\\because",
		"≜", "\\triangleq",
		"≇", "\\ncong",
		"≁", "\\nsim",
		"≂", "\\eqsim",
		"⊲", "\\lhd",
		"⊳", "\\rhd",
		"≬", "\\between",
	)
	defineSymbols(ModeMath, FamilyRel, false,
		"⊨", "\\vDash",
		"≤", "\\le",
		"≥", "\\ge",
		"≠", "\\ne",
		"←", "\\gets",
		"→", "\\to",
		"∋", "\\owns",
	)
	defineSymbols(ModeMath, FamilyRel, false,
		"=", "=",
		"<", "<",
		">", ">",
		":", ":",
	)

	// binary operators
	defineSymbols(ModeMath, FamilyBin, true,
		"±", "\\pm",
		"∓", "\\mp",
		"×", "\\times",
		"÷", "\\div",
		"⋅", "\\cdot",
		"∗", "\\ast",
		"⋆", "\\star",
		"∘", "\\circ",
		"∙", "\\bullet",
		"∩", "\\cap",
		"∪", "\\cup",
		"⊎", "\\uplus",
		"⊓", "\\sqcap",
		"⊔", "\\sqcup",
		"∨", "\\vee",
		"∧", "\\wedge",
		"∖", "\\setminus",
		"≀", "\\wr",
		"⋄", "\\diamond",
		"△", "\\bigtriangleup",
		"▽", "\\bigtriangledown",
		"◃", "\\triangleleft",
		"▹", "\\triangleright",
		"⊕", "\\oplus",
		"⊖", "\\ominus",
		"⊗", "\\otimes",
		"⊘", "\\oslash",
		"⊙", "\\odot",
		"◯", "\\bigcirc",
		"†", "\\dagger",
		"‡", "\\ddagger",
		"⨿", "\\amalg",
		"⊻", "\\veebar",
		"⊼", "\\barwedge",
		"−", "\\minus",
	)
	defineSymbols(ModeMath, FamilyBin, false,
		"∨", "\\lor",
		"∧", "\\land",
		"+", "+",
		"−", "-",
		"∗", "*",
	)

	// delimiters
	defineSymbols(ModeMath, FamilyOpen, true,
		"⟨", "\\langle",
		"⌊", "\\lfloor",
		"⌈", "\\lceil",
		"⟮", "\\lgroup",
		"⎰", "\\lmoustache",
		"⟦", "\\llbracket",
		"⦃", "\\lBrace",
	)
	defineSymbols(ModeMath, FamilyOpen, false,
		"(", "(",
		"[", "[",
		"[", "\\lbrack",
		"{", "\\{",
		"{", "\\lbrace",
		"|", "\\lvert",
		"‖", "\\lVert",
	)
	defineSymbols(ModeMath, FamilyClose, true,
		"⟩", "\\rangle",
		"⌋", "\\rfloor",
		"⌉", "\\rceil",
		"⟯", "\\rgroup",
		"⎱", "\\rmoustache",
		"⟧", "\\rrbracket",
		"⦄", "\\rBrace",
	)
	defineSymbols(ModeMath, FamilyClose, false,
		")", ")",
		"]", "]",
		"]", "\\rbrack",
		"}", "\\}",
		"}", "\\rbrace",
		"|", "\\rvert",
		"‖", "\\rVert",
		"!", "!",
		"?", "?",
	)

	defineSymbols(ModeMath, FamilyPunct, false,
		",", ",",
		";", ";",
		":", "\\colon",
		".", "\\ldotp",
		"⋅", "\\cdotp",
	)

	defineSymbols(ModeMath, FamilyInner, true,
		"…", "\\ldots",
		"⋯", "\\cdots",
		"⋱", "\\ddots",
	)
	defineSymbols(ModeMath, FamilyInner, false,
		"…", "\\mathellipsis",
	)
	defineSymbols(ModeMath, groupTextOrd, true,
		"⋮", "\\vdots",
	)

	// greek letters
	defineSymbols(ModeMath, groupMathOrd, true,
		"α", "\\alpha",
		"β", "\\beta",
		"γ", "\\gamma",
		"δ", "\\delta",
		"ϵ", "\\epsilon",
		"ζ", "\\zeta",
		"η", "\\eta",
		"θ", "\\theta",
		"ι", "\\iota",
		"κ", "\\kappa",
		"λ", "\\lambda",
		"μ", "\\mu",
		"ν", "\\nu",
		"ξ", "\\xi",
		"ο", "\\omicron",
		"π", "\\pi",
		"ρ", "\\rho",
		"σ", "\\sigma",
		"τ", "\\tau",
		"υ", "\\upsilon",
		"ϕ", "\\phi",
		"χ", "\\chi",
		"ψ", "\\psi",
		"ω", "\\omega",
		"ε", "\\varepsilon",
		"ϑ", "\\vartheta",
		"ϖ", "\\varpi",
		"ϱ", "\\varrho",
		"ς", "\\varsigma",
		"φ", "\\varphi",
		"ϝ", "\\digamma",
		"Γ", "\\Gamma",
		"Δ", "\\Delta",
		"Θ", "\\Theta",
		"Λ", "\\Lambda",
		"Ξ", "\\Xi",
		"Π", "\\Pi",
		"Σ", "\\Sigma",
		"Υ", "\\Upsilon",
		"Φ", "\\Phi",
		"Ψ", "\\Psi",
		"Ω", "\\Omega",
		"ı", "\\imath",
		"ȷ", "\\jmath",
		"ℓ", "\\ell",
		"ℏ", "\\hbar",
		"℘", "\\wp",
		"ℵ", "\\aleph",
		"ℶ", "\\beth",
		"ℷ", "\\gimel",
		"∂", "\\partial",
	)
	defineSymbols(ModeMath, groupMathOrd, false,
		"ℜ", "\\Re",
		"ℑ", "\\Im",
	)

	defineSymbols(ModeMath, groupTextOrd, true,
		"∞", "\\infty",
		"∇", "\\nabla",
		"∅", "\\emptyset",
		"⌀", "\\varnothing",
		"∀", "\\forall",
		"∃", "\\exists",
		"∄", "\\nexists",
		"¬", "\\neg",
		"⊤", "\\top",
		"⊥", "\\bot",
		"∠", "\\angle",
		"△", "\\triangle",
		"√", "\\surd",
		"′", "\\prime",
		"‵", "\\backprime",
		"♣", "\\clubsuit",
		"♢", "\\diamondsuit",
		"♡", "\\heartsuit",
		"♠", "\\spadesuit",
		"♭", "\\flat",
		"♮", "\\natural",
		"♯", "\\sharp",
		"✓", "\\checkmark",
		"°", "\\degree",
		"§", "\\S",
		"¶", "\\P",
		"©", "\\copyright",
		"£", "\\pounds",
		"¥", "\\yen",
		"★", "\\bigstar",
		"□", "\\square",
		"■", "\\blacksquare",
		"℧", "\\mho",
		"∁", "\\complement",
		"╱", "\\diagup",
		"╲", "\\diagdown",
	)
	defineSymbols(ModeMath, groupTextOrd, false,
		"¬", "\\lnot",
		"\\", "\\backslash",
		"|", "\\vert",
		"|", "|",
		"‖", "\\Vert",
		"‖", "\\|",
		"#", "\\#",
		"&", "\\&",
		"$", "\\$",
		"%", "\\%",
		"_", "\\_",
		"$", "\\mathdollar",
		"†", "\\dag",
		"‡", "\\ddag",
		"/", "/",
		"@", "@",
		".", ".",
		"\"", "\"",
		"'", "'",
	)

	// ascii letters and digits
	for _, r := range "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ" {
		ch := string(r)
		defineSymbol(ModeMath, groupMathOrd, ch, ch, false)
		defineSymbol(ModeText, groupTextOrd, ch, ch, false)
	}

	for _, r := range "0123456789" {
		ch := string(r)
		defineSymbol(ModeMath, groupTextOrd, ch, ch, false)
		defineSymbol(ModeText, groupTextOrd, ch, ch, false)
	}

	// text mode
	for _, r := range "!\"#$&()*+,-./:;<=>?@[]|'`" {
		ch := string(r)
		defineSymbol(ModeText, groupTextOrd, ch, ch, false)
	}

	defineSymbols(ModeText, groupTextOrd, false,
		"#", "\\#",
		"&", "\\&",
		"$", "\\$",
		"%", "\\%",
		"_", "\\_",
		"{", "\\{",
		"}", "\\}",
		"{", "\\textbraceleft",
		"}", "\\textbraceright",
		"\\", "\\textbackslash",
		"~", "\\textasciitilde",
		"^", "\\textasciicircum",
		"|", "\\textbar",
		"<", "\\textless",
		">", "\\textgreater",
		"–", "--",
		"—", "---",
		"“", "``",
		"”", "''",
		"‘", "`",
		"’", "'",
		"–", "\\textendash",
		"—", "\\textemdash",
		"‘", "\\textquoteleft",
		"’", "\\textquoteright",
		"“", "\\textquotedblleft",
		"”", "\\textquotedblright",
		"…", "\\ldots",
		"…", "\\textellipsis",
		"†", "\\dag",
		"‡", "\\ddag",
		"†", "\\textdagger",
		"‡", "\\textdaggerdbl",
		"§", "\\S",
		"¶", "\\P",
		"©", "\\copyright",
		"£", "\\pounds",
		"°", "\\degree",
		"°", "\\textdegree",
		"•", "\\textbullet",
		"ı", "\\i",
		"ȷ", "\\j",
		"ß", "\\ss",
		"æ", "\\ae",
		"Æ", "\\AE",
		"œ", "\\oe",
		"Œ", "\\OE",
		"ø", "\\o",
		"Ø", "\\O",
		"å", "\\aa",
		"Å", "\\AA",
		"␣", "\\textvisiblespace",
	)

	// large operators are functions, the table provides their characters
	defineSymbols(ModeMath, groupOp, true,
		"∏", "\\prod",
		"∐", "\\coprod",
		"∑", "\\sum",
		"⋀", "\\bigwedge",
		"⋁", "\\bigvee",
		"⋂", "\\bigcap",
		"⋃", "\\bigcup",
		"⨀", "\\bigodot",
		"⨁", "\\bigoplus",
		"⨂", "\\bigotimes",
		"⨄", "\\biguplus",
		"⨆", "\\bigsqcup",
		"⨅", "\\bigsqcap",
		"⨉", "\\bigtimes",
		"∫", "\\int",
		"∬", "\\iint",
		"∭", "\\iiint",
		"⨌", "\\iiiint",
		"∮", "\\oint",
		"∯", "\\oiint",
		"∰", "\\oiiint",
		"∱", "\\intclockwise",
		"∲", "\\varointclockwise",
		"⨏", "\\fint",
	)
	defineSymbols(ModeMath, groupOp, false,
		"∫", "\\intop",
		"∫", "\\smallint",
	)

	// math accents
	defineSymbols(ModeMath, groupAccent, false,
		"´", "\\acute",
		"`", "\\grave",
		"¨", "\\ddot",
		"~", "\\tilde",
		"‾", "\\bar",
		"˘", "\\breve",
		"ˇ", "\\check",
		"^", "\\hat",
		"→", "\\vec",
		"˙", "\\dot",
		"˚", "\\mathring",
	)

	// text accents
	defineSymbols(ModeText, groupAccent, false,
		"ˊ", "\\'",
		"ˋ", "\\`",
		"ˆ", "\\^",
		"˜", "\\~",
		"ˉ", "\\=",
		"˘", "\\u",
		"˙", "\\.",
		"¸", "\\c",
		"˚", "\\r",
		"ˇ", "\\v",
		"¨", "\\\"",
		"˝", "\\H",
	)

	// spacing
	for _, mode := range []Mode{ModeMath, ModeText} {
		defineSymbols(mode, groupSpacing, false,
			"\u00a0", "\\ ",
			"\u00a0", " ",
			"\u00a0", "\\space",
			"\u00a0", "\\nobreakspace",
			"", "\\nobreak",
			"", "\\allowbreak",
		)
	}
}

// ligatures are replaced in text mode once the expression is parsed
var ligatures = map[string]string{
	"--":  "–",
	"---": "—",
	"``":  "“",
	"''":  "”",
}

// unicodeAccents maps combining marks to accent commands per mode
var unicodeAccents = map[rune][2]string{
	'\u0301': {"\\acute", "\\'"},
	'\u0300': {"\\grave", "\\`"},
	'\u0308': {"\\ddot", "\\\""},
	'\u0303': {"\\tilde", "\\~"},
	'\u0304': {"\\bar", "\\="},
	'\u0306': {"\\breve", "\\u"},
	'\u030c': {"\\check", "\\v"},
	'\u0302': {"\\hat", "\\^"},
	'\u0307': {"\\dot", "\\."},
	'\u030a': {"\\mathring", "\\r"},
	'\u030b': {"", "\\H"},
	'\u0327': {"", "\\c"},
}

// unicodeSubscripts are subscript characters folded into \_ groups
var unicodeSubscripts = map[string]string{
	"₊": "+", "₋": "-", "₌": "=", "₍": "(", "₎": ")",
	"₀": "0", "₁": "1", "₂": "2", "₃": "3", "₄": "4", "₅": "5", "₆": "6", "₇": "7", "₈": "8", "₉": "9",
	"ₐ": "a", "ₑ": "e", "ₕ": "h", "ᵢ": "i", "ⱼ": "j", "ₖ": "k", "ₗ": "l", "ₘ": "m", "ₙ": "n",
	"ₒ": "o", "ₚ": "p", "ᵣ": "r", "ₛ": "s", "ₜ": "t", "ᵤ": "u", "ᵥ": "v", "ₓ": "x",
	"ᵦ": "β", "ᵧ": "γ", "ᵨ": "ρ", "ᵩ": "ϕ", "ᵪ": "χ",
}

// unicodeSuperscripts are superscript characters folded into ^ groups
var unicodeSuperscripts = map[string]string{
	"⁺": "+", "⁻": "-", "⁼": "=", "⁽": "(", "⁾": ")",
	"⁰": "0", "¹": "1", "²": "2", "³": "3", "⁴": "4", "⁵": "5", "⁶": "6", "⁷": "7", "⁸": "8", "⁹": "9",
	"ᴬ": "A", "ᴮ": "B", "ᴰ": "D", "ᴱ": "E", "ᴳ": "G", "ᴴ": "H", "ᴵ": "I", "ᴶ": "J", "ᴷ": "K", "ᴸ": "L",
	"ᴹ": "M", "ᴺ": "N", "ᴼ": "O", "ᴾ": "P", "ᴿ": "R", "ᵀ": "T", "ᵁ": "U", "ⱽ": "V", "ᵂ": "W",
	"ᵃ": "a", "ᵇ": "b", "ᶜ": "c", "ᵈ": "d", "ᵉ": "e", "ᶠ": "f", "ᵍ": "g", "ʰ": "h", "ⁱ": "i", "ʲ": "j",
	"ᵏ": "k", "ˡ": "l", "ᵐ": "m", "ⁿ": "n", "ᵒ": "o", "ᵖ": "p", "ʳ": "r", "ˢ": "s", "ᵗ": "t", "ᵘ": "u",
	"ᵛ": "v", "ʷ": "w", "ˣ": "x", "ʸ": "y", "ᶻ": "z",
	"ᵝ": "β", "ᵞ": "γ", "ᵟ": "δ", "ᵠ": "ϕ", "ᵡ": "χ", "ᶿ": "θ",
}

// lookupSymbol returns the symbol defined for text in mode
func lookupSymbol(mode Mode, text string) (Symbol, bool) {
	s, ok := symbols[mode][text]
	return s, ok
}

// isUpperGreek reports whether text is an upright-by-default capital greek letter
func isUpperGreek(text string) bool {
	r := []rune(text)
	return len(r) == 1 && r[0] >= 'Α' && r[0] <= 'Ω'
}

// isDigits reports whether text consists of ascii digits only
func isDigits(text string) bool {
	return text != "" && strings.Trim(text, "0123456789") == ""
}
