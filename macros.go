package texmath

import (
	"strconv"
	"strings"
)

// tagMacro holds the equation tag set by \tag
const tagMacro = "\\df@tag"

var digitToNumber = map[string]int{
	"0": 0, "1": 1, "2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9,
	"a": 10, "A": 10, "b": 11, "B": 11, "c": 12, "C": 12, "d": 13, "D": 13, "e": 14, "E": 14, "f": 15, "F": 15,
}

// dotsByToken selects the flavour of \dots from the following token
var dotsByToken = map[string]string{
	",":                    "\\dotsc",
	"\\not":                "\\dotsb",
	"+":                    "\\dotsb",
	"=":                    "\\dotsb",
	"<":                    "\\dotsb",
	">":                    "\\dotsb",
	"-":                    "\\dotsb",
	"*":                    "\\dotsb",
	":":                    "\\dotsb",
	"\\DOTSB":              "\\dotsb",
	"\\coprod":             "\\dotsb",
	"\\bigvee":             "\\dotsb",
	"\\bigwedge":           "\\dotsb",
	"\\biguplus":           "\\dotsb",
	"\\bigcap":             "\\dotsb",
	"\\bigcup":             "\\dotsb",
	"\\prod":               "\\dotsb",
	"\\sum":                "\\dotsb",
	"\\bigotimes":          "\\dotsb",
	"\\bigoplus":           "\\dotsb",
	"\\bigodot":            "\\dotsb",
	"\\bigsqcup":           "\\dotsb",
	"\\longrightarrow":     "\\dotsb",
	"\\Longrightarrow":     "\\dotsb",
	"\\longleftarrow":      "\\dotsb",
	"\\Longleftarrow":      "\\dotsb",
	"\\longleftrightarrow": "\\dotsb",
	"\\Longleftrightarrow": "\\dotsb",
	"\\mapsto":             "\\dotsb",
	"\\longmapsto":         "\\dotsb",
	"\\hookrightarrow":     "\\dotsb",
	"\\doteq":              "\\dotsb",
	"\\mathbin":            "\\dotsb",
	"\\mathrel":            "\\dotsb",
	"\\xrightarrow":        "\\dotsb",
	"\\xleftarrow":         "\\dotsb",
	"\\DOTSI":              "\\dotsi",
	"\\int":                "\\dotsi",
	"\\oint":               "\\dotsi",
	"\\iint":               "\\dotsi",
	"\\iiint":              "\\dotsi",
	"\\DOTSX":              "\\dotsx",
}

// spaceAfterDots are tokens before which dots get a thin space
var spaceAfterDots = map[string]bool{
	")": true, "]": true, "\\rbrack": true, "\\}": true, "\\rbrace": true, "\\rangle": true,
	"\\rceil": true, "\\rfloor": true, "\\rgroup": true, "\\rmoustache": true, "\\right": true,
	"\\bigr": true, "\\biggr": true, "\\Bigr": true, "\\Biggr": true, "$": true, ";": true, ".": true, ",": true,
}

// textMacros are plain replacement macros
var textMacros = map[string]string{
	"\\bgroup":    "{",
	"\\egroup":    "}",
	"~":           "\\nobreakspace",
	"\\lq":        "`",
	"\\rq":        "'",
	"\\DOTSB":     "\\relax",
	"\\DOTSI":     "\\relax",
	"\\DOTSX":     "\\relax",
	"\\iff":       "\\DOTSB\\;\\Longleftrightarrow\\;",
	"\\implies":   "\\DOTSB\\;\\Longrightarrow\\;",
	"\\impliedby": "\\DOTSB\\;\\Longleftarrow\\;",
	"\\dotsi":     "\\!\\cdots",
	"\\dotsx":     "\\ldots\\,",

	"\\tmspace":       "\\TextOrMath{\\kern#1#3}{\\mskip#1#2}\\relax",
	"\\,":             "\\tmspace+{3mu}{.1667em}",
	"\\thinspace":     "\\,",
	"\\>":             "\\mskip{4mu}",
	"\\:":             "\\tmspace+{4mu}{.2222em}",
	"\\medspace":      "\\:",
	"\\;":             "\\tmspace+{5mu}{.2777em}",
	"\\thickspace":    "\\;",
	"\\!":             "\\tmspace-{3mu}{.1667em}",
	"\\negthinspace":  "\\!",
	"\\negmedspace":   "\\tmspace-{4mu}{.2222em}",
	"\\negthickspace": "\\tmspace-{5mu}{.277em}",
	"\\enspace":       "\\kern.5em ",
	"\\enskip":        "\\hskip.5em\\relax",
	"\\quad":          "\\hskip1em\\relax",
	"\\qquad":         "\\hskip2em\\relax",
	"\\hspace":        "\\@ifstar\\@hspacer\\@hspace",
	"\\@hspace":       "\\hskip #1\\relax",
	"\\@hspacer":      "\\rule{0pt}{0pt}\\hskip #1\\relax",

	"\\pmod":   "\\pod{{\\rm mod}\\mkern6mu#1}",
	"\\pod":    "\\allowbreak\\mkern8mu(#1)",
	"\\mod":    "\\allowbreak\\mkern18mu{\\rm mod}\\,\\,#1",
	"\\bmod":   "\\mathbin{\\rm mod}",
	"\\argmin": "\\DOTSB\\operatorname*{arg\\,min}",
	"\\argmax": "\\DOTSB\\operatorname*{arg\\,max}",

	"\\operatorname": "\\@ifstar\\operatornamewithlimits\\operatorname@",

	"\\TeX":   "\\textrm{T\\kern-.1667emE\\kern-.125emX}",
	"\\LaTeX": "\\textrm{L\\kern-.35emA\\kern-.15emT\\kern-.1667emE\\kern-.125emX}",

	"\\cr":        "\\\\\\relax",
	"\\newline":   "\\\\\\relax",
	"\\mathstrut": "\\vphantom{(}",
	"\\boxed":     "\\fbox{$\\displaystyle{#1}$}",
	"\\substack":  "\\begin{subarray}{c}#1\\end{subarray}",
	"\\stackrel":  "\\mathrel{\\overset{#1}{#2}}",

	"\\R": "\\mathbb{R}",
	"\\N": "\\mathbb{N}",
	"\\Z": "\\mathbb{Z}",
	"\\Q": "\\mathbb{Q}",
	"\\C": "\\mathbb{C}",

	"\\tag":       "\\@ifstar\\tag@literal\\tag@paren",
	"\\tag@paren": "\\tag@literal{({#1})}",
	"\\nonumber":  "\\gdef\\@eqnsw{0}",
	"\\notag":     "\\nonumber",

	"\\@ifstar": "\\@ifnextchar *{\\@firstoftwo{#1}}",
}

func registerMacros(r *Registry) {
	for name, body := range textMacros {
		r.DefineMacro(name, MacroText(body))
	}

	r.DefineMacro("\\noexpand", MacroFunc(func(e *MacroExpander) (Macro, error) {
		t, err := e.PopToken()
		if err != nil {
			return nil, err
		}

		if e.IsExpandable(t.Text) {
			t = t.clone()
			t.Noexpand = true
			t.TreatAsRelax = true
		}

		return &MacroExpansion{Tokens: []*Token{t}}, nil
	}))

	r.DefineMacro("\\expandafter", MacroFunc(func(e *MacroExpander) (Macro, error) {
		t, err := e.PopToken()
		if err != nil {
			return nil, err
		}

		if _, _, err := e.ExpandOnce(true); err != nil {
			return nil, err
		}

		return &MacroExpansion{Tokens: []*Token{t}}, nil
	}))

	r.DefineMacro("\\@firstoftwo", MacroFunc(func(e *MacroExpander) (Macro, error) {
		args, err := e.ConsumeArgs(2, nil)
		if err != nil {
			return nil, err
		}

		return &MacroExpansion{Tokens: args[0]}, nil
	}))

	r.DefineMacro("\\@secondoftwo", MacroFunc(func(e *MacroExpander) (Macro, error) {
		args, err := e.ConsumeArgs(2, nil)
		if err != nil {
			return nil, err
		}

		return &MacroExpansion{Tokens: args[1]}, nil
	}))

	// \@ifnextchar{symbol}{if}{else} compares the symbol with the next non-space token
	r.DefineMacro("\\@ifnextchar", MacroFunc(func(e *MacroExpander) (Macro, error) {
		args, err := e.ConsumeArgs(3, nil)
		if err != nil {
			return nil, err
		}

		if err := e.ConsumeSpaces(); err != nil {
			return nil, err
		}

		next, err := e.Future()
		if err != nil {
			return nil, err
		}

		if len(args[0]) == 1 && args[0][0].Text == next.Text {
			return &MacroExpansion{Tokens: args[1]}, nil
		}

		return &MacroExpansion{Tokens: args[2]}, nil
	}))

	r.DefineMacro("\\TextOrMath", MacroFunc(func(e *MacroExpander) (Macro, error) {
		args, err := e.ConsumeArgs(2, nil)
		if err != nil {
			return nil, err
		}

		if e.Mode() == ModeText {
			return &MacroExpansion{Tokens: args[0]}, nil
		}

		return &MacroExpansion{Tokens: args[1]}, nil
	}))

	r.DefineMacro("\\char", MacroFunc(expandChar))
	r.DefineMacro("\\dots", MacroFunc(expandDots))

	r.DefineMacro("\\dotsc", MacroFunc(func(e *MacroExpander) (Macro, error) {
		next, err := e.Future()
		if err != nil {
			return nil, err
		}

		if spaceAfterDots[next.Text] && next.Text != "," {
			return MacroText("\\ldots\\,"), nil
		}

		return MacroText("\\ldots"), nil
	}))

	cdots := MacroFunc(func(e *MacroExpander) (Macro, error) {
		next, err := e.Future()
		if err != nil {
			return nil, err
		}

		if spaceAfterDots[next.Text] {
			return MacroText("\\cdots\\,"), nil
		}

		return MacroText("\\cdots"), nil
	})
	r.DefineMacro("\\dotsb", cdots)
	r.DefineMacro("\\dotsm", cdots)

	r.DefineMacro("\\dotso", MacroFunc(func(e *MacroExpander) (Macro, error) {
		next, err := e.Future()
		if err != nil {
			return nil, err
		}

		if spaceAfterDots[next.Text] {
			return MacroText("\\ldots\\,"), nil
		}

		return MacroText("\\ldots"), nil
	}))

	r.DefineMacro("\\tag@literal", MacroFunc(func(e *MacroExpander) (Macro, error) {
		if e.Macros().Has(tagMacro) {
			tok, _ := e.Future()
			return nil, errorAt(ErrParse, tok, "Multiple \\tag")
		}

		return MacroText("\\gdef\\df@tag{\\text{#1}}"), nil
	}))
}

// expandChar implements \char with decimal, 'octal, "hex and `character forms
func expandChar(e *MacroExpander) (Macro, error) {
	tok, err := e.PopToken()
	if err != nil {
		return nil, err
	}

	base := 10
	number := 0

	switch tok.Text {
	case "'":
		base = 8
	case "\"":
		base = 16
	case "`":
		if tok, err = e.PopToken(); err != nil {
			return nil, err
		}

		if tok.Text == "EOF" {
			return nil, errorAt(ErrExpansion, tok, "\\char` missing argument")
		}

		text := []rune(tok.Text)
		if text[0] == '\\' && len(text) > 1 {
			number = int(text[1])
		} else {
			number = int(text[0])
		}

		return MacroText("\\@char{" + strconv.Itoa(number) + "}"), nil
	}

	if base != 10 {
		if tok, err = e.PopToken(); err != nil {
			return nil, err
		}
	}

	digit, ok := digitToNumber[tok.Text]
	if !ok || digit >= base {
		return nil, errorAt(ErrExpansion, tok, "Invalid base-%d digit %s", base, tok.Text)
	}

	number = digit
	for {
		next, err := e.Future()
		if err != nil {
			return nil, err
		}

		digit, ok := digitToNumber[next.Text]
		if !ok || digit >= base {
			break
		}

		number = number*base + digit
		if _, err := e.PopToken(); err != nil {
			return nil, err
		}
	}

	return MacroText("\\@char{" + strconv.Itoa(number) + "}"), nil
}

// expandDots picks \dotsb, \dotsc, \dotsi, \dotso or \dotsx by the next token
func expandDots(e *MacroExpander) (Macro, error) {
	next, err := e.ExpandAfterFuture()
	if err != nil {
		return nil, err
	}

	if dots, ok := dotsByToken[next.Text]; ok {
		return MacroText(dots), nil
	}

	if strings.HasPrefix(next.Text, "\\not") {
		return MacroText("\\dotsb"), nil
	}

	if s, ok := symbols[ModeMath][next.Text]; ok && (s.Group == FamilyBin || s.Group == FamilyRel) {
		return MacroText("\\dotsb"), nil
	}

	return MacroText("\\dotso"), nil
}
