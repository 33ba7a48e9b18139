package texmath

// stretchyCodePoint maps commands drawing wide accents, braces and extensible arrows to the
// character a renderer stretches
var stretchyCodePoint = map[string]string{
	"widehat":             "^",
	"widecheck":           "ˇ",
	"widetilde":           "~",
	"wideparen":           "⏜",
	"utilde":              "~",
	"overleftarrow":       "←",
	"underleftarrow":      "←",
	"xleftarrow":          "←",
	"overrightarrow":      "→",
	"underrightarrow":     "→",
	"xrightarrow":         "→",
	"overbrace":           "⏞",
	"underbrace":          "⏟",
	"overbracket":         "⎴",
	"underbracket":        "⎵",
	"overgroup":           "⏠",
	"overparen":           "⏜",
	"undergroup":          "⏡",
	"underparen":          "⏝",
	"overline":            "‾",
	"underline":           "‾",
	"overleftrightarrow":  "↔",
	"underleftrightarrow": "↔",
	"xleftrightarrow":     "↔",
	"Overrightarrow":      "⇒",
	"xRightarrow":         "⇒",
	"overleftharpoon":     "↼",
	"xleftharpoonup":      "↼",
	"overrightharpoon":    "⇀",
	"xrightharpoonup":     "⇀",
	"xLeftarrow":          "⇐",
	"xLeftrightarrow":     "⇔",
	"xhookleftarrow":      "↩",
	"xhookrightarrow":     "↪",
	"xmapsto":             "↦",
	"xrightharpoondown":   "⇁",
	"xleftharpoondown":    "↽",
	"xrightleftharpoons":  "⇌",
	"xleftrightharpoons":  "⇋",
	"xtwoheadleftarrow":   "↞",
	"xtwoheadrightarrow":  "↠",
	"xlongequal":          "=",
	"xtofrom":             "⇄",
	"xleftrightarrows":    "⇄",
	"xrightleftarrows":    "⇄",
}

// stretchyOperator creates a stretchy mo for a command like \overbrace
func stretchyOperator(label string) *Element {
	ch := stretchyCodePoint[label[1:]]
	mo := NewElement("mo", NewText(ch))
	mo.SetAttribute("stretchy", "true")
	return mo
}
