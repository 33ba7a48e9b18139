package texmath

const (
	DisplayStyle = iota
	TextStyle
	ScriptStyle
	ScriptScriptStyle
)

// subOrSupLevel maps a level to the level of its sub- and superscripts
var subOrSupLevel = [4]int{ScriptStyle, ScriptStyle, ScriptScriptStyle, ScriptScriptStyle}

// Style is the state threaded through the builder. It is a value: every With method returns a modified copy.
type Style struct {
	Level      int
	Color      string
	Font       string
	FontFamily string
	FontWeight string
	FontShape  string
	FontSize   float64
	MaxSize    [2]float64
}

// NewStyle creates the initial style for display or inline math.
func NewStyle(displayMode bool, maxSize [2]float64) Style {
	level := TextStyle
	if displayMode {
		level = DisplayStyle
	}

	return Style{Level: level, FontSize: 1, MaxSize: maxSize}
}

// Extend returns a copy of the style modified by fn.
func (s Style) Extend(fn func(*Style)) Style {
	fn(&s)
	return s
}

// WithLevel sets the level, clamped to the display..scriptscript range.
func (s Style) WithLevel(level int) Style {
	s.Level = clampLevel(level)
	return s
}

func clampLevel(level int) int {
	return max(DisplayStyle, min(level, ScriptScriptStyle))
}

// IncrementLevel moves one level deeper, saturating at scriptscript.
func (s Style) IncrementLevel() Style {
	s.Level = clampLevel(s.Level + 1)
	return s
}

// InSubOrSup returns the style of a sub- or superscript.
func (s Style) InSubOrSup() Style {
	s.Level = subOrSupLevel[clampLevel(s.Level)]
	return s
}

func (s Style) WithColor(color string) Style {
	s.Color = color
	return s
}

func (s Style) WithFont(font string) Style {
	s.Font = font
	return s
}

func (s Style) WithTextFontFamily(family string) Style {
	s.FontFamily = family
	s.Font = ""
	return s
}

func (s Style) WithTextFontWeight(weight string) Style {
	s.FontWeight = weight
	s.Font = ""
	return s
}

func (s Style) WithTextFontShape(shape string) Style {
	s.FontShape = shape
	s.Font = ""
	return s
}

func (s Style) WithFontSize(size float64) Style {
	s.FontSize = size
	return s
}
