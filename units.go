package texmath

import (
	"math"
	"regexp"
	"strconv"
)

// Measurement is a number with a TeX unit, for example: 5.1cm, 6em, -3mu
type Measurement struct {
	Number float64
	Unit   string
}

func (m Measurement) String() string {
	return strconv.FormatFloat(m.Number, 'f', -1, 64) + m.Unit
}

var sizePattern = regexp.MustCompile(`([-+]?) *(\d+(?:\.\d*)?|\.\d+) *([a-z]{2})`)

// sizePrefix matches a (possibly incomplete) size written without braces
var sizePrefix = regexp.MustCompile(`^[-+]? *(?:$|\d+|\d+\.\d*|\.\d*) *[a-z]{0,2} *$`)

// ptPerUnit converts units to CSS (PostScript) points
var ptPerUnit = map[string]float64{
	"pt": 800.0 / 803,
	"pc": (12 * 800.0) / 803,
	"dd": ((1238.0 / 1157) * 800) / 803,
	"cc": ((14856.0 / 1157) * 800) / 803,
	"nd": ((685.0 / 642) * 800) / 803,
	"nc": ((1370.0 / 107) * 800) / 803,
	"sp": ((1.0 / 65536) * 800) / 803,
	"mm": 25.4 / 72,
	"cm": 2.54 / 72,
	"in": 1.0 / 72,
	"px": 96.0 / 72,
}

var validUnits = map[string]bool{
	"em": true, "ex": true, "mu": true, "pt": true, "mm": true, "cm": true, "in": true, "px": true,
	"bp": true, "pc": true, "dd": true, "cc": true, "nd": true, "nc": true, "sp": true,
}

// ValidUnit checks if unit is a supported TeX unit.
func ValidUnit(unit string) bool {
	return validUnits[unit]
}

// ParseMeasurement parses a number followed by a two letter unit, spaces between them are allowed.
func ParseMeasurement(raw string) (Measurement, bool) {
	match := sizePattern.FindStringSubmatch(raw)
	if match == nil {
		return Measurement{}, false
	}

	number, err := strconv.ParseFloat(match[1]+match[2], 64)
	if err != nil {
		return Measurement{}, false
	}

	return Measurement{Number: number, Unit: match[3]}, true
}

// emScale is the size of em in a script level relative to the text size
func emScale(level int) float64 {
	switch {
	case level <= TextStyle:
		return 1
	case level == ScriptStyle:
		return 0.7
	default:
		return 0.5
	}
}

// CalculateSize converts a measurement into em or pt (absolute CSS units are kept), capped by
// the style's maximum size.
func CalculateSize(m Measurement, style Style) (Measurement, error) {
	number := m.Number
	maxEm, maxPt := style.MaxSize[0], style.MaxSize[1]

	if maxEm < 0 && number > 0 {
		return Measurement{Number: 0, Unit: "em"}, nil
	}

	switch m.Unit {
	case "mm", "cm", "in", "px":
		if number*ptPerUnit[m.Unit] > maxPt {
			return Measurement{Number: maxPt, Unit: "pt"}, nil
		}

		return Measurement{Number: number, Unit: m.Unit}, nil
	case "em", "ex":
		// em and ex do not change size in script style
		if m.Unit == "ex" {
			number *= 0.431
		}

		number = math.Min(number/emScale(style.Level), maxEm)
		return Measurement{Number: round(number), Unit: "em"}, nil
	case "bp":
		return Measurement{Number: math.Min(number, maxPt), Unit: "pt"}, nil
	case "pt", "pc", "dd", "cc", "nd", "nc", "sp":
		number = math.Min(number*ptPerUnit[m.Unit], maxPt)
		return Measurement{Number: round(number), Unit: "pt"}, nil
	case "mu":
		number = math.Min(number/18, maxEm)
		return Measurement{Number: round(number), Unit: "em"}, nil
	default:
		return Measurement{}, newError(ErrParse, nil, "Invalid unit: '%s'", m.Unit)
	}
}

// round rounds to 4 decimal places
func round(n float64) float64 {
	return math.Round(n*10000) / 10000
}

// formatNumber prints a number without trailing zeros
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
