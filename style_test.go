package texmath_test

import (
	"testing"

	"github.com/eolymp/go-texmath"
)

func TestStyleLevels(t *testing.T) {
	tt := []struct {
		name      string
		level     int
		increment int
		script    int
	}{
		{name: "display", level: texmath.DisplayStyle, increment: texmath.TextStyle, script: texmath.ScriptStyle},
		{name: "text", level: texmath.TextStyle, increment: texmath.ScriptStyle, script: texmath.ScriptStyle},
		{name: "script", level: texmath.ScriptStyle, increment: texmath.ScriptScriptStyle, script: texmath.ScriptScriptStyle},
		{name: "scriptscript", level: texmath.ScriptScriptStyle, increment: texmath.ScriptScriptStyle, script: texmath.ScriptScriptStyle},
		{name: "above range", level: 7, increment: texmath.ScriptScriptStyle, script: texmath.ScriptScriptStyle},
		{name: "below range", level: -2, increment: texmath.TextStyle, script: texmath.ScriptStyle},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			style := texmath.NewStyle(false, [2]float64{}).WithLevel(tc.level)

			if got := style.IncrementLevel().Level; got != tc.increment {
				t.Errorf("IncrementLevel: want %d, got %d", tc.increment, got)
			}

			if got := style.InSubOrSup().Level; got != tc.script {
				t.Errorf("InSubOrSup: want %d, got %d", tc.script, got)
			}
		})
	}
}

func TestStyleIsCopied(t *testing.T) {
	base := texmath.NewStyle(true, [2]float64{})
	colored := base.WithColor("red").WithLevel(texmath.ScriptStyle)

	if base.Color != "" || base.Level != texmath.DisplayStyle {
		t.Errorf("Base style was modified: %+v", base)
	}

	if colored.Color != "red" || colored.Level != texmath.ScriptStyle {
		t.Errorf("Derived style does not match: %+v", colored)
	}

	// an out of range level set directly on the struct
	raw := texmath.Style{Level: 9}
	if got := raw.InSubOrSup().Level; got != texmath.ScriptScriptStyle {
		t.Errorf("Expected scriptscript for out of range level, got %d", got)
	}
}
