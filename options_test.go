package texmath_test

import (
	"testing"

	"github.com/eolymp/go-texmath"
)

func TestParseModes(t *testing.T) {
	strict := []struct {
		input  string
		output texmath.StrictMode
		fails  bool
	}{
		{input: "", output: texmath.StrictIgnore},
		{input: "warn", output: texmath.StrictWarn},
		{input: "ERROR", output: texmath.StrictError},
		{input: "loud", fails: true},
	}

	for _, tc := range strict {
		got, err := texmath.ParseStrictMode(tc.input)
		if (err != nil) != tc.fails {
			t.Errorf("ParseStrictMode(%q): unexpected error %v", tc.input, err)
		}

		if !tc.fails && got != tc.output {
			t.Errorf("ParseStrictMode(%q): want %q, got %q", tc.input, tc.output, got)
		}
	}

	wrap := []struct {
		input  string
		output texmath.WrapMode
		fails  bool
	}{
		{input: "", output: texmath.WrapTeX},
		{input: "=", output: texmath.WrapEquals},
		{input: "none", output: texmath.WrapNone},
		{input: "zigzag", fails: true},
	}

	for _, tc := range wrap {
		got, err := texmath.ParseWrapMode(tc.input)
		if (err != nil) != tc.fails {
			t.Errorf("ParseWrapMode(%q): unexpected error %v", tc.input, err)
		}

		if !tc.fails && got != tc.output {
			t.Errorf("ParseWrapMode(%q): want %q, got %q", tc.input, tc.output, got)
		}
	}
}

func TestNewSettingsFallsBackOnUnknownModes(t *testing.T) {
	settings := texmath.NewSettings(texmath.Options{Strict: "loud", Wrap: "zigzag"})

	if settings.Strict != texmath.StrictIgnore {
		t.Errorf("Expected ignore for unknown strict mode, got %q", settings.Strict)
	}

	if settings.Wrap != texmath.WrapTeX {
		t.Errorf("Expected tex for unknown wrap mode, got %q", settings.Wrap)
	}

	settings = texmath.NewSettings(texmath.Options{Strict: texmath.StrictError, Wrap: texmath.WrapNone})
	if settings.Strict != texmath.StrictError || settings.Wrap != texmath.WrapNone {
		t.Errorf("Known modes must be kept, got %q and %q", settings.Strict, settings.Wrap)
	}
}
