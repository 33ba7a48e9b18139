package texmath_test

import (
	"math"
	"testing"

	"github.com/eolymp/go-texmath"
	"github.com/google/go-cmp/cmp"
)

func TestParseMeasurement(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		output texmath.Measurement
	}{
		{name: "integer", input: "5cm", output: texmath.Measurement{Number: 5, Unit: "cm"}},
		{name: "fraction", input: "1.5em", output: texmath.Measurement{Number: 1.5, Unit: "em"}},
		{name: "leading dot", input: ".5pt", output: texmath.Measurement{Number: 0.5, Unit: "pt"}},
		{name: "negative", input: "-3mu", output: texmath.Measurement{Number: -3, Unit: "mu"}},
		{name: "spaces", input: " 2 ex", output: texmath.Measurement{Number: 2, Unit: "ex"}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := texmath.ParseMeasurement(tc.input)
			if !ok {
				t.Fatalf("Unable to parse %q", tc.input)
			}

			if !cmp.Equal(m, tc.output) {
				t.Errorf("Measurement does not match:\n%s\n", cmp.Diff(tc.output, m))
			}
		})
	}

	for _, input := range []string{"", "em", "5"} {
		if _, ok := texmath.ParseMeasurement(input); ok {
			t.Errorf("Expected %q to be rejected", input)
		}
	}
}

func TestCalculateSize(t *testing.T) {
	unlimited := [2]float64{math.Inf(1), math.Inf(1)}

	tt := []struct {
		name   string
		input  texmath.Measurement
		style  texmath.Style
		output string
	}{
		{name: "em in text", input: texmath.Measurement{Number: 2, Unit: "em"}, style: texmath.NewStyle(false, unlimited), output: "2em"},
		{name: "em in script", input: texmath.Measurement{Number: 0.7, Unit: "em"}, style: texmath.NewStyle(false, unlimited).WithLevel(texmath.ScriptStyle), output: "1em"},
		{name: "ex", input: texmath.Measurement{Number: 1, Unit: "ex"}, style: texmath.NewStyle(false, unlimited), output: "0.431em"},
		{name: "math units", input: texmath.Measurement{Number: 18, Unit: "mu"}, style: texmath.NewStyle(false, unlimited), output: "1em"},
		{name: "points", input: texmath.Measurement{Number: 10, Unit: "pt"}, style: texmath.NewStyle(false, unlimited), output: "9.9626pt"},
		{name: "absolute unit is kept", input: texmath.Measurement{Number: 10, Unit: "mm"}, style: texmath.NewStyle(false, unlimited), output: "10mm"},
		{name: "em is capped", input: texmath.Measurement{Number: 5, Unit: "em"}, style: texmath.NewStyle(false, [2]float64{2, 100}), output: "2em"},
		{name: "points are capped", input: texmath.Measurement{Number: 500, Unit: "pt"}, style: texmath.NewStyle(false, [2]float64{2, 100}), output: "100pt"},
		{name: "negative limit", input: texmath.Measurement{Number: 1, Unit: "em"}, style: texmath.NewStyle(false, [2]float64{-1, -1}), output: "0em"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			size, err := texmath.CalculateSize(tc.input, tc.style)
			if err != nil {
				t.Fatal(err)
			}

			if size.String() != tc.output {
				t.Errorf("Size does not match: want %s, got %s", tc.output, size)
			}
		})
	}

	if _, err := texmath.CalculateSize(texmath.Measurement{Number: 1, Unit: "zz"}, texmath.NewStyle(false, unlimited)); err == nil {
		t.Errorf("Expected error for unknown unit")
	}
}

func TestValidUnit(t *testing.T) {
	for _, unit := range []string{"em", "mu", "pt", "bp", "sp"} {
		if !texmath.ValidUnit(unit) {
			t.Errorf("Expected %s to be valid", unit)
		}
	}

	if texmath.ValidUnit("qq") {
		t.Errorf("Expected qq to be invalid")
	}
}
