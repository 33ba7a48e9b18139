package texmath_test

import (
	"testing"

	"github.com/eolymp/go-texmath"
	"github.com/google/go-cmp/cmp"
)

func TestKeyValue(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		output map[string]string
	}{
		{
			name:   "one arg",
			input:  "key=value",
			output: map[string]string{"key": "value"},
		},
		{
			name:   "few arg",
			input:  "scale=1.2, angle=45",
			output: map[string]string{"scale": "1.2", "angle": "45"},
		},
		{
			name:   "lower case",
			input:  "SCALE=1.2, angle=45",
			output: map[string]string{"scale": "1.2", "angle": "45"},
		},
		{
			name:   "values surrounded by spaces",
			input:  "a = 1 , b = 3",
			output: map[string]string{"a": "1", "b": "3"},
		},
		{
			name:   "spaces inside key",
			input:  "row index=2",
			output: map[string]string{"row-index": "2"},
		},
		{
			name:   "value with equals sign",
			input:  "expr=a=b",
			output: map[string]string{"expr": "a=b"},
		},
		{
			name:   "cyrillic values",
			input:  "type=note, title=Привіт",
			output: map[string]string{"type": "note", "title": "Привіт"},
		},
		{
			name:   "empty",
			input:  "  ",
			output: map[string]string{},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			v, err := texmath.KeyValue(tc.input)
			if err != nil {
				t.Fatal(err)
			}

			if !cmp.Equal(v, tc.output) {
				t.Errorf("Value does not match:\n%s\n", cmp.Diff(tc.output, v))
			}
		})
	}
}

func TestKeyValueErrors(t *testing.T) {
	for _, input := range []string{"novalue", "a=1, fo", "=1"} {
		t.Run(input, func(t *testing.T) {
			if _, err := texmath.KeyValue(input); err == nil {
				t.Errorf("Expected error for %q", input)
			}
		})
	}
}

func TestColumnSpecs(t *testing.T) {
	tt := []struct {
		name    string
		input   string
		allowed string
		output  []texmath.ColumnSpec
	}{
		{
			name:    "alignment",
			input:   "lcr",
			allowed: "lcr",
			output:  []texmath.ColumnSpec{{Align: "l"}, {Align: "c"}, {Align: "r"}},
		},
		{
			name:    "spaces are ignored",
			input:   " l c ",
			allowed: "lcr",
			output:  []texmath.ColumnSpec{{Align: "l"}, {Align: "c"}},
		},
		{
			name:    "borders",
			input:   "|l|c|",
			allowed: "lcr",
			output: []texmath.ColumnSpec{
				{Align: "l", BorderLeft: texmath.BorderSolid, BorderRight: texmath.BorderSolid},
				{Align: "c", BorderRight: texmath.BorderSolid},
			},
		},
		{
			name:    "dashed and double",
			input:   "c:c||c",
			allowed: "lcr",
			output: []texmath.ColumnSpec{
				{Align: "c", BorderRight: texmath.BorderDashed},
				{Align: "c", BorderRight: texmath.BorderDouble},
				{Align: "c"},
			},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := texmath.ColumnSpecs(tc.input, tc.allowed)
			if err != nil {
				t.Fatal(err)
			}

			if !cmp.Equal(spec, tc.output) {
				t.Errorf("Column spec does not match:\n%s\n", cmp.Diff(tc.output, spec))
			}
		})
	}
}

func TestColumnSpecsErrors(t *testing.T) {
	if _, err := texmath.ColumnSpecs("lcx", "lcr"); err == nil {
		t.Errorf("Expected error for unknown alignment")
	}

	if _, err := texmath.ColumnSpecs("r", "lc"); err == nil {
		t.Errorf("Expected error for alignment which is not allowed")
	}
}
