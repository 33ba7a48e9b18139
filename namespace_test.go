package texmath_test

import (
	"errors"
	"testing"

	"github.com/eolymp/go-texmath"
)

func TestNamespace(t *testing.T) {
	builtins := texmath.Macros{"\\b": texmath.MacroText("builtin")}
	global := texmath.Macros{}
	ns := texmath.NewNamespace(builtins, global)

	if got := ns.Get("\\b"); got != texmath.MacroText("builtin") {
		t.Errorf("Expected builtin value, got %v", got)
	}

	ns.BeginGroup()
	ns.Set("\\b", texmath.MacroText("local"), false)
	ns.Set("\\x", texmath.MacroText("local"), false)

	ns.BeginGroup()
	ns.Set("\\g", texmath.MacroText("global"), true)
	ns.Set("\\x", texmath.MacroText("inner"), false)

	if got := ns.Get("\\x"); got != texmath.MacroText("inner") {
		t.Errorf("Expected inner value, got %v", got)
	}

	if err := ns.EndGroup(); err != nil {
		t.Fatal(err)
	}

	if got := ns.Get("\\x"); got != texmath.MacroText("local") {
		t.Errorf("Expected value of the outer group, got %v", got)
	}

	if err := ns.EndGroup(); err != nil {
		t.Fatal(err)
	}

	if ns.Has("\\x") {
		t.Errorf("Local definition survived its group")
	}

	if got := ns.Get("\\b"); got != texmath.MacroText("builtin") {
		t.Errorf("Builtin is not restored, got %v", got)
	}

	if got := global["\\g"]; got != texmath.MacroText("global") {
		t.Errorf("Global definition is missing from the top level table, got %v", got)
	}

	if ns.Depth() != 0 {
		t.Errorf("Expected no open groups, got %d", ns.Depth())
	}
}

func TestNamespaceUndefine(t *testing.T) {
	ns := texmath.NewNamespace(nil, texmath.Macros{"\\x": texmath.MacroText("x")})

	ns.BeginGroup()
	ns.Set("\\x", nil, false)

	if ns.Has("\\x") {
		t.Errorf("Expected \\x to be undefined")
	}

	ns.EndGroups()

	if got := ns.Get("\\x"); got != texmath.MacroText("x") {
		t.Errorf("Expected \\x to be restored, got %v", got)
	}
}

func TestNamespaceUnbalanced(t *testing.T) {
	ns := texmath.NewNamespace(nil, nil)

	if err := ns.EndGroup(); !errors.Is(err, texmath.ErrInternal) {
		t.Errorf("Expected internal error, got %v", err)
	}
}
