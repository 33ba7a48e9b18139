package texmath

// Namespace is a scoped macro table: immutable builtins under a mutable overlay whose
// changes are rolled back group by group.
type Namespace struct {
	builtins Macros
	current  Macros

	// undefStack holds, per open group, the values to restore on EndGroup (nil means delete)
	undefStack []map[string]Macro
}

// NewNamespace creates a namespace over builtins, global is used (and modified) as the top-level layer.
func NewNamespace(builtins, global Macros) *Namespace {
	if global == nil {
		global = Macros{}
	}

	return &Namespace{builtins: builtins, current: global}
}

// BeginGroup starts a new nested group.
func (n *Namespace) BeginGroup() {
	n.undefStack = append(n.undefStack, map[string]Macro{})
}

// EndGroup ends the innermost group, restoring values as they were before the group started.
func (n *Namespace) EndGroup() error {
	if len(n.undefStack) == 0 {
		return newError(ErrInternal, nil, "Unbalanced namespace destruction: attempt to pop global namespace")
	}

	undefs := n.undefStack[len(n.undefStack)-1]
	n.undefStack = n.undefStack[:len(n.undefStack)-1]

	for name, value := range undefs {
		if value == nil {
			delete(n.current, name)
		} else {
			n.current[name] = value
		}
	}

	return nil
}

// EndGroups ends all currently open groups.
func (n *Namespace) EndGroups() {
	for len(n.undefStack) > 0 {
		_ = n.EndGroup()
	}
}

// Depth returns number of open groups.
func (n *Namespace) Depth() int {
	return len(n.undefStack)
}

// Has checks if the name is defined either in the current layer or in builtins.
func (n *Namespace) Has(name string) bool {
	if _, ok := n.current[name]; ok {
		return true
	}

	_, ok := n.builtins[name]
	return ok
}

// Get returns the current value of the name, nil if it is not defined.
func (n *Namespace) Get(name string) Macro {
	if v, ok := n.current[name]; ok {
		return v
	}

	return n.builtins[name]
}

// Set defines name in the innermost group, or in all groups when global is true. A nil value undefines the name.
func (n *Namespace) Set(name string, value Macro, global bool) {
	if global {
		// a global assignment cancels pending restores in every group, the innermost group
		// remembers the new value in case it is redefined locally later
		for _, undefs := range n.undefStack {
			delete(undefs, name)
		}

		if len(n.undefStack) > 0 {
			n.undefStack[len(n.undefStack)-1][name] = value
		}
	} else if len(n.undefStack) > 0 {
		top := n.undefStack[len(n.undefStack)-1]
		if _, ok := top[name]; !ok {
			top[name] = n.current[name]
		}
	}

	if value == nil {
		delete(n.current, name)
	} else {
		n.current[name] = value
	}
}

// Current returns the mutable top-level layer.
func (n *Namespace) Current() Macros {
	return n.current
}
