package interpreter

// Scope is a name-to-value binding table. One global scope lives for
// the interpreter's lifetime; each frame owns a fresh local scope. A
// name bound to None is distinct from an absent name.
type Scope struct {
	bindings map[string]Value
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{bindings: make(map[string]Value)}
}

// Bind inserts or overwrites a binding.
func (s *Scope) Bind(name string, v Value) {
	s.bindings[name] = v
}

// Lookup returns the binding for name, if present.
func (s *Scope) Lookup(name string) (Value, bool) {
	v, ok := s.bindings[name]
	return v, ok
}

// Delete removes a binding, reporting whether it existed.
func (s *Scope) Delete(name string) bool {
	if _, ok := s.bindings[name]; !ok {
		return false
	}
	delete(s.bindings, name)
	return true
}

// Len returns the number of bindings.
func (s *Scope) Len() int {
	return len(s.bindings)
}
