package mython

// Env is a name-to-handle attribute table. It backs both the top-level
// program scope and the per-call scope of a method invocation, and it is
// the same structure an Instance uses for its own fields — the source
// this language was distilled from uses one map type, Closure, for both
// roles, and mython keeps that unification.
//
// Environments are not chained: a called method sees a freshly built Env
// containing only self plus the actuals bound to formals, never its
// caller's scope.
type Env struct {
	values map[string]Value
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{values: make(map[string]Value)}
}

// Get looks up name, returning its handle and true, or the empty handle
// and false if name is unbound.
func (e *Env) Get(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Set binds name to val, creating or rebinding the entry.
func (e *Env) Set(name string, val Value) {
	e.values[name] = val
}

// Names returns the bound names in this environment, for callers (the
// REPL's autocomplete and variables panel) that need to enumerate scope
// without reaching into the map directly.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	return names
}
