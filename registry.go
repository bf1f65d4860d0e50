package edo

import "sort"

// Handler produces a substitution string from a placeholder's arguments and
// the per-render data value. Arguments arrive exactly as written in the
// template, never resolved or converted; handlers parse them as needed and
// may fail, which aborts the render.
type Handler func(args []string, data any) (string, error)

// bindingKind discriminates the two binding variants.
type bindingKind int

const (
	bindingStatic bindingKind = iota
	bindingHandler
)

// Binding is the substitution source registered under a placeholder name:
// either a fixed string or a handler function. The zero Binding is a static
// binding for the empty string.
type Binding struct {
	kind    bindingKind
	value   string
	handler Handler
}

// Static returns the fixed replacement value. ok is false for handler
// bindings.
func (b Binding) Static() (value string, ok bool) {
	if b.kind != bindingStatic {
		return "", false
	}
	return b.value, true
}

// Handler returns the handler function. ok is false for static bindings.
func (b Binding) Handler() (h Handler, ok bool) {
	if b.kind != bindingHandler {
		return nil, false
	}
	return b.handler, true
}

// Registry maps placeholder names to bindings. Names are case-sensitive and
// matched by exact string equality against the name as written in the
// template. Registering under an existing name silently overwrites the
// earlier binding, whichever kind it was. The zero value is an empty
// registry ready for use.
//
// A Registry does no locking of its own. Concurrent renders resolving
// against one registry are safe as long as no registration races them;
// synchronizing registration is the caller's job.
type Registry struct {
	bindings map[string]Binding
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string]Binding)}
}

// RegisterStatic binds name to a fixed replacement value.
func (r *Registry) RegisterStatic(name, value string) {
	if r.bindings == nil {
		r.bindings = make(map[string]Binding)
	}
	r.bindings[name] = Binding{kind: bindingStatic, value: value}
}

// RegisterHandler binds name to a handler function.
func (r *Registry) RegisterHandler(name string, h Handler) {
	if r.bindings == nil {
		r.bindings = make(map[string]Binding)
	}
	r.bindings[name] = Binding{kind: bindingHandler, handler: h}
}

// Resolve looks up the binding registered under name.
func (r *Registry) Resolve(name string) (Binding, bool) {
	b, ok := r.bindings[name]
	return b, ok
}

// Has reports whether name has a binding.
func (r *Registry) Has(name string) bool {
	_, ok := r.bindings[name]
	return ok
}

// Names returns all registered names, sorted alphabetically for consistent
// ordering.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.bindings))
	for name := range r.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
