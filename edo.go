package edo

import (
	"fmt"
	"strings"
)

// Template is a parsed template paired with its own registry of bindings.
// The parsed form is immutable after construction; bindings may be added or
// replaced at any time between renders, and one template may be rendered
// repeatedly with different data values without re-parsing.
type Template struct {
	source   string
	segments []segment
	registry *Registry
}

// New parses source into a Template. Parsing happens once, up front: a
// malformed placeholder fails construction with a *ParseError carrying the
// byte offset of the opening brace, and no template is returned.
func New(source string) (*Template, error) {
	segs, err := parse(source)
	if err != nil {
		return nil, err
	}
	return &Template{
		source:   source,
		segments: segs,
		registry: NewRegistry(),
	}, nil
}

// Must is like New but panics on a parse error.
// Use for templates known to be valid, typically literals.
func Must(source string) *Template {
	t, err := New(source)
	if err != nil {
		panic(fmt.Sprintf("edo.Must(%q): %v", source, err))
	}
	return t
}

// Source returns the original template text.
func (t *Template) Source() string {
	return t.source
}

// Registry returns the template's own registry. The accessor lets shared
// setup code populate several templates' registries through one code path
// and supports pre-render introspection; Render always resolves against
// this registry.
func (t *Template) Registry() *Registry {
	return t.registry
}

// RegisterStatic binds name to a fixed replacement value. Static bindings
// substitute verbatim; arguments written in the template are ignored.
// Registering again under the same name overwrites.
func (t *Template) RegisterStatic(name, value string) {
	t.registry.RegisterStatic(name, value)
}

// RegisterHandler binds name to a handler function, with the same overwrite
// semantics as RegisterStatic.
func (t *Template) RegisterHandler(name string, h Handler) {
	t.registry.RegisterHandler(name, h)
}

// RegisterBuiltins registers every builtin handler on the template,
// overwriting any bindings already registered under their names.
func (t *Template) RegisterBuiltins() {
	for name, h := range Builtins() {
		t.registry.RegisterHandler(name, h)
	}
}

// Render walks the parsed segments in order and produces the output string.
// Literal segments are appended verbatim. Each placeholder is resolved
// against the registry: a static binding appends its value, and a handler
// binding is invoked with the placeholder's arguments and data, appending
// its result. Rendering is strictly left to right and stops at the first
// failure: an unregistered name or a failed handler returns a *RenderError
// and an empty string, never partial output.
//
// data is passed to every handler unchanged; the engine does not interpret
// it. Rendering itself performs no I/O and introduces no nondeterminism
// beyond what handlers do.
func (t *Template) Render(data any) (string, error) {
	var out strings.Builder
	out.Grow(len(t.source))
	for _, seg := range t.segments {
		if seg.kind == segmentLiteral {
			out.WriteString(seg.text)
			continue
		}
		binding, ok := t.registry.Resolve(seg.name)
		if !ok {
			return "", &RenderError{Name: seg.name, Err: ErrUnknownPlaceholder}
		}
		if value, ok := binding.Static(); ok {
			out.WriteString(value)
			continue
		}
		h, _ := binding.Handler()
		result, err := h(seg.args, data)
		if err != nil {
			return "", &RenderError{Name: seg.name, Err: fmt.Errorf("%w: %w", ErrHandlerFailed, err)}
		}
		out.WriteString(result)
	}
	return out.String(), nil
}

// Placeholders returns the unique placeholder names the template references,
// in order of first appearance.
func (t *Template) Placeholders() []string {
	seen := make(map[string]bool)
	var names []string
	for _, seg := range t.segments {
		if seg.kind != segmentPlaceholder || seen[seg.name] {
			continue
		}
		seen[seg.name] = true
		names = append(names, seg.name)
	}
	return names
}

// Unbound returns the referenced names that have no binding yet, in order
// of first appearance. A render fails with ErrUnknownPlaceholder unless
// this is empty.
func (t *Template) Unbound() []string {
	var missing []string
	for _, name := range t.Placeholders() {
		if !t.registry.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
