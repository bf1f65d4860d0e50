// Package manifest loads template definition documents.
//
// A definition pairs an edo template with the bindings it needs: fixed
// static values and declared variables with defaults and required flags.
// Definitions are written as YAML or TOML documents:
//
//	name: greeting
//	description: Greets someone by name
//	template: "{salutation}, {name}!"
//	statics:
//	  salutation: Hello
//	vars:
//	  - name: name
//	    description: Who to greet
//	    required: true
//
// Build resolves variables against caller-supplied values and returns a
// template ready to render; handler bindings, which cannot be described in
// a document, are registered by the caller afterwards.
package manifest

import (
	"errors"
	"fmt"

	"github.com/giodamelio/edo"
)

// ErrMissingVar is returned by Build when a required variable is not
// satisfied by the caller's values, the definition's statics, or a default.
var ErrMissingVar = errors.New("missing required variable")

// Definition is a template definition document.
type Definition struct {
	// Name identifies the definition.
	Name string `yaml:"name" toml:"name" json:"name"`

	// Description explains what the template produces.
	Description string `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`

	// Template is the edo template source text.
	Template string `yaml:"template" toml:"template" json:"template"`

	// Statics are fixed replacement values registered before rendering.
	Statics map[string]string `yaml:"statics,omitempty" toml:"statics,omitempty" json:"statics,omitempty"`

	// Vars declares the values callers supply at build time.
	Vars []Var `yaml:"vars,omitempty" toml:"vars,omitempty" json:"vars,omitempty"`

	// Origin is the file path the definition was loaded from, empty for
	// definitions constructed in memory.
	Origin string `yaml:"-" toml:"-" json:"-"`
}

// Var describes one variable a definition expects.
type Var struct {
	// Name is the placeholder name the variable binds.
	Name string `yaml:"name" toml:"name" json:"name"`

	// Description explains the variable to whoever supplies it.
	Description string `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`

	// Default is used when no value is supplied.
	Default string `yaml:"default,omitempty" toml:"default,omitempty" json:"default,omitempty"`

	// Required makes Build fail when no source provides a non-empty value.
	Required bool `yaml:"required,omitempty" toml:"required,omitempty" json:"required,omitempty"`
}

// Validate checks that the definition is usable: name and template are
// required, and variable names must be non-empty and unique.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return errors.New("definition name is required")
	}
	if d.Template == "" {
		return errors.New("definition template is required")
	}
	seen := make(map[string]bool, len(d.Vars))
	for _, v := range d.Vars {
		if v.Name == "" {
			return errors.New("variable name is required")
		}
		if seen[v.Name] {
			return fmt.Errorf("duplicate variable %q", v.Name)
		}
		seen[v.Name] = true
	}
	return nil
}

// Build parses the definition's template and registers its bindings,
// returning a template ready to render. Bindings register lowest precedence
// first (Var defaults, then Statics, then values), so a later source
// overwrites an earlier one. An empty caller value means the value was not
// supplied: it is never registered, and whatever the document binds for
// that name stays in effect. A required variable whose final binding is
// missing or empty fails with an error wrapping ErrMissingVar.
//
// Statics and values may bind names the definition's vars don't declare.
func (d *Definition) Build(values map[string]string) (*edo.Template, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	tmpl, err := edo.New(d.Template)
	if err != nil {
		return nil, fmt.Errorf("parse template %q: %w", d.Name, err)
	}

	for _, v := range d.Vars {
		if v.Default != "" {
			tmpl.RegisterStatic(v.Name, v.Default)
		}
	}
	for name, value := range d.Statics {
		tmpl.RegisterStatic(name, value)
	}
	for name, value := range values {
		if value == "" {
			continue
		}
		tmpl.RegisterStatic(name, value)
	}

	// Required vars are checked against what actually got bound, not
	// against any one source.
	for _, v := range d.Vars {
		if !v.Required {
			continue
		}
		binding, ok := tmpl.Registry().Resolve(v.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingVar, v.Name)
		}
		if value, isStatic := binding.Static(); isStatic && value == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingVar, v.Name)
		}
	}

	return tmpl, nil
}
