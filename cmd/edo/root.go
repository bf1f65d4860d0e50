// Command edo renders placeholder templates from the command line.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/giodamelio/edo"
	"github.com/giodamelio/edo/manifest"
)

var rootCmd = &cobra.Command{
	Use:   "edo",
	Short: "Render placeholder templates",
	Long: `edo renders templates with {name} and {name(arg, ...)} placeholders.

Bindings come from manifest files (YAML or TOML), repeated --set flags,
and the built-in handlers.`,
	SilenceUsage: true,
}

// loadManifests loads each manifest file, in flag order.
func loadManifests(paths []string) ([]*manifest.Definition, error) {
	defs := make([]*manifest.Definition, 0, len(paths))
	for _, path := range paths {
		def, err := manifest.LoadFile(path)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// parseSet splits repeated name=value flags into a value map.
func parseSet(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q, want name=value", pair)
		}
		values[name] = value
	}
	return values, nil
}

// resolveSource picks the template source: the --template flag, then the
// positional file argument ("-" reads stdin), then the first manifest's
// template, then stdin.
func resolveSource(inline string, args []string, defs []*manifest.Definition, stdin io.Reader) (string, error) {
	if inline != "" {
		return inline, nil
	}
	if len(args) > 0 {
		if args[0] == "-" {
			return readAll(stdin)
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read template: %w", err)
		}
		return string(data), nil
	}
	// Loaded manifests always carry a template.
	if len(defs) > 0 {
		return defs[0].Template, nil
	}
	return readAll(stdin)
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// bind registers bindings on the template: builtins first, then each
// manifest's variable defaults and statics, then --set values. Later
// registrations win.
func bind(tmpl *edo.Template, defs []*manifest.Definition, values map[string]string, builtins bool) {
	if builtins {
		tmpl.RegisterBuiltins()
	}
	for _, def := range defs {
		for _, v := range def.Vars {
			if v.Default != "" {
				tmpl.RegisterStatic(v.Name, v.Default)
			}
		}
		for name, value := range def.Statics {
			tmpl.RegisterStatic(name, value)
		}
	}
	for name, value := range values {
		tmpl.RegisterStatic(name, value)
	}
}

// requireVars checks that every required manifest variable ended up bound
// to a handler or a non-empty static; an empty string counts as no value.
func requireVars(tmpl *edo.Template, defs []*manifest.Definition) error {
	for _, def := range defs {
		for _, v := range def.Vars {
			if !v.Required {
				continue
			}
			binding, ok := tmpl.Registry().Resolve(v.Name)
			if !ok {
				return fmt.Errorf("%w: %s (declared in %s)", manifest.ErrMissingVar, v.Name, def.Name)
			}
			if value, isStatic := binding.Static(); isStatic && value == "" {
				return fmt.Errorf("%w: %s (declared in %s)", manifest.ErrMissingVar, v.Name, def.Name)
			}
		}
	}
	return nil
}
