// Package edo renders templates made of literal text and {name} or
// {name(args)} placeholders.
//
// A template is parsed once at construction and can then be rendered any
// number of times. Each placeholder name resolves through the template's
// registry to either a static replacement value or a handler function that
// computes the substitution from the placeholder's arguments and a
// caller-supplied data value.
//
// # Syntax
//
// A placeholder is a name wrapped in braces:
//
//	Hello, {name}!
//
// Arguments are comma-separated raw text in parentheses, trimmed of
// surrounding whitespace:
//
//	{greet(Alice, Bob)}
//
// Every "{" opens a placeholder; there is no escape for a literal brace.
// A "}" outside a placeholder is ordinary text. Arguments are never
// resolved as placeholders themselves: handlers receive them exactly as
// written.
//
// # Example
//
//	t, err := edo.New("{greeting}, {name}! You have {count(unread)} messages.")
//	if err != nil {
//		// *edo.ParseError with the offset of the malformed placeholder
//	}
//	t.RegisterStatic("greeting", "Hello")
//	t.RegisterStatic("name", "World")
//	t.RegisterHandler("count", func(args []string, data any) (string, error) {
//		counts := data.(map[string]int)
//		return strconv.Itoa(counts[args[0]]), nil
//	})
//	out, err := t.Render(map[string]int{"unread": 3})
//	// out: "Hello, World! You have 3 messages."
//
// Rendering fails with a *RenderError when a referenced name has no binding
// or a handler returns an error; no partial output is produced. Use
// Placeholders and Unbound to inspect a template before rendering.
//
// # Built-in Handlers
//
// Builtins returns an opt-in set of string helpers, registered all at once
// with RegisterBuiltins:
//
//   - upper(s) - Convert to uppercase
//   - lower(s) - Convert to lowercase
//   - trim(s) - Remove leading/trailing whitespace
//   - truncate(s, n) - Cut to at most n bytes with ellipsis
//   - replace(s, old, new) - Replace all occurrences
//   - join(sep, parts...) - Join parts with separator
//   - repeat(s, n) - Repeat s n times
//   - env(name[, fallback]) - Environment variable lookup
//
// # Subpackages
//
//   - manifest: template definition documents in YAML or TOML
//   - watch: rebuild a manifest-defined template when its file changes
package edo
