package edo

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Builtins returns the built-in handlers. Nothing is registered implicitly:
// call RegisterBuiltins, or register a subset by hand, to make them
// available on a template.
//
// Each handler validates its own raw arguments and fails on wrong arity or
// unparseable values; those failures surface as ErrHandlerFailed render
// errors naming the placeholder. All builtins ignore the render data value.
func Builtins() map[string]Handler {
	return map[string]Handler{
		"upper":    upperHandler,
		"lower":    lowerHandler,
		"trim":     trimHandler,
		"truncate": truncateHandler,
		"replace":  replaceHandler,
		"join":     joinHandler,
		"repeat":   repeatHandler,
		"env":      envHandler,
	}
}

// upperHandler converts its single argument to upper case.
func upperHandler(args []string, _ any) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("upper expects 1 argument, got %d", len(args))
	}
	return strings.ToUpper(args[0]), nil
}

// lowerHandler converts its single argument to lower case.
func lowerHandler(args []string, _ any) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("lower expects 1 argument, got %d", len(args))
	}
	return strings.ToLower(args[0]), nil
}

// trimHandler removes leading and trailing whitespace from its single
// argument. Because the parser already trims around commas, this matters
// only for handlers invoked programmatically or for whitespace the parser
// preserves inside a single unsplit argument.
func trimHandler(args []string, _ any) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("trim expects 1 argument, got %d", len(args))
	}
	return strings.TrimSpace(args[0]), nil
}

// truncateHandler cuts its first argument to at most n bytes, where n is
// the second argument.
func truncateHandler(args []string, _ any) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("truncate expects 2 arguments, got %d", len(args))
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return "", fmt.Errorf("truncate length %q: %w", args[1], err)
	}
	if n < 0 {
		return "", fmt.Errorf("truncate length must be >= 0, got %d", n)
	}
	return truncate(args[0], n), nil
}

// truncate cuts a string to the specified maximum length. If the string is
// longer than maxLen, it is truncated and "..." is appended. For maxLen <= 3,
// no ellipsis is added (the string is simply cut).
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// replaceHandler replaces all occurrences of its second argument with its
// third inside its first.
func replaceHandler(args []string, _ any) (string, error) {
	if len(args) != 3 {
		return "", fmt.Errorf("replace expects 3 arguments, got %d", len(args))
	}
	return strings.ReplaceAll(args[0], args[1], args[2]), nil
}

// joinHandler joins its remaining arguments with its first argument as the
// separator. Note the separator cannot itself contain a comma, since commas
// delimit arguments in the placeholder grammar.
func joinHandler(args []string, _ any) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("join expects at least 1 argument, got %d", len(args))
	}
	return strings.Join(args[1:], args[0]), nil
}

// repeatHandler repeats its first argument n times, where n is the second
// argument.
func repeatHandler(args []string, _ any) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("repeat expects 2 arguments, got %d", len(args))
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return "", fmt.Errorf("repeat count %q: %w", args[1], err)
	}
	if n < 0 {
		return "", fmt.Errorf("repeat count must be >= 0, got %d", n)
	}
	return strings.Repeat(args[0], n), nil
}

// envHandler looks up the environment variable named by its first argument.
// An unset variable is an error unless a second argument supplies a
// fallback; a variable that is set but empty substitutes the empty string.
func envHandler(args []string, _ any) (string, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", fmt.Errorf("env expects 1 or 2 arguments, got %d", len(args))
	}
	value, ok := os.LookupEnv(args[0])
	if !ok {
		if len(args) == 2 {
			return args[1], nil
		}
		return "", fmt.Errorf("environment variable %q not set", args[0])
	}
	return value, nil
}
