package edo

import "strings"

// segmentKind discriminates the two segment variants.
type segmentKind int

const (
	segmentLiteral segmentKind = iota
	segmentPlaceholder
)

// segment is one parsed unit of a template: a literal text run or a
// placeholder reference. offset is the byte position of the segment's first
// source character, which for placeholders is the opening brace.
type segment struct {
	kind   segmentKind
	text   string   // literal text, empty for placeholders
	name   string   // placeholder name exactly as written, untrimmed
	args   []string // placeholder arguments; nil when no list was written
	offset int
}

// parse scans source left to right in a single pass and returns the segment
// sequence. Every '{' opens a placeholder; there is no escape for literal
// braces. A '}' outside a placeholder is ordinary text.
func parse(source string) ([]segment, error) {
	var segs []segment
	pos := 0
	for pos < len(source) {
		open := strings.IndexByte(source[pos:], '{')
		if open < 0 {
			segs = append(segs, segment{kind: segmentLiteral, text: source[pos:], offset: pos})
			break
		}
		open += pos
		if open > pos {
			segs = append(segs, segment{kind: segmentLiteral, text: source[pos:open], offset: pos})
		}
		seg, next, err := parsePlaceholder(source, open)
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
		pos = next
	}
	return segs, nil
}

// parsePlaceholder parses one placeholder whose opening brace sits at open.
// It returns the parsed segment and the offset just past the closing brace.
//
// The name is the maximal run of characters after '{' up to the first '(',
// ')', or '}'. An optional '('-opened argument list runs to the next ')',
// with everything between treated as raw text, so braces inside arguments
// carry no meaning. The placeholder must then close with '}'. Any other
// shape fails with ErrUnterminated at the opening brace; an empty name
// fails with ErrEmptyName.
func parsePlaceholder(source string, open int) (segment, int, error) {
	i := open + 1
	for i < len(source) {
		if c := source[i]; c == '(' || c == ')' || c == '}' {
			break
		}
		i++
	}
	if i >= len(source) {
		return segment{}, 0, &ParseError{Offset: open, Err: ErrUnterminated}
	}
	name := source[open+1 : i]

	var args []string
	if source[i] == '(' {
		end := strings.IndexByte(source[i:], ')')
		if end < 0 {
			return segment{}, 0, &ParseError{Offset: open, Err: ErrUnterminated}
		}
		args = splitArgs(source[i+1 : i+end])
		i += end + 1
	}
	if i >= len(source) || source[i] != '}' {
		return segment{}, 0, &ParseError{Offset: open, Err: ErrUnterminated}
	}
	if name == "" {
		return segment{}, 0, &ParseError{Offset: open, Err: ErrEmptyName}
	}
	return segment{kind: segmentPlaceholder, name: name, args: args, offset: open}, i + 1, nil
}

// splitArgs splits the raw text between '(' and ')' into arguments.
// Arguments are comma-separated and trimmed of surrounding whitespace;
// interior whitespace is preserved. "()" yields an empty, non-nil list,
// and "( )" yields a single empty argument.
func splitArgs(inner string) []string {
	if inner == "" {
		return []string{}
	}
	parts := strings.Split(inner, ",")
	args := make([]string, len(parts))
	for i, part := range parts {
		args[i] = strings.TrimSpace(part)
	}
	return args
}
