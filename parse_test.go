package edo

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_Segments(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []segment
	}{
		{
			name:   "empty source",
			source: "",
			want:   nil,
		},
		{
			name:   "literal only",
			source: "plain text, no placeholders",
			want: []segment{
				{kind: segmentLiteral, text: "plain text, no placeholders"},
			},
		},
		{
			name:   "single placeholder",
			source: "{name}",
			want: []segment{
				{kind: segmentPlaceholder, name: "name"},
			},
		},
		{
			name:   "literal then placeholder",
			source: "haha{test(a, b, c)}",
			want: []segment{
				{kind: segmentLiteral, text: "haha"},
				{kind: segmentPlaceholder, name: "test", args: []string{"a", "b", "c"}, offset: 4},
			},
		},
		{
			name:   "placeholder then literal",
			source: "{name} rocks",
			want: []segment{
				{kind: segmentPlaceholder, name: "name"},
				{kind: segmentLiteral, text: " rocks", offset: 6},
			},
		},
		{
			name:   "adjacent placeholders",
			source: "{a}{b}",
			want: []segment{
				{kind: segmentPlaceholder, name: "a"},
				{kind: segmentPlaceholder, name: "b", offset: 3},
			},
		},
		{
			name:   "placeholders separated by literal",
			source: "{a}-{b}",
			want: []segment{
				{kind: segmentPlaceholder, name: "a"},
				{kind: segmentLiteral, text: "-", offset: 3},
				{kind: segmentPlaceholder, name: "b", offset: 4},
			},
		},
		{
			name:   "absent and empty argument lists",
			source: "{name}{name()}",
			want: []segment{
				{kind: segmentPlaceholder, name: "name"},
				{kind: segmentPlaceholder, name: "name", args: []string{}, offset: 6},
			},
		},
		{
			name:   "whitespace-only argument list",
			source: "{name( )}",
			want: []segment{
				{kind: segmentPlaceholder, name: "name", args: []string{""}},
			},
		},
		{
			name:   "arguments keep interior whitespace",
			source: "{f(one two , three)}",
			want: []segment{
				{kind: segmentPlaceholder, name: "f", args: []string{"one two", "three"}},
			},
		},
		{
			name:   "empty argument between commas",
			source: "{f(a,,b)}",
			want: []segment{
				{kind: segmentPlaceholder, name: "f", args: []string{"a", "", "b"}},
			},
		},
		{
			name:   "name is not trimmed",
			source: "{ name }",
			want: []segment{
				{kind: segmentPlaceholder, name: " name "},
			},
		},
		{
			name:   "stray closing brace is literal",
			source: "a}b",
			want: []segment{
				{kind: segmentLiteral, text: "a}b"},
			},
		},
		{
			name:   "closing brace before placeholder",
			source: "}{x}",
			want: []segment{
				{kind: segmentLiteral, text: "}"},
				{kind: segmentPlaceholder, name: "x", offset: 1},
			},
		},
		{
			name:   "braces inside arguments are raw text",
			source: "{wrap({x})}",
			want: []segment{
				{kind: segmentPlaceholder, name: "wrap", args: []string{"{x}"}},
			},
		},
		{
			name:   "multibyte literal",
			source: "héllo {name}",
			want: []segment{
				{kind: segmentLiteral, text: "héllo "},
				{kind: segmentPlaceholder, name: "name", offset: 7},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parse(tt.source)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(segment{})); diff != "" {
				t.Errorf("segments mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		wantErr    error
		wantOffset int
	}{
		{
			name:       "lone open brace",
			source:     "{",
			wantErr:    ErrUnterminated,
			wantOffset: 0,
		},
		{
			name:       "unclosed placeholder",
			source:     "Hello {name",
			wantErr:    ErrUnterminated,
			wantOffset: 6,
		},
		{
			name:       "unclosed argument list",
			source:     "{name(a, b",
			wantErr:    ErrUnterminated,
			wantOffset: 0,
		},
		{
			name:       "argument list closed but placeholder not",
			source:     "{name(a)",
			wantErr:    ErrUnterminated,
			wantOffset: 0,
		},
		{
			name:       "close paren without open",
			source:     "{name)}",
			wantErr:    ErrUnterminated,
			wantOffset: 0,
		},
		{
			name:       "text after argument list",
			source:     "{name(a)x}",
			wantErr:    ErrUnterminated,
			wantOffset: 0,
		},
		{
			name:       "empty name",
			source:     "{}",
			wantErr:    ErrEmptyName,
			wantOffset: 0,
		},
		{
			name:       "empty name mid-template",
			source:     "ok {} bad",
			wantErr:    ErrEmptyName,
			wantOffset: 3,
		},
		{
			name:       "empty name with argument list",
			source:     "{(a, b)}",
			wantErr:    ErrEmptyName,
			wantOffset: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, err := parse(tt.source)
			if err == nil {
				t.Fatalf("expected error, got segments %#v", segs)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error %v should wrap %v", err, tt.wantErr)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("error %v should be a *ParseError", err)
			}
			if parseErr.Offset != tt.wantOffset {
				t.Errorf("offset = %d, want %d", parseErr.Offset, tt.wantOffset)
			}
		})
	}
}

func TestParse_OffsetsSpanSource(t *testing.T) {
	source := "Dear {title} {surname(formal)},\nyours, {sender}"
	segs, err := parse(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, seg := range segs {
		switch seg.kind {
		case segmentLiteral:
			end := seg.offset + len(seg.text)
			if end > len(source) || source[seg.offset:end] != seg.text {
				t.Errorf("literal %q does not match source at offset %d", seg.text, seg.offset)
			}
		case segmentPlaceholder:
			if source[seg.offset] != '{' {
				t.Errorf("placeholder %q offset %d does not point at '{'", seg.name, seg.offset)
			}
		}
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		inner string
		want  []string
	}{
		{"", []string{}},
		{"a", []string{"a"}},
		{"a,b,c", []string{"a", "b", "c"}},
		{"a, b, c", []string{"a", "b", "c"}},
		{"  padded  ", []string{"padded"}},
		{"one two, three", []string{"one two", "three"}},
		{",", []string{"", ""}},
		{"a,", []string{"a", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.inner, func(t *testing.T) {
			got := splitArgs(tt.inner)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
