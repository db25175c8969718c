package assetdoc

import "strings"

// tabWidth is the column width assigned to a tab character when measuring
// indentation. The target loader treats tabs as 4 spaces.
const tabWidth = 4

// Range addresses a half-open [Start, End) run of lines in a LineStore.
type Range struct {
	Start int
	End   int
}

// Empty reports whether the range covers no lines.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

// Len returns the number of lines covered by the range.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start
}

// LineStore holds a document as an ordered sequence of text lines. Parsed
// structures remember the ranges they came from so the writer can re-emit
// untouched regions verbatim.
type LineStore struct {
	lines []string
}

// NewLineStore splits text into lines. Line terminators are not retained;
// the writer always emits "\n".
func NewLineStore(text string) *LineStore {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	// A trailing newline yields one phantom empty line; drop it so ranges
	// stay aligned with what the author sees.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return &LineStore{lines: lines}
}

// Len returns the number of lines in the store.
func (s *LineStore) Len() int {
	return len(s.lines)
}

// Line returns the line at index i, or "" when i is out of bounds.
func (s *LineStore) Line(i int) string {
	if i < 0 || i >= len(s.lines) {
		return ""
	}
	return s.lines[i]
}

// Slice returns the lines covered by r, clamped to the store.
func (s *LineStore) Slice(r Range) []string {
	if r.Start < 0 {
		r.Start = 0
	}
	if r.End > len(s.lines) {
		r.End = len(s.lines)
	}
	if r.Empty() {
		return nil
	}
	return s.lines[r.Start:r.End]
}

// Indent returns the indentation of line i measured in columns.
func (s *LineStore) Indent(i int) int {
	return indentOf(s.Line(i))
}

// Content returns line i with its leading whitespace removed.
func (s *LineStore) Content(i int) string {
	return contentOf(s.Line(i))
}

// IsBlank reports whether line i is empty, whitespace-only, or a comment.
// Blank lines never delimit blocks; verbatim slices carry them through
// untouched.
func (s *LineStore) IsBlank(i int) bool {
	c := contentOf(s.Line(i))
	return c == "" || strings.HasPrefix(c, "#")
}

// indentOf measures leading whitespace in columns, tabs counting as 4.
func indentOf(line string) int {
	cols := 0
	for _, r := range line {
		switch r {
		case ' ':
			cols++
		case '\t':
			cols += tabWidth
		default:
			return cols
		}
	}
	return cols
}

// contentOf returns the line with its leading whitespace removed.
func contentOf(line string) string {
	return strings.TrimLeft(line, " \t")
}
