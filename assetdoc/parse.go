package assetdoc

import (
	"strings"

	"github.com/rs/zerolog"
)

// Parser is a cursor-based scanner converting line ranges into Values, using
// leading-whitespace depth to delimit nested blocks. It never fails: a
// malformed region yields the best partial value and a warning, and the
// cursor resumes at the next sibling. Empty and hand-corrupted files must
// still produce a usable document.
type Parser struct {
	store *LineStore
	log   zerolog.Logger
}

// NewParser returns a parser over store.
func NewParser(store *LineStore, log zerolog.Logger) *Parser {
	return &Parser{store: store, log: log}
}

// Store returns the underlying line store.
func (p *Parser) Store() *LineStore { return p.store }

// ParseBlock parses the block whose members begin at line start: the
// contiguous run of lines with indentation strictly greater than
// parentIndent and equal to the first member's. It returns the parsed value
// and the index of the first line after the block.
func (p *Parser) ParseBlock(start, parentIndent int) (*Value, int) {
	i := p.skipBlank(start)
	if i >= p.store.Len() || p.store.Indent(i) <= parentIndent {
		return Null(), start
	}
	memberIndent := p.store.Indent(i)
	first := contentOf(p.store.Line(i))

	if first == "-" || strings.HasPrefix(first, "- ") {
		return p.parseSequence(i, memberIndent)
	}
	if tag, rest, ok := SplitTag(first); ok && rest == "" {
		// Bare !Tag line selecting a union variant; the payload follows as
		// a nested block.
		v, next := p.ParseBlock(i+1, memberIndent)
		v.SetTag(tag)
		return v, p.skipStray(next, memberIndent)
	}
	m := NewMap()
	next := p.parseMappingInto(m, i, memberIndent)
	return m, next
}

// parseMappingInto consumes mapping members at exactly memberIndent into m
// and returns the index of the first line after the run.
func (p *Parser) parseMappingInto(m *Value, start, memberIndent int) int {
	i := start
	for i < p.store.Len() {
		if p.store.IsBlank(i) {
			i++
			continue
		}
		ind := p.store.Indent(i)
		if ind < memberIndent {
			break
		}
		if ind > memberIndent {
			// Stray line not owned by any member; skip it and keep going.
			p.warn(i, "unexpected indentation inside mapping block")
			i++
			continue
		}
		c := contentOf(p.store.Line(i))
		if strings.HasPrefix(c, "- ") || c == "-" {
			p.warn(i, "sequence item inside mapping block")
			i++
			continue
		}
		key, rest, ok := SplitKeyValue(c)
		if !ok {
			p.warn(i, "mapping member without a key")
			i++
			continue
		}
		val, next := p.parseMemberValue(rest, i, memberIndent)
		m.mapAppend(key, val)
		i = next
	}
	return i
}

// parseMemberValue parses the value half of a "key: rest" member found on
// line i at keyIndent. Empty or tag-only values introduce nested blocks.
// Returns the value and the index of the first line after it.
func (p *Parser) parseMemberValue(rest string, i, keyIndent int) (*Value, int) {
	switch {
	case rest == "":
		v, next := p.ParseBlock(i+1, keyIndent)
		return v, next
	case rest == "[]":
		return NewSeq(), i + 1
	case rest == "{}":
		return NewInlineMap(), i + 1
	}
	if tag, tagRest, ok := SplitTag(rest); ok {
		if tagRest == "" {
			v, next := p.ParseBlock(i+1, keyIndent)
			v.SetTag(tag)
			return v, next
		}
		v := p.parseInline(tagRest)
		v.SetTag(tag)
		return v, i + 1
	}
	return p.parseInline(rest), i + 1
}

// parseInline parses an inline value: a flow collection or a scalar.
// Reference scalars contain colons but classify as scalars, never as nested
// structure.
func (p *Parser) parseInline(text string) *Value {
	if text != "" && (text[0] == '{' || text[0] == '[') {
		v, _ := ParseFlow(text)
		return v
	}
	return ParseScalar(text)
}

// parseSequence consumes "- " items at exactly memberIndent.
func (p *Parser) parseSequence(start, memberIndent int) (*Value, int) {
	seq := NewSeq()
	i := start
	for i < p.store.Len() {
		if p.store.IsBlank(i) {
			i++
			continue
		}
		ind := p.store.Indent(i)
		if ind < memberIndent {
			break
		}
		if ind > memberIndent {
			p.warn(i, "unexpected indentation inside sequence block")
			i++
			continue
		}
		c := contentOf(p.store.Line(i))
		if c != "-" && !strings.HasPrefix(c, "- ") {
			// Non-item sibling; hand back to the enclosing block.
			break
		}
		rest := strings.TrimLeft(strings.TrimPrefix(c, "-"), " ")
		restCol := memberIndent + (len(c) - len(rest))
		item, next := p.parseSeqItem(rest, i, memberIndent, restCol)
		seq.Append(item)
		i = next
	}
	return seq, i
}

// parseSeqItem parses a single sequence item whose inline text begins at
// column restCol on line i.
func (p *Parser) parseSeqItem(rest string, i, memberIndent, restCol int) (*Value, int) {
	if rest == "" {
		return p.ParseBlock(i+1, memberIndent)
	}
	if tag, tagRest, ok := SplitTag(rest); ok {
		if tagRest == "" {
			v, next := p.ParseBlock(i+1, memberIndent)
			v.SetTag(tag)
			return v, next
		}
		v := p.parseInline(tagRest)
		v.SetTag(tag)
		return v, i + 1
	}
	if isReferenceScalar(rest) {
		return ParseScalar(rest), i + 1
	}
	if key, kvRest, ok := SplitKeyValue(rest); ok {
		// Mapping item: the first pair rides the dash line, further members
		// follow at the first pair's column.
		m := NewMap()
		val, next := p.parseMemberValue(kvRest, i, restCol)
		m.mapAppend(key, val)
		next = p.parseMappingInto(m, next, restCol)
		return m, next
	}
	return p.parseInline(rest), i + 1
}

// skipBlank advances past blank and comment lines.
func (p *Parser) skipBlank(i int) int {
	for i < p.store.Len() && p.store.IsBlank(i) {
		i++
	}
	return i
}

// skipStray warns about and skips leftover lines deeper than parentIndent
// after a block that already ended.
func (p *Parser) skipStray(i, parentIndent int) int {
	for i < p.store.Len() {
		if p.store.IsBlank(i) {
			i++
			continue
		}
		if p.store.Indent(i) <= parentIndent {
			break
		}
		p.warn(i, "unreachable content after tagged block")
		i++
	}
	return i
}

func (p *Parser) warn(line int, msg string) {
	p.log.Warn().Int("line", line+1).Str("text", contentOf(p.store.Line(line))).Msg(msg)
}

// BlockEnd returns the index of the first line after the block headed by
// line header: the first subsequent non-blank line indented at or shallower
// than the header.
func (s *LineStore) BlockEnd(header int) int {
	base := s.Indent(header)
	i := header + 1
	for i < s.Len() {
		if s.IsBlank(i) {
			i++
			continue
		}
		if s.Indent(i) <= base {
			return i
		}
		i++
	}
	return s.Len()
}

// SplitKeyValue splits "key: value" or "key:". Reference scalars are the
// reason this cannot be a bare IndexByte on ':': "<guid>:<path>" lines are
// values, not members, and keys never contain spaces before the colon.
func SplitKeyValue(text string) (key, rest string, ok bool) {
	if isReferenceScalar(text) {
		return "", "", false
	}
	sep := strings.IndexByte(text, ':')
	if sep < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(text[:sep])
	if key == "" {
		return "", "", false
	}
	after := text[sep+1:]
	if after != "" && after[0] != ' ' {
		return "", "", false
	}
	return key, strings.TrimSpace(after), true
}

// SplitTag splits "!Tag rest", returning the tag without its bang.
func SplitTag(text string) (tag, rest string, ok bool) {
	if !strings.HasPrefix(text, "!") || len(text) < 2 {
		return "", "", false
	}
	body := text[1:]
	if sp := strings.IndexByte(body, ' '); sp >= 0 {
		return body[:sp], strings.TrimSpace(body[sp+1:]), true
	}
	return body, "", true
}

// isReferenceScalar reports whether text is one of the two reference scalar
// shapes, which contain colons yet are scalars.
func isReferenceScalar(text string) bool {
	if _, ok := ParseEntityRef(text); ok {
		return true
	}
	_, ok := ParseAssetRef(text)
	return ok
}
