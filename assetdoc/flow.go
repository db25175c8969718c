package assetdoc

import "strings"

// ParseFlow parses an inline flow collection, "{...}" or "[...]", returning
// the best value it can along with the number of input bytes consumed. Flow
// never contains block structure. Malformed or unterminated input does not
// fail: the partial value parsed so far is returned and the remainder is
// swallowed, keeping hand-edited documents loadable.
func ParseFlow(text string) (*Value, int) {
	text = strings.TrimLeft(text, " \t")
	if text == "" {
		return Null(), 0
	}
	switch text[0] {
	case '{':
		return parseFlowMap(text)
	case '[':
		return parseFlowSeq(text)
	default:
		return ParseScalar(text), len(text)
	}
}

func parseFlowMap(text string) (*Value, int) {
	m := NewInlineMap()
	i := 1 // past '{'
	for i < len(text) {
		i = skipFlowSpace(text, i)
		if i >= len(text) {
			return m, i
		}
		if text[i] == '}' {
			return m, i + 1
		}
		if text[i] == ',' {
			i++
			continue
		}
		key, next, ok := scanFlowKey(text, i)
		if !ok {
			// No colon before the collection closes; treat the rest of
			// the element as a stray and resync at the next separator.
			i = skipFlowElement(text, i)
			continue
		}
		i = skipFlowSpace(text, next)
		var val *Value
		if i < len(text) && (text[i] == '{' || text[i] == '[') {
			nested, consumed := ParseFlow(text[i:])
			val = nested
			i += consumed
		} else {
			end := flowElementEnd(text, i)
			val = ParseScalar(text[i:end])
			i = end
		}
		m.mapAppend(key, val)
	}
	return m, i
}

func parseFlowSeq(text string) (*Value, int) {
	seq := NewSeq()
	seq.inline = true
	i := 1 // past '['
	for i < len(text) {
		i = skipFlowSpace(text, i)
		if i >= len(text) {
			return seq, i
		}
		if text[i] == ']' {
			return seq, i + 1
		}
		if text[i] == ',' {
			i++
			continue
		}
		if text[i] == '{' || text[i] == '[' {
			nested, consumed := ParseFlow(text[i:])
			seq.Append(nested)
			i += consumed
			continue
		}
		end := flowElementEnd(text, i)
		seq.Append(ParseScalar(text[i:end]))
		i = end
	}
	return seq, i
}

// scanFlowKey scans "key:" starting at i, returning the key and the index
// just past the colon.
func scanFlowKey(text string, i int) (string, int, bool) {
	for j := i; j < len(text); j++ {
		switch text[j] {
		case ':':
			return strings.TrimSpace(text[i:j]), j + 1, true
		case ',', '}', ']', '{', '[':
			return "", i, false
		}
	}
	return "", i, false
}

// flowElementEnd finds the end of a scalar element: the next separator at
// bracket depth zero, honoring quotes.
func flowElementEnd(text string, i int) int {
	depth := 0
	var quote byte
	for j := i; j < len(text); j++ {
		c := text[j]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '{', '[':
			depth++
		case '}', ']':
			if depth == 0 {
				return j
			}
			depth--
		case ',':
			if depth == 0 {
				return j
			}
		}
	}
	return len(text)
}

func skipFlowElement(text string, i int) int {
	end := flowElementEnd(text, i)
	if end < len(text) && text[end] == ',' {
		return end + 1
	}
	return end
}

func skipFlowSpace(text string, i int) int {
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return i
}
