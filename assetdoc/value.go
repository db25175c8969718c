package assetdoc

import (
	"strconv"
	"strings"
)

// Kind discriminates the variants of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindMap
	KindSeq
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindMap:
		return "map"
	case KindSeq:
		return "seq"
	}
	return "invalid"
}

// MapEntry is one key/value pair of an ordered mapping.
type MapEntry struct {
	Key   string
	Value *Value
}

// Value is the tagged variant at the heart of the document model: a scalar
// that remembers its literal textual shape, an ordered mapping, or a
// sequence. GUID-keyed identity lists and compound dictionaries are ordered
// mappings whose key shapes are owned by the key codec in keys.go.
type Value struct {
	kind    Kind
	tag     string // type tag without the leading '!', "" when untagged
	raw     string // literal scalar text as it appeared in the document
	b       bool
	i       int64
	f       float64
	s       string
	entries []MapEntry
	index   map[string]int
	seq     []*Value
	inline  bool // emit as flow {..}/[..] instead of block form
}

// Null returns the null scalar. The literal string "null" is distinct from
// key absence, so it carries a raw shape like every other scalar.
func Null() *Value {
	return &Value{kind: KindNull, raw: "null"}
}

// Bool returns a bool scalar.
func Bool(b bool) *Value {
	v := &Value{kind: KindBool, b: b, raw: "false"}
	if b {
		v.raw = "true"
	}
	return v
}

// Int returns an integer scalar. Its rendered form never gains a decimal
// point.
func Int(i int64) *Value {
	return &Value{kind: KindInt, i: i, raw: strconv.FormatInt(i, 10)}
}

// Float returns a float scalar. Its rendered form always keeps at least one
// fractional digit.
func Float(f float64) *Value {
	return &Value{kind: KindFloat, f: f, raw: formatFloat(f)}
}

// String returns a string scalar.
func String(s string) *Value {
	return &Value{kind: KindString, s: s}
}

// RawString returns a string scalar that serializes exactly as text. Used
// for reference scalars and other shapes that must not be re-quoted.
func RawString(text string) *Value {
	return &Value{kind: KindString, s: text, raw: text}
}

// NewMap returns an empty ordered mapping.
func NewMap() *Value {
	return &Value{kind: KindMap, index: map[string]int{}}
}

// NewInlineMap returns an empty mapping flagged for flow emission, e.g.
// geometric vectors {X: 0.0, Y: 0.0}.
func NewInlineMap() *Value {
	m := NewMap()
	m.inline = true
	return m
}

// NewSeq returns an empty sequence.
func NewSeq() *Value {
	return &Value{kind: KindSeq}
}

func (v *Value) Kind() Kind  { return v.kind }
func (v *Value) Tag() string { return v.tag }

// SetTag sets the '!'-tag carried by the value (without the bang).
func (v *Value) SetTag(tag string) { v.tag = tag }

// Inline reports whether the value is emitted in flow form.
func (v *Value) Inline() bool      { return v.inline }
func (v *Value) SetInline(on bool) { v.inline = on }

// Raw returns the literal scalar text, or "" when the value was built
// programmatically without one.
func (v *Value) Raw() string { return v.raw }

// AsBool returns the bool payload.
func (v *Value) AsBool() (bool, bool) {
	if v == nil {
		return false, false
	}
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsInt returns the integer payload. Floats do not coerce; integer-vs-float
// shape is load-bearing.
func (v *Value) AsInt() (int64, bool) {
	if v == nil {
		return 0, false
	}
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// AsFloat returns the float payload, accepting ints since a loader does.
func (v *Value) AsFloat() (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// AsString returns the string payload.
func (v *Value) AsString() (string, bool) {
	if v == nil {
		return "", false
	}
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// IsNull reports whether the value is the null scalar.
func (v *Value) IsNull() bool { return v == nil || v.kind == KindNull }

// Len returns the entry count of a mapping or sequence, 0 otherwise.
func (v *Value) Len() int {
	switch v.kind {
	case KindMap:
		return len(v.entries)
	case KindSeq:
		return len(v.seq)
	default:
		return 0
	}
}

// MapGet returns the value under key, or nil when absent or not a mapping.
// When duplicate keys exist the last entry wins, matching loader behavior.
func (v *Value) MapGet(key string) *Value {
	if v == nil {
		return nil
	}
	if v.kind != KindMap {
		return nil
	}
	i, ok := v.index[key]
	if !ok {
		return nil
	}
	return v.entries[i].Value
}

// MapSet sets key to val, appending when the key is new. Insertion order is
// preserved on emission.
func (v *Value) MapSet(key string, val *Value) {
	if v.kind != KindMap {
		return
	}
	if i, ok := v.index[key]; ok {
		v.entries[i].Value = val
		return
	}
	v.index[key] = len(v.entries)
	v.entries = append(v.entries, MapEntry{Key: key, Value: val})
}

// mapAppend appends an entry even when the key already exists. Compound
// dictionaries legally hold duplicate UserKeys under distinct GUIDs; this is
// the primitive the key codec builds on.
func (v *Value) mapAppend(key string, val *Value) {
	if v.kind != KindMap {
		return
	}
	v.index[key] = len(v.entries)
	v.entries = append(v.entries, MapEntry{Key: key, Value: val})
}

// MapDelete removes every entry stored under key and reports whether any
// existed.
func (v *Value) MapDelete(key string) bool {
	if v.kind != KindMap {
		return false
	}
	kept := v.entries[:0]
	removed := false
	for _, e := range v.entries {
		if e.Key == key {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if removed {
		v.entries = kept
		v.reindex()
	}
	return removed
}

// Entries returns the mapping's entries in insertion order. The slice is
// shared; callers must not append to it.
func (v *Value) Entries() []MapEntry {
	if v.kind != KindMap {
		return nil
	}
	return v.entries
}

// Keys returns the mapping's keys in insertion order.
func (v *Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	keys := make([]string, len(v.entries))
	for i, e := range v.entries {
		keys[i] = e.Key
	}
	return keys
}

func (v *Value) reindex() {
	v.index = make(map[string]int, len(v.entries))
	for i, e := range v.entries {
		v.index[e.Key] = i
	}
}

// Append adds an element to a sequence.
func (v *Value) Append(item *Value) {
	if v.kind != KindSeq {
		return
	}
	v.seq = append(v.seq, item)
}

// Items returns the elements of a sequence in order.
func (v *Value) Items() []*Value {
	if v.kind != KindSeq {
		return nil
	}
	return v.seq
}

// Clone deep-copies the value. Raw shapes, tags and inline flags carry over
// so a clone serializes identically to its source.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	out := &Value{
		kind:   v.kind,
		tag:    v.tag,
		raw:    v.raw,
		b:      v.b,
		i:      v.i,
		f:      v.f,
		s:      v.s,
		inline: v.inline,
	}
	switch v.kind {
	case KindMap:
		out.index = map[string]int{}
		for _, e := range v.entries {
			out.mapAppend(e.Key, e.Value.Clone())
		}
	case KindSeq:
		out.seq = make([]*Value, len(v.seq))
		for i, item := range v.seq {
			out.seq[i] = item.Clone()
		}
	}
	return out
}

// Interface converts the value tree into plain Go data (nil, bool, int64,
// float64, string, map-as-ordered pairs flattened to map[string]any,
// []any). Duplicate mapping keys collapse to the last entry; snapshots feed
// diffing, not round-trips.
func (v *Value) Interface() any {
	if v == nil {
		return nil
	}
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindMap:
		m := make(map[string]any, len(v.entries))
		for _, e := range v.entries {
			m[e.Key] = e.Value.Interface()
		}
		return m
	case KindSeq:
		items := make([]any, len(v.seq))
		for i, item := range v.seq {
			items[i] = item.Interface()
		}
		return items
	}
	return nil
}

// ParseScalar classifies scalar text, retaining its literal shape. Reference
// scalars classify as strings even though they contain colons.
func ParseScalar(text string) *Value {
	text = strings.TrimSpace(text)
	switch text {
	case "null", "~":
		return &Value{kind: KindNull, raw: text}
	case "true":
		return &Value{kind: KindBool, b: true, raw: text}
	case "false":
		return &Value{kind: KindBool, b: false, raw: text}
	}
	if _, ok := ParseEntityRef(text); ok {
		return RawString(text)
	}
	if _, ok := ParseAssetRef(text); ok {
		return RawString(text)
	}
	if len(text) >= 2 && (text[0] == '"' || text[0] == '\'') && text[len(text)-1] == text[0] {
		unquoted, err := unquote(text)
		if err == nil {
			return &Value{kind: KindString, s: unquoted, raw: text}
		}
		return RawString(text)
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return &Value{kind: KindInt, i: i, raw: text}
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && looksNumeric(text) {
		return &Value{kind: KindFloat, f: f, raw: text}
	}
	return RawString(text)
}

// looksNumeric guards ParseFloat's permissiveness: "Infinity", "nan" and hex
// shapes stay strings.
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' || r == 'e' || r == 'E':
		case (r == '+' || r == '-') && (i == 0 || s[i-1] == 'e' || s[i-1] == 'E'):
		default:
			return false
		}
	}
	return true
}

func unquote(text string) (string, error) {
	if text[0] == '\'' {
		inner := text[1 : len(text)-1]
		return strings.ReplaceAll(inner, "''", "'"), nil
	}
	return strconv.Unquote(text)
}

// formatFloat renders f with at least one fractional digit so the value
// reloads as a float.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
