package assetdoc

import "strings"

// indentUnit is the emission indent step. Tabs never appear in output.
const indentUnit = "    "

// The writer serializes materialized values with fixed formatting rules the
// target loader enforces exactly: mappings in block form at working indent
// (inline only when flagged), floats with at least one fractional digit,
// integers without one, empty collections as "[]"/"{}" on the key line and
// populated ones always in block form, never mixed. It never fails on a
// partial value; what is missing is simply omitted.

// WriteValue appends the block-form rendering of v at depth to b. The caller
// owns the "key:" or "- " line that introduced v; WriteValue emits only the
// members.
func WriteValue(b *strings.Builder, v *Value, depth int) {
	if v == nil {
		return
	}
	switch v.Kind() {
	case KindMap:
		for _, e := range v.Entries() {
			writeKeyed(b, e.Key, e.Value, depth)
		}
	case KindSeq:
		for _, item := range v.Items() {
			writeSeqItem(b, item, depth)
		}
	default:
		writeIndent(b, depth)
		b.WriteString(ScalarText(v))
		b.WriteByte('\n')
	}
}

// WriteKeyed appends "key: ..." for v at depth, choosing scalar, flow, empty
// or block form.
func WriteKeyed(b *strings.Builder, key string, v *Value, depth int) {
	writeKeyed(b, key, v, depth)
}

func writeKeyed(b *strings.Builder, key string, v *Value, depth int) {
	if v == nil {
		return
	}
	writeIndent(b, depth)
	b.WriteString(key)
	b.WriteByte(':')
	writeTagSuffix(b, v)
	switch {
	case v.Kind() == KindMap && v.Len() == 0:
		b.WriteString(" {}\n")
	case v.Kind() == KindSeq && v.Len() == 0:
		b.WriteString(" []\n")
	case v.Kind() == KindMap && v.Inline():
		b.WriteByte(' ')
		writeFlow(b, v)
		b.WriteByte('\n')
	case v.Kind() == KindMap || v.Kind() == KindSeq:
		b.WriteByte('\n')
		WriteValue(b, v, depth+1)
	default:
		b.WriteByte(' ')
		b.WriteString(ScalarText(v))
		b.WriteByte('\n')
	}
}

func writeSeqItem(b *strings.Builder, item *Value, depth int) {
	if item == nil {
		return
	}
	switch {
	case item.Kind() == KindMap && !item.Inline() && item.Len() > 0:
		// Mapping item: first entry rides the dash line, the rest align
		// under it one unit deeper than the dash.
		writeIndent(b, depth)
		b.WriteString("-")
		if item.Tag() != "" {
			b.WriteString(" !")
			b.WriteString(item.Tag())
			b.WriteByte('\n')
			WriteValue(b, item, depth+1)
			return
		}
		entries := item.Entries()
		first := entries[0]
		if ridesDashLine(first.Value) {
			var firstLine strings.Builder
			writeKeyed(&firstLine, first.Key, first.Value, 0)
			b.WriteString("   ")
			b.WriteString(firstLine.String())
			entries = entries[1:]
		} else {
			b.WriteByte('\n')
		}
		for _, e := range entries {
			writeKeyed(b, e.Key, e.Value, depth+1)
		}
	case item.Kind() == KindSeq && item.Len() > 0 && !item.Inline():
		writeIndent(b, depth)
		b.WriteString("-")
		writeTagSuffix(b, item)
		b.WriteByte('\n')
		WriteValue(b, item, depth+1)
	default:
		writeIndent(b, depth)
		b.WriteString("-")
		writeTagSuffix(b, item)
		b.WriteByte(' ')
		if item.Kind() == KindMap {
			if item.Len() == 0 {
				b.WriteString("{}")
			} else {
				writeFlow(b, item)
			}
		} else if item.Kind() == KindSeq {
			if item.Len() == 0 {
				b.WriteString("[]")
			} else {
				writeFlow(b, item)
			}
		} else {
			b.WriteString(ScalarText(item))
		}
		b.WriteByte('\n')
	}
}

// ridesDashLine reports whether a mapping item's first value can share the
// dash line (scalars, flow maps and empty collections can; block collections
// cannot).
func ridesDashLine(v *Value) bool {
	if v == nil {
		return false
	}
	switch v.Kind() {
	case KindMap:
		return v.Inline() || v.Len() == 0
	case KindSeq:
		return v.Len() == 0
	default:
		return true
	}
}

func writeTagSuffix(b *strings.Builder, v *Value) {
	if v.Tag() != "" {
		b.WriteString(" !")
		b.WriteString(v.Tag())
	}
}

// writeFlow renders an inline collection: {K: v, K: v} or [v, v].
func writeFlow(b *strings.Builder, v *Value) {
	switch v.Kind() {
	case KindMap:
		b.WriteByte('{')
		for i, e := range v.Entries() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.Key)
			b.WriteString(": ")
			writeFlowValue(b, e.Value)
		}
		b.WriteByte('}')
	case KindSeq:
		b.WriteByte('[')
		for i, item := range v.Items() {
			if i > 0 {
				b.WriteString(", ")
			}
			writeFlowValue(b, item)
		}
		b.WriteByte(']')
	default:
		b.WriteString(ScalarText(v))
	}
}

func writeFlowValue(b *strings.Builder, v *Value) {
	if v == nil {
		b.WriteString("null")
		return
	}
	if v.Kind() == KindMap || v.Kind() == KindSeq {
		writeFlow(b, v)
		return
	}
	b.WriteString(ScalarText(v))
}

// ScalarText renders a scalar in its wire shape: the retained literal when
// one exists, canonical formatting otherwise.
func ScalarText(v *Value) string {
	if v == nil {
		return "null"
	}
	if raw := v.Raw(); raw != "" {
		return raw
	}
	switch v.Kind() {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt:
		// Never a decimal point.
		return Int(v.i).raw
	case KindFloat:
		// Always at least one fractional digit.
		return formatFloat(v.f)
	case KindString:
		return quoteIfNeeded(v.s)
	}
	return ""
}

// quoteIfNeeded quotes fresh strings whose bare form would reparse as
// something else. Reference scalars and plain words stay bare.
func quoteIfNeeded(s string) string {
	if s == "" {
		return `''`
	}
	if isReferenceScalar(s) {
		return s
	}
	bare := ParseScalar(s)
	if str, ok := bare.AsString(); ok && str == s && bare.Raw() == s {
		if !strings.ContainsAny(s, ":#{}[]\n") && s == strings.TrimSpace(s) {
			return s
		}
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(indentUnit)
	}
}
