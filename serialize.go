package scenekit

import (
	"strings"

	"pkg.scenekit.dev/scenekit/assetdoc"
)

// Fresh emission columns. Hierarchy members sit one unit in, part items two,
// part members three, component headers four, component properties five.
const (
	hierMemberDepth = 1
	partMemberDepth = 3
	compHeadDepth   = 4
	compPropDepth   = 5
)

const serializedVersion = "{Assets: 2}"

// Serialize renders the whole document. An untouched document comes back as
// the loaded text (line endings normalized to LF); otherwise the header and
// every untouched entity pass through verbatim while touched entities are
// re-serialized around their never-materialized component slots.
func (c *Content) Serialize() string {
	if c.pristine() {
		var b strings.Builder
		for _, ln := range c.store.Slice(assetdoc.Range{Start: 0, End: c.store.Len()}) {
			b.WriteString(ln)
			b.WriteByte('\n')
		}
		return b.String()
	}

	var b strings.Builder
	if !c.headerDirty && c.headerSpan.Len() > 0 {
		for _, ln := range c.store.Slice(c.headerSpan) {
			b.WriteString(ln)
			b.WriteByte('\n')
		}
	} else {
		b.WriteString("!" + c.kindTag + "\n")
		b.WriteString("Id: " + c.docID + "\n")
		b.WriteString("SerializedVersion: " + serializedVersion + "\n")
		b.WriteString("Tags: []\n")
	}

	b.WriteString("Hierarchy:\n")
	if len(c.roots) == 0 {
		b.WriteString(pad(hierMemberDepth) + "RootParts: []\n")
	} else {
		b.WriteString(pad(hierMemberDepth) + "RootParts:\n")
		for _, r := range c.roots {
			b.WriteString(pad(hierMemberDepth+1) + "- ")
			if r.tag != "" {
				b.WriteString("!" + r.tag + " ")
			}
			b.WriteString(assetdoc.FormatEntityRef(r.id))
			b.WriteByte('\n')
		}
	}
	if len(c.parts) == 0 {
		b.WriteString(pad(hierMemberDepth) + "Parts: []\n")
	} else {
		b.WriteString(pad(hierMemberDepth) + "Parts:\n")
		for _, e := range c.parts {
			c.writeEntity(&b, e)
		}
	}
	return b.String()
}

// pristine reports whether the loaded text can be returned as-is: nothing
// structural changed, the header is intact, and no entity needs a rewrite.
func (c *Content) pristine() bool {
	if c.headerDirty || c.structDirty || c.store == nil || c.store.Len() == 0 {
		return false
	}
	for _, e := range c.parts {
		if e.needsRewrite() {
			return false
		}
	}
	return true
}

// writeEntity emits one part item: the captured lines verbatim when nothing
// about the entity changed, a fresh rendering otherwise.
func (c *Content) writeEntity(b *strings.Builder, e *Entity) {
	if !e.needsRewrite() {
		// Shift foreign indentation so the item still nests under the
		// regenerated "Parts:" member.
		delta := (partMemberDepth-1)*4 - c.store.Indent(e.span.Start)
		reindentInto(b, c.store.Slice(e.span), delta)
		return
	}

	b.WriteString(pad(partMemberDepth-1) + "-   Id: " + e.id + "\n")
	assetdoc.WriteKeyed(b, "Name", assetdoc.String(e.name), partMemberDepth)
	if e.folder != "" {
		assetdoc.WriteKeyed(b, "Folder", assetdoc.String(e.folder), partMemberDepth)
	}
	if e.base != nil {
		assetdoc.WriteKeyed(b, "Base", e.base, partMemberDepth)
	}
	if len(e.children) > 0 {
		refs := assetdoc.NewSeq()
		for _, id := range e.children {
			refs.Append(assetdoc.RawString(assetdoc.FormatEntityRef(id)))
		}
		assetdoc.WriteKeyed(b, "Children", refs, partMemberDepth)
	}

	plans := e.slotPlans()
	if len(plans) == 0 {
		b.WriteString(pad(partMemberDepth) + "Components: []\n")
		return
	}
	b.WriteString(pad(partMemberDepth) + "Components:\n")
	for _, plan := range plans {
		if plan.comp != nil {
			writeComponent(b, plan.comp)
			continue
		}
		// Untouched slot text nests under the regenerated "Components:" key,
		// which may sit at a different column than the source did.
		delta := compHeadDepth*4 - c.store.Indent(plan.span.Start)
		reindentInto(b, c.store.Slice(plan.span), delta)
	}
}

// reindentInto writes lines shifted by delta columns: positive prepends
// spaces, negative strips leading spaces where present. Blank lines pass
// through untouched, and relative nesting inside the run is preserved.
func reindentInto(b *strings.Builder, lines []string, delta int) {
	for _, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			b.WriteString(ln)
			b.WriteByte('\n')
			continue
		}
		switch {
		case delta > 0:
			b.WriteString(strings.Repeat(" ", delta))
			b.WriteString(ln)
		case delta < 0:
			i := 0
			for i < len(ln) && i < -delta && ln[i] == ' ' {
				i++
			}
			b.WriteString(ln[i:])
		default:
			b.WriteString(ln)
		}
		b.WriteByte('\n')
	}
}

// slotPlan is one component's emission decision: serialize the materialized
// object, or pass the captured lines through untouched.
type slotPlan struct {
	comp *Component
	span assetdoc.Range
}

// slotPlans orders the entity's components for emission: raw slots in
// document order (materialized ones swapped in place, removed ones dropped),
// then components added after load. A removed-and-re-added type moves to the
// end; its old text never resurfaces.
func (e *Entity) slotPlans() []slotPlan {
	var plans []slotPlan
	seen := map[string]struct{}{}
	for _, s := range e.rawSlots() {
		if _, gone := e.removed[s.typeName]; gone {
			continue
		}
		if _, dup := seen[s.typeName]; dup {
			continue
		}
		seen[s.typeName] = struct{}{}
		if comp, ok := e.comps[s.typeName]; ok {
			plans = append(plans, slotPlan{comp: comp})
		} else {
			plans = append(plans, slotPlan{span: s.span})
		}
	}
	for _, t := range e.compOrder {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if comp, ok := e.comps[t]; ok {
			plans = append(plans, slotPlan{comp: comp})
		}
	}
	return plans
}

// writeComponent emits "<key>: !<Type>" with the component id as the first
// property.
func writeComponent(b *strings.Builder, comp *Component) {
	b.WriteString(pad(compHeadDepth))
	b.WriteString(comp.key + ": !" + comp.typeName + "\n")
	b.WriteString(pad(compPropDepth) + "Id: " + comp.id + "\n")
	assetdoc.WriteValue(b, comp.props, compPropDepth)
}

func pad(depth int) string {
	return strings.Repeat("    ", depth)
}
