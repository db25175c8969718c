package scenekit

import (
	"github.com/wI2L/jsondiff"

	"pkg.scenekit.dev/scenekit/codec"
)

// Snapshot converts the whole graph into plain Go data: the document header,
// the root-id list and every entity with all components expanded. Taking a
// snapshot never populates the lazy cache, so a snapshotted document still
// serializes verbatim.
func (c *Content) Snapshot() map[string]any {
	roots := make([]any, 0, len(c.roots))
	for _, r := range c.roots {
		roots = append(roots, r.id)
	}
	parts := make([]any, 0, len(c.parts))
	for _, e := range c.parts {
		parts = append(parts, e.snapshot())
	}
	return map[string]any{
		"Kind":      c.kindTag,
		"Id":        c.docID,
		"RootParts": roots,
		"Parts":     parts,
	}
}

func (e *Entity) snapshot() map[string]any {
	m := map[string]any{
		"Id":   e.id,
		"Name": e.name,
	}
	if e.folder != "" {
		m["Folder"] = e.folder
	}
	if e.base != nil {
		m["Base"] = e.base.Interface()
	}
	if len(e.children) > 0 {
		m["Children"] = e.Children()
	}
	comps := map[string]any{}
	for _, typeName := range e.Components() {
		comp := e.peekComponent(typeName)
		if comp == nil {
			continue
		}
		props := comp.props.Interface()
		body, ok := props.(map[string]any)
		if !ok {
			body = map[string]any{}
		}
		body["Id"] = comp.id
		comps[typeName] = body
	}
	m["Components"] = comps
	return m
}

// Diff returns the JSON patch that turns a's snapshot into b's. Collection
// keys and formatting do not participate; only graph data does.
func Diff(a, b *Content) (jsondiff.Patch, error) {
	source, err := codec.Encode(a.Snapshot())
	if err != nil {
		return nil, err
	}
	target, err := codec.Encode(b.Snapshot())
	if err != nil {
		return nil, err
	}
	return jsondiff.CompareJSON(source, target)
}
