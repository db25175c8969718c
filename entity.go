package scenekit

import (
	"pkg.scenekit.dev/scenekit/assetdoc"
)

// Entity is a named hierarchy node holding a component registry. Parsed
// entities keep a captured raw line range and materialize components on
// first access; entities created through the document start touched and have
// no raw backing. Parentage is derived, never stored: an entity's parent is
// whichever other entity lists its id as a child.
type Entity struct {
	doc    *Content
	id     string
	name   string
	folder string

	// children holds ids in order. Every non-root id appears in exactly one
	// child list; every root id appears in the document's root list only.
	children []string

	// base is the provenance block for prefab-instance entities; nil
	// otherwise. It round-trips unchanged through parse/serialize cycles.
	base *assetdoc.Value

	// Raw backing for parsed entities. componentsLine indexes the
	// "Components:" member inside span, -1 when absent.
	span           assetdoc.Range
	bodyIndent     int
	componentsLine int

	comps     map[string]*Component
	compOrder []string
	removed   map[string]struct{}
	dirty     bool
}

func newEntity(doc *Content, id string) *Entity {
	return &Entity{
		doc:            doc,
		id:             id,
		componentsLine: -1,
		comps:          map[string]*Component{},
		removed:        map[string]struct{}{},
	}
}

func (e *Entity) ID() string     { return e.id }
func (e *Entity) Name() string   { return e.name }
func (e *Entity) Folder() string { return e.folder }

// SetName renames the entity.
func (e *Entity) SetName(name string) {
	if e.name != name {
		e.name = name
		e.dirty = true
	}
}

// SetFolder moves the entity to an organizational folder path. Folders are
// non-structural; "" clears the assignment.
func (e *Entity) SetFolder(folder string) {
	if e.folder != folder {
		e.folder = folder
		e.dirty = true
	}
}

// Children returns the ordered child-id list. The slice is a copy.
func (e *Entity) Children() []string {
	out := make([]string, len(e.children))
	copy(out, e.children)
	return out
}

// Base returns the provenance block of a prefab-instance entity, nil for
// plain entities.
func (e *Entity) Base() *assetdoc.Value { return e.base }

// Provenance unpacks the base block: the source prefab asset, the id of the
// entity inside it, and this instance's stable id.
func (e *Entity) Provenance() (asset assetdoc.AssetRef, basePartID, instanceID string, ok bool) {
	if e.base == nil {
		return assetdoc.AssetRef{}, "", "", false
	}
	raw, _ := e.base.MapGet("BasePartAsset").AsString()
	asset, ok = assetdoc.ParseAssetRef(raw)
	basePartID, _ = e.base.MapGet("BasePartId").AsString()
	instanceID, _ = e.base.MapGet("InstanceId").AsString()
	return asset, basePartID, instanceID, ok
}

// SetProvenance records the prefab-instance association on the entity.
func (e *Entity) SetProvenance(asset assetdoc.AssetRef, basePartID, instanceID string) {
	base := assetdoc.NewMap()
	base.MapSet("BasePartAsset", assetdoc.RawString(asset.String()))
	base.MapSet("BasePartId", assetdoc.RawString(basePartID))
	base.MapSet("InstanceId", assetdoc.RawString(instanceID))
	e.base = base
	e.dirty = true
}

// Ref returns the entity's reference scalar.
func (e *Entity) Ref() assetdoc.EntityRef {
	return assetdoc.EntityRef{ID: e.id}
}

// needsRewrite reports whether the entity can no longer be emitted verbatim:
// any materialized, added or removed component, or any mutation of its eager
// fields, forces fresh serialization on save.
func (e *Entity) needsRewrite() bool {
	return e.dirty || len(e.comps) > 0 || len(e.removed) > 0 || e.span.Empty()
}

func (e *Entity) addChild(id string) {
	e.children = append(e.children, id)
	e.dirty = true
}

func (e *Entity) removeChild(id string) bool {
	for i, c := range e.children {
		if c == id {
			e.children = append(e.children[:i], e.children[i+1:]...)
			e.dirty = true
			return true
		}
	}
	return false
}
