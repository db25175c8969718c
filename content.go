package scenekit

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pkg.scenekit.dev/scenekit/assetdoc"
)

// Default component attached to every created entity.
const TransformComponentType = "TransformComponent"

// rootRef is one entry of the document's root-id list. The optional tag
// round-trips.
type rootRef struct {
	tag string
	id  string
}

// Content is the entity/component graph of one document. Load parses only
// the hierarchy scaffolding and each entity's eager fields; component bodies
// stay as captured line ranges until first access. Not safe for
// unsynchronized concurrent mutation.
type Content struct {
	store       *assetdoc.LineStore
	log         zerolog.Logger
	kindTag     string
	docID       string
	headerSpan  assetdoc.Range
	headerDirty bool
	structDirty bool
	roots       []rootRef
	parts       []*Entity
	byID        map[string]*Entity
}

// parseContent builds a graph from text. Malformed content never fails the
// load; the worst hand-corrupted input still yields an empty, usable
// document.
func parseContent(text, defaultKind string, opts ...Option) *Content {
	c := &Content{
		log:     log.Logger,
		kindTag: "",
		byID:    map[string]*Entity{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.store = assetdoc.NewLineStore(text)
	store := c.store

	hier := -1
	for i := 0; i < store.Len(); i++ {
		if store.IsBlank(i) || store.Indent(i) != 0 {
			continue
		}
		cnt := store.Content(i)
		if strings.HasPrefix(cnt, "!") && c.kindTag == "" {
			c.kindTag = strings.TrimSpace(cnt[1:])
			continue
		}
		key, rest, ok := assetdoc.SplitKeyValue(cnt)
		if !ok {
			continue
		}
		if key == "Id" && c.docID == "" {
			c.docID = rest
		}
		if key == "Hierarchy" {
			hier = i
			break
		}
	}

	if c.kindTag == "" {
		c.kindTag = defaultKind
		c.headerDirty = true
	}
	if c.docID == "" {
		c.docID = uuid.NewString()
		c.headerDirty = true
	}
	if hier < 0 {
		c.headerDirty = true
		c.log.Debug().Msg("document has no hierarchy block")
		return c
	}
	c.headerSpan = assetdoc.Range{Start: 0, End: hier}
	c.parseHierarchy(hier)
	c.log.Debug().
		Int("entities", len(c.parts)).
		Int("roots", len(c.roots)).
		Str("kind", c.kindTag).
		Msg("document loaded")
	return c
}

func (c *Content) parseHierarchy(hier int) {
	store := c.store
	p := assetdoc.NewParser(store, c.log)
	end := store.BlockEnd(hier)
	memberIndent := -1
	i := hier + 1
	for i < end {
		if store.IsBlank(i) {
			i++
			continue
		}
		ind := store.Indent(i)
		if memberIndent < 0 {
			memberIndent = ind
		}
		if ind != memberIndent {
			i++
			continue
		}
		key, rest, ok := assetdoc.SplitKeyValue(store.Content(i))
		if !ok {
			i++
			continue
		}
		switch key {
		case "RootParts":
			if rest != "" {
				i++ // "RootParts: []" or malformed inline value
				continue
			}
			refs, next := p.ParseBlock(i+1, memberIndent)
			for _, item := range refs.Items() {
				text, _ := item.AsString()
				if ref, ok := assetdoc.ParseEntityRef(text); ok {
					c.roots = append(c.roots, rootRef{tag: item.Tag(), id: ref.ID})
				}
			}
			i = next
		case "Parts":
			if rest != "" {
				i++
				continue
			}
			i = c.parseParts(i, memberIndent, end)
		default:
			i++
		}
	}
}

// parseParts walks the part list, capturing one entity per item. Only the
// eager fields (Id, Name, Folder, Children, Base) are parsed; component
// bodies are left as raw ranges.
func (c *Content) parseParts(partsLine, partsIndent, hierEnd int) int {
	store := c.store
	end := store.BlockEnd(partsLine)
	if end > hierEnd {
		end = hierEnd
	}
	i := partsLine + 1
	for i < end {
		if store.IsBlank(i) {
			i++
			continue
		}
		ind := store.Indent(i)
		if ind <= partsIndent {
			break
		}
		cnt := store.Content(i)
		if cnt != "-" && !strings.HasPrefix(cnt, "- ") {
			c.log.Warn().Int("line", i+1).Msg("skipping non-item line in part list")
			i++
			continue
		}
		itemEnd := store.BlockEnd(i)
		if itemEnd > end {
			itemEnd = end
		}
		if e := c.scanPart(i, itemEnd); e != nil {
			c.parts = append(c.parts, e)
			c.byID[e.id] = e
		}
		i = itemEnd
	}
	return i
}

// scanPart eagerly parses one entity item's identity fields and records its
// raw span for everything else.
func (c *Content) scanPart(start, end int) *Entity {
	store := c.store
	p := assetdoc.NewParser(store, c.log)
	e := newEntity(c, "")
	e.span = assetdoc.Range{Start: start, End: end}

	cnt := store.Content(start)
	rest := strings.TrimLeft(strings.TrimPrefix(cnt, "-"), " ")
	restCol := store.Indent(start) + (len(cnt) - len(rest))
	e.bodyIndent = restCol

	scanField := func(line int, text string) {
		key, val, ok := assetdoc.SplitKeyValue(text)
		if !ok {
			return
		}
		switch key {
		case "Id":
			e.id = val
		case "Name":
			e.name = scalarString(val)
		case "Folder":
			e.folder = scalarString(val)
		case "Children":
			if val != "" {
				return // "Children: []"
			}
			refs, _ := p.ParseBlock(line+1, restCol)
			for _, item := range refs.Items() {
				text, _ := item.AsString()
				if ref, ok := assetdoc.ParseEntityRef(text); ok {
					e.children = append(e.children, ref.ID)
				}
			}
		case "Base":
			if val != "" {
				return
			}
			base, _ := p.ParseBlock(line+1, restCol)
			if base.Kind() == assetdoc.KindMap {
				e.base = base
			}
		case "Components":
			e.componentsLine = line
		}
	}

	if rest != "" {
		scanField(start, rest)
	}
	for i := start + 1; i < end; i++ {
		if store.IsBlank(i) || store.Indent(i) != restCol {
			continue
		}
		scanField(i, store.Content(i))
	}
	if e.id == "" {
		c.log.Warn().Int("line", start+1).Msg("part item without an id")
		e.id = uuid.NewString()
		e.dirty = true
	}
	return e
}

// scalarString extracts the string form of an eagerly parsed scalar field,
// falling back to its raw text for non-string shapes.
func scalarString(text string) string {
	v := assetdoc.ParseScalar(text)
	if s, ok := v.AsString(); ok {
		return s
	}
	return text
}

// Kind returns the document's kind tag (e.g. "SceneAsset").
func (c *Content) Kind() string { return c.kindTag }

// ID returns the document's asset id.
func (c *Content) ID() string { return c.docID }

// Len returns the number of entities in the document.
func (c *Content) Len() int { return len(c.parts) }

// CreateEntity creates an entity with a fresh id and a default transform
// component. With parentID == "" it registers as a root; otherwise it is
// appended to the parent's child list.
func (c *Content) CreateEntity(name, parentID string) (*Entity, error) {
	var parent *Entity
	if parentID != "" {
		parent = c.byID[parentID]
		if parent == nil {
			return nil, eris.Wrap(ErrEntityNotFound, parentID)
		}
	}
	e := newEntity(c, uuid.NewString())
	e.name = name
	e.dirty = true
	transform, err := e.AddComponent(TransformComponentType)
	if err != nil {
		return nil, err
	}
	transform.Set("Position", vector3(0, 0, 0))
	transform.Set("Rotation", quaternionIdentity())
	transform.Set("Scale", vector3(1, 1, 1))

	c.structDirty = true
	c.parts = append(c.parts, e)
	c.byID[e.id] = e
	if parent != nil {
		parent.addChild(e.id)
	} else {
		c.roots = append(c.roots, rootRef{id: e.id})
	}
	return e, nil
}

// RemoveEntity removes the entity from its parent's child list (or the root
// list) and from the lookup tables. No tombstone remains; references left
// dangling by the removal are the caller's responsibility.
func (c *Content) RemoveEntity(id string) error {
	e := c.byID[id]
	if e == nil {
		return eris.Wrap(ErrEntityNotFound, id)
	}
	c.structDirty = true
	c.detach(id)
	delete(c.byID, id)
	for i, part := range c.parts {
		if part == e {
			c.parts = append(c.parts[:i], c.parts[i+1:]...)
			break
		}
	}
	return nil
}

// detach removes id from whichever child list or root slot holds it.
func (c *Content) detach(id string) {
	for i, r := range c.roots {
		if r.id == id {
			c.roots = append(c.roots[:i], c.roots[i+1:]...)
			return
		}
	}
	for _, e := range c.parts {
		if e.removeChild(id) {
			return
		}
	}
}

// ParentOf returns the entity whose child list holds id, nil for roots and
// unknown ids. A pure reverse scan, never a cached field.
func (c *Content) ParentOf(id string) *Entity {
	for _, e := range c.parts {
		for _, child := range e.children {
			if child == id {
				return e
			}
		}
	}
	return nil
}

// Reparent moves an entity under a new parent, or to the root list when
// parentID == "". Moving an entity under its own subtree fails.
func (c *Content) Reparent(id, parentID string) error {
	e := c.byID[id]
	if e == nil {
		return eris.Wrap(ErrEntityNotFound, id)
	}
	if parentID != "" {
		parent := c.byID[parentID]
		if parent == nil {
			return eris.Wrap(ErrEntityNotFound, parentID)
		}
		for p := parent; p != nil; p = c.ParentOf(p.id) {
			if p.id == id {
				return eris.Wrap(ErrCyclicReparent, id)
			}
		}
	}
	c.structDirty = true
	c.detach(id)
	if parentID == "" {
		c.roots = append(c.roots, rootRef{id: id})
		return nil
	}
	c.byID[parentID].addChild(id)
	return nil
}

// CloneEntity deep-copies the entity subtree rooted at id. Every cloned
// entity and component gets a fresh id, and every component a fresh key;
// property values and provenance carry over.
func (c *Content) CloneEntity(id, parentID string) (*Entity, error) {
	src := c.byID[id]
	if src == nil {
		return nil, eris.Wrap(ErrEntityNotFound, id)
	}
	if parentID != "" && c.byID[parentID] == nil {
		return nil, eris.Wrap(ErrEntityNotFound, parentID)
	}
	c.structDirty = true
	clone := c.cloneSubtree(src)
	if parentID == "" {
		c.roots = append(c.roots, rootRef{id: clone.id})
	} else {
		c.byID[parentID].addChild(clone.id)
	}
	return clone, nil
}

func (c *Content) cloneSubtree(src *Entity) *Entity {
	e := newEntity(c, uuid.NewString())
	e.name = src.name
	e.folder = src.folder
	e.dirty = true
	if src.base != nil {
		e.base = src.base.Clone()
	}
	for _, typeName := range src.Components() {
		comp := src.GetComponent(typeName)
		if comp == nil {
			continue
		}
		dup := comp.clone()
		e.comps[typeName] = dup
		e.compOrder = append(e.compOrder, typeName)
	}
	c.parts = append(c.parts, e)
	c.byID[e.id] = e
	for _, childID := range src.children {
		child := c.byID[childID]
		if child == nil {
			continue
		}
		e.children = append(e.children, c.cloneSubtree(child).id)
	}
	return e
}

// ResolveEntityRef resolves a reference against this document. A missing
// target yields nil, never an error; resolution is a pure lookup and is
// never cached on the reference.
func (c *Content) ResolveEntityRef(ref assetdoc.EntityRef) *Entity {
	return c.byID[ref.ID]
}

func vector3(x, y, z float64) *assetdoc.Value {
	v := assetdoc.NewInlineMap()
	v.MapSet("X", assetdoc.Float(x))
	v.MapSet("Y", assetdoc.Float(y))
	v.MapSet("Z", assetdoc.Float(z))
	return v
}

func quaternionIdentity() *assetdoc.Value {
	v := assetdoc.NewInlineMap()
	v.MapSet("X", assetdoc.Float(0))
	v.MapSet("Y", assetdoc.Float(0))
	v.MapSet("Z", assetdoc.Float(0))
	v.MapSet("W", assetdoc.Float(1))
	return v
}
