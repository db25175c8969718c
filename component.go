package scenekit

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"pkg.scenekit.dev/scenekit/assetdoc"
)

// Component is a typed, keyed bag of properties attached to an entity. The
// type string is a bare name for built-in types, or
// "Namespace.Class,Assembly" / ".Class,Assembly" for user-defined ones (the
// leading dot is meaningful and preserved exactly). The key is a secondary
// identity used by the engine's property-tracking layer, independent of the
// id and freshly generated on every clone.
type Component struct {
	typeName string
	key      string
	id       string
	props    *assetdoc.Value
}

func (c *Component) Type() string { return c.typeName }
func (c *Component) Key() string  { return c.key }
func (c *Component) ID() string   { return c.id }

// Properties returns the ordered property map. Mutations are always visible
// on the next save; a materialized component is never emitted verbatim.
func (c *Component) Properties() *assetdoc.Value { return c.props }

// Get returns the property stored under name, nil when absent.
func (c *Component) Get(name string) *assetdoc.Value {
	return c.props.MapGet(name)
}

// Set stores a property value under name.
func (c *Component) Set(name string, v *assetdoc.Value) {
	c.props.MapSet(name, v)
}

// GetInt returns the property as an integer. Floats do not coerce.
func (c *Component) GetInt(name string) (int64, bool) {
	if v := c.Get(name); v != nil {
		return v.AsInt()
	}
	return 0, false
}

// GetFloat returns the property as a float.
func (c *Component) GetFloat(name string) (float64, bool) {
	if v := c.Get(name); v != nil {
		return v.AsFloat()
	}
	return 0, false
}

// GetString returns the property as a string.
func (c *Component) GetString(name string) (string, bool) {
	if v := c.Get(name); v != nil {
		return v.AsString()
	}
	return "", false
}

// GetBool returns the property as a bool.
func (c *Component) GetBool(name string) (bool, bool) {
	if v := c.Get(name); v != nil {
		return v.AsBool()
	}
	return false, false
}

// clone deep-copies the component. The id is copied; the key is always
// minted fresh so no two live components ever share one.
func (c *Component) clone() *Component {
	return &Component{
		typeName: c.typeName,
		key:      uuid.NewString(),
		id:       uuid.NewString(),
		props:    c.props.Clone(),
	}
}

// rawSlot locates one never-materialized component inside an entity's
// captured line range: its collection key, its type tag, and the lines of
// its header plus body.
type rawSlot struct {
	key      string
	typeName string
	span     assetdoc.Range
}

// rawSlots rescans the entity's captured range for component headers
// ("<key>: !<Type>") without parsing any body. Fresh entities have no raw
// backing and return nil.
func (e *Entity) rawSlots() []rawSlot {
	if e.componentsLine < 0 || e.span.Empty() {
		return nil
	}
	store := e.doc.store
	headIndent := store.Indent(e.componentsLine)
	end := store.BlockEnd(e.componentsLine)
	var slots []rawSlot
	i := e.componentsLine + 1
	compIndent := -1
	for i < end {
		if store.IsBlank(i) {
			i++
			continue
		}
		ind := store.Indent(i)
		if ind <= headIndent {
			break
		}
		if compIndent < 0 {
			compIndent = ind
		}
		if ind != compIndent {
			i++
			continue
		}
		key, rest, ok := assetdoc.SplitKeyValue(store.Content(i))
		if !ok {
			i++
			continue
		}
		tag, _, tagged := assetdoc.SplitTag(rest)
		if !tagged {
			i++
			continue
		}
		slotEnd := store.BlockEnd(i)
		if slotEnd > end {
			slotEnd = end
		}
		slots = append(slots, rawSlot{key: key, typeName: tag, span: assetdoc.Range{Start: i, End: slotEnd}})
		i = slotEnd
	}
	return slots
}

// materialize promotes an unparsed slot into a Component. Pure with respect
// to the entity: callers decide whether to cache the result.
func (e *Entity) materialize(s rawSlot) *Component {
	store := e.doc.store
	p := assetdoc.NewParser(store, e.doc.log)
	props, _ := p.ParseBlock(s.span.Start+1, store.Indent(s.span.Start))
	if props.Kind() != assetdoc.KindMap {
		// Malformed or empty body still yields a usable component.
		props = assetdoc.NewMap()
	}
	id := ""
	if v := props.MapGet("Id"); v != nil {
		id, _ = v.AsString()
		props.MapDelete("Id")
	}
	if id == "" {
		id = uuid.NewString()
	}
	return &Component{typeName: s.typeName, key: s.key, id: id, props: props}
}

// GetComponent returns the component of the exact given type, materializing
// and caching it on first access. Returns nil when the entity has no such
// component. Two consecutive calls return the same object.
func (e *Entity) GetComponent(typeName string) *Component {
	if c, ok := e.comps[typeName]; ok {
		return c
	}
	// A removed type stays dead even though its text is still in the raw
	// range; the range is never consulted for it again.
	if _, gone := e.removed[typeName]; gone {
		return nil
	}
	for _, s := range e.rawSlots() {
		if s.typeName == typeName {
			c := e.materialize(s)
			e.comps[typeName] = c
			return c
		}
	}
	return nil
}

// peekComponent returns the component of the given type without populating
// the cache: the cached object when one exists, otherwise a throwaway
// materialization. Snapshots use it so diffing never marks an entity for
// rewrite.
func (e *Entity) peekComponent(typeName string) *Component {
	if c, ok := e.comps[typeName]; ok {
		return c
	}
	if _, gone := e.removed[typeName]; gone {
		return nil
	}
	for _, s := range e.rawSlots() {
		if s.typeName == typeName {
			return e.materialize(s)
		}
	}
	return nil
}

// HasComponent reports whether the entity carries the exact given type. It
// performs the same raw-range scan as GetComponent but never populates the
// cache: existence checks stay cheap and side-effect-free.
func (e *Entity) HasComponent(typeName string) bool {
	if _, ok := e.comps[typeName]; ok {
		return true
	}
	if _, gone := e.removed[typeName]; gone {
		return false
	}
	for _, s := range e.rawSlots() {
		if s.typeName == typeName {
			return true
		}
	}
	return false
}

// AddComponent attaches a new component of the given type with a fresh id
// and key and an empty property map. At most one component per exact type
// string may exist on an entity.
func (e *Entity) AddComponent(typeName string) (*Component, error) {
	if e.HasComponent(typeName) {
		return nil, eris.Wrap(ErrComponentExists, typeName)
	}
	c := &Component{
		typeName: typeName,
		key:      uuid.NewString(),
		id:       uuid.NewString(),
		props:    assetdoc.NewMap(),
	}
	// The removed marker stays if present: it keeps a superseded raw slot
	// of the same type from resurfacing on save.
	e.comps[typeName] = c
	e.compOrder = append(e.compOrder, typeName)
	return c, nil
}

// RemoveComponent detaches the component of the given type and reports
// whether one existed. The removed component is not recoverable from any
// captured raw range on subsequent saves; dangling references to it are the
// caller's responsibility.
func (e *Entity) RemoveComponent(typeName string) bool {
	existed := e.HasComponent(typeName)
	delete(e.comps, typeName)
	for i, t := range e.compOrder {
		if t == typeName {
			e.compOrder = append(e.compOrder[:i], e.compOrder[i+1:]...)
			break
		}
	}
	if existed {
		e.removed[typeName] = struct{}{}
	}
	return existed
}

// Components returns the entity's component type strings: raw slots in
// document order followed by added components in insertion order, minus
// removals.
func (e *Entity) Components() []string {
	var types []string
	seen := map[string]struct{}{}
	for _, s := range e.rawSlots() {
		if _, gone := e.removed[s.typeName]; gone {
			continue
		}
		if _, dup := seen[s.typeName]; dup {
			continue
		}
		seen[s.typeName] = struct{}{}
		types = append(types, s.typeName)
	}
	for _, t := range e.compOrder {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}
	return types
}

// MaterializedCount returns the size of the lazy-component cache. Existence
// checks never change it.
func (e *Entity) MaterializedCount() int {
	return len(e.comps)
}

// IsUserScriptType reports whether a type string names a user-defined script
// component ("Namespace.Class,Assembly" or ".Class,Assembly") rather than a
// built-in.
func IsUserScriptType(typeName string) bool {
	return strings.ContainsRune(typeName, ',')
}
