package scenekit

import (
	"path"

	"github.com/rotisserie/eris"

	"pkg.scenekit.dev/scenekit/sceneql"
)

// Get returns the entity with the given id, nil when absent. Lookups never
// error; only mutations do.
func (c *Content) Get(id string) *Entity {
	return c.byID[id]
}

// MustGet returns the entity with the given id and panics when absent. For
// callers that hold an id they just created.
func (c *Content) MustGet(id string) *Entity {
	e := c.byID[id]
	if e == nil {
		panic(eris.Wrap(ErrEntityNotFound, id).Error())
	}
	return e
}

// Entities returns every entity in document order. The slice is a copy.
func (c *Content) Entities() []*Entity {
	out := make([]*Entity, len(c.parts))
	copy(out, c.parts)
	return out
}

// Roots returns the root entities in root-list order, skipping dangling root
// references.
func (c *Content) Roots() []*Entity {
	var out []*Entity
	for _, r := range c.roots {
		if e := c.byID[r.id]; e != nil {
			out = append(out, e)
		}
	}
	return out
}

// FindByName returns every entity with exactly the given name, in document
// order.
func (c *Content) FindByName(name string) []*Entity {
	return c.Filter(func(e *Entity) bool { return e.name == name })
}

// Glob returns every entity whose name matches the shell pattern. Only a bad
// pattern errors.
func (c *Content) Glob(pattern string) ([]*Entity, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, eris.Wrap(err, pattern)
	}
	return c.Filter(func(e *Entity) bool {
		ok, _ := path.Match(pattern, e.name)
		return ok
	}), nil
}

// Filter returns every entity the predicate accepts, in document order.
func (c *Content) Filter(pred func(*Entity) bool) []*Entity {
	var out []*Entity
	for _, e := range c.parts {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// Query evaluates a query-language expression against every entity. The
// expression is compiled once per call.
func (c *Content) Query(query string) ([]*Entity, error) {
	pred, err := sceneql.Parse(query)
	if err != nil {
		return nil, err
	}
	return c.Filter(func(e *Entity) bool { return pred(e) }), nil
}
