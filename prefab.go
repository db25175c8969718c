package scenekit

import (
	"os"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"pkg.scenekit.dev/scenekit/assetdoc"
)

// Prefab is a reusable entity-subtree document. Its first root is the
// designated root entity; instantiating it into another document stamps
// provenance on every created entity so later saves can tell instance parts
// from local ones.
type Prefab struct {
	*Content
	path    string
	project Project
	backup  bool
}

// NewPrefab builds an empty prefab with a designated root entity of the
// given name.
func NewPrefab(rootName string, opts ...Option) (*Prefab, error) {
	p := &Prefab{Content: parseContent("", prefabKindTag, opts...)}
	if _, err := p.CreateEntity(rootName, ""); err != nil {
		return nil, err
	}
	return p, nil
}

// ParsePrefab parses prefab text not bound to any file.
func ParsePrefab(text string, opts ...Option) *Prefab {
	return &Prefab{Content: parseContent(text, prefabKindTag, opts...)}
}

// LoadPrefab reads a prefab from disk. A missing or unreadable file is an
// error; malformed content is not.
func LoadPrefab(path string, opts ...Option) (*Prefab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "load prefab %s", path)
	}
	return &Prefab{Content: parseContent(string(data), prefabKindTag, opts...), path: path}, nil
}

// Path returns the file the prefab was loaded from or last saved to.
func (p *Prefab) Path() string { return p.path }

// AttachProject binds the prefab to a project.
func (p *Prefab) AttachProject(proj Project) { p.project = proj }

// SetBackupOnSave keeps the previous file contents as "<path>.bak" before
// each save.
func (p *Prefab) SetBackupOnSave(on bool) { p.backup = on }

// RootEntity returns the designated root entity, nil for an empty prefab.
func (p *Prefab) RootEntity() *Entity {
	if len(p.roots) == 0 {
		return nil
	}
	return p.byID[p.roots[0].id]
}

// Save atomically replaces the prefab's file.
func (p *Prefab) Save() error {
	if p.path == "" {
		return eris.New("prefab has no path; use SaveAs")
	}
	return saveDocument(p.Content, p.path, p.backup)
}

// SaveAs saves to a new path and rebinds the prefab to it, honoring the
// attached project's base directory.
func (p *Prefab) SaveAs(path string) error {
	if err := guardProjectPath(p.project, path); err != nil {
		return err
	}
	if err := saveDocument(p.Content, path, p.backup); err != nil {
		return err
	}
	p.path = path
	return nil
}

// InstantiateInto copies the prefab's entity tree into target under
// parentID ("" for root level). Every created entity gets a fresh id, every
// component fresh ids and keys, and a provenance block naming the prefab
// asset, the source entity inside it, and one instance id shared by the
// whole instantiation.
func (p *Prefab) InstantiateInto(target *Content, parentID string) (*Entity, error) {
	src := p.RootEntity()
	if src == nil {
		return nil, eris.Wrap(ErrEntityNotFound, "prefab has no root entity")
	}
	if parentID != "" && target.byID[parentID] == nil {
		return nil, eris.Wrap(ErrEntityNotFound, parentID)
	}
	assetPath := p.path
	if p.project != nil {
		if rel, ok := p.project.PathByID(p.docID); ok {
			assetPath = rel
		}
	}
	asset := assetdoc.AssetRef{ID: p.docID, Path: assetPath}
	instanceID := uuid.NewString()
	target.structDirty = true
	root := p.instantiate(target, src, asset, instanceID)
	if parentID == "" {
		target.roots = append(target.roots, rootRef{id: root.id})
	} else {
		target.byID[parentID].addChild(root.id)
	}
	return root, nil
}

func (p *Prefab) instantiate(target *Content, src *Entity, asset assetdoc.AssetRef, instanceID string) *Entity {
	e := newEntity(target, uuid.NewString())
	e.name = src.name
	e.folder = src.folder
	e.dirty = true
	e.SetProvenance(asset, src.id, instanceID)
	for _, typeName := range src.Components() {
		comp := src.GetComponent(typeName)
		if comp == nil {
			continue
		}
		dup := comp.clone()
		e.comps[typeName] = dup
		e.compOrder = append(e.compOrder, typeName)
	}
	target.parts = append(target.parts, e)
	target.byID[e.id] = e
	for _, childID := range src.children {
		child := p.byID[childID]
		if child == nil {
			continue
		}
		e.children = append(e.children, p.instantiate(target, child, asset, instanceID).id)
	}
	return e
}
