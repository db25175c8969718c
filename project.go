package scenekit

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"pkg.scenekit.dev/scenekit/assetdoc"
	"pkg.scenekit.dev/scenekit/codec"
)

// Project maps asset ids to project-relative paths and back. Documents work
// fine without one; only asset-reference resolution and save-location checks
// need it.
type Project interface {
	// BaseDir is the absolute project root. Saves land under it.
	BaseDir() string
	// PathByID returns the project-relative path of an asset.
	PathByID(id string) (string, bool)
	// IDByPath returns the asset id registered at a project-relative path.
	IDByPath(path string) (string, bool)
}

// DirProject is an in-memory Project over a directory: a base dir plus an
// explicit id<->path registry.
type DirProject struct {
	base   string
	byID   map[string]string
	byPath map[string]string
}

// NewDirProject builds a project rooted at dir.
func NewDirProject(dir string) *DirProject {
	return &DirProject{
		base:   filepath.Clean(dir),
		byID:   map[string]string{},
		byPath: map[string]string{},
	}
}

// Register records an asset id at a project-relative path, replacing any
// earlier binding of either.
func (p *DirProject) Register(id, relPath string) {
	if old, ok := p.byID[id]; ok {
		delete(p.byPath, old)
	}
	if old, ok := p.byPath[relPath]; ok {
		delete(p.byID, old)
	}
	p.byID[id] = relPath
	p.byPath[relPath] = id
}

func (p *DirProject) BaseDir() string { return p.base }

func (p *DirProject) PathByID(id string) (string, bool) {
	path, ok := p.byID[id]
	return path, ok
}

func (p *DirProject) IDByPath(path string) (string, bool) {
	id, ok := p.byPath[path]
	return id, ok
}

// projectIndex is the on-disk shape of a DirProject's asset bindings.
type projectIndex struct {
	Assets map[string]string `json:"assets"`
}

// SaveIndex writes the id-to-relative-path bindings as JSON so a later
// session can rebuild the registry without rescanning the project.
func (p *DirProject) SaveIndex(path string) error {
	bz, err := codec.Encode(projectIndex{Assets: p.byID})
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, bz, 0o644); err != nil {
		return eris.Wrap(err, path)
	}
	return nil
}

// LoadDirProject rebuilds a project rooted at dir from an index written by
// SaveIndex.
func LoadDirProject(dir, indexPath string) (*DirProject, error) {
	bz, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, eris.Wrap(err, indexPath)
	}
	idx, err := codec.Decode[projectIndex](bz)
	if err != nil {
		return nil, err
	}
	p := NewDirProject(dir)
	for id, rel := range idx.Assets {
		p.Register(id, rel)
	}
	return p, nil
}

// ResolveAssetRef resolves an asset reference through the scene's project.
// The id wins when both sides are known; the path is a fallback for
// hand-edited references whose id went stale.
func (s *Scene) ResolveAssetRef(ref assetdoc.AssetRef) (string, error) {
	if s.project == nil {
		return "", eris.Wrap(ErrNoProject, ref.ID)
	}
	if path, ok := s.project.PathByID(ref.ID); ok {
		return path, nil
	}
	if _, ok := s.project.IDByPath(ref.Path); ok {
		return ref.Path, nil
	}
	return "", eris.Wrapf(ErrAssetNotFound, "%s (%s)", ref.ID, ref.Path)
}
