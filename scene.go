package scenekit

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

const (
	sceneKindTag  = "SceneAsset"
	prefabKindTag = "PrefabAsset"
)

// Parse builds a graph from document text. Parsing never fails: malformed
// regions are skipped with a warning and the worst input still yields an
// empty, usable document.
func Parse(text string, opts ...Option) *Content {
	return parseContent(text, sceneKindTag, opts...)
}

// ParseFile reads and parses a document. Only the read can fail.
func ParseFile(path string, opts ...Option) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}
	return Parse(string(data), opts...), nil
}

// Scene is a scene document bound to an optional file path and project.
type Scene struct {
	*Content
	path    string
	project Project
	backup  bool
}

// NewScene builds an empty scene with a fresh asset id. It serializes to a
// loadable document.
func NewScene(opts ...Option) *Scene {
	return &Scene{Content: parseContent("", sceneKindTag, opts...)}
}

// ParseScene parses scene text not bound to any file.
func ParseScene(text string, opts ...Option) *Scene {
	return &Scene{Content: parseContent(text, sceneKindTag, opts...)}
}

// LoadScene reads a scene from disk. A missing or unreadable file is an
// error; malformed content is not.
func LoadScene(path string, opts ...Option) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "load scene %s", path)
	}
	return &Scene{Content: parseContent(string(data), sceneKindTag, opts...), path: path}, nil
}

// Path returns the file the scene was loaded from or last saved to.
func (s *Scene) Path() string { return s.path }

// AttachProject binds the scene to a project for asset-reference resolution
// and save-location checks.
func (s *Scene) AttachProject(p Project) { s.project = p }

// Project returns the attached project, nil when standalone.
func (s *Scene) Project() Project { return s.project }

// SetBackupOnSave keeps the previous file contents as "<path>.bak" before
// each save. See EditorConfig.BackupOnSave.
func (s *Scene) SetBackupOnSave(on bool) { s.backup = on }

// Save serializes the whole document and atomically replaces the scene's
// file. Partial writes never land: the text goes to a temp file in the
// target directory which is renamed over the destination.
func (s *Scene) Save() error {
	if s.path == "" {
		return eris.New("scene has no path; use SaveAs")
	}
	return saveDocument(s.Content, s.path, s.backup)
}

// SaveAs saves to a new path and rebinds the scene to it. When a project is
// attached, paths outside its base directory are rejected before anything is
// written.
func (s *Scene) SaveAs(path string) error {
	if err := guardProjectPath(s.project, path); err != nil {
		return err
	}
	if err := saveDocument(s.Content, path, s.backup); err != nil {
		return err
	}
	s.path = path
	return nil
}

// Reload re-reads the scene's file and replaces the graph. Entity and
// component handles from before the reload are invalid afterwards.
func (s *Scene) Reload(opts ...Option) error {
	if s.path == "" {
		return eris.New("scene has no path")
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return eris.Wrapf(err, "reload scene %s", s.path)
	}
	s.Content = parseContent(string(data), sceneKindTag, opts...)
	return nil
}

// saveDocument writes serialized text via temp file + rename so readers
// never observe a half-written document. With backup the old contents move
// aside as "<path>.bak" first.
func saveDocument(c *Content, path string, backup bool) error {
	if backup {
		if old, err := os.ReadFile(path); err == nil {
			if err := os.WriteFile(path+".bak", old, 0o644); err != nil {
				return eris.Wrapf(err, "back up %s", path)
			}
		}
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".scenekit-*.tmp")
	if err != nil {
		return eris.Wrapf(err, "save %s", path)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(c.Serialize()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return eris.Wrapf(err, "save %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return eris.Wrapf(err, "save %s", path)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return eris.Wrapf(err, "save %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return eris.Wrapf(err, "save %s", path)
	}
	return nil
}

// guardProjectPath rejects save targets outside an attached project's base
// directory. Standalone documents may save anywhere.
func guardProjectPath(p Project, path string) error {
	if p == nil {
		return nil
	}
	base, err := filepath.Abs(p.BaseDir())
	if err != nil {
		return eris.Wrap(err, "project base dir")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return eris.Wrapf(err, "save path %s", path)
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return eris.Wrap(ErrOutsideProject, path)
	}
	return nil
}
