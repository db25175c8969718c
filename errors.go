package scenekit

import "github.com/rotisserie/eris"

var (
	// ErrEntityNotFound is returned by mutations that name a missing id.
	// Lookups and reference resolution return nil instead; only mutation is
	// an error.
	ErrEntityNotFound = eris.New("entity does not exist in this document")

	// ErrComponentExists is returned when adding a component type already
	// present on the entity. At most one component per exact type string.
	ErrComponentExists = eris.New("component type already present on entity")

	// ErrCyclicReparent is returned when reparenting an entity under its own
	// subtree.
	ErrCyclicReparent = eris.New("cannot reparent an entity under its own subtree")

	// ErrOutsideProject is returned when a save target escapes the owning
	// project's base directory.
	ErrOutsideProject = eris.New("save path is outside the owning project")

	// ErrNoProject is returned when an operation needs a project context and
	// none is attached.
	ErrNoProject = eris.New("a project context is required")

	// ErrAssetNotFound is returned when an asset reference resolves to
	// nothing in the attached project.
	ErrAssetNotFound = eris.New("asset does not exist in the project")

	// ErrUnknownScriptType is returned when a script info supplier has no
	// declaration for the requested type.
	ErrUnknownScriptType = eris.New("script type is not known to the script info supplier")
)
