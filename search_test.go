package scenekit

import (
	"testing"

	"pkg.scenekit.dev/scenekit/assert"
)

func names(entities []*Entity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.Name()
	}
	return out
}

func TestEntities_DocumentOrder(t *testing.T) {
	doc := loadTestScene(t)
	assert.DeepEqual(t, []string{"Player", "Camera", "Ground"}, names(doc.Entities()))
}

func TestFindByName(t *testing.T) {
	doc := loadTestScene(t)
	found := doc.FindByName("Camera")
	assert.Len(t, found, 1)
	assert.Equal(t, idCamera, found[0].ID())

	assert.Len(t, doc.FindByName("camera"), 0, "matching is exact")
	assert.Len(t, doc.FindByName("missing"), 0)
}

func TestGlob(t *testing.T) {
	doc := loadTestScene(t)
	found, err := doc.Glob("P*")
	assert.NilError(t, err)
	assert.DeepEqual(t, []string{"Player"}, names(found))

	found, err = doc.Glob("*a*")
	assert.NilError(t, err)
	assert.DeepEqual(t, []string{"Player", "Camera"}, names(found))

	_, err = doc.Glob("[bad")
	assert.Assert(t, err != nil)
}

func TestFilter(t *testing.T) {
	doc := loadTestScene(t)
	found := doc.Filter(func(e *Entity) bool { return e.Folder() == "Actors" })
	assert.DeepEqual(t, []string{"Player"}, names(found))
}

func TestQuery(t *testing.T) {
	doc := loadTestScene(t)

	found, err := doc.Query("HAS(CameraComponent)")
	assert.NilError(t, err)
	assert.DeepEqual(t, []string{"Camera"}, names(found))

	found, err = doc.Query(`HAS(TransformComponent) & NAMED("P*")`)
	assert.NilError(t, err)
	assert.DeepEqual(t, []string{"Player"}, names(found))

	found, err = doc.Query(`!HAS(CameraComponent) & !HAS(ModelComponent)`)
	assert.NilError(t, err)
	assert.DeepEqual(t, []string{"Ground"}, names(found))

	found, err = doc.Query(`FOLDER("Actors") | NAMED("Ground")`)
	assert.NilError(t, err)
	assert.DeepEqual(t, []string{"Player", "Ground"}, names(found))

	found, err = doc.Query("ALL()")
	assert.NilError(t, err)
	assert.Len(t, found, 3)

	_, err = doc.Query("HAS(")
	assert.Assert(t, err != nil)
}

func TestQuery_DoesNotMaterialize(t *testing.T) {
	doc := loadTestScene(t)
	_, err := doc.Query("HAS(TransformComponent)")
	assert.NilError(t, err)
	for _, e := range doc.Entities() {
		assert.Equal(t, 0, e.MaterializedCount())
	}
	assert.Equal(t, sceneText, doc.Serialize())
}
