package scenekit

import (
	"testing"

	"pkg.scenekit.dev/scenekit/assert"
	"pkg.scenekit.dev/scenekit/assetdoc"
)

func TestDiff_IdenticalDocuments(t *testing.T) {
	a := loadTestScene(t)
	b := loadTestScene(t)
	patch, err := Diff(a, b)
	assert.NilError(t, err)
	assert.Len(t, patch, 0)
}

func TestDiff_ReportsDataChanges(t *testing.T) {
	a := loadTestScene(t)
	b := loadTestScene(t)
	b.Get(idGround).SetName("Floor")
	cam := b.Get(idCamera).GetComponent("CameraComponent")
	cam.Set("VerticalFieldOfView", assetdoc.Float(60))

	patch, err := Diff(a, b)
	assert.NilError(t, err)
	assert.True(t, len(patch) >= 2)

	paths := make([]string, len(patch))
	for i, op := range patch {
		paths[i] = op.Path
	}
	assert.Contains(t, paths, "/Parts/2/Name")
	assert.Contains(t, paths, "/Parts/1/Components/CameraComponent/VerticalFieldOfView")
}

func TestDiff_IgnoresFormattingOnlyState(t *testing.T) {
	a := loadTestScene(t)
	b := loadTestScene(t)
	// Materializing without editing changes no data.
	b.Get(idPlayer).GetComponent("TransformComponent")

	patch, err := Diff(a, b)
	assert.NilError(t, err)
	assert.Len(t, patch, 0)
}

func TestSnapshot_DoesNotMaterialize(t *testing.T) {
	doc := loadTestScene(t)
	snap := doc.Snapshot()
	assert.Equal(t, doc.ID(), snap["Id"])

	for _, e := range doc.Entities() {
		assert.Equal(t, 0, e.MaterializedCount())
	}
	assert.Equal(t, sceneText, doc.Serialize(), "snapshots never force a rewrite")
}

func TestSnapshot_Shape(t *testing.T) {
	doc := loadTestScene(t)
	snap := doc.Snapshot()
	parts := snap["Parts"].([]any)
	assert.Len(t, parts, 3)

	playerSnap := parts[0].(map[string]any)
	assert.Equal(t, "Player", playerSnap["Name"])
	comps := playerSnap["Components"].(map[string]any)
	transform := comps["TransformComponent"].(map[string]any)
	assert.Equal(t, "cccccccc-0000-0000-0000-000000000001", transform["Id"])
	pos := transform["Position"].(map[string]any)
	assert.Equal(t, 1.5, pos["Y"])
}
