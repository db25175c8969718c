package scenekit

import (
	"path/filepath"
	"testing"

	"pkg.scenekit.dev/scenekit/assert"
	"pkg.scenekit.dev/scenekit/assetdoc"
)

func makeTestPrefab(t *testing.T) *Prefab {
	t.Helper()
	p, err := NewPrefab("Barrel")
	assert.NilError(t, err)
	root := p.RootEntity()
	model, err := root.AddComponent("ModelComponent")
	assert.NilError(t, err)
	model.Set("Model", assetdoc.RawString(testAssetRef().String()))
	_, err = p.CreateEntity("Lid", root.ID())
	assert.NilError(t, err)
	assert.NilError(t, p.SaveAs(filepath.Join(t.TempDir(), "barrel.skp")))
	return p
}

func TestNewPrefab(t *testing.T) {
	p, err := NewPrefab("Barrel")
	assert.NilError(t, err)
	assert.Equal(t, "PrefabAsset", p.Kind())

	root := p.RootEntity()
	assert.NotNil(t, root)
	assert.Equal(t, "Barrel", root.Name())
	assert.True(t, root.HasComponent(TransformComponentType))

	reparsed := ParsePrefab(p.Serialize())
	assert.Equal(t, "PrefabAsset", reparsed.Kind())
	assert.Equal(t, root.ID(), reparsed.RootEntity().ID())
}

func TestPrefab_InstantiateInto(t *testing.T) {
	p := makeTestPrefab(t)
	scene := NewScene()

	inst, err := p.InstantiateInto(scene.Content, "")
	assert.NilError(t, err)
	assert.NotEqual(t, p.RootEntity().ID(), inst.ID())
	assert.Equal(t, "Barrel", inst.Name())
	assert.Equal(t, 2, scene.Len())
	assert.True(t, inst.HasComponent("ModelComponent"))

	asset, basePartID, instanceID, ok := inst.Provenance()
	assert.True(t, ok)
	assert.Equal(t, p.ID(), asset.ID)
	assert.Equal(t, p.RootEntity().ID(), basePartID)
	assert.NotEqual(t, "", instanceID)

	// Children share the instantiation's instance id but point at their own
	// source entities.
	lid := scene.Get(inst.Children()[0])
	assert.NotNil(t, lid)
	_, lidBase, lidInstance, ok := lid.Provenance()
	assert.True(t, ok)
	assert.Equal(t, instanceID, lidInstance)
	assert.NotEqual(t, basePartID, lidBase)
}

func TestPrefab_InstantiateMintsFreshComponentIdentity(t *testing.T) {
	p := makeTestPrefab(t)
	scene := NewScene()
	inst, err := p.InstantiateInto(scene.Content, "")
	assert.NilError(t, err)

	src := p.RootEntity().GetComponent("ModelComponent")
	dup := inst.GetComponent("ModelComponent")
	assert.NotEqual(t, src.ID(), dup.ID())
	assert.NotEqual(t, src.Key(), dup.Key())

	model, _ := dup.GetString("Model")
	assert.Equal(t, testAssetRef().String(), model)
}

func TestPrefab_ProvenanceRoundTrips(t *testing.T) {
	p := makeTestPrefab(t)
	scene := NewScene()
	inst, err := p.InstantiateInto(scene.Content, "")
	assert.NilError(t, err)

	out := scene.Serialize()
	reparsed := ParseScene(out)
	got := reparsed.Get(inst.ID())
	assert.NotNil(t, got)

	asset, basePartID, instanceID, ok := got.Provenance()
	assert.True(t, ok)
	assert.Equal(t, p.ID(), asset.ID)
	assert.Equal(t, p.RootEntity().ID(), basePartID)

	wantAsset, _, wantInstance, _ := inst.Provenance()
	assert.Equal(t, wantAsset.Path, asset.Path)
	assert.Equal(t, wantInstance, instanceID)

	// A second cycle keeps the block byte-stable.
	assert.Equal(t, out, reparsed.Serialize())
}

func TestPrefab_InstantiateUnderParent(t *testing.T) {
	p := makeTestPrefab(t)
	scene := NewScene()
	anchor, err := scene.CreateEntity("Anchor", "")
	assert.NilError(t, err)

	inst, err := p.InstantiateInto(scene.Content, anchor.ID())
	assert.NilError(t, err)
	assert.Equal(t, anchor.ID(), scene.ParentOf(inst.ID()).ID())

	_, err = p.InstantiateInto(scene.Content, "ffffffff-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrEntityNotFound)
}
