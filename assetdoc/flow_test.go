package assetdoc

import (
	"testing"

	"pkg.scenekit.dev/scenekit/assert"
)

func TestParseFlow_Map(t *testing.T) {
	v, consumed := ParseFlow("{X: 0.0, Y: 1.5, Z: -2.0}")
	assert.Equal(t, 25, consumed)
	assert.Equal(t, KindMap, v.Kind())
	assert.True(t, v.Inline())
	assert.DeepEqual(t, []string{"X", "Y", "Z"}, v.Keys())

	y, _ := v.MapGet("Y").AsFloat()
	assert.Equal(t, 1.5, y)
	z, _ := v.MapGet("Z").AsFloat()
	assert.Equal(t, -2.0, z)
}

func TestParseFlow_Nested(t *testing.T) {
	v, _ := ParseFlow("{A: {B: 1}, C: [2, 3]}")
	b, _ := v.MapGet("A").MapGet("B").AsInt()
	assert.Equal(t, int64(1), b)
	items := v.MapGet("C").Items()
	assert.Len(t, items, 2)
	last, _ := items[1].AsInt()
	assert.Equal(t, int64(3), last)
}

func TestParseFlow_Seq(t *testing.T) {
	v, _ := ParseFlow("[a, 'b, c', 3]")
	items := v.Items()
	assert.Len(t, items, 3)
	quoted, _ := items[1].AsString()
	assert.Equal(t, "b, c", quoted, "quoted commas do not split elements")
}

func TestParseFlow_UnterminatedIsGraceful(t *testing.T) {
	v, _ := ParseFlow("{X: 1, Y: 2")
	assert.Equal(t, 2, v.Len())
	y, _ := v.MapGet("Y").AsInt()
	assert.Equal(t, int64(2), y)

	v, _ = ParseFlow("[1, 2")
	assert.Equal(t, 2, v.Len())
}

func TestParseFlow_StrayElementResyncs(t *testing.T) {
	// "oops" has no key; the parser drops it and keeps the keyed members.
	v, _ := ParseFlow("{X: 1, oops, Y: 2}")
	assert.Equal(t, 2, v.Len())
	assert.DeepEqual(t, []string{"X", "Y"}, v.Keys())
}

func TestParseFlow_Empty(t *testing.T) {
	v, _ := ParseFlow("{}")
	assert.Equal(t, KindMap, v.Kind())
	assert.Equal(t, 0, v.Len())

	v, _ = ParseFlow("[]")
	assert.Equal(t, KindSeq, v.Kind())
	assert.Equal(t, 0, v.Len())
}
