package assetdoc

import (
	"testing"

	"github.com/rs/zerolog"

	"pkg.scenekit.dev/scenekit/assert"
)

func parseText(t *testing.T, text string) (*Parser, *LineStore) {
	t.Helper()
	store := NewLineStore(text)
	return NewParser(store, zerolog.Nop()), store
}

func TestParseBlock_Mapping(t *testing.T) {
	p, _ := parseText(t, ""+
		"Name: Player\n"+
		"Health: 100\n"+
		"Speed: 2.5\n"+
		"Alive: true\n"+
		"Target: null\n")
	v, next := p.ParseBlock(0, -1)
	assert.Equal(t, KindMap, v.Kind())
	assert.Equal(t, 5, v.Len())
	assert.Equal(t, 5, next)

	name, _ := v.MapGet("Name").AsString()
	assert.Equal(t, "Player", name)
	health, _ := v.MapGet("Health").AsInt()
	assert.Equal(t, int64(100), health)
	speed, _ := v.MapGet("Speed").AsFloat()
	assert.Equal(t, 2.5, speed)
	assert.True(t, v.MapGet("Target").IsNull())
}

func TestParseBlock_Nesting(t *testing.T) {
	p, _ := parseText(t, ""+
		"Outer:\n"+
		"    Inner:\n"+
		"        Leaf: 1\n"+
		"    Sibling: 2\n"+
		"After: 3\n")
	v, next := p.ParseBlock(0, -1)
	assert.Equal(t, 5, next)

	inner := v.MapGet("Outer").MapGet("Inner")
	leaf, _ := inner.MapGet("Leaf").AsInt()
	assert.Equal(t, int64(1), leaf)
	sibling, _ := v.MapGet("Outer").MapGet("Sibling").AsInt()
	assert.Equal(t, int64(2), sibling)
	after, _ := v.MapGet("After").AsInt()
	assert.Equal(t, int64(3), after)
}

func TestParseBlock_TabsCountAsFourColumns(t *testing.T) {
	p, _ := parseText(t, ""+
		"Outer:\n"+
		"\tInner: 1\n"+
		"    Other: 2\n")
	v, _ := p.ParseBlock(0, -1)
	outer := v.MapGet("Outer")
	inner, _ := outer.MapGet("Inner").AsInt()
	assert.Equal(t, int64(1), inner)
	other, _ := outer.MapGet("Other").AsInt()
	assert.Equal(t, int64(2), other, "tab and four spaces are the same column")
}

func TestParseBlock_TaggedValues(t *testing.T) {
	p, _ := parseText(t, ""+
		"Comp: !TransformComponent\n"+
		"    Position: {X: 0.0, Y: 1.5, Z: 0.0}\n"+
		"Slot: !CameraSlot ref!! "+testGUID+"\n")
	v, _ := p.ParseBlock(0, -1)

	comp := v.MapGet("Comp")
	assert.Equal(t, "TransformComponent", comp.Tag())
	pos := comp.MapGet("Position")
	assert.True(t, pos.Inline())
	y, _ := pos.MapGet("Y").AsFloat()
	assert.Equal(t, 1.5, y)

	slot := v.MapGet("Slot")
	assert.Equal(t, "CameraSlot", slot.Tag())
	s, _ := slot.AsString()
	assert.Equal(t, "ref!! "+testGUID, s)
}

func TestParseBlock_Sequence(t *testing.T) {
	p, _ := parseText(t, ""+
		"Items:\n"+
		"    - 1\n"+
		"    - two\n"+
		"    -   Name: nested\n"+
		"        Kind: mapping\n")
	v, _ := p.ParseBlock(0, -1)
	items := v.MapGet("Items").Items()
	assert.Len(t, items, 3)

	first, _ := items[0].AsInt()
	assert.Equal(t, int64(1), first)
	second, _ := items[1].AsString()
	assert.Equal(t, "two", second)
	kind, _ := items[2].MapGet("Kind").AsString()
	assert.Equal(t, "mapping", kind)
}

func TestParseBlock_EmptyCollections(t *testing.T) {
	p, _ := parseText(t, ""+
		"List: []\n"+
		"Map: {}\n")
	v, _ := p.ParseBlock(0, -1)
	assert.Equal(t, KindSeq, v.MapGet("List").Kind())
	assert.Equal(t, 0, v.MapGet("List").Len())
	assert.Equal(t, KindMap, v.MapGet("Map").Kind())
	assert.Equal(t, 0, v.MapGet("Map").Len())
}

func TestParseBlock_GracefulOnStrayLines(t *testing.T) {
	p, _ := parseText(t, ""+
		"Good: 1\n"+
		"      stray deeper line\n"+
		"no colon here\n"+
		"Later: 2\n")
	v, next := p.ParseBlock(0, -1)
	assert.Equal(t, 4, next)
	assert.Equal(t, 2, v.Len(), "both keyed members survive")
	later, _ := v.MapGet("Later").AsInt()
	assert.Equal(t, int64(2), later)
}

func TestParseBlock_EmptyInput(t *testing.T) {
	p, _ := parseText(t, "")
	v, next := p.ParseBlock(0, -1)
	assert.True(t, v.IsNull())
	assert.Equal(t, 0, next)
}

func TestParseBlock_BlankLinesDoNotDelimit(t *testing.T) {
	p, _ := parseText(t, ""+
		"Outer:\n"+
		"    A: 1\n"+
		"\n"+
		"    B: 2\n")
	v, _ := p.ParseBlock(0, -1)
	assert.Equal(t, 2, v.MapGet("Outer").Len())
}

func TestSplitKeyValue(t *testing.T) {
	key, rest, ok := SplitKeyValue("Name: Player")
	assert.True(t, ok)
	assert.Equal(t, "Name", key)
	assert.Equal(t, "Player", rest)

	key, rest, ok = SplitKeyValue("Components:")
	assert.True(t, ok)
	assert.Equal(t, "Components", key)
	assert.Equal(t, "", rest)

	// Asset reference scalars contain a colon but are not members.
	_, _, ok = SplitKeyValue(testGUID + ":Models/Player")
	assert.False(t, ok)

	// A guid key followed by ": " is a member, not an asset reference:
	// component headers and identity-collection entries depend on it.
	key, rest, ok = SplitKeyValue(testGUID + ": !TransformComponent")
	assert.True(t, ok)
	assert.Equal(t, testGUID, key)
	assert.Equal(t, "!TransformComponent", rest)

	key, rest, ok = SplitKeyValue(testGUID + ": ref!! " + testGUID)
	assert.True(t, ok)
	assert.Equal(t, testGUID, key)
	assert.Equal(t, "ref!! "+testGUID, rest)

	// A colon not followed by a space is not a member separator.
	_, _, ok = SplitKeyValue("a:b")
	assert.False(t, ok)
}

func TestSplitTag(t *testing.T) {
	tag, rest, ok := SplitTag("!TransformComponent")
	assert.True(t, ok)
	assert.Equal(t, "TransformComponent", tag)
	assert.Equal(t, "", rest)

	tag, rest, ok = SplitTag("!CameraSlot ref!! " + testGUID)
	assert.True(t, ok)
	assert.Equal(t, "CameraSlot", tag)
	assert.Equal(t, "ref!! "+testGUID, rest)

	_, _, ok = SplitTag("plain")
	assert.False(t, ok)
}

func TestBlockEnd(t *testing.T) {
	_, store := parseText(t, ""+
		"Header:\n"+
		"    A: 1\n"+
		"\n"+
		"    B: 2\n"+
		"Next: 3\n")
	assert.Equal(t, 4, store.BlockEnd(0))
	// A leaf member's block ends at the next non-blank sibling.
	assert.Equal(t, 3, store.BlockEnd(1))
}
