package assetdoc

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"pkg.scenekit.dev/scenekit/assert"
)

func render(key string, v *Value, depth int) string {
	var b strings.Builder
	WriteKeyed(&b, key, v, depth)
	return b.String()
}

func TestWriteKeyed_EmptyCollections(t *testing.T) {
	assert.Equal(t, "Tags: []\n", render("Tags", NewSeq(), 0))
	assert.Equal(t, "Slots: {}\n", render("Slots", NewMap(), 0))
}

func TestWriteKeyed_PopulatedCollectionsUseBlockForm(t *testing.T) {
	list := NewMap()
	_, _ = AppendListItem(list, Int(1))
	out := render("Items", list, 0)
	assert.True(t, strings.HasPrefix(out, "Items:\n"), out)
	assert.False(t, strings.Contains(out, "Items: "), "a populated collection never sits on the key line")
}

func TestWriteKeyed_InlineMap(t *testing.T) {
	pos := NewInlineMap()
	pos.MapSet("X", Float(0))
	pos.MapSet("Y", Float(1.5))
	assert.Equal(t, "    Position: {X: 0.0, Y: 1.5}\n", render("Position", pos, 1))
}

func TestWriteKeyed_NumericShapes(t *testing.T) {
	assert.Equal(t, "A: 3\n", render("A", Int(3), 0))
	assert.Equal(t, "B: 3.0\n", render("B", Float(3), 0))
	assert.Equal(t, "C: 0.25\n", render("C", Float(0.25), 0))
}

func TestWriteKeyed_TaggedBlock(t *testing.T) {
	m := NewMap()
	m.SetTag("TransformComponent")
	m.MapSet("Id", RawString(testGUID))
	out := render("Key", m, 0)
	assert.Equal(t, "Key: !TransformComponent\n    Id: "+testGUID+"\n", out)
}

func TestWriteKeyed_QuotesOnlyWhenNeeded(t *testing.T) {
	assert.Equal(t, "Name: Player\n", render("Name", String("Player"), 0))
	assert.Equal(t, "Name: ''\n", render("Name", String(""), 0))
	assert.Equal(t, "Name: 'a: b'\n", render("Name", String("a: b"), 0))
	assert.Equal(t, "Name: '42'\n", render("Name", String("42"), 0), "bare form would reparse as int")
	assert.Equal(t, "Ref: ref!! "+testGUID+"\n", render("Ref", String("ref!! "+testGUID), 0))
}

func TestWriteValue_SequenceOfMappings(t *testing.T) {
	seq := NewSeq()
	item := NewMap()
	item.MapSet("Id", RawString(testGUID))
	item.MapSet("Name", String("a"))
	seq.Append(item)

	var b strings.Builder
	WriteValue(&b, seq, 1)
	assert.Equal(t, "    -   Id: "+testGUID+"\n        Name: a\n", b.String())
}

func TestWriteValue_SequenceItemWithBlockFirstValue(t *testing.T) {
	item := NewMap()
	nested := NewMap()
	nested.MapSet("Leaf", Int(1))
	item.MapSet("Inner", nested)
	item.MapSet("Name", String("a"))
	seq := NewSeq()
	seq.Append(item)

	var b strings.Builder
	WriteValue(&b, seq, 0)
	// A block-valued first entry cannot ride the dash line.
	assert.Equal(t, "-\n    Inner:\n        Leaf: 1\n    Name: a\n", b.String())
}

func TestWriteRoundTrip(t *testing.T) {
	text := "" +
		"Name: Player\n" +
		"Health: 100\n" +
		"Position: {X: 0.0, Y: 1.5, Z: 0.0}\n" +
		"Tags: []\n" +
		"Children:\n" +
		"    - ref!! " + testGUID + "\n" +
		"Nested:\n" +
		"    Deep: 0.50\n"
	p := NewParser(NewLineStore(text), zerolog.Nop())
	v, _ := p.ParseBlock(0, -1)

	var b strings.Builder
	WriteValue(&b, v, 0)
	assert.Equal(t, text, b.String())
}
