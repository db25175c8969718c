package sceneql

import (
	"testing"

	"pkg.scenekit.dev/scenekit/assert"
)

type fakeEntity struct {
	name   string
	folder string
	comps  []string
}

func (f fakeEntity) Name() string   { return f.name }
func (f fakeEntity) Folder() string { return f.folder }
func (f fakeEntity) HasComponent(typeName string) bool {
	for _, c := range f.comps {
		if c == typeName {
			return true
		}
	}
	return false
}

var (
	player = fakeEntity{name: "Player", folder: "Actors", comps: []string{"TransformComponent", "ModelComponent"}}
	camera = fakeEntity{name: "Camera", folder: "Actors/Cams", comps: []string{"TransformComponent", "CameraComponent"}}
	ground = fakeEntity{name: "Ground", comps: []string{"TransformComponent"}}
)

func TestParse_Terms(t *testing.T) {
	testCases := []struct {
		query string
		want  map[string]bool
	}{
		{"ALL()", map[string]bool{"Player": true, "Camera": true, "Ground": true}},
		{"HAS(CameraComponent)", map[string]bool{"Camera": true}},
		{`NAMED("P*")`, map[string]bool{"Player": true}},
		{`NAMED("*a*")`, map[string]bool{"Player": true, "Camera": true}},
		{`FOLDER("Actors")`, map[string]bool{"Player": true}},
		{`FOLDER("Actors/*")`, map[string]bool{"Camera": true}},
		{"!HAS(CameraComponent)", map[string]bool{"Player": true, "Ground": true}},
		{`HAS(TransformComponent) & NAMED("G*")`, map[string]bool{"Ground": true}},
		{`HAS(CameraComponent) | NAMED("Ground")`, map[string]bool{"Camera": true, "Ground": true}},
		{`!(HAS(ModelComponent) | HAS(CameraComponent))`, map[string]bool{"Ground": true}},
	}
	for _, tc := range testCases {
		pred, err := Parse(tc.query)
		assert.NilError(t, err, tc.query)
		for _, e := range []fakeEntity{player, camera, ground} {
			assert.Equal(t, tc.want[e.name], pred(e), tc.query+" on "+e.name)
		}
	}
}

func TestParse_QuotedTypeName(t *testing.T) {
	spinner := fakeEntity{name: "Spinner", comps: []string{"Game.Scripts.Spin,Game"}}
	pred, err := Parse(`HAS("Game.Scripts.Spin,Game")`)
	assert.NilError(t, err)
	assert.True(t, pred(spinner))
	assert.False(t, pred(player))
}

func TestParse_Errors(t *testing.T) {
	for _, query := range []string{
		"",
		"HAS(",
		"HAS()",
		"NAMED(Player)",
		"& HAS(A)",
		"HAS(A) &",
	} {
		_, err := Parse(query)
		assert.Assert(t, err != nil, query)
	}
}

func TestParse_BadGlobFailsAtParseTime(t *testing.T) {
	_, err := Parse(`NAMED("[bad")`)
	assert.Assert(t, err != nil)
}
