package scenekit

import (
	"strings"

	"github.com/rotisserie/eris"

	"pkg.scenekit.dev/scenekit/assetdoc"
)

// ScriptField is one declared property of a user-defined script type.
type ScriptField struct {
	Name string
	Type string
}

// ScriptInfo supplies field declarations for user-defined script component
// types, typically reflected out of game assemblies by an external tool.
type ScriptInfo interface {
	Fields(typeName string) ([]ScriptField, bool)
}

// StaticScriptInfo is a fixed in-memory ScriptInfo.
type StaticScriptInfo map[string][]ScriptField

func (s StaticScriptInfo) Fields(typeName string) ([]ScriptField, bool) {
	fields, ok := s[typeName]
	return fields, ok
}

// AddScriptComponent attaches a user-defined script component with every
// declared field seeded to its default: zero for numeric types, false for
// bools, literal null for strings and reference types. The loader repairs
// null into the field's own default at load time.
func (e *Entity) AddScriptComponent(info ScriptInfo, typeName string) (*Component, error) {
	fields, ok := info.Fields(typeName)
	if !ok {
		return nil, eris.Wrap(ErrUnknownScriptType, typeName)
	}
	comp, err := e.AddComponent(typeName)
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		comp.Set(f.Name, defaultFieldValue(f.Type))
	}
	return comp, nil
}

func defaultFieldValue(fieldType string) *assetdoc.Value {
	t := strings.ToLower(fieldType)
	switch {
	case strings.HasPrefix(t, "int") || strings.HasPrefix(t, "uint") ||
		t == "byte" || t == "sbyte" || t == "short" || t == "ushort" || t == "long" || t == "ulong":
		return assetdoc.Int(0)
	case strings.HasPrefix(t, "float") || t == "double" || t == "single":
		return assetdoc.Float(0)
	case t == "bool" || t == "boolean":
		return assetdoc.Bool(false)
	default:
		// Strings and reference types serialize as literal null.
		return assetdoc.Null()
	}
}
