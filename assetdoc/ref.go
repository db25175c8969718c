package assetdoc

import (
	"regexp"
	"strings"
)

// entityRefPrefix introduces an entity reference scalar: "ref!! <guid>".
const entityRefPrefix = "ref!! "

// guidRe is the canonical 8-4-4-4-12 hex shape. Asset references require it
// exactly; looser guid-like tokens are not references.
var guidRe = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsGUID reports whether s is a canonical 8-4-4-4-12 hex guid.
func IsGUID(s string) bool {
	return guidRe.MatchString(s)
}

// EntityRef is a parsed "ref!! <guid>" scalar. It is an opaque id; resolving
// it against a live document is the caller's concern.
type EntityRef struct {
	ID string
}

// AssetRef is a parsed "<guid>:<path>" scalar.
type AssetRef struct {
	ID   string
	Path string
}

// ParseEntityRef accepts only the exact literal shape "ref!! <token>" with a
// single separating space and a non-empty, space-free token. Anything else,
// including a bare guid, is not an entity reference.
func ParseEntityRef(text string) (EntityRef, bool) {
	if !strings.HasPrefix(text, entityRefPrefix) {
		return EntityRef{}, false
	}
	token := text[len(entityRefPrefix):]
	if token == "" || strings.ContainsAny(token, " \t") {
		return EntityRef{}, false
	}
	return EntityRef{ID: token}, true
}

// ParseAssetRef accepts only "<guid>:<path>" where the guid is canonical and
// the path is non-empty and does not start with whitespace. The whitespace
// rule keeps mapping members with guid keys ("<guid>: value") from
// classifying as references. The literal strings "null" and "invalid", and a
// bare guid with no path, are not asset references either.
func ParseAssetRef(text string) (AssetRef, bool) {
	switch text {
	case "", "null", "invalid":
		return AssetRef{}, false
	}
	sep := strings.IndexByte(text, ':')
	if sep < 0 {
		return AssetRef{}, false
	}
	id, path := text[:sep], text[sep+1:]
	if !IsGUID(id) || path == "" || path[0] == ' ' || path[0] == '\t' {
		return AssetRef{}, false
	}
	return AssetRef{ID: id, Path: path}, true
}

// String renders the reference in its wire shape.
func (r EntityRef) String() string {
	return entityRefPrefix + r.ID
}

// String renders the reference in its wire shape.
func (r AssetRef) String() string {
	return r.ID + ":" + r.Path
}

// FormatEntityRef renders an id as an entity reference scalar.
func FormatEntityRef(id string) string {
	return EntityRef{ID: id}.String()
}

// FormatAssetRef renders an id/path pair as an asset reference scalar.
func FormatAssetRef(id, path string) string {
	return AssetRef{ID: id, Path: path}.String()
}
