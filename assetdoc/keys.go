package assetdoc

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// Identity lists and compound dictionaries are ordered mappings whose keys
// carry machine-generated identity: a fresh guid per entry for lists, and
// "<guid>~<userkey>" for dictionaries. The loader rejects documents with
// duplicate or all-zero guid keys, so minting is centralized here.

const compoundKeySep = "~"

var zeroGUID = uuid.UUID{}.String()

// ErrNotMapping is returned when a collection operation is applied to a
// value that is not an ordered mapping.
var ErrNotMapping = eris.New("collection value is not a mapping")

// MintItemKey returns a fresh guid key that is non-zero and distinct from
// every key already present in coll (including the guid prefixes of compound
// keys).
func MintItemKey(coll *Value) string {
	for {
		id := uuid.NewString()
		if id == zeroGUID {
			continue
		}
		if coll != nil && collHasGUID(coll, id) {
			continue
		}
		return id
	}
}

func collHasGUID(coll *Value, id string) bool {
	for _, e := range coll.Entries() {
		g := e.Key
		if sep := strings.Index(g, compoundKeySep); sep >= 0 {
			g = g[:sep]
		}
		if strings.EqualFold(g, id) {
			return true
		}
	}
	return false
}

// AppendListItem appends one item to an identity list under a freshly minted
// guid key and returns the key.
func AppendListItem(list *Value, item *Value) (string, error) {
	if list == nil || list.Kind() != KindMap {
		return "", ErrNotMapping
	}
	key := MintItemKey(list)
	list.mapAppend(key, item)
	return key, nil
}

// ReplaceList discards every prior entry and inserts a fresh guid-keyed
// entry per replacement item. Keys are never reused, even for items whose
// values are unchanged.
func ReplaceList(list *Value, items []*Value) error {
	if list == nil || list.Kind() != KindMap {
		return ErrNotMapping
	}
	list.entries = list.entries[:0]
	list.index = map[string]int{}
	for _, item := range items {
		list.mapAppend(MintItemKey(list), item)
	}
	return nil
}

// SetDictionaryItem appends an entry under "<fresh guid>~<userKey>". It
// always appends, even when userKey already exists: duplicate user keys
// under distinct guids are a legal document state, and replace semantics are
// the caller's to compose via RemoveDictionaryItem.
func SetDictionaryItem(dict *Value, userKey string, item *Value) (string, error) {
	if dict == nil || dict.Kind() != KindMap {
		return "", ErrNotMapping
	}
	key := MintItemKey(dict) + compoundKeySep + userKey
	dict.mapAppend(key, item)
	return key, nil
}

// RemoveDictionaryItem removes every entry whose user key matches and
// reports how many were removed.
func RemoveDictionaryItem(dict *Value, userKey string) int {
	if dict == nil || dict.Kind() != KindMap {
		return 0
	}
	kept := dict.entries[:0]
	removed := 0
	for _, e := range dict.entries {
		if _, uk, ok := ParseCompoundKey(e.Key); ok && uk == userKey {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	if removed > 0 {
		dict.entries = kept
		dict.reindex()
	}
	return removed
}

// DictionaryGet returns the value stored under userKey. With duplicates the
// last entry wins, matching how a loader applies entries in order.
func DictionaryGet(dict *Value, userKey string) *Value {
	if dict == nil || dict.Kind() != KindMap {
		return nil
	}
	var found *Value
	for _, e := range dict.Entries() {
		if _, uk, ok := ParseCompoundKey(e.Key); ok && uk == userKey {
			found = e.Value
		}
	}
	return found
}

// ParseCompoundKey splits "<guid>~<userkey>" and validates the guid half.
func ParseCompoundKey(key string) (guid, userKey string, ok bool) {
	sep := strings.Index(key, compoundKeySep)
	if sep < 0 {
		return "", "", false
	}
	guid, userKey = key[:sep], key[sep+1:]
	if !IsGUID(guid) || guid == zeroGUID {
		return "", "", false
	}
	return guid, userKey, true
}

// FormatCompoundKey renders a compound dictionary key.
func FormatCompoundKey(guid, userKey string) string {
	return guid + compoundKeySep + userKey
}
