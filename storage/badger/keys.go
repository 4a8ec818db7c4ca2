package badger

import (
	"bytes"
	"strings"
)

const (
	collectionPrefix = "col"
	documentPrefix   = "doc"
)

// makeCollectionKey generates the metadata key for a collection.
// Format: col:name
func makeCollectionKey(name string) []byte {
	return []byte(collectionPrefix + ":" + name)
}

// collectionNameFromKey extracts the collection name from a metadata key.
func collectionNameFromKey(key []byte) string {
	return string(bytes.TrimPrefix(key, []byte(collectionPrefix+":")))
}

// makeDocumentPrefix generates the key prefix shared by a collection's documents.
// Format: doc:collection:
func makeDocumentPrefix(collection string) []byte {
	var sb strings.Builder
	sb.Grow(len(documentPrefix) + len(collection) + 2)
	sb.WriteString(documentPrefix)
	sb.WriteByte(':')
	sb.WriteString(collection)
	sb.WriteByte(':')
	return []byte(sb.String())
}

// makeDocumentKey generates the key for a document.
// Format: doc:collection:id
func makeDocumentKey(collection, id string) []byte {
	prefix := makeDocumentPrefix(collection)
	buf := make([]byte, len(prefix)+len(id))
	offset := copy(buf, prefix)
	copy(buf[offset:], id)
	return buf
}
