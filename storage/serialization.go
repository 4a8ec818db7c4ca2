// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"errors"
	"fmt"
	"math"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/pageindex/core"
)

// documentSize returns the encoded length of doc.
func documentSize(doc *core.StoredDocument) int {
	size := ord.String.Size(doc.ID) +
		ord.String.Size(doc.Label) +
		ord.String.Size(doc.Text) +
		varint.Int.Size(len(doc.Vector))
	for _, f := range doc.Vector {
		size += varint.Uint32.Size(math.Float32bits(f))
	}
	return size
}

// MarshalStoredDocument serializes a StoredDocument to bytes.
// Layout: id, label, text, vector length, vector elements as IEEE-754 bits.
func MarshalStoredDocument(doc *core.StoredDocument) []byte {
	buf := make([]byte, documentSize(doc))
	n := ord.String.Marshal(doc.ID, buf)
	n += ord.String.Marshal(doc.Label, buf[n:])
	n += ord.String.Marshal(doc.Text, buf[n:])
	n += varint.Int.Marshal(len(doc.Vector), buf[n:])
	for _, f := range doc.Vector {
		n += varint.Uint32.Marshal(math.Float32bits(f), buf[n:])
	}
	return buf
}

// UnmarshalStoredDocument deserializes a StoredDocument from bytes.
func UnmarshalStoredDocument(data []byte) (*core.StoredDocument, error) {
	if len(data) == 0 {
		return nil, ErrTruncatedData
	}

	doc := &core.StoredDocument{}
	var (
		n, read int
		err     error
	)

	if doc.ID, read, err = ord.String.Unmarshal(data); err != nil {
		return nil, decodeError("id", err)
	}
	n += read
	if doc.Label, read, err = ord.String.Unmarshal(data[n:]); err != nil {
		return nil, decodeError("label", err)
	}
	n += read
	if doc.Text, read, err = ord.String.Unmarshal(data[n:]); err != nil {
		return nil, decodeError("text", err)
	}
	n += read

	length, read, err := varint.Int.Unmarshal(data[n:])
	if err != nil {
		return nil, decodeError("vector length", err)
	}
	n += read
	// Each element takes at least one byte.
	if length < 0 || length > len(data)-n {
		return nil, fmt.Errorf("%w: vector length %d", ErrTruncatedData, length)
	}

	doc.Vector = make([]float32, length)
	for i := range doc.Vector {
		bits, read, err := varint.Uint32.Unmarshal(data[n:])
		if err != nil {
			return nil, decodeError("vector", err)
		}
		n += read
		doc.Vector[i] = math.Float32frombits(bits)
	}

	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return doc, nil
}

func decodeError(field string, err error) error {
	if errors.Is(err, ErrTruncatedData) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrTruncatedData, field, err)
}
