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


package astra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/poiesic/pageindex/core"
	"github.com/poiesic/pageindex/storage"
)

const (
	// DefaultKeyspace is the keyspace new Astra databases start with.
	DefaultKeyspace = "default_keyspace"

	apiPath        = "/api/json/v1"
	defaultTimeout = 60 * time.Second
	maxErrorBody   = 4096
)

// Option configures a Store.
type Option func(*Store)

// WithKeyspace overrides the keyspace.
func WithKeyspace(keyspace string) Option {
	return func(s *Store) {
		s.keyspace = keyspace
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Store) {
		s.client = client
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Store is an Astra DB Data API client.
type Store struct {
	endpoint string
	token    string
	keyspace string
	client   *http.Client
	logger   *slog.Logger
	closed   atomic.Bool
}

var _ storage.CollectionStore = (*Store)(nil)

// NewStore creates a client for the database at endpoint.
// Returns storage.CollectionStore interface to enforce abstraction.
func NewStore(endpoint, token string, opts ...Option) (storage.CollectionStore, error) {
	return newStore(endpoint, token, opts...)
}

func newStore(endpoint, token string, opts ...Option) (*Store, error) {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return nil, ErrMissingEndpoint
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("astra: invalid endpoint %q: %w", endpoint, err)
	}
	if token == "" {
		return nil, ErrMissingToken
	}

	s := &Store{
		endpoint: endpoint,
		token:    token,
		keyspace: DefaultKeyspace,
		client:   &http.Client{Timeout: defaultTimeout},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.keyspace == "" {
		s.keyspace = DefaultKeyspace
	}
	s.logger = s.logger.With("component", "astra", "keyspace", s.keyspace)
	return s, nil
}

// Close releases idle connections. Further calls fail with
// storage.ErrStorageClosed.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.client.CloseIdleConnections()
	return nil
}

type document struct {
	ID     string    `json:"_id"`
	Page   string    `json:"page"`
	Text   string    `json:"text"`
	Vector []float32 `json:"$vector"`
}

type response struct {
	Status json.RawMessage `json:"status,omitempty"`
	Errors []ErrorDetail   `json:"errors,omitempty"`
}

// ListCollections runs findCollections.
func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	var status struct {
		Collections []string `json:"collections"`
	}
	err := s.do(ctx, "findCollections", s.keyspaceURL(),
		map[string]any{"findCollections": map[string]any{}}, &status)
	if err != nil {
		return nil, err
	}
	if status.Collections == nil {
		return []string{}, nil
	}
	return status.Collections, nil
}

// CreateCollection runs createCollection with a cosine vector index of
// the given dimension.
func (s *Store) CreateCollection(ctx context.Context, name string, dimension int) error {
	if dimension <= 0 {
		return storage.ErrInvalidDimension
	}
	cmd := map[string]any{
		"createCollection": map[string]any{
			"name": name,
			"options": map[string]any{
				"vector": map[string]any{
					"dimension": dimension,
					"metric":    "cosine",
				},
			},
		},
	}
	if err := s.do(ctx, "createCollection", s.keyspaceURL(), cmd, nil); err != nil {
		return err
	}
	s.logger.Info("created collection", "name", name, "dimension", dimension)
	return nil
}

// InsertMany runs an ordered insertMany and requires every id to be
// acknowledged.
func (s *Store) InsertMany(ctx context.Context, collection string, docs []*core.StoredDocument) error {
	if len(docs) == 0 {
		return nil
	}

	payload := make([]document, len(docs))
	for i, d := range docs {
		payload[i] = document{ID: d.ID, Page: d.Label, Text: d.Text, Vector: d.Vector}
	}
	cmd := map[string]any{
		"insertMany": map[string]any{
			"documents": payload,
			"options":   map[string]any{"ordered": true},
		},
	}

	var status struct {
		InsertedIDs []string `json:"insertedIds"`
	}
	if err := s.do(ctx, "insertMany", s.collectionURL(collection), cmd, &status); err != nil {
		return err
	}
	if len(status.InsertedIDs) != len(docs) {
		return fmt.Errorf("%w: %d of %d documents", ErrIncompleteInsert, len(status.InsertedIDs), len(docs))
	}
	s.logger.Debug("inserted documents", "collection", collection, "count", len(docs))
	return nil
}

func (s *Store) keyspaceURL() string {
	return s.endpoint + apiPath + "/" + url.PathEscape(s.keyspace)
}

func (s *Store) collectionURL(collection string) string {
	return s.keyspaceURL() + "/" + url.PathEscape(collection)
}

// do POSTs one command and decodes the status object into status when
// non-nil.
func (s *Store) do(ctx context.Context, command, target string, body any, status any) error {
	if s.closed.Load() {
		return storage.ErrStorageClosed
	}

	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", storage.ErrSerializationFailed, command, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Token", s.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	s.logger.Debug("sending command", "command", command, "bytes", len(buf))
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("astra %s: %w", command, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("astra %s: reading response: %w", command, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(raw) > maxErrorBody {
			raw = raw[:maxErrorBody]
		}
		return &HTTPError{Command: command, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var decoded response
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("%w: %s response: %w", storage.ErrSerializationFailed, command, err)
	}
	if len(decoded.Errors) > 0 {
		return &APIError{Command: command, Errors: decoded.Errors}
	}
	if status != nil && len(decoded.Status) > 0 {
		if err := json.Unmarshal(decoded.Status, status); err != nil {
			return fmt.Errorf("%w: %s status: %w", storage.ErrSerializationFailed, command, err)
		}
	}
	return nil
}
