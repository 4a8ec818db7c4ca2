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
	"errors"
	"fmt"
	"strings"

	"github.com/poiesic/pageindex/storage"
)

var (
	// ErrMissingEndpoint is returned when no API endpoint is configured.
	ErrMissingEndpoint = errors.New("astra: API endpoint is required")

	// ErrMissingToken is returned when no application token is configured.
	ErrMissingToken = errors.New("astra: token is required")

	// ErrIncompleteInsert is returned when insertMany acknowledges fewer
	// documents than were sent.
	ErrIncompleteInsert = errors.New("astra: insert not fully acknowledged")
)

// ErrorDetail is one entry of a Data API errors array.
type ErrorDetail struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// APIError reports errors returned in a Data API response body.
type APIError struct {
	Command string
	Errors  []ErrorDetail
}

func (e *APIError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, d := range e.Errors {
		if d.ErrorCode != "" {
			msgs[i] = d.ErrorCode + ": " + d.Message
		} else {
			msgs[i] = d.Message
		}
	}
	return fmt.Sprintf("astra %s: %s", e.Command, strings.Join(msgs, "; "))
}

// Unwrap maps well-known error codes onto storage sentinels.
func (e *APIError) Unwrap() error {
	for _, d := range e.Errors {
		switch d.ErrorCode {
		case "COLLECTION_NOT_EXIST":
			return storage.ErrCollectionNotFound
		case "DOCUMENT_ALREADY_EXISTS":
			return storage.ErrDuplicateKey
		case "EXISTING_COLLECTION_DIFFERENT_SETTINGS":
			return storage.ErrDimensionMismatch
		}
	}
	return nil
}

// HTTPError reports a non-2xx response.
type HTTPError struct {
	Command    string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("astra %s: HTTP %d: %s", e.Command, e.StatusCode, e.Body)
}
