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


package chunking

import (
	"errors"
	"fmt"
)

// ErrSourceRead is matched by every *SourceReadError via errors.Is.
var ErrSourceRead = errors.New("source document cannot be read")

// SourceReadError reports that the input document could not be read.
// It is recoverable for the run as a whole: there is simply nothing to process.
type SourceReadError struct {
	Path string
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("error reading %s: %v", e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// Is reports ErrSourceRead as a match.
func (e *SourceReadError) Is(target error) bool {
	return target == ErrSourceRead
}
