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
	"fmt"
	"os"
	"strings"
)

// Header returns the synthetic header line for a 1-based page number.
func Header(page int) string {
	return fmt.Sprintf("%s - %d", HeaderPrefix, page)
}

// Number prefixes every delimiter-separated page of text with a page header.
// Pages are trimmed and rejoined with the delimiter on its own paragraph.
// Empty pages are kept so numbering matches page positions in the source.
func Number(text, delimiter string) string {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	pages := strings.Split(text, delimiter)
	numbered := make([]string, len(pages))
	for i, page := range pages {
		numbered[i] = Header(i+1) + "\n\n" + strings.TrimSpace(page)
	}
	return strings.Join(numbered, "\n\n"+delimiter+"\n\n")
}

// NumberFile applies Number to the file at src and writes the result to dst.
// Returns the number of pages written.
func NumberFile(src, dst, delimiter string) (int, error) {
	content, err := ReadSource(src)
	if err != nil {
		return 0, err
	}

	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	numbered := Number(content, delimiter)

	if err := os.WriteFile(dst, []byte(numbered), 0644); err != nil {
		return 0, fmt.Errorf("failed to write numbered document %s: %w", dst, err)
	}

	return strings.Count(content, delimiter) + 1, nil
}
