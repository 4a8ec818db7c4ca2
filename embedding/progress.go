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


package embedding

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports per-chunk embedding outcomes to a writer.
type ProgressTracker struct {
	writer    io.Writer
	total     int
	succeeded int
	dropped   int
	startTime time.Time
	started   bool
	mu        sync.Mutex
}

// NewProgressTracker creates a tracker for total chunks.
// A nil writer discards all output.
func NewProgressTracker(writer io.Writer, total int) *ProgressTracker {
	if writer == nil {
		writer = io.Discard
	}
	return &ProgressTracker{
		writer: writer,
		total:  total,
	}
}

// Start begins tracking progress.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.succeeded = 0
	p.dropped = 0
}

// Succeeded records a chunk that produced a vector.
func (p *ProgressTracker) Succeeded(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.succeeded++
	fmt.Fprintf(p.writer, "Generated embedding for page %s\n", label)
}

// AttemptFailed records one failed attempt for a chunk.
func (p *ProgressTracker) AttemptFailed(label string, attempt, maxAttempts int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.writer, "Error generating embedding for page %s (attempt %d/%d): %v\n", label, attempt, maxAttempts, err)
}

// Dropped records a chunk that exhausted its attempts.
func (p *ProgressTracker) Dropped(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.dropped++
}

// Finish prints a summary line.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	fmt.Fprintf(p.writer, "Embedded %d/%d chunks (%d dropped) in %s\n",
		p.succeeded, p.total, p.dropped, time.Since(p.startTime).Round(time.Millisecond))
}

// Counts returns the number of succeeded and dropped chunks so far.
func (p *ProgressTracker) Counts() (succeeded, dropped int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.succeeded, p.dropped
}
