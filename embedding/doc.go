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


// Package embedding turns chunks into embedded chunks one at a time.
//
// Each chunk is submitted to an ai.Embedder and retried up to a fixed
// number of attempts. Chunks that exhaust their attempts are dropped and
// reported; the run continues with the next chunk. Order among the
// successful chunks is preserved.
package embedding
