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


// Package retrieval implements the query answering pipeline: interpret the
// question, retrieve ranked candidates from the similarity index, apply
// price constraints, assemble a deterministic context block, and hand it to
// the answer synthesizer.
//
// The pipeline has no retries and no partial recovery: the first failing
// stage aborts the query with a sentinel-wrapped error. An empty candidate
// list after filtering is not an error; it produces a fixed no-results
// answer without ever invoking the synthesizer.
//
// The Retriever holds no per-query state and is safe for concurrent use.
package retrieval
