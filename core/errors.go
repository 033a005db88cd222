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


package core

import "errors"

// Domain errors
var (
	// ErrInvalidQuery indicates the query text is empty or blank.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrIndexUnavailable indicates the similarity index call failed.
	ErrIndexUnavailable = errors.New("similarity index unavailable")

	// ErrSynthesisFailed indicates answer generation failed.
	ErrSynthesisFailed = errors.New("answer synthesis failed")

	// ErrTimedOut indicates a collaborator call exceeded its deadline.
	ErrTimedOut = errors.New("retrieval timed out")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
