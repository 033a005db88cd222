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


package ingestion

import (
	"regexp"
	"strings"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	// Keeps word characters, sentence punctuation, and currency symbols.
	disallowedChars = regexp.MustCompile(`[^\w\s.,!?;:()\-$€₹£¥]`)
	periodRuns      = regexp.MustCompile(`\.{2,}`)
)

// CleanText normalizes raw product text before chunking: whitespace runs
// collapse to a single space, characters outside the allowed set are
// removed, ellipses collapse to a single period, and the result is trimmed.
func CleanText(text string) string {
	text = whitespaceRuns.ReplaceAllString(text, " ")
	text = disallowedChars.ReplaceAllString(text, "")
	text = periodRuns.ReplaceAllString(text, ".")
	return strings.TrimSpace(text)
}
