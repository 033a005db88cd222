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


// Package query interprets free-form product questions into a search query
// plus structured price constraints.
//
// The interpreter is intentionally shallow: it recognizes a fixed vocabulary
// of bound phrases ("under $50", "more than 1,200") and leaves the query
// text itself untouched. Constraint extraction never fails; text with no
// recognizable phrase simply yields empty constraints.
package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/poiesic/pricewise/core"
)

// amountGrammar matches a dollar amount: an integer with optional comma
// thousands separators and an optional two-digit cents part.
const amountGrammar = `\d+(?:,\d{3})*(?:\.\d{2})?`

var (
	maxPattern = regexp.MustCompile(`(?i)(?:under|less than|below|cheaper than)\s*\$?\s*(` + amountGrammar + `)`)
	minPattern = regexp.MustCompile(`(?i)(?:above|more than|over|greater than)\s*\$?\s*(` + amountGrammar + `)`)
	numPattern = regexp.MustCompile(amountGrammar)
)

// Interpret extracts price constraints from a query.
//
// The returned search query is the input text unmodified. Bound phrases are
// deliberately not stripped: the embedding model tolerates them, and keeping
// the text intact makes retrieval behavior easy to reason about.
func Interpret(q string) (string, core.Constraints) {
	var c core.Constraints

	if m := maxPattern.FindStringSubmatch(q); m != nil {
		if v, ok := parseAmount(m[1]); ok {
			c.PriceMax = &v
		}
	}

	if m := minPattern.FindStringSubmatch(q); m != nil {
		if v, ok := parseAmount(m[1]); ok {
			c.PriceMin = &v
		}
	}

	return q, c
}

// Amount extracts the first dollar amount appearing anywhere in s.
// Currency symbols and thousands separators are tolerated. Returns false
// when s contains no numeric substring.
func Amount(s string) (float64, bool) {
	m := numPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	return parseAmount(m)
}

func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
