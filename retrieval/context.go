package retrieval

import (
	"fmt"
	"strings"

	"github.com/poiesic/pricewise/core"
)

// NoContextSentinel is the assembled context when there are no candidates.
const NoContextSentinel = "No relevant information found."

// AssembleContext formats ranked candidates into the context block handed to
// the answer synthesizer. Output is deterministic: identical input yields
// byte-identical output.
//
// Each candidate becomes a numbered section with its title, price, and URL
// lines when present in metadata, followed by the description truncated to
// maxContentChars runes. Sections are joined by one blank line.
func AssembleContext(candidates []core.Candidate, maxContentChars int) string {
	if len(candidates) == 0 {
		return NoContextSentinel
	}

	sections := make([]string, 0, len(candidates))
	for i, candidate := range candidates {
		var b strings.Builder
		fmt.Fprintf(&b, "[Product %d]\n", i+1)

		doc := candidate.Document
		if doc != nil {
			if title := doc.Metadata[core.MetaTitle]; title != "" {
				fmt.Fprintf(&b, "Title: %s\n", title)
			}
			if price := doc.Metadata[core.MetaPrice]; price != "" {
				fmt.Fprintf(&b, "Price: %s\n", price)
			}
			if url := doc.Metadata[core.MetaURL]; url != "" {
				fmt.Fprintf(&b, "URL: %s\n", url)
			}
			fmt.Fprintf(&b, "Description: %s...\n", truncateRunes(doc.Content, maxContentChars))
		}

		sections = append(sections, b.String())
	}

	return strings.Join(sections, "\n\n")
}

// truncateRunes limits s to at most max runes. Non-positive max means no
// limit.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
