package ingestion

import "strings"

const (
	// DefaultChunkSize is the target chunk length in characters.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is how many trailing characters of a chunk are
	// carried into the next one.
	DefaultChunkOverlap = 200
)

// chunkSeparators is ordered from coarsest to finest. The empty string is a
// hard character split and always terminates the recursion.
var chunkSeparators = []string{"\n\n", "\n", ".", "!", "?", ",", " ", ""}

// Chunker splits cleaned text into overlapping chunks. It prefers breaking
// at paragraph and sentence boundaries, falling back to finer separators
// only when a piece still exceeds the target size.
type Chunker struct {
	Size    int
	Overlap int
}

// Split breaks text into chunks of at most Size characters with Overlap
// characters carried between consecutive chunks. Empty input yields nil.
func (c Chunker) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if c.Size <= 0 {
		c.Size = DefaultChunkSize
	}
	if c.Overlap < 0 || c.Overlap >= c.Size {
		c.Overlap = 0
	}
	return c.merge(c.split(text, chunkSeparators))
}

// split recursively divides text at the first separator it contains,
// descending to finer separators for pieces that are still too large.
func (c Chunker) split(text string, separators []string) []string {
	if len(text) <= c.Size {
		return []string{text}
	}

	sep := ""
	var rest []string
	for i, s := range separators {
		if s == "" {
			break
		}
		if strings.Contains(text, s) {
			sep = s
			rest = separators[i+1:]
			break
		}
	}

	if sep == "" {
		return c.hardSplit(text)
	}

	var pieces []string
	for _, part := range strings.SplitAfter(text, sep) {
		if part == "" {
			continue
		}
		if len(part) > c.Size {
			pieces = append(pieces, c.split(part, rest)...)
		} else {
			pieces = append(pieces, part)
		}
	}
	return pieces
}

// hardSplit cuts text into Size-rune pieces when no separator helps.
func (c Chunker) hardSplit(text string) []string {
	runes := []rune(text)
	pieces := make([]string, 0, len(runes)/c.Size+1)
	for start := 0; start < len(runes); start += c.Size {
		end := start + c.Size
		if end > len(runes) {
			end = len(runes)
		}
		pieces = append(pieces, string(runes[start:end]))
	}
	return pieces
}

// merge packs pieces into chunks up to Size characters, carrying the last
// Overlap characters of each flushed chunk into the next one.
func (c Chunker) merge(pieces []string) []string {
	var chunks []string
	var b strings.Builder
	carried := 0

	for _, piece := range pieces {
		if b.Len() > carried && b.Len()+len(piece) > c.Size {
			if chunk := strings.TrimSpace(b.String()); chunk != "" {
				chunks = append(chunks, chunk)
			}
			tail := overlapTail(b.String(), c.Overlap)
			b.Reset()
			b.WriteString(tail)
			carried = len(tail)
		}
		b.WriteString(piece)
	}

	if chunk := strings.TrimSpace(b.String()); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

func overlapTail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
