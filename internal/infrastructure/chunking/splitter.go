// Package chunking splits legal text into overlapping chunks, preferring
// breaks at legal-document boundaries (section breaks, clause separators)
// over mid-sentence cuts.
package chunking

import "strings"

// Separators tried in order when looking for a break point near the chunk
// boundary. Earlier entries are stronger boundaries.
var legalSeparators = []string{
	"\n\n\n",
	"\n\n",
	".\n",
	". ",
	";\n",
	"; ",
	":\n",
	"\n",
	" ",
}

type Splitter struct {
	ChunkSize int
	Overlap   int
}

func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 5
	}
	return &Splitter{
		ChunkSize: chunkSize,
		Overlap:   overlap,
	}
}

// Split cuts text into chunks of at most ChunkSize runes with Overlap runes
// carried between neighbors. Each cut lands on the strongest legal separator
// found in the second half of the window, falling back to a hard cut when
// the window has no separator at all.
func (s *Splitter) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	out := []string{}
	start := 0
	for start < len(runes) {
		end := start + s.ChunkSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = s.breakPoint(runes, start, end)
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			out = append(out, chunk)
		}
		if end == len(runes) {
			break
		}

		next := end - s.Overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return out
}

// breakPoint finds the latest occurrence of the strongest separator in the
// second half of the window [start,limit) and returns the cut position just
// after it.
func (s *Splitter) breakPoint(runes []rune, start, limit int) int {
	window := string(runes[start:limit])
	half := len(window) / 2

	for _, sep := range legalSeparators {
		idx := strings.LastIndex(window, sep)
		if idx < half {
			continue
		}
		cut := idx + len(sep)
		// Separator offsets are byte offsets into the window; the window
		// slice was built from runes, so convert back.
		return start + len([]rune(window[:cut]))
	}
	return limit
}
