package knowledge

import (
	"strings"

	"github.com/google/uuid"
)

// Splitter cuts document text into overlapping chunks, preferring to break
// at the strongest available boundary: paragraph, line, sentence, word, and
// finally raw characters.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
}

// NewSplitter returns a splitter with the defaults the knowledge base uses.
func NewSplitter() *Splitter {
	return &Splitter{
		ChunkSize:    1000,
		ChunkOverlap: 200,
		Separators:   []string{"\n\n", "\n", ". ", " ", ""},
	}
}

// Split breaks text into chunks of at most ChunkSize characters with
// ChunkOverlap characters of context carried between consecutive chunks.
func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	pieces := s.split(text, s.Separators)
	return s.merge(pieces)
}

// split recursively divides text at the first separator that applies, then
// re-splits any fragment still over the chunk size with the next separator.
func (s *Splitter) split(text string, separators []string) []string {
	if len(text) <= s.ChunkSize {
		return []string{text}
	}
	if len(separators) == 0 {
		return s.hardSplit(text)
	}

	sep := separators[0]
	rest := separators[1:]
	if sep == "" {
		return s.hardSplit(text)
	}

	parts := strings.Split(text, sep)
	if len(parts) == 1 {
		return s.split(text, rest)
	}

	var out []string
	for i, part := range parts {
		// Re-attach the separator so sentence and line boundaries survive.
		if i < len(parts)-1 {
			part += sep
		}
		if len(part) > s.ChunkSize {
			out = append(out, s.split(part, rest)...)
		} else if strings.TrimSpace(part) != "" {
			out = append(out, part)
		}
	}
	return out
}

func (s *Splitter) hardSplit(text string) []string {
	var out []string
	runes := []rune(text)
	for start := 0; start < len(runes); start += s.ChunkSize {
		end := start + s.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}

// merge packs small fragments into chunks close to ChunkSize, carrying the
// trailing ChunkOverlap characters into the next chunk.
func (s *Splitter) merge(pieces []string) []string {
	var chunks []string
	var current strings.Builder

	flush := func() {
		chunk := strings.TrimSpace(current.String())
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		current.Reset()
	}

	for _, piece := range pieces {
		if current.Len() > 0 && current.Len()+len(piece) > s.ChunkSize {
			carry := overlapTail(current.String(), s.ChunkOverlap)
			flush()
			current.WriteString(carry)
		}
		current.WriteString(piece)
	}
	flush()
	return chunks
}

// overlapTail returns the last n characters of text, extended left to the
// nearest word boundary so the overlap never starts mid-word.
func overlapTail(text string, n int) string {
	if n <= 0 || len(text) <= n {
		if len(text) <= n {
			return text
		}
		return ""
	}
	tail := text[len(text)-n:]
	if idx := strings.IndexAny(tail, " \n"); idx >= 0 && idx < len(tail)-1 {
		tail = tail[idx+1:]
	}
	return tail
}

// ChunkDocument splits a document and wraps each piece as a Chunk.
func (s *Splitter) ChunkDocument(doc Document) []Chunk {
	parts := s.Split(doc.Content)
	chunks := make([]Chunk, 0, len(parts))
	for i, part := range parts {
		chunks = append(chunks, Chunk{
			ID:         uuid.NewString(),
			DocumentID: doc.ID,
			Index:      i,
			Content:    part,
		})
	}
	return chunks
}
