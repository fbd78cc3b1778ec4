package knowledge

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"finbot/pkg/core/utils"
)

// defaultTopK is how many chunks a query retrieves.
const defaultTopK = 4

// Base ties together the splitter, the embedder and the vector store.
type Base struct {
	store    VectorStore
	embedder Embedder
	splitter *Splitter
}

// NewBase creates a knowledge base over the given store and embedder.
func NewBase(store VectorStore, embedder Embedder) *Base {
	return &Base{
		store:    store,
		embedder: embedder,
		splitter: NewSplitter(),
	}
}

// IngestDocument splits, embeds and stores a document. Returns the number
// of chunks indexed.
func (b *Base) IngestDocument(ctx context.Context, doc Document) (int, error) {
	chunks := b.splitter.ChunkDocument(doc)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("el documento '%s' no contiene texto", doc.Title)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	vectors, err := b.embedder.Embed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed document %q: %w", doc.Title, err)
	}
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}

	if err := b.store.AddDocument(ctx, doc, chunks); err != nil {
		return 0, err
	}

	fmt.Printf("[knowledge.Base] Indexed %q: %d chunks\n", doc.Title, len(chunks))
	return len(chunks), nil
}

// IngestFile loads a .txt, .md or .csv file and indexes it.
func (b *Base) IngestFile(ctx context.Context, path string) (Document, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var content string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		content = string(data)
	case ".md":
		content = utils.MarkdownToText(string(data))
	case ".csv", ".tsv":
		content, err = csvToText(string(data), filepath.Ext(path) == ".tsv")
		if err != nil {
			return Document{}, 0, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return Document{}, 0, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}

	doc := NewDocument(path, title, content)
	n, err := b.IngestDocument(ctx, doc)
	return doc, n, err
}

// IngestURL fetches a web page, extracts its visible text and indexes it.
func (b *Base) IngestURL(ctx context.Context, url string) (Document, int, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return Document{}, 0, fmt.Errorf("failed to create request: %w", err)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return Document{}, 0, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Document{}, 0, fmt.Errorf("fetch %s returned status %d", url, res.StatusCode)
	}

	page, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return Document{}, 0, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}

	page.Find("script, style, nav, footer, noscript").Remove()

	title := strings.TrimSpace(page.Find("title").First().Text())
	if title == "" {
		title = url
	}

	var sb strings.Builder
	page.Find("h1, h2, h3, h4, p, li, td").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n\n")
		}
	})

	doc := NewDocument(url, title, sb.String())
	n, err := b.IngestDocument(ctx, doc)
	return doc, n, err
}

// Query embeds the question and returns the most similar chunks.
func (b *Base) Query(ctx context.Context, question string, k int) ([]ScoredChunk, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("la consulta está vacía")
	}
	if k <= 0 {
		k = defaultTopK
	}

	vectors, err := b.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	return b.store.Search(ctx, vectors[0], k)
}

// BuildContext joins retrieved chunks into the context block the RAG
// prompt expects.
func BuildContext(chunks []ScoredChunk) string {
	var sb strings.Builder
	for i, sc := range chunks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(sc.Chunk.Content)
	}
	return sb.String()
}

// Count reports how many chunks are indexed.
func (b *Base) Count(ctx context.Context) (int, error) {
	return b.store.Count(ctx)
}

// Documents lists the indexed documents.
func (b *Base) Documents(ctx context.Context) ([]Document, error) {
	return b.store.Documents(ctx)
}

// csvToText renders each data row as "header: value" pairs so tabular
// sources read naturally after chunking.
func csvToText(raw string, tabSeparated bool) (string, error) {
	reader := csv.NewReader(strings.NewReader(raw))
	if tabSeparated {
		reader.Comma = '\t'
	}
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", nil
	}

	headers := records[0]
	var sb strings.Builder
	for _, row := range records[1:] {
		var pairs []string
		for i, field := range row {
			if i < len(headers) {
				pairs = append(pairs, fmt.Sprintf("%s: %s", headers[i], field))
			} else {
				pairs = append(pairs, field)
			}
		}
		sb.WriteString(strings.Join(pairs, ", "))
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}
