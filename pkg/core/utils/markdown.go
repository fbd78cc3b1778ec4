package utils

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownToText parses a markdown document with Goldmark and extracts its
// plain text, so ingested .md files are chunked and embedded without
// formatting noise. Headings and block boundaries become blank lines to
// preserve the paragraph structure the splitter keys on.
func MarkdownToText(source string) string {
	src := []byte(source)
	parser := goldmark.DefaultParser()
	doc := parser.Parse(text.NewReader(src))

	var sb strings.Builder
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(src))
			if node.HardLineBreak() || node.SoftLineBreak() {
				sb.WriteString("\n")
			}
		case *ast.Heading, *ast.Paragraph, *ast.ListItem:
			if sb.Len() > 0 {
				sb.WriteString("\n\n")
			}
		case *ast.FencedCodeBlock:
			if sb.Len() > 0 {
				sb.WriteString("\n\n")
			}
			for i := 0; i < node.Lines().Len(); i++ {
				line := node.Lines().At(i)
				sb.Write(line.Value(src))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(sb.String())
}

// IsMarkdown reports whether the document parses as markdown. Goldmark is
// permissive, so this only filters out content it cannot build a tree for.
func IsMarkdown(input string) bool {
	parser := goldmark.DefaultParser()
	doc := parser.Parse(text.NewReader([]byte(input)))
	return doc != nil
}
