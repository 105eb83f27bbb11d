package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/asynkron/Asynkron.QuickMatch/internal/config"
	"github.com/asynkron/Asynkron.QuickMatch/match"
)

// BuildReport renders a comparison as markdown: summary table, then every
// match with its spans and text
func BuildReport(res *match.Result, a, b Document, matches []DisplayMatch, bands config.Severity) string {
	var sb strings.Builder

	sb.WriteString("# Text Comparison Report\n\n")
	sb.WriteString("| | |\n|---|---|\n")
	sb.WriteString(fmt.Sprintf("| Document A | `%s` (%d chars) |\n", displayName(a), runeCount(res.NormalizedA)))
	sb.WriteString(fmt.Sprintf("| Document B | `%s` (%d chars) |\n", displayName(b), runeCount(res.NormalizedB)))
	sb.WriteString(fmt.Sprintf("| Algorithm | %s |\n", res.Algorithm.Label()))
	sb.WriteString(fmt.Sprintf("| Minimum match | %d chars |\n", res.MinLength))
	sb.WriteString(fmt.Sprintf("| Similarity | **%.2f%%** (%s) |\n", res.Score, classify(res.Score, bands)))
	sb.WriteString(fmt.Sprintf("| Processed in | %s |\n\n", formatElapsed(res.Elapsed)))

	sb.WriteString(fmt.Sprintf("## Found %d matching segments\n\n", len(matches)))
	for i, m := range matches {
		sb.WriteString(fmt.Sprintf("### Match #%d `%016x` (%d chars)\n\n", i+1, m.Fingerprint, m.Len()))
		sb.WriteString(fmt.Sprintf("A `%s` B `%s`\n\n", m.A, m.B))
		sb.WriteString("```\n")
		sb.WriteString(m.Text)
		sb.WriteString("\n```\n\n")
	}

	sb.WriteString("---\n\n")
	sb.WriteString("*Offsets are character positions in the normalized text (lowercased, line breaks as spaces).*\n")
	return sb.String()
}

// WriteReport writes the markdown report to path
func WriteReport(path, markdown string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// renderMarkdown renders markdown for the terminal, falling back to the raw
// markdown if the renderer cannot be built
func renderMarkdown(markdown string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}

// explanation describes the two strategies for -explain
const explanation = `# String Matching Algorithms

Both strategies look for every segment of at least the minimum length that
appears in both documents, trying the longest window sizes first. A shared
resolver keeps the longest segments that do not overlap on either document,
and the similarity score is the share of the shorter document they cover.

## Rabin-Karp (Hashing)

1. Compute a polynomial hash for every window of the first document
2. Slide the same window over the second document, updating the hash in
   constant time per step (a rolling hash)
3. On a hash hit, compare the actual characters; equal hashes alone never
   count as a match

- Average case: O(n + m) per window size
- Worst case: O(n * m) per window size, when many windows collide
- Good for finding many candidate segments at once

## KMP (Knuth-Morris-Pratt)

1. Treat each window of the first document as a pattern
2. Build its failure function: for every prefix, the length of the longest
   proper prefix that is also a suffix
3. Scan the second document once, using the table to resume after a
   mismatch without moving backwards in the text

- Preprocessing: O(m), matching: O(n) per pattern
- Every start offset becomes its own pattern, so this strategy is much
  slower than hashing on large inputs
- Never backtracks in the scanned text

## Similarity bands

| Score | Band |
|---|---|
| below %.0f%% | low |
| below %.0f%% | medium |
| otherwise | high |
`

// explainMarkdown fills the configured bands into the explanation
func explainMarkdown(bands config.Severity) string {
	return fmt.Sprintf(explanation, bands.Medium, bands.High)
}
