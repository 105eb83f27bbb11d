package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/asynkron/Asynkron.QuickMatch/internal/config"
	"github.com/asynkron/Asynkron.QuickMatch/match"
)

// JSON output structures

type JSONDocument struct {
	Name       string `json:"name"`
	Length     int    `json:"length"`
	Normalized string `json:"normalized"`
}

type JSONMatch struct {
	Fingerprint string     `json:"fingerprint"`
	Text        string     `json:"text"`
	Length      int        `json:"length"`
	A           match.Span `json:"a"`
	B           match.Span `json:"b"`
}

type JSONOutput struct {
	Algorithm    match.Algorithm `json:"algorithm"`
	MinLength    int             `json:"min_length"`
	Score        float64         `json:"similarity_score"`
	Severity     string          `json:"severity"`
	ElapsedMS    float64         `json:"elapsed_ms"`
	DocumentA    JSONDocument    `json:"document_a"`
	DocumentB    JSONDocument    `json:"document_b"`
	TotalMatches int             `json:"total_matches"`
	Matches      []JSONMatch     `json:"matches"`
}

// buildJSONOutput converts a result into its JSON form. All matches are
// included, not just the displayed top N.
func buildJSONOutput(res *match.Result, a, b Document, matches []DisplayMatch, bands config.Severity) JSONOutput {
	out := JSONOutput{
		Algorithm:    res.Algorithm,
		MinLength:    res.MinLength,
		Score:        res.Score,
		Severity:     classify(res.Score, bands).String(),
		ElapsedMS:    float64(res.Elapsed.Microseconds()) / 1000,
		DocumentA:    JSONDocument{Name: a.Name, Length: runeCount(res.NormalizedA), Normalized: res.NormalizedA},
		DocumentB:    JSONDocument{Name: b.Name, Length: runeCount(res.NormalizedB), Normalized: res.NormalizedB},
		TotalMatches: len(matches),
		Matches:      make([]JSONMatch, 0, len(matches)),
	}
	for _, m := range matches {
		out.Matches = append(out.Matches, JSONMatch{
			Fingerprint: fmt.Sprintf("%016x", m.Fingerprint),
			Text:        m.Text,
			Length:      m.Len(),
			A:           m.A,
			B:           m.B,
		})
	}
	return out
}

// WriteJSONResults writes the results to a JSON file, or stdout for "-"
func WriteJSONResults(out JSONOutput, outputPath string, stdout io.Writer) error {
	jsonData, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}

	if outputPath == "-" {
		_, err := fmt.Fprintln(stdout, string(jsonData))
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, jsonData, 0o644); err != nil {
		return fmt.Errorf("writing JSON file: %w", err)
	}

	fmt.Fprintf(stdout, "Results written to: %s\n", theme.Location.Render(outputPath))
	return nil
}
