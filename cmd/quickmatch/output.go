package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/asynkron/Asynkron.QuickMatch/internal/config"
	"github.com/asynkron/Asynkron.QuickMatch/match"
)

// Theme defines the color scheme for console output
type Theme struct {
	Score     lipgloss.Style
	Hash      lipgloss.Style
	Location  lipgloss.Style
	LineNum   lipgloss.Style
	Summary   lipgloss.Style
	Dim       lipgloss.Style
	Highlight lipgloss.Style
	Low       lipgloss.Style
	Medium    lipgloss.Style
	High      lipgloss.Style
}

// DefaultTheme is the default color scheme
var DefaultTheme = Theme{
	Score:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
	Hash:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Location:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	LineNum:   lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
	Summary:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82")),
	Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	Highlight: lipgloss.NewStyle().Background(lipgloss.Color("136")).Foreground(lipgloss.Color("0")),
	Low:       lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color("34")).Foreground(lipgloss.Color("0")),
	Medium:    lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color("178")).Foreground(lipgloss.Color("0")),
	High:      lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color("160")).Foreground(lipgloss.Color("15")),
}

// PlainTheme renders everything without styling
var PlainTheme = Theme{
	Score:     lipgloss.NewStyle(),
	Hash:      lipgloss.NewStyle(),
	Location:  lipgloss.NewStyle(),
	LineNum:   lipgloss.NewStyle(),
	Summary:   lipgloss.NewStyle(),
	Dim:       lipgloss.NewStyle(),
	Highlight: lipgloss.NewStyle(),
	Low:       lipgloss.NewStyle(),
	Medium:    lipgloss.NewStyle(),
	High:      lipgloss.NewStyle(),
}

// Current theme (can be changed at runtime)
var theme = DefaultTheme

// excerptWidth is the terminal width a match excerpt is cut to
const excerptWidth = 72

// Severity is the presentation band of a similarity score
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "low"
	}
}

// classify bands a score: below medium is low, below high is medium
func classify(score float64, bands config.Severity) Severity {
	switch {
	case score < bands.Medium:
		return SeverityLow
	case score < bands.High:
		return SeverityMedium
	default:
		return SeverityHigh
	}
}

func (t Theme) badge(s Severity) string {
	label := strings.ToUpper(s.String())
	switch s {
	case SeverityMedium:
		return t.Medium.Render(label)
	case SeverityHigh:
		return t.High.Render(label)
	default:
		return t.Low.Render(label)
	}
}

// PrintCompareStart prints what is being compared
func PrintCompareStart(w io.Writer, a, b Document, algo match.Algorithm, minLen int) {
	fmt.Fprintf(w, "Comparing %s (%d chars) with %s (%d chars) using %s, minimum match %d...\n",
		theme.Location.Render(displayName(a)), runeCount(a.Text),
		theme.Location.Render(displayName(b)), runeCount(b.Text),
		algo.Label(), minLen)
}

// PrintSummary prints the similarity score, its band and timing
func PrintSummary(w io.Writer, res *match.Result, bands config.Severity, shown, hidden int) {
	sev := classify(res.Score, bands)
	fmt.Fprintf(w, "\nSimilarity: %s %s\n",
		theme.Score.Render(fmt.Sprintf("%.2f%%", res.Score)),
		theme.badge(sev))
	fmt.Fprintf(w, "%s\n", theme.Dim.Render(fmt.Sprintf("%d of %d characters matched, processed in %s",
		res.MatchedRunes(), min(runeCount(res.NormalizedA), runeCount(res.NormalizedB)),
		formatElapsed(res.Elapsed))))

	fmt.Fprintf(w, "Found %s matching segments", theme.Summary.Render(fmt.Sprintf("%d", len(res.Matches))))
	if hidden > 0 {
		fmt.Fprintf(w, " (%d ignored)", hidden)
	}
	if shown < len(res.Matches)-hidden {
		fmt.Fprintf(w, " (showing top %d by length)", shown)
	}
	fmt.Fprintln(w)
}

// PrintMatches prints the ranked matches with their spans
func PrintMatches(w io.Writer, matches []DisplayMatch) {
	for i, m := range matches {
		fmt.Fprintf(w, "\n%s %s %s\n",
			theme.Score.Render(fmt.Sprintf("Match #%d", i+1)),
			theme.Dim.Render(fmt.Sprintf("[%d chars]", m.Len())),
			theme.Hash.Render(fmt.Sprintf("[%016x]", m.Fingerprint)))
		fmt.Fprintf(w, "  %s%s  %s%s\n",
			theme.Location.Render("A"), theme.LineNum.Render(m.A.String()),
			theme.Location.Render("B"), theme.LineNum.Render(m.B.String()))
		fmt.Fprintf(w, "  %q\n", excerpt(m.Text, excerptWidth))
	}
}

// PrintHighlighted prints a document with its matched spans highlighted.
// spans must be sorted and disjoint, as Result.SpansA/SpansB return them.
func PrintHighlighted(w io.Writer, title string, doc Document, normalized string, spans []match.Span) {
	fmt.Fprintf(w, "\n%s\n", theme.Summary.Render(title))
	fmt.Fprintln(w, highlight(displayRunes(doc.Text, normalized), spans))
}

// highlight renders text with every span styled, one line at a time so
// multi-line spans do not get padded into a block
func highlight(text []rune, spans []match.Span) string {
	var sb strings.Builder
	pos := 0
	for _, s := range spans {
		if s.Start < pos || s.End > len(text) {
			continue
		}
		sb.WriteString(string(text[pos:s.Start]))
		for i, line := range strings.Split(string(text[s.Start:s.End]), "\n") {
			if i > 0 {
				sb.WriteByte('\n')
			}
			if line != "" {
				sb.WriteString(theme.Highlight.Render(line))
			}
		}
		pos = s.End
	}
	sb.WriteString(string(text[pos:]))
	return sb.String()
}

var displayBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// displayRunes returns the original text laid out rune for rune like its
// normalized form, so match offsets can highlight the original casing and
// line breaks. Falls back to the normalized text if the two disagree.
func displayRunes(original, normalized string) []rune {
	display := []rune(displayBreaks.Replace(original))
	norm := []rune(normalized)
	if len(display) != len(norm) {
		return norm
	}
	return display
}

// PrintTotalSummary prints the final summary line
func PrintTotalSummary(w io.Writer, res *match.Result, elapsed time.Duration) {
	fmt.Fprintf(w, "\nTotal: %s segments, %s similar, in %s\n",
		theme.Summary.Render(fmt.Sprintf("%d", len(res.Matches))),
		theme.Summary.Render(fmt.Sprintf("%.2f%%", res.Score)),
		theme.Summary.Render(elapsed.Round(time.Millisecond).String()))
}

// excerpt truncates text to a terminal width
func excerpt(text string, width int) string {
	return runewidth.Truncate(text, width, "...")
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
}

func runeCount(s string) int {
	return len([]rune(s))
}
