package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asynkron/Asynkron.QuickMatch/internal/config"
	"github.com/asynkron/Asynkron.QuickMatch/match"
)

type runResult struct {
	code   int
	stdout string
	stderr string
}

// runCLI runs the command with an empty config directory unless args name one
func runCLI(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	useTheme(t, theme)
	hasConfig := false
	for _, arg := range args {
		if arg == "-config" {
			hasConfig = true
		}
	}
	if !hasConfig {
		args = append([]string{"-config", t.TempDir()}, args...)
	}

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return runResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeDocs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("The quick brown fox jumps"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("A quick brown dog\r\njumps high"), 0o644))
	return a, b
}

func TestRunCompareFiles(t *testing.T) {
	a, b := writeDocs(t)

	r := runCLI(t, "", "-no-color", a, b)
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Comparing a.txt (25 chars) with b.txt (29 chars)")
	assert.Contains(t, r.stdout, "Similarity: 76.00% HIGH")
	assert.Contains(t, r.stdout, "Found 2 matching segments")
	assert.Contains(t, r.stdout, `" quick brown "`)
	assert.Contains(t, r.stdout, "Total: 2 segments, 76.00% similar")
	assert.Empty(t, r.stderr)
}

func TestRunJSONToStdout(t *testing.T) {
	a, b := writeDocs(t)

	r := runCLI(t, "", "-json", "-", "-algo", "kmp", a, b)
	require.Equal(t, 0, r.code, r.stderr)
	assert.NotContains(t, r.stdout, "Comparing", "console output is replaced by JSON")

	var out JSONOutput
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &out))
	assert.Equal(t, match.Automaton, out.Algorithm)
	assert.InDelta(t, 76.0, out.Score, 1e-9)
	assert.Equal(t, "a.txt", filepath.Base(out.DocumentA.Name))
	require.Len(t, out.Matches, 2)
	assert.Equal(t, " quick brown ", out.Matches[0].Text)
	assert.Equal(t, " jumps", out.Matches[1].Text)
}

func TestRunLiteralAndStdin(t *testing.T) {
	r := runCLI(t, "hello world", "-json", "-", "-a", "Hello World", "-")
	require.Equal(t, 0, r.code, r.stderr)

	var out JSONOutput
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &out))
	assert.Equal(t, "literal", out.DocumentA.Name)
	assert.Equal(t, "stdin", out.DocumentB.Name)
	assert.InDelta(t, 100.0, out.Score, 1e-9)
	require.Len(t, out.Matches, 1)
	assert.Equal(t, "hello world", out.Matches[0].Text)
}

func TestRunLiteralKeepsItsSlot(t *testing.T) {
	a, _ := writeDocs(t)

	r := runCLI(t, "", "-json", "-", "-b", "A quick brown dog jumps high", a)
	require.Equal(t, 0, r.code, r.stderr)

	var out JSONOutput
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &out))
	assert.Equal(t, "a.txt", filepath.Base(out.DocumentA.Name))
	assert.Equal(t, "literal", out.DocumentB.Name)
	require.NotEmpty(t, out.Matches)
	assert.Equal(t, match.Span{Start: 3, End: 16}, out.Matches[0].A)
	assert.Equal(t, match.Span{Start: 1, End: 14}, out.Matches[0].B)
}

func TestRunEmptyLiteral(t *testing.T) {
	r := runCLI(t, "", "-json", "-", "-a", "", "-b", "hello")
	require.Equal(t, 0, r.code, r.stderr)

	var out JSONOutput
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &out))
	assert.Equal(t, "", out.DocumentA.Normalized)
	assert.Equal(t, "hello", out.DocumentB.Normalized)
	assert.Zero(t, out.Score)
	assert.Empty(t, out.Matches)
}

func TestRunHighlight(t *testing.T) {
	a, b := writeDocs(t)

	r := runCLI(t, "", "-no-color", "-highlight", a, b)
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Document A: a.txt")
	assert.Contains(t, r.stdout, "Document B: b.txt")
	assert.Contains(t, r.stdout, "A quick brown dog\njumps high", "original casing and line breaks are shown")
}

func TestRunWritesReport(t *testing.T) {
	a, b := writeDocs(t)
	report := filepath.Join(t.TempDir(), "report.md")

	r := runCLI(t, "", "-no-color", "-report", report, a, b)
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Report written to:")

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Found 2 matching segments")
}

func TestRunUsesConfigFile(t *testing.T) {
	a, b := writeDocs(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, config.Dir), 0o755))
	ignored := fingerprint(" jumps")
	cfgJSON := fmt.Sprintf(`{"algorithm": "kmp", "min_length": 6, "ignored": ["%016x"]}`, ignored)
	require.NoError(t, os.WriteFile(config.Path(dir), []byte(cfgJSON), 0o644))

	r := runCLI(t, "", "-config", dir, "-json", "-", a, b)
	require.Equal(t, 0, r.code, r.stderr)

	var out JSONOutput
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &out))
	assert.Equal(t, match.Automaton, out.Algorithm)
	assert.Equal(t, 6, out.MinLength)
	assert.InDelta(t, 76.0, out.Score, 1e-9, "ignored matches still count towards the score")
	require.Len(t, out.Matches, 1)
	assert.Equal(t, " quick brown ", out.Matches[0].Text)

	// flags win over the file
	r = runCLI(t, "", "-config", dir, "-json", "-", "-min", "20", a, b)
	require.Equal(t, 0, r.code, r.stderr)
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &out))
	assert.Equal(t, 20, out.MinLength)
	assert.Zero(t, out.Score)
}

func TestRunExplain(t *testing.T) {
	r := runCLI(t, "", "-explain")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Rabin-Karp")
	assert.Contains(t, r.stdout, "Knuth-Morris-Pratt")
}

func TestRunUsageErrors(t *testing.T) {
	a, _ := writeDocs(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"one document", []string{a}, "need exactly two documents, got 1"},
		{"three documents", []string{a, a, a}, "need exactly two documents, got 3"},
		{"literal plus two files", []string{"-a", "text", a, a}, "need exactly two documents, got 3"},
		{"stdin twice", []string{"-", "-"}, "stdin can only be used for one document"},
		{"unknown algorithm", []string{"-algo", "bogus", a, a}, "unknown algorithm"},
		{"zero minimum", []string{"-min", "0", a, a}, "min_length must be at least 1"},
		{"unknown flag", []string{"-frobnicate", a, a}, "flag provided but not defined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runCLI(t, "", tt.args...)
			assert.Equal(t, 2, r.code)
			assert.Contains(t, r.stderr, tt.want)
		})
	}
}

func TestRunMissingFile(t *testing.T) {
	a, _ := writeDocs(t)
	r := runCLI(t, "", a, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "Error: reading")
}

func TestRunBadConfig(t *testing.T) {
	a, b := writeDocs(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, config.Dir), 0o755))
	require.NoError(t, os.WriteFile(config.Path(dir), []byte(`{"colour": "red"}`), 0o644))

	r := runCLI(t, "", "-config", dir, a, b)
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "unknown field")
}

func TestRunCancelled(t *testing.T) {
	a, b := writeDocs(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	useTheme(t, theme)
	code := run(ctx, []string{"-config", t.TempDir(), a, b}, nil, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), context.Canceled.Error())
}
