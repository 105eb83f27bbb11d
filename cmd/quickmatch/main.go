package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/asynkron/Asynkron.QuickMatch/internal/config"
	"github.com/asynkron/Asynkron.QuickMatch/internal/logger"
	"github.com/asynkron/Asynkron.QuickMatch/match"
)

const usage = `Usage: quickmatch [flags] <fileA> <fileB>

Finds the text segments two documents share and reports a similarity score.
Use "-" for one of the files to read it from stdin, or -a/-b for literal text.

Flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// options are the parsed command line settings
type options struct {
	cfg       config.Config
	configDir string
	textA     string
	textB     string
	hasA      bool // -a given, even if empty
	hasB      bool
	files     []string
	highlight bool
	explain   bool
	nfc       bool
	noColor   bool
	jsonPath  string
	report    string
	timeout   time.Duration
}

// parseArgs reads flags over the config file; flags given explicitly win
func parseArgs(args []string, stderr io.Writer) (*options, error) {
	defaults := config.Defaults()
	fs := flag.NewFlagSet("quickmatch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	algo := fs.String("algo", defaults.Algorithm.String(), "Matching algorithm: rabin-karp or kmp")
	minLen := fs.Int("min", defaults.MinLength, "Minimum match length in characters")
	top := fs.Int("top", defaults.Top, "Show top N matches by length (0 for all)")
	workers := fs.Int("workers", defaults.Workers, "Window sizes scanned concurrently (1 for sequential)")
	logLevel := fs.String("log-level", defaults.LogLevel, "Diagnostic log level: debug, info, warn, error or none")
	configDir := fs.String("config", ".", "Directory containing .quickmatch/config.json")

	o := &options{}
	fs.StringVar(&o.textA, "a", "", "Literal text for the first document")
	fs.StringVar(&o.textB, "b", "", "Literal text for the second document")
	fs.BoolVar(&o.highlight, "highlight", false, "Print both documents with matched segments highlighted")
	fs.BoolVar(&o.explain, "explain", false, "Explain the matching algorithms and exit")
	fs.BoolVar(&o.nfc, "nfc", false, "Compose Unicode characters (NFC) before comparing")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored output")
	fs.StringVar(&o.jsonPath, "json", "", "Write results as JSON to this path (\"-\" for stdout only)")
	fs.StringVar(&o.report, "report", "", "Write a markdown report to this path")
	fs.DurationVar(&o.timeout, "timeout", 0, "Abort the comparison after this long (0 for no limit)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(*configDir)
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["algo"] {
		if cfg.Algorithm, err = match.ParseAlgorithm(*algo); err != nil {
			return nil, err
		}
	}
	if set["min"] {
		cfg.MinLength = *minLen
	}
	if set["top"] {
		cfg.Top = *top
	}
	if set["workers"] {
		cfg.Workers = *workers
	}
	if set["log-level"] {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o.hasA, o.hasB = set["a"], set["b"]
	o.cfg = cfg
	o.configDir = *configDir
	o.files = fs.Args()
	return o, nil
}

// documents resolves the two inputs. -a and -b fill their own slot and
// positional arguments fill the remaining slots in order.
func (o *options) documents(stdin io.Reader) (Document, Document, error) {
	var slots [2]*Document
	if o.hasA {
		doc := literalDocument(o.textA)
		slots[0] = &doc
	}
	if o.hasB {
		doc := literalDocument(o.textB)
		slots[1] = &doc
	}

	given := len(o.files)
	for _, s := range slots {
		if s != nil {
			given++
		}
	}
	if given != 2 {
		return Document{}, Document{}, fmt.Errorf("need exactly two documents, got %d", given)
	}

	stdinUsed := false
	next := 0
	for _, path := range o.files {
		if path == "-" {
			if stdinUsed {
				return Document{}, Document{}, errors.New("stdin can only be used for one document")
			}
			stdinUsed = true
		}
		doc, err := loadDocument(path, stdin)
		if err != nil {
			return Document{}, Document{}, err
		}
		for slots[next] != nil {
			next++
		}
		slots[next] = &doc
	}

	a, b := *slots[0], *slots[1]
	if o.nfc {
		a, b = composeNFC(a), composeNFC(b)
	}
	return a, b, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if o.noColor {
		theme = PlainTheme
	}
	bands := o.cfg.Severity

	if o.explain {
		fmt.Fprint(stdout, renderMarkdown(explainMarkdown(bands), 80))
		return 0
	}

	a, b, err := o.documents(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	log := logger.New(o.cfg.LogLevel, stderr)
	log.Debug("configuration loaded", "path", config.Path(o.configDir), "algorithm", o.cfg.Algorithm, "min", o.cfg.MinLength, "workers", o.cfg.Workers)

	// JSON on stdout replaces the console output
	console := stdout
	if o.jsonPath == "-" {
		console = io.Discard
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	startTime := time.Now()
	PrintCompareStart(console, a, b, o.cfg.Algorithm, o.cfg.MinLength)

	res, err := match.CompareContext(ctx, a.Text, b.Text, match.Options{
		Algorithm:      o.cfg.Algorithm,
		MinMatchLength: o.cfg.MinLength,
		Workers:        o.cfg.Workers,
		Logger:         log,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	visible, hidden := FilterMatches(res.Matches, o.cfg.IgnoredSet())
	shown := TopN(visible, o.cfg.Top)

	PrintSummary(console, res, bands, len(shown), hidden)
	PrintMatches(console, shown)

	if o.highlight {
		PrintHighlighted(console, "Document A: "+displayName(a), a, res.NormalizedA, res.SpansA())
		PrintHighlighted(console, "Document B: "+displayName(b), b, res.NormalizedB, res.SpansB())
	}

	if o.jsonPath != "" {
		if err := WriteJSONResults(buildJSONOutput(res, a, b, visible, bands), o.jsonPath, stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	if o.report != "" {
		if err := WriteReport(o.report, BuildReport(res, a, b, visible, bands)); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(console, "Report written to: %s\n", theme.Location.Render(filepath.Clean(o.report)))
	}

	PrintTotalSummary(console, res, time.Since(startTime))
	return 0
}
