// Command sentencecut converts a tabular file of free-text records
// (CSV, TSV or XLSX) into sentence-level rows and writes the result as
// CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cognicore/sentencecut/pkg/sentencecut"
	"github.com/cognicore/sentencecut/pkg/sentencecut/cache/sqlitecache"
	"github.com/cognicore/sentencecut/pkg/sentencecut/classify"
	"github.com/cognicore/sentencecut/pkg/sentencecut/cleaner"
	"github.com/cognicore/sentencecut/pkg/sentencecut/config"
	"github.com/cognicore/sentencecut/pkg/sentencecut/contextgroup"
	"github.com/cognicore/sentencecut/pkg/sentencecut/segment"
	"github.com/cognicore/sentencecut/pkg/sentencecut/table"
)

func main() {
	var (
		input  = flag.String("input", "", "Input table: .csv, .tsv or .xlsx (required)")
		output = flag.String("output", "processed_data.csv", "Output CSV path")
		mode   = flag.String("mode", "convert", "Pipeline mode: convert | split-context | instagram")

		statementCut = flag.String("statement-cut", "sentence", "Statement granularity: sentence | turn | post")
		contextCut   = flag.String("context-cut", "rolling", "Context policy: rolling | whole")
		speaker      = flag.String("speaker", "customer", "Speaker label: customer | salesperson")

		isolateHashtags = flag.Bool("isolate-hashtags", true, "Keep hashtags as stand-alone sentences")
		minChars        = flag.Int("min-chars", 1, "Minimum characters per sentence")
		minWords        = flag.Int("min-words", 1, "Minimum words per sentence")

		dictPath  = flag.String("dict", "", "Optional: YAML keyword dictionary enabling the Category column")
		matchMode = flag.String("match-mode", "first", "Category match mode: first | all")

		clean      = flag.Bool("clean", false, "Apply caption cleaning (HTML, emoji, URLs, emails, mentions)")
		runConfig  = flag.String("config", "", "Optional: YAML run-option file overriding the option flags")
		idCol      = flag.String("id-col", "", "split-context: raw header of the id column")
		contextCol = flag.String("context-col", "", "split-context: raw header of the text column")
		cachePath  = flag.String("cache", "", "Optional: SQLite result-cache path")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}

	content, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}
	tab, err := table.ReadFile(*input, content)
	if err != nil {
		log.Fatalf("parse input: %v", err)
	}

	ctx := context.Background()

	opts := sentencecut.Options{
		Granularity:   contextgroup.Granularity(*statementCut),
		ContextPolicy: contextgroup.Policy(*contextCut),
		Speaker:       *speaker,
		Segment: segment.Options{
			IsolateHashtags: *isolateHashtags,
			MinChars:        *minChars,
			MinWords:        *minWords,
		},
		MatchMode: classify.Mode(*matchMode),
	}
	if *clean {
		defaults := cleaner.CaptionDefaults()
		opts.Clean = &defaults
	}
	if *runConfig != "" {
		run, err := config.LoadRun(*runConfig)
		if err != nil {
			log.Fatalf("load run config: %v", err)
		}
		opts = optionsFromRun(run, opts)
		if run.DictionaryPath != "" && *dictPath == "" {
			*dictPath = run.DictionaryPath
		}
	}

	if *dictPath != "" {
		data, err := os.ReadFile(*dictPath)
		if err != nil {
			log.Fatalf("read dictionary: %v", err)
		}
		dict, warning := config.ParseOrDefault(data)
		if warning != "" {
			log.Printf("warning: %s", warning)
		}
		opts.Dictionary = dict
	}

	if *cachePath != "" {
		c, err := sqlitecache.Open(ctx, *cachePath)
		if err != nil {
			log.Fatalf("open cache: %v", err)
		}
		defer c.Close()
		opts.Cache = c
	}

	pipeline, err := sentencecut.NewPipeline()
	if err != nil {
		log.Fatalf("init pipeline: %v", err)
	}

	var res *sentencecut.Result
	switch *mode {
	case "convert":
		res, err = pipeline.Convert(ctx, tab, opts)
	case "split-context":
		if *idCol == "" || *contextCol == "" {
			log.Fatal("--id-col and --context-col required in split-context mode")
		}
		res, err = pipeline.SplitContext(ctx, tab, *idCol, *contextCol, opts)
	case "instagram":
		res, err = pipeline.ConvertInstagram(ctx, tab, opts)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatalf("%s: %v", *mode, err)
	}

	for _, w := range res.Warnings {
		log.Printf("warning: %s", w)
	}

	out, err := os.Create(*output)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}
	defer out.Close()
	if err := res.Table.WriteCSV(out); err != nil {
		log.Fatalf("write output: %v", err)
	}

	cached := ""
	if res.CacheHit {
		cached = " (from cache)"
	}
	fmt.Printf("run %s: wrote %d rows to %s%s\n", res.RunID, res.Table.Len(), *output, cached)
}

// optionsFromRun maps a run-option file onto Options, keeping the
// base options where the file is silent.
func optionsFromRun(run *config.Run, base sentencecut.Options) sentencecut.Options {
	if run.StatementCut != "" {
		base.Granularity = contextgroup.Granularity(run.StatementCut)
	}
	if run.ContextCut != "" {
		base.ContextPolicy = contextgroup.Policy(run.ContextCut)
	}
	if run.Speaker != "" {
		base.Speaker = run.Speaker
	}
	if run.MatchMode != "" {
		base.MatchMode = classify.Mode(run.MatchMode)
	}
	base.Segment.IsolateHashtags = run.IsolateHashtags
	if run.MinChars > 0 {
		base.Segment.MinChars = run.MinChars
	}
	if run.MinWords > 0 {
		base.Segment.MinWords = run.MinWords
	}

	c := run.Clean
	if c.StripHTML || c.RemoveEmoji || c.Transliterate || c.StripURLs || c.StripEmails || c.StripHashtags || c.StripMentions {
		base.Clean = &cleaner.Options{
			StripHTML:     c.StripHTML,
			RemoveEmoji:   c.RemoveEmoji,
			Transliterate: c.Transliterate,
			StripURLs:     c.StripURLs,
			StripEmails:   c.StripEmails,
			StripHashtags: c.StripHashtags,
			StripMentions: c.StripMentions,
		}
	}
	return base
}
