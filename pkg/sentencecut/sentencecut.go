// Package sentencecut converts tabular free-text records into
// sentence-level rows for text-classification experiments: resolve
// columns, clean and segment text, derive per-group context, classify
// by keywords, and emit a new table.
package sentencecut

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/oklog/ulid/v2"

	"github.com/cognicore/sentencecut/pkg/sentencecut/cache"
	"github.com/cognicore/sentencecut/pkg/sentencecut/classify"
	"github.com/cognicore/sentencecut/pkg/sentencecut/cleaner"
	"github.com/cognicore/sentencecut/pkg/sentencecut/columns"
	"github.com/cognicore/sentencecut/pkg/sentencecut/contextgroup"
	"github.com/cognicore/sentencecut/pkg/sentencecut/expand"
	"github.com/cognicore/sentencecut/pkg/sentencecut/internalerr"
	"github.com/cognicore/sentencecut/pkg/sentencecut/segment"
	"github.com/cognicore/sentencecut/pkg/sentencecut/table"
)

// Options configures a conversion run. Zero values mean: sentence
// granularity, rolling context, no cleaning, no classification, no
// cache.
type Options struct {
	Granularity   contextgroup.Granularity
	ContextPolicy contextgroup.Policy
	// Speaker is attached verbatim to every output row.
	Speaker string
	Segment segment.Options
	// Clean, when non-nil, runs the text cleaner before segmentation.
	Clean *cleaner.Options
	// Dictionary enables the Category column.
	Dictionary *classify.Dictionary
	MatchMode  classify.Mode
	// TurnOptional accepts input without a turn column; turns default
	// to 0.
	TurnOptional bool
	// Cache, when non-nil, short-circuits runs whose (table, options)
	// fingerprint has been seen before.
	Cache cache.Cache
}

// Result is the outcome of one run.
type Result struct {
	RunID    string
	Table    *table.Table
	Warnings []string
	CacheHit bool
}

// Pipeline is the conversion engine. The sentence-boundary data is
// loaded once and shared across runs.
type Pipeline struct {
	tokenizer sentences.SentenceTokenizer
	entropy   *ulid.MonotonicEntropy
}

// NewPipeline loads the sentence-boundary data and returns a ready
// pipeline.
func NewPipeline() (*Pipeline, error) {
	tokenizer, err := segment.NewTokenizer()
	if err != nil {
		return nil, fmt.Errorf("load sentence tokenizer: %w", err)
	}
	return NewPipelineWithTokenizer(tokenizer), nil
}

// NewPipelineWithTokenizer wires an explicit tokenizer, mainly for
// tests. A nil tokenizer degrades every split to the regex fallback.
func NewPipelineWithTokenizer(tokenizer sentences.SentenceTokenizer) *Pipeline {
	return &Pipeline{
		tokenizer: tokenizer,
		entropy:   ulid.Monotonic(rand.Reader, 0),
	}
}

func (p *Pipeline) newRunID() string {
	return ulid.MustNew(ulid.Now(), p.entropy).String()
}

// Convert runs the full pipeline on a table carrying id, turn and
// statement columns. The run either returns a complete table or an
// error; no partial output.
func (p *Pipeline) Convert(ctx context.Context, in *table.Table, opts Options) (*Result, error) {
	opts = withDefaults(opts)
	if in == nil || in.Len() == 0 {
		return nil, internalerr.ErrEmptyInput
	}

	res := &Result{RunID: p.newRunID()}
	key := runKey(in, "convert", opts)
	if hit, ok := p.cacheGet(ctx, opts.Cache, key, res); ok {
		return hit, nil
	}

	records, err := resolveRecords(in, opts.TurnOptional)
	if err != nil {
		return nil, err
	}

	seg := segment.New(p.tokenizer, opts.Segment)
	rows := expand.Expand(records, seg, expand.Options{
		Granularity: opts.Granularity,
		Speaker:     opts.Speaker,
		Clean:       opts.Clean,
	})

	ctxRows := make([]contextgroup.Row, len(rows))
	for i, r := range rows {
		ctxRows[i] = contextgroup.Row{
			ID:        r.ID,
			Turn:      r.Turn,
			Order:     i,
			Statement: r.Statement,
		}
	}
	ctxRows = contextgroup.Apply(ctxRows, opts.ContextPolicy, opts.Granularity)

	res.Table = buildConvertTable(rows, ctxRows, opts)
	p.cachePut(ctx, opts.Cache, key, res)
	return res, nil
}

// SplitContext explodes one explicitly chosen text column into sentence
// rows, keeping the raw source text as each row's Context. Header picks
// are exact raw header names.
func (p *Pipeline) SplitContext(ctx context.Context, in *table.Table, idHeader, contextHeader string, opts Options) (*Result, error) {
	opts = withDefaults(opts)
	if in == nil || in.Len() == 0 {
		return nil, internalerr.ErrEmptyInput
	}

	res := &Result{RunID: p.newRunID()}
	key := runKey(in, "splitcontext:"+idHeader+":"+contextHeader, opts)
	if hit, ok := p.cacheGet(ctx, opts.Cache, key, res); ok {
		return hit, nil
	}

	idCol, ctxCol := -1, -1
	for i, h := range in.Headers {
		if h == idHeader && idCol < 0 {
			idCol = i
		}
		if h == contextHeader && ctxCol < 0 {
			ctxCol = i
		}
	}
	var missing []columns.Role
	if idCol < 0 {
		missing = append(missing, columns.RoleID)
	}
	if ctxCol < 0 {
		missing = append(missing, columns.RoleContext)
	}
	if len(missing) > 0 {
		return nil, &columns.MissingColumnsError{Roles: missing}
	}

	records := make([]expand.ContextRecord, in.Len())
	for i := range in.Rows {
		records[i] = expand.ContextRecord{ID: in.Cell(i, idCol), Context: in.Cell(i, ctxCol)}
	}

	seg := segment.New(p.tokenizer, opts.Segment)
	rows := expand.SplitContext(records, seg, opts.Clean)

	res.Table = buildSplitTable(rows)
	p.cachePut(ctx, opts.Cache, key, res)
	return res, nil
}

// ConvertInstagram is the caption variant of SplitContext: the id is
// the post shortcode and the text is the caption, and scraped-caption
// cleaning is applied unless the caller picked their own cleaner.
func (p *Pipeline) ConvertInstagram(ctx context.Context, in *table.Table, opts Options) (*Result, error) {
	if in == nil || in.Len() == 0 {
		return nil, internalerr.ErrEmptyInput
	}

	idHeader, ctxHeader := "", ""
	for _, h := range in.Headers {
		switch columns.Canonical(h) {
		case "shortcode":
			if idHeader == "" {
				idHeader = h
			}
		case "caption":
			if ctxHeader == "" {
				ctxHeader = h
			}
		}
	}
	var missing []columns.Role
	if idHeader == "" {
		missing = append(missing, columns.RoleID)
	}
	if ctxHeader == "" {
		missing = append(missing, columns.RoleContext)
	}
	if len(missing) > 0 {
		return nil, &columns.MissingColumnsError{Roles: missing}
	}

	if opts.Clean == nil {
		defaults := cleaner.CaptionDefaults()
		opts.Clean = &defaults
	}
	return p.SplitContext(ctx, in, idHeader, ctxHeader, opts)
}

func withDefaults(opts Options) Options {
	if opts.Granularity == "" {
		opts.Granularity = contextgroup.GranularitySentence
	}
	if opts.ContextPolicy == "" {
		opts.ContextPolicy = contextgroup.PolicyRolling
	}
	if opts.MatchMode == "" {
		opts.MatchMode = classify.ModeFirst
	}
	return opts
}

// resolveRecords maps the table onto expand.Records via role
// resolution. Non-numeric turn cells coerce to 0.
func resolveRecords(in *table.Table, turnOptional bool) ([]expand.Record, error) {
	roles := []columns.Role{columns.RoleID, columns.RoleTurn, columns.RoleStatement}
	if turnOptional {
		roles = []columns.Role{columns.RoleID, columns.RoleStatement}
	}
	resolved, err := columns.Resolve(in.Headers, roles)
	if err != nil {
		return nil, err
	}

	turnCol := -1
	if turnOptional {
		if m, err := columns.Resolve(in.Headers, []columns.Role{columns.RoleTurn}); err == nil {
			turnCol = m[columns.RoleTurn]
		}
	} else {
		turnCol = resolved[columns.RoleTurn]
	}

	records := make([]expand.Record, in.Len())
	for i := range in.Rows {
		turn := 0
		if turnCol >= 0 {
			turn = coerceTurn(in.Cell(i, turnCol))
		}
		records[i] = expand.Record{
			ID:   in.Cell(i, resolved[columns.RoleID]),
			Turn: turn,
			Text: in.Cell(i, resolved[columns.RoleStatement]),
		}
	}
	return records, nil
}

func coerceTurn(cell string) int {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0
	}
	if n, err := strconv.Atoi(cell); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return int(f)
	}
	return 0
}

// buildConvertTable assembles the output schema for Convert. ctxRows
// are in sorted order and carry the derived context; Order points back
// into rows.
func buildConvertTable(rows []expand.OutputRow, ctxRows []contextgroup.Row, opts Options) *table.Table {
	withSentenceID := opts.Granularity == contextgroup.GranularitySentence
	withCategory := opts.Dictionary != nil

	headers := []string{"ID", "Turn"}
	if withSentenceID {
		headers = append(headers, "Sentence ID")
	}
	headers = append(headers, "Statement", "Context")
	if withCategory {
		headers = append(headers, "Category")
	}
	headers = append(headers, "Speaker")

	out := table.New(headers...)
	for _, cr := range ctxRows {
		full := rows[cr.Order]
		cells := []string{full.ID, strconv.Itoa(full.Turn)}
		if withSentenceID {
			cells = append(cells, strconv.Itoa(full.SentenceIndex))
		}
		cells = append(cells, full.Statement, cr.Context)
		if withCategory {
			cells = append(cells, opts.Dictionary.Classify(full.Statement, opts.MatchMode))
		}
		cells = append(cells, full.Speaker)
		out.Append(cells...)
	}
	return out
}

func buildSplitTable(rows []expand.OutputRow) *table.Table {
	out := table.New("ID", "Sentence ID", "Statement", "Context")
	for _, r := range rows {
		out.Append(r.ID, strconv.Itoa(r.SentenceIndex), r.Statement, r.Context)
	}
	return out
}

// runKey fingerprints (table, mode, fully-resolved options) for the
// result cache.
func runKey(in *table.Table, mode string, opts Options) string {
	h := sha256.New()
	h.Write([]byte(in.Fingerprint()))
	h.Write([]byte{0})
	h.Write([]byte(mode))
	h.Write([]byte{0})

	fmt.Fprintf(h, "g=%s;p=%s;spk=%s;hash=%t;minc=%d;minw=%d;mode=%s;turnopt=%t",
		opts.Granularity, opts.ContextPolicy, opts.Speaker,
		opts.Segment.IsolateHashtags, opts.Segment.MinChars, opts.Segment.MinWords,
		opts.MatchMode, opts.TurnOptional)
	if opts.Clean != nil {
		fmt.Fprintf(h, ";clean=%+v", *opts.Clean)
	}
	if opts.Dictionary != nil {
		for _, c := range opts.Dictionary.Categories() {
			fmt.Fprintf(h, ";cat=%s:%s", c.Name, strings.Join(c.Keywords, ","))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (p *Pipeline) cacheGet(ctx context.Context, c cache.Cache, key string, res *Result) (*Result, bool) {
	if c == nil {
		return nil, false
	}
	t, ok, err := c.Get(ctx, key)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("cache read failed: %v", err))
		log.Printf("run %s: cache read failed: %v", res.RunID, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	res.Table = t
	res.CacheHit = true
	return res, true
}

func (p *Pipeline) cachePut(ctx context.Context, c cache.Cache, key string, res *Result) {
	if c == nil {
		return
	}
	if err := c.Put(ctx, key, res.Table); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("cache write failed: %v", err))
		log.Printf("run %s: cache write failed: %v", res.RunID, err)
	}
}
