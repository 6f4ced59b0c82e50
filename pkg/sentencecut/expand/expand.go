// Package expand turns input records into statement-level output rows
// at sentence, turn or post granularity.
package expand

import (
	"sort"
	"strings"

	"github.com/cognicore/sentencecut/pkg/sentencecut/cleaner"
	"github.com/cognicore/sentencecut/pkg/sentencecut/contextgroup"
	"github.com/cognicore/sentencecut/pkg/sentencecut/segment"
)

// Record is one resolved input row.
type Record struct {
	ID   string
	Turn int
	Text string
}

// OutputRow is the unit the pipeline emits. SentenceIndex is 1-based
// within the source record and only meaningful at sentence granularity.
type OutputRow struct {
	ID            string
	Turn          int
	SentenceIndex int
	Statement     string
	Context       string
	Speaker       string
}

// Options configures expansion.
type Options struct {
	Granularity contextgroup.Granularity
	Speaker     string
	// Clean, when non-nil, runs the text cleaner before segmentation.
	Clean *cleaner.Options
}

// Expand produces output rows in input order.
//
// Zero-sentence policy: at sentence and turn granularity a record whose
// text yields nothing contributes no rows; at post granularity every id
// contributes exactly one row even when all its text is unsegmentable.
func Expand(records []Record, seg *segment.Segmenter, opts Options) []OutputRow {
	switch opts.Granularity {
	case contextgroup.GranularityTurn:
		return expandTurns(records, opts)
	case contextgroup.GranularityPost:
		return expandPosts(records, opts)
	default:
		return expandSentences(records, seg, opts)
	}
}

func expandSentences(records []Record, seg *segment.Segmenter, opts Options) []OutputRow {
	var rows []OutputRow
	for _, rec := range records {
		for i, sentence := range seg.Split(cleanText(rec.Text, opts.Clean)) {
			rows = append(rows, OutputRow{
				ID:            rec.ID,
				Turn:          rec.Turn,
				SentenceIndex: i + 1,
				Statement:     sentence,
				Speaker:       opts.Speaker,
			})
		}
	}
	return rows
}

func expandTurns(records []Record, opts Options) []OutputRow {
	var rows []OutputRow
	for _, rec := range records {
		text := strings.TrimSpace(cleanText(rec.Text, opts.Clean))
		if text == "" {
			continue
		}
		rows = append(rows, OutputRow{
			ID:        rec.ID,
			Turn:      rec.Turn,
			Statement: text,
			Speaker:   opts.Speaker,
		})
	}
	return rows
}

// expandPosts joins each id's text (ordered by turn, original order
// breaking ties) into a single row with turn 0. Ids appear in first-seen
// order and never disappear, even with nothing to say.
func expandPosts(records []Record, opts Options) []OutputRow {
	type member struct {
		turn  int
		order int
		text  string
	}
	groups := make(map[string][]member)
	var ids []string
	for i, rec := range records {
		if _, seen := groups[rec.ID]; !seen {
			ids = append(ids, rec.ID)
		}
		groups[rec.ID] = append(groups[rec.ID], member{
			turn:  rec.Turn,
			order: i,
			text:  strings.TrimSpace(cleanText(rec.Text, opts.Clean)),
		})
	}

	rows := make([]OutputRow, 0, len(ids))
	for _, id := range ids {
		members := groups[id]
		sort.SliceStable(members, func(i, j int) bool {
			if members[i].turn != members[j].turn {
				return members[i].turn < members[j].turn
			}
			return members[i].order < members[j].order
		})

		var b strings.Builder
		for _, m := range members {
			if m.text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(m.text)
		}
		rows = append(rows, OutputRow{
			ID:        id,
			Turn:      0,
			Statement: b.String(),
			Speaker:   opts.Speaker,
		})
	}
	return rows
}

// ContextRecord is one input row for split-context expansion: an id and
// the free text to cut up.
type ContextRecord struct {
	ID      string
	Context string
}

// SplitContext explodes each record's context text into sentence rows.
// Every row keeps the raw full source text in Context, so downstream
// consumers see both the sentence and where it came from.
func SplitContext(records []ContextRecord, seg *segment.Segmenter, clean *cleaner.Options) []OutputRow {
	var rows []OutputRow
	for _, rec := range records {
		for i, sentence := range seg.Split(cleanText(rec.Context, clean)) {
			rows = append(rows, OutputRow{
				ID:            rec.ID,
				SentenceIndex: i + 1,
				Statement:     sentence,
				Context:       rec.Context,
			})
		}
	}
	return rows
}

func cleanText(text string, opts *cleaner.Options) string {
	if opts == nil {
		return text
	}
	return cleaner.Clean(text, *opts)
}
