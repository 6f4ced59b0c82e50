// Package segment splits free text into sentence fragments. Boundary
// detection uses a trained punkt tokenizer; hashtags can be isolated as
// stand-alone units and punctuation-only fragments are dropped.
package segment

import (
	"log"
	"regexp"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

var (
	hashtagRE   = regexp.MustCompile(`#\w+`)
	punctOnlyRE = regexp.MustCompile(`^[\W_]+$`)
	fallbackRE  = regexp.MustCompile(`([.!?]+)[ \t]+`)

	newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
)

// Options controls segmentation behavior.
type Options struct {
	// IsolateHashtags makes every #word token a stand-alone fragment,
	// kept at its position in the text.
	IsolateHashtags bool
	// MinChars drops fragments shorter than this many runes (0/1 keep all).
	MinChars int
	// MinWords drops fragments with fewer whitespace-separated words.
	MinWords int
}

// NewTokenizer loads the English sentence boundary data. Load it once
// at process start and share the tokenizer across segmenters.
func NewTokenizer() (sentences.SentenceTokenizer, error) {
	return english.NewSentenceTokenizer(nil)
}

// Segmenter splits text into sentences using a shared boundary
// tokenizer. A nil tokenizer falls back to the regex splitter.
type Segmenter struct {
	tokenizer sentences.SentenceTokenizer
	opts      Options
}

// New creates a Segmenter around the given tokenizer.
func New(tokenizer sentences.SentenceTokenizer, opts Options) *Segmenter {
	return &Segmenter{tokenizer: tokenizer, opts: opts}
}

// Split segments text into trimmed sentence fragments, in original
// order. Empty and punctuation-only fragments are dropped. Whitespace-only
// input yields nil.
func (s *Segmenter) Split(text string) []string {
	text = strings.TrimSpace(newlines.Replace(text))
	if text == "" {
		return nil
	}

	var frags []string
	if s.opts.IsolateHashtags {
		frags = s.splitIsolatingHashtags(text)
	} else {
		frags = s.detect(text)
	}

	var out []string
	for _, f := range frags {
		f = strings.TrimSpace(f)
		if f == "" || punctOnlyRE.MatchString(f) {
			continue
		}
		if s.opts.MinChars > 0 && len([]rune(f)) < s.opts.MinChars {
			continue
		}
		if s.opts.MinWords > 0 && len(strings.Fields(f)) < s.opts.MinWords {
			continue
		}
		out = append(out, f)
	}
	return out
}

// splitIsolatingHashtags cuts the text into hashtag and prose spans,
// runs boundary detection on the prose spans only, and keeps every
// hashtag as its own fragment exactly where it occurred.
func (s *Segmenter) splitIsolatingHashtags(text string) []string {
	matches := hashtagRE.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return s.detect(text)
	}

	var frags []string
	prev := 0
	for _, m := range matches {
		if prose := strings.TrimSpace(text[prev:m[0]]); prose != "" {
			frags = append(frags, s.detect(prose)...)
		}
		frags = append(frags, text[m[0]:m[1]])
		prev = m[1]
	}
	if prose := strings.TrimSpace(text[prev:]); prose != "" {
		frags = append(frags, s.detect(prose)...)
	}
	return frags
}

// detect runs the boundary tokenizer, degrading to the regex fallback
// when the tokenizer is absent or panics on malformed input.
func (s *Segmenter) detect(text string) (frags []string) {
	if s.tokenizer == nil {
		return splitFallback(text)
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("sentence tokenizer failed (%v); using fallback splitter", r)
			frags = splitFallback(text)
		}
	}()

	detected := s.tokenizer.Tokenize(text)
	frags = make([]string, 0, len(detected))
	for _, sent := range detected {
		frags = append(frags, sent.Text)
	}
	return frags
}

// splitFallback cuts after runs of sentence terminators followed by
// whitespace. Text without terminators comes back as one fragment.
func splitFallback(text string) []string {
	marked := fallbackRE.ReplaceAllString(text, "$1\x00")
	parts := strings.Split(marked, "\x00")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
