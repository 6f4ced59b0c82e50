package segment

import (
	"reflect"
	"sync"
	"testing"

	"github.com/neurosnap/sentences"
)

var (
	tokOnce sync.Once
	tok     sentences.SentenceTokenizer
	tokErr  error
)

func testTokenizer(t *testing.T) sentences.SentenceTokenizer {
	t.Helper()
	tokOnce.Do(func() {
		tok, tokErr = NewTokenizer()
	})
	if tokErr != nil {
		t.Fatalf("NewTokenizer: %v", tokErr)
	}
	return tok
}

func TestSplitEmptyAndWhitespace(t *testing.T) {
	s := New(testTokenizer(t), Options{})
	for _, in := range []string{"", "   ", "\n\t  \n"} {
		if got := s.Split(in); len(got) != 0 {
			t.Errorf("Split(%q) = %v, want empty", in, got)
		}
	}
}

func TestSplitPunctuationOnly(t *testing.T) {
	s := New(testTokenizer(t), Options{})
	for _, in := range []string{"!!!", "...", "—", "_ _", "?! ..."} {
		if got := s.Split(in); len(got) != 0 {
			t.Errorf("Split(%q) = %v, want empty", in, got)
		}
	}
}

func TestSplitSingleSentenceNoTerminator(t *testing.T) {
	s := New(testTokenizer(t), Options{})
	got := s.Split("  just a few words with no period  ")
	want := []string{"just a few words with no period"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplitMultipleSentences(t *testing.T) {
	s := New(testTokenizer(t), Options{})
	got := s.Split("The food was great. The service was slow!")
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %v", got)
	}
	if got[0] != "The food was great." {
		t.Errorf("first sentence = %q", got[0])
	}
}

func TestSplitNewlinesBecomeSpaces(t *testing.T) {
	s := New(testTokenizer(t), Options{})
	got := s.Split("First line.\nSecond line.")
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %v", got)
	}
}

func TestSplitHashtagIsolated(t *testing.T) {
	s := New(testTokenizer(t), Options{IsolateHashtags: true})
	got := s.Split("Great trip! #vacation Loved every minute.")
	want := []string{"Great trip!", "#vacation", "Loved every minute."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplitHashtagOnly(t *testing.T) {
	s := New(testTokenizer(t), Options{IsolateHashtags: true})
	got := s.Split("#vacation")
	want := []string{"#vacation"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplitAdjacentHashtags(t *testing.T) {
	s := New(testTokenizer(t), Options{IsolateHashtags: true})
	got := s.Split("Best day ever. #sun #beach")
	want := []string{"Best day ever.", "#sun", "#beach"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplitHashtagDisabled(t *testing.T) {
	s := New(testTokenizer(t), Options{})
	got := s.Split("#vacation was fun")
	if len(got) != 1 {
		t.Fatalf("expected 1 fragment with isolation off, got %v", got)
	}
	if got[0] != "#vacation was fun" {
		t.Errorf("fragment = %q", got[0])
	}
}

func TestSplitIdempotent(t *testing.T) {
	s := New(testTokenizer(t), Options{IsolateHashtags: true})
	in := "One sentence here. Another one! #tag"
	first := s.Split(in)
	second := s.Split(in)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Split not deterministic: %v vs %v", first, second)
	}
}

func TestSplitMinChars(t *testing.T) {
	s := New(testTokenizer(t), Options{MinChars: 6})
	got := s.Split("Hi. A longer sentence stays.")
	want := []string{"A longer sentence stays."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplitMinWords(t *testing.T) {
	s := New(testTokenizer(t), Options{MinWords: 3})
	got := s.Split("No. Three words here. Two words!")
	want := []string{"Three words here."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplitNilTokenizerUsesFallback(t *testing.T) {
	s := New(nil, Options{})
	got := s.Split("First one. Second one! Third?")
	want := []string{"First one.", "Second one!", "Third?"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestFallbackNoTerminator(t *testing.T) {
	got := splitFallback("no punctuation at all")
	want := []string{"no punctuation at all"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitFallback = %v, want %v", got, want)
	}
}

func TestFallbackEllipsis(t *testing.T) {
	got := splitFallback("Wait... really? Yes.")
	want := []string{"Wait...", "really?", "Yes."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitFallback = %v, want %v", got, want)
	}
}

type panicTokenizer struct{}

func (panicTokenizer) Tokenize(string) []*sentences.Sentence { panic("bad input") }

func (panicTokenizer) AnnotateTokens([]*sentences.Token, ...sentences.AnnotateTokens) []*sentences.Token {
	panic("bad input")
}

func TestSplitRecoversFromTokenizerPanic(t *testing.T) {
	s := New(panicTokenizer{}, Options{})
	got := s.Split("One. Two.")
	want := []string{"One.", "Two."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}
