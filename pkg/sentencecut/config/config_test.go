package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/sentencecut/pkg/sentencecut/classify"
	"github.com/cognicore/sentencecut/pkg/sentencecut/internalerr"
)

func TestParseDictionaryPreservesOrder(t *testing.T) {
	data := []byte("Zebra:\n  - stripe\nApple:\n  - fruit\nMango:\n  - tropical\n")
	d, err := ParseDictionary(data)
	if err != nil {
		t.Fatalf("ParseDictionary: %v", err)
	}
	cats := d.Categories()
	want := []string{"Zebra", "Apple", "Mango"}
	for i, w := range want {
		if cats[i].Name != w {
			t.Errorf("category %d = %q, want %q (document order must survive)", i, cats[i].Name, w)
		}
	}
}

func TestParseDictionaryMalformed(t *testing.T) {
	cases := []string{
		"not yaml: [unclosed",
		"- a\n- b\n",           // sequence, not mapping
		"Food: pizza\n",        // scalar value, not list
		"Food:\n  sub: map\n",  // nested mapping value
		"Food:\n  - [nested]\n", // non-scalar keyword
	}
	for i, c := range cases {
		if _, err := ParseDictionary([]byte(c)); !errors.Is(err, internalerr.ErrInvalidDictionary) {
			t.Errorf("case %d: expected ErrInvalidDictionary, got %v", i, err)
		}
	}
}

func TestParseDictionaryClassifies(t *testing.T) {
	data := []byte("Food:\n  - pizza\n")
	d, err := ParseDictionary(data)
	if err != nil {
		t.Fatalf("ParseDictionary: %v", err)
	}
	if got := d.Classify("I love pizza", classify.ModeFirst); got != "Food" {
		t.Errorf("Classify = %q, want Food", got)
	}
	if got := d.Classify("I love sushi", classify.ModeFirst); got != classify.Uncategorized {
		t.Errorf("Classify = %q, want %q", got, classify.Uncategorized)
	}
}

func TestParseOrDefaultFallsBack(t *testing.T) {
	d, warning := ParseOrDefault([]byte("- not\n- a mapping\n"))
	if warning == "" {
		t.Error("expected a warning for malformed input")
	}
	if got := d.Classify("what a great deal", classify.ModeFirst); got != "Pricing" {
		t.Errorf("fallback dictionary should classify, got %q", got)
	}

	d2, warning2 := ParseOrDefault([]byte("Food:\n  - pizza\n"))
	if warning2 != "" {
		t.Errorf("unexpected warning %q", warning2)
	}
	if got := d2.Classify("pizza time", classify.ModeFirst); got != "Food" {
		t.Errorf("Classify = %q", got)
	}
}

func TestDefaultDictionary(t *testing.T) {
	d := DefaultDictionary()
	if got := d.Classify("what is the price?", classify.ModeFirst); got != "Pricing" {
		t.Errorf("Classify = %q, want Pricing", got)
	}
}

func TestLoadRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	content := "statement_cut: turn\ncontext_cut: whole\nspeaker: salesperson\nisolate_hashtags: true\nmin_words: 2\nclean:\n  strip_urls: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadRun(path)
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if r.StatementCut != "turn" || r.ContextCut != "whole" || r.Speaker != "salesperson" {
		t.Errorf("unexpected run config: %+v", r)
	}
	if !r.IsolateHashtags || r.MinWords != 2 || !r.Clean.StripURLs {
		t.Errorf("unexpected run config: %+v", r)
	}
}

func TestLoadRunInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	if err := os.WriteFile(path, []byte("statement_cut: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRun(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
