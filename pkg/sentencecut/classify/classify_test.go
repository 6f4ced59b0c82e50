package classify

import (
	"errors"
	"testing"

	"github.com/cognicore/sentencecut/pkg/sentencecut/internalerr"
)

func testDict(t *testing.T) *Dictionary {
	t.Helper()
	d, err := NewDictionary([]Category{
		{Name: "Food", Keywords: []string{"pizza", "sushi"}},
		{Name: "Travel", Keywords: []string{"trip", "flight"}},
		{Name: "Price", Keywords: []string{"cheap", "expensive", "deal"}},
	})
	if err != nil {
		t.Fatalf("NewDictionary: %v", err)
	}
	return d
}

func TestClassifyFirstMatch(t *testing.T) {
	d := testDict(t)
	if got := d.Classify("I love pizza", ModeFirst); got != "Food" {
		t.Errorf("Classify = %q, want Food", got)
	}
}

func TestClassifyFirstModeDictionaryOrderWins(t *testing.T) {
	d := testDict(t)
	// matches both Food and Price; Food is declared first
	if got := d.Classify("cheap pizza", ModeFirst); got != "Food" {
		t.Errorf("Classify = %q, want Food", got)
	}
}

func TestClassifyAllMode(t *testing.T) {
	d := testDict(t)
	got := d.Classify("a cheap flight and some pizza", ModeAll)
	if got != "Food;Travel;Price" {
		t.Errorf("Classify = %q, want dictionary-ordered join", got)
	}
}

func TestClassifyNoMatch(t *testing.T) {
	d := testDict(t)
	for _, mode := range []Mode{ModeFirst, ModeAll} {
		if got := d.Classify("I love noodles", mode); got != Uncategorized {
			t.Errorf("Classify(mode=%s) = %q, want %q", mode, got, Uncategorized)
		}
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	d := testDict(t)
	if got := d.Classify("PIZZA NIGHT", ModeFirst); got != "Food" {
		t.Errorf("Classify = %q, want Food", got)
	}
}

func TestClassifySubstringInsideWord(t *testing.T) {
	// containment is deliberate: "deal" matches inside "dealership"
	d := testDict(t)
	if got := d.Classify("visited the dealership", ModeFirst); got != "Price" {
		t.Errorf("Classify = %q, want Price", got)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	d := testDict(t)
	s := "cheap sushi on the trip"
	if a, b := d.Classify(s, ModeAll), d.Classify(s, ModeAll); a != b {
		t.Errorf("Classify not deterministic: %q vs %q", a, b)
	}
}

func TestClassifyEmptySentence(t *testing.T) {
	d := testDict(t)
	if got := d.Classify("", ModeAll); got != Uncategorized {
		t.Errorf("Classify = %q", got)
	}
}

func TestNewDictionaryRejectsEmpty(t *testing.T) {
	cases := [][]Category{
		nil,
		{{Name: "", Keywords: []string{"x"}}},
		{{Name: "A", Keywords: nil}},
		{{Name: "A", Keywords: []string{"x", "  "}}},
	}
	for i, c := range cases {
		if _, err := NewDictionary(c); !errors.Is(err, internalerr.ErrInvalidDictionary) {
			t.Errorf("case %d: expected ErrInvalidDictionary, got %v", i, err)
		}
	}
}

func TestCategoriesPreservesOrder(t *testing.T) {
	d := testDict(t)
	cats := d.Categories()
	want := []string{"Food", "Travel", "Price"}
	for i, w := range want {
		if cats[i].Name != w {
			t.Errorf("category %d = %q, want %q", i, cats[i].Name, w)
		}
	}
}
