// Package classify labels sentences by case-insensitive keyword
// containment against an ordered category dictionary.
package classify

import (
	"fmt"
	"strings"

	"github.com/cognicore/sentencecut/pkg/sentencecut/internalerr"
)

// Uncategorized is the label returned when no keyword matches.
const Uncategorized = "Uncategorized"

// Mode selects how multiple category matches are reported.
type Mode string

const (
	// ModeFirst returns the first matching category in dictionary order.
	ModeFirst Mode = "first"
	// ModeAll returns every matching category, semicolon-joined.
	ModeAll Mode = "all"
)

// Category is one dictionary entry: a name and its keywords.
type Category struct {
	Name     string
	Keywords []string
}

// Dictionary is an ordered list of categories. Order is significant:
// it decides which category wins in first-match mode and the listing
// order in all-match mode.
type Dictionary struct {
	categories []Category
	lowered    [][]string
}

// NewDictionary validates categories into a Dictionary. Every category
// needs a non-empty name and at least one non-empty keyword; keywords
// are lowercased once here so Classify never re-normalizes.
func NewDictionary(categories []Category) (*Dictionary, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", internalerr.ErrInvalidDictionary)
	}
	d := &Dictionary{
		categories: make([]Category, 0, len(categories)),
		lowered:    make([][]string, 0, len(categories)),
	}
	for _, c := range categories {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("%w: category with empty name", internalerr.ErrInvalidDictionary)
		}
		if len(c.Keywords) == 0 {
			return nil, fmt.Errorf("%w: category %q has no keywords", internalerr.ErrInvalidDictionary, c.Name)
		}
		low := make([]string, len(c.Keywords))
		for i, kw := range c.Keywords {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				return nil, fmt.Errorf("%w: category %q has an empty keyword", internalerr.ErrInvalidDictionary, c.Name)
			}
			low[i] = strings.ToLower(kw)
		}
		d.categories = append(d.categories, c)
		d.lowered = append(d.lowered, low)
	}
	return d, nil
}

// Categories returns the category list in dictionary order.
func (d *Dictionary) Categories() []Category {
	out := make([]Category, len(d.categories))
	copy(out, d.categories)
	return out
}

// Classify labels a sentence. Matching is pure substring containment on
// the lowercased sentence, so short keywords can match inside longer
// words; that imprecision is part of the contract. With no match the
// result is Uncategorized in both modes. Classify never fails.
func (d *Dictionary) Classify(sentence string, mode Mode) string {
	lower := strings.ToLower(sentence)

	var matched []string
	for i, c := range d.categories {
		for _, kw := range d.lowered[i] {
			if strings.Contains(lower, kw) {
				if mode == ModeFirst {
					return c.Name
				}
				matched = append(matched, c.Name)
				break
			}
		}
	}

	if len(matched) == 0 {
		return Uncategorized
	}
	return strings.Join(matched, ";")
}
