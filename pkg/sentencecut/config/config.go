// Package config loads run options and keyword dictionaries from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/sentencecut/pkg/sentencecut/classify"
	"github.com/cognicore/sentencecut/pkg/sentencecut/internalerr"
)

// Run is the per-run option file the CLI accepts. All fields are
// optional; zero values defer to flag defaults.
type Run struct {
	StatementCut    string `yaml:"statement_cut"` // sentence | turn | post
	ContextCut      string `yaml:"context_cut"`   // rolling | whole
	Speaker         string `yaml:"speaker"`       // customer | salesperson
	IsolateHashtags bool   `yaml:"isolate_hashtags"`
	MinChars        int    `yaml:"min_chars"`
	MinWords        int    `yaml:"min_words"`
	MatchMode       string `yaml:"match_mode"` // first | all
	DictionaryPath  string `yaml:"dictionary"`

	Clean struct {
		StripHTML     bool `yaml:"strip_html"`
		RemoveEmoji   bool `yaml:"remove_emoji"`
		Transliterate bool `yaml:"transliterate"`
		StripURLs     bool `yaml:"strip_urls"`
		StripEmails   bool `yaml:"strip_emails"`
		StripHashtags bool `yaml:"strip_hashtags"`
		StripMentions bool `yaml:"strip_mentions"`
	} `yaml:"clean"`
}

// LoadRun loads a Run option file.
func LoadRun(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Run
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	return &r, nil
}

// ParseDictionary parses a YAML mapping of category name → keyword list
// into a validated dictionary. The document is walked as a yaml.Node so
// category order is the order written in the file, which first-match
// classification depends on.
func ParseDictionary(data []byte) (*classify.Dictionary, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidDictionary, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) != 1 {
		return nil, fmt.Errorf("%w: expected a single mapping document", internalerr.ErrInvalidDictionary)
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping of category to keywords", internalerr.ErrInvalidDictionary)
	}

	var categories []classify.Category
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, val := mapping.Content[i], mapping.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: category name must be a string", internalerr.ErrInvalidDictionary)
		}
		if val.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("%w: category %q must map to a list of keywords", internalerr.ErrInvalidDictionary, key.Value)
		}
		keywords := make([]string, 0, len(val.Content))
		for _, item := range val.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: category %q has a non-string keyword", internalerr.ErrInvalidDictionary, key.Value)
			}
			keywords = append(keywords, item.Value)
		}
		categories = append(categories, classify.Category{Name: key.Value, Keywords: keywords})
	}

	return classify.NewDictionary(categories)
}

// ParseOrDefault parses a user-supplied dictionary, substituting the
// built-in default with a non-fatal warning when the input is
// malformed. The returned warning is "" on success.
func ParseOrDefault(data []byte) (*classify.Dictionary, string) {
	d, err := ParseDictionary(data)
	if err != nil {
		return DefaultDictionary(), fmt.Sprintf("keyword dictionary rejected (%v); using built-in default", err)
	}
	return d, ""
}

// LoadDictionary reads and parses a dictionary file.
func LoadDictionary(path string) (*classify.Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDictionary(data)
}

// DefaultDictionary is the built-in fallback used when a user-supplied
// dictionary does not parse. Categories reflect the sales-conversation
// domain the speaker labels come from.
func DefaultDictionary() *classify.Dictionary {
	d, err := NewDefault()
	if err != nil {
		// the built-in table is static; a failure here is a programming error
		panic(err)
	}
	return d
}

// NewDefault builds the built-in dictionary, returning any validation
// error instead of panicking.
func NewDefault() (*classify.Dictionary, error) {
	return classify.NewDictionary([]classify.Category{
		{Name: "Greeting", Keywords: []string{"hello", "hi there", "good morning", "good afternoon", "welcome"}},
		{Name: "Pricing", Keywords: []string{"price", "cost", "expensive", "cheap", "discount", "deal", "quote"}},
		{Name: "Product", Keywords: []string{"product", "feature", "quality", "model", "warranty"}},
		{Name: "Objection", Keywords: []string{"but ", "however", "not sure", "concern", "problem", "issue"}},
		{Name: "Closing", Keywords: []string{"buy", "purchase", "order", "sign", "contract", "thank you"}},
	})
}
