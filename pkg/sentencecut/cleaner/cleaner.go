// Package cleaner normalizes raw caption/transcript text before
// segmentation: HTML, emoji, URLs, emails, hashtags and mentions can be
// stripped and accented letters folded to ASCII.
package cleaner

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/forPelevin/gomoji"
	"golang.org/x/net/html"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Placeholder is returned when cleaning leaves nothing behind, so a
// record still produces a deterministic row count downstream.
const Placeholder = "[no text]"

var (
	urlRE     = regexp.MustCompile(`https?://[^\s]+`)
	emailRE   = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	hashtagRE = regexp.MustCompile(`#\w+`)
	mentionRE = regexp.MustCompile(`@\w+`)
	spaceRE   = regexp.MustCompile(`\s+`)
)

// Options toggles individual cleaning operations. The zero value only
// collapses whitespace.
type Options struct {
	StripHTML     bool
	RemoveEmoji   bool
	Transliterate bool
	StripURLs     bool
	StripEmails   bool
	StripHashtags bool
	StripMentions bool
}

// CaptionDefaults is the option set used for scraped social-media
// captions.
func CaptionDefaults() Options {
	return Options{
		StripHTML:     true,
		RemoveEmoji:   true,
		Transliterate: true,
		StripURLs:     true,
		StripEmails:   true,
		StripMentions: true,
	}
}

// Clean applies the enabled operations in a fixed order and collapses
// whitespace. If nothing survives, it returns Placeholder.
func Clean(text string, opts Options) string {
	if opts.StripHTML {
		text = stripHTML(text)
	}
	if opts.RemoveEmoji {
		text = gomoji.RemoveEmojis(text)
	}
	if opts.Transliterate {
		text = transliterate(text)
	}
	if opts.StripURLs {
		text = urlRE.ReplaceAllString(text, " ")
	}
	if opts.StripEmails {
		text = emailRE.ReplaceAllString(text, " ")
	}
	if opts.StripHashtags {
		text = hashtagRE.ReplaceAllString(text, " ")
	}
	if opts.StripMentions {
		text = mentionRE.ReplaceAllString(text, " ")
	}

	text = strings.TrimSpace(spaceRE.ReplaceAllString(text, " "))
	if text == "" {
		return Placeholder
	}
	return text
}

// stripHTML extracts the text content of an HTML fragment. Parse errors
// leave the input unchanged.
func stripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return buf.String()
}

// transliterate folds accented letters to their ASCII base form by
// decomposing and dropping combining marks.
func transliterate(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
