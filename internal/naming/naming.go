// Package naming converts free-text identifiers into the case forms used by
// generated paths and bindings: kebab-case for files and directories,
// camelCase for values, PascalCase for types and components.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Names holds every case form derived from one input string.
type Names struct {
	Raw    string `json:"raw" yaml:"raw"`
	Kebab  string `json:"kebab" yaml:"kebab"`
	Camel  string `json:"camel" yaml:"camel"`
	Pascal string `json:"pascal" yaml:"pascal"`
	Title  string `json:"title" yaml:"title"`
}

// New derives all case forms of s.
func New(s string) Names {
	return Names{
		Raw:    s,
		Kebab:  Kebab(s),
		Camel:  Camel(s),
		Pascal: Pascal(s),
		Title:  Title(s),
	}
}

// Words splits s into words. Any rune that is not a letter or digit separates
// words, as does a lower-to-upper transition ("blogPost") and the last capital
// of an acronym followed by a lowercase letter ("HTTPServer" → HTTP, Server).
func Words(s string) []string {
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// Kebab returns s in kebab-case ("Blog Post" → "blog-post").
func Kebab(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "-")
}

// Camel returns s in camelCase ("blog-post" → "blogPost").
func Camel(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	caser := cases.Title(language.English)
	words[0] = strings.ToLower(words[0])
	for i := 1; i < len(words); i++ {
		words[i] = caser.String(words[i])
	}
	return strings.Join(words, "")
}

// Pascal returns s in PascalCase ("blog-post" → "BlogPost").
func Pascal(s string) string {
	caser := cases.Title(language.English)
	words := Words(s)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, "")
}

// Title returns s as space-separated title words ("blogPost" → "Blog Post").
func Title(s string) string {
	caser := cases.Title(language.English)
	words := Words(s)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}
