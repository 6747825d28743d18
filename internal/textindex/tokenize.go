package textindex

import (
	"regexp"
	"strings"
)

// tokenPattern mirrors the letter-run tokenizer used elsewhere in the
// retrieval pack: runs of Unicode letters, optionally joined by an
// apostrophe, lowercased for case-insensitive matching.
var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}
