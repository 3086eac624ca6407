package util

import (
	"regexp"
	"strings"
)

var (
	reSpaces    = regexp.MustCompile(`\s+`)
	reTrademark = regexp.MustCompile(`[™®©]`)
)

// Trailing tokens that carry no identity: "Square Inc" and "Square POS"
// must both normalize to the same key as "Square".
var droppableSuffixes = map[string]struct{}{
	"inc":      {},
	"inc.":     {},
	"llc":      {},
	"llc.":     {},
	"ltd":      {},
	"ltd.":     {},
	"pty":      {},
	"co":       {},
	"co.":      {},
	"pos":      {},
	"software": {},
	"app":      {},
	"platform": {},
}

// NormalizeName canonicalizes a vendor/technology name into a comparison
// key: lowercase, trimmed, whitespace collapsed, trademark glyphs removed,
// trailing corporate/marketing suffixes and a trailing ".com" stripped.
// Many-to-one and deterministic; empty input yields an empty key. The key is
// only ever compared, never displayed.
func NormalizeName(input string) string {
	s := strings.ToLower(input)
	s = reTrademark.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	tokens := strings.Split(s, " ")
	for len(tokens) > 1 {
		last := tokens[len(tokens)-1]
		if _, ok := droppableSuffixes[last]; !ok {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}

	s = strings.Join(tokens, " ")
	s = strings.TrimSuffix(s, ".com")
	return strings.TrimSpace(s)
}

// ContainsToken reports whether needle occurs in haystack, case-insensitive.
// Used by the sector vocabularies, which match known vendor names as
// substrings of free-text answers.
func ContainsToken(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// FirstNonEmpty returns the first value with non-blank content.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
