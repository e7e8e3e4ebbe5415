package leaderboard

import "strings"

var nameSuffixes = []string{" jr.", " sr.", " iii", " ii", " iv"}

// NormalizeName lower-cases name, rewrites "Last, First" to "First Last" and
// strips generational suffixes, so "Smith, John Jr." and "john smith" compare
// equal.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	if last, first, ok := strings.Cut(name, ","); ok {
		name = strings.TrimSpace(first) + " " + strings.TrimSpace(last)
	}
	for _, suffix := range nameSuffixes {
		name = strings.ReplaceAll(name, suffix, "")
	}
	return strings.TrimSpace(name)
}

// tokensContained reports whether every token is a substring of candidate.
func tokensContained(tokens []string, candidate string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, token := range tokens {
		if !strings.Contains(candidate, token) {
			return false
		}
	}
	return true
}
