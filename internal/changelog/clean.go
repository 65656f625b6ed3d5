package changelog

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// prRefPattern finds the first pull request reference in a subject:
	// a numeric token preceded by "#" or the literal "PR" (case-sensitive,
	// optional whitespace).
	prRefPattern = regexp.MustCompile(`(?:#|PR\s*)(\d+)`)

	// noisePattern matches the subject fragments stripped during cleaning:
	// parenthesized or bare "#<digits>" references, everything from
	// "Merge pull request" onward, everything from a literal "from" onward,
	// and stray "PR <digits>" tokens.
	noisePattern = regexp.MustCompile(`\(?#\d+\)?|Merge pull request.*|from.*|PR\s*\d+`)
)

// CleanSubject transforms a raw commit subject into a display title and the
// extracted pull request number. The returned title is stripped of reference
// noise, trimmed, and has its first letter capitalized; the rest of the
// string is left untouched, so cleaning an already-clean title is a no-op.
// An empty title means the commit should be skipped entirely.
func CleanSubject(subject string) (title, prNumber string) {
	if m := prRefPattern.FindStringSubmatch(subject); m != nil {
		prNumber = m[1]
	}

	title = noisePattern.ReplaceAllString(subject, "")
	title = capitalize(strings.TrimSpace(title))
	return title, prNumber
}

// capitalize uppercases the first rune of s, leaving the remainder as-is.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
