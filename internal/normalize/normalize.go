// Package normalize canonicalizes text before any dictionary/JSON comparison.
//
// Every dictionary cell and JSON value goes through Normalize so that
// matches are insensitive to incidental formatting differences (BOM,
// zero-width characters, CRLF, NBSP, curly quotes, wrapping quotes,
// repeated whitespace).
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	spaceRunRe  = regexp.MustCompile(`[ \t]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	headerRe    = regexp.MustCompile(`[^a-z0-9가-힣]+`)

	charReplacer = strings.NewReplacer(
		"\uFEFF", "", // BOM
		"​", "", // zero-width space
		"\r\n", "\n",
		"\r", "\n",
		" ", " ", // NBSP
		"“", `"`,
		"”", `"`,
		"’", "'",
		"‘", "'",
	)
)

// Normalize returns the canonical form of a text cell. Idempotent.
func Normalize(value string) string {
	text := charReplacer.Replace(value)
	text = strings.TrimSpace(text)
	text = spaceRunRe.ReplaceAllString(text, " ")

	// Unwrap symmetric pairs of wrapping quotes. Runs to a fixpoint so the
	// whole function stays idempotent even for nested quoting.
	for len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if first != last || (first != '\'' && first != '"') {
			break
		}
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	return text
}

// CanonicalKey returns the form used to join dictionary and JSON entries:
// normalized, NFKC-folded, whitespace-collapsed, lowercased.
func CanonicalKey(value string) string {
	text := Normalize(value)
	text = norm.NFKC.String(text)
	text = strings.ReplaceAll(text, "\n", " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.ToLower(strings.TrimSpace(text))
}

// Header normalizes a column header for alias matching: lowercase with
// everything but ASCII alphanumerics and Hangul removed.
func Header(name string) string {
	text := strings.ToLower(strings.TrimSpace(name))
	return headerRe.ReplaceAllString(text, "")
}
