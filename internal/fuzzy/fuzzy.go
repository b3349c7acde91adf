// Package fuzzy scores free-text queries against catalog display names.
package fuzzy

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// decorationChars are stripped from candidate names before the second
// scoring pass; menu names mark specials with asterisks.
const decorationChars = "*"

// Score returns a similarity in [0,1] between a query and a candidate name.
// It is the maximum of the matching-character ratio against the lowercased
// candidate and against the candidate with decoration characters removed.
// Pure function of its inputs; identical strings score 1.0.
func Score(query, candidate string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	name := strings.ToLower(strings.TrimSpace(candidate))

	best := ratio(q, name)

	stripped := name
	for _, c := range decorationChars {
		stripped = strings.ReplaceAll(stripped, string(c), "")
	}
	stripped = strings.TrimSpace(stripped)
	if stripped != name {
		if r := ratio(q, stripped); r > best {
			best = r
		}
	}

	return best
}

// ratio is the SequenceMatcher ratio over individual characters:
// 2*matches/(len(a)+len(b)).
func ratio(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}
