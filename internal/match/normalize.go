package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier for comparison: lower case, without
// underscores or dashes. "is_percent", "IsPercent" and "isPercent" all
// become "ispercent".
func NormalizeIdent(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// IdentScore is the similarity of two identifiers after normalization.
func IdentScore(a, b string) float64 {
	return Similarity(NormalizeIdent(a), NormalizeIdent(b))
}
