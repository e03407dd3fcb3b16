package match

import "sort"

// DefaultMinScore is the lowest IdentScore a suggestion needs.
const DefaultMinScore = 0.6

// Suggest returns the candidate closest to name, if any scores at least
// minScore. Ties go to the lexically smaller candidate so the result does
// not depend on input order.
func Suggest(name string, candidates []string, minScore float64) (string, bool) {
	ranked := Rank(name, candidates, minScore)
	if len(ranked) == 0 {
		return "", false
	}

	return ranked[0], true
}

// Rank returns the candidates scoring at least minScore against name, best
// first. name itself is never returned.
func Rank(name string, candidates []string, minScore float64) []string {
	type scored struct {
		ident string
		score float64
	}

	var hits []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		if s := IdentScore(name, c); s >= minScore {
			hits = append(hits, scored{ident: c, score: s})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}

		return hits[i].ident < hits[j].ident
	})

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.ident
	}

	return out
}
