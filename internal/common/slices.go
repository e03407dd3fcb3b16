package common

// Duplicates returns the values that occur more than once in s, in order of
// their second occurrence.
func Duplicates[S ~[]E, E comparable](s S) []E {
	seen := make(map[E]struct{}, len(s))

	var dups []E

	for _, v := range s {
		if _, ok := seen[v]; ok {
			dups = append(dups, v)
			continue
		}

		seen[v] = struct{}{}
	}

	return dups
}
