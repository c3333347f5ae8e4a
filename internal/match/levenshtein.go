package match

// Levenshtein returns the edit distance between a and b counted in runes:
// the minimum number of single-rune insertions, deletions or
// substitutions turning one into the other.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}

	if len(rb) == 0 {
		return len(ra)
	}

	// keep the shorter string in ra, only two rows of its length are needed
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity maps the edit distance of a and b onto [0, 1], where 1 means
// identical.
func Similarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 && lb == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(a, b))/float64(max(la, lb))
}

// NameSimilarity compares two identifiers after normalizing them, so
// "is_active", "isActive" and "IsActive" are identical.
func NameSimilarity(a, b string) float64 {
	return Similarity(NormalizeIdent(a), NormalizeIdent(b))
}
