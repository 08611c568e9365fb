package enum

// text returns names[i] for an available enum value and "" otherwise.
func text(names []string, i int) string {
	if i <= 0 || i >= len(names) {
		return ""
	}

	return names[i]
}

// lookup is the inverse of text. Matching is exact; callers normalize case first.
func lookup(names []string, s string) (int, bool) {
	for i := 1; i < len(names); i++ {
		if names[i] == s {
			return i, true
		}
	}

	return 0, false
}
