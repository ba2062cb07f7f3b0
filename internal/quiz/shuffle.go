package quiz

// ShuffleInts permutes s in place with a uniform Fisher-Yates shuffle.
// intn(n) must return a uniform value in [0, n).
func ShuffleInts(s []int, intn func(int) int) {
	for i := len(s) - 1; i > 0; i-- {
		j := intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// isPermutation reports whether order holds each of 0..n-1 exactly once.
func isPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, v := range order {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
