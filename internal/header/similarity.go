package header

// Similarity scores a against b from 0 to 100: the number of positions holding
// equal bytes, divided by the longer length. Two empty inputs score 100.
// The score is symmetric and deterministic.
func Similarity(a, b []byte) int {
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	if longer == 0 {
		return 100
	}

	shorter := len(a)
	if len(b) < shorter {
		shorter = len(b)
	}
	equal := 0
	for i := 0; i < shorter; i++ {
		if a[i] == b[i] {
			equal++
		}
	}
	return equal * 100 / longer
}
