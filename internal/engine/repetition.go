package engine

// isRepeatedPosition implements the repetition-draw rule applied at every
// search node. history holds one hash per ply reached so far: indices
// below rootIndex are game history (moves actually played before the
// search began), rootIndex itself is the search root, and everything past
// it is the path walked by the current search. The position being tested
// is always the last entry.
//
// A recurrence found within the search path is called a draw on its first
// occurrence rather than waiting for a literal third repetition: continuing
// to search a line that folds back on itself can only ever rediscover the
// same position, so there is nothing left to prove by searching deeper. A
// recurrence that only matches game history still needs two prior
// occurrences (the classical threefold count), since the game could have
// continued differently off the line currently being searched.
func isRepeatedPosition(history []uint64, rootIndex int) bool {
	n := len(history)
	if n == 0 {
		return false
	}

	current := history[n-1]
	gameOccurrences := 0

	for i := n - 2; i >= 0; i-- {
		if history[i] != current {
			continue
		}
		if i >= rootIndex {
			return true
		}
		gameOccurrences++
		if gameOccurrences >= 2 {
			return true
		}
	}

	return false
}
