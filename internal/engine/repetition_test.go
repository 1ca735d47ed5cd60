package engine

import "testing"

func TestIsRepeatedPositionSearchPathImmediate(t *testing.T) {
	// rootIndex=2: history[0:2] is game history, history[2] is the root.
	// The position at index 2 (root) recurs once more within the search
	// path (index 4); that single recurrence must be enough to call a draw.
	history := []uint64{0x1, 0x2, 0x3, 0x4, 0x3}
	if !isRepeatedPosition(history, 2) {
		t.Fatalf("expected a draw on the first search-path recurrence")
	}
}

func TestIsRepeatedPositionGameHistoryNeedsTwoOccurrences(t *testing.T) {
	// history[0] and history[1] both match the root (index 2), which is
	// entirely game history (rootIndex=2), so this is the classical
	// threefold case and should be a draw.
	history := []uint64{0x5, 0x5, 0x5}
	if !isRepeatedPosition(history, 2) {
		t.Fatalf("expected a draw on the second game-history recurrence")
	}
}

func TestIsRepeatedPositionGameHistorySingleOccurrenceNotEnough(t *testing.T) {
	history := []uint64{0x5, 0x9, 0x5}
	if isRepeatedPosition(history, 2) {
		t.Fatalf("single game-history recurrence should not be a draw yet")
	}
}

func TestIsRepeatedPositionNoMatch(t *testing.T) {
	history := []uint64{0x1, 0x2, 0x3}
	if isRepeatedPosition(history, 0) {
		t.Fatalf("expected no repetition")
	}
}

func TestIsRepeatedPositionEmpty(t *testing.T) {
	if isRepeatedPosition(nil, 0) {
		t.Fatalf("empty history cannot be a repetition")
	}
}
