package engine

import (
	"github.com/kestrelchess/engine/internal/board"
)

// Search-wide constants shared by the worker pool and the root driver.
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128
)

// PVTable stores the principal variation collected during a negamax walk.
// Each worker owns one; ply i holds the line that was best when the search
// was last at that ply.
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

// pv returns the principal variation rooted at ply 0.
func (t *PVTable) pv() []board.Move {
	line := make([]board.Move, t.length[0])
	copy(line, t.moves[0][:t.length[0]])
	return line
}

// extend records move as the ply-th entry of the PV and splices in the line
// that continues from ply+1.
func (t *PVTable) extend(ply int, move board.Move) {
	t.moves[ply][ply] = move
	for j := ply + 1; j < t.length[ply+1]; j++ {
		t.moves[ply][j] = t.moves[ply+1][j]
	}
	t.length[ply] = t.length[ply+1]
}
