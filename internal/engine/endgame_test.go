package engine

import (
	"testing"

	"github.com/kestrelchess/engine/internal/board"
)

func TestEvaluateEndgameBareKings(t *testing.T) {
	pos, err := board.ParseFEN("8/8/4k3/8/8/3K4/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	score, ok := EvaluateEndgame(pos)
	if !ok {
		t.Fatalf("expected bare kings to be recognized")
	}
	if score != 0 {
		t.Errorf("expected drawn score, got %d", score)
	}
}

func TestEvaluateEndgameKnightPairIsDrawn(t *testing.T) {
	pos, err := board.ParseFEN("8/8/4k3/8/8/3K4/8/NN6 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	score, ok := EvaluateEndgame(pos)
	if !ok {
		t.Fatalf("expected KNNvK to be recognized")
	}
	if score != 0 {
		t.Errorf("two knights alone cannot force mate, got %d", score)
	}
}

func TestEvaluateEndgameLoneQueenIsKnownWin(t *testing.T) {
	pos, err := board.ParseFEN("8/8/4k3/8/8/3K4/8/3Q4 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	score, ok := EvaluateEndgame(pos)
	if !ok {
		t.Fatalf("expected KQvK to be recognized")
	}
	if score <= KnownWinValue {
		t.Errorf("expected a clear winning score, got %d", score)
	}
}

func TestEvaluateEndgameKPKWinningPawn(t *testing.T) {
	// Pawn one step from queening, defending king stuck in the far corner:
	// a win under any correct KPK classification.
	pos, err := board.ParseFEN("7k/PK6/8/8/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	score, ok := EvaluateEndgame(pos)
	if !ok {
		t.Fatalf("expected KPvK to be recognized")
	}
	if score <= 0 {
		t.Errorf("expected a winning score for the pawn side, got %d", score)
	}
}

func TestEvaluateEndgameKPKDrawnRookPawn(t *testing.T) {
	// Defending king already parked on the queening square of a rook pawn
	// with the attacking king too far back to help: an unconditional draw.
	pos, err := board.ParseFEN("k7/8/8/8/8/8/P7/1K6 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	score, ok := EvaluateEndgame(pos)
	if !ok {
		t.Fatalf("expected KPvK to be recognized")
	}
	if score != 0 {
		t.Errorf("expected a drawn score, got %d", score)
	}
}

func TestEvaluateEndgameNotRecognized(t *testing.T) {
	pos := board.NewPosition()
	if _, ok := EvaluateEndgame(pos); ok {
		t.Fatalf("starting position should not match any endgame signature")
	}
}
