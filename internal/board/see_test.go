package board

import "testing"

func TestSEEWinningPawnCapture(t *testing.T) {
	// White pawn on e4 can take a black pawn on d5 that is undefended.
	pos, err := ParseFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, err := ParseMove("e4d5", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if see := pos.SEE(m); see != PieceValue[Pawn] {
		t.Errorf("expected SEE of %d for a free pawn, got %d", PieceValue[Pawn], see)
	}
}

func TestSEELosingCaptureRecapturedByPawn(t *testing.T) {
	// White rook on d1 takes a knight on d5 defended by a black pawn on e6,
	// with nothing else attacking d5: rook for knight is a clear loss.
	pos, err := ParseFEN("4k3/8/4p3/3n4/8/8/8/3RK3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, err := ParseMove("d1d5", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	want := PieceValue[Knight] - PieceValue[Rook]
	if see := pos.SEE(m); see != want {
		t.Errorf("expected SEE of %d (lose the exchange), got %d", want, see)
	}
}

func TestSEEEqualPawnTrade(t *testing.T) {
	// White pawn on d4 takes a black pawn on e5, recaptured by a black pawn
	// on f6: an even trade nets zero.
	pos, err := ParseFEN("4k3/8/5p2/4p3/3P4/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, err := ParseMove("d4e5", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if see := pos.SEE(m); see != 0 {
		t.Errorf("expected an even trade to net 0, got %d", see)
	}
}

func TestSEENonCaptureReturnsZero(t *testing.T) {
	pos := NewPosition()
	m, err := ParseMove("e2e4", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if see := pos.SEE(m); see != 0 {
		t.Errorf("expected a quiet move to SEE as 0, got %d", see)
	}
}
