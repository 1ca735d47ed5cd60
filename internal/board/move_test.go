package board

import (
	"errors"
	"testing"
)

func TestFullMoveQuiet(t *testing.T) {
	pos := NewPosition()
	m, err := ParseMove("e2e4", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	fm := m.ToFull(pos)
	if fm.Packed() != m {
		t.Errorf("Packed() = %v, want %v", fm.Packed(), m)
	}
	if fm.Piece() != Pawn {
		t.Errorf("Piece() = %v, want Pawn", fm.Piece())
	}
	if fm.IsCapture() {
		t.Error("e2e4 should not be a capture")
	}
	if fm.Captured() != NoPieceType {
		t.Errorf("Captured() = %v, want NoPieceType", fm.Captured())
	}
}

func TestFullMoveCapture(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, err := ParseMove("e4d5", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	fm := m.ToFull(pos)
	if !fm.IsCapture() {
		t.Error("e4d5 should be a capture")
	}
	if fm.Piece() != Pawn {
		t.Errorf("Piece() = %v, want Pawn", fm.Piece())
	}
	if fm.Captured() != Pawn {
		t.Errorf("Captured() = %v, want Pawn", fm.Captured())
	}
}

func TestFullMoveEnPassant(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, err := ParseMove("e5d6", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if !m.IsEnPassant() {
		t.Fatal("e5d6 should be parsed as an en passant capture")
	}
	fm := m.ToFull(pos)
	if !fm.IsCapture() {
		t.Error("en passant should report as a capture")
	}
	if fm.Captured() != Pawn {
		t.Errorf("Captured() = %v, want Pawn (the captured pawn isn't on the to-square)", fm.Captured())
	}
}

func TestFullMoveEqualityMatchesPackedMove(t *testing.T) {
	m1 := NewMove(E2, E4)
	m2 := NewMove(E2, E4)
	fm1 := NewFullMove(m1, Pawn, NoPieceType)
	fm2 := NewFullMove(m2, Pawn, NoPieceType)
	if fm1 != fm2 {
		t.Error("FullMoves built from equal packed moves and identical piece kinds should be equal")
	}
	if fm1.Packed() != m1 {
		t.Error("Packed() should recover the original Move")
	}
}

func TestParseMoveInvalid(t *testing.T) {
	pos := NewPosition()
	cases := []string{"", "e2", "e2e9", "e2e4z"}
	for _, s := range cases {
		_, err := ParseMove(s, pos)
		if err == nil {
			t.Errorf("ParseMove(%q) should have failed", s)
			continue
		}
		if !errors.Is(err, ErrInvalidMove) {
			t.Errorf("ParseMove(%q) error should wrap ErrInvalidMove, got %v", s, err)
		}
	}
}
