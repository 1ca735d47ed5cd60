package board

import (
	"errors"
	"testing"
)

func TestSquareDistance(t *testing.T) {
	cases := []struct {
		a, b Square
		want int
	}{
		{A1, A1, 0},
		{A1, H8, 7},
		{A1, A8, 7},
		{E4, F5, 1},
		{A1, B3, 2},
	}
	for _, c := range cases {
		if got := c.a.Distance(c.b); got != c.want {
			t.Errorf("%s.Distance(%s) = %d, want %d", c.a, c.b, got, c.want)
		}
		if got := c.b.Distance(c.a); got != c.want {
			t.Errorf("Distance should be symmetric: %s.Distance(%s) = %d, want %d", c.b, c.a, got, c.want)
		}
	}
}

func TestSquareEdgeDistance(t *testing.T) {
	cases := []struct {
		sq   Square
		want int
	}{
		{A1, 0},
		{H8, 0},
		{E1, 0},
		{D4, 3},
		{E4, 3},
	}
	for _, c := range cases {
		if got := c.sq.EdgeDistance(); got != c.want {
			t.Errorf("%s.EdgeDistance() = %d, want %d", c.sq, got, c.want)
		}
	}
}

func TestSquareCornerDistance(t *testing.T) {
	if d := A1.CornerDistance(); d != 0 {
		t.Errorf("A1.CornerDistance() = %d, want 0", d)
	}
	if d := D4.CornerDistance(); d != 3 {
		t.Errorf("D4.CornerDistance() = %d, want 3", d)
	}
}

func TestSquareBishopCornerDistance(t *testing.T) {
	if d := A1.BishopCornerDistance(); d != 0 {
		t.Errorf("A1.BishopCornerDistance() = %d, want 0", d)
	}
	if d := H8.BishopCornerDistance(); d != 0 {
		t.Errorf("H8.BishopCornerDistance() = %d, want 0", d)
	}
	if d := H1.BishopCornerDistance(); d != 7 {
		t.Errorf("H1.BishopCornerDistance() = %d, want 7", d)
	}
}

func TestSquareFlip(t *testing.T) {
	if got := A1.FlipFile(); got != H1 {
		t.Errorf("A1.FlipFile() = %s, want H1", got)
	}
	if got := A1.FlipRank(); got != A8 {
		t.Errorf("A1.FlipRank() = %s, want A8", got)
	}
	if got := E4.FlipFile().FlipFile(); got != E4 {
		t.Errorf("FlipFile should be its own inverse, got %s", got)
	}
}

func TestSquareIsDark(t *testing.T) {
	if !A1.IsDark() {
		t.Error("A1 should be a dark square")
	}
	if H1.IsDark() {
		t.Error("H1 should be a light square")
	}
	if !H8.IsDark() {
		t.Error("H8 should be a dark square")
	}
}

func TestParseSquareInvalid(t *testing.T) {
	cases := []string{"", "z9", "a0", "i1", "a"}
	for _, s := range cases {
		_, err := ParseSquare(s)
		if err == nil {
			t.Errorf("ParseSquare(%q) should have failed", s)
			continue
		}
		if !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("ParseSquare(%q) error should wrap ErrInvalidSquare, got %v", s, err)
		}
	}
}
