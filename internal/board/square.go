// Package board implements chess board representation using bitboards.
package board

import (
	"errors"
	"fmt"
)

// ErrInvalidSquare is wrapped into the error returned by ParseSquare when
// the input isn't two characters of valid algebraic notation.
var ErrInvalidSquare = errors.New("invalid square")

// Square represents a square on the chess board (0-63).
// Uses Little-Endian Rank-File Mapping: A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	file := int(s[0] - 'a')
	rank := int(s[1] - '1')

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	return NewSquare(file, rank), nil
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Mirror returns the square mirrored vertically (for black's perspective).
func (sq Square) Mirror() Square {
	return sq ^ 56
}

// RelativeRank returns the rank from a given color's perspective.
// For White, rank 0 is the 1st rank; for Black, rank 0 is the 8th rank.
func (sq Square) RelativeRank(c Color) int {
	if c == White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}

// Distance returns the Chebyshev (king-move) distance to other, the number
// of king steps needed to go from one square to the other.
func (sq Square) Distance(other Square) int {
	df := sq.File() - other.File()
	if df < 0 {
		df = -df
	}
	dr := sq.Rank() - other.Rank()
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}

// EdgeDistance returns the number of squares to the nearest board edge.
func (sq Square) EdgeDistance() int {
	f, r := sq.File(), sq.Rank()
	d := f
	if 7-f < d {
		d = 7 - f
	}
	if r < d {
		d = r
	}
	if 7-r < d {
		d = 7 - r
	}
	return d
}

// corners holds all four board corners in a1, h1, a8, h8 order.
var corners = [4]Square{A1, H1, A8, H8}

// CornerDistance returns the Chebyshev distance to the nearest of the four
// corners, used to drive a lone king toward any corner for basic mates.
func (sq Square) CornerDistance() int {
	best := 7
	for _, c := range corners {
		if d := sq.Distance(c); d < best {
			best = d
		}
	}
	return best
}

// BishopCornerDistance returns the Chebyshev distance to the nearer of the
// two dark corners, a1 and h8. It is meaningful for the KBN-vs-K mate,
// where the defending king must be driven into the corner the bishop
// controls: the dark corners (a1, h8) for a dark-squared bishop.
func (sq Square) BishopCornerDistance() int {
	d1 := sq.Distance(A1)
	d2 := sq.Distance(H8)
	if d1 < d2 {
		return d1
	}
	return d2
}

// FlipFile mirrors the square horizontally (file a <-> h), keeping the rank.
func (sq Square) FlipFile() Square {
	return NewSquare(7-sq.File(), sq.Rank())
}

// FlipRank mirrors the square vertically (rank 1 <-> 8), keeping the file.
// Unlike Mirror, which is the same operation, FlipRank spells out the intent
// at call sites that flip a position's color perspective square by square.
func (sq Square) FlipRank() Square {
	return NewSquare(sq.File(), 7-sq.Rank())
}

// IsDark returns true if the square is a dark square, used to tell same-
// color from opposite-color bishops apart.
func (sq Square) IsDark() bool {
	return (sq.File()+sq.Rank())%2 == 0
}
