package engine

import (
	"sync"

	"github.com/kestrelchess/engine/internal/board"
)

// KnownWinValue is the score floor assigned to a material signature known to
// be a forced win, kept comfortably below MateScore so it still participates
// in alpha-beta bounding without being mistaken for an actual mate score.
const KnownWinValue = 10000

// kpkResult is the classification of one KPK bitbase position. The values
// are distinct bits so classify can OR together the results of successors.
type kpkResult uint8

const (
	kpkInvalid kpkResult = 0
	kpkUnknown kpkResult = 1
	kpkDraw    kpkResult = 2
	kpkWin     kpkResult = 4
)

// kpkMaxIndex covers: side to move (2) x pawn square (24: files a-d, ranks
// 2-7) x white king square (64) x black king square (64).
const kpkMaxIndex = 2 * 24 * 64 * 64

// kpkEncodeIndex packs a normalized KPK position (pawn confined to the a-d
// files, never on rank 1 or 8) into a bitbase index. Mirrors the layout used
// by Stockfish's bitbase generator, which this table is ported from.
func kpkEncodeIndex(stm board.Color, blackKing, whiteKing, pawnSq board.Square) uint32 {
	return uint32(whiteKing) |
		uint32(blackKing)<<6 |
		uint32(stm)<<12 |
		uint32(pawnSq.File())<<13 |
		uint32(6-pawnSq.Rank())<<15
}

type kpkPosition struct {
	stm       board.Color
	whiteKing board.Square
	blackKing board.Square
	pawnSq    board.Square
	result    kpkResult
}

func kpkDecode(idx uint32) kpkPosition {
	p := kpkPosition{
		whiteKing: board.Square(idx & 0x3F),
		blackKing: board.Square((idx >> 6) & 0x3F),
		stm:       board.Color((idx >> 12) & 0x1),
		pawnSq:    board.NewSquare(int((idx>>13)&0x3), 6-int((idx>>15)&0x7)),
	}

	pawnAttacks := board.PawnAttacks(p.pawnSq, board.White)

	switch {
	case p.whiteKing.Distance(p.blackKing) <= 1,
		p.whiteKing == p.pawnSq,
		p.blackKing == p.pawnSq,
		p.stm == board.White && pawnAttacks&board.SquareBB(p.blackKing) != 0:
		p.result = kpkInvalid

	case p.stm == board.White && p.pawnSq.Rank() == 6 &&
		p.whiteKing != p.pawnSq+8 &&
		(p.blackKing.Distance(p.pawnSq+8) > 1 || p.whiteKing.Distance(p.pawnSq+8) == 1):
		p.result = kpkWin

	case p.stm == board.Black &&
		(board.KingAttacks(p.blackKing)&^(board.KingAttacks(p.whiteKing)|pawnAttacks) == 0 ||
			board.KingAttacks(p.blackKing)&^board.KingAttacks(p.whiteKing)&board.SquareBB(p.pawnSq) != 0):
		p.result = kpkDraw

	default:
		p.result = kpkUnknown
	}

	return p
}

func (p kpkPosition) classify(db []kpkResult) kpkResult {
	good, bad := kpkDraw, kpkWin
	if p.stm == board.White {
		good, bad = kpkWin, kpkDraw
	}

	r := kpkInvalid
	attackerKing := p.whiteKing
	if p.stm == board.Black {
		attackerKing = p.blackKing
	}

	attacks := board.KingAttacks(attackerKing)
	for attacks != 0 {
		sq := attacks.LSB()
		attacks &^= board.SquareBB(sq)
		var idx uint32
		if p.stm == board.White {
			idx = kpkEncodeIndex(board.Black, p.blackKing, sq, p.pawnSq)
		} else {
			idx = kpkEncodeIndex(board.White, sq, p.whiteKing, p.pawnSq)
		}
		r |= db[idx]
	}

	if p.stm == board.White {
		if p.pawnSq.Rank() < 6 {
			r |= db[kpkEncodeIndex(board.Black, p.blackKing, p.whiteKing, p.pawnSq+8)]
		}
		if p.pawnSq.Rank() == 1 && p.pawnSq+8 != p.whiteKing && p.pawnSq+8 != p.blackKing {
			r |= db[kpkEncodeIndex(board.Black, p.blackKing, p.whiteKing, p.pawnSq+16)]
		}
	}

	switch {
	case r&good != 0:
		return good
	case r&kpkUnknown != 0:
		return kpkUnknown
	default:
		return bad
	}
}

var (
	kpkTable     []bool
	kpkTableOnce sync.Once
)

// kpkInit builds the KPK bitbase by backward induction: classify every
// reachable position, then repeatedly reclassify positions still marked
// unknown until a full pass produces no change. The attacking side starts at
// a disadvantage (no information), so it takes several passes for wins
// discovered near the queening square to propagate back to the start.
func kpkInit() {
	db := make([]kpkResult, kpkMaxIndex)
	for i := uint32(0); i < kpkMaxIndex; i++ {
		db[i] = kpkDecode(i).result
	}

	for repeat := true; repeat; {
		repeat = false
		for i := uint32(0); i < kpkMaxIndex; i++ {
			if db[i] == kpkUnknown {
				pos := kpkDecode(i)
				pos.result = db[i]
				if classified := pos.classify(db); classified != kpkUnknown {
					db[i] = classified
					repeat = true
				}
			}
		}
	}

	kpkTable = make([]bool, kpkMaxIndex)
	for i, r := range db {
		kpkTable[i] = r == kpkWin
	}
}

// kpkProbe reports whether the side with the extra pawn wins. whiteKingSq,
// pawnSq and blackKingSq must already be normalized so the pawn is on files
// a-d (mirror the whole position horizontally first if it isn't).
func kpkProbe(whiteKingSq, pawnSq, blackKingSq board.Square, stm board.Color) bool {
	kpkTableOnce.Do(kpkInit)
	idx := kpkEncodeIndex(stm, blackKingSq, whiteKingSq, pawnSq)
	return kpkTable[idx]
}

// EvaluateEndgame recognizes a handful of material signatures whose outcome
// doesn't need searching: bare kings, minor-piece fortresses, lone-pawn
// endings resolved by the KPK bitbase, and major-piece mates. ok is false
// when the signature isn't one of these and the caller should fall back to
// the general evaluator.
func EvaluateEndgame(pos *board.Position) (score int, ok bool) {
	wp := pos.Pieces[board.White][board.Pawn].PopCount()
	wn := pos.Pieces[board.White][board.Knight].PopCount()
	wb := pos.Pieces[board.White][board.Bishop].PopCount()
	wr := pos.Pieces[board.White][board.Rook].PopCount()
	wq := pos.Pieces[board.White][board.Queen].PopCount()

	bp := pos.Pieces[board.Black][board.Pawn].PopCount()
	bn := pos.Pieces[board.Black][board.Knight].PopCount()
	bb := pos.Pieces[board.Black][board.Bishop].PopCount()
	br := pos.Pieces[board.Black][board.Rook].PopCount()
	bq := pos.Pieces[board.Black][board.Queen].PopCount()

	whiteKing := pos.Pieces[board.White][board.King].LSB()
	blackKing := pos.Pieces[board.Black][board.King].LSB()

	total := wp + wn + wb + wr + wq + bp + bn + bb + br + bq

	switch {
	case total == 0:
		// King vs King.
		return 0, true

	case wn > 0 && wb+wr+wq+wp == 0 && bn+bb+br+bq+bp == 0:
		if wn <= 2 {
			return 0, true
		}
		s := 0
		if wn > 3 {
			s = KnownWinValue
		}
		s += 8 * (wn - 3)
		s += 3 - blackKing.CornerDistance()
		return s, true

	case bn > 0 && bb+br+bq+bp == 0 && wn+wb+wr+wq+wp == 0:
		if bn <= 2 {
			return 0, true
		}
		s := 0
		if bn > 3 {
			s = -KnownWinValue
		}
		s -= 8 * (bn - 3)
		s -= 3 - whiteKing.CornerDistance()
		return s, true

	case wb > 0 && wn+wr+wq+wp == 0 && br+bq+bp == 0 && bn <= 1:
		lightB := (pos.Pieces[board.White][board.Bishop] & board.LightSquares).PopCount()
		darkB := (pos.Pieces[board.White][board.Bishop] & board.DarkSquares).PopCount()
		if lightB == 0 || darkB == 0 {
			return 0, true
		}
		s := KnownWinValue
		if bn > 0 {
			s = 0
		}
		s += 64 * (wb - 2)
		s += 8 * (3 - blackKing.CornerDistance())
		s += 7 - blackKing.Distance(whiteKing)
		return s, true

	case bb > 0 && bn+br+bq+bp == 0 && wr+wq+wp == 0 && wn <= 1:
		lightB := (pos.Pieces[board.Black][board.Bishop] & board.LightSquares).PopCount()
		darkB := (pos.Pieces[board.Black][board.Bishop] & board.DarkSquares).PopCount()
		if lightB == 0 || darkB == 0 {
			return 0, true
		}
		s := -KnownWinValue
		if wn > 0 {
			s = 0
		}
		s -= 64 * (bb - 2)
		s -= 8 * (3 - whiteKing.CornerDistance())
		s -= 7 - blackKing.Distance(whiteKing)
		return s, true

	case (wr > 0 || wq > 0) && wn+wb+wp == 0 && bn+bb+br+bq+bp == 0:
		s := KnownWinValue + 1000
		s += 8 * (3 - blackKing.EdgeDistance())
		s += 7 - blackKing.Distance(whiteKing)
		return s, true

	case (br > 0 || bq > 0) && bn+bb+bp == 0 && wn+wb+wr+wq+wp == 0:
		s := -(KnownWinValue + 1000)
		s -= 8 * (3 - whiteKing.EdgeDistance())
		s -= 7 - blackKing.Distance(whiteKing)
		return s, true

	case wn == 1 && wb == 1 && wr+wq+wp == 0 && bn+bb+br+bq+bp == 0:
		king := blackKing
		if !pos.Pieces[board.White][board.Bishop].LSB().IsDark() {
			king = king.FlipFile()
		}
		s := KnownWinValue
		s += 8 * (7 - king.BishopCornerDistance())
		s += 7 - blackKing.Distance(whiteKing)
		return s, true

	case bn == 1 && bb == 1 && br+bq+bp == 0 && wn+wb+wr+wq+wp == 0:
		king := whiteKing
		if !pos.Pieces[board.Black][board.Bishop].LSB().IsDark() {
			king = king.FlipFile()
		}
		s := -KnownWinValue
		s -= 8 * (7 - king.BishopCornerDistance())
		s -= 7 - blackKing.Distance(whiteKing)
		return s, true

	case wp == 1 && wn+wb+wr+wq == 0 && bn+bb+br+bq+bp == 0:
		strongKing, weakKing, pawnSq := whiteKing, blackKing, pos.Pieces[board.White][board.Pawn].LSB()
		if pawnSq.File() >= 4 {
			strongKing, weakKing, pawnSq = strongKing.FlipFile(), weakKing.FlipFile(), pawnSq.FlipFile()
		}
		if !kpkProbe(strongKing, pawnSq, weakKing, pos.SideToMove) {
			return 0, true
		}
		s := KnownWinValue
		s += 8 * pawnSq.Rank()
		pushClose := 7 - (pawnSq.Distance(strongKing) - 1)
		if pawnSq.Distance(strongKing)-1 < 0 {
			pushClose = 7
		}
		s += pushClose
		return s, true

	case bp == 1 && bn+bb+br+bq == 0 && wn+wb+wr+wq+wp == 0:
		strongKing := blackKing.FlipRank()
		weakKing := whiteKing.FlipRank()
		pawnSq := pos.Pieces[board.Black][board.Pawn].LSB().FlipRank()
		if pawnSq.File() >= 4 {
			strongKing, weakKing, pawnSq = strongKing.FlipFile(), weakKing.FlipFile(), pawnSq.FlipFile()
		}
		stm := pos.SideToMove.Other()
		if !kpkProbe(strongKing, pawnSq, weakKing, stm) {
			return 0, true
		}
		s := -KnownWinValue
		s -= 8 * pawnSq.Rank()
		pushClose := 7 - (pawnSq.Distance(strongKing) - 1)
		if pawnSq.Distance(strongKing)-1 < 0 {
			pushClose = 7
		}
		s -= pushClose
		return s, true
	}

	return 0, false
}
