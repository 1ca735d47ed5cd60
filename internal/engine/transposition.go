package engine

import (
	"github.com/kestrelchess/engine/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTNone       TTFlag = iota // Slot is empty
	TTExact                    // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// TTEntry is one transposition cache record: a truncated hash key, a packed
// best move, bounded score and static eval, the depth the result was
// produced at, a bound tag and the generation it was written in.
type TTEntry struct {
	Key16    uint16     // Low 16 bits of the position hash
	BestMove board.Move // Best/refutation move, may be NoMove
	Score    int16      // Bounded score, mate-adjusted relative to the node
	Eval     int16      // Static evaluation at the time of the store
	Depth    uint8      // Remaining depth the result was produced at
	Flag     TTFlag     // Bound type, or TTNone if the slot has never been written
	Gen      uint8      // Generation counter, wraps mod 64
	PV       bool       // Set if this entry was written from a PV node
}

// clusterSize entries share one cache-line-aligned slot. Three 12-byte
// entries plus padding keep the whole cluster at 64 bytes.
const clusterSize = 3

type ttCluster struct {
	entries [clusterSize]TTEntry
	_       [64 - clusterSize*12]byte // pad cluster to one cache line
}

// TranspositionTable is a cluster-associative cache of search results,
// indexed by the high bits of the Zobrist hash with a 16-bit key verifying
// the low bits within a cluster.
type TranspositionTable struct {
	clusters []ttCluster
	mask     uint64
	gen      uint8 // 6-bit generation counter (0..63), bumped per top-level search

	// Statistics
	hits   uint64
	probes uint64
}

// NewTranspositionTable creates a transposition table sized to sizeMB
// megabytes, rounded down to the next power of two of clusters.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	const clusterBytes = 64
	numClusters := (uint64(sizeMB) * 1024 * 1024) / clusterBytes
	numClusters = roundDownToPowerOf2(numClusters)
	if numClusters == 0 {
		numClusters = 1
	}

	return &TranspositionTable{
		clusters: make([]ttCluster, numClusters),
		mask:     numClusters - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

func (tt *TranspositionTable) clusterFor(hash uint64) *ttCluster {
	idx := (hash >> 32) & tt.mask
	return &tt.clusters[idx]
}

// Probe looks up a position. Returns the matching entry and true if one of
// the cluster's three slots carries the same 16-bit key and a valid bound.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes++

	key16 := uint16(hash)
	cluster := tt.clusterFor(hash)

	for i := range cluster.entries {
		e := &cluster.entries[i]
		if e.Flag != TTNone && e.Key16 == key16 {
			tt.hits++
			return *e, true
		}
	}

	return TTEntry{}, false
}

// Store saves a search result, replacing the least useful slot in the
// position's cluster.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int, eval int, flag TTFlag, move board.Move, isPV bool) {
	key16 := uint16(hash)
	cluster := tt.clusterFor(hash)

	// Prefer the slot already holding this position; otherwise pick the
	// slot whose (staleness, shallowness) makes it least valuable to keep.
	target := -1
	var worstScore int = -1
	for i := range cluster.entries {
		e := &cluster.entries[i]
		if e.Flag == TTNone {
			target = i
			break
		}
		if e.Key16 == key16 {
			// Matching key and matching bound type: the stored result only
			// gets replaced by one searched at least as deep. A shallower
			// store of the same bound type is dropped rather than allowed
			// to clobber a deeper one; a store with a different bound type
			// (e.g. an exact score superseding a bound) always replaces.
			if e.Flag == flag && depth < int(e.Depth) {
				return
			}
			target = i
			break
		}

		staleness := int((tt.gen - e.Gen) & 0x3F)
		replaceScore := staleness*256 - int(e.Depth)
		if target == -1 || replaceScore > worstScore {
			worstScore = replaceScore
			target = i
		}
	}

	e := &cluster.entries[target]

	// Preserve the old best move if the new store has none but the victim
	// did and both refer to the same position.
	if move == board.NoMove && e.Key16 == key16 && e.Flag != TTNone {
		move = e.BestMove
	}

	e.Key16 = key16
	e.BestMove = move
	e.Score = int16(score)
	e.Eval = int16(eval)
	e.Depth = uint8(depth)
	e.Flag = flag
	e.Gen = tt.gen
	e.PV = isPV
}

// NewSearch bumps the 6-bit generation counter for a new top-level search.
func (tt *TranspositionTable) NewSearch() {
	tt.gen = (tt.gen + 1) & 0x3F
}

// Clear empties the table.
func (tt *TranspositionTable) Clear() {
	for i := range tt.clusters {
		tt.clusters[i] = ttCluster{}
	}
	tt.gen = 0
	tt.hits = 0
	tt.probes = 0
}

// HashFull returns the permille (parts per thousand) of the table that is
// used by entries from the current generation.
func (tt *TranspositionTable) HashFull() int {
	sampleSize := 1000 / clusterSize
	if uint64(sampleSize) > uint64(len(tt.clusters)) {
		sampleSize = len(tt.clusters)
	}
	if sampleSize == 0 {
		return 0
	}

	used := 0
	total := 0
	for i := 0; i < sampleSize; i++ {
		for _, e := range tt.clusters[i].entries {
			total++
			if e.Flag != TTNone && e.Gen == tt.gen {
				used++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return (used * 1000) / total
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// Size returns the number of clusters in the table.
func (tt *TranspositionTable) Size() uint64 {
	return uint64(len(tt.clusters))
}

// AdjustScoreFromTT converts a stored mate score back to one relative to the
// current root by adding back the ply count it was stripped of on store.
func AdjustScoreFromTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

// AdjustScoreToTT strips the ply count from a mate score so it is stored
// relative to the node where it was proved, not the search root.
func AdjustScoreToTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}
