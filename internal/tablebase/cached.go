package tablebase

import (
	"encoding/binary"
	"sync"

	"github.com/kestrelchess/engine/internal/board"
	"github.com/kestrelchess/engine/internal/storage"
)

// persistNamespace is the storage.Store namespace used for persisted
// tablebase probe results.
const persistNamespace = "tablebase"

// CachedProber wraps another prober with an in-memory cache and, optionally,
// a persistent on-disk cache (internal/storage) so that probe results
// survive process restarts. This matters most for the Lichess HTTP backend,
// where a cache miss costs a network round trip.
type CachedProber struct {
	inner   Prober
	persist *storage.Store

	cache   map[uint64]ProbeResult
	mu      sync.RWMutex
	maxSize int
	hits    uint64
	misses  uint64
}

// NewCachedProber creates a cached prober wrapping the given prober with an
// in-memory cache only.
func NewCachedProber(inner Prober, cacheSize int) *CachedProber {
	return &CachedProber{
		inner:   inner,
		cache:   make(map[uint64]ProbeResult, cacheSize),
		maxSize: cacheSize,
	}
}

// NewPersistentCachedProber additionally backs the cache with an on-disk
// store: a miss in both the in-memory cache and the store falls through to
// inner.Probe, and the result is written back to both.
func NewPersistentCachedProber(inner Prober, cacheSize int, store *storage.Store) *CachedProber {
	cp := NewCachedProber(inner, cacheSize)
	cp.persist = store
	return cp
}

// NewCachedLichessProber creates a cached Lichess prober with default cache size.
func NewCachedLichessProber() *CachedProber {
	return NewCachedProber(NewLichessProber(), 100000)
}

func (cp *CachedProber) Probe(pos *board.Position) ProbeResult {
	cp.mu.RLock()
	if result, ok := cp.cache[pos.Hash]; ok {
		cp.mu.RUnlock()
		cp.mu.Lock()
		cp.hits++
		cp.mu.Unlock()
		return result
	}
	cp.mu.RUnlock()

	if cp.persist != nil {
		if raw, ok, err := cp.persist.Get(persistNamespace, hashKey(pos.Hash)); err == nil && ok {
			result := decodeProbeResult(raw)
			cp.storeInMemory(pos.Hash, result)
			cp.mu.Lock()
			cp.hits++
			cp.mu.Unlock()
			return result
		}
	}

	result := cp.inner.Probe(pos)

	cp.mu.Lock()
	cp.misses++
	cp.mu.Unlock()
	cp.storeInMemory(pos.Hash, result)

	if cp.persist != nil && result.Found {
		cp.persist.Set(persistNamespace, hashKey(pos.Hash), encodeProbeResult(result))
	}

	return result
}

func (cp *CachedProber) storeInMemory(hash uint64, result ProbeResult) {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	if len(cp.cache) >= cp.maxSize {
		// Simple eviction: clear half the cache
		i := 0
		for k := range cp.cache {
			if i >= cp.maxSize/2 {
				break
			}
			delete(cp.cache, k)
			i++
		}
	}
	cp.cache[hash] = result
}

func (cp *CachedProber) ProbeRoot(pos *board.Position) RootResult {
	// Root probing is not cached (needs move info)
	return cp.inner.ProbeRoot(pos)
}

func (cp *CachedProber) MaxPieces() int {
	return cp.inner.MaxPieces()
}

func (cp *CachedProber) Available() bool {
	return cp.inner.Available()
}

// HitRate returns the cache hit rate as a percentage.
func (cp *CachedProber) HitRate() float64 {
	cp.mu.RLock()
	defer cp.mu.RUnlock()
	total := cp.hits + cp.misses
	if total == 0 {
		return 0
	}
	return float64(cp.hits) / float64(total) * 100
}

// CacheSize returns the current number of in-memory cached entries.
func (cp *CachedProber) CacheSize() int {
	cp.mu.RLock()
	defer cp.mu.RUnlock()
	return len(cp.cache)
}

// Clear clears the in-memory cache. The persistent store, if any, is left
// intact: it is keyed by position hash and survives across games.
func (cp *CachedProber) Clear() {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	cp.cache = make(map[uint64]ProbeResult, cp.maxSize)
	cp.hits = 0
	cp.misses = 0
}

func hashKey(hash uint64) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], hash)
	return string(buf[:])
}

func encodeProbeResult(r ProbeResult) []byte {
	buf := make([]byte, 9)
	if r.Found {
		buf[0] = 1
	}
	buf[1] = byte(int8(r.WDL))
	binary.BigEndian.PutUint32(buf[2:6], uint32(r.DTZ))
	return buf[:6]
}

func decodeProbeResult(buf []byte) ProbeResult {
	if len(buf) < 6 {
		return ProbeResult{}
	}
	return ProbeResult{
		Found: buf[0] == 1,
		WDL:   WDL(int8(buf[1])),
		DTZ:   int(int32(binary.BigEndian.Uint32(buf[2:6]))),
	}
}
