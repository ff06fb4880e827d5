package logsbloom

import (
	"math/bits"
	"sync/atomic"
)

// AtomicBloom is a thread-safe logsBloom filter using atomic operations.
// It has the same bit layout as Bloom but stores its words as atomic.Uint64
// so that Add, Merge and Test may run concurrently from many goroutines.
//
// Its main use is accumulating the union of filters built independently by
// workers, each of which owns its own Bloom.
type AtomicBloom struct {
	words [BloomWords]atomic.Uint64
	hash  Hasher // nil selects Keccak256
}

// NewAtomic creates an empty thread-safe filter that hashes with Keccak256.
func NewAtomic() *AtomicBloom {
	return &AtomicBloom{}
}

// NewAtomicWithHasher creates an empty thread-safe filter that derives bit
// positions from h. The hasher must itself be safe for concurrent use.
func NewAtomicWithHasher(h Hasher) *AtomicBloom {
	return &AtomicBloom{hash: h}
}

func (f *AtomicBloom) sum(data []byte) Digest {
	if f.hash != nil {
		return f.hash(data)
	}
	return Keccak256(data)
}

// Add adds data to the filter atomically. A nil slice is ignored.
func (f *AtomicBloom) Add(data []byte) {
	if data == nil {
		return
	}
	for _, pos := range BitPositions(f.sum(data)) {
		f.words[pos/WordBits].Or(mask(pos))
	}
}

// Test reports whether data might have been added. It is safe to call
// concurrently with Add and Merge.
func (f *AtomicBloom) Test(data []byte) bool {
	if data == nil {
		return false
	}
	for _, pos := range BitPositions(f.sum(data)) {
		if f.words[pos/WordBits].Load()&mask(pos) == 0 {
			return false
		}
	}
	return true
}

// Merge ORs every bit of b into the filter. b must not be mutated while
// Merge runs.
func (f *AtomicBloom) Merge(b *Bloom) {
	if b == nil || b.bits == nil {
		return
	}
	for i, w := range b.bits.words {
		if w != 0 {
			f.words[i].Or(w)
		}
	}
}

// Snapshot copies the current bits into a new Bloom. Writes racing with
// Snapshot may or may not be reflected, word by word.
func (f *AtomicBloom) Snapshot() *Bloom {
	v := newBloomBits()
	for i := range f.words {
		v.words[i] = f.words[i].Load()
	}
	return &Bloom{bits: v, hash: f.hash}
}

// OnesCount returns the number of set bits.
func (f *AtomicBloom) OnesCount() int {
	var n int
	for i := range f.words {
		n += bits.OnesCount64(f.words[i].Load())
	}
	return n
}
