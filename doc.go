// Package logsbloom implements Ethereum's logsBloom filter and the bit and
// byte primitives it is built on.
//
// A bloom filter is a space-efficient probabilistic data structure that tests
// whether an element is a member of a set. False positive matches are possible,
// but false negatives are not – if the filter says an element is not present,
// it definitely is not. If it says an element might be present, it could be a
// false positive.
//
// Unlike a general-purpose bloom filter, a logsBloom has fixed parameters set
// by the on-chain format: 2048 bits, 3 bit positions per item and Keccak-256
// as the hash. Every block header and receipt carries one, built from the
// addresses and topics of its logs, so that clients can skip blocks that
// cannot contain a log they are looking for.
//
// # Bit Positions
//
// For each item, the filter computes a single Keccak-256 digest and reads the
// byte pairs (0,1), (2,3) and (4,5) as big-endian 16-bit values. Each value v
// selects the bit at position 2047 - (v mod 2048), where position 0 is the
// most significant bit of the first serialized byte:
//
//	digest:   c5 d2 46 01 86 f7 ...
//	values:   0xc5d2  0x4601  0x86f7
//	mod 2048: 1490    1537    1783
//	position: 557     510     264
//
// [BitPositions] exposes this mapping directly.
//
// # Storage Layout
//
// The 2048 bits are held as 32 uint64 words in a [BitVector]. Bit i lives in
// word i/64, counted from the most significant end of the word, and words
// are serialized big-endian. The result is the 256-byte form found in block
// headers, and [FromBytes] / [Bloom.Bytes] round-trip it byte for byte.
//
// # Filter Types
//
// [Bloom] is the single-writer filter. Its zero value is an empty filter.
//
// [AtomicBloom] provides thread-safety using lock-free atomic operations.
// Multiple goroutines can safely call Add, Merge and Test concurrently. It uses
// [sync/atomic.Uint64.Or] (Go 1.23+) for efficient atomic bit-setting.
//
// # Hashing
//
// [Keccak256] is the default [Hasher]. Any function with the same output is
// interchangeable. [DigestCache] memoizes digests in sharded LRU caches for
// workloads where the same inputs recur, such as the handful of contract
// addresses and event signatures that dominate mainnet logs:
//
//	cache, _ := logsbloom.NewDigestCacheDefault(1 << 16)
//	b := logsbloom.NewWithHasher(cache.Sum)
//
// # Thread Safety
//
// [Bloom] is NOT thread-safe for writes. Use one filter per goroutine and
// combine them with [Bloom.Or] or [AtomicBloom.Merge].
//
// [AtomicBloom] and [DigestCache] are safe for concurrent use.
//
// The [Bloom.TestAndAdd] method reports membership before the add; it gives
// no stronger guarantee than calling Test and then Add.
package logsbloom
