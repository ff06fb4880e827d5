package logsbloom

import (
	"hash"
	"sync"

	"golang.org/x/crypto/sha3"
)

// Digest is a 32-byte Keccak-256 output.
type Digest [DigestLength]byte

// Hex returns the 0x-prefixed hex form of the digest.
func (d Digest) Hex() string {
	return EncodeHex(d[:])
}

// Hasher computes the digest a filter derives bit positions from. Any
// conformant Keccak-256 implementation is interchangeable; other functions
// produce filters that are not comparable with on-chain values.
type Hasher func(data []byte) Digest

// keccakPool reuses sponge states across calls to reduce allocations in
// hot insert/test loops.
var keccakPool = sync.Pool{
	New: func() any {
		return sha3.NewLegacyKeccak256()
	},
}

// Keccak256 computes the legacy (pre-NIST padding) Keccak-256 digest of data,
// the hash Ethereum uses for logsBloom. It is the default Hasher.
func Keccak256(data []byte) Digest {
	h := keccakPool.Get().(hash.Hash)
	h.Reset()
	h.Write(data)
	var d Digest
	h.Sum(d[:0])
	keccakPool.Put(h)
	return d
}
