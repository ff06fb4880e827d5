package logsbloom

const (
	// BloomBitLength is the number of bits in a logsBloom filter.
	BloomBitLength = 2048
	// BloomByteLength is the size of the serialized filter in bytes.
	BloomByteLength = BloomBitLength / 8 // 256

	// WordBits is the number of bits per storage word.
	WordBits = 64
	// WordBytes is the number of bytes per storage word.
	WordBytes = WordBits / 8 // 8
	// BloomWords is the number of uint64s backing a logsBloom filter.
	BloomWords = BloomBitLength / WordBits // 32

	// HashCount is the number of bit positions derived from each digest.
	HashCount = 3
	// DigestLength is the size of a Keccak-256 digest in bytes.
	DigestLength = 32
)

// digestPairOffsets are the offsets of the big-endian byte pairs read from
// the digest, one per bit position. They are fixed by the on-chain format:
// changing them breaks compatibility with every existing serialized filter.
var digestPairOffsets = [HashCount]int{0, 2, 4}

// BitPositions maps a digest to the HashCount bit positions it occupies in
// a BloomBitLength filter, in probe order.
//
// Each position is derived from the byte pair d[i], d[i+1] assembled as the
// unsigned 32-bit value 0x0000XXYY, reduced modulo BloomBitLength and then
// mirrored so that position 0 is the most significant bit of byte 0.
func BitPositions(d Digest) [HashCount]uint {
	var pos [HashCount]uint
	for j, i := range digestPairOffsets {
		h := Uint32FromBytes(0x00, 0x00, d[i], d[i+1])
		x := h % BloomBitLength
		pos[j] = uint(BloomBitLength - 1 - x)
	}
	return pos
}
