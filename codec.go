package logsbloom

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// OnesCount returns the number of set bits across all bytes of buf.
func OnesCount(buf []byte) int {
	var n int
	for _, b := range buf {
		n += bits.OnesCount8(b)
	}
	return n
}

// Uint32FromBytes assembles four bytes into a uint32, b0 being the most
// significant.
func Uint32FromBytes(b0, b1, b2, b3 byte) uint32 {
	return uint32(b0)<<24 | uint32(b1)<<16 | uint32(b2)<<8 | uint32(b3)
}

// WordsToBytes packs words into a flat buffer, 8 bytes per word, most
// significant byte first.
func WordsToBytes(words []uint64) []byte {
	buf := make([]byte, len(words)*WordBytes)
	putWords(buf, words)
	return buf
}

// BytesToWords unpacks a buffer produced by WordsToBytes. The length of buf
// must be a multiple of 8.
func BytesToWords(buf []byte) ([]uint64, error) {
	if len(buf)%WordBytes != 0 {
		return nil, fmt.Errorf("%w: got %d bytes, want a multiple of %d", ErrInvalidLength, len(buf), WordBytes)
	}
	words := make([]uint64, len(buf)/WordBytes)
	getWords(words, buf)
	return words, nil
}

// putWords writes words into buf big-endian. buf must hold len(words)*8 bytes.
func putWords(buf []byte, words []uint64) {
	for i, w := range words {
		binary.BigEndian.PutUint64(buf[i*WordBytes:], w)
	}
}

// getWords reads len(words) big-endian words from buf.
func getWords(words []uint64, buf []byte) {
	for i := range words {
		words[i] = binary.BigEndian.Uint64(buf[i*WordBytes:])
	}
}
