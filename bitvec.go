package logsbloom

import (
	"fmt"
	"math/bits"
)

// BitVector is a fixed-length bit array backed by 64-bit words.
//
// Bit i lives in word i/64 and is addressed from the most significant side
// of that word (bit 63 - i%64). Together with big-endian word packing this
// makes bit 0 the most significant bit of byte 0 in the serialized form,
// which is the layout external data is stored in.
type BitVector struct {
	words   []uint64
	numBits uint
}

// NewBitVector allocates a zeroed vector of numBits bits. numBits must be a
// positive multiple of 64.
func NewBitVector(numBits int) (*BitVector, error) {
	if err := checkNumBits(numBits); err != nil {
		return nil, err
	}
	return &BitVector{
		words:   make([]uint64, numBits/WordBits),
		numBits: uint(numBits),
	}, nil
}

// BitVectorFromBytes builds a numBits vector from its serialized form. buf
// must be exactly numBits/8 bytes; it is copied, not retained.
func BitVectorFromBytes(numBits int, buf []byte) (*BitVector, error) {
	if err := checkNumBits(numBits); err != nil {
		return nil, err
	}
	if want := numBits / 8; len(buf) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLength, len(buf), want)
	}
	v := &BitVector{
		words:   make([]uint64, numBits/WordBits),
		numBits: uint(numBits),
	}
	getWords(v.words, buf)
	return v, nil
}

func checkNumBits(numBits int) error {
	if numBits <= 0 || numBits%WordBits != 0 {
		return fmt.Errorf("%w: %d bits is not a positive multiple of %d", ErrInvalidSize, numBits, WordBits)
	}
	return nil
}

// Set sets bit i. It panics with an error wrapping ErrIndexOutOfRange if
// i >= Len().
func (v *BitVector) Set(i uint) {
	v.check(i)
	v.words[i/WordBits] |= mask(i)
}

// Get reports whether bit i is set. It panics with an error wrapping
// ErrIndexOutOfRange if i >= Len().
func (v *BitVector) Get(i uint) bool {
	v.check(i)
	return v.words[i/WordBits]&mask(i) != 0
}

// mask returns the in-word mask for bit i.
func mask(i uint) uint64 {
	return 1 << (WordBits - 1 - i%WordBits)
}

func (v *BitVector) check(i uint) {
	if i >= v.numBits {
		panic(fmt.Errorf("%w: bit %d of %d", ErrIndexOutOfRange, i, v.numBits))
	}
}

// Len returns the number of bits in the vector.
func (v *BitVector) Len() int {
	return int(v.numBits)
}

// Bytes returns the serialized form of the vector: Len()/8 bytes, words
// packed big-endian.
func (v *BitVector) Bytes() []byte {
	return WordsToBytes(v.words)
}

// OnesCount returns the number of set bits.
func (v *BitVector) OnesCount() int {
	var n int
	for _, w := range v.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Positions returns the indices of all set bits in ascending order.
func (v *BitVector) Positions() []uint {
	var out []uint
	for wi, w := range v.words {
		for w != 0 {
			lz := uint(bits.LeadingZeros64(w))
			out = append(out, uint(wi)*WordBits+lz)
			w &^= 1 << (WordBits - 1 - lz)
		}
	}
	return out
}

// or merges the bits of o into v. Both must have the same length.
func (v *BitVector) or(o *BitVector) {
	for i, w := range o.words {
		v.words[i] |= w
	}
}

// equal reports whether v and o hold the same bits.
func (v *BitVector) equal(o *BitVector) bool {
	if v.numBits != o.numBits {
		return false
	}
	for i, w := range v.words {
		if o.words[i] != w {
			return false
		}
	}
	return true
}
