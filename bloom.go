package logsbloom

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned when a bit vector is requested with a bit
	// count that is not a positive multiple of 64.
	ErrInvalidSize = errors.New("logsbloom: invalid bit vector size")

	// ErrInvalidLength is returned when a buffer handed to a decoding
	// routine does not have the exact expected length.
	ErrInvalidLength = errors.New("logsbloom: invalid buffer length")

	// ErrIndexOutOfRange is wrapped by the panic value of BitVector.Set and
	// BitVector.Get for indices past the end of the vector.
	ErrIndexOutOfRange = errors.New("logsbloom: bit index out of range")

	// ErrDecode is returned for malformed hex input.
	ErrDecode = errors.New("logsbloom: malformed hex")
)

// Bloom is a 2048-bit logsBloom filter, the construction Ethereum uses in
// block headers and receipts.
//
// Each item sets up to HashCount bits chosen from the first six bytes of its
// Keccak-256 digest (see BitPositions). Bits are never cleared: Test has no
// false negatives for anything passed to Add, while false positives grow
// with the number of items inserted.
//
// The zero value is an empty filter ready for use. A Bloom is not safe for
// concurrent mutation; concurrent Test, Bytes and Equal calls on a filter
// that is no longer being written are safe. Use AtomicBloom when several
// goroutines must write to one filter.
type Bloom struct {
	bits *BitVector // nil until the first write
	hash Hasher     // nil selects Keccak256
}

// emptyBits backs read paths of a zero-value Bloom. It must never be written.
var emptyBits = newBloomBits()

func newBloomBits() *BitVector {
	return &BitVector{
		words:   make([]uint64, BloomWords),
		numBits: BloomBitLength,
	}
}

// New creates an empty filter that hashes items with Keccak256.
func New() *Bloom {
	return NewWithHasher(nil)
}

// NewWithHasher creates an empty filter that derives bit positions from h.
// A nil h selects Keccak256.
func NewWithHasher(h Hasher) *Bloom {
	return &Bloom{
		bits: newBloomBits(),
		hash: h,
	}
}

// FromBytes reconstructs a filter from its 256-byte serialized form, for
// example the logsBloom field of a block header. buf is copied.
func FromBytes(buf []byte) (*Bloom, error) {
	v, err := BitVectorFromBytes(BloomBitLength, buf)
	if err != nil {
		return nil, err
	}
	return &Bloom{bits: v}, nil
}

// FromHex reconstructs a filter from its 0x-prefixed hex form.
func FromHex(s string) (*Bloom, error) {
	buf, err := DecodeHex(s)
	if err != nil {
		return nil, err
	}
	return FromBytes(buf)
}

func (b *Bloom) view() *BitVector {
	if b.bits == nil {
		return emptyBits
	}
	return b.bits
}

func (b *Bloom) mut() *BitVector {
	if b.bits == nil {
		b.bits = newBloomBits()
	}
	return b.bits
}

func (b *Bloom) sum(data []byte) Digest {
	if b.hash != nil {
		return b.hash(data)
	}
	return Keccak256(data)
}

// Add inserts data into the filter. A nil slice means "no data" and leaves
// the filter unchanged; an empty non-nil slice is hashed like any other
// input.
func (b *Bloom) Add(data []byte) {
	if data == nil {
		return
	}
	v := b.mut()
	for _, pos := range BitPositions(b.sum(data)) {
		v.Set(pos)
	}
}

// Test reports whether data might have been added to the filter. It returns
// false for nil data.
func (b *Bloom) Test(data []byte) bool {
	if data == nil {
		return false
	}
	v := b.view()
	for _, pos := range BitPositions(b.sum(data)) {
		if !v.Get(pos) {
			return false
		}
	}
	return true
}

// TestAndAdd reports whether data might have been present, then adds it.
func (b *Bloom) TestAndAdd(data []byte) bool {
	if data == nil {
		return false
	}
	present := true
	v := b.mut()
	for _, pos := range BitPositions(b.sum(data)) {
		if !v.Get(pos) {
			present = false
			v.Set(pos)
		}
	}
	return present
}

// Or merges every bit of o into b, making b the filter of the union of both
// item sets. This is how a block's logsBloom relates to its receipts'.
func (b *Bloom) Or(o *Bloom) {
	if o == nil || o.bits == nil {
		return
	}
	b.mut().or(o.bits)
}

// Equal reports whether b and o have identical bits. The hashers are not
// compared.
func (b *Bloom) Equal(o *Bloom) bool {
	if o == nil {
		return false
	}
	return b.view().equal(o.view())
}

// Bytes returns the 256-byte serialized form of the filter.
func (b *Bloom) Bytes() []byte {
	return b.view().Bytes()
}

// Hex returns the 0x-prefixed hex form of Bytes.
func (b *Bloom) Hex() string {
	return EncodeHex(b.Bytes())
}

// String implements fmt.Stringer.
func (b *Bloom) String() string {
	return b.Hex()
}

// OnesCount returns the number of set bits.
func (b *Bloom) OnesCount() int {
	return b.view().OnesCount()
}

// FillRatio returns the proportion of bits that are set.
func (b *Bloom) FillRatio() float64 {
	return float64(b.OnesCount()) / BloomBitLength
}

// SetBits returns the indices of all set bits in ascending order.
func (b *Bloom) SetBits() []uint {
	return b.view().Positions()
}

// MarshalBinary implements encoding.BinaryMarshaler. The output is the
// 256-byte serialized form.
func (b *Bloom) MarshalBinary() ([]byte, error) {
	return b.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, replacing the bits
// of b with data. data must be exactly 256 bytes.
func (b *Bloom) UnmarshalBinary(data []byte) error {
	v, err := BitVectorFromBytes(BloomBitLength, data)
	if err != nil {
		return err
	}
	b.bits = v
	return nil
}

// MarshalText implements encoding.TextMarshaler using the 0x-prefixed hex
// form, so a Bloom encodes as a JSON string.
func (b *Bloom) MarshalText() ([]byte, error) {
	return []byte(b.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bloom) UnmarshalText(text []byte) error {
	buf, err := DecodeHex(string(text))
	if err != nil {
		return err
	}
	if err := b.UnmarshalBinary(buf); err != nil {
		return fmt.Errorf("%w (decoded from hex)", err)
	}
	return nil
}
