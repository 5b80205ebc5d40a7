package bitarray

import (
	"fmt"
	"iter"
)

// BitArray is a fixed size array of bits backed by a byte slice.
//
// It is safe for concurrent reads only. Modifications must be protected by a
// lock held by the caller.
type BitArray struct {
	size int
	raw  []byte
}

// New returns a zero filled array of sizeBits bits. sizeBits must be positive
// and a multiple of 8.
func New(sizeBits int) (*BitArray, error) {
	if !validSize(sizeBits) {
		return nil, fmt.Errorf("%w: got %d", ErrBadSize, sizeBits)
	}
	return &BitArray{size: sizeBits}, nil
}

// FromBytes returns an array of len(b)*8 bits initialized from a copy of b.
func FromBytes(b []byte) *BitArray {
	a := &BitArray{}
	a.SetBytes(b)
	return a
}

// Make creates an array from either an integer bit count or a raw byte
// buffer given as []byte or string. Any other type fails with
// ErrTypeMismatch.
func Make(init any) (*BitArray, error) {
	switch v := init.(type) {
	case []byte:
		return FromBytes(v), nil
	case string:
		return FromBytes([]byte(v)), nil
	}
	n, ok := asInt(init)
	if !ok {
		return nil, fmt.Errorf("%w: initialize with an integer or a byte buffer, not %T", ErrTypeMismatch, init)
	}
	return New(n)
}

func validSize(n int) bool { return n > 0 && n%8 == 0 }

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	}
	return 0, false
}

// Size returns the number of bits in the array.
func (a *BitArray) Size() int { return a.size }

// buf returns the backing buffer, allocating it zero filled on first use.
func (a *BitArray) buf() []byte {
	if a.raw == nil {
		a.raw = make([]byte, a.size/8)
	}
	return a.raw
}

// locate returns the byte index and mask addressing pos.
func (a *BitArray) locate(pos int) (int, byte, error) {
	if pos < 0 {
		return 0, 0, fmt.Errorf("%w: %d", ErrNegativePos, pos)
	}
	i := pos / 8
	if i >= a.size/8 {
		return 0, 0, fmt.Errorf("%w: bit %d of %d", ErrIndexOutOfBounds, pos, a.size)
	}
	return i, 1 << (pos % 8), nil
}

// Get reports whether the bit at pos is set.
func (a *BitArray) Get(pos int) (bool, error) {
	i, mask, err := a.locate(pos)
	if err != nil {
		return false, err
	}
	if a.raw == nil {
		return false, nil
	}
	return a.raw[i]&mask != 0, nil
}

// Set sets the bit at pos.
func (a *BitArray) Set(pos int) (*BitArray, error) {
	i, mask, err := a.locate(pos)
	if err != nil {
		return a, err
	}
	a.buf()[i] |= mask
	return a, nil
}

// Unset clears the bit at pos.
func (a *BitArray) Unset(pos int) (*BitArray, error) {
	i, mask, err := a.locate(pos)
	if err != nil {
		return a, err
	}
	a.buf()[i] &^= mask
	return a, nil
}

// Flip inverts the bit at pos.
func (a *BitArray) Flip(pos int) (*BitArray, error) {
	i, mask, err := a.locate(pos)
	if err != nil {
		return a, err
	}
	a.buf()[i] ^= mask
	return a, nil
}

// Assign sets or clears the bit at pos according to val.
func (a *BitArray) Assign(pos int, val bool) (*BitArray, error) {
	if val {
		return a.Set(pos)
	}
	return a.Unset(pos)
}

// Clear drops the buffer. The size is unchanged and every bit reads as zero.
func (a *BitArray) Clear() *BitArray {
	a.raw = nil
	return a
}

// Flood sets every bit.
func (a *BitArray) Flood() *BitArray {
	b := a.buf()
	for i := range b {
		b[i] = 0xff
	}
	return a
}

// Cardinality returns the number of set bits.
func (a *BitArray) Cardinality() uint64 {
	return PopCount(a.raw)
}

// IsEmpty reports whether no bit is set.
func (a *BitArray) IsEmpty() bool {
	return allZero(a.raw)
}

// All returns the bits in ascending position order. Each call to the returned
// sequence starts again from position 0.
func (a *BitArray) All() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		if a.raw == nil {
			for range a.size {
				if !yield(false) {
					return
				}
			}
			return
		}
		for _, b := range a.raw {
			for i := range 8 {
				if !yield(b&(1<<i) != 0) {
					return
				}
			}
		}
	}
}

// Bits collects All into a slice.
func (a *BitArray) Bits() []bool {
	out := make([]bool, 0, a.size)
	for v := range a.All() {
		out = append(out, v)
	}
	return out
}

// Resize grows or truncates the array to newSize bits. Growing zero pads,
// truncating drops the tail. Bits below min(old, new) keep their values.
func (a *BitArray) Resize(newSize int) error {
	if !validSize(newSize) {
		return fmt.Errorf("%w: got %d", ErrBadSize, newSize)
	}
	if a.raw != nil {
		n := newSize / 8
		if n <= len(a.raw) {
			a.raw = a.raw[:n:n]
		} else {
			grown := make([]byte, n)
			copy(grown, a.raw)
			a.raw = grown
		}
	}
	a.size = newSize
	return nil
}

// Bytes returns the backing buffer, exactly Size()/8 bytes. The slice is not
// copied; writes to it are writes to the array. Bytes allocates a never
// materialized buffer, so it counts as a mutation; concurrent readers should
// use MarshalBinary.
func (a *BitArray) Bytes() []byte {
	return a.buf()
}

// SetBytes replaces the contents and the size of the array with a copy of b.
// An empty b leaves the array with size zero, which is only useful as a
// target for a further SetBytes.
func (a *BitArray) SetBytes(b []byte) {
	raw := make([]byte, len(b))
	copy(raw, b)
	a.size = len(b) * 8
	a.raw = raw
}

// SetRaw is SetBytes for dynamically typed input. Only []byte and string are
// accepted, anything else fails with ErrTypeMismatch and leaves the array
// untouched.
func (a *BitArray) SetRaw(v any) error {
	switch b := v.(type) {
	case []byte:
		a.SetBytes(b)
	case string:
		a.SetBytes([]byte(b))
	default:
		return fmt.Errorf("%w: not a byte buffer: %T", ErrTypeMismatch, v)
	}
	return nil
}

// MarshalBinary returns a copy of the raw bytes. It does not allocate the
// backing buffer and is safe for concurrent readers.
func (a *BitArray) MarshalBinary() ([]byte, error) {
	out := make([]byte, a.size/8)
	copy(out, a.raw)
	return out, nil
}

// UnmarshalBinary replaces the array with data.
func (a *BitArray) UnmarshalBinary(data []byte) error {
	a.SetBytes(data)
	return nil
}

func (a *BitArray) String() string {
	used := a.Cardinality()
	pct := 0.0
	if a.size > 0 {
		pct = float64(used) / float64(a.size) * 100
	}
	return fmt.Sprintf("%d/%d bits (%.2f%% set)", used, a.size, pct)
}
