package bloom

import (
	"fmt"
	"math"

	"github.com/forestrie/go-blooming/bitarray"
)

// bitStore is the subset of bitarray.BitArray the filter drives.
type bitStore interface {
	Size() int
	Get(pos int) (bool, error)
	Set(pos int) (*bitarray.BitArray, error)
	Cardinality() uint64
	IsEmpty() bool
	Clear() *bitarray.BitArray
	MarshalBinary() ([]byte, error)
	String() string
}

// Filter is a Bloom filter of m bits and k hashes per key.
//
// Concurrent reads (Contains, Saturation, EstimateCount, Bytes,
// MarshalBinary) are safe. Mutations must be serialized by the caller.
type Filter struct {
	m uint64
	k uint64

	laneBits     uint64
	hashesNeeded uint64

	bits   bitStore
	digest func([]byte) []byte
	opts   Options
}

// New creates an empty filter with m bits and k hashes per key.
//
// m must be a positive multiple of 8 below 2^32. Params can be used to derive
// m and k from a capacity and a false-positive rate.
func New(m, k uint64, opts ...Option) (*Filter, error) {
	if err := checkBits(m, math.MaxInt); err != nil {
		return nil, err
	}
	if k == 0 {
		return nil, ErrBadK
	}

	laneBits := uint64(32)
	if m < lane16Limit {
		laneBits = 16
	}

	bits, err := bitarray.New(int(m))
	if err != nil {
		return nil, err
	}

	return &Filter{
		m:            m,
		k:            k,
		laneBits:     laneBits,
		hashesNeeded: (k*laneBits)/DigestBits + 1,
		bits:         bits,
		digest:       sha512Sum,
		opts:         newOptions(opts...),
	}, nil
}

// checkBits validates m. Positions are addressed as int, so m must also not
// exceed maxInt, which only binds on 32 bit platforms.
func checkBits(m uint64, maxInt uint64) error {
	if m >= MaxBits || m > maxInt {
		return fmt.Errorf("%w: m=%d", ErrHugeFilter, m)
	}
	if m == 0 || m%8 != 0 {
		return fmt.Errorf("%w: m=%d", ErrBadMBits, m)
	}
	return nil
}

// M returns the number of bits in the filter.
func (f *Filter) M() uint64 { return f.m }

// K returns the number of hashes per key.
func (f *Filter) K() uint64 { return f.k }

// Add inserts key and returns the filter so calls can be chained.
func (f *Filter) Add(key []byte) *Filter {
	for _, h := range f.keyHashes(key) {
		// positions are reduced mod m so they are always in range.
		_, _ = f.bits.Set(int(h))
	}
	return f
}

// AddString is Add for string keys.
func (f *Filter) AddString(key string) *Filter { return f.Add([]byte(key)) }

// AddValue is Add for any value, keyed by KeyOf(v).
func (f *Filter) AddValue(v any) *Filter { return f.Add(KeyOf(v)) }

// AddIfAbsent inserts key and reports whether any bit changed, ie. whether
// the key was not already indistinguishable from earlier keys.
//
// The positions are derived once, each bit is read once and only the unset
// bits are written. This is cheaper than Contains followed by Add.
//
// A true result only means at least one of the k bits was previously clear.
// Two keys sharing some bits with earlier inserts may both report true.
func (f *Filter) AddIfAbsent(key []byte) bool {
	var unset []uint64
	for _, h := range f.keyHashes(key) {
		if ok, _ := f.bits.Get(int(h)); !ok {
			unset = append(unset, h)
		}
	}
	for _, h := range unset {
		_, _ = f.bits.Set(int(h))
	}
	return len(unset) > 0
}

// AddIfAbsentString is AddIfAbsent for string keys.
func (f *Filter) AddIfAbsentString(key string) bool { return f.AddIfAbsent([]byte(key)) }

// AddIfAbsentValue is AddIfAbsent for any value, keyed by KeyOf(v).
func (f *Filter) AddIfAbsentValue(v any) bool { return f.AddIfAbsent(KeyOf(v)) }

// Contains reports whether key may have been added. False positives are
// possible, false negatives are not.
func (f *Filter) Contains(key []byte) bool {
	for _, h := range f.keyHashes(key) {
		if ok, _ := f.bits.Get(int(h)); !ok {
			return false
		}
	}
	return true
}

// ContainsString is Contains for string keys.
func (f *Filter) ContainsString(key string) bool { return f.Contains([]byte(key)) }

// ContainsValue is Contains for any value, keyed by KeyOf(v).
func (f *Filter) ContainsValue(v any) bool { return f.Contains(KeyOf(v)) }

// Saturation returns the fraction of set bits, in [0, 1].
//
// This counts every bit in the filter and scales with m.
func (f *Filter) Saturation() float64 {
	return float64(f.bits.Cardinality()) / float64(f.m)
}

// Saturated reports whether more than half the bits are set. Adding further
// keys raises the false-positive rate quickly.
func (f *Filter) Saturated() bool {
	return f.Saturation() > SaturationLimit
}

// EstimateCount estimates the number of distinct keys added, from the
// fraction of set bits:
//
//	-(m/k) * ln(1 - X/m)
//
// where X is the number of set bits. An empty filter gives exactly 0 and a
// fully set filter gives +Inf.
func (f *Filter) EstimateCount() float64 {
	x := f.bits.Cardinality()
	if x == 0 {
		return 0
	}
	m := float64(f.m)
	return -(m / float64(f.k)) * math.Log(1-float64(x)/m)
}

// IsEmpty reports whether no key has been added since creation or Clear.
func (f *Filter) IsEmpty() bool { return f.bits.IsEmpty() }

// Clear empties the filter.
func (f *Filter) Clear() {
	f.bits.Clear()
	f.opts.debugf("bloom: cleared m=%d k=%d", f.m, f.k)
}

// Bytes returns a copy of the bit plane, exactly m/8 bytes. Filter parameters
// are not included. It never allocates the filter's own buffer, so it is safe
// alongside other readers.
func (f *Filter) Bytes() []byte {
	b, _ := f.bits.MarshalBinary()
	return b
}

// Load replaces the bit plane with a copy of b, which must be exactly m/8
// bytes long. On error the filter is unchanged.
func (f *Filter) Load(b []byte) error {
	if uint64(len(b)) != f.m/8 {
		return fmt.Errorf("%w: expected a %d byte filter, provided %d", ErrFilterBytes, f.m/8, len(b))
	}
	bits := bitarray.FromBytes(b)
	if uint64(bits.Size()) != f.m {
		return fmt.Errorf("%w: filter size mismatch", ErrFilterBytes)
	}
	f.bits = bits
	f.opts.debugf("bloom: loaded m=%d k=%d %s", f.m, f.k, bits)
	return nil
}

// MarshalBinary is Bytes.
func (f *Filter) MarshalBinary() ([]byte, error) { return f.bits.MarshalBinary() }

// UnmarshalBinary is Load.
func (f *Filter) UnmarshalBinary(data []byte) error { return f.Load(data) }

func (f *Filter) String() string {
	return fmt.Sprintf("m=%d k=%d filter=%s", f.m, f.k, f.bits)
}
