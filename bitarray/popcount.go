package bitarray

// popcntTable holds the number of set bits for every byte value.
var popcntTable = func() (t [256]uint8) {
	for i := range t {
		c := uint8(0)
		for b := i; b != 0; b >>= 1 {
			c += uint8(b & 1)
		}
		t[i] = c
	}
	return t
}()

// PopCount returns the number of set bits in b, one table lookup per byte.
func PopCount(b []byte) uint64 {
	var c uint64
	for _, x := range b {
		c += uint64(popcntTable[x])
	}
	return c
}

// allZero reports whether every byte in b is zero.
func allZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}
