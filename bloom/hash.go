package bloom

import "crypto/sha512"

func sha512Sum(b []byte) []byte {
	sum := sha512.Sum512(b)
	return sum[:]
}

// keyHashes returns the k bit positions for key.
//
// The digest is chained: each block is the digest of the previous block, the
// first is the digest of the key. The blocks are then read as k big-endian
// lanes of laneBits bits and reduced mod m.
func (f *Filter) keyHashes(key []byte) []uint64 {
	chain := make([]byte, 0, f.hashesNeeded*(DigestBits/8))
	last := key
	for range f.hashesNeeded {
		chain = append(chain, f.digest(last)...)
		last = chain[len(chain)-DigestBits/8:]
	}

	laneBytes := int(f.laneBits / 8)
	out := make([]uint64, f.k)
	for i := range out {
		lane := chain[i*laneBytes:]
		var v uint64
		if laneBytes == 2 {
			v = uint64(readU16BE(lane))
		} else {
			v = uint64(readU32BE(lane))
		}
		out[i] = v % f.m
	}
	return out
}
