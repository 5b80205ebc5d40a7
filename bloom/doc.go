package bloom

/*

# Bloom filters over a packed bit array

This package provides a classic single Bloom filter stored in a
bitarray.BitArray, and a calculator for choosing its dimensions.

## What Bloom filters are (and are not)

Bloom filters provide a *probabilistic prefilter*:

- If the filter says "definitely not present", then the key was never added.
- If the filter says "maybe present", then the key may or may not have been
  added (false positives are possible).

Keys can not be removed and the filter never grows. Once Saturated reports
true, further inserts degrade the false-positive rate quickly.

## Parameters

	m  number of bits, a multiple of 8 below 2^32
	k  number of bit positions derived per key
	n  capacity, the number of keys the filter is designed for
	p  false-positive rate at capacity

Params solves for the unknowns given one of four combinations of known values.
See Params.Resolve.

## Index derivation

The key bytes are fed to SHA-512 and the digest is fed back in to produce as
many 64 byte blocks as are needed:

	d0 = SHA512(key)
	d1 = SHA512(d0)
	...

The concatenated blocks are read as k big-endian unsigned lanes, 16 bits wide
when m < 2^16 and 32 bits wide otherwise, and each lane is reduced mod m. The
positions are not fully independent; this is accepted in exchange for deriving
all k indices from one primitive.

## Export

Bytes returns the raw bit plane, exactly m/8 bytes, using the bitarray layout
(bit i is bit i%8 of byte i/8). m and k are not included and must be carried
out of band. Load is the inverse.

## Concurrency

Contains, Saturation, EstimateCount and Bytes may be called concurrently. Add,
AddIfAbsent, Clear and Load must be serialized by the caller.

*/
