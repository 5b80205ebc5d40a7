package bitarray

/*

# Packed bit arrays

This package provides a fixed-size, byte aligned bit vector. It is the storage
plane underneath the bloom package but has no dependency on it.

## Layout

The array is a plain byte slice of size/8 bytes. Bit i lives in byte i/8 at
bit position i%8, counting from the least significant bit:

	byte 0                byte 1
	+-----------------+   +-------------------+
	| 7 6 5 4 3 2 1 0 |   | 15 14 13 ... 9  8 |
	+-----------------+   +-------------------+

Bytes and FromBytes expose this layout directly and carry no header, so a dump
can be loaded back into an array of the same size and reproduce every bit.

## Lazy allocation

An array created from a bit count does not allocate until a bit is touched.
Clear drops the buffer and returns to that state. Reads of a never allocated
array behave as if all bits are zero.

## Concurrency

An array may be read from many goroutines at once. Any mutation (Set, Unset,
Flip, Assign, Clear, Flood, Resize, SetBytes) must be serialized by the
caller; nothing here takes a lock. Bytes allocates a lazy buffer and so is
treated as a mutation; MarshalBinary is the read-only export.

*/
