package bitarray

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// drawSize draws a valid array size in bits.
func drawSize(t *rapid.T, label string) int {
	return rapid.IntRange(1, 256).Draw(t, label) * 8
}

// TestBitArrayProperties checks the bit level invariants of BitArray using
// property-based testing.
func TestBitArrayProperties(t *testing.T) {
	t.Parallel()

	// A freshly constructed array has no bits set.
	t.Run("new_is_empty", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			a, err := New(drawSize(t, "size"))
			require.NoError(t, err)
			require.True(t, a.IsEmpty())
			require.Zero(t, a.Cardinality())
		})
	})

	// Set then Get is true, Unset then Get is false and a double Flip is
	// the identity.
	t.Run("set_unset_flip", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			size := drawSize(t, "size")
			a := FromBytes(rapid.SliceOfN(rapid.Byte(), size/8, size/8).Draw(t, "raw"))
			pos := rapid.IntRange(0, size-1).Draw(t, "pos")

			before, err := a.Get(pos)
			require.NoError(t, err)

			_, err = a.Flip(pos)
			require.NoError(t, err)
			flipped, _ := a.Get(pos)
			require.Equal(t, !before, flipped)
			_, err = a.Flip(pos)
			require.NoError(t, err)
			after, _ := a.Get(pos)
			require.Equal(t, before, after)

			_, err = a.Set(pos)
			require.NoError(t, err)
			got, _ := a.Get(pos)
			require.True(t, got)

			_, err = a.Unset(pos)
			require.NoError(t, err)
			got, _ = a.Get(pos)
			require.False(t, got)
		})
	})

	// Setting an unset bit adds exactly one to the cardinality and unsetting
	// a set bit removes exactly one.
	t.Run("cardinality_additive", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			size := drawSize(t, "size")
			a := FromBytes(rapid.SliceOfN(rapid.Byte(), size/8, size/8).Draw(t, "raw"))
			pos := rapid.IntRange(0, size-1).Draw(t, "pos")

			_, err := a.Unset(pos)
			require.NoError(t, err)
			c := a.Cardinality()

			_, err = a.Set(pos)
			require.NoError(t, err)
			require.Equal(t, c+1, a.Cardinality())

			_, err = a.Unset(pos)
			require.NoError(t, err)
			require.Equal(t, c, a.Cardinality())
		})
	})

	// Exporting the bytes and loading them into a new array reproduces
	// every bit.
	t.Run("bytes_round_trip", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			raw := rapid.SliceOfN(rapid.Byte(), 1, 512).Draw(t, "raw")
			a := FromBytes(raw)
			b := FromBytes(a.Bytes())
			require.Equal(t, a.Size(), b.Size())
			require.Equal(t, a.Bits(), b.Bits())
			require.Equal(t, raw, b.Bytes())
		})
	})

	// Resizing preserves the common prefix and zero fills any growth.
	t.Run("resize_prefix", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			oldSize := drawSize(t, "oldSize")
			newSize := drawSize(t, "newSize")
			a := FromBytes(rapid.SliceOfN(rapid.Byte(), oldSize/8, oldSize/8).Draw(t, "raw"))
			before := a.Bits()

			require.NoError(t, a.Resize(newSize))
			after := a.Bits()
			require.Len(t, after, newSize)
			require.Len(t, a.Bytes(), newSize/8)

			common := min(oldSize, newSize)
			require.Equal(t, before[:common], after[:common])
			for i := common; i < newSize; i++ {
				require.False(t, after[i], "bit %d", i)
			}
		})
	})

	// Every position at or beyond the size is rejected.
	t.Run("out_of_bounds", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			size := drawSize(t, "size")
			a, err := New(size)
			require.NoError(t, err)
			pos := rapid.IntRange(size, size*4).Draw(t, "pos")

			_, err = a.Get(pos)
			require.ErrorIs(t, err, ErrIndexOutOfBounds)
			_, err = a.Set(pos)
			require.ErrorIs(t, err, ErrIndexOutOfBounds)
			_, err = a.Flip(pos)
			require.ErrorIs(t, err, ErrIndexOutOfBounds)
			_, err = a.Unset(pos)
			require.ErrorIs(t, err, ErrIndexOutOfBounds)
		})
	})
}
