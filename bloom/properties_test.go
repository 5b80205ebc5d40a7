package bloom

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestFilterProperties checks the membership guarantees of Filter using
// property-based testing.
func TestFilterProperties(t *testing.T) {
	t.Parallel()

	keyGen := rapid.SliceOfN(rapid.Byte(), 0, 64)

	// Every added key is reported as present, regardless of what else was
	// added afterwards.
	t.Run("no_false_negatives", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			m := uint64(rapid.IntRange(1, 1<<13).Draw(t, "bytes")) * 8
			k := uint64(rapid.IntRange(1, 64).Draw(t, "k"))
			f, err := New(m, k)
			require.NoError(t, err)

			keys := rapid.SliceOfN(keyGen, 1, 50).Draw(t, "keys")
			for i, key := range keys {
				if rapid.Bool().Draw(t, "fused") {
					f.AddIfAbsent(key)
				} else {
					f.Add(key)
				}
				for _, prev := range keys[:i+1] {
					require.True(t, f.Contains(prev))
				}
			}
		})
	})

	// A second AddIfAbsent of the same key never reports a change.
	t.Run("add_if_absent_idempotent", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			f, err := New(2880, 20)
			require.NoError(t, err)

			key := keyGen.Draw(t, "key")
			require.True(t, f.AddIfAbsent(key))
			require.False(t, f.AddIfAbsent(key))
			require.True(t, f.Contains(key))
		})
	})

	// Export then import into a fresh filter of the same shape preserves
	// membership and every bit.
	t.Run("bytes_round_trip", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			f, err := New(2880, 20)
			require.NoError(t, err)
			keys := rapid.SliceOfN(keyGen, 0, 40).Draw(t, "keys")
			for _, key := range keys {
				f.Add(key)
			}

			g, err := New(2880, 20)
			require.NoError(t, err)
			require.NoError(t, g.Load(f.Bytes()))
			require.Equal(t, f.Bytes(), g.Bytes())
			for _, key := range keys {
				require.True(t, g.Contains(key))
			}
		})
	})

	// Saturation and the estimate stay in range and grow with inserts.
	t.Run("saturation_bounds", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			f, err := New(2880, 20)
			require.NoError(t, err)

			prevSat, prevEst := 0.0, 0.0
			for _, key := range rapid.SliceOfN(keyGen, 0, 40).Draw(t, "keys") {
				f.Add(key)
				sat, est := f.Saturation(), f.EstimateCount()
				require.GreaterOrEqual(t, sat, prevSat)
				require.LessOrEqual(t, sat, 1.0)
				require.GreaterOrEqual(t, est, prevEst)
				prevSat, prevEst = sat, est
			}
		})
	})

	// Resolving n, p and rederiving p from the result agrees.
	t.Run("params_round_trip", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			n := uint64(rapid.IntRange(1, 1_000_000).Draw(t, "n"))
			exp := rapid.IntRange(1, 9).Draw(t, "exp")
			fp := 1.0
			for range exp {
				fp /= 10
			}

			r, err := NewParams(WithCapacity(n), WithFalsePositive(fp)).Resolve()
			require.NoError(t, err)
			require.Greater(t, r.M, uint64(0))
			require.Greater(t, r.K, uint64(0))

			back, err := NewParams(WithBits(r.M), WithCapacity(n), WithHashes(r.K)).Resolve()
			require.NoError(t, err)
			require.InDelta(t, r.P, back.P, 1e-12)
		})
	})
}
