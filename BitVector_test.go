/*
Copyright 2019-2024 Sho Nakatani
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package succinct

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// historical regression patterns: both exercise the chunk/block boundary
// arithmetic and the table probe together
const regression128 = "11110110_11010101_01000101_11101111_10101011_10100101_01100011_00110100_" +
	"01010101_10010000_01001100_10111111_00110011_00111110_01110101_11011100"

const regression127 = "10100001_01010011_10101100_11100001_10110010_10000110_00010100_01001111_" +
	"01011100_11010011_11110000_00011010_01101111_10101010_11000111_0110011"

func naiveRank(pattern string, i uint64) uint64 {
	return uint64(strings.Count(pattern[:i+1], "1"))
}

func randomPattern(n int, seed int64) string {
	r := rand.New(rand.NewSource(seed))
	var sb strings.Builder

	for i := 0; i < n; i++ {
		if r.Intn(2) == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}

func TestAccess(t *testing.T) {
	bv := buildFromPattern(t, "01001")

	for i, want := range []bool{false, true, false, false, true} {
		assert.Equal(t, want, bv.Access(uint64(i)), "bit %v", i)
	}
}

func TestRank(t *testing.T) {
	for _, tc := range []struct {
		pattern string
		i       uint64
		want    uint64
	}{
		{"0", 0, 0},
		{"00", 0, 0},
		{"00", 1, 0},
		{"01", 0, 0},
		{"01", 1, 1},
		{"10", 0, 1},
		{"10", 1, 1},
		{"11", 0, 1},
		{"11", 1, 2},
		{"01001", 0, 0},
		{"01001", 1, 1},
		{"01001", 2, 1},
		{"01001", 3, 1},
		{"01001", 4, 2},
		{"10010", 0, 1},
		{"10010", 1, 1},
		{"10010", 2, 1},
		{"10010", 3, 2},
		{"10010", 4, 2},
		{regression128, 49, 31},
		{regression127, 111, 55},
	} {
		bv := buildFromPattern(t, tc.pattern)
		assert.Equal(t, tc.want, bv.Rank(tc.i), "pattern %.16q... i=%v", tc.pattern, tc.i)
	}
}

func TestRankRegressionFullSweep(t *testing.T) {
	for _, raw := range []string{regression128, regression127} {
		pattern := strings.ReplaceAll(raw, "_", "")
		bv := buildFromPattern(t, raw)
		require.Equal(t, uint64(len(pattern)), bv.Length())

		for i := uint64(0); i < uint64(len(pattern)); i++ {
			require.Equal(t, naiveRank(pattern, i), bv.Rank(i), "i=%v", i)
		}
	}
}

func TestSelect(t *testing.T) {
	bv := buildFromPattern(t, "01001")

	for _, tc := range []struct {
		k    uint64
		want uint64
		ok   bool
	}{
		{0, 0, true},
		{1, 1, true},
		{2, 4, true},
		{3, 0, false},
	} {
		got, ok := bv.Select(tc.k)
		require.Equal(t, tc.ok, ok, "k=%v", tc.k)

		if ok {
			assert.Equal(t, tc.want, got, "k=%v", tc.k)
		}
	}
}

func TestSelectZeroOnLeadingOne(t *testing.T) {
	// the empty prefix has rank 0, so select(0) is 0 even when bit 0 is 1
	bv := buildFromPattern(t, "1")
	got, ok := bv.Select(0)
	require.True(t, ok)
	assert.Equal(t, uint64(0), got)
}

func TestRankMatchesNaive(t *testing.T) {
	// lengths at and around chunk boundaries: 16 is one exact chunk,
	// 17 adds a fractional tail chunk, 50 is two exact chunks (C=25),
	// 72 is two exact chunks (C=36); most of the rest end in a
	// fractional chunk, and many of those in a fractional terminal block
	for _, n := range []int{1, 2, 3, 7, 8, 9, 15, 16, 17, 31, 32, 50, 63, 64, 65, 72, 100, 127, 128, 255, 256, 1000} {
		pattern := randomPattern(n, int64(n)*31)
		bv := buildFromPattern(t, pattern)

		for i := uint64(0); i < uint64(n); i++ {
			require.Equal(t, naiveRank(pattern, i), bv.Rank(i), "n=%v i=%v", n, i)
			require.Equal(t, pattern[i] == '1', bv.Access(i), "n=%v i=%v", n, i)
		}
	}
}

func TestRankStepsByAccess(t *testing.T) {
	pattern := randomPattern(300, 9)
	bv := buildFromPattern(t, pattern)
	want := uint64(0)

	if bv.Access(0) {
		want = 1
	}

	require.Equal(t, want, bv.Rank(0))

	for i := uint64(1); i < 300; i++ {
		delta := bv.Rank(i) - bv.Rank(i-1)

		if bv.Access(i) {
			require.Equal(t, uint64(1), delta, "i=%v", i)
		} else {
			require.Equal(t, uint64(0), delta, "i=%v", i)
		}
	}
}

func TestSelectMatchesRank(t *testing.T) {
	for _, n := range []int{1, 16, 17, 50, 127, 128, 511, 1000} {
		pattern := randomPattern(n, int64(n)*17)
		bv := buildFromPattern(t, pattern)
		total := bv.Rank(uint64(n) - 1)

		for k := uint64(1); k <= total; k++ {
			i, ok := bv.Select(k)
			require.True(t, ok, "n=%v k=%v", n, k)
			require.Equal(t, k, bv.Rank(i), "n=%v k=%v", n, k)
			require.True(t, bv.Access(i), "n=%v k=%v", n, k)

			// minimality
			if i > 0 {
				require.Equal(t, k-1, bv.Rank(i-1), "n=%v k=%v", n, k)
			}
		}

		_, ok := bv.Select(total + 1)
		require.False(t, ok, "n=%v", n)
	}
}

func TestAllZerosAndAllOnes(t *testing.T) {
	// length 128 spans more than two chunks (C=49)
	for _, tc := range []struct {
		pattern string
		ones    bool
	}{
		{strings.Repeat("0", 128), false},
		{strings.Repeat("1", 128), true},
	} {
		bv := buildFromPattern(t, tc.pattern)

		for i := uint64(0); i < 128; i++ {
			require.Equal(t, tc.ones, bv.Access(i), "i=%v", i)

			if tc.ones {
				require.Equal(t, i+1, bv.Rank(i), "i=%v", i)
			} else {
				require.Equal(t, uint64(0), bv.Rank(i), "i=%v", i)
			}
		}

		if tc.ones {
			for k := uint64(1); k <= 128; k++ {
				i, ok := bv.Select(k)
				require.True(t, ok)
				require.Equal(t, k-1, i, "k=%v", k)
			}
		} else {
			_, ok := bv.Select(1)
			require.False(t, ok)
		}
	}
}

func TestSingleBitVector(t *testing.T) {
	bv := buildFromPattern(t, "0")
	require.Equal(t, uint64(1), bv.Length())
	require.False(t, bv.Access(0))
	require.Equal(t, uint64(0), bv.Rank(0))
	_, ok := bv.Select(1)
	require.False(t, ok)

	bv = buildFromPattern(t, "1")
	require.True(t, bv.Access(0))
	require.Equal(t, uint64(1), bv.Rank(0))
	i, ok := bv.Select(1)
	require.True(t, ok)
	require.Equal(t, uint64(0), i)
}

func TestAccessOverUpperBound(t *testing.T) {
	builder, err := NewBitVectorBuilderFromLength(2)
	require.NoError(t, err)
	bv := builder.Build()
	assert.Panics(t, func() { bv.Access(2) })
}

func TestRankOverUpperBound(t *testing.T) {
	builder, err := NewBitVectorBuilderFromLength(2)
	require.NoError(t, err)
	bv := builder.Build()
	assert.Panics(t, func() { bv.Rank(2) })
}

func TestStorageStaysWithinSuccinctBudget(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping storage sweep in short mode")
	}

	// the o(N) claim shows up as a strictly shrinking overhead fraction
	// as N grows
	var prev float64 = -1

	for _, n := range []uint64{1 << 16, 1 << 18, 1 << 20} {
		builder, err := NewBitVectorBuilderFromLength(n)
		require.NoError(t, err)
		bv := builder.Build()
		bits := bv.StorageBits()
		require.Greater(t, bits, n, "n=%v", n)
		overhead := float64(bits-n) / float64(n)

		if prev >= 0 {
			require.Less(t, overhead, prev, "n=%v", n)
		}

		prev = overhead
	}
}
