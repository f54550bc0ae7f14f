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
	"fmt"

	internal "github.com/laysakura/succinct-go/internal"
)

// BitVector is an immutable succinct bit vector built by a
// BitVectorBuilder.
//
// Rank decomposes into three constant time lookups: the cumulative
// popcount through the previous chunk, the cumulative-within-chunk
// popcount through the previous block, and a popcount table probe over
// the prefix of the block that contains i. Select binary searches Rank.
//
// The vector owns its raw bits, both summary levels and the popcount
// table exclusively. Once built it never changes, so sharing it across
// goroutines needs no synchronization.
type BitVector struct {
	rbv    *internal.RawBitVector
	chunks *internal.Chunks
	blocks *internal.Blocks
	table  *internal.PopcountTable
}

// Length returns the number of bits in the vector
func (this *BitVector) Length() uint64 {
	return this.rbv.Length()
}

// Access returns the bit at index i. Panic if i is not less than Length()
func (this *BitVector) Access(i uint64) bool {
	return this.rbv.Access(i)
}

// Rank returns the number of 1 bits in [0, i]. Panic if i is not less
// than Length()
func (this *BitVector) Rank(i uint64) uint64 {
	n := this.rbv.Length()

	if i >= n {
		panic(fmt.Errorf("Invalid index: %v (must be less than %v)", i, n))
	}

	chunkSize := this.chunks.ChunkSize()
	blockSize := this.blocks.BlockSize()
	c := i / chunkSize

	var rankFromChunk uint64
	if c > 0 {
		rankFromChunk = this.chunks.Access(c - 1)
	}

	// The previous block belongs to the previous chunk when j == 0, and
	// its count must not be added: block entries restart at each chunk.
	j := (i - c*chunkSize) / blockSize
	var rankFromBlock uint64
	if j > 0 {
		rankFromBlock = uint64(this.blocks.Access(c*this.blocks.BlocksPerChunk() + j - 1))
	}

	blockStart := c*chunkSize + j*blockSize
	size := blockSize

	if left := n - blockStart; left < size {
		size = left
	}

	bitsToUse := i - blockStart + 1
	key := this.rbv.CopySub(blockStart, size).AsUint32() >> (32 - bitsToUse)
	return rankFromChunk + rankFromBlock + uint64(this.table.Popcount(key))
}

// Select returns the smallest i such that Rank(i) = k. The second result
// is false when k exceeds the total popcount. Select(0) is 0: the empty
// prefix trivially has rank 0.
func (this *BitVector) Select(k uint64) (uint64, bool) {
	if k == 0 {
		return 0, true
	}

	n := this.rbv.Length()

	if k > this.Rank(n-1) {
		return 0, false
	}

	// Rank is monotone and steps by at most 1, so the first i with
	// Rank(i) >= k has Rank(i) == k exactly.
	lo, hi := uint64(0), n-1

	for lo < hi {
		mid := lo + (hi-lo)/2

		if this.Rank(mid) >= k {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	return lo, true
}

// StorageBits returns the exact footprint of the vector in bits: the
// packed raw bits plus both summary levels and the popcount table.
func (this *BitVector) StorageBits() uint64 {
	return this.rbv.StorageBits() +
		64*this.chunks.ChunksCnt() +
		16*this.blocks.BlocksCnt() +
		8*(uint64(1)<<this.table.Width())
}
