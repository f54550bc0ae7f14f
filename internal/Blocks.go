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

package internal

import (
	"fmt"
)

// Blocks is the second level of the rank index. Entry j of chunk c holds
// the number of 1 bits in [c*chunkSize, c*chunkSize + (j+1)*blockSize - 1]
// clipped to the vector: a popcount cumulative within the chunk. The
// count restarts at zero at every chunk boundary, which keeps every entry
// below chunkSize + blockSize and within 16 bits.
//
// A full chunk carries ceil(chunkSize/blockSize) entries. When blockSize
// does not divide chunkSize the terminal block of a chunk spans
// min(blockSize, n-pos) bits from its position and may run past the
// chunk boundary; rank() never consults the overrun entry because any
// index past the boundary resolves into the next chunk.
type Blocks struct {
	blocks         []uint16
	blockSize      uint64
	blocksPerChunk uint64
}

// CalcBlockSize returns the block size for a vector of n bits:
// max(1, floor(log2 n) / 2)
func CalcBlockSize(n uint64) uint64 {
	if sz := uint64(Log2NoCheck(n)) / 2; sz > 0 {
		return sz
	}

	return 1
}

// NewBlocks builds the block summary in one linear pass over rbv
func NewBlocks(rbv *RawBitVector, chunks *Chunks) *Blocks {
	n := rbv.Length()
	this := &Blocks{blockSize: CalcBlockSize(n)}
	chunkSize := chunks.ChunkSize()
	this.blocksPerChunk = (chunkSize + this.blockSize - 1) / this.blockSize
	this.blocks = make([]uint16, 0, (n+this.blockSize-1)/this.blockSize)

	for c := uint64(0); c < chunks.ChunksCnt(); c++ {
		var cum uint16

		for j := uint64(0); j < this.blocksPerChunk; j++ {
			pos := c*chunkSize + j*this.blockSize

			if pos >= n {
				break
			}

			size := this.blockSize

			if left := n - pos; left < size {
				size = left
			}

			cum += uint16(rbv.CopySub(pos, size).Popcount())
			this.blocks = append(this.blocks, cum)
		}
	}

	return this
}

// BlockSize returns the number of bits covered by one block
func (this *Blocks) BlockSize() uint64 {
	return this.blockSize
}

// BlocksCnt returns the number of block entries
func (this *Blocks) BlocksCnt() uint64 {
	return uint64(len(this.blocks))
}

// BlocksPerChunk returns the number of block entries in every full chunk
func (this *Blocks) BlocksPerChunk() uint64 {
	return this.blocksPerChunk
}

// Access returns the cumulative-within-chunk popcount of the block at
// global index b. Panic if b is not less than BlocksCnt()
func (this *Blocks) Access(b uint64) uint16 {
	if b >= uint64(len(this.blocks)) {
		panic(fmt.Errorf("Invalid block index: %v (must be less than %v)", b, len(this.blocks)))
	}

	return this.blocks[b]
}
