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

// Chunks is the first level of the rank index. Entry c holds the number
// of 1 bits in [0, (c+1)*chunkSize - 1] of the source vector, clipped to
// the vector length: a cumulative popcount through the last bit of chunk
// c. Entries are strictly non decreasing and the final entry equals the
// popcount of the whole vector.
type Chunks struct {
	chunks    []uint64
	chunkSize uint64
	chunksCnt uint64
}

// CalcChunkSize returns the chunk size for a vector of n bits:
// max(1, floor(log2 n)^2)
func CalcChunkSize(n uint64) uint64 {
	lg := uint64(Log2NoCheck(n))

	if sz := lg * lg; sz > 0 {
		return sz
	}

	return 1
}

// NewChunks builds the chunk summary in one linear pass over rbv
func NewChunks(rbv *RawBitVector) *Chunks {
	n := rbv.Length()
	this := &Chunks{chunkSize: CalcChunkSize(n)}
	this.chunksCnt = (n + this.chunkSize - 1) / this.chunkSize
	this.chunks = make([]uint64, this.chunksCnt)
	var total uint64

	for c := uint64(0); c < this.chunksCnt; c++ {
		size := this.chunkSize

		if left := n - c*this.chunkSize; left < size {
			size = left
		}

		total += rbv.CopySub(c*this.chunkSize, size).Popcount()
		this.chunks[c] = total
	}

	return this
}

// ChunkSize returns the number of bits covered by one chunk
func (this *Chunks) ChunkSize() uint64 {
	return this.chunkSize
}

// ChunksCnt returns the number of chunk entries
func (this *Chunks) ChunksCnt() uint64 {
	return this.chunksCnt
}

// Access returns the cumulative popcount through the last bit of chunk c.
// Panic if c is not less than ChunksCnt()
func (this *Chunks) Access(c uint64) uint64 {
	if c >= this.chunksCnt {
		panic(fmt.Errorf("Invalid chunk index: %v (must be less than %v)", c, this.chunksCnt))
	}

	return this.chunks[c]
}
