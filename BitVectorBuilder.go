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

	"github.com/pkg/errors"

	internal "github.com/laysakura/succinct-go/internal"
)

// BitVectorBuilder collects a seed (a length or a validated pattern) and
// a set of indices to turn on, then materializes an immutable BitVector.
// The builder is single owner until Build(); it is not safe for
// concurrent use.
type BitVectorBuilder struct {
	seed    bitVectorSeed
	bitsSet map[uint64]bool
}

// bitVectorSeed is the initial content of the vector, before the
// recorded SetBit indices apply.
type bitVectorSeed interface {
	length() uint64
	materialize() *internal.RawBitVector
}

type lengthSeed uint64

func (this lengthSeed) length() uint64 {
	return uint64(this)
}

func (this lengthSeed) materialize() *internal.RawBitVector {
	rbv, _ := internal.NewRawBitVectorFromLength(uint64(this))
	return rbv
}

type patternSeed struct {
	bvs *BitVectorString
}

func (this patternSeed) length() uint64 {
	return uint64(len(this.bvs.Str()))
}

func (this patternSeed) materialize() *internal.RawBitVector {
	rbv, _ := internal.NewRawBitVectorFromPattern(this.bvs.Str())
	return rbv
}

// NewBitVectorBuilderFromLength returns a builder seeded with length
// zero bits
func NewBitVectorBuilderFromLength(length uint64) (*BitVectorBuilder, error) {
	if length == 0 {
		return nil, errors.New("Invalid length parameter (must be at least 1 bit)")
	}

	return &BitVectorBuilder{seed: lengthSeed(length), bitsSet: make(map[uint64]bool)}, nil
}

// NewBitVectorBuilderFromString returns a builder seeded with the bits
// of bvs
func NewBitVectorBuilderFromString(bvs *BitVectorString) *BitVectorBuilder {
	return &BitVectorBuilder{seed: patternSeed{bvs}, bitsSet: make(map[uint64]bool)}
}

// SetBit records that bit i of the built vector must be 1. Repeated
// indices collapse to one. Panic if i is not less than the seed length
func (this *BitVectorBuilder) SetBit(i uint64) *BitVectorBuilder {
	if i >= this.seed.length() {
		panic(fmt.Errorf("Invalid index: %v (must be less than %v)", i, this.seed.length()))
	}

	this.bitsSet[i] = true
	return this
}

// Build materializes the raw bits from the seed, applies the recorded
// indices, then derives both rank summary levels and the popcount table
// in one linear pass each. O(N + number of set bits).
func (this *BitVectorBuilder) Build() *BitVector {
	rbv := this.seed.materialize()

	for i := range this.bitsSet {
		rbv.SetBit(i)
	}

	chunks := internal.NewChunks(rbv)
	blocks := internal.NewBlocks(rbv, chunks)
	table, _ := internal.NewPopcountTable(uint(blocks.BlockSize()))
	return &BitVector{rbv: rbv, chunks: chunks, blocks: blocks, table: table}
}
