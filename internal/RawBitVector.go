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
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/pkg/errors"
)

// RawBitVector is a packed bit sequence of fixed length. Logical bit 0
// occupies the most significant bit of the first byte, so bit i lives at
// bit 7-(i&7) of byte i>>3. Bits of the final byte past lastByteLen are
// always zero.
//
// The vector is mutable through SetBit only. Mutation stops once the
// rank index is derived from it.
type RawBitVector struct {
	bytes       []byte
	lastByteLen uint
}

// NewRawBitVectorFromLength returns a vector of the given number of bits,
// all zero.
func NewRawBitVectorFromLength(length uint64) (*RawBitVector, error) {
	if length == 0 {
		return nil, errors.New("Invalid length parameter (must be at least 1 bit)")
	}

	this := &RawBitVector{}
	this.bytes = make([]byte, (length+7)>>3)
	this.lastByteLen = uint(length & 7)

	if this.lastByteLen == 0 {
		this.lastByteLen = 8
	}

	return this, nil
}

// NewRawBitVectorFromPattern returns a vector whose bit i is 1 iff byte i
// of pattern is '1'. The pattern must be canonical: every byte '0' or '1'.
func NewRawBitVectorFromPattern(pattern string) (*RawBitVector, error) {
	this, err := NewRawBitVectorFromLength(uint64(len(pattern)))

	if err != nil {
		return nil, err
	}

	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '1' {
			this.SetBit(uint64(i))
		}
	}

	return this, nil
}

// Length returns the number of bits in the vector
func (this *RawBitVector) Length() uint64 {
	return uint64(len(this.bytes)-1)*8 + uint64(this.lastByteLen)
}

// Access returns the bit at index i. Panic if i is out of range
func (this *RawBitVector) Access(i uint64) bool {
	this.validateIndex(i)
	return this.bytes[i>>3]&(0x80>>(i&7)) != 0
}

// SetBit sets the bit at index i to 1. Idempotent. Panic if i is out of range
func (this *RawBitVector) SetBit(i uint64) {
	this.validateIndex(i)
	this.bytes[i>>3] |= 0x80 >> (i & 7)
}

// Popcount returns the number of 1 bits in the whole vector. Trailing
// bits of the final byte are zero, so whole bytes can be counted.
func (this *RawBitVector) Popcount() uint64 {
	var res uint64
	b := this.bytes

	for len(b) >= 8 {
		res += uint64(bits.OnesCount64(binary.BigEndian.Uint64(b)))
		b = b[8:]
	}

	for _, v := range b {
		res += uint64(bits.OnesCount8(v))
	}

	return res
}

// CopySub returns a new vector of the given size holding bits [i, i+size)
// of this vector, left aligned: bit 0 of the result is the most
// significant bit of its first byte. Trailing bits of the final byte of
// the result are cleared. Panic if size is 0 or the range exceeds the
// vector.
func (this *RawBitVector) CopySub(i, size uint64) *RawBitVector {
	if size == 0 {
		panic(fmt.Errorf("Invalid size: %v (must be at least 1 bit)", size))
	}

	if i+size > this.Length() {
		panic(fmt.Errorf("Invalid range: [%v, %v) exceeds length %v", i, i+size, this.Length()))
	}

	res, _ := NewRawBitVectorFromLength(size)
	a := uint(i & 7)
	src := i >> 3

	for k := range res.bytes {
		hi := this.bytes[src+uint64(k)] << a
		var lo byte

		if a > 0 && src+uint64(k)+1 < uint64(len(this.bytes)) {
			lo = this.bytes[src+uint64(k)+1] >> (8 - a)
		}

		res.bytes[k] = hi | lo
	}

	if res.lastByteLen < 8 {
		res.bytes[len(res.bytes)-1] &= 0xFF << (8 - res.lastByteLen)
	}

	return res
}

// AsUint32 returns the bits left aligned in a 32 bit word: bit 0 of the
// vector at the most significant bit of the word, missing low bits zero.
// Panic if the vector is longer than 32 bits.
func (this *RawBitVector) AsUint32() uint32 {
	if this.Length() > 32 {
		panic(fmt.Errorf("Invalid conversion: length %v (must be at most 32 bits)", this.Length()))
	}

	var res uint32

	for k, v := range this.bytes {
		res |= uint32(v) << (24 - 8*k)
	}

	return res
}

// StorageBits returns the exact footprint of the vector: the packed bytes
// plus the trailing length counter.
func (this *RawBitVector) StorageBits() uint64 {
	return uint64(len(this.bytes))*8 + 8
}

func (this *RawBitVector) validateIndex(i uint64) {
	if i >= this.Length() {
		panic(fmt.Errorf("Invalid index: %v (must be less than %v)", i, this.Length()))
	}
}
