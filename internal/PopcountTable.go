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
	"math/bits"

	"github.com/pkg/errors"
)

// PopcountTable memoizes the popcount of every bit pattern of a given
// width. The in-block part of rank() resolves with a single probe into
// it. With width = floor(log2 N)/2 the table occupies O(sqrt N * log N)
// bits, within the o(N) budget.
type PopcountTable struct {
	width uint
	table []uint8
}

// NewPopcountTable returns a table of 2^width entries, entry k holding
// popcount(k). The width must be in [1, 32] so a key fits in one 32 bit
// word.
func NewPopcountTable(width uint) (*PopcountTable, error) {
	if width == 0 {
		return nil, errors.New("Invalid width parameter (must be at least 1 bit)")
	}

	if width > 32 {
		return nil, errors.New("Invalid width parameter (must be at most 32 bits)")
	}

	this := &PopcountTable{width: width}
	this.table = make([]uint8, uint64(1)<<width)

	for k := range this.table {
		this.table[k] = uint8(bits.OnesCount32(uint32(k)))
	}

	return this, nil
}

// Width returns the key width in bits
func (this *PopcountTable) Width() uint {
	return this.width
}

// Popcount returns the number of 1 bits in key. Panic if key has more
// than Width() significant bits
func (this *PopcountTable) Popcount(key uint32) uint8 {
	if uint64(key) >= uint64(1)<<this.width {
		panic(fmt.Errorf("Invalid key: %v (must be less than %v)", key, uint64(1)<<this.width))
	}

	return this.table[key]
}
