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
	"github.com/pkg/errors"
)

// BitVectorString is the validated textual form of a bit vector: a
// string over '0' and '1', with '_' accepted as a visual separator and
// stripped on entry. The leftmost character is logical index 0.
type BitVectorString struct {
	s string
}

// NewBitVectorString validates s and returns its canonical form.
// Returns an error when s contains a character outside '0', '1' and '_',
// or holds no '0' or '1' at all.
func NewBitVectorString(s string) (*BitVectorString, error) {
	parsed := make([]byte, 0, len(s))

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0', '1':
			parsed = append(parsed, s[i])
		case '_':
		default:
			return nil, errors.Errorf("Invalid character 0x%02x (only '0', '1' and '_' are accepted)", s[i])
		}
	}

	if len(parsed) == 0 {
		return nil, errors.New("Invalid pattern (must contain at least one '0' or '1')")
	}

	return &BitVectorString{s: string(parsed)}, nil
}

// Str returns the canonical pattern: every byte '0' or '1'
func (this *BitVectorString) Str() string {
	return this.s
}
