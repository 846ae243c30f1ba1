//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dice implements Dice-coefficient similarity over strings. A
// String precomputes the sorted multiset of 2-byte substrings of a label so
// that repeated comparisons against other labels avoid rescanning it.
package dice

import "sort"

// String is a label prepared for Dice comparison: the sorted multiset of
// its bigrams plus the original text.
type String struct {
	str     string
	bigrams []uint16
}

// NewString prepares a label for comparison.
func NewString(s string) String {
	var bigrams []uint16
	if len(s) > 1 {
		bigrams = make([]uint16, len(s)-1)
		for i := 0; i+1 < len(s); i++ {
			bigrams[i] = uint16(s[i])<<8 | uint16(s[i+1])
		}
		sort.Slice(bigrams, func(i, j int) bool {
			return bigrams[i] < bigrams[j]
		})
	}
	return String{str: s, bigrams: bigrams}
}

// Str returns the original label.
func (ds String) Str() string {
	return ds.str
}

// Compare computes 2*|A∩B|/(|A|+|B|) over the bigram multisets of the two
// strings. The result is in [0, 1]; identical labels score 1. Labels too
// short to have bigrams compare as equal-or-nothing.
func (ds String) Compare(other String) float32 {
	total := len(ds.bigrams) + len(other.bigrams)
	if total == 0 {
		if ds.str == other.str {
			return 1
		}
		return 0
	}

	common := 0
	i, j := 0, 0
	for i < len(ds.bigrams) && j < len(other.bigrams) {
		switch {
		case ds.bigrams[i] == other.bigrams[j]:
			common++
			i++
			j++
		case ds.bigrams[i] < other.bigrams[j]:
			i++
		default:
			j++
		}
	}

	return 2 * float32(common) / float32(total)
}
