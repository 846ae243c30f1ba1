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

package printer

import (
	"strings"

	"syndiff/tree"
)

// _reset terminates any decoration.
const _reset = "\033[0m"

// _stateDecor maps a node state to the CSI sequence opening its
// decoration. Unchanged text is not decorated.
var _stateDecor = map[tree.State]string{
	tree.Deleted:  "\033[31;7;40;1m",
	tree.Inserted: "\033[32;7;40;1m",
	tree.Updated:  "\033[33;7;40;1m",
}

// decorate wraps a label slice in the decoration pair of the state. With
// decoration disabled or for unchanged text the slice passes through as
// is.
func decorate(s string, state tree.State, enabled bool) string {
	if !enabled || state == tree.Unchanged || s == "" {
		return s
	}
	return _stateDecor[state] + s + _reset
}

// measureWidth calculates the display width of a string ignoring embedded
// escape sequences (anything from ESC up to and including 'm').
func measureWidth(s string) int {
	width := 0
	for i := 0; i < len(s); {
		if s[i] != '\033' {
			width++
			i++
			continue
		}
		end := strings.IndexByte(s[i:], 'm')
		if end < 0 {
			return width
		}
		i += end + 1
	}
	return width
}
