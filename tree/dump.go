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

package tree

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human-readable rendition of the tree to w, one node per
// line with indentation following depth. Satellites are skipped the same
// way traversal skips them.
func Dump(w io.Writer, root *Node) {
	dumpNode(w, root, 0)
}

func dumpNode(w io.Writer, node *Node, lvl int) {
	if node.Satellite {
		return
	}

	prefix := ""
	if lvl > 0 {
		prefix = strings.Repeat("    ", lvl-1) + "`---"
	}

	suffix := ""
	switch node.State {
	case Unchanged:
	case Deleted:
		suffix = " (deleted)"
	case Inserted:
		suffix = " (inserted)"
	case Updated:
		if node.Buddy != nil {
			suffix = " (updated with " + node.Buddy.Label + ")"
		} else {
			suffix = " (updated)"
		}
	}

	fmt.Fprintf(w, "%s%s[%d](%d;%d)%s\n",
		prefix, node.Label, node.PoID, node.Line, node.Col, suffix)
	for _, child := range node.Children {
		dumpNode(w, child, lvl+1)
	}
}
