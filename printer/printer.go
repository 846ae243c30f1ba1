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

// Package printer renders a pair of matched trees side by side: both
// trees are serialized back to text with per-state decoration, the two
// texts are aligned line by line and long runs of identical lines are
// folded away.
package printer

import (
	"fmt"
	"io"
	"strings"

	"syndiff/tree"
)

// Per-entry markers of the side-by-side layout.
const (
	_markerLeft      = " << "
	_markerRight     = " >> "
	_markerIdentical = " || "
	_markerDifferent = " <> "
)

// Printer lays out two matched trees side by side.
type Printer struct {
	left, right *tree.Node
	out         io.Writer
	colorize    bool
}

// New creates a printer writing to out. Decoration is a constructor
// parameter rather than ambient state so that tests stay hermetic.
func New(left, right *tree.Node, out io.Writer, colorize bool) *Printer {
	return &Printer{left: left, right: right, out: out, colorize: colorize}
}

// Print renders the diff. Empty trees produce no output.
func (p *Printer) Print() {
	l := splitLines(p.serialize(p.left))
	r := splitLines(p.serialize(p.right))

	diff := compare(l, r)

	maxWidth := 0
	widths := make([]int, 0, len(l))
	for _, line := range l {
		width := measureWidth(line)
		widths = append(widths, width)
		if width > maxWidth {
			maxWidth = width
		}
	}

	i, j := 0, 0
	for _, d := range diff {
		ll, rl := "", ""
		var marker string
		switch d.kind {
		case diffLeft:
			ll = l[i]
			i++
			marker = _markerLeft
		case diffRight:
			rl = r[j]
			j++
			marker = _markerRight
		case diffIdentical:
			ll = l[i]
			rl = r[j]
			i++
			j++
			marker = _markerIdentical
		case diffDifferent:
			ll = l[i]
			rl = r[j]
			i++
			j++
			marker = _markerDifferent
		case diffFold:
			i += d.data
			j += d.data
			msg := fmt.Sprintf(" @@ folded %d identical lines @@", d.data)
			fmt.Fprintf(p.out, "%*s\n", maxWidth+4+len(msg)/2, msg)
			continue
		}

		// The field width accounts for invisible escape sequences so
		// that the markers line up on screen.
		width := 0
		if ll != "" {
			width = widths[i-1]
		}
		width = maxWidth + (len(ll) - width)
		fmt.Fprintf(p.out, "%-*s%s%s\n", width, ll, marker, rl)
	}
}

// serialize walks the tree in preorder emitting labels at their recorded
// positions, wrapping changed slices in decoration. Satellites inherit
// the state of their parent on the way.
func (p *Printer) serialize(root *tree.Node) string {
	if root == nil {
		return ""
	}

	var sb strings.Builder
	line, col := 1, 1

	var visit func(n *tree.Node, state tree.State)
	visit = func(n *tree.Node, state tree.State) {
		if n.Line != 0 && n.Col != 0 {
			for n.Line > line {
				sb.WriteByte('\n')
				line++
				col = 1
			}
			for n.Col > col {
				sb.WriteByte(' ')
				col++
			}

			lines := strings.Split(n.Label, "\n")
			sb.WriteString(decorate(lines[0], state, p.colorize))
			for _, part := range lines[1:] {
				sb.WriteByte('\n')
				sb.WriteString(decorate(part, state, p.colorize))
				line++
			}
			col += len(n.Label)
		}

		for _, child := range n.Children {
			childState := child.State
			if child.Satellite {
				childState = state
			}
			visit(child, childState)
		}
	}
	visit(root, root.State)

	return sb.String()
}

// splitLines splits serialized text into lines, yielding nothing for
// empty text.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
