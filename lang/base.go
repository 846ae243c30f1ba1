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

package lang

import (
	"syndiff/parser"
	"syndiff/tree"
)

// Base carries the behavior shared by most languages. Concrete languages
// embed it and override only the queries their grammar needs.
type Base struct{}

// MapToken treats every token as virtual; languages with a real token set
// override this.
func (Base) MapToken(token int) tree.Type {
	return tree.Virtual
}

// IsTravellingNode reports that nodes stay put by default.
func (Base) IsTravellingNode(n *tree.Node) bool {
	return false
}

// HasFixedStructure reports that children are reorderable by default.
func (Base) HasFixedStructure(n *tree.Node) bool {
	return false
}

// CanBeFlattened collapses nothing by default.
func (Base) CanBeFlattened(parent, child *tree.Node, level int) bool {
	return false
}

// IsUnmovable pins only the translation unit by default.
func (Base) IsUnmovable(n *tree.Node) bool {
	return n.Stype == tree.STranslationUnit
}

// IsContainer recognizes the generic grouping kinds.
func (Base) IsContainer(n *tree.Node) bool {
	switch n.Stype {
	case tree.SStatements, tree.SBundle, tree.STemporaryContainer:
		return true
	}
	return false
}

// IsDiffable allows word-level diffing of comments only by default.
func (Base) IsDiffable(n *tree.Node) bool {
	return n.Stype == tree.SComment
}

// AlwaysMatches accepts translation units unconditionally.
func (Base) AlwaysMatches(n *tree.Node) bool {
	return n.Stype == tree.STranslationUnit
}

// ShouldSplice dissolves temporary containers.
func (Base) ShouldSplice(parent tree.SType, child *parser.PNode) bool {
	return child.Stype == tree.STemporaryContainer
}

// IsValueNode recognizes no value nodes by default.
func (Base) IsValueNode(stype tree.SType) bool {
	return false
}

// IsLayerBreak breaks no layers by default.
func (Base) IsLayerBreak(stype tree.SType) bool {
	return false
}

// ShouldDropLeadingWS keeps labels as spelled by default.
func (Base) ShouldDropLeadingWS(stype tree.SType) bool {
	return false
}

// IsSatellite treats separators and punctuation as decoration.
func (Base) IsSatellite(stype tree.SType) bool {
	return stype == tree.SSeparator || stype == tree.SPunctuation
}

// StypeToString stringifies the shared structural vocabulary.
func (Base) StypeToString(stype tree.SType) string {
	return stype.String()
}
