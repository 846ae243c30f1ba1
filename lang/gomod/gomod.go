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

// Package gomod is the go.mod language front end, built on the module
// file syntax tree of golang.org/x/mod/modfile.
package gomod

import (
	"fmt"

	"golang.org/x/mod/modfile"

	"syndiff/lang"
	"syndiff/parser"
	"syndiff/tree"
)

// Token identifiers of the go.mod token set.
const (
	_tokenNone = iota
	_tokenVerb
	_tokenIdent
	_tokenString
	_tokenComment
	_tokenPunct
)

// Language is the go.mod front end.
type Language struct {
	lang.Base
}

func init() {
	lang.Register(Language{})
}

// Name returns the name of the language.
func (Language) Name() string {
	return "gomod"
}

// Extensions returns the file names this language claims.
func (Language) Extensions() []string {
	return []string{"go.mod"}
}

// MapToken maps a go.mod token identifier to a token category.
func (Language) MapToken(token int) tree.Type {
	switch token {
	case _tokenVerb:
		return tree.Keyword
	case _tokenIdent:
		return tree.Identifier
	case _tokenString:
		return tree.StrConstant
	case _tokenComment:
		return tree.Comment
	case _tokenPunct:
		return tree.Other
	}
	return tree.Virtual
}

// IsValueNode recognizes declarators: the module path of a directive
// carries its identity.
func (Language) IsValueNode(stype tree.SType) bool {
	return stype == tree.SDeclarator
}

// AlwaysMatches accepts the file root unconditionally.
func (Language) AlwaysMatches(n *tree.Node) bool {
	return n.Stype == tree.STranslationUnit
}

// Parse parses go.mod contents into a parse tree.
func (Language) Parse(contents []byte, fileName string) (*parser.Builder, error) {
	f, err := modfile.Parse(fileName, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q: %v", fileName, err)
	}

	b := parser.NewBuilder()
	var stmts []*parser.PNode
	for _, expr := range f.Syntax.Stmt {
		if n := transformExpr(b, expr); n != nil {
			stmts = append(stmts, n)
		}
	}
	b.SetRoot(b.AddNode(stmts, tree.STranslationUnit))
	return b, nil
}

// transformExpr turns one top-level statement of the module file into a
// parse node.
func transformExpr(b *parser.Builder, expr modfile.Expr) *parser.PNode {
	switch e := expr.(type) {
	case *modfile.CommentBlock:
		start, _ := e.Span()
		return commentNode(b, comments(e.Comment().Before), start.Line, start.LineRune)
	case *modfile.Line:
		return lineNode(b, e)
	case *modfile.LineBlock:
		return lineBlockNode(b, e)
	case *modfile.LParen, *modfile.RParen:
		// parentheses of blocks are emitted by lineBlockNode
		return nil
	}
	return nil
}

// lineNode turns a single directive line into a declaration node whose
// first non-verb token is the declarator.
func lineNode(b *parser.Builder, line *modfile.Line) *parser.PNode {
	start, _ := line.Span()
	children := tokenNodes(b, line.Token, start.Line, start.LineRune, !line.InBlock)
	return b.AddNode(children, tree.SDeclaration)
}

// lineBlockNode turns a parenthesized directive block into a declaration
// with a statement list inside.
func lineBlockNode(b *parser.Builder, block *modfile.LineBlock) *parser.PNode {
	start, _ := block.Span()
	children := tokenNodes(b, block.Token, start.Line, start.LineRune, true)

	children = append(children,
		b.AddLeaf("(", block.LParen.Pos.Line, block.LParen.Pos.LineRune, _tokenPunct, tree.SPunctuation))

	var lines []*parser.PNode
	for _, line := range block.Line {
		lines = append(lines, lineNode(b, line))
	}
	children = append(children, b.AddNode(lines, tree.SStatements))

	children = append(children,
		b.AddLeaf(")", block.RParen.Pos.Line, block.RParen.Pos.LineRune, _tokenPunct, tree.SPunctuation))

	return b.AddNode(children, tree.SDeclaration)
}

// tokenNodes lays the tokens of a line out as leaves, advancing the
// column by the spelled width. The leading verb token is a keyword when
// the line stands on its own.
func tokenNodes(b *parser.Builder, tokens []string, line, col int, hasVerb bool) []*parser.PNode {
	var nodes []*parser.PNode
	for i, tok := range tokens {
		token := _tokenIdent
		stype := tree.SNone
		switch {
		case i == 0 && hasVerb:
			token = _tokenVerb
		case tok[0] == '"' || tok[0] == '`':
			token = _tokenString
		}
		if (i == 1 && hasVerb) || (i == 0 && !hasVerb) {
			stype = tree.SDeclarator
		}
		nodes = append(nodes, b.AddLeaf(tok, line, col, token, stype))
		col += len(tok) + 1
	}
	return nodes
}

// commentNode turns a run of comments into a single comment leaf.
func commentNode(b *parser.Builder, text string, line, col int) *parser.PNode {
	return b.AddLeaf(text, line, col, _tokenComment, tree.SComment)
}

// comments joins comment tokens into a single label.
func comments(cs []modfile.Comment) string {
	text := ""
	for i, c := range cs {
		if i > 0 {
			text += "\n"
		}
		text += c.Token
	}
	return text
}
