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

// Package bazel is the front end for Bazel build files (BUILD,
// WORKSPACE, .bzl), built on the buildtools syntax tree.
package bazel

import (
	"fmt"

	"github.com/bazelbuild/buildtools/build"

	"syndiff/lang"
	"syndiff/parser"
	"syndiff/tree"
)

// Token identifiers of the build-file token set.
const (
	_tokenNone = iota
	_tokenKeyword
	_tokenIdent
	_tokenFunction
	_tokenString
	_tokenNumber
	_tokenOperator
	_tokenComparison
	_tokenLogical
	_tokenAssignment
	_tokenComment
	_tokenPunct
)

// Language is the Bazel front end.
type Language struct {
	lang.Base
}

func init() {
	lang.Register(Language{})
}

// Name returns the name of the language.
func (Language) Name() string {
	return "bazel"
}

// Extensions returns the file names and suffixes this language claims.
func (Language) Extensions() []string {
	return []string{"BUILD", "BUILD.bazel", "WORKSPACE", ".bzl"}
}

// MapToken maps a build-file token identifier to a token category.
func (Language) MapToken(token int) tree.Type {
	switch token {
	case _tokenKeyword:
		return tree.Keyword
	case _tokenIdent:
		return tree.Identifier
	case _tokenFunction:
		return tree.Function
	case _tokenString:
		return tree.StrConstant
	case _tokenNumber:
		return tree.IntConstant
	case _tokenOperator:
		return tree.Operator
	case _tokenComparison:
		return tree.Comparison
	case _tokenLogical:
		return tree.LogicalOperator
	case _tokenAssignment:
		return tree.Assignment
	case _tokenComment:
		return tree.Comment
	case _tokenPunct:
		return tree.Other
	}
	return tree.Virtual
}

// IsValueNode recognizes declarators (rule names, def names).
func (Language) IsValueNode(stype tree.SType) bool {
	return stype == tree.SDeclarator
}

// IsLayerBreak pushes function bodies one level deeper.
func (Language) IsLayerBreak(stype tree.SType) bool {
	return stype == tree.SCompoundStatement
}

// CanBeFlattened dissolves expression wrappers on flattening levels 2 and
// deeper.
func (Language) CanBeFlattened(parent, child *tree.Node, level int) bool {
	switch level {
	case 0, 1:
		return false
	default:
		return child.Stype == tree.SExpression
	}
}

// Parse parses build-file contents into a parse tree.
func (Language) Parse(contents []byte, fileName string) (*parser.Builder, error) {
	f, err := build.Parse(fileName, contents)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q: %v", fileName, err)
	}

	t := transformer{b: parser.NewBuilder()}
	var stmts []*parser.PNode
	for _, stmt := range f.Stmt {
		if n := t.expr(stmt); n != nil {
			stmts = append(stmts, n)
		}
	}
	t.b.SetRoot(t.b.AddNode(stmts, tree.STranslationUnit))
	return t.b, nil
}

// transformer carries the builder through the syntax-tree walk.
type transformer struct {
	b *parser.Builder
}

// leafAt creates a spelled leaf at an explicit position.
func (t *transformer) leafAt(label string, pos build.Position, token int, stype tree.SType) *parser.PNode {
	return t.b.AddLeaf(label, pos.Line, pos.LineRune, token, stype)
}

// leaf creates a spelled leaf at the start of the expression span.
func (t *transformer) leaf(label string, e build.Expr, token int, stype tree.SType) *parser.PNode {
	start, _ := e.Span()
	return t.leafAt(label, start, token, stype)
}

// exprs transforms a slice of expressions, dropping nils.
func (t *transformer) exprs(es []build.Expr) []*parser.PNode {
	var nodes []*parser.PNode
	for _, e := range es {
		if n := t.expr(e); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// expr transforms one expression of the syntax tree into a parse node.
func (t *transformer) expr(e build.Expr) *parser.PNode {
	switch x := e.(type) {
	case *build.CommentBlock:
		return t.commentBlock(x)
	case *build.Ident:
		return t.leaf(x.Name, x, _tokenIdent, tree.SNone)
	case *build.LiteralExpr:
		return t.leaf(x.Token, x, _tokenNumber, tree.SNone)
	case *build.StringExpr:
		return t.leaf(x.Token, x, _tokenString, tree.SNone)
	case *build.CallExpr:
		return t.callExpr(x)
	case *build.AssignExpr:
		children := []*parser.PNode{
			t.expr(x.LHS),
			t.leafAt(x.Op, x.OpPos, _tokenAssignment, tree.SNone),
			t.expr(x.RHS),
		}
		return t.b.AddNode(children, tree.SAssignmentExpr)
	case *build.BinaryExpr:
		children := []*parser.PNode{
			t.expr(x.X),
			t.leafAt(x.Op, x.OpStart, opToken(x.Op), tree.SNone),
			t.expr(x.Y),
		}
		return t.b.AddNode(children, binaryStype(x.Op))
	case *build.UnaryExpr:
		return t.b.AddNode([]*parser.PNode{
			t.leaf(x.Op, x, _tokenOperator, tree.SNone),
			t.expr(x.X),
		}, tree.SExpression)
	case *build.DotExpr:
		return t.b.AddNode([]*parser.PNode{
			t.expr(x.X),
			t.leafAt(x.Name, x.NamePos, _tokenIdent, tree.SNone),
		}, tree.SExpression)
	case *build.IndexExpr:
		return t.b.AddNode([]*parser.PNode{t.expr(x.X), t.expr(x.Y)}, tree.SExpression)
	case *build.SliceExpr:
		var children []*parser.PNode
		children = append(children, t.expr(x.X))
		for _, part := range []build.Expr{x.From, x.To, x.Step} {
			if part != nil {
				children = append(children, t.expr(part))
			}
		}
		return t.b.AddNode(children, tree.SExpression)
	case *build.ParenExpr:
		return t.expr(x.X)
	case *build.ListExpr:
		return t.b.AddNode(t.initializers(x.List), tree.SInitializerList)
	case *build.SetExpr:
		return t.b.AddNode(t.initializers(x.List), tree.SInitializerList)
	case *build.TupleExpr:
		return t.b.AddNode(t.initializers(x.List), tree.SInitializerList)
	case *build.DictExpr:
		var children []*parser.PNode
		for _, kv := range x.List {
			children = append(children, t.expr(kv))
		}
		return t.b.AddNode(children, tree.SInitializerList)
	case *build.KeyValueExpr:
		return t.b.AddNode([]*parser.PNode{t.expr(x.Key), t.expr(x.Value)},
			tree.SInitializerElement)
	case *build.ConditionalExpr:
		return t.b.AddNode([]*parser.PNode{
			t.expr(x.Then), t.expr(x.Test), t.expr(x.Else),
		}, tree.SConditionExpr)
	case *build.Comprehension:
		children := []*parser.PNode{t.expr(x.Body)}
		children = append(children, t.exprs(x.Clauses)...)
		return t.b.AddNode(children, tree.SExpression)
	case *build.ForClause:
		return t.b.AddNode([]*parser.PNode{t.expr(x.Vars), t.expr(x.X)}, tree.SForHead)
	case *build.IfClause:
		return t.b.AddNode([]*parser.PNode{t.expr(x.Cond)}, tree.SIfCond)
	case *build.LambdaExpr:
		children := t.exprs(x.Function.Params)
		children = append(children, t.exprs(x.Function.Body)...)
		return t.b.AddNode(children, tree.SExpression)
	case *build.DefStmt:
		return t.defStmt(x)
	case *build.IfStmt:
		return t.ifStmt(x)
	case *build.ForStmt:
		children := []*parser.PNode{
			t.b.AddNode([]*parser.PNode{t.expr(x.Vars), t.expr(x.X)}, tree.SForHead),
			t.body(x.Body),
		}
		return t.b.AddNode(children, tree.SForStmt)
	case *build.ReturnStmt:
		if x.Result == nil {
			return t.b.AddNode(t.keywordChildren(x, "return"), tree.SReturnNothingStmt)
		}
		children := t.keywordChildren(x, "return")
		children = append(children, t.expr(x.Result))
		return t.b.AddNode(children, tree.SReturnValueStmt)
	case *build.BranchStmt:
		return t.leafAt(x.Token, x.TokenPos, _tokenKeyword, tree.SNone)
	case *build.LoadStmt:
		return t.loadStmt(x)
	case *build.Function:
		children := t.exprs(x.Params)
		children = append(children, t.body(x.Body))
		return t.b.AddNode(children, tree.SExpression)
	case *build.End:
		return nil
	}
	return nil
}

// initializers wraps list elements so that reordered elements keep their
// identity during matching.
func (t *transformer) initializers(es []build.Expr) []*parser.PNode {
	var nodes []*parser.PNode
	for _, e := range es {
		if n := t.expr(e); n != nil {
			nodes = append(nodes, t.b.AddNode([]*parser.PNode{n}, tree.SInitializerElement))
		}
	}
	return nodes
}

// callExpr keeps the callee as the value of the call so that rules keep
// their identity when arguments churn.
func (t *transformer) callExpr(x *build.CallExpr) *parser.PNode {
	var children []*parser.PNode
	if callee := t.expr(x.X); callee != nil {
		callee.Stype = tree.SDeclarator
		callee.Token = _tokenFunction
		children = append(children, callee)
	}
	children = append(children, t.b.AddNode(t.exprs(x.List), tree.SArgumentList))
	return t.b.AddNode(children, tree.SCallExpr)
}

// defStmt emits a function definition: keyword, name declarator,
// parameter list and a body one layer deeper.
func (t *transformer) defStmt(x *build.DefStmt) *parser.PNode {
	start, _ := x.Span()
	children := []*parser.PNode{
		t.leafAt("def", start, _tokenKeyword, tree.SNone),
		t.b.AddLeaf(x.Name, start.Line, start.LineRune+len("def "), _tokenFunction, tree.SDeclarator),
		t.b.AddNode(t.exprs(x.Function.Params), tree.SParameterList),
		t.body(x.Function.Body),
	}
	return t.b.AddNode(children, tree.SFunctionDefinition)
}

// ifStmt emits the conditional with separate condition, then and else
// parts.
func (t *transformer) ifStmt(x *build.IfStmt) *parser.PNode {
	children := []*parser.PNode{
		t.b.AddNode([]*parser.PNode{t.expr(x.Cond)}, tree.SIfCond),
		t.b.AddNode([]*parser.PNode{t.body(x.True)}, tree.SIfThen),
	}
	if len(x.False) > 0 {
		children = append(children,
			t.b.AddNode([]*parser.PNode{t.body(x.False)}, tree.SIfElse))
	}
	return t.b.AddNode(children, tree.SIfStmt)
}

// loadStmt emits a load declaration keyed by the module string.
func (t *transformer) loadStmt(x *build.LoadStmt) *parser.PNode {
	start, _ := x.Span()
	children := []*parser.PNode{
		t.leafAt("load", start, _tokenKeyword, tree.SNone),
	}
	if module := t.expr(x.Module); module != nil {
		module.Stype = tree.SDeclarator
		children = append(children, module)
	}
	for i := range x.To {
		children = append(children, t.expr(x.To[i]))
	}
	return t.b.AddNode(children, tree.SDeclaration)
}

// body wraps statements into a compound-statement node.
func (t *transformer) body(stmts []build.Expr) *parser.PNode {
	return t.b.AddNode(t.exprs(stmts), tree.SCompoundStatement)
}

// keywordChildren emits the leading keyword of a statement.
func (t *transformer) keywordChildren(e build.Expr, keyword string) []*parser.PNode {
	start, _ := e.Span()
	return []*parser.PNode{t.leafAt(keyword, start, _tokenKeyword, tree.SNone)}
}

// commentBlock joins a standalone comment block into one comment leaf.
func (t *transformer) commentBlock(x *build.CommentBlock) *parser.PNode {
	start, _ := x.Span()
	text := ""
	for i, c := range x.Before {
		if i > 0 {
			text += "\n"
		}
		text += c.Token
	}
	return t.leafAt(text, start, _tokenComment, tree.SComment)
}

// opToken classifies a binary operator spelling.
func opToken(op string) int {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=", "in", "not in":
		return _tokenComparison
	case "and", "or":
		return _tokenLogical
	default:
		return _tokenOperator
	}
}

// binaryStype picks the structural kind of a binary expression.
func binaryStype(op string) tree.SType {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=", "in", "not in":
		return tree.SComparisonExpr
	case "+", "-":
		return tree.SAdditiveExpr
	default:
		return tree.SExpression
	}
}
