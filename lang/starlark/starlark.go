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

// Package starlark is the front end for standalone Starlark files,
// built on the go.starlark.net syntax tree.
package starlark

import (
	"fmt"

	"go.starlark.net/syntax"

	"syndiff/lang"
	"syndiff/parser"
	"syndiff/tree"
)

// Token identifiers of the Starlark token set.
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
)

// Language is the Starlark front end.
type Language struct {
	lang.Base
}

func init() {
	lang.Register(Language{})
}

// Name returns the name of the language.
func (Language) Name() string {
	return "starlark"
}

// Extensions returns the file suffixes this language claims.
func (Language) Extensions() []string {
	return []string{".star"}
}

// MapToken maps a Starlark token identifier to a token category.
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
	}
	return tree.Virtual
}

// IsValueNode recognizes declarators (def and load names).
func (Language) IsValueNode(stype tree.SType) bool {
	return stype == tree.SDeclarator
}

// IsLayerBreak pushes statement bodies one level deeper.
func (Language) IsLayerBreak(stype tree.SType) bool {
	return stype == tree.SCompoundStatement
}

// Parse parses Starlark contents into a parse tree.
func (Language) Parse(contents []byte, fileName string) (*parser.Builder, error) {
	f, err := syntax.Parse(fileName, contents, 0)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q: %v", fileName, err)
	}

	t := transformer{b: parser.NewBuilder()}
	t.b.SetRoot(t.b.AddNode(t.stmts(f.Stmts), tree.STranslationUnit))
	return t.b, nil
}

// transformer carries the builder through the syntax-tree walk.
type transformer struct {
	b *parser.Builder
}

// leafAt creates a spelled leaf at an explicit position.
func (t *transformer) leafAt(label string, pos syntax.Position, token int, stype tree.SType) *parser.PNode {
	return t.b.AddLeaf(label, int(pos.Line), int(pos.Col), token, stype)
}

// stmts transforms a statement list.
func (t *transformer) stmts(ss []syntax.Stmt) []*parser.PNode {
	var nodes []*parser.PNode
	for _, s := range ss {
		if n := t.stmt(s); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// body wraps a statement list into a compound statement.
func (t *transformer) body(ss []syntax.Stmt) *parser.PNode {
	return t.b.AddNode(t.stmts(ss), tree.SCompoundStatement)
}

// stmt transforms one statement.
func (t *transformer) stmt(s syntax.Stmt) *parser.PNode {
	switch x := s.(type) {
	case *syntax.ExprStmt:
		return t.b.AddNode([]*parser.PNode{t.expr(x.X)}, tree.SExprStatement)
	case *syntax.AssignStmt:
		children := []*parser.PNode{
			t.expr(x.LHS),
			t.leafAt(x.Op.String(), x.OpPos, _tokenAssignment, tree.SNone),
			t.expr(x.RHS),
		}
		return t.b.AddNode(children, tree.SAssignmentExpr)
	case *syntax.DefStmt:
		name := t.expr(x.Name)
		name.Stype = tree.SDeclarator
		name.Token = _tokenFunction
		children := []*parser.PNode{
			t.leafAt("def", defPos(x), _tokenKeyword, tree.SNone),
			name,
			t.b.AddNode(t.exprList(x.Params), tree.SParameterList),
			t.body(x.Body),
		}
		return t.b.AddNode(children, tree.SFunctionDefinition)
	case *syntax.IfStmt:
		children := []*parser.PNode{
			t.b.AddNode([]*parser.PNode{t.expr(x.Cond)}, tree.SIfCond),
			t.b.AddNode([]*parser.PNode{t.body(x.True)}, tree.SIfThen),
		}
		if len(x.False) > 0 {
			children = append(children,
				t.b.AddNode([]*parser.PNode{t.body(x.False)}, tree.SIfElse))
		}
		return t.b.AddNode(children, tree.SIfStmt)
	case *syntax.ForStmt:
		head := t.b.AddNode([]*parser.PNode{t.expr(x.Vars), t.expr(x.X)}, tree.SForHead)
		return t.b.AddNode([]*parser.PNode{head, t.body(x.Body)}, tree.SForStmt)
	case *syntax.WhileStmt:
		cond := t.b.AddNode([]*parser.PNode{t.expr(x.Cond)}, tree.SWhileCond)
		return t.b.AddNode([]*parser.PNode{cond, t.body(x.Body)}, tree.SWhileStmt)
	case *syntax.ReturnStmt:
		start, _ := x.Span()
		keyword := t.leafAt("return", start, _tokenKeyword, tree.SNone)
		if x.Result == nil {
			return t.b.AddNode([]*parser.PNode{keyword}, tree.SReturnNothingStmt)
		}
		return t.b.AddNode([]*parser.PNode{keyword, t.expr(x.Result)}, tree.SReturnValueStmt)
	case *syntax.BranchStmt:
		return t.leafAt(x.Token.String(), x.TokenPos, _tokenKeyword, tree.SNone)
	case *syntax.LoadStmt:
		start, _ := x.Span()
		children := []*parser.PNode{t.leafAt("load", start, _tokenKeyword, tree.SNone)}
		if module := t.expr(x.Module); module != nil {
			module.Stype = tree.SDeclarator
			children = append(children, module)
		}
		for _, to := range x.To {
			children = append(children, t.expr(to))
		}
		return t.b.AddNode(children, tree.SDeclaration)
	}
	return nil
}

// exprList transforms an expression list.
func (t *transformer) exprList(es []syntax.Expr) []*parser.PNode {
	var nodes []*parser.PNode
	for _, e := range es {
		if n := t.expr(e); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// initializers wraps list elements so that reordered elements keep their
// identity during matching.
func (t *transformer) initializers(es []syntax.Expr) []*parser.PNode {
	var nodes []*parser.PNode
	for _, e := range es {
		if n := t.expr(e); n != nil {
			nodes = append(nodes, t.b.AddNode([]*parser.PNode{n}, tree.SInitializerElement))
		}
	}
	return nodes
}

// expr transforms one expression.
func (t *transformer) expr(e syntax.Expr) *parser.PNode {
	switch x := e.(type) {
	case *syntax.Ident:
		return t.leafAt(x.Name, x.NamePos, _tokenIdent, tree.SNone)
	case *syntax.Literal:
		token := _tokenNumber
		if x.Token == syntax.STRING {
			token = _tokenString
		}
		start, _ := x.Span()
		return t.leafAt(x.Raw, start, token, tree.SNone)
	case *syntax.CallExpr:
		var children []*parser.PNode
		if fn := t.expr(x.Fn); fn != nil {
			fn.Stype = tree.SDeclarator
			fn.Token = _tokenFunction
			children = append(children, fn)
		}
		children = append(children, t.b.AddNode(t.exprList(x.Args), tree.SArgumentList))
		return t.b.AddNode(children, tree.SCallExpr)
	case *syntax.BinaryExpr:
		children := []*parser.PNode{
			t.expr(x.X),
			t.leafAt(x.Op.String(), x.OpPos, opToken(x.Op.String()), tree.SNone),
			t.expr(x.Y),
		}
		return t.b.AddNode(children, binaryStype(x.Op.String()))
	case *syntax.UnaryExpr:
		children := []*parser.PNode{
			t.leafAt(x.Op.String(), x.OpPos, _tokenOperator, tree.SNone),
		}
		if x.X != nil {
			children = append(children, t.expr(x.X))
		}
		return t.b.AddNode(children, tree.SExpression)
	case *syntax.DotExpr:
		return t.b.AddNode([]*parser.PNode{
			t.expr(x.X),
			t.expr(x.Name),
		}, tree.SExpression)
	case *syntax.IndexExpr:
		return t.b.AddNode([]*parser.PNode{t.expr(x.X), t.expr(x.Y)}, tree.SExpression)
	case *syntax.SliceExpr:
		children := []*parser.PNode{t.expr(x.X)}
		for _, part := range []syntax.Expr{x.Lo, x.Hi, x.Step} {
			if part != nil {
				children = append(children, t.expr(part))
			}
		}
		return t.b.AddNode(children, tree.SExpression)
	case *syntax.ParenExpr:
		return t.expr(x.X)
	case *syntax.ListExpr:
		return t.b.AddNode(t.initializers(x.List), tree.SInitializerList)
	case *syntax.TupleExpr:
		return t.b.AddNode(t.initializers(x.List), tree.SInitializerList)
	case *syntax.DictExpr:
		return t.b.AddNode(t.exprList(x.List), tree.SInitializerList)
	case *syntax.DictEntry:
		return t.b.AddNode([]*parser.PNode{t.expr(x.Key), t.expr(x.Value)},
			tree.SInitializerElement)
	case *syntax.CondExpr:
		return t.b.AddNode([]*parser.PNode{
			t.expr(x.True), t.expr(x.Cond), t.expr(x.False),
		}, tree.SConditionExpr)
	case *syntax.Comprehension:
		children := []*parser.PNode{t.expr(x.Body)}
		for _, clause := range x.Clauses {
			switch c := clause.(type) {
			case *syntax.ForClause:
				children = append(children,
					t.b.AddNode([]*parser.PNode{t.expr(c.Vars), t.expr(c.X)}, tree.SForHead))
			case *syntax.IfClause:
				children = append(children,
					t.b.AddNode([]*parser.PNode{t.expr(c.Cond)}, tree.SIfCond))
			}
		}
		return t.b.AddNode(children, tree.SExpression)
	case *syntax.LambdaExpr:
		children := t.exprList(x.Params)
		children = append(children, t.expr(x.Body))
		return t.b.AddNode(children, tree.SExpression)
	}
	return nil
}

// defPos returns the position of the def keyword.
func defPos(x *syntax.DefStmt) syntax.Position {
	start, _ := x.Span()
	return start
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
