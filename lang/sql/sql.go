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

// Package sql is the SQL front end, built on sqlparser. The parser
// records no source positions, so statements are laid out again from a
// canonical re-print: one statement per line with a running column
// cursor. The diff therefore compares canonicalized SQL rather than the
// original spelling.
package sql

import (
	"fmt"
	"io"
	"strings"

	"github.com/xwb1989/sqlparser"

	"syndiff/lang"
	"syndiff/parser"
	"syndiff/tree"
)

// Token identifiers of the SQL token set.
const (
	_tokenNone = iota
	_tokenKeyword
	_tokenIdent
	_tokenExpr
)

// Language is the SQL front end.
type Language struct {
	lang.Base
}

func init() {
	lang.Register(Language{})
}

// Name returns the name of the language.
func (Language) Name() string {
	return "sql"
}

// Extensions returns the file suffixes this language claims.
func (Language) Extensions() []string {
	return []string{".sql"}
}

// MapToken maps an SQL token identifier to a token category.
func (Language) MapToken(token int) tree.Type {
	switch token {
	case _tokenKeyword:
		return tree.Keyword
	case _tokenIdent:
		return tree.Identifier
	case _tokenExpr:
		return tree.Identifier
	}
	return tree.Virtual
}

// IsValueNode recognizes declarators (table names of DML statements).
func (Language) IsValueNode(stype tree.SType) bool {
	return stype == tree.SDeclarator
}

// Parse parses an SQL script into a parse tree, one statement after
// another.
func (Language) Parse(contents []byte, fileName string) (*parser.Builder, error) {
	t := transformer{b: parser.NewBuilder()}

	tokens := sqlparser.NewStringTokenizer(string(contents))
	var stmts []*parser.PNode
	for {
		stmt, err := sqlparser.ParseNext(tokens)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q: %v", fileName, err)
		}
		stmts = append(stmts, t.statement(stmt))
		t.line++
	}

	t.b.SetRoot(t.b.AddNode(stmts, tree.STranslationUnit))
	return t.b, nil
}

// transformer carries the builder and the layout cursor.
type transformer struct {
	b    *parser.Builder
	line int
	col  int
}

// leaf emits one leaf at the cursor and advances it.
func (t *transformer) leaf(label string, token int, stype tree.SType) *parser.PNode {
	n := t.b.AddLeaf(label, t.line+1, t.col+1, token, stype)
	t.col += len(label) + 1
	return n
}

// statement transforms one statement, resetting the column cursor.
func (t *transformer) statement(stmt sqlparser.Statement) *parser.PNode {
	t.col = 0
	switch x := stmt.(type) {
	case *sqlparser.Select:
		return t.selectStmt(x)
	case *sqlparser.Insert:
		return t.insertStmt(x)
	case *sqlparser.Update:
		return t.updateStmt(x)
	case *sqlparser.Delete:
		return t.deleteStmt(x)
	default:
		return t.genericStmt(stmt)
	}
}

// selectStmt lays out a select statement clause by clause.
func (t *transformer) selectStmt(x *sqlparser.Select) *parser.PNode {
	children := []*parser.PNode{t.leaf("select", _tokenKeyword, tree.SNone)}

	var exprs []*parser.PNode
	for _, se := range x.SelectExprs {
		exprs = append(exprs, t.exprLeaf(se))
	}
	children = append(children, t.b.AddNode(exprs, tree.SArgumentList))

	children = append(children, t.leaf("from", _tokenKeyword, tree.SNone))
	var tables []*parser.PNode
	for i, te := range x.From {
		n := t.exprLeaf(te)
		if i == 0 {
			n.Stype = tree.SDeclarator
		}
		tables = append(tables, n)
	}
	children = append(children, t.b.AddNode(tables, tree.SArgumentList))

	if x.Where != nil {
		children = append(children, t.clause("where", x.Where.Expr))
	}
	if len(x.GroupBy) > 0 {
		children = append(children, t.clause("group by", x.GroupBy))
	}
	if x.Having != nil {
		children = append(children, t.clause("having", x.Having.Expr))
	}
	if len(x.OrderBy) > 0 {
		children = append(children, t.clause("order by", x.OrderBy))
	}
	if x.Limit != nil {
		children = append(children, t.clause("limit", x.Limit))
	}
	return t.b.AddNode(children, tree.SExprStatement)
}

// insertStmt lays out an insert statement.
func (t *transformer) insertStmt(x *sqlparser.Insert) *parser.PNode {
	children := []*parser.PNode{t.leaf("insert into", _tokenKeyword, tree.SNone)}
	table := t.leaf(sqlparser.String(x.Table), _tokenIdent, tree.SDeclarator)
	children = append(children, table)
	if len(x.Columns) > 0 {
		children = append(children, t.exprLeaf(x.Columns))
	}
	children = append(children, t.exprLeaf(x.Rows))
	return t.b.AddNode(children, tree.SExprStatement)
}

// updateStmt lays out an update statement.
func (t *transformer) updateStmt(x *sqlparser.Update) *parser.PNode {
	children := []*parser.PNode{t.leaf("update", _tokenKeyword, tree.SNone)}
	table := t.leaf(sqlparser.String(x.TableExprs), _tokenIdent, tree.SDeclarator)
	children = append(children, table)

	children = append(children, t.leaf("set", _tokenKeyword, tree.SNone))
	var exprs []*parser.PNode
	for _, ue := range x.Exprs {
		exprs = append(exprs, t.exprLeaf(ue))
	}
	children = append(children, t.b.AddNode(exprs, tree.SArgumentList))

	if x.Where != nil {
		children = append(children, t.clause("where", x.Where.Expr))
	}
	if len(x.OrderBy) > 0 {
		children = append(children, t.clause("order by", x.OrderBy))
	}
	if x.Limit != nil {
		children = append(children, t.clause("limit", x.Limit))
	}
	return t.b.AddNode(children, tree.SExprStatement)
}

// deleteStmt lays out a delete statement.
func (t *transformer) deleteStmt(x *sqlparser.Delete) *parser.PNode {
	children := []*parser.PNode{t.leaf("delete from", _tokenKeyword, tree.SNone)}
	table := t.leaf(sqlparser.String(x.TableExprs), _tokenIdent, tree.SDeclarator)
	children = append(children, table)
	if x.Where != nil {
		children = append(children, t.clause("where", x.Where.Expr))
	}
	return t.b.AddNode(children, tree.SExprStatement)
}

// genericStmt lays out any other statement as its canonical token run.
func (t *transformer) genericStmt(stmt sqlparser.Statement) *parser.PNode {
	var children []*parser.PNode
	for i, word := range strings.Fields(sqlparser.String(stmt)) {
		token := _tokenIdent
		if i == 0 {
			token = _tokenKeyword
		}
		children = append(children, t.leaf(word, token, tree.SNone))
	}
	return t.b.AddNode(children, tree.SExprStatement)
}

// clause emits a keyword plus its canonicalized expression.
func (t *transformer) clause(keyword string, node sqlparser.SQLNode) *parser.PNode {
	children := []*parser.PNode{
		t.leaf(keyword, _tokenKeyword, tree.SNone),
		t.exprLeaf(node),
	}
	return t.b.AddNode(children, tree.SExpression)
}

// exprLeaf emits a canonicalized expression as a single leaf.
func (t *transformer) exprLeaf(node sqlparser.SQLNode) *parser.PNode {
	return t.leaf(sqlparser.String(node), _tokenExpr, tree.SNone)
}
