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

// Package thrift is the Thrift IDL front end, built on the thriftrw
// parser. The AST records only lines, so columns are synthesized by a
// layout cursor while leaves are emitted left to right.
package thrift

import (
	"fmt"
	"strconv"

	"go.uber.org/thriftrw/ast"
	"go.uber.org/thriftrw/idl"

	"syndiff/lang"
	"syndiff/parser"
	"syndiff/tree"
)

// Token identifiers of the Thrift token set.
const (
	_tokenNone = iota
	_tokenKeyword
	_tokenIdent
	_tokenType
	_tokenString
	_tokenNumber
)

// Language is the Thrift front end.
type Language struct {
	lang.Base
}

func init() {
	lang.Register(Language{})
}

// Name returns the name of the language.
func (Language) Name() string {
	return "thrift"
}

// Extensions returns the file suffixes this language claims.
func (Language) Extensions() []string {
	return []string{".thrift"}
}

// MapToken maps a Thrift token identifier to a token category.
func (Language) MapToken(token int) tree.Type {
	switch token {
	case _tokenKeyword:
		return tree.Keyword
	case _tokenIdent:
		return tree.Identifier
	case _tokenType:
		return tree.UserType
	case _tokenString:
		return tree.StrConstant
	case _tokenNumber:
		return tree.IntConstant
	}
	return tree.Virtual
}

// IsValueNode recognizes declarators (definition and field names).
func (Language) IsValueNode(stype tree.SType) bool {
	return stype == tree.SDeclarator
}

// IsLayerBreak pushes struct and service bodies one level deeper.
func (Language) IsLayerBreak(stype tree.SType) bool {
	return stype == tree.SCompoundStatement
}

// Parse parses Thrift contents into a parse tree.
func (Language) Parse(contents []byte, fileName string) (*parser.Builder, error) {
	program, err := idl.Parse(contents)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q: %v", fileName, err)
	}

	t := transformer{b: parser.NewBuilder()}
	var children []*parser.PNode
	for _, h := range program.Headers {
		if n := t.header(h); n != nil {
			children = append(children, n)
		}
	}
	for _, d := range program.Definitions {
		if n := t.definition(d); n != nil {
			children = append(children, n)
		}
	}
	t.b.SetRoot(t.b.AddNode(children, tree.STranslationUnit))
	return t.b, nil
}

// transformer carries the builder through the AST walk; the column cursor
// lives in row.
type transformer struct {
	b *parser.Builder
}

// row emits a run of leaves on one line, advancing a synthesized column
// cursor; declIdx marks the leaf recorded as the declarator, tokens
// carries the token id per leaf.
func (t *transformer) row(line int, declIdx int, labels []string, tokens []int) []*parser.PNode {
	col := 1
	var nodes []*parser.PNode
	for i, label := range labels {
		if label == "" {
			continue
		}
		stype := tree.SNone
		if i == declIdx {
			stype = tree.SDeclarator
		}
		nodes = append(nodes, t.b.AddLeaf(label, line, col, tokens[i], stype))
		col += len(label) + 1
	}
	return nodes
}

// header transforms an include or namespace header.
func (t *transformer) header(h ast.Header) *parser.PNode {
	switch x := h.(type) {
	case *ast.Include:
		children := t.row(x.Line, 1,
			[]string{"include", strconv.Quote(x.Path)},
			[]int{_tokenKeyword, _tokenString})
		return t.b.AddNode(children, tree.SDeclaration)
	case *ast.Namespace:
		children := t.row(x.Line, 2,
			[]string{"namespace", x.Scope, x.Name},
			[]int{_tokenKeyword, _tokenIdent, _tokenIdent})
		return t.b.AddNode(children, tree.SDeclaration)
	}
	return nil
}

// definition transforms a top-level definition.
func (t *transformer) definition(d ast.Definition) *parser.PNode {
	switch x := d.(type) {
	case *ast.Constant:
		children := t.row(x.Line, 2,
			[]string{"const", typeString(x.Type), x.Name, constString(x.Value)},
			[]int{_tokenKeyword, _tokenType, _tokenIdent, _tokenString})
		return t.b.AddNode(children, tree.SDeclaration)
	case *ast.Typedef:
		children := t.row(x.Line, 2,
			[]string{"typedef", typeString(x.Type), x.Name},
			[]int{_tokenKeyword, _tokenType, _tokenIdent})
		return t.b.AddNode(children, tree.SDeclaration)
	case *ast.Enum:
		var body []*parser.PNode
		for _, item := range x.Items {
			body = append(body, t.enumItem(item))
		}
		return t.namedBlock(x.Line, "enum", x.Name, body)
	case *ast.Struct:
		var body []*parser.PNode
		for _, f := range x.Fields {
			body = append(body, t.field(f))
		}
		return t.namedBlock(x.Line, structKeyword(x.Type), x.Name, body)
	case *ast.Service:
		var body []*parser.PNode
		for _, fn := range x.Functions {
			body = append(body, t.function(fn))
		}
		return t.namedBlock(x.Line, "service", x.Name, body)
	}
	return nil
}

// namedBlock emits a named definition with its body one layer deeper.
func (t *transformer) namedBlock(line int, keyword, name string, body []*parser.PNode) *parser.PNode {
	children := t.row(line, 1,
		[]string{keyword, name},
		[]int{_tokenKeyword, _tokenIdent})
	children = append(children, t.b.AddNode(body, tree.SCompoundStatement))
	return t.b.AddNode(children, tree.SFunctionDefinition)
}

// enumItem emits one enum member.
func (t *transformer) enumItem(item *ast.EnumItem) *parser.PNode {
	labels := []string{item.Name}
	tokens := []int{_tokenIdent}
	if item.Value != nil {
		labels = append(labels, strconv.Itoa(*item.Value))
		tokens = append(tokens, _tokenNumber)
	}
	return t.b.AddNode(t.row(item.Line, 0, labels, tokens), tree.SDeclaration)
}

// field emits one struct field or function parameter.
func (t *transformer) field(f *ast.Field) *parser.PNode {
	children := t.row(f.Line, 2,
		[]string{strconv.Itoa(f.ID) + ":", typeString(f.Type), f.Name},
		[]int{_tokenNumber, _tokenType, _tokenIdent})
	return t.b.AddNode(children, tree.SDeclaration)
}

// function emits one service function with its parameter list.
func (t *transformer) function(fn *ast.Function) *parser.PNode {
	returns := "void"
	if fn.ReturnType != nil {
		returns = typeString(fn.ReturnType)
	}
	children := t.row(fn.Line, 1,
		[]string{returns, fn.Name},
		[]int{_tokenType, _tokenIdent})
	var params []*parser.PNode
	for _, p := range fn.Parameters {
		params = append(params, t.field(p))
	}
	children = append(children, t.b.AddNode(params, tree.SParameterList))
	return t.b.AddNode(children, tree.SFunctionDefinition)
}

// structKeyword returns the keyword of a structure definition.
func structKeyword(st ast.StructureType) string {
	switch st {
	case ast.UnionType:
		return "union"
	case ast.ExceptionType:
		return "exception"
	default:
		return "struct"
	}
}

// typeString spells a type reference.
func typeString(t ast.Type) string {
	switch x := t.(type) {
	case ast.BaseType:
		return baseTypeName(x.ID)
	case ast.MapType:
		return "map<" + typeString(x.KeyType) + ", " + typeString(x.ValueType) + ">"
	case ast.ListType:
		return "list<" + typeString(x.ValueType) + ">"
	case ast.SetType:
		return "set<" + typeString(x.ValueType) + ">"
	case ast.TypeReference:
		return x.Name
	}
	return ""
}

// baseTypeName spells a base type.
func baseTypeName(id ast.BaseTypeID) string {
	switch id {
	case ast.BoolTypeID:
		return "bool"
	case ast.I8TypeID:
		return "i8"
	case ast.I16TypeID:
		return "i16"
	case ast.I32TypeID:
		return "i32"
	case ast.I64TypeID:
		return "i64"
	case ast.DoubleTypeID:
		return "double"
	case ast.StringTypeID:
		return "string"
	case ast.BinaryTypeID:
		return "binary"
	}
	return ""
}

// constString spells a constant value.
func constString(v ast.ConstantValue) string {
	switch x := v.(type) {
	case ast.ConstantInteger:
		return strconv.FormatInt(int64(x), 10)
	case ast.ConstantDouble:
		return strconv.FormatFloat(float64(x), 'g', -1, 64)
	case ast.ConstantString:
		return strconv.Quote(string(x))
	case ast.ConstantBoolean:
		return strconv.FormatBool(bool(x))
	case ast.ConstantReference:
		return x.Name
	}
	return ""
}
