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

// Package protobuf is the .proto language front end, built on
// go-protoparser. Every element of the proto AST carries a position in
// its Meta field, which maps directly onto the parse-tree contract.
package protobuf

import (
	"bytes"
	"fmt"

	protoparser "github.com/yoheimuta/go-protoparser/v4"
	pp "github.com/yoheimuta/go-protoparser/v4/parser"
	"github.com/yoheimuta/go-protoparser/v4/parser/meta"

	"syndiff/lang"
	"syndiff/parser"
	"syndiff/tree"
)

// Token identifiers of the proto token set.
const (
	_tokenNone = iota
	_tokenKeyword
	_tokenIdent
	_tokenType
	_tokenString
	_tokenNumber
	_tokenComment
)

// Language is the protobuf front end.
type Language struct {
	lang.Base
}

func init() {
	lang.Register(Language{})
}

// Name returns the name of the language.
func (Language) Name() string {
	return "protobuf"
}

// Extensions returns the file suffixes this language claims.
func (Language) Extensions() []string {
	return []string{".proto"}
}

// MapToken maps a proto token identifier to a token category.
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
	case _tokenComment:
		return tree.Comment
	}
	return tree.Virtual
}

// IsValueNode recognizes declarators (message, enum, service, field
// names).
func (Language) IsValueNode(stype tree.SType) bool {
	return stype == tree.SDeclarator
}

// IsLayerBreak pushes message and service bodies one level deeper.
func (Language) IsLayerBreak(stype tree.SType) bool {
	return stype == tree.SCompoundStatement
}

// Parse parses .proto contents into a parse tree.
func (Language) Parse(contents []byte, fileName string) (*parser.Builder, error) {
	proto, err := protoparser.Parse(bytes.NewReader(contents))
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q: %v", fileName, err)
	}

	t := transformer{b: parser.NewBuilder()}
	var children []*parser.PNode
	if proto.Syntax != nil {
		children = append(children, t.syntaxNode(proto.Syntax))
	}
	children = append(children, t.visitees(proto.ProtoBody)...)
	t.b.SetRoot(t.b.AddNode(children, tree.STranslationUnit))
	return t.b, nil
}

// transformer carries the builder through the AST walk.
type transformer struct {
	b *parser.Builder
}

// leafAt creates a spelled leaf at a meta position.
func (t *transformer) leafAt(label string, pos meta.Position, token int, stype tree.SType) *parser.PNode {
	return t.b.AddLeaf(label, pos.Line, pos.Column, token, stype)
}

// visitees transforms a body of AST elements.
func (t *transformer) visitees(body []pp.Visitee) []*parser.PNode {
	var nodes []*parser.PNode
	for _, v := range body {
		if n := t.visitee(v); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// visitee transforms one AST element.
func (t *transformer) visitee(v pp.Visitee) *parser.PNode {
	switch x := v.(type) {
	case *pp.Package:
		return t.declaration(x.Meta.Pos, "package", x.Name)
	case *pp.Import:
		return t.declaration(x.Meta.Pos, "import", x.Location)
	case *pp.Option:
		return t.declaration(x.Meta.Pos, "option", x.OptionName, x.Constant)
	case *pp.Message:
		return t.namedBlock(x.Meta.Pos, "message", x.MessageName, x.MessageBody)
	case *pp.Enum:
		return t.namedBlock(x.Meta.Pos, "enum", x.EnumName, x.EnumBody)
	case *pp.Service:
		return t.namedBlock(x.Meta.Pos, "service", x.ServiceName, x.ServiceBody)
	case *pp.Field:
		return t.fieldNode(x)
	case *pp.EnumField:
		pos := x.Meta.Pos
		children := []*parser.PNode{
			t.leafAt(x.Ident, pos, _tokenIdent, tree.SDeclarator),
			t.leafAt(x.Number, pos, _tokenNumber, tree.SNone),
		}
		return t.b.AddNode(children, tree.SDeclaration)
	case *pp.RPC:
		return t.rpcNode(x)
	case *pp.Oneof:
		var fields []pp.Visitee
		for _, f := range x.OneofFields {
			fields = append(fields, f)
		}
		return t.namedBlock(x.Meta.Pos, "oneof", x.OneofName, fields)
	case *pp.OneofField:
		return t.oneofFieldNode(x)
	case *pp.Comment:
		return t.leafAt(x.Raw, x.Meta.Pos, _tokenComment, tree.SComment)
	case *pp.EmptyStatement:
		return nil
	}
	return nil
}

// declaration emits a one-line directive: keyword plus spelled parts,
// the first of which is the declarator.
func (t *transformer) declaration(pos meta.Position, keyword string, parts ...string) *parser.PNode {
	children := []*parser.PNode{t.leafAt(keyword, pos, _tokenKeyword, tree.SNone)}
	col := pos.Column + len(keyword) + 1
	for i, part := range parts {
		if part == "" {
			continue
		}
		stype := tree.SNone
		if i == 0 {
			stype = tree.SDeclarator
		}
		token := _tokenIdent
		if part[0] == '"' || part[0] == '\'' {
			token = _tokenString
		}
		children = append(children, t.b.AddLeaf(part, pos.Line, col, token, stype))
		col += len(part) + 1
	}
	return t.b.AddNode(children, tree.SDeclaration)
}

// namedBlock emits a named block: keyword, name declarator and a body
// one layer deeper.
func (t *transformer) namedBlock(pos meta.Position, keyword, name string, body []pp.Visitee) *parser.PNode {
	children := []*parser.PNode{
		t.leafAt(keyword, pos, _tokenKeyword, tree.SNone),
		t.b.AddLeaf(name, pos.Line, pos.Column+len(keyword)+1, _tokenIdent, tree.SDeclarator),
		t.b.AddNode(t.visitees(body), tree.SCompoundStatement),
	}
	return t.b.AddNode(children, tree.SFunctionDefinition)
}

// fieldNode emits a message field declaration.
func (t *transformer) fieldNode(x *pp.Field) *parser.PNode {
	pos := x.Meta.Pos
	col := pos.Column
	var children []*parser.PNode
	if x.IsRepeated {
		children = append(children, t.b.AddLeaf("repeated", pos.Line, col, _tokenKeyword, tree.SNone))
		col += len("repeated") + 1
	}
	if x.IsOptional {
		children = append(children, t.b.AddLeaf("optional", pos.Line, col, _tokenKeyword, tree.SNone))
		col += len("optional") + 1
	}
	children = append(children, t.b.AddLeaf(x.Type, pos.Line, col, _tokenType, tree.SNone))
	col += len(x.Type) + 1
	children = append(children, t.b.AddLeaf(x.FieldName, pos.Line, col, _tokenIdent, tree.SDeclarator))
	col += len(x.FieldName) + 1
	children = append(children, t.b.AddLeaf(x.FieldNumber, pos.Line, col, _tokenNumber, tree.SNone))
	return t.b.AddNode(children, tree.SDeclaration)
}

// oneofFieldNode emits a oneof member declaration.
func (t *transformer) oneofFieldNode(x *pp.OneofField) *parser.PNode {
	pos := x.Meta.Pos
	col := pos.Column
	children := []*parser.PNode{
		t.b.AddLeaf(x.Type, pos.Line, col, _tokenType, tree.SNone),
	}
	col += len(x.Type) + 1
	children = append(children, t.b.AddLeaf(x.FieldName, pos.Line, col, _tokenIdent, tree.SDeclarator))
	col += len(x.FieldName) + 1
	children = append(children, t.b.AddLeaf(x.FieldNumber, pos.Line, col, _tokenNumber, tree.SNone))
	return t.b.AddNode(children, tree.SDeclaration)
}

// rpcNode emits an rpc declaration with its request and response types.
func (t *transformer) rpcNode(x *pp.RPC) *parser.PNode {
	pos := x.Meta.Pos
	children := []*parser.PNode{
		t.leafAt("rpc", pos, _tokenKeyword, tree.SNone),
		t.b.AddLeaf(x.RPCName, pos.Line, pos.Column+len("rpc "), _tokenIdent, tree.SDeclarator),
	}
	col := pos.Column + len("rpc ") + len(x.RPCName) + 1
	if x.RPCRequest != nil {
		children = append(children,
			t.b.AddLeaf(x.RPCRequest.MessageType, pos.Line, col, _tokenType, tree.SNone))
		col += len(x.RPCRequest.MessageType) + 1
	}
	if x.RPCResponse != nil {
		children = append(children,
			t.b.AddLeaf(x.RPCResponse.MessageType, pos.Line, col, _tokenType, tree.SNone))
	}
	return t.b.AddNode(children, tree.SDeclaration)
}

// syntaxNode emits the syntax directive.
func (t *transformer) syntaxNode(x *pp.Syntax) *parser.PNode {
	return t.declaration(x.Meta.Pos, "syntax", x.ProtobufVersion)
}
