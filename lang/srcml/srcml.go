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

// Package srcml is the C-family front end. It consumes srcml XML (the
// output of the external srcml tool, which embeds the original source
// text verbatim inside markup elements) and transforms it into a parse
// tree: elements become internal nodes through a tag table, character
// data becomes spelled leaves, and the source position is recovered by a
// cursor running over the embedded text.
package srcml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode"

	"syndiff/lang"
	"syndiff/parser"
	"syndiff/tree"
)

// Token identifiers of the C-family token set.
const (
	_tokenNone = iota
	_tokenKeyword
	_tokenIdent
	_tokenUserType
	_tokenCoreType
	_tokenFunction
	_tokenString
	_tokenNumber
	_tokenChar
	_tokenOperator
	_tokenComparison
	_tokenAssignment
	_tokenLogical
	_tokenComment
	_tokenDirective
	_tokenLeftBracket
	_tokenRightBracket
	_tokenPunct
)

// _tagMap maps srcml element names onto the structural vocabulary.
// Unknown elements become temporary containers and dissolve during
// layering.
var _tagMap = map[string]tree.SType{
	"unit":           tree.STranslationUnit,
	"function":       tree.SFunctionDefinition,
	"function_decl":  tree.SFunctionDeclaration,
	"decl_stmt":      tree.SDeclaration,
	"decl":           tree.SDeclarator,
	"expr_stmt":      tree.SExprStatement,
	"expr":           tree.SExpression,
	"if_stmt":        tree.SIfStmt,
	"condition":      tree.SIfCond,
	"then":           tree.SIfThen,
	"else":           tree.SIfElse,
	"while":          tree.SWhileStmt,
	"do":             tree.SDoWhileStmt,
	"for":            tree.SForStmt,
	"control":        tree.SForHead,
	"block":          tree.SCompoundStatement,
	"block_content":  tree.SStatements,
	"parameter_list": tree.SParameterList,
	"parameter":      tree.SParameter,
	"argument_list":  tree.SArgumentList,
	"argument":       tree.SArgument,
	"call":           tree.SCallExpr,
	"comment":        tree.SComment,
	"type":           tree.SSpecifiers,
	"init":           tree.SInitializer,
	"return":         tree.SReturnValueStmt,
	"break":          tree.SBreakStmt,
	"continue":       tree.SContinueStmt,
	"goto":           tree.SGotoStmt,
	"switch":         tree.SSwitchStmt,
	"case":           tree.SLabelStmt,
	"default":        tree.SLabelStmt,
	"label":          tree.SLabelStmt,
	"struct":         tree.SDeclaration,
	"union":          tree.SDeclaration,
	"enum":           tree.SDeclaration,
	"typedef":        tree.SDeclaration,
	"include":        tree.SDirective,
	"define":         tree.SDirective,
	"directive":      tree.SDirective,
}

// _keywords is the C keyword set; keyword leaves are never
// interchangeable with identifiers.
var _keywords = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true,
	"else": true, "enum": true, "extern": true, "float": true, "for": true,
	"goto": true, "if": true, "inline": true, "int": true, "long": true,
	"register": true, "restrict": true, "return": true, "short": true,
	"signed": true, "sizeof": true, "static": true, "struct": true,
	"switch": true, "typedef": true, "union": true, "unsigned": true,
	"void": true, "volatile": true, "while": true,
}

// _coreTypes are the built-in type keywords, interchangeable among
// themselves.
var _coreTypes = map[string]bool{
	"void": true, "char": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "signed": true, "unsigned": true,
}

// Language is the srcml C-family front end.
type Language struct {
	lang.Base
}

func init() {
	lang.Register(Language{})
}

// Name returns the name of the language.
func (Language) Name() string {
	return "srcml"
}

// Extensions returns the file suffixes this language claims.
func (Language) Extensions() []string {
	return []string{".xml", ".srcml"}
}

// MapToken maps a C-family token identifier to a token category.
func (Language) MapToken(token int) tree.Type {
	switch token {
	case _tokenKeyword:
		return tree.Keyword
	case _tokenIdent:
		return tree.Identifier
	case _tokenUserType:
		return tree.UserType
	case _tokenCoreType:
		return tree.CoreType
	case _tokenFunction:
		return tree.Function
	case _tokenString:
		return tree.StrConstant
	case _tokenNumber:
		return tree.IntConstant
	case _tokenChar:
		return tree.CharConstant
	case _tokenOperator:
		return tree.Operator
	case _tokenComparison:
		return tree.Comparison
	case _tokenAssignment:
		return tree.Assignment
	case _tokenLogical:
		return tree.LogicalOperator
	case _tokenComment:
		return tree.Comment
	case _tokenDirective:
		return tree.Directive
	case _tokenLeftBracket:
		return tree.LeftBracket
	case _tokenRightBracket:
		return tree.RightBracket
	case _tokenPunct:
		return tree.Other
	}
	return tree.Virtual
}

// IsValueNode recognizes declarators.
func (Language) IsValueNode(stype tree.SType) bool {
	return stype == tree.SDeclarator
}

// IsLayerBreak pushes function bodies one level deeper.
func (Language) IsLayerBreak(stype tree.SType) bool {
	return stype == tree.SCompoundStatement
}

// CanBeFlattened dissolves expression wrappers on deeper levels, the way
// single-element groupings add nothing to matching.
func (Language) CanBeFlattened(parent, child *tree.Node, level int) bool {
	switch level {
	case 0:
		return child.Stype == tree.SSpecifiers
	case 1:
		return child.Stype == tree.SExpression && len(child.Children) == 1
	default:
		return child.Stype == tree.SArgument || child.Stype == tree.SInitializer
	}
}

// ShouldDropLeadingWS trims comment labels for comparison.
func (Language) ShouldDropLeadingWS(stype tree.SType) bool {
	return stype == tree.SComment
}

// Parse transforms a srcml XML document into a parse tree.
func (Language) Parse(contents []byte, fileName string) (*parser.Builder, error) {
	dec := xml.NewDecoder(bytes.NewReader(contents))

	t := &transformer{b: parser.NewBuilder(), line: 1, col: 1}
	root, err := t.document(dec)
	if err != nil {
		return nil, fmt.Errorf("cannot transform %q: %v", fileName, err)
	}
	t.b.SetRoot(root)
	return t.b, nil
}

// transformer walks the XML token stream keeping a cursor over the
// embedded source text.
type transformer struct {
	b    *parser.Builder
	line int
	col  int
}

// document consumes the stream up to the root element and transforms
// it.
func (t *transformer) document(dec *xml.Decoder) (*parser.PNode, error) {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return t.element(dec, start)
		}
	}
}

// element transforms one element and its content.
func (t *transformer) element(dec *xml.Decoder, start xml.StartElement) (*parser.PNode, error) {
	tag := start.Name.Local
	stype, known := _tagMap[tag]
	if !known {
		stype = tree.STemporaryContainer
	}

	startLine, startCol := t.line, t.col
	var children []*parser.PNode
	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch x := tok.(type) {
		case xml.StartElement:
			child, err := t.element(dec, x)
			if err != nil {
				return nil, err
			}
			if child != nil {
				children = append(children, child)
			}
		case xml.CharData:
			text.Write(x)
			if stype == tree.SComment || stype == tree.SDirective {
				t.advance(string(x))
			} else {
				children = append(children, t.textLeaves(string(x), tag)...)
			}
		case xml.EndElement:
			// comments and directives stay whole: their spelling is a
			// single multi-line leaf
			if stype == tree.SComment || stype == tree.SDirective {
				token := _tokenComment
				if stype == tree.SDirective {
					token = _tokenDirective
				}
				return t.b.AddLeaf(text.String(), startLine, startCol, token, stype), nil
			}
			return t.b.AddNode(children, stype), nil
		}
	}
}

// textLeaves splits character data into spelled tokens, advancing the
// cursor over whitespace and token text alike.
func (t *transformer) textLeaves(data, parentTag string) []*parser.PNode {
	var leaves []*parser.PNode
	i := 0
	for i < len(data) {
		r := data[i]
		if r == '\n' {
			t.line++
			t.col = 1
			i++
			continue
		}
		if r == ' ' || r == '\t' || r == '\r' {
			t.col++
			i++
			continue
		}

		j := i
		for j < len(data) && !unicode.IsSpace(rune(data[j])) {
			j++
		}
		word := data[i:j]
		leaf := t.b.AddLeaf(word, t.line, t.col, determineToken(word, parentTag), wordStype(word))
		leaves = append(leaves, leaf)
		t.col += j - i
		i = j
	}
	return leaves
}

// advance moves the cursor over text without emitting leaves.
func (t *transformer) advance(data string) {
	for i := 0; i < len(data); i++ {
		if data[i] == '\n' {
			t.line++
			t.col = 1
		} else {
			t.col++
		}
	}
}

// wordStype classifies decoration: separators and punctuation become
// satellites during layering.
func wordStype(word string) tree.SType {
	switch word {
	case ";", ",":
		return tree.SSeparator
	case "(", ")", "{", "}", "[", "]":
		return tree.SPunctuation
	}
	return tree.SNone
}

// determineToken classifies a spelled token by its text and the element
// it appears in.
func determineToken(word, parentTag string) int {
	switch {
	case _coreTypes[word]:
		return _tokenCoreType
	case _keywords[word]:
		return _tokenKeyword
	case word == "(" || word == "{" || word == "[":
		return _tokenLeftBracket
	case word == ")" || word == "}" || word == "]":
		return _tokenRightBracket
	case word == "==" || word == "!=" || word == "<" || word == ">" ||
		word == "<=" || word == ">=":
		return _tokenComparison
	case word == "&&" || word == "||":
		return _tokenLogical
	case isOperatorWord(word) && strings.HasSuffix(word, "="):
		return _tokenAssignment
	case isOperatorWord(word):
		return _tokenOperator
	case word[0] == '"':
		return _tokenString
	case word[0] == '\'':
		return _tokenChar
	case word[0] >= '0' && word[0] <= '9':
		return _tokenNumber
	case parentTag == "type":
		return _tokenUserType
	case parentTag == "call":
		return _tokenFunction
	default:
		return _tokenIdent
	}
}

// isOperatorWord reports whether the word consists of operator
// characters only.
func isOperatorWord(word string) bool {
	for _, r := range word {
		if !strings.ContainsRune("+-*/%&|^~!<>=.?:", r) {
			return false
		}
	}
	return len(word) > 0
}
