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

// Type is the category of a leaf token. The enumeration is ordered: two
// types below the NonInterchangeable watermark may still be matched across
// categories after canonization, while types at or above it only ever match
// nodes of exactly the same type.
type Type uint8

const (
	// Virtual is for synthetic nodes without a token of their own.
	Virtual Type = iota
	// Function is for function names.
	Function
	// UserType is for user-defined type names.
	UserType
	// Identifier is for plain identifiers.
	Identifier
	// Jump is for break/continue/goto-like tokens.
	Jump
	// Specifier is for storage/qualifier specifiers.
	Specifier
	// CoreType is for built-in type keywords.
	CoreType
	// LeftBracket is for opening brackets of any kind.
	LeftBracket
	// RightBracket is for closing brackets of any kind.
	RightBracket
	// Comparison is for relational and equality operators.
	Comparison
	// Operator is for arithmetic and bitwise operators.
	Operator
	// LogicalOperator is for short-circuit logical operators.
	LogicalOperator
	// Assignment is for assignment operators.
	Assignment
	// Directive is for preprocessor-like directives.
	Directive
	// Comment is for comments.
	Comment
	// StrConstant, IntConstant, FPConstant and CharConstant are the
	// literal kinds; canonization folds them together.
	StrConstant
	IntConstant
	FPConstant
	CharConstant

	// NonInterchangeable is a watermark, not a real type: all types below
	// it may be interchangeable after canonization, all types above it
	// are not.
	NonInterchangeable

	// Keyword is for structural keywords.
	Keyword
	// Other is for punctuation and everything else.
	Other
)

// Canonize maps all constant kinds onto a single category, leaving every
// other type unchanged. Matching operates on canonized types.
func Canonize(t Type) Type {
	switch t {
	case StrConstant, IntConstant, FPConstant, CharConstant:
		return StrConstant
	default:
		return t
	}
}

// String stringifies a type value.
func (t Type) String() string {
	switch t {
	case Virtual:
		return "Virtual"
	case Function:
		return "Function"
	case UserType:
		return "UserType"
	case Identifier:
		return "Identifier"
	case Jump:
		return "Jump"
	case Specifier:
		return "Specifier"
	case CoreType:
		return "CoreType"
	case LeftBracket:
		return "LeftBracket"
	case RightBracket:
		return "RightBracket"
	case Comparison:
		return "Comparison"
	case Operator:
		return "Operator"
	case LogicalOperator:
		return "LogicalOperator"
	case Assignment:
		return "Assignment"
	case Directive:
		return "Directive"
	case Comment:
		return "Comment"
	case StrConstant:
		return "StrConstant"
	case IntConstant:
		return "IntConstant"
	case FPConstant:
		return "FPConstant"
	case CharConstant:
		return "CharConstant"
	case NonInterchangeable:
		return "NonInterchangeable"
	case Keyword:
		return "Keyword"
	case Other:
		return "Other"
	}
	panic("unhandled type value")
}
