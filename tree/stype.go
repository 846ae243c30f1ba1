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

// SType is the structural (semantic) kind of a node. The values form a
// shared vocabulary that every language front end maps its grammar onto;
// not every language uses every value.
type SType uint8

const (
	// SNone marks nodes without a structural kind (plain tokens).
	SNone SType = iota
	// STranslationUnit is the root of a file.
	STranslationUnit
	// SDeclaration is a declaration of any kind.
	SDeclaration
	// SFunctionDeclaration is a function prototype.
	SFunctionDeclaration
	// SFunctionDefinition is a function with a body.
	SFunctionDefinition
	// SComment is a comment.
	SComment
	// SDirective is a preprocessor-like directive.
	SDirective
	// SMacro is a macro definition or invocation.
	SMacro
	// SCompoundStatement is a braced block.
	SCompoundStatement
	// SSeparator is a decorative separator token.
	SSeparator
	// SPunctuation is decorative punctuation.
	SPunctuation
	// SStatements is a sequence of statements.
	SStatements
	// SExprStatement is an expression statement.
	SExprStatement
	// SIfStmt, SIfCond, SIfThen and SIfElse describe conditionals.
	SIfStmt
	SIfCond
	SIfThen
	SIfElse
	// SWhileStmt, SDoWhileStmt and SWhileCond describe loops.
	SWhileStmt
	SDoWhileStmt
	SWhileCond
	// SForStmt and SForHead describe for loops.
	SForStmt
	SForHead
	// SLabelStmt is a labeled statement.
	SLabelStmt
	// SExpression is an expression of unspecified shape.
	SExpression
	// SDeclarator is the named part of a declaration.
	SDeclarator
	// SInitializer, SInitializerList and SInitializerElement describe
	// initialization.
	SInitializer
	SInitializerList
	SInitializerElement
	// SSpecifiers is a run of declaration specifiers.
	SSpecifiers
	// SWithInitializer and SWithoutInitializer distinguish declarator
	// forms.
	SWithInitializer
	SWithoutInitializer
	// SSwitchStmt, SGotoStmt, SContinueStmt and SBreakStmt are the
	// remaining statement kinds.
	SSwitchStmt
	SGotoStmt
	SContinueStmt
	SBreakStmt
	// SReturnValueStmt and SReturnNothingStmt distinguish return forms.
	SReturnValueStmt
	SReturnNothingStmt
	// SArgumentList and SArgument describe call arguments.
	SArgumentList
	SArgument
	// SParameterList and SParameter describe declared parameters.
	SParameterList
	SParameter
	// SCallExpr, SAssignmentExpr, SConditionExpr, SComparisonExpr and
	// SAdditiveExpr are the expression kinds the matchers care about.
	SCallExpr
	SAssignmentExpr
	SConditionExpr
	SComparisonExpr
	SAdditiveExpr
	// SPointerDecl and SDirectDeclarator describe declarator shapes.
	SPointerDecl
	SDirectDeclarator
	// STemporaryContainer groups siblings on behalf of its parent and
	// never survives into output.
	STemporaryContainer
	// SBundle and SBundleComma group comma-separated declarations.
	SBundle
	SBundleComma

	// stypeCount is the number of SType values; used for table sizing.
	stypeCount
)

// _stypeNames maps SType values to their string forms.
var _stypeNames = [stypeCount]string{
	SNone:               "None",
	STranslationUnit:    "TranslationUnit",
	SDeclaration:        "Declaration",
	SFunctionDeclaration: "FunctionDeclaration",
	SFunctionDefinition: "FunctionDefinition",
	SComment:            "Comment",
	SDirective:          "Directive",
	SMacro:              "Macro",
	SCompoundStatement:  "CompoundStatement",
	SSeparator:          "Separator",
	SPunctuation:        "Punctuation",
	SStatements:         "Statements",
	SExprStatement:      "ExprStatement",
	SIfStmt:             "IfStmt",
	SIfCond:             "IfCond",
	SIfThen:             "IfThen",
	SIfElse:             "IfElse",
	SWhileStmt:          "WhileStmt",
	SDoWhileStmt:        "DoWhileStmt",
	SWhileCond:          "WhileCond",
	SForStmt:            "ForStmt",
	SForHead:            "ForHead",
	SLabelStmt:          "LabelStmt",
	SExpression:         "Expression",
	SDeclarator:         "Declarator",
	SInitializer:        "Initializer",
	SInitializerList:    "InitializerList",
	SInitializerElement: "InitializerElement",
	SSpecifiers:         "Specifiers",
	SWithInitializer:    "WithInitializer",
	SWithoutInitializer: "WithoutInitializer",
	SSwitchStmt:         "SwitchStmt",
	SGotoStmt:           "GotoStmt",
	SContinueStmt:       "ContinueStmt",
	SBreakStmt:          "BreakStmt",
	SReturnValueStmt:    "ReturnValueStmt",
	SReturnNothingStmt:  "ReturnNothingStmt",
	SArgumentList:       "ArgumentList",
	SArgument:           "Argument",
	SParameterList:      "ParameterList",
	SParameter:          "Parameter",
	SCallExpr:           "CallExpr",
	SAssignmentExpr:     "AssignmentExpr",
	SConditionExpr:      "ConditionExpr",
	SComparisonExpr:     "ComparisonExpr",
	SAdditiveExpr:       "AdditiveExpr",
	SPointerDecl:        "PointerDecl",
	SDirectDeclarator:   "DirectDeclarator",
	STemporaryContainer: "TemporaryContainer",
	SBundle:             "Bundle",
	SBundleComma:        "BundleComma",
}

// String stringifies an SType value. Unhandled values indicate a
// programming error and abort.
func (s SType) String() string {
	if int(s) >= len(_stypeNames) || _stypeNames[s] == "" {
		panic("unhandled stype value")
	}
	return _stypeNames[s]
}
