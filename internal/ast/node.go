// Package ast models the Solidity syntax tree produced by the external
// contract-language parser. Node kinds form a closed set: every concrete
// node type implements the unexported marker method of Node.
package ast

import (
	"fmt"
	"strings"
)

// Node is any syntax tree node.
type Node interface {
	node()
}

// KindOf returns the parser's name for the kind of n, or "" for nil.
func KindOf(n Node) string {
	switch t := n.(type) {
	case nil:
		return ""
	case *Unknown:
		return t.Type
	case *UnknownTypeName:
		return t.Type
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}

// TypeName is a node that describes a type reference.
type TypeName interface {
	Node
	typeName()
}

// Statement is a node that may appear in a block's statement list.
type Statement interface {
	Node
	statement()
}

// SourceUnit is the root of a single parsed file.
type SourceUnit struct {
	Children []Node
}

// ImportDirective is a top-level import. It is never traversed.
type ImportDirective struct {
	Path string
}

// ContractDefinition declares a contract, interface or library.
type ContractDefinition struct {
	Name          string
	Kind          string // "contract", "interface" or "library"
	BaseContracts []*InheritanceSpecifier
	SubNodes      []Node
}

// InheritanceSpecifier names one base contract.
type InheritanceSpecifier struct {
	BaseName *UserDefinedTypeName
}

// StateVariableDeclaration groups the variables of one state declaration.
type StateVariableDeclaration struct {
	Variables []*VariableDeclaration
}

// UsingForDeclaration is `using Lib for T;`.
type UsingForDeclaration struct {
	LibraryName string
	TypeName    TypeName // nil for `using Lib for *;`
}

// FunctionDefinition covers constructors, fallbacks and ordinary functions.
type FunctionDefinition struct {
	Name             string
	Parameters       *ParameterList
	ReturnParameters *ParameterList // nil when the function returns nothing
	Body             *Block         // nil when the function has no implementation
	Visibility       string
	StateMutability  string
	IsConstructor    bool
}

// ModifierDefinition declares a function modifier.
type ModifierDefinition struct {
	Name       string
	Parameters *ParameterList
	Body       *Block
}

// EventDefinition declares an event.
type EventDefinition struct {
	Name       string
	Parameters *ParameterList
}

// StructDefinition declares a struct type.
type StructDefinition struct {
	Name    string
	Members []*VariableDeclaration
}

// EnumDefinition declares an enum type.
type EnumDefinition struct {
	Name    string
	Members []*EnumValue
}

// EnumValue is one member of an enum.
type EnumValue struct {
	Name string
}

// ParameterList wraps function, event and modifier parameters.
type ParameterList struct {
	Parameters []*Parameter
}

// Parameter is a single function, event or modifier parameter.
type Parameter struct {
	Name            string
	TypeName        TypeName
	StorageLocation string
	IsStateVar      bool
}

// VariableDeclaration is a state variable, struct member or local variable.
type VariableDeclaration struct {
	Name       string
	TypeName   TypeName // nil for `var` declarations
	Visibility string
	IsStateVar bool
}

// Block is a brace-delimited statement list.
type Block struct {
	Statements []Statement
}

// VariableDeclarationStatement declares local variables. Entries of Variables
// are nil for the elided slots of a tuple destructuring, e.g. `(a, , b) = f();`.
type VariableDeclarationStatement struct {
	Variables []*VariableDeclaration
}

// ForStatement is a for loop.
type ForStatement struct {
	Body Statement
}

// WhileStatement is a while loop.
type WhileStatement struct {
	Body Statement
}

// DoWhileStatement is a do-while loop.
type DoWhileStatement struct {
	Body Statement
}

// IfStatement is a conditional. FalseBody is nil when there is no else branch.
type IfStatement struct {
	TrueBody  Statement
	FalseBody Statement
}

// ElementaryTypeName is a built-in type such as uint256 or address.
type ElementaryTypeName struct {
	Name string
}

// UserDefinedTypeName references a contract, struct or enum, possibly
// qualified by a library or contract name (`Lib.Data`).
type UserDefinedTypeName struct {
	NamePath string
}

// ArrayTypeName is a fixed or dynamic array of BaseTypeName.
type ArrayTypeName struct {
	BaseTypeName TypeName
}

// Mapping is `mapping(KeyType => ValueType)`.
type Mapping struct {
	KeyType   TypeName
	ValueType TypeName
}

// FunctionTypeName is a function type used as a variable type.
type FunctionTypeName struct {
	ParameterTypes []*Parameter
	ReturnTypes    []*Parameter
}

// UnknownTypeName holds a type node of a kind this package does not model.
type UnknownTypeName struct {
	Type string
}

// Unknown holds any other node, e.g. expressions and statements that cannot
// contain declarations.
type Unknown struct {
	Type string
}

func (*SourceUnit) node()                   {}
func (*ImportDirective) node()              {}
func (*ContractDefinition) node()           {}
func (*InheritanceSpecifier) node()         {}
func (*StateVariableDeclaration) node()     {}
func (*UsingForDeclaration) node()          {}
func (*FunctionDefinition) node()           {}
func (*ModifierDefinition) node()           {}
func (*EventDefinition) node()              {}
func (*StructDefinition) node()             {}
func (*EnumDefinition) node()               {}
func (*EnumValue) node()                    {}
func (*ParameterList) node()                {}
func (*Parameter) node()                    {}
func (*VariableDeclaration) node()          {}
func (*Block) node()                        {}
func (*VariableDeclarationStatement) node() {}
func (*ForStatement) node()                 {}
func (*WhileStatement) node()               {}
func (*DoWhileStatement) node()             {}
func (*IfStatement) node()                  {}
func (*ElementaryTypeName) node()           {}
func (*UserDefinedTypeName) node()          {}
func (*ArrayTypeName) node()                {}
func (*Mapping) node()                      {}
func (*FunctionTypeName) node()             {}
func (*UnknownTypeName) node()              {}
func (*Unknown) node()                      {}

func (*ElementaryTypeName) typeName()  {}
func (*UserDefinedTypeName) typeName() {}
func (*ArrayTypeName) typeName()       {}
func (*Mapping) typeName()             {}
func (*FunctionTypeName) typeName()    {}
func (*UnknownTypeName) typeName()     {}

func (*Block) statement()                        {}
func (*VariableDeclarationStatement) statement() {}
func (*ForStatement) statement()                 {}
func (*WhileStatement) statement()               {}
func (*DoWhileStatement) statement()             {}
func (*IfStatement) statement()                  {}
func (*Unknown) statement()                      {}
