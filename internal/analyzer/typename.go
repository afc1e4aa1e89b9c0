package analyzer

import (
	"fmt"

	"github.com/olehluchkiv/solclass/internal/ast"
)

// TypeString renders a type reference the way class diagrams label it.
// Parentheses and the mapping arrow are escaped for the diagram renderer.
func TypeString(tn ast.TypeName) (string, error) {
	switch t := tn.(type) {
	case *ast.ElementaryTypeName:
		return t.Name, nil
	case *ast.UserDefinedTypeName:
		return t.NamePath, nil
	case *ast.FunctionTypeName:
		return `FunctionTypeName\(\)`, nil
	case *ast.ArrayTypeName:
		base, err := TypeString(t.BaseTypeName)
		if err != nil {
			return "", err
		}
		return base + "[]", nil
	case *ast.Mapping:
		key, err := mappingKeyString(t.KeyType)
		if err != nil {
			return "", err
		}
		value, err := TypeString(t.ValueType)
		if err != nil {
			return "", err
		}
		return `mapping\(` + key + `=\>` + value + `\)`, nil
	case *ast.UnknownTypeName:
		return "", &StructuralError{Kind: ErrUnknownTypeNameKind, Value: t.Type}
	case nil:
		return "", &StructuralError{Kind: ErrUnknownTypeNameKind, Value: "<nil>"}
	}
	return "", &StructuralError{Kind: ErrUnknownTypeNameKind, Value: fmt.Sprintf("%T", tn)}
}

// Mapping keys are elementary in valid Solidity; user-defined value types and
// contracts are rendered through TypeString.
func mappingKeyString(tn ast.TypeName) (string, error) {
	if e, ok := tn.(*ast.ElementaryTypeName); ok {
		return e.Name, nil
	}
	return TypeString(tn)
}
