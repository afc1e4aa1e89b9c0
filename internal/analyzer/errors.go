package analyzer

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by StructuralError through errors.Is.
var (
	ErrNotASourceUnit         = errors.New("AST node not of type SourceUnit")
	ErrUnknownDeclarationKind = errors.New("invalid contract kind")
	ErrUnknownVisibility      = errors.New("invalid visibility")
	ErrUnknownTypeNameKind    = errors.New("invalid type name")
)

// StructuralError reports an AST shape the analyzer does not support. It
// aborts the whole parse.
type StructuralError struct {
	Kind       error  // one of the Err* sentinels
	Value      string // offending value
	SourceFile string
}

func (e *StructuralError) Error() string {
	msg := fmt.Sprintf("%v %q", e.Kind, e.Value)
	if e.SourceFile != "" {
		msg += " in " + e.SourceFile
	}
	return msg
}

func (e *StructuralError) Unwrap() error {
	return e.Kind
}
