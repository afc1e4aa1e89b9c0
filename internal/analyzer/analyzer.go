package analyzer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/olehluchkiv/solclass/internal/ast"
)

// Analyze builds one class model per contract, interface or library declared
// at the top level of root, in declaration order. Imports are not followed.
func Analyze(root ast.Node, sourceFile string, logger *slog.Logger) ([]*ClassModel, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	unit, ok := root.(*ast.SourceUnit)
	if !ok {
		return nil, &StructuralError{Kind: ErrNotASourceUnit, Value: ast.KindOf(root), SourceFile: sourceFile}
	}
	logger = logger.With("component", "analyzer", "source", sourceFile)

	classes := make([]*ClassModel, 0, len(unit.Children))
	for _, child := range unit.Children {
		switch n := child.(type) {
		case *ast.ContractDefinition:
			logger.Debug("adding contract", "name", n.Name, "kind", n.Kind)
			b := newClassBuilder(NewClassModel(n.Name, sourceFile), logger)
			if err := b.parseContract(n); err != nil {
				return nil, withSourceFile(err, sourceFile)
			}
			classes = append(classes, b.class)
		case *ast.ImportDirective:
			logger.Debug("skipping import", "path", n.Path)
		default:
			logger.Debug("ignoring top-level node", "kind", ast.KindOf(child))
		}
	}

	logger.Info("classes built", "classes", len(classes))
	return classes, nil
}

// AnalyzeJSON decodes a JSON syntax tree and analyzes it.
func AnalyzeJSON(data []byte, sourceFile string, logger *slog.Logger) ([]*ClassModel, error) {
	root, err := ast.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sourceFile, err)
	}
	return Analyze(root, sourceFile, logger)
}

func withSourceFile(err error, sourceFile string) error {
	var se *StructuralError
	if errors.As(err, &se) && se.SourceFile == "" {
		se.SourceFile = sourceFile
	}
	return err
}

// classBuilder owns the class model under construction. Every classifier and
// the association walker mutate b.class directly.
type classBuilder struct {
	class  *ClassModel
	logger *slog.Logger
}

func newClassBuilder(class *ClassModel, logger *slog.Logger) *classBuilder {
	return &classBuilder{
		class:  class,
		logger: logger.With("contract", class.Name),
	}
}

func (b *classBuilder) parseContract(n *ast.ContractDefinition) error {
	stereotype, err := parseContractKind(n.Kind)
	if err != nil {
		return err
	}
	b.class.Stereotype = stereotype

	for _, base := range n.BaseContracts {
		name := ""
		if base != nil && base.BaseName != nil {
			name = base.BaseName.NamePath
		}
		b.class.AddAssociation(Association{
			ReferenceType:   ReferenceStorage,
			TargetClassName: name,
			Realization:     true,
		})
	}

	for _, sub := range n.SubNodes {
		if err := b.parseSubNode(sub); err != nil {
			return err
		}
	}
	return nil
}

// markAbstract records that the class declares a function without a body.
// Interfaces stay interfaces.
func (b *classBuilder) markAbstract() {
	if b.class.Stereotype != ClassInterface {
		b.class.Stereotype = ClassAbstract
	}
}

func parseContractKind(kind string) (ClassStereotype, error) {
	switch kind {
	case "contract":
		return ClassNone, nil
	case "interface":
		return ClassInterface, nil
	case "library":
		return ClassLibrary, nil
	}
	return ClassNone, &StructuralError{Kind: ErrUnknownDeclarationKind, Value: kind}
}

func parseVisibility(visibility string) (Visibility, error) {
	switch visibility {
	case "default", "public":
		return VisibilityPublic, nil
	case "external":
		return VisibilityExternal, nil
	case "internal":
		return VisibilityInternal, nil
	case "private":
		return VisibilityPrivate, nil
	}
	return VisibilityNone, &StructuralError{Kind: ErrUnknownVisibility, Value: visibility}
}
