package analyzer

import (
	"github.com/olehluchkiv/solclass/internal/ast"
)

func (b *classBuilder) parseSubNode(sub ast.Node) error {
	switch n := sub.(type) {
	case *ast.StateVariableDeclaration:
		return b.addStateVariables(n)
	case *ast.UsingForDeclaration:
		// using-for always names a library
		b.class.AddAssociation(Association{
			ReferenceType:   ReferenceMemory,
			TargetClassName: n.LibraryName,
		})
		return nil
	case *ast.FunctionDefinition:
		return b.addFunction(n)
	case *ast.ModifierDefinition:
		return b.addModifier(n)
	case *ast.EventDefinition:
		return b.addEvent(n)
	case *ast.StructDefinition:
		return b.addStruct(n)
	case *ast.EnumDefinition:
		b.addEnum(n)
		return nil
	}
	b.logger.Debug("ignoring sub node", "kind", ast.KindOf(sub))
	return nil
}

func (b *classBuilder) addStateVariables(n *ast.StateVariableDeclaration) error {
	for _, v := range n.Variables {
		if v == nil {
			continue
		}
		visibility, err := parseVisibility(v.Visibility)
		if err != nil {
			return err
		}
		typ, err := TypeString(v.TypeName)
		if err != nil {
			return err
		}
		b.class.Attributes = append(b.class.Attributes, Attribute{
			Visibility: visibility,
			Name:       v.Name,
			Type:       typ,
		})
	}
	b.addAssociations(variableNodes(n.Variables))
	return nil
}

func (b *classBuilder) addFunction(n *ast.FunctionDefinition) error {
	params, err := parseParameters(n.Parameters)
	if err != nil {
		return err
	}

	switch {
	case n.IsConstructor:
		b.class.Operators = append(b.class.Operators, Operator{
			Stereotype: OperatorNone,
			Name:       "constructor",
			Parameters: params,
		})
	case n.Name == "":
		b.class.Operators = append(b.class.Operators, Operator{
			Stereotype: OperatorFallback,
			Name:       "",
			Parameters: params,
			IsPayable:  n.StateMutability == "payable",
		})
	default:
		stereotype := OperatorNone
		if n.Body == nil {
			stereotype = OperatorAbstract
		} else if n.StateMutability == "payable" {
			stereotype = OperatorPayable
		}
		visibility, err := parseVisibility(n.Visibility)
		if err != nil {
			return err
		}
		returns, err := parseParameters(n.ReturnParameters)
		if err != nil {
			return err
		}
		b.class.Operators = append(b.class.Operators, Operator{
			Stereotype:       stereotype,
			Visibility:       visibility,
			Name:             n.Name,
			Parameters:       params,
			ReturnParameters: returns,
		})
	}
	b.logger.Debug("found function", "name", n.Name, "constructor", n.IsConstructor, "has_body", n.Body != nil)

	if n.Parameters != nil {
		b.addAssociations(parameterNodes(n.Parameters.Parameters))
	}
	if n.ReturnParameters != nil {
		b.addAssociations(parameterNodes(n.ReturnParameters.Parameters))
	}
	if n.Body == nil {
		// only interfaces and abstract contracts leave functions unimplemented
		b.markAbstract()
	} else {
		b.addAssociations(statementNodes(n.Body.Statements))
	}
	return nil
}

func (b *classBuilder) addModifier(n *ast.ModifierDefinition) error {
	params, err := parseParameters(n.Parameters)
	if err != nil {
		return err
	}
	b.class.Operators = append(b.class.Operators, Operator{
		Stereotype: OperatorModifier,
		Name:       n.Name,
		Parameters: params,
	})
	if n.Parameters != nil {
		b.addAssociations(parameterNodes(n.Parameters.Parameters))
	}
	if n.Body != nil {
		b.addAssociations(statementNodes(n.Body.Statements))
	}
	return nil
}

func (b *classBuilder) addEvent(n *ast.EventDefinition) error {
	params, err := parseParameters(n.Parameters)
	if err != nil {
		return err
	}
	b.class.Operators = append(b.class.Operators, Operator{
		Stereotype: OperatorEvent,
		Name:       n.Name,
		Parameters: params,
	})
	if n.Parameters != nil {
		b.addAssociations(parameterNodes(n.Parameters.Parameters))
	}
	return nil
}

func (b *classBuilder) addStruct(n *ast.StructDefinition) error {
	members := make([]Parameter, 0, len(n.Members))
	for _, m := range n.Members {
		if m == nil {
			continue
		}
		typ, err := TypeString(m.TypeName)
		if err != nil {
			return err
		}
		members = append(members, Parameter{Name: m.Name, Type: typ})
	}
	if _, exists := b.class.Struct(n.Name); exists {
		b.logger.Debug("struct redeclared, replacing members", "name", n.Name)
	}
	b.class.SetStruct(n.Name, members)
	b.addAssociations(variableNodes(n.Members))
	return nil
}

func (b *classBuilder) addEnum(n *ast.EnumDefinition) {
	values := make([]string, 0, len(n.Members))
	for _, m := range n.Members {
		if m != nil {
			values = append(values, m.Name)
		}
	}
	if _, exists := b.class.Enum(n.Name); exists {
		b.logger.Debug("enum redeclared, replacing values", "name", n.Name)
	}
	b.class.SetEnum(n.Name, values)
}

// parseParameters returns an empty, non-nil list when params is absent.
func parseParameters(params *ast.ParameterList) ([]Parameter, error) {
	out := []Parameter{}
	if params == nil {
		return out, nil
	}
	for _, p := range params.Parameters {
		if p == nil {
			continue
		}
		typ, err := TypeString(p.TypeName)
		if err != nil {
			return nil, err
		}
		out = append(out, Parameter{Name: p.Name, Type: typ})
	}
	return out, nil
}
