package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// rawNode is the union of every field the parser emits for the node kinds
// modelled here. The "type" field selects which of them are meaningful.
type rawNode struct {
	Type string `json:"type"`

	Name            string `json:"name"`
	Path            string `json:"path"`
	Kind            string `json:"kind"`
	NamePath        string `json:"namePath"`
	LibraryName     string `json:"libraryName"`
	Visibility      string `json:"visibility"`
	StateMutability string `json:"stateMutability"`
	StorageLocation string `json:"storageLocation"`
	IsConstructor   bool   `json:"isConstructor"`
	IsStateVar      bool   `json:"isStateVar"`

	Children         []json.RawMessage `json:"children"`
	BaseContracts    []json.RawMessage `json:"baseContracts"`
	SubNodes         []json.RawMessage `json:"subNodes"`
	Variables        []json.RawMessage `json:"variables"`
	Members          []json.RawMessage `json:"members"`
	Statements       []json.RawMessage `json:"statements"`
	ParameterTypes   json.RawMessage   `json:"parameterTypes"`
	ReturnTypes      json.RawMessage   `json:"returnTypes"`
	Parameters       json.RawMessage   `json:"parameters"`
	ReturnParameters json.RawMessage   `json:"returnParameters"`
	Body             json.RawMessage   `json:"body"`
	TrueBody         json.RawMessage   `json:"trueBody"`
	FalseBody        json.RawMessage   `json:"falseBody"`
	BaseName         json.RawMessage   `json:"baseName"`
	TypeName         json.RawMessage   `json:"typeName"`
	KeyType          json.RawMessage   `json:"keyType"`
	ValueType        json.RawMessage   `json:"valueType"`
	BaseTypeName     json.RawMessage   `json:"baseTypeName"`
}

var modelledKinds = map[string]bool{
	"SourceUnit":                   true,
	"ImportDirective":              true,
	"ContractDefinition":           true,
	"InheritanceSpecifier":         true,
	"StateVariableDeclaration":     true,
	"UsingForDeclaration":          true,
	"FunctionDefinition":           true,
	"ModifierDefinition":           true,
	"EventDefinition":              true,
	"StructDefinition":             true,
	"EnumDefinition":               true,
	"EnumValue":                    true,
	"ParameterList":                true,
	"Parameter":                    true,
	"VariableDeclaration":          true,
	"Block":                        true,
	"VariableDeclarationStatement": true,
	"ForStatement":                 true,
	"WhileStatement":               true,
	"DoWhileStatement":             true,
	"IfStatement":                  true,
	"ElementaryTypeName":           true,
	"UserDefinedTypeName":          true,
	"ArrayTypeName":                true,
	"Mapping":                      true,
	"FunctionTypeName":             true,
}

// Decode parses the JSON syntax tree emitted by solidity-parser-antlr.
// Node kinds that cannot hold declarations or type references decode to
// *Unknown; unrecognised kinds in a type position decode to *UnknownTypeName.
func Decode(data []byte) (Node, error) {
	n, err := decodeNode(data)
	if err != nil {
		return nil, fmt.Errorf("decode ast: %w", err)
	}
	if n == nil {
		return nil, fmt.Errorf("decode ast: empty document")
	}
	return n, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeNode(raw json.RawMessage) (Node, error) {
	if isNull(raw) {
		return nil, nil
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	if head.Type == "" {
		return nil, fmt.Errorf("node without type: %.60s", raw)
	}
	if !modelledKinds[head.Type] {
		return &Unknown{Type: head.Type}, nil
	}

	var r rawNode
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("%s: %w", head.Type, err)
	}

	switch r.Type {
	case "SourceUnit":
		children, err := decodeList(r.Children)
		if err != nil {
			return nil, fmt.Errorf("SourceUnit.children: %w", err)
		}
		return &SourceUnit{Children: children}, nil

	case "ImportDirective":
		return &ImportDirective{Path: r.Path}, nil

	case "ContractDefinition":
		c := &ContractDefinition{Name: r.Name, Kind: r.Kind}
		for i, b := range r.BaseContracts {
			n, err := decodeNode(b)
			if err != nil {
				return nil, fmt.Errorf("contract %s: base %d: %w", r.Name, i, err)
			}
			spec, err := as[*InheritanceSpecifier](n, "baseContracts")
			if err != nil {
				return nil, fmt.Errorf("contract %s: %w", r.Name, err)
			}
			if spec != nil {
				c.BaseContracts = append(c.BaseContracts, spec)
			}
		}
		subNodes, err := decodeList(r.SubNodes)
		if err != nil {
			return nil, fmt.Errorf("contract %s: %w", r.Name, err)
		}
		c.SubNodes = subNodes
		return c, nil

	case "InheritanceSpecifier":
		n, err := decodeNode(r.BaseName)
		if err != nil {
			return nil, fmt.Errorf("InheritanceSpecifier.baseName: %w", err)
		}
		base, err := as[*UserDefinedTypeName](n, "baseName")
		if err != nil {
			return nil, err
		}
		if base == nil {
			base = &UserDefinedTypeName{}
		}
		return &InheritanceSpecifier{BaseName: base}, nil

	case "StateVariableDeclaration":
		vars, err := decodeVariables(r.Variables)
		if err != nil {
			return nil, fmt.Errorf("StateVariableDeclaration.variables: %w", err)
		}
		return &StateVariableDeclaration{Variables: vars}, nil

	case "UsingForDeclaration":
		tn, err := decodeTypeName(r.TypeName)
		if err != nil {
			return nil, fmt.Errorf("UsingForDeclaration.typeName: %w", err)
		}
		return &UsingForDeclaration{LibraryName: r.LibraryName, TypeName: tn}, nil

	case "FunctionDefinition":
		params, err := decodeParameterList(r.Parameters)
		if err != nil {
			return nil, fmt.Errorf("function %q parameters: %w", r.Name, err)
		}
		returns, err := decodeParameterList(r.ReturnParameters)
		if err != nil {
			return nil, fmt.Errorf("function %q returnParameters: %w", r.Name, err)
		}
		body, err := decodeBlock(r.Body)
		if err != nil {
			return nil, fmt.Errorf("function %q body: %w", r.Name, err)
		}
		return &FunctionDefinition{
			Name:             r.Name,
			Parameters:       params,
			ReturnParameters: returns,
			Body:             body,
			Visibility:       r.Visibility,
			StateMutability:  r.StateMutability,
			IsConstructor:    r.IsConstructor,
		}, nil

	case "ModifierDefinition":
		params, err := decodeParameterList(r.Parameters)
		if err != nil {
			return nil, fmt.Errorf("modifier %q parameters: %w", r.Name, err)
		}
		body, err := decodeBlock(r.Body)
		if err != nil {
			return nil, fmt.Errorf("modifier %q body: %w", r.Name, err)
		}
		return &ModifierDefinition{Name: r.Name, Parameters: params, Body: body}, nil

	case "EventDefinition":
		params, err := decodeParameterList(r.Parameters)
		if err != nil {
			return nil, fmt.Errorf("event %q parameters: %w", r.Name, err)
		}
		return &EventDefinition{Name: r.Name, Parameters: params}, nil

	case "StructDefinition":
		members, err := decodeVariables(r.Members)
		if err != nil {
			return nil, fmt.Errorf("struct %q members: %w", r.Name, err)
		}
		return &StructDefinition{Name: r.Name, Members: members}, nil

	case "EnumDefinition":
		e := &EnumDefinition{Name: r.Name}
		for _, m := range r.Members {
			n, err := decodeNode(m)
			if err != nil {
				return nil, fmt.Errorf("enum %q members: %w", r.Name, err)
			}
			v, err := as[*EnumValue](n, "members")
			if err != nil {
				return nil, fmt.Errorf("enum %q: %w", r.Name, err)
			}
			if v != nil {
				e.Members = append(e.Members, v)
			}
		}
		return e, nil

	case "EnumValue":
		return &EnumValue{Name: r.Name}, nil

	case "ParameterList":
		params, err := decodeParameters(r.Parameters)
		if err != nil {
			return nil, fmt.Errorf("ParameterList.parameters: %w", err)
		}
		return &ParameterList{Parameters: params}, nil

	case "Parameter":
		tn, err := decodeTypeName(r.TypeName)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", r.Name, err)
		}
		return &Parameter{
			Name:            r.Name,
			TypeName:        tn,
			StorageLocation: r.StorageLocation,
			IsStateVar:      r.IsStateVar,
		}, nil

	case "VariableDeclaration":
		tn, err := decodeTypeName(r.TypeName)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", r.Name, err)
		}
		return &VariableDeclaration{
			Name:       r.Name,
			TypeName:   tn,
			Visibility: r.Visibility,
			IsStateVar: r.IsStateVar,
		}, nil

	case "Block":
		stmts := make([]Statement, 0, len(r.Statements))
		for i, s := range r.Statements {
			stmt, err := decodeStatement(s)
			if err != nil {
				return nil, fmt.Errorf("Block.statements[%d]: %w", i, err)
			}
			stmts = append(stmts, stmt)
		}
		return &Block{Statements: stmts}, nil

	case "VariableDeclarationStatement":
		vars, err := decodeVariables(r.Variables)
		if err != nil {
			return nil, fmt.Errorf("VariableDeclarationStatement.variables: %w", err)
		}
		return &VariableDeclarationStatement{Variables: vars}, nil

	case "ForStatement", "WhileStatement", "DoWhileStatement":
		body, err := decodeStatement(r.Body)
		if err != nil {
			return nil, fmt.Errorf("%s.body: %w", r.Type, err)
		}
		switch r.Type {
		case "ForStatement":
			return &ForStatement{Body: body}, nil
		case "WhileStatement":
			return &WhileStatement{Body: body}, nil
		default:
			return &DoWhileStatement{Body: body}, nil
		}

	case "IfStatement":
		trueBody, err := decodeStatement(r.TrueBody)
		if err != nil {
			return nil, fmt.Errorf("IfStatement.trueBody: %w", err)
		}
		falseBody, err := decodeStatement(r.FalseBody)
		if err != nil {
			return nil, fmt.Errorf("IfStatement.falseBody: %w", err)
		}
		return &IfStatement{TrueBody: trueBody, FalseBody: falseBody}, nil

	case "ElementaryTypeName":
		return &ElementaryTypeName{Name: r.Name}, nil

	case "UserDefinedTypeName":
		return &UserDefinedTypeName{NamePath: r.NamePath}, nil

	case "ArrayTypeName":
		base, err := decodeTypeName(r.BaseTypeName)
		if err != nil {
			return nil, fmt.Errorf("ArrayTypeName.baseTypeName: %w", err)
		}
		return &ArrayTypeName{BaseTypeName: base}, nil

	case "Mapping":
		key, err := decodeTypeName(r.KeyType)
		if err != nil {
			return nil, fmt.Errorf("Mapping.keyType: %w", err)
		}
		value, err := decodeTypeName(r.ValueType)
		if err != nil {
			return nil, fmt.Errorf("Mapping.valueType: %w", err)
		}
		return &Mapping{KeyType: key, ValueType: value}, nil

	case "FunctionTypeName":
		params, err := decodeParameterList(r.ParameterTypes)
		if err != nil {
			return nil, fmt.Errorf("FunctionTypeName.parameterTypes: %w", err)
		}
		returns, err := decodeParameterList(r.ReturnTypes)
		if err != nil {
			return nil, fmt.Errorf("FunctionTypeName.returnTypes: %w", err)
		}
		f := &FunctionTypeName{}
		if params != nil {
			f.ParameterTypes = params.Parameters
		}
		if returns != nil {
			f.ReturnTypes = returns.Parameters
		}
		return f, nil
	}

	return nil, fmt.Errorf("unhandled node kind %q", r.Type)
}

// as narrows n to T. A nil node yields the zero T without error.
func as[T Node](n Node, field string) (T, error) {
	var zero T
	if n == nil {
		return zero, nil
	}
	t, ok := n.(T)
	if !ok {
		return zero, fmt.Errorf("%s: unexpected node %T", field, n)
	}
	return t, nil
}

func decodeList(raws []json.RawMessage) ([]Node, error) {
	nodes := make([]Node, 0, len(raws))
	for i, raw := range raws {
		n, err := decodeNode(raw)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func decodeTypeName(raw json.RawMessage) (TypeName, error) {
	n, err := decodeNode(raw)
	if err != nil || n == nil {
		return nil, err
	}
	switch t := n.(type) {
	case TypeName:
		return t, nil
	case *Unknown:
		return &UnknownTypeName{Type: t.Type}, nil
	}
	return nil, fmt.Errorf("typeName: unexpected node %T", n)
}

func decodeStatement(raw json.RawMessage) (Statement, error) {
	n, err := decodeNode(raw)
	if err != nil || n == nil {
		return nil, err
	}
	stmt, ok := n.(Statement)
	if !ok {
		return nil, fmt.Errorf("statement: unexpected node %T", n)
	}
	return stmt, nil
}

func decodeBlock(raw json.RawMessage) (*Block, error) {
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	return as[*Block](n, "body")
}

// decodeVariables keeps nil entries so elided tuple slots survive decoding.
func decodeVariables(raws []json.RawMessage) ([]*VariableDeclaration, error) {
	vars := make([]*VariableDeclaration, 0, len(raws))
	for i, raw := range raws {
		n, err := decodeNode(raw)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		v, err := as[*VariableDeclaration](n, "variables")
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		vars = append(vars, v)
	}
	return vars, nil
}

func decodeParameters(raw json.RawMessage) ([]*Parameter, error) {
	if isNull(raw) {
		return nil, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil, err
	}
	params := make([]*Parameter, 0, len(raws))
	for i, r := range raws {
		n, err := decodeNode(r)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		switch p := n.(type) {
		case nil:
		case *Parameter:
			params = append(params, p)
		case *VariableDeclaration:
			// event parameters and function type parameters
			params = append(params, &Parameter{Name: p.Name, TypeName: p.TypeName, IsStateVar: p.IsStateVar})
		default:
			return nil, fmt.Errorf("[%d]: parameters: unexpected node %T", i, n)
		}
	}
	return params, nil
}

// decodeParameterList accepts either a ParameterList object or a bare array
// of parameters; parser versions disagree on which one modifiers and
// function types carry.
func decodeParameterList(raw json.RawMessage) (*ParameterList, error) {
	trimmed := bytes.TrimSpace(raw)
	if isNull(trimmed) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		params, err := decodeParameters(trimmed)
		if err != nil {
			return nil, err
		}
		return &ParameterList{Parameters: params}, nil
	}
	n, err := decodeNode(trimmed)
	if err != nil {
		return nil, err
	}
	return as[*ParameterList](n, "parameters")
}
