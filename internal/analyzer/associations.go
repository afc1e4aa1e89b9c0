package analyzer

import (
	"strings"

	"github.com/olehluchkiv/solclass/internal/ast"
)

// addAssociations walks nodes depth-first and records an association for
// every user-defined type it finds in a declaration. Expressions are not
// inspected. Nil entries are elided tuple slots, e.g. `(a, , b) = f();`;
// they are skipped and the walk continues with the next sibling.
func (b *classBuilder) addAssociations(nodes []ast.Node) {
	for _, node := range nodes {
		switch n := node.(type) {
		case nil:
			continue
		case *ast.VariableDeclaration:
			b.addDeclaredTypeAssociations(n.TypeName, n.IsStateVar)
		case *ast.Parameter:
			b.addDeclaredTypeAssociations(n.TypeName, n.IsStateVar)
		case *ast.UserDefinedTypeName:
			b.class.AddAssociation(Association{
				ReferenceType:   ReferenceMemory,
				TargetClassName: n.NamePath,
			})
		case *ast.Block:
			b.addAssociations(statementNodes(n.Statements))
		case *ast.StateVariableDeclaration:
			b.addAssociations(variableNodes(n.Variables))
		case *ast.VariableDeclarationStatement:
			b.addAssociations(variableNodes(n.Variables))
		case *ast.ForStatement:
			b.addLoopAssociations(n, n.Body)
		case *ast.WhileStatement:
			b.addLoopAssociations(n, n.Body)
		case *ast.DoWhileStatement:
			b.addLoopAssociations(n, n.Body)
		case *ast.IfStatement:
			if block, ok := n.TrueBody.(*ast.Block); ok {
				b.addAssociations(statementNodes(block.Statements))
			}
			if block, ok := n.FalseBody.(*ast.Block); ok {
				b.addAssociations(statementNodes(block.Statements))
			}
		}
	}
}

func (b *classBuilder) addDeclaredTypeAssociations(tn ast.TypeName, isStateVar bool) {
	switch t := tn.(type) {
	case *ast.UserDefinedTypeName:
		referenceType := ReferenceMemory
		if isStateVar {
			referenceType = ReferenceStorage
		}
		b.class.AddAssociation(Association{
			ReferenceType:   referenceType,
			TargetClassName: parseClassName(t.NamePath),
		})
	case *ast.Mapping:
		b.addAssociations([]ast.Node{t.KeyType})
		b.addAssociations([]ast.Node{t.ValueType})
	}
}

// addLoopAssociations walks a loop body. Only block bodies carry a statement
// list; anything else is reported and skipped.
func (b *classBuilder) addLoopAssociations(loop ast.Node, body ast.Statement) {
	block, ok := body.(*ast.Block)
	if !ok {
		b.logger.Warn("can not recursively parse AST nodes for associations, loop body is not a block",
			"loop", ast.KindOf(loop), "body", ast.KindOf(body))
		return
	}
	b.addAssociations(statementNodes(block.Statements))
}

// parseClassName drops the member part of a library reference such as
// `Set.Data`.
func parseClassName(namePath string) string {
	name, _, _ := strings.Cut(namePath, ".")
	return name
}

func statementNodes(stmts []ast.Statement) []ast.Node {
	nodes := make([]ast.Node, len(stmts))
	for i, s := range stmts {
		if s != nil {
			nodes[i] = s
		}
	}
	return nodes
}

func variableNodes(vars []*ast.VariableDeclaration) []ast.Node {
	nodes := make([]ast.Node, len(vars))
	for i, v := range vars {
		if v != nil {
			nodes[i] = v
		}
	}
	return nodes
}

func parameterNodes(params []*ast.Parameter) []ast.Node {
	nodes := make([]ast.Node, len(params))
	for i, p := range params {
		if p != nil {
			nodes[i] = p
		}
	}
	return nodes
}
