package analyzer

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/solclass/internal/ast"
)

func localVar(name string, tn ast.TypeName) *ast.VariableDeclarationStatement {
	return &ast.VariableDeclarationStatement{Variables: []*ast.VariableDeclaration{{Name: name, TypeName: tn}}}
}

func functionWithBody(stmts ...ast.Statement) *ast.FunctionDefinition {
	return &ast.FunctionDefinition{
		Name:       "run",
		Parameters: params(),
		Body:       &ast.Block{Statements: stmts},
		Visibility: "public",
	}
}

func targets(assocs []Association) []string {
	var names []string
	for _, a := range assocs {
		names = append(names, a.TargetClassName)
	}
	return names
}

func newTestBuilder(logger *slog.Logger) *classBuilder {
	return newClassBuilder(NewClassModel("C", "C.sol"), logger)
}

func TestAddAssociations_LocalVariableIsMemory(t *testing.T) {
	got := analyzeOne(t, contract("C", "contract", functionWithBody(localVar("t", udt("Token")))))

	assert.Equal(t, []Association{
		{ReferenceType: ReferenceMemory, TargetClassName: "Token"},
	}, got.Associations)
}

func TestAddAssociations_StateVarVersusLocalOfSameType(t *testing.T) {
	got := analyzeOne(t, contract("C", "contract",
		stateVar("stored", "private", udt("Lib.Type")),
		functionWithBody(localVar("tmp", udt("Lib.Type"))),
	))

	assert.Equal(t, []Association{
		{ReferenceType: ReferenceStorage, TargetClassName: "Lib"},
		{ReferenceType: ReferenceMemory, TargetClassName: "Lib"},
	}, got.Associations)
}

func TestAddAssociations_ControlFlowBodies(t *testing.T) {
	body := []ast.Statement{
		&ast.Unknown{Type: "ExpressionStatement"},
		&ast.Block{Statements: []ast.Statement{localVar("a", udt("InBlock"))}},
		&ast.ForStatement{Body: &ast.Block{Statements: []ast.Statement{localVar("b", udt("InFor"))}}},
		&ast.WhileStatement{Body: &ast.Block{Statements: []ast.Statement{localVar("c", udt("InWhile"))}}},
		&ast.DoWhileStatement{Body: &ast.Block{Statements: []ast.Statement{localVar("d", udt("InDoWhile"))}}},
		&ast.IfStatement{
			TrueBody:  &ast.Block{Statements: []ast.Statement{localVar("e", udt("InThen"))}},
			FalseBody: &ast.Block{Statements: []ast.Statement{localVar("f", udt("InElse"))}},
		},
		&ast.IfStatement{
			TrueBody: &ast.Block{Statements: []ast.Statement{
				&ast.ForStatement{Body: &ast.Block{Statements: []ast.Statement{localVar("g", udt("Nested"))}}},
			}},
		},
	}

	got := analyzeOne(t, contract("C", "contract", functionWithBody(body...)))

	assert.Equal(t, []string{"InBlock", "InFor", "InWhile", "InDoWhile", "InThen", "InElse", "Nested"}, targets(got.Associations))
	for _, a := range got.Associations {
		assert.Equal(t, ReferenceMemory, a.ReferenceType)
		assert.False(t, a.Realization)
	}
}

func TestAddAssociations_IfWithoutBlockBranchesIsSkipped(t *testing.T) {
	stmt := &ast.IfStatement{
		TrueBody:  &ast.Unknown{Type: "ReturnStatement"},
		FalseBody: &ast.IfStatement{TrueBody: &ast.Block{Statements: []ast.Statement{localVar("x", udt("ElseIf"))}}},
	}

	got := analyzeOne(t, contract("C", "contract", functionWithBody(stmt)))
	assert.Empty(t, got.Associations)
}

func TestAddAssociations_NullEntrySkippedAndSiblingsContinue(t *testing.T) {
	// (Token a, , Pool b) = f();
	stmt := &ast.VariableDeclarationStatement{Variables: []*ast.VariableDeclaration{
		{Name: "a", TypeName: udt("Token")},
		nil,
		{Name: "b", TypeName: udt("Pool")},
	}}

	got := analyzeOne(t, contract("C", "contract", functionWithBody(stmt)))
	assert.Equal(t, []string{"Token", "Pool"}, targets(got.Associations))
}

func TestAddAssociations_UntypedVariableIsSkipped(t *testing.T) {
	got := analyzeOne(t, contract("C", "contract", functionWithBody(localVar("v", nil))))
	assert.Empty(t, got.Associations)
}

func TestAddAssociations_MappingKeyAndValue(t *testing.T) {
	nested := &ast.Mapping{KeyType: elem("uint256"), ValueType: udt("Inner")}
	tests := []struct {
		name string
		tn   ast.TypeName
		want []Association
	}{
		{
			name: "elementary key, user-defined value",
			tn:   &ast.Mapping{KeyType: elem("address"), ValueType: udt("Vault.Position")},
			want: []Association{{ReferenceType: ReferenceMemory, TargetClassName: "Vault.Position"}},
		},
		{
			name: "user-defined key and value",
			tn:   &ast.Mapping{KeyType: udt("Token"), ValueType: udt("Pool")},
			want: []Association{
				{ReferenceType: ReferenceMemory, TargetClassName: "Token"},
				{ReferenceType: ReferenceMemory, TargetClassName: "Pool"},
			},
		},
		{
			name: "nested mapping value is not inspected",
			tn:   &ast.Mapping{KeyType: elem("address"), ValueType: nested},
			want: []Association{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuilder(testLogger())
			b.addAssociations([]ast.Node{&ast.VariableDeclaration{Name: "m", TypeName: tt.tn, IsStateVar: true}})
			assert.Equal(t, tt.want, b.class.Associations)
		})
	}
}

func TestAddAssociations_StandaloneUserDefinedTypeIsNotTruncated(t *testing.T) {
	b := newTestBuilder(testLogger())
	b.addAssociations([]ast.Node{udt("Lib.Type")})

	assert.Equal(t, []Association{
		{ReferenceType: ReferenceMemory, TargetClassName: "Lib.Type"},
	}, b.class.Associations)
}

func TestAddAssociations_StateVariableDeclarationNode(t *testing.T) {
	b := newTestBuilder(testLogger())
	b.addAssociations([]ast.Node{stateVar("s", "public", udt("Store"))})

	assert.Equal(t, []Association{
		{ReferenceType: ReferenceStorage, TargetClassName: "Store"},
	}, b.class.Associations)
}

func TestAddAssociations_LoopBodyNotABlockIsReported(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	b := newTestBuilder(logger)
	b.addAssociations([]ast.Node{
		&ast.WhileStatement{Body: &ast.Unknown{Type: "ExpressionStatement"}},
		&ast.ForStatement{Body: &ast.Block{Statements: []ast.Statement{localVar("x", udt("After"))}}},
	})

	assert.Equal(t, []string{"After"}, targets(b.class.Associations))
	assert.Contains(t, buf.String(), "loop body is not a block")
	assert.Contains(t, buf.String(), `"loop":"WhileStatement"`)
	assert.Contains(t, buf.String(), `"body":"ExpressionStatement"`)
}

func TestAddAssociations_ExpressionsAreIgnored(t *testing.T) {
	b := newTestBuilder(testLogger())
	b.addAssociations([]ast.Node{
		&ast.Unknown{Type: "FunctionCall"},
		&ast.Unknown{Type: "NewExpression"},
		elem("uint256"),
		&ast.ArrayTypeName{BaseTypeName: udt("Ignored")},
	})

	require.NotNil(t, b.class.Associations)
	assert.Empty(t, b.class.Associations)
}

func TestParseClassName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Token", "Token"},
		{"Set.Data", "Set"},
		{"A.B.C", "A"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseClassName(tt.in))
		})
	}
}
