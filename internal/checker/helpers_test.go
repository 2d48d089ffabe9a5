package checker

import (
	"testing"

	"github.com/quill-lang/quill/internal/ast"
)

// Small AST builder helpers shared by the table-driven scenarios below.
// There is no lexer/parser in this module (spec.md §1 scopes it out), so
// tests build trees directly the way the annotate/check CLI's JSON decoder
// does.

func id(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func intLit(v int64) *ast.IntegerLiteral   { return &ast.IntegerLiteral{Value: v} }
func floatLit(v float64) *ast.FloatLiteral { return &ast.FloatLiteral{Value: v} }
func strLit(v string) *ast.StringLiteral   { return &ast.StringLiteral{Value: v} }
func boolLit(v bool) *ast.BooleanLiteral   { return &ast.BooleanLiteral{Value: v} }

func call(callee ast.Expression, args ...ast.Expression) *ast.CallExpression {
	return &ast.CallExpression{Callee: callee, Arguments: args}
}

func method(obj ast.Expression, name string, args ...ast.Expression) *ast.CallExpression {
	return call(&ast.MemberExpression{Object: obj, Property: id(name)}, args...)
}

func binary(op string, l, r ast.Expression) *ast.BinaryExpression {
	return &ast.BinaryExpression{Op: op, Left: l, Right: r}
}

func exprStmt(e ast.Expression) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Expression: e}
}

func varDecl(name string, ann *ast.TypeAnnotation, init ast.Expression) *ast.VariableDeclaration {
	return &ast.VariableDeclaration{Declarations: []*ast.VariableDeclarator{
		{Name: name, TypeAnnotation: ann, Initializer: init},
	}}
}

func simpleAnn(name string) *ast.TypeAnnotation {
	return &ast.TypeAnnotation{Kind: ast.AnnotationSimple, Name: name}
}

func genericAnn(name string, params ...*ast.TypeAnnotation) *ast.TypeAnnotation {
	return &ast.TypeAnnotation{Kind: ast.AnnotationGeneric, Name: name, Parameters: params}
}

func block(stmts ...ast.Statement) *ast.BlockStatement {
	return &ast.BlockStatement{Statements: stmts}
}

func program(stmts ...ast.Statement) *ast.Program {
	return &ast.Program{Statements: stmts}
}

func param(name string, ann *ast.TypeAnnotation) *ast.Parameter {
	return &ast.Parameter{Name: name, TypeAnnotation: ann}
}

func funcDecl(name string, ret *ast.TypeAnnotation, body *ast.BlockStatement, params ...*ast.Parameter) *ast.FunctionDeclaration {
	return &ast.FunctionDeclaration{Name: name, Parameters: params, ReturnType: ret, Body: body}
}

func ret(v ast.Expression) *ast.ReturnStatement { return &ast.ReturnStatement{Value: v} }

func assign(target, value ast.Expression) *ast.AssignmentStatement {
	return &ast.AssignmentStatement{Target: target, Value: value}
}

func forStmt(variable string, iterable ast.Expression, body ast.Statement) *ast.ForStatement {
	return &ast.ForStatement{Variable: variable, Iterable: iterable, Body: body}
}

func whileStmt(cond ast.Expression, body ast.Statement) *ast.WhileStatement {
	return &ast.WhileStatement{Condition: cond, Body: body}
}

// runCheck type-checks stmts end to end with the given config (DefaultConfig
// if nil) and returns the resulting Context plus the first diagnostic, if
// any.
func runCheck(t *testing.T, cfg *Config, stmts ...ast.Statement) (*Context, *CheckError) {
	result, err := TypecheckAndReturn(program(stmts...), cfg)
	if err != nil {
		t.Fatalf("unexpected internal error: %v", err)
	}
	var first *CheckError
	if len(result.Diagnostics) > 0 {
		first = result.Diagnostics[0]
	}
	return result.Context, first
}
