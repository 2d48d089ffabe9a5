package ast

import "github.com/quill-lang/quill/internal/source"

// FunctionDeclaration declares a named function. ReturnType is nil when the
// return type must be inferred from the body's return statements.
type FunctionDeclaration struct {
	Name       string
	Parameters []*Parameter
	ReturnType *TypeAnnotation
	Body       *BlockStatement
	NodePos    source.Position
}

func (*FunctionDeclaration) stmtNode()          {}
func (f *FunctionDeclaration) Pos() source.Position { return f.NodePos }

// VariableDeclarator is one `name[: Type] = initializer` entry of a
// VariableDeclaration.
type VariableDeclarator struct {
	Name           string
	TypeAnnotation *TypeAnnotation
	Initializer    Expression
	NodePos        source.Position
}

func (v *VariableDeclarator) Pos() source.Position { return v.NodePos }

// VariableDeclaration declares one or more variables in a single statement.
type VariableDeclaration struct {
	Declarations []*VariableDeclarator
	NodePos      source.Position
}

func (*VariableDeclaration) stmtNode()              {}
func (v *VariableDeclaration) Pos() source.Position { return v.NodePos }

// BlockStatement is a sequence of statements introducing no scope of its
// own (function bodies and loop bodies manage their own scope explicitly).
type BlockStatement struct {
	Statements []Statement
	NodePos    source.Position
}

func (*BlockStatement) stmtNode()              {}
func (b *BlockStatement) Pos() source.Position { return b.NodePos }

// ExpressionStatement wraps an expression evaluated for its side effects.
type ExpressionStatement struct {
	Expression Expression
	NodePos    source.Position
}

func (*ExpressionStatement) stmtNode()              {}
func (e *ExpressionStatement) Pos() source.Position { return e.NodePos }

// IfStatement is a conditional with an optional else branch.
type IfStatement struct {
	Condition   Expression
	ThenBranch  Statement
	ElseBranch  Statement
	NodePos     source.Position
}

func (*IfStatement) stmtNode()              {}
func (i *IfStatement) Pos() source.Position { return i.NodePos }

// WhileStatement repeats Body while Condition holds.
type WhileStatement struct {
	Condition Expression
	Body      Statement
	NodePos   source.Position
}

func (*WhileStatement) stmtNode()              {}
func (w *WhileStatement) Pos() source.Position { return w.NodePos }

// UntilStatement repeats Body until Condition holds.
type UntilStatement struct {
	Condition Expression
	Body      Statement
	NodePos   source.Position
}

func (*UntilStatement) stmtNode()              {}
func (u *UntilStatement) Pos() source.Position { return u.NodePos }

// ForStatement binds Variable to each element of Iterable in turn. Variable
// is "_" when the binding is discarded (spec §4.3: underscore is not
// bound).
type ForStatement struct {
	Variable string
	Iterable Expression
	Body     Statement
	NodePos  source.Position
}

func (*ForStatement) stmtNode()              {}
func (f *ForStatement) Pos() source.Position { return f.NodePos }

// ReturnStatement returns from the enclosing function. Value is nil for a
// bare `return`.
type ReturnStatement struct {
	Value   Expression
	NodePos source.Position
}

func (*ReturnStatement) stmtNode()              {}
func (r *ReturnStatement) Pos() source.Position { return r.NodePos }

// AssignmentStatement assigns Value to Target, an Identifier or
// IndexExpression.
type AssignmentStatement struct {
	Target  Expression
	Value   Expression
	NodePos source.Position
}

func (*AssignmentStatement) stmtNode()              {}
func (a *AssignmentStatement) Pos() source.Position { return a.NodePos }

// InvariantStatement asserts Condition holds at this point in a loop or
// function body; legal only inside one of those (spec §4.5).
type InvariantStatement struct {
	Condition Expression
	Message   Expression
	NodePos   source.Position
}

func (*InvariantStatement) stmtNode()              {}
func (i *InvariantStatement) Pos() source.Position { return i.NodePos }

// AssertStatement asserts Condition at runtime; legal anywhere.
type AssertStatement struct {
	Condition Expression
	Message   Expression
	NodePos   source.Position
}

func (*AssertStatement) stmtNode()              {}
func (a *AssertStatement) Pos() source.Position { return a.NodePos }
