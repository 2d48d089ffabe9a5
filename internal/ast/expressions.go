package ast

import "github.com/quill-lang/quill/internal/source"

// IntegerLiteral is an int literal.
type IntegerLiteral struct {
	Value   int64
	NodePos source.Position
}

func (*IntegerLiteral) exprNode()              {}
func (i *IntegerLiteral) Pos() source.Position { return i.NodePos }

// FloatLiteral is a float literal.
type FloatLiteral struct {
	Value   float64
	NodePos source.Position
}

func (*FloatLiteral) exprNode()              {}
func (f *FloatLiteral) Pos() source.Position { return f.NodePos }

// StringLiteral is a string literal.
type StringLiteral struct {
	Value   string
	NodePos source.Position
}

func (*StringLiteral) exprNode()              {}
func (s *StringLiteral) Pos() source.Position { return s.NodePos }

// BooleanLiteral is a boolean literal.
type BooleanLiteral struct {
	Value   bool
	NodePos source.Position
}

func (*BooleanLiteral) exprNode()              {}
func (b *BooleanLiteral) Pos() source.Position { return b.NodePos }

// ArrayLiteral is an `[elem, elem, ...]` literal; Elements is empty for `[]`.
type ArrayLiteral struct {
	Elements []Expression
	NodePos  source.Position
}

func (*ArrayLiteral) exprNode()              {}
func (a *ArrayLiteral) Pos() source.Position { return a.NodePos }

// Identifier is a variable/function reference. Name "_" is the discard
// identifier, which may not appear as a value (spec §4.1).
type Identifier struct {
	Name    string
	NodePos source.Position
}

func (*Identifier) exprNode()              {}
func (i *Identifier) Pos() source.Position { return i.NodePos }

// IsUnderscore reports whether this identifier is the discard binding.
func (i *Identifier) IsUnderscore() bool { return i.Name == "_" }

// MetaIdentifier is an `@name` reference used as a predicate constructor
// callee or as the target of a PredicateCheckExpression.
type MetaIdentifier struct {
	Name    string
	NodePos source.Position
}

func (*MetaIdentifier) exprNode()              {}
func (m *MetaIdentifier) Pos() source.Position { return m.NodePos }

// RangeExpression is one of `a..b`, `a...b`, `a..`, `..b`. Start and/or End
// may be nil for the open forms; both nil is an error the synthesizer
// raises (spec §4.1).
type RangeExpression struct {
	Start     Expression
	End       Expression
	Inclusive bool
	NodePos   source.Position
}

func (*RangeExpression) exprNode()              {}
func (r *RangeExpression) Pos() source.Position { return r.NodePos }

// IsInfinite reports whether this range has a missing bound and therefore
// synthesizes to the infinite `range` type rather than a finite array.
func (r *RangeExpression) IsInfinite() bool { return r.Start == nil || r.End == nil }

// BinaryExpression applies Op to Left and Right.
type BinaryExpression struct {
	Op      string
	Left    Expression
	Right   Expression
	NodePos source.Position
}

func (*BinaryExpression) exprNode()              {}
func (b *BinaryExpression) Pos() source.Position { return b.NodePos }

// UnaryExpression applies Op to Operand.
type UnaryExpression struct {
	Op      string
	Operand Expression
	NodePos source.Position
}

func (*UnaryExpression) exprNode()              {}
func (u *UnaryExpression) Pos() source.Position { return u.NodePos }

// CallExpression invokes Callee with Arguments. Callee is an Identifier for
// a function/constructor call, a MemberExpression for a method call, or a
// MetaIdentifier for a predicate constructor (spec §4.1).
type CallExpression struct {
	Callee    Expression
	Arguments []Expression
	NodePos   source.Position
}

func (*CallExpression) exprNode()              {}
func (c *CallExpression) Pos() source.Position { return c.NodePos }

// MemberExpression is `object.property`.
type MemberExpression struct {
	Object   Expression
	Property *Identifier
	NodePos  source.Position
}

func (*MemberExpression) exprNode()              {}
func (m *MemberExpression) Pos() source.Position { return m.NodePos }

// IndexExpression is `object[index]`.
type IndexExpression struct {
	Object  Expression
	Index   Expression
	NodePos source.Position
}

func (*IndexExpression) exprNode()              {}
func (ix *IndexExpression) Pos() source.Position { return ix.NodePos }

// TypeOfExpression is `typeof(operand)`, always synthesizing to string.
type TypeOfExpression struct {
	Operand Expression
	NodePos source.Position
}

func (*TypeOfExpression) exprNode()              {}
func (t *TypeOfExpression) Pos() source.Position { return t.NodePos }

// PredicateCheckExpression is `subject |- @predicate(predicateArgs...)`,
// always synthesizing to boolean. PredicateArgs is nil when the predicate
// is referenced with no argument list.
type PredicateCheckExpression struct {
	Subject       Expression
	Predicate     *MetaIdentifier
	PredicateArgs []Expression
	NodePos       source.Position
}

func (*PredicateCheckExpression) exprNode()              {}
func (p *PredicateCheckExpression) Pos() source.Position { return p.NodePos }
