// Package ast defines the syntax tree the type checker consumes (spec
// §6.2). The lexer/parser that would build one from source text are out of
// scope for this module (spec §1); trees are built directly by tooling or
// tests, mirroring how the teacher's internal/ast package only defines node
// shapes while internal/lexer and internal/parser build them.
package ast

import "github.com/quill-lang/quill/internal/source"

// Node is the base interface every syntax tree node implements.
type Node interface {
	Pos() source.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	exprNode()
}

// Statement is any node that performs an action without itself producing a
// value.
type Statement interface {
	Node
	stmtNode()
}

// Program is the root of the tree.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() source.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return source.Zero
}

// AnnotationKind distinguishes the shapes a TypeAnnotation can take.
type AnnotationKind int

const (
	AnnotationSimple AnnotationKind = iota
	AnnotationGeneric
	AnnotationUnion
	AnnotationIntersection
)

// TypeAnnotation is the syntactic form of a type, as written by the user or
// synthesized by the inferencer. Resolve (internal/checker/resolve.go)
// turns one into a *types.Type.
//
//   - Simple: Name holds a primitive or container name with no parameters
//     ("int", "range").
//   - Generic: Name is the container name, Parameters its type arguments
//     ("Map" with Parameters [string, int]).
//   - Union / Intersection: Types holds the member annotations.
type TypeAnnotation struct {
	Kind       AnnotationKind
	Name       string
	Parameters []*TypeAnnotation
	Types      []*TypeAnnotation
	IsInferred bool
	NodePos    source.Position
}

func (ta *TypeAnnotation) Pos() source.Position { return ta.NodePos }

// Parameter is one entry in a FunctionDeclaration's parameter list.
// TypeAnnotation is nil when the parameter's type must be inferred.
type Parameter struct {
	Name           string
	TypeAnnotation *TypeAnnotation
	NodePos        source.Position
}

func (p *Parameter) Pos() source.Position { return p.NodePos }
