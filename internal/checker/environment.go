// Package checker implements the three-pass type checking pipeline:
// inference (infer.go), refinement (refine.go) and checking (check.go),
// sharing one expression synthesizer (synth.go) and one mutable Context
// (context.go) the way the teacher's internal/semantic passes share one
// PassContext (see DESIGN.md).
package checker

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/types"
)

// TypeEnv maps a variable name to its Type node. Entries alias the same
// *types.Type stored on the declaring AST node's annotation, so sharpening
// one updates every view (spec §3.2).
type TypeEnv map[string]*types.Type

// FunSignature is the registered shape of a function (spec §3.2's FunEnv
// entry).
type FunSignature struct {
	Parameters []*types.Type
	ReturnType *types.Type
	Variadic   bool
}

// FunEnv maps a function name to its signature.
type FunEnv map[string]*FunSignature

// VariableDeclEnv maps a variable name to the declarator node that
// introduced it, so refinement can rewrite its TypeAnnotation in place.
type VariableDeclEnv map[string]*ast.VariableDeclarator

// FunctionDeclEnv maps a function name to its declaration node.
type FunctionDeclEnv map[string]*ast.FunctionDeclaration

// Clone returns a shallow copy of env: a new map with the same *Type
// values. Mutating a *Type reached through the clone (sharpening) is still
// visible through the original, matching spec §5's "snapshot (shallow copy
// of the map; values remain aliased)" scoping discipline.
func (env TypeEnv) Clone() TypeEnv {
	out := make(TypeEnv, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}

func (env VariableDeclEnv) Clone() VariableDeclEnv {
	out := make(VariableDeclEnv, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}
