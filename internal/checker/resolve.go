package checker

import (
	"errors"
	"fmt"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/types"
)

// heapAliases/heapMapAliases let MinHeap/MaxHeap and MinHeapMap/MaxHeapMap
// annotations share the Heap/HeapMap arity rule and its exact error
// message, which names the category ("Heap"/"HeapMap"), not the specific
// alias the user wrote.
var heapAliases = map[string]bool{"Heap": true, "MinHeap": true, "MaxHeap": true}
var heapMapAliases = map[string]bool{"HeapMap": true, "MinHeapMap": true, "MaxHeapMap": true}

// simpleTypeNames maps an annotation name to a constructor for a fresh node
// of that kind, not the shared package-level singleton: a resolved
// annotation can end up aliased into a container's Elem/Key/Value slot
// (e.g. `Array<int>`'s Elem), and refineSlot sharpens such slots in place
// when containers disagree under union-widening mode. Sharpening
// types.IntType itself would corrupt that singleton for the rest of the
// program, since every bare int literal's synth also returns types.IntType.
var simpleTypeNames = map[string]func() *types.Type{
	"int":     func() *types.Type { return &types.Type{Kind: types.Int} },
	"float":   func() *types.Type { return &types.Type{Kind: types.Float} },
	"string":  func() *types.Type { return &types.Type{Kind: types.String} },
	"boolean": func() *types.Type { return &types.Type{Kind: types.Boolean} },
	"void":    func() *types.Type { return &types.Type{Kind: types.Void} },
	"dynamic": func() *types.Type { return &types.Type{Kind: types.Dynamic} },
}

// Resolve turns a syntactic TypeAnnotation into a *types.Type (spec §6.2).
// A nil annotation resolves to a fresh weak placeholder — the shape an
// omitted annotation takes before the inferencer fills it in.
func Resolve(ann *ast.TypeAnnotation) (*types.Type, error) {
	if ann == nil {
		return types.NewWeak(), nil
	}
	switch ann.Kind {
	case ast.AnnotationSimple:
		return resolveSimple(ann.Name)
	case ast.AnnotationGeneric:
		return resolveGeneric(ann.Name, ann.Parameters)
	case ast.AnnotationUnion:
		members, err := resolveAll(ann.Types)
		if err != nil {
			return nil, err
		}
		return types.NewUnion(members...), nil
	case ast.AnnotationIntersection:
		members, err := resolveAll(ann.Types)
		if err != nil {
			return nil, err
		}
		return types.NewIntersection(members...), nil
	default:
		return nil, fmt.Errorf("unknown type annotation kind %d", ann.Kind)
	}
}

func resolveAll(anns []*ast.TypeAnnotation) ([]*types.Type, error) {
	out := make([]*types.Type, len(anns))
	for i, a := range anns {
		t, err := Resolve(a)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func resolveSimple(name string) (*types.Type, error) {
	switch name {
	case "weak":
		return types.NewWeak(), nil
	case "poly":
		return types.NewPoly(), nil
	}
	if ctor, ok := simpleTypeNames[name]; ok {
		return ctor(), nil
	}
	// A bare name with no parameters can still denote a parameterless
	// container constructor type, e.g. a `range` annotation.
	return resolveGeneric(name, nil)
}

func resolveGeneric(name string, params []*ast.TypeAnnotation) (*types.Type, error) {
	switch {
	case name == "Array":
		elem, err := exactlyOne(params, "Array")
		if err != nil {
			return nil, err
		}
		return types.NewArray(elem), nil
	case name == "Set":
		elem, err := exactlyOne(params, "Set")
		if err != nil {
			return nil, err
		}
		return types.NewSet(elem), nil
	case name == "Map":
		elems, err := resolveAll(params)
		if err != nil {
			return nil, err
		}
		if len(elems) != 2 {
			return nil, errors.New("Map type requires exactly two type parameters")
		}
		return types.NewMap(elems[0], elems[1]), nil
	case heapAliases[name]:
		if len(params) != 1 {
			return nil, errors.New("Heap type requires exactly one type parameter")
		}
		elem, err := Resolve(params[0])
		if err != nil {
			return nil, err
		}
		return types.NewHeap(elem), nil
	case heapMapAliases[name]:
		elems, err := resolveAll(params)
		if err != nil {
			return nil, err
		}
		if len(elems) != 2 {
			return nil, errors.New("HeapMap type requires exactly two type parameters")
		}
		return types.NewHeapMap(elems[0], elems[1]), nil
	case name == "BinaryTree":
		elem, err := exactlyOne(params, "BinaryTree")
		if err != nil {
			return nil, err
		}
		return types.NewBinaryTree(elem), nil
	case name == "AVLTree":
		elem, err := exactlyOne(params, "AVLTree")
		if err != nil {
			return nil, err
		}
		return types.NewAVLTree(elem), nil
	case name == "Graph":
		if len(params) != 1 {
			return nil, errors.New("Graph type requires exactly one type parameter")
		}
		elem, err := Resolve(params[0])
		if err != nil {
			return nil, err
		}
		return types.NewGraph(elem), nil
	case name == "Tuple":
		elems, err := resolveAll(params)
		if err != nil {
			return nil, err
		}
		return types.NewTuple(elems...), nil
	case name == "range":
		return &types.Type{Kind: types.Range}, nil
	default:
		return nil, fmt.Errorf("unknown type '%s'", name)
	}
}

func exactlyOne(params []*ast.TypeAnnotation, category string) (*types.Type, error) {
	if len(params) != 1 {
		return nil, fmt.Errorf("%s type requires exactly one type parameter", category)
	}
	return Resolve(params[0])
}
