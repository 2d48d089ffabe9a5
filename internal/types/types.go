// Package types implements the type lattice described by the language
// specification: primitives, the weak/poly/dynamic placeholders, the
// built-in container types, unions, intersections, functions and the
// opaque predicate type produced by meta-identifier calls.
//
// A *Type is the single mutable node kind the rest of the checker operates
// on. Refinement sharpens a weak/poly slot by overwriting the fields of the
// pointee in place (see Sharpen) so that every alias of that node — in a
// TypeEnv, inside a containing array/map/record, on an AST annotation —
// observes the same, more specific type without any call site needing to
// know the node was shared.
package types

// Kind tags the shape of a Type node.
type Kind uint8

const (
	Int Kind = iota
	Float
	String
	Boolean
	Void
	Weak
	Poly
	Dynamic
	Array
	Set
	Map
	Heap
	HeapMap
	BinaryTree
	AVLTree
	Graph
	Range
	Tuple
	Record
	Function
	Union
	Intersection
	Predicate
)

// RecordField is one named, ordered field of a record type.
type RecordField struct {
	Name string
	Type *Type
}

// Type is a node in the type lattice. Only the fields relevant to Kind are
// meaningful; the zero value of the others is ignored.
type Type struct {
	Kind Kind

	// Array, Set, Heap, BinaryTree, AVLTree: element type.
	// Graph: node type.
	Elem *Type

	// Map, HeapMap: key/value types.
	Key   *Type
	Value *Type

	// Tuple: ordered positional element types.
	Elems []*Type

	// Record: ordered named fields.
	Fields []RecordField

	// Function: parameter types, return type, and whether the last
	// parameter is variadic (repeats for extra trailing arguments).
	Params   []*Type
	Return   *Type
	Variadic bool

	// Union, Intersection: member types. Order is not semantic; Equals and
	// the equality cache key treat this as a multiset (see cache.go).
	Members []*Type
}

// Singleton primitives. These are never targets of Sharpen: a weak slot is
// always a freshly allocated node (see NewWeak), never one of these shared
// instances.
var (
	IntType     = &Type{Kind: Int}
	FloatType   = &Type{Kind: Float}
	StringType  = &Type{Kind: String}
	BoolType    = &Type{Kind: Boolean}
	VoidType    = &Type{Kind: Void}
	DynamicType = &Type{Kind: Dynamic}
	RangeType   = &Type{Kind: Range}
	PredicateType = &Type{Kind: Predicate}
)

// NewWeak allocates a fresh unresolved placeholder. Every weak slot in the
// lattice (an empty array literal's element type, a container constructor's
// key/value slots, an uninferred parameter) must be its own *Type returned
// from this function so that Sharpen can safely overwrite it in place.
func NewWeak() *Type { return &Type{Kind: Weak} }

// NewPoly allocates a fresh polymorphic placeholder, refined identically to
// Weak but kept distinct for diagnostics (it marks a built-in signature slot
// rather than a user-observed unknown).
func NewPoly() *Type { return &Type{Kind: Poly} }

func NewArray(elem *Type) *Type      { return &Type{Kind: Array, Elem: elem} }
func NewSet(elem *Type) *Type        { return &Type{Kind: Set, Elem: elem} }
func NewMap(key, value *Type) *Type  { return &Type{Kind: Map, Key: key, Value: value} }
func NewHeap(elem *Type) *Type       { return &Type{Kind: Heap, Elem: elem} }
func NewHeapMap(key, value *Type) *Type {
	return &Type{Kind: HeapMap, Key: key, Value: value}
}
func NewBinaryTree(elem *Type) *Type { return &Type{Kind: BinaryTree, Elem: elem} }
func NewAVLTree(elem *Type) *Type    { return &Type{Kind: AVLTree, Elem: elem} }
func NewGraph(node *Type) *Type      { return &Type{Kind: Graph, Elem: node} }

func NewTuple(elems ...*Type) *Type { return &Type{Kind: Tuple, Elems: elems} }

func NewRecord(fields ...RecordField) *Type { return &Type{Kind: Record, Fields: fields} }

func NewFunction(params []*Type, ret *Type, variadic bool) *Type {
	return &Type{Kind: Function, Params: params, Return: ret, Variadic: variadic}
}

// Sharpen overwrites slot's fields in place with concrete's, preserving
// slot's identity so every alias of slot observes the sharper type. Callers
// must only call this on a node reached via NewWeak/NewPoly (directly or as
// a container slot that refinement widens); sharpening a shared primitive
// singleton would corrupt every other reference to it.
func Sharpen(slot, concrete *Type) {
	if slot == concrete {
		return
	}
	*slot = *concrete
}

// IsWeak reports whether t is an unresolved weak or poly placeholder. Unlike
// IsWeakly, it does not look inside unions — the checker's "weakness test"
// (spec §4.5) needs that deeper check and calls IsWeakly instead.
func IsWeak(t *Type) bool {
	return t != nil && (t.Kind == Weak || t.Kind == Poly)
}

// IsWeakly reports whether t is weak, or a union/intersection with any weak
// member anywhere inside it (spec §4.5: "weak anywhere, including inside a
// union, is treated as weak by the checker").
func IsWeakly(t *Type) bool {
	if t == nil {
		return false
	}
	if IsWeak(t) {
		return true
	}
	if t.Kind == Union || t.Kind == Intersection {
		for _, m := range t.Members {
			if IsWeakly(m) {
				return true
			}
		}
	}
	return false
}

// IsNumeric reports whether t is int or float (not unwrapping unions or
// intersections — callers that need that unwrapping use the checker's
// numericKind).
func IsNumeric(t *Type) bool {
	return t != nil && (t.Kind == Int || t.Kind == Float)
}

// IsContainer reports whether t is one of the built-in container kinds that
// carry a method table (spec §4.2).
func IsContainer(t *Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case Array, Set, Map, Heap, HeapMap, BinaryTree, AVLTree, Graph:
		return true
	default:
		return false
	}
}
