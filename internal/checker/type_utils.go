package checker

import "github.com/quill-lang/quill/internal/types"

// Phase distinguishes which pass is driving synth, since a handful of
// expression forms behave differently per pass (spec §4.1/§4.5): the
// checker is strict where the inferencer is lenient (map index key
// checking), and the refiner must never raise an inference-phase error
// (spec §7) where the checker does.
type Phase int

const (
	PhaseInfer Phase = iota
	PhaseRefine
	PhaseCheck
)

// numericKind reports the effective arithmetic kind of t: "int", "float",
// or ok=false if t does not participate in arithmetic. It unwraps
// intersection (preferring int over float, spec §4.5) and union (only when
// every member is numeric, result float if any member is float).
func numericKind(t *types.Type) (kind string, ok bool) {
	if t == nil {
		return "", false
	}
	switch t.Kind {
	case types.Int:
		return "int", true
	case types.Float:
		return "float", true
	case types.Intersection:
		hasInt, hasFloat := false, false
		for _, m := range t.Members {
			if k, mok := numericKind(m); mok {
				if k == "int" {
					hasInt = true
				} else {
					hasFloat = true
				}
			}
		}
		if hasInt {
			return "int", true
		}
		if hasFloat {
			return "float", true
		}
		return "", false
	case types.Union:
		if !types.AllNumeric(t.Members) {
			return "", false
		}
		for _, m := range t.Members {
			if m.Kind == types.Float {
				return "float", true
			}
		}
		return "int", true
	default:
		return "", false
	}
}

// assignable reports whether a value of type value may be used where target
// is expected. weak/poly and dynamic are wildcards on either side (spec:
// "weak... may be unified with any concrete type"; "dynamic... accepts any
// operation"); container kinds recurse into their element/key/value slots so
// a still-weak-slotted container (a fresh Map()/Set()/... constructor call)
// is assignable to a concretely-annotated one of the same kind — the shape
// scenario 3's `let m: Map<string,int> = Map()` depends on, since Map()
// always returns fresh weak slots regardless of the declared annotation;
// otherwise it falls back to structural equality, or — when target is a
// union — equality with any one member.
func assignable(ctx *Context, target, value *types.Type) bool {
	if target == nil || value == nil {
		return true
	}
	if types.IsWeak(target) || types.IsWeak(value) {
		return true
	}
	if target.Kind == types.Dynamic || value.Kind == types.Dynamic {
		return true
	}
	if target.Kind == value.Kind {
		switch target.Kind {
		case types.Array, types.Set, types.Heap, types.BinaryTree, types.AVLTree, types.Graph:
			return assignable(ctx, target.Elem, value.Elem)
		case types.Map, types.HeapMap:
			return assignable(ctx, target.Key, value.Key) && assignable(ctx, target.Value, value.Value)
		case types.Tuple:
			if len(target.Elems) != len(value.Elems) {
				return false
			}
			for i := range target.Elems {
				if !assignable(ctx, target.Elems[i], value.Elems[i]) {
					return false
				}
			}
			return true
		case types.Record:
			if len(target.Fields) != len(value.Fields) {
				return false
			}
			for i := range target.Fields {
				if target.Fields[i].Name != value.Fields[i].Name || !assignable(ctx, target.Fields[i].Type, value.Fields[i].Type) {
					return false
				}
			}
			return true
		}
	}
	if ctx.Cache.Equals(target, value) {
		return true
	}
	if target.Kind == types.Union {
		for _, m := range target.Members {
			if assignable(ctx, m, value) {
				return true
			}
		}
		return false
	}
	if value.Kind == types.Union {
		for _, m := range value.Members {
			if !assignable(ctx, target, m) {
				return false
			}
		}
		return true
	}
	return false
}

// iterableElementType implements the for-loop binding rule of spec §4.3:
// array/set element type, map/heapmap key type, heap element type, int for
// range, weak for weak, dynamic otherwise.
func iterableElementType(iterable *types.Type) *types.Type {
	if iterable == nil {
		return types.DynamicType
	}
	switch iterable.Kind {
	case types.Array, types.Set:
		return iterable.Elem
	case types.Map, types.HeapMap:
		return iterable.Key
	case types.Heap:
		return iterable.Elem
	case types.Range:
		return types.IntType
	case types.Weak:
		return types.NewWeak()
	default:
		return types.DynamicType
	}
}

// isIterable reports whether a for-loop may range over t (spec §4.5
// ForStatement: "iterable must be array/set/map/heap/heapmap/range/weak").
func isIterable(t *types.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case types.Array, types.Set, types.Map, types.Heap, types.HeapMap, types.Range, types.Weak:
		return true
	default:
		return false
	}
}
