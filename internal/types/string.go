package types

import "strings"

// String renders t the way spec.md's own scenarios print types, e.g.
// "Array<int>", "Map<string, int | boolean>", "HeapMap<int, string>".
// The distilled spec assumes a renderer like this exists (scenario 1: "at
// runtime prints Array<int>") without specifying one; casing and the
// angle-bracket generic style are grounded on the teacher's own
// TypeAnnotation/ArrayTypeNode String() composition (see SPEC_FULL §12).
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Void:
		return "void"
	case Weak:
		return "weak"
	case Poly:
		return "poly"
	case Dynamic:
		return "dynamic"
	case Range:
		return "range"
	case Predicate:
		return "predicate"
	case Array:
		return "Array<" + t.Elem.String() + ">"
	case Set:
		return "Set<" + t.Elem.String() + ">"
	case Map:
		return "Map<" + t.Key.String() + ", " + t.Value.String() + ">"
	case Heap:
		return "Heap<" + t.Elem.String() + ">"
	case HeapMap:
		return "HeapMap<" + t.Key.String() + ", " + t.Value.String() + ">"
	case BinaryTree:
		return "BinaryTree<" + t.Elem.String() + ">"
	case AVLTree:
		return "AVLTree<" + t.Elem.String() + ">"
	case Graph:
		return "Graph<" + t.Elem.String() + ">"
	case Tuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = e.String()
		}
		return "Tuple<" + strings.Join(parts, ", ") + ">"
	case Record:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = f.Name + ": " + f.Type.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case Function:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		variadic := ""
		if t.Variadic {
			variadic = "..."
		}
		return "(" + strings.Join(parts, ", ") + variadic + ") -> " + t.Return.String()
	case Union:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			parts[i] = m.String()
		}
		return strings.Join(parts, " | ")
	case Intersection:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			parts[i] = m.String()
		}
		return strings.Join(parts, " & ")
	default:
		return "<unknown>"
	}
}
