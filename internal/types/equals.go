package types

// Equals reports whether a and b are structurally equivalent under the
// lattice's equality rules (spec §3.1): union/intersection members compare
// as multisets, record field order matters, function variadic-ness matters,
// and weak/poly placeholders are only equal to another weak/poly node (they
// are not wildcards for equality purposes — only for assignability, which
// the checker handles separately).
func Equals(a, b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if IsWeak(a) && IsWeak(b) {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Int, Float, String, Boolean, Void, Weak, Poly, Dynamic, Range, Predicate:
		return true
	case Array, Set, Heap, BinaryTree, AVLTree, Graph:
		return Equals(a.Elem, b.Elem)
	case Map, HeapMap:
		return Equals(a.Key, b.Key) && Equals(a.Value, b.Value)
	case Tuple:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !Equals(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case Record:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name || !Equals(a.Fields[i].Type, b.Fields[i].Type) {
				return false
			}
		}
		return true
	case Function:
		if a.Variadic != b.Variadic || len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !Equals(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return Equals(a.Return, b.Return)
	case Union, Intersection:
		return sameMultiset(a.Members, b.Members)
	default:
		return false
	}
}

// sameMultiset reports whether x and y contain the same types with the same
// multiplicities, ignoring order (spec §3.1: "union/intersection members
// are considered equal under any permutation").
func sameMultiset(x, y []*Type) bool {
	if len(x) != len(y) {
		return false
	}
	matched := make([]bool, len(y))
	for _, xm := range x {
		found := false
		for i, ym := range y {
			if matched[i] {
				continue
			}
			if Equals(xm, ym) {
				matched[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
