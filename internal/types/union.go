package types

// NewUnion builds a union type from members, flattening nested unions one
// level (spec §9 open question: "do not guess... document as part of the
// equality contract" — quill flattens union<union<...>> so the lattice
// never holds a union whose direct member is itself a union) and
// deduplicating structurally-equal members. A union of a single distinct
// member collapses to that member; an empty union is an error case the
// caller should not hit (every construction site has at least two types
// that disagreed).
func NewUnion(members ...*Type) *Type {
	flat := flattenMembers(members, Union)
	deduped := dedupeMembers(flat)
	if len(deduped) == 1 {
		return deduped[0]
	}
	return &Type{Kind: Union, Members: deduped}
}

// NewIntersection builds an intersection type the same way NewUnion does,
// flattening nested intersections and deduplicating members.
func NewIntersection(members ...*Type) *Type {
	flat := flattenMembers(members, Intersection)
	deduped := dedupeMembers(flat)
	if len(deduped) == 1 {
		return deduped[0]
	}
	return &Type{Kind: Intersection, Members: deduped}
}

func flattenMembers(members []*Type, kind Kind) []*Type {
	out := make([]*Type, 0, len(members))
	for _, m := range members {
		if m != nil && m.Kind == kind {
			out = append(out, flattenMembers(m.Members, kind)...)
			continue
		}
		out = append(out, m)
	}
	return out
}

func dedupeMembers(members []*Type) []*Type {
	out := make([]*Type, 0, len(members))
	for _, m := range members {
		dup := false
		for _, existing := range out {
			if Equals(existing, m) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, m)
		}
	}
	return out
}

// UnionMembers returns t's members if it is a union, or a single-element
// slice containing t otherwise. Convenient for call sites that want to
// treat "any type" uniformly as a set of alternatives.
func UnionMembers(t *Type) []*Type {
	if t != nil && t.Kind == Union {
		return t.Members
	}
	return []*Type{t}
}

// AllNumeric reports whether every member of a union is numeric (spec §4.5
// numeric-kind helper: "recognises union where every member is numeric").
func AllNumeric(members []*Type) bool {
	if len(members) == 0 {
		return false
	}
	for _, m := range members {
		if !IsNumeric(m) {
			return false
		}
	}
	return true
}
