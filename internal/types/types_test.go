package types

import "testing"

func TestSharpenOverwritesInPlace(t *testing.T) {
	slot := NewWeak()
	array := NewArray(IntType)
	Sharpen(slot, array)

	if slot.Kind != Array {
		t.Errorf("slot.Kind = %v, want Array", slot.Kind)
	}
	if slot.Elem != IntType {
		t.Errorf("slot.Elem = %v, want IntType", slot.Elem)
	}
}

func TestSharpenSelfIsNoop(t *testing.T) {
	slot := NewWeak()
	Sharpen(slot, slot)
	if slot.Kind != Weak {
		t.Errorf("slot.Kind = %v, want Weak (self-sharpen must be a no-op)", slot.Kind)
	}
}

func TestSharpenPreservesAliasIdentity(t *testing.T) {
	// A container holding a weak element slot must see the sharpened type
	// through the same pointer once the slot is sharpened (spec §4.4: every
	// alias of a node observes the same, more specific type).
	elem := NewWeak()
	array := NewArray(elem)
	Sharpen(elem, IntType)

	if array.Elem.Kind != Int {
		t.Errorf("array.Elem.Kind = %v, want Int after sharpening the shared slot", array.Elem.Kind)
	}
}

func TestIsWeak(t *testing.T) {
	if !IsWeak(NewWeak()) {
		t.Error("NewWeak() should be weak")
	}
	if !IsWeak(NewPoly()) {
		t.Error("NewPoly() should be weak")
	}
	if IsWeak(IntType) {
		t.Error("IntType should not be weak")
	}
	if IsWeak(nil) {
		t.Error("nil should not be weak")
	}
}

func TestIsWeaklyLooksInsideUnion(t *testing.T) {
	u := &Type{Kind: Union, Members: []*Type{IntType, NewWeak()}}
	if !IsWeakly(u) {
		t.Error("a union with a weak member should be weakly")
	}
	concrete := &Type{Kind: Union, Members: []*Type{IntType, StringType}}
	if IsWeakly(concrete) {
		t.Error("a union of concrete members should not be weakly")
	}
}

func TestEqualsPrimitives(t *testing.T) {
	if !Equals(IntType, IntType) {
		t.Error("IntType should equal itself")
	}
	if Equals(IntType, StringType) {
		t.Error("IntType should not equal StringType")
	}
	if Equals(nil, IntType) || Equals(IntType, nil) {
		t.Error("nil should never equal a concrete type")
	}
	if !Equals(nil, nil) {
		t.Error("two nils should be equal (a==b short circuit)")
	}
}

func TestEqualsWeakPolyIdentityFree(t *testing.T) {
	// Two distinct weak nodes are still Equals-equal, regardless of
	// identity; this is what lets an array literal look uniform at
	// inference time before refinement sharpens its elements apart.
	a, b := NewWeak(), NewWeak()
	if !Equals(a, b) {
		t.Error("two distinct weak placeholders should be Equals-equal")
	}
	if !Equals(NewPoly(), NewWeak()) {
		t.Error("weak and poly placeholders should be Equals-equal to each other")
	}
}

func TestEqualsContainers(t *testing.T) {
	a := NewArray(IntType)
	b := NewArray(IntType)
	c := NewArray(StringType)
	if !Equals(a, b) {
		t.Error("Array<int> should equal Array<int>")
	}
	if Equals(a, c) {
		t.Error("Array<int> should not equal Array<string>")
	}

	m1 := NewMap(StringType, IntType)
	m2 := NewMap(StringType, IntType)
	m3 := NewMap(StringType, BoolType)
	if !Equals(m1, m2) {
		t.Error("Map<string, int> should equal Map<string, int>")
	}
	if Equals(m1, m3) {
		t.Error("Map<string, int> should not equal Map<string, boolean>")
	}
}

func TestEqualsTuple(t *testing.T) {
	a := NewTuple(IntType, StringType)
	b := NewTuple(IntType, StringType)
	c := NewTuple(StringType, IntType)
	if !Equals(a, b) {
		t.Error("matching tuples should be equal")
	}
	if Equals(a, c) {
		t.Error("tuples differ by position, not just multiset, and should not be equal")
	}
}

func TestEqualsRecordFieldOrderMatters(t *testing.T) {
	a := NewRecord(RecordField{Name: "x", Type: IntType}, RecordField{Name: "y", Type: StringType})
	b := NewRecord(RecordField{Name: "x", Type: IntType}, RecordField{Name: "y", Type: StringType})
	c := NewRecord(RecordField{Name: "y", Type: StringType}, RecordField{Name: "x", Type: IntType})
	if !Equals(a, b) {
		t.Error("identically-ordered records should be equal")
	}
	if Equals(a, c) {
		t.Error("record field order matters for equality")
	}
}

func TestEqualsFunctionVariadic(t *testing.T) {
	a := NewFunction([]*Type{IntType}, VoidType, false)
	b := NewFunction([]*Type{IntType}, VoidType, true)
	if Equals(a, b) {
		t.Error("variadic-ness must affect function equality")
	}
}

func TestEqualsUnionIsMultiset(t *testing.T) {
	a := NewUnion(IntType, StringType)
	b := &Type{Kind: Union, Members: []*Type{StringType, IntType}}
	if !Equals(a, b) {
		t.Error("union members should compare as a multiset regardless of order")
	}
}

func TestNewUnionFlattensNested(t *testing.T) {
	inner := &Type{Kind: Union, Members: []*Type{IntType, StringType}}
	outer := NewUnion(inner, BoolType)
	if outer.Kind != Union {
		t.Fatalf("outer.Kind = %v, want Union", outer.Kind)
	}
	if len(outer.Members) != 3 {
		t.Fatalf("len(outer.Members) = %d, want 3 (nested union must flatten one level)", len(outer.Members))
	}
}

func TestNewUnionDedupes(t *testing.T) {
	u := NewUnion(IntType, IntType, StringType)
	if len(u.Members) != 2 {
		t.Fatalf("len(u.Members) = %d, want 2 (duplicate members must collapse)", len(u.Members))
	}
}

func TestNewUnionSingleMemberCollapses(t *testing.T) {
	u := NewUnion(IntType, IntType)
	if u.Kind != Int {
		t.Errorf("NewUnion(int, int) should collapse to the bare int type, got %v", u.Kind)
	}
}

func TestUnionMembers(t *testing.T) {
	u := NewUnion(IntType, StringType)
	members := UnionMembers(u)
	if len(members) != 2 {
		t.Fatalf("len(members) = %d, want 2", len(members))
	}
	single := UnionMembers(IntType)
	if len(single) != 1 || single[0] != IntType {
		t.Error("UnionMembers of a non-union type should return a single-element slice")
	}
}

func TestAllNumeric(t *testing.T) {
	if !AllNumeric([]*Type{IntType, FloatType}) {
		t.Error("int and float should both be numeric")
	}
	if AllNumeric([]*Type{IntType, StringType}) {
		t.Error("a string member should disqualify AllNumeric")
	}
	if AllNumeric(nil) {
		t.Error("an empty member list should not be AllNumeric")
	}
}

func TestIsContainer(t *testing.T) {
	cases := []struct {
		t    *Type
		want bool
	}{
		{NewArray(IntType), true},
		{NewSet(IntType), true},
		{NewMap(StringType, IntType), true},
		{NewHeap(IntType), true},
		{NewHeapMap(StringType, IntType), true},
		{NewBinaryTree(IntType), true},
		{NewAVLTree(IntType), true},
		{NewGraph(IntType), true},
		{IntType, false},
		{NewTuple(IntType), false},
		{nil, false},
	}
	for _, c := range cases {
		if got := IsContainer(c.t); got != c.want {
			t.Errorf("IsContainer(%v) = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestStringRendering(t *testing.T) {
	cases := []struct {
		t    *Type
		want string
	}{
		{IntType, "int"},
		{NewArray(IntType), "Array<int>"},
		{NewMap(StringType, IntType), "Map<string, int>"},
		{NewHeapMap(IntType, StringType), "HeapMap<int, string>"},
		{NewUnion(IntType, StringType), "int | string"},
		{NewTuple(IntType, BoolType), "Tuple<int, boolean>"},
	}
	for _, c := range cases {
		if got := c.t.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}
