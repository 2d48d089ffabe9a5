package types

import "testing"

func TestEqualityCacheMemoizes(t *testing.T) {
	c := NewEqualityCache()
	a := NewArray(IntType)
	b := NewArray(IntType)

	if !c.Equals(a, b) {
		t.Fatal("Array<int> should equal Array<int>")
	}
	if len(c.entries) != 1 {
		t.Errorf("len(c.entries) = %d, want 1 after one lookup", len(c.entries))
	}
	if !c.Equals(a, b) {
		t.Fatal("second lookup should still report equal")
	}
	if len(c.entries) != 1 {
		t.Errorf("len(c.entries) = %d, want 1 (repeat lookup must hit the cache, not grow it)", len(c.entries))
	}
}

func TestEqualityCacheClear(t *testing.T) {
	c := NewEqualityCache()
	c.Equals(IntType, IntType)
	if len(c.entries) == 0 {
		t.Fatal("expected a cache entry before Clear")
	}
	c.Clear()
	if len(c.entries) != 0 {
		t.Errorf("len(c.entries) = %d, want 0 after Clear", len(c.entries))
	}
}

// TestEqualityCacheCanonicalKeyIsOrderIndependent is the spec's core
// requirement for the cache (§9: "Equality cache keys must be canonical"):
// two permutations of the same union must land on the same cache key so a
// lookup against one ordering is a hit against the other.
func TestEqualityCacheCanonicalKeyIsOrderIndependent(t *testing.T) {
	c := NewEqualityCache()
	u1 := &Type{Kind: Union, Members: []*Type{IntType, StringType}}
	u2 := &Type{Kind: Union, Members: []*Type{StringType, IntType}}

	key1 := c.key(u1, u1)
	key2 := c.key(u2, u2)
	if key1 != key2 {
		t.Errorf("canonical keys differ across member permutations: %v vs %v", key1, key2)
	}
}

func TestEqualityCacheFollowsSharpenedSlot(t *testing.T) {
	c := NewEqualityCache()
	slot := NewWeak()
	target := IntType

	if c.Equals(slot, target) {
		t.Fatal("a weak slot should not be Equals to a concrete type before sharpening")
	}
	Sharpen(slot, target)
	if !c.Equals(slot, target) {
		t.Error("after sharpening, the slot should render and compare as int")
	}
}
