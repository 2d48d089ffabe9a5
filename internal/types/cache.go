package types

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// EqualityCache memoizes structural equality checks keyed by a canonical
// pair of type strings. Canonicalizing sorts union/intersection member
// strings with a locale-aware collator (spec §9: "Equality cache keys must
// be canonical (sorted union/intersection members) or the cache will return
// stale false") so two differently-ordered unions that are Equals-equal
// always land on the same cache entry — including when a record field name
// embedded in a member's rendering uses non-ASCII text.
type EqualityCache struct {
	collator *collate.Collator
	entries  map[[2]string]bool
}

// NewEqualityCache creates an empty cache.
func NewEqualityCache() *EqualityCache {
	return &EqualityCache{
		collator: collate.New(language.Und),
		entries:  make(map[[2]string]bool),
	}
}

// Clear discards all memoized results. Called at every refinement pass
// boundary (spec §4.4) because a slot mutation earlier in the pass can
// change the outcome of an equality check that was already memoized.
func (c *EqualityCache) Clear() {
	c.entries = make(map[[2]string]bool)
}

// Equals is Equals, memoized through the cache.
func (c *EqualityCache) Equals(a, b *Type) bool {
	key := c.key(a, b)
	if v, ok := c.entries[key]; ok {
		return v
	}
	v := Equals(a, b)
	c.entries[key] = v
	return v
}

func (c *EqualityCache) key(a, b *Type) [2]string {
	ka, kb := c.canonicalString(a), c.canonicalString(b)
	if ka > kb {
		ka, kb = kb, ka
	}
	return [2]string{ka, kb}
}

// canonicalString renders t the way String does, except union/intersection
// members are collated into a stable order first so permutations of the
// same multiset produce the same key.
func (c *EqualityCache) canonicalString(t *Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind != Union && t.Kind != Intersection {
		return t.String()
	}
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = c.canonicalString(m)
	}
	sorted := append([]string(nil), parts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if r := c.collator.CompareString(sorted[i], sorted[j]); r != 0 {
			return r < 0
		}
		return sorted[i] < sorted[j] // byte-wise tie-break when the collator treats two forms as equal
	})
	sep := " | "
	if t.Kind == Intersection {
		sep = " & "
	}
	out := sorted[0]
	for _, p := range sorted[1:] {
		out += sep + p
	}
	return out
}
