package checker

import (
	"testing"

	"github.com/quill-lang/quill/internal/types"
)

func TestArrayMethodSignatures(t *testing.T) {
	recv := types.NewArray(types.NewWeak())
	recv.Elem.Kind = types.Int // pretend it has already been refined to Array<int>

	push, ok := lookupMethod(recv, "push")
	if !ok || len(push.Params) != 1 || push.Params[0] != recv.Elem {
		t.Fatalf("push signature wrong: %v, ok=%v", push, ok)
	}
	length, ok := lookupMethod(recv, "length")
	if !ok || length.Return.Kind != types.Int {
		t.Fatalf("length signature wrong: %v, ok=%v", length, ok)
	}
	if _, ok := lookupMethod(recv, "nonexistent"); ok {
		t.Error("lookupMethod should report false for an unknown method name")
	}
}

// Regression test: "slice"'s two bound parameters must never be the shared
// types.IntType singleton, since refineCallArgs feeds method parameters
// straight into refineSlot's union-widening path (refine.go), which would
// corrupt the singleton in place under non-strict mode.
func TestArraySliceBoundsAreNotSharedSingleton(t *testing.T) {
	recv := types.NewArray(types.IntType)
	slice, ok := lookupMethod(recv, "slice")
	if !ok || len(slice.Params) != 2 {
		t.Fatalf("slice signature wrong: %v, ok=%v", slice, ok)
	}
	for i, p := range slice.Params {
		if p == types.IntType {
			t.Errorf("slice param %d is the shared types.IntType singleton", i)
		}
		if p.Kind != types.Int {
			t.Errorf("slice param %d.Kind = %v, want Int", i, p.Kind)
		}
	}
}

func TestMapMethodSignatures(t *testing.T) {
	recv := types.NewMap(types.StringType, types.IntType)
	set, ok := lookupMethod(recv, "set")
	if !ok || set.Params[0] != recv.Key || set.Params[1] != recv.Value {
		t.Fatalf("set signature should alias recv.Key/recv.Value: %v", set)
	}
	get, ok := lookupMethod(recv, "get")
	if !ok || get.Return != recv.Value {
		t.Fatalf("get should return recv.Value: %v", get)
	}
	entries, ok := lookupMethod(recv, "entries")
	if !ok || entries.Return.Kind != types.Array || entries.Return.Elem.Kind != types.Tuple {
		t.Fatalf("entries should return array<tuple<K,V>>: %v", entries)
	}
	del, ok := lookupMethod(recv, "delete")
	if !ok || del.Return.Kind != types.Void {
		t.Fatalf("delete should return void: %v", del)
	}
}

func TestSetMethodSignatures(t *testing.T) {
	recv := types.NewSet(types.StringType)
	has, ok := lookupMethod(recv, "has")
	if !ok || len(has.Params) != 1 || has.Return.Kind != types.Boolean {
		t.Fatalf("has signature wrong: %v, ok=%v", has, ok)
	}
	del, ok := lookupMethod(recv, "delete")
	if !ok || del.Return.Kind != types.Void {
		t.Fatalf("delete should return void, not boolean: %v, ok=%v", del, ok)
	}
	if _, ok := lookupMethod(recv, "contains"); ok {
		t.Error("set no longer has a \"contains\" method, it was renamed to \"has\"")
	}
	if _, ok := lookupMethod(recv, "remove"); ok {
		t.Error("set no longer has a \"remove\" method, it was renamed to \"delete\"")
	}
}

func TestHeapMapMethodSignatures(t *testing.T) {
	recv := types.NewHeapMap(types.StringType, types.IntType)
	pop, ok := lookupMethod(recv, "pop")
	if !ok || pop.Return != recv.Key {
		t.Fatalf("pop should return recv.Key, not a tuple: %v, ok=%v", pop, ok)
	}
	peek, ok := lookupMethod(recv, "peek")
	if !ok || peek.Return != recv.Key {
		t.Fatalf("peek should return recv.Key, not a tuple: %v, ok=%v", peek, ok)
	}
}

func TestGraphMethodSignatures(t *testing.T) {
	recv := types.NewGraph(types.NewWeak())

	addVertex, ok := lookupMethod(recv, "addVertex")
	if !ok || len(addVertex.Params) != 1 || addVertex.Params[0] != recv.Elem {
		t.Fatalf("addVertex signature wrong: %v, ok=%v", addVertex, ok)
	}

	addEdge, ok := lookupMethod(recv, "addEdge")
	if !ok || len(addEdge.Params) != 3 || addEdge.Params[0] != recv.Elem || addEdge.Params[1] != recv.Elem {
		t.Fatalf("addEdge should take two recv.Elem-typed nodes plus a weight: %v", addEdge)
	}
	if addEdge.Params[2] == types.IntType {
		t.Error("addEdge's weight parameter is the shared types.IntType singleton")
	}
	if addEdge.Params[2].Kind != types.Int {
		t.Errorf("addEdge's weight parameter.Kind = %v, want Int", addEdge.Params[2].Kind)
	}

	getNeighbors, ok := lookupMethod(recv, "getNeighbors")
	if !ok || getNeighbors.Return.Kind != types.Array || getNeighbors.Return.Elem.Kind != types.Record {
		t.Fatalf("getNeighbors should return array<record{to,weight}>: %v", getNeighbors)
	}
	if fields := getNeighbors.Return.Elem.Fields; len(fields) != 2 || fields[0].Name != "to" || fields[1].Name != "weight" {
		t.Fatalf("getNeighbors record fields wrong: %v", fields)
	}

	getEdges, ok := lookupMethod(recv, "getEdges")
	if !ok || getEdges.Return.Kind != types.Array || getEdges.Return.Elem.Kind != types.Record {
		t.Fatalf("getEdges should return array<record{from,to,weight}>: %v", getEdges)
	}
	if fields := getEdges.Return.Elem.Fields; len(fields) != 3 || fields[0].Name != "from" || fields[1].Name != "to" || fields[2].Name != "weight" {
		t.Fatalf("getEdges record fields wrong: %v", fields)
	}

	getVertices, ok := lookupMethod(recv, "getVertices")
	if !ok || getVertices.Return.Kind != types.Array || getVertices.Return.Elem != recv.Elem {
		t.Fatalf("getVertices should return array<N> aliasing recv.Elem: %v", getVertices)
	}

	hasVertex, ok := lookupMethod(recv, "hasVertex")
	if !ok || len(hasVertex.Params) != 1 || hasVertex.Return.Kind != types.Boolean {
		t.Fatalf("hasVertex signature wrong: %v, ok=%v", hasVertex, ok)
	}
	hasEdge, ok := lookupMethod(recv, "hasEdge")
	if !ok || len(hasEdge.Params) != 2 || hasEdge.Return.Kind != types.Boolean {
		t.Fatalf("hasEdge signature wrong: %v, ok=%v", hasEdge, ok)
	}
	size, ok := lookupMethod(recv, "size")
	if !ok || size.Return.Kind != types.Int {
		t.Fatalf("size signature wrong: %v, ok=%v", size, ok)
	}
	isDirected, ok := lookupMethod(recv, "isDirected")
	if !ok || isDirected.Return.Kind != types.Boolean {
		t.Fatalf("isDirected signature wrong: %v, ok=%v", isDirected, ok)
	}

	for _, old := range []string{"addNode", "hasNode", "nodes", "neighbors"} {
		if _, ok := lookupMethod(recv, old); ok {
			t.Errorf("graph should no longer expose the old method name %q", old)
		}
	}
}

func TestAVLTreeInheritsBinaryTreeMethods(t *testing.T) {
	recv := types.NewAVLTree(types.IntType)
	insert, ok := lookupMethod(recv, "insert")
	if !ok || len(insert.Params) != 1 {
		t.Fatalf("AVLTree should inherit BinaryTree's insert: %v, ok=%v", insert, ok)
	}
	search, ok := lookupMethod(recv, "search")
	if !ok || search.Return.Kind != types.Boolean {
		t.Fatalf("AVLTree should inherit BinaryTree's search: %v, ok=%v", search, ok)
	}
	height, ok := lookupMethod(recv, "getHeight")
	if !ok || height.Return.Kind != types.Int {
		t.Fatalf("AVLTree should inherit BinaryTree's getHeight: %v, ok=%v", height, ok)
	}
	if _, ok := lookupMethod(recv, "remove"); ok {
		t.Error("AVLTree's method table matches BinaryTree's exactly and has no separate remove")
	}
}

func TestBinaryTreeMethodSignatures(t *testing.T) {
	recv := types.NewBinaryTree(types.IntType)
	for _, old := range []string{"contains", "height", "inorder", "preorder", "postorder"} {
		if _, ok := lookupMethod(recv, old); ok {
			t.Errorf("binarytree should no longer expose the old method name %q", old)
		}
	}
}

func TestLookupMethodUnsupportedKind(t *testing.T) {
	if _, ok := lookupMethod(types.IntType, "anything"); ok {
		t.Error("a primitive type should have no built-in methods")
	}
}
