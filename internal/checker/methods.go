package checker

import "github.com/quill-lang/quill/internal/types"

// lookupMethod returns the Function-shaped signature of a built-in method
// on a container type (spec §4.2). Params and Return are built fresh per
// call against recv's actual Elem/Key/Value slots, so a caller that later
// sharpens those slots (the refiner) is refining the exact *Type nodes the
// container owns, not a copy.
func lookupMethod(recv *types.Type, name string) (*types.Type, bool) {
	switch recv.Kind {
	case types.Array:
		return arrayMethod(recv, name)
	case types.Set:
		return setMethod(recv, name)
	case types.Map:
		return mapMethod(recv, name)
	case types.Heap:
		return heapMethod(recv, name)
	case types.HeapMap:
		return heapMapMethod(recv, name)
	case types.BinaryTree:
		return binaryTreeMethod(recv, name)
	case types.AVLTree:
		return avlTreeMethod(recv, name)
	case types.Graph:
		return graphMethod(recv, name)
	default:
		return nil, false
	}
}

func fn(params []*types.Type, ret *types.Type) *types.Type {
	return types.NewFunction(params, ret, false)
}

func arrayMethod(recv *types.Type, name string) (*types.Type, bool) {
	switch name {
	case "push":
		return fn([]*types.Type{recv.Elem}, types.VoidType), true
	case "pop":
		return fn(nil, recv.Elem), true
	case "length", "size":
		return fn(nil, types.IntType), true
	case "contains":
		return fn([]*types.Type{recv.Elem}, types.BoolType), true
	case "indexOf":
		return fn([]*types.Type{recv.Elem}, types.IntType), true
	case "sort", "reverse":
		return fn(nil, types.VoidType), true
	case "slice":
		// Fresh nodes, not the types.IntType singleton: refineCallArgs feeds
		// these straight into refineSlot, which would widen the shared
		// singleton itself in place if a caller passed mismatched bounds
		// under non-strict mode.
		return fn([]*types.Type{{Kind: types.Int}, {Kind: types.Int}}, recv), true
	default:
		return nil, false
	}
}

func setMethod(recv *types.Type, name string) (*types.Type, bool) {
	switch name {
	case "add":
		return fn([]*types.Type{recv.Elem}, types.VoidType), true
	case "has":
		return fn([]*types.Type{recv.Elem}, types.BoolType), true
	case "delete":
		return fn([]*types.Type{recv.Elem}, types.VoidType), true
	case "size":
		return fn(nil, types.IntType), true
	case "union", "intersect", "difference":
		return fn([]*types.Type{recv}, recv), true
	default:
		return nil, false
	}
}

func mapMethod(recv *types.Type, name string) (*types.Type, bool) {
	switch name {
	case "set":
		return fn([]*types.Type{recv.Key, recv.Value}, types.VoidType), true
	case "get":
		return fn([]*types.Type{recv.Key}, recv.Value), true
	case "has":
		return fn([]*types.Type{recv.Key}, types.BoolType), true
	case "delete":
		return fn([]*types.Type{recv.Key}, types.VoidType), true
	case "keys":
		return fn(nil, types.NewArray(recv.Key)), true
	case "values":
		return fn(nil, types.NewArray(recv.Value)), true
	case "entries":
		return fn(nil, types.NewArray(types.NewTuple(recv.Key, recv.Value))), true
	case "size":
		return fn(nil, types.IntType), true
	default:
		return nil, false
	}
}

func heapMethod(recv *types.Type, name string) (*types.Type, bool) {
	switch name {
	case "push":
		return fn([]*types.Type{recv.Elem}, types.VoidType), true
	case "pop", "peek":
		return fn(nil, recv.Elem), true
	case "size":
		return fn(nil, types.IntType), true
	default:
		return nil, false
	}
}

func heapMapMethod(recv *types.Type, name string) (*types.Type, bool) {
	switch name {
	case "push":
		return fn([]*types.Type{recv.Key, recv.Value}, types.VoidType), true
	case "pop", "peek":
		return fn(nil, recv.Key), true
	case "size":
		return fn(nil, types.IntType), true
	default:
		return nil, false
	}
}

func binaryTreeMethod(recv *types.Type, name string) (*types.Type, bool) {
	switch name {
	case "insert":
		return fn([]*types.Type{recv.Elem}, types.VoidType), true
	case "search":
		return fn([]*types.Type{recv.Elem}, types.BoolType), true
	case "getHeight":
		return fn(nil, types.IntType), true
	default:
		return nil, false
	}
}

func avlTreeMethod(recv *types.Type, name string) (*types.Type, bool) {
	// AVLTree supports the same interface as BinaryTree (spec §4.2:
	// "binarytree<E>/avltree<E>": identical method table).
	return binaryTreeMethod(recv, name)
}

func graphMethod(recv *types.Type, name string) (*types.Type, bool) {
	switch name {
	case "addVertex":
		return fn([]*types.Type{recv.Elem}, types.VoidType), true
	case "addEdge":
		// A fresh node for the weight parameter, not types.IntType: see the
		// Array.slice comment above — refineCallArgs feeds method params
		// straight into refineSlot's union-widening path, which would
		// corrupt the shared singleton in place under non-strict mode.
		return fn([]*types.Type{recv.Elem, recv.Elem, {Kind: types.Int}}, types.VoidType), true
	case "getNeighbors":
		return fn([]*types.Type{recv.Elem}, types.NewArray(edgeRecord(recv.Elem, false))), true
	case "hasVertex":
		return fn([]*types.Type{recv.Elem}, types.BoolType), true
	case "hasEdge":
		return fn([]*types.Type{recv.Elem, recv.Elem}, types.BoolType), true
	case "size":
		return fn(nil, types.IntType), true
	case "isDirected":
		return fn(nil, types.BoolType), true
	case "getEdges":
		return fn(nil, types.NewArray(edgeRecord(recv.Elem, true))), true
	case "getVertices":
		return fn(nil, types.NewArray(recv.Elem)), true
	default:
		return nil, false
	}
}

// edgeRecord builds the record type an edge-reporting method returns (spec
// §4.2): {to, weight} for getNeighbors, {from, to, weight} for getEdges.
func edgeRecord(node *types.Type, withFrom bool) *types.Type {
	weight := &types.Type{Kind: types.Int}
	if withFrom {
		return types.NewRecord(
			types.RecordField{Name: "from", Type: node},
			types.RecordField{Name: "to", Type: node},
			types.RecordField{Name: "weight", Type: weight},
		)
	}
	return types.NewRecord(
		types.RecordField{Name: "to", Type: node},
		types.RecordField{Name: "weight", Type: weight},
	)
}
