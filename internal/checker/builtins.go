package checker

import "github.com/quill-lang/quill/internal/types"

// seedBuiltins installs the initial FunEnv/TypeEnv entries spec §6.4
// requires before the inferencer's first walk.
func seedBuiltins(ctx *Context) {
	ctx.Funs["print"] = &FunSignature{
		Parameters: []*types.Type{types.NewPoly()},
		ReturnType: types.VoidType,
		Variadic:   true,
	}

	heapCtor := func() *FunSignature {
		return &FunSignature{ReturnType: types.NewHeap(types.NewWeak())}
	}
	ctx.Funs["MinHeap"] = heapCtor()
	ctx.Funs["MaxHeap"] = heapCtor()

	heapMapCtor := func() *FunSignature {
		return &FunSignature{ReturnType: types.NewHeapMap(types.NewWeak(), types.NewWeak())}
	}
	ctx.Funs["MinHeapMap"] = heapMapCtor()
	ctx.Funs["MaxHeapMap"] = heapMapCtor()

	ctx.Funs["Graph"] = &FunSignature{
		Parameters: []*types.Type{types.BoolType},
		ReturnType: types.NewGraph(types.NewWeak()),
	}
	ctx.Funs["Map"] = &FunSignature{ReturnType: types.NewMap(types.NewWeak(), types.NewWeak())}
	ctx.Funs["Set"] = &FunSignature{ReturnType: types.NewSet(types.NewWeak())}
	ctx.Funs["BinaryTree"] = &FunSignature{ReturnType: types.NewBinaryTree(types.NewWeak())}
	ctx.Funs["AVLTree"] = &FunSignature{ReturnType: types.NewAVLTree(types.NewWeak())}

	// spec §6.4: "Type environment seed: inf = intersection{int, float}".
	ctx.Vars["inf"] = types.NewIntersection(types.IntType, types.FloatType)
}

// constructorNames is the set of callee identifiers that produce a fresh
// container type with all slots weak (spec §4.1 "Constructor identifiers").
var constructorNames = map[string]bool{
	"Map": true, "Set": true,
	"MinHeap": true, "MaxHeap": true,
	"MinHeapMap": true, "MaxHeapMap": true,
	"Graph": true, "BinaryTree": true, "AVLTree": true,
}
