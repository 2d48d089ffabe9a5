// Package astjson decodes the JSON interchange format the CLI reads a
// syntax tree from (SPEC_FULL §11): since lexing/parsing source text is out
// of scope (spec §1), tooling consumes trees built elsewhere and serialized
// as JSON, using github.com/tidwall/gjson for the read side the same way
// annotate.go uses tidwall/sjson to patch resolved types back in.
package astjson

import (
	"fmt"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/source"
	"github.com/tidwall/gjson"
)

// DecodeProgram parses raw JSON into a *ast.Program. Each node is a JSON
// object `{"type": "<NodeKind>", ...}`; position fields ("line", "column")
// are optional and default to source.Zero.
func DecodeProgram(data []byte) (*ast.Program, error) {
	root := gjson.ParseBytes(data)
	if !root.Exists() {
		return nil, fmt.Errorf("astjson: empty document")
	}
	stmtsVal := root.Get("statements")
	stmts := make([]ast.Statement, 0, len(stmtsVal.Array()))
	var err error
	stmtsVal.ForEach(func(_, v gjson.Result) bool {
		var s ast.Statement
		s, err = decodeStatement(v)
		if err != nil {
			return false
		}
		stmts = append(stmts, s)
		return true
	})
	if err != nil {
		return nil, err
	}
	return &ast.Program{Statements: stmts}, nil
}

func pos(v gjson.Result) source.Position {
	return source.Position{
		Line:   int(v.Get("line").Int()),
		Column: int(v.Get("column").Int()),
		Offset: int(v.Get("offset").Int()),
	}
}

func decodeStatement(v gjson.Result) (ast.Statement, error) {
	switch v.Get("type").String() {
	case "FunctionDeclaration":
		params, err := decodeParameters(v.Get("parameters"))
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(v.Get("body"))
		if err != nil {
			return nil, err
		}
		block, ok := body.(*ast.BlockStatement)
		if !ok {
			return nil, fmt.Errorf("astjson: FunctionDeclaration.body must be a BlockStatement")
		}
		ret, err := decodeTypeAnnotation(v.Get("returnType"))
		if err != nil {
			return nil, err
		}
		return &ast.FunctionDeclaration{
			Name:       v.Get("name").String(),
			Parameters: params,
			ReturnType: ret,
			Body:       block,
			NodePos:    pos(v),
		}, nil
	case "VariableDeclaration":
		var decls []*ast.VariableDeclarator
		var err error
		v.Get("declarations").ForEach(func(_, d gjson.Result) bool {
			var decl *ast.VariableDeclarator
			decl, err = decodeDeclarator(d)
			if err != nil {
				return false
			}
			decls = append(decls, decl)
			return true
		})
		if err != nil {
			return nil, err
		}
		return &ast.VariableDeclaration{Declarations: decls, NodePos: pos(v)}, nil
	case "BlockStatement":
		var stmts []ast.Statement
		var err error
		v.Get("statements").ForEach(func(_, s gjson.Result) bool {
			var st ast.Statement
			st, err = decodeStatement(s)
			if err != nil {
				return false
			}
			stmts = append(stmts, st)
			return true
		})
		if err != nil {
			return nil, err
		}
		return &ast.BlockStatement{Statements: stmts, NodePos: pos(v)}, nil
	case "ExpressionStatement":
		e, err := decodeExpression(v.Get("expression"))
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Expression: e, NodePos: pos(v)}, nil
	case "IfStatement":
		cond, err := decodeExpression(v.Get("condition"))
		if err != nil {
			return nil, err
		}
		then, err := decodeStatement(v.Get("then"))
		if err != nil {
			return nil, err
		}
		var els ast.Statement
		if v.Get("else").Exists() {
			els, err = decodeStatement(v.Get("else"))
			if err != nil {
				return nil, err
			}
		}
		return &ast.IfStatement{Condition: cond, ThenBranch: then, ElseBranch: els, NodePos: pos(v)}, nil
	case "WhileStatement":
		cond, err := decodeExpression(v.Get("condition"))
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(v.Get("body"))
		if err != nil {
			return nil, err
		}
		return &ast.WhileStatement{Condition: cond, Body: body, NodePos: pos(v)}, nil
	case "UntilStatement":
		cond, err := decodeExpression(v.Get("condition"))
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(v.Get("body"))
		if err != nil {
			return nil, err
		}
		return &ast.UntilStatement{Condition: cond, Body: body, NodePos: pos(v)}, nil
	case "ForStatement":
		iterable, err := decodeExpression(v.Get("iterable"))
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(v.Get("body"))
		if err != nil {
			return nil, err
		}
		return &ast.ForStatement{Variable: v.Get("variable").String(), Iterable: iterable, Body: body, NodePos: pos(v)}, nil
	case "ReturnStatement":
		var val ast.Expression
		var err error
		if v.Get("value").Exists() {
			val, err = decodeExpression(v.Get("value"))
			if err != nil {
				return nil, err
			}
		}
		return &ast.ReturnStatement{Value: val, NodePos: pos(v)}, nil
	case "AssignmentStatement":
		target, err := decodeExpression(v.Get("target"))
		if err != nil {
			return nil, err
		}
		value, err := decodeExpression(v.Get("value"))
		if err != nil {
			return nil, err
		}
		return &ast.AssignmentStatement{Target: target, Value: value, NodePos: pos(v)}, nil
	case "InvariantStatement":
		cond, err := decodeExpression(v.Get("condition"))
		if err != nil {
			return nil, err
		}
		var msg ast.Expression
		if v.Get("message").Exists() {
			msg, err = decodeExpression(v.Get("message"))
			if err != nil {
				return nil, err
			}
		}
		return &ast.InvariantStatement{Condition: cond, Message: msg, NodePos: pos(v)}, nil
	case "AssertStatement":
		cond, err := decodeExpression(v.Get("condition"))
		if err != nil {
			return nil, err
		}
		var msg ast.Expression
		if v.Get("message").Exists() {
			msg, err = decodeExpression(v.Get("message"))
			if err != nil {
				return nil, err
			}
		}
		return &ast.AssertStatement{Condition: cond, Message: msg, NodePos: pos(v)}, nil
	default:
		return nil, fmt.Errorf("astjson: unknown statement type %q", v.Get("type").String())
	}
}

func decodeDeclarator(v gjson.Result) (*ast.VariableDeclarator, error) {
	var init ast.Expression
	var err error
	if v.Get("initializer").Exists() {
		init, err = decodeExpression(v.Get("initializer"))
		if err != nil {
			return nil, err
		}
	}
	ann, err := decodeTypeAnnotation(v.Get("typeAnnotation"))
	if err != nil {
		return nil, err
	}
	return &ast.VariableDeclarator{
		Name:           v.Get("name").String(),
		TypeAnnotation: ann,
		Initializer:    init,
		NodePos:        pos(v),
	}, nil
}

func decodeParameters(v gjson.Result) ([]*ast.Parameter, error) {
	var out []*ast.Parameter
	var err error
	v.ForEach(func(_, p gjson.Result) bool {
		var ann *ast.TypeAnnotation
		ann, err = decodeTypeAnnotation(p.Get("typeAnnotation"))
		if err != nil {
			return false
		}
		out = append(out, &ast.Parameter{Name: p.Get("name").String(), TypeAnnotation: ann, NodePos: pos(p)})
		return true
	})
	return out, err
}

func decodeTypeAnnotation(v gjson.Result) (*ast.TypeAnnotation, error) {
	if !v.Exists() {
		return nil, nil
	}
	switch v.Get("kind").String() {
	case "", "simple":
		return &ast.TypeAnnotation{Kind: ast.AnnotationSimple, Name: v.Get("name").String(), NodePos: pos(v)}, nil
	case "generic":
		var params []*ast.TypeAnnotation
		var err error
		v.Get("parameters").ForEach(func(_, p gjson.Result) bool {
			var pa *ast.TypeAnnotation
			pa, err = decodeTypeAnnotation(p)
			if err != nil {
				return false
			}
			params = append(params, pa)
			return true
		})
		if err != nil {
			return nil, err
		}
		return &ast.TypeAnnotation{Kind: ast.AnnotationGeneric, Name: v.Get("name").String(), Parameters: params, NodePos: pos(v)}, nil
	case "union", "intersection":
		kind := ast.AnnotationUnion
		if v.Get("kind").String() == "intersection" {
			kind = ast.AnnotationIntersection
		}
		var members []*ast.TypeAnnotation
		var err error
		v.Get("types").ForEach(func(_, m gjson.Result) bool {
			var ma *ast.TypeAnnotation
			ma, err = decodeTypeAnnotation(m)
			if err != nil {
				return false
			}
			members = append(members, ma)
			return true
		})
		if err != nil {
			return nil, err
		}
		return &ast.TypeAnnotation{Kind: kind, Types: members, NodePos: pos(v)}, nil
	default:
		return nil, fmt.Errorf("astjson: unknown type annotation kind %q", v.Get("kind").String())
	}
}

func decodeExpression(v gjson.Result) (ast.Expression, error) {
	switch v.Get("type").String() {
	case "IntegerLiteral":
		return &ast.IntegerLiteral{Value: v.Get("value").Int(), NodePos: pos(v)}, nil
	case "FloatLiteral":
		return &ast.FloatLiteral{Value: v.Get("value").Float(), NodePos: pos(v)}, nil
	case "StringLiteral":
		return &ast.StringLiteral{Value: v.Get("value").String(), NodePos: pos(v)}, nil
	case "BooleanLiteral":
		return &ast.BooleanLiteral{Value: v.Get("value").Bool(), NodePos: pos(v)}, nil
	case "ArrayLiteral":
		var elems []ast.Expression
		var err error
		v.Get("elements").ForEach(func(_, e gjson.Result) bool {
			var el ast.Expression
			el, err = decodeExpression(e)
			if err != nil {
				return false
			}
			elems = append(elems, el)
			return true
		})
		if err != nil {
			return nil, err
		}
		return &ast.ArrayLiteral{Elements: elems, NodePos: pos(v)}, nil
	case "Identifier":
		return &ast.Identifier{Name: v.Get("name").String(), NodePos: pos(v)}, nil
	case "MetaIdentifier":
		return &ast.MetaIdentifier{Name: v.Get("name").String(), NodePos: pos(v)}, nil
	case "RangeExpression":
		var start, end ast.Expression
		var err error
		if v.Get("start").Exists() {
			start, err = decodeExpression(v.Get("start"))
			if err != nil {
				return nil, err
			}
		}
		if v.Get("end").Exists() {
			end, err = decodeExpression(v.Get("end"))
			if err != nil {
				return nil, err
			}
		}
		return &ast.RangeExpression{Start: start, End: end, Inclusive: v.Get("inclusive").Bool(), NodePos: pos(v)}, nil
	case "BinaryExpression":
		left, err := decodeExpression(v.Get("left"))
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(v.Get("right"))
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpression{Op: v.Get("op").String(), Left: left, Right: right, NodePos: pos(v)}, nil
	case "UnaryExpression":
		operand, err := decodeExpression(v.Get("operand"))
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Op: v.Get("op").String(), Operand: operand, NodePos: pos(v)}, nil
	case "CallExpression":
		callee, err := decodeExpression(v.Get("callee"))
		if err != nil {
			return nil, err
		}
		var args []ast.Expression
		v.Get("arguments").ForEach(func(_, a gjson.Result) bool {
			arg, aerr := decodeExpression(a)
			if aerr != nil {
				err = aerr
				return false
			}
			args = append(args, arg)
			return true
		})
		if err != nil {
			return nil, err
		}
		return &ast.CallExpression{Callee: callee, Arguments: args, NodePos: pos(v)}, nil
	case "MemberExpression":
		obj, err := decodeExpression(v.Get("object"))
		if err != nil {
			return nil, err
		}
		return &ast.MemberExpression{
			Object:   obj,
			Property: &ast.Identifier{Name: v.Get("property").String(), NodePos: pos(v)},
			NodePos:  pos(v),
		}, nil
	case "IndexExpression":
		obj, err := decodeExpression(v.Get("object"))
		if err != nil {
			return nil, err
		}
		idx, err := decodeExpression(v.Get("index"))
		if err != nil {
			return nil, err
		}
		return &ast.IndexExpression{Object: obj, Index: idx, NodePos: pos(v)}, nil
	case "TypeOfExpression":
		operand, err := decodeExpression(v.Get("operand"))
		if err != nil {
			return nil, err
		}
		return &ast.TypeOfExpression{Operand: operand, NodePos: pos(v)}, nil
	case "PredicateCheckExpression":
		subject, err := decodeExpression(v.Get("subject"))
		if err != nil {
			return nil, err
		}
		predExpr, err := decodeExpression(v.Get("predicate"))
		if err != nil {
			return nil, err
		}
		pred, ok := predExpr.(*ast.MetaIdentifier)
		if !ok {
			return nil, fmt.Errorf("astjson: PredicateCheckExpression.predicate must be a MetaIdentifier")
		}
		var args []ast.Expression
		v.Get("predicateArgs").ForEach(func(_, a gjson.Result) bool {
			arg, aerr := decodeExpression(a)
			if aerr != nil {
				err = aerr
				return false
			}
			args = append(args, arg)
			return true
		})
		if err != nil {
			return nil, err
		}
		return &ast.PredicateCheckExpression{Subject: subject, Predicate: pred, PredicateArgs: args, NodePos: pos(v)}, nil
	default:
		return nil, fmt.Errorf("astjson: unknown expression type %q", v.Get("type").String())
	}
}
