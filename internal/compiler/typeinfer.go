// Package compiler - Type resolution for the node store.
//
// Construction records a type on every node as soon as it is known, but many
// are not: a Constant is Undefined until its value is looked at, and the
// arithmetic builtins return the disjunction "i64|f64". Resolution fills these
// in after the whole store is built.
//
// Rules (applied only to types that are still Undefined or disjunctive):
//   - Arg -> the declared type at its position in the owning FunctionDef
//   - Constant -> the type of its value (first non-layout child)
//   - ConstantRef -> the type of its definition; loop variables are i64
//   - BuiltinFunctionCall -> a disjunctive return narrows to the alternative
//     matching its first argument's type, otherwise the declared return
//   - FunctionCall -> the callee's return type, or the return type of a
//     function-typed argument
//   - List -> Vec of its first element's type
//   - If -> the type of its then branch
//   - Struct -> once every field is resolved, the type of the first struct
//     with the same keys and field types, or a new type named after its
//     constant
//   - StructEdit -> the type of the edited field
//
// The rules are applied deepest node first and repeated until nothing changes
// or the pass limit is hit. Anything still unresolved after that keeps its
// Undefined or disjunctive type and shows up as such in the output.
package compiler

import (
	"strconv"
	"strings"

	"github.com/kolkov/toylang/internal/ast"
	"github.com/kolkov/toylang/internal/types"
)

// DefaultMaxPasses is the pass limit used when none is given.
const DefaultMaxPasses = 10

// TypeInfo holds the resolved type of every node, indexed like the store.
type TypeInfo struct {
	types   []string
	structs map[string]int // Struct type name -> the Struct node defining it

	// Passes is the number of passes that changed at least one type.
	Passes int
}

// NewTypeInfo creates a TypeInfo seeded with the construction-time types.
func NewTypeInfo(s *ast.Store) *TypeInfo {
	ts := make([]string, s.Len())
	for i := range ts {
		ts[i] = s.Node(i).Type
	}
	return &TypeInfo{types: ts, structs: make(map[string]int)}
}

// IsStruct reports whether t is a struct type defined by the program.
func (ti *TypeInfo) IsStruct(t string) bool {
	_, ok := ti.structs[t]
	return ok
}

// Defines reports whether the Struct at i is the one whose fields define
// its type. Structs deduplicated onto an earlier definition do not.
func (ti *TypeInfo) Defines(i int) bool {
	def, ok := ti.structs[ti.TypeOf(i)]
	return ok && def == i
}

// TypeOf returns the resolved type of node i.
func (ti *TypeInfo) TypeOf(i int) string {
	if i < 0 || i >= len(ti.types) {
		return types.Undefined
	}
	return ti.types[i]
}

// Unresolved returns the nodes reachable from the root whose kind carries a
// type that is still Undefined or disjunctive.
func (ti *TypeInfo) Unresolved(s *ast.Store) []int {
	var out []int
	ast.Walk(s, 0, func(i, _ int) bool {
		if carriesType(s.Kind(i)) && !types.IsResolved(ti.types[i]) {
			out = append(out, i)
		}
		return true
	})
	return out
}

// carriesType reports whether nodes of kind k have a meaningful type.
func carriesType(k ast.Kind) bool {
	switch k {
	case ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg, ast.Constant, ast.ConstantRef,
		ast.BuiltinFunctionCall, ast.FunctionDef, ast.FunctionCall, ast.List, ast.If,
		ast.Struct, ast.StructEdit:
		return true
	case ast.Root, ast.Comment, ast.Assignment, ast.BuiltinFunctionDef, ast.FunctionDefInProgress,
		ast.Parens, ast.LoopForRangeInProgress, ast.LoopForRange, ast.Type, ast.Println,
		ast.Rust, ast.Eol, ast.Seol, ast.Indent, ast.Unused:
		return false
	}
	return false
}

// typeInferrer applies the resolution rules to one store.
type typeInferrer struct {
	store      *ast.Store
	info       *TypeInfo
	signatures map[string]string // Struct keys and field types -> type name
}

// InferTypes resolves the types of s. maxPasses bounds the number of passes;
// zero or less means DefaultMaxPasses.
func InferTypes(s *ast.Store, maxPasses int) *TypeInfo {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	ti := &typeInferrer{store: s, info: NewTypeInfo(s), signatures: make(map[string]string)}
	order := ti.order()
	for range maxPasses {
		changed := false
		for _, i := range order {
			if ti.update(i) {
				changed = true
			}
		}
		if !changed {
			break
		}
		ti.info.Passes++
	}
	return ti.info
}

// order returns the nodes to visit in each pass: nodes outside the tree,
// such as function arguments and loop variables, first, then the tree from
// the deepest layer up.
func (ti *typeInferrer) order() []int {
	tree := ti.store.DeepestFirst()
	reachable := make([]bool, ti.store.Len())
	reachable[0] = true
	for _, i := range tree {
		reachable[i] = true
	}
	var order []int
	for i, ok := range reachable {
		if ok {
			continue
		}
		if k := ti.store.Kind(i); k != ast.Unused && k != ast.BuiltinFunctionDef {
			order = append(order, i)
		}
	}
	return append(order, tree...)
}

// update narrows the type of node i and reports whether it changed.
func (ti *typeInferrer) update(i int) bool {
	cur := ti.info.types[i]
	if types.IsResolved(cur) {
		return false
	}
	t := ti.infer(i)
	if t == "" || t == cur {
		return false
	}
	ti.info.types[i] = t
	return true
}

// infer returns the type node i would have under the rules, or "" if no
// rule applies to its kind.
func (ti *typeInferrer) infer(i int) string {
	n := ti.store.Node(i)
	switch n.Kind {
	case ast.Arg:
		fn := ti.store.Node(n.Scope)
		if fn.Kind != ast.FunctionDef {
			return ""
		}
		for j, name := range fn.ArgNames {
			if name == n.Name && j < len(fn.ArgTypes) {
				return fn.ArgTypes[j]
			}
		}
		return ""
	case ast.Constant:
		if v := ti.operands(i); len(v) > 0 {
			return ti.info.types[v[0]]
		}
		return ""
	case ast.ConstantRef:
		if k := ti.store.Kind(n.Def); k == ast.LoopForRange || k == ast.LoopForRangeInProgress {
			return types.Int
		}
		return ti.info.types[n.Def]
	case ast.BuiltinFunctionCall:
		return ti.narrow(n.Def, ti.operands(i))
	case ast.FunctionCall:
		def := ti.info.types[n.Def]
		if ti.store.Kind(n.Def) == ast.Arg {
			return types.DynFnReturn(def)
		}
		return def
	case ast.List:
		if v := ti.operands(i); len(v) > 0 {
			return types.Vec(ti.info.types[v[0]])
		}
		return ""
	case ast.If:
		if v := ti.operands(i); len(v) > 1 {
			return ti.info.types[v[1]]
		}
		return ""
	case ast.Struct:
		return ti.structType(i, n.Name)
	case ast.StructEdit:
		if f, ok := ti.store.FieldOf(n.Def, n.Target); ok {
			return ti.info.types[f.Value]
		}
		return ""
	case ast.Root, ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Assignment,
		ast.BuiltinFunctionDef, ast.FunctionDefInProgress, ast.FunctionDef, ast.Parens,
		ast.LoopForRangeInProgress, ast.LoopForRange, ast.Type, ast.Println, ast.Rust, ast.Eol,
		ast.Seol, ast.Indent, ast.Unused:
		return ""
	}
	return ""
}

// structType names the type of the Struct at i. Structs with the same keys
// and field types, in the same order, share the type of the first of them.
// A new type is named after its constant, with a numeric suffix when that
// name is already a type.
func (ti *typeInferrer) structType(i int, name string) string {
	fields, ok := ti.store.StructFields(i)
	if !ok || len(fields) == 0 {
		return ""
	}
	var sig strings.Builder
	for _, f := range fields {
		t := ti.info.types[f.Value]
		if !types.IsResolved(t) {
			return ""
		}
		sig.WriteString(f.Key + ":" + t + ";")
	}
	if t, ok := ti.signatures[sig.String()]; ok {
		return t
	}
	t := name
	for k := 2; ti.info.IsStruct(t) || types.IsPrimitive(t); k++ {
		t = name + strconv.Itoa(k)
	}
	ti.signatures[sig.String()] = t
	ti.info.structs[t] = i
	return t
}

// narrow resolves the disjunctive return type of builtin def from the type
// of the first argument: its position among the alternatives of the first
// argument type picks the return alternative. "i64|f64" called with an i64
// first argument is i64, whatever the other arguments are. The return type
// is kept while the first argument is unresolved or matches no alternative.
func (ti *typeInferrer) narrow(def int, args []int) string {
	ret := ti.info.types[def]
	if !types.IsDisjunction(ret) {
		return ret
	}
	argTypes := ti.store.Node(def).ArgTypes
	if len(args) == 0 || len(argTypes) == 0 || len(args) < len(argTypes) {
		return ret
	}
	pos := types.IndexOf(argTypes[0], ti.info.types[args[0]])
	alts := types.Alternatives(ret)
	if pos < 0 || pos >= len(alts) {
		return ret
	}
	return alts[pos]
}

// operands returns the non-layout children of node i.
func (ti *typeInferrer) operands(i int) []int {
	return operands(ti.store, i)
}

func operands(s *ast.Store, i int) []int {
	children := s.Children(i)
	out := make([]int, 0, len(children))
	for _, c := range children {
		if !s.Kind(c).IsLayout() {
			out = append(out, c)
		}
	}
	return out
}
