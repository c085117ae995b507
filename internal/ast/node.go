// Package ast defines the toylang syntax tree.
//
// The tree lives in an arena (Store): nodes are appended one token at a time,
// addressed by index, and never removed. Index 0 is the synthetic root whose
// children are the top-level statements in source order. Rewrites that
// supersede a node (a finished function definition replacing its
// Assignment/Constant/FunctionDefInProgress chain, for example) mark the old
// node Unused so that no other index ever shifts.
//
// Node kinds form a closed set. Every switch over Kind in this module lists
// all kinds explicitly and has no default case; KindSwitch tests iterate
// Kinds() so that adding a kind without handling it fails the tests.
package ast

import "fmt"

// Kind identifies the variant of a node.
type Kind uint8

const (
	Root Kind = iota
	Comment
	Int
	Float
	String
	Bool
	Arg
	Constant
	ConstantRef
	Assignment
	BuiltinFunctionDef
	BuiltinFunctionCall
	FunctionDefInProgress
	FunctionDef
	FunctionCall
	Parens
	List
	Struct
	StructEdit
	If
	LoopForRangeInProgress
	LoopForRange
	Type
	Println
	Rust
	Eol
	Seol
	Indent
	Unused

	numKinds
)

var kindNames = [...]string{
	Root:                   "Root",
	Comment:                "Comment",
	Int:                    "Int",
	Float:                  "Float",
	String:                 "String",
	Bool:                   "Bool",
	Arg:                    "Arg",
	Constant:               "Constant",
	ConstantRef:            "ConstantRef",
	Assignment:             "Assignment",
	BuiltinFunctionDef:     "BuiltinFunctionDef",
	BuiltinFunctionCall:    "BuiltinFunctionCall",
	FunctionDefInProgress:  "FunctionDefInProgress",
	FunctionDef:            "FunctionDef",
	FunctionCall:           "FunctionCall",
	Parens:                 "Parens",
	List:                   "List",
	Struct:                 "Struct",
	StructEdit:             "StructEdit",
	If:                     "If",
	LoopForRangeInProgress: "LoopForRangeInProgress",
	LoopForRange:           "LoopForRange",
	Type:                   "Type",
	Println:                "Println",
	Rust:                   "Rust",
	Eol:                    "Eol",
	Seol:                   "Seol",
	Indent:                 "Indent",
	Unused:                 "Unused",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Kinds returns every node kind in declaration order.
func Kinds() []Kind {
	ks := make([]Kind, 0, numKinds)
	for k := Root; k < numKinds; k++ {
		ks = append(ks, k)
	}
	return ks
}

// IsLayout reports whether k is a pure layout marker.
func (k Kind) IsLayout() bool {
	return k == Eol || k == Seol || k == Indent
}

// Node is one entry of the Store. Which payload fields are meaningful
// depends on Kind:
//
//	Comment, Int, Float, String, Bool  Value
//	Arg                                Name, Scope, Type
//	Constant                           Name, Type
//	ConstantRef                        Name, Type, Target
//	BuiltinFunctionDef                 Name, ArgNames, ArgTypes, Type, Template
//	BuiltinFunctionCall                Name, Def, Type
//	FunctionDef                        Name, ArgNames, ArgTypes, Type
//	FunctionCall                       Name, Type
//	List, If                           Type
//	Struct                             Name, Type
//	StructEdit                         Name, Target, Def, Type
//	LoopForRange                       Name, From, To
//	Type                               Value
//	Rust                               Value, BeforeMain
//
// Type holds the construction-time type; resolved types live in a side
// table owned by the type resolver.
type Node struct {
	Kind       Kind
	Value      string
	Name       string
	Type       string
	Target     string
	Scope      int
	Def        int
	ArgNames   []string
	ArgTypes   []string
	Template   string
	From       string
	To         string
	AsI64      bool // Int heading a statement, rendered with an explicit cast
	BeforeMain bool // Rust placed ahead of fn main rather than in place
	Line       int  // Source line the node was created on
	Children   []int
}

// String returns a one-line description of the node.
func (n Node) String() string {
	switch n.Kind {
	case Root, Assignment, FunctionDefInProgress, Parens, LoopForRangeInProgress,
		Println, Eol, Seol, Indent, Unused:
		return n.Kind.String()
	case Comment, Int, Float, String, Bool, Type, Rust:
		return fmt.Sprintf("%s %s", n.Kind, n.Value)
	case Arg, Constant, ConstantRef, BuiltinFunctionCall, FunctionCall, Struct, StructEdit:
		return fmt.Sprintf("%s %s: %s", n.Kind, n.Name, n.Type)
	case BuiltinFunctionDef, FunctionDef:
		return fmt.Sprintf("%s %s(%v %v) -> %s", n.Kind, n.Name, n.ArgNames, n.ArgTypes, n.Type)
	case List, If:
		return fmt.Sprintf("%s: %s", n.Kind, n.Type)
	case LoopForRange:
		return fmt.Sprintf("%s %s in %s..%s", n.Kind, n.Name, n.From, n.To)
	}
	panic(fmt.Sprintf("ast: unhandled kind %v", n.Kind))
}
