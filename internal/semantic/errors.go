// Package semantic decides where toylang nodes may be placed and resolves
// names against the node store.
//
// The placement checker enforces, for every child kind, an explicit list of
// parent kinds that may contain it. A rejected placement carries a specific
// diagnosis where one exists (a literal directly under an assignment, a
// comment inside parentheses, a reference to an already defined constant in
// a new assignment) and a generic "impossible" message otherwise.
//
// Name resolution follows declaration order: the first declaration of a
// name in the store wins, and function arguments are only visible while
// their defining function is open.
package semantic

import (
	"fmt"

	"github.com/kolkov/toylang/internal/ast"
)

// Error is a rejected placement of a child kind under a parent kind.
type Error struct {
	Child   ast.Kind
	Parent  ast.Kind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

func errorf(child, parent ast.Kind, format string, args ...any) *Error {
	return &Error{
		Child:   child,
		Parent:  parent,
		Message: fmt.Sprintf(format, args...),
	}
}

// Placement messages.
const (
	errImpossible = "Oh no, this error should be impossible: a %v can't be placed inside a %v"

	errCommentInAssignment = "Invalid Assignment - comment found instead of constant or function definition"
	errCommentInConstant   = "Invalid Constant Definition - comment found instead of value"
	errCommentInBuiltin    = "Invalid Inbuilt Function Call - comment found instead of value"
	errCommentInCall       = "Invalid Function Call - comment found instead of value"
	errCommentInParens     = "Invalid Parenthesis - comment found inside parenthesis"

	errValueInAssignment = "Invalid Assignment - %s found instead of constant or function definition"
	errValueInParens     = "Invalid parenthesis - %s found inside parenthesis. Can only include a type in a function definition, or a function name as a reference"

	errConstantsAreImmutable = "Constants are immutable. You may be trying to assign a value to a constant that has already been defined. Try renaming this as a new constant."
	errConstantUndefined     = "Invalid Constant Definition - this constant has not previously been defined, so cannot be used anywhere except in a new definition, e.g. = a 123"

	errAssignmentInConstant = "Invalid Constant Definition - \"=\" can't be the value of this constant"
	errAssignmentInBuiltin  = "Invalid Inbuilt Function Call - \"=\" found instead of value"
	errAssignmentInCall     = "Invalid Function Call - \"=\" found instead of value"
	errAssignmentInList     = "Invalid list - you can't assign a value inside a list"

	errParensInRoot       = "Invalid parenthesis - parenthesis found at start of line. Can only use in a function definition, or a function name as a reference"
	errParensInConstant   = "Invalid parenthesis - parenthesis found as value of constant. Can only use in a function definition, or a function name as a reference"
	errParensInAssignment = "Invalid parenthesis - parenthesis found as value of assignment. Can only use in a function definition, or a function name as a reference"

	errPrintlnPlacement  = "Invalid PrintLn - can't be used as child of this element"
	errIfPlacement       = "Invalid If - can't be used as child of this element"
	errFnDefPlacement    = "Invalid Function Definition - \"\\\" found, which defines start of a function. Can only be used after a constant, i.e. = fn_name \\ i64 i64 arg1 => + arg1 123"
	errLoopPlacement     = "Invalid For Loop - can't be placed here"
	errListPlacement     = "Invalid List - can't be placed here"
	errTypePlacement     = "Invalid Type - types can only be used in a function definition or to type an empty list, e.g. [ i64 ]"

	errValueInStruct          = "Invalid struct - %s found instead of a key assignment. Keys are assigned a value inside { }, e.g. = point { = x 1 = y 2 }"
	errStructPlacement        = "Invalid Struct Definition - a struct can only be the value of a new constant, e.g. = a { = key 123 }"
	errStructEditPlacement    = "Invalid Struct Edit - it should be preceded by an assignment, e.g. = structname.keyname newvalue"
	errCommentInStructEdit    = "Invalid Struct Edit - comment found instead of value"
	errAssignmentInStructEdit = "Invalid Struct Edit - \"=\" found instead of value"
	errParensInStructEdit     = "Invalid parenthesis - parenthesis found as value of struct edit. Can only use in a function definition, or a function name as a reference"
	errRustPlacement          = "Invalid raw rust code - it can only be written on its own line at the top level, or in a function or loop body"
)
