// Package parser builds the toylang node store from lines of tokens.
//
// There is no lookahead: every token is dispatched to a single construction
// routine that appends one node under the innermost open scope, checks the
// placement, and then closes every scope whose expected children are
// complete. A line that fails is rolled back and reported, and parsing
// continues with the next line.
package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kolkov/toylang/internal/token"
)

// ParseError represents a diagnostic against one token of the source.
// It implements the error interface and includes source position information.
type ParseError struct {
	Pos     token.Position // Position of the offending token
	Message string         // Human-readable error message
	Source  string         // Text of the offending source line (trimmed)
	Width   int            // Width of the offending token, at least 1
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	if e.Pos.Known() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

// Unwrap returns nil as ParseError doesn't wrap other errors.
func (e *ParseError) Unwrap() error {
	return nil
}

// Snippet renders the source line with a caret span under the token:
//
//	= a 1a
//	    ^^ Invalid int: ...
func (e *ParseError) Snippet() string {
	width := max(e.Width, 1)
	col := max(e.Pos.Column, 1)
	return fmt.Sprintf("%s\n%s%s %s", e.Source, strings.Repeat(" ", col-1), strings.Repeat("^", width), e.Message)
}

// ErrorList is a list of parse errors.
type ErrorList []*ParseError

// Error returns a combined error message for all errors.
func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
	}
}

// Sort orders the list by source position.
func (el ErrorList) Sort() {
	sort.SliceStable(el, func(i, j int) bool {
		return el[i].Pos.Less(el[j].Pos)
	})
}

// Err returns an error if there are any errors, nil otherwise.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

// tokenError creates a ParseError spanning tok on line.
func tokenError(line token.Line, tok token.Token, format string, args ...any) *ParseError {
	return &ParseError{
		Pos:     tok.Pos,
		Message: fmt.Sprintf(format, args...),
		Source:  line.Text,
		Width:   tok.Len(),
	}
}

// Lexical and structural messages.
const (
	errCommentSingleLine = "Invalid single line comment: Must begin with two forward slashes '//'"
	errString            = "Invalid string found: Must be enclosed in quote marks \"\""
	errAssign            = "Invalid assignment: There are characters directly after '='. It must be followed by a space"
	errList              = "Invalid list: List must be defined by elements(s) surrounded by [ ] with spaces between. An empty list must contain the type in the list like [ i64 ]"
	errInt               = "Invalid int: there are characters after the first digit. Must only contain digits"
	errIntOutOfBounds    = "Invalid int: is out of bounds. Must be within the value of -9223372036854775808 to 9223372036854775807"
	errIntNegative       = "Invalid negative int or float: Must follow a negative sign '-' with a digit"
	errFloat             = "Invalid float: Must be digits, a decimal point and digits, with an optional exponent like 1.5E+3"

	errFuncDefArgs          = "Invalid Functional Definition - wrong number of argument types: should be 1 type for each arg, plus a return type."
	errFuncDefArgTypesFirst = "Invalid Functional Definition - argument types should come before argument names."
	errFuncDefEndNoStart    = "Invalid Functional Definition - \"=>\" found without a function definition to end"
	errFuncDefNotAssigned   = "Invalid Function Definition - a function must be assigned to a name, i.e. = fn_name \\ i64 i64 arg1 => + arg1 123"

	errLoopFor             = "Found character after \".\" For loops start with \"..\""
	errLoopForEndNoStart   = "Invalid End For Loop found - can't find start of for loop"
	errLoopForMalformed    = "Invalid For Loop - is missing key parts like variable name, start or end of range"
	errParensEndNoStart    = "Invalid parenthesis - \")\" found without a matching \"(\""
	errListEndNoStart      = "Invalid list - \"]\" found without a matching \"[\""
	errUnknownToken        = "Invalid token %q: not a known function, type, value or name"
	errUnknownTokenSuggest = "Invalid token %q: not a known function, type, value or name. Did you mean %q?"
	errUnterminated        = "Unterminated %s: the construct started here is never completed"

	errStruct              = "Invalid struct: Struct must be defined by one or more assignments of a value to a key surrounded by { } with spaces between such as = mystruct { = key1 \"mystring\" = key2 12.34 }"
	errStructEndNoStart    = "Invalid struct - \"}\" found without a matching \"{\""
	errStructDuplicateKey  = "Invalid struct - key %q is assigned more than once"
	errStructEdit          = "Invalid Struct Edit - must be a struct name and a key joined by a dot, e.g. = mystruct.key1 123"
	errStructEditUndefined = "Invalid Struct Edit - %q has not previously been defined as a struct, e.g. = %s { = key 123 }"
	errStructEditKey       = "Invalid Struct Edit - struct %q has no key %q"
	errStructEditKeyHint   = "Invalid Struct Edit - struct %q has no key %q. Did you mean %q?"
	errRustCode            = "Invalid raw rust code: write the code on its own line after # to place it here, or after ## to place it before the main function, e.g. ## use std::fmt;"
)
