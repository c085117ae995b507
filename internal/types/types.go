// Package types holds the target-language type names used by toylang and
// helpers for the two type markers the compiler narrows: Undefined and
// the disjunction "a|b" (for example "i64|f64", int or float).
package types

import (
	"strings"
)

// Primitive type names.
const (
	Int    = "i64"
	Float  = "f64"
	String = "String"
	Bool   = "bool"
)

// Undefined marks a type that has not been computed yet.
const Undefined = "Undefined"

// Separator joins the alternatives of a disjunctive type.
const Separator = "|"

// Number is the int-or-float disjunction of the arithmetic builtins.
const Number = Int + Separator + Float

// Primitives lists the builtin type names in catalogue order.
var Primitives = []string{Int, Float, String, Bool}

// IsPrimitive reports whether name is a builtin type name.
func IsPrimitive(name string) bool {
	for _, p := range Primitives {
		if p == name {
			return true
		}
	}
	return false
}

// IsResolved reports whether t is concrete: neither Undefined nor a disjunction.
// Only unresolved types are ever narrowed.
func IsResolved(t string) bool {
	return t != "" && !strings.Contains(t, Undefined) && !IsDisjunction(t)
}

// IsDisjunction reports whether t lists alternatives.
func IsDisjunction(t string) bool {
	return strings.Contains(t, Separator)
}

// Alternatives splits a disjunctive type into its members.
func Alternatives(t string) []string {
	return strings.Split(t, Separator)
}

// IndexOf returns the position of t among the alternatives of disj, or -1.
func IndexOf(disj, t string) int {
	for i, alt := range Alternatives(disj) {
		if alt == t {
			return i
		}
	}
	return -1
}

// Vec returns the vector type of elem.
func Vec(elem string) string {
	return "Vec<" + elem + ">"
}

// IsVec reports whether t is a vector type.
func IsVec(t string) bool {
	return strings.HasPrefix(t, "Vec<") && strings.HasSuffix(t, ">")
}

// VecElem returns the element type of a vector type, or t itself.
func VecElem(t string) string {
	if IsVec(t) {
		return t[len("Vec<") : len(t)-1]
	}
	return t
}

const dynFnPrefix = "&dyn Fn("

// DynFn returns the type of a borrowed function value.
func DynFn(args []string, ret string) string {
	return dynFnPrefix + strings.Join(args, ", ") + ") -> " + ret
}

// IsDynFn reports whether t is a borrowed function type.
func IsDynFn(t string) bool {
	return strings.Contains(t, "&dyn Fn")
}

// DynFnArgCount returns the number of parameters in a borrowed function type.
func DynFnArgCount(t string) int {
	args := dynFnArgs(t)
	if strings.TrimSpace(args) == "" {
		return 0
	}
	return strings.Count(args, ",") + 1
}

// DynFnReturn returns the return type of a borrowed function type.
func DynFnReturn(t string) string {
	if i := strings.LastIndex(t, "-> "); i >= 0 {
		return t[i+len("-> "):]
	}
	return Undefined
}

func dynFnArgs(t string) string {
	i := strings.Index(t, dynFnPrefix)
	if i < 0 {
		return ""
	}
	rest := t[i+len(dynFnPrefix):]
	depth := 1
	for j := 0; j < len(rest); j++ {
		switch rest[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return rest[:j]
			}
		}
	}
	return rest
}
