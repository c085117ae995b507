package parser

import (
	"strconv"
	"strings"

	"github.com/coregx/coregex"
)

// Token shape patterns. Range checks are done separately.
var (
	intPattern   = mustCompile(`^-?[0-9]+$`)
	floatPattern = mustCompile(`^-?[0-9]+\.[0-9]+(E\+[0-9]+)?$`)
	namePattern  = mustCompile(`^[a-z_][A-Za-z0-9_]*$`)
)

func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic("parser: bad pattern " + pattern + ": " + err.Error())
	}
	return re
}

// isInt reports whether s is an integer literal within the i64 range.
func isInt(s string) bool {
	if !intPattern.MatchString(s) {
		return false
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// isFloat reports whether s is a float literal: one decimal point, an
// optional "E+" exponent, and a finite value.
func isFloat(s string) bool {
	if !floatPattern.MatchString(s) {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// isString reports whether s is enclosed in double quotes.
func isString(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

// isName reports whether s is a valid constant, argument or function name.
func isName(s string) bool {
	return namePattern.MatchString(s)
}

// intError returns the diagnostic for a token that is not a valid integer,
// or "" if it is one.
func intError(s string) string {
	switch {
	case isInt(s):
		return ""
	case intPattern.MatchString(s):
		return errIntOutOfBounds
	}
	return errInt
}

// looksFloat reports whether s was meant as a float: it has a decimal point
// or an exponent marker.
func looksFloat(s string) bool {
	return strings.ContainsAny(s, ".E")
}

// structName derives a Rust type name from the constant a struct is
// assigned to: "my_point" names the type "Mypoint".
func structName(constant string) string {
	s := strings.ToLower(strings.ReplaceAll(constant, "_", ""))
	if s == "" {
		return "Struct"
	}
	if s[0] < 'a' || s[0] > 'z' {
		return "Struct" + s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
