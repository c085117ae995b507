// Package builtins is the static catalogue of toylang builtin functions and
// primitive types.
//
// Templates refer to rendered arguments by position: "#1", "#2", ...
// A disjunctive argument or return type ("i64|f64") is resolved from the
// rendered arguments by the type resolver.
package builtins

import (
	"strconv"
	"strings"

	"github.com/kolkov/toylang/internal/types"
)

// Function describes one builtin function.
type Function struct {
	Name     string
	ArgNames []string
	ArgTypes []string
	Return   string
	Template string
}

// Arity returns the number of arguments the function takes.
func (f Function) Arity() int {
	return len(f.ArgNames)
}

// Render substitutes args into the function's template in one scan, so
// text taken from an argument is never searched for placeholders. A
// placeholder without a matching argument is left as written.
func (f Function) Render(args []string) string {
	tmpl := f.Template
	var sb strings.Builder
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '#' {
			sb.WriteByte(tmpl[i])
			continue
		}
		j := i + 1
		for j < len(tmpl) && tmpl[j] >= '0' && tmpl[j] <= '9' {
			j++
		}
		n, err := strconv.Atoi(tmpl[i+1 : j])
		if err != nil || n < 1 || n > len(args) {
			sb.WriteByte('#')
			continue
		}
		sb.WriteString(args[n-1])
		i = j - 1
	}
	return sb.String()
}

var anyList = strings.Join([]string{
	types.Vec(types.Int),
	types.Vec(types.Float),
	types.Vec(types.String),
	types.Vec(types.Bool),
}, types.Separator)

func binary(name, argType, ret string) Function {
	return Function{
		Name:     name,
		ArgNames: []string{"a", "b"},
		ArgTypes: []string{argType, argType},
		Return:   ret,
		Template: "#1 " + name + " #2",
	}
}

var functions = []Function{
	binary("+", types.Number, types.Number),
	binary("-", types.Number, types.Number),
	binary("*", types.Number, types.Number),
	binary("/", types.Number, types.Number),
	binary("%", types.Number, types.Number),
	binary("==", types.Number, types.Bool),
	binary("!=", types.Number, types.Bool),
	binary(">", types.Number, types.Bool),
	binary("<", types.Number, types.Bool),
	binary(">=", types.Number, types.Bool),
	binary("<=", types.Number, types.Bool),
	binary("&&", types.Bool, types.Bool),
	binary("||", types.Bool, types.Bool),
	{
		Name:     "List.append",
		ArgNames: []string{"list1", "list2"},
		ArgTypes: []string{anyList, anyList},
		Return:   anyList,
		Template: "#1.iter().cloned().chain(#2.iter().cloned()).collect()",
	},
	{
		Name:     "List.len",
		ArgNames: []string{"list"},
		ArgTypes: []string{anyList},
		Return:   types.Int,
		Template: "#1.len() as i64",
	},
}

// Functions returns the catalogue in lookup order.
func Functions() []Function {
	return functions
}

// Lookup returns the builtin function with the given name.
func Lookup(name string) (Function, bool) {
	for _, f := range functions {
		if f.Name == name {
			return f, true
		}
	}
	return Function{}, false
}

// IsType reports whether name is a builtin primitive type.
func IsType(name string) bool {
	return types.IsPrimitive(name)
}

// Names returns every builtin function and type name, for suggestions.
func Names() []string {
	names := make([]string, 0, len(functions)+len(types.Primitives))
	for _, f := range functions {
		names = append(names, f.Name)
	}
	return append(names, types.Primitives...)
}
