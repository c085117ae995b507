package parser_test

import (
	"testing"

	"github.com/kolkov/toylang/internal/ast"
	"github.com/kolkov/toylang/internal/lexer"
	"github.com/kolkov/toylang/internal/parser"
)

// FuzzParse tests the parser with random inputs to find crashes.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"1",
		"= a 1",
		"= a + 1 2",
		"= a - + 1 2 3",
		"= a [ 1 2 3 ]",
		"= a [ i64 ]",
		"= a [ [ 1 ] [ 2 ] ]",
		"= a ? true 1 2",
		"@ \"hello\"",
		"// comment",
		"= a \\ i64 => 123",
		"= a \\ i64 i64 arg1 => + arg1 1\n= b a 2",
		"= a \\ i64 ( i64 i64 ) i64 n f => f n",
		"= a \\ i64 i64 i64 x y =>\n= z + x y\nz",
		".. i 0 10\n@ i\n.",
		"= p { = x 1 = y 2.5 }\n= p.x 3\n@ p",
		"= p {\n= x 1\n}",
		"## use std::fmt;\n# let v = 1;",

		// Malformed
		"=",
		"= a",
		"]",
		")",
		"=>",
		".",
		"...",
		"= a [ ]",
		"= a 1a",
		"= a \\ =>",
		"( ( ( (",
		"\\ \\ \\",
		"= a \\ i64 ( =>",
		".. .. ..",
		"= a 1\n= a 2",
		"= a { = x }",
		"}",
		"= q.x 1",
		"= p { # x }",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, src string) {
		store, _ := parser.Parse(lexer.Lines(src), parser.Options{})
		if store == nil {
			t.Fatal("Parse returned a nil store")
		}
		// Every node reachable from the root must be live.
		ast.Walk(store, 0, func(i, _ int) bool {
			if store.Kind(i) == ast.Unused {
				t.Fatalf("Unused node %d reachable from the root", i)
			}
			return true
		})
	})
}
