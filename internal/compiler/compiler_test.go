package compiler

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/kolkov/toylang/internal/ast"
	"github.com/kolkov/toylang/internal/lexer"
	"github.com/kolkov/toylang/internal/parser"
)

// compileSource parses and compiles source with CRLF line ends.
func compileSource(t *testing.T, source string) *Program {
	t.Helper()

	store, err := parser.Parse(lexer.Lines(source), parser.Options{})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	prog, err := Compile(store, Options{Newline: "\r\n"})
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	return prog
}

// wrapMain wraps body lines in the entry point the way Emit does.
func wrapMain(lines ...string) string {
	var sb strings.Builder
	sb.WriteString("fn main() {\r\n")
	for _, l := range lines {
		sb.WriteString(l + "\r\n")
	}
	sb.WriteString("}\r\n")
	return sb.String()
}

// structDef returns the definition Emit writes ahead of main for a struct
// with the given "key: type" fields.
func structDef(name string, fields ...string) string {
	var decl, keys []string
	for _, f := range fields {
		decl = append(decl, "    pub "+f+",\r\n")
		key, _, _ := strings.Cut(f, ":")
		keys = append(keys, key)
	}
	return "#[derive(Clone, Debug)]\r\n" +
		"pub struct " + name + " {\r\n" + strings.Join(decl, "") + "}\r\n\r\n" +
		"impl " + name + " {\r\n" +
		"    pub fn new(" + strings.Join(fields, ", ") + ") -> " + name + " {\r\n" +
		"        " + name + " { " + strings.Join(keys, ", ") + " }\r\n" +
		"    }\r\n" +
		"}\r\n\r\n"
}

func TestCompileGolden(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"empty", "", wrapMain()},

		// Comments
		{"comment", "//comment", wrapMain("    //comment")},
		{"comment with spaces", "    //    comment    ", wrapMain("    //    comment")},
		{"commented function", `//= a \ i64 => 123`, wrapMain(`    //= a \ i64 => 123`)},

		// Booleans
		{"true", "true", wrapMain("    true;")},
		{"false", "false", wrapMain("    false;")},
		{"equality", "== 1 1", wrapMain("    1 == 1;")},
		{"inequality", "!= 1 2", wrapMain("    1 != 2;")},
		{"greater than", "> 2 1", wrapMain("    2 > 1;")},
		{"less than", "< 1 2", wrapMain("    1 < 2;")},
		{"greater or equal", ">= 3 2", wrapMain("    3 >= 2;")},
		{"less or equal", "<= 2 3", wrapMain("    2 <= 3;")},

		// Strings
		{"string", `"string"`, wrapMain(`    "string".to_string();`)},
		{"empty string", `""`, wrapMain(`    "".to_string();`)},

		// Ints
		{"int", "1", wrapMain("    1 as i64;")},
		{"int padded", "    123    ", wrapMain("    123 as i64;")},
		{"int max", "9223372036854775807", wrapMain("    9223372036854775807 as i64;")},
		{"int negative", "-123", wrapMain("    -123 as i64;")},
		{"int min", "-9223372036854775808", wrapMain("    -9223372036854775808 as i64;")},

		// Floats
		{"float", "1.1", wrapMain("    1.1;")},
		{"float long", "1234567890.123456789", wrapMain("    1234567890.123456789;")},
		{"float exponent", "1.7976931348623157E+308", wrapMain("    1.7976931348623157E+308;")},
		{"float negative", "-123.123", wrapMain("    -123.123;")},

		// Lists
		{"empty string list", "[ String ]", wrapMain("    Vec::<String>::new();")},
		{"empty int list", "[ i64 ]", wrapMain("    Vec::<i64>::new();")},
		{"empty float list", "[ f64 ]", wrapMain("    Vec::<f64>::new();")},
		{"int list", "[ 1 2 3 4 5 ]", wrapMain("    vec![ 1, 2, 3, 4, 5 ];")},
		{"float list", "[ 1.1 2.2 ]", wrapMain("    vec![ 1.1, 2.2 ];")},
		{"string list", `[ "a" "b" ]`, wrapMain(`    vec![ "a".to_string(), "b".to_string() ];`)},
		{"assigned int list", "= x [ 1 2 3 ]", wrapMain("    let x: Vec<i64> = vec![ 1, 2, 3 ];")},
		{"assigned float list", "= x [ 1.1 2.2 ]", wrapMain("    let x: Vec<f64> = vec![ 1.1, 2.2 ];")},
		{"assigned string list", `= x [ "1.1" ]`, wrapMain(`    let x: Vec<String> = vec![ "1.1".to_string() ];`)},
		{"nested list", "= x [ [ 1 ] [ 2 ] ]", wrapMain("    let x: Vec<Vec<i64>> = vec![ vec![ 1 ], vec![ 2 ] ];")},
		{
			"list append",
			"= list1 [ 1 ]\r\n= list2 [ 2 3 ]\r\n= appended List.append list1 list2",
			wrapMain(
				"    let list1: Vec<i64> = vec![ 1 ];",
				"    let list2: Vec<i64> = vec![ 2, 3 ];",
				"    let appended: Vec<i64> = list1.iter().cloned().chain(list2.iter().cloned()).collect();",
			),
		},
		{
			"list len",
			"= list [ 1 2 3 ]\r\n= len List.len list",
			wrapMain(
				"    let list: Vec<i64> = vec![ 1, 2, 3 ];",
				"    let len: i64 = list.len() as i64;",
			),
		},

		// Builtin calls
		{"plus", "+ 1 2", wrapMain("    1 + 2;")},
		{"minus float", "- 1.1 2.2", wrapMain("    1.1 - 2.2;")},
		{"multiply", "* 3 4", wrapMain("    3 * 4;")},
		{"divide", "/ 9 3", wrapMain("    9 / 3;")},

		// Assignments
		{"assign plus int", "= a + 1 2", wrapMain("    let a: i64 = 1 + 2;")},
		{"assign plus float", "= a + 1.1 2.2", wrapMain("    let a: f64 = 1.1 + 2.2;")},
		{"placeholder text in argument", "= s \"a#1b\"\r\n== s \"x#1\"",
			wrapMain(`    let s: String = "a#1b".to_string();`, `    s == "x#1".to_string();`)},
		{"assign mixed", "= a + 1 2.2", wrapMain("    let a: i64 = 1 + 2.2;")},
		{"assign mixed float first", "= a + 2.2 1", wrapMain("    let a: f64 = 2.2 + 1;")},
		{"assign modulo float", "= a % 1.1 2.2", wrapMain("    let a: f64 = 1.1 % 2.2;")},
		{"assign string", `= a "string"`, wrapMain(`    let a: String = "string".to_string();`)},
		{"assign int", "= a 1", wrapMain("    let a: i64 = 1;")},
		{"assign float", "= a -1.7976931348623157E+308", wrapMain("    let a: f64 = -1.7976931348623157E+308;")},
		{"assign bool", "= a true", wrapMain("    let a: bool = true;")},
		{"constant", "= a 123\r\na", wrapMain("    let a: i64 = 123;", "    a;")},
		{
			"reference in builtin",
			"= a + 1 2\r\n= b - 3 a",
			wrapMain("    let a: i64 = 1 + 2;", "    let b: i64 = 3 - a;"),
		},
		{
			"chained references",
			"= a 123\r\n= aa a\r\n= aaa aa\r\n= aaaa aaa",
			wrapMain(
				"    let a: i64 = 123;",
				"    let aa: i64 = a;",
				"    let aaa: i64 = aa;",
				"    let aaaa: i64 = aaa;",
			),
		},

		// Nested builtins
		{"nested 1", "= a - + 1 2 3", wrapMain("    let a: i64 = 1 + 2 - 3;")},
		{"nested 2", "= a / * - + 1 2 3 4 5", wrapMain("    let a: i64 = 1 + 2 - 3 * 4 / 5;")},
		{"nested 3", "= a + 1 * 3 2", wrapMain("    let a: i64 = 1 + 3 * 2;")},

		// Function definitions
		{
			"function no args",
			`= a \ i64 => 123`,
			wrapMain("    fn a() -> i64 {", "        123 as i64", "    }"),
		},
		{
			"function one arg",
			`= a \ i64 i64 arg1 => + 123 arg1`,
			wrapMain("    fn a(arg1: i64) -> i64 {", "        123 + arg1", "    }"),
		},
		{
			"function multi line",
			"= a \\ i64 i64 i64 arg1 arg2 =>\r\n+ arg1 arg2",
			wrapMain("    fn a(arg1: i64, arg2: i64) -> i64 {", "        arg1 + arg2", "    }"),
		},
		{
			"function with statements",
			"= a \\ i64 i64 i64 i64 arg1 arg2 arg3 =>\r\n= x + arg1 arg2\r\n+ x arg3",
			wrapMain(
				"    fn a(arg1: i64, arg2: i64, arg3: i64) -> i64 {",
				"        let x: i64 = arg1 + arg2;",
				"        x + arg3",
				"    }",
			),
		},
		{
			"function nested builtins",
			"= a \\ i64 i64 i64 i64 arg1 arg2 arg3 =>\r\n + arg1 + arg2 arg3",
			wrapMain("    fn a(arg1: i64, arg2: i64, arg3: i64) -> i64 {", "        arg1 + arg2 + arg3", "    }"),
		},
		{
			"function returning constant",
			"= a \\ i64 i64 i64 arg1 arg2 =>\r\n= b + arg1 123\r\n= c - b arg2\r\n= z * c 10\r\nz",
			wrapMain(
				"    fn a(arg1: i64, arg2: i64) -> i64 {",
				"        let b: i64 = arg1 + 123;",
				"        let c: i64 = b - arg2;",
				"        let z: i64 = c * 10;",
				"        z",
				"    }",
			),
		},
		{
			"function as argument",
			"= a \\ ( i64 i64 ) i64 i64 arg1 arg2 =>\r\n arg1 arg2\r\n= b \\ i64 i64 arg3 => + 123 arg3\r\n= c a ( b ) 456",
			wrapMain(
				"    fn a(arg1: &dyn Fn(i64) -> i64, arg2: i64) -> i64 {",
				"        arg1(arg2)",
				"    }",
				"    fn b(arg3: i64) -> i64 {",
				"        123 + arg3",
				"    }",
				"    let c: i64 = a(&b, 456);",
			),
		},
		{
			"function call",
			"= a \\ i64 i64 arg1 => + arg1 1\r\n= b a 2",
			wrapMain("    fn a(arg1: i64) -> i64 {", "        arg1 + 1", "    }", "    let b: i64 = a(2);"),
		},

		// Println
		{"println int", "@ 1", wrapMain(`    println!("{}", 1);`)},
		{"println constant", "= a 1\r\n@ a", wrapMain("    let a: i64 = 1;", `    println!("{}", a);`)},
		{
			"println list",
			"= a [ 1 2 ]\r\n@ a",
			wrapMain("    let a: Vec<i64> = vec![ 1, 2 ];", `    println!("{:?}", &a);`),
		},

		// If
		{
			"if expression",
			"= a ? true 1 2",
			wrapMain("    let a: i64 = if true {", "        1", "    } else {", "        2", "    };"),
		},

		// Loops
		{
			"loop",
			".. i 0 3\r\n@ i\r\n.",
			wrapMain("    for i in 0..3 {", `        println!("{}", i);`, "    }"),
		},

		// Structs
		{
			"struct with edit",
			"= point { = x 1 = y 2.5 }\r\n= point.x 5\r\n@ point",
			structDef("Point", "x: i64", "y: f64") + wrapMain(
				"    let mut point: Point = Point::new(1, 2.5);",
				"    point.x = 5;",
				`    println!("{:?}", &point);`,
			),
		},
		{
			"identical structs share a type",
			"= a { = x 1 }\r\n= b { = x 2 }",
			structDef("A", "x: i64") + wrapMain("    let mut a: A = A::new(1);", "    let mut b: A = A::new(2);"),
		},
		{
			"different fields make a new type",
			"= a { = x 1 }\r\n= b { = x 2.5 }",
			structDef("A", "x: i64") + structDef("B", "x: f64") +
				wrapMain("    let mut a: A = A::new(1);", "    let mut b: B = B::new(2.5);"),
		},
		{
			"struct type name taken",
			"= my_p { = x 1 }\r\n= myp { = y 2 }",
			structDef("Myp", "x: i64") + structDef("Myp2", "y: i64") +
				wrapMain("    let mut my_p: Myp = Myp::new(1);", "    let mut myp: Myp2 = Myp2::new(2);"),
		},
		{
			"struct field from constant",
			"= x 1.5\r\n= p { x }",
			structDef("P", "x: f64") + wrapMain("    let x: f64 = 1.5;", "    let mut p: P = P::new(x);"),
		},
		{
			"multi line struct",
			"= p {\r\n= x 1\r\n= y \"s\"\r\n}",
			structDef("P", "x: i64", "y: String") + wrapMain(`    let mut p: P = P::new(1, "s".to_string());`),
		},

		// Raw Rust
		{"raw rust", "# let v = 1;\r\n@ 2", wrapMain("    let v = 1;", `    println!("{}", 2);`)},
		{
			"raw rust before main",
			"## use std::fmt;\r\n= a 1",
			"use std::fmt;\r\n\r\n" + wrapMain("    let a: i64 = 1;"),
		},
		{
			"raw rust in function",
			"= f \\ i64 =>\r\n# let v = 1;\r\n2",
			wrapMain("    fn f() -> i64 {", "        let v = 1;", "        2 as i64", "    }"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := compileSource(t, tt.source)
			if prog.Output != tt.want {
				t.Errorf("output mismatch\ngot:  %q\nwant: %q", prog.Output, tt.want)
			}
		})
	}
}

func TestCompileNewline(t *testing.T) {
	store, err := parser.Parse(lexer.Lines("= a 1"), parser.Options{})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	prog, err := Compile(store, Options{})
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if want := "fn main() {\n    let a: i64 = 1;\n}\n"; prog.Output != want {
		t.Errorf("Output = %q, want %q", prog.Output, want)
	}
}

// TestCompileAfterErrors renders what was built from the valid lines.
func TestCompileAfterErrors(t *testing.T) {
	store, err := parser.Parse(lexer.Lines("= a 1\n= b 1a\n= c 2"), parser.Options{})
	if err == nil {
		t.Fatal("expected a parse error")
	}
	prog, err := Compile(store, Options{})
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	want := "fn main() {\n    let a: i64 = 1;\n    let c: i64 = 2;\n}\n"
	if prog.Output != want {
		t.Errorf("Output = %q, want %q", prog.Output, want)
	}
}

// TestCompileMalformedStore feeds stores the parser would never build. The
// bad node is reported and the rest of the program is still rendered.
func TestCompileMalformedStore(t *testing.T) {
	tests := []struct {
		name    string
		build   func(s *ast.Store)
		token   string
		message string
		want    string
	}{
		{
			name: "if without branches",
			build: func(s *ast.Store) {
				s.Append(0, ast.Node{Kind: ast.Indent})
				s.Append(0, ast.Node{Kind: ast.If, Line: 7})
				s.Append(0, ast.Node{Kind: ast.Seol})
			},
			token:   "?",
			message: "two branches, found 0",
			want:    "fn main() {\n    if  {\n        \n    } else {\n        \n    };\n}\n",
		},
		{
			name: "builtin call missing an argument",
			build: func(s *ast.Store) {
				def := s.AppendDetached(ast.Node{
					Kind: ast.BuiltinFunctionDef, Name: "+", ArgNames: []string{"a", "b"},
					ArgTypes: []string{"i64|f64", "i64|f64"}, Type: "i64|f64", Template: "#1 + #2",
				})
				s.Append(0, ast.Node{Kind: ast.Indent})
				call := s.Append(0, ast.Node{Kind: ast.BuiltinFunctionCall, Name: "+", Def: def, Line: 7})
				s.Append(call, ast.Node{Kind: ast.Int, Value: "1"})
				s.Append(0, ast.Node{Kind: ast.Seol})
			},
			token:   "+",
			message: "+ takes 2 arguments, found 1",
			want:    "fn main() {\n    1 + #2;\n}\n",
		},
		{
			name: "println without a value",
			build: func(s *ast.Store) {
				s.Append(0, ast.Node{Kind: ast.Indent})
				s.Append(0, ast.Node{Kind: ast.Println, Line: 7})
				s.Append(0, ast.Node{Kind: ast.Seol})
			},
			token:   "@",
			message: "println without a value",
			want:    "fn main() {\n    println!(\"{}\", );\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ast.NewStore()
			tt.build(s)

			prog, err := Compile(s, Options{})
			var ce *CompileError
			if !errors.As(err, &ce) {
				t.Fatalf("error = %v, want *CompileError", err)
			}
			if ce.Line != 7 || ce.Token != tt.token {
				t.Errorf("error at line %d token %q, want line 7 token %q", ce.Line, ce.Token, tt.token)
			}
			if !strings.Contains(err.Error(), "line 7: ") || !strings.Contains(err.Error(), tt.message) {
				t.Errorf("Error() = %q, want line 7 and %q", err.Error(), tt.message)
			}
			if prog == nil {
				t.Fatal("Program is nil alongside the error")
			}
			if prog.Output != tt.want {
				t.Errorf("Output = %q, want %q", prog.Output, tt.want)
			}
		})
	}
}

func TestCompileErrorList(t *testing.T) {
	s := ast.NewStore()
	s.Append(0, ast.Node{Kind: ast.Println, Line: 1})
	s.Append(0, ast.Node{Kind: ast.Println, Line: 2})

	_, err := Compile(s, Options{})
	var el ErrorList
	if !errors.As(err, &el) || len(el) != 2 {
		t.Fatalf("error = %v, want two entries", err)
	}
	if !strings.Contains(err.Error(), "(and 1 more errors)") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestProgramDump(t *testing.T) {
	prog := compileSource(t, "= a + 1.5 2")

	var tree bytes.Buffer
	if err := prog.DumpTree(&tree); err != nil {
		t.Fatalf("DumpTree: %v", err)
	}
	if !strings.Contains(tree.String(), "BuiltinFunctionCall +: i64|f64 [f64]") {
		t.Errorf("DumpTree missing resolved call:\n%s", tree.String())
	}

	var typesOut bytes.Buffer
	if err := prog.DumpTypes(&typesOut); err != nil {
		t.Fatalf("DumpTypes: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(typesOut.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("DumpTypes wrote %d lines, want 4 (constant, call, two operands):\n%s", len(lines), typesOut.String())
	}
	if !strings.HasSuffix(lines[0], "f64") {
		t.Errorf("constant line = %q, want f64", lines[0])
	}
}
