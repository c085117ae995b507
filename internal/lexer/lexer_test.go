package lexer

import (
	"reflect"
	"testing"
)

func values(src string) [][]string {
	var out [][]string
	for _, ln := range Lines(src) {
		var toks []string
		for _, t := range ln.Tokens {
			toks = append(toks, t.Value)
		}
		out = append(out, toks)
	}
	return out
}

func TestLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{"empty", "", nil},
		{"single token", "1", [][]string{{"1"}}},
		{"whitespace split", "= a + 1 2", [][]string{{"=", "a", "+", "1", "2"}}},
		{"trimmed", "   = a 1   ", [][]string{{"=", "a", "1"}}},
		{"lf lines", "= a 1\na", [][]string{{"=", "a", "1"}, {"a"}}},
		{"crlf lines", "= a 1\r\na\r\n", [][]string{{"=", "a", "1"}, {"a"}}},
		{"blank line kept", "1\n\n2", [][]string{{"1"}, nil, {"2"}}},
		{"quoted string is one token", `= s "hello world"`, [][]string{{"=", "s", `"hello world"`}}},
		{"closing quote ends token", `"a""b"`, [][]string{{`"a"`, `"b"`}}},
		{"comment line is one token", "    //    comment    ", [][]string{{"//    comment"}}},
		{
			"split after fn header",
			`= a \ i64 i64 arg1 => + 123 arg1`,
			[][]string{{"=", "a", `\`, "i64", "i64", "arg1", "=>"}, {"+", "123", "arg1"}},
		},
		{
			"colon alias splits",
			`= a \ i64 : 123`,
			[][]string{{"=", "a", `\`, "i64", ":"}, {"123"}},
		},
		{"no split inside comment", "// a => b", [][]string{{"// a => b"}}},
		{"trailing comment", "= a 1 // one", [][]string{{"=", "a", "1"}, {"// one"}}},
		{"comment in comment", "// a // b", [][]string{{"// a // b"}}},
		{"slashes inside quotes", `= s "a // b"`, [][]string{{"=", "s", `"a // b"`}}},
		{"no split inside quotes", `"a => b"`, [][]string{{`"a => b"`}}},
		{"raw rust line is one token", "  # let v = x.len();  ", [][]string{{"# let v = x.len();"}}},
		{"no split inside raw rust", "## fn f() -> i64 { 1 } // one", [][]string{{"## fn f() -> i64 { 1 } // one"}}},
		{"struct braces", "= p { = x 1 }", [][]string{{"=", "p", "{", "=", "x", "1", "}"}}},
		{"header at end of line", "= a \\ i64 =>\n123", [][]string{{"=", "a", `\`, "i64", "=>"}, nil, {"123"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := values(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lines(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPositions(t *testing.T) {
	lines := LinesFile("main.toy", "1\n  = ab 12")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	ln := lines[1]
	if ln.Number != 2 {
		t.Errorf("line number = %d, want 2", ln.Number)
	}
	if ln.Text != "= ab 12" {
		t.Errorf("line text = %q", ln.Text)
	}
	wantCols := []int{1, 3, 6}
	for i, tok := range ln.Tokens {
		if tok.Pos.Column != wantCols[i] {
			t.Errorf("token %q column = %d, want %d", tok.Value, tok.Pos.Column, wantCols[i])
		}
		if tok.Index != i {
			t.Errorf("token %q index = %d, want %d", tok.Value, tok.Index, i)
		}
		if tok.Pos.Filename != "main.toy" {
			t.Errorf("token %q filename = %q", tok.Value, tok.Pos.Filename)
		}
	}
	if got := ln.Tokens[2].Pos.Offset; got != 9 {
		t.Errorf("offset of %q = %d, want 9", ln.Tokens[2].Value, got)
	}
	if got := ln.Tokens[1].End(); got != 4 {
		t.Errorf("End() = %d, want 4", got)
	}
}

func TestFnHeaderSharesPhysicalLine(t *testing.T) {
	lines := Lines(`= a \ i64 => 123`)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Number != 1 || lines[1].Number != 1 {
		t.Errorf("line numbers = %d, %d; want 1, 1", lines[0].Number, lines[1].Number)
	}
	if lines[1].Tokens[0].Index != 0 {
		t.Errorf("body token index = %d, want 0", lines[1].Tokens[0].Index)
	}
}

func TestJSON(t *testing.T) {
	got, err := JSON(Lines("= a 1\n//x"))
	if err != nil {
		t.Fatal(err)
	}
	want := `[[["=",0,0,0],["a",0,2,2],["1",0,4,4]],[["//x",1,0,2]]]`
	if string(got) != want {
		t.Errorf("JSON = %s, want %s", got, want)
	}
}

func TestWithFirstLine(t *testing.T) {
	l := NewFromString("= a 1\n@ a").WithFirstLine(7)
	var numbers []int
	for {
		ln, ok := l.Next()
		if !ok {
			break
		}
		numbers = append(numbers, ln.Number)
		if got := ln.Tokens[0].Pos.Line; got != ln.Number {
			t.Errorf("token line = %d, want %d", got, ln.Number)
		}
	}
	if len(numbers) != 2 || numbers[0] != 7 || numbers[1] != 8 {
		t.Errorf("line numbers = %v, want [7 8]", numbers)
	}
}
