package builtins

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		arity  int
		ret    string
		render string
	}{
		{"+", 2, "i64|f64", "a + b"},
		{"%", 2, "i64|f64", "a % b"},
		{"==", 2, "bool", "a == b"},
		{"&&", 2, "bool", "a && b"},
		{"List.len", 1, "i64", "a.len() as i64"},
		{"List.append", 2, "Vec<i64>|Vec<f64>|Vec<String>|Vec<bool>", "a.iter().cloned().chain(b.iter().cloned()).collect()"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := Lookup(tt.name)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.name)
			}
			if f.Arity() != tt.arity {
				t.Errorf("Arity() = %d, want %d", f.Arity(), tt.arity)
			}
			if f.Return != tt.ret {
				t.Errorf("Return = %q, want %q", f.Return, tt.ret)
			}
			args := []string{"a", "b"}[:tt.arity]
			if got := f.Render(args); got != tt.render {
				t.Errorf("Render = %q, want %q", got, tt.render)
			}
		})
	}

	if _, ok := Lookup("List.lenn"); ok {
		t.Error("Lookup(List.lenn) found a function")
	}
}

func TestRenderManyPlaceholders(t *testing.T) {
	f := Function{Template: "#1-#10"}
	args := []string{"a", "", "", "", "", "", "", "", "", "j"}
	if got := f.Render(args); got != "a-j" {
		t.Errorf("Render = %q, want a-j", got)
	}
}

func TestRenderArgumentText(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []string
		want     string
	}{
		{"placeholder in first argument", "#1 == #2", []string{`"x#2"`, "s"}, `"x#2" == s`},
		{"placeholder in second argument", "#1 == #2", []string{"s", `"x#1"`}, `s == "x#1"`},
		{"list append", "#1.iter().cloned().chain(#2.iter().cloned()).collect()",
			[]string{"a", `vec![ "#1" ]`}, `a.iter().cloned().chain(vec![ "#1" ].iter().cloned()).collect()`},
		{"missing argument", "#1 + #2", []string{"1"}, "1 + #2"},
		{"lone hash", "#1 # #", []string{"a"}, "a # #"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Function{Template: tt.template}).Render(tt.args); got != tt.want {
				t.Errorf("Render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsType(t *testing.T) {
	for _, name := range []string{"i64", "f64", "String", "bool"} {
		if !IsType(name) {
			t.Errorf("IsType(%q) = false", name)
		}
	}
	if IsType("str") {
		t.Error("IsType(str) = true")
	}
	if len(Names()) != len(Functions())+4 {
		t.Errorf("Names() has %d entries", len(Names()))
	}
}
