package types

import "testing"

func TestIsResolved(t *testing.T) {
	tests := []struct {
		typ  string
		want bool
	}{
		{Int, true},
		{Vec(String), true},
		{"", false},
		{Undefined, false},
		{Vec(Undefined), false},
		{Number, false},
		{DynFn([]string{Int}, Int), true},
	}
	for _, tt := range tests {
		if got := IsResolved(tt.typ); got != tt.want {
			t.Errorf("IsResolved(%q) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestIndexOf(t *testing.T) {
	if got := IndexOf(Number, Float); got != 1 {
		t.Errorf("IndexOf(Number, f64) = %d, want 1", got)
	}
	if got := IndexOf(Number, String); got != -1 {
		t.Errorf("IndexOf(Number, String) = %d, want -1", got)
	}
}

func TestVec(t *testing.T) {
	v := Vec(Int)
	if v != "Vec<i64>" {
		t.Fatalf("Vec(i64) = %q", v)
	}
	if !IsVec(v) || VecElem(v) != Int {
		t.Errorf("VecElem(%q) = %q", v, VecElem(v))
	}
	if got := VecElem(Vec(Vec(Bool))); got != "Vec<bool>" {
		t.Errorf("nested VecElem = %q", got)
	}
	if got := VecElem(Int); got != Int {
		t.Errorf("VecElem(i64) = %q", got)
	}
}

func TestDynFn(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		ret   string
		typ   string
		count int
	}{
		{"one arg", []string{Int}, Int, "&dyn Fn(i64) -> i64", 1},
		{"two args", []string{Int, Float}, Bool, "&dyn Fn(i64, f64) -> bool", 2},
		{"no args", nil, String, "&dyn Fn() -> String", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ := DynFn(tt.args, tt.ret)
			if typ != tt.typ {
				t.Fatalf("DynFn = %q, want %q", typ, tt.typ)
			}
			if !IsDynFn(typ) {
				t.Errorf("IsDynFn(%q) = false", typ)
			}
			if got := DynFnArgCount(typ); got != tt.count {
				t.Errorf("DynFnArgCount(%q) = %d, want %d", typ, got, tt.count)
			}
			if got := DynFnReturn(typ); got != tt.ret {
				t.Errorf("DynFnReturn(%q) = %q, want %q", typ, got, tt.ret)
			}
		})
	}
}
