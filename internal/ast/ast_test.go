package ast_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kolkov/toylang/internal/ast"
)

// TestKindSwitch verifies that every kind has a name and a description.
func TestKindSwitch(t *testing.T) {
	for _, k := range ast.Kinds() {
		if strings.HasPrefix(k.String(), "Kind(") {
			t.Errorf("kind %d has no name", uint8(k))
		}
		_ = ast.Node{Kind: k}.String()
	}
}

func TestAppendAndParent(t *testing.T) {
	s := ast.NewStore()
	a := s.Append(0, ast.Node{Kind: ast.Assignment})
	c := s.Append(a, ast.Node{Kind: ast.Constant, Name: "x"})
	i := s.Append(c, ast.Node{Kind: ast.Int, Value: "1"})

	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
	if s.Parent(0) != ast.NoParent {
		t.Errorf("root parent = %d", s.Parent(0))
	}
	for child, want := range map[int]int{a: 0, c: a, i: c} {
		if got := s.Parent(child); got != want {
			t.Errorf("Parent(%d) = %d, want %d", child, got, want)
		}
	}
	if got := s.Children(a); !reflect.DeepEqual(got, []int{c}) {
		t.Errorf("Children(assignment) = %v", got)
	}
	if s.Last() != i {
		t.Errorf("Last() = %d, want %d", s.Last(), i)
	}
}

func TestReplaceKeepsIndexAndChildren(t *testing.T) {
	s := ast.NewStore()
	p := s.Append(0, ast.Node{Kind: ast.Parens})
	child := s.Append(p, ast.Node{Kind: ast.Type, Value: "i64"})

	s.Replace(p, ast.Node{Kind: ast.ConstantRef, Name: "f"})
	n := s.Node(p)
	if n.Kind != ast.ConstantRef || n.Name != "f" {
		t.Errorf("replaced node = %v", n)
	}
	if !reflect.DeepEqual(n.Children, []int{child}) {
		t.Errorf("children = %v, want [%d]", n.Children, child)
	}

	s.Tombstone(child)
	if s.Kind(child) != ast.Unused {
		t.Errorf("tombstoned kind = %v", s.Kind(child))
	}
}

func TestReplaceChildMovesNode(t *testing.T) {
	s := ast.NewStore()
	a := s.Append(0, ast.Node{Kind: ast.Assignment})
	c := s.Append(a, ast.Node{Kind: ast.Constant, Name: "f"})
	def := s.Append(c, ast.Node{Kind: ast.FunctionDefInProgress})

	s.ReplaceChild(0, a, def)
	if got := s.Children(0); !reflect.DeepEqual(got, []int{def}) {
		t.Errorf("root children = %v, want [%d]", got, def)
	}
	if s.Parent(def) != 0 {
		t.Errorf("Parent(def) = %d, want 0", s.Parent(def))
	}
}

func TestRollback(t *testing.T) {
	s := ast.NewStore()
	a := s.Append(0, ast.Node{Kind: ast.Int, Value: "1"})
	s.Append(0, ast.Node{Kind: ast.Seol})

	s.Checkpoint()
	l := s.Append(0, ast.Node{Kind: ast.List})
	s.Append(l, ast.Node{Kind: ast.Int, Value: "2"})
	s.SetType(l, "Vec<i64>")
	s.MarkAsI64(a)
	s.Tombstone(a)
	s.ReplaceChild(0, a, l)
	s.Rollback()

	if s.Len() != 3 {
		t.Fatalf("Len() after rollback = %d, want 3", s.Len())
	}
	if got := s.Children(0); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("root children = %v", got)
	}
	n := s.Node(a)
	if n.Kind != ast.Int || n.AsI64 {
		t.Errorf("node after rollback = %+v", n)
	}

	s.Checkpoint()
	s.Append(0, ast.Node{Kind: ast.Eol})
	s.Commit()
	s.Rollback()
	if s.Len() != 4 {
		t.Errorf("committed append was undone")
	}
}

func TestLayers(t *testing.T) {
	// root
	// ├── 1 ── 3, 4
	// └── 2 ── 5 ── 6
	s := ast.NewStore()
	n1 := s.Append(0, ast.Node{Kind: ast.Assignment})
	n2 := s.Append(0, ast.Node{Kind: ast.Println})
	n3 := s.Append(n1, ast.Node{Kind: ast.Int})
	n4 := s.Append(n1, ast.Node{Kind: ast.Int})
	n5 := s.Append(n2, ast.Node{Kind: ast.List})
	n6 := s.Append(n5, ast.Node{Kind: ast.Int})

	want := [][]int{{n1, n2}, {n4, n3, n5}, {n6}}
	if got := s.Layers(); !reflect.DeepEqual(got, want) {
		t.Errorf("Layers() = %v, want %v", got, want)
	}
	wantFlat := []int{n6, n4, n3, n5, n1, n2}
	if got := s.DeepestFirst(); !reflect.DeepEqual(got, wantFlat) {
		t.Errorf("DeepestFirst() = %v, want %v", got, wantFlat)
	}
	if got := ast.NewStore().Layers(); got != nil {
		t.Errorf("empty Layers() = %v", got)
	}
}

func TestPrinter(t *testing.T) {
	s := ast.NewStore()
	a := s.Append(0, ast.Node{Kind: ast.Assignment})
	c := s.Append(a, ast.Node{Kind: ast.Constant, Name: "x", Type: "Undefined"})
	s.Append(c, ast.Node{Kind: ast.Int, Value: "1"})

	var sb strings.Builder
	err := ast.NewPrinter(&sb).WithTypes(func(int) string { return "i64" }).Print(s)
	if err != nil {
		t.Fatal(err)
	}
	want := "0: Root\n" +
		"    1: Assignment [i64]\n" +
		"        2: Constant x: Undefined [i64]\n" +
		"            3: Int 1 [i64]\n"
	if sb.String() != want {
		t.Errorf("Print() =\n%s\nwant\n%s", sb.String(), want)
	}
}

func TestStructFields(t *testing.T) {
	// = p { = x 1 y = z }
	s := ast.NewStore()
	st := s.Append(0, ast.Node{Kind: ast.Struct, Name: "P"})
	a := s.Append(st, ast.Node{Kind: ast.Assignment})
	x := s.Append(a, ast.Node{Kind: ast.Constant, Name: "x"})
	one := s.Append(x, ast.Node{Kind: ast.Int, Value: "1"})
	s.Append(st, ast.Node{Kind: ast.Seol})
	y := s.Append(st, ast.Node{Kind: ast.ConstantRef, Name: "y"})

	fields, ok := s.StructFields(st)
	want := []ast.Field{{Key: "x", Value: one}, {Key: "y", Value: y}}
	if !ok || !reflect.DeepEqual(fields, want) {
		t.Errorf("StructFields() = %v, %v, want %v, true", fields, ok, want)
	}
	if f, found := s.FieldOf(st, "y"); !found || f.Value != y {
		t.Errorf("FieldOf(y) = %v, %v", f, found)
	}
	if _, found := s.FieldOf(st, "w"); found {
		t.Error("FieldOf found a missing key")
	}

	b := s.Append(st, ast.Node{Kind: ast.Assignment})
	s.Append(b, ast.Node{Kind: ast.Constant, Name: "z"})
	if fields, ok := s.StructFields(st); ok || len(fields) != 2 {
		t.Errorf("StructFields() with a key and no value = %v, %v, want 2 fields and false", fields, ok)
	}
}
