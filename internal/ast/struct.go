package ast

// Field is one key of a struct literal.
type Field struct {
	Key   string
	Value int // Index of the node holding the value
}

// StructFields returns the fields of the Struct at i in source order.
// A field is either "= key value" or a reference to a constant, which is
// stored under its own name. The second result is false if any other
// child, or an assignment without a value, is present; the well formed
// fields are still returned.
func (s *Store) StructFields(i int) ([]Field, bool) {
	var fields []Field
	ok := true
	for _, c := range s.Children(i) {
		n := s.Node(c)
		switch {
		case n.Kind.IsLayout():
		case n.Kind == ConstantRef:
			fields = append(fields, Field{Key: n.Name, Value: c})
		case n.Kind == Assignment && len(n.Children) > 0 && s.Kind(n.Children[0]) == Constant:
			key := s.Node(n.Children[0])
			v := firstValue(s, key.Children)
			if v < 0 {
				ok = false
				continue
			}
			fields = append(fields, Field{Key: key.Name, Value: v})
		default:
			ok = false
		}
	}
	return fields, ok
}

// FieldOf returns the field of the Struct at i named key.
func (s *Store) FieldOf(i int, key string) (Field, bool) {
	fields, _ := s.StructFields(i)
	for _, f := range fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

func firstValue(s *Store, children []int) int {
	for _, c := range children {
		if !s.Kind(c).IsLayout() {
			return c
		}
	}
	return -1
}
