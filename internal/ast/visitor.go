package ast

// Walk traverses the tree under start in depth-first order.
// For each node, it calls fn(index, depth) with depth 0 for start.
// If fn returns false, the children of that node are not visited.
//
// Example: count the statements of every function body
//
//	ast.Walk(store, 0, func(i, depth int) bool {
//	    if store.Kind(i) == ast.Seol {
//	        count++
//	    }
//	    return true
//	})
func Walk(s *Store, start int, fn func(index, depth int) bool) {
	walk(s, start, 0, fn)
}

func walk(s *Store, idx, depth int, fn func(int, int) bool) {
	if !fn(idx, depth) {
		return
	}
	for _, c := range s.Children(idx) {
		walk(s, c, depth+1, fn)
	}
}
