package ast

// NoParent is the parent index of the root and of detached nodes.
const NoParent = -1

// Store is the arena holding every node of one compilation.
//
// Parent links are explicit: each node records the index it was appended
// under, so Parent is O(1). Only ReplaceChild moves a node to a new parent.
//
// Mutations made between Checkpoint and Commit are journaled; Rollback
// undoes them in reverse order and leaves the store exactly as it was at the
// checkpoint.
type Store struct {
	nodes   []Node
	parents []int

	journal []func()
	inTx    bool
}

// NewStore returns a store holding only the root.
func NewStore() *Store {
	return &Store{
		nodes:   []Node{{Kind: Root}},
		parents: []int{NoParent},
	}
}

// Len returns the number of nodes, including the root and Unused nodes.
func (s *Store) Len() int {
	return len(s.nodes)
}

// Node returns a copy of the node at index i.
// Its slices are shared with the store and must not be modified.
func (s *Store) Node(i int) Node {
	return s.nodes[i]
}

// Kind returns the kind of the node at index i.
func (s *Store) Kind(i int) Kind {
	return s.nodes[i].Kind
}

// Children returns the child indices of node i. The slice must not be modified.
func (s *Store) Children(i int) []int {
	return s.nodes[i].Children
}

// Parent returns the parent index of node i, or NoParent.
func (s *Store) Parent(i int) int {
	return s.parents[i]
}

// Last returns the index of the most recently appended node.
func (s *Store) Last() int {
	return len(s.nodes) - 1
}

// Append adds n as the last child of parent and returns its index.
func (s *Store) Append(parent int, n Node) int {
	idx := len(s.nodes)
	old := s.nodes[parent].Children
	n.Children = nil
	s.nodes = append(s.nodes, n)
	s.parents = append(s.parents, parent)
	s.nodes[parent].Children = append(old, idx)
	s.record(func() {
		s.nodes = s.nodes[:idx]
		s.parents = s.parents[:idx]
		s.nodes[parent].Children = old
	})
	return idx
}

// AppendDetached adds n without attaching it to any parent.
func (s *Store) AppendDetached(n Node) int {
	idx := len(s.nodes)
	n.Children = nil
	s.nodes = append(s.nodes, n)
	s.parents = append(s.parents, NoParent)
	s.record(func() {
		s.nodes = s.nodes[:idx]
		s.parents = s.parents[:idx]
	})
	return idx
}

// Replace rewrites node i in place. The index, parent and children are kept.
func (s *Store) Replace(i int, n Node) {
	s.update(i, func(cur *Node) {
		n.Children = cur.Children
		*cur = n
	})
}

// SetChildren replaces the child list of node i.
func (s *Store) SetChildren(i int, children []int) {
	s.update(i, func(cur *Node) {
		cur.Children = append([]int(nil), children...)
	})
}

// SetType sets the construction-time type of node i.
func (s *Store) SetType(i int, t string) {
	s.update(i, func(cur *Node) { cur.Type = t })
}

// MarkAsI64 flags the Int at index i to be rendered with an explicit cast.
func (s *Store) MarkAsI64(i int) {
	s.update(i, func(cur *Node) { cur.AsI64 = true })
}

// Tombstone marks node i Unused. Its index stays valid forever.
func (s *Store) Tombstone(i int) {
	s.update(i, func(cur *Node) {
		*cur = Node{Kind: Unused, Line: cur.Line, Children: cur.Children}
	})
}

// ReplaceChild swaps old for repl in the child list of parent and moves
// repl under parent.
func (s *Store) ReplaceChild(parent, old, repl int) {
	s.update(parent, func(cur *Node) {
		children := append([]int(nil), cur.Children...)
		for j, c := range children {
			if c == old {
				children[j] = repl
			}
		}
		cur.Children = children
	})
	prev := s.parents[repl]
	s.parents[repl] = parent
	s.record(func() { s.parents[repl] = prev })
}

func (s *Store) update(i int, fn func(*Node)) {
	prev := s.nodes[i]
	fn(&s.nodes[i])
	s.record(func() { s.nodes[i] = prev })
}

func (s *Store) record(undo func()) {
	if s.inTx {
		s.journal = append(s.journal, undo)
	}
}

// Checkpoint starts journaling mutations.
func (s *Store) Checkpoint() {
	s.inTx = true
	s.journal = s.journal[:0]
}

// Commit keeps every mutation since the checkpoint.
func (s *Store) Commit() {
	s.inTx = false
	s.journal = s.journal[:0]
}

// Rollback undoes every mutation since the checkpoint.
func (s *Store) Rollback() {
	for i := len(s.journal) - 1; i >= 0; i-- {
		s.journal[i]()
	}
	s.inTx = false
	s.journal = s.journal[:0]
}

// Layers returns the nodes reachable from the root grouped by depth.
// The first layer is the root's children in order; every later layer lists,
// for each node of the previous layer in turn, that node's children in
// reverse order.
func (s *Store) Layers() [][]int {
	first := append([]int(nil), s.nodes[0].Children...)
	if len(first) == 0 {
		return nil
	}
	layers := [][]int{first}
	for {
		var next []int
		for _, idx := range layers[len(layers)-1] {
			children := s.nodes[idx].Children
			for j := len(children) - 1; j >= 0; j-- {
				next = append(next, children[j])
			}
		}
		if len(next) == 0 {
			return layers
		}
		layers = append(layers, next)
	}
}

// DeepestFirst flattens Layers from the deepest layer up to the root's children.
func (s *Store) DeepestFirst() []int {
	layers := s.Layers()
	var order []int
	for i := len(layers) - 1; i >= 0; i-- {
		order = append(order, layers[i]...)
	}
	return order
}
