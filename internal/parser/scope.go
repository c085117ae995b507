package parser

// ScopeStack is the stack of open node indices. The bottom entry is the
// root (index 0) and is never removed.
type ScopeStack struct {
	stack []int
}

// NewScopeStack returns a stack holding only the root.
func NewScopeStack() *ScopeStack {
	return &ScopeStack{stack: []int{0}}
}

// Current returns the innermost open scope.
func (s *ScopeStack) Current() int {
	return s.stack[len(s.stack)-1]
}

// Open pushes idx as the innermost scope.
func (s *ScopeStack) Open(idx int) {
	s.stack = append(s.stack, idx)
}

// Close pops the innermost scope. Closing the root is a no-op.
func (s *ScopeStack) Close() {
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// Depth returns the number of open scopes, including the root.
func (s *ScopeStack) Depth() int {
	return len(s.stack)
}

// Indices returns the open scopes from the root outwards.
// The slice must not be modified.
func (s *ScopeStack) Indices() []int {
	return s.stack
}

// Contains reports whether idx is an open scope.
func (s *ScopeStack) Contains(idx int) bool {
	for _, i := range s.stack {
		if i == idx {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the stack for a later Restore.
func (s *ScopeStack) Snapshot() []int {
	return append([]int(nil), s.stack...)
}

// Restore resets the stack to a snapshot.
func (s *ScopeStack) Restore(snap []int) {
	s.stack = append(s.stack[:0], snap...)
}
