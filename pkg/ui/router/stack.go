package router

// StackEntry is a screen to return to: the screen, the input it was shown
// with, and the resume state (such as list position) it handed back.
type StackEntry struct {
	Screen Screen
	Input  any
	Resume any
}

// Stack is the back-navigation history. Transition functions push the
// screen being left when moving forward and pop when going back.
type Stack struct {
	entries []StackEntry
}

func NewStack() *Stack {
	return &Stack{entries: make([]StackEntry, 0, 4)}
}

// Push records screen as the place to come back to.
func (s *Stack) Push(screen Screen, input any, resume any) {
	s.entries = append(s.entries, StackEntry{Screen: screen, Input: input, Resume: resume})
}

// Pop removes and returns the most recent entry, or nil when empty.
func (s *Stack) Pop() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &entry
}

// Unwind pops entries until it finds screen and returns that entry, leaving
// everything below it in place. It returns nil and empties the stack when
// screen is not on it.
func (s *Stack) Unwind(screen Screen) *StackEntry {
	for entry := s.Pop(); entry != nil; entry = s.Pop() {
		if entry.Screen == screen {
			return entry
		}
	}
	return nil
}

// Peek returns the most recent entry without removing it, or nil when empty.
func (s *Stack) Peek() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[len(s.entries)-1]
}

func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

func (s *Stack) Len() int {
	return len(s.entries)
}

func (s *Stack) Clear() {
	s.entries = s.entries[:0]
}
