// Package history provides a generic linear undo/redo store over full-state snapshots.
package history

// Store holds a current value plus the snapshots before and after it.
// The zero value is not usable; construct with New.
//
// Store is not safe for concurrent use. It expects a single owner that
// serializes calls (see editor.Session).
type Store[T any] struct {
	current T
	past    []T // oldest first, most recent at the tail
	redo    []T // nearest snapshot at the tail; Future() reverses it
}

// Snapshot is a copy of the full (past, current, future) triple.
type Snapshot[T any] struct {
	Past    []T
	Current T
	Future  []T
}

// New creates a store whose current value is initial and whose history is empty.
func New[T any](initial T) *Store[T] {
	return &Store[T]{current: initial}
}

// Current returns the active value.
func (s *Store[T]) Current() T {
	return s.current
}

// Set makes v the current value, pushing the previous value onto the past
// and discarding any redo history.
func (s *Store[T]) Set(v T) {
	s.past = append(s.past, s.current)
	s.current = v
	clear(s.redo)
	s.redo = s.redo[:0]
}

// Undo steps back one snapshot. It is a no-op when there is nothing to undo.
func (s *Store[T]) Undo() {
	if len(s.past) == 0 {
		return
	}
	last := len(s.past) - 1
	previous := s.past[last]
	var zero T
	s.past[last] = zero
	s.past = s.past[:last]

	s.redo = append(s.redo, s.current)
	s.current = previous
}

// Redo steps forward one snapshot. It is a no-op when there is nothing to redo.
func (s *Store[T]) Redo() {
	if len(s.redo) == 0 {
		return
	}
	last := len(s.redo) - 1
	next := s.redo[last]
	var zero T
	s.redo[last] = zero
	s.redo = s.redo[:last]

	s.past = append(s.past, s.current)
	s.current = next
}

// ClearHistory drops all past and future snapshots. Current is untouched.
func (s *Store[T]) ClearHistory() {
	s.past = nil
	s.redo = nil
}

// CanUndo reports whether Undo would change the current value.
func (s *Store[T]) CanUndo() bool {
	return len(s.past) > 0
}

// CanRedo reports whether Redo would change the current value.
func (s *Store[T]) CanRedo() bool {
	return len(s.redo) > 0
}

// UndoDepth returns the number of snapshots behind the current value.
func (s *Store[T]) UndoDepth() int {
	return len(s.past)
}

// RedoDepth returns the number of snapshots ahead of the current value.
func (s *Store[T]) RedoDepth() int {
	return len(s.redo)
}

// Past returns the snapshots older than Current, oldest first.
func (s *Store[T]) Past() []T {
	out := make([]T, len(s.past))
	copy(out, s.past)
	return out
}

// Future returns the undone snapshots, nearest first.
func (s *Store[T]) Future() []T {
	out := make([]T, len(s.redo))
	for i, v := range s.redo {
		out[len(s.redo)-1-i] = v
	}
	return out
}

// Snapshot returns a copy of the whole timeline.
func (s *Store[T]) Snapshot() Snapshot[T] {
	return Snapshot[T]{
		Past:    s.Past(),
		Current: s.current,
		Future:  s.Future(),
	}
}
