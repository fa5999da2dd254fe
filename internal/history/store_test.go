package history

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type named struct {
	Name string
}

func TestNew_EmptyHistory(t *testing.T) {
	s := New("initial")

	assert.Equal(t, "initial", s.Current())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	assert.Empty(t, s.Past())
	assert.Empty(t, s.Future())
}

func TestSet_OnFreshStore(t *testing.T) {
	s := New("I")
	s.Set("A")

	assert.Equal(t, "A", s.Current())
	assert.True(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	assert.Equal(t, []string{"I"}, s.Past())
}

func TestUndo_OnFreshStoreIsNoop(t *testing.T) {
	s := New(42)
	s.Undo()

	assert.Equal(t, 42, s.Current())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestRedo_WithoutFutureIsNoop(t *testing.T) {
	s := New(1)
	s.Set(2)
	before := s.Snapshot()

	s.Redo()

	if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
		t.Errorf("Redo() changed state (-before +after):\n%s", diff)
	}
}

func TestSetSetUndo(t *testing.T) {
	s := New("I")
	s.Set("A")
	s.Set("B")
	s.Undo()

	assert.Equal(t, "A", s.Current())
	assert.True(t, s.CanUndo())
	assert.True(t, s.CanRedo())
}

func TestUndoRedo_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		undos  int
	}{
		{name: "single set", values: []int{1}},
		{name: "several sets", values: []int{1, 2, 3, 4}},
		{name: "after partial undo", values: []int{1, 2, 3, 4, 5}, undos: 2},
		{name: "one step above oldest", values: []int{1, 2, 3}, undos: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(0)
			for _, v := range tt.values {
				s.Set(v)
			}
			for i := 0; i < tt.undos; i++ {
				s.Undo()
			}
			require.True(t, s.CanUndo())

			before := s.Snapshot()
			s.Undo()
			s.Redo()

			if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
				t.Errorf("Undo+Redo is not an identity (-before +after):\n%s", diff)
			}
		})
	}
}

func TestSet_InvalidatesRedo(t *testing.T) {
	for _, x := range []string{"A", "B", "X", ""} {
		t.Run(fmt.Sprintf("set %q", x), func(t *testing.T) {
			s := New("I")
			s.Set("A")
			s.Set("B")
			s.Undo()
			require.True(t, s.CanRedo())

			s.Set(x)

			assert.False(t, s.CanRedo())
			assert.Empty(t, s.Future())
			assert.Equal(t, x, s.Current())
			assert.Equal(t, []string{"I", "A"}, s.Past())
		})
	}
}

func TestClearHistory(t *testing.T) {
	s := New("I")
	s.Set("A")
	s.Set("B")
	s.Set("C")
	s.Undo()

	s.ClearHistory()

	assert.Equal(t, "B", s.Current())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())

	// Still usable afterwards.
	s.Set("D")
	assert.Equal(t, []string{"B"}, s.Past())
}

func TestClearHistory_OnFreshStore(t *testing.T) {
	s := New("I")
	s.ClearHistory()

	assert.Equal(t, "I", s.Current())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestUndo_NDeep(t *testing.T) {
	const n = 25
	s := New(-1)
	for i := 0; i < n; i++ {
		s.Set(i)
	}
	assert.Equal(t, n, s.UndoDepth())

	for i := 0; i < n; i++ {
		s.Undo()
	}
	assert.Equal(t, -1, s.Current())
	assert.False(t, s.CanUndo())
	assert.Equal(t, n, s.RedoDepth())

	before := s.Snapshot()
	s.Undo()
	if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
		t.Errorf("extra Undo() changed state (-before +after):\n%s", diff)
	}

	// Walking forward again replays the same values in order.
	for i := 0; i < n; i++ {
		s.Redo()
		assert.Equal(t, i, s.Current())
	}
	assert.False(t, s.CanRedo())
}

func TestScenario_NamedRecord(t *testing.T) {
	s := New(named{Name: ""})

	s.Set(named{Name: "A"})
	assert.Equal(t, "A", s.Current().Name)

	s.Set(named{Name: "B"})
	assert.Equal(t, "B", s.Current().Name)
	assert.Equal(t, []named{{Name: ""}, {Name: "A"}}, s.Past())
	assert.Empty(t, s.Future())

	s.Undo()
	assert.Equal(t, named{Name: "A"}, s.Current())
	assert.Equal(t, []named{{Name: ""}}, s.Past())
	assert.Equal(t, []named{{Name: "B"}}, s.Future())

	s.Undo()
	assert.Equal(t, named{Name: ""}, s.Current())
	assert.Empty(t, s.Past())
	assert.Equal(t, []named{{Name: "A"}, {Name: "B"}}, s.Future())

	s.Redo()
	assert.Equal(t, named{Name: "A"}, s.Current())
	assert.Equal(t, []named{{Name: ""}}, s.Past())
	assert.Equal(t, []named{{Name: "B"}}, s.Future())
}

func TestAccessors_ReturnCopies(t *testing.T) {
	s := New("I")
	s.Set("A")
	s.Set("B")
	s.Undo()

	past := s.Past()
	past[0] = "mutated"
	future := s.Future()
	future[0] = "mutated"

	assert.Equal(t, []string{"I"}, s.Past())
	assert.Equal(t, []string{"B"}, s.Future())
}

func TestDuplicateSnapshotsAreKept(t *testing.T) {
	s := New("x")
	s.Set("x")
	s.Set("x")

	assert.Equal(t, 2, s.UndoDepth())
}
