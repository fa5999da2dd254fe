package editor

import (
	"errors"
	"sync"
	"testing"

	"github.com/jonathan/cv-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(types.SampleDocument(), WithID("test-session"))
}

func TestNewSession_InitialState(t *testing.T) {
	s := newTestSession(t)

	state := s.State()
	assert.Equal(t, "test-session", state.ID)
	assert.Equal(t, types.TemplateModern, state.Template)
	assert.False(t, state.CanUndo)
	assert.False(t, state.CanRedo)
	assert.Equal(t, "Alex Anderson", s.Document().Profile.FullName)
}

func TestNewSession_CopiesInitialDocument(t *testing.T) {
	initial := types.SampleDocument()
	s := NewSession(initial)

	initial.Experience[0].Company = "Mutated by caller"

	assert.Equal(t, "Tech Solutions Inc.", s.Document().Experience[0].Company)
}

func TestDocument_ReturnsIndependentCopy(t *testing.T) {
	s := newTestSession(t)

	doc := s.Document()
	doc.Skills[0].Name = "Mutated"
	*doc.Profile.Image = "mutated"

	fresh := s.Document()
	assert.Equal(t, "React", fresh.Skills[0].Name)
	assert.NotEqual(t, "mutated", *fresh.Profile.Image)
}

func TestUpdate_SnapshotsAreIndependentOfCallerValues(t *testing.T) {
	s := newTestSession(t)

	items := []types.Skill{{ID: "s1", Name: "Go", Level: 4}}
	require.NoError(t, s.SetSkills(items))
	require.NoError(t, s.SetSkills([]types.Skill{{ID: "s2", Name: "Rust", Level: 2}}))

	// Mutating the slice the caller passed earlier must not rewrite history.
	items[0].Name = "Mutated"

	s.Undo()
	assert.Equal(t, "Go", s.Document().Skills[0].Name)
	s.Undo()
	assert.Equal(t, "React", s.Document().Skills[0].Name)
}

func TestUpdate_FailureLeavesHistoryUntouched(t *testing.T) {
	s := newTestSession(t)
	before := s.State()
	boom := errors.New("boom")

	err := s.Update(func(d *types.Document) error {
		d.Profile.FullName = "Half-applied"
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, before, s.State())
	assert.Equal(t, "Alex Anderson", s.Document().Profile.FullName)
}

func TestUpdate_InvalidDocumentRejected(t *testing.T) {
	s := newTestSession(t)

	err := s.Update(func(d *types.Document) error {
		d.Profile.Email = "nope"
		return nil
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, s.State().CanUndo)
	assert.Equal(t, "alex.anderson@example.com", s.Document().Profile.Email)
}

func TestUndoRedoThroughSession(t *testing.T) {
	s := NewSession(types.Empty())

	for _, name := range []string{"A", "B"} {
		p := s.Document().Profile
		p.FullName = name
		require.NoError(t, s.SetProfile(p))
	}
	assert.Equal(t, "B", s.Document().Profile.FullName)

	state := s.Undo().State
	assert.True(t, state.CanUndo)
	assert.True(t, state.CanRedo)
	assert.Equal(t, "A", s.Document().Profile.FullName)

	s.Undo()
	assert.Equal(t, "", s.Document().Profile.FullName)
	state = s.Undo().State
	assert.False(t, state.CanUndo)

	s.Redo()
	assert.Equal(t, "A", s.Document().Profile.FullName)

	// A fresh edit drops the redo branch.
	require.NoError(t, s.SetThemeColor("#059669"))
	assert.False(t, s.State().CanRedo)
}

func TestClearHistory_KeepsDocument(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.SetThemeColor("#e11d48"))
	s.Undo()
	require.NoError(t, s.SetThemeColor("#7c3aed"))

	state := s.ClearHistory().State

	assert.False(t, state.CanUndo)
	assert.False(t, state.CanRedo)
	assert.Equal(t, "#7c3aed", s.Document().ThemeColor)
}

func TestSetTemplate_NotRecordedInHistory(t *testing.T) {
	s := newTestSession(t)
	s.SetTemplate(types.TemplateClassic)

	assert.Equal(t, types.TemplateClassic, s.Template())
	assert.False(t, s.State().CanUndo)
}

func TestReplace(t *testing.T) {
	s := newTestSession(t)
	doc := types.Empty()
	doc.Profile.FullName = "Jordan Lee"

	require.NoError(t, s.Replace(doc))
	doc.Profile.FullName = "Changed after replace"

	assert.Equal(t, "Jordan Lee", s.Document().Profile.FullName)
	assert.Empty(t, s.Document().Experience)
	s.Undo()
	assert.Equal(t, "Alex Anderson", s.Document().Profile.FullName)
}

func TestConcurrentUpdatesAreSerialized(t *testing.T) {
	s := NewSession(types.Empty())
	const workers = 20

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddSkill("Go")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, s.Document().Skills, workers)
	assert.Equal(t, workers, s.State().UndoDepth)
}

func TestApply_ResultIsTheCommittedEdit(t *testing.T) {
	s := NewSession(types.Empty())
	const workers = 20

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		depths = make(map[int]bool)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			edit, id := AddSkill("Go")
			res, err := s.Apply(edit)
			if !assert.NoError(t, err) {
				return
			}
			// The view carries exactly the edits up to and including this one.
			assert.Len(t, res.Document.Skills, res.State.UndoDepth)
			assert.Equal(t, id, res.Document.Skills[len(res.Document.Skills)-1].ID)

			mu.Lock()
			depths[res.State.UndoDepth] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, depths, workers)
}

func TestApply_FailedEditReturnsNoResult(t *testing.T) {
	s := newTestSession(t)

	res, err := s.Apply(RemoveEntry(SectionSkills, "missing"))

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, Result{}, res)
	assert.False(t, s.State().CanUndo)
}

func TestUndoRedo_ReturnDocument(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.SetThemeColor("#059669"))

	res := s.Undo()
	assert.Equal(t, types.DefaultThemeColor, res.Document.ThemeColor)
	assert.True(t, res.State.CanRedo)

	res = s.Redo()
	assert.Equal(t, "#059669", res.Document.ThemeColor)
	assert.False(t, res.State.CanRedo)
}

func TestReplace_RejectsUnsupportedThemeColor(t *testing.T) {
	for _, color := range []string{"#11223344", "#1234", "indigo"} {
		t.Run(color, func(t *testing.T) {
			s := newTestSession(t)
			doc := types.SampleDocument()
			doc.ThemeColor = color

			err := s.Replace(doc)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.False(t, s.State().CanUndo)
			assert.Equal(t, types.DefaultThemeColor, s.Document().ThemeColor)
		})
	}
}
