package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/agenda/internal/db"
	"github.com/balkashynov/agenda/internal/models"
	"github.com/balkashynov/agenda/internal/store"
)

var wednesday = time.Date(2026, time.October, 14, 10, 30, 0, 0, time.UTC)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	clock := wednesday
	st := store.New(db.NewMemory(), store.WithClock(func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}))
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func addTask(t *testing.T, st *store.Store, title string, status models.Status) models.Task {
	t.Helper()
	task := st.NewTask(title)
	task.Status = status
	require.NoError(t, st.AddTask(context.Background(), task))
	return task
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loaded runs the model's load command and feeds the result back
func loaded(t *testing.T, m BoardModel) BoardModel {
	t.Helper()
	msg := m.load()()
	require.IsType(t, boardLoadedMsg{}, msg)
	next, _ := m.Update(msg)
	return next.(BoardModel)
}

func TestBoardLoadsColumns(t *testing.T) {
	st := newStore(t)
	addTask(t, st, "a", models.StatusPending)
	addTask(t, st, "b", models.StatusInProgress)
	addTask(t, st, "c", models.StatusPending)

	sub := st.Subscribe()
	defer sub.Close()
	m := loaded(t, NewBoardModel(context.Background(), st, sub, ""))

	require.Len(t, m.columns, 4)
	assert.Len(t, m.columns[0].Tasks, 2)
	assert.Len(t, m.columns[1].Tasks, 1)
	assert.Equal(t, 3, m.stats.Total)

	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "a", selected.Title)
	assert.Contains(t, m.View(), "Pending (2)")
}

func TestBoardNavigation(t *testing.T) {
	st := newStore(t)
	addTask(t, st, "a", models.StatusPending)
	addTask(t, st, "b", models.StatusPending)
	addTask(t, st, "c", models.StatusCompleted)

	sub := st.Subscribe()
	defer sub.Close()
	m := loaded(t, NewBoardModel(context.Background(), st, sub, ""))

	next, _ := m.Update(keyRunes("j"))
	m = next.(BoardModel)
	selected, _ := m.Selected()
	assert.Equal(t, "b", selected.Title)

	next, _ = m.Update(keyRunes("j"))
	m = next.(BoardModel)
	selected, _ = m.Selected()
	assert.Equal(t, "b", selected.Title, "selection stops at the last card")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(BoardModel)
	_, ok := m.Selected()
	assert.False(t, ok, "in-progress column is empty")

	next, _ = m.Update(keyRunes("l"))
	m = next.(BoardModel)
	selected, _ = m.Selected()
	assert.Equal(t, "c", selected.Title)
}

func TestBoardToggleRefreshesThroughSubscription(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	task := addTask(t, st, "a", models.StatusPending)

	sub := st.Subscribe()
	defer sub.Close()
	m := loaded(t, NewBoardModel(ctx, st, sub, ""))

	_, cmd := m.Update(keyRunes("x"))
	require.NotNil(t, cmd)
	done := cmd().(actionDoneMsg)
	require.NoError(t, done.err)

	stored, _, err := st.Task(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, stored.Status)

	// the save was announced on the subscription
	msg := waitForChange(sub)()
	changed, ok := msg.(dataChangedMsg)
	require.True(t, ok)
	assert.Positive(t, changed.event.SequenceID)

	next, cmd := m.Update(changed)
	require.NotNil(t, cmd, "a change re-reads and re-arms")
	m = next.(BoardModel)
	m = loaded(t, m)

	assert.Empty(t, m.columns[0].Tasks)
	require.Len(t, m.columns[2].Tasks, 1)
	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, task.ID, selected.ID, "selection follows the card")
}

func TestBoardMoveAndDelete(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	a := addTask(t, st, "a", models.StatusPending)
	b := addTask(t, st, "b", models.StatusPending)

	sub := st.Subscribe()
	defer sub.Close()
	m := loaded(t, NewBoardModel(ctx, st, sub, ""))

	_, cmd := m.Update(keyRunes(">"))
	require.NoError(t, cmd().(actionDoneMsg).err)
	moved, _, _ := st.Task(ctx, a.ID)
	assert.Equal(t, models.StatusInProgress, moved.Status)

	m = loaded(t, m)
	next, _ := m.Update(keyRunes("h"))
	m = next.(BoardModel)
	selected, _ := m.Selected()
	require.Equal(t, b.ID, selected.ID)

	_, cmd = m.Update(keyRunes("d"))
	require.NoError(t, cmd().(actionDoneMsg).err)
	soft, _, _ := st.Task(ctx, b.ID)
	assert.Equal(t, models.StatusDeleted, soft.Status)

	_, cmd = m.Update(keyRunes("D"))
	require.NoError(t, cmd().(actionDoneMsg).err)
	_, found, _ := st.Task(ctx, b.ID)
	assert.False(t, found)
}

func TestBoardStopsWhenSubscriptionCloses(t *testing.T) {
	st := newStore(t)
	sub := st.Subscribe()
	m := NewBoardModel(context.Background(), st, sub, "")

	sub.Close()
	msg := waitForChange(sub)()
	assert.IsType(t, subscriptionClosedMsg{}, msg)

	_, cmd := m.Update(msg)
	assert.Nil(t, cmd)
}

func TestBoardQuit(t *testing.T) {
	st := newStore(t)
	sub := st.Subscribe()
	defer sub.Close()
	m := NewBoardModel(context.Background(), st, sub, "")

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestComposerSuggestsDate(t *testing.T) {
	st := newStore(t)
	m := NewComposerModel(context.Background(), st, Draft{})
	assert.Nil(t, m.Suggestion())

	next, _ := m.Update(keyRunes("Llamar a Ana mañana"))
	m = next.(ComposerModel)

	require.NotNil(t, m.Suggestion())
	assert.Equal(t, 15, m.Suggestion().Day())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = next.(ComposerModel)
	assert.Equal(t, "15/10/2026", m.inputs[fieldDue].Value())
	assert.Nil(t, m.Suggestion(), "nothing is offered once the due field is set")
}

func TestComposerSaves(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	m := NewComposerModel(ctx, st, Draft{Title: "Revisar informe el viernes #trabajo +p1", Description: "antes de las 12"})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = next.(ComposerModel)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(ComposerModel)
	require.NotNil(t, cmd)

	next, cmd = m.Update(cmd())
	m = next.(ComposerModel)
	require.NotNil(t, m.Created())
	assert.IsType(t, tea.QuitMsg{}, cmd())

	tasks, err := st.Tasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	task := tasks[0]
	assert.Equal(t, "Revisar informe el viernes", task.Title)
	assert.Equal(t, "antes de las 12", task.Description)
	assert.Equal(t, models.PriorityP1, task.Priority)
	assert.Equal(t, []string{"trabajo"}, task.Tags)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, time.Date(2026, time.October, 16, 23, 59, 59, 0, time.UTC), *task.DueDate)
}

func TestComposerReportsSaveErrorAfterEsc(t *testing.T) {
	st := store.New(nil)
	m := NewComposerModel(context.Background(), st, Draft{Title: "Comprar pan"})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(ComposerModel)
	require.NotNil(t, cmd)

	next, _ = m.Update(cmd())
	m = next.(ComposerModel)
	assert.Contains(t, m.View(), store.ErrUnavailable.Error())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ComposerModel)

	task, err := m.Outcome()
	assert.Nil(t, task)
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestComposerRequiresTitle(t *testing.T) {
	st := newStore(t)
	m := NewComposerModel(context.Background(), st, Draft{})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(ComposerModel)
	assert.Nil(t, cmd)
	assert.Equal(t, "Title is required", m.validationErr)

	tasks, err := st.Tasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestComposerTabAndCancel(t *testing.T) {
	st := newStore(t)
	m := NewComposerModel(context.Background(), st, Draft{})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ComposerModel)
	assert.Equal(t, fieldDescription, m.focus)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ComposerModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ComposerModel)
	assert.Equal(t, fieldDue, m.focus)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ComposerModel)
	assert.True(t, m.cancelled)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	task, err := m.Outcome()
	assert.Nil(t, task)
	assert.NoError(t, err)
}
