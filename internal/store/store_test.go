package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/balkashynov/agenda/internal/db"
	"github.com/balkashynov/agenda/internal/events"
	"github.com/balkashynov/agenda/internal/models"
)

var wednesday = time.Date(2026, time.October, 14, 10, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(db.NewMemory(),
		WithClock(func() time.Time { return wednesday }),
		WithLogger(zaptest.NewLogger(t)))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func ptr(t time.Time) *time.Time { return &t }

func sampleTask(id, title string) models.Task {
	return models.Task{
		ID:        id,
		Title:     title,
		Status:    models.StatusPending,
		Priority:  models.PriorityP4,
		UserID:    models.DefaultUserID,
		CreatedAt: wednesday,
		Tags:      []string{},
	}
}

func expectEvent(t *testing.T, ch <-chan events.Event) events.Event {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
		return events.Event{}
	}
}

func expectNoEvent(t *testing.T, ch <-chan events.Event) {
	t.Helper()
	select {
	case event, ok := <-ch:
		if ok {
			t.Fatalf("unexpected change notification %+v", event)
		}
	default:
	}
}

func TestStore_WithoutMedium(t *testing.T) {
	ctx := context.Background()
	s := New(nil)

	tasks, err := s.Tasks(ctx)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)

	lists, err := s.Lists(ctx)
	require.NoError(t, err)
	assert.Empty(t, lists)

	projects, err := s.Projects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)

	assert.ErrorIs(t, s.AddTask(ctx, sampleTask("1", "x")), ErrUnavailable)
	assert.NoError(t, s.Close())
}

func TestStore_EmptyMediumReadsEmpty(t *testing.T) {
	s := newTestStore(t)

	tasks, err := s.Tasks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Task{}, tasks)
}

func TestStore_SaveTasksRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	full := models.Task{
		ID:              "1760437800000",
		Title:           "Preparar presentación",
		Description:     "Slides para el comité",
		Status:          models.StatusInProgress,
		Priority:        models.PriorityP1,
		DueDate:         ptr(time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)),
		ReminderEndDate: ptr(time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)),
		ListID:          "l1",
		ProjectID:       "p1",
		UserID:          "1",
		CreatedAt:       wednesday,
		Tags:            []string{"Trabajo", "Estudio"},
		IsImportant:     true,
	}
	saved := []models.Task{full, sampleTask("2", "Comprar leche")}

	require.NoError(t, s.SaveTasks(ctx, saved))

	loaded, err := s.Tasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestStore_AddTask(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.AddTask(ctx, sampleTask("1", "first")))

	added := sampleTask("2", "second")
	added.IsImportant = true
	require.NoError(t, s.AddTask(ctx, added))

	tasks, err := s.Tasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	matches := 0
	for _, task := range tasks {
		if assert.ObjectsAreEqual(added, task) {
			matches++
		}
	}
	assert.Equal(t, 1, matches)
	assert.Equal(t, "2", tasks[1].ID, "add appends")
}

func TestStore_DeleteTask(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.AddTask(ctx, sampleTask("1", "only")))

	require.NoError(t, s.DeleteTask(ctx, "1"))

	tasks, err := s.Tasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestStore_DeleteMissingTaskKeepsCollection(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.AddTask(ctx, sampleTask("1", "only")))

	require.NoError(t, s.DeleteTask(ctx, "nope"))

	tasks, err := s.Tasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestStore_UpdateTaskMergesFields(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	task := sampleTask("1", "old title")
	task.DueDate = ptr(wednesday)
	task.Tags = []string{"casa"}
	require.NoError(t, s.SaveTasks(ctx, []models.Task{task, sampleTask("2", "other")}))

	err := s.UpdateTask(ctx, "1", Fields{
		models.FieldTitle:       "new title",
		models.FieldStatus:      models.StatusCompleted,
		models.FieldDueDate:     nil,
		models.FieldIsImportant: true,
	})
	require.NoError(t, err)

	updated, ok, err := s.Task(ctx, "1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Nil(t, updated.DueDate)
	assert.True(t, updated.IsImportant)
	assert.Equal(t, []string{"casa"}, updated.Tags, "untouched fields survive")
	assert.Equal(t, wednesday, updated.CreatedAt)

	other, _, err := s.Task(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "other", other.Title)
}

func TestStore_UpdateMissingTaskIsSilent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.AddTask(ctx, sampleTask("1", "only")))

	sub := s.Subscribe()
	defer sub.Close()

	require.NoError(t, s.UpdateTask(ctx, "missing", Fields{models.FieldTitle: "x"}))
	expectNoEvent(t, sub.C)

	task, _, err := s.Task(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "only", task.Title)
}

func TestStore_UpdateRejectsMistypedField(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.AddTask(ctx, sampleTask("1", "only")))

	err := s.UpdateTask(ctx, "1", Fields{models.FieldIsImportant: "yes"})
	assert.Error(t, err)
}

func TestStore_UpdateRejectsUnknownField(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.AddTask(ctx, sampleTask("1", "x")))

	sub := s.Subscribe()
	defer sub.Close()

	err := s.UpdateTask(ctx, "1", Fields{"titel": "y"})
	require.ErrorIs(t, err, ErrUnknownField)
	expectNoEvent(t, sub.C)

	task, _, err := s.Task(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "x", task.Title)
}

func TestStore_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	medium := db.NewMemory()
	require.NoError(t, medium.Set(ctx, TasksKey, "{not json"))
	s := New(medium)

	_, err := s.Tasks(ctx)
	assert.Error(t, err)
}

func TestStore_EverySaveNotifies(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	sub := s.Subscribe()
	defer sub.Close()

	require.NoError(t, s.AddTask(ctx, sampleTask("1", "a")))
	first := expectEvent(t, sub.C)
	assert.Equal(t, events.EventDataChanged, first.Type)
	assert.Equal(t, wednesday, first.Timestamp)

	require.NoError(t, s.AddList(ctx, s.NewList("Compras")))
	second := expectEvent(t, sub.C)
	assert.Greater(t, second.SequenceID, first.SequenceID)

	require.NoError(t, s.AddProject(ctx, s.NewProject("Casa")))
	expectEvent(t, sub.C)

	sub.Close()
	require.NoError(t, s.DeleteTask(ctx, "1"))
	_, ok := <-sub.C
	assert.False(t, ok, "no delivery after unsubscribing")
}

func TestStore_ListenEndsWithContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	ch := s.Listen(ctx)
	require.NoError(t, s.AddTask(context.Background(), sampleTask("1", "a")))
	expectEvent(t, ch)

	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed once the context ends")
	case <-time.After(time.Second):
		t.Fatal("subscription was not released")
	}
}

func TestStore_StatisticsScenario(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	yesterday := sampleTask("1", "ayer")
	yesterday.DueDate = ptr(time.Date(2026, time.October, 13, 23, 59, 0, 0, time.UTC))
	today := sampleTask("2", "hoy")
	today.DueDate = ptr(time.Date(2026, time.October, 14, 23, 0, 0, 0, time.UTC))
	today.IsImportant = true
	undated := sampleTask("3", "sin fecha")

	for _, task := range []models.Task{yesterday, today, undated} {
		require.NoError(t, s.AddTask(ctx, task))
	}

	stats, err := s.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, Statistics{Scheduled: 2, Today: 1, Important: 1, Total: 3}, stats)

	tasks, err := s.Tasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(tasks), stats.Total)
}

func TestSummarize_UsesClockLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	at := time.Date(2026, time.October, 15, 8, 0, 0, 0, tokyo) // still the 14th in UTC

	due := time.Date(2026, time.October, 14, 23, 30, 0, 0, time.UTC) // the 15th in Tokyo
	stats := Summarize([]models.Task{{ID: "1", DueDate: &due}}, at)

	assert.Equal(t, 1, stats.Today)
}

func TestStore_NewRecords(t *testing.T) {
	s := New(db.NewMemory(),
		WithClock(func() time.Time { return wednesday }),
		WithUserID("42"))

	assert.Equal(t, "1791973800000", s.NewID())

	task := s.NewTask("Escribir informe")
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, models.PriorityP4, task.Priority)
	assert.Equal(t, "42", task.UserID)
	assert.Equal(t, wednesday, task.CreatedAt)
	assert.NotNil(t, task.Tags)

	list := s.NewList("Compras")
	assert.Equal(t, models.DefaultListIcon, list.Icon)
	assert.Equal(t, "42", list.UserID)

	project := s.NewProject("Mudanza")
	assert.Equal(t, wednesday, project.CreatedAt)
}

func TestStore_MoveTask(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, b, c := sampleTask("a", "A"), sampleTask("b", "B"), sampleTask("c", "C")
	c.Status = models.StatusInProgress
	require.NoError(t, s.SaveTasks(ctx, []models.Task{a, b, c}))

	require.NoError(t, s.MoveTask(ctx, "a", models.StatusInProgress, 0))

	tasks, err := s.Tasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{"b", "a", "c"}, ids(tasks))
	assert.Equal(t, models.StatusInProgress, tasks[1].Status)

	require.NoError(t, s.MoveTask(ctx, "b", models.StatusInProgress, 99))
	tasks, err = s.Tasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, ids(tasks))

	assert.Error(t, s.MoveTask(ctx, "zzz", models.StatusPending, 0))
}

func TestStore_ToggleTaskDone(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.AddTask(ctx, sampleTask("1", "a")))

	task, err := s.ToggleTaskDone(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, task.Status)

	task, err = s.ToggleTaskDone(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, task.Status)

	_, err = s.ToggleTaskDone(ctx, "missing")
	assert.Error(t, err)
}

func TestStore_ReorderProjects(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.SaveProjects(ctx, []models.Project{
		{ID: "1", Name: "uno"}, {ID: "2", Name: "dos"}, {ID: "3", Name: "tres"},
	}))

	require.NoError(t, s.ReorderProjects(ctx, 2, 0))

	projects, err := s.Projects(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3", projects[0].ID)
	assert.Equal(t, "1", projects[1].ID)
	assert.Equal(t, "2", projects[2].ID)

	assert.Error(t, s.ReorderProjects(ctx, 0, 3))
}

func TestStore_ListsAndProjectsCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	list := models.CustomList{ID: "l1", Name: "Compras", Icon: "🛒", Color: "#00FF00", UserID: "1"}
	require.NoError(t, s.AddList(ctx, list))
	require.NoError(t, s.UpdateList(ctx, "l1", Fields{models.FieldIcon: "🧺"}))

	found, ok, err := s.ResolveList(ctx, "compras")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "🧺", found.Icon)

	_, ok, err = s.ResolveList(ctx, "l1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.DeleteList(ctx, "l1"))
	_, ok, err = s.List(ctx, "l1")
	require.NoError(t, err)
	assert.False(t, ok)

	project := models.Project{ID: "p1", Name: "Mudanza", Description: "Cajas", CreatedAt: wednesday, UserID: "1"}
	require.NoError(t, s.AddProject(ctx, project))
	require.NoError(t, s.UpdateProject(ctx, "p1", Fields{models.FieldDescription: "Cajas y muebles"}))

	got, ok, err := s.ResolveProject(ctx, "MUDANZA")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Cajas y muebles", got.Description)
	assert.Equal(t, wednesday, got.CreatedAt)

	require.NoError(t, s.DeleteProject(ctx, "p1"))
	projects, err := s.Projects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestStore_OnSQLite(t *testing.T) {
	ctx := context.Background()
	medium, err := db.OpenSQLite(filepath.Join(t.TempDir(), "agenda.db"))
	require.NoError(t, err)
	s := New(medium, WithClock(func() time.Time { return wednesday }))
	t.Cleanup(func() { _ = s.Close() })

	task := sampleTask("1", "persistida")
	task.DueDate = ptr(wednesday)
	require.NoError(t, s.AddTask(ctx, task))

	tasks, err := s.Tasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Task{task}, tasks)
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
