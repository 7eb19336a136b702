package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/agenda/internal/events"
	"github.com/balkashynov/agenda/internal/models"
	"github.com/balkashynov/agenda/internal/store"
	"github.com/balkashynov/agenda/internal/views"
)

// dataChangedMsg is delivered when the store rewrote a collection
type dataChangedMsg struct {
	event events.Event
}

// subscriptionClosedMsg means no more change notifications will arrive
type subscriptionClosedMsg struct{}

// boardLoadedMsg carries a fresh read of the task collection
type boardLoadedMsg struct {
	tasks []models.Task
	stats store.Statistics
	err   error
}

// actionDoneMsg reports the outcome of a key action
type actionDoneMsg struct {
	text string
	err  error
}

// BoardModel shows tasks in one column per status and follows store changes
type BoardModel struct {
	ctx    context.Context
	st     *store.Store
	sub    *events.Subscription
	listID string

	columns []views.Column
	stats   store.Statistics
	loaded  bool

	col        int
	row        int
	selectedID string

	width  int
	height int

	flash string
	err   error
}

// NewBoardModel creates a board reading from st and refreshing on sub
func NewBoardModel(ctx context.Context, st *store.Store, sub *events.Subscription, listID string) BoardModel {
	return BoardModel{
		ctx:     ctx,
		st:      st,
		sub:     sub,
		listID:  listID,
		columns: views.Board(nil, listID),
	}
}

// Init loads the tasks and starts waiting for changes
func (m BoardModel) Init() tea.Cmd {
	return tea.Batch(m.load(), waitForChange(m.sub))
}

// waitForChange blocks on the subscription until the next notification
func waitForChange(sub *events.Subscription) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-sub.C
		if !ok {
			return subscriptionClosedMsg{}
		}
		return dataChangedMsg{event: event}
	}
}

func (m BoardModel) load() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.st.Tasks(m.ctx)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		return boardLoadedMsg{tasks: tasks, stats: store.Summarize(tasks, m.st.Now())}
	}
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case boardLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.loaded = true
		m.columns = views.Board(msg.tasks, m.listID)
		m.stats = msg.stats
		m.reselect()
		return m, nil

	case dataChangedMsg:
		// Re-read and re-arm; the subscription buffers at most one pending event
		return m, tea.Batch(m.load(), waitForChange(m.sub))

	case subscriptionClosedMsg:
		return m, nil

	case actionDoneMsg:
		m.flash, m.err = msg.text, msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m BoardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "left", "h":
		if m.col > 0 {
			m.col--
			m.row = 0
		}
		m.track()
		return m, nil

	case "right", "l":
		if m.col < len(m.columns)-1 {
			m.col++
			m.row = 0
		}
		m.track()
		return m, nil

	case "up", "k":
		if m.row > 0 {
			m.row--
		}
		m.track()
		return m, nil

	case "down", "j":
		if m.row < len(m.columns[m.col].Tasks)-1 {
			m.row++
		}
		m.track()
		return m, nil
	}

	task, ok := m.Selected()
	if !ok {
		return m, nil
	}

	switch msg.String() {
	case "x", " ":
		return m, m.toggle(task)
	case ">", "L":
		return m.moveTo(task, m.col+1)
	case "<", "H":
		return m.moveTo(task, m.col-1)
	case "d":
		return m, m.markDeleted(task)
	case "D":
		return m, m.remove(task)
	}
	return m, nil
}

// Selected returns the highlighted task
func (m BoardModel) Selected() (models.Task, bool) {
	if m.col >= len(m.columns) {
		return models.Task{}, false
	}
	tasks := m.columns[m.col].Tasks
	if m.row < 0 || m.row >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[m.row], true
}

// track remembers the selected task so it stays selected across reloads
func (m *BoardModel) track() {
	if task, ok := m.Selected(); ok {
		m.selectedID = task.ID
	}
}

func (m *BoardModel) reselect() {
	if m.selectedID != "" {
		for c, column := range m.columns {
			for r, task := range column.Tasks {
				if task.ID == m.selectedID {
					m.col, m.row = c, r
					return
				}
			}
		}
	}
	if m.col >= len(m.columns) {
		m.col = 0
	}
	if n := len(m.columns[m.col].Tasks); m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	m.track()
}

func (m BoardModel) toggle(task models.Task) tea.Cmd {
	return func() tea.Msg {
		updated, err := m.st.ToggleTaskDone(m.ctx, task.ID)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{text: fmt.Sprintf("%q is now %s", updated.Title, strings.ToLower(updated.Status.Label()))}
	}
}

func (m BoardModel) moveTo(task models.Task, col int) (tea.Model, tea.Cmd) {
	if col < 0 || col >= len(m.columns) {
		return m, nil
	}
	target := m.columns[col]
	m.selectedID = task.ID
	return m, func() tea.Msg {
		if err := m.st.MoveTask(m.ctx, task.ID, target.Status, len(target.Tasks)); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{text: fmt.Sprintf("Moved %q to %s", task.Title, target.Status.Label())}
	}
}

func (m BoardModel) markDeleted(task models.Task) tea.Cmd {
	return func() tea.Msg {
		err := m.st.UpdateTask(m.ctx, task.ID, store.Fields{models.FieldStatus: models.StatusDeleted})
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{text: fmt.Sprintf("Marked %q as deleted", task.Title)}
	}
}

func (m BoardModel) remove(task models.Task) tea.Cmd {
	return func() tea.Msg {
		if err := m.st.DeleteTask(m.ctx, task.ID); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{text: fmt.Sprintf("Deleted %q", task.Title)}
	}
}

// View renders the board
func (m BoardModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("📋 agenda"))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("📅 %d scheduled  🔥 %d today  ★ %d important  Σ %d total",
		m.stats.Scheduled, m.stats.Today, m.stats.Important, m.stats.Total)))
	b.WriteString("\n\n")

	if !m.loaded && m.err == nil {
		b.WriteString(mutedStyle.Render("Loading tasks..."))
		return b.String()
	}

	width := 30
	if m.width > 0 {
		width = max(20, m.width/len(m.columns)-2)
	}
	rendered := make([]string, len(m.columns))
	for i, column := range m.columns {
		rendered[i] = m.renderColumn(i, column, width)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	case m.flash != "":
		b.WriteString(successStyle.Render(m.flash))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→ column • ↑/↓ task • x done • >/< move • d mark deleted • D delete • q quit"))
	return b.String()
}

func (m BoardModel) renderColumn(index int, column views.Column, width int) string {
	border := lipgloss.Color(ColorBorder)
	if index == m.col {
		border = lipgloss.Color(ColorAccentMain)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Padding(0, 1)

	header := lipgloss.NewStyle().Bold(true).Foreground(statusColor(column.Status)).
		Render(fmt.Sprintf("%s (%d)", column.Status.Label(), len(column.Tasks)))

	lines := []string{header, ""}
	if len(column.Tasks) == 0 {
		lines = append(lines, mutedStyle.Italic(true).Render("empty"))
	}
	for row, task := range column.Tasks {
		lines = append(lines, m.renderCard(task, index == m.col && row == m.row, width-2))
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (m BoardModel) renderCard(task models.Task, selected bool, width int) string {
	title := task.Title
	if task.IsImportant {
		title = "★ " + title
	}
	if r := []rune(title); len(r) > width-4 && width > 7 {
		title = string(r[:width-7]) + "..."
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	marker := "  "
	if selected {
		style = style.Bold(true).Foreground(lipgloss.Color(ColorAccentBright))
		marker = "▶ "
	}

	line := marker + style.Render(title)
	meta := lipgloss.NewStyle().Foreground(priorityColor(task.Priority)).Render(string(task.Priority))
	if task.DueDate != nil {
		meta += mutedStyle.Render(" " + task.DueDate.Format("02/01"))
	}
	return line + "\n    " + meta
}
