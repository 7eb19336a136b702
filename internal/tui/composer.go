package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/agenda/internal/models"
	"github.com/balkashynov/agenda/internal/parser"
	"github.com/balkashynov/agenda/internal/store"
)

// Draft pre-fills the composer
type Draft struct {
	Title       string
	Description string
	Due         string
}

const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	fieldCount
)

// taskSavedMsg reports the result of adding the composed task
type taskSavedMsg struct {
	task models.Task
	err  error
}

// ComposerModel is the create-task dialog
type ComposerModel struct {
	ctx context.Context
	st  *store.Store

	inputs []textinput.Model
	focus  int

	// date detected in the title, offered while the due field is empty
	suggestion *time.Time

	saving        bool
	created       *models.Task
	cancelled     bool
	validationErr string
	err           error
}

// NewComposerModel creates the dialog with draft values filled in
func NewComposerModel(ctx context.Context, st *store.Store, draft Draft) ComposerModel {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 60
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[fieldTitle].Placeholder = "Llamar a Ana el viernes #casa +p1 (required)"
	inputs[fieldTitle].CharLimit = 200
	inputs[fieldTitle].SetValue(draft.Title)
	inputs[fieldTitle].Focus()

	inputs[fieldDescription].Placeholder = "Notes (optional)"
	inputs[fieldDescription].CharLimit = 500
	inputs[fieldDescription].SetValue(draft.Description)

	inputs[fieldDue].Placeholder = "dd/mm/yyyy, mañana, 3 days (optional)"
	inputs[fieldDue].CharLimit = 50
	inputs[fieldDue].SetValue(draft.Due)

	m := ComposerModel{ctx: ctx, st: st, inputs: inputs}
	m.suggest()
	return m
}

// Init initializes the model
func (m ComposerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m ComposerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.created = &msg.task
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "tab", "down":
			return m.focusField((m.focus + 1) % fieldCount), nil

		case "shift+tab", "up":
			return m.focusField((m.focus + fieldCount - 1) % fieldCount), nil

		case "ctrl+d":
			if m.suggestion != nil {
				m.inputs[fieldDue].SetValue(m.suggestion.Format("02/01/2006"))
				m.suggestion = nil
			}
			return m, nil

		case "ctrl+s":
			return m.save()

		case "enter":
			if m.focus == fieldCount-1 {
				return m.save()
			}
			return m.focusField(m.focus + 1), nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.suggest()
	return m, cmd
}

func (m ComposerModel) focusField(field int) ComposerModel {
	m.inputs[m.focus].Blur()
	m.focus = field
	m.inputs[m.focus].Focus()
	return m
}

// suggest re-runs date detection on the title; nothing is offered while
// the due field already holds a value
func (m *ComposerModel) suggest() {
	m.suggestion = nil
	if strings.TrimSpace(m.inputs[fieldDue].Value()) != "" {
		return
	}
	m.suggestion = parser.InferDate(m.inputs[fieldTitle].Value(), m.st.Now())
}

// Suggestion returns the date currently offered for the due field
func (m ComposerModel) Suggestion() *time.Time { return m.suggestion }

// Created returns the saved task, if any
func (m ComposerModel) Created() *models.Task { return m.created }

// Outcome returns the saved task, the last save error, or nil for a
// cancelled dialog
func (m ComposerModel) Outcome() (*models.Task, error) {
	switch {
	case m.created != nil:
		return m.created, nil
	case m.err != nil:
		return nil, m.err
	default:
		return nil, nil
	}
}

func (m ComposerModel) save() (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	now := m.st.Now()

	parsed := parser.ParseTitle(m.inputs[fieldTitle].Value(), now)
	if parsed.Title == "" {
		m.validationErr = "Title is required"
		return m.focusField(fieldTitle), nil
	}
	if len(parsed.Errors) > 0 {
		m.validationErr = strings.Join(parsed.Errors, ", ")
		return m.focusField(fieldTitle), nil
	}

	task := m.st.NewTask(parsed.Title)
	task.Description = strings.TrimSpace(m.inputs[fieldDescription].Value())
	task.Priority = parsed.Priority
	task.IsImportant = parsed.Important
	task.Tags = append(task.Tags, parsed.Tags...)
	task.DueDate = parsed.DueDate

	if raw := strings.TrimSpace(m.inputs[fieldDue].Value()); raw != "" {
		due, err := parser.ParseDueDate(raw, now)
		if err != nil {
			m.validationErr = err.Error()
			return m.focusField(fieldDue), nil
		}
		task.DueDate = due
	}

	m.validationErr = ""
	m.saving = true
	st, ctx := m.st, m.ctx
	return m, func() tea.Msg {
		return taskSavedMsg{task: task, err: st.AddTask(ctx, task)}
	}
}

// View renders the dialog
func (m ComposerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("✚ New task"))
	b.WriteString("\n\n")

	labels := []string{"Title", "Description", "Due"}
	for i, input := range m.inputs {
		label := mutedStyle.Render(labels[i])
		if i == m.focus {
			label = titleStyle.Render(labels[i])
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n")
		if i == fieldTitle && m.suggestion != nil {
			b.WriteString(successStyle.Render(fmt.Sprintf("  📅 Detected %s %s • ctrl+d to use it",
				m.suggestion.Weekday(), m.suggestion.Format("02/01/2006"))))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	switch {
	case m.validationErr != "":
		b.WriteString(errorStyle.Render("⚠ " + m.validationErr))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.saving:
		b.WriteString(mutedStyle.Render("Saving..."))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab next field • ctrl+d use detected date • enter/ctrl+s save • esc cancel"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
