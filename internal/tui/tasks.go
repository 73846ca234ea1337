package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/elevate/internal/analytics"
	"github.com/sadopc/elevate/internal/store"
)

type tasksDataMsg struct {
	tasks []store.Task
	rate  float64
	total int
}

type tasksModel struct {
	db     *store.Store
	width  int
	height int

	tasks         []store.Task
	rate          float64
	total         int
	cursor        int
	showCompleted bool

	formActive bool
	form       *huh.Form

	formTitle    string
	formDeadline string
}

func newTasksModel(db *store.Store) *tasksModel {
	return &tasksModel{db: db}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *tasksModel) reload() tea.Cmd {
	db := m.db
	includeCompleted := m.showCompleted
	return func() tea.Msg {
		tasks, _ := db.ListTasks(includeCompleted)
		rate, total, _ := db.TaskCompletionRate()
		return tasksDataMsg{tasks: tasks, rate: rate, total: total}
	}
}

func (m *tasksModel) update(msg tea.Msg) tea.Cmd {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		m.tasks = msg.tasks
		m.rate = msg.rate
		m.total = msg.total
		if m.cursor >= len(m.tasks) {
			m.cursor = max(0, len(m.tasks)-1)
		}
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			if len(m.tasks) > 0 {
				t := m.tasks[m.cursor]
				next := store.TaskCompleted
				if t.Status == store.TaskCompleted {
					next = store.TaskPending
				}
				m.db.SetTaskStatus(t.ID, next)
				return m.reload()
			}
		case key.Matches(msg, keys.Enter):
			m.showCompleted = !m.showCompleted
			return m.reload()
		case key.Matches(msg, keys.New):
			return m.showTaskForm()
		case key.Matches(msg, keys.Delete):
			if len(m.tasks) > 0 {
				m.db.DeleteTask(m.tasks[m.cursor].ID)
				return m.reload()
			}
		}
	}
	return nil
}

func (m *tasksModel) showTaskForm() tea.Cmd {
	m.formTitle = ""
	m.formDeadline = time.Now().AddDate(0, 0, 7).Format(dateLayout)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&m.formTitle).Validate(validateRequired("title")),
			huh.NewInput().Title("Deadline").Value(&m.formDeadline).Validate(validateDate),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m.form.Init()
}

func (m *tasksModel) updateForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		deadline, _ := time.Parse(dateLayout, strings.TrimSpace(m.formDeadline))
		m.db.CreateTask(strings.TrimSpace(m.formTitle), deadline)
		return m.reload()
	}

	return cmd
}

func (m *tasksModel) view() string {
	w := max(40, m.width-4)

	if m.formActive && m.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("New Task"), "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Tasks")
	if m.showCompleted {
		title += subtitleStyle.Render("  (showing completed)")
	}

	var rows []string
	rows = append(rows, title, "")

	if len(m.tasks) == 0 {
		rows = append(rows, mutedStyle.Render("No tasks. Press n to add one."))
	}

	today := analytics.Day(time.Now())
	for i, t := range m.tasks {
		mark := "[ ]"
		style := normalItemStyle
		if t.Status == store.TaskCompleted {
			mark = "[x]"
			style = mutedStyle
		}
		deadline := t.Deadline.Format(dateLayout)
		line := fmt.Sprintf("%s %-32s %s", mark, truncate(t.Title, 32), deadline)
		if t.Status == store.TaskPending && t.Deadline.Before(today) {
			line += errorStyle.Render("  overdue")
		}
		if i == m.cursor {
			rows = append(rows, selectedItemStyle.Render("> "+line))
		} else {
			rows = append(rows, style.Render("  "+line))
		}
	}

	rows = append(rows, "")
	if m.total > 0 {
		rows = append(rows, subtitleStyle.Render(
			fmt.Sprintf("%.0f%% of %d tasks completed", m.rate*100, m.total)))
	}
	rows = append(rows, subtitleStyle.Render("space: toggle  enter: show/hide completed"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
