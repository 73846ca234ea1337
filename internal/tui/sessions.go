package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/elevate/internal/store"
)

type sessionsDataMsg struct {
	sessions []store.StudySession
}

type sessionsModel struct {
	db     *store.Store
	width  int
	height int

	sessions []store.StudySession
	cursor   int

	formActive bool
	form       *huh.Form

	formDate       string
	formSubject    string
	formTopic      string
	formMinutes    string
	formConfidence int
	formNotes      string
}

func newSessionsModel(db *store.Store) *sessionsModel {
	return &sessionsModel{db: db}
}

func (m *sessionsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *sessionsModel) reload() tea.Cmd {
	db := m.db
	return func() tea.Msg {
		sessions, _ := db.ListSessions(store.SessionFilter{})
		return sessionsDataMsg{sessions: sessions}
	}
}

func (m *sessionsModel) update(msg tea.Msg) tea.Cmd {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case sessionsDataMsg:
		m.sessions = msg.sessions
		if m.cursor >= len(m.sessions) {
			m.cursor = max(0, len(m.sessions)-1)
		}
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.sessions)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showLogForm()
		case key.Matches(msg, keys.Delete):
			if len(m.sessions) > 0 {
				id := m.sessions[m.cursor].ID
				m.db.DeleteSession(id)
				return m.reload()
			}
		}
	}
	return nil
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateMinutes(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number of minutes")
	}
	if n < 1 || n > 1440 {
		return fmt.Errorf("minutes must be between 1 and 1440")
	}
	return nil
}

func validateDate(s string) error {
	if _, err := time.Parse(dateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func confidenceOptions() []huh.Option[int] {
	labels := []string{"1 - Lost", "2 - Shaky", "3 - Okay", "4 - Confident", "5 - Mastered"}
	options := make([]huh.Option[int], len(labels))
	for i, l := range labels {
		options[i] = huh.NewOption(l, i+1)
	}
	return options
}

func (m *sessionsModel) showLogForm() tea.Cmd {
	m.formDate = time.Now().Format(dateLayout)
	m.formSubject = ""
	m.formTopic = ""
	m.formMinutes = ""
	m.formConfidence = 3
	m.formNotes = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date").Value(&m.formDate).Validate(validateDate),
			huh.NewInput().Title("Subject").Value(&m.formSubject).Validate(validateRequired("subject")),
			huh.NewInput().Title("Topic").Value(&m.formTopic).Validate(validateRequired("topic")),
			huh.NewInput().Title("Minutes").Value(&m.formMinutes).Validate(validateMinutes),
			huh.NewSelect[int]().Title("Confidence").Options(confidenceOptions()...).Value(&m.formConfidence),
			huh.NewInput().Title("Notes (optional)").Value(&m.formNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m.form.Init()
}

func (m *sessionsModel) updateForm(msg tea.Msg) tea.Cmd {
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
		date, _ := time.Parse(dateLayout, strings.TrimSpace(m.formDate))
		minutes, _ := strconv.Atoi(strings.TrimSpace(m.formMinutes))
		m.db.CreateSession(date,
			strings.TrimSpace(m.formSubject),
			strings.TrimSpace(m.formTopic),
			minutes, m.formConfidence,
			strings.TrimSpace(m.formNotes))
		return m.reload()
	}

	return cmd
}

func (m *sessionsModel) view() string {
	w := max(40, m.width-4)

	if m.formActive && m.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Log Study Session"), "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Study Sessions")

	if len(m.sessions) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title, "",
			mutedStyle.Render("No sessions yet. Press n to log one."))
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, "")
	rows = append(rows, mutedStyle.Render(
		fmt.Sprintf("  %-12s %-16s %-20s %8s %6s", "Date", "Subject", "Topic", "Time", "Conf")))

	// Newest at the bottom, cursor over the raw list order.
	start := 0
	visible := max(5, m.height-10)
	if len(m.sessions) > visible {
		start = len(m.sessions) - visible
		if m.cursor < start {
			start = m.cursor
		}
	}
	for i := start; i < len(m.sessions) && i < start+visible; i++ {
		s := m.sessions[i]
		line := fmt.Sprintf("%-12s %-16s %-20s %8s %6d",
			s.Date.Format(dateLayout),
			truncate(s.Subject, 16),
			truncate(s.Topic, 20),
			formatMinutes(s.Minutes),
			s.Confidence)
		if i == m.cursor {
			rows = append(rows, selectedItemStyle.Render("> "+line))
		} else {
			rows = append(rows, normalItemStyle.Render("  "+line))
		}
	}

	total := 0
	for _, s := range m.sessions {
		total += s.Minutes
	}
	rows = append(rows, "",
		subtitleStyle.Render(fmt.Sprintf("%d sessions, %s total", len(m.sessions), formatMinutes(total))))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
