package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/elevate/internal/store"
)

type settingsDataMsg struct {
	settings []store.Setting
}

type settingsModel struct {
	db     *store.Store
	width  int
	height int

	settings []store.Setting

	formActive bool
	form       *huh.Form

	formCurrency     string
	formWeeklyGoal   string
	formForecastDays string
	formWeekStart    string
}

func newSettingsModel(db *store.Store) *settingsModel {
	return &settingsModel{db: db}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *settingsModel) reload() tea.Cmd {
	db := m.db
	return func() tea.Msg {
		settings, _ := db.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (m *settingsModel) get(key string) string {
	for _, s := range m.settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

func (m *settingsModel) update(msg tea.Msg) tea.Cmd {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		m.settings = msg.settings
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return m.showSettingsForm()
		}
	}
	return nil
}

func validateIntRange(label string, lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("%s must be between %d and %d", label, lo, hi)
		}
		return nil
	}
}

func (m *settingsModel) showSettingsForm() tea.Cmd {
	m.formCurrency = m.get("currency")
	m.formWeeklyGoal = m.get("weekly_goal")
	m.formForecastDays = m.get("forecast_days")
	m.formWeekStart = m.get("week_start")
	if m.formWeekStart == "" {
		m.formWeekStart = "monday"
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Currency symbol").Value(&m.formCurrency).
				Validate(validateRequired("currency")),
			huh.NewInput().Title("Weekly goal (study days)").Value(&m.formWeeklyGoal).
				Validate(validateIntRange("weekly goal", 1, 7)),
			huh.NewInput().Title("Forecast horizon (days)").Value(&m.formForecastDays).
				Validate(validateIntRange("forecast days", 7, 365)),
			huh.NewSelect[string]().Title("Week starts on").
				Options(
					huh.NewOption("Monday", "monday"),
					huh.NewOption("Sunday", "sunday"),
				).Value(&m.formWeekStart),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m.form.Init()
}

func (m *settingsModel) updateForm(msg tea.Msg) tea.Cmd {
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
		m.db.SetSetting("currency", strings.TrimSpace(m.formCurrency))
		m.db.SetSetting("weekly_goal", strings.TrimSpace(m.formWeeklyGoal))
		m.db.SetSetting("forecast_days", strings.TrimSpace(m.formForecastDays))
		m.db.SetSetting("week_start", m.formWeekStart)
		return m.reload()
	}

	return cmd
}

func (m *settingsModel) view() string {
	w := max(40, m.width-4)

	if m.formActive && m.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Edit Settings"), "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"), "")
	for _, s := range m.settings {
		rows = append(rows, fmt.Sprintf("  %-16s %s",
			subtitleStyle.Render(s.Key), normalItemStyle.Render(s.Value)))
	}
	rows = append(rows, "", subtitleStyle.Render("enter: edit"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
