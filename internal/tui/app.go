package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/elevate/internal/analytics"
	"github.com/sadopc/elevate/internal/export"
	"github.com/sadopc/elevate/internal/store"
)

var exportOptions = []string{
	"Study sessions (CSV)",
	"Expenses (CSV)",
	"Everything (JSON)",
}

// App is the root model that owns the tab bar and the per-view models.
type App struct {
	db     *store.Store
	engine *analytics.Engine

	state  viewState
	width  int
	height int

	dashboard *dashboardModel
	sessions  *sessionsModel
	expenses  *expensesModel
	tasks     *tasksModel
	insights  *insightsModel
	settings  *settingsModel

	help     help.Model
	showHelp bool

	exportPicker bool
	exportCursor int

	status        string
	statusIsError bool
}

func NewApp(db *store.Store) *App {
	engine := analytics.NewDefaultEngine()
	return &App{
		db:        db,
		engine:    engine,
		state:     viewDashboard,
		dashboard: newDashboardModel(db, engine),
		sessions:  newSessionsModel(db),
		expenses:  newExpensesModel(db, engine),
		tasks:     newTasksModel(db),
		insights:  newInsightsModel(db, engine),
		settings:  newSettingsModel(db),
		help:      help.New(),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.reload(),
		a.sessions.reload(),
		a.expenses.reload(),
		a.tasks.reload(),
		a.insights.reload(),
		a.settings.reload(),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentH := msg.Height - 4
		a.dashboard.setSize(msg.Width, contentH)
		a.sessions.setSize(msg.Width, contentH)
		a.expenses.setSize(msg.Width, contentH)
		a.tasks.setSize(msg.Width, contentH)
		a.insights.setSize(msg.Width, contentH)
		a.settings.setSize(msg.Width, contentH)
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.statusIsError = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusIsError = false
		return a, nil

	case tea.KeyMsg:
		if a.exportPicker {
			return a.updateExportPicker(msg)
		}

		// While a form has focus, only it sees the keys.
		if a.isFormActive() {
			return a.delegate(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			return a, nil
		case key.Matches(msg, keys.Export):
			a.exportPicker = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewSessions)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewExpenses)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewTasks)
		case key.Matches(msg, keys.Tab5):
			return a.switchView(viewInsights)
		case key.Matches(msg, keys.Tab6):
			return a.switchView(viewSettings)
		case key.Matches(msg, keys.Tab):
			next := (a.state + 1) % viewState(len(viewNames))
			return a.switchView(next)
		}
	}

	return a.delegate(msg)
}

func (a *App) switchView(state viewState) (tea.Model, tea.Cmd) {
	a.state = state
	a.status = ""
	switch state {
	case viewDashboard:
		return a, a.dashboard.reload()
	case viewSessions:
		return a, a.sessions.reload()
	case viewExpenses:
		return a, a.expenses.reload()
	case viewTasks:
		return a, a.tasks.reload()
	case viewInsights:
		return a, a.insights.reload()
	case viewSettings:
		return a, a.settings.reload()
	}
	return a, nil
}

func (a *App) isFormActive() bool {
	switch a.state {
	case viewSessions:
		return a.sessions.formActive
	case viewExpenses:
		return a.expenses.formActive
	case viewTasks:
		return a.tasks.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a *App) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Data messages go to their owning model even when it is not on screen.
	switch msg.(type) {
	case dashboardDataMsg:
		return a, a.dashboard.update(msg)
	case sessionsDataMsg:
		return a, a.sessions.update(msg)
	case expensesDataMsg:
		return a, a.expenses.update(msg)
	case tasksDataMsg:
		return a, a.tasks.update(msg)
	case insightsDataMsg:
		return a, a.insights.update(msg)
	case settingsDataMsg:
		return a, a.settings.update(msg)
	}

	var cmd tea.Cmd
	switch a.state {
	case viewDashboard:
		cmd = a.dashboard.update(msg)
	case viewSessions:
		cmd = a.sessions.update(msg)
	case viewExpenses:
		cmd = a.expenses.update(msg)
	case viewTasks:
		cmd = a.tasks.update(msg)
	case viewInsights:
		cmd = a.insights.update(msg)
	case viewSettings:
		cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a *App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		a.exportPicker = false
		return a, nil
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
		return a, nil
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportOptions)-1 {
			a.exportCursor++
		}
		return a, nil
	case key.Matches(msg, keys.Enter):
		a.exportPicker = false
		return a, a.exportCmd(a.exportCursor)
	}
	return a, nil
}

func (a *App) exportCmd(option int) tea.Cmd {
	db := a.db
	return func() tea.Msg {
		home, err := os.UserHomeDir()
		if err != nil {
			return statusMsg{text: "Export failed: " + err.Error(), isError: true}
		}
		stamp := time.Now().Format(dateLayout)

		var path string
		switch option {
		case 0:
			sessions, err := db.ListSessions(store.SessionFilter{})
			if err != nil {
				return statusMsg{text: "Export failed: " + err.Error(), isError: true}
			}
			path = filepath.Join(home, fmt.Sprintf("elevate-sessions-%s.csv", stamp))
			err = export.SessionsToCSV(sessions, path)
			if err != nil {
				return statusMsg{text: "Export failed: " + err.Error(), isError: true}
			}
		case 1:
			expenses, err := db.ListExpenses()
			if err != nil {
				return statusMsg{text: "Export failed: " + err.Error(), isError: true}
			}
			path = filepath.Join(home, fmt.Sprintf("elevate-expenses-%s.csv", stamp))
			err = export.ExpensesToCSV(expenses, path)
			if err != nil {
				return statusMsg{text: "Export failed: " + err.Error(), isError: true}
			}
		case 2:
			sessions, err := db.ListSessions(store.SessionFilter{})
			if err != nil {
				return statusMsg{text: "Export failed: " + err.Error(), isError: true}
			}
			expenses, err := db.ListExpenses()
			if err != nil {
				return statusMsg{text: "Export failed: " + err.Error(), isError: true}
			}
			path = filepath.Join(home, fmt.Sprintf("elevate-export-%s.json", stamp))
			err = export.ToJSON(sessions, expenses, path)
			if err != nil {
				return statusMsg{text: "Export failed: " + err.Error(), isError: true}
			}
		}
		return exportDoneMsg{path: path}
	}
}

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	if a.exportPicker {
		b.WriteString(a.renderExportPicker())
	} else {
		switch a.state {
		case viewDashboard:
			b.WriteString(a.dashboard.view())
		case viewSessions:
			b.WriteString(a.sessions.view())
		case viewExpenses:
			b.WriteString(a.expenses.view())
		case viewTasks:
			b.WriteString(a.tasks.view())
		case viewInsights:
			b.WriteString(a.insights.view())
		case viewSettings:
			b.WriteString(a.settings.view())
		}
	}

	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

func (a *App) renderHeader() string {
	title := titleStyle.Render("elevate")

	var tabs []string
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if viewState(i) == a.state {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
	return headerStyle.Render(title + "  " + row)
}

func (a *App) renderExportPicker() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Export"))
	b.WriteString("\n\n")
	for i, opt := range exportOptions {
		if i == a.exportCursor {
			b.WriteString(selectedItemStyle.Render("> " + opt))
		} else {
			b.WriteString(normalItemStyle.Render("  " + opt))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("enter: export  esc: cancel"))
	return panelStyle.Render(b.String())
}

func (a *App) renderFooter() string {
	if a.status != "" {
		if a.statusIsError {
			return footerStyle.Render(errorStyle.Render(a.status))
		}
		return footerStyle.Render(successStyle.Render(a.status))
	}
	a.help.ShowAll = a.showHelp
	return footerStyle.Render(a.help.View(keys))
}
