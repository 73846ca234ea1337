package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/elevate/internal/analytics"
	"github.com/sadopc/elevate/internal/store"
)

type expensesDataMsg struct {
	expenses []store.Expense
	totals   []store.CategoryTotal
	forecast []analytics.ForecastPoint
	message  string
	currency string
}

type expensesModel struct {
	db     *store.Store
	engine *analytics.Engine

	width  int
	height int

	expenses []store.Expense
	totals   []store.CategoryTotal
	forecast []analytics.ForecastPoint
	message  string
	currency string
	cursor   int

	showForecast bool
	chart        barchart.Model

	formActive bool
	form       *huh.Form

	formAmount      string
	formCategory    string
	formDate        string
	formDescription string
}

func newExpensesModel(db *store.Store, engine *analytics.Engine) *expensesModel {
	return &expensesModel{
		db:     db,
		engine: engine,
		chart:  barchart.New(60, 10),
	}
}

func (m *expensesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *expensesModel) reload() tea.Cmd {
	db := m.db
	engine := m.engine
	return func() tea.Msg {
		expenses, _ := db.ListExpenses()
		totals, _ := db.CategoryTotals()

		forecastDays := 0
		if v, err := db.GetSetting("forecast_days"); err == nil {
			if n, err := strconv.Atoi(v); err == nil {
				forecastDays = n
			}
		}
		forecast, message := engine.ForecastSpending(expenses, forecastDays)

		currency := "₹"
		if v, err := db.GetSetting("currency"); err == nil && v != "" {
			currency = v
		}

		return expensesDataMsg{
			expenses: expenses,
			totals:   totals,
			forecast: forecast,
			message:  message,
			currency: currency,
		}
	}
}

func (m *expensesModel) update(msg tea.Msg) tea.Cmd {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case expensesDataMsg:
		m.expenses = msg.expenses
		m.totals = msg.totals
		m.forecast = msg.forecast
		m.message = msg.message
		m.currency = msg.currency
		if m.cursor >= len(m.expenses) {
			m.cursor = max(0, len(m.expenses)-1)
		}
		m.buildChart()
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.expenses)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Enter):
			m.showForecast = !m.showForecast
		case key.Matches(msg, keys.New):
			return m.showExpenseForm()
		case key.Matches(msg, keys.Delete):
			if len(m.expenses) > 0 {
				id := m.expenses[m.cursor].ID
				m.db.DeleteExpense(id)
				return m.reload()
			}
		}
	}
	return nil
}

func validateAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}

func (m *expensesModel) showExpenseForm() tea.Cmd {
	m.formAmount = ""
	m.formCategory = store.ExpenseCategories[0]
	m.formDate = time.Now().Format(dateLayout)
	m.formDescription = ""

	catOptions := make([]huh.Option[string], len(store.ExpenseCategories))
	for i, c := range store.ExpenseCategories {
		catOptions[i] = huh.NewOption(c, c)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Amount").Value(&m.formAmount).Validate(validateAmount),
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(&m.formCategory),
			huh.NewInput().Title("Date").Value(&m.formDate).Validate(validateDate),
			huh.NewInput().Title("Description (optional)").Value(&m.formDescription),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m.form.Init()
}

func (m *expensesModel) updateForm(msg tea.Msg) tea.Cmd {
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
		amount, _ := strconv.ParseFloat(strings.TrimSpace(m.formAmount), 64)
		date, _ := time.Parse(dateLayout, strings.TrimSpace(m.formDate))
		m.db.CreateExpense(amount, m.formCategory, date, strings.TrimSpace(m.formDescription))
		return m.reload()
	}

	return cmd
}

// buildChart renders the daily spending forecast: historical days in one
// color, projected days in another.
func (m *expensesModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10

	m.chart = barchart.New(chartWidth, chartHeight)

	if len(m.forecast) == 0 {
		return
	}

	histStyle := lipgloss.NewStyle().Foreground(colorSecondary)
	predStyle := lipgloss.NewStyle().Foreground(colorAccent)

	// Bars are per-day deltas of the cumulative series.
	points := m.forecast
	maxBars := chartWidth / 2
	if maxBars < 7 {
		maxBars = 7
	}
	if len(points) > maxBars {
		points = points[len(points)-maxBars:]
	}

	var bars []barchart.BarData
	prev := 0.0
	for i, p := range points {
		if i == 0 {
			prev = p.Amount
		}
		delta := p.Amount - prev
		if delta < 0 {
			delta = 0
		}
		prev = p.Amount

		style := histStyle
		name := "spent"
		if p.Kind == analytics.KindForecast {
			style = predStyle
			name = "forecast"
		}
		bars = append(bars, barchart.BarData{
			Label:  p.Date.Format("02"),
			Values: []barchart.BarValue{{Name: name, Value: delta, Style: style}},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m *expensesModel) view() string {
	w := max(40, m.width-4)

	if m.formActive && m.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Add Expense"), "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	if m.showForecast {
		return m.renderForecast(w)
	}
	return m.renderList(w)
}

func (m *expensesModel) renderList(w int) string {
	title := titleStyle.Render("Expenses")

	if len(m.expenses) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title, "",
			mutedStyle.Render("No expenses yet. Press n to add one."))
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, "")
	rows = append(rows, mutedStyle.Render(
		fmt.Sprintf("  %-12s %-14s %12s  %s", "Date", "Category", "Amount", "Description")))

	start := 0
	visible := max(5, m.height-14)
	if len(m.expenses) > visible {
		start = len(m.expenses) - visible
		if m.cursor < start {
			start = m.cursor
		}
	}
	for i := start; i < len(m.expenses) && i < start+visible; i++ {
		e := m.expenses[i]
		line := fmt.Sprintf("%-12s %-14s %12s  %s",
			e.Date.Format(dateLayout),
			e.Category,
			fmt.Sprintf("%s%.2f", m.currency, e.Amount),
			truncate(e.Description, 24))
		if i == m.cursor {
			rows = append(rows, selectedItemStyle.Render("> "+line))
		} else {
			rows = append(rows, normalItemStyle.Render("  "+line))
		}
	}

	rows = append(rows, "")
	rows = append(rows, titleStyle.Render("By category"))
	for _, t := range m.totals {
		rows = append(rows, fmt.Sprintf("  %-14s %12s  (%d)",
			t.Category, fmt.Sprintf("%s%.2f", m.currency, t.Total), t.Count))
	}

	rows = append(rows, "",
		subtitleStyle.Render("enter: forecast view"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *expensesModel) renderForecast(w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Spending Forecast"), "")

	if len(m.forecast) == 0 {
		rows = append(rows, warningStyle.Render(m.message))
	} else {
		rows = append(rows, m.chart.View(), "")
		rows = append(rows, highlightStyle.Render(m.message))
		rows = append(rows, "",
			secondaryStyle.Render("■ recorded")+"  "+accentStyle.Render("■ projected"))
	}

	rows = append(rows, "", subtitleStyle.Render("enter: back to list"))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
