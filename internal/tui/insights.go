package tui

import (
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/elevate/internal/analytics"
	"github.com/sadopc/elevate/internal/store"
)

type insightsDataMsg struct {
	weak            []analytics.WeaknessEntry
	recommendations []string
	insights        analytics.Insights
	habits          analytics.HabitSummary
	weekMinutes     [7]int // minutes per day, oldest first
	weekStart       time.Time
	err             error
}

type insightsModel struct {
	db     *store.Store
	engine *analytics.Engine

	width  int
	height int

	loaded bool
	data   insightsDataMsg
	chart  barchart.Model
}

func newInsightsModel(db *store.Store, engine *analytics.Engine) *insightsModel {
	return &insightsModel{
		db:     db,
		engine: engine,
		chart:  barchart.New(60, 8),
	}
}

func (m *insightsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *insightsModel) reload() tea.Cmd {
	db := m.db
	engine := m.engine
	return func() tea.Msg {
		sessions, err := db.ListSessions(store.SessionFilter{})
		if err != nil {
			return insightsDataMsg{err: err}
		}

		now := time.Now()
		weak, recs := engine.AnalyzeWeaknesses(sessions)

		data := insightsDataMsg{
			weak:            weak,
			recommendations: recs,
			insights:        engine.GenerateInsights(sessions),
			habits:          engine.Habits(sessions, now),
			weekStart:       analytics.Day(now).AddDate(0, 0, -6),
		}

		for _, s := range sessions {
			offset := int(analytics.Day(s.Date).Sub(data.weekStart).Hours() / 24)
			if offset >= 0 && offset < 7 {
				data.weekMinutes[offset] += s.Minutes
			}
		}

		return data
	}
}

func (m *insightsModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case insightsDataMsg:
		m.loaded = true
		m.data = msg
		m.buildChart()
	}
	return nil
}

// buildChart shows study minutes per day for the trailing week.
func (m *insightsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	m.chart = barchart.New(chartWidth, 8)

	style := lipgloss.NewStyle().Foreground(colorPrimary)
	emptyStyle := lipgloss.NewStyle().Foreground(colorSubtle)

	var bars []barchart.BarData
	for i := 0; i < 7; i++ {
		day := m.data.weekStart.AddDate(0, 0, i)
		minutes := float64(m.data.weekMinutes[i])
		s := style
		if minutes == 0 {
			s = emptyStyle
		}
		bars = append(bars, barchart.BarData{
			Label:  day.Format("Mon"),
			Values: []barchart.BarValue{{Name: "minutes", Value: minutes, Style: s}},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m *insightsModel) view() string {
	w := max(40, m.width-4)

	if !m.loaded {
		return panelStyle.Width(w).Render("Loading...")
	}
	if m.data.err != nil {
		return panelStyle.Width(w).Render(errorStyle.Render("Error: " + m.data.err.Error()))
	}

	d := m.data

	// Last 7 days chart
	var week []string
	week = append(week, titleStyle.Render("Last 7 days"), "", m.chart.View())

	// Weak topics
	var weak []string
	weak = append(weak, titleStyle.Render("Weak topics"), "")
	if len(d.weak) == 0 {
		weak = append(weak, successStyle.Render("No weak topics detected."))
	}
	for i, e := range d.weak {
		if i >= 5 {
			break
		}
		weak = append(weak, fmt.Sprintf("%s %s",
			warningStyle.Render(fmt.Sprintf("%s - %s", e.Subject, e.Topic)),
			subtitleStyle.Render(fmt.Sprintf("avg %.1f, %d sessions", e.AvgConfidence, e.Sessions))))
	}

	// Recommendations
	var recs []string
	recs = append(recs, titleStyle.Render("Recommendations"), "")
	for _, r := range d.recommendations {
		recs = append(recs, "• "+r)
	}

	// Patterns and performance
	var pat []string
	pat = append(pat, titleStyle.Render("Patterns"), "")
	ins := d.insights
	switch ins.Status {
	case analytics.StatusSuccess:
		p := ins.Patterns
		pat = append(pat, fmt.Sprintf("Best weekday: %s", p.BestWeekday))
		pat = append(pat, fmt.Sprintf("Typical session: %d min (avg %.0f min)", p.ModalSessionMinutes, p.AvgSessionMinutes))
		pat = append(pat, fmt.Sprintf("Most studied: %s (%d subjects)", p.TopSubject, p.SubjectCount))
		perf := ins.Performance
		if perf.Status == analytics.StatusSuccess {
			pat = append(pat, fmt.Sprintf("Confidence trend: %+.2f, time trend: %+.0f min/day",
				perf.ConfidenceTrend, perf.TimeTrend))
		}
		pat = append(pat, fmt.Sprintf("Topic clusters: %d groups", ins.Clusters.K))
	default:
		pat = append(pat, mutedStyle.Render("Not enough history yet. Log more sessions across a few topics."))
	}
	if d.habits.TotalSessions > 0 {
		pat = append(pat, "",
			subtitleStyle.Render(fmt.Sprintf("Grade: %s  Consistency (30d): %.0f%%",
				analytics.PerformanceGrade(d.habits.AvgConfidence), d.habits.Consistency30d)))
	}

	left := lipgloss.JoinVertical(lipgloss.Left, weak...)
	right := lipgloss.JoinVertical(lipgloss.Left, pat...)

	return lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, week...)),
		lipgloss.JoinHorizontal(lipgloss.Top,
			panelStyle.Render(left),
			panelStyle.Render(right),
		),
		panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, recs...)),
	)
}
