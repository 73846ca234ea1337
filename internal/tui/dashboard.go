package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/elevate/internal/analytics"
	"github.com/sadopc/elevate/internal/store"
)

type dashboardDataMsg struct {
	streak        int
	totalXP       int
	progress      analytics.Progress
	todayMinutes  int
	todaySessions int
	weekDays      int
	weeklyGoal    int
	taskRate      float64
	taskTotal     int
	achievements  []string
	bonusXP       int
	milestones    []analytics.Milestone
	messages      []string
	err           error
}

type dashboardModel struct {
	db     *store.Store
	engine *analytics.Engine

	width  int
	height int

	loaded bool
	data   dashboardDataMsg
}

func newDashboardModel(db *store.Store, engine *analytics.Engine) *dashboardModel {
	return &dashboardModel{db: db, engine: engine}
}

func (m *dashboardModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *dashboardModel) reload() tea.Cmd {
	db := m.db
	engine := m.engine
	return func() tea.Msg {
		sessions, err := db.ListSessions(store.SessionFilter{})
		if err != nil {
			return dashboardDataMsg{err: err}
		}
		dates, err := db.SessionDates()
		if err != nil {
			return dashboardDataMsg{err: err}
		}

		now := time.Now()
		today := analytics.Day(now)

		data := dashboardDataMsg{
			streak:  analytics.Streak(dates, now),
			totalXP: engine.TotalXP(sessions),
		}
		data.progress = engine.LevelProgress(data.totalXP)

		weekStart := today.AddDate(0, 0, -6)
		weekDates := map[time.Time]bool{}
		for _, s := range sessions {
			d := analytics.Day(s.Date)
			if d.Equal(today) {
				data.todayMinutes += s.Minutes
				data.todaySessions++
			}
			if !d.Before(weekStart) && !d.After(today) {
				weekDates[d] = true
			}
		}
		data.weekDays = len(weekDates)

		data.weeklyGoal = 5
		if v, err := db.GetSetting("weekly_goal"); err == nil {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				data.weeklyGoal = n
			}
		}

		rate, total, err := db.TaskCompletionRate()
		if err != nil {
			return dashboardDataMsg{err: err}
		}
		data.taskRate = rate
		data.taskTotal = total

		data.achievements = engine.Achievements(sessions, now)
		data.bonusXP = engine.BonusXP(sessions, now)
		data.milestones = engine.NextMilestones(data.totalXP, data.streak)

		recent := sessions
		if len(recent) > 7 {
			recent = recent[len(recent)-7:]
		}
		recentPerf := 0.0
		for _, s := range recent {
			recentPerf += float64(s.Confidence)
		}
		if len(recent) > 0 {
			recentPerf /= float64(len(recent))
		}
		data.messages = engine.MotivationalMessages(data.progress.Level, data.streak, recentPerf)

		return data
	}
}

func (m *dashboardModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loaded = true
		m.data = msg
	}
	return nil
}

func (m *dashboardModel) view() string {
	if !m.loaded {
		return panelStyle.Render("Loading...")
	}
	if m.data.err != nil {
		return panelStyle.Render(errorStyle.Render("Error: " + m.data.err.Error()))
	}

	d := m.data

	// Progress panel
	var prog strings.Builder
	prog.WriteString(titleStyle.Render(fmt.Sprintf("Level %d", d.progress.Level)))
	prog.WriteString(subtitleStyle.Render(fmt.Sprintf("  %d XP total", d.totalXP)))
	prog.WriteString("\n")
	prog.WriteString(highlightStyle.Render(progressBar(d.progress.Percent, 24)))
	if d.progress.XPToNext > 0 {
		prog.WriteString(subtitleStyle.Render(fmt.Sprintf(" %d XP to next level", d.progress.XPToNext)))
	} else {
		prog.WriteString(successStyle.Render(" max level"))
	}
	prog.WriteString("\n\n")
	if d.streak > 0 {
		prog.WriteString(accentStyle.Render(fmt.Sprintf("🔥 %d day streak", d.streak)))
	} else {
		prog.WriteString(mutedStyle.Render("No active streak"))
	}

	// Today panel
	var today strings.Builder
	today.WriteString(titleStyle.Render("Today"))
	today.WriteString("\n")
	if d.todaySessions == 0 {
		today.WriteString(mutedStyle.Render("No sessions logged yet"))
	} else {
		today.WriteString(fmt.Sprintf("%s across %d session(s)", formatMinutes(d.todayMinutes), d.todaySessions))
	}
	today.WriteString("\n\n")
	today.WriteString(subtitleStyle.Render(fmt.Sprintf("Week: %d/%d study days", d.weekDays, d.weeklyGoal)))
	today.WriteString("\n")
	weekPct := float64(d.weekDays) / float64(d.weeklyGoal) * 100
	today.WriteString(secondaryStyle.Render(progressBar(weekPct, 18)))

	// Tasks panel
	var tasks strings.Builder
	tasks.WriteString(titleStyle.Render("Tasks"))
	tasks.WriteString("\n")
	if d.taskTotal == 0 {
		tasks.WriteString(mutedStyle.Render("No tasks yet"))
	} else {
		tasks.WriteString(fmt.Sprintf("%.0f%% completed (%d total)", d.taskRate*100, d.taskTotal))
		tasks.WriteString("\n")
		tasks.WriteString(successStyle.Render(progressBar(d.taskRate*100, 18)))
	}

	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(prog.String()),
		panelStyle.Render(today.String()),
		panelStyle.Render(tasks.String()),
	)

	// Milestones panel
	var miles strings.Builder
	miles.WriteString(titleStyle.Render("Next milestones"))
	miles.WriteString("\n")
	if len(d.milestones) == 0 {
		miles.WriteString(mutedStyle.Render("All caught up"))
	}
	for _, ms := range d.milestones {
		miles.WriteString(fmt.Sprintf("• %s\n", ms.Description))
	}

	// Achievements panel
	var ach strings.Builder
	ach.WriteString(titleStyle.Render("Achievements"))
	ach.WriteString("\n")
	if len(d.achievements) == 0 {
		ach.WriteString(mutedStyle.Render("None yet"))
	}
	for _, key := range d.achievements {
		if a, ok := analytics.AchievementInfo(key); ok {
			ach.WriteString(successStyle.Render("✓ " + a.Name))
			ach.WriteString("\n")
		}
	}
	if d.bonusXP > 0 {
		ach.WriteString(subtitleStyle.Render(fmt.Sprintf("+%d bonus XP", d.bonusXP)))
	}

	midRow := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(miles.String()),
		panelStyle.Render(ach.String()),
	)

	var msgs strings.Builder
	for _, line := range d.messages {
		msgs.WriteString(highlightStyle.Render(line))
		msgs.WriteString("\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left, topRow, midRow, panelStyle.Render(strings.TrimRight(msgs.String(), "\n")))
}
