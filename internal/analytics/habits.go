package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/sadopc/elevate/internal/store"
)

// HabitSummary is the at-a-glance view of study habits shown on the
// dashboard.
type HabitSummary struct {
	TotalMinutes      int
	TotalSessions     int
	AvgSessionMinutes float64
	AvgConfidence     float64
	ConfidenceTrend   float64
	SubjectCount      int
	TopSubject        string
	CurrentStreak     int
	Consistency30d    float64 // 0-100
	RecentMinutes     int     // last 7 days
	RecentSessions    int
}

// Habits summarizes the full session log as of now.
func (e *Engine) Habits(sessions []store.StudySession, now time.Time) HabitSummary {
	if len(sessions) == 0 {
		return HabitSummary{}
	}

	h := HabitSummary{TotalSessions: len(sessions)}

	dates := make([]time.Time, len(sessions))
	confSum := 0
	minutesBySubject := make(map[string]int)
	for i, s := range sessions {
		dates[i] = s.Date
		h.TotalMinutes += s.Minutes
		confSum += s.Confidence
		minutesBySubject[s.Subject] += s.Minutes
	}
	h.AvgSessionMinutes = float64(h.TotalMinutes) / float64(len(sessions))
	h.AvgConfidence = float64(confSum) / float64(len(sessions))
	h.ConfidenceTrend = ConfidenceTrend(sessions, 5)

	h.SubjectCount = len(minutesBySubject)
	top := -1
	for subject, m := range minutesBySubject {
		if m > top || (m == top && subject < h.TopSubject) {
			top = m
			h.TopSubject = subject
		}
	}

	h.CurrentStreak = Streak(dates, now)
	h.Consistency30d = ConsistencyScore(sessions, 30, now)

	weekAgo := Day(now).AddDate(0, 0, -7)
	for _, s := range sessions {
		d := Day(s.Date)
		if !d.Before(weekAgo) && !d.After(Day(now)) {
			h.RecentMinutes += s.Minutes
			h.RecentSessions++
		}
	}

	return h
}

// ConsistencyScore is the percentage of possible study days actually
// studied over the last daysBack days, 0-100.
func ConsistencyScore(sessions []store.StudySession, daysBack int, now time.Time) float64 {
	if len(sessions) == 0 {
		return 0
	}

	today := Day(now)
	start := today.AddDate(0, 0, -daysBack)

	studied := make(map[time.Time]bool)
	var earliest time.Time
	for _, s := range sessions {
		d := Day(s.Date)
		if d.Before(start) || d.After(today) {
			continue
		}
		studied[d] = true
		if earliest.IsZero() || d.Before(earliest) {
			earliest = d
		}
	}
	if len(studied) == 0 {
		return 0
	}

	possible := int(today.Sub(earliest).Hours()/24) + 1
	if possible > daysBack {
		possible = daysBack
	}
	if possible == 0 {
		return 0
	}

	score := float64(len(studied)) / float64(possible) * 100
	if score > 100 {
		score = 100
	}
	return score
}

// ConfidenceTrend compares the mean confidence of the last window sessions
// (by date) against the first window. Requires at least 2*window sessions.
func ConfidenceTrend(sessions []store.StudySession, window int) float64 {
	if len(sessions) < window*2 {
		return 0
	}
	ordered := append([]store.StudySession(nil), sessions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})
	return confidenceMean(ordered[len(ordered)-window:]) - confidenceMean(ordered[:window])
}

// PerformanceGrade converts an average confidence rating to a letter grade.
func PerformanceGrade(avgConfidence float64) string {
	switch {
	case avgConfidence >= 4.5:
		return "A+"
	case avgConfidence >= 4.0:
		return "A"
	case avgConfidence >= 3.5:
		return "B+"
	case avgConfidence >= 3.0:
		return "B"
	case avgConfidence >= 2.5:
		return "C+"
	case avgConfidence >= 2.0:
		return "C"
	case avgConfidence >= 1.5:
		return "D"
	default:
		return "F"
	}
}

// MonthSummary aggregates one calendar month of sessions.
type MonthSummary struct {
	TotalMinutes  int
	TotalSessions int
	AvgConfidence float64
	SubjectCount  int
	StudyDays     int
	BestSubject   string // highest mean confidence
	TopSubject    string // most study time
}

// MonthlySummary returns the summary for the given month, and false when
// the month has no sessions.
func MonthlySummary(sessions []store.StudySession, month time.Month, year int) (MonthSummary, bool) {
	var monthly []store.StudySession
	for _, s := range sessions {
		if s.Date.Month() == month && s.Date.Year() == year {
			monthly = append(monthly, s)
		}
	}
	if len(monthly) == 0 {
		return MonthSummary{}, false
	}

	m := MonthSummary{TotalSessions: len(monthly)}
	confSum := 0
	days := make(map[time.Time]bool)
	minutesBySubject := make(map[string]int)
	confBySubject := make(map[string][2]int) // sum, count
	for _, s := range monthly {
		m.TotalMinutes += s.Minutes
		confSum += s.Confidence
		days[Day(s.Date)] = true
		minutesBySubject[s.Subject] += s.Minutes
		c := confBySubject[s.Subject]
		confBySubject[s.Subject] = [2]int{c[0] + s.Confidence, c[1] + 1}
	}
	m.AvgConfidence = float64(confSum) / float64(len(monthly))
	m.SubjectCount = len(minutesBySubject)
	m.StudyDays = len(days)

	bestAvg, topMinutes := -1.0, -1
	for subject, c := range confBySubject {
		avg := float64(c[0]) / float64(c[1])
		if avg > bestAvg || (avg == bestAvg && subject < m.BestSubject) {
			bestAvg = avg
			m.BestSubject = subject
		}
	}
	for subject, mins := range minutesBySubject {
		if mins > topMinutes || (mins == topMinutes && subject < m.TopSubject) {
			topMinutes = mins
			m.TopSubject = subject
		}
	}

	return m, true
}

// FormatMinutes renders a minute count as "45 min", "1 hour 5 min", etc.
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	rem := minutes % 60

	unit := "hours"
	if hours == 1 {
		unit = "hour"
	}
	if rem == 0 {
		return fmt.Sprintf("%d %s", hours, unit)
	}
	return fmt.Sprintf("%d %s %d min", hours, unit, rem)
}
