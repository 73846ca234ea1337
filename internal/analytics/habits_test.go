package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/sadopc/elevate/internal/store"
)

func TestHabitsEmpty(t *testing.T) {
	e := NewDefaultEngine()
	h := e.Habits(nil, day("2026-03-10"))
	if h != (HabitSummary{}) {
		t.Fatalf("expected zero summary, got %+v", h)
	}
}

func TestHabitsSummary(t *testing.T) {
	e := NewDefaultEngine()

	sessions := []store.StudySession{
		sess("2026-03-08", "Math", "Algebra", 30, 4),
		sess("2026-03-09", "Math", "Calculus", 60, 3),
		sess("2026-03-10", "Physics", "Optics", 30, 5),
	}
	h := e.Habits(sessions, day("2026-03-10"))

	if h.TotalMinutes != 120 || h.TotalSessions != 3 {
		t.Fatalf("unexpected totals: %+v", h)
	}
	if math.Abs(h.AvgSessionMinutes-40) > 1e-9 {
		t.Fatalf("expected avg 40, got %f", h.AvgSessionMinutes)
	}
	if math.Abs(h.AvgConfidence-4) > 1e-9 {
		t.Fatalf("expected avg confidence 4, got %f", h.AvgConfidence)
	}
	if h.SubjectCount != 2 || h.TopSubject != "Math" {
		t.Fatalf("unexpected subjects: %+v", h)
	}
	if h.CurrentStreak != 3 {
		t.Fatalf("expected streak 3, got %d", h.CurrentStreak)
	}
	if h.RecentSessions != 3 || h.RecentMinutes != 120 {
		t.Fatalf("unexpected recent window: %+v", h)
	}
}

func TestConsistencyScore(t *testing.T) {
	// 5 of the last 10 possible days.
	var sessions []store.StudySession
	for _, d := range []int{1, 3, 5, 7, 9} {
		sessions = append(sessions, sess(dayN(d), "Math", "Algebra", 30, 3))
	}

	got := ConsistencyScore(sessions, 30, day(dayN(10)))
	if math.Abs(got-50) > 1e-9 {
		t.Fatalf("expected 50, got %f", got)
	}
}

func TestConsistencyScorePerfect(t *testing.T) {
	var sessions []store.StudySession
	for d := 1; d <= 10; d++ {
		sessions = append(sessions, sess(dayN(d), "Math", "Algebra", 30, 3))
	}
	got := ConsistencyScore(sessions, 30, day(dayN(10)))
	if got != 100 {
		t.Fatalf("expected 100, got %f", got)
	}
}

func TestConsistencyScoreOutOfWindow(t *testing.T) {
	sessions := []store.StudySession{sess("2025-01-01", "Math", "Algebra", 30, 3)}
	if got := ConsistencyScore(sessions, 30, day("2026-03-10")); got != 0 {
		t.Fatalf("expected 0 for stale log, got %f", got)
	}
}

func TestConfidenceTrendTooFewSessions(t *testing.T) {
	sessions := []store.StudySession{
		sess("2026-03-01", "Math", "Algebra", 30, 1),
		sess("2026-03-02", "Math", "Algebra", 30, 5),
	}
	if got := ConfidenceTrend(sessions, 5); got != 0 {
		t.Fatalf("expected 0 below the window, got %f", got)
	}
}

func TestConfidenceTrend(t *testing.T) {
	var sessions []store.StudySession
	for d := 1; d <= 5; d++ {
		sessions = append(sessions, sess(dayN(d), "Math", "Algebra", 30, 2))
	}
	for d := 6; d <= 10; d++ {
		sessions = append(sessions, sess(dayN(d), "Math", "Algebra", 30, 4))
	}

	if got := ConfidenceTrend(sessions, 5); math.Abs(got-2) > 1e-9 {
		t.Fatalf("expected +2, got %f", got)
	}
}

func TestPerformanceGrade(t *testing.T) {
	tests := []struct {
		avg  float64
		want string
	}{
		{4.8, "A+"},
		{4.5, "A+"},
		{4.2, "A"},
		{3.7, "B+"},
		{3.0, "B"},
		{2.6, "C+"},
		{2.0, "C"},
		{1.5, "D"},
		{1.0, "F"},
	}
	for _, tt := range tests {
		if got := PerformanceGrade(tt.avg); got != tt.want {
			t.Fatalf("PerformanceGrade(%f) = %s, want %s", tt.avg, got, tt.want)
		}
	}
}

func TestMonthlySummary(t *testing.T) {
	sessions := []store.StudySession{
		sess("2026-03-01", "Math", "Algebra", 30, 3),
		sess("2026-03-01", "Math", "Calculus", 30, 3),
		sess("2026-03-05", "Physics", "Optics", 90, 5),
		sess("2026-04-01", "Math", "Algebra", 30, 4),
	}

	m, ok := MonthlySummary(sessions, time.March, 2026)
	if !ok {
		t.Fatal("expected a summary for March")
	}
	if m.TotalSessions != 3 || m.TotalMinutes != 150 {
		t.Fatalf("unexpected totals: %+v", m)
	}
	if m.StudyDays != 2 {
		t.Fatalf("expected 2 study days, got %d", m.StudyDays)
	}
	if m.SubjectCount != 2 {
		t.Fatalf("expected 2 subjects, got %d", m.SubjectCount)
	}
	if m.BestSubject != "Physics" {
		t.Fatalf("expected Physics as best subject, got %s", m.BestSubject)
	}
	if m.TopSubject != "Physics" {
		t.Fatalf("expected Physics as top subject, got %s", m.TopSubject)
	}
}

func TestMonthlySummaryEmptyMonth(t *testing.T) {
	sessions := []store.StudySession{sess("2026-03-01", "Math", "Algebra", 30, 3)}
	if _, ok := MonthlySummary(sessions, time.July, 2026); ok {
		t.Fatal("expected no summary for an empty month")
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0 min"},
		{45, "45 min"},
		{60, "1 hour"},
		{65, "1 hour 5 min"},
		{120, "2 hours"},
		{125, "2 hours 5 min"},
	}
	for _, tt := range tests {
		if got := FormatMinutes(tt.minutes); got != tt.want {
			t.Fatalf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
