package analytics

import (
	"testing"
	"time"

	"github.com/sadopc/elevate/internal/store"
)

// day parses a YYYY-MM-DD literal. Panics on bad input so tests stay terse.
func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func days(ss ...string) []time.Time {
	out := make([]time.Time, len(ss))
	for i, s := range ss {
		out[i] = day(s)
	}
	return out
}

// sess builds a study session for a given date. Shared across the package
// tests.
func sess(date, subject, topic string, minutes, confidence int) store.StudySession {
	return store.StudySession{
		Date:       day(date),
		Subject:    subject,
		Topic:      topic,
		Minutes:    minutes,
		Confidence: confidence,
	}
}

func TestStreakEmpty(t *testing.T) {
	if got := Streak(nil, day("2026-03-10")); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestStreakEndsToday(t *testing.T) {
	dates := days("2026-03-08", "2026-03-09", "2026-03-10")
	if got := Streak(dates, day("2026-03-10")); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestStreakEndsYesterday(t *testing.T) {
	dates := days("2026-03-08", "2026-03-09")
	if got := Streak(dates, day("2026-03-10")); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestStreakBrokenByGap(t *testing.T) {
	// Most recent study day is two days before now.
	dates := days("2026-03-07", "2026-03-08")
	if got := Streak(dates, day("2026-03-10")); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestStreakStopsAtFirstMissingDay(t *testing.T) {
	dates := days("2026-03-06", "2026-03-08", "2026-03-09", "2026-03-10")
	if got := Streak(dates, day("2026-03-10")); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestStreakCollapsesDuplicates(t *testing.T) {
	dates := days("2026-03-09", "2026-03-09", "2026-03-10", "2026-03-10")
	if got := Streak(dates, day("2026-03-10")); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestStreakIgnoresTimeOfDay(t *testing.T) {
	dates := []time.Time{
		day("2026-03-09").Add(23 * time.Hour),
		day("2026-03-10").Add(5 * time.Minute),
	}
	now := day("2026-03-10").Add(18 * time.Hour)
	if got := Streak(dates, now); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestStreakAsOfTargetNotStudied(t *testing.T) {
	dates := days("2026-03-08", "2026-03-09")
	if got := StreakAsOf(dates, day("2026-03-10")); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestStreakAsOfMidHistory(t *testing.T) {
	dates := days("2026-03-08", "2026-03-09", "2026-03-10", "2026-03-14")

	if got := StreakAsOf(dates, day("2026-03-10")); got != 3 {
		t.Fatalf("as of 03-10: expected 3, got %d", got)
	}
	if got := StreakAsOf(dates, day("2026-03-14")); got != 1 {
		t.Fatalf("as of 03-14: expected 1, got %d", got)
	}
}

func TestStreakAsOfIgnoresLaterDates(t *testing.T) {
	// Dates after the target never extend the backward walk.
	dates := days("2026-03-08", "2026-03-09", "2026-03-10")
	if got := StreakAsOf(dates, day("2026-03-09")); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}
