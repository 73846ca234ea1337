package analytics

import "time"

// Day truncates t to its calendar day (midnight UTC).
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daySet(dates []time.Time) map[time.Time]bool {
	set := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		set[Day(d)] = true
	}
	return set
}

// Streak returns the current consecutive-day study streak as of now.
// The chain must reach today or yesterday; anything older counts as broken.
func Streak(dates []time.Time, now time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	set := daySet(dates)

	today := Day(now)
	yesterday := today.AddDate(0, 0, -1)

	var cur time.Time
	switch {
	case set[today]:
		cur = today
	case set[yesterday]:
		cur = yesterday
	default:
		return 0
	}

	streak := 0
	for set[cur] {
		streak++
		cur = cur.AddDate(0, 0, -1)
	}
	return streak
}

// StreakAsOf returns the streak that was active on target: the number of
// consecutive study days ending at target. It is 0 unless target itself is
// a study day. Used to reconstruct historical streaks for XP.
func StreakAsOf(dates []time.Time, target time.Time) int {
	set := daySet(dates)
	cur := Day(target)
	if !set[cur] {
		return 0
	}

	streak := 0
	for set[cur] {
		streak++
		cur = cur.AddDate(0, 0, -1)
	}
	return streak
}
