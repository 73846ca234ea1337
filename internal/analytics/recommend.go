package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sadopc/elevate/internal/store"
)

const (
	maxWeaknessRecommendations = 6
	maxGeneralRecommendations  = 5
)

// Recommendations composes advisory messages from the weakness ranking and
// insight signals. Any failed or insufficient signal is skipped, never
// fatal. At most six messages are returned.
func (e *Engine) Recommendations(weak []WeaknessEntry, ins Insights, sessions []store.StudySession) []string {
	var recs []string

	if len(weak) > 0 {
		top := weak
		if len(top) > 3 {
			top = top[:3]
		}
		names := make([]string, len(top))
		for i, w := range top {
			names[i] = w.Subject + " - " + w.Topic
		}
		recs = append(recs, "Focus on these weak areas: "+strings.Join(names, ", "))

		for _, w := range top {
			if w.Trend < 0 {
				recs = append(recs, fmt.Sprintf("%s - %s: Try different study methods, confidence is declining", w.Subject, w.Topic))
			} else if w.Sessions < 5 {
				recs = append(recs, fmt.Sprintf("%s - %s: Needs more practice sessions", w.Subject, w.Topic))
			}
		}
	}

	if ins.Patterns.Status == StatusSuccess {
		recs = append(recs, fmt.Sprintf("You perform best on %ss - consider scheduling important topics then", ins.Patterns.BestWeekday))

		switch avg := ins.Patterns.AvgSessionMinutes; {
		case avg < 20:
			recs = append(recs, "Consider longer study sessions (20-45 minutes) for better retention")
		case avg > 90:
			recs = append(recs, "Break down long sessions into smaller chunks with breaks")
		}
	}

	if ins.Performance.Status == StatusSuccess {
		switch trend := ins.Performance.ConfidenceTrend; {
		case trend < -0.2:
			recs = append(recs, "Your confidence has been declining recently - consider reviewing fundamentals")
		case trend > 0.2:
			recs = append(recs, "Great progress! Your confidence is improving - keep up the momentum")
		}

		if ins.Performance.TimeTrend < -10 {
			recs = append(recs, "You've been studying less lately - try to maintain consistency")
		}
	}

	// Weekly consistency relative to the latest logged date, not the clock,
	// so the check is a property of the log alone.
	if len(sessions) >= 10 {
		var latest time.Time
		for _, s := range sessions {
			if d := Day(s.Date); d.After(latest) {
				latest = d
			}
		}
		weekAgo := latest.AddDate(0, 0, -7)
		recent := 0
		for _, s := range sessions {
			if !Day(s.Date).Before(weekAgo) {
				recent++
			}
		}
		if recent < 3 {
			recs = append(recs, "Try to study more consistently - aim for at least 3 sessions per week")
		}
	}

	subjects := make(map[string]bool)
	for _, s := range sessions {
		subjects[s.Subject] = true
	}
	switch n := len(subjects); {
	case n == 1:
		recs = append(recs, "Consider diversifying your subjects to maintain engagement")
	case n > 5:
		recs = append(recs, "You're studying many subjects - ensure you're giving enough attention to each")
	}

	if len(recs) == 0 {
		recs = append(recs, "Great job! No major issues detected. Keep maintaining your study routine!")
	}
	if len(recs) > maxWeaknessRecommendations {
		recs = recs[:maxWeaknessRecommendations]
	}
	return recs
}

// StudyRecommendations is the lighter, habit-based path used outside the
// full weakness analysis. At most five messages.
func (e *Engine) StudyRecommendations(sessions []store.StudySession, now time.Time) []string {
	if len(sessions) == 0 {
		return []string{"Start logging your study sessions to get personalized recommendations!"}
	}

	h := e.Habits(sessions, now)
	var recs []string

	switch {
	case h.AvgSessionMinutes < 15:
		recs = append(recs, "Try longer study sessions (20-45 minutes) for better focus and retention.")
	case h.AvgSessionMinutes > 90:
		recs = append(recs, "Consider breaking long sessions into smaller chunks with breaks.")
	}

	switch {
	case h.CurrentStreak == 0:
		recs = append(recs, "Start building a study streak! Consistent daily practice is key to success.")
	case h.Consistency30d < 50:
		recs = append(recs, "Try to study more regularly. Aim for at least 4-5 sessions per week.")
	}

	switch {
	case h.AvgConfidence < 3.0:
		recs = append(recs, "Focus on building confidence. Review fundamentals and practice more problems.")
	case h.ConfidenceTrend < -0.3:
		recs = append(recs, "Your confidence seems to be declining. Consider reviewing recent topics or seeking help.")
	}

	switch {
	case h.SubjectCount == 1:
		recs = append(recs, "Consider studying multiple subjects to maintain engagement and prevent burnout.")
	case h.SubjectCount > 5:
		recs = append(recs, "You're studying many subjects. Ensure you're giving adequate time to each.")
	}

	switch {
	case h.RecentSessions == 0:
		recs = append(recs, "You haven't studied recently. Get back on track with a short session today!")
	case h.RecentMinutes < 60:
		recs = append(recs, "Increase your weekly study time for better progress.")
	}

	if weak := lowConfidenceTopics(sessions, e.cfg.WeaknessThreshold); len(weak) > 0 {
		if len(weak) > 2 {
			weak = weak[:2]
		}
		names := make([]string, len(weak))
		for i, w := range weak {
			names[i] = w.Subject + " - " + w.Topic
		}
		recs = append(recs, "Give extra attention to: "+strings.Join(names, ", "))
	}

	if len(recs) == 0 {
		recs = append(recs, "Excellent study habits! Keep up the great work!")
	}
	if len(recs) > maxGeneralRecommendations {
		recs = recs[:maxGeneralRecommendations]
	}
	return recs
}

// lowConfidenceTopics is the simple weak-topic filter: below-threshold mean
// confidence with at least 2 sessions, lowest confidence first.
func lowConfidenceTopics(sessions []store.StudySession, threshold float64) []TopicStat {
	var weak []TopicStat
	for _, st := range TopicStats(sessions) {
		if st.AvgConfidence < threshold && st.Sessions >= 2 {
			weak = append(weak, st)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool {
		return weak[i].AvgConfidence < weak[j].AvgConfidence
	})
	return weak
}
