package analytics

import (
	"fmt"
	"time"

	"github.com/sadopc/elevate/internal/store"
)

// SessionXP returns the XP earned by a single session. Base XP scales with
// duration, multiplied by the confidence factor and the streak bonus
// (capped), floored and never below the configured minimum.
func (e *Engine) SessionXP(durationMinutes, confidence, streakDays int) int {
	base := float64(durationMinutes * e.cfg.BaseXPPerMinute)

	mult, ok := e.cfg.ConfidenceMultiplier[confidence]
	if !ok {
		mult = 1.0
	}

	bonus := float64(streakDays) * e.cfg.StreakBonusPerDay
	if bonus > e.cfg.StreakBonusCap {
		bonus = e.cfg.StreakBonusCap
	}

	xp := int(base * mult * (1 + bonus))
	if xp < e.cfg.MinSessionXP {
		xp = e.cfg.MinSessionXP
	}
	return xp
}

// TotalXP recomputes cumulative XP from the full session log. Each session
// earns XP with the streak that was active on its date; streaks are
// memoized per distinct date within the call.
func (e *Engine) TotalXP(sessions []store.StudySession) int {
	if len(sessions) == 0 {
		return 0
	}

	dates := make([]time.Time, len(sessions))
	for i, s := range sessions {
		dates[i] = s.Date
	}

	streakByDate := make(map[time.Time]int)
	total := 0
	for _, s := range sessions {
		day := Day(s.Date)
		streak, ok := streakByDate[day]
		if !ok {
			streak = StreakAsOf(dates, day)
			streakByDate[day] = streak
		}
		total += e.SessionXP(s.Minutes, s.Confidence, streak)
	}
	return total
}

// Level maps cumulative XP onto the threshold table. Levels saturate at the
// top of the table; XP beyond the last threshold never errors.
func (e *Engine) Level(totalXP int) int {
	level := 0
	for _, threshold := range e.cfg.LevelThresholds {
		if totalXP >= threshold {
			level++
		}
	}
	if level < 1 {
		level = 1
	}
	if level > len(e.cfg.LevelThresholds) {
		level = len(e.cfg.LevelThresholds)
	}
	return level
}

// Progress describes position within the current level band.
type Progress struct {
	Level      int
	Percent    float64 // progress toward the next threshold, 0-100
	XPToNext   int
	CurrentXP  int // XP earned within this band
	RequiredXP int // band width
}

func (e *Engine) LevelProgress(totalXP int) Progress {
	level := e.Level(totalXP)

	if level >= len(e.cfg.LevelThresholds) {
		return Progress{Level: level, Percent: 100}
	}

	current := e.cfg.LevelThresholds[level-1]
	next := e.cfg.LevelThresholds[level]

	progressXP := totalXP - current
	requiredXP := next - current

	return Progress{
		Level:      level,
		Percent:    float64(progressXP) / float64(requiredXP) * 100,
		XPToNext:   next - totalXP,
		CurrentXP:  progressXP,
		RequiredXP: requiredXP,
	}
}

// Achievement is a named badge with a display-only XP reward. Rewards are
// never folded into TotalXP.
type Achievement struct {
	Key         string
	Name        string
	Description string
	XP          int
}

var achievementCatalog = []Achievement{
	{"first_session", "Getting Started", "Complete your first study session", 25},
	{"week_streak", "Consistent Learner", "Study for 7 consecutive days", 100},
	{"month_streak", "Dedicated Scholar", "Study for 30 consecutive days", 500},
	{"100_hours", "Century Mark", "Complete 100 hours of study", 200},
	{"perfect_week", "Perfect Week", "Average 4+ confidence for a week", 150},
	{"subject_expert", "Subject Expert", "Reach average confidence 4+ in any subject", 250},
}

// AchievementInfo looks up a catalog entry by key.
func AchievementInfo(key string) (Achievement, bool) {
	for _, a := range achievementCatalog {
		if a.Key == key {
			return a, true
		}
	}
	return Achievement{}, false
}

// Achievements returns the keys earned by the session log, in catalog order.
func (e *Engine) Achievements(sessions []store.StudySession, now time.Time) []string {
	if len(sessions) == 0 {
		return nil
	}

	var earned []string
	earned = append(earned, "first_session")

	dates := make([]time.Time, len(sessions))
	totalMinutes := 0
	for i, s := range sessions {
		dates[i] = s.Date
		totalMinutes += s.Minutes
	}

	streak := Streak(dates, now)
	if streak >= 7 {
		earned = append(earned, "week_streak")
	}
	if streak >= 30 {
		earned = append(earned, "month_streak")
	}

	if totalMinutes >= 100*60 {
		earned = append(earned, "100_hours")
	}

	if len(sessions) >= 7 {
		recent := sessions[len(sessions)-7:]
		sum := 0
		for _, s := range recent {
			sum += s.Confidence
		}
		if float64(sum)/7 >= 4.0 {
			earned = append(earned, "perfect_week")
		}
	}

	if hasExpertSubject(sessions) {
		earned = append(earned, "subject_expert")
	}

	return earned
}

func hasExpertSubject(sessions []store.StudySession) bool {
	sum := make(map[string]int)
	count := make(map[string]int)
	for _, s := range sessions {
		sum[s.Subject] += s.Confidence
		count[s.Subject]++
	}
	for subject, total := range sum {
		if float64(total)/float64(count[subject]) >= 4.0 {
			return true
		}
	}
	return false
}

// BonusXP sums the rewards of all earned achievements. Display only.
func (e *Engine) BonusXP(sessions []store.StudySession, now time.Time) int {
	bonus := 0
	for _, key := range e.Achievements(sessions, now) {
		if a, ok := AchievementInfo(key); ok {
			bonus += a.XP
		}
	}
	return bonus
}

// Milestone is the next target a user should aim for.
type Milestone struct {
	Type        string // "level" or "streak"
	Description string
	Percent     float64
	Target      string
}

// NextMilestones returns up to two milestones: the next level and the next
// streak landmark.
func (e *Engine) NextMilestones(totalXP, currentStreak int) []Milestone {
	var milestones []Milestone

	p := e.LevelProgress(totalXP)
	if p.XPToNext > 0 {
		milestones = append(milestones, Milestone{
			Type:        "level",
			Description: fmt.Sprintf("Reach Level %d", p.Level+1),
			Percent:     p.Percent,
			Target:      fmt.Sprintf("%d XP needed", p.XPToNext),
		})
	}

	switch {
	case currentStreak < 7:
		milestones = append(milestones, Milestone{
			Type:        "streak",
			Description: "7-day study streak",
			Percent:     float64(currentStreak) / 7 * 100,
			Target:      fmt.Sprintf("%d more days", 7-currentStreak),
		})
	case currentStreak < 30:
		milestones = append(milestones, Milestone{
			Type:        "streak",
			Description: "30-day study streak",
			Percent:     float64(currentStreak) / 30 * 100,
			Target:      fmt.Sprintf("%d more days", 30-currentStreak),
		})
	}

	if len(milestones) > 2 {
		milestones = milestones[:2]
	}
	return milestones
}

// MotivationalMessages picks one message per signal: level tier, streak
// tier and recent confidence.
func (e *Engine) MotivationalMessages(level, streak int, recentPerformance float64) []string {
	var messages []string

	switch {
	case level >= 10:
		messages = append(messages, "You're a study champion! Keep pushing boundaries!")
	case level >= 5:
		messages = append(messages, "Great progress! You're becoming a study expert!")
	default:
		messages = append(messages, "Every expert was once a beginner. Keep growing!")
	}

	switch {
	case streak >= 30:
		messages = append(messages, "Incredible 30+ day streak! You're unstoppable!")
	case streak >= 7:
		messages = append(messages, "Amazing weekly streak! Consistency is key!")
	case streak >= 3:
		messages = append(messages, "Building momentum! Keep the streak alive!")
	}

	switch {
	case recentPerformance >= 4.0:
		messages = append(messages, "Excellent confidence levels! You're mastering your subjects!")
	case recentPerformance >= 3.0:
		messages = append(messages, "Good progress! Keep building that confidence!")
	default:
		messages = append(messages, "Focus and persistence will lead to improvement!")
	}

	return messages
}
