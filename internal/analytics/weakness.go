package analytics

import (
	"sort"

	"github.com/sadopc/elevate/internal/store"
)

// TopicStat holds the derived statistics for one (subject, topic) group.
// Recomputed on every analysis call; never persisted.
type TopicStat struct {
	Subject       string
	Topic         string
	Sessions      int
	AvgConfidence float64
	TotalMinutes  int
	SpanDays      int     // max date - min date + 1
	Consistency   float64 // sessions per day of span
	Trend         float64 // second-half mean confidence minus first-half
}

// WeaknessEntry is a TopicStat plus its composite weakness score.
type WeaknessEntry struct {
	TopicStat
	Score float64
}

// TopicStats groups the log by (subject, topic) and computes per-group
// statistics for every group, ordered by subject then topic.
func TopicStats(sessions []store.StudySession) []TopicStat {
	type groupKey struct{ subject, topic string }
	groups := make(map[groupKey][]store.StudySession)
	for _, s := range sessions {
		k := groupKey{s.Subject, s.Topic}
		groups[k] = append(groups[k], s)
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].subject != keys[j].subject {
			return keys[i].subject < keys[j].subject
		}
		return keys[i].topic < keys[j].topic
	})

	stats := make([]TopicStat, 0, len(keys))
	for _, k := range keys {
		group := groups[k]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})

		st := TopicStat{Subject: k.subject, Topic: k.topic, Sessions: len(group)}

		confSum := 0
		minDate, maxDate := Day(group[0].Date), Day(group[0].Date)
		for _, s := range group {
			confSum += s.Confidence
			st.TotalMinutes += s.Minutes
			d := Day(s.Date)
			if d.Before(minDate) {
				minDate = d
			}
			if d.After(maxDate) {
				maxDate = d
			}
		}
		st.AvgConfidence = float64(confSum) / float64(len(group))
		st.SpanDays = int(maxDate.Sub(minDate).Hours()/24) + 1
		if st.SpanDays > 0 {
			st.Consistency = float64(len(group)) / float64(st.SpanDays)
		}
		st.Trend = improvementTrend(group)

		stats = append(stats, st)
	}
	return stats
}

// improvementTrend compares the mean confidence of the second half of the
// date-ordered sessions against the first half. Split point is count/2.
func improvementTrend(ordered []store.StudySession) float64 {
	if len(ordered) < 2 {
		return 0
	}
	mid := len(ordered) / 2
	return confidenceMean(ordered[mid:]) - confidenceMean(ordered[:mid])
}

func confidenceMean(sessions []store.StudySession) float64 {
	if len(sessions) == 0 {
		return 0
	}
	sum := 0
	for _, s := range sessions {
		sum += s.Confidence
	}
	return float64(sum) / float64(len(sessions))
}

// AnalyzeWeaknesses identifies the topics that need attention, ranked worst
// first, and returns recommendations alongside. Fewer sessions than the
// configured minimum is a normal outcome: an empty list plus a guidance
// message, not an error.
func (e *Engine) AnalyzeWeaknesses(sessions []store.StudySession) ([]WeaknessEntry, []string) {
	if len(sessions) < e.cfg.MinTotalSessions {
		return nil, []string{"Need more study sessions for accurate analysis."}
	}

	stats := TopicStats(sessions)
	weak := e.identifyWeakTopics(stats)
	insights := e.GenerateInsights(sessions)
	recommendations := e.Recommendations(weak, insights, sessions)

	return weak, recommendations
}

func (e *Engine) identifyWeakTopics(stats []TopicStat) []WeaknessEntry {
	var weak []WeaknessEntry
	for _, st := range stats {
		isWeak := st.AvgConfidence < e.cfg.WeaknessThreshold ||
			(st.Trend < e.cfg.DecliningTrend && st.Sessions >= 3) ||
			(st.Consistency < e.cfg.LowConsistency && st.Sessions >= 2)

		if isWeak && st.Sessions >= e.cfg.MinTopicSessions {
			weak = append(weak, WeaknessEntry{TopicStat: st, Score: weaknessScore(st)})
		}
	}

	sort.SliceStable(weak, func(i, j int) bool {
		return weak[i].Score > weak[j].Score
	})
	return weak
}

// weaknessScore combines low confidence, negative trend and inconsistency
// into a single ranking value. Higher means more attention needed.
func weaknessScore(st TopicStat) float64 {
	confidenceFactor := (5 - st.AvgConfidence) / 4

	trendFactor := -st.Trend / 2
	if trendFactor < 0 {
		trendFactor = 0
	}

	consistency := st.Consistency
	if consistency > 1 {
		consistency = 1
	}
	consistencyFactor := 1 - consistency

	return confidenceFactor*0.5 + trendFactor*0.3 + consistencyFactor*0.2
}
