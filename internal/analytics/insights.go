package analytics

import (
	"sort"
	"time"

	"github.com/sadopc/elevate/internal/store"
)

// ClusterResult groups similar topics by their statistic vectors.
type ClusterResult struct {
	Status  string
	Labels  []int // cluster label per TopicStats entry, same order
	K       int
	Centers [][]float64
}

// PerformanceTrend compares recent study days against the earliest ones.
// Positive values mean improvement.
type PerformanceTrend struct {
	Status           string
	ConfidenceTrend  float64
	TimeTrend        float64 // minutes per day
	RecentConfidence float64
}

// StudyPatterns summarizes habits visible in the raw log.
type StudyPatterns struct {
	Status              string
	BestWeekday         time.Weekday // highest mean confidence
	AvgSessionMinutes   float64
	ModalSessionMinutes int
	SubjectCount        int
	TopSubject          string // most study time
}

type Insights struct {
	Status      string
	Clusters    ClusterResult
	Performance PerformanceTrend
	Patterns    StudyPatterns
}

// GenerateInsights derives clustering, trend and pattern signals from the
// session log. Too few topic groups yields an insufficient-data result,
// never an error.
func (e *Engine) GenerateInsights(sessions []store.StudySession) Insights {
	stats := TopicStats(sessions)
	if len(stats) < e.cfg.MinClusterTopics {
		return Insights{Status: StatusInsufficientData}
	}

	return Insights{
		Status:      StatusSuccess,
		Clusters:    e.clusterTopics(stats),
		Performance: e.performanceTrend(sessions),
		Patterns:    studyPatterns(sessions),
	}
}

func (e *Engine) clusterTopics(stats []TopicStat) ClusterResult {
	features := make([][]float64, len(stats))
	for i, st := range stats {
		features[i] = []float64{
			st.AvgConfidence,
			float64(st.TotalMinutes),
			float64(st.Sessions),
			st.Trend,
			st.Consistency,
		}
	}

	// 2-4 clusters depending on how many topic groups exist.
	k := len(features) / 2
	if k < 2 {
		k = 2
	}
	if k > 4 {
		k = 4
	}

	labels, centers := kMeans(zscore(features), k, e.cfg.ClusterSeed)
	if labels == nil {
		return ClusterResult{Status: StatusClusteringFailed}
	}
	return ClusterResult{Status: StatusSuccess, Labels: labels, K: k, Centers: centers}
}

type dailyRow struct {
	date       time.Time
	confidence float64
	minutes    int
}

func aggregateDaily(sessions []store.StudySession) []dailyRow {
	type acc struct {
		confSum, count, minutes int
	}
	byDay := make(map[time.Time]*acc)
	for _, s := range sessions {
		d := Day(s.Date)
		a := byDay[d]
		if a == nil {
			a = &acc{}
			byDay[d] = a
		}
		a.confSum += s.Confidence
		a.count++
		a.minutes += s.Minutes
	}

	rows := make([]dailyRow, 0, len(byDay))
	for d, a := range byDay {
		rows = append(rows, dailyRow{
			date:       d,
			confidence: float64(a.confSum) / float64(a.count),
			minutes:    a.minutes,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].date.Before(rows[j].date) })
	return rows
}

// performanceTrend compares the mean confidence and daily minutes of the
// most recent TrendWindow study days against the earliest ones.
func (e *Engine) performanceTrend(sessions []store.StudySession) PerformanceTrend {
	rows := aggregateDaily(sessions)
	w := e.cfg.TrendWindow
	if len(rows) < w {
		return PerformanceTrend{Status: StatusInsufficientHistory}
	}

	oldest := rows[:w]
	recent := rows[len(rows)-w:]

	recentConf, recentMin := windowMeans(recent)
	oldConf, oldMin := windowMeans(oldest)

	return PerformanceTrend{
		Status:           StatusSuccess,
		ConfidenceTrend:  recentConf - oldConf,
		TimeTrend:        recentMin - oldMin,
		RecentConfidence: recentConf,
	}
}

func windowMeans(rows []dailyRow) (conf, minutes float64) {
	for _, r := range rows {
		conf += r.confidence
		minutes += float64(r.minutes)
	}
	n := float64(len(rows))
	return conf / n, minutes / n
}

func studyPatterns(sessions []store.StudySession) StudyPatterns {
	if len(sessions) == 0 {
		return StudyPatterns{Status: StatusInsufficientData}
	}

	p := StudyPatterns{Status: StatusSuccess}

	// Most productive weekday by mean confidence.
	var confSum, confCount [7]int
	for _, s := range sessions {
		wd := s.Date.Weekday()
		confSum[wd] += s.Confidence
		confCount[wd]++
	}
	bestAvg := -1.0
	for wd := 0; wd < 7; wd++ {
		if confCount[wd] == 0 {
			continue
		}
		avg := float64(confSum[wd]) / float64(confCount[wd])
		if avg > bestAvg {
			bestAvg = avg
			p.BestWeekday = time.Weekday(wd)
		}
	}

	// Session length: average and mode (smallest value on ties).
	totalMinutes := 0
	freq := make(map[int]int)
	for _, s := range sessions {
		totalMinutes += s.Minutes
		freq[s.Minutes]++
	}
	p.AvgSessionMinutes = float64(totalMinutes) / float64(len(sessions))
	bestFreq := 0
	for minutes, n := range freq {
		if n > bestFreq || (n == bestFreq && minutes < p.ModalSessionMinutes) {
			bestFreq = n
			p.ModalSessionMinutes = minutes
		}
	}

	// Subject diversity and the subject with the most time.
	minutesBySubject := make(map[string]int)
	for _, s := range sessions {
		minutesBySubject[s.Subject] += s.Minutes
	}
	p.SubjectCount = len(minutesBySubject)
	topMinutes := -1
	for subject, m := range minutesBySubject {
		if m > topMinutes || (m == topMinutes && subject < p.TopSubject) {
			topMinutes = m
			p.TopSubject = subject
		}
	}

	return p
}
