package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/sadopc/elevate/internal/store"
)

// Series tags for forecast points.
const (
	KindHistorical = "Historical"
	KindForecast   = "Forecast"
)

// ForecastPoint is one point of the combined cumulative-spending series:
// the observed history followed by the projected continuation.
type ForecastPoint struct {
	Day    int // days since the first expense date
	Date   time.Time
	Amount float64 // cumulative spend
	Kind   string
}

// ForecastSpending fits a linear trend to cumulative daily spending and
// projects it forward forecastDays. Too little data returns no series and
// an explanatory message. Negative projections are not clamped: the linear
// fit can dip below history when the trend is negative, which is left
// visible rather than silently corrected.
func (e *Engine) ForecastSpending(expenses []store.Expense, forecastDays int) ([]ForecastPoint, string) {
	if forecastDays <= 0 {
		forecastDays = e.cfg.DefaultForecastDays
	}
	if len(expenses) < e.cfg.MinForecastExpenses {
		return nil, fmt.Sprintf("Need at least %d expenses for an accurate forecast.", e.cfg.MinForecastExpenses)
	}

	// Aggregate spend per calendar day, ordered by date.
	byDay := make(map[time.Time]float64)
	for _, ex := range expenses {
		byDay[Day(ex.Date)] += ex.Amount
	}
	if len(byDay) < 2 {
		return nil, "Need expenses on at least 2 different days for a forecast."
	}

	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	first := days[0]

	// Cumulative series with integer day offsets as the single feature.
	xs := make([]float64, len(days))
	ys := make([]float64, len(days))
	cum := 0.0
	for i, d := range days {
		cum += byDay[d]
		xs[i] = float64(int(d.Sub(first).Hours() / 24))
		ys[i] = cum
	}

	slope, intercept, ok := leastSquares(xs, ys)
	if !ok {
		return nil, "Spending trend could not be fitted."
	}

	points := make([]ForecastPoint, 0, len(days)+forecastDays)
	for i, d := range days {
		points = append(points, ForecastPoint{
			Day:    int(xs[i]),
			Date:   d,
			Amount: ys[i],
			Kind:   KindHistorical,
		})
	}

	lastDay := int(xs[len(xs)-1])
	var final float64
	for i := 1; i <= forecastDays; i++ {
		day := lastDay + i
		final = intercept + slope*float64(day)
		points = append(points, ForecastPoint{
			Day:    day,
			Date:   first.AddDate(0, 0, day),
			Amount: final,
			Kind:   KindForecast,
		})
	}

	msg := fmt.Sprintf("Predicted total spending in the next %d days could reach around %.2f.", forecastDays, final)
	return points, msg
}

// leastSquares fits y = intercept + slope*x by ordinary least squares.
// ok is false when all x values coincide.
func leastSquares(xs, ys []float64) (slope, intercept float64, ok bool) {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumX2 float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumX2 += xs[i] * xs[i]
	}

	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, 0, false
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept, true
}
