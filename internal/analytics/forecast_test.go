package analytics

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/elevate/internal/store"
)

func exp(date string, amount float64) store.Expense {
	return store.Expense{Date: day(date), Amount: amount, Category: "Food"}
}

func TestForecastTooFewExpenses(t *testing.T) {
	e := NewDefaultEngine()

	expenses := []store.Expense{
		exp("2026-03-01", 10),
		exp("2026-03-02", 10),
		exp("2026-03-03", 10),
		exp("2026-03-04", 10),
	}
	points, msg := e.ForecastSpending(expenses, 30)
	if points != nil {
		t.Fatalf("expected no series, got %d points", len(points))
	}
	if msg != "Need at least 5 expenses for an accurate forecast." {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestForecastSingleDay(t *testing.T) {
	e := NewDefaultEngine()

	var expenses []store.Expense
	for i := 0; i < 5; i++ {
		expenses = append(expenses, exp("2026-03-01", 10))
	}
	points, msg := e.ForecastSpending(expenses, 30)
	if points != nil {
		t.Fatalf("expected no series, got %d points", len(points))
	}
	if msg != "Need expenses on at least 2 different days for a forecast." {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestForecastLinearSpending(t *testing.T) {
	e := NewDefaultEngine()

	// 10 per day for 5 consecutive days: cumulative 10,20,...,50.
	var expenses []store.Expense
	for d := 1; d <= 5; d++ {
		expenses = append(expenses, exp(dayN(d), 10))
	}

	points, msg := e.ForecastSpending(expenses, 3)
	if len(points) != 8 {
		t.Fatalf("expected 5 historical + 3 forecast points, got %d", len(points))
	}

	for i := 0; i < 5; i++ {
		if points[i].Kind != KindHistorical {
			t.Fatalf("point %d should be historical, got %s", i, points[i].Kind)
		}
		want := float64((i + 1) * 10)
		if math.Abs(points[i].Amount-want) > 1e-9 {
			t.Fatalf("historical point %d: expected %f, got %f", i, want, points[i].Amount)
		}
	}
	for i := 5; i < 8; i++ {
		if points[i].Kind != KindForecast {
			t.Fatalf("point %d should be forecast, got %s", i, points[i].Kind)
		}
	}

	// Exact linear history projects exactly: day 7 -> 80.
	last := points[len(points)-1]
	if math.Abs(last.Amount-80) > 1e-9 {
		t.Fatalf("expected final projection 80, got %f", last.Amount)
	}
	if !strings.Contains(msg, "80.00") || !strings.Contains(msg, "next 3 days") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestForecastFitPassesThroughHistory(t *testing.T) {
	e := NewDefaultEngine()

	var expenses []store.Expense
	for d := 1; d <= 6; d++ {
		expenses = append(expenses, exp(dayN(d), 25))
	}

	points, _ := e.ForecastSpending(expenses, 10)
	// A perfectly linear history means the fitted line reproduces it.
	first := points[0]
	if first.Day != 0 || math.Abs(first.Amount-25) > 1e-9 {
		t.Fatalf("unexpected first point: %+v", first)
	}
}

func TestForecastDatesContinueFromHistory(t *testing.T) {
	e := NewDefaultEngine()

	var expenses []store.Expense
	for d := 1; d <= 5; d++ {
		expenses = append(expenses, exp(dayN(d), 10))
	}

	points, _ := e.ForecastSpending(expenses, 2)
	lastHist := points[4]
	firstFc := points[5]
	if !firstFc.Date.Equal(lastHist.Date.AddDate(0, 0, 1)) {
		t.Fatalf("forecast should start the day after history: %v then %v",
			lastHist.Date, firstFc.Date)
	}
	if firstFc.Day != lastHist.Day+1 {
		t.Fatalf("day offsets should be contiguous: %d then %d", lastHist.Day, firstFc.Day)
	}
}

func TestForecastDefaultHorizon(t *testing.T) {
	e := NewDefaultEngine()

	var expenses []store.Expense
	for d := 1; d <= 5; d++ {
		expenses = append(expenses, exp(dayN(d), 10))
	}

	points, _ := e.ForecastSpending(expenses, 0)
	if len(points) != 5+30 {
		t.Fatalf("expected default 30-day horizon, got %d points", len(points))
	}
}

func TestForecastAggregatesSameDay(t *testing.T) {
	e := NewDefaultEngine()

	expenses := []store.Expense{
		exp("2026-03-01", 5),
		exp("2026-03-01", 5),
		exp("2026-03-02", 10),
		exp("2026-03-02", 10),
		exp("2026-03-03", 30),
	}

	points, _ := e.ForecastSpending(expenses, 1)
	if len(points) != 4 {
		t.Fatalf("expected 3 historical + 1 forecast, got %d", len(points))
	}
	if points[0].Amount != 10 || points[1].Amount != 30 || points[2].Amount != 60 {
		t.Fatalf("cumulative aggregation wrong: %+v", points[:3])
	}
}

func TestForecastIgnoresExpenseTime(t *testing.T) {
	e := NewDefaultEngine()

	expenses := []store.Expense{
		{Date: day("2026-03-01").Add(9 * time.Hour), Amount: 10},
		{Date: day("2026-03-01").Add(21 * time.Hour), Amount: 10},
		{Date: day("2026-03-02"), Amount: 10},
		{Date: day("2026-03-03"), Amount: 10},
		{Date: day("2026-03-04"), Amount: 10},
	}

	points, _ := e.ForecastSpending(expenses, 1)
	// 4 distinct days despite 5 expenses.
	hist := 0
	for _, p := range points {
		if p.Kind == KindHistorical {
			hist++
		}
	}
	if hist != 4 {
		t.Fatalf("expected 4 historical days, got %d", hist)
	}
}

func TestLeastSquares(t *testing.T) {
	slope, intercept, ok := leastSquares([]float64{0, 1, 2}, []float64{1, 3, 5})
	if !ok {
		t.Fatal("fit should succeed")
	}
	if math.Abs(slope-2) > 1e-9 || math.Abs(intercept-1) > 1e-9 {
		t.Fatalf("expected y = 1 + 2x, got slope=%f intercept=%f", slope, intercept)
	}
}

func TestLeastSquaresDegenerate(t *testing.T) {
	_, _, ok := leastSquares([]float64{3, 3, 3}, []float64{1, 2, 3})
	if ok {
		t.Fatal("identical x values should fail the fit")
	}
}
