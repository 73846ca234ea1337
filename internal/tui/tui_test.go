package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/elevate/internal/analytics"
	"github.com/sadopc/elevate/internal/store"
)

func testEngine() *analytics.Engine {
	return analytics.NewDefaultEngine()
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// ============================================================
// Helper functions
// ============================================================

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0 min"},
		{45, "45 min"},
		{60, "1h"},
		{90, "1h 30m"},
		{120, "2h"},
		{1445, "24h 5m"},
	}
	for _, tt := range tests {
		got := formatMinutes(tt.minutes)
		if got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(0, 10); got != strings.Repeat("░", 10) {
		t.Errorf("empty bar = %q", got)
	}
	if got := progressBar(100, 10); got != strings.Repeat("█", 10) {
		t.Errorf("full bar = %q", got)
	}
	got := progressBar(50, 10)
	if strings.Count(got, "█") != 5 || strings.Count(got, "░") != 5 {
		t.Errorf("half bar = %q", got)
	}
	// Out-of-range input clamps instead of panicking.
	if got := progressBar(150, 4); got != strings.Repeat("█", 4) {
		t.Errorf("overflow bar = %q", got)
	}
	if got := progressBar(-10, 4); got != strings.Repeat("░", 4) {
		t.Errorf("negative bar = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer string", 8, "a longe…"},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.n)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

// ============================================================
// Form validators
// ============================================================

func TestValidateRequired(t *testing.T) {
	v := validateRequired("subject")
	if err := v(""); err == nil {
		t.Fatal("empty string should fail")
	}
	if err := v("   "); err == nil {
		t.Fatal("whitespace should fail")
	}
	if err := v("Math"); err != nil {
		t.Fatalf("valid value failed: %v", err)
	}
}

func TestValidateMinutes(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"30", true},
		{"1", true},
		{"1440", true},
		{"0", false},
		{"1441", false},
		{"-5", false},
		{"abc", false},
		{"", false},
		{"30.5", false},
	}
	for _, tt := range tests {
		err := validateMinutes(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("validateMinutes(%q) error = %v, want ok = %v", tt.in, err, tt.ok)
		}
	}
}

func TestValidateDate(t *testing.T) {
	if err := validateDate("2026-03-10"); err != nil {
		t.Fatalf("valid date failed: %v", err)
	}
	if err := validateDate(" 2026-03-10 "); err != nil {
		t.Fatalf("trimmed date failed: %v", err)
	}
	for _, bad := range []string{"10-03-2026", "2026/03/10", "not a date", ""} {
		if err := validateDate(bad); err == nil {
			t.Errorf("validateDate(%q) should fail", bad)
		}
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"100", true},
		{"250.50", true},
		{"0.01", true},
		{"0", false},
		{"-10", false},
		{"abc", false},
		{"", false},
	}
	for _, tt := range tests {
		err := validateAmount(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("validateAmount(%q) error = %v, want ok = %v", tt.in, err, tt.ok)
		}
	}
}

func TestValidateIntRange(t *testing.T) {
	v := validateIntRange("weekly goal", 1, 7)
	if err := v("5"); err != nil {
		t.Fatalf("in-range value failed: %v", err)
	}
	if err := v("0"); err == nil {
		t.Fatal("below range should fail")
	}
	if err := v("8"); err == nil {
		t.Fatal("above range should fail")
	}
	if err := v("x"); err == nil {
		t.Fatal("non-numeric should fail")
	}
}

func TestConfidenceOptions(t *testing.T) {
	opts := confidenceOptions()
	if len(opts) != 5 {
		t.Fatalf("expected 5 confidence options, got %d", len(opts))
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 6 {
		t.Fatalf("expected 6 view names, got %d", len(viewNames))
	}
	expected := []string{"Dashboard", "Sessions", "Expenses", "Tasks", "Insights", "Settings"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewDashboard != 0 || viewSessions != 1 || viewExpenses != 2 ||
		viewTasks != 3 || viewInsights != 4 || viewSettings != 5 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.state != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicker {
		t.Fatal("export picker should be hidden by default")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.View() != "Loading..." {
		t.Fatalf("unsized app should render Loading..., got %q", app.View())
	}
}

func loadApp(t *testing.T, app *App) {
	t.Helper()
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	for _, reload := range []func() tea.Cmd{
		app.dashboard.reload,
		app.sessions.reload,
		app.expenses.reload,
		app.tasks.reload,
		app.insights.reload,
		app.settings.reload,
	} {
		if cmd := reload(); cmd != nil {
			app.Update(cmd())
		}
	}
}

func TestAppViewStatesRender(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	loadApp(t, app)

	for v := viewDashboard; v <= viewSettings; v++ {
		app.state = v
		output := app.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppViewStatesRenderWithData(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 10; i++ {
		d := testDate(t, "2026-03-01").AddDate(0, 0, i)
		if _, err := s.CreateSession(d, "Math", "Algebra", 30+i, 1+i%5, ""); err != nil {
			t.Fatal(err)
		}
		if _, err := s.CreateExpense(100+float64(i)*10, "Food", d, "meals"); err != nil {
			t.Fatal(err)
		}
	}
	s.CreateTask("Revise calculus", testDate(t, "2026-03-20"))

	app := NewApp(s)
	loadApp(t, app)

	for v := viewDashboard; v <= viewSettings; v++ {
		app.state = v
		if app.View() == "" {
			t.Fatalf("view %d rendered empty with data", v)
		}
	}
}

func TestAppSwitchView(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	loadApp(t, app)

	app.Update(keyRune('3'))
	if app.state != viewExpenses {
		t.Fatalf("pressing 3 should switch to expenses, got %d", app.state)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if app.state != viewTasks {
		t.Fatalf("tab should advance to tasks, got %d", app.state)
	}
}

func TestAppTabWrapsAround(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	loadApp(t, app)

	app.state = viewSettings
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if app.state != viewDashboard {
		t.Fatalf("tab from last view should wrap to dashboard, got %d", app.state)
	}
}

func TestAppExportPicker(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	loadApp(t, app)

	app.Update(keyRune('e'))
	if !app.exportPicker {
		t.Fatal("e should open the export picker")
	}

	view := app.View()
	for _, opt := range exportOptions {
		if !strings.Contains(view, opt) {
			t.Fatalf("picker view missing option %q", opt)
		}
	}

	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	if app.exportCursor != 1 {
		t.Fatalf("down should move picker cursor, got %d", app.exportCursor)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.exportPicker {
		t.Fatal("esc should close the export picker")
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	loadApp(t, app)

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	loadApp(t, app)

	app.Update(statusMsg{text: "saved", isError: false})
	if !strings.Contains(app.renderFooter(), "saved") {
		t.Fatal("footer should contain status message")
	}

	app.Update(exportDoneMsg{path: "/tmp/out.csv"})
	if !strings.Contains(app.renderFooter(), "/tmp/out.csv") {
		t.Fatal("footer should mention the export path")
	}
}

// ============================================================
// Sessions model
// ============================================================

func TestSessionsCursorMovement(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 3; i++ {
		s.CreateSession(testDate(t, "2026-03-01").AddDate(0, 0, i), "Math", "Algebra", 30, 3, "")
	}

	m := newSessionsModel(s)
	m.update(m.reload()())

	if len(m.sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(m.sessions))
	}

	m.update(tea.KeyMsg{Type: tea.KeyDown})
	m.update(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}
	m.update(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Fatal("cursor should not move past the end")
	}
	m.update(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
}

func TestSessionsFormOpenCancel(t *testing.T) {
	s := newTestStore(t)
	m := newSessionsModel(s)

	m.update(keyRune('n'))
	if !m.formActive || m.form == nil {
		t.Fatal("n should open the log form")
	}
	if m.formConfidence != 3 {
		t.Fatalf("confidence should default to 3, got %d", m.formConfidence)
	}
	if err := validateDate(m.formDate); err != nil {
		t.Fatalf("default date should be valid: %v", err)
	}

	m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.formActive || m.form != nil {
		t.Fatal("esc should cancel the form")
	}
}

func TestSessionsDelete(t *testing.T) {
	s := newTestStore(t)
	s.CreateSession(testDate(t, "2026-03-01"), "Math", "Algebra", 30, 3, "")

	m := newSessionsModel(s)
	m.update(m.reload()())

	cmd := m.update(keyRune('d'))
	if cmd == nil {
		t.Fatal("delete should trigger a reload")
	}
	m.update(cmd())
	if len(m.sessions) != 0 {
		t.Fatalf("expected 0 sessions after delete, got %d", len(m.sessions))
	}
}

// ============================================================
// Expenses model
// ============================================================

func TestExpensesLoadsForecastMessage(t *testing.T) {
	s := newTestStore(t)
	m := newExpensesModel(s, testEngine())
	m.update(m.reload()())

	if len(m.forecast) != 0 {
		t.Fatal("empty log should produce no forecast series")
	}
	if m.message == "" {
		t.Fatal("empty log should still produce an explanatory message")
	}
	if m.currency != "₹" {
		t.Fatalf("default currency = %q", m.currency)
	}
}

func TestExpensesForecastWithHistory(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 8; i++ {
		d := testDate(t, "2026-03-01").AddDate(0, 0, i)
		s.CreateExpense(100, "Food", d, "")
	}

	m := newExpensesModel(s, testEngine())
	m.setSize(100, 40)
	m.update(m.reload()())

	if len(m.forecast) == 0 {
		t.Fatal("expected a forecast series")
	}
	// 8 history days + the configured 30-day default horizon.
	if len(m.forecast) != 38 {
		t.Fatalf("expected 38 forecast points, got %d", len(m.forecast))
	}

	m.showForecast = true
	view := m.view()
	if !strings.Contains(view, "Spending Forecast") {
		t.Fatal("forecast view missing title")
	}
}

func TestExpensesToggleForecastView(t *testing.T) {
	s := newTestStore(t)
	m := newExpensesModel(s, testEngine())
	m.update(m.reload()())

	m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.showForecast {
		t.Fatal("enter should switch to the forecast view")
	}
	m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.showForecast {
		t.Fatal("enter again should switch back")
	}
}

func TestExpensesFormOpenCancel(t *testing.T) {
	s := newTestStore(t)
	m := newExpensesModel(s, testEngine())

	m.update(keyRune('n'))
	if !m.formActive || m.form == nil {
		t.Fatal("n should open the expense form")
	}
	if m.formCategory != store.ExpenseCategories[0] {
		t.Fatalf("category should default to %q, got %q", store.ExpenseCategories[0], m.formCategory)
	}

	m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.formActive {
		t.Fatal("esc should cancel the form")
	}
}

// ============================================================
// Tasks model
// ============================================================

func TestTasksToggleStatus(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.CreateTask("Revise", testDate(t, "2026-03-20"))

	m := newTasksModel(s)
	m.showCompleted = true
	m.update(m.reload()())

	if len(m.tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(m.tasks))
	}

	cmd := m.update(tea.KeyMsg{Type: tea.KeySpace})
	if cmd == nil {
		t.Fatal("toggle should trigger a reload")
	}
	m.update(cmd())

	got, err := s.GetTask(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != store.TaskCompleted {
		t.Fatalf("status = %q, want completed", got.Status)
	}

	// Toggle back.
	cmd = m.update(tea.KeyMsg{Type: tea.KeySpace})
	m.update(cmd())
	got, _ = s.GetTask(task.ID)
	if got.Status != store.TaskPending {
		t.Fatalf("status = %q, want pending", got.Status)
	}
}

func TestTasksCompletedHiddenByDefault(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.CreateTask("Done already", testDate(t, "2026-03-20"))
	s.SetTaskStatus(task.ID, store.TaskCompleted)
	s.CreateTask("Still open", testDate(t, "2026-03-21"))

	m := newTasksModel(s)
	m.update(m.reload()())
	if len(m.tasks) != 1 {
		t.Fatalf("expected 1 pending task, got %d", len(m.tasks))
	}

	// Enter reveals completed tasks.
	cmd := m.update(tea.KeyMsg{Type: tea.KeyEnter})
	m.update(cmd())
	if len(m.tasks) != 2 {
		t.Fatalf("expected 2 tasks with completed shown, got %d", len(m.tasks))
	}
}

func TestTasksFormOpenCancel(t *testing.T) {
	s := newTestStore(t)
	m := newTasksModel(s)

	m.update(keyRune('n'))
	if !m.formActive || m.form == nil {
		t.Fatal("n should open the task form")
	}
	if err := validateDate(m.formDeadline); err != nil {
		t.Fatalf("default deadline should be valid: %v", err)
	}

	m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.formActive {
		t.Fatal("esc should cancel the form")
	}
}

// ============================================================
// Settings model
// ============================================================

func TestSettingsLoadsDefaults(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)
	m.update(m.reload()())

	if m.get("currency") != "₹" {
		t.Fatalf("currency = %q", m.get("currency"))
	}
	if m.get("weekly_goal") != "5" {
		t.Fatalf("weekly_goal = %q", m.get("weekly_goal"))
	}
	if m.get("forecast_days") != "30" {
		t.Fatalf("forecast_days = %q", m.get("forecast_days"))
	}
	if m.get("week_start") != "monday" {
		t.Fatalf("week_start = %q", m.get("week_start"))
	}
}

func TestSettingsFormPrefilled(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)
	m.update(m.reload()())

	m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.formActive || m.form == nil {
		t.Fatal("enter should open the settings form")
	}
	if m.formCurrency != "₹" || m.formWeeklyGoal != "5" {
		t.Fatalf("form not prefilled: currency=%q goal=%q", m.formCurrency, m.formWeeklyGoal)
	}

	m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.formActive {
		t.Fatal("esc should cancel the form")
	}
}

// ============================================================
// Dashboard model
// ============================================================

func TestDashboardLoadsEmpty(t *testing.T) {
	s := newTestStore(t)
	m := newDashboardModel(s, testEngine())
	m.update(m.reload()())

	if !m.loaded {
		t.Fatal("dashboard should be loaded")
	}
	if m.data.err != nil {
		t.Fatalf("unexpected error: %v", m.data.err)
	}
	if m.data.streak != 0 || m.data.totalXP != 0 {
		t.Fatalf("empty log should have zero streak and XP: %+v", m.data)
	}
	if m.data.progress.Level != 1 {
		t.Fatalf("level = %d, want 1", m.data.progress.Level)
	}
	if len(m.data.messages) == 0 {
		t.Fatal("motivational messages should never be empty")
	}
}

func TestDashboardLoadsWithSessions(t *testing.T) {
	s := newTestStore(t)
	today := analytics.Day(time.Now())
	s.CreateSession(today, "Math", "Algebra", 60, 4, "")
	s.CreateSession(today.AddDate(0, 0, -1), "Math", "Algebra", 30, 3, "")

	m := newDashboardModel(s, testEngine())
	m.update(m.reload()())

	if m.data.streak != 2 {
		t.Fatalf("streak = %d, want 2", m.data.streak)
	}
	if m.data.todaySessions != 1 || m.data.todayMinutes != 60 {
		t.Fatalf("today = %d sessions / %d min", m.data.todaySessions, m.data.todayMinutes)
	}
	if m.data.totalXP == 0 {
		t.Fatal("XP should accumulate")
	}
	if len(m.data.achievements) == 0 {
		t.Fatal("first session achievement should be earned")
	}
	if m.data.weekDays != 2 {
		t.Fatalf("weekDays = %d, want 2", m.data.weekDays)
	}

	m.setSize(120, 40)
	if m.view() == "" {
		t.Fatal("dashboard view rendered empty")
	}
}

// ============================================================
// Insights model
// ============================================================

func TestInsightsLoadsEmpty(t *testing.T) {
	s := newTestStore(t)
	m := newInsightsModel(s, testEngine())
	m.update(m.reload()())

	if !m.loaded {
		t.Fatal("insights should be loaded")
	}
	if len(m.data.recommendations) == 0 {
		t.Fatal("recommendations should never be empty")
	}
	m.setSize(100, 40)
	if m.view() == "" {
		t.Fatal("insights view rendered empty")
	}
}

func TestInsightsWeekMinutes(t *testing.T) {
	s := newTestStore(t)
	today := analytics.Day(time.Now())
	s.CreateSession(today, "Math", "Algebra", 45, 3, "")
	s.CreateSession(today.AddDate(0, 0, -2), "Math", "Algebra", 30, 3, "")
	s.CreateSession(today.AddDate(0, 0, -10), "Math", "Algebra", 99, 3, "")

	m := newInsightsModel(s, testEngine())
	m.update(m.reload()())

	if m.data.weekMinutes[6] != 45 {
		t.Fatalf("today's minutes = %d, want 45", m.data.weekMinutes[6])
	}
	if m.data.weekMinutes[4] != 30 {
		t.Fatalf("minutes two days ago = %d, want 30", m.data.weekMinutes[4])
	}
	total := 0
	for _, v := range m.data.weekMinutes {
		total += v
	}
	if total != 75 {
		t.Fatalf("sessions outside the window should be excluded, total = %d", total)
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test — just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"subtitle", func() string { return subtitleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"secondary", func() string { return secondaryStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
	}

	for _, s := range styles {
		result := s.fn()
		if result == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
