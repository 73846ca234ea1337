package tui

import "fmt"

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewSessions
	viewExpenses
	viewTasks
	viewInsights
	viewSettings
)

var viewNames = []string{"Dashboard", "Sessions", "Expenses", "Tasks", "Insights", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

const dateLayout = "2006-01-02"

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// progressBar renders a simple filled/empty bar of the given width.
func progressBar(percent float64, width int) string {
	if width < 1 {
		width = 1
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}
