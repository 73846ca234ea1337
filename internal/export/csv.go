package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/elevate/internal/store"
)

const dateLayout = "2006-01-02"

func SessionsToCSV(sessions []store.StudySession, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Date", "Subject", "Topic", "Minutes", "Confidence", "Notes", "Logged At"}); err != nil {
		return err
	}

	for _, s := range sessions {
		loggedAt := ""
		if !s.LoggedAt.IsZero() {
			loggedAt = s.LoggedAt.UTC().Format(time.RFC3339)
		}
		row := []string{
			fmt.Sprintf("%d", s.ID),
			s.Date.Format(dateLayout),
			s.Subject,
			s.Topic,
			fmt.Sprintf("%d", s.Minutes),
			fmt.Sprintf("%d", s.Confidence),
			s.Notes,
			loggedAt,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func ExpensesToCSV(expenses []store.Expense, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Date", "Category", "Amount", "Description"}); err != nil {
		return err
	}

	for _, e := range expenses {
		row := []string{
			fmt.Sprintf("%d", e.ID),
			e.Date.Format(dateLayout),
			e.Category,
			fmt.Sprintf("%.2f", e.Amount),
			e.Description,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
