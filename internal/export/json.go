package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/elevate/internal/store"
)

type jsonExport struct {
	ExportedAt   string        `json:"exported_at"`
	SessionCount int           `json:"session_count"`
	ExpenseCount int           `json:"expense_count"`
	Sessions     []jsonSession `json:"sessions"`
	Expenses     []jsonExpense `json:"expenses"`
}

type jsonSession struct {
	ID         int64  `json:"id"`
	Date       string `json:"date"`
	Subject    string `json:"subject"`
	Topic      string `json:"topic"`
	Minutes    int    `json:"minutes"`
	Confidence int    `json:"confidence"`
	Notes      string `json:"notes,omitempty"`
	LoggedAt   string `json:"logged_at,omitempty"`
}

type jsonExpense struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

// ToJSON writes a combined dump of the study log and expense log.
func ToJSON(sessions []store.StudySession, expenses []store.Expense, path string) error {
	export := jsonExport{
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
		SessionCount: len(sessions),
		ExpenseCount: len(expenses),
	}

	for _, s := range sessions {
		loggedAt := ""
		if !s.LoggedAt.IsZero() {
			loggedAt = s.LoggedAt.UTC().Format(time.RFC3339)
		}
		export.Sessions = append(export.Sessions, jsonSession{
			ID:         s.ID,
			Date:       s.Date.Format(dateLayout),
			Subject:    s.Subject,
			Topic:      s.Topic,
			Minutes:    s.Minutes,
			Confidence: s.Confidence,
			Notes:      s.Notes,
			LoggedAt:   loggedAt,
		})
	}

	for _, e := range expenses {
		export.Expenses = append(export.Expenses, jsonExpense{
			ID:          e.ID,
			Date:        e.Date.Format(dateLayout),
			Category:    e.Category,
			Amount:      e.Amount,
			Description: e.Description,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
