package store

import "time"

type StudySession struct {
	ID         int64
	Date       time.Time // calendar day, midnight UTC
	Subject    string
	Topic      string
	Minutes    int
	Confidence int // 1-5
	Notes      string
	LoggedAt   time.Time
}

type Expense struct {
	ID          int64
	Amount      float64
	Category    string
	Date        time.Time
	Description string
	CreatedAt   time.Time
}

type Task struct {
	ID        int64
	Title     string
	Deadline  time.Time
	Status    string // pending, completed
	CreatedAt time.Time
}

type Setting struct {
	Key   string
	Value string
}

// SessionFilter is used to filter study sessions in queries.
type SessionFilter struct {
	Subject *string
	From    *time.Time
	To      *time.Time
	Limit   int
}

// CategoryTotal represents aggregated spending per expense category.
type CategoryTotal struct {
	Category string
	Total    float64
	Count    int
}

const (
	TaskPending   = "pending"
	TaskCompleted = "completed"
)

// ExpenseCategories are the selectable expense categories.
var ExpenseCategories = []string{"Food", "Transport", "Utilities", "Entertainment", "Shopping", "Health", "Other"}
