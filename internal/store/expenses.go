package store

import (
	"fmt"
	"time"
)

func (s *Store) CreateExpense(amount float64, category string, date time.Time, description string) (*Expense, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO expenses (amount, category, date, description, created_at) VALUES (?, ?, ?, ?, ?)`,
		amount, category, date.Format(dateLayout), description, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetExpense(id)
}

func (s *Store) GetExpense(id int64) (*Expense, error) {
	e := &Expense{}
	var date, createdAt string
	err := s.db.QueryRow(
		`SELECT id, amount, category, date, description, created_at FROM expenses WHERE id = ?`, id,
	).Scan(&e.ID, &e.Amount, &e.Category, &date, &e.Description, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get expense %d: %w", id, err)
	}
	e.Date, _ = time.Parse(dateLayout, date)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return e, nil
}

func (s *Store) ListExpenses() ([]Expense, error) {
	rows, err := s.db.Query(
		`SELECT id, amount, category, date, description, created_at FROM expenses ORDER BY date, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		var e Expense
		var date, createdAt string
		if err := rows.Scan(&e.ID, &e.Amount, &e.Category, &date, &e.Description, &createdAt); err != nil {
			return nil, err
		}
		e.Date, _ = time.Parse(dateLayout, date)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (s *Store) DeleteExpense(id int64) error {
	_, err := s.db.Exec(`DELETE FROM expenses WHERE id = ?`, id)
	return err
}

// CategoryTotals returns total spend per category, largest first.
func (s *Store) CategoryTotals() ([]CategoryTotal, error) {
	rows, err := s.db.Query(`
		SELECT category, COALESCE(SUM(amount), 0), COUNT(*)
		FROM expenses
		GROUP BY category
		ORDER BY SUM(amount) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total, &ct.Count); err != nil {
			return nil, err
		}
		totals = append(totals, ct)
	}
	return totals, rows.Err()
}

// TotalSpend returns the sum of all expense amounts.
func (s *Store) TotalSpend() (float64, error) {
	var total float64
	err := s.db.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM expenses`).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}
