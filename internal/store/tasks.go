package store

import (
	"fmt"
	"time"
)

func (s *Store) CreateTask(title string, deadline time.Time) (*Task, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO tasks (title, deadline, status, created_at) VALUES (?, ?, ?, ?)`,
		title, deadline.Format(dateLayout), TaskPending, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTask(id)
}

func (s *Store) GetTask(id int64) (*Task, error) {
	t := &Task{}
	var deadline, createdAt string
	err := s.db.QueryRow(
		`SELECT id, title, deadline, status, created_at FROM tasks WHERE id = ?`, id,
	).Scan(&t.ID, &t.Title, &deadline, &t.Status, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	t.Deadline, _ = time.Parse(dateLayout, deadline)
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return t, nil
}

func (s *Store) ListTasks(includeCompleted bool) ([]Task, error) {
	query := `SELECT id, title, deadline, status, created_at FROM tasks`
	if !includeCompleted {
		query += ` WHERE status = '` + TaskPending + `'`
	}
	query += ` ORDER BY deadline, id`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var deadline, createdAt string
		if err := rows.Scan(&t.ID, &t.Title, &deadline, &t.Status, &createdAt); err != nil {
			return nil, err
		}
		t.Deadline, _ = time.Parse(dateLayout, deadline)
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) SetTaskStatus(id int64, status string) error {
	_, err := s.db.Exec(`UPDATE tasks SET status = ? WHERE id = ?`, status, id)
	return err
}

func (s *Store) DeleteTask(id int64) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	return err
}

// TaskCompletionRate returns the completed fraction in [0,1] and total count.
func (s *Store) TaskCompletionRate() (float64, int, error) {
	var total, completed int
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(status = 'completed'), 0) FROM tasks`,
	).Scan(&total, &completed)
	if err != nil {
		return 0, 0, err
	}
	if total == 0 {
		return 0, 0, nil
	}
	return float64(completed) / float64(total), total, nil
}
