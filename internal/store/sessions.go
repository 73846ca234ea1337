package store

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

func (s *Store) CreateSession(date time.Time, subject, topic string, minutes, confidence int, notes string) (*StudySession, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO study_sessions (date, subject, topic, minutes, confidence, notes, logged_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		date.Format(dateLayout), subject, topic, minutes, confidence, notes, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetSession(id)
}

func (s *Store) GetSession(id int64) (*StudySession, error) {
	sess := &StudySession{}
	var date, loggedAt string
	err := s.db.QueryRow(
		`SELECT id, date, subject, topic, minutes, confidence, notes, logged_at
		 FROM study_sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &date, &sess.Subject, &sess.Topic, &sess.Minutes, &sess.Confidence, &sess.Notes, &loggedAt)
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", id, err)
	}
	sess.Date, _ = time.Parse(dateLayout, date)
	sess.LoggedAt, _ = time.Parse(time.RFC3339, loggedAt)
	return sess, nil
}

func (s *Store) ListSessions(f SessionFilter) ([]StudySession, error) {
	query := `SELECT id, date, subject, topic, minutes, confidence, notes, logged_at FROM study_sessions WHERE 1=1`
	var args []any

	if f.Subject != nil {
		query += ` AND subject = ?`
		args = append(args, *f.Subject)
	}
	if f.From != nil {
		query += ` AND date >= ?`
		args = append(args, f.From.Format(dateLayout))
	}
	if f.To != nil {
		query += ` AND date < ?`
		args = append(args, f.To.Format(dateLayout))
	}
	query += ` ORDER BY date, id`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []StudySession
	for rows.Next() {
		var sess StudySession
		var date, loggedAt string
		if err := rows.Scan(&sess.ID, &date, &sess.Subject, &sess.Topic, &sess.Minutes, &sess.Confidence, &sess.Notes, &loggedAt); err != nil {
			return nil, err
		}
		sess.Date, _ = time.Parse(dateLayout, date)
		sess.LoggedAt, _ = time.Parse(time.RFC3339, loggedAt)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func (s *Store) UpdateSession(id int64, date time.Time, subject, topic string, minutes, confidence int, notes string) error {
	_, err := s.db.Exec(
		`UPDATE study_sessions SET date = ?, subject = ?, topic = ?, minutes = ?, confidence = ?, notes = ? WHERE id = ?`,
		date.Format(dateLayout), subject, topic, minutes, confidence, notes, id,
	)
	return err
}

func (s *Store) DeleteSession(id int64) error {
	_, err := s.db.Exec(`DELETE FROM study_sessions WHERE id = ?`, id)
	return err
}

// SessionDates returns the distinct study dates in ascending order.
func (s *Store) SessionDates() ([]time.Time, error) {
	rows, err := s.db.Query(`SELECT DISTINCT date FROM study_sessions ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("session dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		t, _ := time.Parse(dateLayout, d)
		dates = append(dates, t)
	}
	return dates, rows.Err()
}

// TotalStudyMinutes returns the sum of all session durations.
func (s *Store) TotalStudyMinutes() (int64, error) {
	var total int64
	err := s.db.QueryRow(`SELECT COALESCE(SUM(minutes), 0) FROM study_sessions`).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}
