// ABOUTME: Session store operations.
// ABOUTME: Tracks issued sessions per user with expiry and state.

package store

import (
	"database/sql"
	"fmt"
	"time"
)

const (
	SessionActive  = "active"
	SessionRevoked = "revoked"
)

type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	State     string    `json:"state"`
}

func (s *Store) CreateSession(sess *Session) error {
	if sess.State == "" {
		sess.State = SessionActive
	}
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, user_id, token, expires_at, state) VALUES (?, ?, ?, ?, ?)",
		sess.ID, sess.UserID, sess.Token, sess.ExpiresAt, sess.State,
	)
	return err
}

func (s *Store) GetSession(id string) (*Session, error) {
	sess := &Session{}
	err := s.db.QueryRow(
		"SELECT id, user_id, token, expires_at, state FROM sessions WHERE id = ?",
		id,
	).Scan(&sess.ID, &sess.UserID, &sess.Token, &sess.ExpiresAt, &sess.State)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// ListSessions returns all sessions, optionally filtered by user.
func (s *Store) ListSessions(userID int64) ([]*Session, error) {
	query := "SELECT id, user_id, token, expires_at, state FROM sessions"
	args := []any{}
	if userID > 0 {
		query += " WHERE user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY expires_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess := &Session{}
		if err := rows.Scan(&sess.ID, &sess.UserID, &sess.Token, &sess.ExpiresAt, &sess.State); err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func (s *Store) UpdateSessionState(id, state string) error {
	res, err := s.db.Exec("UPDATE sessions SET state = ? WHERE id = ?", state, id)
	if err != nil {
		return err
	}
	return requireRow(res, "session", id)
}

func (s *Store) DeleteSession(id string) error {
	res, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "session", id)
}
