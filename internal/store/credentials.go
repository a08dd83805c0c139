// ABOUTME: Password history and reset-token store operations.
// ABOUTME: Each user carries a chain of dated password rows; the open row is current.

package store

import (
	"database/sql"
	"fmt"
	"time"
)

type Password struct {
	ID      int64      `json:"id"`
	UserID  int64      `json:"user_id"`
	Content string     `json:"-"` // bcrypt hash, never serialized
	StartAt time.Time  `json:"start_at"`
	EndAt   *time.Time `json:"end_at,omitempty"`
}

type PasswordReset struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

func (s *Store) CreatePassword(p *Password) error {
	if p.StartAt.IsZero() {
		p.StartAt = time.Now().UTC()
	}
	res, err := s.db.Exec(
		"INSERT INTO passwords (user_id, content, start_at, end_at) VALUES (?, ?, ?, ?)",
		p.UserID, p.Content, p.StartAt, p.EndAt,
	)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

// ClosePasswords ends every open history row for a user. Called before a new
// password row is appended so exactly one row stays open.
func (s *Store) ClosePasswords(userID int64) error {
	_, err := s.db.Exec(
		"UPDATE passwords SET end_at = ? WHERE user_id = ? AND end_at IS NULL",
		time.Now().UTC(), userID,
	)
	return err
}

// ListPasswords returns history rows, optionally scoped to one user.
func (s *Store) ListPasswords(userID int64) ([]*Password, error) {
	query := "SELECT id, user_id, content, start_at, end_at FROM passwords"
	args := []any{}
	if userID > 0 {
		query += " WHERE user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY start_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passwords []*Password
	for rows.Next() {
		p := &Password{}
		var endAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.UserID, &p.Content, &p.StartAt, &endAt); err != nil {
			return nil, err
		}
		if endAt.Valid {
			p.EndAt = &endAt.Time
		}
		passwords = append(passwords, p)
	}
	return passwords, rows.Err()
}

func (s *Store) DeletePassword(id int64) error {
	res, err := s.db.Exec("DELETE FROM passwords WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "password", id)
}

func (s *Store) CreatePasswordReset(r *PasswordReset) error {
	_, err := s.db.Exec(
		"INSERT INTO password_resets (token, user_id, expires_at, used) VALUES (?, ?, ?, ?)",
		r.Token, r.UserID, r.ExpiresAt, r.Used,
	)
	return err
}

func (s *Store) GetPasswordReset(token string) (*PasswordReset, error) {
	r := &PasswordReset{}
	err := s.db.QueryRow(
		"SELECT token, user_id, expires_at, used FROM password_resets WHERE token = ?",
		token,
	).Scan(&r.Token, &r.UserID, &r.ExpiresAt, &r.Used)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("password reset: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Store) MarkPasswordResetUsed(token string) error {
	res, err := s.db.Exec("UPDATE password_resets SET used = 1 WHERE token = ?", token)
	if err != nil {
		return err
	}
	return requireRow(res, "password reset", token)
}
