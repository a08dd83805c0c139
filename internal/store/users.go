// ABOUTME: User store operations.
// ABOUTME: Handles CRUD and email lookup for user accounts.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	CreatedAt time.Time `json:"created_at"`
}

func (s *Store) CreateUser(u *User) error {
	res, err := s.db.Exec(
		"INSERT INTO users (name, email, password) VALUES (?, ?, ?)",
		u.Name, u.Email, u.Password,
	)
	if err != nil {
		return err
	}
	u.ID, err = res.LastInsertId()
	return err
}

func (s *Store) GetUser(id int64) (*User, error) {
	u := &User{}
	err := s.db.QueryRow(
		"SELECT id, name, email, COALESCE(password, ''), created_at FROM users WHERE id = ?",
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) GetUserByEmail(email string) (*User, error) {
	u := &User{}
	err := s.db.QueryRow(
		"SELECT id, name, email, COALESCE(password, ''), created_at FROM users WHERE email = ?",
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) ListUsers() ([]*User, error) {
	rows, err := s.db.Query(
		"SELECT id, name, email, COALESCE(password, ''), created_at FROM users ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u := &User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) UpdateUser(u *User) error {
	res, err := s.db.Exec(
		"UPDATE users SET name = ?, email = ? WHERE id = ?",
		u.Name, u.Email, u.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "user", u.ID)
}

// UpdateUserPassword replaces only the stored hash.
func (s *Store) UpdateUserPassword(id int64, hash string) error {
	res, err := s.db.Exec("UPDATE users SET password = ? WHERE id = ?", hash, id)
	if err != nil {
		return err
	}
	return requireRow(res, "user", id)
}

func (s *Store) DeleteUser(id int64) error {
	res, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "user", id)
}
