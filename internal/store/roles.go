// ABOUTME: Role and permission store operations.
// ABOUTME: Handles CRUD for roles and the permission catalog.

package store

import (
	"database/sql"
	"fmt"
)

type Role struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Permission struct {
	ID     int64  `json:"id"`
	URL    string `json:"url"`
	Method string `json:"method"`
}

func (s *Store) CreateRole(r *Role) error {
	res, err := s.db.Exec(
		"INSERT INTO roles (name, description) VALUES (?, ?)",
		r.Name, r.Description,
	)
	if err != nil {
		return err
	}
	r.ID, err = res.LastInsertId()
	return err
}

func (s *Store) GetRole(id int64) (*Role, error) {
	r := &Role{}
	err := s.db.QueryRow(
		"SELECT id, name, COALESCE(description, '') FROM roles WHERE id = ?",
		id,
	).Scan(&r.ID, &r.Name, &r.Description)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("role %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Store) ListRoles() ([]*Role, error) {
	rows, err := s.db.Query("SELECT id, name, COALESCE(description, '') FROM roles ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*Role
	for rows.Next() {
		r := &Role{}
		if err := rows.Scan(&r.ID, &r.Name, &r.Description); err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

func (s *Store) UpdateRole(r *Role) error {
	res, err := s.db.Exec(
		"UPDATE roles SET name = ?, description = ? WHERE id = ?",
		r.Name, r.Description, r.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "role", r.ID)
}

func (s *Store) DeleteRole(id int64) error {
	res, err := s.db.Exec("DELETE FROM roles WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "role", id)
}

func (s *Store) CreatePermission(p *Permission) error {
	res, err := s.db.Exec(
		"INSERT INTO permissions (url, method) VALUES (?, ?)",
		p.URL, p.Method,
	)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

func (s *Store) GetPermission(id int64) (*Permission, error) {
	p := &Permission{}
	err := s.db.QueryRow(
		"SELECT id, url, method FROM permissions WHERE id = ?",
		id,
	).Scan(&p.ID, &p.URL, &p.Method)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("permission %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) ListPermissions() ([]*Permission, error) {
	rows, err := s.db.Query("SELECT id, url, method FROM permissions ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []*Permission
	for rows.Next() {
		p := &Permission{}
		if err := rows.Scan(&p.ID, &p.URL, &p.Method); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

func (s *Store) UpdatePermission(p *Permission) error {
	res, err := s.db.Exec(
		"UPDATE permissions SET url = ?, method = ? WHERE id = ?",
		p.URL, p.Method, p.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "permission", p.ID)
}

func (s *Store) DeletePermission(id int64) error {
	res, err := s.db.Exec("DELETE FROM permissions WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "permission", id)
}
