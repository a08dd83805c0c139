// ABOUTME: Relation store operations for user-role and role-permission links.
// ABOUTME: Supports parent-scoped listings used by the assignment screens.

package store

import (
	"database/sql"
	"fmt"
	"time"
)

type UserRole struct {
	ID      int64      `json:"id"`
	UserID  int64      `json:"user_id"`
	RoleID  int64      `json:"role_id"`
	StartAt time.Time  `json:"start_at"`
	EndAt   *time.Time `json:"end_at,omitempty"`
}

type RolePermission struct {
	ID           int64 `json:"id"`
	RoleID       int64 `json:"role_id"`
	PermissionID int64 `json:"permission_id"`
}

func (s *Store) CreateUserRole(ur *UserRole) error {
	if ur.StartAt.IsZero() {
		ur.StartAt = time.Now().UTC()
	}
	res, err := s.db.Exec(
		"INSERT INTO user_roles (user_id, role_id, start_at, end_at) VALUES (?, ?, ?, ?)",
		ur.UserID, ur.RoleID, ur.StartAt, ur.EndAt,
	)
	if err != nil {
		return err
	}
	ur.ID, err = res.LastInsertId()
	return err
}

func (s *Store) GetUserRole(id int64) (*UserRole, error) {
	ur := &UserRole{}
	var endAt sql.NullTime
	err := s.db.QueryRow(
		"SELECT id, user_id, role_id, start_at, end_at FROM user_roles WHERE id = ?",
		id,
	).Scan(&ur.ID, &ur.UserID, &ur.RoleID, &ur.StartAt, &endAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user-role %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if endAt.Valid {
		ur.EndAt = &endAt.Time
	}
	return ur, nil
}

// ListUserRoles returns all assignments, optionally filtered by user or role.
// A zero id means "no filter" for that column.
func (s *Store) ListUserRoles(userID, roleID int64) ([]*UserRole, error) {
	query := "SELECT id, user_id, role_id, start_at, end_at FROM user_roles WHERE 1=1"
	args := []any{}
	if userID > 0 {
		query += " AND user_id = ?"
		args = append(args, userID)
	}
	if roleID > 0 {
		query += " AND role_id = ?"
		args = append(args, roleID)
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urs []*UserRole
	for rows.Next() {
		ur := &UserRole{}
		var endAt sql.NullTime
		if err := rows.Scan(&ur.ID, &ur.UserID, &ur.RoleID, &ur.StartAt, &endAt); err != nil {
			return nil, err
		}
		if endAt.Valid {
			ur.EndAt = &endAt.Time
		}
		urs = append(urs, ur)
	}
	return urs, rows.Err()
}

func (s *Store) UpdateUserRole(ur *UserRole) error {
	res, err := s.db.Exec(
		"UPDATE user_roles SET user_id = ?, role_id = ?, start_at = ?, end_at = ? WHERE id = ?",
		ur.UserID, ur.RoleID, ur.StartAt, ur.EndAt, ur.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "user-role", ur.ID)
}

func (s *Store) DeleteUserRole(id int64) error {
	res, err := s.db.Exec("DELETE FROM user_roles WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "user-role", id)
}

func (s *Store) CreateRolePermission(rp *RolePermission) error {
	res, err := s.db.Exec(
		"INSERT INTO role_permissions (role_id, permission_id) VALUES (?, ?)",
		rp.RoleID, rp.PermissionID,
	)
	if err != nil {
		return err
	}
	rp.ID, err = res.LastInsertId()
	return err
}

func (s *Store) GetRolePermission(id int64) (*RolePermission, error) {
	rp := &RolePermission{}
	err := s.db.QueryRow(
		"SELECT id, role_id, permission_id FROM role_permissions WHERE id = ?",
		id,
	).Scan(&rp.ID, &rp.RoleID, &rp.PermissionID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("role-permission %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return rp, nil
}

// ListRolePermissions returns all grants, optionally filtered by role.
func (s *Store) ListRolePermissions(roleID int64) ([]*RolePermission, error) {
	query := "SELECT id, role_id, permission_id FROM role_permissions"
	args := []any{}
	if roleID > 0 {
		query += " WHERE role_id = ?"
		args = append(args, roleID)
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rps []*RolePermission
	for rows.Next() {
		rp := &RolePermission{}
		if err := rows.Scan(&rp.ID, &rp.RoleID, &rp.PermissionID); err != nil {
			return nil, err
		}
		rps = append(rps, rp)
	}
	return rps, rows.Err()
}

func (s *Store) DeleteRolePermission(id int64) error {
	res, err := s.db.Exec("DELETE FROM role_permissions WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "role-permission", id)
}
