// ABOUTME: SQL helper functions shared by the entity stores.
// ABOUTME: Row-count checks and LIKE-pattern escaping.

package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// requireRow converts a zero-row Exec result into ErrNotFound so update and
// delete callers can distinguish "missing" from "failed".
func requireRow(res sql.Result, entity string, id any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %v: %w", entity, id, ErrNotFound)
	}
	return nil
}

// escapeSQLLike escapes SQL LIKE pattern special characters.
// The backslash must be escaped first to avoid double-escaping.
func escapeSQLLike(pattern string) string {
	pattern = strings.ReplaceAll(pattern, "\\", "\\\\")
	pattern = strings.ReplaceAll(pattern, "%", "\\%")
	pattern = strings.ReplaceAll(pattern, "_", "\\_")
	return pattern
}
