// ABOUTME: Security question and answer store operations.
// ABOUTME: Questions form a shared catalog; answers belong to one user each.

package store

import (
	"database/sql"
	"fmt"
)

type SecurityQuestion struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Answer struct {
	ID                 int64  `json:"id"`
	UserID             int64  `json:"user_id"`
	SecurityQuestionID int64  `json:"security_question_id"`
	Content            string `json:"content"`
}

func (s *Store) CreateSecurityQuestion(q *SecurityQuestion) error {
	res, err := s.db.Exec(
		"INSERT INTO security_questions (name, description) VALUES (?, ?)",
		q.Name, q.Description,
	)
	if err != nil {
		return err
	}
	q.ID, err = res.LastInsertId()
	return err
}

func (s *Store) GetSecurityQuestion(id int64) (*SecurityQuestion, error) {
	q := &SecurityQuestion{}
	err := s.db.QueryRow(
		"SELECT id, name, COALESCE(description, '') FROM security_questions WHERE id = ?",
		id,
	).Scan(&q.ID, &q.Name, &q.Description)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("security question %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (s *Store) ListSecurityQuestions() ([]*SecurityQuestion, error) {
	rows, err := s.db.Query("SELECT id, name, COALESCE(description, '') FROM security_questions ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*SecurityQuestion
	for rows.Next() {
		q := &SecurityQuestion{}
		if err := rows.Scan(&q.ID, &q.Name, &q.Description); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *Store) UpdateSecurityQuestion(q *SecurityQuestion) error {
	res, err := s.db.Exec(
		"UPDATE security_questions SET name = ?, description = ? WHERE id = ?",
		q.Name, q.Description, q.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "security question", q.ID)
}

func (s *Store) DeleteSecurityQuestion(id int64) error {
	res, err := s.db.Exec("DELETE FROM security_questions WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "security question", id)
}

func (s *Store) CreateAnswer(a *Answer) error {
	res, err := s.db.Exec(
		"INSERT INTO answers (user_id, security_question_id, content) VALUES (?, ?, ?)",
		a.UserID, a.SecurityQuestionID, a.Content,
	)
	if err != nil {
		return err
	}
	a.ID, err = res.LastInsertId()
	return err
}

func (s *Store) GetAnswer(id int64) (*Answer, error) {
	a := &Answer{}
	err := s.db.QueryRow(
		"SELECT id, user_id, security_question_id, content FROM answers WHERE id = ?",
		id,
	).Scan(&a.ID, &a.UserID, &a.SecurityQuestionID, &a.Content)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("answer %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAnswers returns all answers, optionally scoped to one user.
func (s *Store) ListAnswers(userID int64) ([]*Answer, error) {
	query := "SELECT id, user_id, security_question_id, content FROM answers"
	args := []any{}
	if userID > 0 {
		query += " WHERE user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []*Answer
	for rows.Next() {
		a := &Answer{}
		if err := rows.Scan(&a.ID, &a.UserID, &a.SecurityQuestionID, &a.Content); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func (s *Store) UpdateAnswer(a *Answer) error {
	res, err := s.db.Exec(
		"UPDATE answers SET user_id = ?, security_question_id = ?, content = ? WHERE id = ?",
		a.UserID, a.SecurityQuestionID, a.Content, a.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "answer", a.ID)
}

func (s *Store) DeleteAnswer(id int64) error {
	res, err := s.db.Exec("DELETE FROM answers WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "answer", id)
}
