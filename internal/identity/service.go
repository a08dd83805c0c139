// ABOUTME: Identity service: accounts, sign-in, and password lifecycle.
// ABOUTME: bcrypt hashes, JWT issuance, session rows, and password history.

package identity

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fernando-bedoya/adminconsole/internal/store"
)

var (
	// ErrInvalidCredentials is returned for a bad email/password pair.
	// Callers must not distinguish "no such user" from "wrong password".
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrResetInvalid is returned for unknown, expired, or used reset tokens.
	ErrResetInvalid = errors.New("reset token invalid")
)

const resetTokenTTL = time.Hour

// Service owns account and credential operations. Constructed once at server
// start and passed where needed; no package-level state.
type Service struct {
	store    *store.Store
	secret   []byte
	tokenTTL time.Duration
}

func NewService(s *store.Store, secret []byte, tokenTTL time.Duration) *Service {
	return &Service{store: s, secret: secret, tokenTTL: tokenTTL}
}

// CreateAccount registers a user with a bcrypt-hashed password and opens the
// first password-history row.
func (s *Service) CreateAccount(name, email, password string) (*store.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &store.User{Name: name, Email: email, Password: string(hash)}
	if err := s.store.CreateUser(u); err != nil {
		return nil, err
	}

	if err := s.store.CreatePassword(&store.Password{UserID: u.ID, Content: string(hash)}); err != nil {
		return nil, err
	}
	return u, nil
}

// SignIn verifies credentials, records a session row, and returns the user
// with a fresh ID token.
func (s *Service) SignIn(email, password string) (*store.User, string, error) {
	u, err := s.store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, expiresAt, err := s.IssueToken(u)
	if err != nil {
		return nil, "", err
	}

	sess := &store.Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := s.store.CreateSession(sess); err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// UpdatePassword rotates a user's password after verifying the current one.
// The open history row is closed and a new one appended, so exactly one row
// per user has no end date.
func (s *Service) UpdatePassword(userID int64, current, next string) error {
	u, err := s.store.GetUser(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(current)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.store.ClosePasswords(userID); err != nil {
		return err
	}
	if err := s.store.CreatePassword(&store.Password{UserID: userID, Content: string(hash)}); err != nil {
		return err
	}
	return s.store.UpdateUserPassword(userID, string(hash))
}

// SendPasswordResetEmail issues a single-use, time-limited reset token.
// Delivery is logged rather than mailed; there is no SMTP integration.
func (s *Service) SendPasswordResetEmail(email string) (string, error) {
	u, err := s.store.GetUserByEmail(email)
	if err != nil {
		return "", err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)

	reset := &store.PasswordReset{
		Token:     token,
		UserID:    u.ID,
		ExpiresAt: time.Now().UTC().Add(resetTokenTTL),
	}
	if err := s.store.CreatePasswordReset(reset); err != nil {
		return "", err
	}

	log.Printf("password reset issued for %s (expires %s)", email, reset.ExpiresAt.Format(time.RFC3339))
	return token, nil
}

// ResetPassword consumes a reset token and sets a new password, with the same
// history bookkeeping as UpdatePassword.
func (s *Service) ResetPassword(token, next string) error {
	reset, err := s.store.GetPasswordReset(token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrResetInvalid
		}
		return err
	}
	if reset.Used || time.Now().UTC().After(reset.ExpiresAt) {
		return ErrResetInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.store.ClosePasswords(reset.UserID); err != nil {
		return err
	}
	if err := s.store.CreatePassword(&store.Password{UserID: reset.UserID, Content: string(hash)}); err != nil {
		return err
	}
	if err := s.store.UpdateUserPassword(reset.UserID, string(hash)); err != nil {
		return err
	}
	if err := s.store.MarkPasswordResetUsed(token); err != nil {
		return fmt.Errorf("marking reset used: %w", err)
	}
	return nil
}
