package services

import (
	"errors"

	"tienda/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"time"
)

var (
	ErrBadCreds     = errors.New("invalid email or password")
	ErrWeakPassword = errors.New("password must be at least 5 characters")
)

const MinPasswordLen = 5

type AuthService struct {
	Users      *repos.UserRepo
	SessionTTL time.Duration
}

// Login verifies the admin credentials and mints a new opaque session id.
func (s *AuthService) Login(email, password string) (string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", ErrBadCreds
	}
	_ = s.Users.PruneSessions()
	sid := uuid.NewString()
	if err := s.Users.CreateSession(sid, s.SessionTTL); err != nil {
		return "", err
	}
	return sid, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.DeleteSession(sid)
}

// IsAdmin reports whether the session cookie is live. Sessions carry no
// identity beyond that.
func (s *AuthService) IsAdmin(sid string) bool {
	if sid == "" {
		return false
	}
	ok, err := s.Users.SessionValid(sid)
	return err == nil && ok
}

// ChangePassword verifies the current password and rewrites the hash.
// The length check runs before any database write.
func (s *AuthService) ChangePassword(current, next string) error {
	if len(next) < MinPasswordLen {
		return ErrWeakPassword
	}
	u, err := s.Users.Admin()
	if err != nil {
		return ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(current)) != nil {
		return ErrBadCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), 12)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(u.ID, string(hash))
}
