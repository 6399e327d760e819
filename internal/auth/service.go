// Package auth is the dashboard's authentication gate. It checks a single
// hard-coded credential pair against the login form and keeps the session
// record in the local store. This is a prototype stub, NOT production
// authentication: there is no account database and no server-side session.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/wathera-admin/internal/domain"
	"github.com/example/wathera-admin/internal/storage"
)

var (
	// ErrInvalidCredentials is deliberately generic: an unknown email and a
	// wrong password are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

const (
	DefaultAdminEmail    = "admin@gmail.com"
	DefaultAdminPassword = "admin"
)

// Service is the credential gate plus session lifecycle.
type Service struct {
	store        storage.Store
	tokens       *TokenService
	adminEmail   string
	passwordHash []byte
	now          func() time.Time
}

// NewService builds the gate for one admin account. The password is kept only
// as a bcrypt hash for the lifetime of the process.
func NewService(store storage.Store, tokens *TokenService, adminEmail, adminPassword string) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Service{
		store:        store,
		tokens:       tokens,
		adminEmail:   adminEmail,
		passwordHash: hash,
		now:          time.Now,
	}, nil
}

// LoginResult is what a successful credential check produces.
type LoginResult struct {
	Session   domain.Session `json:"session"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

// Login checks the credentials, writes the session record under the "user"
// key and returns a signed token for API clients. The remember flag persists
// or clears the saved login form values.
func (s *Service) Login(ctx context.Context, email, password string, remember bool) (LoginResult, error) {
	if email != s.adminEmail ||
		bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	if remember {
		if err := s.store.Put(ctx, storage.KeyRememberedEmail, []byte(email)); err != nil {
			zap.S().Warnf("auth: save remembered email: %v", err)
		}
		if err := s.store.Put(ctx, storage.KeyRememberedPass, []byte(password)); err != nil {
			zap.S().Warnf("auth: save remembered password: %v", err)
		}
	} else {
		if err := s.store.Delete(ctx, storage.KeyRememberedEmail); err != nil {
			zap.S().Warnf("auth: clear remembered email: %v", err)
		}
		if err := s.store.Delete(ctx, storage.KeyRememberedPass); err != nil {
			zap.S().Warnf("auth: clear remembered password: %v", err)
		}
	}

	session := domain.Session{
		Email:         email,
		Authenticated: true,
		LoginTime:     s.now().UTC(),
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return LoginResult{}, err
	}
	if err := s.store.Put(ctx, storage.KeyUser, raw); err != nil {
		return LoginResult{}, err
	}

	token, expiresAt, err := s.tokens.Generate(email, s.now())
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Session: session, Token: token, ExpiresAt: expiresAt}, nil
}

// CurrentSession returns the stored session. An absent or undecodable record
// means the gate is closed and protected views must redirect to the entry
// page.
func (s *Service) CurrentSession(ctx context.Context) (domain.Session, error) {
	raw, err := s.store.Get(ctx, storage.KeyUser)
	if err != nil {
		return domain.Session{}, ErrNotAuthenticated
	}
	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		zap.S().Errorf("auth: malformed session record: %v", err)
		return domain.Session{}, ErrNotAuthenticated
	}
	if !session.Authenticated {
		return domain.Session{}, ErrNotAuthenticated
	}
	return session, nil
}

// Logout destroys the session record.
func (s *Service) Logout(ctx context.Context) error {
	return s.store.Delete(ctx, storage.KeyUser)
}

// RememberedCredentials returns the saved login form values, if any, for
// prefill on the entry page.
func (s *Service) RememberedCredentials(ctx context.Context) (email, password string, ok bool) {
	rawEmail, err := s.store.Get(ctx, storage.KeyRememberedEmail)
	if err != nil {
		return "", "", false
	}
	rawPass, err := s.store.Get(ctx, storage.KeyRememberedPass)
	if err != nil {
		return "", "", false
	}
	return string(rawEmail), string(rawPass), true
}
