// Package services contains application services for the Wiki Reader client.
// This file defines the session store: login, register, logout and the
// startup verification of a remembered token.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/wikireader/internal/client/client"
	"github.com/dmitrijs2005/wikireader/internal/client/models"
	"github.com/dmitrijs2005/wikireader/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/wikireader/internal/common"
	"github.com/dmitrijs2005/wikireader/internal/cryptox"
	"github.com/dmitrijs2005/wikireader/internal/dbx"
	"github.com/dmitrijs2005/wikireader/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// AuthService owns the authenticated state of the CLI.
//
// Contract:
//   - Login: authenticate against the server and remember the token.
//   - Register: create an account; never authenticates.
//   - Logout: forget the session locally. Never fails.
//   - Verify: restore a remembered session at startup, validating it
//     against the server once.
//
// A session is either complete (token and user) or absent.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (bool, error)
	Register(ctx context.Context, username, email string, password []byte) (bool, error)
	Logout(ctx context.Context)
	Verify(ctx context.Context) bool

	Current() models.Session
	Token() string
	IsLoggedIn() bool
	ExpiresAt() (time.Time, bool)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	sealer *cryptox.Sealer
	logger logging.Logger
	now    func() time.Time

	mu      sync.RWMutex
	session models.Session
}

// NewAuthService constructs an AuthService bound to the API client and the
// local vault. Tokens are sealed with sealer before they are stored.
func NewAuthService(c client.Client, db *sql.DB, sealer *cryptox.Sealer, logger logging.Logger) AuthService {
	return &authService{
		client: c,
		db:     db,
		sealer: sealer,
		logger: logger,
		now:    time.Now,
	}
}

func (a *authService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLStore(db)
}

// Login keeps the previous session when authentication fails.
func (a *authService) Login(ctx context.Context, username string, password []byte) (bool, error) {
	defer common.WipeByteArray(password)

	s, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return false, fmt.Errorf("login error: %w", err)
	}
	if s.User == nil {
		s.User = &models.User{Username: username}
	}

	if err := a.saveSession(ctx, s); err != nil {
		a.logger.Error(ctx, "failed to remember session", "error", err)
	}

	a.setSession(s)
	a.logger.Info(ctx, "logged in", "username", s.User.DisplayName())
	return true, nil
}

// saveSession stores the sealed token and the username in one transaction.
func (a *authService) saveSession(ctx context.Context, s models.Session) error {
	sealed := a.sealer.Seal([]byte(s.Token))

	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.getMetadataRepo(tx)
		if err := repo.Put(ctx, metadata.KeyToken, sealed); err != nil {
			return err
		}
		return repo.Put(ctx, metadata.KeyUsername, []byte(s.User.Username))
	})
}

func (a *authService) Register(ctx context.Context, username, email string, password []byte) (bool, error) {
	defer common.WipeByteArray(password)

	if err := a.client.Register(ctx, username, email, string(password)); err != nil {
		return false, fmt.Errorf("register error: %w", err)
	}
	return true, nil
}

func (a *authService) Logout(ctx context.Context) {
	a.setSession(models.Session{})

	if err := a.getMetadataRepo(a.db).Remove(ctx, metadata.SessionKeys...); err != nil {
		a.logger.Warn(ctx, "failed to remove stored credentials", "error", err)
	}
}

// Verify loads the remembered token and checks it once with an
// authenticated request. Any failure, transient or not, logs the user out.
func (a *authService) Verify(ctx context.Context) bool {
	repo := a.getMetadataRepo(a.db)

	sealed, err := repo.Get(ctx, metadata.KeyToken)
	if err != nil {
		a.logger.Warn(ctx, "failed to read stored token", "error", err)
		a.setSession(models.Session{})
		return false
	}
	if len(sealed) == 0 {
		a.setSession(models.Session{})
		return false
	}

	raw, err := a.sealer.Open(sealed)
	if err != nil {
		a.logger.Warn(ctx, "stored token cannot be opened", "error", err)
		a.Logout(ctx)
		return false
	}
	token := string(raw)

	if err := a.checkExpiry(token); err != nil {
		a.logger.Info(ctx, "stored token rejected", "error", err)
		a.Logout(ctx)
		return false
	}

	if _, err := a.client.GetPreferences(ctx, token); err != nil {
		a.logger.Info(ctx, "stored token rejected", "error", err)
		a.Logout(ctx)
		return false
	}

	username, err := repo.Get(ctx, metadata.KeyUsername)
	if err != nil {
		a.logger.Warn(ctx, "failed to read stored username", "error", err)
	}

	user := &models.User{Username: string(username), ID: tokenUserID(token)}
	a.setSession(models.Session{Token: token, User: user})
	return true
}

func (a *authService) setSession(s models.Session) {
	if !s.Valid() {
		s = models.Session{}
	}
	a.mu.Lock()
	a.session = s
	a.mu.Unlock()
}

func (a *authService) Current() models.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

func (a *authService) Token() string {
	return a.Current().Token
}

func (a *authService) IsLoggedIn() bool {
	return a.Current().Valid()
}

// ExpiresAt reports the exp claim of the current token, if it has one.
func (a *authService) ExpiresAt() (time.Time, bool) {
	token := a.Token()
	if token == "" {
		return time.Time{}, false
	}
	return tokenExpiry(token)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// checkExpiry fails with common.ErrTokenExpired for a token whose exp
// claim has passed. Tokens without exp are left to the server.
func (a *authService) checkExpiry(token string) error {
	if exp, ok := tokenExpiry(token); ok && !exp.After(a.now()) {
		return fmt.Errorf("%w at %s", common.ErrTokenExpired, exp.Format(time.RFC3339))
	}
	return nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// server stays the authority on validity.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func tokenUserID(token string) int64 {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0
	}
	if id, ok := claims["user_id"].(float64); ok {
		return int64(id)
	}
	return 0
}
