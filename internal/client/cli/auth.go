package cli

import (
	"bytes"
	"context"
	"errors"

	"github.com/dmitrijs2005/wikireader/internal/client/client"
	"github.com/dmitrijs2005/wikireader/internal/client/services"
	"github.com/dmitrijs2005/wikireader/internal/common"
)

// Prompt helpers, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var errPasswordMismatch = errors.New("passwords do not match")

// Register prompts for username, email and a confirmed password and
// creates the account. Registration never logs the user in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(password, confirm) {
		a.alert("Passwords do not match")
		return errPasswordMismatch
	}

	if _, err := a.authService.Register(ctx, username, email, password); err != nil {
		a.alert("Registration failed: " + client.Message(err))
		return err
	}

	a.alert("Registration successful! Please login.")
	return nil
}

// Login prompts for credentials and authenticates. On success the
// user's stored preferences are applied to the form.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.authService.Login(ctx, username, password); err != nil {
		a.alert("Login failed: " + client.Message(err))
		return err
	}

	a.println("Welcome, " + a.session().User.DisplayName() + "!")
	a.loadPreferences(ctx)
	return nil
}

// Logout always succeeds locally.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	a.println("Logged out.")
	return nil
}

// restore checks the stored session once at startup.
func (a *App) restore(ctx context.Context) {
	if !a.authService.Verify(ctx) {
		return
	}
	a.println("Welcome back, " + a.session().User.DisplayName() + "!")
	a.loadPreferences(ctx)
}

func (a *App) loadPreferences(ctx context.Context) {
	p, err := a.prefs.Load(ctx, a.session())
	if err != nil {
		a.logger.Warn(ctx, "failed to load preferences", "error", err)
		return
	}
	a.mu.Lock()
	p.ApplyTo(&a.form)
	a.mu.Unlock()
}

// ensureLogin runs the login prompt after an action was refused for a
// missing or rejected session.
func (a *App) ensureLogin(ctx context.Context, err error) {
	if err == nil || !services.IsAuthError(err) {
		return
	}
	if errors.Is(err, client.ErrUnauthorized) {
		a.authService.Logout(ctx)
	}
	_ = a.Login(ctx)
}
