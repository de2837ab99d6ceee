package controllers

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"cityfix-client/internal/gateway"
	"cityfix-client/internal/models"
	"cityfix-client/internal/notify"
	"cityfix-client/internal/session"
	"cityfix-client/internal/state"

	"github.com/rs/zerolog/log"
)

// AuthController owns the login and register forms, session
// persistence, and the admin-mode gate.
type AuthController struct {
	gw         *gateway.Client
	store      *state.Store
	sessions   *session.Store
	notifier   notify.Notifier
	passphrase string
	onIdentity func()
}

// NewAuthController creates the auth controller. onIdentity re-renders
// the identity widget after any session change.
func NewAuthController(gw *gateway.Client, store *state.Store, sessions *session.Store, notifier notify.Notifier, adminPassphrase string, onIdentity func()) *AuthController {
	return &AuthController{
		gw:         gw,
		store:      store,
		sessions:   sessions,
		notifier:   notifier,
		passphrase: adminPassphrase,
		onIdentity: onIdentity,
	}
}

// Login authenticates and remembers the returned user.
func (c *AuthController) Login(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		err := &ValidationError{Field: "credentials", Reason: "email and password are required"}
		c.notifier.Warning(err.Error())
		return err
	}

	user, err := c.gw.Login(ctx, email, password)
	if err != nil {
		c.notifier.Danger(authFailureMessage(err, "Login failed"))
		return err
	}
	c.installSession(user)
	c.notifier.Success("Welcome back, " + user.Username + "!")
	return nil
}

// Register creates an account and logs the new user in.
func (c *AuthController) Register(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validateRegistration(username, email, password); err != nil {
		c.notifier.Warning(err.Error())
		return err
	}

	user, err := c.gw.Register(ctx, username, email, password)
	if err != nil {
		c.notifier.Danger(authFailureMessage(err, "Registration failed"))
		return err
	}
	c.installSession(user)
	c.notifier.Success("Account created. Happy reporting!")
	return nil
}

// Logout clears the session in memory and on disk. Admin mode dies
// with the session.
func (c *AuthController) Logout() {
	c.store.SetSession(nil)
	c.store.SetAdmin(false)
	if err := c.sessions.Clear(); err != nil {
		log.Error().Err(err).Msg("Failed to clear persisted session")
	}
	c.onIdentity()
	c.notifier.Info("Logged out")
}

// EnterAdmin compares the passphrase locally and, on match, flips the
// session-local admin flag. This gates UI affordances only; every
// admin API call is still checked server-side.
func (c *AuthController) EnterAdmin(passphrase string) bool {
	if subtle.ConstantTimeCompare([]byte(passphrase), []byte(c.passphrase)) != 1 {
		c.notifier.Danger("Wrong admin passphrase")
		return false
	}
	c.store.SetAdmin(true)
	c.onIdentity()
	c.notifier.Success("Admin mode enabled")
	return true
}

// ExitAdmin drops the admin flag.
func (c *AuthController) ExitAdmin() {
	c.store.SetAdmin(false)
	c.onIdentity()
}

func (c *AuthController) installSession(user *models.SessionUser) {
	c.store.SetSession(user)
	if err := c.sessions.Save(user); err != nil {
		log.Error().Err(err).Msg("Failed to persist session")
	}
	c.onIdentity()
}

func authFailureMessage(err error, fallback string) string {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback + ". Please try again."
}

// validateRegistration mirrors the server's rules so bad input fails
// before the round trip, with the same messages.
func validateRegistration(username, email, password string) error {
	if len(username) < 3 || len(username) > 50 {
		return &ValidationError{Field: "username", Reason: "must be 3-50 characters"}
	}
	at := strings.Index(email, "@")
	if at < 1 || !strings.Contains(email[at+1:], ".") {
		return &ValidationError{Field: "email", Reason: "invalid email format"}
	}
	if len(password) < 4 {
		return &ValidationError{Field: "password", Reason: "must be at least 4 characters"}
	}
	return nil
}
