package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cityfix-client/internal/gateway"
	"cityfix-client/internal/models"
	"cityfix-client/internal/notify"
	"cityfix-client/internal/session"
	"cityfix-client/internal/state"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	ctl        *AuthController
	store      *state.Store
	sessions   *session.Store
	toasts     *toastRecorder
	identities int
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		if body["email"] != "asha@example.com" || body["password"] != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Login successful",
			"user":    models.SessionUser{ID: "u1", Username: "asha", Email: "asha@example.com", Points: 30},
		})
	})
	r.Post("/api/auth/register", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		if body["email"] == "taken@example.com" {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "Email already registered"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Registration successful",
			"user":    models.SessionUser{ID: "u2", Username: body["username"], Email: body["email"]},
		})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	fx := &authFixture{
		store:    state.NewStore(),
		sessions: session.NewStore(filepath.Join(t.TempDir(), "session.json")),
		toasts:   &toastRecorder{},
	}
	fx.ctl = NewAuthController(gateway.New(srv.URL, "", 5*time.Second), fx.store, fx.sessions,
		notify.NewToastNotifier(fx.toasts), "admin123", func() { fx.identities++ })
	return fx
}

func TestLoginInstallsSession(t *testing.T) {
	fx := newAuthFixture(t)

	require.NoError(t, fx.ctl.Login(context.Background(), "  Asha@Example.COM ", "hunter2"))

	user := fx.store.SessionUser()
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, 30, user.Points)
	assert.Equal(t, 1, fx.identities)
	assert.Equal(t, []notify.Level{notify.LevelSuccess}, fx.toasts.levels())

	// Survives a restart through the persisted file.
	restored, err := fx.sessions.Load()
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "u1", restored.ID)
}

func TestLoginBadCredentials(t *testing.T) {
	fx := newAuthFixture(t)

	err := fx.ctl.Login(context.Background(), "asha@example.com", "wrong")

	require.Error(t, err)
	assert.Nil(t, fx.store.SessionUser())
	require.Len(t, fx.toasts.toasts, 1)
	assert.Equal(t, notify.LevelDanger, fx.toasts.toasts[0].Level)
	assert.Equal(t, "Invalid email or password", fx.toasts.toasts[0].Message)
}

func TestLoginMissingCredentials(t *testing.T) {
	fx := newAuthFixture(t)

	err := fx.ctl.Login(context.Background(), "", "")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Nil(t, fx.store.SessionUser())
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		field    string
	}{
		{"username too short", "ab", "a@b.com", "pass", "username"},
		{"username too long", strings.Repeat("a", 51), "a@b.com", "pass", "username"},
		{"email without at", "asha", "ashaexample.com", "pass", "email"},
		{"email without domain dot", "asha", "asha@example", "pass", "email"},
		{"email starting with at", "asha", "@example.com", "pass", "email"},
		{"password too short", "asha", "a@b.com", "abc", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newAuthFixture(t)

			err := fx.ctl.Register(context.Background(), tt.username, tt.email, tt.password)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Nil(t, fx.store.SessionUser())
		})
	}
}

func TestRegisterSuccess(t *testing.T) {
	fx := newAuthFixture(t)

	require.NoError(t, fx.ctl.Register(context.Background(), "asha", "Asha@Example.com", "hunter2"))

	user := fx.store.SessionUser()
	require.NotNil(t, user)
	assert.Equal(t, "asha", user.Username)
	assert.Equal(t, "asha@example.com", user.Email, "email lowercased before the round trip")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	fx := newAuthFixture(t)

	err := fx.ctl.Register(context.Background(), "asha", "taken@example.com", "hunter2")

	require.Error(t, err)
	require.Len(t, fx.toasts.toasts, 1)
	assert.Equal(t, "Email already registered", fx.toasts.toasts[0].Message)
}

func TestLogoutClearsEverything(t *testing.T) {
	fx := newAuthFixture(t)
	require.NoError(t, fx.ctl.Login(context.Background(), "asha@example.com", "hunter2"))
	require.True(t, fx.ctl.EnterAdmin("admin123"))

	fx.ctl.Logout()

	assert.Nil(t, fx.store.SessionUser())
	assert.False(t, fx.store.Admin())

	restored, err := fx.sessions.Load()
	require.NoError(t, err)
	assert.Nil(t, restored)
}

func TestEnterAdmin(t *testing.T) {
	fx := newAuthFixture(t)

	assert.False(t, fx.ctl.EnterAdmin("letmein"))
	assert.False(t, fx.store.Admin())

	assert.True(t, fx.ctl.EnterAdmin("admin123"))
	assert.True(t, fx.store.Admin())

	fx.ctl.ExitAdmin()
	assert.False(t, fx.store.Admin())
}
