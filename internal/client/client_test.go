package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"rideauth/internal/app"
	"rideauth/internal/auth"
	"rideauth/internal/client"
	"rideauth/internal/handler"
	"rideauth/internal/repository/sqlite"
	"rideauth/internal/service"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	tokens := auth.NewTokenManager("client-test-secret", 0)
	authService := service.NewAuthService(
		sqlite.NewUserRepository(db),
		auth.NewPasswordHasher(bcrypt.MinCost),
		tokens,
		nil, nil,
	)
	srv := httptest.NewServer(app.NewRouter(app.RouterDeps{
		AuthHandler:   handler.NewAuthHandler(authService),
		TokenVerifier: tokens,
	}))
	t.Cleanup(srv.Close)
	return srv
}

var ada = client.SignupInput{
	Email:     "a@x.com",
	Password:  "secret1",
	FirstName: "Ada",
	LastName:  "Lovelace",
	Phone:     "0123456789",
}

func TestClient_SessionLifecycle(t *testing.T) {
	srv := newAPI(t)
	ctx := context.Background()
	store := client.FileStore{Path: filepath.Join(t.TempDir(), "session.json")}

	session, err := client.NewSession(store)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if session.SignedIn() {
		t.Fatal("expected a fresh session to be signed out")
	}

	c := client.New(srv.URL, session, nil)
	if _, err := c.Profile(ctx); !errors.Is(err, client.ErrSignedOut) {
		t.Fatalf("expected ErrSignedOut, got %v", err)
	}

	user, err := c.Signup(ctx, ada)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Role != "rider" {
		t.Errorf("expected default role rider, got %q", user.Role)
	}
	if !session.SignedIn() {
		t.Fatal("expected session to be signed in after signup")
	}

	// A second process restores the same session from the store.
	restored, err := client.NewSession(store)
	if err != nil {
		t.Fatalf("restore session: %v", err)
	}
	if restored.Token() != session.Token() || restored.User().Email != "a@x.com" {
		t.Fatalf("session not restored: %+v", restored.User())
	}

	profile, err := client.New(srv.URL, restored, nil).Profile(ctx)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.ID != user.ID {
		t.Errorf("expected profile %s, got %s", user.ID, profile.ID)
	}

	name := "Grace"
	updated, err := c.UpdateProfile(ctx, client.ProfileInput{FirstName: &name})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.FirstName != "Grace" {
		t.Errorf("expected updated first name, got %q", updated.FirstName)
	}

	if err := c.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if session.SignedIn() {
		t.Error("expected session to be signed out after logout")
	}
	state, err := store.Load()
	if err != nil || state != nil {
		t.Errorf("expected cleared store, got %+v, %v", state, err)
	}
}

func TestClient_Errors(t *testing.T) {
	srv := newAPI(t)
	ctx := context.Background()
	c := client.New(srv.URL, nil, nil)

	if _, err := c.Signup(ctx, ada); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, err := client.New(srv.URL, nil, nil).Signup(ctx, ada)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 APIError, got %v", err)
	}
	if apiErr.Message != "Email already registered" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}

	_, err = client.New(srv.URL, nil, nil).Signin(ctx, "a@x.com", "wrong12")
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 APIError, got %v", err)
	}
}

func TestClient_UnauthorizedEndsSession(t *testing.T) {
	srv := newAPI(t)
	ctx := context.Background()

	session, _ := client.NewSession(nil)
	if err := session.Update("forged.token.value", &client.User{ID: "x"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	_, err := client.New(srv.URL, session, nil).Profile(ctx)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 APIError, got %v", err)
	}
	if session.SignedIn() || session.User() != nil {
		t.Error("expected a rejected token to end the session")
	}
}
