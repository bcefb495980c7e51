package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"rideauth/internal/auth"
	"rideauth/internal/domain"
)

const testSecret = "test-secret-key-for-testing-only"

func init() {
	gin.SetMode(gin.TestMode)
}

func newGateRouter(verifier TokenVerifier, extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(AuthMiddleware(verifier))
	router.Use(extra...)
	router.GET("/test", func(c *gin.Context) {
		identity, _ := IdentityFromContext(c)
		c.JSON(http.StatusOK, gin.H{
			"id":    identity.ID,
			"email": identity.Email,
			"role":  identity.Role,
		})
	})
	return router
}

func issue(t *testing.T, m *auth.TokenManager, role domain.Role) string {
	t.Helper()
	token, err := m.Issue(&domain.User{ID: "user-1", Email: "a@x.com", Role: role})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

func TestAuthMiddleware_RejectsBadRequests(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret, 0)
	expired := issue(t, auth.NewTokenManager(testSecret, 0).WithClock(func() time.Time {
		return time.Now().Add(-8 * 24 * time.Hour)
	}), domain.RoleRider)
	foreign := issue(t, auth.NewTokenManager("another-secret", 0), domain.RoleRider)

	testCases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no scheme", "InvalidFormat"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"bearer without token", "Bearer"},
		{"garbage token", "Bearer invalid_token_xyz"},
		{"expired token", "Bearer " + expired},
		{"foreign secret", "Bearer " + foreign},
	}

	router := newGateRouter(tokens)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Errorf("expected JSON error body, got %s", w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_ValidTokenAttachesIdentity(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret, 0)
	router := newGateRouter(tokens)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, tokens, domain.RoleDriver))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["id"] != "user-1" || body["email"] != "a@x.com" || body["role"] != "driver" {
		t.Errorf("unexpected identity: %v", body)
	}
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret, 0)
	router := newGateRouter(tokens, RequireRole(domain.RoleDriver))

	testCases := []struct {
		role domain.Role
		want int
	}{
		{domain.RoleDriver, http.StatusOK},
		{domain.RoleRider, http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(string(tc.role), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Authorization", "Bearer "+issue(t, tokens, tc.role))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Errorf("expected status %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestIdentityFromContext_Empty(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, ok := IdentityFromContext(c); ok {
		t.Error("expected no identity on a fresh context")
	}
}
