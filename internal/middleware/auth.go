package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rideauth/internal/auth"
	"rideauth/internal/domain"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// TokenVerifier verifies a raw bearer token.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthMiddleware admits requests carrying a valid bearer token and stores
// the decoded identity in the context. It does not check that the user
// still exists.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authorization token required")
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := verifier.Verify(parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, claims.ID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// RequireRole rejects identities whose role is not listed. It must run
// after AuthMiddleware.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			abortUnauthorized(c, "Unauthorized")
			return
		}
		if _, ok := allowed[identity.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

// IdentityFromContext returns the identity stored by AuthMiddleware.
func IdentityFromContext(c *gin.Context) (domain.Identity, bool) {
	id := c.GetString(ContextUserID)
	if id == "" {
		return domain.Identity{}, false
	}
	return domain.Identity{
		ID:    id,
		Email: c.GetString(ContextUserEmail),
		Role:  domain.Role(c.GetString(ContextUserRole)),
	}, true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
