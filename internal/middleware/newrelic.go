package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
)

// NewRelicIdentityMiddleware adds the authenticated identity to the current
// New Relic transaction. It is a no-op when no transaction is active, so it
// can be mounted unconditionally after AuthMiddleware.
func NewRelicIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		txn := nrgin.Transaction(c)
		if txn == nil {
			c.Next()
			return
		}

		if identity, ok := IdentityFromContext(c); ok {
			txn.AddAttribute("user.id", identity.ID)
			txn.AddAttribute("user.role", string(identity.Role))
		}

		c.Next()

		// Record error if present.
		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				txn.NoticeError(err.Err)
			}
		}
	}
}
