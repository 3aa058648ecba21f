package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/sharath018/potluck-rsvp-backend/internal/auditlog"
)

// AuditMiddleware extracts and stores the client IP for audit logging.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("client_ip", getClientIP(c))
		c.Next()
	}
}

// getClientIP trusts proxy headers only from the proxies configured on the
// engine (SetTrustedProxies), otherwise it is the peer address.
func getClientIP(c *gin.Context) string {
	return c.ClientIP()
}

// GetIPFromContext retrieves the IP stored by AuditMiddleware.
func GetIPFromContext(c *gin.Context) string {
	if ip, ok := c.Get("client_ip"); ok {
		if ipStr, ok := ip.(string); ok {
			return ipStr
		}
	}
	return getClientIP(c)
}

// ActorFromContext builds the audit actor of the current request.
// Public requests have no user.
func ActorFromContext(c *gin.Context) auditlog.Actor {
	actor := auditlog.Actor{IP: GetIPFromContext(c)}
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uint); ok {
			actor.UserID = &id
		}
	}
	return actor
}
