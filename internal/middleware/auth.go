package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ridebooking/internal/service"
)

const principalKey = "principal"

// Auth returns middleware that authenticates requests via the Authorization
// header and injects the resolved Principal into the request context.
func Auth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}

		principal, err := auth.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// PrincipalFromContext returns the Principal injected by Auth.
func PrincipalFromContext(c *gin.Context) (service.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return service.Principal{}, false
	}
	principal, ok := v.(service.Principal)
	return principal, ok
}
