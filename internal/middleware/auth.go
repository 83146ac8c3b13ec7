package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sinasezza/todolist-api/internal/auth"
	"github.com/sinasezza/todolist-api/internal/models"
)

// AccessTokenCookie carries the token in browser mode; API clients use the
// Authorization header. Both decode through the same codec.
const AccessTokenCookie = "access_token"

const claimsContextKey = "claims"

// CurrentClaims returns the identity resolved for this request, or nil when
// the request is anonymous.
func CurrentClaims(c *gin.Context) *auth.Claims {
	value, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

// Authenticate resolves the request identity through the token codec and
// rejects the request with a generic 401 when no valid token is presented.
// Decode failures are never distinguished for the client.
func Authenticate(codec *auth.TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		claims, err := codec.Decode(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequirePrivileged gates admin endpoints on the privileged role set.
// Failures surface as 401 rather than 403 so the response does not confirm
// that the route exists for a probing client.
func RequirePrivileged() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := CurrentClaims(c)
		if claims == nil || !models.IsPrivileged(claims.Role) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
			return
		}
		c.Next()
	}
}
