package middleware

import (
	"net/http"

	"go-foodmarket/internal/auth"

	"github.com/gin-gonic/gin"
)

// IdentityKey is the gin context key holding the verified *auth.Claims.
const IdentityKey = "identity"

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireSession rejects requests without a valid "token" cookie.
func RequireSession(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		c.Set(IdentityKey, claims)
		c.Next()
	}
}

// RequireOwner rejects requests whose email query parameter is not the
// session email. It must run after RequireSession.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := SessionEmail(c)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}
		if c.Query("email") != email {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}
		c.Next()
	}
}

func Identity(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// SessionEmail returns the verified email, or "" outside a session.
func SessionEmail(c *gin.Context) string {
	if claims, ok := Identity(c); ok {
		return claims.Email
	}
	return ""
}
