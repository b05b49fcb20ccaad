package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fiaz291/ecommerce-korean-backend/internal/response"
)

// ClaimsKey is where RequireAuth stores the parsed claims on the gin context.
const ClaimsKey = "authClaims"

// RequireAuth gates a route group behind a Bearer token minted by MintToken.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == "" || raw == header {
			response.Fail(c, http.StatusUnauthorized, "Missing or malformed Authorization header")
			c.Abort()
			return
		}

		claims, err := ParseToken(secret, raw)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
