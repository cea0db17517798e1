package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const authUserContextKey = "auth_user_id"

// BearerAuth returns a gin middleware that requires a valid HS256 bearer
// token signed with secret. Requests without one are rejected with the
// backend's standard 401 body:
//
//	{"message": "Unauthenticated."}
func BearerAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			unauthenticated(c)
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			unauthenticated(c)
			return
		}

		c.Set(authUserContextKey, claims.Subject)
		c.Next()
	}
}

// AuthUserID returns the authenticated admin id set by BearerAuth, or "".
func AuthUserID(c *gin.Context) string {
	if v, exists := c.Get(authUserContextKey); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func unauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
}
