package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"melodia/utils"
)

// FirebaseAuthMiddleware verifies the auth provider's ID token and stores the
// subject UID on the context. With optional=true an absent or invalid token
// just leaves the request anonymous.
func FirebaseAuthMiddleware(optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.AuthClient.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set("authUid", token.UID)
		c.Next()
	}
}
