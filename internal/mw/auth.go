package mw

import (
	"net/http"
	"strings"

	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/auth"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by Auth.
const (
	CtxUser   = "user"
	CtxUserID = "userID"
)

// Auth validates the Bearer token and loads the full caller record
// into the request context. Downstream handlers trust this identity
// completely.
func Auth(jwtSecret string, users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token provided"})
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "), jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Invalid token"})
			return
		}

		user, err := users.Get(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Invalid token user"})
			return
		}

		c.Set(CtxUser, user)
		c.Set(CtxUserID, user.ID.Hex())
		c.Next()
	}
}

// UserID returns the authenticated caller's internal id. Only valid
// behind Auth.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}
