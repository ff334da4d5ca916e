package middleware

import (
	"net/http"
	"strconv"

	"flowboard/internal/app/user"

	"github.com/gin-gonic/gin"
)

const UserContextKey = "currentUser"

// IdentityMiddleware resolves the requester from the X-User-ID header set by
// the authenticating gateway and loads the matching user row. Session
// management itself lives upstream.
func IdentityMiddleware(userSvc user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.GetHeader("X-User-ID")
		if idStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-User-ID header"})
			return
		}

		userID, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid X-User-ID header"})
			return
		}

		u, err := userSvc.GetUserByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}

		c.Set(UserContextKey, u)
		c.Next()
	}
}

// CurrentUser returns the user resolved by IdentityMiddleware.
func CurrentUser(c *gin.Context) *user.User {
	v, ok := c.Get(UserContextKey)
	if !ok {
		return nil
	}
	u, _ := v.(*user.User)
	return u
}
