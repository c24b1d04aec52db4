package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key the acting user's id is stored under in the Gin context.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// ActingUserHeader names the header an upstream proxy sets to identify the
// caller. The service itself carries no authentication layer.
const ActingUserHeader = "X-Acting-User"

// UserIdentityMiddleware copies the proxy-supplied user id from the request
// header into the Gin context. Requests without the header stay anonymous
// and are attributed to the configured system user downstream.
func UserIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader(ActingUserHeader); id != "" {
			c.Set(string(userIDKey), id)
		}
		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user id placed in the Gin context
// by UserIdentityMiddleware. It returns the user ID and a boolean indicating
// if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIdVal := c.Request.Context().Value(userIDKey)
		if userIdVal != nil {
			return userIdVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
