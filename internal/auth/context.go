package auth

import "github.com/gin-gonic/gin"

const userIDKey = "userID"

// GetUserID returns the acting user's ID or empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get(userIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// SetUserID stores the acting user's ID in the Gin context.
func SetUserID(c *gin.Context, id string) {
	c.Set(userIDKey, id)
}
