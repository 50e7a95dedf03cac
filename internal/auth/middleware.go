package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDHeader carries the acting user's ID on every item and booking request.
const UserIDHeader = "X-Sharer-User-Id"

// UserRequired is a Gin middleware that reads the acting user from UserIDHeader.
// It does not check that the user exists; services do that where it matters.
func UserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if header == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing " + UserIDHeader + " header",
			})
			return
		}

		id, err := uuid.Parse(header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid " + UserIDHeader + " header",
			})
			return
		}

		SetUserID(c, id.String())

		c.Next()
	}
}
