package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all user-related routes. They do not require an acting user.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler) {
	usersGroup := g.Group("/users")
	{
		usersGroup.POST("", h.Create)
		usersGroup.GET("", h.List)
		usersGroup.GET("/:id", h.Get)
		usersGroup.PATCH("/:id", h.Update)
		usersGroup.DELETE("/:id", h.Delete)
	}
}
