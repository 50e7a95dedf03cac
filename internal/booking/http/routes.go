package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, userMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	group.Use(userMiddleware)
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/owner", h.ListOwner)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Decide)
	}
}
