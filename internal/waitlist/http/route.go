package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers waitlist routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/waitlist")

	// === Public Routes ===
	group.POST("", h.Join)

	// === Admin Routes ===
	admin := group.Group("")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("", h.List)
		admin.POST("/:id/invite", h.Invite)
		admin.DELETE("/:id", h.Delete)
	}
}
