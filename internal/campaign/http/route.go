package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers campaign and creative routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/campaigns")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)

		group.GET("/:id/creatives", h.ListCreatives)
		group.POST("/:id/creatives", h.AddCreative)
		group.GET("/:id/creatives/:creativeId", h.GetCreative)
		group.DELETE("/:id/creatives/:creativeId", h.RemoveCreative)
	}

	// === Admin Routes ===
	group.POST("/:id/creatives/:creativeId/approve", adminMiddleware, h.ApproveCreative)
	group.POST("/:id/creatives/:creativeId/reject", adminMiddleware, h.RejectCreative)
}
