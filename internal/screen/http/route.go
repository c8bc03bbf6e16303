package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers screen-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/screens")

	// === Public Routes ===
	group.GET("", h.Search)
	group.GET("/:id", h.Get)
	group.GET("/:id/windows", h.ListWindows)
	group.GET("/:id/rate-card", h.GetRateCard)
	group.GET("/:id/availability", h.CheckAvailability)
	group.GET("/:id/quote", h.Quote)

	// === Authenticated Routes ===
	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		authed.POST("", h.Create)
		authed.PATCH("/:id", h.Update)
		authed.DELETE("/:id", h.Delete)
		authed.PATCH("/:id/status", h.SetActive)
		authed.POST("/:id/windows", h.AddWindow)
		authed.DELETE("/:id/windows/:windowId", h.RemoveWindow)
		authed.PUT("/:id/rate-card", h.PutRateCard)
	}

	// === Admin Routes ===
	group.PATCH("/:id/verification", authMiddleware, adminMiddleware, h.SetVerified)
}
