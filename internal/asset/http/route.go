package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers asset routes
func RegisterRoutes(r gin.IRouter, handler *Handler, authMiddleware gin.HandlerFunc) {
	group := r.Group("/assets")

	// Serving is public so screens and creatives can embed asset URLs.
	group.GET("/:id", handler.ServeAsset)
	group.GET("/:id/thumbnail", handler.ServeThumbnail)

	group.POST("", authMiddleware, handler.Upload)
	group.DELETE("/:id", authMiddleware, handler.Delete)
}
