package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumenview/screen-booking-backend/internal/asset"
	"github.com/lumenview/screen-booking-backend/internal/auth"
	"github.com/lumenview/screen-booking-backend/internal/pkg/response"
)

// uploadLimits caps asset uploads at 25 MB and image/video types.
const maxUploadBytes = 25 << 20

var allowedUploadTypes = []string{
	"image/jpeg", "image/png", "image/gif", "image/webp",
	"video/mp4", "video/webm",
}

type Handler struct {
	assetService asset.Service
}

func NewHandler(assetService asset.Service) *Handler {
	return &Handler{
		assetService: assetService,
	}
}

// Upload stores a media asset for the authenticated user. The kind form
// field ties the asset to creatives or screen images.
func (h *Handler) Upload(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	kind := c.PostForm("kind")
	if kind != asset.KindCreative && kind != asset.KindScreenImage {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be creative or screen_image"})
		return
	}

	a, err := h.assetService.Upload(c.Request.Context(), asset.UploadInput{
		FileHeader:   fileHeader,
		UserID:       userID,
		Kind:         kind,
		MaxSizeBytes: maxUploadBytes,
		AllowedTypes: allowedUploadTypes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	var thumbURL *string
	if a.ThumbnailPath != nil {
		t := asset.ThumbnailURL(a.ID)
		thumbURL = &t
	}

	c.JSON(http.StatusCreated, AssetUploadResponse{
		Message:      "asset uploaded successfully",
		AssetID:      a.ID,
		URL:          asset.AssetURL(a.ID),
		ThumbnailURL: thumbURL,
	})
}

// ServeAsset serves the asset content by ID
func (h *Handler) ServeAsset(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asset ID is required"})
		return
	}

	stream, info, err := h.assetService.Download(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", info.ContentType)
	c.Header("Content-Disposition", "inline; filename=\""+info.Filename+"\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started, nothing to report
		return
	}
}

// ServeThumbnail serves the thumbnail image by asset ID
func (h *Handler) ServeThumbnail(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asset ID is required"})
		return
	}

	stream, info, err := h.assetService.DownloadThumbnail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	// Thumbnails are always JPEG
	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", "inline; filename=\""+info.Filename+"_thumb.jpg\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		return
	}
}

// Delete removes an asset owned by the caller.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asset ID is required"})
		return
	}

	userID := auth.GetUserID(c)
	// Owner check happens in the service; handlers only pass identity.
	if err := h.assetService.Delete(c.Request.Context(), id, userID, false); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
