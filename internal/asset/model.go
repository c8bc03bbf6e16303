package asset

import (
	"net/http"
	"time"

	"github.com/lumenview/screen-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "asset not found")
	ErrFileTooLarge     = apperror.New(http.StatusRequestEntityTooLarge, "file is too large")
	ErrUnsupportedType  = apperror.New(http.StatusUnsupportedMediaType, "unsupported content type")
	ErrNoThumbnail      = apperror.New(http.StatusNotFound, "thumbnail not available")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Asset kinds tie an uploaded file to the part of the marketplace it
// belongs to.
const (
	KindCreative    = "creative"
	KindScreenImage = "screen_image"
)

// Asset represents an uploaded media object.
type Asset struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Kind          string    `json:"kind"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"` // Internal path
	ThumbnailPath *string   `json:"-"` // Internal path
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// AssetURL returns the public URL for accessing an asset by its ID.
func AssetURL(id string) string {
	return "/assets/" + id
}

// ThumbnailURL returns the public URL for accessing an asset's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/assets/" + id + "/thumbnail"
}
