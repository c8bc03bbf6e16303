package http

type AssetUploadResponse struct {
	Message      string  `json:"message"`
	AssetID      string  `json:"asset_id"`
	URL          string  `json:"url"`
	ThumbnailURL *string `json:"thumbnail_url"`
}
