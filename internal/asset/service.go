package asset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumenview/screen-booking-backend/internal/pkg/storage"
)

// UploadInput carries the uploaded file plus its validation constraints.
type UploadInput struct {
	FileHeader   *multipart.FileHeader
	UserID       string
	Kind         string
	MaxSizeBytes int64    // 0 = no limit
	AllowedTypes []string // empty = allow all
}

type Service interface {
	Upload(ctx context.Context, in UploadInput) (*Asset, error)
	Get(ctx context.Context, id string) (*Asset, error)
	Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error
	Download(ctx context.Context, id string) (io.ReadCloser, *Asset, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Asset, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
	}
}

func (s *service) Upload(ctx context.Context, in UploadInput) (*Asset, error) {
	header := in.FileHeader

	if in.MaxSizeBytes > 0 && header.Size > in.MaxSizeBytes {
		return nil, ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if len(in.AllowedTypes) > 0 {
		allowed := false
		for _, t := range in.AllowedTypes {
			if contentType == t {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, ErrUnsupportedType
		}
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Buffer the content so it can be read twice, once for the original
	// and once for the thumbnail. Uploads are size-capped by the caller.
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))

	assetID := uuid.New().String()

	// Sharding path: assets/ab/UUID.ext
	shard := assetID[:2]
	storagePath := fmt.Sprintf("assets/%s/%s%s", shard, assetID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save asset to storage: %w", err)
	}

	var thumbnailPath *string
	// Thumbnail failure never fails the upload.
	if strings.HasPrefix(contentType, "image/") {
		thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), 200, 200)
		if err == nil {
			tPath := fmt.Sprintf("assets/%s/%s_thumb.jpg", shard, assetID)
			if err := s.storage.Save(ctx, tPath, thumbReader); err == nil {
				thumbnailPath = &tPath
			}
		}
	}

	a := &Asset{
		ID:            assetID,
		UserID:        in.UserID,
		Kind:          in.Kind,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          header.Size,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		// Clean up storage if recording the asset fails.
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return a, nil
}

func (s *service) Get(ctx context.Context, id string) (*Asset, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if a.UserID != actorID && !isSysAdmin {
		return ErrPermissionDenied
	}

	// Storage cleanup is best effort; the record is removed regardless.
	_ = s.storage.Delete(ctx, a.StoragePath)
	if a.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *a.ThumbnailPath)
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Asset, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, a.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve asset from storage: %w", err)
	}

	return stream, a, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Asset, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if a.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.storage.Get(ctx, *a.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}

	return stream, a, nil
}
