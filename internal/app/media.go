/**
 * @description
 * This file contains the business logic for media uploads. Files are written
 * to local disk under a configured directory; content endpoints reference
 * media by id.
 */
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/apperr"
	"github.com/viteezy/commerce-backend/internal/domain"
	"github.com/viteezy/commerce-backend/internal/store"
)

// MaxMediaBytes caps a single upload at 10 MiB.
const MaxMediaBytes = 10 << 20

// MediaRepository defines the database operations the media service needs.
type MediaRepository interface {
	CreateMedia(ctx context.Context, m *domain.Media) (*domain.Media, error)
	GetMediaByID(ctx context.Context, id uuid.UUID) (*domain.Media, error)
}

// MediaService stores uploaded files and their metadata.
type MediaService struct {
	repo MediaRepository
	dir  string
}

// NewMediaService creates a new media service writing files under dir.
func NewMediaService(repo MediaRepository, dir string) *MediaService {
	return &MediaService{repo: repo, dir: dir}
}

var allowedMediaTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
	"application/pdf": ".pdf",
}

// Save writes the upload to disk under a generated name and records its
// metadata. The stored name is derived from the media id, never from the
// client-supplied filename.
func (s *MediaService) Save(ctx context.Context, fileName, contentType string, size int64, src io.Reader, by uuid.UUID) (*domain.Media, error) {
	ext, ok := allowedMediaTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, apperr.Unprocessable("unsupported content type: " + contentType)
	}
	if size > MaxMediaBytes {
		return nil, apperr.Unprocessable("file exceeds the upload size limit")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare media directory: %w", err)
	}

	id := uuid.New()
	storagePath := filepath.Join(s.dir, id.String()+ext)

	dst, err := os.Create(storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create media file: %w", err)
	}
	written, err := io.Copy(dst, io.LimitReader(src, MaxMediaBytes+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err == nil && written > MaxMediaBytes {
		err = apperr.Unprocessable("file exceeds the upload size limit")
	}
	if err != nil {
		os.Remove(storagePath)
		return nil, err
	}

	media, err := s.repo.CreateMedia(ctx, &domain.Media{
		ID:          id,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   written,
		StoragePath: storagePath,
		Audit:       domain.Audit{CreatedBy: &by},
	})
	if err != nil {
		os.Remove(storagePath)
		return nil, err
	}
	return media, nil
}

// Get returns media metadata by id.
func (s *MediaService) Get(ctx context.Context, id uuid.UUID) (*domain.Media, error) {
	media, err := s.repo.GetMediaByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("media not found")
		}
		return nil, err
	}
	return media, nil
}

// Open returns the stored file contents and metadata for serving.
func (s *MediaService) Open(ctx context.Context, id uuid.UUID) (*domain.Media, io.ReadCloser, error) {
	media, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(media.StoragePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, apperr.NotFound("media file missing from storage")
		}
		return nil, nil, err
	}
	return media, f, nil
}
