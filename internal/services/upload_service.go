package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"heyprodata_backend/internal/config"
	"heyprodata_backend/internal/logger"
	"heyprodata_backend/internal/models"
	"heyprodata_backend/internal/repositories"
	"heyprodata_backend/internal/services/dto"
	"heyprodata_backend/internal/storage"
	"heyprodata_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type UploadService interface {
	Store(ctx context.Context, userID, originalName, mimeType, usage string, size int64, reader io.Reader) (*dto.UploadResponse, error)
	Open(ctx context.Context, uploadID string) (*models.Upload, io.ReadCloser, error)
	Delete(ctx context.Context, uploadID, requesterID string) error
	ListMine(userID string) ([]dto.UploadResponse, error)
}

type UploadServiceImpl struct {
	uploadRepo repositories.UploadRepository
	store      storage.Storage
}

func NewUploadService(uploadRepo repositories.UploadRepository, store storage.Storage) UploadService {
	return &UploadServiceImpl{uploadRepo: uploadRepo, store: store}
}

// Store validates the file against the configured size cap and mime
// whitelist, writes it to storage and records the Upload row.
func (s *UploadServiceImpl) Store(ctx context.Context, userID, originalName, mimeType, usage string, size int64, reader io.Reader) (*dto.UploadResponse, error) {
	cfg := config.GetConfig()

	if size > cfg.Upload.MaxSize {
		return nil, apperrors.ErrPayloadTooLarge(
			fmt.Sprintf("File exceeds the maximum size of %d bytes", cfg.Upload.MaxSize))
	}

	if !allowedMimeType(mimeType, cfg.Upload.AllowedTypes) {
		return nil, apperrors.ErrUnsupportedMediaType(
			fmt.Sprintf("File type '%s' is not allowed", mimeType))
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	key := fmt.Sprintf("%s/%s%s", time.Now().Format("2006/01"), uuid.NewString(), ext)

	if err := s.store.Save(ctx, key, reader, mimeType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// The public URL routes through the file-serving endpoint by row ID,
	// so the ID is assigned up front instead of by the column default.
	id := uuid.NewString()
	upload := &models.Upload{
		UserID:       userID,
		Path:         key,
		OriginalName: originalName,
		MimeType:     mimeType,
		Size:         size,
		Usage:        usage,
		URL:          s.store.URL(id),
	}
	upload.ID = id

	if err := s.uploadRepo.Create(upload); err != nil {
		// Keep storage consistent with the database.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			logger.WithError(delErr).Warn("failed to clean up orphaned file", "path", key)
		}
		return nil, apperrors.InternalError(err)
	}

	return toUploadResponse(upload), nil
}

func (s *UploadServiceImpl) Open(ctx context.Context, uploadID string) (*models.Upload, io.ReadCloser, error) {
	upload, err := s.uploadRepo.FindByID(uploadID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUploadNotFound) {
			return nil, nil, apperrors.ErrNotFound(err, "File not found")
		}
		return nil, nil, apperrors.InternalError(err)
	}

	reader, err := s.store.Get(ctx, upload.Path)
	if err != nil {
		return nil, nil, apperrors.ErrNotFound(err, "File not found")
	}

	return upload, reader, nil
}

func (s *UploadServiceImpl) Delete(ctx context.Context, uploadID, requesterID string) error {
	upload, err := s.uploadRepo.FindByID(uploadID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUploadNotFound) {
			return apperrors.ErrNotFound(err, "File not found")
		}
		return apperrors.InternalError(err)
	}

	if upload.UserID != requesterID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.uploadRepo.Delete(uploadID); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.store.Delete(ctx, upload.Path); err != nil {
		logger.WithError(err).Warn("failed to delete stored file", "path", upload.Path)
	}
	return nil
}

func (s *UploadServiceImpl) ListMine(userID string) ([]dto.UploadResponse, error) {
	uploads, err := s.uploadRepo.ListByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.UploadResponse, 0, len(uploads))
	for i := range uploads {
		out = append(out, *toUploadResponse(&uploads[i]))
	}
	return out, nil
}

func allowedMimeType(mimeType string, allowed []string) bool {
	for _, t := range allowed {
		if strings.EqualFold(t, mimeType) {
			return true
		}
	}
	return false
}

func toUploadResponse(upload *models.Upload) *dto.UploadResponse {
	return &dto.UploadResponse{
		ID:           upload.ID,
		OriginalName: upload.OriginalName,
		MimeType:     upload.MimeType,
		Size:         upload.Size,
		Usage:        upload.Usage,
		URL:          upload.URL,
		CreatedAt:    upload.CreatedAt,
	}
}
