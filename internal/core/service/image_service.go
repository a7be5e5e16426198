package service

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
	"github.com/Mirieri/nikonangombeghani-api/internal/core/ports"
)

// CattleImageService uploads photos to storage and records their URLs.
type CattleImageService struct {
	*RecordService[domain.CattleImage, domain.CattleImageCreate]
	images  ports.CattleImageRepository
	cattle  ports.Reader[domain.Cattle]
	storage ports.ImageStorage
}

func NewCattleImageService(
	images ports.CattleImageRepository,
	cattle ports.Reader[domain.Cattle],
	storage ports.ImageStorage,
	log zerolog.Logger,
) *CattleImageService {
	return &CattleImageService{
		RecordService: NewRecordService[domain.CattleImage, domain.CattleImageCreate]("image", images, log),
		images:        images,
		cattle:        cattle,
		storage:       storage,
	}
}

// Upload stores body for an existing animal and records the resulting URL.
func (s *CattleImageService) Upload(ctx context.Context, cattleID int64, filename, contentType string, body io.Reader) (*domain.CattleImage, error) {
	if _, err := s.cattle.Get(ctx, cattleID); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	url, err := s.storage.Save(ctx, filename, contentType, body)
	if err != nil {
		s.log.Error().Err(err).Int64("cattle_id", cattleID).Msg("image storage failed")
		return nil, fmt.Errorf("upload image: %w", err)
	}

	img, err := s.Create(ctx, domain.CattleImageCreate{CattleID: cattleID, ImageURL: url})
	if err != nil {
		// The stored object has no row pointing at it.
		s.log.Error().Err(err).Int64("cattle_id", cattleID).Str("url", url).Msg("orphaned image: record failed after storage")
		return nil, err
	}
	s.log.Info().Int64("cattle_id", cattleID).Int64("image_id", img.ID).Str("url", url).Msg("image uploaded")
	return img, nil
}

func (s *CattleImageService) ListByCattle(ctx context.Context, cattleID int64) ([]*domain.CattleImage, error) {
	if _, err := s.cattle.Get(ctx, cattleID); err != nil {
		return nil, err
	}
	return s.images.ListByCattle(ctx, cattleID)
}
