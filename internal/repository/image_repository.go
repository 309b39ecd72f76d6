package repository

import (
	"context"
	"time"

	"museum-backend/internal/database"
	"museum-backend/internal/models"

	"gorm.io/gorm"
)

// ImageRepository moves images through their lifecycle:
// ImageUpload -> AvailableImage -> Picture.
type ImageRepository interface {
	PromoteUpload(ctx context.Context, upload *models.ImageUpload, image *models.AvailableImage) error
	AttachImage(ctx context.Context, image *models.AvailableImage, picture *models.Picture) error
}

type imageRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewImageRepository(db *database.Database) ImageRepository {
	return &imageRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *imageRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// PromoteUpload replaces the upload record by the available image.
func (r *imageRepository) PromoteUpload(ctx context.Context, upload *models.ImageUpload, image *models.AvailableImage) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(image).Error; err != nil {
			return err
		}
		result := tx.Delete(upload)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// AttachImage replaces the available image by the picture.
func (r *imageRepository) AttachImage(ctx context.Context, image *models.AvailableImage, picture *models.Picture) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(image)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Create(picture).Error
	})
}
