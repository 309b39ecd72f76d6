package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"museum-backend/internal/config"
	"museum-backend/internal/models"
	"museum-backend/internal/repository"
	"museum-backend/internal/validation"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
)

const (
	StatusProcessing = "processing"
	StatusProcessed  = "processed"
)

// UploadStatus reports where an upload is in its lifecycle.
type UploadStatus struct {
	Status         string                 `json:"status" example:"processed"`
	AvailableImage *models.AvailableImage `json:"available_image"`
}

// ImageFile is an open image ready to be streamed to a client.
type ImageFile struct {
	io.ReadCloser
	Name        string
	ContentType string
	Size        int64
}

// ImageService owns image files from upload to attached picture.
type ImageService interface {
	StoreUpload(ctx context.Context, file *multipart.FileHeader) (*models.ImageUpload, error)
	Process(ctx context.Context, id string) (*models.AvailableImage, error)
	Status(ctx context.Context, id string) (*UploadStatus, error)
	DeleteUpload(ctx context.Context, id string) error
	DeleteAvailable(ctx context.Context, id string) error
	OpenAvailable(ctx context.Context, id string) (*ImageFile, error)
	AttachPicture(ctx context.Context, pictureableType, pictureableID string, values map[string]any) (*models.Picture, error)
	DeletePicture(ctx context.Context, id string) error
	OpenPicture(ctx context.Context, id string) (*ImageFile, error)
	Start(ctx context.Context)
	Stop()
}

type imageService struct {
	uploads   repository.Repository[models.ImageUpload]
	available repository.Repository[models.AvailableImage]
	pictures  repository.Repository[models.Picture]
	images    repository.ImageRepository
	storage   ObjectStorage
	cfg       config.UploadConfig
	logger    *logrus.Logger

	queue  chan string
	wg     sync.WaitGroup
	cancel context.CancelFunc

	// queued holds the IDs sitting in the queue or being processed.
	mu     sync.Mutex
	queued map[string]struct{}
}

func NewImageService(
	uploads repository.Repository[models.ImageUpload],
	available repository.Repository[models.AvailableImage],
	pictures repository.Repository[models.Picture],
	images repository.ImageRepository,
	storage ObjectStorage,
	cfg config.UploadConfig,
	logger *logrus.Logger,
) ImageService {
	queueLength := cfg.QueueLength
	if queueLength < 1 {
		queueLength = 1
	}
	return &imageService{
		uploads:   uploads,
		available: available,
		pictures:  pictures,
		images:    images,
		storage:   storage,
		cfg:       cfg,
		logger:    logger,
		queue:     make(chan string, queueLength),
		queued:    make(map[string]struct{}),
	}
}

func (s *imageService) StoreUpload(ctx context.Context, file *multipart.FileHeader) (*models.ImageUpload, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	base := slug.Make(strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename)))
	if base == "" {
		base = "image"
	}
	id := uuid.NewString()
	key := fmt.Sprintf("uploads/%s-%s%s", id, base, ext)
	contentType := validation.SniffContentType(file)

	if err := s.storage.Put(ctx, key, src, file.Size, contentType); err != nil {
		return nil, err
	}

	upload := &models.ImageUpload{
		UUIDModel: models.UUIDModel{ID: id},
		Path:      key,
		Name:      file.Filename,
		Extension: strings.TrimPrefix(ext, "."),
		MimeType:  contentType,
		Size:      file.Size,
	}
	if err := s.uploads.Create(ctx, upload); err != nil {
		_ = s.storage.Remove(ctx, key)
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"id": id, "path": key, "size": file.Size}).Info("Image uploaded")
	s.enqueue(id)
	return upload, nil
}

// Process turns an upload into an available image carrying the same ID.
func (s *imageService) Process(ctx context.Context, id string) (*models.AvailableImage, error) {
	upload, err := s.uploads.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	width, height, err := s.dimensions(ctx, upload.Path)
	if err != nil {
		s.logger.WithError(err).WithField("id", id).Warn("Could not read image dimensions")
	}

	key := fmt.Sprintf("images/%s.%s", upload.ID, upload.Extension)
	if upload.Extension == "" {
		key = "images/" + upload.ID
	}
	if err := s.storage.Copy(ctx, upload.Path, key); err != nil {
		return nil, err
	}

	img := &models.AvailableImage{
		UUIDModel: models.UUIDModel{ID: upload.ID},
		Path:      key,
		MimeType:  upload.MimeType,
		Size:      upload.Size,
		Width:     width,
		Height:    height,
	}
	if err := s.images.PromoteUpload(ctx, upload, img); err != nil {
		_ = s.storage.Remove(ctx, key)
		return nil, fmt.Errorf("failed to promote upload: %w", err)
	}
	if err := s.storage.Remove(ctx, upload.Path); err != nil {
		s.logger.WithError(err).WithField("path", upload.Path).Warn("Stale upload file left in storage")
	}

	s.logger.WithFields(logrus.Fields{"id": id, "path": key}).Info("Image processed")
	return img, nil
}

func (s *imageService) dimensions(ctx context.Context, key string) (int, int, error) {
	r, _, err := s.storage.Get(ctx, key)
	if err != nil {
		return 0, 0, err
	}
	defer r.Close()

	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

func (s *imageService) Status(ctx context.Context, id string) (*UploadStatus, error) {
	if _, err := s.uploads.FindByID(ctx, id); err == nil {
		return &UploadStatus{Status: StatusProcessing}, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	img, err := s.available.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &UploadStatus{Status: StatusProcessed, AvailableImage: img}, nil
}

func (s *imageService) DeleteUpload(ctx context.Context, id string) error {
	upload, err := s.uploads.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.uploads.Delete(ctx, id); err != nil {
		return err
	}
	s.removeFile(ctx, upload.Path)
	return nil
}

func (s *imageService) DeleteAvailable(ctx context.Context, id string) error {
	img, err := s.available.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.available.Delete(ctx, id); err != nil {
		return err
	}
	s.removeFile(ctx, img.Path)
	return nil
}

func (s *imageService) OpenAvailable(ctx context.Context, id string) (*ImageFile, error) {
	img, err := s.available.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.open(ctx, img.Path, filepath.Base(img.Path), img.MimeType)
}

// AttachPicture moves an available image to a new picture of the given owner.
func (s *imageService) AttachPicture(ctx context.Context, pictureableType, pictureableID string, values map[string]any) (*models.Picture, error) {
	imageID, _ := values["available_image_id"].(string)
	img, err := s.available.FindByID(ctx, imageID)
	if err != nil {
		return nil, err
	}

	picture, err := decode[models.Picture](without(values, "available_image_id"))
	if err != nil {
		return nil, err
	}
	picture.ID = uuid.NewString()
	picture.PictureableType = pictureableType
	picture.PictureableID = pictureableID
	picture.Path = "pictures/" + picture.ID + filepath.Ext(img.Path)
	picture.OriginalName = filepath.Base(img.Path)
	picture.MimeType = img.MimeType
	picture.Size = img.Size

	if err := s.storage.Copy(ctx, img.Path, picture.Path); err != nil {
		return nil, err
	}
	if err := s.images.AttachImage(ctx, img, picture); err != nil {
		_ = s.storage.Remove(ctx, picture.Path)
		return nil, fmt.Errorf("failed to attach image: %w", err)
	}
	s.removeFile(ctx, img.Path)

	s.logger.WithFields(logrus.Fields{
		"picture":          picture.ID,
		"pictureable_type": pictureableType,
		"pictureable_id":   pictureableID,
	}).Info("Image attached")
	return s.pictures.FindByID(ctx, picture.ID)
}

func (s *imageService) DeletePicture(ctx context.Context, id string) error {
	picture, err := s.pictures.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.pictures.Delete(ctx, id); err != nil {
		return err
	}
	s.removeFile(ctx, picture.Path)
	return nil
}

func (s *imageService) OpenPicture(ctx context.Context, id string) (*ImageFile, error) {
	picture, err := s.pictures.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name := picture.OriginalName
	if name == "" {
		name = filepath.Base(picture.Path)
	}
	return s.open(ctx, picture.Path, name, picture.MimeType)
}

func (s *imageService) open(ctx context.Context, key, name, mimeType string) (*ImageFile, error) {
	r, info, err := s.storage.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	contentType := info.ContentType
	if contentType == "" {
		contentType = mimeType
	}
	return &ImageFile{ReadCloser: r, Name: name, ContentType: contentType, Size: info.Size}, nil
}

func (s *imageService) removeFile(ctx context.Context, key string) {
	if err := s.storage.Remove(ctx, key); err != nil {
		s.logger.WithError(err).WithField("path", key).Warn("Failed to remove image file")
	}
}

// enqueue never blocks. It reports false when the queue is full; the
// upload then stays pending until the next sweep.
func (s *imageService) enqueue(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.queued[id]; ok {
		return true
	}
	select {
	case s.queue <- id:
		s.queued[id] = struct{}{}
		return true
	default:
		s.logger.WithField("id", id).Debug("Image processing queue is full")
		return false
	}
}

func (s *imageService) release(id string) {
	s.mu.Lock()
	delete(s.queued, id)
	s.mu.Unlock()
}

// Start launches the processing workers and a sweeper that keeps feeding
// pending uploads to them, including ones whose processing failed.
func (s *imageService) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	workers := s.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.work(ctx)
	}

	interval := s.cfg.PollInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	pending := s.sweep(ctx)
	s.wg.Add(1)
	go s.poll(ctx, interval)

	s.logger.WithFields(logrus.Fields{"workers": workers, "pending": pending}).Info("Image processing started")
}

func (s *imageService) poll(ctx context.Context, interval time.Duration) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep queues pending uploads oldest first until the queue is full and
// returns the number of pending uploads found.
func (s *imageService) sweep(ctx context.Context) int64 {
	perPage := cap(s.queue)
	var total int64
	for page := 1; ; page++ {
		pending, count, err := s.uploads.List(ctx, repository.ListQuery{Page: page, PerPage: perPage})
		if err != nil {
			if ctx.Err() == nil {
				s.logger.WithError(err).Error("Failed to list pending uploads")
			}
			return total
		}
		total = count
		for _, upload := range pending {
			if !s.enqueue(upload.ID) {
				return total
			}
		}
		if len(pending) < perPage || int64(page*perPage) >= count {
			return total
		}
	}
}

func (s *imageService) work(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case id := <-s.queue:
			if _, err := s.Process(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
				s.logger.WithError(err).WithField("id", id).Error("Failed to process image")
			}
			s.release(id)
		}
	}
}

func (s *imageService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func without(values map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
