package services_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"museum-backend/internal/config"
	"museum-backend/internal/database"
	"museum-backend/internal/models"
	"museum-backend/internal/repository"
	"museum-backend/internal/services"
	"museum-backend/internal/testutil"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type imageFixture struct {
	db      *database.Database
	storage *testutil.MemoryStorage
	svc     services.ImageService
}

func newImageFixture(t *testing.T) *imageFixture {
	t.Helper()
	db, err := database.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	storage := testutil.NewMemoryStorage()
	svc := services.NewImageService(
		repository.New[models.ImageUpload](db),
		repository.New[models.AvailableImage](db),
		repository.New[models.Picture](db, "Translations"),
		repository.NewImageRepository(db),
		storage,
		config.UploadConfig{MaxSize: 1 << 20, Workers: 1, QueueLength: 4, PollInterval: 20 * time.Millisecond},
		logger,
	)
	return &imageFixture{db: db, storage: storage, svc: svc}
}

func TestImageLifecycle(t *testing.T) {
	f := newImageFixture(t)
	ctx := context.Background()

	upload, err := f.svc.StoreUpload(ctx, testutil.FileHeader(t, "Front View.PNG", testutil.PNG(t, 4, 3)))
	require.NoError(t, err)
	assert.Equal(t, "png", upload.Extension)
	assert.Equal(t, "image/png", upload.MimeType)
	assert.True(t, strings.HasPrefix(upload.Path, "uploads/"+upload.ID+"-front-view"))
	assert.True(t, f.storage.Has(upload.Path))

	status, err := f.svc.Status(ctx, upload.ID)
	require.NoError(t, err)
	assert.Equal(t, services.StatusProcessing, status.Status)

	img, err := f.svc.Process(ctx, upload.ID)
	require.NoError(t, err)
	assert.Equal(t, upload.ID, img.ID)
	assert.Equal(t, 4, img.Width)
	assert.Equal(t, 3, img.Height)
	assert.False(t, f.storage.Has(upload.Path))
	assert.True(t, f.storage.Has(img.Path))

	status, err = f.svc.Status(ctx, upload.ID)
	require.NoError(t, err)
	assert.Equal(t, services.StatusProcessed, status.Status)
	require.NotNil(t, status.AvailableImage)

	item := &models.Item{InternalName: "vase", Type: "object"}
	require.NoError(t, repository.New[models.Item](f.db).Create(ctx, item))

	picture, err := f.svc.AttachPicture(ctx, models.PictureableItem, item.ID, map[string]any{
		"available_image_id": img.ID,
		"internal_name":      "vase-front",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PictureableItem, picture.PictureableType)
	assert.Equal(t, item.ID, picture.PictureableID)
	assert.Equal(t, "vase-front", picture.InternalName)
	assert.False(t, f.storage.Has(img.Path))

	_, err = f.svc.OpenAvailable(ctx, img.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	file, err := f.svc.OpenPicture(ctx, picture.ID)
	require.NoError(t, err)
	data, err := io.ReadAll(file)
	require.NoError(t, err)
	require.NoError(t, file.Close())
	assert.Equal(t, testutil.PNG(t, 4, 3), data)
	assert.Equal(t, "image/png", file.ContentType)

	require.NoError(t, f.svc.DeletePicture(ctx, picture.ID))
	assert.Empty(t, f.storage.Keys())
}

func TestImageStatusUnknownUpload(t *testing.T) {
	f := newImageFixture(t)

	_, err := f.svc.Status(context.Background(), "0b8f7a4e-3c1d-4e2f-9a8b-7c6d5e4f3a2b")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestImageWorkersProcessQueuedUploads(t *testing.T) {
	f := newImageFixture(t)
	ctx := context.Background()

	f.svc.Start(ctx)
	t.Cleanup(f.svc.Stop)

	upload, err := f.svc.StoreUpload(ctx, testutil.FileHeader(t, "scan.png", testutil.PNG(t, 2, 2)))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		status, err := f.svc.Status(ctx, upload.ID)
		return err == nil && status.Status == services.StatusProcessed
	}, 2*time.Second, 20*time.Millisecond)
}

func TestImageWorkersDrainMoreUploadsThanTheQueueHolds(t *testing.T) {
	f := newImageFixture(t)
	ctx := context.Background()

	var ids []string
	store := func(n int) {
		for i := 0; i < n; i++ {
			upload, err := f.svc.StoreUpload(ctx, testutil.FileHeader(t, "scan.png", testutil.PNG(t, 2, 2)))
			require.NoError(t, err)
			ids = append(ids, upload.ID)
		}
	}

	store(10)
	f.svc.Start(ctx)
	t.Cleanup(f.svc.Stop)
	store(10)

	assert.Eventually(t, func() bool {
		for _, id := range ids {
			status, err := f.svc.Status(ctx, id)
			if err != nil || status.Status != services.StatusProcessed {
				return false
			}
		}
		return true
	}, 5*time.Second, 20*time.Millisecond)
}

func TestImageWorkersRetryFailedUploads(t *testing.T) {
	f := newImageFixture(t)
	ctx := context.Background()

	upload, err := f.svc.StoreUpload(ctx, testutil.FileHeader(t, "scan.png", testutil.PNG(t, 2, 2)))
	require.NoError(t, err)
	body, _, err := f.storage.Get(ctx, upload.Path)
	require.NoError(t, err)
	content, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, body.Close())
	require.NoError(t, f.storage.Remove(ctx, upload.Path))

	f.svc.Start(ctx)
	t.Cleanup(f.svc.Stop)

	// With the file gone every attempt fails and the upload stays pending.
	time.Sleep(100 * time.Millisecond)
	status, err := f.svc.Status(ctx, upload.ID)
	require.NoError(t, err)
	assert.Equal(t, services.StatusProcessing, status.Status)

	require.NoError(t, f.storage.Put(ctx, upload.Path, bytes.NewReader(content), int64(len(content)), upload.MimeType))
	assert.Eventually(t, func() bool {
		status, err := f.svc.Status(ctx, upload.ID)
		return err == nil && status.Status == services.StatusProcessed
	}, 2*time.Second, 20*time.Millisecond)
}

func TestDeleteUploadRemovesFile(t *testing.T) {
	f := newImageFixture(t)
	ctx := context.Background()

	upload, err := f.svc.StoreUpload(ctx, testutil.FileHeader(t, "scan.png", testutil.PNG(t, 2, 2)))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteUpload(ctx, upload.ID))
	assert.False(t, f.storage.Has(upload.Path))

	_, err = f.svc.Status(ctx, upload.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
