package gateway

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ImageBucket holds every uploaded image.
const ImageBucket = "portfolio-images"

// File is an image picked in an admin form and not yet uploaded.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ObjectStore is the object storage the uploader writes to.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	PublicURL(key string) string
}

type Uploader struct {
	store  ObjectStore
	now    func() time.Time
	logger zerolog.Logger
}

func NewUploader(store ObjectStore) *Uploader {
	return &Uploader{
		store:  store,
		now:    time.Now,
		logger: log.With().Str("component", "uploader").Logger(),
	}
}

// ObjectKey is <folder>/<unix millis>-<file name>.
func ObjectKey(folder, name string, at time.Time) string {
	return fmt.Sprintf("%s/%d-%s", folder, at.UnixMilli(), path.Base(name))
}

// UploadImage stores the file under folder and returns its public URL.
// ok is false when the upload failed.
func (u *Uploader) UploadImage(ctx context.Context, file File, folder string) (string, bool) {
	key := ObjectKey(folder, file.Name, u.now())
	if err := u.store.Put(ctx, key, file.ContentType, file.Data); err != nil {
		u.logger.Error().Err(err).Str("key", key).Msg("Failed to upload image")
		return "", false
	}
	return u.store.PublicURL(key), true
}
