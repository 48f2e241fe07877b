package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/greenleaf/leaf_api/internal/utils"
)

// ImageBucket stores uploaded images and hands back public URLs.
type ImageBucket interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ImageUpload carries one image file chosen in a form.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// imageUploader implements the upload half of the two-phase
// upload-then-insert flow shared by product and slideshow authoring.
type imageUploader struct {
	bucket   ImageBucket
	maxBytes int64
}

// upload stores the file under a random object name and returns the object
// key and public URL. A failed upload aborts the whole submission.
func (u *imageUploader) upload(ctx context.Context, image *ImageUpload) (key, url string, err error) {
	if u.maxBytes > 0 && int64(len(image.Data)) > u.maxBytes {
		return "", "", utils.ErrImageTooLarge
	}

	ext := strings.TrimPrefix(path.Ext(image.Filename), ".")
	if ext == "" {
		ext = "jpg"
	}
	key = fmt.Sprintf("%s.%s", uuid.New().String(), ext)

	url, err = u.bucket.Upload(ctx, key, image.Data, contentTypeForExt(ext))
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("image upload failed")
		return "", "", utils.ErrUploadFailed
	}
	return key, url, nil
}

// discard is the compensating action for a row write that failed after its
// image upload succeeded. Best effort: the failure that brought us here is
// the one reported to the caller.
func (u *imageUploader) discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := u.bucket.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to remove orphaned image object")
	}
}

func contentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
