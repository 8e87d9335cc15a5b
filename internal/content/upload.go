package content

import (
	"context"
	"io"
	"strings"

	"portfolio-admin/internal/apperr"
	"portfolio-admin/internal/infra/storage"
	"portfolio-admin/internal/metrics"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// Upload is a file received with a create or update request.
type Upload struct {
	Filename string
	Size     int64
	Body     io.ReadSeeker
}

// stored is an object written during a request, kept so it can be removed again if the
// database write that follows fails.
type stored struct {
	Key      string
	URL      string
	MimeType string
}

var (
	imageTypes = []string{"image/"}
	mediaTypes = []string{"image/", "video/", "audio/", "application/pdf"}
)

type uploader struct {
	files    storage.ObjectStore
	maxBytes int64
}

// put checks the file and writes it under folder. The content type is sniffed from the bytes;
// the client's claim is ignored.
func (u uploader) put(ctx context.Context, kind, folder string, up *Upload, allowed []string) (*stored, error) {
	if u.files == nil {
		return nil, apperr.New(apperr.KindValidation, "File uploads are not configured")
	}
	if up.Size <= 0 {
		return nil, apperr.New(apperr.KindValidation, "Uploaded file is empty")
	}
	if u.maxBytes > 0 && up.Size > u.maxBytes {
		return nil, apperr.Newf(apperr.KindValidation, "File is too large (max %d MB)", u.maxBytes>>20)
	}

	mt, err := mimetype.DetectReader(up.Body)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindInvalidFormat, "Could not read uploaded file")
	}
	if _, err := up.Body.Seek(0, io.SeekStart); err != nil {
		return nil, apperr.Wrap(err, apperr.KindUnknown, "Could not read uploaded file")
	}
	mime := mt.String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if !allowedType(mime, allowed) {
		metrics.UploadsTotal.WithLabelValues(kind, "rejected").Inc()
		return nil, &apperr.Error{
			Kind:    apperr.KindInvalidFormat,
			Message: "This file type is not allowed",
			Detail:  mime,
			Field:   "file",
		}
	}

	key := storage.NewKey(folder, up.Filename)
	if err := u.files.Put(ctx, key, up.Body, up.Size, mime); err != nil {
		metrics.UploadsTotal.WithLabelValues(kind, "failed").Inc()
		return nil, apperr.Wrap(err, apperr.KindCreateFailed, "Failed to upload file")
	}
	metrics.UploadsTotal.WithLabelValues(kind, "stored").Inc()

	return &stored{Key: key, URL: u.files.PublicURL(key), MimeType: mime}, nil
}

// discard removes an object whose database row could not be written.
func (u uploader) discard(ctx context.Context, obj *stored) {
	if obj == nil || u.files == nil {
		return
	}
	if err := u.files.Delete(ctx, obj.Key); err != nil {
		log.Error().Err(err).Str("key", obj.Key).Msg("failed to remove orphaned upload")
	}
}

// release removes the object behind a public URL we no longer reference. URLs outside our
// bucket are left alone.
func (u uploader) release(ctx context.Context, url string) {
	if u.files == nil || url == "" {
		return
	}
	key, ok := u.files.KeyFromURL(url)
	if !ok {
		return
	}
	if err := u.files.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to remove replaced upload")
	}
}

func allowedType(mime string, allowed []string) bool {
	for _, a := range allowed {
		if strings.HasSuffix(a, "/") && strings.HasPrefix(mime, a) {
			return true
		}
		if mime == a {
			return true
		}
	}
	return false
}
