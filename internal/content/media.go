package content

import (
	"context"
	"encoding/json"
	"path"
	"strings"

	"portfolio-admin/internal/apperr"
	"portfolio-admin/internal/auth"
	"portfolio-admin/internal/domain/media"
	"portfolio-admin/internal/fieldmap"
	"portfolio-admin/internal/infra/storage"
	"portfolio-admin/internal/infra/store"

	"github.com/rs/zerolog/log"
)

const mediaFolder = "media"

// MediaLibrary manages files uploaded outside of any single record.
type MediaLibrary struct {
	repo   Repository[media.Media]
	schema *fieldmap.Schema
	files  uploader
}

func NewMediaLibrary(repo Repository[media.Media], files storage.ObjectStore, maxUploadBytes int64) *MediaLibrary {
	return &MediaLibrary{
		repo:   repo,
		schema: fieldmap.MustFor(&media.Media{}, "media"),
		files:  uploader{files: files, maxBytes: maxUploadBytes},
	}
}

func (m *MediaLibrary) List(ctx context.Context) ([]media.Media, error) {
	out, err := m.repo.List(ctx, store.ListOptions{})
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindDatabase, "Could not load media")
	}
	return out, nil
}

// Upload stores the file and records it. alt and caption may be nil.
func (m *MediaLibrary) Upload(ctx context.Context, up *Upload, alt, caption *string) (*media.Media, error) {
	if _, err := auth.Require(ctx); err != nil {
		return nil, err
	}
	if up == nil {
		return nil, apperr.Required("file")
	}

	obj, err := m.files.put(ctx, "media", mediaFolder, up, mediaTypes)
	if err != nil {
		return nil, err
	}

	rec := &media.Media{
		Filename:   path.Base(strings.ReplaceAll(up.Filename, "\\", "/")),
		StorageKey: obj.Key,
		URL:        obj.URL,
		MimeType:   obj.MimeType,
		SizeBytes:  up.Size,
		Alt:        alt,
		Caption:    caption,
	}
	if err := m.repo.Create(ctx, rec); err != nil {
		m.files.discard(ctx, obj)
		return nil, apperr.Wrap(err, apperr.KindCreateFailed, "Failed to save media")
	}

	log.Info().Str("id", rec.ID).Str("key", rec.StorageKey).Msg("media uploaded")
	return rec, nil
}

// UpdateMeta changes alt text and caption. Everything else about a file is fixed.
func (m *MediaLibrary) UpdateMeta(ctx context.Context, id string, patch map[string]json.RawMessage) (*media.Media, error) {
	if _, err := auth.Require(ctx); err != nil {
		return nil, err
	}
	cols, err := m.schema.Columns(patch)
	if err != nil {
		return nil, err
	}

	updated, err := m.repo.Update(ctx, id, 0, cols)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindUpdateFailed, "Failed to update media")
	}
	return updated, nil
}

// Delete removes the row, then the stored object. A leftover object is only logged.
func (m *MediaLibrary) Delete(ctx context.Context, id string) error {
	if _, err := auth.Require(ctx); err != nil {
		return err
	}

	removed, err := m.repo.Delete(ctx, id)
	if err != nil {
		return apperr.Wrap(err, apperr.KindDeleteFailed, "Failed to delete media")
	}
	m.files.discard(ctx, &stored{Key: removed.StorageKey})
	return nil
}
