// Package content holds the create, update and delete workflows shared by every slugged
// content kind, and the media library.
package content

import (
	"context"
	"encoding/json"
	"strings"

	"portfolio-admin/internal/apperr"
	"portfolio-admin/internal/auth"
	"portfolio-admin/internal/domain/works"
	"portfolio-admin/internal/fieldmap"
	"portfolio-admin/internal/infra/storage"
	"portfolio-admin/internal/infra/store"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
)

// Record is implemented by every slugged content model.
type Record interface {
	PrimaryID() string
	SlugValue() string
	SetSlug(string)
	TitleValue() string
}

// Covered models carry one cover image URL.
type Covered interface {
	SetCoverURL(string)
	CoverURL() string
}

// Sanitizable models hold rich-text HTML.
type Sanitizable interface {
	SanitizeHTML(*bluemonday.Policy)
}

// Normalizer models tidy their own fields before validation and insert.
type Normalizer interface {
	Normalize()
}

// Patcher models adjust column updates before they are validated and written.
type Patcher interface {
	BeforePatch(cols map[string]any)
}

// Repository is the persistence a Service needs. *store.Repo satisfies it.
type Repository[T any] interface {
	List(ctx context.Context, opts store.ListOptions) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*T, error)
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, rec *T) error
	Update(ctx context.Context, id string, expectedVersion int, cols map[string]any) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
}

type Options struct {
	// What names the kind in messages, e.g. "Artwork".
	What string
	// Folder is the object key prefix for uploads.
	Folder string
	// CoverField is the JSON name of the field an uploaded image is written to. Empty means the
	// kind takes no uploads.
	CoverField string
	// MaxUploadBytes caps upload size; zero means no cap.
	MaxUploadBytes int64
}

type Service[T any, PT interface {
	*T
	Record
}] struct {
	repo   Repository[T]
	schema *fieldmap.Schema
	files  uploader
	opts   Options
	policy *bluemonday.Policy
}

func NewService[T any, PT interface {
	*T
	Record
}](repo Repository[T], files storage.ObjectStore, opts Options) *Service[T, PT] {
	return &Service[T, PT]{
		repo:   repo,
		schema: fieldmap.MustFor(new(T), strings.ToLower(opts.What)),
		files:  uploader{files: files, maxBytes: opts.MaxUploadBytes},
		opts:   opts,
		policy: bluemonday.UGCPolicy(),
	}
}

func (s *Service[T, PT]) Schema() *fieldmap.Schema {
	return s.schema
}

func (s *Service[T, PT]) List(ctx context.Context, includeDrafts bool) ([]T, error) {
	out, err := s.repo.List(ctx, store.ListOptions{PublishedOnly: !includeDrafts})
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindDatabase, "Could not load "+strings.ToLower(s.opts.What)+"s")
	}
	return out, nil
}

func (s *Service[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	return s.repo.GetByID(ctx, id)
}

// Published returns the published record with slug for public pages.
func (s *Service[T, PT]) Published(ctx context.Context, slug string) (*T, error) {
	return s.repo.GetBySlug(ctx, slug, true)
}

// Create validates rec, stores the optional upload and inserts the row. If the insert fails the
// upload is removed again.
func (s *Service[T, PT]) Create(ctx context.Context, rec *T, up *Upload) (*T, error) {
	if _, err := auth.Require(ctx); err != nil {
		return nil, err
	}
	p := PT(rec)

	if strings.TrimSpace(p.TitleValue()) == "" {
		return nil, apperr.Required("title")
	}
	if n, ok := any(p).(Normalizer); ok {
		n.Normalize()
	}
	if err := s.schema.Check(rec); err != nil {
		return nil, err
	}
	slug := strings.TrimSpace(p.SlugValue())
	if slug == "" {
		slug = works.MakeSlug(p.TitleValue())
	}
	if err := s.checkSlug(ctx, slug, ""); err != nil {
		return nil, err
	}
	p.SetSlug(slug)

	if h, ok := any(p).(Sanitizable); ok {
		h.SanitizeHTML(s.policy)
	}

	var obj *stored
	if up != nil {
		covered, ok := any(p).(Covered)
		if !ok || s.opts.CoverField == "" {
			return nil, apperr.Newf(apperr.KindValidation, "%s does not take a file upload", s.opts.What)
		}
		var err error
		obj, err = s.files.put(ctx, strings.ToLower(s.opts.What), s.opts.Folder, up, imageTypes)
		if err != nil {
			return nil, err
		}
		covered.SetCoverURL(obj.URL)
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		s.files.discard(ctx, obj)
		return nil, apperr.Wrap(err, apperr.KindCreateFailed, "Failed to create "+strings.ToLower(s.opts.What))
	}

	log.Info().Str("kind", s.opts.What).Str("id", p.PrimaryID()).Str("slug", slug).Msg("created")
	return rec, nil
}

// Update applies a partial camelCase patch and an optional new cover upload. A "version" in
// the patch is the version the client last read; the write fails if the row has moved on.
func (s *Service[T, PT]) Update(ctx context.Context, id string, patch map[string]json.RawMessage, up *Upload) (*T, error) {
	if _, err := auth.Require(ctx); err != nil {
		return nil, err
	}
	expected, patch, err := expectedVersion(patch)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cols, err := s.schema.Columns(patch)
	if err != nil {
		return nil, err
	}
	if v, ok := cols["title"]; ok {
		title, _ := v.(string)
		if strings.TrimSpace(title) == "" {
			return nil, apperr.Required("title")
		}
	}
	if v, ok := cols["slug"]; ok {
		slug, _ := v.(string)
		slug = strings.TrimSpace(slug)
		if err := s.checkSlug(ctx, slug, id); err != nil {
			return nil, err
		}
		cols["slug"] = slug
	}
	if v, ok := cols["content"].(string); ok {
		cols["content"] = s.policy.Sanitize(v)
	}
	if h, ok := any(PT(current)).(Patcher); ok {
		h.BeforePatch(cols)
	}
	if err := s.schema.Validate(cols); err != nil {
		return nil, err
	}

	var obj *stored
	previousCover := ""
	if up != nil {
		covered, ok := any(PT(current)).(Covered)
		column, known := s.schema.Column(s.opts.CoverField)
		if !ok || !known {
			return nil, apperr.Newf(apperr.KindValidation, "%s does not take a file upload", s.opts.What)
		}
		obj, err = s.files.put(ctx, strings.ToLower(s.opts.What), s.opts.Folder, up, imageTypes)
		if err != nil {
			return nil, err
		}
		previousCover = covered.CoverURL()
		cols[column] = obj.URL
	}

	updated, err := s.repo.Update(ctx, id, expected, cols)
	if err != nil {
		s.files.discard(ctx, obj)
		return nil, apperr.Wrap(err, apperr.KindUpdateFailed, "Failed to update "+strings.ToLower(s.opts.What))
	}
	if obj != nil && previousCover != obj.URL {
		s.files.release(ctx, previousCover)
	}
	return updated, nil
}

// Delete removes the row, then its cover image.
func (s *Service[T, PT]) Delete(ctx context.Context, id string) error {
	if _, err := auth.Require(ctx); err != nil {
		return err
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperr.Wrap(err, apperr.KindDeleteFailed, "Failed to delete "+strings.ToLower(s.opts.What))
	}
	if covered, ok := any(PT(removed)).(Covered); ok {
		s.files.release(ctx, covered.CoverURL())
	}
	log.Info().Str("kind", s.opts.What).Str("id", id).Msg("deleted")
	return nil
}

// expectedVersion takes the optional "version" precondition out of a patch.
func expectedVersion(patch map[string]json.RawMessage) (int, map[string]json.RawMessage, error) {
	raw, ok := patch["version"]
	if !ok {
		return 0, patch, nil
	}
	var version int
	if err := json.Unmarshal(raw, &version); err != nil || version < 1 {
		return 0, nil, apperr.InvalidFormat("version", "version must be a positive whole number")
	}
	rest := make(map[string]json.RawMessage, len(patch)-1)
	for k, v := range patch {
		if k != "version" {
			rest[k] = v
		}
	}
	return version, rest, nil
}

func (s *Service[T, PT]) checkSlug(ctx context.Context, slug, excludeID string) error {
	if !works.ValidSlug(slug) {
		return apperr.InvalidFormat("slug", "Slug may only contain lowercase letters, numbers and single hyphens")
	}
	taken, err := s.repo.SlugTaken(ctx, slug, excludeID)
	if err != nil {
		return apperr.Wrap(err, apperr.KindDatabase, "Could not check slug")
	}
	if taken {
		return &apperr.Error{
			Kind:    apperr.KindDuplicate,
			Message: "Another " + strings.ToLower(s.opts.What) + " already uses this slug",
			Field:   "slug",
		}
	}
	return nil
}
