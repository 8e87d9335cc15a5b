package store

import (
	"context"

	"portfolio-admin/internal/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const statusPublished = "published"

// ListOptions narrows a listing.
type ListOptions struct {
	PublishedOnly bool
	// Order is a raw ORDER BY clause; empty means the repo default.
	Order string
}

// Repo is the GORM data access shared by every content kind. what names the record kind in
// error messages.
type Repo[T any] struct {
	db           *gorm.DB
	what         string
	versioned    bool
	defaultOrder string
}

func NewRepo[T any](db *gorm.DB, what string, versioned bool, defaultOrder string) *Repo[T] {
	if defaultOrder == "" {
		defaultOrder = "created_at DESC"
	}
	return &Repo[T]{db: db, what: what, versioned: versioned, defaultOrder: defaultOrder}
}

func (r *Repo[T]) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(new(T))
}

func (r *Repo[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	q := r.query(ctx)
	if opts.PublishedOnly {
		q = q.Where("status = ?", statusPublished)
	}
	order := opts.Order
	if order == "" {
		order = r.defaultOrder
	}

	var out []T
	if err := q.Order(order).Find(&out).Error; err != nil {
		return nil, apperr.FromDB(err, r.what)
	}
	return out, nil
}

// validID reports whether id can name a row. Keys are uuid columns, and Postgres rejects
// anything else with an error instead of matching nothing.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// staleWrite is returned when a version-checked write finds the row already moved on.
func staleWrite(what string) error {
	return apperr.New(apperr.KindUpdateFailed, "The "+what+" was changed by someone else, reload and try again")
}

func (r *Repo[T]) GetByID(ctx context.Context, id string) (*T, error) {
	if !validID(id) {
		return nil, apperr.NotFound(r.what)
	}
	var out T
	if err := r.db.WithContext(ctx).First(&out, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, r.what)
	}
	return &out, nil
}

func (r *Repo[T]) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*T, error) {
	q := r.db.WithContext(ctx).Where("slug = ?", slug)
	if publishedOnly {
		q = q.Where("status = ?", statusPublished)
	}
	var out T
	if err := q.First(&out).Error; err != nil {
		return nil, apperr.FromDB(err, r.what)
	}
	return &out, nil
}

// SlugTaken reports whether another record already uses slug. excludeID may be empty.
func (r *Repo[T]) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	q := r.query(ctx).Where("slug = ?", slug)
	if validID(excludeID) {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, apperr.FromDB(err, r.what)
	}
	return n > 0, nil
}

func (r *Repo[T]) Create(ctx context.Context, rec *T) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return apperr.FromDB(err, r.what)
	}
	return nil
}

// Update writes cols to the record and returns the fresh row. A positive expectedVersion
// makes the write conditional on the row still being at that version.
func (r *Repo[T]) Update(ctx context.Context, id string, expectedVersion int, cols map[string]any) (*T, error) {
	if !validID(id) {
		return nil, apperr.NotFound(r.what)
	}
	checked := r.versioned && expectedVersion > 0

	values := make(map[string]any, len(cols)+1)
	for k, v := range cols {
		values[k] = v
	}
	if r.versioned {
		values["version"] = gorm.Expr("version + 1")
	}
	if len(values) > 0 {
		q := r.query(ctx).Where("id = ?", id)
		if checked {
			q = q.Where("version = ?", expectedVersion)
		}
		res := q.Updates(values)
		if res.Error != nil {
			return nil, apperr.FromDB(res.Error, r.what)
		}
		if res.RowsAffected == 0 {
			if checked {
				if _, err := r.GetByID(ctx, id); err == nil {
					return nil, staleWrite(r.what)
				}
			}
			return nil, apperr.NotFound(r.what)
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes the record and returns what was removed.
func (r *Repo[T]) Delete(ctx context.Context, id string) (*T, error) {
	rec, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return nil, apperr.FromDB(res.Error, r.what)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound(r.what)
	}
	return rec, nil
}
