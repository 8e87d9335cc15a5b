package store

import (
	"context"

	"portfolio-admin/internal/apperr"
	"portfolio-admin/internal/domain/works"

	"gorm.io/gorm"
)

const artworkOrder = "sort_order ASC, updated_at DESC"

// ArtworkQuery narrows ListArtworks.
type ArtworkQuery struct {
	IncludeDrafts bool
	IDs           []string
	// InCollection keeps artworks with a non-empty series.
	InCollection    bool
	WithExhibitions bool
}

// ArtworkStore is the artwork table: plain CRUD plus the array-field writes the curation
// protocol needs.
type ArtworkStore struct {
	*Repo[works.Artwork]
	db *gorm.DB
}

func NewArtworkStore(db *gorm.DB) *ArtworkStore {
	return &ArtworkStore{
		Repo: NewRepo[works.Artwork](db, "artwork", true, artworkOrder),
		db:   db,
	}
}

func (s *ArtworkStore) artworks(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&works.Artwork{})
}

func (s *ArtworkStore) ListArtworks(ctx context.Context, q ArtworkQuery) ([]works.Artwork, error) {
	tx := s.artworks(ctx)
	if !q.IncludeDrafts {
		tx = tx.Where("status = ?", works.StatusPublished)
	}
	if q.IDs != nil {
		tx = tx.Where("id IN ?", uuidsOnly(q.IDs))
	}
	if q.InCollection {
		tx = tx.Where("series IS NOT NULL AND series <> ''")
	}
	if q.WithExhibitions {
		tx = tx.Where("exhibition_history IS NOT NULL")
	}

	var out []works.Artwork
	if err := tx.Order(artworkOrder).Find(&out).Error; err != nil {
		return nil, apperr.FromDB(err, "artwork")
	}
	return out, nil
}

func (s *ArtworkStore) GetArtwork(ctx context.Context, id string) (*works.Artwork, error) {
	return s.GetByID(ctx, id)
}

// DistinctSeries returns every non-empty series value, including drafts.
func (s *ArtworkStore) DistinctSeries(ctx context.Context) ([]string, error) {
	var out []string
	err := s.artworks(ctx).
		Distinct("series").
		Where("series IS NOT NULL AND series <> ''").
		Order("series ASC").
		Pluck("series", &out).Error
	if err != nil {
		return nil, apperr.FromDB(err, "collection")
	}
	return out, nil
}

func (s *ArtworkStore) CountBySeries(ctx context.Context, series string) (int64, error) {
	var n int64
	if err := s.artworks(ctx).Where("series = ?", series).Count(&n).Error; err != nil {
		return 0, apperr.FromDB(err, "collection")
	}
	return n, nil
}

// SetSeries overwrites series on the given artworks in one statement. A nil series removes
// them from any collection.
func (s *ArtworkStore) SetSeries(ctx context.Context, ids []string, series *string) (int64, error) {
	ids = uuidsOnly(ids)
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.artworks(ctx).
		Where("id IN ?", ids).
		Updates(map[string]any{"series": seriesValue(series), "version": gorm.Expr("version + 1")})
	if res.Error != nil {
		return 0, apperr.FromDB(res.Error, "artwork")
	}
	return res.RowsAffected, nil
}

// ReplaceSeries rewrites every artwork with series = from in one statement.
func (s *ArtworkStore) ReplaceSeries(ctx context.Context, from string, to *string) (int64, error) {
	res := s.artworks(ctx).
		Where("series = ?", from).
		Updates(map[string]any{"series": seriesValue(to), "version": gorm.Expr("version + 1")})
	if res.Error != nil {
		return 0, apperr.FromDB(res.Error, "collection")
	}
	return res.RowsAffected, nil
}

// SaveExhibitionHistory writes back a whole exhibition history, but only if the row is still
// at the version it was read at. A concurrent writer makes this fail instead of being
// overwritten.
func (s *ArtworkStore) SaveExhibitionHistory(ctx context.Context, id string, version int, history []works.ExhibitionEntry) error {
	if !validID(id) {
		return apperr.NotFound("artwork")
	}
	var value any = gorm.Expr("NULL")
	if h := works.NewExhibitionHistory(history); h != nil {
		value = h
	}

	res := s.artworks(ctx).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]any{"exhibition_history": value, "version": gorm.Expr("version + 1")})
	if res.Error != nil {
		return apperr.FromDB(res.Error, "artwork")
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := s.artworks(ctx).Where("id = ?", id).Count(&n).Error; err != nil {
		return apperr.FromDB(err, "artwork")
	}
	if n == 0 {
		return apperr.NotFound("artwork")
	}
	return staleWrite("artwork")
}

// uuidsOnly drops ids that cannot match any artwork.
func uuidsOnly(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			out = append(out, id)
		}
	}
	return out
}

// seriesValue stores names the way works.Artwork.Normalize does.
func seriesValue(series *string) any {
	series = works.NormalizeSeries(series)
	if series == nil {
		return gorm.Expr("NULL")
	}
	return *series
}
