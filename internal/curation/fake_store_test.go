package curation

import (
	"context"
	"sort"
	"time"

	"portfolio-admin/internal/apperr"
	"portfolio-admin/internal/auth"
	"portfolio-admin/internal/domain/works"
	"portfolio-admin/internal/infra/store"
)

// fakeStore keeps artworks in memory and mimics the conditional write of the real store.
type fakeStore struct {
	rows     map[string]*works.Artwork
	saveErrs map[string]error
	saves    int
	bulk     int
}

func newFakeStore(artworks ...works.Artwork) *fakeStore {
	fs := &fakeStore{rows: map[string]*works.Artwork{}, saveErrs: map[string]error{}}
	for i := range artworks {
		a := artworks[i]
		if a.Status == "" {
			a.Status = works.StatusPublished
		}
		if a.Version == 0 {
			a.Version = 1
		}
		fs.rows[a.ID] = &a
	}
	return fs
}

func (f *fakeStore) ListArtworks(_ context.Context, q store.ArtworkQuery) ([]works.Artwork, error) {
	var ids map[string]bool
	if q.IDs != nil {
		ids = map[string]bool{}
		for _, id := range q.IDs {
			ids[id] = true
		}
	}

	var out []works.Artwork
	for _, a := range f.rows {
		if !q.IncludeDrafts && a.Status != works.StatusPublished {
			continue
		}
		if ids != nil && !ids[a.ID] {
			continue
		}
		if q.InCollection && a.SeriesName() == "" {
			continue
		}
		if q.WithExhibitions && a.ExhibitionHistory == nil {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) GetArtwork(_ context.Context, id string) (*works.Artwork, error) {
	a, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("artwork")
	}
	cp := *a
	return &cp, nil
}

func (f *fakeStore) DistinctSeries(_ context.Context) ([]string, error) {
	var out []string
	for _, a := range f.rows {
		if a.Series != nil {
			out = append(out, *a.Series)
		}
	}
	return out, nil
}

func (f *fakeStore) CountBySeries(_ context.Context, series string) (int64, error) {
	var n int64
	for _, a := range f.rows {
		if a.SeriesName() == series {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) SetSeries(_ context.Context, ids []string, series *string) (int64, error) {
	f.bulk++
	var n int64
	for _, id := range ids {
		if a, ok := f.rows[id]; ok {
			a.Series = copyPtr(series)
			a.Version++
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) ReplaceSeries(_ context.Context, from string, to *string) (int64, error) {
	f.bulk++
	var n int64
	for _, a := range f.rows {
		if a.SeriesName() == from {
			a.Series = copyPtr(to)
			a.Version++
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) SaveExhibitionHistory(_ context.Context, id string, version int, history []works.ExhibitionEntry) error {
	if err, ok := f.saveErrs[id]; ok {
		return err
	}
	a, ok := f.rows[id]
	if !ok {
		return apperr.NotFound("artwork")
	}
	if a.Version != version {
		return apperr.New(apperr.KindUpdateFailed, "Artwork was changed by someone else, reload and try again")
	}
	f.saves++
	a.ExhibitionHistory = works.NewExhibitionHistory(append([]works.ExhibitionEntry{}, history...))
	a.Version++
	return nil
}

func copyPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func strPtr(s string) *string { return &s }

func signedIn() context.Context {
	return auth.WithIdentity(context.Background(), &auth.Identity{Subject: "user-1", Role: "admin"})
}

func artwork(id string, opts ...func(*works.Artwork)) works.Artwork {
	a := works.Artwork{ID: id, Slug: id, Title: id, UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	for _, o := range opts {
		o(&a)
	}
	return a
}

func inSeries(name string) func(*works.Artwork) {
	return func(a *works.Artwork) { a.Series = strPtr(name) }
}

func withHistory(entries ...works.ExhibitionEntry) func(*works.Artwork) {
	return func(a *works.Artwork) { a.ExhibitionHistory = works.NewExhibitionHistory(entries) }
}

func asDraft(a *works.Artwork) { a.Status = works.StatusDraft }
