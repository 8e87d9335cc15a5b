// Package curation derives collections and exhibitions from artwork rows and rewrites those
// rows when a collection or exhibition is edited.
package curation

import (
	"context"

	"portfolio-admin/internal/domain/works"
	"portfolio-admin/internal/infra/store"
)

// Store is the slice of the artwork table the curation service needs.
type Store interface {
	ListArtworks(ctx context.Context, q store.ArtworkQuery) ([]works.Artwork, error)
	GetArtwork(ctx context.Context, id string) (*works.Artwork, error)
	DistinctSeries(ctx context.Context) ([]string, error)
	CountBySeries(ctx context.Context, series string) (int64, error)
	SetSeries(ctx context.Context, ids []string, series *string) (int64, error)
	ReplaceSeries(ctx context.Context, from string, to *string) (int64, error)
	SaveExhibitionHistory(ctx context.Context, id string, version int, history []works.ExhibitionEntry) error
}

type Service struct {
	store Store
}

func NewService(s Store) *Service {
	return &Service{store: s}
}
