package curation

import (
	"context"
	"strings"

	"portfolio-admin/internal/apperr"
	"portfolio-admin/internal/auth"
	"portfolio-admin/internal/metrics"

	"github.com/rs/zerolog/log"
)

// UpdateArtworksCollection puts the artworks into collection name, replacing whatever
// collection they were in.
func (s *Service) UpdateArtworksCollection(ctx context.Context, ids []string, name string) (int64, error) {
	if _, err := auth.Require(ctx); err != nil {
		return 0, err
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, apperr.New(apperr.KindValidation, "Select at least one artwork")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, apperr.Required("name")
	}

	n, err := s.store.SetSeries(ctx, ids, &name)
	if err != nil {
		return 0, apperr.Wrap(err, apperr.KindUpdateFailed, "Failed to update collection")
	}
	metrics.CollectionRowsUpdated.WithLabelValues("add").Add(float64(n))
	log.Info().Str("collection", name).Int64("artworks", n).Msg("artworks added to collection")
	return n, nil
}

// RenameCollection moves every artwork of oldName to newName in one statement. Renaming onto
// a name already in use merges the two collections.
func (s *Service) RenameCollection(ctx context.Context, oldName, newName string) (int64, error) {
	if _, err := auth.Require(ctx); err != nil {
		return 0, err
	}
	oldName, newName = strings.TrimSpace(oldName), strings.TrimSpace(newName)
	if oldName == "" {
		return 0, apperr.Required("oldName")
	}
	if newName == "" {
		return 0, apperr.Required("newName")
	}
	if oldName == newName {
		return 0, apperr.New(apperr.KindValidation, "New collection name must differ from the current one")
	}

	if err := s.requireCollection(ctx, oldName); err != nil {
		return 0, err
	}

	n, err := s.store.ReplaceSeries(ctx, oldName, &newName)
	if err != nil {
		return 0, apperr.Wrap(err, apperr.KindUpdateFailed, "Failed to rename collection")
	}
	metrics.CollectionRowsUpdated.WithLabelValues("rename").Add(float64(n))
	log.Info().Str("from", oldName).Str("to", newName).Int64("artworks", n).Msg("collection renamed")
	return n, nil
}

// RemoveArtworksFromCollection takes the artworks out of whatever collection they are in.
func (s *Service) RemoveArtworksFromCollection(ctx context.Context, ids []string) (int64, error) {
	if _, err := auth.Require(ctx); err != nil {
		return 0, err
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, apperr.New(apperr.KindValidation, "Select at least one artwork")
	}

	n, err := s.store.SetSeries(ctx, ids, nil)
	if err != nil {
		return 0, apperr.Wrap(err, apperr.KindUpdateFailed, "Failed to remove artworks from collection")
	}
	metrics.CollectionRowsUpdated.WithLabelValues("remove").Add(float64(n))
	return n, nil
}

// DeleteCollection empties the collection. The artworks themselves are kept.
func (s *Service) DeleteCollection(ctx context.Context, name string) (int64, error) {
	if _, err := auth.Require(ctx); err != nil {
		return 0, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, apperr.Required("name")
	}
	if err := s.requireCollection(ctx, name); err != nil {
		return 0, err
	}

	n, err := s.store.ReplaceSeries(ctx, name, nil)
	if err != nil {
		return 0, apperr.Wrap(err, apperr.KindDeleteFailed, "Failed to delete collection")
	}
	metrics.CollectionRowsUpdated.WithLabelValues("delete").Add(float64(n))
	log.Info().Str("collection", name).Int64("artworks", n).Msg("collection deleted")
	return n, nil
}

func (s *Service) requireCollection(ctx context.Context, name string) error {
	n, err := s.store.CountBySeries(ctx, name)
	if err != nil {
		return apperr.Wrap(err, apperr.KindDatabase, "Could not load collection")
	}
	if n == 0 {
		return apperr.NotFound("Collection")
	}
	return nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
