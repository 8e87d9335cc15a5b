package curation

import (
	"context"
	"reflect"

	"portfolio-admin/internal/apperr"
	"portfolio-admin/internal/auth"
	"portfolio-admin/internal/domain/works"
	"portfolio-admin/internal/infra/store"

	"github.com/rs/zerolog/log"
)

const (
	opAddExhibition    = "add_exhibition"
	opUpdateExhibition = "update_exhibition"
	opSplitExhibition  = "split_exhibition"
	opDeleteExhibition = "delete_exhibition"
	opRemoveExhibition = "remove_exhibition"
)

// AddExhibitionToArtworks appends entry to each artwork's history. Artworks that already
// list the exhibition are skipped, so repeating the call changes nothing.
func (s *Service) AddExhibitionToArtworks(ctx context.Context, ids []string, entry works.ExhibitionEntry) (BulkResult, error) {
	res := newBulkResult()
	if _, err := auth.Require(ctx); err != nil {
		return res, err
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return res, apperr.New(apperr.KindValidation, "Select at least one artwork")
	}
	entry = entry.Normalize()
	if entry.Name == "" {
		return res, apperr.Required("name")
	}
	key := entry.Key()

	for _, id := range ids {
		a, err := s.store.GetArtwork(ctx, id)
		if err != nil {
			res.fail(opAddExhibition, id, err)
			continue
		}
		history := a.Exhibitions()
		if works.HasExhibition(history, key) {
			res.skip(id)
			continue
		}
		history = append(append([]works.ExhibitionEntry{}, history...), entry)
		if err := s.store.SaveExhibitionHistory(ctx, id, a.Version, history); err != nil {
			res.fail(opAddExhibition, id, err)
			continue
		}
		res.succeed(id)
	}

	log.Info().Str("exhibition", key.String()).Int("artworks", len(res.Succeeded)).Msg("exhibition added")
	return res.finish(opAddExhibition, "Failed to add exhibition")
}

// UpdateExhibition rewrites every copy of the exhibition with key to entry. The key fields may
// change; when the new key already exists on an artwork the two entries become one.
func (s *Service) UpdateExhibition(ctx context.Context, key works.ExhibitionKey, entry works.ExhibitionEntry) (BulkResult, error) {
	res := newBulkResult()
	if _, err := auth.Require(ctx); err != nil {
		return res, err
	}
	key = key.Normalize()
	if key.Name == "" {
		return res, apperr.Required("key.name")
	}
	entry = entry.Normalize()
	if entry.Name == "" {
		return res, apperr.Required("name")
	}

	members, err := s.membersOf(ctx, key)
	if err != nil {
		return res, err
	}

	for _, a := range members {
		history := a.Exhibitions()
		updated, _ := works.ReplaceExhibition(history, key, entry)
		if reflect.DeepEqual(updated, history) {
			res.skip(a.ID)
			continue
		}
		if err := s.store.SaveExhibitionHistory(ctx, a.ID, a.Version, updated); err != nil {
			res.fail(opUpdateExhibition, a.ID, err)
			continue
		}
		res.succeed(a.ID)
	}

	log.Info().Str("from", key.String()).Str("to", entry.Key().String()).Int("artworks", len(res.Succeeded)).Msg("exhibition updated")
	return res.finish(opUpdateExhibition, "Failed to update exhibition")
}

// SplitExhibition moves only the given artworks from the exhibition with key to entry. The
// other artworks keep the original exhibition.
func (s *Service) SplitExhibition(ctx context.Context, key works.ExhibitionKey, ids []string, entry works.ExhibitionEntry) (BulkResult, error) {
	res := newBulkResult()
	if _, err := auth.Require(ctx); err != nil {
		return res, err
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return res, apperr.New(apperr.KindValidation, "Select at least one artwork")
	}
	key = key.Normalize()
	entry = entry.Normalize()
	if entry.Name == "" {
		return res, apperr.Required("name")
	}
	if entry.Key() == key {
		return res, apperr.New(apperr.KindValidation, "Split exhibition needs a different name, venue or dates")
	}

	for _, id := range ids {
		a, err := s.store.GetArtwork(ctx, id)
		if err != nil {
			res.fail(opSplitExhibition, id, err)
			continue
		}
		updated, found := works.ReplaceExhibition(a.Exhibitions(), key, entry)
		if !found {
			res.fail(opSplitExhibition, id, apperr.New(apperr.KindNotFound, "Artwork is not part of this exhibition"))
			continue
		}
		if err := s.store.SaveExhibitionHistory(ctx, id, a.Version, updated); err != nil {
			res.fail(opSplitExhibition, id, err)
			continue
		}
		res.succeed(id)
	}

	return res.finish(opSplitExhibition, "Failed to split exhibition")
}

// DeleteExhibition removes the exhibition from every artwork that lists it.
func (s *Service) DeleteExhibition(ctx context.Context, key works.ExhibitionKey) (BulkResult, error) {
	res := newBulkResult()
	if _, err := auth.Require(ctx); err != nil {
		return res, err
	}
	key = key.Normalize()
	if key.Name == "" {
		return res, apperr.Required("name")
	}

	members, err := s.membersOf(ctx, key)
	if err != nil {
		return res, err
	}

	for _, a := range members {
		updated, _ := works.WithoutExhibition(a.Exhibitions(), key)
		if err := s.store.SaveExhibitionHistory(ctx, a.ID, a.Version, updated); err != nil {
			res.fail(opDeleteExhibition, a.ID, err)
			continue
		}
		res.succeed(a.ID)
	}

	log.Info().Str("exhibition", key.String()).Int("artworks", len(res.Succeeded)).Msg("exhibition deleted")
	return res.finish(opDeleteExhibition, "Failed to delete exhibition")
}

// RemoveArtworksFromExhibition drops the exhibition from the given artworks only. Artworks
// that never listed it are skipped.
func (s *Service) RemoveArtworksFromExhibition(ctx context.Context, ids []string, key works.ExhibitionKey) (BulkResult, error) {
	res := newBulkResult()
	if _, err := auth.Require(ctx); err != nil {
		return res, err
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return res, apperr.New(apperr.KindValidation, "Select at least one artwork")
	}
	key = key.Normalize()
	if key.Name == "" {
		return res, apperr.Required("name")
	}

	for _, id := range ids {
		a, err := s.store.GetArtwork(ctx, id)
		if err != nil {
			res.fail(opRemoveExhibition, id, err)
			continue
		}
		updated, removed := works.WithoutExhibition(a.Exhibitions(), key)
		if !removed {
			res.skip(id)
			continue
		}
		if err := s.store.SaveExhibitionHistory(ctx, id, a.Version, updated); err != nil {
			res.fail(opRemoveExhibition, id, err)
			continue
		}
		res.succeed(id)
	}

	return res.finish(opRemoveExhibition, "Failed to remove artworks from exhibition")
}

// membersOf loads every artwork, drafts included, whose history lists key.
func (s *Service) membersOf(ctx context.Context, key works.ExhibitionKey) ([]works.Artwork, error) {
	artworks, err := s.store.ListArtworks(ctx, store.ArtworkQuery{IncludeDrafts: true, WithExhibitions: true})
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindDatabase, "Could not load exhibitions")
	}

	var out []works.Artwork
	for _, a := range artworks {
		if works.HasExhibition(a.Exhibitions(), key) {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return nil, apperr.NotFound("Exhibition")
	}
	return out, nil
}
