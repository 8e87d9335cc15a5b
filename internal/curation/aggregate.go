package curation

import (
	"context"
	"sort"
	"strings"

	"portfolio-admin/internal/apperr"
	"portfolio-admin/internal/domain/works"
	"portfolio-admin/internal/infra/store"
)

// Collection is every artwork sharing one series value. It has no row of its own.
type Collection struct {
	Name     string          `json:"name"`
	Artworks []works.Artwork `json:"artworks"`
}

// Exhibition is every artwork whose history carries one exhibition key. The metadata comes
// from the first matching entry seen.
type Exhibition struct {
	works.ExhibitionEntry
	Key      works.ExhibitionKey `json:"key"`
	Artworks []works.Artwork     `json:"artworks"`
}

// GroupByCollection groups artworks by non-empty series. Each group is ordered by sort order,
// then most recently updated first.
func GroupByCollection(artworks []works.Artwork) map[string][]works.Artwork {
	out := make(map[string][]works.Artwork)
	for _, a := range artworks {
		name := a.SeriesName()
		if name == "" {
			continue
		}
		out[name] = append(out[name], a)
	}
	for _, group := range out {
		sortArtworks(group)
	}
	return out
}

func sortArtworks(artworks []works.Artwork) {
	sort.SliceStable(artworks, func(i, j int) bool {
		if artworks[i].SortOrder != artworks[j].SortOrder {
			return artworks[i].SortOrder < artworks[j].SortOrder
		}
		return artworks[i].UpdatedAt.After(artworks[j].UpdatedAt)
	})
}

// Collections lists groups by name.
func Collections(artworks []works.Artwork) []Collection {
	groups := GroupByCollection(artworks)
	out := make([]Collection, 0, len(groups))
	for name, members := range groups {
		out = append(out, Collection{Name: name, Artworks: members})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GroupExhibitions builds one Exhibition per distinct key, newest first. Entries whose dates
// cannot be read sort last.
func GroupExhibitions(artworks []works.Artwork) []Exhibition {
	index := make(map[works.ExhibitionKey]int)
	var out []Exhibition

	for _, a := range artworks {
		for _, entry := range a.Exhibitions() {
			key := entry.Key()
			i, seen := index[key]
			if !seen {
				i = len(out)
				index[key] = i
				out = append(out, Exhibition{ExhibitionEntry: entry, Key: key})
			}
			members := out[i].Artworks
			if n := len(members); n > 0 && members[n-1].ID == a.ID {
				continue
			}
			out[i].Artworks = append(members, a)
		}
	}

	sortExhibitions(out)
	return out
}

func sortExhibitions(list []Exhibition) {
	sort.SliceStable(list, func(i, j int) bool {
		ti, oki := exhibitionDate(list[i].ExhibitionEntry)
		tj, okj := exhibitionDate(list[j].ExhibitionEntry)
		if oki != okj {
			return oki
		}
		if oki && !ti.Equal(tj) {
			return ti.After(tj)
		}
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].Venue < list[j].Venue
	})
}

// ArtworksByCollection maps each collection name to its artworks.
func (s *Service) ArtworksByCollection(ctx context.Context, includeDrafts bool) (map[string][]works.Artwork, error) {
	artworks, err := s.store.ListArtworks(ctx, store.ArtworkQuery{IncludeDrafts: includeDrafts, InCollection: true})
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindDatabase, "Could not load collections")
	}
	return GroupByCollection(artworks), nil
}

func (s *Service) Collections(ctx context.Context, includeDrafts bool) ([]Collection, error) {
	artworks, err := s.store.ListArtworks(ctx, store.ArtworkQuery{IncludeDrafts: includeDrafts, InCollection: true})
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindDatabase, "Could not load collections")
	}
	return Collections(artworks), nil
}

// ArtworkSeries lists every collection name in use, drafts included, for autocomplete.
func (s *Service) ArtworkSeries(ctx context.Context) ([]string, error) {
	names, err := s.store.DistinctSeries(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindDatabase, "Could not load collection names")
	}

	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Service) Exhibitions(ctx context.Context, includeDrafts bool) ([]Exhibition, error) {
	artworks, err := s.store.ListArtworks(ctx, store.ArtworkQuery{IncludeDrafts: includeDrafts, WithExhibitions: true})
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindDatabase, "Could not load exhibitions")
	}
	out := GroupExhibitions(artworks)
	if out == nil {
		out = []Exhibition{}
	}
	return out, nil
}

// Exhibition returns the exhibition with key, or NOT_FOUND when no artwork carries it.
func (s *Service) Exhibition(ctx context.Context, key works.ExhibitionKey, includeDrafts bool) (*Exhibition, error) {
	key = key.Normalize()
	list, err := s.Exhibitions(ctx, includeDrafts)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Key == key {
			return &list[i], nil
		}
	}
	return nil, apperr.NotFound("Exhibition")
}
