package works

import (
	"portfolio-admin/internal/domain/works"
)

// ---------- requests

type CreateArtworkRequest struct {
	Slug         string   `json:"slug" binding:"omitempty,slug"`
	Title        string   `json:"title" binding:"required"`
	Year         *string  `json:"year"`
	Description  *string  `json:"description"`
	Medium       *string  `json:"medium"`
	Dimensions   *string  `json:"dimensions"`
	Price        *float64 `json:"price"`
	Currency     *string  `json:"currency"`
	Availability *string  `json:"availability"`
	ImageURL     *string  `json:"imageUrl"`
	ThumbnailURL *string  `json:"thumbnailUrl"`
	Status       string   `json:"status" binding:"omitempty,oneof=draft published"`
	SortOrder    int      `json:"sortOrder"`
	Series       *string  `json:"series"`

	ExhibitionHistory []works.ExhibitionEntry `json:"exhibitionHistory" binding:"omitempty,dive"`
}

func (r CreateArtworkRequest) toModel() *works.Artwork {
	history := make([]works.ExhibitionEntry, 0, len(r.ExhibitionHistory))
	for _, e := range r.ExhibitionHistory {
		history = append(history, e.Normalize())
	}
	return &works.Artwork{
		Slug:              r.Slug,
		Title:             r.Title,
		Year:              r.Year,
		Description:       r.Description,
		Medium:            r.Medium,
		Dimensions:        r.Dimensions,
		Price:             r.Price,
		Currency:          r.Currency,
		Availability:      r.Availability,
		ImageURL:          r.ImageURL,
		ThumbnailURL:      r.ThumbnailURL,
		Status:            r.Status,
		SortOrder:         r.SortOrder,
		Series:            r.Series,
		ExhibitionHistory: works.NewExhibitionHistory(history),
	}
}

type CollectionArtworksRequest struct {
	IDs  []string `json:"ids"`
	Name string   `json:"name"`
}

type RenameCollectionRequest struct {
	OldName string `json:"oldName"`
	NewName string `json:"newName"`
}

type ArtworkIDsRequest struct {
	IDs []string `json:"ids"`
}

type ExhibitionKeyRequest struct {
	Key works.ExhibitionKey `json:"key"`
}

type AddExhibitionRequest struct {
	IDs   []string              `json:"ids"`
	Entry works.ExhibitionEntry `json:"entry"`
}

type UpdateExhibitionRequest struct {
	Key   works.ExhibitionKey   `json:"key"`
	Entry works.ExhibitionEntry `json:"entry"`
}

type SplitExhibitionRequest struct {
	Key   works.ExhibitionKey   `json:"key"`
	IDs   []string              `json:"ids"`
	Entry works.ExhibitionEntry `json:"entry"`
}

type RemoveFromExhibitionRequest struct {
	Key works.ExhibitionKey `json:"key"`
	IDs []string            `json:"ids"`
}
