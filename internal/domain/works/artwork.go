package works

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

type Artwork struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Slug string `gorm:"not null;uniqueIndex:idx_artworks_slug" json:"slug"`

	Title        string   `gorm:"not null" json:"title"`
	Year         *string  `json:"year"`
	Description  *string  `json:"description"`
	Medium       *string  `json:"medium"`
	Dimensions   *string  `json:"dimensions"`
	Price        *float64 `json:"price"`
	Currency     *string  `json:"currency"`
	Availability *string  `json:"availability"`
	ImageURL     *string  `gorm:"column:image_url" json:"imageUrl"`
	ThumbnailURL *string  `gorm:"column:thumbnail_url" json:"thumbnailUrl"`

	Status    string `gorm:"not null;default:'draft';index" json:"status" binding:"omitempty,oneof=draft published"`
	SortOrder int    `gorm:"not null;default:0" json:"sortOrder"`

	// Series is the only thing that puts an artwork into a collection.
	Series *string `gorm:"index" json:"series"`

	ExhibitionHistory *datatypes.JSONSlice[ExhibitionEntry] `gorm:"column:exhibition_history" json:"exhibitionHistory" binding:"omitempty,dive"`

	Version int `gorm:"not null;default:1" json:"version" patch:"-"`

	CreatedAt time.Time `json:"createdAt" patch:"-"`
	UpdatedAt time.Time `json:"updatedAt" patch:"-"`
}

func (a *Artwork) BeforeCreate(tx *gorm.DB) error {
	a.Normalize()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = StatusDraft
	}
	if a.Version == 0 {
		a.Version = 1
	}
	return nil
}

// Exhibitions returns the embedded exhibition history, nil when there is none.
func (a Artwork) Exhibitions() []ExhibitionEntry {
	if a.ExhibitionHistory == nil {
		return nil
	}
	return []ExhibitionEntry(*a.ExhibitionHistory)
}

// SeriesName returns the collection name, "" when the artwork is in none.
func (a Artwork) SeriesName() string {
	if a.Series == nil {
		return ""
	}
	return *a.Series
}

func (a Artwork) Published() bool {
	return a.Status == StatusPublished
}

// Accessors used by the generic content workflows.
func (a *Artwork) PrimaryID() string    { return a.ID }
func (a *Artwork) SlugValue() string    { return a.Slug }
func (a *Artwork) SetSlug(s string)     { a.Slug = s }
func (a *Artwork) TitleValue() string   { return a.Title }
func (a *Artwork) SetCoverURL(u string) { a.ImageURL = &u }
func (a *Artwork) CoverURL() string {
	if a.ImageURL == nil {
		return ""
	}
	return *a.ImageURL
}

// Normalize brings series and exhibition history into the form the collection and
// exhibition operations match on: trimmed, with blanks stored as NULL.
func (a *Artwork) Normalize() {
	a.Series = NormalizeSeries(a.Series)
	a.ExhibitionHistory = NewExhibitionHistory(normalizeHistory(a.Exhibitions()))
}

// BeforePatch applies Normalize to the columns of a patch.
func (a *Artwork) BeforePatch(cols map[string]any) {
	if v, ok := cols["series"]; ok {
		series, _ := v.(*string)
		if series = NormalizeSeries(series); series != nil {
			cols["series"] = *series
		} else {
			cols["series"] = gorm.Expr("NULL")
		}
	}
	if v, ok := cols["exhibition_history"]; ok {
		var entries []ExhibitionEntry
		if h, _ := v.(*datatypes.JSONSlice[ExhibitionEntry]); h != nil {
			entries = []ExhibitionEntry(*h)
		}
		if h := NewExhibitionHistory(normalizeHistory(entries)); h != nil {
			cols["exhibition_history"] = h
		} else {
			cols["exhibition_history"] = gorm.Expr("NULL")
		}
	}
}

// NormalizeSeries trims a collection name. A blank name means no collection.
func NormalizeSeries(series *string) *string {
	if series == nil {
		return nil
	}
	name := strings.TrimSpace(*series)
	if name == "" {
		return nil
	}
	return &name
}

func normalizeHistory(entries []ExhibitionEntry) []ExhibitionEntry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]ExhibitionEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Normalize()
	}
	return out
}
