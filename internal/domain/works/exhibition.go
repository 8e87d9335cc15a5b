package works

import (
	"strings"

	"gorm.io/datatypes"
)

// ExhibitionEntry is one record of an artwork's exhibition history. Exhibition metadata is
// duplicated into every artwork that took part.
type ExhibitionEntry struct {
	Name             string   `json:"name" binding:"required"`
	Venue            string   `json:"venue"`
	About            string   `json:"about"`
	Curator          string   `json:"curator"`
	Dates            string   `json:"dates"`
	CoverImage       string   `json:"coverImage"`
	ExhibitionImages []string `json:"exhibitionImages"`
	Type             string   `json:"type"`
	OtherArtists     string   `json:"otherArtists"`

	// StartDate is an optional YYYY-MM-DD used for ordering; Dates stays display text.
	StartDate string `json:"startDate,omitempty"`
}

// ExhibitionKey identifies an exhibition across artworks. Two entries are the same exhibition
// exactly when their keys are equal.
type ExhibitionKey struct {
	Name  string `json:"name" binding:"required"`
	Venue string `json:"venue"`
	Dates string `json:"dates"`
}

func (e ExhibitionEntry) Key() ExhibitionKey {
	return ExhibitionKey{Name: e.Name, Venue: e.Venue, Dates: e.Dates}
}

func (k ExhibitionKey) String() string {
	return k.Name + " @ " + k.Venue + " (" + k.Dates + ")"
}

// Normalize trims the key fields so keys typed by hand compare equal.
func (k ExhibitionKey) Normalize() ExhibitionKey {
	return ExhibitionKey{
		Name:  strings.TrimSpace(k.Name),
		Venue: strings.TrimSpace(k.Venue),
		Dates: strings.TrimSpace(k.Dates),
	}
}

// Normalize trims the key fields and drops blank image paths.
func (e ExhibitionEntry) Normalize() ExhibitionEntry {
	k := e.Key().Normalize()
	e.Name, e.Venue, e.Dates = k.Name, k.Venue, k.Dates
	e.StartDate = strings.TrimSpace(e.StartDate)

	images := make([]string, 0, len(e.ExhibitionImages))
	for _, img := range e.ExhibitionImages {
		if s := strings.TrimSpace(img); s != "" {
			images = append(images, s)
		}
	}
	e.ExhibitionImages = images
	return e
}

// HasExhibition reports whether history contains an entry with key.
func HasExhibition(history []ExhibitionEntry, key ExhibitionKey) bool {
	for _, e := range history {
		if e.Key() == key {
			return true
		}
	}
	return false
}

// WithoutExhibition returns history minus every entry matching key, and whether anything
// was removed.
func WithoutExhibition(history []ExhibitionEntry, key ExhibitionKey) ([]ExhibitionEntry, bool) {
	out := make([]ExhibitionEntry, 0, len(history))
	for _, e := range history {
		if e.Key() == key {
			continue
		}
		out = append(out, e)
	}
	return out, len(out) != len(history)
}

// ReplaceExhibition maps every entry matching key to replacement. If replacement's key is
// already present elsewhere in history the entries collapse into one carrying replacement's
// content, at the position of the first of them.
func ReplaceExhibition(history []ExhibitionEntry, key ExhibitionKey, replacement ExhibitionEntry) ([]ExhibitionEntry, bool) {
	if !HasExhibition(history, key) {
		return history, false
	}

	target := replacement.Key()
	out := make([]ExhibitionEntry, 0, len(history))
	placed := false

	for _, e := range history {
		k := e.Key()
		if k != key && k != target {
			out = append(out, e)
			continue
		}
		if placed {
			continue
		}
		out = append(out, replacement)
		placed = true
	}
	return out, true
}

// NewExhibitionHistory wraps entries for storage. An empty history is stored as NULL.
func NewExhibitionHistory(entries []ExhibitionEntry) *datatypes.JSONSlice[ExhibitionEntry] {
	if len(entries) == 0 {
		return nil
	}
	h := datatypes.NewJSONSlice(entries)
	return &h
}
