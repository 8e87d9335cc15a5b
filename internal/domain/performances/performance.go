package performances

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Performance struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Slug string `gorm:"not null;uniqueIndex:idx_performances_slug" json:"slug"`

	Title       string                      `gorm:"not null" json:"title"`
	Date        *string                     `json:"date"`
	Venue       *string                     `json:"venue"`
	Location    *string                     `json:"location"`
	Description *string                     `json:"description"`
	VideoURL    *string                     `gorm:"column:video_url" json:"videoUrl"`
	CoverImage  *string                     `json:"coverImage"`
	Images      datatypes.JSONSlice[string] `json:"images"`

	Status    string `gorm:"not null;default:'draft';index" json:"status" binding:"omitempty,oneof=draft published"`
	SortOrder int    `gorm:"not null;default:0" json:"sortOrder"`
	Version   int    `gorm:"not null;default:1" json:"version" patch:"-"`

	CreatedAt time.Time `json:"createdAt" patch:"-"`
	UpdatedAt time.Time `json:"updatedAt" patch:"-"`
}

func (p *Performance) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = "draft"
	}
	if p.Version == 0 {
		p.Version = 1
	}
	return nil
}

func (p *Performance) PrimaryID() string    { return p.ID }
func (p *Performance) SlugValue() string    { return p.Slug }
func (p *Performance) SetSlug(s string)     { p.Slug = s }
func (p *Performance) TitleValue() string   { return p.Title }
func (p *Performance) SetCoverURL(u string) { p.CoverImage = &u }
func (p *Performance) CoverURL() string {
	if p.CoverImage == nil {
		return ""
	}
	return *p.CoverImage
}
