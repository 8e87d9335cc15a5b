package pages

import (
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type Page struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Slug string `gorm:"not null;uniqueIndex:idx_pages_slug" json:"slug"`

	Title           string  `gorm:"not null" json:"title"`
	Content         string  `gorm:"type:text" json:"content"`
	MetaDescription *string `json:"metaDescription"`

	Status    string `gorm:"not null;default:'draft';index" json:"status" binding:"omitempty,oneof=draft published"`
	SortOrder int    `gorm:"not null;default:0" json:"sortOrder"`
	Version   int    `gorm:"not null;default:1" json:"version" patch:"-"`

	CreatedAt time.Time `json:"createdAt" patch:"-"`
	UpdatedAt time.Time `json:"updatedAt" patch:"-"`
}

func (p *Page) BeforeCreate(tx *gorm.DB) error {
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

func (p *Page) PrimaryID() string  { return p.ID }
func (p *Page) SlugValue() string  { return p.Slug }
func (p *Page) SetSlug(s string)   { p.Slug = s }
func (p *Page) TitleValue() string { return p.Title }

// SanitizeHTML cleans the rich-text body in place.
func (p *Page) SanitizeHTML(policy *bluemonday.Policy) {
	p.Content = policy.Sanitize(p.Content)
}
