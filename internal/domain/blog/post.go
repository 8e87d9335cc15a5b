package blog

import (
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Post struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Slug string `gorm:"not null;uniqueIndex:idx_blog_posts_slug" json:"slug"`

	Title       string                      `gorm:"not null" json:"title"`
	Excerpt     *string                     `json:"excerpt"`
	Content     string                      `gorm:"type:text" json:"content"`
	CoverImage  *string                     `json:"coverImage"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	PublishedAt *time.Time                  `json:"publishedAt"`

	Status    string `gorm:"not null;default:'draft';index" json:"status" binding:"omitempty,oneof=draft published"`
	SortOrder int    `gorm:"not null;default:0" json:"sortOrder"`
	Version   int    `gorm:"not null;default:1" json:"version" patch:"-"`

	CreatedAt time.Time `json:"createdAt" patch:"-"`
	UpdatedAt time.Time `json:"updatedAt" patch:"-"`
}

func (Post) TableName() string {
	return "blog_posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = "draft"
	}
	if p.Version == 0 {
		p.Version = 1
	}
	if p.Status == "published" && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}
	return nil
}

func (p *Post) PrimaryID() string    { return p.ID }
func (p *Post) SlugValue() string    { return p.Slug }
func (p *Post) SetSlug(s string)     { p.Slug = s }
func (p *Post) TitleValue() string   { return p.Title }
func (p *Post) SetCoverURL(u string) { p.CoverImage = &u }
func (p *Post) CoverURL() string {
	if p.CoverImage == nil {
		return ""
	}
	return *p.CoverImage
}

// SanitizeHTML cleans the rich-text body in place.
func (p *Post) SanitizeHTML(policy *bluemonday.Policy) {
	p.Content = policy.Sanitize(p.Content)
}

// BeforePatch stamps the first publication time.
func (p *Post) BeforePatch(cols map[string]any) {
	if cols["status"] != "published" || p.PublishedAt != nil {
		return
	}
	if _, set := cols["published_at"]; !set {
		cols["published_at"] = time.Now()
	}
}
