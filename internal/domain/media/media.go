package media

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Media is an uploaded file in the media library.
type Media struct {
	ID         string  `gorm:"type:uuid;primaryKey" json:"id"`
	Filename   string  `gorm:"not null" json:"filename" patch:"-"`
	StorageKey string  `gorm:"not null;uniqueIndex:idx_media_storage_key" json:"storageKey" patch:"-"`
	URL        string  `gorm:"column:url;not null" json:"url" patch:"-"`
	MimeType   string  `gorm:"not null" json:"mimeType" patch:"-"`
	SizeBytes  int64   `gorm:"not null" json:"sizeBytes" patch:"-"`
	Alt        *string `json:"alt"`
	Caption    *string `json:"caption"`

	CreatedAt time.Time `json:"createdAt" patch:"-"`
	UpdatedAt time.Time `json:"updatedAt" patch:"-"`
}

func (m *Media) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
