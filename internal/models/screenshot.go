package models

import (
	"time"
)

// Screenshot is one uploaded image and its link state. Everything except
// IsPublic and ViewCount is immutable after creation.
type Screenshot struct {
	ID           string    `gorm:"primaryKey;type:text" json:"id"`
	OwnerID      string    `gorm:"index;not null" json:"ownerId"`
	StorageKey   string    `gorm:"not null" json:"storageKey"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	ByteSize     int64     `json:"byteSize"`
	ShortCode    string    `gorm:"uniqueIndex;not null" json:"shortCode"`
	IsPublic     bool      `gorm:"default:false" json:"isPublic"`
	ViewCount    int64     `gorm:"default:0" json:"viewCount"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
}

func (Screenshot) TableName() string {
	return "screenshots"
}
