package models

import "time"

// Attachment records a file uploaded for a review post. StorageKey is the
// bucket-relative object key used when the owning post is deleted.
type Attachment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"index;not null" json:"post_id"`
	FileURL    string    `gorm:"size:1024;not null" json:"file_url"`
	FileName   string    `gorm:"size:255;not null" json:"file_name"`
	FileSize   int64     `json:"file_size"`
	FileType   string    `gorm:"size:128" json:"file_type"`
	StorageKey string    `gorm:"size:512;not null" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
