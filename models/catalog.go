package models

import "time"

// Course is an academy catalog entry. Enrollment and playback live in other
// systems; this service only lists and bookmarks courses.
type Course struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Summary      string    `gorm:"type:text" json:"summary"`
	Category     string    `gorm:"size:64;index" json:"category"`
	PriceCents   int64     `json:"price_cents"`
	ThumbnailURL string    `gorm:"size:1024" json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Book is a shop catalog entry.
type Book struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Author       string    `gorm:"size:128" json:"author"`
	Publisher    string    `gorm:"size:128" json:"publisher"`
	Summary      string    `gorm:"type:text" json:"summary"`
	PriceCents   int64     `json:"price_cents"`
	ThumbnailURL string    `gorm:"size:1024" json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Bookmark marks a course saved by a user. One row per (user, course).
type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:36;uniqueIndex:idx_user_course;not null" json:"user_id"`
	CourseID  uint      `gorm:"uniqueIndex:idx_user_course;not null" json:"course_id"`
	CreatedAt time.Time `json:"created_at"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}
