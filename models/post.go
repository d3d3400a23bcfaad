package models

import "time"

// Board identifiers. The FAQ board has no pin concept; pinning and attachments
// are exclusive to the review board.
const (
	BoardFAQ    = "faq"
	BoardReview = "review"
)

// ValidBoard reports whether s names a known board.
func ValidBoard(s string) bool {
	return s == BoardFAQ || s == BoardReview
}

// Post represents a board entry (FAQ or review). The author reference and the
// creation timestamp are immutable after creation; created_at is the only sort key.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Board     string    `gorm:"size:16;index:idx_board_pinned;not null" json:"board"`
	UserID    string    `gorm:"size:36;index" json:"user_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	IsPinned  bool      `gorm:"index:idx_board_pinned;default:false" json:"is_pinned"`
	ViewCount int       `gorm:"default:0" json:"view_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author      *Profile     `gorm:"foreignKey:UserID" json:"author,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:PostID" json:"attachments,omitempty"`

	// Populated by the store's count subquery on listings; never persisted.
	CommentCount int64 `gorm:"->;-:migration" json:"comment_count"`
}
