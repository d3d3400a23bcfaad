package models

import "time"

// Comment represents a reply to a post. Comments render oldest first,
// unlike posts.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	UserID    string    `gorm:"size:36;index;not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	Author *Profile `gorm:"foreignKey:UserID" json:"author,omitempty"`
}
