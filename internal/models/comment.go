package models

import "time"

// Comment represents a comment on a post. Only approved comments are listed publicly.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsApproved bool      `gorm:"not null;default:true" json:"is_approved"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	PostID     uint      `gorm:"not null;index" json:"post_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
