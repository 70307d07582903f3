package models

import "time"

// Post statuses.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// ValidPostStatus reports whether s is a member of the status enumeration.
func ValidPostStatus(s string) bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// Post represents a blog post.
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Status      string     `gorm:"size:20;not null;default:draft;index:idx_posts_status_created,priority:1;check:chk_posts_status,status IN ('draft','published')" json:"status"`
	ViewsCount  int64      `gorm:"not null;default:0" json:"views_count"`
	PublishedAt *time.Time `json:"published_at"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	CategoryID  *uint      `gorm:"index" json:"category_id"`
	CreatedAt   time.Time  `gorm:"index:idx_posts_status_created,priority:2" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
	Tags     []Tag     `gorm:"many2many:post_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Likes    []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

// PostTag is a row of the post_tags join table behind Post.Tags.
type PostTag struct {
	PostID uint `gorm:"primaryKey"`
	TagID  uint `gorm:"primaryKey"`
}

// TableName returns the join table name shared with the many2many relation.
func (PostTag) TableName() string {
	return "post_tags"
}

// PostFilter narrows a post listing. Zero values disable a filter.
type PostFilter struct {
	// Status filters by status; empty lists every status.
	Status     string
	UserID     uint
	CategoryID uint
	TagID      uint
	TagSlug    string
}

// PostDetail is the single-post representation; it always carries the
// approved comments, oldest first.
type PostDetail struct {
	*Post
	Comments []Comment `json:"comments"`
}

// NewPostDetail wraps p, exposing its loaded comments.
func NewPostDetail(p *Post) PostDetail {
	comments := p.Comments
	if comments == nil {
		comments = []Comment{}
	}
	return PostDetail{Post: p, Comments: comments}
}
