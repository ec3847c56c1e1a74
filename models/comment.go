package models

import "time"

// Comment is a reader comment on a blog post. ParentID points at the comment
// being replied to, on the same post.
type Comment struct {
	ID            string    `json:"id" db:"id" gorm:"primaryKey;size:36"`
	PostID        string    `json:"postId" db:"post_id" gorm:"size:36;not null;index:idx_comments_post_created"`
	ParentID      *string   `json:"parentId,omitempty" db:"parent_id" gorm:"size:36;index"`
	Content       string    `json:"content" db:"content" gorm:"type:text;not null"`
	AuthorName    *string   `json:"authorName,omitempty" db:"author_name" gorm:"type:text"`
	LikesCount    int       `json:"likesCount" db:"likes_count" gorm:"not null;default:0"`
	DislikesCount int       `json:"dislikesCount" db:"dislikes_count" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at" gorm:"not null;index:idx_comments_post_created"`
}

func (Comment) TableName() string { return "comments" }
