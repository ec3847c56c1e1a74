package models

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// BlogPost represents a complete blog post with metadata
type BlogPost struct {
	ID            string     `json:"id" db:"id" gorm:"primaryKey;size:36"`
	Title         string     `json:"title" db:"title" gorm:"type:text;not null"`
	Slug          string     `json:"slug" db:"slug" gorm:"size:200;not null;uniqueIndex"`
	Content       string     `json:"content" db:"content" gorm:"type:text;not null"`
	Excerpt       string     `json:"excerpt" db:"excerpt" gorm:"type:text;not null"`
	CoverImage    *string    `json:"coverImage,omitempty" db:"cover_image" gorm:"type:text"`
	Tags          StringList `json:"tags" db:"tags" gorm:"not null"`
	Published     bool       `json:"published" db:"published" gorm:"not null;default:false;index"`
	Featured      bool       `json:"featured" db:"featured" gorm:"not null;default:false"`
	ReadTime      int        `json:"readTime" db:"read_time" gorm:"not null;default:1"`
	LikesCount    int        `json:"likesCount" db:"likes_count" gorm:"not null;default:0"`
	DislikesCount int        `json:"dislikesCount" db:"dislikes_count" gorm:"not null;default:0"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at" gorm:"not null;index"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (BlogPost) TableName() string { return "blog_posts" }

// BlogPostPatch holds the updatable blog post fields. The slug is immutable
// and deliberately absent; reaction counters only change through increments.
type BlogPostPatch struct {
	Title      Optional[string]     `json:"title"`
	Content    Optional[string]     `json:"content"`
	Excerpt    Optional[string]     `json:"excerpt"`
	CoverImage Optional[*string]    `json:"coverImage"`
	Tags       Optional[StringList] `json:"tags"`
	Published  Optional[bool]       `json:"published"`
	Featured   Optional[bool]       `json:"featured"`
	ReadTime   Optional[int]        `json:"readTime"`
}

type BlogPostFilter struct {
	Page      int
	PageSize  int
	Search    string
	Tag       string
	Published *bool
	Featured  *bool
}

// Reaction is a reader reaction on a post or comment.
type Reaction string

const (
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

func (r Reaction) Valid() bool {
	return r == ReactionLike || r == ReactionDislike
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug reports whether s is a lowercase, hyphen-separated, URL-safe slug.
func ValidSlug(s string) bool {
	return len(s) <= 200 && slugPattern.MatchString(s)
}

// Slugify derives a slug from a title: ASCII letters and digits are kept,
// everything else collapses into single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	slug := b.String()
	if len(slug) > 200 {
		slug = strings.TrimRight(slug[:200], "-")
	}
	return slug
}

const wordsPerMinute = 200

// EstimateReadTime returns the reading time of content in whole minutes, at least 1.
func EstimateReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
