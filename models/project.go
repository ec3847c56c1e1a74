package models

import "time"

// ProjectCategory groups projects on the public site.
type ProjectCategory string

const (
	ProjectCategoryWeb     ProjectCategory = "web"
	ProjectCategoryMobile  ProjectCategory = "mobile"
	ProjectCategoryDesktop ProjectCategory = "desktop"
	ProjectCategoryAI      ProjectCategory = "ai"
	ProjectCategoryOther   ProjectCategory = "other"
)

// Valid reports whether c is one of the known categories.
func (c ProjectCategory) Valid() bool {
	switch c {
	case ProjectCategoryWeb, ProjectCategoryMobile, ProjectCategoryDesktop, ProjectCategoryAI, ProjectCategoryOther:
		return true
	}
	return false
}

// Project represents a portfolio project
type Project struct {
	ID              string          `json:"id" db:"id" gorm:"primaryKey;size:36"`
	Title           string          `json:"title" db:"title" gorm:"type:text;not null"`
	Description     string          `json:"description" db:"description" gorm:"type:text;not null"`
	LongDescription string          `json:"longDescription" db:"long_description" gorm:"type:text;not null"`
	Technologies    StringList      `json:"technologies" db:"technologies" gorm:"not null"`
	ImageURL        *string         `json:"imageUrl,omitempty" db:"image_url" gorm:"type:text"`
	GithubURL       *string         `json:"githubUrl,omitempty" db:"github_url" gorm:"type:text"`
	LiveURL         *string         `json:"liveUrl,omitempty" db:"live_url" gorm:"type:text"`
	Featured        bool            `json:"featured" db:"featured" gorm:"not null;default:false;index"`
	Category        ProjectCategory `json:"category" db:"category" gorm:"type:text;not null;index"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at" gorm:"not null;index"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (Project) TableName() string { return "projects" }

// ProjectPatch holds the updatable project fields. Only set fields are written.
type ProjectPatch struct {
	Title           Optional[string]          `json:"title"`
	Description     Optional[string]          `json:"description"`
	LongDescription Optional[string]          `json:"longDescription"`
	Technologies    Optional[StringList]      `json:"technologies"`
	ImageURL        Optional[*string]         `json:"imageUrl"`
	GithubURL       Optional[*string]         `json:"githubUrl"`
	LiveURL         Optional[*string]         `json:"liveUrl"`
	Featured        Optional[bool]            `json:"featured"`
	Category        Optional[ProjectCategory] `json:"category"`
}

// ProjectFilter narrows a project listing.
type ProjectFilter struct {
	Page     int
	PageSize int
	Search   string
	Category string
	Featured *bool
}
