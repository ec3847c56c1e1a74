package models

import "time"

// ProfileKey is the fixed key of the single profile row.
const ProfileKey = "profile"

// ProfileInfo is the site owner's public profile.
type ProfileInfo struct {
	ID          string    `json:"-" db:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null;default:''"`
	Title       string    `json:"title" db:"title" gorm:"type:text;not null;default:''"`
	Bio         string    `json:"bio" db:"bio" gorm:"type:text;not null;default:''"`
	Email       string    `json:"email" db:"email" gorm:"type:text;not null;default:''"`
	Phone       *string   `json:"phone,omitempty" db:"phone" gorm:"type:text"`
	Location    *string   `json:"location,omitempty" db:"location" gorm:"type:text"`
	AvatarURL   *string   `json:"avatarUrl,omitempty" db:"avatar_url" gorm:"type:text"`
	ResumeURL   *string   `json:"resumeUrl,omitempty" db:"resume_url" gorm:"type:text"`
	SocialLinks LinkMap   `json:"socialLinks" db:"social_links" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (ProfileInfo) TableName() string { return "profile_info" }

type ProfileInfoPatch struct {
	Name        Optional[string]  `json:"name"`
	Title       Optional[string]  `json:"title"`
	Bio         Optional[string]  `json:"bio"`
	Email       Optional[string]  `json:"email"`
	Phone       Optional[*string] `json:"phone"`
	Location    Optional[*string] `json:"location"`
	AvatarURL   Optional[*string] `json:"avatarUrl"`
	ResumeURL   Optional[*string] `json:"resumeUrl"`
	SocialLinks Optional[LinkMap] `json:"socialLinks"`
}
