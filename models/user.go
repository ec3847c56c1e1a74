package models

import "time"

// User is an admin console account.
type User struct {
	ID                string    `json:"id" db:"id" gorm:"primaryKey;size:36"`
	Email             string    `json:"email" db:"email" gorm:"size:320;not null;uniqueIndex"`
	Username          string    `json:"username" db:"username" gorm:"type:text;not null"`
	PasswordHash      string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	VerificationToken *string   `json:"-" db:"verification_token" gorm:"size:128;index"`
	Verified          bool      `json:"verified" db:"verified" gorm:"not null;default:false"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (User) TableName() string { return "users" }

type UserPatch struct {
	Username     Optional[string] `json:"username"`
	PasswordHash Optional[string] `json:"-"`
}
