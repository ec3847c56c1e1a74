package models

import "time"

// Message is a contact form submission.
type Message struct {
	ID        string    `json:"id" db:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null"`
	Subject   *string   `json:"subject,omitempty" db:"subject" gorm:"type:text"`
	Message   string    `json:"message" db:"message" gorm:"type:text;not null"`
	Read      bool      `json:"read" db:"read" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"not null;index"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (Message) TableName() string { return "messages" }

type MessagePatch struct {
	Read Optional[bool] `json:"read"`
}

type MessageFilter struct {
	Page     int
	PageSize int
	Search   string
	Read     *bool
}
