package models

import "time"

// Experience is a work history entry. An empty EndDate means the position is current.
type Experience struct {
	ID               string     `json:"id" db:"id" gorm:"primaryKey;size:36"`
	Company          string     `json:"company" db:"company" gorm:"type:text;not null"`
	Position         string     `json:"position" db:"position" gorm:"type:text;not null"`
	Location         *string    `json:"location,omitempty" db:"location" gorm:"type:text"`
	Description      string     `json:"description" db:"description" gorm:"type:text;not null"`
	Responsibilities StringList `json:"responsibilities" db:"responsibilities" gorm:"not null"`
	Technologies     StringList `json:"technologies" db:"technologies" gorm:"not null"`
	StartDate        string     `json:"startDate" db:"start_date" gorm:"type:text;not null"`
	EndDate          *string    `json:"endDate,omitempty" db:"end_date" gorm:"type:text"`
	OrderIndex       int        `json:"orderIndex" db:"order_index" gorm:"not null;default:0;index"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (Experience) TableName() string { return "experiences" }

type ExperiencePatch struct {
	Company          Optional[string]     `json:"company"`
	Position         Optional[string]     `json:"position"`
	Location         Optional[*string]    `json:"location"`
	Description      Optional[string]     `json:"description"`
	Responsibilities Optional[StringList] `json:"responsibilities"`
	Technologies     Optional[StringList] `json:"technologies"`
	StartDate        Optional[string]     `json:"startDate"`
	EndDate          Optional[*string]    `json:"endDate"`
	OrderIndex       Optional[int]        `json:"orderIndex"`
}

type ExperienceFilter struct {
	Page     int
	PageSize int
	Search   string
}
