package models

import "time"

// Education is a degree or certification entry.
type Education struct {
	ID           string     `json:"id" db:"id" gorm:"primaryKey;size:36"`
	Degree       string     `json:"degree" db:"degree" gorm:"type:text;not null"`
	Institution  string     `json:"institution" db:"institution" gorm:"type:text;not null"`
	FieldOfStudy *string    `json:"fieldOfStudy,omitempty" db:"field_of_study" gorm:"type:text"`
	Location     *string    `json:"location,omitempty" db:"location" gorm:"type:text"`
	StartDate    string     `json:"startDate" db:"start_date" gorm:"type:text;not null"`
	EndDate      *string    `json:"endDate,omitempty" db:"end_date" gorm:"type:text"`
	Description  StringList `json:"description" db:"description" gorm:"not null"`
	Achievements StringList `json:"achievements" db:"achievements" gorm:"not null"`
	Courses      StringList `json:"courses" db:"courses" gorm:"not null"`
	OrderIndex   int        `json:"orderIndex" db:"order_index" gorm:"not null;default:0;index"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (Education) TableName() string { return "education" }

type EducationPatch struct {
	Degree       Optional[string]     `json:"degree"`
	Institution  Optional[string]     `json:"institution"`
	FieldOfStudy Optional[*string]    `json:"fieldOfStudy"`
	Location     Optional[*string]    `json:"location"`
	StartDate    Optional[string]     `json:"startDate"`
	EndDate      Optional[*string]    `json:"endDate"`
	Description  Optional[StringList] `json:"description"`
	Achievements Optional[StringList] `json:"achievements"`
	Courses      Optional[StringList] `json:"courses"`
	OrderIndex   Optional[int]        `json:"orderIndex"`
}

type EducationFilter struct {
	Page     int
	PageSize int
	Search   string
}
