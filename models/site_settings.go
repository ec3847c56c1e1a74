package models

import "time"

// SiteSettingsKey is the fixed key of the single settings row.
const SiteSettingsKey = "site"

// SiteSettings controls site-wide presentation.
type SiteSettings struct {
	ID              string     `json:"-" db:"id" gorm:"primaryKey;size:36"`
	SiteTitle       string     `json:"siteTitle" db:"site_title" gorm:"type:text;not null;default:''"`
	SiteDescription string     `json:"siteDescription" db:"site_description" gorm:"type:text;not null;default:''"`
	Keywords        StringList `json:"keywords" db:"keywords" gorm:"not null"`
	NavLinks        LinkMap    `json:"navLinks" db:"nav_links" gorm:"not null"`
	ShowBlog        bool       `json:"showBlog" db:"show_blog" gorm:"not null;default:true"`
	ShowProjects    bool       `json:"showProjects" db:"show_projects" gorm:"not null;default:true"`
	MaintenanceMode bool       `json:"maintenanceMode" db:"maintenance_mode" gorm:"not null;default:false"`
	FooterText      string     `json:"footerText" db:"footer_text" gorm:"type:text;not null;default:''"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (SiteSettings) TableName() string { return "site_settings" }

type SiteSettingsPatch struct {
	SiteTitle       Optional[string]     `json:"siteTitle"`
	SiteDescription Optional[string]     `json:"siteDescription"`
	Keywords        Optional[StringList] `json:"keywords"`
	NavLinks        Optional[LinkMap]    `json:"navLinks"`
	ShowBlog        Optional[bool]       `json:"showBlog"`
	ShowProjects    Optional[bool]       `json:"showProjects"`
	MaintenanceMode Optional[bool]       `json:"maintenanceMode"`
	FooterText      Optional[string]     `json:"footerText"`
}
