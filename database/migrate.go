package database

import (
	"fmt"

	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

// Migrate creates or alters every table to match the models. It is run once
// at startup, before any repository is used.
func Migrate(db *gorm.DB) error {
	db = db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	for _, model := range models.All() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}
	return nil
}
