package database

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"ecodrive/models"
)

// Migrate brings the schema up to date.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250301_create_ecodrive_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(models.All()...)
			},
			Rollback: func(tx *gorm.DB) error {
				all := models.All()
				for i := len(all) - 1; i >= 0; i-- {
					if err := tx.Migrator().DropTable(all[i]); err != nil {
						return err
					}
				}
				return nil
			},
		},
	})
	return m.Migrate()
}
