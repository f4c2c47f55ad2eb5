package repository

import (
	"gorm.io/gorm"

	"github.com/engrate/eg-power-tariffs-plugin/internal/tariff/domain"
)

// Migrate creates the tariff tables on databases without the SQL
// migration set, such as the in-memory sqlite used in tests.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&tariffRecord{}, &compositionRecord{}, &domain.AreaAssociation{})
}
