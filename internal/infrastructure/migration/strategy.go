package migration

import (
	"gorm.io/gorm"
)

// Strategy applies the schema to a database.
type Strategy interface {
	Migrate(db *gorm.DB) error
	GetName() string
}

// Reversible strategies can also step back and report their state.
type Reversible interface {
	Strategy
	MigrateDown(db *gorm.DB, steps int) error
	Status(db *gorm.DB) error
	GetVersion(db *gorm.DB) (int64, error)
}
