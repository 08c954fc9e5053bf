package migration

import (
	"fmt"

	"gorm.io/gorm"

	"tourbook/internal/shared/config"
	"tourbook/internal/shared/logger"
)

// Manager runs the strategy matching the configured database driver.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks goose for mysql and gorm AutoMigrate for sqlite.
func NewManager(driver string) *Manager {
	var strategy Strategy
	switch driver {
	case config.DriverMySQL:
		strategy = NewGooseStrategy("mysql")
	default:
		strategy = NewGormAutoMigrateStrategy()
	}
	return NewManagerWithStrategy(strategy)
}

func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

func (m *Manager) reversible() (Reversible, error) {
	r, ok := m.strategy.(Reversible)
	if !ok {
		return nil, fmt.Errorf("strategy %s does not support versioned operations", m.strategy.GetName())
	}
	return r, nil
}

func (m *Manager) Down(db *gorm.DB, steps int) error {
	r, err := m.reversible()
	if err != nil {
		return err
	}
	return r.MigrateDown(db, steps)
}

func (m *Manager) Status(db *gorm.DB) error {
	r, err := m.reversible()
	if err != nil {
		return err
	}
	return r.Status(db)
}
