package db

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pavilion-status-backend/config"
	"pavilion-status-backend/internal/model"
)

// Init opens the watch registry database and runs migrations. The default
// deployment uses a local sqlite file; a postgres DSN is supported for
// setups that already run one.
func Init(cfg *config.RegistryConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported registry driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open registry database: %w", err)
	}

	log.Println("Running registry migrations...")
	if err := db.AutoMigrate(
		&model.WatchedPavilion{},
		&model.TicketProfile{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	return db, nil
}
