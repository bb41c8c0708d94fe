package postgres

import (
	"fmt"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"whisperlink.backend/internal/config"
	"whisperlink.backend/internal/infrastructure/models"
)

var (
	connectOnce sync.Once
	sharedDB    *gorm.DB
	connectErr  error
)

var openGorm = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN: dsn,
	}), &gorm.Config{
		TranslateError: true,
	})
}

// Connect establishes the shared database connection. The first caller opens
// and pings it; concurrent and later callers get the memoized result. This
// replaces a plain "connected" flag, which would let two early requests race
// and each open a connection.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	connectOnce.Do(func() {
		db, err := openGorm(cfg.URL())
		if err != nil {
			connectErr = fmt.Errorf("failed to open database: %w", err)
			return
		}

		sqlDB, err := db.DB()
		if err != nil {
			connectErr = fmt.Errorf("failed to get generic database object: %w", err)
			return
		}
		if err := sqlDB.Ping(); err != nil {
			connectErr = fmt.Errorf("failed to ping database: %w", err)
			return
		}

		if err := db.AutoMigrate(&models.User{}, &models.Message{}); err != nil {
			connectErr = fmt.Errorf("failed to migrate schema: %w", err)
			return
		}

		sharedDB = db
	})
	return sharedDB, connectErr
}

// Reset clears the memoized connection (used for testing)
func Reset() {
	connectOnce = sync.Once{}
	sharedDB = nil
	connectErr = nil
}
