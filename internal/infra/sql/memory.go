package sql

import (
	"essensys-server/internal/infra/utils"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewMemoryORM opens a private in-memory sqlite database. Every call gets its own
// database so tests do not see each other's rows.
func NewMemoryORM() (*DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", utils.GenerateUUID())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard, TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite in-memory db: %w", err)
	}

	return &DB{DB: gormDB, system: "sqlite", autoMigrationEnabled: true}, nil
}

func NewSqliteORM(path string, timeout time.Duration) (*DB, error) {
	gormDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Discard, TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db %s: %w", path, err)
	}

	return &DB{DB: gormDB, system: "sqlite", autoMigrationEnabled: true, timeout: timeout}, nil
}
