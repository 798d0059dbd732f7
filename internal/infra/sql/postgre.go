package sql

import (
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const _queryTimeout = 5 * time.Second

// NewPostgreORM connects through the pgx stdlib driver. The password can be
// kept out of the DSN with ESSENSYS_SERVER_POSTGRES_PASSWORD.
func NewPostgreORM(dsn string) (*DB, error) {
	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}
	if pass, ok := os.LookupEnv("ESSENSYS_SERVER_POSTGRES_PASSWORD"); ok {
		connConfig.Password = pass
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: stdlib.OpenDB(*connConfig),
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}

	return &DB{
		DB:                   gormDB,
		system:               "postgresql",
		autoMigrationEnabled: true,
		timeout:              _queryTimeout,
	}, nil
}
