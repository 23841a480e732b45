package postgres

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to open the database.
type Config struct {
	DSN string
}

// Connect opens a gorm handle against the hosted Postgres and verifies
// connectivity.
func Connect(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return db, nil
}

// Migrate ensures the six externally contracted tables exist. The hosted
// schema is authoritative in production; this is for local and test runs.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userRow{},
		&employerRow{},
		&freelancerRow{},
		&jobRow{},
		&transactionRow{},
		&invitationRow{},
	)
}
