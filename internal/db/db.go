package db

import (
	"errors"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type PoolSettings struct {
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeSeconds int
	ConnMaxIdleTimeSeconds int
}

// Open connects to Postgres using the given DSN.
func Open(dsn string, pool PoolSettings) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetimeSeconds > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetimeSeconds) * time.Second)
	}
	if pool.ConnMaxIdleTimeSeconds > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(pool.ConnMaxIdleTimeSeconds) * time.Second)
	}
	return conn, nil
}

// Migrate runs GORM auto-migrations for the core tables.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("db connection is nil")
	}
	if err := conn.AutoMigrate(
		&User{},
		&Word{},
		&Language{},
		&Meaning{},
		&Game{},
		&Play{},
		&Hand{},
		&Choice{},
		&Guess{},
		&HandGuess{},
		&Vote{},
		&ConditionTag{},
		&Condition{},
		&Event{},
	); err != nil {
		return err
	}
	// Partial unique index, supported by both Postgres and SQLite. GORM tags
	// cannot express the predicate, so it is created here and mirrored in the
	// SQL migrations.
	if err := conn.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_hands_one_open_per_game ON hands (game_id) WHERE finished_at IS NULL",
	).Error; err != nil {
		return err
	}
	log.Println("database migration complete")
	return nil
}
