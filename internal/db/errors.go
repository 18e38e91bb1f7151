package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"
)

// IsUniqueViolation reports whether err is a uniqueness constraint failure.
// Postgres reports code 23505; sqlite (used in tests) only exposes the message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether err is a foreign key constraint failure.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
