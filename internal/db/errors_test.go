package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgconn"
)

func TestIsUniqueViolationPostgres(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}
	if !IsUniqueViolation(pgErr) {
		t.Fatal("expected 23505 to count as a unique violation")
	}
	if !IsUniqueViolation(fmt.Errorf("create: %w", pgErr)) {
		t.Fatal("expected wrapped 23505 to count as a unique violation")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("23503 is not a unique violation")
	}
	if IsUniqueViolation(nil) {
		t.Fatal("nil is not a unique violation")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("expected 23503 to count as a foreign key violation")
	}
	if !IsForeignKeyViolation(errors.New("FOREIGN KEY constraint failed")) {
		t.Fatal("expected the sqlite message to count as a foreign key violation")
	}
	if IsForeignKeyViolation(errors.New("disk I/O error")) {
		t.Fatal("unrelated errors are not foreign key violations")
	}
	if IsForeignKeyViolation(nil) {
		t.Fatal("nil is not a foreign key violation")
	}
}
