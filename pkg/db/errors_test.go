package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolationPostgres(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	wrapped := fmt.Errorf("create user: %w", pgErr)

	if !IsUniqueViolation(wrapped) {
		t.Fatal("expected unique violation for 23505")
	}
	if got := UniqueConstraintHint(wrapped); got != "users_email_key" {
		t.Fatalf("expected constraint hint, got %q", got)
	}

	other := &pgconn.PgError{Code: "23503"}
	if IsUniqueViolation(other) {
		t.Fatal("foreign key violation misclassified as unique")
	}
}

func TestIsUniqueViolationSQLiteMessage(t *testing.T) {
	err := errors.New("UNIQUE constraint failed: users.username")
	if !IsUniqueViolation(err) {
		t.Fatal("expected unique violation for sqlite message")
	}
	if got := UniqueConstraintHint(err); got != "users.username" {
		t.Fatalf("expected users.username hint, got %q", got)
	}
}

func TestIsUniqueViolationPlainError(t *testing.T) {
	if IsUniqueViolation(errors.New("connection refused")) {
		t.Fatal("plain error misclassified")
	}
	if IsUniqueViolation(nil) {
		t.Fatal("nil misclassified")
	}
}
