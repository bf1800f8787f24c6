package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEmptyRequirementName = errors.New("requirement name must not be empty")
	ErrDuplicateRequirement = errors.New("requirement already exists")
	ErrStudentNotFound      = errors.New("student not found")
	ErrRequirementNotFound  = errors.New("requirement not found")
	ErrIncomplete           = errors.New("student has not completed all requirements")
	ErrConflict             = errors.New("conflicting concurrent update, please retry")
)

// postgres error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	// sqlite (tests) has no typed driver error through gorm
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationFailure
	}

	return false
}
