package persistent

import (
	"errors"
	"strings"

	"culinary-hub/internal/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		pgCode(err) == pgUniqueViolation ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKey(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrForeignKeyViolated) ||
		pgCode(err) == pgForeignKeyViolation ||
		strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isCheck(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrCheckConstraintViolated) ||
		pgCode(err) == pgCheckViolation ||
		strings.Contains(err.Error(), "CHECK constraint failed")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// writeError translates a failed insert or update. what names the record
// being written, parent the records it references.
func writeError(err error, what, parent string) error {
	switch {
	case err == nil:
		return nil
	case isDuplicate(err):
		return entity.Conflict("%s already exists", what)
	case isForeignKey(err):
		return entity.NewError(entity.ErrNotFound, "%s not found", parent)
	case isCheck(err):
		return entity.Invalid("%s violates a value constraint", what)
	case isNotFound(err):
		return entity.NotFound(what)
	}
	return err
}

// deleteError translates a failed delete: a foreign key hit means rows
// still reference the record.
func deleteError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case isForeignKey(err):
		return entity.NewError(entity.ErrHasDependents, "%s is still referenced by other records", what)
	case isNotFound(err):
		return entity.NotFound(what)
	}
	return err
}

func readError(err error, what string) error {
	if isNotFound(err) {
		return entity.NotFound(what)
	}
	return err
}
