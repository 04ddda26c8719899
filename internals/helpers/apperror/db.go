package apperror

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// FromDB classifies a gorm/driver error. Errors that are already *Error
// pass through untouched.
func FromDB(err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}

	code := ""
	var pgErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgErr):
		code = pgErr.Code
	case errors.As(err, &pqErr):
		code = string(pqErr.Code)
	}

	switch code {
	case "23505", "23P01":
		return &Error{Kind: KindConflict, Code: "CONFLICT", Message: "duplicate or overlapping record", Err: err}
	case "23503":
		return &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: "referenced record does not exist", Err: err}
	case "23514", "22P02":
		return &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: "value rejected by database", Err: err}
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: KindConflict, Code: "CONFLICT", Message: "duplicate record", Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: "referenced record does not exist", Err: err}
	}
	return Persistence(err)
}

// NotFoundOr maps gorm.ErrRecordNotFound to nf and anything else through FromDB.
func NotFoundOr(err error, nf *Error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nf
	}
	return FromDB(err)
}
