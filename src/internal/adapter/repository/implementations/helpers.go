package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/lib/pq"
)

type rowScanner interface {
	Scan(dest ...any) error
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// execRequiredRows fails with commons.ErrRecordNotFound when the statement
// touched no rows.
func execRequiredRows(ctx context.Context, db execer, query string, args ...any) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return 0, commons.ErrRecordNotFound
	}

	return rowsAffected, nil
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func int64FromNull(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
