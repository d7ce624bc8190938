package postgre

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"report-runtime/internal/state/repository"
)

// PutIfAbsent inserts the row and leaves an existing one untouched.
func (r *implRepository) PutIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	res, err := r.db.ExecContext(ctx, insertStateQuery, key, value)
	if err != nil {
		if isQuota(err) {
			return false, repository.ErrQuotaExceeded
		}
		r.l.Errorf(ctx, "state.repository.postgre.PutIfAbsent: Failed to insert state: %v", err)
		return false, repository.ErrWriteFailed
	}
	n, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "state.repository.postgre.PutIfAbsent: Failed to read rows affected: %v", err)
		return false, repository.ErrWriteFailed
	}
	return n == 1, nil
}

func (r *implRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var state []byte
	err := r.db.QueryRowContext(ctx, selectStateQuery, key).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "state.repository.postgre.Get: Failed to select state: %v", err)
		return nil, false, repository.ErrReadFailed
	}
	return state, true, nil
}

func (r *implRepository) Clear(ctx context.Context, prefix string) error {
	res, err := r.db.ExecContext(ctx, deleteStateQuery, prefix)
	if err != nil {
		r.l.Errorf(ctx, "state.repository.postgre.Clear: Failed to delete states: %v", err)
		return repository.ErrClearFailed
	}
	n, _ := res.RowsAffected()
	r.l.Infof(ctx, "state.repository.postgre.Clear: removed %d report states", n)
	return nil
}

// EnsureSchema creates the report_states table if it is missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}

// isQuota matches disk_full and program_limit_exceeded.
func isQuota(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "53100" || pqErr.Code == "54000"
}
