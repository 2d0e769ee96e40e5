package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"promostore/internal/domain"
)

// ErrLogFinished is returned when a sync log entry has already left the
// running state.
var ErrLogFinished = errors.New("sync log already finished")

type SyncLogRepo struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSyncLogRepo(db *sqlx.DB) *SyncLogRepo {
	return &SyncLogRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

const syncLogColumns = `id, sync_type, status, records_processed, error_message, started_at, completed_at`

// Start records a new running entry.
func (r *SyncLogRepo) Start(ctx context.Context, t domain.SyncType) (domain.SyncRunLog, error) {
	l := domain.SyncRunLog{
		ID:        uuid.NewString(),
		SyncType:  t,
		Status:    domain.SyncRunning,
		StartedAt: r.now(),
	}
	_, err := r.db.NamedExecContext(ctx, `
	  INSERT INTO sync_logs(`+syncLogColumns+`)
	  VALUES(:id, :sync_type, :status, :records_processed, :error_message, :started_at, :completed_at)
	`, l)
	if err != nil {
		return domain.SyncRunLog{}, err
	}
	return l, nil
}

func (r *SyncLogRepo) Complete(ctx context.Context, id string, records int) error {
	return r.finish(ctx, id, domain.SyncCompleted, records, "")
}

func (r *SyncLogRepo) Fail(ctx context.Context, id, msg string) error {
	return r.finish(ctx, id, domain.SyncFailed, 0, msg)
}

// finish moves a running entry to its terminal status. Only the first call
// for an entry has any effect.
func (r *SyncLogRepo) finish(ctx context.Context, id string, status domain.SyncStatus, records int, msg string) error {
	res, err := r.db.ExecContext(ctx, `
	  UPDATE sync_logs
	  SET status = ?, records_processed = ?, error_message = ?, completed_at = ?
	  WHERE id = ? AND status = 'running'
	`, status, records, msg, r.now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return ErrLogFinished
	}
	return nil
}

func (r *SyncLogRepo) Get(ctx context.Context, id string) (domain.SyncRunLog, error) {
	var l domain.SyncRunLog
	err := r.db.GetContext(ctx, &l, `SELECT `+syncLogColumns+` FROM sync_logs WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SyncRunLog{}, ErrNotFound
	}
	return l, err
}

// ListLatest returns the newest entries first.
func (r *SyncLogRepo) ListLatest(ctx context.Context, limit int) ([]domain.SyncRunLog, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.SyncRunLog{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT `+syncLogColumns+`
	  FROM sync_logs
	  ORDER BY started_at DESC, rowid DESC
	  LIMIT ?
	`, limit)
	return out, err
}
