package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/okibi/gateway-bridge/internal/store"
	"github.com/okibi/gateway-bridge/internal/store/model"
)

// Repository implements store.Repository on sqlite.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Audit() store.AuditRepository {
	return &auditRepository{db: r.db}
}

type auditRepository struct {
	db *sqlx.DB
}

func (a *auditRepository) Record(ctx context.Context, event *model.FetchEvent) error {
	_, err := a.db.NamedExecContext(ctx, `
		INSERT INTO fetch_events (id, endpoint, outcome, status_code, model_count, latency_ms, created_at)
		VALUES (:id, :endpoint, :outcome, :status_code, :model_count, :latency_ms, :created_at)`,
		event,
	)
	return err
}

func (a *auditRepository) Recent(ctx context.Context, limit int) ([]model.FetchEvent, error) {
	var events []model.FetchEvent
	err := a.db.SelectContext(ctx, &events, `
		SELECT id, endpoint, outcome, status_code, model_count, latency_ms, created_at
		FROM fetch_events
		ORDER BY created_at DESC
		LIMIT ?`,
		limit,
	)
	return events, err
}
