package store

import (
	"context"

	"github.com/okibi/gateway-bridge/internal/core/ports"
	"github.com/okibi/gateway-bridge/internal/store/model"
)

// Repository is the contract for the audit data layer.
type Repository interface {
	Audit() AuditRepository
	Close() error
}

type AuditRepository interface {
	// Record persists one discovery fetch event.
	Record(ctx context.Context, event *model.FetchEvent) error
	// Recent returns the newest events, most recent first.
	Recent(ctx context.Context, limit int) ([]model.FetchEvent, error)
}

// Sink adapts a Repository to the discovery service's audit port.
type Sink struct {
	repo Repository
}

func NewSink(repo Repository) *Sink {
	return &Sink{repo: repo}
}

func (s *Sink) Record(ctx context.Context, rec ports.FetchRecord) error {
	return s.repo.Audit().Record(ctx, &model.FetchEvent{
		ID:         rec.ID,
		Endpoint:   rec.Endpoint,
		Outcome:    rec.Outcome,
		StatusCode: rec.StatusCode,
		ModelCount: rec.ModelCount,
		LatencyMs:  rec.Latency.Milliseconds(),
		CreatedAt:  rec.At,
	})
}

var _ ports.AuditSink = (*Sink)(nil)
