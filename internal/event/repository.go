package event

import (
	"context"

	dbx "github.com/go-ozzo/ozzo-dbx"
	"github.com/moalemy/salla-webhook/internal/entity"
	"github.com/moalemy/salla-webhook/pkg/dbcontext"
	"github.com/moalemy/salla-webhook/pkg/log"
)

// Repository persists received webhook events.
type Repository interface {
	Create(ctx context.Context, e entity.WebhookEvent) error
	Count(ctx context.Context) (int, error)
	Query(ctx context.Context, offset, limit int) ([]entity.WebhookEvent, error)
}

type repository struct {
	db     *dbcontext.DB
	logger log.Logger
}

// NewRepository creates a new webhook event repository.
func NewRepository(db *dbcontext.DB, logger log.Logger) Repository {
	return repository{db, logger}
}

// Create implements Repository.
func (r repository) Create(ctx context.Context, e entity.WebhookEvent) error {
	_, err := r.db.With(ctx).Insert("webhook_events", dbx.Params{
		"id":          e.ID,
		"provider":    e.Provider,
		"event_type":  e.EventType,
		"payload":     e.Payload,
		"outcome":     e.Outcome,
		"detail":      e.Detail,
		"received_at": e.ReceivedAt,
	}).Execute()
	return err
}

// Count implements Repository.
func (r repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.With(ctx).Select("COUNT(*)").From("webhook_events").Row(&count)
	return count, err
}

// Query implements Repository.
func (r repository) Query(ctx context.Context, offset, limit int) ([]entity.WebhookEvent, error) {
	var events []entity.WebhookEvent
	err := r.db.With(ctx).
		Select().
		From("webhook_events").
		OrderBy("received_at DESC").
		Offset(int64(offset)).
		Limit(int64(limit)).
		All(&events)
	return events, err
}
