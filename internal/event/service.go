package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/moalemy/salla-webhook/internal/entity"
	"github.com/moalemy/salla-webhook/pkg/log"
)

// Service records received webhook events and serves them to operators.
type Service interface {
	// Record stores the payload with its processing outcome. It never fails the
	// caller; persistence errors are logged and swallowed.
	Record(ctx context.Context, provider, eventType string, payload []byte, outcome, detail string)
	Count(ctx context.Context) (int, error)
	Query(ctx context.Context, offset, limit int) ([]entity.WebhookEvent, error)
}

type service struct {
	repo   Repository
	logger log.Logger
	now    func() time.Time
}

// NewService creates a new webhook event service.
func NewService(repo Repository, logger log.Logger) Service {
	return service{repo: repo, logger: logger, now: time.Now}
}

// Record implements Service.
func (s service) Record(ctx context.Context, provider, eventType string, payload []byte, outcome, detail string) {
	e := entity.WebhookEvent{
		ID:         uuid.New().String(),
		Provider:   provider,
		EventType:  eventType,
		Payload:    string(payload),
		Outcome:    outcome,
		Detail:     detail,
		ReceivedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.With(ctx, "event_type", eventType).Errorf("failed recording webhook event: %v", err)
	}
}

// Count implements Service.
func (s service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Query implements Service.
func (s service) Query(ctx context.Context, offset, limit int) ([]entity.WebhookEvent, error) {
	return s.repo.Query(ctx, offset, limit)
}
