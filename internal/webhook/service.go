package webhook

import (
	"context"
	stderr "errors"
	"fmt"
	"time"

	"github.com/moalemy/salla-webhook/internal/archive"
	"github.com/moalemy/salla-webhook/internal/entity"
	"github.com/moalemy/salla-webhook/internal/errors"
	"github.com/moalemy/salla-webhook/internal/event"
	"github.com/moalemy/salla-webhook/internal/subscription"
	"github.com/moalemy/salla-webhook/internal/user"
	"github.com/moalemy/salla-webhook/pkg/log"
)

const provider = "salla"

// hintSamePhone tells the store operator that the buyer must purchase with the
// phone number registered in the app.
const hintSamePhone = "لم يتم العثور على حساب مطابق. يجب على المشتري استخدام نفس رقم الجوال المسجل في التطبيق"

// Result is the body returned to the store on a 200 response.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	UserID  string      `json:"user_id,omitempty"`
	Plan    entity.Plan `json:"plan,omitempty"`
	EndDate *time.Time  `json:"end_date,omitempty"`
}

// Service processes order webhooks from the store.
type Service interface {
	// Process handles one webhook body. Benign no-ops return a Result with a
	// diagnostic message; business failures return errors carrying HTTP status.
	Process(ctx context.Context, body []byte) (Result, error)
}

type service struct {
	resolver user.Resolver
	subs     subscription.Service
	events   event.Service
	archiver archive.Archiver
	logger   log.Logger
	now      func() time.Time
}

// NewService creates a new webhook processing service.
func NewService(resolver user.Resolver, subs subscription.Service, events event.Service, archiver archive.Archiver, logger log.Logger) Service {
	return service{
		resolver: resolver,
		subs:     subs,
		events:   events,
		archiver: archiver,
		logger:   logger,
		now:      time.Now,
	}
}

// Process implements Service.
func (s service) Process(ctx context.Context, body []byte) (Result, error) {
	ev, ok := ParseEnvelope(body)
	if !ok {
		s.events.Record(ctx, provider, "unrecognized", body, entity.EventOutcomeIgnored, "payload not recognized as an order event")
		return Result{
			Success: true,
			Message: "Webhook URL is reachable, but the payload was not recognized as an order event.",
		}, nil
	}

	logger := s.logger.With(ctx, "event", ev.Event, "order_id", ev.OrderID)
	transactionID := s.transactionID(ev)

	if err := s.archiver.Store(ctx, transactionID, body); err != nil {
		logger.Errorf("failed archiving webhook payload: %v", err)
	}

	if ev.IsStatusUpdate() && !ev.Finalized() {
		s.record(ctx, ev, body, entity.EventOutcomeIgnored, "order status "+ev.StatusSlug+" is not final")
		return Result{
			Success: true,
			Message: fmt.Sprintf("order status %q is not final; nothing to do yet", ev.StatusSlug),
		}, nil
	}

	if ev.Email == "" && ev.Phone == "" {
		s.record(ctx, ev, body, entity.EventOutcomeFailed, "no customer email or phone in payload")
		return Result{}, errors.BadRequest("order has no customer email or phone")
	}

	plan, ok := InferPlan(ev.Items)
	if !ok {
		s.record(ctx, ev, body, entity.EventOutcomeFailed, "order has no items")
		return Result{}, errors.BadRequest("cannot determine a plan: order has no items")
	}
	logger.Infof("inferred plan %s from product %q", plan, ev.Items[0].Name)

	userID, err := s.resolver.Resolve(ctx, ev.Email, ev.Phone)
	if err != nil {
		s.record(ctx, ev, body, entity.EventOutcomeFailed, "user resolution failed: "+err.Error())
		return Result{}, errors.InternalServerError("")
	}
	if userID == "" {
		s.record(ctx, ev, body, entity.EventOutcomeFailed, "no app user matches the buyer identity")
		return Result{}, errors.NotFoundWithHint("no app user matches the buyer identity", hintSamePhone)
	}

	sub, err := s.subs.Purchase(ctx, userID, plan, transactionID)
	switch {
	case stderr.Is(err, subscription.ErrSamePlanActive):
		s.record(ctx, ev, body, entity.EventOutcomeFailed, "same plan already active")
		return Result{}, errors.Conflict(fmt.Sprintf("an active %s subscription already exists; duplicate same-plan purchases are not allowed", plan))
	case stderr.Is(err, subscription.ErrNotUpgrade):
		s.record(ctx, ev, body, entity.EventOutcomeFailed, "purchase does not upgrade the active plan")
		return Result{}, errors.Conflict("upgrade only: the purchased plan does not upgrade the currently active plan")
	case err != nil:
		s.record(ctx, ev, body, entity.EventOutcomeFailed, "insert failed: "+err.Error())
		return Result{}, errors.InternalServerError(err.Error())
	}

	s.record(ctx, ev, body, entity.EventOutcomeProcessed, "subscription "+sub.ID)
	return Result{
		Success: true,
		UserID:  userID,
		Plan:    plan,
		EndDate: &sub.EndDate,
	}, nil
}

// transactionID derives a stable transaction id from the order id, falling
// back to the receive time when the payload carries no usable id.
func (s service) transactionID(ev OrderEvent) string {
	if ev.OrderID != "" {
		return "salla-" + ev.OrderID
	}
	return fmt.Sprintf("salla-%d", s.now().UnixMilli())
}

func (s service) record(ctx context.Context, ev OrderEvent, body []byte, outcome, detail string) {
	s.events.Record(ctx, provider, ev.Event, body, outcome, detail)
}
