package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/moalemy/salla-webhook/internal/entity"
	"github.com/moalemy/salla-webhook/pkg/log"
)

// Service encapsulates the subscription business logic.
type Service interface {
	// Purchase records a verified purchase of the given plan for the user.
	// It returns ErrSamePlanActive or ErrNotUpgrade when the upgrade-only
	// policy rejects the purchase.
	Purchase(ctx context.Context, userID string, plan entity.Plan, transactionID string) (entity.Subscription, error)
	// ListForUser returns all subscriptions of the given user, newest first.
	ListForUser(ctx context.Context, userID string) ([]entity.Subscription, error)
}

type service struct {
	repo   Repository
	logger log.Logger
	now    func() time.Time
}

// NewService creates a new subscription service.
func NewService(repo Repository, logger log.Logger) Service {
	return service{repo: repo, logger: logger, now: time.Now}
}

// Purchase implements Service.
func (s service) Purchase(ctx context.Context, userID string, plan entity.Plan, transactionID string) (entity.Subscription, error) {
	start := s.now().UTC()
	sub := entity.Subscription{
		ID:               uuid.New().String(),
		UserID:           userID,
		PlanType:         plan,
		StartDate:        start,
		EndDate:          start.AddDate(0, 0, plan.Days()),
		Status:           entity.SubscriptionStatusActive,
		Price:            plan.Price(),
		TransactionID:    transactionID,
		PurchaseVerified: true,
		CreatedAt:        start,
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return entity.Subscription{}, err
	}

	s.logger.With(ctx, "user_id", userID, "plan", plan, "transaction_id", transactionID).
		Infof("subscription recorded until %s", sub.EndDate.Format(time.RFC3339))
	return sub, nil
}

// ListForUser implements Service.
func (s service) ListForUser(ctx context.Context, userID string) ([]entity.Subscription, error) {
	return s.repo.ByUser(ctx, userID)
}
