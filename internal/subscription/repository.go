package subscription

import (
	"context"
	"errors"

	dbx "github.com/go-ozzo/ozzo-dbx"
	"github.com/lib/pq"
	"github.com/moalemy/salla-webhook/internal/entity"
	"github.com/moalemy/salla-webhook/pkg/dbcontext"
	"github.com/moalemy/salla-webhook/pkg/log"
)

// Repository persists subscriptions.
type Repository interface {
	// ActiveByUser returns all active subscriptions of the given user.
	ActiveByUser(ctx context.Context, userID string) ([]entity.Subscription, error)
	// ByUser returns all subscriptions of the given user, newest first.
	ByUser(ctx context.Context, userID string) ([]entity.Subscription, error)
	// Create inserts the subscription after checking the upgrade-only policy
	// against the user's active subscriptions. The check and the insert run in
	// one transaction; the active rows are locked for its duration.
	Create(ctx context.Context, sub entity.Subscription) error
}

type repository struct {
	db     *dbcontext.DB
	logger log.Logger
}

// NewRepository creates a new subscription repository.
func NewRepository(db *dbcontext.DB, logger log.Logger) Repository {
	return repository{db, logger}
}

// uniqueViolation is the Postgres error code raised by the partial unique
// index on (user_id, plan_type) for active rows.
const uniqueViolation = "23505"

// ActiveByUser implements Repository.
func (r repository) ActiveByUser(ctx context.Context, userID string) ([]entity.Subscription, error) {
	var subs []entity.Subscription
	err := r.db.With(ctx).
		Select().
		From("subscriptions").
		Where(dbx.HashExp{"user_id": userID, "status": entity.SubscriptionStatusActive}).
		All(&subs)
	return subs, err
}

// ByUser implements Repository.
func (r repository) ByUser(ctx context.Context, userID string) ([]entity.Subscription, error) {
	var subs []entity.Subscription
	err := r.db.With(ctx).
		Select().
		From("subscriptions").
		Where(dbx.HashExp{"user_id": userID}).
		OrderBy("start_date DESC").
		All(&subs)
	return subs, err
}

// Create implements Repository.
func (r repository) Create(ctx context.Context, sub entity.Subscription) error {
	err := r.db.Transactional(ctx, func(ctx context.Context) error {
		var active []entity.Subscription
		err := r.db.With(ctx).
			NewQuery("SELECT * FROM subscriptions WHERE user_id = {:user_id} AND status = {:status} FOR UPDATE").
			Bind(dbx.Params{"user_id": sub.UserID, "status": entity.SubscriptionStatusActive}).
			All(&active)
		if err != nil {
			return err
		}

		if err := CheckUpgrade(active, sub.PlanType); err != nil {
			return err
		}

		_, err = r.db.With(ctx).Insert("subscriptions", dbx.Params{
			"id":                sub.ID,
			"user_id":           sub.UserID,
			"plan_type":         string(sub.PlanType),
			"start_date":        sub.StartDate,
			"end_date":          sub.EndDate,
			"status":            sub.Status,
			"price":             sub.Price,
			"transaction_id":    sub.TransactionID,
			"purchase_verified": sub.PurchaseVerified,
			"created_at":        sub.CreatedAt,
		}).Execute()
		return err
	})

	// a concurrent purchase that slipped past the guard trips the partial
	// unique index instead; report it the same way as the guard
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return ErrSamePlanActive
	}
	return err
}
