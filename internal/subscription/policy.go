package subscription

import (
	"errors"

	"github.com/moalemy/salla-webhook/internal/entity"
)

// ErrSamePlanActive is returned when the user already holds an active
// subscription of the plan being purchased.
var ErrSamePlanActive = errors.New("an active subscription of this plan already exists")

// ErrNotUpgrade is returned when the purchased plan does not strictly upgrade
// the user's highest active plan.
var ErrNotUpgrade = errors.New("purchased plan does not upgrade the active plan")

// CheckUpgrade enforces the upgrade-only policy against the user's active
// subscriptions: buying the same plan again is a duplicate, and the new plan's
// level must be strictly greater than every active plan's level.
func CheckUpgrade(active []entity.Subscription, newPlan entity.Plan) error {
	highest := 0
	for _, s := range active {
		if s.PlanType == newPlan {
			return ErrSamePlanActive
		}
		if s.PlanType.Level() > highest {
			highest = s.PlanType.Level()
		}
	}
	if highest >= newPlan.Level() {
		return ErrNotUpgrade
	}
	return nil
}
