package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moalemy/salla-webhook/internal/entity"
)

func active(plans ...entity.Plan) []entity.Subscription {
	var subs []entity.Subscription
	for _, p := range plans {
		subs = append(subs, entity.Subscription{PlanType: p, Status: entity.SubscriptionStatusActive})
	}
	return subs
}

func TestCheckUpgrade(t *testing.T) {
	// no active subscriptions: anything goes
	assert.NoError(t, CheckUpgrade(nil, entity.PlanHalfYearly))
	assert.NoError(t, CheckUpgrade(nil, entity.PlanYearly))

	// half-yearly -> yearly is an upgrade
	assert.NoError(t, CheckUpgrade(active(entity.PlanHalfYearly), entity.PlanYearly))

	// same plan again is a duplicate
	assert.ErrorIs(t, CheckUpgrade(active(entity.PlanYearly), entity.PlanYearly), ErrSamePlanActive)
	assert.ErrorIs(t, CheckUpgrade(active(entity.PlanHalfYearly), entity.PlanHalfYearly), ErrSamePlanActive)

	// yearly -> half-yearly is a downgrade
	assert.ErrorIs(t, CheckUpgrade(active(entity.PlanYearly), entity.PlanHalfYearly), ErrNotUpgrade)

	// duplicate wins over the level comparison when both apply
	assert.ErrorIs(t, CheckUpgrade(active(entity.PlanHalfYearly, entity.PlanYearly), entity.PlanYearly), ErrSamePlanActive)
}
