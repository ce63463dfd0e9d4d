package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moalemy/salla-webhook/internal/entity"
)

func TestParseEnvelopeEventForm(t *testing.T) {
	body := []byte(`{
		"event": "order.created",
		"data": {
			"id": 42,
			"customer": {"email": "T@X.com ", "mobile": "0512345678"},
			"items": [{"product": {"name": "اشتراك سنوي", "sku": "SUB-1Y"}}],
			"status": {"slug": "completed"}
		}
	}`)

	ev, ok := ParseEnvelope(body)
	require.True(t, ok)
	assert.Equal(t, "order.created", ev.Event)
	assert.Equal(t, "42", ev.OrderID)
	assert.Equal(t, "t@x.com", ev.Email)
	assert.Equal(t, "0512345678", ev.Phone)
	assert.Equal(t, "completed", ev.StatusSlug)
	require.Len(t, ev.Items, 1)
	assert.Equal(t, "اشتراك سنوي", ev.Items[0].Name)
	assert.Equal(t, "SUB-1Y", ev.Items[0].SKU)
}

func TestParseEnvelopeBareOrder(t *testing.T) {
	body := []byte(`{
		"reference_id": "R-9",
		"customer": {"email": "a@b.com"},
		"items": [{"name": "yearly subscription"}]
	}`)

	ev, ok := ParseEnvelope(body)
	require.True(t, ok)
	assert.Equal(t, synthesizedEvent, ev.Event)
	assert.Equal(t, "R-9", ev.OrderID)
	assert.Equal(t, "a@b.com", ev.Email)
}

func TestParseEnvelopeWrappedOrder(t *testing.T) {
	body := []byte(`{"order": {"id": "77", "customer": {"email": "a@b.com"}}}`)

	ev, ok := ParseEnvelope(body)
	require.True(t, ok)
	assert.Equal(t, synthesizedEvent, ev.Event)
	assert.Equal(t, "77", ev.OrderID)
}

func TestParseEnvelopeUnrecognized(t *testing.T) {
	for _, body := range []string{`{}`, `{"foo": 1}`, `{"event": "ping"}`, `[1,2,3]`, `"hello"`} {
		_, ok := ParseEnvelope([]byte(body))
		assert.False(t, ok, "body %s", body)
	}
}

func TestParseEnvelopeIdentityPrecedence(t *testing.T) {
	body := []byte(`{
		"id": 1,
		"email": "top@x.com",
		"phone": "111111111",
		"customer": {"phone": 512345678},
		"shipping": {"receiver": {"email": "receiver@x.com", "mobile": "0599999999"}}
	}`)

	ev, ok := ParseEnvelope(body)
	require.True(t, ok)
	// customer has no email, so the shipping receiver's wins over the top level
	assert.Equal(t, "receiver@x.com", ev.Email)
	// the customer's phone wins even when sent as a bare number
	assert.Equal(t, "512345678", ev.Phone)
}

func TestParseEnvelopeStatusString(t *testing.T) {
	body := []byte(`{"id": 5, "status": "Completed"}`)

	ev, ok := ParseEnvelope(body)
	require.True(t, ok)
	assert.Equal(t, "completed", ev.StatusSlug)
	assert.True(t, ev.Finalized())
}

func TestOrderEventStatus(t *testing.T) {
	ev := OrderEvent{Event: "order.status.updated", StatusSlug: "pending"}
	assert.True(t, ev.IsStatusUpdate())
	assert.False(t, ev.Finalized())

	ev.StatusSlug = "delivered"
	assert.True(t, ev.Finalized())

	// no slug means nothing to wait for
	ev.StatusSlug = ""
	assert.True(t, ev.Finalized())

	assert.False(t, OrderEvent{Event: "order.created"}.IsStatusUpdate())
}

func TestInferPlan(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  entity.Plan
		ok    bool
	}{
		{"arabic yearly", []Item{{Name: "اشتراك سنوي"}}, entity.PlanYearly, true},
		{"arabic half yearly", []Item{{Name: "اشتراك نصف سنوي"}}, entity.PlanHalfYearly, true},
		{"english half", []Item{{Name: "Half-year plan"}}, entity.PlanHalfYearly, true},
		{"english yearly", []Item{{Name: "Yearly subscription"}}, entity.PlanYearly, true},
		{"half in sku only", []Item{{Name: "اشتراك", SKU: "SUB-HALF"}}, entity.PlanHalfYearly, true},
		{"ambiguous defaults to yearly", []Item{{Name: "Premium"}}, entity.PlanYearly, true},
		{"only first item counts", []Item{{Name: "premium"}, {Name: "half"}}, entity.PlanYearly, true},
		{"no items", nil, entity.Plan(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, ok := InferPlan(tt.items)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, plan)
		})
	}
}
