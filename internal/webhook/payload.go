package webhook

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/moalemy/salla-webhook/internal/entity"
)

// OrderEvent is the canonical form every accepted payload shape is normalized
// into before any business logic runs.
type OrderEvent struct {
	Event      string
	OrderID    string
	Email      string
	Phone      string
	StatusSlug string
	Items      []Item
}

// Item is one purchased line item.
type Item struct {
	Name string
	SKU  string
}

// synthesizedEvent is used when the body is a bare order without an event name.
const synthesizedEvent = "order.created"

// IsStatusUpdate reports whether the event notifies an order status change
// rather than a new order.
func (e OrderEvent) IsStatusUpdate() bool {
	return strings.Contains(e.Event, "status")
}

// finalStatuses are the order states that mean the purchase went through.
var finalStatuses = map[string]bool{
	"completed": true,
	"delivered": true,
}

// Finalized reports whether the order has reached a state that should produce
// a subscription. Events without a status slug are treated as finalized.
func (e OrderEvent) Finalized() bool {
	if e.StatusSlug == "" {
		return true
	}
	return finalStatuses[e.StatusSlug]
}

// flexString accepts a JSON string or number. The store is inconsistent about
// numeric identifiers, sending them either quoted or bare.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		// non-scalar where a scalar was expected; treat as absent
		*f = ""
		return nil
	}
	*f = flexString(n.String())
	return nil
}

// orderStatus accepts either {"slug": "..."} or a bare string.
type orderStatus struct {
	Slug string
}

func (s *orderStatus) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		s.Slug = v
		return nil
	}
	var v struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	s.Slug = v.Slug
	return nil
}

type contact struct {
	Email  string     `json:"email"`
	Phone  flexString `json:"phone"`
	Mobile flexString `json:"mobile"`
}

type orderItem struct {
	Name    string `json:"name"`
	SKU     string `json:"sku"`
	Product struct {
		Name string `json:"name"`
		SKU  string `json:"sku"`
	} `json:"product"`
}

type orderPayload struct {
	ID          flexString `json:"id"`
	ReferenceID flexString `json:"reference_id"`
	Email       string     `json:"email"`
	Phone       flexString `json:"phone"`
	Mobile      flexString `json:"mobile"`
	Customer    contact    `json:"customer"`
	Shipping    struct {
		Receiver contact `json:"receiver"`
	} `json:"shipping"`
	Items  []orderItem `json:"items"`
	Status orderStatus `json:"status"`
}

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Order json.RawMessage `json:"order"`
}

// ParseEnvelope normalizes the webhook body into an OrderEvent. The store may
// send {event, data}, a bare order object, or an order wrapped in an "order"
// field. ok is false when the body matches none of these shapes; such bodies
// are acknowledged without processing so platform test pings do not cause
// retry storms.
func ParseEnvelope(body []byte) (OrderEvent, bool) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return OrderEvent{}, false
	}

	// {event, data} form: use both directly
	if env.Event != "" && len(env.Data) > 0 && string(env.Data) != "null" {
		var order orderPayload
		if err := json.Unmarshal(env.Data, &order); err != nil {
			return OrderEvent{}, false
		}
		return buildOrderEvent(env.Event, order), true
	}

	// bare order form: the order either sits in an "order" field or is the body itself
	raw := body
	wrapped := len(env.Order) > 0 && string(env.Order) != "null"
	if wrapped {
		raw = env.Order
	}
	var order orderPayload
	if err := json.Unmarshal(raw, &order); err != nil {
		return OrderEvent{}, false
	}
	if !wrapped && order.ID == "" && order.ReferenceID == "" {
		return OrderEvent{}, false
	}
	eventName := env.Event
	if eventName == "" {
		eventName = synthesizedEvent
	}
	return buildOrderEvent(eventName, order), true
}

func buildOrderEvent(eventName string, order orderPayload) OrderEvent {
	e := OrderEvent{
		Event:      eventName,
		StatusSlug: strings.ToLower(strings.TrimSpace(order.Status.Slug)),
	}

	e.OrderID = firstNonEmpty(string(order.ID), string(order.ReferenceID))
	e.Email = strings.ToLower(strings.TrimSpace(firstNonEmpty(
		order.Customer.Email,
		order.Shipping.Receiver.Email,
		order.Email,
	)))
	e.Phone = strings.TrimSpace(firstNonEmpty(
		string(order.Customer.Phone),
		string(order.Customer.Mobile),
		string(order.Shipping.Receiver.Phone),
		string(order.Shipping.Receiver.Mobile),
		string(order.Phone),
		string(order.Mobile),
	))

	for _, it := range order.Items {
		e.Items = append(e.Items, Item{
			Name: firstNonEmpty(it.Product.Name, it.Name),
			SKU:  firstNonEmpty(it.Product.SKU, it.SKU),
		})
	}
	return e
}

// InferPlan determines the purchased plan from the first line item's product
// name and SKU. The heuristic mirrors how plans are named in the store;
// ambiguous products fall back to yearly. ok is false when there are no items.
func InferPlan(items []Item) (entity.Plan, bool) {
	if len(items) == 0 {
		return "", false
	}
	s := strings.ToLower(items[0].Name + " " + items[0].SKU)
	switch {
	case strings.Contains(s, "سنوي") && !strings.Contains(s, "نصف"):
		return entity.PlanYearly, true
	case strings.Contains(s, "نصف") || strings.Contains(s, "half"):
		return entity.PlanHalfYearly, true
	case strings.Contains(s, "yearly"):
		return entity.PlanYearly, true
	default:
		return entity.PlanYearly, true
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
