package event

import (
	routing "github.com/go-ozzo/ozzo-routing/v2"
	"github.com/moalemy/salla-webhook/pkg/log"
	"github.com/moalemy/salla-webhook/pkg/pagination"
)

// RegisterHandlers registers handlers for different HTTP requests.
func RegisterHandlers(r *routing.RouteGroup, service Service, authHandler routing.Handler, logger log.Logger) {
	res := resource{service, logger}

	r.Use(authHandler)
	r.Get("/webhook-events", res.query)
}

type resource struct {
	service Service
	logger  log.Logger
}

func (r resource) query(c *routing.Context) error {
	ctx := c.Request.Context()
	count, err := r.service.Count(ctx)
	if err != nil {
		return err
	}
	pages := pagination.NewFromRequest(c.Request, count)
	events, err := r.service.Query(ctx, pages.Offset(), pages.Limit())
	if err != nil {
		return err
	}
	pages.Items = events
	return c.Write(pages)
}
