package subscription

import (
	routing "github.com/go-ozzo/ozzo-routing/v2"
	"github.com/moalemy/salla-webhook/pkg/log"
)

// RegisterHandlers registers handlers for different HTTP requests.
func RegisterHandlers(r *routing.RouteGroup, service Service, authHandler routing.Handler, logger log.Logger) {
	res := resource{service, logger}

	r.Use(authHandler)
	r.Get("/users/<id>/subscriptions", res.listForUser)
}

type resource struct {
	service Service
	logger  log.Logger
}

func (r resource) listForUser(c *routing.Context) error {
	subs, err := r.service.ListForUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.Write(subs)
}
