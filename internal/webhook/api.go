package webhook

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	routing "github.com/go-ozzo/ozzo-routing/v2"
	"github.com/moalemy/salla-webhook/internal/errors"
	"github.com/moalemy/salla-webhook/pkg/log"
)

// RegisterHandlers registers handlers for different HTTP requests.
func RegisterHandlers(rg *routing.RouteGroup, service Service, secret string, logger log.Logger) {
	rg.Post("/webhooks/salla", handle(service, secret, logger))
}

// handle returns the handler that receives order webhooks from the store.
func handle(service Service, secret string, logger log.Logger) routing.Handler {
	return func(c *routing.Context) error {
		if secret != "" && !secretMatches(c.Request, secret) {
			logger.With(c.Request.Context()).Infof("webhook rejected: bad or missing secret")
			return errors.Unauthorized("invalid webhook secret")
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return errors.BadRequest("")
		}
		if !json.Valid(body) {
			return errors.BadRequest("request body is not valid JSON")
		}

		res, err := service.Process(c.Request.Context(), body)
		if err != nil {
			return err
		}
		return c.Write(res)
	}
}

// secretMatches checks the shared secret sent by the store, either in the
// x-webhook-secret header or as a bearer token.
func secretMatches(req *http.Request, secret string) bool {
	got := req.Header.Get("x-webhook-secret")
	if got == "" {
		authz := req.Header.Get("Authorization")
		if strings.HasPrefix(authz, "Bearer ") {
			got = strings.TrimPrefix(authz, "Bearer ")
		}
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(secret)) == 1
}
