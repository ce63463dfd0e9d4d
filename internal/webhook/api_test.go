package webhook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	routing "github.com/go-ozzo/ozzo-routing/v2"
	"github.com/go-ozzo/ozzo-routing/v2/content"
	"github.com/stretchr/testify/assert"

	"github.com/moalemy/salla-webhook/internal/errors"
	"github.com/moalemy/salla-webhook/pkg/log"
)

type stubService struct {
	res Result
	err error
}

func (s stubService) Process(context.Context, []byte) (Result, error) {
	return s.res, s.err
}

func buildRouter(service Service, secret string) *routing.Router {
	logger, _ := log.NewForTest()
	router := routing.New()
	router.Use(
		errors.Handler(logger),
		content.TypeNegotiator(content.JSON),
	)
	RegisterHandlers(router.Group("/v1"), service, secret, logger)
	return router
}

func TestHandleSecret(t *testing.T) {
	router := buildRouter(stubService{res: Result{Success: true}}, "topsecret")

	tests := []struct {
		name   string
		header map[string]string
		want   int
	}{
		{"missing secret", nil, http.StatusUnauthorized},
		{"wrong secret", map[string]string{"x-webhook-secret": "nope"}, http.StatusUnauthorized},
		{"header secret", map[string]string{"x-webhook-secret": "topsecret"}, http.StatusOK},
		{"bearer secret", map[string]string{"Authorization": "Bearer topsecret"}, http.StatusOK},
		{"wrong bearer", map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/v1/webhooks/salla", strings.NewReader(`{"id":1}`))
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			res := httptest.NewRecorder()
			router.ServeHTTP(res, req)
			assert.Equal(t, tt.want, res.Code)
		})
	}
}

func TestHandleNoSecretConfigured(t *testing.T) {
	router := buildRouter(stubService{res: Result{Success: true}}, "")

	req := httptest.NewRequest("POST", "/v1/webhooks/salla", strings.NewReader(`{"id":1}`))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestHandleInvalidJSON(t *testing.T) {
	router := buildRouter(stubService{res: Result{Success: true}}, "")

	req := httptest.NewRequest("POST", "/v1/webhooks/salla", strings.NewReader(`{not json`))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestHandleWrongMethod(t *testing.T) {
	router := buildRouter(stubService{res: Result{Success: true}}, "")

	req := httptest.NewRequest("GET", "/v1/webhooks/salla", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusMethodNotAllowed, res.Code)
}

func TestHandleServiceError(t *testing.T) {
	router := buildRouter(stubService{err: errors.Conflict("duplicate")}, "")

	req := httptest.NewRequest("POST", "/v1/webhooks/salla", strings.NewReader(`{"id":1}`))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusConflict, res.Code)
	assert.Contains(t, res.Body.String(), "duplicate")
}
