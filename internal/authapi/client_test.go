package authapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moalemy/salla-webhook/internal/entity"
	"github.com/moalemy/salla-webhook/pkg/log"
)

func TestFindByEmail(t *testing.T) {
	logger, _ := log.NewForTest()

	users := []entity.AuthUser{
		{ID: "u1", Email: "first@example.com"},
		{ID: "u2", Email: "Second@Example.com"},
	}
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("apikey")
		page := r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")
		if page == "1" {
			json.NewEncoder(w).Encode(map[string]interface{}{"users": users})
			return
		}
		fmt.Fprint(w, `{"users":[]}`)
	}))
	defer server.Close()

	c := New(server.URL, "service-key", 200, logger)

	id, err := c.FindByEmail(context.Background(), "second@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u2", id)
	assert.Equal(t, "service-key", gotKey)

	id, err = c.FindByEmail(context.Background(), "missing@example.com")
	require.NoError(t, err)
	assert.Empty(t, id)

	id, err = c.FindByEmail(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestFindByEmailServerError(t *testing.T) {
	logger, _ := log.NewForTest()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL, "service-key", 200, logger)
	_, err := c.FindByEmail(context.Background(), "a@b.com")
	assert.Error(t, err)
}
