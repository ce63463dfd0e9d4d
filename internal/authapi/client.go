// Package authapi looks up registered users through the auth service's admin
// REST API. It is the first source consulted when resolving a buyer identity.
package authapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/moalemy/salla-webhook/internal/entity"
	"github.com/moalemy/salla-webhook/pkg/log"
)

// maxUsers caps how many auth users are paged through per lookup.
const maxUsers = 1000

// Client calls the auth admin API with the service role key.
type Client struct {
	baseURL    string
	serviceKey string
	pageSize   int
	http       *http.Client
	logger     log.Logger
}

// New creates an auth admin API client.
func New(baseURL, serviceKey string, pageSize int, logger log.Logger) *Client {
	if pageSize <= 0 || pageSize > maxUsers {
		pageSize = 200
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		pageSize:   pageSize,
		http:       cleanhttp.DefaultPooledClient(),
		logger:     logger,
	}
}

type listUsersResponse struct {
	Users []entity.AuthUser `json:"users"`
}

// FindByEmail pages through the auth user list looking for an exact
// case-insensitive email match. It returns an empty string when no user matches.
func (c *Client) FindByEmail(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", nil
	}

	seen := 0
	for page := 1; seen < maxUsers; page++ {
		users, err := c.listUsers(ctx, page)
		if err != nil {
			return "", err
		}
		if len(users) == 0 {
			break
		}
		for _, u := range users {
			if strings.ToLower(strings.TrimSpace(u.Email)) == email {
				return u.ID, nil
			}
		}
		seen += len(users)
		if len(users) < c.pageSize {
			break
		}
	}
	return "", nil
}

func (c *Client) listUsers(ctx context.Context, page int) ([]entity.AuthUser, error) {
	url := fmt.Sprintf("%s/auth/v1/admin/users?page=%d&per_page=%d", c.baseURL, page, c.pageSize)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("auth admin API returned %d: %s", res.StatusCode, body)
	}

	var parsed listUsersResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	return parsed.Users, nil
}
