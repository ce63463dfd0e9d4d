package user

import (
	"context"
	"strings"

	"github.com/moalemy/salla-webhook/pkg/log"
	"github.com/moalemy/salla-webhook/pkg/phone"
)

// AuthDirectory looks up a user id by email in the auth service user list.
type AuthDirectory interface {
	FindByEmail(ctx context.Context, email string) (string, error)
}

// Resolver resolves a buyer identity (email and/or phone) to an app user id.
type Resolver interface {
	// Resolve returns the matched user id, or "" when no source knows the buyer.
	Resolve(ctx context.Context, email, rawPhone string) (string, error)
}

type resolver struct {
	auth     AuthDirectory
	profiles Repository
	users    Repository
	cache    Cache // may be nil
	logger   log.Logger
}

// NewResolver creates a resolver that consults, in order: the auth user list,
// the user_profiles table, the users table (all by email), then both tables by
// phone number. The first match wins.
func NewResolver(auth AuthDirectory, profiles, users Repository, cache Cache, logger log.Logger) Resolver {
	return resolver{auth: auth, profiles: profiles, users: users, cache: cache, logger: logger}
}

// Resolve implements Resolver. A failing source is logged and skipped so that
// an auth API outage does not hide a user that a table lookup would find.
func (r resolver) Resolve(ctx context.Context, email, rawPhone string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	logger := r.logger.With(ctx, "email", email)

	if email != "" {
		if r.cache != nil {
			if id, ok := r.cache.Get(ctx, email); ok {
				return id, nil
			}
		}

		if id := r.lookup(ctx, "auth", func() (string, error) {
			return r.auth.FindByEmail(ctx, email)
		}); id != "" {
			r.remember(ctx, email, id)
			return id, nil
		}
		if id := r.lookup(ctx, "user_profiles", func() (string, error) {
			return r.profiles.FindByEmail(ctx, email)
		}); id != "" {
			r.remember(ctx, email, id)
			return id, nil
		}
		if id := r.lookup(ctx, "users", func() (string, error) {
			return r.users.FindByEmail(ctx, email)
		}); id != "" {
			r.remember(ctx, email, id)
			return id, nil
		}
	}

	if rawPhone != "" {
		normalized := phone.Normalize(rawPhone)
		last9 := phone.Last9(rawPhone)
		logger.Infof("falling back to phone lookup for %s", normalized)

		if id := r.lookup(ctx, "user_profiles", func() (string, error) {
			return r.profiles.FindByPhone(ctx, normalized, last9)
		}); id != "" {
			r.remember(ctx, email, id)
			return id, nil
		}
		if id := r.lookup(ctx, "users", func() (string, error) {
			return r.users.FindByPhone(ctx, normalized, last9)
		}); id != "" {
			r.remember(ctx, email, id)
			return id, nil
		}
	}

	return "", nil
}

func (r resolver) lookup(ctx context.Context, source string, f func() (string, error)) string {
	id, err := f()
	if err != nil {
		r.logger.With(ctx).Errorf("user lookup against %s failed: %v", source, err)
		return ""
	}
	return id
}

func (r resolver) remember(ctx context.Context, email, id string) {
	if r.cache != nil && email != "" {
		r.cache.Set(ctx, email, id)
	}
}
