package auth

import (
	"context"

	"github.com/dgrijalva/jwt-go"
	routing "github.com/go-ozzo/ozzo-routing/v2"
	"github.com/go-ozzo/ozzo-routing/v2/auth"
)

// Handler returns a JWT-based authentication middleware for the ops API.
func Handler(verificationKey string) routing.Handler {
	return auth.JWT(verificationKey, auth.JWTOptions{TokenHandler: handleToken})
}

// handleToken stores the operator name in the request context so that it can be accessed elsewhere.
func handleToken(c *routing.Context, token *jwt.Token) error {
	name, _ := token.Claims.(jwt.MapClaims)["name"].(string)
	ctx := WithOperator(c.Request.Context(), name)
	c.Request = c.Request.WithContext(ctx)
	return nil
}

type contextKey int

const (
	operatorKey contextKey = iota
)

// WithOperator returns a context that contains the operator name from the given JWT.
func WithOperator(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, operatorKey, name)
}

// CurrentOperator returns the operator name from the given context.
// An empty string is returned if no operator is found in the context.
func CurrentOperator(ctx context.Context) string {
	if name, ok := ctx.Value(operatorKey).(string); ok {
		return name
	}
	return ""
}
