package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/moalemy/salla-webhook/internal/errors"
	"github.com/moalemy/salla-webhook/pkg/log"
)

// Service encapsulates the authentication logic for the ops API.
type Service interface {
	// Login authenticates an operator using username and password.
	// It returns a JWT token if authentication succeeds. Otherwise, an error is returned.
	Login(ctx context.Context, username, password string) (string, error)
}

type service struct {
	signingKey      string
	tokenExpiration int
	username        string
	password        string
	logger          log.Logger
}

// NewService creates a new authentication service.
func NewService(signingKey string, tokenExpiration int, username, password string, logger log.Logger) Service {
	return service{signingKey, tokenExpiration, username, password, logger}
}

// Login implements Service.
func (s service) Login(ctx context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		s.logger.With(ctx, "user", username).Infof("authentication failed")
		return "", errors.Unauthorized("invalid username or password")
	}

	s.logger.With(ctx, "user", username).Infof("authentication successful")
	return s.generateJWT(username)
}

// generateJWT generates a JWT that encodes the operator identity.
func (s service) generateJWT(username string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"name": username,
		"exp":  time.Now().Add(time.Duration(s.tokenExpiration) * time.Hour).Unix(),
	}).SignedString([]byte(s.signingKey))
}
