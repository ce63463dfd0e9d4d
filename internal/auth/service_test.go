package auth

import (
	"context"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moalemy/salla-webhook/pkg/log"
)

func TestLogin(t *testing.T) {
	logger, _ := log.NewForTest()
	s := NewService("test-key", 72, "ops", "secret", logger)
	ctx := context.Background()

	token, err := s.Login(ctx, "ops", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-key"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ops", parsed.Claims.(jwt.MapClaims)["name"])

	_, err = s.Login(ctx, "ops", "wrong")
	assert.Error(t, err)
	_, err = s.Login(ctx, "intruder", "secret")
	assert.Error(t, err)
}
