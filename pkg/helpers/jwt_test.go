package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	assert.Same(t, m, DefaultJWT())

	token, exp, err := m.GenerateAccessToken("user_1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.UserID)

	_, err = NewJWTManager("other", time.Hour).ParseAccessToken(token)
	assert.Error(t, err)

	expired, _, err := (&JWTManager{AccessSecret: []byte("secret"), AccessTTL: -time.Minute}).GenerateAccessToken("user_1")
	require.NoError(t, err)
	_, err = m.ParseAccessToken(expired)
	assert.Error(t, err)
}
