package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminSessionRoundTrip(t *testing.T) {
	sess, err := NewAdminSession("topsecret", "admin", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.Exp, 5*time.Second)
	_, err = uuid.Parse(sess.SessionID)
	assert.NoError(t, err)

	claims, err := ParseAdminSession("topsecret", sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, sess.SessionID, claims.SessionID)
}

func TestNewAdminSessionRequiresSecret(t *testing.T) {
	_, err := NewAdminSession("", "admin", time.Hour)
	assert.Error(t, err)
}

func TestParseAdminSessionRejects(t *testing.T) {
	good, err := NewAdminSession("topsecret", "admin", time.Hour)
	require.NoError(t, err)
	expired, err := NewAdminSession("topsecret", "admin", -time.Minute)
	require.NoError(t, err)

	noneTok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "admin", "role": RoleAdmin, "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("topsecret"))
	require.NoError(t, err)

	tests := map[string]struct{ secret, raw string }{
		"wrong secret": {"other", good.Token},
		"expired":      {"topsecret", expired.Token},
		"alg none":     {"topsecret", noneTok},
		"missing role": {"topsecret", noRole},
		"garbage":      {"topsecret", "not.a.jwt"},
		"empty":        {"topsecret", ""},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAdminSession(tt.secret, tt.raw)
			assert.Error(t, err)
		})
	}
}
