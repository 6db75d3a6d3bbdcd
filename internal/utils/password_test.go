package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	assert.True(t, VerifyPassword(hash, "correct horse"))
	assert.False(t, VerifyPassword(hash, "correct horse "))
	assert.False(t, VerifyPassword("not-a-hash", "correct horse"))
	assert.False(t, VerifyPassword("", ""))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestHashPasswordRejectsCost(t *testing.T) {
	_, err := HashPassword("pw", bcrypt.MinCost-1)
	assert.Error(t, err)
	_, err = HashPassword("pw", bcrypt.MaxCost+1)
	assert.Error(t, err)
}
