package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenDenylist(t *testing.T) {
	mr := setupTestRedis()
	defer mr.Close()

	denylisted, err := IsDenylisted("some.jwt.token")
	assert.NoError(t, err)
	assert.False(t, denylisted)

	err = AddToDenylist("some.jwt.token", time.Hour)
	assert.NoError(t, err)

	denylisted, err = IsDenylisted("some.jwt.token")
	assert.NoError(t, err)
	assert.True(t, denylisted)

	// Entries drop off once the token itself would have expired
	mr.FastForward(2 * time.Hour)
	denylisted, err = IsDenylisted("some.jwt.token")
	assert.NoError(t, err)
	assert.False(t, denylisted)
}
