package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOneTimeCode_Matches(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := &OneTimeCode{Value: "123456", ExpiresAt: now.Add(time.Minute)}

	assert.True(t, c.Matches("123456", now))
	assert.False(t, c.Matches("654321", now))
	assert.False(t, c.Matches("", now))
	assert.False(t, c.Matches("123456", now.Add(time.Minute)), "expired at boundary")
	assert.False(t, c.Matches("123456", now.Add(time.Hour)))

	var absent *OneTimeCode
	assert.False(t, absent.Matches("123456", now))
}
