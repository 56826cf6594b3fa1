package helpers

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sixDigits = regexp.MustCompile(`^\d{6}$`)

func TestGenOTPCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenOTPCode()
		require.NoError(t, err)
		assert.Regexp(t, sixDigits, code)
	}
}

func TestCodeGenerator_Expiries(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	g := NewCodeGenerator(0, 0)
	g.Now = func() time.Time { return base }

	code, exp, err := g.NewVerificationCode()
	require.NoError(t, err)
	assert.Regexp(t, sixDigits, code)
	assert.Equal(t, base.Add(24*time.Hour), exp)

	tok, exp, err := g.NewResetToken()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), tok)
	assert.Equal(t, base.Add(time.Hour), exp)

	other, _, err := g.NewResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}
