package helpers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

const (
	DefaultVerificationTTL = 24 * time.Hour
	DefaultResetTTL        = time.Hour

	resetTokenBytes = 32
)

var sixDigitSpace = big.NewInt(1000000)

// CodeGenerator produces one-time verification codes and password reset tokens
// together with their expiry timestamps.
type CodeGenerator struct {
	VerificationTTL time.Duration
	ResetTTL        time.Duration
	Now             func() time.Time
}

func NewCodeGenerator(verificationTTL, resetTTL time.Duration) *CodeGenerator {
	if verificationTTL <= 0 {
		verificationTTL = DefaultVerificationTTL
	}
	if resetTTL <= 0 {
		resetTTL = DefaultResetTTL
	}
	return &CodeGenerator{VerificationTTL: verificationTTL, ResetTTL: resetTTL, Now: time.Now}
}

// NewVerificationCode returns a uniformly random zero-padded 6-digit code.
func (g *CodeGenerator) NewVerificationCode() (string, time.Time, error) {
	code, err := GenOTPCode()
	if err != nil {
		return "", time.Time{}, err
	}
	return code, g.Now().Add(g.VerificationTTL), nil
}

// NewResetToken returns a hex encoded 32 byte random token.
func (g *CodeGenerator) NewResetToken() (string, time.Time, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", time.Time{}, err
	}
	return hex.EncodeToString(b), g.Now().Add(g.ResetTTL), nil
}

// GenOTPCode generates a secure random 6-digit OTP code as a zero-padded string
func GenOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, sixDigitSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
