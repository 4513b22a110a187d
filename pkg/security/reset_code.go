package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
	"time"
)

const (
	// Codes are always 6 digits long
	resetCodeMin = 100000
	resetCodeMax = 1000000

	ResetCodeTTL = time.Minute * 15
)

type ResetCode struct {
	Code      string
	ExpiresAt time.Time
}

type ResetCodeOpts struct {
	IssuedAt time.Time
	TTL      time.Duration
}

// MakeResetCode generates a new one-time password reset code that expires
// TTL after IssuedAt
func MakeResetCode(o *ResetCodeOpts) (*ResetCode, error) {
	if o == nil {
		return nil, errors.New("no reset code options provided")
	}

	if o.IssuedAt.IsZero() {
		return nil, errors.New("no issue time provided")
	}

	if o.TTL <= 0 {
		return nil, errors.New("reset code ttl must be bigger than 0")
	}

	n, err := rand.Int(rand.Reader, big.NewInt(resetCodeMax-resetCodeMin))
	if err != nil {
		return nil, err
	}

	return &ResetCode{
		Code:      strconv.FormatInt(n.Int64()+resetCodeMin, 10),
		ExpiresAt: o.IssuedAt.Add(o.TTL),
	}, nil
}
