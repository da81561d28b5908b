package verification

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// CodeTTL is how long an emailed verification code stays valid.
const CodeTTL = 10 * time.Minute

// Code is one pending email verification, keyed by lowercased email.
type Code struct {
	Email     string
	Code      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (c Code) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// GenerateCode returns a 6-digit numeric code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("read random int: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
