package invitation

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusReserved Status = "reserved"
	StatusUsed     Status = "used"
)

var (
	ErrNotActive = errors.New("invitation code is not active")
)

// Code is one league invitation. Codes move active -> reserved (a signup
// in flight holds it) -> used; purging the user releases the code back
// to active.
type Code struct {
	Code        string
	Status      Status
	CreatedAt   time.Time
	CreatedBy   string
	ReservedAt  *time.Time
	ReservedFor string
	UsedAt      *time.Time
	UsedBy      string
	UsedByEmail string
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generate produces a league invitation code of the form LOL-XXXX-XXXX.
func Generate() (string, error) {
	segment := func() (string, error) {
		buf := make([]byte, 4)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		var b strings.Builder
		for _, v := range buf {
			b.WriteByte(codeAlphabet[int(v)%len(codeAlphabet)])
		}
		return b.String(), nil
	}

	first, err := segment()
	if err != nil {
		return "", err
	}
	second, err := segment()
	if err != nil {
		return "", err
	}
	return "LOL-" + first + "-" + second, nil
}
