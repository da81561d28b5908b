package account

import (
	"context"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lightsout-league/pickem/internal/domain/user"
)

// LocalJWTVerifier validates HS256 tokens with a shared secret, for
// deployments without an introspection endpoint (and for local
// development).
type LocalJWTVerifier struct {
	secret []byte
}

func NewLocalJWTVerifier(secret string) *LocalJWTVerifier {
	return &LocalJWTVerifier{secret: []byte(secret)}
}

func (v *LocalJWTVerifier) Verify(_ context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, ErrTokenInvalid
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, crerr.Newf("unexpected signing method %q", t.Method.Alg())
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return user.Principal{}, ErrTokenInvalid
	}

	subject, _ := claims.GetSubject()
	if subject == "" {
		return user.Principal{}, ErrTokenInvalid
	}
	email, _ := claims["email"].(string)

	return user.Principal{UserID: subject, Email: email}, nil
}

// ResetLinkSigner mints signed, expiring password-reset links served by
// the frontend.
type ResetLinkSigner struct {
	secret  []byte
	baseURL string
	now     func() time.Time
}

func NewResetLinkSigner(secret, baseURL string) *ResetLinkSigner {
	return &ResetLinkSigner{
		secret:  []byte(secret),
		baseURL: strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		now:     time.Now,
	}
}

func (s *ResetLinkSigner) ResetLink(email string, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", crerr.New("reset link signing secret is not configured")
	}

	now := s.now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"aud": "password-reset",
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", crerr.Wrap(err, "sign reset token")
	}

	return s.baseURL + "/reset-password?token=" + url.QueryEscape(signed), nil
}
