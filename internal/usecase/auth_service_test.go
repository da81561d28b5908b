package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lightsout-league/pickem/internal/domain/ratelimit"
	"github.com/lightsout-league/pickem/internal/domain/verification"
	"github.com/lightsout-league/pickem/internal/platform/logging"
)

type stubMailer struct {
	verificationSent int
	resetsSent       int
	lastEmail        string
	lastLink         string
	err              error
}

func (s *stubMailer) SendVerificationCode(_ context.Context, email, _ string) error {
	s.verificationSent++
	s.lastEmail = email
	return s.err
}

func (s *stubMailer) SendPasswordReset(_ context.Context, email, link string) error {
	s.resetsSent++
	s.lastEmail = email
	s.lastLink = link
	return s.err
}

type stubResetLinker struct{ err error }

func (s *stubResetLinker) ResetLink(email string, _ time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "https://league.example/reset?email=" + email, nil
}

func newTestAuthService(repo *stubVerificationRepo, mailer *stubMailer, linker *stubResetLinker, demo bool) *AuthService {
	if repo == nil {
		repo = &stubVerificationRepo{}
	}
	if mailer == nil {
		mailer = &stubMailer{}
	}
	if linker == nil {
		linker = &stubResetLinker{}
	}
	return NewAuthService(repo, &stubUserRepo{}, NewRateLimiter(&stubRateLimitRepo{}), mailer, linker, logging.NewNop(), demo)
}

func TestSendAuthCodeStoresAndMails(t *testing.T) {
	t.Parallel()

	var stored verification.Code
	repo := &stubVerificationRepo{
		putFn: func(_ context.Context, code verification.Code) error {
			stored = code
			return nil
		},
	}
	mailer := &stubMailer{}

	svc := newTestAuthService(repo, mailer, nil, false)
	inline, err := svc.SendAuthCode(context.Background(), " Driver@Example.COM ", "10.0.0.1")
	if err != nil {
		t.Fatalf("SendAuthCode: %v", err)
	}
	if inline != "" {
		t.Fatalf("code returned inline outside demo mode: %q", inline)
	}
	if stored.Email != "driver@example.com" {
		t.Fatalf("stored email = %q, want normalized address", stored.Email)
	}
	if len(stored.Code) != 6 {
		t.Fatalf("stored code = %q, want 6 digits", stored.Code)
	}
	if mailer.verificationSent != 1 {
		t.Fatalf("mails sent = %d, want 1", mailer.verificationSent)
	}
}

func TestSendAuthCodeDemoModeReturnsInline(t *testing.T) {
	t.Parallel()

	mailer := &stubMailer{}
	svc := newTestAuthService(nil, mailer, nil, true)
	inline, err := svc.SendAuthCode(context.Background(), "driver@example.com", "10.0.0.1")
	if err != nil {
		t.Fatalf("SendAuthCode: %v", err)
	}
	if len(inline) != 6 {
		t.Fatalf("inline code = %q, want 6 digits", inline)
	}
	if mailer.verificationSent != 0 {
		t.Fatalf("demo mode still sent %d mails", mailer.verificationSent)
	}
}

func TestSendAuthCodeRejectsBadAddress(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(nil, nil, nil, false)
	if _, err := svc.SendAuthCode(context.Background(), "not-an-address", "10.0.0.1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestVerifyAuthCodeConsumesOnSuccess(t *testing.T) {
	t.Parallel()

	deletes := 0
	repo := &stubVerificationRepo{
		getFn: func(_ context.Context, email string) (verification.Code, bool, error) {
			return verification.Code{
				Email:     email,
				Code:      "123456",
				ExpiresAt: time.Now().Add(time.Minute),
			}, true, nil
		},
		deleteFn: func(context.Context, string) error {
			deletes++
			return nil
		},
	}

	svc := newTestAuthService(repo, nil, nil, false)
	if err := svc.VerifyAuthCode(context.Background(), "driver@example.com", "123456"); err != nil {
		t.Fatalf("VerifyAuthCode: %v", err)
	}
	if deletes != 1 {
		t.Fatalf("code deleted %d times, want 1", deletes)
	}

	if err := svc.VerifyAuthCode(context.Background(), "driver@example.com", "654321"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("mismatch err = %v, want ErrInvalidInput", err)
	}
}

func TestVerifyAuthCodeRejectsExpired(t *testing.T) {
	t.Parallel()

	deletes := 0
	repo := &stubVerificationRepo{
		getFn: func(_ context.Context, email string) (verification.Code, bool, error) {
			return verification.Code{
				Email:     email,
				Code:      "123456",
				ExpiresAt: time.Now().Add(-time.Minute),
			}, true, nil
		},
		deleteFn: func(context.Context, string) error {
			deletes++
			return nil
		},
	}

	svc := newTestAuthService(repo, nil, nil, false)
	if err := svc.VerifyAuthCode(context.Background(), "driver@example.com", "123456"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if deletes != 1 {
		t.Fatalf("expired code deleted %d times, want 1", deletes)
	}
}

func TestSendPasswordResetMasksDownstreamFailures(t *testing.T) {
	t.Parallel()

	mailer := &stubMailer{err: errors.New("sendgrid 500")}
	svc := newTestAuthService(nil, mailer, nil, false)
	if err := svc.SendPasswordReset(context.Background(), "driver@example.com", "10.0.0.1"); err != nil {
		t.Fatalf("mail failure surfaced: %v", err)
	}

	svc = newTestAuthService(nil, nil, &stubResetLinker{err: errors.New("no signing key")}, false)
	if err := svc.SendPasswordReset(context.Background(), "driver@example.com", "10.0.0.1"); err != nil {
		t.Fatalf("linker failure surfaced: %v", err)
	}
}

func TestSendPasswordResetSurfacesRateLimit(t *testing.T) {
	t.Parallel()

	limitRepo := &stubRateLimitRepo{
		takeFn: func(context.Context, string, string, int, time.Duration, time.Time) (ratelimit.Decision, error) {
			return ratelimit.Decision{Allowed: false, RetryAfter: 30 * time.Second}, nil
		},
	}
	svc := NewAuthService(&stubVerificationRepo{}, &stubUserRepo{}, NewRateLimiter(limitRepo), &stubMailer{}, &stubResetLinker{}, logging.NewNop(), false)

	err := svc.SendPasswordReset(context.Background(), "driver@example.com", "10.0.0.1")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("err = %v, want ErrRateLimited", err)
	}
}
