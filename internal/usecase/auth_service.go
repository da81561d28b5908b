package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/lightsout-league/pickem/internal/domain/user"
	"github.com/lightsout-league/pickem/internal/domain/verification"
	"github.com/lightsout-league/pickem/internal/platform/logging"
)

// Mailer sends the transactional mail this service produces. The
// external sendgrid client satisfies it.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, code string) error
	SendPasswordReset(ctx context.Context, email, link string) error
}

// ResetLinker builds a signed, expiring password-reset link for an
// address.
type ResetLinker interface {
	ResetLink(email string, ttl time.Duration) (string, error)
}

const passwordResetLinkTTL = 30 * time.Minute

// AuthService handles the email verification and password-reset flows.
// Both are guarded by the shared fixed-window limiter, and password
// reset deliberately reports success regardless of downstream outcome so
// callers cannot probe which addresses exist.
type AuthService struct {
	verificationRepo verification.Repository
	userRepo         user.Repository
	limiter          *RateLimiter
	mailer           Mailer
	resetLinker      ResetLinker
	logger           *logging.Logger
	now              func() time.Time

	// demoMode returns the generated code to the caller instead of
	// relying on mail delivery. Never enabled in production.
	demoMode bool
}

func NewAuthService(
	verificationRepo verification.Repository,
	userRepo user.Repository,
	limiter *RateLimiter,
	mailer Mailer,
	resetLinker ResetLinker,
	logger *logging.Logger,
	demoMode bool,
) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AuthService{
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		limiter:          limiter,
		mailer:           mailer,
		resetLinker:      resetLinker,
		logger:           logger,
		now:              time.Now,
		demoMode:         demoMode,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SendAuthCode generates and dispatches a 6-digit verification code.
// Two windows apply: the per-origin operation window and a per-address
// cooldown so one origin cannot hammer a single inbox. In demo mode the
// code comes back inline; otherwise the returned string is empty.
func (s *AuthService) SendAuthCode(ctx context.Context, email, origin string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.SendAuthCode")
	defer span.End()

	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return "", fmt.Errorf("%w: a valid email address is required", ErrInvalidInput)
	}

	if err := s.limiter.Check(ctx, OpSendAuthCode, origin); err != nil {
		return "", err
	}
	if err := s.limiter.Check(ctx, opAuthCodeEmailCooldown, email); err != nil {
		return "", err
	}

	code, err := verification.GenerateCode()
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	now := s.now().UTC()
	record := verification.Code{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(verification.CodeTTL),
		CreatedAt: now,
	}
	if err := s.verificationRepo.Put(ctx, record); err != nil {
		return "", fmt.Errorf("store verification code: %w", err)
	}

	if s.demoMode {
		s.logger.InfoContext(ctx, "verification code issued in demo mode", "email", email)
		return code, nil
	}

	if err := s.mailer.SendVerificationCode(ctx, email, code); err != nil {
		return "", fmt.Errorf("%w: send verification mail: %v", ErrDependencyUnavailable, err)
	}
	s.logger.InfoContext(ctx, "verification code sent", "email", email)
	return "", nil
}

// VerifyAuthCode checks a submitted code and consumes it on success.
// Expired codes are deleted on sight.
func (s *AuthService) VerifyAuthCode(ctx context.Context, email, code string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.VerifyAuthCode")
	defer span.End()

	email = normalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return fmt.Errorf("%w: email and code are required", ErrInvalidInput)
	}

	record, found, err := s.verificationRepo.Get(ctx, email)
	if err != nil {
		return fmt.Errorf("load verification code: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: no pending verification for this address", ErrInvalidInput)
	}
	if record.Expired(s.now().UTC()) {
		if err := s.verificationRepo.Delete(ctx, email); err != nil {
			s.logger.WarnContext(ctx, "delete expired verification code", "error", err)
		}
		return fmt.Errorf("%w: verification code expired", ErrInvalidInput)
	}
	if subtle.ConstantTimeCompare([]byte(record.Code), []byte(code)) != 1 {
		return fmt.Errorf("%w: verification code does not match", ErrInvalidInput)
	}

	if err := s.verificationRepo.Delete(ctx, email); err != nil {
		return fmt.Errorf("consume verification code: %w", err)
	}
	return nil
}

// SendPasswordReset dispatches a signed reset link. Rate-limit
// rejections surface so the edge can answer 429; every other failure is
// logged and swallowed, and the caller sees success either way.
func (s *AuthService) SendPasswordReset(ctx context.Context, email, origin string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.SendPasswordReset")
	defer span.End()

	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: a valid email address is required", ErrInvalidInput)
	}

	if err := s.limiter.Check(ctx, OpPasswordReset, origin); err != nil {
		return err
	}

	link, err := s.resetLinker.ResetLink(email, passwordResetLinkTTL)
	if err != nil {
		s.logger.ErrorContext(ctx, "build password reset link", "error", err)
		return nil
	}
	if err := s.mailer.SendPasswordReset(ctx, email, link); err != nil {
		s.logger.ErrorContext(ctx, "send password reset mail", "error", err)
		return nil
	}
	s.logger.InfoContext(ctx, "password reset sent", "email", email)
	return nil
}
