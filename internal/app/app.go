package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/lightsout-league/pickem/external/mailer"
	"github.com/lightsout-league/pickem/internal/config"
	"github.com/lightsout-league/pickem/internal/domain/adminlog"
	"github.com/lightsout-league/pickem/internal/domain/entity"
	"github.com/lightsout-league/pickem/internal/domain/invitation"
	"github.com/lightsout-league/pickem/internal/domain/leaderboard"
	"github.com/lightsout-league/pickem/internal/domain/picks"
	"github.com/lightsout-league/pickem/internal/domain/ratelimit"
	"github.com/lightsout-league/pickem/internal/domain/result"
	"github.com/lightsout-league/pickem/internal/domain/scoring"
	"github.com/lightsout-league/pickem/internal/domain/user"
	"github.com/lightsout-league/pickem/internal/domain/verification"
	"github.com/lightsout-league/pickem/internal/infrastructure/account"
	"github.com/lightsout-league/pickem/internal/infrastructure/repository/memory"
	"github.com/lightsout-league/pickem/internal/infrastructure/repository/postgres"
	"github.com/lightsout-league/pickem/internal/interfaces/httpapi"
	"github.com/lightsout-league/pickem/internal/platform/cache"
	idgen "github.com/lightsout-league/pickem/internal/platform/id"
	"github.com/lightsout-league/pickem/internal/platform/logging"
	"github.com/lightsout-league/pickem/internal/platform/resilience"
	"github.com/lightsout-league/pickem/internal/usecase"
)

type repositories struct {
	picks         picks.Repository
	results       result.Repository
	scoring       scoring.Repository
	entities      entity.Repository
	users         user.Repository
	leaderboard   leaderboard.Repository
	invitations   invitation.Repository
	verifications verification.Repository
	auditLog      adminlog.Repository
	rateLimits    ratelimit.Repository
}

// NewHTTPServer wires repositories, services, and the HTTP layer into a
// ready-to-run server. Storage resources are released when the server
// shuts down.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, closeRepos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	var pageCache *cache.Store
	if cfg.CacheEnabled {
		pageCache = cache.NewStore(cfg.CacheTTL)
	}

	limiter := usecase.NewRateLimiter(repos.rateLimits)
	outbound := buildMailer(cfg, logger)
	resetLinker := account.NewResetLinkSigner(cfg.ResetLinkSecret, cfg.ResetLinkBaseURL)

	recalcSvc := usecase.NewRecalcService(
		repos.picks,
		repos.results,
		repos.scoring,
		repos.entities,
		repos.users,
		repos.leaderboard,
		limiter,
		repos.auditLog,
		pageCache,
		logger,
	)
	recalcSvc.SetWorkers(cfg.RecalcWorkers)

	picksSvc := usecase.NewPicksService(repos.picks, repos.users, logger)
	resultsSvc := usecase.NewResultsService(repos.results, repos.scoring, repos.entities, repos.users, repos.auditLog, recalcSvc, logger)
	scoringSvc := usecase.NewScoringService(repos.scoring, repos.entities, repos.users, logger)
	leaderboardSvc := usecase.NewLeaderboardService(repos.leaderboard, pageCache, logger)
	authSvc := usecase.NewAuthService(repos.verifications, repos.users, limiter, outbound, resetLinker, logger, cfg.DemoMode)
	invitationSvc := usecase.NewInvitationService(repos.invitations, repos.users, limiter, logger)
	accountSvc := usecase.NewAccountService(repos.users, repos.leaderboard, repos.picks, repos.invitations, logger)
	adminLogSvc := usecase.NewAdminLogService(repos.auditLog, repos.users, logger)

	verifier, err := buildTokenVerifier(cfg)
	if err != nil {
		if closeErr := closeRepos(); closeErr != nil {
			logger.Warn("close storage", "error", closeErr)
		}
		return nil, err
	}

	handler := httpapi.NewHandler(
		picksSvc,
		resultsSvc,
		scoringSvc,
		leaderboardSvc,
		recalcSvc,
		authSvc,
		invitationSvc,
		accountSvc,
		adminLogSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	server.RegisterOnShutdown(func() {
		if err := closeRepos(); err != nil {
			logger.Warn("close storage", "error", err)
		}
	})

	return server, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Warn("DB_URL is empty, falling back to in-memory storage")
		return repositories{
			picks:         memory.NewPicksRepository(),
			results:       memory.NewEventResultRepository(),
			scoring:       memory.NewScoringRepository(),
			entities:      memory.NewEntityRepository(),
			users:         memory.NewUserRepository(),
			leaderboard:   memory.NewLeaderboardRepository(),
			invitations:   memory.NewInvitationRepository(),
			verifications: memory.NewVerificationRepository(),
			auditLog:      memory.NewAdminLogRepository(),
			rateLimits:    memory.NewRateLimitRepository(),
		}, func() error { return nil }, nil
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return repositories{
		picks:         postgres.NewPicksRepository(db),
		results:       postgres.NewEventResultRepository(db),
		scoring:       postgres.NewScoringRepository(db),
		entities:      postgres.NewEntityRepository(db),
		users:         postgres.NewUserRepository(db),
		leaderboard:   postgres.NewLeaderboardRepository(db),
		invitations:   postgres.NewInvitationRepository(db),
		verifications: postgres.NewVerificationRepository(db),
		auditLog:      postgres.NewAdminLogRepository(db, idgen.NewRandomGenerator()),
		rateLimits:    postgres.NewRateLimitRepository(db),
	}, db.Close, nil
}

func buildMailer(cfg config.Config, logger *logging.Logger) usecase.Mailer {
	if !cfg.MailEnabled {
		return logMailer{logger: logger}
	}
	return mailer.NewClient(cfg.SendGridAPIKey, cfg.MailFromName, cfg.MailFromAddress, resilience.CircuitBreakerConfig{
		Enabled:          cfg.MailCircuitEnabled,
		FailureThreshold: cfg.MailCircuitFailureCount,
		OpenTimeout:      cfg.MailCircuitOpenTimeout,
	})
}

func buildTokenVerifier(cfg config.Config) (httpapi.TokenVerifier, error) {
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		return account.NewLocalJWTVerifier(cfg.JWTSecret), nil
	case config.AuthModeIntrospection:
		return account.NewIntrospectionClient(cfg.AccountBaseURL, cfg.AccountServiceKey, cfg.AccountTimeout, resilience.CircuitBreakerConfig{
			Enabled:          cfg.AccountCircuitEnabled,
			FailureThreshold: cfg.AccountCircuitFailureCount,
			OpenTimeout:      cfg.AccountCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AccountCircuitHalfOpenMaxReq,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.AuthMode)
	}
}

// logMailer stands in for the SendGrid client when outbound mail is
// disabled. Messages are logged, never delivered.
type logMailer struct {
	logger *logging.Logger
}

func (m logMailer) SendVerificationCode(ctx context.Context, email, _ string) error {
	m.logger.InfoContext(ctx, "mail disabled, skipping verification code delivery", "email", email)
	return nil
}

func (m logMailer) SendPasswordReset(ctx context.Context, email, _ string) error {
	m.logger.InfoContext(ctx, "mail disabled, skipping password reset delivery", "email", email)
	return nil
}
