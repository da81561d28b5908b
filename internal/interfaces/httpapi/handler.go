package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/lightsout-league/pickem/internal/domain/user"
	"github.com/lightsout-league/pickem/internal/platform/logging"
	"github.com/lightsout-league/pickem/internal/usecase"
)

type Handler struct {
	picksService       *usecase.PicksService
	resultsService     *usecase.ResultsService
	scoringService     *usecase.ScoringService
	leaderboardService *usecase.LeaderboardService
	recalcService      *usecase.RecalcService
	authService        *usecase.AuthService
	invitationService  *usecase.InvitationService
	accountService     *usecase.AccountService
	adminLogService    *usecase.AdminLogService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	picksService *usecase.PicksService,
	resultsService *usecase.ResultsService,
	scoringService *usecase.ScoringService,
	leaderboardService *usecase.LeaderboardService,
	recalcService *usecase.RecalcService,
	authService *usecase.AuthService,
	invitationService *usecase.InvitationService,
	accountService *usecase.AccountService,
	adminLogService *usecase.AdminLogService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		picksService:       picksService,
		resultsService:     resultsService,
		scoringService:     scoringService,
		leaderboardService: leaderboardService,
		recalcService:      recalcService,
		authService:        authService,
		invitationService:  invitationService,
		accountService:     accountService,
		adminLogService:    adminLogService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(r *http.Request, dst any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func requirePrincipal(ctx context.Context, w http.ResponseWriter) (user.Principal, bool) {
	p, found := principalFromContext(ctx)
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return user.Principal{}, false
	}
	return p, true
}
