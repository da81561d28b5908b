package usecase

import (
	"context"
	"fmt"

	"github.com/lightsout-league/pickem/internal/domain/adminlog"
	"github.com/lightsout-league/pickem/internal/domain/user"
	"github.com/lightsout-league/pickem/internal/platform/logging"
)

// AdminLogService exposes the append-only admin action log to admins.
type AdminLogService struct {
	auditRepo adminlog.Repository
	userRepo  user.Repository
	logger    *logging.Logger
}

func NewAdminLogService(auditRepo adminlog.Repository, userRepo user.Repository, logger *logging.Logger) *AdminLogService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminLogService{
		auditRepo: auditRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// List returns log entries, newest first, optionally filtered to one
// event.
func (s *AdminLogService) List(ctx context.Context, principal user.Principal, eventID string) ([]adminlog.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminLogService.List")
	defer span.End()

	if _, err := requireAdmin(ctx, s.userRepo, principal); err != nil {
		return nil, err
	}

	entries, err := s.auditRepo.List(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list admin logs: %w", err)
	}
	return entries, nil
}
