package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/crew_ledger/internal/apperrors"
	"github.com/SscSPs/crew_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crew_ledger/internal/core/ports/services"
	"github.com/SscSPs/crew_ledger/internal/dto"
	"github.com/google/uuid"
)

type brigadeService struct {
	BaseService
	brigadeRepo portsrepo.BrigadeRepositoryFacade
}

// NewBrigadeService creates a new BrigadeService.
func NewBrigadeService(brigadeRepo portsrepo.BrigadeRepositoryFacade) portssvc.BrigadeSvcFacade {
	return &brigadeService{BaseService: newBaseService(), brigadeRepo: brigadeRepo}
}

var _ portssvc.BrigadeSvcFacade = (*brigadeService)(nil)

// CreateBrigade onboards a crew. Its crew account is created in the same database transaction.
func (s *brigadeService) CreateBrigade(ctx context.Context, req dto.CreateBrigadeRequest, userID string) (*domain.Brigade, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: brigade name is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.BrigadierID) == "" {
		return nil, fmt.Errorf("%w: brigadier is required", apperrors.ErrValidation)
	}
	if !domain.ValidPercentage(req.ProfitPercentage) {
		return nil, fmt.Errorf("%w: profit percentage must be between 0 and 100", apperrors.ErrValidation)
	}

	now := s.now()
	audit := domain.AuditFields{CreatedAt: now, UpdatedAt: now}
	brigadierID := req.BrigadierID
	account := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      &brigadierID,
		Name:        "Crew: " + name,
		AccountType: domain.AccountCrew,
		IsActive:    true,
		AuditFields: audit,
	}
	brigade := domain.Brigade{
		BrigadeID:        uuid.NewString(),
		Name:             name,
		BrigadierID:      brigadierID,
		ProfitPercentage: req.ProfitPercentage,
		IsActive:         true,
		AccountID:        account.AccountID,
		AuditFields:      audit,
	}

	if err := s.brigadeRepo.SaveBrigadeWithAccount(ctx, brigade, account); err != nil {
		s.LogError(ctx, err, "Failed to create brigade", slog.String("created_by", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Brigade created",
		slog.String("brigade_id", brigade.BrigadeID),
		slog.String("account_id", account.AccountID),
		slog.String("profit_percentage", brigade.ProfitPercentage.String()))
	return &brigade, nil
}

func (s *brigadeService) GetBrigade(ctx context.Context, brigadeID string) (*domain.Brigade, error) {
	return s.brigadeRepo.FindBrigadeByID(ctx, brigadeID)
}

func (s *brigadeService) GetBrigadeForBrigadier(ctx context.Context, userID string) (*domain.Brigade, error) {
	return s.brigadeRepo.FindBrigadeByBrigadier(ctx, userID)
}

func (s *brigadeService) ListBrigades(ctx context.Context) ([]domain.Brigade, error) {
	return s.brigadeRepo.ListBrigades(ctx)
}
