package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/estatedesk/backoffice/internal/apperrors"
	"github.com/estatedesk/backoffice/internal/core/domain"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/models"
	"github.com/estatedesk/backoffice/internal/utils/amortization"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// balanceService manages per-buyer amortization records.
type balanceService struct {
	BaseService
	balanceRepo portsrepo.BalanceRepository
}

// NewBalanceService creates the balance service.
func NewBalanceService(balanceRepo portsrepo.BalanceRepository) portssvc.BalanceSvc {
	return &balanceService{balanceRepo: balanceRepo}
}

var _ portssvc.BalanceSvc = (*balanceService)(nil)

func (s *balanceService) CreateBalance(ctx context.Context, req dto.CreateBalanceRequest, creatorUserID string) (*models.Balance, error) {
	project, err := domain.ParseProject(req.Project)
	if err != nil {
		return nil, err
	}

	tcp, err := decimal.NewFromString(req.TCP)
	if err != nil {
		return nil, fmt.Errorf("%w: tcp must be a number, got %q", apperrors.ErrValidation, req.TCP)
	}
	downPayment := decimal.Zero
	if req.DownPayment != "" {
		downPayment, err = decimal.NewFromString(req.DownPayment)
		if err != nil {
			return nil, fmt.Errorf("%w: downPayment must be a number, got %q", apperrors.ErrValidation, req.DownPayment)
		}
	}
	if downPayment.GreaterThan(tcp) {
		return nil, fmt.Errorf("%w: down payment exceeds total contract price", apperrors.ErrValidation)
	}

	now := time.Now()
	balance := models.Balance{
		BalanceID:           uuid.NewString(),
		ClientName:          req.ClientName,
		Project:             string(project),
		Block:               req.Block,
		Lot:                 req.Lot,
		TCP:                 tcp,
		DownPayment:         downPayment,
		MonthsTerm:          req.MonthsTerm,
		MonthlyAmortization: amortization.MonthlyAmortization(tcp, downPayment, req.MonthsTerm),
		TotalPaid:           decimal.Zero,
		MonthsPaid:          0,
		RemainingBalance:    amortization.RemainingBalance(tcp, downPayment, decimal.Zero),
		AuditFields: models.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.balanceRepo.SaveBalance(ctx, balance); err != nil {
		s.LogError(ctx, err, "Failed to save balance", slog.String("client", req.ClientName))
		return nil, fmt.Errorf("failed to create balance: %w", err)
	}
	return &balance, nil
}

func (s *balanceService) GetBalanceByID(ctx context.Context, balanceID string) (*models.Balance, error) {
	return s.balanceRepo.FindBalanceByID(ctx, balanceID)
}

func (s *balanceService) ListBalances(ctx context.Context, limit, offset int) ([]models.Balance, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.balanceRepo.ListBalances(ctx, limit, offset)
}

// PostPayment applies an approved payment to the buyer's amortization record,
// recomputing totals with decimal arithmetic.
func (s *balanceService) PostPayment(ctx context.Context, clientName string, payment models.Payment, updaterUserID string) (*models.Balance, error) {
	balance, err := s.balanceRepo.FindBalanceByClientName(ctx, clientName)
	if err != nil {
		return nil, err
	}

	balance.TotalPaid = balance.TotalPaid.Add(payment.Amount)
	balance.RemainingBalance = amortization.RemainingBalance(balance.TCP, balance.DownPayment, balance.TotalPaid)
	balance.MonthsPaid = amortization.MonthsPaid(balance.TotalPaid, balance.MonthlyAmortization)
	balance.LastUpdatedAt = time.Now()
	balance.LastUpdatedBy = updaterUserID

	if err := s.balanceRepo.UpdateBalance(ctx, *balance); err != nil {
		s.LogError(ctx, err, "Failed to post payment to balance",
			slog.String("client", clientName),
			slog.String("payment_id", payment.PaymentID))
		return nil, fmt.Errorf("failed to post payment: %w", err)
	}
	return balance, nil
}
