package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/estatedesk/backoffice/internal/apperrors"
	"github.com/estatedesk/backoffice/internal/core/domain"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/models"
	"github.com/estatedesk/backoffice/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// paymentService manages payment intake and the approval lifecycle.
type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepository
	balanceSvc  portssvc.BalanceSvc
}

// PaymentServiceOption is a functional option for configuring the payment service.
type PaymentServiceOption func(*paymentService)

// WithBalanceSvc attaches the balance service so approvals post against the
// buyer's amortization record.
func WithBalanceSvc(svc portssvc.BalanceSvc) PaymentServiceOption {
	return func(s *paymentService) {
		s.balanceSvc = svc
	}
}

// NewPaymentService creates the payment service.
func NewPaymentService(paymentRepo portsrepo.PaymentRepository, options ...PaymentServiceOption) portssvc.PaymentSvc {
	svc := &paymentService{paymentRepo: paymentRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PaymentSvc = (*paymentService)(nil)

func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, creatorUserID string) (*models.Payment, error) {
	project, err := domain.ParseProject(req.Project)
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount must be a number, got %q", apperrors.ErrValidation, req.Amount)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	payment := models.Payment{
		PaymentID:     uuid.NewString(),
		ClientName:    req.ClientName,
		Project:       string(project),
		Amount:        amount,
		Method:        req.Method,
		ReceiptBucket: req.ReceiptBucket,
		ReceiptPath:   req.ReceiptPath,
		Status:        models.PaymentPending,
		AuditFields: models.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save payment", slog.String("client", req.ClientName))
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return &payment, nil
}

func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	return s.paymentRepo.FindPaymentByID(ctx, paymentID)
}

// ListPayments pages newest first using a date-based cursor token.
func (s *paymentService) ListPayments(ctx context.Context, status models.PaymentStatus, pageToken string, limit int) ([]models.Payment, string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	before := time.Now()
	if pageToken != "" {
		var err error
		before, err = pagination.DecodeDateBasedToken(pageToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
	}

	payments, err := s.paymentRepo.ListPayments(ctx, status, before, limit)
	if err != nil {
		return nil, "", err
	}

	nextToken := ""
	if len(payments) == limit {
		nextToken = pagination.EncodeDateBasedToken(payments[len(payments)-1].CreatedAt)
	}
	return payments, nextToken, nil
}

// review transitions a payment out of PENDING. Any other starting state is a
// conflict.
func (s *paymentService) review(ctx context.Context, paymentID string, target models.PaymentStatus, note, reviewerUserID string) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != models.PaymentPending {
		return nil, fmt.Errorf("%w: payment %s is %s, only pending payments can be reviewed",
			apperrors.ErrConflict, paymentID, payment.Status)
	}

	payment.Status = target
	payment.ReviewedBy = reviewerUserID
	payment.ReviewNote = note
	payment.LastUpdatedAt = time.Now()
	payment.LastUpdatedBy = reviewerUserID

	if err := s.paymentRepo.UpdatePayment(ctx, *payment); err != nil {
		s.LogError(ctx, err, "Failed to update payment", slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to review payment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) ApprovePayment(ctx context.Context, paymentID string, note string, reviewerUserID string) (*models.Payment, error) {
	payment, err := s.review(ctx, paymentID, models.PaymentApproved, note, reviewerUserID)
	if err != nil {
		return nil, err
	}

	// Posting against the balance is best-effort: a buyer without a balance row
	// (e.g. a reservation-fee payment) still gets an approved payment.
	if s.balanceSvc != nil {
		if _, err := s.balanceSvc.PostPayment(ctx, payment.ClientName, *payment, reviewerUserID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				s.LogWarn(ctx, "No balance record for approved payment",
					slog.String("client", payment.ClientName),
					slog.String("payment_id", paymentID))
			} else {
				s.LogError(ctx, err, "Failed to post approved payment to balance",
					slog.String("payment_id", paymentID))
			}
		}
	}
	return payment, nil
}

func (s *paymentService) RejectPayment(ctx context.Context, paymentID string, note string, reviewerUserID string) (*models.Payment, error) {
	return s.review(ctx, paymentID, models.PaymentRejected, note, reviewerUserID)
}
