package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/estatedesk/backoffice/internal/apperrors"
	"github.com/estatedesk/backoffice/internal/core/domain"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
)

// propertyService covers the lot transitions outside the wizard: mark sold and
// the reopen flow.
type propertyService struct {
	BaseService
	propertyRepo portsrepo.PropertyRepository
	clientRepo   portsrepo.ClientRepository
	documentRepo portsrepo.DocumentRepository
	balanceRepo  portsrepo.BalanceRepository
}

// NewPropertyService creates the property lifecycle service.
func NewPropertyService(
	propertyRepo portsrepo.PropertyRepository,
	clientRepo portsrepo.ClientRepository,
	documentRepo portsrepo.DocumentRepository,
	balanceRepo portsrepo.BalanceRepository,
) portssvc.PropertySvc {
	return &propertyService{
		propertyRepo: propertyRepo,
		clientRepo:   clientRepo,
		documentRepo: documentRepo,
		balanceRepo:  balanceRepo,
	}
}

var _ portssvc.PropertySvc = (*propertyService)(nil)

func (s *propertyService) GetProperty(ctx context.Context, project domain.Project, key domain.PropertyKey) (domain.Property, error) {
	return s.propertyRepo.FindByKey(ctx, project, key)
}

// MarkSold flips a Reserved lot to Sold with the same conditional-write
// discipline as the reservation commit.
func (s *propertyService) MarkSold(ctx context.Context, project domain.Project, key domain.PropertyKey) (domain.Property, error) {
	if err := s.propertyRepo.MarkSold(ctx, project, key); err != nil {
		s.LogError(ctx, err, "Failed to mark property sold",
			slog.String("project", project.DisplayName()),
			slog.String("key", key.String()))
		return nil, err
	}
	return s.propertyRepo.FindByKey(ctx, project, key)
}

// Reopen releases a Sold lot back to Available. Dependent client, document and
// balance rows matching the buyer's name are deleted best-effort: each failure
// is logged and collected, none blocks the next step. The status/field reset
// itself is strict; its failure fails the whole operation.
func (s *propertyService) Reopen(ctx context.Context, project domain.Project, key domain.PropertyKey) (domain.Property, []portssvc.CleanupFailure, error) {
	property, err := s.propertyRepo.FindByKey(ctx, project, key)
	if err != nil {
		return nil, nil, err
	}
	if !property.Status().Equals(domain.StatusSold) {
		return nil, nil, fmt.Errorf("%w: %s in %s is %s, only sold lots can be reopened",
			apperrors.ErrConflict, key.String(), project.DisplayName(), property.Status())
	}

	buyer := property.BuyerName()
	var failures []portssvc.CleanupFailure
	if buyer == "" {
		s.LogWarn(ctx, "Sold property has no buyer name; skipping dependent-row cleanup",
			slog.String("key", key.String()))
	} else {
		cleanups := []struct {
			table string
			fn    func(context.Context, string) error
		}{
			{"clients", s.clientRepo.DeleteClientsByName},
			{"documents", s.documentRepo.DeleteDocumentsByClientName},
			{"balances", s.balanceRepo.DeleteBalancesByClientName},
		}
		for _, cleanup := range cleanups {
			if err := cleanup.fn(ctx, buyer); err != nil {
				s.LogError(ctx, err, "Dependent-row cleanup failed; continuing",
					slog.String("table", cleanup.table),
					slog.String("buyer", buyer))
				failures = append(failures, portssvc.CleanupFailure{Table: cleanup.table, Err: err})
			}
		}
	}

	reopened := property.Clone()
	reopened.ClearBuyerFields()
	reopened.SetStatus(domain.StatusAvailable)
	if err := s.propertyRepo.SaveReopened(ctx, reopened); err != nil {
		s.LogError(ctx, err, "Failed to reset property to available",
			slog.String("project", project.DisplayName()),
			slog.String("key", key.String()))
		return nil, failures, fmt.Errorf("failed to reopen %s: %w", key.String(), err)
	}

	s.LogInfo(ctx, "Property reopened",
		slog.String("project", project.DisplayName()),
		slog.String("key", key.String()),
		slog.Int("cleanup_failures", len(failures)))
	return reopened, failures, nil
}
