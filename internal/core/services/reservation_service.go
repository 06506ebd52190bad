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

// reservationService commits a wizard's merged record to the originating
// project table.
type reservationService struct {
	BaseService
	propertyRepo portsrepo.PropertyRepository
}

// NewReservationService creates the reservation committer.
func NewReservationService(propertyRepo portsrepo.PropertyRepository) portssvc.ReservationCommitter {
	return &reservationService{propertyRepo: propertyRepo}
}

var _ portssvc.ReservationCommitter = (*reservationService)(nil)

// Commit overlays the accumulated edits onto the selected lot and writes the
// merged record, forcing the status to Reserved even if the edits carried a
// different status value. The write is conditional on the stored row still
// being Available; losing that race surfaces apperrors.ErrConflict.
func (s *reservationService) Commit(ctx context.Context, selected domain.Property, editedFields map[string]string) (domain.Property, error) {
	if selected == nil {
		return nil, fmt.Errorf("%w: no property selected", apperrors.ErrValidation)
	}

	merged := selected.Clone()
	if err := domain.ApplyEdits(merged, editedFields); err != nil {
		return nil, err
	}
	// Status override always wins over edits.
	merged.SetStatus(domain.StatusReserved)

	if err := s.propertyRepo.CommitReservation(ctx, merged); err != nil {
		s.LogError(ctx, err, "Failed to commit reservation",
			slog.String("project", merged.Project().DisplayName()),
			slog.String("key", merged.Key().String()))
		return nil, err
	}

	s.LogInfo(ctx, "Reservation committed",
		slog.String("project", merged.Project().DisplayName()),
		slog.String("key", merged.Key().String()),
		slog.String("buyer", merged.BuyerName()))
	return merged, nil
}
