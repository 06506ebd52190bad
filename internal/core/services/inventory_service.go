package services

import (
	"context"
	"log/slog"

	"github.com/estatedesk/backoffice/internal/core/domain"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
)

// inventoryService merges the available-lot lists of both projects.
type inventoryService struct {
	BaseService
	propertyRepo portsrepo.PropertyRepository
}

// NewInventoryService creates the inventory query layer over the given
// property repository.
func NewInventoryService(propertyRepo portsrepo.PropertyRepository) portssvc.InventorySvc {
	return &inventoryService{propertyRepo: propertyRepo}
}

var _ portssvc.InventorySvc = (*inventoryService)(nil)

// inventoryProjects fixes the merge order so Living Water rows always precede
// Havahills rows in the combined list.
var inventoryProjects = []domain.Project{domain.ProjectLivingWater, domain.ProjectHavahills}

// ListAvailable queries each project table independently and merges the
// results. One project's failure must not blank the other project's rows: the
// error is logged and that project contributes an empty slice.
func (s *inventoryService) ListAvailable(ctx context.Context) ([]domain.Property, error) {
	merged := make([]domain.Property, 0)
	for _, project := range inventoryProjects {
		rows, err := s.propertyRepo.ListByStatus(ctx, project, domain.StatusAvailable)
		if err != nil {
			s.LogError(ctx, err, "Failed to list available properties; continuing with other project",
				slog.String("project", project.DisplayName()))
			continue
		}
		merged = append(merged, rows...)
	}
	return merged, nil
}
