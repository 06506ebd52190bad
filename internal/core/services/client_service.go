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
	"github.com/google/uuid"
)

// clientService manages buyer records.
type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepository
}

// NewClientService creates the client service.
func NewClientService(clientRepo portsrepo.ClientRepository) portssvc.ClientSvc {
	return &clientService{clientRepo: clientRepo}
}

var _ portssvc.ClientSvc = (*clientService)(nil)

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*models.Client, error) {
	project, err := domain.ParseProject(req.Project)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	client := models.Client{
		ClientID: uuid.NewString(),
		Name:     req.Name,
		Project:  string(project),
		Block:    req.Block,
		Lot:      req.Lot,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Broker:   req.Broker,
		AuditFields: models.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "Failed to save client", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*models.Client, error) {
	return s.clientRepo.FindClientByID(ctx, clientID)
}

func (s *clientService) ListClients(ctx context.Context, limit, offset int) ([]models.Client, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.clientRepo.ListClients(ctx, limit, offset)
}

func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, updaterUserID string) (*models.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Broker != nil {
		client.Broker = *req.Broker
	}
	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = updaterUserID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "Failed to update client", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, clientID string) error {
	if clientID == "" {
		return fmt.Errorf("%w: client ID required", apperrors.ErrValidation)
	}
	return s.clientRepo.DeleteClient(ctx, clientID)
}
