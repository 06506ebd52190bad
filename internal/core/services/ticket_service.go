package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/models"
	"github.com/google/uuid"
)

// ticketService manages support tickets.
type ticketService struct {
	BaseService
	ticketRepo portsrepo.TicketRepository
}

// NewTicketService creates the ticket service.
func NewTicketService(ticketRepo portsrepo.TicketRepository) portssvc.TicketSvc {
	return &ticketService{ticketRepo: ticketRepo}
}

var _ portssvc.TicketSvc = (*ticketService)(nil)

func (s *ticketService) CreateTicket(ctx context.Context, req dto.CreateTicketRequest, creatorUserID string) (*models.Ticket, error) {
	now := time.Now()
	ticket := models.Ticket{
		TicketID:    uuid.NewString(),
		ClientName:  req.ClientName,
		Subject:     req.Subject,
		Description: req.Description,
		Status:      models.TicketOpen,
		AuditFields: models.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ticketRepo.SaveTicket(ctx, ticket); err != nil {
		s.LogError(ctx, err, "Failed to save ticket", slog.String("subject", req.Subject))
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	return &ticket, nil
}

func (s *ticketService) GetTicketByID(ctx context.Context, ticketID string) (*models.Ticket, error) {
	return s.ticketRepo.FindTicketByID(ctx, ticketID)
}

func (s *ticketService) ListTickets(ctx context.Context, limit, offset int) ([]models.Ticket, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.ticketRepo.ListTickets(ctx, limit, offset)
}

func (s *ticketService) UpdateTicket(ctx context.Context, ticketID string, req dto.UpdateTicketRequest, updaterUserID string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.FindTicketByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		ticket.Status = models.TicketStatus(*req.Status)
	}
	if req.AssignedTo != nil {
		ticket.AssignedTo = *req.AssignedTo
	}
	ticket.LastUpdatedAt = time.Now()
	ticket.LastUpdatedBy = updaterUserID

	if err := s.ticketRepo.UpdateTicket(ctx, *ticket); err != nil {
		s.LogError(ctx, err, "Failed to update ticket", slog.String("ticket_id", ticketID))
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}
	return ticket, nil
}
