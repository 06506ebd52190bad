package dto

import (
	"time"

	"github.com/estatedesk/backoffice/internal/models"
)

// CreateTicketRequest opens a support ticket.
type CreateTicketRequest struct {
	ClientName  string `json:"clientName" binding:"required"`
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description"`
}

// UpdateTicketRequest carries optional ticket updates.
type UpdateTicketRequest struct {
	Status     *string `json:"status" binding:"omitempty,oneof=OPEN IN_PROGRESS CLOSED"`
	AssignedTo *string `json:"assignedTo"`
}

// TicketResponse is the wire shape of a support ticket.
type TicketResponse struct {
	TicketID    string    `json:"ticketId"`
	ClientName  string    `json:"clientName"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	AssignedTo  string    `json:"assignedTo,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToTicketResponse maps a model to its wire shape.
func ToTicketResponse(t *models.Ticket) TicketResponse {
	return TicketResponse{
		TicketID:    t.TicketID,
		ClientName:  t.ClientName,
		Subject:     t.Subject,
		Description: t.Description,
		Status:      string(t.Status),
		AssignedTo:  t.AssignedTo,
		CreatedAt:   t.CreatedAt,
	}
}

// ToTicketResponses maps a list of models.
func ToTicketResponses(tickets []models.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, ToTicketResponse(&tickets[i]))
	}
	return out
}
