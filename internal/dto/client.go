package dto

import (
	"time"

	"github.com/estatedesk/backoffice/internal/models"
)

// CreateClientRequest registers a buyer.
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Project string `json:"project" binding:"required"`
	Block   string `json:"block"`
	Lot     string `json:"lot"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Broker  string `json:"broker"`
}

// UpdateClientRequest carries optional field updates.
type UpdateClientRequest struct {
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Broker  *string `json:"broker"`
}

// ClientResponse is the wire shape of a buyer record.
type ClientResponse struct {
	ClientID  string    `json:"clientId"`
	Name      string    `json:"name"`
	Project   string    `json:"project"`
	Block     string    `json:"block"`
	Lot       string    `json:"lot"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Broker    string    `json:"broker"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToClientResponse maps a model to its wire shape.
func ToClientResponse(c *models.Client) ClientResponse {
	return ClientResponse{
		ClientID:  c.ClientID,
		Name:      c.Name,
		Project:   c.Project,
		Block:     c.Block,
		Lot:       c.Lot,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Broker:    c.Broker,
		CreatedAt: c.CreatedAt,
	}
}

// ToClientResponses maps a list of models.
func ToClientResponses(clients []models.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, ToClientResponse(&clients[i]))
	}
	return out
}
