package services

import (
	"context"

	"github.com/estatedesk/backoffice/internal/core/domain"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/models"
)

// InventorySvc serves the merged available-lot list across both projects.
type InventorySvc interface {
	// ListAvailable merges both project tables' Available rows. A failure on
	// one project's query is logged and replaced by an empty result for that
	// project; it never hides the other project's rows.
	ListAvailable(ctx context.Context) ([]domain.Property, error)
}

// ReservationCommitter writes a wizard's merged record back to the originating
// project table, forcing the status to Reserved.
type ReservationCommitter interface {
	Commit(ctx context.Context, selected domain.Property, editedFields map[string]string) (domain.Property, error)
}

// DealSvc owns the in-memory close-deal wizard sessions.
type DealSvc interface {
	CreateSession(ctx context.Context) (*domain.DealSession, error)
	GetSession(ctx context.Context, dealID string) (*domain.DealSession, error)
	// Advance moves forward one step; on the commit step it invokes the
	// reservation committer instead and jumps to finish on success.
	Advance(ctx context.Context, dealID string) (*domain.DealSession, error)
	Retreat(ctx context.Context, dealID string) (*domain.DealSession, error)
	JumpBack(ctx context.Context, dealID string, stepIndex int) (*domain.DealSession, error)
	SelectProperty(ctx context.Context, dealID string, project domain.Project, key domain.PropertyKey) (*domain.DealSession, error)
	EditField(ctx context.Context, dealID string, field, value string) (*domain.DealSession, error)
	AbandonSession(ctx context.Context, dealID string) error
}

// CleanupFailure records one best-effort deletion that failed during a reopen.
type CleanupFailure struct {
	Table string
	Err   error
}

// PropertySvc covers the out-of-wizard lot transitions.
type PropertySvc interface {
	GetProperty(ctx context.Context, project domain.Project, key domain.PropertyKey) (domain.Property, error)
	// MarkSold flips a Reserved lot to Sold.
	MarkSold(ctx context.Context, project domain.Project, key domain.PropertyKey) (domain.Property, error)
	// Reopen releases a Sold lot back to Available: best-effort deletion of the
	// buyer's client/document/balance rows, then a strict status/field reset.
	// Collected cleanup failures are returned alongside the reopened lot.
	Reopen(ctx context.Context, project domain.Project, key domain.PropertyKey) (domain.Property, []CleanupFailure, error)
}

// ClientSvc manages buyer records.
type ClientSvc interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*models.Client, error)
	GetClientByID(ctx context.Context, clientID string) (*models.Client, error)
	ListClients(ctx context.Context, limit, offset int) ([]models.Client, error)
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, updaterUserID string) (*models.Client, error)
	DeleteClient(ctx context.Context, clientID string) error
}

// DocumentSvc manages collected-paper metadata.
type DocumentSvc interface {
	CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, creatorUserID string) (*models.Document, error)
	GetDocumentByID(ctx context.Context, documentID string) (*models.Document, error)
	ListDocumentsByClient(ctx context.Context, clientName string) ([]models.Document, error)
	DeleteDocument(ctx context.Context, documentID string) error
}

// BalanceSvc manages amortization records.
type BalanceSvc interface {
	CreateBalance(ctx context.Context, req dto.CreateBalanceRequest, creatorUserID string) (*models.Balance, error)
	GetBalanceByID(ctx context.Context, balanceID string) (*models.Balance, error)
	ListBalances(ctx context.Context, limit, offset int) ([]models.Balance, error)
	// PostPayment applies an approved payment amount to the buyer's balance.
	PostPayment(ctx context.Context, clientName string, payment models.Payment, updaterUserID string) (*models.Balance, error)
}

// PaymentSvc manages payment intake and the approval lifecycle.
type PaymentSvc interface {
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, creatorUserID string) (*models.Payment, error)
	GetPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error)
	// ListPayments pages newest first; pageToken comes from a previous page.
	ListPayments(ctx context.Context, status models.PaymentStatus, pageToken string, limit int) ([]models.Payment, string, error)
	ApprovePayment(ctx context.Context, paymentID string, note string, reviewerUserID string) (*models.Payment, error)
	RejectPayment(ctx context.Context, paymentID string, note string, reviewerUserID string) (*models.Payment, error)
}

// TicketSvc manages support tickets.
type TicketSvc interface {
	CreateTicket(ctx context.Context, req dto.CreateTicketRequest, creatorUserID string) (*models.Ticket, error)
	GetTicketByID(ctx context.Context, ticketID string) (*models.Ticket, error)
	ListTickets(ctx context.Context, limit, offset int) ([]models.Ticket, error)
	UpdateTicket(ctx context.Context, ticketID string, req dto.UpdateTicketRequest, updaterUserID string) (*models.Ticket, error)
}

// UserSvc manages operator accounts.
type UserSvc interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, error)
	DeactivateUser(ctx context.Context, userID string, deactivatedBy string) error
	// VerifyPassword checks credentials for login.
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
}
