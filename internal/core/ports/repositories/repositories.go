package repositories

import (
	"context"
	"time"

	"github.com/estatedesk/backoffice/internal/core/domain"
	"github.com/estatedesk/backoffice/internal/models"
)

// PropertyRepository defines persistence operations against the two project
// property tables. Implementations route each call to the table matching the
// project discriminator.
type PropertyRepository interface {
	// ListByStatus returns all lots in the project whose status case-folds to
	// the given value.
	ListByStatus(ctx context.Context, project domain.Project, status domain.PropertyStatus) ([]domain.Property, error)
	FindByKey(ctx context.Context, project domain.Project, key domain.PropertyKey) (domain.Property, error)
	// CommitReservation writes the full merged row, conditional on the stored
	// status still being Available. Zero rows affected returns
	// apperrors.ErrConflict.
	CommitReservation(ctx context.Context, property domain.Property) error
	// MarkSold flips Reserved to Sold, conditional on the stored status still
	// being Reserved. Zero rows affected returns apperrors.ErrConflict.
	MarkSold(ctx context.Context, project domain.Project, key domain.PropertyKey) error
	// SaveReopened writes the cleared, Available row unconditionally.
	SaveReopened(ctx context.Context, property domain.Property) error
}

// ClientRepository defines persistence operations for buyer records.
type ClientRepository interface {
	SaveClient(ctx context.Context, client models.Client) error
	FindClientByID(ctx context.Context, clientID string) (*models.Client, error)
	ListClients(ctx context.Context, limit, offset int) ([]models.Client, error)
	UpdateClient(ctx context.Context, client models.Client) error
	DeleteClient(ctx context.Context, clientID string) error
	// DeleteClientsByName removes every row carrying the buyer's display name;
	// used by the property reopen flow.
	DeleteClientsByName(ctx context.Context, name string) error
}

// DocumentRepository defines persistence operations for document metadata.
type DocumentRepository interface {
	SaveDocument(ctx context.Context, doc models.Document) error
	FindDocumentByID(ctx context.Context, documentID string) (*models.Document, error)
	ListDocumentsByClient(ctx context.Context, clientName string) ([]models.Document, error)
	DeleteDocument(ctx context.Context, documentID string) error
	DeleteDocumentsByClientName(ctx context.Context, name string) error
}

// BalanceRepository defines persistence operations for amortization records.
type BalanceRepository interface {
	SaveBalance(ctx context.Context, balance models.Balance) error
	FindBalanceByID(ctx context.Context, balanceID string) (*models.Balance, error)
	FindBalanceByClientName(ctx context.Context, clientName string) (*models.Balance, error)
	ListBalances(ctx context.Context, limit, offset int) ([]models.Balance, error)
	UpdateBalance(ctx context.Context, balance models.Balance) error
	DeleteBalancesByClientName(ctx context.Context, name string) error
}

// PaymentRepository defines persistence operations for submitted payments.
type PaymentRepository interface {
	SavePayment(ctx context.Context, payment models.Payment) error
	FindPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error)
	// ListPayments pages backwards in creation time from the given cursor.
	ListPayments(ctx context.Context, status models.PaymentStatus, before time.Time, limit int) ([]models.Payment, error)
	UpdatePayment(ctx context.Context, payment models.Payment) error
}

// TicketRepository defines persistence operations for support tickets.
type TicketRepository interface {
	SaveTicket(ctx context.Context, ticket models.Ticket) error
	FindTicketByID(ctx context.Context, ticketID string) (*models.Ticket, error)
	ListTickets(ctx context.Context, limit, offset int) ([]models.Ticket, error)
	UpdateTicket(ctx context.Context, ticket models.Ticket) error
}

// UserRepository defines persistence operations for operator accounts.
type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) error
	FindUserByID(ctx context.Context, userID string) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, error)
	DeactivateUser(ctx context.Context, userID string, deactivatedBy string, now time.Time) error
}
