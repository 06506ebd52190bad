package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/estatedesk/backoffice/internal/apperrors"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/models"
	"github.com/google/uuid"
)

// documentService manages collected-paper metadata. The files themselves live
// in external object storage.
type documentService struct {
	BaseService
	documentRepo portsrepo.DocumentRepository
}

// NewDocumentService creates the document service.
func NewDocumentService(documentRepo portsrepo.DocumentRepository) portssvc.DocumentSvc {
	return &documentService{documentRepo: documentRepo}
}

var _ portssvc.DocumentSvc = (*documentService)(nil)

var validDocTypes = map[models.DocumentType]bool{
	models.DocValidID:         true,
	models.DocTaxReturn:       true,
	models.DocProofOfIncome:   true,
	models.DocContractToSell:  true,
	models.DocReservationForm: true,
	models.DocOther:           true,
}

func (s *documentService) CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, creatorUserID string) (*models.Document, error) {
	docType := models.DocumentType(req.Type)
	if !validDocTypes[docType] {
		return nil, fmt.Errorf("%w: unknown document type %q", apperrors.ErrValidation, req.Type)
	}

	now := time.Now()
	doc := models.Document{
		DocumentID:    uuid.NewString(),
		ClientName:    req.ClientName,
		Name:          req.Name,
		Type:          docType,
		StorageBucket: req.StorageBucket,
		StoragePath:   req.StoragePath,
		AuditFields: models.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		s.LogError(ctx, err, "Failed to save document", slog.String("client", req.ClientName))
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return &doc, nil
}

func (s *documentService) GetDocumentByID(ctx context.Context, documentID string) (*models.Document, error) {
	return s.documentRepo.FindDocumentByID(ctx, documentID)
}

func (s *documentService) ListDocumentsByClient(ctx context.Context, clientName string) ([]models.Document, error) {
	if clientName == "" {
		return nil, fmt.Errorf("%w: client name required", apperrors.ErrValidation)
	}
	return s.documentRepo.ListDocumentsByClient(ctx, clientName)
}

func (s *documentService) DeleteDocument(ctx context.Context, documentID string) error {
	return s.documentRepo.DeleteDocument(ctx, documentID)
}
