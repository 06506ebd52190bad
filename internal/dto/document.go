package dto

import (
	"time"

	"github.com/estatedesk/backoffice/internal/models"
)

// CreateDocumentRequest registers collected-paper metadata. The file itself is
// uploaded to object storage by the front end; only the location is recorded.
type CreateDocumentRequest struct {
	ClientName    string `json:"clientName" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Type          string `json:"type" binding:"required"`
	StorageBucket string `json:"storageBucket" binding:"required"`
	StoragePath   string `json:"storagePath" binding:"required"`
}

// DocumentResponse is the wire shape of document metadata.
type DocumentResponse struct {
	DocumentID    string    `json:"documentId"`
	ClientName    string    `json:"clientName"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	StorageBucket string    `json:"storageBucket"`
	StoragePath   string    `json:"storagePath"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToDocumentResponse maps a model to its wire shape.
func ToDocumentResponse(d *models.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:    d.DocumentID,
		ClientName:    d.ClientName,
		Name:          d.Name,
		Type:          string(d.Type),
		StorageBucket: d.StorageBucket,
		StoragePath:   d.StoragePath,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDocumentResponses maps a list of models.
func ToDocumentResponses(docs []models.Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, ToDocumentResponse(&docs[i]))
	}
	return out
}
