package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// documentHandler handles HTTP requests related to document metadata.
type documentHandler struct {
	documentService portssvc.DocumentSvc
}

func newDocumentHandler(ds portssvc.DocumentSvc) *documentHandler {
	return &documentHandler{documentService: ds}
}

// registerDocumentRoutes registers routes related to documents.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvc) {
	h := newDocumentHandler(documentService)

	documents := rg.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("", h.listByClient)
		documents.GET("/:documentID", h.getDocument)
		documents.DELETE("/:documentID", h.deleteDocument)
	}
}

// createDocument godoc
// @Summary Register collected-paper metadata
// @Description The file itself is uploaded to object storage separately; this records its location.
// @Tags documents
// @Accept json
// @Produce json
// @Param document body dto.CreateDocumentRequest true "Document metadata"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create document")
		return
	}

	logger.Info("Document registered", slog.String("document_id", doc.DocumentID))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// listByClient godoc
// @Summary List a buyer's documents
// @Tags documents
// @Produce json
// @Param clientName query string true "Buyer display name"
// @Success 200 {array} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents [get]
func (h *documentHandler) listByClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	docs, err := h.documentService.ListDocumentsByClient(c.Request.Context(), c.Query("clientName"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list documents")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponses(docs))
}

// getDocument godoc
// @Summary Get document metadata by ID
// @Tags documents
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	doc, err := h.documentService.GetDocumentByID(c.Request.Context(), c.Param("documentID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load document")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// deleteDocument godoc
// @Summary Delete document metadata
// @Tags documents
// @Param documentID path string true "Document ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID} [delete]
func (h *documentHandler) deleteDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.documentService.DeleteDocument(c.Request.Context(), c.Param("documentID")); err != nil {
		respondServiceError(c, logger, err, "Failed to delete document")
		return
	}
	c.Status(http.StatusNoContent)
}
