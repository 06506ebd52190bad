package handlers

import (
	"log/slog"
	"net/http"

	"github.com/estatedesk/backoffice/internal/core/domain"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// propertyHandler covers lot transitions outside the wizard.
type propertyHandler struct {
	propertyService portssvc.PropertySvc
}

func newPropertyHandler(ps portssvc.PropertySvc) *propertyHandler {
	return &propertyHandler{propertyService: ps}
}

// registerPropertyRoutes registers routes for direct lot operations.
func registerPropertyRoutes(rg *gin.RouterGroup, propertyService portssvc.PropertySvc) {
	h := newPropertyHandler(propertyService)

	properties := rg.Group("/properties/:project/:block/:lot")
	{
		properties.GET("", h.getProperty)
		properties.POST("/sold", h.markSold)
		properties.POST("/reopen", h.reopen)
	}
}

func (h *propertyHandler) parseTarget(c *gin.Context) (domain.Project, domain.PropertyKey, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	project, err := domain.ParseProject(c.Param("project"))
	if err != nil {
		respondServiceError(c, logger, err, "Invalid project")
		return "", domain.PropertyKey{}, false
	}
	return project, domain.PropertyKey{Block: c.Param("block"), Lot: c.Param("lot")}, true
}

// getProperty godoc
// @Summary Get one lot
// @Tags properties
// @Produce json
// @Param project path string true "Project identifier"
// @Param block path string true "Block"
// @Param lot path string true "Lot"
// @Success 200 {object} dto.PropertyResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /properties/{project}/{block}/{lot} [get]
func (h *propertyHandler) getProperty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	project, key, ok := h.parseTarget(c)
	if !ok {
		return
	}

	property, err := h.propertyService.GetProperty(c.Request.Context(), project, key)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load property")
		return
	}
	c.JSON(http.StatusOK, dto.ToPropertyResponse(property))
}

// markSold godoc
// @Summary Mark a reserved lot sold
// @Tags properties
// @Produce json
// @Param project path string true "Project identifier"
// @Param block path string true "Block"
// @Param lot path string true "Lot"
// @Success 200 {object} dto.PropertyResponse
// @Failure 409 {object} ErrorResponse "Lot is not reserved"
// @Security BearerAuth
// @Router /properties/{project}/{block}/{lot}/sold [post]
func (h *propertyHandler) markSold(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	project, key, ok := h.parseTarget(c)
	if !ok {
		return
	}

	property, err := h.propertyService.MarkSold(c.Request.Context(), project, key)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to mark property sold")
		return
	}

	logger.Info("Property marked sold",
		slog.String("project", project.DisplayName()),
		slog.String("key", key.String()))
	c.JSON(http.StatusOK, dto.ToPropertyResponse(property))
}

// reopen godoc
// @Summary Reopen a sold lot
// @Description Releases a Sold lot back to Available. Dependent client, document and balance rows
// @Description under the buyer's name are deleted best-effort; failures are reported, not fatal.
// @Tags properties
// @Produce json
// @Param project path string true "Project identifier"
// @Param block path string true "Block"
// @Param lot path string true "Lot"
// @Success 200 {object} dto.ReopenResponse
// @Failure 409 {object} ErrorResponse "Lot is not sold"
// @Failure 500 {object} ErrorResponse "Status reset failed"
// @Security BearerAuth
// @Router /properties/{project}/{block}/{lot}/reopen [post]
func (h *propertyHandler) reopen(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	project, key, ok := h.parseTarget(c)
	if !ok {
		return
	}

	property, failures, err := h.propertyService.Reopen(c.Request.Context(), project, key)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reopen property")
		return
	}

	resp := dto.ReopenResponse{Property: dto.ToPropertyResponse(property)}
	for _, f := range failures {
		resp.CleanupFailures = append(resp.CleanupFailures, f.Table)
	}

	logger.Info("Property reopened",
		slog.String("project", project.DisplayName()),
		slog.String("key", key.String()),
		slog.Int("cleanup_failures", len(failures)))
	c.JSON(http.StatusOK, resp)
}
