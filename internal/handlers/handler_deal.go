package handlers

import (
	"net/http"

	"github.com/estatedesk/backoffice/internal/core/domain"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
	"log/slog"
)

// dealHandler drives the close-deal wizard over HTTP. All wizard state lives
// in the deal service's in-memory sessions; the handler is stateless.
type dealHandler struct {
	dealService portssvc.DealSvc
}

func newDealHandler(ds portssvc.DealSvc) *dealHandler {
	return &dealHandler{dealService: ds}
}

// registerDealRoutes registers routes for the close-deal wizard.
func registerDealRoutes(rg *gin.RouterGroup, dealService portssvc.DealSvc) {
	h := newDealHandler(dealService)

	deals := rg.Group("/deals")
	{
		deals.POST("", h.createDeal)
		deals.GET("/:dealID", h.getDeal)
		deals.DELETE("/:dealID", h.abandonDeal)
		deals.POST("/:dealID/advance", h.advance)
		deals.POST("/:dealID/retreat", h.retreat)
		deals.POST("/:dealID/jump", h.jumpBack)
		deals.PUT("/:dealID/property", h.selectProperty)
		deals.PATCH("/:dealID/fields", h.editField)
	}
}

// createDeal godoc
// @Summary Start a close-deal wizard session
// @Description Opens a new in-memory wizard session positioned on the inventory step.
// @Tags deals
// @Produce json
// @Success 201 {object} dto.DealSessionResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals [post]
func (h *dealHandler) createDeal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	session, err := h.dealService.CreateSession(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create deal session")
		return
	}

	logger.Info("Deal session started", slog.String("deal_id", session.ID))
	c.JSON(http.StatusCreated, dto.ToDealSessionResponse(session))
}

// getDeal godoc
// @Summary Get wizard session state
// @Tags deals
// @Produce json
// @Param dealID path string true "Deal session ID"
// @Success 200 {object} dto.DealSessionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{dealID} [get]
func (h *dealHandler) getDeal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	session, err := h.dealService.GetSession(c.Request.Context(), c.Param("dealID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load deal session")
		return
	}
	c.JSON(http.StatusOK, dto.ToDealSessionResponse(session))
}

// abandonDeal godoc
// @Summary Abandon a wizard session
// @Description Discards all in-memory progress. No backend cleanup is issued.
// @Tags deals
// @Param dealID path string true "Deal session ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{dealID} [delete]
func (h *dealHandler) abandonDeal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.dealService.AbandonSession(c.Request.Context(), c.Param("dealID")); err != nil {
		respondServiceError(c, logger, err, "Failed to abandon deal session")
		return
	}
	c.Status(http.StatusNoContent)
}

// advance godoc
// @Summary Advance the wizard one step
// @Description Moves forward one step. On the account step this commits the reservation instead;
// @Description success jumps to the finish step, failure leaves the wizard where it was.
// @Tags deals
// @Produce json
// @Param dealID path string true "Deal session ID"
// @Success 200 {object} dto.DealSessionResponse
// @Failure 400 {object} ErrorResponse "Validation failure (e.g. no property selected)"
// @Failure 409 {object} ErrorResponse "Property no longer available"
// @Security BearerAuth
// @Router /deals/{dealID}/advance [post]
func (h *dealHandler) advance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	session, err := h.dealService.Advance(c.Request.Context(), c.Param("dealID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to save changes")
		return
	}
	c.JSON(http.StatusOK, dto.ToDealSessionResponse(session))
}

// retreat godoc
// @Summary Step the wizard back
// @Tags deals
// @Produce json
// @Param dealID path string true "Deal session ID"
// @Success 200 {object} dto.DealSessionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{dealID}/retreat [post]
func (h *dealHandler) retreat(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	session, err := h.dealService.Retreat(c.Request.Context(), c.Param("dealID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to step back")
		return
	}
	c.JSON(http.StatusOK, dto.ToDealSessionResponse(session))
}

// jumpBack godoc
// @Summary Jump to an earlier step
// @Description Jumps directly to a step strictly before the current one. Forward jumps are rejected.
// @Tags deals
// @Accept json
// @Produce json
// @Param dealID path string true "Deal session ID"
// @Param jump body dto.JumpRequest true "Target step index"
// @Success 200 {object} dto.DealSessionResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{dealID}/jump [post]
func (h *dealHandler) jumpBack(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.JumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for jump", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	session, err := h.dealService.JumpBack(c.Request.Context(), c.Param("dealID"), *req.StepIndex)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to jump")
		return
	}
	c.JSON(http.StatusOK, dto.ToDealSessionResponse(session))
}

// selectProperty godoc
// @Summary Select a lot for the deal
// @Description Attaches an Available lot to the session and resets accumulated edits.
// @Description Only allowed while the wizard sits on the inventory step.
// @Tags deals
// @Accept json
// @Produce json
// @Param dealID path string true "Deal session ID"
// @Param selection body dto.SelectPropertyRequest true "Lot to select"
// @Success 200 {object} dto.DealSessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Lot is not available"
// @Security BearerAuth
// @Router /deals/{dealID}/property [put]
func (h *dealHandler) selectProperty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SelectPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for property selection", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	project, err := domain.ParseProject(req.Project)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to select property")
		return
	}

	key := domain.PropertyKey{Block: req.Block, Lot: req.Lot}
	session, err := h.dealService.SelectProperty(c.Request.Context(), c.Param("dealID"), project, key)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to select property")
		return
	}

	logger.Info("Property selected for deal",
		slog.String("deal_id", c.Param("dealID")),
		slog.String("project", project.DisplayName()),
		slog.String("key", key.String()))
	c.JSON(http.StatusOK, dto.ToDealSessionResponse(session))
}

// editField godoc
// @Summary Override one field of the selected lot
// @Tags deals
// @Accept json
// @Produce json
// @Param dealID path string true "Deal session ID"
// @Param edit body dto.EditFieldRequest true "Field override"
// @Success 200 {object} dto.DealSessionResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{dealID}/fields [patch]
func (h *dealHandler) editField(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.EditFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for field edit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	session, err := h.dealService.EditField(c.Request.Context(), c.Param("dealID"), req.Field, req.Value)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to edit field")
		return
	}
	c.JSON(http.StatusOK, dto.ToDealSessionResponse(session))
}
