package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ticketHandler handles HTTP requests related to support tickets.
type ticketHandler struct {
	ticketService portssvc.TicketSvc
}

func newTicketHandler(ts portssvc.TicketSvc) *ticketHandler {
	return &ticketHandler{ticketService: ts}
}

// registerTicketRoutes registers routes related to tickets.
func registerTicketRoutes(rg *gin.RouterGroup, ticketService portssvc.TicketSvc) {
	h := newTicketHandler(ticketService)

	tickets := rg.Group("/tickets")
	{
		tickets.POST("", h.createTicket)
		tickets.GET("", h.listTickets)
		tickets.GET("/:ticketID", h.getTicket)
		tickets.PUT("/:ticketID", h.updateTicket)
	}
}

// createTicket godoc
// @Summary Open a support ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Param ticket body dto.CreateTicketRequest true "Ticket details"
// @Success 201 {object} dto.TicketResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /tickets [post]
func (h *ticketHandler) createTicket(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTicket", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	ticket, err := h.ticketService.CreateTicket(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create ticket")
		return
	}

	logger.Info("Ticket opened", slog.String("ticket_id", ticket.TicketID))
	c.JSON(http.StatusCreated, dto.ToTicketResponse(ticket))
}

// listTickets godoc
// @Summary List support tickets
// @Tags tickets
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.TicketResponse
// @Security BearerAuth
// @Router /tickets [get]
func (h *ticketHandler) listTickets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	tickets, err := h.ticketService.ListTickets(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list tickets")
		return
	}
	c.JSON(http.StatusOK, dto.ToTicketResponses(tickets))
}

// getTicket godoc
// @Summary Get a ticket by ID
// @Tags tickets
// @Produce json
// @Param ticketID path string true "Ticket ID"
// @Success 200 {object} dto.TicketResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tickets/{ticketID} [get]
func (h *ticketHandler) getTicket(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ticket, err := h.ticketService.GetTicketByID(c.Request.Context(), c.Param("ticketID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load ticket")
		return
	}
	c.JSON(http.StatusOK, dto.ToTicketResponse(ticket))
}

// updateTicket godoc
// @Summary Update a ticket's status or assignment
// @Tags tickets
// @Accept json
// @Produce json
// @Param ticketID path string true "Ticket ID"
// @Param ticket body dto.UpdateTicketRequest true "Fields to update"
// @Success 200 {object} dto.TicketResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tickets/{ticketID} [put]
func (h *ticketHandler) updateTicket(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTicket", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	ticket, err := h.ticketService.UpdateTicket(c.Request.Context(), c.Param("ticketID"), req, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update ticket")
		return
	}
	c.JSON(http.StatusOK, dto.ToTicketResponse(ticket))
}
