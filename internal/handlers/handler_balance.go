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

// balanceHandler handles HTTP requests related to amortization balances.
type balanceHandler struct {
	balanceService portssvc.BalanceSvc
}

func newBalanceHandler(bs portssvc.BalanceSvc) *balanceHandler {
	return &balanceHandler{balanceService: bs}
}

// registerBalanceRoutes registers routes related to balances.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvc) {
	h := newBalanceHandler(balanceService)

	balances := rg.Group("/balances")
	{
		balances.POST("", h.createBalance)
		balances.GET("", h.listBalances)
		balances.GET("/:balanceID", h.getBalance)
	}
}

// createBalance godoc
// @Summary Open an amortization record for a reserved lot
// @Tags balances
// @Accept json
// @Produce json
// @Param balance body dto.CreateBalanceRequest true "Balance details"
// @Success 201 {object} dto.BalanceResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /balances [post]
func (h *balanceHandler) createBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	balance, err := h.balanceService.CreateBalance(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create balance")
		return
	}

	logger.Info("Balance opened", slog.String("balance_id", balance.BalanceID))
	c.JSON(http.StatusCreated, dto.ToBalanceResponse(balance))
}

// listBalances godoc
// @Summary List amortization balances
// @Tags balances
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.BalanceResponse
// @Security BearerAuth
// @Router /balances [get]
func (h *balanceHandler) listBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	balances, err := h.balanceService.ListBalances(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponses(balances))
}

// getBalance godoc
// @Summary Get a balance by ID
// @Tags balances
// @Produce json
// @Param balanceID path string true "Balance ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /balances/{balanceID} [get]
func (h *balanceHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	balance, err := h.balanceService.GetBalanceByID(c.Request.Context(), c.Param("balanceID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}
