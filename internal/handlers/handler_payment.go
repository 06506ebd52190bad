package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/middleware"
	"github.com/estatedesk/backoffice/internal/models"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests related to payment intake and review.
type paymentHandler struct {
	paymentService portssvc.PaymentSvc
}

func newPaymentHandler(ps portssvc.PaymentSvc) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers routes related to payments.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvc) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("", h.listPayments)
		payments.GET("/:paymentID", h.getPayment)
		payments.POST("/:paymentID/approve", h.approvePayment)
		payments.POST("/:paymentID/reject", h.rejectPayment)
	}
}

// createPayment godoc
// @Summary Submit a payment for review
// @Description Payments enter the queue as PENDING until an operator approves or rejects them.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create payment")
		return
	}

	logger.Info("Payment submitted", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// listPayments godoc
// @Summary List payments newest first
// @Tags payments
// @Produce json
// @Param status query string false "Filter by status (PENDING, APPROVED, REJECTED)"
// @Param pageToken query string false "Token from a previous page"
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	status := models.PaymentStatus(strings.ToUpper(c.Query("status")))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	payments, nextToken, err := h.paymentService.ListPayments(c.Request.Context(), status, c.Query("pageToken"), limit)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ListPaymentsResponse{
		Payments:  dto.ToPaymentResponses(payments),
		NextToken: nextToken,
	})
}

// getPayment godoc
// @Summary Get a payment by ID
// @Tags payments
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/{paymentID} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), c.Param("paymentID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// approvePayment godoc
// @Summary Approve a pending payment
// @Description Approval posts the amount to the buyer's balance.
// @Tags payments
// @Accept json
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Param review body dto.ReviewPaymentRequest false "Optional reviewer note"
// @Success 200 {object} dto.PaymentResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/{paymentID}/approve [post]
func (h *paymentHandler) approvePayment(c *gin.Context) {
	h.review(c, h.paymentService.ApprovePayment, "Failed to approve payment")
}

// rejectPayment godoc
// @Summary Reject a pending payment
// @Tags payments
// @Accept json
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Param review body dto.ReviewPaymentRequest false "Optional reviewer note"
// @Success 200 {object} dto.PaymentResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/{paymentID}/reject [post]
func (h *paymentHandler) rejectPayment(c *gin.Context) {
	h.review(c, h.paymentService.RejectPayment, "Failed to reject payment")
}

type reviewFn func(ctx context.Context, paymentID, note, reviewerUserID string) (*models.Payment, error)

// review is the shared body of the approve and reject endpoints.
func (h *paymentHandler) review(c *gin.Context, fn reviewFn, failureMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	// The note body is optional; an empty body is fine.
	var req dto.ReviewPaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for payment review", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return
		}
	}

	reviewerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	payment, err := fn(c.Request.Context(), c.Param("paymentID"), req.Note, reviewerUserID)
	if err != nil {
		respondServiceError(c, logger, err, failureMsg)
		return
	}

	logger.Info("Payment reviewed",
		slog.String("payment_id", payment.PaymentID),
		slog.String("status", string(payment.Status)))
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}
