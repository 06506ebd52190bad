package dto

import (
	"time"

	"github.com/estatedesk/backoffice/internal/models"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest submits a payment for approval.
type CreatePaymentRequest struct {
	ClientName    string `json:"clientName" binding:"required"`
	Project       string `json:"project" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
	Method        string `json:"method"`
	ReceiptBucket string `json:"receiptBucket"`
	ReceiptPath   string `json:"receiptPath"`
}

// ReviewPaymentRequest carries the optional note attached to an approval or
// rejection.
type ReviewPaymentRequest struct {
	Note string `json:"note"`
}

// PaymentResponse is the wire shape of a payment.
type PaymentResponse struct {
	PaymentID     string          `json:"paymentId"`
	ClientName    string          `json:"clientName"`
	Project       string          `json:"project"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	ReceiptBucket string          `json:"receiptBucket,omitempty"`
	ReceiptPath   string          `json:"receiptPath,omitempty"`
	Status        string          `json:"status"`
	ReviewedBy    string          `json:"reviewedBy,omitempty"`
	ReviewNote    string          `json:"reviewNote,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ListPaymentsResponse pages payments newest first; NextToken resumes the
// listing where this page ended.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken string            `json:"nextToken,omitempty"`
}

// ToPaymentResponse maps a model to its wire shape.
func ToPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		ClientName:    p.ClientName,
		Project:       p.Project,
		Amount:        p.Amount,
		Method:        p.Method,
		ReceiptBucket: p.ReceiptBucket,
		ReceiptPath:   p.ReceiptPath,
		Status:        string(p.Status),
		ReviewedBy:    p.ReviewedBy,
		ReviewNote:    p.ReviewNote,
		CreatedAt:     p.CreatedAt,
	}
}

// ToPaymentResponses maps a list of models.
func ToPaymentResponses(payments []models.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, ToPaymentResponse(&payments[i]))
	}
	return out
}
